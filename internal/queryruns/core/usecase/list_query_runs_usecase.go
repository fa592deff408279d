package usecase

import (
	"context"
	"errors"

	"enrollment-dashboard-service/internal/queryruns/core/domain"
	"enrollment-dashboard-service/internal/queryruns/core/ports"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
)

var (
	ErrInvalidLimit        = errors.New("invalid limit")
	ErrDiagnosticsDisabled = errors.New("query run diagnostics are disabled")
)

type ListQueryRunsInput struct {
	Limit int // 0 means DefaultListLimit
}

type ListQueryRunsUseCase struct {
	repo ports.QueryRunRepositoryPort
}

// NewListQueryRunsUseCase returns a use case that reports
// ErrDiagnosticsDisabled when repo is nil.
func NewListQueryRunsUseCase(repo ports.QueryRunRepositoryPort) *ListQueryRunsUseCase {
	return &ListQueryRunsUseCase{repo: repo}
}

func (uc *ListQueryRunsUseCase) Execute(ctx context.Context, in ListQueryRunsInput) ([]domain.QueryRun, error) {
	if uc.repo == nil {
		return nil, ErrDiagnosticsDisabled
	}

	limit := in.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 0 || limit > MaxListLimit {
		return nil, ErrInvalidLimit
	}

	return uc.repo.ListQueryRuns(ctx, limit)
}
