package usecase

import (
	"context"
	"errors"
	"fmt"

	enrollments "enrollment-dashboard-service/internal/enrollments/core/domain"
	"enrollment-dashboard-service/internal/queryruns/core/domain"
	"enrollment-dashboard-service/internal/queryruns/core/ports"

	"github.com/google/uuid"
)

var ErrInvalidQueryRun = errors.New("invalid query run")

type RecordQueryRunUseCase struct {
	repo      ports.QueryRunRepositoryPort
	queryName string
	newID     func() string
}

func NewRecordQueryRunUseCase(repo ports.QueryRunRepositoryPort, queryName string) *RecordQueryRunUseCase {
	return &RecordQueryRunUseCase{repo: repo, queryName: queryName, newID: uuid.NewString}
}

// RecordQueryRun satisfies the enrollments QueryRunRecorderPort.
func (uc *RecordQueryRunUseCase) RecordQueryRun(ctx context.Context, meta enrollments.QueryMetadata, rowCount int, queryErr error) error {
	if meta.Timestamp.IsZero() || meta.URL == "" {
		return ErrInvalidQueryRun
	}

	run := &domain.QueryRun{
		ID:            uc.newID(),
		QueryName:     uc.queryName,
		RequestedAt:   meta.Timestamp.UTC(),
		URL:           meta.URL,
		StatusCode:    meta.StatusCode,
		ElapsedMs:     meta.Elapsed.Milliseconds(),
		RequestID:     meta.RequestID,
		CorrelationID: meta.CorrelationID(),
		Succeeded:     queryErr == nil,
		RowCount:      rowCount,
	}

	if queryErr != nil {
		run.ErrorMessage = enrollments.Truncate(queryErr.Error(), 500)
		var rqe *enrollments.RemoteQueryError
		if errors.As(queryErr, &rqe) {
			run.ErrorKind = string(rqe.Kind)
		}
	}

	if err := uc.repo.InsertQueryRun(ctx, run); err != nil {
		return fmt.Errorf("insert query run: %w", err)
	}
	return nil
}
