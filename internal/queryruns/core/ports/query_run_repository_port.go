package ports

import (
	"context"

	"enrollment-dashboard-service/internal/queryruns/core/domain"
)

type QueryRunRepositoryPort interface {
	InsertQueryRun(ctx context.Context, r *domain.QueryRun) error
	// ListQueryRuns returns the newest runs first.
	ListQueryRuns(ctx context.Context, limit int) ([]domain.QueryRun, error)
}
