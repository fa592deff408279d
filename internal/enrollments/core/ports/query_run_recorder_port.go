package ports

import (
	"context"

	"enrollment-dashboard-service/internal/enrollments/core/domain"
)

// QueryRunRecorderPort keeps a diagnostic trail of remote calls.
// queryErr is the error returned by the query, nil on success.
type QueryRunRecorderPort interface {
	RecordQueryRun(ctx context.Context, meta domain.QueryMetadata, rowCount int, queryErr error) error
}
