package ports

import (
	"context"

	"enrollment-dashboard-service/internal/enrollments/core/domain"
)

// ReportQueryPort runs the configured named query on the reporting server.
// Every failure is a *domain.RemoteQueryError; metadata is returned even
// then when the request reached the server.
type ReportQueryPort interface {
	RunQuery(ctx context.Context) ([]domain.RawRecord, domain.QueryMetadata, error)
}
