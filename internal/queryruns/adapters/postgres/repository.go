package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"enrollment-dashboard-service/internal/queryruns/core/domain"
	"enrollment-dashboard-service/internal/queryruns/core/ports"

	"github.com/lib/pq"
)

type QueryRunRepository struct {
	db DB
}

func NewQueryRunRepository(db DB) *QueryRunRepository {
	return &QueryRunRepository{db: db}
}

var _ ports.QueryRunRepositoryPort = (*QueryRunRepository)(nil)

const createQueryRunsSQL = `
CREATE TABLE IF NOT EXISTS query_runs (
    id             UUID PRIMARY KEY,
    query_name     TEXT        NOT NULL,
    requested_at   TIMESTAMPTZ NOT NULL,
    url            TEXT        NOT NULL,
    status_code    INTEGER,
    elapsed_ms     BIGINT      NOT NULL,
    request_id     TEXT,
    correlation_id TEXT,
    succeeded      BOOLEAN     NOT NULL,
    error_kind     TEXT,
    error_message  TEXT,
    row_count      INTEGER     NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS query_runs_requested_at_idx ON query_runs (requested_at DESC);
`

const insertQueryRunSQL = `
INSERT INTO query_runs (
    id,
    query_name,
    requested_at,
    url,
    status_code,
    elapsed_ms,
    request_id,
    correlation_id,
    succeeded,
    error_kind,
    error_message,
    row_count
) VALUES (
    $1, $2, $3, $4,
    $5, $6, $7, $8,
    $9, $10, $11, $12
)
ON CONFLICT (id) DO NOTHING;
`

const listQueryRunsSQL = `
SELECT
    id,
    query_name,
    requested_at,
    url,
    COALESCE(status_code, 0),
    elapsed_ms,
    COALESCE(request_id, ''),
    COALESCE(correlation_id, ''),
    succeeded,
    COALESCE(error_kind, ''),
    COALESCE(error_message, ''),
    row_count
FROM query_runs
ORDER BY requested_at DESC
LIMIT $1`

// EnsureSchema creates the query_runs table when missing.
func (r *QueryRunRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createQueryRunsSQL); err != nil {
		return fmt.Errorf("ensure query_runs schema: %w", err)
	}
	return nil
}

func (r *QueryRunRepository) InsertQueryRun(ctx context.Context, q *domain.QueryRun) error {
	_, err := r.db.ExecContext(ctx, insertQueryRunSQL,
		q.ID,
		q.QueryName,
		q.RequestedAt,
		q.URL,
		nullableInt(q.StatusCode),
		q.ElapsedMs,
		nullableString(q.RequestID),
		nullableString(q.CorrelationID),
		q.Succeeded,
		nullableString(q.ErrorKind),
		nullableString(q.ErrorMessage),
		q.RowCount,
	)
	if err != nil {
		return describe(err)
	}
	return nil
}

func (r *QueryRunRepository) ListQueryRuns(ctx context.Context, limit int) ([]domain.QueryRun, error) {
	rows, err := r.db.QueryContext(ctx, listQueryRunsSQL, limit)
	if err != nil {
		return nil, describe(err)
	}
	defer rows.Close()

	runs := make([]domain.QueryRun, 0, limit)
	for rows.Next() {
		var (
			q           domain.QueryRun
			requestedAt time.Time
			statusCode  int64
			rowCount    int64
		)
		if err := rows.Scan(
			&q.ID,
			&q.QueryName,
			&requestedAt,
			&q.URL,
			&statusCode,
			&q.ElapsedMs,
			&q.RequestID,
			&q.CorrelationID,
			&q.Succeeded,
			&q.ErrorKind,
			&q.ErrorMessage,
			&rowCount,
		); err != nil {
			return nil, err
		}
		q.RequestedAt = requestedAt.UTC()
		q.StatusCode = int(statusCode)
		q.RowCount = int(rowCount)
		runs = append(runs, q)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

// describe adds the postgres error code when the driver reports one.
func describe(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("postgres %s (%s): %w", pqErr.Code.Name(), pqErr.Code, err)
	}
	return err
}
