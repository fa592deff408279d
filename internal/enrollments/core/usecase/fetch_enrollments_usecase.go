package usecase

import (
	"context"
	"time"

	"enrollment-dashboard-service/internal/enrollments/core/domain"
	"enrollment-dashboard-service/internal/enrollments/core/ports"
	"enrollment-dashboard-service/internal/memo"

	"go.uber.org/zap"
)

type FetchEnrollmentsUseCase struct {
	query    ports.ReportQueryPort
	recorder ports.QueryRunRecorderPort
	noise    string
	log      *zap.Logger
	now      func() time.Time
}

// NewFetchEnrollmentsUseCase wires the query port to the aggregator. A nil
// recorder disables the query-run trail.
func NewFetchEnrollmentsUseCase(
	query ports.ReportQueryPort,
	recorder ports.QueryRunRecorderPort,
	noise string,
	log *zap.Logger,
) *FetchEnrollmentsUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &FetchEnrollmentsUseCase{
		query:    query,
		recorder: recorder,
		noise:    noise,
		log:      log,
		now:      time.Now,
	}
}

// Execute runs the remote query once and aggregates its records.
func (uc *FetchEnrollmentsUseCase) Execute(ctx context.Context) (*domain.Snapshot, error) {
	records, meta, err := uc.query.RunQuery(ctx)

	fields := []zap.Field{
		zap.String("method", meta.Method),
		zap.String("url", meta.URL),
		zap.Int("status", meta.StatusCode),
		zap.Duration("elapsed", meta.Elapsed),
		zap.String("request_id", meta.RequestID),
	}

	if err != nil {
		uc.log.Error("remote query failed", append(fields, zap.Error(err))...)
		uc.record(ctx, meta, 0, err)
		return nil, err
	}

	rows, stats := AggregateWithStats(records, uc.noise)

	uc.log.Info("remote query succeeded", append(fields,
		zap.Int("records", stats.Records),
		zap.Int("branches", len(rows)),
	)...)
	if stats.Skipped > 0 || stats.CoercedToZero > 0 {
		uc.log.Warn("records did not aggregate cleanly",
			zap.Int("skipped", stats.Skipped),
			zap.Int("coerced_to_zero", stats.CoercedToZero),
			zap.String("request_id", meta.RequestID),
		)
	}

	uc.record(ctx, meta, len(records), nil)

	return &domain.Snapshot{
		Rows:      rows,
		Total:     domain.Sum(rows),
		FetchedAt: uc.now(),
		Meta:      meta,
		Stats:     stats,
	}, nil
}

func (uc *FetchEnrollmentsUseCase) record(ctx context.Context, meta domain.QueryMetadata, rowCount int, queryErr error) {
	if uc.recorder == nil {
		return
	}
	if err := uc.recorder.RecordQueryRun(ctx, meta, rowCount, queryErr); err != nil {
		uc.log.Warn("failed to record query run", zap.Error(err), zap.String("request_id", meta.RequestID))
	}
}

// CachedFetchEnrollments memoizes FetchEnrollmentsUseCase in a single
// shared slot. Every caller within the ttl sees the same snapshot.
type CachedFetchEnrollments struct {
	uc   *FetchEnrollmentsUseCase
	slot *memo.Slot[*domain.Snapshot]
}

func NewCachedFetchEnrollments(uc *FetchEnrollmentsUseCase, ttl time.Duration, now func() time.Time) *CachedFetchEnrollments {
	return &CachedFetchEnrollments{
		uc:   uc,
		slot: memo.New[*domain.Snapshot](ttl, now),
	}
}

// Execute returns the cached snapshot while fresh. Failed fetches are not
// cached, so the next call retries.
func (c *CachedFetchEnrollments) Execute(ctx context.Context) (*domain.Snapshot, error) {
	snap, _, err := c.slot.Get(ctx, c.uc.Execute)
	return snap, err
}

func (c *CachedFetchEnrollments) Invalidate() {
	c.slot.Invalidate()
}
