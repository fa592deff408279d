package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"enrollment-dashboard-service/internal/enrollments/core/domain"
	"enrollment-dashboard-service/internal/enrollments/core/usecase"

	"go.uber.org/zap"
)

// fakeReportQuery implements ports.ReportQueryPort.
type fakeReportQuery struct {
	RunFn func(ctx context.Context) ([]domain.RawRecord, domain.QueryMetadata, error)
	calls int
}

func (f *fakeReportQuery) RunQuery(ctx context.Context) ([]domain.RawRecord, domain.QueryMetadata, error) {
	f.calls++
	if f.RunFn != nil {
		return f.RunFn(ctx)
	}
	return nil, domain.QueryMetadata{}, nil
}

// fakeRecorder implements ports.QueryRunRecorderPort.
type fakeRecorder struct {
	Err          error
	lastMeta     domain.QueryMetadata
	lastRowCount int
	lastQueryErr error
	calls        int
}

func (f *fakeRecorder) RecordQueryRun(ctx context.Context, meta domain.QueryMetadata, rowCount int, queryErr error) error {
	f.calls++
	f.lastMeta = meta
	f.lastRowCount = rowCount
	f.lastQueryErr = queryErr
	return f.Err
}

func okQuery() *fakeReportQuery {
	return &fakeReportQuery{
		RunFn: func(ctx context.Context) ([]domain.RawRecord, domain.QueryMetadata, error) {
			return []domain.RawRecord{
					{"FILIAL": "COLEGIO E CURSO MATRIZ EDUCACAO CENTRO", "MATRICULAS": "120"},
					{"Filial": "CENTRO", "Matriculas": 30.0},
					{"NOMEFANTASIA": "NORTE", "QTD": "x"},
				}, domain.QueryMetadata{
					Method:     "GET",
					URL:        "https://rm.example/SMP.0025/0/S",
					StatusCode: 200,
					RequestID:  "req-1",
				}, nil
		},
	}
}

// ------------------------------------------------------------
// SUCCESS
// ------------------------------------------------------------

func TestFetchEnrollments_Success(t *testing.T) {
	q := okQuery()
	rec := &fakeRecorder{}

	uc := usecase.NewFetchEnrollmentsUseCase(q, rec, noise, zap.NewNop())

	snap, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := asMap(snap.Rows)
	if got["CENTRO"] != 150 || got["NORTE"] != 0 || len(got) != 2 {
		t.Fatalf("unexpected rows: %v", snap.Rows)
	}
	if snap.Total != 150 {
		t.Fatalf("expected total 150, got %d", snap.Total)
	}
	if snap.Meta.RequestID != "req-1" {
		t.Fatalf("expected metadata to be carried, got %+v", snap.Meta)
	}
	if snap.Stats.CoercedToZero != 1 {
		t.Fatalf("expected 1 coerced count, got %+v", snap.Stats)
	}
	if snap.FetchedAt.IsZero() {
		t.Fatalf("expected FetchedAt to be set")
	}

	if rec.calls != 1 || rec.lastRowCount != 3 || rec.lastQueryErr != nil {
		t.Fatalf("unexpected recorder call: calls=%d rows=%d err=%v", rec.calls, rec.lastRowCount, rec.lastQueryErr)
	}
}

func TestFetchEnrollments_NilRecorder(t *testing.T) {
	uc := usecase.NewFetchEnrollmentsUseCase(okQuery(), nil, noise, nil)
	if _, err := uc.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetchEnrollments_RecorderErrorIgnored(t *testing.T) {
	rec := &fakeRecorder{Err: errors.New("db down")}
	uc := usecase.NewFetchEnrollmentsUseCase(okQuery(), rec, noise, zap.NewNop())

	if _, err := uc.Execute(context.Background()); err != nil {
		t.Fatalf("recorder errors must not fail the fetch, got %v", err)
	}
}

// ------------------------------------------------------------
// REMOTE ERROR
// ------------------------------------------------------------

func TestFetchEnrollments_RemoteError(t *testing.T) {
	remoteErr := &domain.RemoteQueryError{
		Kind:       domain.KindStatus,
		Cause:      "HTTP 500 running SMP.0025",
		StatusCode: 500,
		Body:       "boom",
	}
	q := &fakeReportQuery{
		RunFn: func(ctx context.Context) ([]domain.RawRecord, domain.QueryMetadata, error) {
			return nil, domain.QueryMetadata{StatusCode: 500}, remoteErr
		},
	}
	rec := &fakeRecorder{}

	uc := usecase.NewFetchEnrollmentsUseCase(q, rec, noise, zap.NewNop())

	snap, err := uc.Execute(context.Background())
	if snap != nil {
		t.Fatalf("expected nil snapshot on error")
	}
	if !errors.Is(err, domain.ErrRemoteQuery) {
		t.Fatalf("expected ErrRemoteQuery, got %v", err)
	}
	if rec.calls != 1 || rec.lastQueryErr != remoteErr || rec.lastMeta.StatusCode != 500 {
		t.Fatalf("expected failed run to be recorded, got %+v", rec)
	}
}

// ------------------------------------------------------------
// CACHE
// ------------------------------------------------------------

func TestCachedFetch_SecondCallWithinTTLIsHit(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	q := okQuery()
	uc := usecase.NewFetchEnrollmentsUseCase(q, nil, noise, zap.NewNop())
	cached := usecase.NewCachedFetchEnrollments(uc, 5*time.Minute, clock)

	first, err := cached.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	now = now.Add(4 * time.Minute)

	second, err := cached.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.calls != 1 {
		t.Fatalf("expected a single remote call, got %d", q.calls)
	}
	if first != second {
		t.Fatalf("expected the same cached snapshot")
	}

	now = now.Add(2 * time.Minute)
	if _, err := cached.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.calls != 2 {
		t.Fatalf("expected refetch after ttl, got %d calls", q.calls)
	}
}

func TestCachedFetch_ErrorNotCached(t *testing.T) {
	fail := true
	q := &fakeReportQuery{
		RunFn: func(ctx context.Context) ([]domain.RawRecord, domain.QueryMetadata, error) {
			if fail {
				return nil, domain.QueryMetadata{}, &domain.RemoteQueryError{Kind: domain.KindTransport, Cause: "down"}
			}
			return []domain.RawRecord{{"FILIAL": "SUL", "QTD": 1.0}}, domain.QueryMetadata{}, nil
		},
	}
	uc := usecase.NewFetchEnrollmentsUseCase(q, nil, noise, zap.NewNop())
	cached := usecase.NewCachedFetchEnrollments(uc, time.Hour, nil)

	if _, err := cached.Execute(context.Background()); err == nil {
		t.Fatalf("expected error")
	}

	fail = false
	snap, err := cached.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.calls != 2 || snap.Total != 1 {
		t.Fatalf("expected retry to hit the remote, calls=%d total=%d", q.calls, snap.Total)
	}

	cached.Invalidate()
	if _, err := cached.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.calls != 3 {
		t.Fatalf("expected invalidate to force a call, got %d", q.calls)
	}
}
