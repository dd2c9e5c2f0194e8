package stats

import (
	"context"
	"sync"
	"testing"
	"time"

	"pulsecheck/internals/modules/history"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory history.Store for aggregation tests.
type memStore struct {
	mu      sync.Mutex
	records []history.CheckRecord
}

func (m *memStore) Append(_ context.Context, rec *history.CheckRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	m.records = append(m.records, *rec)
	return nil
}

func (m *memStore) Recent(_ context.Context, limit int) ([]history.CheckRecord, error) {
	return nil, nil
}

func (m *memStore) RecentByURL(_ context.Context, url string, limit int) ([]history.CheckRecord, error) {
	return nil, nil
}

func (m *memStore) All(_ context.Context) ([]history.CheckRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]history.CheckRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *memStore) Close() error { return nil }

func seed(t *testing.T, store *memStore, url string, up, down int) {
	t.Helper()
	ctx := context.Background()
	code := 200
	rt := 0.1

	for i := 0; i < up; i++ {
		rec := history.CheckRecord{URL: url, Status: history.StatusUp, StatusCode: &code, ResponseTime: &rt, CheckedAt: time.Now()}
		require.NoError(t, store.Append(ctx, &rec))
	}
	for i := 0; i < down; i++ {
		rec := history.CheckRecord{URL: url, Status: history.StatusDown, CheckedAt: time.Now()}
		require.NoError(t, store.Append(ctx, &rec))
	}
}

func TestSummarize_CountsAddUp(t *testing.T) {
	store := &memStore{}
	seed(t, store, "https://a.example", 3, 1)
	seed(t, store, "https://b.example", 0, 2)

	summaries, err := NewService(store).Summarize(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	for _, s := range summaries {
		require.Equal(t, s.TotalChecks, s.UpCount+s.ErrorCount)
		require.InDelta(t, 100.0, s.UpPercent+s.ErrorRate, 0.001)
	}

	require.Equal(t, "https://a.example", summaries[0].URL)
	require.Equal(t, 4, summaries[0].TotalChecks)
	require.Equal(t, 3, summaries[0].UpCount)
	require.Equal(t, 1, summaries[0].ErrorCount)
	require.Equal(t, 75.0, summaries[0].UpPercent)
	require.Equal(t, 25.0, summaries[0].ErrorRate)

	require.Equal(t, "https://b.example", summaries[1].URL)
	require.Equal(t, 0.0, summaries[1].UpPercent)
	require.Equal(t, 100.0, summaries[1].ErrorRate)
}

func TestSummarize_Rounding(t *testing.T) {
	store := &memStore{}
	seed(t, store, "https://a.example", 1, 2)

	summaries, err := NewService(store).Summarize(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	require.Equal(t, 33.33, summaries[0].UpPercent)
	require.Equal(t, 66.67, summaries[0].ErrorRate)
}

func TestSummarize_Idempotent(t *testing.T) {
	store := &memStore{}
	seed(t, store, "https://a.example", 2, 2)

	svc := NewService(store)

	first, err := svc.Summarize(context.Background())
	require.NoError(t, err)
	second, err := svc.Summarize(context.Background())
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestSummarize_EmptyStore(t *testing.T) {
	summaries, err := NewService(&memStore{}).Summarize(context.Background())
	require.NoError(t, err)
	require.Empty(t, summaries)
}
