package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	logger := zerolog.Nop()
	store, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "checks.db"), &logger)
	require.NoError(t, err)

	t.Cleanup(func() { store.Close() })
	return store
}

func upRecord(url string, code int, rt float64, at time.Time) CheckRecord {
	return CheckRecord{
		URL:          url,
		Status:       StatusUp,
		StatusCode:   &code,
		ResponseTime: &rt,
		CheckedAt:    at,
	}
}

func downRecord(url string, at time.Time) CheckRecord {
	return CheckRecord{
		URL:       url,
		Status:    StatusDown,
		CheckedAt: at,
	}
}

func TestSQLiteStore_AppendAssignsID(t *testing.T) {
	store := newTestStore(t)

	rec := upRecord("https://good.example", 200, 0.2, time.Now())
	require.NoError(t, store.Append(context.Background(), &rec))
	require.NotEqual(t, uuid.Nil, rec.ID)
}

func TestSQLiteStore_RecentNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	records := []CheckRecord{
		upRecord("https://a.example", 200, 0.1, base),
		downRecord("https://b.example", base.Add(time.Minute)),
		upRecord("https://a.example", 503, 0.3, base.Add(2*time.Minute)),
	}
	for i := range records {
		require.NoError(t, store.Append(ctx, &records[i]))
	}

	got, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "https://a.example", got[0].URL)
	require.Equal(t, StatusUp, got[0].Status)
	require.Equal(t, "https://b.example", got[1].URL)
	require.True(t, got[0].CheckedAt.After(got[1].CheckedAt))
}

func TestSQLiteStore_RecentByURL(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	first := upRecord("https://good.example", 200, 0.2, base)
	other := downRecord("https://bad.example", base.Add(time.Minute))
	second := upRecord("https://good.example", 200, 0.25, base.Add(2*time.Minute))

	for _, rec := range []*CheckRecord{&first, &other, &second} {
		require.NoError(t, store.Append(ctx, rec))
	}

	got, err := store.RecentByURL(ctx, "https://good.example", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, second.ID, got[0].ID)
}

func TestSQLiteStore_DownRecordKeepsFieldsAbsent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := downRecord("https://bad.example", time.Now())
	require.NoError(t, store.Append(ctx, &rec))

	got, err := store.RecentByURL(ctx, "https://bad.example", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, StatusDown, got[0].Status)
	require.Nil(t, got[0].StatusCode)
	require.Nil(t, got[0].ResponseTime)
}

func TestSQLiteStore_AllAscending(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		rec := upRecord("https://a.example", 200, 0.1, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.Append(ctx, &rec))
	}

	got, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i := 1; i < len(got); i++ {
		require.False(t, got[i].CheckedAt.Before(got[i-1].CheckedAt))
	}
}
