package history

import (
	"context"
	"testing"
	"time"

	"pulsecheck/pkg/apperror"

	"github.com/stretchr/testify/require"
)

func TestRecentByURL_RequiresURL(t *testing.T) {
	svc := NewService(newTestStore(t))

	for _, url := range []string{"", "   "} {
		_, err := svc.RecentByURL(context.Background(), url, 5)
		require.Error(t, err)
		require.True(t, apperror.IsKind(err, apperror.InvalidInput))
	}
}

func TestRecentByURL_TrimsURL(t *testing.T) {
	store := newTestStore(t)
	svc := NewService(store)

	rec := upRecord("https://example.com", 200, 0.1, time.Now())
	require.NoError(t, store.Append(context.Background(), &rec))

	records, err := svc.RecentByURL(context.Background(), "  https://example.com  ", 5)
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestRecent_ClampsLimit(t *testing.T) {
	store := newTestStore(t)
	svc := NewService(store)

	for i := 0; i < 25; i++ {
		rec := upRecord("https://example.com", 200, 0.1, time.Now())
		require.NoError(t, store.Append(context.Background(), &rec))
	}

	// zero and negative fall back to the default of 20
	records, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, records, 20)

	records, err = svc.Recent(context.Background(), -3)
	require.NoError(t, err)
	require.Len(t, records, 20)
}
