package history

import "context"

// Store is the append-only record store. Appends from parallel probe
// completions must be safe to run concurrently; recency is defined by
// CheckedAt, not by insertion order.
type Store interface {
	// Append persists one record. The record ID is assigned here when empty.
	Append(ctx context.Context, rec *CheckRecord) error

	// Recent returns up to limit records across all URLs, newest first.
	Recent(ctx context.Context, limit int) ([]CheckRecord, error)

	// RecentByURL returns up to limit records for one URL, newest first.
	RecentByURL(ctx context.Context, url string, limit int) ([]CheckRecord, error)

	// All returns every record, used by the stats aggregator.
	All(ctx context.Context) ([]CheckRecord, error)

	Close() error
}
