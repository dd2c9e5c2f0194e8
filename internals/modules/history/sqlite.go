package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SQLiteStore is the embedded single-file backend. Timestamps are stored as
// unix nanoseconds so that ordering by checked_at stays correct.
type SQLiteStore struct {
	db     *sql.DB
	logger *zerolog.Logger
}

func NewSQLiteStore(ctx context.Context, path string, logger *zerolog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("%s?_journal_mode=WAL", path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// the driver serializes writes anyway, keep the pool tiny
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate checks schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS checks (
	id            TEXT PRIMARY KEY,
	url           TEXT NOT NULL,
	status        TEXT NOT NULL,
	status_code   INTEGER,
	response_time REAL,
	checked_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_checks_checked_at ON checks (checked_at DESC);
CREATE INDEX IF NOT EXISTS idx_checks_url_checked_at ON checks (url, checked_at DESC);
`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *SQLiteStore) Append(ctx context.Context, rec *CheckRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	const query = `
		INSERT INTO checks (id, url, status, status_code, response_time, checked_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var code sql.NullInt64
	if rec.StatusCode != nil {
		code = sql.NullInt64{Int64: int64(*rec.StatusCode), Valid: true}
	}
	var rt sql.NullFloat64
	if rec.ResponseTime != nil {
		rt = sql.NullFloat64{Float64: *rec.ResponseTime, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		rec.ID.String(), rec.URL, string(rec.Status), code, rt, rec.CheckedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("append check record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]CheckRecord, error) {
	const query = `
		SELECT id, url, status, status_code, response_time, checked_at
		FROM checks
		ORDER BY checked_at DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent checks: %w", err)
	}
	defer rows.Close()

	return s.collect(rows)
}

func (s *SQLiteStore) RecentByURL(ctx context.Context, url string, limit int) ([]CheckRecord, error) {
	const query = `
		SELECT id, url, status, status_code, response_time, checked_at
		FROM checks
		WHERE url = ?
		ORDER BY checked_at DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, url, limit)
	if err != nil {
		return nil, fmt.Errorf("query checks by url: %w", err)
	}
	defer rows.Close()

	return s.collect(rows)
}

func (s *SQLiteStore) All(ctx context.Context) ([]CheckRecord, error) {
	const query = `
		SELECT id, url, status, status_code, response_time, checked_at
		FROM checks
		ORDER BY checked_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query all checks: %w", err)
	}
	defer rows.Close()

	return s.collect(rows)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) collect(rows *sql.Rows) ([]CheckRecord, error) {
	records := make([]CheckRecord, 0)

	for rows.Next() {
		var (
			rec       CheckRecord
			id        string
			status    string
			code      sql.NullInt64
			rt        sql.NullFloat64
			checkedAt int64
		)

		err := rows.Scan(&id, &rec.URL, &status, &code, &rt, &checkedAt)
		if err != nil {
			s.logger.Warn().Err(err).Msg("skipping malformed history row")
			continue
		}

		parsed, err := uuid.Parse(id)
		if err != nil {
			s.logger.Warn().Str("id", id).Msg("skipping history row with bad id")
			continue
		}

		rec.ID = parsed
		rec.Status = Status(status)
		rec.CheckedAt = time.Unix(0, checkedAt).UTC()
		if code.Valid {
			c := int(code.Int64)
			rec.StatusCode = &c
		}
		if rt.Valid {
			v := rt.Float64
			rec.ResponseTime = &v
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}

	return records, nil
}
