package history

import (
	"context"
	"fmt"
	"pulsecheck/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *zerolog.Logger
}

func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool, logger *zerolog.Logger) (*PostgresStore, error) {
	s := &PostgresStore{
		pool:   pool,
		logger: logger,
	}
	if err := s.migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate checks schema: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS checks (
	id            UUID PRIMARY KEY,
	url           TEXT NOT NULL,
	status        TEXT NOT NULL,
	status_code   INTEGER,
	response_time DOUBLE PRECISION,
	checked_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_checks_checked_at ON checks (checked_at DESC);
CREATE INDEX IF NOT EXISTS idx_checks_url_checked_at ON checks (url, checked_at DESC);
`
	_, err := s.pool.Exec(ctx, schema)
	return err
}

func (s *PostgresStore) Append(ctx context.Context, rec *CheckRecord) error {
	const op string = "repo.history.append"

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	const query = `
		INSERT INTO checks (id, url, status, status_code, response_time, checked_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.pool.Exec(ctx, query,
		rec.ID, rec.URL, string(rec.Status), rec.StatusCode, rec.ResponseTime, rec.CheckedAt,
	)
	if err == nil {
		return nil
	}

	return utils.WrapRepoError(op, err, false, s.logger)
}

func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]CheckRecord, error) {
	const op string = "repo.history.recent"

	const query = `
		SELECT id, url, status, status_code, response_time, checked_at
		FROM checks
		ORDER BY checked_at DESC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, s.logger)
	}
	defer rows.Close()

	return s.collect(op, rows)
}

func (s *PostgresStore) RecentByURL(ctx context.Context, url string, limit int) ([]CheckRecord, error) {
	const op string = "repo.history.recent_by_url"

	const query = `
		SELECT id, url, status, status_code, response_time, checked_at
		FROM checks
		WHERE url = $1
		ORDER BY checked_at DESC
		LIMIT $2
	`

	rows, err := s.pool.Query(ctx, query, url, limit)
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, s.logger)
	}
	defer rows.Close()

	return s.collect(op, rows)
}

func (s *PostgresStore) All(ctx context.Context) ([]CheckRecord, error) {
	const op string = "repo.history.all"

	const query = `
		SELECT id, url, status, status_code, response_time, checked_at
		FROM checks
		ORDER BY checked_at ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, s.logger)
	}
	defer rows.Close()

	return s.collect(op, rows)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

type pgRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func (s *PostgresStore) collect(op string, rows pgRows) ([]CheckRecord, error) {
	records := make([]CheckRecord, 0)

	for rows.Next() {
		var rec CheckRecord
		var status string

		err := rows.Scan(&rec.ID, &rec.URL, &status, &rec.StatusCode, &rec.ResponseTime, &rec.CheckedAt)
		if err != nil {
			// a bad row never fails the whole listing
			s.logger.Warn().Str("op", op).Err(err).Msg("skipping malformed history row")
			continue
		}

		rec.Status = Status(status)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError(op, err, false, s.logger)
	}

	return records, nil
}
