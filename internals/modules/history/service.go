package history

import (
	"context"
	"strings"

	"pulsecheck/pkg/apperror"
)

const (
	defaultRecentLimit = 20
	defaultByURLLimit  = 30
	maxLimit           = 500
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Recent(ctx context.Context, limit int) ([]CheckRecord, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return s.store.Recent(ctx, limit)
}

func (s *Service) RecentByURL(ctx context.Context, url string, limit int) ([]CheckRecord, error) {
	const op string = "service.history.recent_by_url"

	url = strings.TrimSpace(url)
	if url == "" {
		return nil, apperror.New(apperror.InvalidInput, op, nil).WithMessage("url is required")
	}

	if limit <= 0 {
		limit = defaultByURLLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return s.store.RecentByURL(ctx, url, limit)
}
