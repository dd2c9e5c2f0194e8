package stats

import (
	"context"
	"math"

	"pulsecheck/internals/modules/history"
)

// Summary is the per-URL aggregate over the whole history. UpCount plus
// ErrorCount always equals TotalChecks.
type Summary struct {
	URL         string
	TotalChecks int
	UpCount     int
	ErrorCount  int
	UpPercent   float64
	ErrorRate   float64
}

type Service struct {
	store history.Store
}

func NewService(store history.Store) *Service {
	return &Service{store: store}
}

// Summarize scans the history store and produces one summary per URL ever
// observed, in first-seen order. Pure read, no side effects.
func (s *Service) Summarize(ctx context.Context) ([]Summary, error) {
	records, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}

	type counts struct {
		total int
		up    int
	}

	order := make([]string, 0)
	byURL := make(map[string]*counts)

	for _, rec := range records {
		c, ok := byURL[rec.URL]
		if !ok {
			c = &counts{}
			byURL[rec.URL] = c
			order = append(order, rec.URL)
		}
		c.total++
		if rec.Status == history.StatusUp {
			c.up++
		}
	}

	summaries := make([]Summary, 0, len(order))
	for _, url := range order {
		c := byURL[url]

		var upPercent float64
		if c.total > 0 {
			upPercent = round2(100 * float64(c.up) / float64(c.total))
		}

		summaries = append(summaries, Summary{
			URL:         url,
			TotalChecks: c.total,
			UpCount:     c.up,
			ErrorCount:  c.total - c.up,
			UpPercent:   upPercent,
			ErrorRate:   round2(100 - upPercent),
		})
	}

	return summaries, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
