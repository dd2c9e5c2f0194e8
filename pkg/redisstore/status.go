package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"
)

func statusKey(url string) string {
	return fmt.Sprintf("url:last:%s", url)
}

// StoreLastResult caches the most recent check outcome for a URL. Code and
// responseTime are nil when the probe received no response.
func (c *Client) StoreLastResult(ctx context.Context, url, status string, code *int, responseTime *float64, checkedAt time.Time) error {
	fields := map[string]any{
		"status":     status,
		"checked_at": checkedAt.Unix(),
	}
	if code != nil {
		fields["status_code"] = *code
	}
	if responseTime != nil {
		fields["response_time"] = *responseTime
	}

	key := statusKey(url)

	return retry(ctx, 2, func() error {
		pipe := c.rdb.TxPipeline()
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fields)
		_, err := pipe.Exec(ctx)
		return err
	})
}

func (c *Client) LastResult(ctx context.Context, url string) (map[string]string, error) {
	res, err := c.rdb.HGetAll(ctx, statusKey(url)).Result()
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	return res, err
}
