package redisstore

import (
	"context"
	"sort"
)

// trackedSetKey holds the set of URLs subject to scheduled monitoring.
const trackedSetKey = "urls:tracked"

func (c *Client) AddTracked(ctx context.Context, urls ...string) error {
	if len(urls) == 0 {
		return nil
	}

	members := make([]any, 0, len(urls))
	for _, u := range urls {
		members = append(members, u)
	}

	return retry(ctx, 2, func() error {
		return c.rdb.SAdd(ctx, trackedSetKey, members...).Err()
	})
}

func (c *Client) TrackedURLs(ctx context.Context) ([]string, error) {
	urls, err := c.rdb.SMembers(ctx, trackedSetKey).Result()
	if err != nil {
		return nil, err
	}

	// SMEMBERS order is unspecified, keep listings stable
	sort.Strings(urls)
	return urls, nil
}
