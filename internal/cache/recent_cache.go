package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"pulsecheck/internal/model"
)

// RecentCache tracks which constructs each respondent was asked about
// recently, as a ZSET of construct -> unix time last used.
type RecentCache interface {
	Touch(ctx context.Context, userID string, constructs []model.Construct, at time.Time) error
	Recent(ctx context.Context, userID string, now time.Time) ([]model.Construct, error)
	Clear(ctx context.Context, userID string) error
}

type recentCache struct {
	client *redis.Client
	window time.Duration
}

// NewRecentCache creates a recency cache with the given lookback window
func NewRecentCache(client *redis.Client, window time.Duration) RecentCache {
	return &recentCache{
		client: client,
		window: window,
	}
}

func (c *recentCache) key(userID string) string {
	return fmt.Sprintf("user:%s:recent", userID)
}

func (c *recentCache) Touch(ctx context.Context, userID string, constructs []model.Construct, at time.Time) error {
	if len(constructs) == 0 {
		return nil
	}
	members := make([]redis.Z, 0, len(constructs))
	for _, con := range constructs {
		members = append(members, redis.Z{
			Score:  float64(at.Unix()),
			Member: string(con),
		})
	}

	key := c.key(userID)
	cutoff := strconv.FormatInt(at.Add(-c.window).Unix(), 10)
	pipe := c.client.TxPipeline()
	pipe.ZAdd(ctx, key, members...)
	pipe.ZRemRangeByScore(ctx, key, "-inf", "("+cutoff)
	pipe.Expire(ctx, key, c.window)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *recentCache) Recent(ctx context.Context, userID string, now time.Time) ([]model.Construct, error) {
	from := strconv.FormatInt(now.Add(-c.window).Unix(), 10)
	members, err := c.client.ZRangeByScore(ctx, c.key(userID), &redis.ZRangeBy{
		Min: from,
		Max: "+inf",
	}).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]model.Construct, 0, len(members))
	for _, m := range members {
		out = append(out, model.Construct(m))
	}
	return out, nil
}

func (c *recentCache) Clear(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}
