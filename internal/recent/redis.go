package recent

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "tempo:recent:"

// RedisStore keeps one sorted set per user, scored by the unix millisecond
// the suggestion was recorded. Writes trim entries older than the window
// and refresh the key's TTL, so idle users expire on their own.
type RedisStore struct {
	rdb    redis.UniversalClient
	window time.Duration
}

// NewRedisStore wraps an existing client
func NewRedisStore(rdb redis.UniversalClient, window time.Duration) *RedisStore {
	if window <= 0 {
		window = DefaultWindow
	}
	return &RedisStore{rdb: rdb, window: window}
}

// Dial connects to Redis and verifies the connection
func Dial(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: 10,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

func userKey(userID string) string {
	return keyPrefix + userID
}

func score(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func (s *RedisStore) Since(ctx context.Context, userID string, since time.Time) (map[string]time.Time, error) {
	entries, err := s.rdb.ZRangeByScoreWithScores(ctx, userKey(userID), &redis.ZRangeBy{
		Min: score(since),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read recent suggestions: %w", err)
	}

	out := make(map[string]time.Time, len(entries))
	for _, z := range entries {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		out[member] = time.UnixMilli(int64(z.Score))
	}
	return out, nil
}

func (s *RedisStore) Record(ctx context.Context, userID string, at time.Time, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	key := userKey(userID)
	members := make([]*redis.Z, 0, len(keys))
	for _, k := range keys {
		members = append(members, &redis.Z{Score: float64(at.UnixMilli()), Member: k})
	}

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, key, members...)
		pipe.ZRemRangeByScore(ctx, key, "-inf", "("+score(at.Add(-s.window)))
		// keep only the newest maxKeysPerUser members
		pipe.ZRemRangeByRank(ctx, key, 0, int64(-maxKeysPerUser-1))
		pipe.Expire(ctx, key, s.window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record recent suggestions: %w", err)
	}
	return nil
}
