package data

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	verdictPrefix  = "scan:"
	authFailPrefix = "authfail:"
	streamScans    = "trailsight.scans"

	verdictTTL  = time.Hour
	authFailTTL = 15 * time.Minute
)

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

func CacheVerdict(ctx context.Context, rdb *redis.Client, scanID string, payload []byte) error {
	return rdb.Set(ctx, verdictPrefix+scanID, payload, verdictTTL).Err()
}

func CachedVerdict(ctx context.Context, rdb *redis.Client, scanID string) ([]byte, error) {
	return rdb.Get(ctx, verdictPrefix+scanID).Bytes()
}

// RecordAuthFailure bumps the failure counter for an address and returns the
// running total inside the window.
func RecordAuthFailure(ctx context.Context, rdb *redis.Client, addr string) (int64, error) {
	key := authFailPrefix + addr
	n, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		_ = rdb.Expire(ctx, key, authFailTTL).Err()
	}
	return n, nil
}

func ClearAuthFailures(ctx context.Context, rdb *redis.Client, addr string) {
	_ = rdb.Del(ctx, authFailPrefix+addr).Err()
}

// PublishScan emits a completed-scan event for downstream consumers.
func PublishScan(ctx context.Context, rdb *redis.Client, payload map[string]interface{}) error {
	_, err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamScans,
		Values: payload,
	}).Result()
	return err
}
