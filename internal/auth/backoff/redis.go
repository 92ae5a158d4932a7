package backoff

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrementScript bumps the failure count and lockout of KEYS[1].
// ARGV: now (unix ms), base (ms), max (ms). The key expires max after the
// lockout ends; a stale record is reset before counting.
var incrementScript = redis.NewScript(`
local now = tonumber(ARGV[1])
local base = tonumber(ARGV[2])
local max = tonumber(ARGV[3])

local prev = tonumber(redis.call('HGET', KEYS[1], 'until') or '0')
if prev > 0 and now > prev + max then
  redis.call('DEL', KEYS[1])
end

local n = redis.call('HINCRBY', KEYS[1], 'count', 1)
local delay = base
local i = 1
while i < n and delay < max do
  delay = delay * 2
  i = i + 1
end
if delay > max then
  delay = max
end

local untilMs = now + delay
redis.call('HSET', KEYS[1], 'until', untilMs)
redis.call('PEXPIRE', KEYS[1], delay + max)
return {n, untilMs}
`)

// RedisStore shares records across replicas.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisStoreFromURL connects to url and verifies the connection.
func NewRedisStoreFromURL(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid BACKOFF_REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Get(ctx context.Context, key string) (Record, bool, error) {
	vals, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return Record{}, false, err
	}
	if len(vals) == 0 {
		return Record{}, false, nil
	}

	count, err := strconv.Atoi(vals["count"])
	if err != nil {
		return Record{}, false, fmt.Errorf("backoff: bad count for %s: %w", key, err)
	}
	untilMs, err := strconv.ParseInt(vals["until"], 10, 64)
	if err != nil {
		return Record{}, false, fmt.Errorf("backoff: bad until for %s: %w", key, err)
	}
	return Record{Count: count, Until: time.UnixMilli(untilMs)}, true, nil
}

func (r *RedisStore) Increment(ctx context.Context, key string, now time.Time, p Policy) (Record, error) {
	res, err := incrementScript.Run(ctx, r.client, []string{key},
		now.UnixMilli(), p.Base.Milliseconds(), p.Max.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return Record{}, err
	}
	if len(res) != 2 {
		return Record{}, fmt.Errorf("backoff: unexpected script result %v", res)
	}
	return Record{Count: int(res[0]), Until: time.UnixMilli(res[1])}, nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
