package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "sketchfab:dataset"

// RedisWriter appends records to a Redis list with RPUSH, preserving push
// order. Suitable when the dataset is consumed by another process.
//
// The writer does not own the client; callers close it after the run.
type RedisWriter struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// RedisOption configures a RedisWriter.
type RedisOption func(*RedisWriter)

// WithKey sets the Redis list key. Default is "sketchfab:dataset".
func WithKey(key string) RedisOption {
	return func(w *RedisWriter) {
		if key != "" {
			w.key = key
		}
	}
}

// WithTTL sets a time-to-live refreshed on every push. Zero means the list
// never expires, which is the default.
func WithTTL(ttl time.Duration) RedisOption {
	return func(w *RedisWriter) {
		w.ttl = ttl
	}
}

// NewRedisWriter creates a Redis-backed dataset writer.
//
// Example:
//
//	writer := NewRedisWriter(
//	    redis.NewClient(&redis.Options{Addr: "localhost:6379"}),
//	    WithKey("myrun:dataset"),
//	    WithTTL(24 * time.Hour),
//	)
func NewRedisWriter(client *redis.Client, opts ...RedisOption) *RedisWriter {
	w := &RedisWriter{
		client: client,
		key:    defaultRedisKey,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Push appends one record to the list. RPUSH and the optional EXPIRE are
// pipelined into a single round-trip.
func (w *RedisWriter) Push(ctx context.Context, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	pipe := w.client.Pipeline()
	pipe.RPush(ctx, w.key, data)
	if w.ttl > 0 {
		pipe.Expire(ctx, w.key, w.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis pipeline failed: %w", err)
	}
	return nil
}

// Len returns the number of records currently in the list.
func (w *RedisWriter) Len(ctx context.Context) (int, error) {
	count, err := w.client.LLen(ctx, w.key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis llen failed: %w", err)
	}
	return int(count), nil
}

// Records returns all records in push order.
func (w *RedisWriter) Records(ctx context.Context) ([]json.RawMessage, error) {
	vals, err := w.client.LRange(ctx, w.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange failed: %w", err)
	}

	records := make([]json.RawMessage, 0, len(vals))
	for _, v := range vals {
		records = append(records, json.RawMessage(v))
	}
	return records, nil
}

// Close is a no-op; the Redis client is owned by the caller.
func (w *RedisWriter) Close() error {
	return nil
}
