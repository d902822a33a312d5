package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// maxUpdateAttempts bounds the optimistic retries of Update under contention.
const maxUpdateAttempts = 10

// RedisStore keeps session state as JSON under "{prefix}:session:{id}".
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisStoreConfig configures the Redis store.
type RedisStoreConfig struct {
	Prefix string        // key prefix, default "tirewriter"
	TTL    time.Duration // expiry refreshed on every save, 0 = no expiry
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, config ...RedisStoreConfig) *RedisStore {
	cfg := RedisStoreConfig{Prefix: "tirewriter"}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "tirewriter"
	}
	return &RedisStore{client: client, prefix: cfg.Prefix, ttl: cfg.TTL}
}

// DialRedis parses url, connects and pings.
func DialRedis(ctx context.Context, url string, config ...RedisStoreConfig) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}
	return NewRedisStore(client, config...), nil
}

func (r *RedisStore) key(id string) string {
	return fmt.Sprintf("%s:session:%s", r.prefix, id)
}

func (r *RedisStore) Load(ctx context.Context, id string) (State, error) {
	if id == "" {
		return State{}, ErrEmptyID
	}
	return r.get(ctx, r.client, id)
}

// getter is satisfied by both *redis.Client and a WATCH transaction.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *RedisStore) get(ctx context.Context, c getter, id string) (State, error) {
	raw, err := c.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return NewState(), nil
	}
	if err != nil {
		return State{}, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return State{}, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return st, nil
}

func (r *RedisStore) Save(ctx context.Context, id string, state State) error {
	if id == "" {
		return ErrEmptyID
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", id, err)
	}
	if err := r.client.Set(ctx, r.key(id), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session %s: %w", id, err)
	}
	return nil
}

// Update runs a WATCH/MULTI read-modify-write on the session key and retries
// when another writer touched the key in between.
func (r *RedisStore) Update(ctx context.Context, id string, fn func(*State)) (State, error) {
	if id == "" {
		return State{}, ErrEmptyID
	}
	key := r.key(id)

	var updated State
	txf := func(tx *redis.Tx) error {
		st, err := r.get(ctx, tx, id)
		if err != nil {
			return err
		}
		fn(&st)
		raw, err := json.Marshal(st)
		if err != nil {
			return fmt.Errorf("failed to encode session %s: %w", id, err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		updated = st
		return nil
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return State{}, fmt.Errorf("failed to update session %s: %w", id, err)
	}
	return State{}, fmt.Errorf("failed to update session %s: too many concurrent writers", id)
}

func (r *RedisStore) Backend() string { return "redis" }

func (r *RedisStore) Close() error {
	return r.client.Close()
}

var _ Store = (*RedisStore)(nil)
