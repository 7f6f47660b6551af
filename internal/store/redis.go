package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const redisSessionPrefix = "lectern:session:"

// RedisSessionRepo keeps session state in Redis so several API instances
// can serve the same learners. Each session is one JSON value whose TTL is
// refreshed on every save.
type RedisSessionRepo struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewRedisClient connects to addr and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DialTimeout: 5 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	return client, nil
}

// NewRedisSessionRepo wraps client. A zero ttl keeps sessions forever.
func NewRedisSessionRepo(client *goredis.Client, ttl time.Duration) *RedisSessionRepo {
	return &RedisSessionRepo{client: client, ttl: ttl}
}

type redisSession struct {
	State     json.RawMessage `json:"state"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (r *RedisSessionRepo) Load(ctx context.Context, sessionID string) (*SessionRecord, error) {
	raw, err := r.client.Get(ctx, redisSessionPrefix+sessionID).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %q: %w", sessionID, err)
	}

	var v redisSession
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode session %q: %w", sessionID, err)
	}
	return &SessionRecord{SessionID: sessionID, State: v.State, UpdatedAt: v.UpdatedAt}, nil
}

func (r *RedisSessionRepo) Save(ctx context.Context, rec *SessionRecord) error {
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	raw, err := json.Marshal(redisSession{State: rec.State, UpdatedAt: rec.UpdatedAt})
	if err != nil {
		return fmt.Errorf("encode session %q: %w", rec.SessionID, err)
	}
	if err := r.client.Set(ctx, redisSessionPrefix+rec.SessionID, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session %q: %w", rec.SessionID, err)
	}
	return nil
}
