package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	revokedTokenPrefix = "auth:revoked:"
	loginAttemptPrefix = "auth:login_attempts:"
)

// SessionRepository keeps short lived authentication state in Redis: the
// denylist of logged out token ids and failed login counters. With a nil
// client every write is a no-op and every read reports a clean state.
type SessionRepository struct {
	client *redis.Client
}

// NewSessionRepository constructs a session repository.
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

// Enabled reports whether a backing store is configured.
func (r *SessionRepository) Enabled() bool {
	return r.client != nil
}

// Revoke denylists a token id until it would have expired anyway.
func (r *SessionRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if r.client == nil || ttl <= 0 {
		return nil
	}
	key := revokedTokenPrefix + tokenID
	if err := r.client.Set(ctx, key, 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// IsRevoked reports whether the token id was denylisted.
func (r *SessionRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if r.client == nil {
		return false, nil
	}
	key := revokedTokenPrefix + tokenID
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", key, err)
	}
	return n > 0, nil
}

// FailedLogins returns the failed login count inside the current window.
func (r *SessionRepository) FailedLogins(ctx context.Context, email string) (int64, error) {
	if r.client == nil {
		return 0, nil
	}
	key := loginAttemptKey(email)
	n, err := r.client.Get(ctx, key).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get %s: %w", key, err)
	}
	return n, nil
}

// RegisterFailedLogin increments the counter. The window starts at the first failure.
func (r *SessionRepository) RegisterFailedLogin(ctx context.Context, email string, window time.Duration) (int64, error) {
	if r.client == nil {
		return 0, nil
	}
	key := loginAttemptKey(email)
	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", key, err)
	}
	return incr.Val(), nil
}

// ResetFailedLogins clears the counter after a successful login.
func (r *SessionRepository) ResetFailedLogins(ctx context.Context, email string) error {
	if r.client == nil {
		return nil
	}
	key := loginAttemptKey(email)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	return nil
}

// Ping checks connectivity for readiness probes.
func (r *SessionRepository) Ping(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.Ping(ctx).Err()
}

func loginAttemptKey(email string) string {
	return loginAttemptPrefix + strings.ToLower(strings.TrimSpace(email))
}
