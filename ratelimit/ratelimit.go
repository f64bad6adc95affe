// Package ratelimit gates side-effecting actions behind fixed per-action
// cooldowns. Acquisition is atomic (SET NX EX), so two concurrent requests
// under the same key cannot both pass.
package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type Action string

const (
	ActionAppeal   Action = "appeal"
	ActionRoleSync Action = "role_sync"
	ActionVote     Action = "vote"
)

// Cooldown durations are fixed per action kind
var cooldowns = map[Action]time.Duration{
	ActionAppeal:   30 * time.Minute,
	ActionRoleSync: 10 * time.Minute,
	ActionVote:     8 * time.Hour,
}

var ErrUnknownAction = errors.New("unknown ratelimit action")

// Backend is the minimal keyed-TTL surface the limiter needs. Tests use an
// in-memory fake; production uses redis.
type Backend interface {
	// TryAcquire atomically claims key for ttl, reporting whether the
	// claim succeeded
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Remaining reports how long a held key has left
	Remaining(ctx context.Context, key string) (time.Duration, error)
}

type RedisBackend struct {
	Redis *redis.Client
}

func (b RedisBackend) TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return b.Redis.SetNX(ctx, key, "1", ttl).Result()
}

func (b RedisBackend) Remaining(ctx context.Context, key string) (time.Duration, error) {
	return b.Redis.TTL(ctx, key).Result()
}

type Limiter struct {
	Backend Backend
}

func New(r *redis.Client) *Limiter {
	return &Limiter{Backend: RedisBackend{Redis: r}}
}

// Key builds the ratelimit key for an action and its subject (usually a
// user ID, optionally suffixed with a target ID for per-target actions)
func Key(action Action, subject string) string {
	return "rl:" + string(action) + ":" + subject
}

// TryAcquire claims the cooldown for (action, subject). On refusal the
// remaining cooldown is returned so callers can tell the user when to
// retry.
func (l *Limiter) TryAcquire(ctx context.Context, action Action, subject string) (time.Duration, bool, error) {
	ttl, ok := cooldowns[action]

	if !ok {
		return 0, false, ErrUnknownAction
	}

	acquired, err := l.Backend.TryAcquire(ctx, Key(action, subject), ttl)

	if err != nil {
		return 0, false, err
	}

	if acquired {
		return 0, true, nil
	}

	remaining, err := l.Backend.Remaining(ctx, Key(action, subject))

	if err != nil {
		return 0, false, err
	}

	return remaining, false, nil
}

// Cooldown exposes the fixed duration for an action
func Cooldown(action Action) time.Duration {
	return cooldowns[action]
}
