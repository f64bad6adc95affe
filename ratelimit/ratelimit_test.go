package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"
)

type memoryBackend struct {
	now  time.Time
	held map[string]time.Time
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{
		now:  time.Now(),
		held: map[string]time.Time{},
	}
}

func (b *memoryBackend) TryAcquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	if expiry, ok := b.held[key]; ok && expiry.After(b.now) {
		return false, nil
	}

	b.held[key] = b.now.Add(ttl)

	return true, nil
}

func (b *memoryBackend) Remaining(_ context.Context, key string) (time.Duration, error) {
	expiry, ok := b.held[key]

	if !ok || !expiry.After(b.now) {
		return 0, nil
	}

	return expiry.Sub(b.now), nil
}

func TestTryAcquire(t *testing.T) {
	l := &Limiter{Backend: newMemoryBackend()}

	_, ok, err := l.TryAcquire(context.Background(), ActionAppeal, "123")

	if err != nil {
		t.Fatal(err)
	}

	if !ok {
		t.Fatal("first acquire should succeed")
	}

	wait, ok, err := l.TryAcquire(context.Background(), ActionAppeal, "123")

	if err != nil {
		t.Fatal(err)
	}

	if ok {
		t.Fatal("second acquire within the cooldown should be refused")
	}

	if wait != 30*time.Minute {
		t.Errorf("expected the full appeal cooldown remaining, got %s", wait)
	}
}

func TestTryAcquireSubjectsIndependent(t *testing.T) {
	l := &Limiter{Backend: newMemoryBackend()}

	if _, ok, _ := l.TryAcquire(context.Background(), ActionVote, "123:456"); !ok {
		t.Fatal("first subject should acquire")
	}

	if _, ok, _ := l.TryAcquire(context.Background(), ActionVote, "123:789"); !ok {
		t.Fatal("a different subject must not share the cooldown")
	}
}

func TestTryAcquireAfterExpiry(t *testing.T) {
	b := newMemoryBackend()
	l := &Limiter{Backend: b}

	if _, ok, _ := l.TryAcquire(context.Background(), ActionRoleSync, "123"); !ok {
		t.Fatal("first acquire should succeed")
	}

	b.now = b.now.Add(10*time.Minute + time.Second)

	if _, ok, _ := l.TryAcquire(context.Background(), ActionRoleSync, "123"); !ok {
		t.Fatal("acquire after expiry should succeed")
	}
}

func TestUnknownAction(t *testing.T) {
	l := &Limiter{Backend: newMemoryBackend()}

	_, _, err := l.TryAcquire(context.Background(), Action("bogus"), "123")

	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestKey(t *testing.T) {
	if Key(ActionAppeal, "123") != "rl:appeal:123" {
		t.Errorf("unexpected key %q", Key(ActionAppeal, "123"))
	}
}

func TestCooldowns(t *testing.T) {
	if Cooldown(ActionAppeal) != 30*time.Minute {
		t.Error("appeal cooldown should be 30m")
	}

	if Cooldown(ActionRoleSync) != 10*time.Minute {
		t.Error("role sync cooldown should be 10m")
	}

	if Cooldown(ActionVote) != 8*time.Hour {
		t.Error("vote cooldown should be 8h")
	}
}
