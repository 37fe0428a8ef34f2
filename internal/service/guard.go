package service

import (
	"context"
	"sync"
	"time"
)

// ReconnectGuard tracks which sessions have a reconnect task outstanding.
// TryAcquire succeeds for at most one caller per session until Release or
// until the hold expires.
type ReconnectGuard interface {
	TryAcquire(ctx context.Context, sessionID string) (bool, error)
	Release(ctx context.Context, sessionID string) error
	InFlight(ctx context.Context, sessionID string) (bool, error)
}

// MemoryGuard is a single-process ReconnectGuard.
type MemoryGuard struct {
	mu   sync.Mutex
	ttl  time.Duration
	held map[string]time.Time
	now  func() time.Time
}

func NewMemoryGuard(ttl time.Duration) *MemoryGuard {
	return &MemoryGuard{
		ttl:  ttl,
		held: make(map[string]time.Time),
		now:  time.Now,
	}
}

func (g *MemoryGuard) TryAcquire(_ context.Context, sessionID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if expires, ok := g.held[sessionID]; ok && now.Before(expires) {
		return false, nil
	}

	g.held[sessionID] = now.Add(g.ttl)
	return true, nil
}

func (g *MemoryGuard) Release(_ context.Context, sessionID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.held, sessionID)
	return nil
}

func (g *MemoryGuard) InFlight(_ context.Context, sessionID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	expires, ok := g.held[sessionID]
	return ok && g.now().Before(expires), nil
}

type reconnectLocker interface {
	AcquireReconnectLock(ctx context.Context, sessionID string, ttl time.Duration) (bool, error)
	ReleaseReconnectLock(ctx context.Context, sessionID string) error
	IsReconnecting(ctx context.Context, sessionID string) (bool, error)
}

// ValkeyGuard shares the in-flight flag between bridge replicas.
type ValkeyGuard struct {
	client reconnectLocker
	ttl    time.Duration
}

func NewValkeyGuard(client reconnectLocker, ttl time.Duration) *ValkeyGuard {
	return &ValkeyGuard{client: client, ttl: ttl}
}

func (g *ValkeyGuard) TryAcquire(ctx context.Context, sessionID string) (bool, error) {
	return g.client.AcquireReconnectLock(ctx, sessionID, g.ttl)
}

func (g *ValkeyGuard) Release(ctx context.Context, sessionID string) error {
	return g.client.ReleaseReconnectLock(ctx, sessionID)
}

func (g *ValkeyGuard) InFlight(ctx context.Context, sessionID string) (bool, error) {
	return g.client.IsReconnecting(ctx, sessionID)
}
