package gate

import (
	"context"
	"sync"
	"time"
)

// Resolver maps an authenticated user id to their role.
type Resolver interface {
	Resolve(ctx context.Context, userID uint) (Role, error)
}

// StaticResolver is an in-memory resolver for tests and static setups.
type StaticResolver struct {
	roles map[uint]Role
}

// NewStaticResolver creates a resolver with predefined user-role mappings.
func NewStaticResolver() *StaticResolver {
	return &StaticResolver{roles: make(map[uint]Role)}
}

// Set assigns a role to a user.
func (r *StaticResolver) Set(userID uint, role Role) {
	r.roles[userID] = role
}

// Resolve returns the role for the given user, or ErrUnknownRole.
func (r *StaticResolver) Resolve(_ context.Context, userID uint) (Role, error) {
	if role, ok := r.roles[userID]; ok {
		return role, nil
	}
	return "", ErrUnknownRole
}

// CachedResolver wraps a Resolver with TTL-based caching so role
// lookups do not hit the database on every request.
type CachedResolver struct {
	inner Resolver
	ttl   time.Duration

	mu    sync.RWMutex
	cache map[uint]cacheEntry
}

type cacheEntry struct {
	role      Role
	expiresAt time.Time
}

// NewCachedResolver wraps inner with a cache. ttl controls how long a
// role assignment is trusted before re-fetching.
func NewCachedResolver(inner Resolver, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		inner: inner,
		ttl:   ttl,
		cache: make(map[uint]cacheEntry),
	}
}

// Resolve returns the cached role when fresh, otherwise asks the inner
// resolver and caches the result.
func (r *CachedResolver) Resolve(ctx context.Context, userID uint) (Role, error) {
	r.mu.RLock()
	entry, ok := r.cache[userID]
	r.mu.RUnlock()

	if ok && time.Now().Before(entry.expiresAt) {
		return entry.role, nil
	}

	role, err := r.inner.Resolve(ctx, userID)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	r.cache[userID] = cacheEntry{role: role, expiresAt: time.Now().Add(r.ttl)}
	r.mu.Unlock()

	return role, nil
}

// Invalidate drops a single user from the cache. Call after changing
// that user's role.
func (r *CachedResolver) Invalidate(userID uint) {
	r.mu.Lock()
	delete(r.cache, userID)
	r.mu.Unlock()
}
