package gate

import (
	"context"
	"testing"
	"time"
)

// countingResolver records how many times Resolve was called.
type countingResolver struct {
	inner *StaticResolver
	calls int
}

func (c *countingResolver) Resolve(ctx context.Context, userID uint) (Role, error) {
	c.calls++
	return c.inner.Resolve(ctx, userID)
}

func TestCachedResolver_CachesWithinTTL(t *testing.T) {
	static := NewStaticResolver()
	static.Set(1, RoleSales)
	counting := &countingResolver{inner: static}
	cached := NewCachedResolver(counting, time.Minute)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		role, err := cached.Resolve(ctx, 1)
		if err != nil || role != RoleSales {
			t.Fatalf("Resolve() = %q, %v", role, err)
		}
	}
	if counting.calls != 1 {
		t.Errorf("inner resolver called %d times, want 1", counting.calls)
	}
}

func TestCachedResolver_Invalidate(t *testing.T) {
	static := NewStaticResolver()
	static.Set(1, RoleSales)
	counting := &countingResolver{inner: static}
	cached := NewCachedResolver(counting, time.Minute)

	ctx := context.Background()
	if _, err := cached.Resolve(ctx, 1); err != nil {
		t.Fatal(err)
	}

	// Role change must be visible after invalidation.
	static.Set(1, RoleManager)
	cached.Invalidate(1)

	role, err := cached.Resolve(ctx, 1)
	if err != nil || role != RoleManager {
		t.Fatalf("Resolve() after Invalidate = %q, %v, want Manager", role, err)
	}
	if counting.calls != 2 {
		t.Errorf("inner resolver called %d times, want 2", counting.calls)
	}
}

func TestCachedResolver_ErrorNotCached(t *testing.T) {
	static := NewStaticResolver()
	counting := &countingResolver{inner: static}
	cached := NewCachedResolver(counting, time.Minute)

	ctx := context.Background()
	if _, err := cached.Resolve(ctx, 99); err != ErrUnknownRole {
		t.Fatalf("Resolve() err = %v, want ErrUnknownRole", err)
	}

	static.Set(99, RoleAccountant)
	role, err := cached.Resolve(ctx, 99)
	if err != nil || role != RoleAccountant {
		t.Fatalf("Resolve() = %q, %v, want Accountant", role, err)
	}
}
