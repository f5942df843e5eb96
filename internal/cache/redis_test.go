package cache

import (
	"context"
	"testing"

	"github.com/radiy-net/radiy-client/pkg/config"
)

func TestHashKeyIsStable(t *testing.T) {
	a := HashKey("/posts", "token-a")
	b := HashKey("/posts", "token-a")
	if a != b {
		t.Errorf("HashKey not stable: %s != %s", a, b)
	}
	if len(a) != 32 {
		t.Errorf("expected 32 hex chars, got %d", len(a))
	}
}

func TestHashKeySeparatesUsers(t *testing.T) {
	// Two users fetching the same path must never share an entry.
	a := HashKey("/posts", "token-a")
	b := HashKey("/posts", "token-b")
	if a == b {
		t.Errorf("keys for different tokens collide: %s", a)
	}
}

func TestHashKeyPartsAreDelimited(t *testing.T) {
	if HashKey("ab", "c") == HashKey("a", "bc") {
		t.Error("concatenation ambiguity in HashKey")
	}
}

func TestNamespaceKey(t *testing.T) {
	c := &Cache{}
	if got := c.NamespaceKey("abc"); got != "radiy:abc" {
		t.Errorf("NamespaceKey(abc) = %s", got)
	}
}

func TestDisabledCacheIsNil(t *testing.T) {
	c, err := New(&config.CacheConfig{Enabled: false})
	if err != nil {
		t.Fatalf("New with disabled cache: %v", err)
	}
	if c != nil {
		t.Fatal("expected nil cache when disabled")
	}
}

func TestNilCacheNoOps(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	if _, err := c.Get(ctx, "k"); err != ErrCacheDisabled {
		t.Errorf("Get on nil cache: %v", err)
	}
	if err := c.Set(ctx, "k", "v"); err != ErrCacheDisabled {
		t.Errorf("Set on nil cache: %v", err)
	}
	if err := c.Delete(ctx, "k"); err != ErrCacheDisabled {
		t.Errorf("Delete on nil cache: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close on nil cache: %v", err)
	}
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New(&config.CacheConfig{Enabled: true, URL: "not-a-url"})
	if err == nil {
		t.Fatal("expected error for malformed Redis URL")
	}
}
