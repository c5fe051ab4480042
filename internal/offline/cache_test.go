//nolint:testpackage // Testing internal cache paths requires same package access
package offline

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/qivook/qivook-engine/internal/logging"
)

func newTestCache(t *testing.T) *ResponseCache {
	t.Helper()
	return NewResponseCache(t.TempDir(), logging.NewNop())
}

func TestStoreAndLookup(t *testing.T) {
	cache := newTestCache(t)

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	err := cache.Store(DynamicCacheName, http.MethodGet, "/api/prices/RW", http.StatusOK, headers, []byte(`{"fuel":"data"}`))
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	resp, err := cache.Lookup(DynamicCacheName, http.MethodGet, "/api/prices/RW")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.Status, http.StatusOK)
	}
	if got := string(resp.Body); got != `{"fuel":"data"}` {
		t.Errorf("body = %q", got)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Errorf("Content-Type = %q", resp.Headers["Content-Type"])
	}
}

func TestLookup_Miss(t *testing.T) {
	cache := newTestCache(t)

	_, err := cache.Lookup(DynamicCacheName, http.MethodGet, "/api/prices/RW")
	if !errors.Is(err, ErrNotCached) {
		t.Fatalf("Lookup() error = %v, want ErrNotCached", err)
	}
}

func TestCacheKey_QueryOrderIrrelevant(t *testing.T) {
	a := cacheKey(http.MethodGet, "/api/suppliers?category=food&q=lab")
	b := cacheKey(http.MethodGet, "/api/suppliers?q=lab&category=food")
	if a != b {
		t.Errorf("cache keys differ for reordered query: %q vs %q", a, b)
	}

	c := cacheKey(http.MethodGet, "/api/suppliers?q=other")
	if a == c {
		t.Errorf("distinct queries share cache key %q", a)
	}
}

func TestMatch_StaticBeforeDynamic(t *testing.T) {
	cache := newTestCache(t)

	if err := cache.Store(DynamicCacheName, http.MethodGet, "/index.html", http.StatusOK, http.Header{}, []byte("dynamic")); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := cache.Store(StaticCacheName, http.MethodGet, "/index.html", http.StatusOK, http.Header{}, []byte("static")); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	resp, cacheName, err := cache.Match(http.MethodGet, "/index.html")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if cacheName != StaticCacheName {
		t.Errorf("cache = %q, want %q", cacheName, StaticCacheName)
	}
	if string(resp.Body) != "static" {
		t.Errorf("body = %q, want static copy", resp.Body)
	}
}

func TestActivate_RemovesStaleCaches(t *testing.T) {
	root := t.TempDir()
	cache := NewResponseCache(root, logging.NewNop())

	for _, dir := range []string{StaticCacheName, DynamicCacheName, "qivook-static-v0", "qivook-v1"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o750); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	removed, err := cache.Activate()
	if err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if len(removed) != 2 {
		t.Fatalf("removed %d caches, want 2: %v", len(removed), removed)
	}

	for _, dir := range []string{StaticCacheName, DynamicCacheName} {
		if _, statErr := os.Stat(filepath.Join(root, dir)); statErr != nil {
			t.Errorf("current cache %s removed: %v", dir, statErr)
		}
	}
	if _, statErr := os.Stat(filepath.Join(root, "qivook-static-v0")); !os.IsNotExist(statErr) {
		t.Errorf("stale cache qivook-static-v0 still present")
	}
}
