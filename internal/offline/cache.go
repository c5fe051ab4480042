// Package offline implements the offline-first gateway: a cache-first HTTP
// handler in front of the upstream app server, a file-backed response cache,
// a sqlite write queue for submissions made while offline, and the background
// sync drains that replay them.
package offline

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/qivook/qivook-engine/internal/logging"
)

// Versioned cache names. Activate removes any cache directory whose name
// is not one of these, so bumping a version retires the old contents.
const (
	StaticCacheName  = "qivook-static-v1"
	DynamicCacheName = "qivook-dynamic-v1"
)

// ErrNotCached is returned when no cached response exists for a request.
var ErrNotCached = errors.New("response not cached")

const hashPrefixLength = 12

// cachedMeta is the JSON metadata stored alongside a cached response body.
type cachedMeta struct {
	Method   string            `json:"method"`
	URL      string            `json:"url"`
	Status   int               `json:"status"`
	Headers  map[string]string `json:"headers"`
	StoredAt time.Time         `json:"stored_at"`
}

// CachedResponse is a response replayed from the cache.
type CachedResponse struct {
	Status  int
	Headers map[string]string
	Body    []byte
}

// ResponseCache stores HTTP responses on disk under versioned cache
// directories, keyed by method and normalized URL.
type ResponseCache struct {
	root   string
	logger logging.Logger
	mu     sync.RWMutex
}

// NewResponseCache creates a response cache rooted at root.
func NewResponseCache(root string, logger logging.Logger) *ResponseCache {
	return &ResponseCache{root: root, logger: logger}
}

// cacheKey builds a deterministic key for a request.
// Format: METHOD_sha256(normalized_url)[:12]
func cacheKey(method, rawURL string) string {
	hash := sha256.Sum256([]byte(normalizeURL(rawURL)))
	return method + "_" + hex.EncodeToString(hash[:])[:hashPrefixLength]
}

// normalizeURL lowercases the host and sorts query parameters so that
// equivalent requests share one cache entry.
func normalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	parsed.Host = strings.ToLower(parsed.Host)

	query := parsed.Query()
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sorted strings.Builder
	for i, k := range keys {
		if i > 0 {
			sorted.WriteByte('&')
		}
		sorted.WriteString(url.QueryEscape(k))
		sorted.WriteByte('=')
		sorted.WriteString(url.QueryEscape(query.Get(k)))
	}

	parsed.RawQuery = sorted.String()
	return parsed.String()
}

// Store writes a response into the named cache. Body and metadata are
// separate files; a missing body is treated as a miss on lookup.
func (c *ResponseCache) Store(cacheName, method, rawURL string, status int, headers http.Header, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	dir := filepath.Join(c.root, cacheName)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	key := cacheKey(method, rawURL)

	flat := make(map[string]string, len(headers))
	for name := range headers {
		flat[name] = headers.Get(name)
	}
	meta := cachedMeta{
		Method:   method,
		URL:      rawURL,
		Status:   status,
		Headers:  flat,
		StoredAt: time.Now().UTC(),
	}

	if err := os.WriteFile(filepath.Join(dir, key+".body"), body, 0o640); err != nil {
		return fmt.Errorf("write cache body: %w", err)
	}

	raw, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal cache metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, key+".json"), raw, 0o640); err != nil {
		return fmt.Errorf("write cache metadata: %w", err)
	}
	return nil
}

// Lookup loads a cached response from the named cache.
// Returns ErrNotCached when no entry exists.
func (c *ResponseCache) Lookup(cacheName, method, rawURL string) (*CachedResponse, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dir := filepath.Join(c.root, cacheName)
	key := cacheKey(method, rawURL)

	raw, err := os.ReadFile(filepath.Join(dir, key+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotCached
		}
		return nil, fmt.Errorf("read cache metadata: %w", err)
	}

	var meta cachedMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("parse cache metadata: %w", err)
	}

	body, err := os.ReadFile(filepath.Join(dir, key+".body"))
	if err != nil {
		if os.IsNotExist(err) {
			// Metadata without a body counts as a miss.
			return nil, ErrNotCached
		}
		return nil, fmt.Errorf("read cache body: %w", err)
	}

	return &CachedResponse{Status: meta.Status, Headers: meta.Headers, Body: body}, nil
}

// Match searches the static cache first, then the dynamic cache.
// Returns the response and the cache it was found in.
func (c *ResponseCache) Match(method, rawURL string) (*CachedResponse, string, error) {
	for _, name := range []string{StaticCacheName, DynamicCacheName} {
		resp, err := c.Lookup(name, method, rawURL)
		if err == nil {
			return resp, name, nil
		}
		if !errors.Is(err, ErrNotCached) {
			return nil, "", err
		}
	}
	return nil, "", ErrNotCached
}

// Activate removes cache directories left over from older versions.
// Returns the names of the removed caches.
func (c *ResponseCache) Activate() ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list cache root: %w", err)
	}

	var removed []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name == StaticCacheName || name == DynamicCacheName {
			continue
		}
		if err := os.RemoveAll(filepath.Join(c.root, name)); err != nil {
			return removed, fmt.Errorf("remove stale cache %s: %w", name, err)
		}
		c.logger.Info("removed stale cache", logging.String("cache", name))
		removed = append(removed, name)
	}
	return removed, nil
}
