package offline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/qivook/qivook-engine/internal/database"
	"github.com/qivook/qivook-engine/internal/logging"
	"github.com/qivook/qivook-engine/internal/telemetry"
)

// shellAssets is the application shell warmed into the static cache at
// install time. "/" serves the same document as /index.html.
var shellAssets = []string{
	"/",
	"/index.html",
	"/manifest.json",
	"/favicon.ico",
	"/static/js/bundle.js",
	"/static/css/main.css",
}

// apiCachePatterns selects API responses worth keeping for offline use.
var apiCachePatterns = []*regexp.Regexp{
	regexp.MustCompile(`/api/prices`),
	regexp.MustCompile(`/api/suppliers`),
	regexp.MustCompile(`/api/demand`),
	regexp.MustCompile(`/api/logistics`),
}

// Write endpoints whose failed submissions are captured into the offline
// queue for background sync.
var supplierReviewPath = regexp.MustCompile(`^/api/suppliers/[^/]+/reviews$`)

const priceReportPath = "/api/prices/reports"

// Request outcome labels for gateway metrics.
const (
	outcomeCache    = "cache"
	outcomeUpstream = "upstream"
	outcomeFallback = "fallback"
	outcomeOffline  = "offline"
	outcomeQueued   = "queued"
)

// Gateway is the offline-first HTTP handler. GET requests are served
// cache-first with an offline fallback chain; failed writes to report and
// review endpoints are captured into the write queue.
type Gateway struct {
	upstream  *url.URL
	client    *http.Client
	cache     *ResponseCache
	queue     *database.QueueRepository
	shellDir  string
	logger    logging.Logger
	telemetry *telemetry.Provider
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithClient sets the HTTP client used for upstream requests.
func WithClient(client *http.Client) Option {
	return func(g *Gateway) { g.client = client }
}

// WithShellDir sets the directory holding the application shell assets.
func WithShellDir(dir string) Option {
	return func(g *Gateway) { g.shellDir = dir }
}

// WithTelemetry enables gateway metrics.
func WithTelemetry(provider *telemetry.Provider) Option {
	return func(g *Gateway) { g.telemetry = provider }
}

// New creates an offline gateway in front of upstreamURL.
func New(
	upstreamURL string,
	cache *ResponseCache,
	queue *database.QueueRepository,
	logger logging.Logger,
	opts ...Option,
) (*Gateway, error) {
	upstream, err := url.Parse(upstreamURL)
	if err != nil {
		return nil, fmt.Errorf("parse upstream URL: %w", err)
	}

	g := &Gateway{
		upstream: upstream,
		client:   &http.Client{Timeout: 30 * time.Second},
		cache:    cache,
		queue:    queue,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Install warms the static cache from the shell directory. Missing assets
// are logged and skipped; install never fails startup.
func (g *Gateway) Install(ctx context.Context) {
	if g.shellDir == "" {
		g.logger.Debug("no shell directory configured, skipping install")
		return
	}

	for _, asset := range shellAssets {
		if ctx.Err() != nil {
			return
		}

		rel := strings.TrimPrefix(asset, "/")
		if rel == "" {
			rel = "index.html"
		}

		body, err := os.ReadFile(filepath.Join(g.shellDir, filepath.FromSlash(rel)))
		if err != nil {
			g.logger.Warn("shell asset unavailable",
				logging.String("asset", asset),
				logging.Error(err))
			continue
		}

		headers := http.Header{}
		headers.Set("Content-Type", contentTypeFor(rel))
		if err := g.cache.Store(StaticCacheName, http.MethodGet, asset, http.StatusOK, headers, body); err != nil {
			g.logger.Warn("failed to cache shell asset",
				logging.String("asset", asset),
				logging.Error(err))
			continue
		}
	}
	g.logger.Info("static shell cached", logging.Int("assets", len(shellAssets)))
}

// Activate removes cache directories from retired versions.
func (g *Gateway) Activate() {
	removed, err := g.cache.Activate()
	if err != nil {
		g.logger.Warn("cache activation incomplete", logging.Error(err))
	}
	if len(removed) > 0 {
		g.logger.Info("retired old caches", logging.Int("count", len(removed)))
	}
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "text/html; charset=utf-8"
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		g.passThrough(w, r)
		return
	}

	uri := r.URL.RequestURI()

	if cached, cacheName, err := g.cache.Match(http.MethodGet, uri); err == nil {
		g.logger.Debug("serving from cache",
			logging.String("url", uri),
			logging.String("cache", cacheName))
		g.serveCached(w, cached)
		g.countRequest(outcomeCache)
		return
	}

	resp, err := g.fetchUpstream(r, nil)
	if err != nil {
		g.logger.Info("upstream request failed",
			logging.String("url", uri),
			logging.Error(err))
		g.serveFallback(w, r)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		g.serveFallback(w, r)
		return
	}

	// Keep successful API responses for offline use. A failed store only
	// costs the cache entry, never the response.
	if resp.StatusCode == http.StatusOK && isAPIRequest(r.URL.Path) {
		if storeErr := g.cache.Store(DynamicCacheName, http.MethodGet, uri, resp.StatusCode, resp.Header, body); storeErr != nil {
			g.logger.Warn("failed to cache API response",
				logging.String("url", uri),
				logging.Error(storeErr))
		}
	}

	copyHeader(w.Header(), resp.Header)
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(body)
	g.countRequest(outcomeUpstream)
}

// passThrough forwards a non-GET request to the upstream. When the upstream
// is unreachable, writes to the report and review endpoints are captured
// into the offline queue for background sync.
func (g *Gateway) passThrough(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	resp, err := g.fetchUpstream(r, payload)
	if err != nil {
		queue, ok := queueFor(r)
		if !ok {
			g.writeOfflineResponse(w)
			return
		}

		item, enqueueErr := g.queue.Enqueue(r.Context(), queue, r.URL.Path, payload)
		if enqueueErr != nil {
			g.logger.Error("failed to queue offline write",
				logging.String("queue", queue),
				logging.Error(enqueueErr))
			g.writeOfflineResponse(w)
			return
		}

		g.logger.Info("write queued for background sync",
			logging.String("queue", queue),
			logging.String("id", item.ID),
			logging.String("path", r.URL.Path))
		g.recordQueueDepth(r.Context(), queue)
		g.countRequest(outcomeQueued)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"queued": true,
			"queue":  queue,
			"id":     item.ID,
		})
		return
	}
	defer resp.Body.Close()

	copyHeader(w.Header(), resp.Header)
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
	g.countRequest(outcomeUpstream)
}

// serveFallback handles a GET whose upstream request failed.
// Navigations fall back to the cached shell, cacheable API paths to their
// cached response, and everything else to a 503 offline envelope.
func (g *Gateway) serveFallback(w http.ResponseWriter, r *http.Request) {
	if isNavigation(r) {
		if cached, _, err := g.cache.Match(http.MethodGet, "/index.html"); err == nil {
			g.serveCached(w, cached)
			g.countRequest(outcomeFallback)
			return
		}
	}

	if isAPIRequest(r.URL.Path) {
		if cached, _, err := g.cache.Match(http.MethodGet, r.URL.RequestURI()); err == nil {
			g.serveCached(w, cached)
			g.countRequest(outcomeFallback)
			return
		}
	}

	g.writeOfflineResponse(w)
}

func (g *Gateway) writeOfflineResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusServiceUnavailable)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":     "Offline",
		"message":   "This content is not available offline",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	g.countRequest(outcomeOffline)
}

func (g *Gateway) serveCached(w http.ResponseWriter, cached *CachedResponse) {
	for name, value := range cached.Headers {
		w.Header().Set(name, value)
	}
	w.WriteHeader(cached.Status)
	_, _ = w.Write(cached.Body)
}

func (g *Gateway) fetchUpstream(r *http.Request, payload []byte) (*http.Response, error) {
	target := *g.upstream
	target.Path = r.URL.Path
	target.RawQuery = r.URL.RawQuery

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	copyHeader(req.Header, r.Header)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	return resp, nil
}

func (g *Gateway) countRequest(outcome string) {
	if g.telemetry == nil {
		return
	}
	g.telemetry.Metrics.GatewayRequests.WithLabelValues(outcome).Inc()
}

func (g *Gateway) recordQueueDepth(ctx context.Context, queue string) {
	if g.telemetry == nil {
		return
	}
	depth, err := g.queue.Depth(ctx, queue)
	if err != nil {
		return
	}
	g.telemetry.Metrics.QueueDepth.WithLabelValues(queue).Set(float64(depth))
}

// queueFor maps a write request to its offline queue, if it has one.
func queueFor(r *http.Request) (string, bool) {
	if r.Method != http.MethodPost {
		return "", false
	}
	if r.URL.Path == priceReportPath {
		return database.QueuePriceReports, true
	}
	if supplierReviewPath.MatchString(r.URL.Path) {
		return database.QueueSupplierReviews, true
	}
	return "", false
}

func isAPIRequest(path string) bool {
	for _, pattern := range apiCachePatterns {
		if pattern.MatchString(path) {
			return true
		}
	}
	return false
}

// isNavigation reports whether a request is a page navigation.
func isNavigation(r *http.Request) bool {
	if r.Header.Get("Sec-Fetch-Dest") == "document" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func copyHeader(dst, src http.Header) {
	for name, values := range src {
		for _, value := range values {
			dst.Add(name, value)
		}
	}
}
