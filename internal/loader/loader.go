// Package loader discovers raw document fragments on disk, runs them
// through the processor, and memoizes the resulting aggregate per country
// for a bounded time window.
package loader

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/qivook/qivook-engine/internal/domain"
	"github.com/qivook/qivook-engine/internal/logging"
	"github.com/qivook/qivook-engine/internal/processor"
	"github.com/qivook/qivook-engine/internal/telemetry"
)

// DefaultTTL bounds how long a cached aggregate is served before a reload.
const DefaultTTL = 5 * time.Minute

// fragmentPattern names the on-disk JSON fragments scraped per country.
const fragmentPattern = "structured_data_*.json"

// Clock supplies the current time. Injected so tests can drive TTL expiry.
type Clock func() time.Time

type cacheEntry struct {
	data     *domain.CountryData
	loadedAt time.Time
}

// Loader loads and caches country aggregates. The cache holds one slot
// per country with last-write-wins replacement; concurrent callers racing
// an expired slot may duplicate a load, which is wasteful but safe since
// loads are idempotent.
type Loader struct {
	dataDir   string
	proc      *processor.Processor
	logger    logging.Logger
	telemetry *telemetry.Provider
	clock     Clock
	ttl       time.Duration

	mu    sync.Mutex
	cache map[domain.CountryCode]cacheEntry
}

// Option configures a Loader.
type Option func(*Loader)

// WithClock overrides the loader's time source.
func WithClock(clock Clock) Option {
	return func(l *Loader) { l.clock = clock }
}

// WithTTL overrides the cache TTL.
func WithTTL(ttl time.Duration) Option {
	return func(l *Loader) { l.ttl = ttl }
}

// WithTelemetry attaches a telemetry provider.
func WithTelemetry(tp *telemetry.Provider) Option {
	return func(l *Loader) { l.telemetry = tp }
}

// New creates a loader reading fragments from dataDir.
func New(dataDir string, proc *processor.Processor, logger logging.Logger, opts ...Option) *Loader {
	l := &Loader{
		dataDir: dataDir,
		proc:    proc,
		logger:  logger,
		clock:   time.Now,
		ttl:     DefaultTTL,
		cache:   make(map[domain.CountryCode]cacheEntry),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load discovers and processes all fragments for a country. Any failure
// yields a well-formed empty aggregate rather than an error, so callers
// never need nil-handling. Individual fragment failures drop only that
// fragment.
func (l *Loader) Load(ctx context.Context, country domain.CountryCode) *domain.CountryData {
	paths, err := filepath.Glob(filepath.Join(l.dataDir, strings.ToLower(string(country)), fragmentPattern))
	if err != nil {
		l.logger.Error("fragment discovery failed",
			logging.String("country", string(country)),
			logging.Error(err))
		return l.proc.Process(ctx, country, nil)
	}

	docs := l.readFragments(ctx, country, paths)
	l.logger.Info("country fragments loaded",
		logging.String("country", string(country)),
		logging.Int("discovered", len(paths)),
		logging.Int("loaded", len(docs)))

	return l.proc.Process(ctx, country, docs)
}

// readFragments loads every fragment concurrently, preserving discovery
// order, and drops fragments that fail to read or parse.
func (l *Loader) readFragments(ctx context.Context, country domain.CountryCode, paths []string) []domain.RawDocument {
	results := make([]*domain.RawDocument, len(paths))

	g, _ := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			doc, err := readFragment(path)
			if err != nil {
				l.logger.Warn("fragment dropped",
					logging.String("country", string(country)),
					logging.String("path", path),
					logging.Error(err))
				if l.telemetry != nil {
					l.telemetry.Metrics.DocumentsDropped.WithLabelValues(string(country)).Inc()
				}
				return nil // per-fragment failures never abort the batch
			}
			results[i] = doc
			return nil
		})
	}
	_ = g.Wait() // workers always return nil

	docs := make([]domain.RawDocument, 0, len(results))
	for _, doc := range results {
		if doc != nil {
			docs = append(docs, *doc)
		}
	}
	return docs
}

func readFragment(path string) (*domain.RawDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc domain.RawDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Get returns the cached aggregate when it is younger than the TTL,
// otherwise reloads and replaces the slot. forceReload bypasses the TTL
// check.
func (l *Loader) Get(ctx context.Context, country domain.CountryCode, forceReload bool) *domain.CountryData {
	now := l.clock()

	l.mu.Lock()
	entry, ok := l.cache[country]
	l.mu.Unlock()

	if !forceReload && ok && now.Sub(entry.loadedAt) < l.ttl {
		if l.telemetry != nil {
			l.telemetry.Metrics.CacheHits.WithLabelValues(string(country)).Inc()
		}
		return entry.data
	}

	if l.telemetry != nil {
		l.telemetry.Metrics.CacheMisses.WithLabelValues(string(country)).Inc()
	}

	data := l.Load(ctx, country)

	l.mu.Lock()
	l.cache[country] = cacheEntry{data: data, loadedAt: now}
	l.mu.Unlock()

	return data
}
