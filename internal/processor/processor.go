// Package processor turns a batch of raw source documents into one
// CountryData aggregate: classification, extraction, supplier
// deduplication, and the completeness score.
package processor

import (
	"context"
	"math"
	"time"

	"github.com/qivook/qivook-engine/internal/classifier"
	"github.com/qivook/qivook-engine/internal/domain"
	"github.com/qivook/qivook-engine/internal/extract"
	"github.com/qivook/qivook-engine/internal/logging"
	"github.com/qivook/qivook-engine/internal/telemetry"
)

const dataSourceName = "logcluster.org"

// Clock supplies the current time. Injected so tests can pin timestamps.
type Clock func() time.Time

// Processor produces CountryData aggregates. It performs no I/O: documents
// arrive already loaded and the transform is pure apart from the clock.
type Processor struct {
	files     *classifier.FileClassifier
	logger    logging.Logger
	telemetry *telemetry.Provider
	clock     Clock
}

// Option configures a Processor.
type Option func(*Processor)

// WithClock overrides the processor's time source.
func WithClock(clock Clock) Option {
	return func(p *Processor) { p.clock = clock }
}

// WithTelemetry attaches a telemetry provider.
func WithTelemetry(tp *telemetry.Provider) Option {
	return func(p *Processor) { p.telemetry = tp }
}

// New creates a processor.
func New(logger logging.Logger, opts ...Option) *Processor {
	p := &Processor{
		files:  classifier.New(logger),
		logger: logger,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process builds the aggregate for one country from a document batch.
// Documents are evaluated against all four category predicates
// independently; extractor outputs are concatenated per category across
// the batch. Suppliers are deduplicated by (name, location); pricing is
// not deduplicated, so every source stays visible.
func (p *Processor) Process(ctx context.Context, country domain.CountryCode, docs []domain.RawDocument) *domain.CountryData {
	if p.telemetry != nil {
		_, span := p.telemetry.Tracer.Start(ctx, "processor.Process")
		defer span.End()
	}

	start := p.clock()
	now := start

	data := &domain.CountryData{
		Profile:        p.buildProfile(country, len(docs), now),
		Suppliers:      []domain.CountrySupplier{},
		Infrastructure: []domain.CountryInfrastructure{},
		Pricing:        []domain.CountryPricing{},
		Government:     []domain.GovernmentContact{},
		LastProcessed:  now,
	}

	for _, doc := range docs {
		if doc.IsEmpty() {
			continue
		}
		for _, cat := range p.files.Categories(doc) {
			switch cat {
			case classifier.CategorySupplier:
				data.Suppliers = append(data.Suppliers, extract.Suppliers(country, doc, now)...)
			case classifier.CategoryInfrastructure:
				data.Infrastructure = append(data.Infrastructure, extract.Infrastructure(country, doc, now)...)
			case classifier.CategoryPricing:
				data.Pricing = append(data.Pricing, extract.Pricing(country, doc, now)...)
			case classifier.CategoryGovernment:
				data.Government = append(data.Government, extract.Government(country, doc, now)...)
			}
		}
	}

	data.Suppliers = dedupeSuppliers(data.Suppliers)

	p.recordMetrics(country, len(docs), data, start)
	p.logger.Debug("country batch processed",
		logging.String("country", string(country)),
		logging.Int("documents", len(docs)),
		logging.Int("suppliers", len(data.Suppliers)),
		logging.Int("infrastructure", len(data.Infrastructure)),
		logging.Int("pricing", len(data.Pricing)),
		logging.Int("government", len(data.Government)),
	)

	return data
}

// buildProfile assembles the country profile from the static metadata
// table plus the computed completeness score.
func (p *Processor) buildProfile(country domain.CountryCode, documents int, now time.Time) domain.CountryProfile {
	info := infoFor(country)
	return domain.CountryProfile{
		Code:         country,
		Name:         info.name,
		Flag:         info.flag,
		Currency:     info.currency,
		Regions:      info.regions,
		LastUpdated:  now,
		DataSource:   dataSourceName,
		Completeness: completeness(country, documents),
		Description:  info.description,
		Population:   info.population,
		GDP:          info.gdp,
	}
}

// completeness is round(available / expected * 100). The value exceeds 100
// when more documents than expected are supplied; that is part of the
// contract rather than clamped away.
func completeness(country domain.CountryCode, documents int) int {
	expected := expectedDocuments[country]
	if expected == 0 {
		return 0
	}
	return int(math.Round(float64(documents) / float64(expected) * 100))
}

// dedupeSuppliers keeps the first occurrence of each (name, location)
// pair, preserving input order.
func dedupeSuppliers(suppliers []domain.CountrySupplier) []domain.CountrySupplier {
	seen := make(map[string]bool, len(suppliers))
	out := suppliers[:0]
	for _, s := range suppliers {
		key := s.Name + "\x00" + s.Location
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func (p *Processor) recordMetrics(country domain.CountryCode, documents int, data *domain.CountryData, start time.Time) {
	if p.telemetry == nil {
		return
	}
	m := p.telemetry.Metrics
	c := string(country)
	m.DocumentsProcessed.WithLabelValues(c).Add(float64(documents))
	m.EntitiesExtracted.WithLabelValues(c, "supplier").Add(float64(len(data.Suppliers)))
	m.EntitiesExtracted.WithLabelValues(c, "infrastructure").Add(float64(len(data.Infrastructure)))
	m.EntitiesExtracted.WithLabelValues(c, "pricing").Add(float64(len(data.Pricing)))
	m.EntitiesExtracted.WithLabelValues(c, "government").Add(float64(len(data.Government)))
	m.ProcessingDuration.WithLabelValues(c).Observe(time.Since(start).Seconds())
}
