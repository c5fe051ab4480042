package offline

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/qivook/qivook-engine/internal/database"
	"github.com/qivook/qivook-engine/internal/logging"
	"github.com/qivook/qivook-engine/internal/telemetry"
)

// Sync result labels.
const (
	syncResultOK     = "ok"
	syncResultFailed = "failed"
)

// Syncer drains the offline write queues against the upstream API.
// Items are submitted one at a time in enqueue order; a failed item is
// retained for the next run, so every write is delivered at least once.
type Syncer struct {
	baseURL   string
	client    *http.Client
	queue     *database.QueueRepository
	limiter   *rate.Limiter
	logger    logging.Logger
	telemetry *telemetry.Provider
}

// SyncOption configures a Syncer.
type SyncOption func(*Syncer)

// WithSyncClient sets the HTTP client used for submissions.
func WithSyncClient(client *http.Client) SyncOption {
	return func(s *Syncer) { s.client = client }
}

// WithSyncTelemetry enables sync metrics.
func WithSyncTelemetry(provider *telemetry.Provider) SyncOption {
	return func(s *Syncer) { s.telemetry = provider }
}

// NewSyncer creates a queue drainer posting to baseURL, bounded to rps
// submissions per second.
func NewSyncer(
	baseURL string,
	queue *database.QueueRepository,
	rps int,
	logger logging.Logger,
	opts ...SyncOption,
) *Syncer {
	if rps <= 0 {
		rps = 1
	}

	s := &Syncer{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		queue:   queue,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SyncPriceReports submits queued price reports to the upstream.
func (s *Syncer) SyncPriceReports(ctx context.Context) error {
	return s.drain(ctx, database.QueuePriceReports)
}

// SyncSupplierReviews submits queued supplier reviews to the upstream.
func (s *Syncer) SyncSupplierReviews(ctx context.Context) error {
	return s.drain(ctx, database.QueueSupplierReviews)
}

func (s *Syncer) drain(ctx context.Context, queue string) error {
	pending, err := s.queue.Pending(ctx, queue)
	if err != nil {
		return fmt.Errorf("drain %s: %w", queue, err)
	}
	if len(pending) == 0 {
		return nil
	}

	s.logger.Info("draining offline queue",
		logging.String("queue", queue),
		logging.Int("pending", len(pending)))

	for _, item := range pending {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("drain %s: %w", queue, err)
		}

		if err := s.submit(ctx, item); err != nil {
			// Keep the item for the next run. Duplicate submissions are
			// possible when a response is lost after the upstream applied
			// the write; the upstream endpoints tolerate resubmission.
			s.logger.Warn("queued write submission failed",
				logging.String("queue", queue),
				logging.String("id", item.ID),
				logging.Error(err))
			s.countPost(queue, syncResultFailed)
			continue
		}

		if err := s.queue.Remove(ctx, item.ID); err != nil {
			s.logger.Error("failed to remove synced write",
				logging.String("queue", queue),
				logging.String("id", item.ID),
				logging.Error(err))
			continue
		}
		s.countPost(queue, syncResultOK)
	}

	s.recordDepth(ctx, queue)
	return nil
}

func (s *Syncer) submit(ctx context.Context, item database.QueuedWrite) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+item.TargetPath, bytes.NewReader(item.Payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", item.TargetPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("post %s: unexpected status %d", item.TargetPath, resp.StatusCode)
	}
	return nil
}

func (s *Syncer) countPost(queue, result string) {
	if s.telemetry == nil {
		return
	}
	s.telemetry.Metrics.SyncPosts.WithLabelValues(queue, result).Inc()
}

func (s *Syncer) recordDepth(ctx context.Context, queue string) {
	if s.telemetry == nil {
		return
	}
	depth, err := s.queue.Depth(ctx, queue)
	if err != nil {
		return
	}
	s.telemetry.Metrics.QueueDepth.WithLabelValues(queue).Set(float64(depth))
}
