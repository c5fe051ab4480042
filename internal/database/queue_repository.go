package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Queue names for offline-captured writes.
const (
	QueuePriceReports    = "price-reports"
	QueueSupplierReviews = "supplier-reviews"
)

// QueuedWrite is one user-generated write captured while the upstream was
// unreachable, waiting for background sync.
type QueuedWrite struct {
	ID         string    `db:"id"`
	Queue      string    `db:"queue"`
	TargetPath string    `db:"target_path"`
	Payload    []byte    `db:"payload"`
	EnqueuedAt time.Time `db:"enqueued_at"`
}

// QueueRepository manages the offline write queue.
type QueueRepository struct {
	db *sqlx.DB
}

// NewQueueRepository creates a new queue repository.
func NewQueueRepository(db *sqlx.DB) *QueueRepository {
	return &QueueRepository{db: db}
}

// Enqueue stores a pending write. The ID is assigned here.
func (r *QueueRepository) Enqueue(ctx context.Context, queue, targetPath string, payload []byte) (*QueuedWrite, error) {
	w := &QueuedWrite{
		ID:         uuid.NewString(),
		Queue:      queue,
		TargetPath: targetPath,
		Payload:    payload,
		EnqueuedAt: time.Now().UTC(),
	}

	query := `
		INSERT INTO offline_queue (id, queue, target_path, payload, enqueued_at)
		VALUES (?, ?, ?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, w.ID, w.Queue, w.TargetPath, w.Payload, w.EnqueuedAt); err != nil {
		return nil, fmt.Errorf("enqueue offline write: %w", err)
	}
	return w, nil
}

// Pending returns all queued writes for one queue in enqueue order.
func (r *QueueRepository) Pending(ctx context.Context, queue string) ([]QueuedWrite, error) {
	var writes []QueuedWrite
	query := `
		SELECT id, queue, target_path, payload, enqueued_at
		FROM offline_queue
		WHERE queue = ?
		ORDER BY rowid ASC`

	if err := r.db.SelectContext(ctx, &writes, query, queue); err != nil {
		return nil, fmt.Errorf("list pending writes: %w", err)
	}
	return writes, nil
}

// Remove deletes a single queued write after a successful submission.
func (r *QueueRepository) Remove(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM offline_queue WHERE id = ?`, id); err != nil {
		return fmt.Errorf("remove queued write %s: %w", id, err)
	}
	return nil
}

// Depth returns the number of pending writes in one queue.
func (r *QueueRepository) Depth(ctx context.Context, queue string) (int, error) {
	var depth int
	if err := r.db.GetContext(ctx, &depth, `SELECT COUNT(*) FROM offline_queue WHERE queue = ?`, queue); err != nil {
		return 0, fmt.Errorf("queue depth: %w", err)
	}
	return depth, nil
}
