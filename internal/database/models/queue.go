package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sweeplabs/modsweep/internal/database/types"
	"github.com/sweeplabs/modsweep/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ErrQueueItemNotFound is returned when a queue item lookup finds no row.
var ErrQueueItemNotFound = errors.New("queue item not found")

// QueueModel handles database operations for review queue items.
type QueueModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewQueue creates a new queue model.
func NewQueue(db *bun.DB, logger *zap.Logger) *QueueModel {
	return &QueueModel{
		db:     db,
		logger: logger.Named("db_queue"),
	}
}

// InsertPending inserts a new pending queue item. Returns false without error
// when a row for the same (connection, comment) already exists; the unique
// index is the authoritative dedup guard.
func (r *QueueModel) InsertPending(ctx context.Context, item *types.QueueItem) (bool, error) {
	item.Status = enum.QueueStatusPending
	item.DetectedAt = time.Now()

	res, err := r.db.NewInsert().
		Model(item).
		On("CONFLICT (connection_id, platform_comment_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to insert queue item: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}

	return rows > 0, nil
}

// Exists reports whether a queue item exists for the comment.
func (r *QueueModel) Exists(ctx context.Context, connectionID, commentID string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*types.QueueItem)(nil)).
		Where("connection_id = ?", connectionID).
		Where("platform_comment_id = ?", commentID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check queue item existence: %w", err)
	}

	return exists, nil
}

// GetByID retrieves a queue item by its ID.
func (r *QueueModel) GetByID(ctx context.Context, id uint64) (*types.QueueItem, error) {
	item := new(types.QueueItem)

	err := r.db.NewSelect().
		Model(item).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrQueueItemNotFound
		}

		return nil, fmt.Errorf("failed to get queue item: %w", err)
	}

	return item, nil
}

// GetPending returns pending items for a connection, oldest first.
func (r *QueueModel) GetPending(
	ctx context.Context, connectionID string, limit int,
) ([]*types.QueueItem, error) {
	var items []*types.QueueItem

	err := r.db.NewSelect().
		Model(&items).
		Where("connection_id = ?", connectionID).
		Where("status = ?", enum.QueueStatusPending).
		Order("detected_at ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending queue items: %w", err)
	}

	return items, nil
}

// MarkActionedByComment records the terminal outcome for the comment's queue
// item, if approval put one in flight. Items not yet approved are untouched.
func (r *QueueModel) MarkActionedByComment(
	ctx context.Context, connectionID, commentID string, success bool,
) error {
	status := enum.QueueStatusDeleted
	if !success {
		status = enum.QueueStatusFailed
	}

	_, err := r.db.NewUpdate().
		Model((*types.QueueItem)(nil)).
		Set("status = ?", status).
		Set("actioned_at = ?", time.Now()).
		Where("connection_id = ?", connectionID).
		Where("platform_comment_id = ?", commentID).
		Where("status = ?", enum.QueueStatusApproved).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark queue item actioned: %w", err)
	}

	return nil
}

// UpdateStatus transitions a queue item and stamps the matching timestamp.
func (r *QueueModel) UpdateStatus(
	ctx context.Context, id uint64, status enum.QueueStatus,
) error {
	now := time.Now()

	query := r.db.NewUpdate().
		Model((*types.QueueItem)(nil)).
		Set("status = ?", status).
		Where("id = ?", id)

	switch status {
	case enum.QueueStatusApproved, enum.QueueStatusDismissed:
		query = query.Set("reviewed_at = ?", now)
	case enum.QueueStatusDeleted, enum.QueueStatusFailed:
		query = query.Set("actioned_at = ?", now)
	case enum.QueueStatusPending:
	}

	if _, err := query.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update queue item status: %w", err)
	}

	return nil
}
