package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sweeplabs/modsweep/internal/database/dbretry"
	"github.com/sweeplabs/modsweep/internal/database/models"
	"github.com/sweeplabs/modsweep/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ModerationService owns the dedup guard and the outcome bookkeeping that
// keeps a comment from ever being processed twice.
type ModerationService struct {
	db          *bun.DB
	queue       *models.QueueModel
	audit       *models.AuditModel
	filter      *models.FilterModel
	usage       *models.UsageModel
	actionLimit int64
	logger      *zap.Logger
}

// NewModeration creates a new moderation service.
func NewModeration(
	db *bun.DB, queue *models.QueueModel, audit *models.AuditModel,
	filter *models.FilterModel, usage *models.UsageModel,
	actionLimit int64, logger *zap.Logger,
) *ModerationService {
	return &ModerationService{
		db:          db,
		queue:       queue,
		audit:       audit,
		filter:      filter,
		usage:       usage,
		actionLimit: actionLimit,
		logger:      logger.Named("moderation_service"),
	}
}

// HasProcessed reports whether the comment already has a queue item or audit
// entry. This is only the fast path; the unique indexes on both tables remain
// the authoritative guard against concurrent scans.
func (s *ModerationService) HasProcessed(
	ctx context.Context, connectionID, commentID string,
) (bool, error) {
	queued, err := s.queue.Exists(ctx, connectionID, commentID)
	if err != nil {
		return false, err
	}

	if queued {
		return true, nil
	}

	return s.audit.Exists(ctx, connectionID, commentID)
}

// EnqueueForReview inserts a pending queue item and, when the insert wins,
// bumps the matching filter's hit count. Returns false when the comment was
// already queued by another scan.
func (s *ModerationService) EnqueueForReview(
	ctx context.Context, item *types.QueueItem,
) (bool, error) {
	inserted, err := s.queue.InsertPending(ctx, item)
	if err != nil || !inserted {
		return inserted, err
	}

	if err := s.filter.IncrementHitCount(ctx, item.FilterID); err != nil {
		s.logger.Warn("Failed to increment filter hit count",
			zap.Uint64("filterID", item.FilterID),
			zap.Error(err))
	}

	return true, nil
}

// RecordAction appends an audit entry and, for successful actions, increments
// the filter hit count and the owner's usage counter in the same transaction.
// Returns false when the comment already has an audit entry.
func (s *ModerationService) RecordAction(
	ctx context.Context, entry *types.AuditLogEntry, userID uint64,
) (bool, error) {
	var inserted bool

	err := dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		entry.CreatedAt = time.Now()

		res, err := tx.NewInsert().
			Model(entry).
			On("CONFLICT (connection_id, platform_comment_id) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to insert audit entry: %w", err)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read insert result: %w", err)
		}

		inserted = rows > 0
		if !inserted || !entry.Success {
			return nil
		}

		if entry.FilterID != 0 {
			_, err = tx.NewUpdate().
				Model((*types.Filter)(nil)).
				Set("hit_count = hit_count + 1").
				Where("id = ?", entry.FilterID).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to increment hit count: %w", err)
			}
		}

		counter := &types.UsageCounter{
			UserID:      userID,
			Period:      types.CurrentPeriod(time.Now()),
			ActionsUsed: 1,
			UpdatedAt:   time.Now(),
		}

		_, err = tx.NewInsert().
			Model(counter).
			On("CONFLICT (user_id, period) DO UPDATE").
			Set("actions_used = usage_counters.actions_used + 1").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to increment usage: %w", err)
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	return inserted, nil
}

// RemainingActions returns how many moderation actions the user may still
// take in the current billing period.
func (s *ModerationService) RemainingActions(ctx context.Context, userID uint64) (int64, error) {
	used, err := s.usage.GetUsed(ctx, userID, types.CurrentPeriod(time.Now()))
	if err != nil {
		return 0, err
	}

	remaining := s.actionLimit - used
	if remaining < 0 {
		remaining = 0
	}

	return remaining, nil
}
