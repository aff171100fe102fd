package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sweeplabs/modsweep/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// UsageModel handles database operations for per-user action usage counters.
type UsageModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewUsage creates a new usage model.
func NewUsage(db *bun.DB, logger *zap.Logger) *UsageModel {
	return &UsageModel{
		db:     db,
		logger: logger.Named("db_usage"),
	}
}

// Increment adds one completed action to the user's counter for the period.
func (r *UsageModel) Increment(ctx context.Context, userID uint64, period string) error {
	counter := &types.UsageCounter{
		UserID:      userID,
		Period:      period,
		ActionsUsed: 1,
		UpdatedAt:   time.Now(),
	}

	_, err := r.db.NewInsert().
		Model(counter).
		On("CONFLICT (user_id, period) DO UPDATE").
		Set("actions_used = usage_counters.actions_used + 1").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to increment usage: %w", err)
	}

	return nil
}

// GetUsed returns the number of actions the user consumed in the period.
// A missing row counts as zero.
func (r *UsageModel) GetUsed(ctx context.Context, userID uint64, period string) (int64, error) {
	counter := new(types.UsageCounter)

	err := r.db.NewSelect().
		Model(counter).
		Where("user_id = ?", userID).
		Where("period = ?", period).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}

		return 0, fmt.Errorf("failed to get usage: %w", err)
	}

	return counter.ActionsUsed, nil
}
