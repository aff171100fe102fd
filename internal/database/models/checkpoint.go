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

// CheckpointModel handles database operations for content checkpoints.
type CheckpointModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewCheckpoint creates a new checkpoint model.
func NewCheckpoint(db *bun.DB, logger *zap.Logger) *CheckpointModel {
	return &CheckpointModel{
		db:     db,
		logger: logger.Named("db_checkpoint"),
	}
}

// GetOrCreate loads the checkpoint for a content item, creating an enabled
// empty one the first time the item is observed.
func (r *CheckpointModel) GetOrCreate(
	ctx context.Context, connectionID, contentID string,
) (*types.ContentCheckpoint, error) {
	checkpoint := new(types.ContentCheckpoint)

	err := r.db.NewSelect().
		Model(checkpoint).
		Where("connection_id = ?", connectionID).
		Where("content_id = ?", contentID).
		Scan(ctx)
	if err == nil {
		return checkpoint, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get checkpoint: %w", err)
	}

	now := time.Now()
	checkpoint = &types.ContentCheckpoint{
		ConnectionID: connectionID,
		ContentID:    contentID,
		ScanEnabled:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Concurrent scans of the same connection may race on first observation;
	// the existing row wins and the insert becomes a no-op.
	_, err = r.db.NewInsert().
		Model(checkpoint).
		On("CONFLICT (connection_id, content_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkpoint: %w", err)
	}

	return checkpoint, nil
}

// Advance moves the watermark to the newest observed comment and adds to the
// cumulative counters. The watermark never regresses: an empty lastSeen keeps
// the stored value.
func (r *CheckpointModel) Advance(
	ctx context.Context, checkpoint *types.ContentCheckpoint, lastSeen string, scanned, matched int,
) error {
	query := r.db.NewUpdate().
		Model((*types.ContentCheckpoint)(nil)).
		Set("total_scanned = total_scanned + ?", scanned).
		Set("total_matched = total_matched + ?", matched).
		Set("updated_at = ?", time.Now()).
		Where("connection_id = ?", checkpoint.ConnectionID).
		Where("content_id = ?", checkpoint.ContentID)

	if lastSeen != "" {
		query = query.Set("last_seen_comment_id = ?", lastSeen)
	}

	if _, err := query.Exec(ctx); err != nil {
		return fmt.Errorf("failed to advance checkpoint: %w", err)
	}

	checkpoint.TotalScanned += int64(scanned)
	checkpoint.TotalMatched += int64(matched)

	if lastSeen != "" {
		checkpoint.LastSeenCommentID = lastSeen
	}

	return nil
}

// SetScanEnabled toggles scanning for a single content item.
func (r *CheckpointModel) SetScanEnabled(
	ctx context.Context, connectionID, contentID string, enabled bool,
) error {
	_, err := r.db.NewUpdate().
		Model((*types.ContentCheckpoint)(nil)).
		Set("scan_enabled = ?", enabled).
		Set("updated_at = ?", time.Now()).
		Where("connection_id = ?", connectionID).
		Where("content_id = ?", contentID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set scan enabled: %w", err)
	}

	return nil
}
