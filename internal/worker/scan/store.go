package scan

import (
	"context"
	"time"

	"github.com/sweeplabs/modsweep/internal/database"
	"github.com/sweeplabs/modsweep/internal/database/types"
	"github.com/sweeplabs/modsweep/internal/database/types/enum"
)

// dbStore adapts the database client to the orchestrator's Store interface.
type dbStore struct {
	db database.Client
}

// NewStore wraps a database client as a scan store.
func NewStore(db database.Client) Store {
	return &dbStore{db: db}
}

func (s *dbStore) ActiveFilters(
	ctx context.Context, userID uint64, platform enum.Platform,
) ([]*types.Filter, error) {
	return s.db.Model().Filter().GetActiveFilters(ctx, userID, platform)
}

func (s *dbStore) GetOrCreateCheckpoint(
	ctx context.Context, connectionID, contentID string,
) (*types.ContentCheckpoint, error) {
	return s.db.Model().Checkpoint().GetOrCreate(ctx, connectionID, contentID)
}

func (s *dbStore) AdvanceCheckpoint(
	ctx context.Context, checkpoint *types.ContentCheckpoint, lastSeen string, scanned, matched int,
) error {
	return s.db.Model().Checkpoint().Advance(ctx, checkpoint, lastSeen, scanned, matched)
}

func (s *dbStore) TouchLastScanned(ctx context.Context, connectionID string, at time.Time) error {
	return s.db.Model().Connection().TouchLastScanned(ctx, connectionID, at)
}

func (s *dbStore) HasProcessed(ctx context.Context, connectionID, commentID string) (bool, error) {
	return s.db.Service().Moderation().HasProcessed(ctx, connectionID, commentID)
}

func (s *dbStore) EnqueueForReview(ctx context.Context, item *types.QueueItem) (bool, error) {
	return s.db.Service().Moderation().EnqueueForReview(ctx, item)
}

func (s *dbStore) RecordAction(
	ctx context.Context, entry *types.AuditLogEntry, userID uint64,
) (bool, error) {
	return s.db.Service().Moderation().RecordAction(ctx, entry, userID)
}

func (s *dbStore) RemainingActions(ctx context.Context, userID uint64) (int64, error) {
	return s.db.Service().Moderation().RemainingActions(ctx, userID)
}
