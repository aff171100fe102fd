package handler

import (
	"context"

	"github.com/sweeplabs/modsweep/internal/database"
	"github.com/sweeplabs/modsweep/internal/database/types"
	"github.com/sweeplabs/modsweep/internal/database/types/enum"
)

// AgentStore is the persistence surface the agent endpoints need. The
// database client satisfies it in production; tests substitute an in-memory
// fake.
type AgentStore interface {
	// ActiveFilters returns the user's active filters for one platform,
	// highest priority first.
	ActiveFilters(ctx context.Context, userID uint64, platform enum.Platform) ([]*types.Filter, error)
	// HasProcessed reports whether the comment already has a queue item or
	// audit entry.
	HasProcessed(ctx context.Context, connectionID, commentID string) (bool, error)
	// EnqueueForReview inserts a pending queue item; false means the comment
	// was already queued.
	EnqueueForReview(ctx context.Context, item *types.QueueItem) (bool, error)
	// RecordAction appends an audit entry with its usage bookkeeping; false
	// means the comment was already actioned.
	RecordAction(ctx context.Context, entry *types.AuditLogEntry, userID uint64) (bool, error)
	// MarkActionedByComment closes an approved queue item once its action's
	// outcome is known.
	MarkActionedByComment(ctx context.Context, connectionID, commentID string, success bool) error
}

// ReviewStore is the persistence surface the review endpoints need.
type ReviewStore interface {
	// PendingItems lists a connection's queue items awaiting review, oldest
	// first.
	PendingItems(ctx context.Context, connectionID string, limit int) ([]*types.QueueItem, error)
	// QueueItem loads one queue item; models.ErrQueueItemNotFound when absent.
	QueueItem(ctx context.Context, id uint64) (*types.QueueItem, error)
	// FilterByID loads one filter; models.ErrFilterNotFound when absent.
	FilterByID(ctx context.Context, id uint64) (*types.Filter, error)
	// ApproveItem transitions a pending item to approved;
	// service.ErrNotPending when it was already decided.
	ApproveItem(ctx context.Context, id uint64) (*types.QueueItem, error)
	// DismissItem transitions a pending item to dismissed.
	DismissItem(ctx context.Context, id uint64) error
	// MarkActioned moves an approved item to deleted or failed.
	MarkActioned(ctx context.Context, id uint64, success bool) error
	// RecordAction appends an audit entry with its usage bookkeeping.
	RecordAction(ctx context.Context, entry *types.AuditLogEntry, userID uint64) (bool, error)
}

// dbStore adapts the database client to the handler store interfaces.
type dbStore struct {
	db database.Client
}

// NewAgentStore wraps a database client as an agent endpoint store.
func NewAgentStore(db database.Client) AgentStore {
	return &dbStore{db: db}
}

// NewReviewStore wraps a database client as a review endpoint store.
func NewReviewStore(db database.Client) ReviewStore {
	return &dbStore{db: db}
}

func (s *dbStore) ActiveFilters(
	ctx context.Context, userID uint64, platform enum.Platform,
) ([]*types.Filter, error) {
	return s.db.Model().Filter().GetActiveFilters(ctx, userID, platform)
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

func (s *dbStore) MarkActionedByComment(
	ctx context.Context, connectionID, commentID string, success bool,
) error {
	return s.db.Model().Queue().MarkActionedByComment(ctx, connectionID, commentID, success)
}

func (s *dbStore) PendingItems(
	ctx context.Context, connectionID string, limit int,
) ([]*types.QueueItem, error) {
	return s.db.Model().Queue().GetPending(ctx, connectionID, limit)
}

func (s *dbStore) QueueItem(ctx context.Context, id uint64) (*types.QueueItem, error) {
	return s.db.Model().Queue().GetByID(ctx, id)
}

func (s *dbStore) FilterByID(ctx context.Context, id uint64) (*types.Filter, error) {
	return s.db.Model().Filter().GetByID(ctx, id)
}

func (s *dbStore) ApproveItem(ctx context.Context, id uint64) (*types.QueueItem, error) {
	return s.db.Service().Review().Approve(ctx, id)
}

func (s *dbStore) DismissItem(ctx context.Context, id uint64) error {
	return s.db.Service().Review().Dismiss(ctx, id)
}

func (s *dbStore) MarkActioned(ctx context.Context, id uint64, success bool) error {
	return s.db.Service().Review().MarkActioned(ctx, id, success)
}
