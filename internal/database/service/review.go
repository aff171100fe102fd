package service

import (
	"context"
	"errors"

	"github.com/sweeplabs/modsweep/internal/database/models"
	"github.com/sweeplabs/modsweep/internal/database/types"
	"github.com/sweeplabs/modsweep/internal/database/types/enum"
	"go.uber.org/zap"
)

// ErrNotPending is returned when a review decision targets an item that has
// already been decided.
var ErrNotPending = errors.New("queue item is not pending")

// ReviewService handles human decisions on queued comments.
type ReviewService struct {
	queue  *models.QueueModel
	logger *zap.Logger
}

// NewReview creates a new review service.
func NewReview(queue *models.QueueModel, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		queue:  queue,
		logger: logger.Named("review_service"),
	}
}

// Approve marks a pending item approved and returns it so the caller can
// execute the filter's action through the platform adapter.
func (s *ReviewService) Approve(ctx context.Context, itemID uint64) (*types.QueueItem, error) {
	item, err := s.queue.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.Status != enum.QueueStatusPending {
		return nil, ErrNotPending
	}

	if err := s.queue.UpdateStatus(ctx, itemID, enum.QueueStatusApproved); err != nil {
		return nil, err
	}

	item.Status = enum.QueueStatusApproved

	return item, nil
}

// Dismiss rejects a pending item; no platform action is taken.
func (s *ReviewService) Dismiss(ctx context.Context, itemID uint64) error {
	item, err := s.queue.GetByID(ctx, itemID)
	if err != nil {
		return err
	}

	if item.Status != enum.QueueStatusPending {
		return ErrNotPending
	}

	return s.queue.UpdateStatus(ctx, itemID, enum.QueueStatusDismissed)
}

// MarkActioned records the terminal outcome of an approved item.
func (s *ReviewService) MarkActioned(ctx context.Context, itemID uint64, success bool) error {
	status := enum.QueueStatusDeleted
	if !success {
		status = enum.QueueStatusFailed
	}

	return s.queue.UpdateStatus(ctx, itemID, status)
}
