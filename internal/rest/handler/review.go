package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/sweeplabs/modsweep/internal/database/models"
	"github.com/sweeplabs/modsweep/internal/database/service"
	"github.com/sweeplabs/modsweep/internal/database/types"
	"github.com/sweeplabs/modsweep/internal/database/types/enum"
	"github.com/sweeplabs/modsweep/internal/platform"
	"github.com/sweeplabs/modsweep/internal/quota"
	"github.com/sweeplabs/modsweep/internal/rest/convert"
	"github.com/sweeplabs/modsweep/internal/rest/middleware/auth"
	restTypes "github.com/sweeplabs/modsweep/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

const pendingPageSize = 100

// Quota gates costed review actions on metered platforms.
type Quota interface {
	CanMakeRequest(ctx context.Context, platform enum.Platform, userID uint64, op quota.Op) (bool, error)
	TrackQuotaUsage(ctx context.Context, platform enum.Platform, op quota.Op, count int) error
}

// AdapterFactory builds the platform adapter for one connection.
type AdapterFactory func(connection *types.Connection) (platform.Adapter, error)

// ReviewHandler handles human decisions on queued comments. Approval on an
// API connection executes the action server-side; on an agent connection it
// hands back an instruction for the agent to execute and report.
type ReviewHandler struct {
	store      ReviewStore
	quota      Quota
	newAdapter AdapterFactory
	logger     *zap.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(
	store ReviewStore, q Quota, newAdapter AdapterFactory, logger *zap.Logger,
) *ReviewHandler {
	return &ReviewHandler{
		store:      store,
		quota:      q,
		newAdapter: newAdapter,
		logger:     logger,
	}
}

// Pending lists the connection's queue items awaiting review, oldest first.
func (h *ReviewHandler) Pending(w http.ResponseWriter, req bunrouter.Request) error {
	conn := auth.FromContext(req.Context())

	items, err := h.store.PendingItems(req.Context(), conn.ID, pendingPageSize)
	if err != nil {
		h.logger.Error("Failed to load pending queue items", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, restTypes.PendingResponse{Items: convert.QueueItems(items)})
}

// Approve accepts a pending item and carries out its filter's action. Quota
// admission runs before the status transition, so a denied request leaves the
// item pending for a later retry.
func (h *ReviewHandler) Approve(w http.ResponseWriter, req bunrouter.Request) error {
	conn := auth.FromContext(req.Context())

	item, ok := h.ownedItem(w, req, conn)
	if !ok {
		return nil
	}

	filter, err := h.store.FilterByID(req.Context(), item.FilterID)
	if err != nil && !errors.Is(err, models.ErrFilterNotFound) {
		h.logger.Error("Failed to load filter for approval", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	if filter != nil && conn.Mode == enum.ConnectionModeAPI && conn.Platform.Metered() {
		if _, costed := filter.Action.Outcome(); costed {
			ok, err := h.quota.CanMakeRequest(req.Context(), conn.Platform, conn.UserID, quota.OpModerate)
			if err != nil {
				h.logger.Error("Failed to check platform quota", zap.Error(err))
				http.Error(w, "Internal server error", http.StatusInternalServerError)

				return nil
			}

			if !ok {
				http.Error(w, "Platform quota exhausted", http.StatusTooManyRequests)
				return nil
			}
		}
	}

	item, err = h.store.ApproveItem(req.Context(), item.ID)
	if err != nil {
		if errors.Is(err, service.ErrNotPending) {
			http.Error(w, "Queue item already decided", http.StatusConflict)
			return nil
		}

		h.logger.Error("Failed to approve queue item", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	// A deleted filter leaves nothing to execute; record the failure so the
	// item does not hang in approved forever.
	if filter == nil {
		h.record(req, conn, item, enum.LogActionFailed, false, "filter no longer exists")
		h.markActioned(req, item, false)

		return bunrouter.JSON(w, restTypes.ReviewResponse{Status: enum.QueueStatusFailed.String()})
	}

	if conn.Mode == enum.ConnectionModeAgent {
		return bunrouter.JSON(w, restTypes.ReviewResponse{
			Status: enum.QueueStatusApproved.String(),
			Instruction: &restTypes.Instruction{
				CommentID: item.PlatformCommentID,
				Action:    filter.Action.String(),
				Pattern:   filter.Pattern,
			},
		})
	}

	return h.execute(w, req, conn, item, filter)
}

// Dismiss rejects a pending item without touching the platform.
func (h *ReviewHandler) Dismiss(w http.ResponseWriter, req bunrouter.Request) error {
	conn := auth.FromContext(req.Context())

	item, ok := h.ownedItem(w, req, conn)
	if !ok {
		return nil
	}

	if err := h.store.DismissItem(req.Context(), item.ID); err != nil {
		if errors.Is(err, service.ErrNotPending) {
			http.Error(w, "Queue item already decided", http.StatusConflict)
			return nil
		}

		h.logger.Error("Failed to dismiss queue item", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, restTypes.ReviewResponse{Status: enum.QueueStatusDismissed.String()})
}

// execute runs the filter's action against the platform for an approved item.
// Quota admission already happened in Approve.
func (h *ReviewHandler) execute(
	w http.ResponseWriter, req bunrouter.Request, conn *types.Connection,
	item *types.QueueItem, filter *types.Filter,
) error {
	adapter, err := h.newAdapter(conn)
	if err != nil {
		h.logger.Error("Failed to build platform adapter", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	logAction, costed := filter.Action.Outcome()

	var (
		success bool
		reason  string
	)

	switch {
	case logAction == enum.LogActionFailed:
		reason = "unrecognized filter action"
	case !costed:
		success = true
	default:
		var ack *platform.ActionAck
		if filter.Action == enum.FilterActionDelete {
			ack, err = adapter.DeleteComment(req.Context(), item.PlatformCommentID)
		} else {
			ack, err = adapter.HideComment(req.Context(), item.PlatformCommentID)
		}

		if conn.Platform.Metered() {
			if trackErr := h.quota.TrackQuotaUsage(req.Context(), conn.Platform, quota.OpModerate, 1); trackErr != nil {
				h.logger.Warn("Failed to track quota usage", zap.Error(trackErr))
			}
		}

		switch {
		case err != nil:
			reason = err.Error()
		case !ack.Success:
			reason = ack.Message
		default:
			success = true
		}
	}

	h.record(req, conn, item, logAction, success, reason)
	h.markActioned(req, item, success)

	status := enum.QueueStatusDeleted
	if !success {
		status = enum.QueueStatusFailed
	}

	return bunrouter.JSON(w, restTypes.ReviewResponse{Status: status.String()})
}

// record writes the audit entry for a manually approved action.
func (h *ReviewHandler) record(
	req bunrouter.Request, conn *types.Connection, item *types.QueueItem,
	action enum.LogAction, success bool, reason string,
) {
	entry := &types.AuditLogEntry{
		ConnectionID:      conn.ID,
		PlatformCommentID: item.PlatformCommentID,
		ContentID:         item.ContentID,
		FilterID:          item.FilterID,
		Action:            action,
		Source:            enum.ActionSourceManual,
		Success:           success,
		FailureReason:     reason,
	}

	if _, err := h.store.RecordAction(req.Context(), entry, conn.UserID); err != nil {
		h.logger.Error("Failed to record review action",
			zap.Uint64("itemID", item.ID),
			zap.Error(err))
	}
}

func (h *ReviewHandler) markActioned(req bunrouter.Request, item *types.QueueItem, success bool) {
	if err := h.store.MarkActioned(req.Context(), item.ID, success); err != nil {
		h.logger.Error("Failed to mark queue item actioned",
			zap.Uint64("itemID", item.ID),
			zap.Error(err))
	}
}

// ownedItem parses the item ID and checks it belongs to the connection.
func (h *ReviewHandler) ownedItem(
	w http.ResponseWriter, req bunrouter.Request, conn *types.Connection,
) (*types.QueueItem, bool) {
	id, err := strconv.ParseUint(req.Param("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid queue item ID", http.StatusBadRequest)
		return nil, false
	}

	item, err := h.store.QueueItem(req.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrQueueItemNotFound) {
			http.Error(w, "Queue item not found", http.StatusNotFound)
			return nil, false
		}

		h.logger.Error("Failed to load queue item", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil, false
	}

	if item.ConnectionID != conn.ID {
		http.Error(w, "Queue item not found", http.StatusNotFound)
		return nil, false
	}

	return item, true
}
