package handler

import (
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sweeplabs/modsweep/internal/database/types"
	"github.com/sweeplabs/modsweep/internal/database/types/enum"
	"github.com/sweeplabs/modsweep/internal/matcher"
	"github.com/sweeplabs/modsweep/internal/rest/middleware/auth"
	restTypes "github.com/sweeplabs/modsweep/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// AgentHandler handles the browser agent's ingestion and result reporting.
// Agent batches run through the same matching and bookkeeping as background
// scans; only the action execution happens on the agent's side.
type AgentHandler struct {
	store   AgentStore
	matcher *matcher.Matcher
	logger  *zap.Logger
}

// NewAgentHandler creates a new agent handler.
func NewAgentHandler(store AgentStore, m *matcher.Matcher, logger *zap.Logger) *AgentHandler {
	return &AgentHandler{
		store:   store,
		matcher: m,
		logger:  logger,
	}
}

// Ingest accepts a batch of pre-scraped comments for one content item, runs
// the connection's filters over them and either queues matches for review or
// returns execution instructions for the agent.
func (h *AgentHandler) Ingest(w http.ResponseWriter, req bunrouter.Request) error {
	conn := auth.FromContext(req.Context())

	var body restTypes.IngestRequest
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	if body.ContentID == "" {
		http.Error(w, "Missing content ID", http.StatusBadRequest)
		return nil
	}

	filters, err := h.store.ActiveFilters(req.Context(), conn.UserID, conn.Platform)
	if err != nil {
		h.logger.Error("Failed to load filters", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	response := restTypes.IngestResponse{Instructions: []restTypes.Instruction{}}

	for _, comment := range body.Comments {
		response.Scanned++

		filter := h.matcher.Match(matcher.Subject{
			Text:       comment.Text,
			AuthorName: comment.AuthorName,
		}, filters)
		if filter == nil {
			continue
		}

		response.Matched++

		processed, err := h.store.HasProcessed(req.Context(), conn.ID, comment.CommentID)
		if err != nil {
			h.logger.Warn("Dedup check failed, skipping comment",
				zap.String("commentID", comment.CommentID),
				zap.Error(err))

			continue
		}

		if processed {
			continue
		}

		if !conn.AutoAction {
			h.enqueue(req, conn, body.ContentID, comment, filter, &response)
			continue
		}

		response.Instructions = append(response.Instructions, restTypes.Instruction{
			CommentID: comment.CommentID,
			Action:    filter.Action.String(),
			Pattern:   filter.Pattern,
		})
	}

	return bunrouter.JSON(w, response)
}

// enqueue inserts a pending queue item for a matched agent comment.
func (h *AgentHandler) enqueue(
	req bunrouter.Request, conn *types.Connection, contentID string,
	comment restTypes.AgentComment, filter *types.Filter, response *restTypes.IngestResponse,
) {
	item := &types.QueueItem{
		ConnectionID: conn.ID,
		CommentSnapshot: types.CommentSnapshot{
			PlatformCommentID: comment.CommentID,
			ContentID:         contentID,
			AuthorID:          comment.AuthorID,
			AuthorName:        comment.AuthorName,
			Text:              comment.Text,
			PublishedAt:       comment.PublishedAt,
		},
		FilterID:   filter.ID,
		Confidence: 1.0,
		Status:     enum.QueueStatusPending,
		DetectedAt: time.Now(),
	}

	inserted, err := h.store.EnqueueForReview(req.Context(), item)
	if err != nil {
		h.logger.Warn("Failed to queue comment for review",
			zap.String("commentID", comment.CommentID),
			zap.Error(err))

		return
	}

	if inserted {
		response.Queued++
	}
}

// ReportResults records the outcomes of instructions the agent executed. The
// bookkeeping mirrors autonomous scans: audit entry, hit count and usage
// counter move together, and duplicate reports are absorbed.
func (h *AgentHandler) ReportResults(w http.ResponseWriter, req bunrouter.Request) error {
	conn := auth.FromContext(req.Context())

	var body restTypes.ResultReport
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	var response restTypes.ResultResponse

	for _, result := range body.Results {
		if result.CommentID == "" {
			continue
		}

		logAction, ok := resultLogAction(result.Action)
		success := result.Success && ok
		reason := result.Error

		if !ok && reason == "" {
			reason = "unrecognized action " + result.Action
		}

		entry := &types.AuditLogEntry{
			ConnectionID:      conn.ID,
			PlatformCommentID: result.CommentID,
			ContentID:         result.ContentID,
			FilterID:          result.FilterID,
			Action:            logAction,
			Source:            enum.ActionSourceAgent,
			Success:           success,
			FailureReason:     reason,
		}

		inserted, err := h.store.RecordAction(req.Context(), entry, conn.UserID)
		if err != nil {
			h.logger.Error("Failed to record agent result",
				zap.String("commentID", result.CommentID),
				zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)

			return nil
		}

		if inserted {
			response.Recorded++
		} else {
			response.Duplicates++
		}

		// Close the loop for approved queue items the agent was executing.
		if err := h.store.MarkActionedByComment(
			req.Context(), conn.ID, result.CommentID, success,
		); err != nil {
			h.logger.Warn("Failed to update queue item from agent result",
				zap.String("commentID", result.CommentID),
				zap.Error(err))
		}
	}

	return bunrouter.JSON(w, response)
}

// resultLogAction maps a reported filter action name to its audit log action.
func resultLogAction(action string) (enum.LogAction, bool) {
	parsed, err := enum.FilterActionString(action)
	if err != nil {
		return enum.LogActionFailed, false
	}

	logAction, _ := parsed.Outcome()

	return logAction, logAction != enum.LogActionFailed
}
