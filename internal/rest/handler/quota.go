package handler

import (
	"net/http"

	"github.com/sweeplabs/modsweep/internal/quota"
	"github.com/sweeplabs/modsweep/internal/rest/middleware/auth"
	restTypes "github.com/sweeplabs/modsweep/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// QuotaHandler exposes the daily platform quota budget.
type QuotaHandler struct {
	quota  *quota.Limiter
	logger *zap.Logger
}

// NewQuotaHandler creates a new quota handler.
func NewQuotaHandler(limiter *quota.Limiter, logger *zap.Logger) *QuotaHandler {
	return &QuotaHandler{
		quota:  limiter,
		logger: logger,
	}
}

// Stats returns the budget view for the connection's platform.
func (h *QuotaHandler) Stats(w http.ResponseWriter, req bunrouter.Request) error {
	conn := auth.FromContext(req.Context())

	stats, err := h.quota.GetQuotaStats(req.Context(), conn.Platform)
	if err != nil {
		h.logger.Error("Failed to load quota stats", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, restTypes.QuotaStatsResponse{
		Used:              stats.Used,
		Limit:             stats.Limit,
		Remaining:         stats.Remaining,
		Percentage:        stats.Percentage,
		ResetAt:           stats.ResetAt,
		CanDeleteComments: stats.CanDeleteComments(),
	})
}
