package handler

import (
	"net/http"

	"github.com/sweeplabs/modsweep/internal/database"
	"github.com/sweeplabs/modsweep/internal/rest/convert"
	"github.com/sweeplabs/modsweep/internal/rest/middleware/auth"
	restTypes "github.com/sweeplabs/modsweep/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// FilterHandler serves filter exports for client-side matching.
type FilterHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewFilterHandler creates a new filter handler.
func NewFilterHandler(db database.Client, logger *zap.Logger) *FilterHandler {
	return &FilterHandler{
		db:     db,
		logger: logger,
	}
}

// Export returns the connection's active filters in priority order, reduced
// to the shape the agent needs for local matching.
func (h *FilterHandler) Export(w http.ResponseWriter, req bunrouter.Request) error {
	conn := auth.FromContext(req.Context())

	filters, err := h.db.Model().Filter().GetActiveFilters(req.Context(), conn.UserID, conn.Platform)
	if err != nil {
		h.logger.Error("Failed to load filters", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, restTypes.FilterExportResponse{
		Filters: convert.Filters(filters),
	})
}
