// Package rest implements the HTTP surface consumed by the browser agent and
// review clients.
package rest

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
	"github.com/sweeplabs/modsweep/internal/database/types"
	"github.com/sweeplabs/modsweep/internal/matcher"
	"github.com/sweeplabs/modsweep/internal/platform"
	"github.com/sweeplabs/modsweep/internal/rest/handler"
	"github.com/sweeplabs/modsweep/internal/rest/middleware/auth"
	"github.com/sweeplabs/modsweep/internal/rest/middleware/ratelimit"
	"github.com/sweeplabs/modsweep/internal/setup"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// Server implements the REST API service.
type Server struct {
	agentHandler  *handler.AgentHandler
	filterHandler *handler.FilterHandler
	quotaHandler  *handler.QuotaHandler
	reviewHandler *handler.ReviewHandler
}

// NewServer creates a new REST API server.
func NewServer(app *setup.App, logger *zap.Logger) http.Handler {
	newAdapter := func(conn *types.Connection) (platform.Adapter, error) {
		return platform.New(platform.Deps{
			Connection:  conn,
			Connections: app.DB.Model().Connection(),
			Config:      &app.Config.Common.Platforms,
			Logger:      logger,
		})
	}

	server := &Server{
		agentHandler:  handler.NewAgentHandler(handler.NewAgentStore(app.DB), matcher.New(logger), logger),
		filterHandler: handler.NewFilterHandler(app.DB, logger),
		quotaHandler:  handler.NewQuotaHandler(app.Quota, logger),
		reviewHandler: handler.NewReviewHandler(handler.NewReviewStore(app.DB), app.Quota, newAdapter, logger),
	}

	rateLimiter := ratelimit.New(&app.Config.API.RateLimit, logger)
	authMiddleware := auth.New(app.DB, logger)

	router := bunrouter.New()

	router.Use(
		rateLimiter.AsRESTMiddleware,
		authMiddleware.AsRESTMiddleware,
	).WithGroup("/v1", func(g *bunrouter.Group) {
		g.POST("/agent/comments", server.agentHandler.Ingest)
		g.POST("/agent/results", server.agentHandler.ReportResults)
		g.GET("/filters", server.filterHandler.Export)
		g.GET("/quota", server.quotaHandler.Stats)
		g.GET("/review/pending", server.reviewHandler.Pending)
		g.POST("/review/:id/approve", server.reviewHandler.Approve)
		g.POST("/review/:id/dismiss", server.reviewHandler.Dismiss)
	})

	return gzhttp.GzipHandler(router)
}
