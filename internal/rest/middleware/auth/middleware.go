// Package auth authenticates agent requests by connection API key.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sweeplabs/modsweep/internal/database"
	"github.com/sweeplabs/modsweep/internal/database/models"
	"github.com/sweeplabs/modsweep/internal/database/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

type connectionCtxKey struct{}

// FromContext retrieves the authenticated connection from the context.
func FromContext(ctx context.Context) *types.Connection {
	conn, _ := ctx.Value(connectionCtxKey{}).(*types.Connection)
	return conn
}

// WithConnection stores an authenticated connection in the context.
func WithConnection(ctx context.Context, conn *types.Connection) context.Context {
	return context.WithValue(ctx, connectionCtxKey{}, conn)
}

// Middleware resolves the bearer token to an active connection and stores it
// in the request context.
type Middleware struct {
	db     database.Client
	logger *zap.Logger
}

// New creates a new auth middleware.
func New(db database.Client, logger *zap.Logger) *Middleware {
	return &Middleware{
		db:     db,
		logger: logger,
	}
}

// AsRESTMiddleware returns a bunrouter middleware handler enforcing auth.
func (m *Middleware) AsRESTMiddleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		apiKey := bearerToken(req.Header.Get("Authorization"))
		if apiKey == "" {
			http.Error(w, "Missing API key", http.StatusUnauthorized)
			return nil
		}

		conn, err := m.db.Model().Connection().GetByAPIKey(req.Context(), apiKey)
		if err != nil {
			if errors.Is(err, models.ErrConnectionNotFound) {
				http.Error(w, "Invalid API key", http.StatusUnauthorized)
				return nil
			}

			m.logger.Error("Failed to resolve API key", zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)

			return nil
		}

		return next(w, req.WithContext(WithConnection(req.Context(), conn)))
	}
}

// bearerToken extracts the token from an Authorization header.
func bearerToken(header string) string {
	if header == "" {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
