package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sweeplabs/modsweep/internal/database/dbretry"
	"github.com/sweeplabs/modsweep/internal/database/types"
	"github.com/sweeplabs/modsweep/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ErrConnectionNotFound is returned when a connection lookup finds no row.
var ErrConnectionNotFound = errors.New("connection not found")

// ConnectionModel handles database operations for platform connections.
type ConnectionModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewConnection creates a new connection model.
func NewConnection(db *bun.DB, logger *zap.Logger) *ConnectionModel {
	return &ConnectionModel{
		db:     db,
		logger: logger.Named("db_connection"),
	}
}

// GetByID retrieves a connection by its ID.
func (r *ConnectionModel) GetByID(ctx context.Context, id string) (*types.Connection, error) {
	conn := new(types.Connection)

	err := r.db.NewSelect().
		Model(conn).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConnectionNotFound
		}

		return nil, fmt.Errorf("failed to get connection: %w", err)
	}

	return conn, nil
}

// GetByAPIKey retrieves a connection by the bearer token the agent presents.
func (r *ConnectionModel) GetByAPIKey(ctx context.Context, apiKey string) (*types.Connection, error) {
	conn := new(types.Connection)

	err := r.db.NewSelect().
		Model(conn).
		Where("api_key = ?", apiKey).
		Where("is_active = true").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConnectionNotFound
		}

		return nil, fmt.Errorf("failed to get connection by api key: %w", err)
	}

	return conn, nil
}

// GetDueForScan claims active connections whose last scan is older than the
// given interval, oldest first. Manual scan mode connections are excluded.
// Claimed rows get last_scanned_at stamped inside the same transaction, and
// rows locked by a concurrent claim are skipped, so two workers never pick up
// the same connection.
func (r *ConnectionModel) GetDueForScan(
	ctx context.Context, olderThan time.Duration, limit int,
) ([]*types.Connection, error) {
	var connections []*types.Connection

	err := dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(&connections).
			Where("is_active = true").
			Where("scan_mode != ?", enum.ScanModeManual). // manual connections scan on request only
			Where("last_scanned_at < ?", time.Now().Add(-olderThan)).
			Order("last_scanned_at ASC").
			Limit(limit).
			For("UPDATE SKIP LOCKED").
			Scan(ctx)
		if err != nil {
			return fmt.Errorf("failed to get due connections: %w", err)
		}

		if len(connections) > 0 {
			ids := make([]string, 0, len(connections))
			for _, conn := range connections {
				ids = append(ids, conn.ID)
			}

			_, err = tx.NewUpdate().
				Model((*types.Connection)(nil)).
				Set("last_scanned_at = NOW()").
				Where("id IN (?)", bun.In(ids)).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to claim due connections: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return connections, nil
}

// TouchLastScanned stamps last_scanned_at on a connection.
func (r *ConnectionModel) TouchLastScanned(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.NewUpdate().
		Model((*types.Connection)(nil)).
		Set("last_scanned_at = ?", at).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update last scanned: %w", err)
	}

	return nil
}

// UpdateTokens persists refreshed credentials.
func (r *ConnectionModel) UpdateTokens(
	ctx context.Context, id, accessToken string, expiry time.Time,
) error {
	_, err := r.db.NewUpdate().
		Model((*types.Connection)(nil)).
		Set("access_token = ?", accessToken).
		Set("token_expiry = ?", expiry).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update tokens: %w", err)
	}

	return nil
}
