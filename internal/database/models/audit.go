package models

import (
	"context"
	"fmt"
	"time"

	"github.com/sweeplabs/modsweep/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// AuditModel handles database operations for the append-only audit log.
type AuditModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewAudit creates a new audit model.
func NewAudit(db *bun.DB, logger *zap.Logger) *AuditModel {
	return &AuditModel{
		db:     db,
		logger: logger.Named("db_audit"),
	}
}

// Insert appends an audit log entry. Returns false without error when an
// entry for the same (connection, comment) already exists.
func (r *AuditModel) Insert(ctx context.Context, entry *types.AuditLogEntry) (bool, error) {
	entry.CreatedAt = time.Now()

	res, err := r.db.NewInsert().
		Model(entry).
		On("CONFLICT (connection_id, platform_comment_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to insert audit entry: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}

	return rows > 0, nil
}

// Exists reports whether an audit entry exists for the comment.
func (r *AuditModel) Exists(ctx context.Context, connectionID, commentID string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*types.AuditLogEntry)(nil)).
		Where("connection_id = ?", connectionID).
		Where("platform_comment_id = ?", commentID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check audit entry existence: %w", err)
	}

	return exists, nil
}

// GetRecent returns the newest audit entries for a connection.
func (r *AuditModel) GetRecent(
	ctx context.Context, connectionID string, limit int,
) ([]*types.AuditLogEntry, error) {
	var entries []*types.AuditLogEntry

	err := r.db.NewSelect().
		Model(&entries).
		Where("connection_id = ?", connectionID).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit entries: %w", err)
	}

	return entries, nil
}
