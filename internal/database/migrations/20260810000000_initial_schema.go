package migrations

import (
	"context"
	"fmt"

	"github.com/sweeplabs/modsweep/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.Connection)(nil),
			(*types.ContentCheckpoint)(nil),
			(*types.Filter)(nil),
			(*types.QueueItem)(nil),
			(*types.AuditLogEntry)(nil),
			(*types.UsageCounter)(nil),
		}

		for _, model := range models {
			_, err := db.NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table for %T: %w", model, err)
			}
		}

		// Unique pairs are the authoritative dedup guard: at most one row per
		// comment across the queue and the audit log.
		indexes := []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS queue_items_connection_comment_key
				ON queue_items (connection_id, platform_comment_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS audit_log_entries_connection_comment_key
				ON audit_log_entries (connection_id, platform_comment_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS connections_api_key_key
				ON connections (api_key) WHERE api_key != ''`,
			`CREATE INDEX IF NOT EXISTS filters_user_platform_idx
				ON filters (user_id, platform) WHERE is_active`,
			`CREATE INDEX IF NOT EXISTS queue_items_connection_status_idx
				ON queue_items (connection_id, status)`,
			`CREATE INDEX IF NOT EXISTS connections_due_scan_idx
				ON connections (last_scanned_at) WHERE is_active`,
			`CREATE INDEX IF NOT EXISTS audit_log_entries_connection_idx
				ON audit_log_entries (connection_id, created_at DESC)`,
		}

		for _, index := range indexes {
			if _, err := db.NewRaw(index).Exec(ctx); err != nil {
				return fmt.Errorf("failed to create index: %w", err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		tables := []string{
			"usage_counters", "audit_log_entries", "queue_items",
			"filters", "content_checkpoints", "connections",
		}

		for _, table := range tables {
			if _, err := db.NewRaw(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)).Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop table %s: %w", table, err)
			}
		}

		return nil
	})
}
