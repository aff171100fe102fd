package types

import (
	"time"

	"github.com/sweeplabs/modsweep/internal/database/types/enum"
)

// AuditLogEntry records one attempted or executed moderation action.
// The table is append-only; rows are never updated.
type AuditLogEntry struct {
	ID                uint64            `bun:",pk,autoincrement" json:"id"`
	ConnectionID      string            `bun:",notnull" json:"connectionId"`
	PlatformCommentID string            `bun:",notnull" json:"platformCommentId"`
	ContentID         string            `bun:""         json:"contentId"`
	FilterID          uint64            `bun:""         json:"filterId"`
	Action            enum.LogAction    `bun:",notnull" json:"action"`
	Source            enum.ActionSource `bun:",notnull" json:"source"`
	Success           bool              `bun:",notnull" json:"success"`
	FailureReason     string            `bun:""         json:"failureReason,omitempty"`
	CreatedAt         time.Time         `bun:",notnull" json:"createdAt"`
}
