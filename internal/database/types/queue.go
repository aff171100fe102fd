package types

import (
	"time"

	"github.com/sweeplabs/modsweep/internal/database/types/enum"
)

// CommentSnapshot is the normalized comment shape shared by queue items and
// platform adapters.
type CommentSnapshot struct {
	PlatformCommentID string    `bun:",notnull" json:"platformCommentId"`
	ContentID         string    `bun:",notnull" json:"contentId"`
	AuthorID          string    `bun:""         json:"authorId"`
	AuthorName        string    `bun:""         json:"authorName"`
	Text              string    `bun:",notnull" json:"text"`
	PublishedAt       time.Time `bun:""         json:"publishedAt"`
}

// QueueItem is a matched comment waiting for human review. The
// (connection_id, platform_comment_id) pair is unique and backstops the
// dedup check against overlapping scans.
type QueueItem struct {
	ID           uint64 `bun:",pk,autoincrement" json:"id"`
	ConnectionID string `bun:",notnull" json:"connectionId"`
	CommentSnapshot
	FilterID uint64 `bun:",notnull" json:"filterId"`
	// Confidence is fixed at 1.0 for filter matches; filters are binary.
	Confidence float64          `bun:",notnull" json:"confidence"`
	Status     enum.QueueStatus `bun:",notnull" json:"status"`
	DetectedAt time.Time        `bun:",notnull" json:"detectedAt"`
	ReviewedAt time.Time        `bun:",nullzero" json:"reviewedAt"`
	ActionedAt time.Time        `bun:",nullzero" json:"actionedAt"`
}
