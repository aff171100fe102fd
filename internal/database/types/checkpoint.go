package types

import "time"

// ContentCheckpoint remembers scan progress for one content item of one
// connection. The watermark only ever advances to a more recent comment.
type ContentCheckpoint struct {
	ConnectionID string `bun:",pk,notnull" json:"connectionId"`
	ContentID    string `bun:",pk,notnull" json:"contentId"`
	// LastSeenCommentID is the newest comment observed during the most recent
	// scan of this item; incremental scans stop when they reach it.
	LastSeenCommentID string    `bun:""         json:"lastSeenCommentId"`
	ScanEnabled       bool      `bun:",notnull" json:"scanEnabled"`
	TotalScanned      int64     `bun:",notnull" json:"totalScanned"`
	TotalMatched      int64     `bun:",notnull" json:"totalMatched"`
	CreatedAt         time.Time `bun:",notnull" json:"createdAt"`
	UpdatedAt         time.Time `bun:",notnull" json:"updatedAt"`
}
