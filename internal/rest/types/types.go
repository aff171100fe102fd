// Package types defines the REST API request and response shapes.
package types

import "time"

// AgentComment is one pre-scraped comment submitted by the browser agent.
type AgentComment struct {
	CommentID   string    `json:"commentId"`
	AuthorID    string    `json:"authorId"`
	AuthorName  string    `json:"authorName"`
	Text        string    `json:"text"`
	PublishedAt time.Time `json:"publishedAt"`
}

// IngestRequest is a batch of scraped comments for one content item.
type IngestRequest struct {
	ContentID string         `json:"contentId"`
	Comments  []AgentComment `json:"comments"`
}

// Instruction tells the agent to execute one action locally.
type Instruction struct {
	CommentID string `json:"commentId"`
	Action    string `json:"action"`
	Pattern   string `json:"pattern"`
}

// IngestResponse reports what the scan did with the batch. Instructions is
// only populated for autonomous-mode connections.
type IngestResponse struct {
	Scanned      int           `json:"scanned"`
	Matched      int           `json:"matched"`
	Queued       int           `json:"queued"`
	Instructions []Instruction `json:"instructions"`
}

// AgentResult is the agent's report of one executed instruction.
type AgentResult struct {
	CommentID string `json:"commentId"`
	ContentID string `json:"contentId"`
	FilterID  uint64 `json:"filterId"`
	Action    string `json:"action"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// ResultReport is a batch of executed-instruction outcomes.
type ResultReport struct {
	Results []AgentResult `json:"results"`
}

// ResultResponse reports how many outcomes were recorded. Duplicates covers
// results already recorded by an earlier report.
type ResultResponse struct {
	Recorded   int `json:"recorded"`
	Duplicates int `json:"duplicates"`
}

// FilterExport is the minimal filter shape for client-side matching.
type FilterExport struct {
	ID      uint64 `json:"id"`
	Pattern string `json:"pattern"`
	Type    string `json:"type"`
	Action  string `json:"action"`
	IsRegex bool   `json:"isRegex"`
}

// FilterExportResponse lists the connection's active filters.
type FilterExportResponse struct {
	Filters []FilterExport `json:"filters"`
}

// QueueItemView is one pending comment awaiting review.
type QueueItemView struct {
	ID          uint64    `json:"id"`
	CommentID   string    `json:"commentId"`
	ContentID   string    `json:"contentId"`
	AuthorName  string    `json:"authorName"`
	Text        string    `json:"text"`
	Pattern     string    `json:"pattern,omitempty"`
	Status      string    `json:"status"`
	DetectedAt  time.Time `json:"detectedAt"`
	PublishedAt time.Time `json:"publishedAt"`
}

// PendingResponse lists a connection's pending queue items.
type PendingResponse struct {
	Items []QueueItemView `json:"items"`
}

// ReviewResponse reports the outcome of a review decision. Instruction is set
// for agent-assisted connections, where the agent executes the action.
type ReviewResponse struct {
	Status      string       `json:"status"`
	Instruction *Instruction `json:"instruction,omitempty"`
}

// QuotaStatsResponse is the daily platform budget view.
type QuotaStatsResponse struct {
	Used              int64     `json:"used"`
	Limit             int64     `json:"limit"`
	Remaining         int64     `json:"remaining"`
	Percentage        float64   `json:"percentage"`
	ResetAt           time.Time `json:"resetAt"`
	CanDeleteComments bool      `json:"canDeleteComments"`
}
