package types

import (
	"time"

	"github.com/sweeplabs/modsweep/internal/database/types/enum"
)

// Filter is a user-defined matching rule plus the action to take on a match.
type Filter struct {
	ID       uint64        `bun:",pk,autoincrement" json:"id"`
	UserID   uint64        `bun:",notnull"          json:"userId"`
	Platform enum.Platform `bun:",notnull"          json:"platform"`
	Type     enum.FilterType `bun:",notnull"        json:"type"`
	// Pattern holds the literal/regex pattern, or a numeric threshold for the
	// emoji_spam and repeat_char types.
	Pattern       string            `bun:",notnull" json:"pattern"`
	MatchType     enum.MatchType    `bun:",notnull" json:"matchType"`
	CaseSensitive bool              `bun:",notnull" json:"caseSensitive"`
	Action        enum.FilterAction `bun:",notnull" json:"action"`
	// Priority orders evaluation; higher values are checked first.
	Priority  int       `bun:",notnull" json:"priority"`
	HitCount  int64     `bun:",notnull" json:"hitCount"`
	IsActive  bool      `bun:",notnull" json:"isActive"`
	CreatedAt time.Time `bun:",notnull" json:"createdAt"`
	UpdatedAt time.Time `bun:",notnull" json:"updatedAt"`
}

// IsRegex reports whether the pattern must be compiled as a regular
// expression, either by type or by match type.
func (f *Filter) IsRegex() bool {
	return f.Type == enum.FilterTypeRegex || f.MatchType == enum.MatchTypeRegex
}
