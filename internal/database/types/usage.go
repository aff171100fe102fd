package types

import "time"

// UsageCounter counts completed moderation actions per user and billing
// period (YYYY-MM). Subscription-limit enforcement reads from it.
type UsageCounter struct {
	UserID      uint64    `bun:",pk,notnull" json:"userId"`
	Period      string    `bun:",pk,notnull" json:"period"`
	ActionsUsed int64     `bun:",notnull"    json:"actionsUsed"`
	UpdatedAt   time.Time `bun:",notnull"    json:"updatedAt"`
}

// CurrentPeriod formats t as the usage period key.
func CurrentPeriod(t time.Time) string {
	return t.UTC().Format("2006-01")
}
