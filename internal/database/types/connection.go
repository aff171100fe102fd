package types

import (
	"time"

	"github.com/sweeplabs/modsweep/internal/database/types/enum"
)

// Connection links one user to one external platform account.
type Connection struct {
	ID                string              `bun:",pk,notnull"      json:"id"`
	UserID            uint64              `bun:",notnull"         json:"userId"`
	Platform          enum.Platform       `bun:",notnull"         json:"platform"`
	ExternalAccountID string              `bun:",notnull"         json:"externalAccountId"`
	AccountName       string              `bun:""                 json:"accountName"`
	Mode              enum.ConnectionMode `bun:",notnull"         json:"mode"`
	ScanMode          enum.ScanMode       `bun:",notnull"         json:"scanMode"`
	// AutoAction makes the scan execute filter actions directly instead of
	// queueing matches for review.
	AutoAction    bool      `bun:",notnull" json:"autoAction"`
	AccessToken   string    `bun:""         json:"-"`
	RefreshToken  string    `bun:""         json:"-"`
	TokenExpiry   time.Time `bun:""         json:"tokenExpiry"`
	APIKey        string    `bun:""         json:"-"` // Bearer token for agent calls
	LastScannedAt time.Time `bun:""         json:"lastScannedAt"`
	IsActive      bool      `bun:",notnull" json:"isActive"`
	CreatedAt     time.Time `bun:",notnull" json:"createdAt"`
	UpdatedAt     time.Time `bun:",notnull" json:"updatedAt"`
}

// TokenNearExpiry reports whether the access token should be refreshed before
// the next API call.
func (c *Connection) TokenNearExpiry() bool {
	return !c.TokenExpiry.IsZero() && time.Until(c.TokenExpiry) < 5*time.Minute
}
