package scan

import "errors"

var (
	// ErrActionQuotaExhausted means the owning user has no moderation
	// actions left in the current billing period.
	ErrActionQuotaExhausted = errors.New("user action quota exhausted")

	// ErrQuotaExhausted means the platform's daily API budget cannot cover
	// the next costed call. A scan hitting it stops early but keeps the
	// progress it already made.
	ErrQuotaExhausted = errors.New("platform API quota exhausted")
)
