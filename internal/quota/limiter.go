package quota

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/rueidis"
	"github.com/sweeplabs/modsweep/internal/database/types/enum"
	"go.uber.org/zap"
)

// Op is a costed platform API operation.
type Op int

const (
	// OpList covers content and comment listing calls.
	OpList Op = iota
	// OpModerate covers delete and hide calls, which platforms price far
	// above reads.
	OpModerate
)

// Cost returns the fixed quota units one call of this operation consumes.
func (op Op) Cost() int64 {
	switch op {
	case OpList:
		return 1
	case OpModerate:
		return 50
	}

	return 1
}

// Threshold percentages that emit observability events when first crossed.
const (
	warnThreshold     = 80
	criticalThreshold = 95
)

// Stats is a point-in-time view of the daily quota budget.
type Stats struct {
	Used       int64     `json:"used"`
	Limit      int64     `json:"limit"`
	Remaining  int64     `json:"remaining"`
	Percentage float64   `json:"percentage"`
	ResetAt    time.Time `json:"resetAt"`
	// EstimatedDeletesRemaining is how many moderation calls still fit in the
	// remaining budget.
	EstimatedDeletesRemaining int64 `json:"estimatedDeletesRemaining"`
}

// CanDeleteComments reports whether at least one moderation call fits.
func (s *Stats) CanDeleteComments() bool {
	return s.Remaining >= OpModerate.Cost()
}

// Limiter enforces the daily platform quota and the per-user minute ceiling.
// Counters live in Redis and are advanced with atomic increments, so
// concurrent scans across workers share one budget without races.
type Limiter struct {
	client      rueidis.Client
	dailyLimit  int64
	minuteLimit int64
	logger      *zap.Logger
}

// NewLimiter creates a quota limiter on top of a shared Redis client.
func NewLimiter(client rueidis.Client, dailyLimit, minuteLimit int64, logger *zap.Logger) *Limiter {
	return &Limiter{
		client:      client,
		dailyLimit:  dailyLimit,
		minuteLimit: minuteLimit,
		logger:      logger.Named("quota"),
	}
}

// dailyKey returns the daily counter key for a platform. Embedding the UTC
// date makes the counter reset at midnight without coordination.
func dailyKey(platform enum.Platform, now time.Time) string {
	return fmt.Sprintf("quota:daily:%s:%s", platform, now.UTC().Format("20060102"))
}

func minuteKey(userID uint64) string {
	return fmt.Sprintf("quota:minute:%d", userID)
}

func thresholdKey(platform enum.Platform, now time.Time, percent int) string {
	return fmt.Sprintf("quota:threshold:%s:%s:%d", platform, now.UTC().Format("20060102"), percent)
}

// nextMidnight returns the next UTC midnight after now.
func nextMidnight(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
}

// used reads the current daily counter; a missing key is zero.
func (l *Limiter) used(ctx context.Context, platform enum.Platform) (int64, error) {
	resp := l.client.Do(ctx, l.client.B().Get().Key(dailyKey(platform, time.Now())).Build())

	value, err := resp.ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return 0, nil
		}

		return 0, fmt.Errorf("failed to read quota counter: %w", err)
	}

	used, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse quota counter: %w", err)
	}

	return used, nil
}

// HasQuotaFor checks whether count operations still fit in today's budget.
func (l *Limiter) HasQuotaFor(ctx context.Context, platform enum.Platform, op Op, count int) (bool, error) {
	used, err := l.used(ctx, platform)
	if err != nil {
		return false, err
	}

	return used+op.Cost()*int64(count) <= l.dailyLimit, nil
}

// CanMakeRequest checks the daily budget and the caller's per-minute ceiling.
// The minute counter is incremented as part of the check.
func (l *Limiter) CanMakeRequest(ctx context.Context, platform enum.Platform, userID uint64, op Op) (bool, error) {
	ok, err := l.HasQuotaFor(ctx, platform, op, 1)
	if err != nil || !ok {
		return false, err
	}

	key := minuteKey(userID)

	requests, err := l.client.Do(ctx, l.client.B().Incr().Key(key).Build()).ToInt64()
	if err != nil {
		return false, fmt.Errorf("failed to increment minute counter: %w", err)
	}

	// First request in the window owns setting the decay.
	if requests == 1 {
		if err := l.client.Do(ctx, l.client.B().Expire().Key(key).Seconds(60).Build()).Error(); err != nil {
			return false, fmt.Errorf("failed to expire minute counter: %w", err)
		}
	}

	return requests <= l.minuteLimit, nil
}

// TrackQuotaUsage must be called after every completed platform call. It
// advances the daily counter atomically and emits the 80%/95% events exactly
// once per day on the crossing, not on every call above the level.
func (l *Limiter) TrackQuotaUsage(ctx context.Context, platform enum.Platform, op Op, count int) error {
	now := time.Now()
	cost := op.Cost() * int64(count)
	key := dailyKey(platform, now)

	total, err := l.client.Do(ctx, l.client.B().Incrby().Key(key).Increment(cost).Build()).ToInt64()
	if err != nil {
		return fmt.Errorf("failed to track quota usage: %w", err)
	}

	// Keep the counter around until well past its day so stats stay readable.
	expireAt := nextMidnight(now).Add(time.Hour)
	if err := l.client.Do(ctx,
		l.client.B().Expireat().Key(key).Timestamp(expireAt.Unix()).Build(),
	).Error(); err != nil {
		l.logger.Warn("Failed to set quota counter expiry", zap.Error(err))
	}

	previous := total - cost
	l.checkThreshold(ctx, platform, now, previous, total, warnThreshold)
	l.checkThreshold(ctx, platform, now, previous, total, criticalThreshold)

	return nil
}

// checkThreshold emits a crossing event gated on the transition and on a
// per-day marker, so concurrent workers cannot double-fire it.
func (l *Limiter) checkThreshold(
	ctx context.Context, platform enum.Platform, now time.Time, previous, total int64, percent int,
) {
	boundary := l.dailyLimit * int64(percent) / 100
	if previous >= boundary || total < boundary {
		return
	}

	key := thresholdKey(platform, now, percent)

	set, err := l.client.Do(ctx,
		l.client.B().Set().Key(key).Value("1").Nx().Exat(nextMidnight(now).Add(time.Hour)).Build(),
	).ToString()
	if err != nil && !rueidis.IsRedisNil(err) {
		l.logger.Warn("Failed to set quota threshold marker", zap.Error(err))
		return
	}

	// NX returns nil when another worker already fired this threshold.
	if set == "" {
		return
	}

	fields := []zap.Field{
		zap.Stringer("platform", platform),
		zap.Int64("used", total),
		zap.Int64("limit", l.dailyLimit),
		zap.Int("percent", percent),
	}

	if percent >= criticalThreshold {
		l.logger.Error("Daily API quota critically low", fields...)
	} else {
		l.logger.Warn("Daily API quota running low", fields...)
	}
}

// GetQuotaStats returns the current daily budget view for a platform.
func (l *Limiter) GetQuotaStats(ctx context.Context, platform enum.Platform) (*Stats, error) {
	used, err := l.used(ctx, platform)
	if err != nil {
		return nil, err
	}

	remaining := l.dailyLimit - used
	if remaining < 0 {
		remaining = 0
	}

	percentage := 0.0
	if l.dailyLimit > 0 {
		percentage = float64(used) / float64(l.dailyLimit) * 100
	}

	return &Stats{
		Used:                      used,
		Limit:                     l.dailyLimit,
		Remaining:                 remaining,
		Percentage:                percentage,
		ResetAt:                   nextMidnight(time.Now()),
		EstimatedDeletesRemaining: remaining / OpModerate.Cost(),
	}, nil
}
