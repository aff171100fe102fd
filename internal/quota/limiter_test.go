package quota_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/rueidis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweeplabs/modsweep/internal/database/types/enum"
	"github.com/sweeplabs/modsweep/internal/quota"
	"go.uber.org/zap"
)

func setupTest(t *testing.T, dailyLimit, minuteLimit int64) (*quota.Limiter, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return quota.NewLimiter(client, dailyLimit, minuteLimit, zap.NewNop()), mr
}

func thresholdKey(percent int) string {
	return fmt.Sprintf("quota:threshold:youtube:%s:%d", time.Now().UTC().Format("20060102"), percent)
}

func TestHasQuotaFor(t *testing.T) {
	t.Parallel()

	limiter, _ := setupTest(t, 100, 1000)
	ctx := context.Background()

	require.NoError(t, limiter.TrackQuotaUsage(ctx, enum.PlatformYouTube, quota.OpList, 60))

	ok, err := limiter.HasQuotaFor(ctx, enum.PlatformYouTube, quota.OpList, 1)
	require.NoError(t, err)
	assert.True(t, ok, "a single list call still fits")

	ok, err = limiter.HasQuotaFor(ctx, enum.PlatformYouTube, quota.OpModerate, 1)
	require.NoError(t, err)
	assert.False(t, ok, "a delete costs 50 and only 40 units remain")
}

func TestTrackQuotaUsage_Accumulates(t *testing.T) {
	t.Parallel()

	limiter, _ := setupTest(t, 10000, 1000)
	ctx := context.Background()

	require.NoError(t, limiter.TrackQuotaUsage(ctx, enum.PlatformYouTube, quota.OpList, 3))
	require.NoError(t, limiter.TrackQuotaUsage(ctx, enum.PlatformYouTube, quota.OpModerate, 1))

	stats, err := limiter.GetQuotaStats(ctx, enum.PlatformYouTube)
	require.NoError(t, err)
	assert.Equal(t, int64(53), stats.Used)
}

func TestCanMakeRequest_MinuteCeiling(t *testing.T) {
	t.Parallel()

	limiter, _ := setupTest(t, 10000, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := limiter.CanMakeRequest(ctx, enum.PlatformYouTube, 7, quota.OpList)
		require.NoError(t, err)
		assert.True(t, ok, "request %d should pass", i+1)
	}

	ok, err := limiter.CanMakeRequest(ctx, enum.PlatformYouTube, 7, quota.OpList)
	require.NoError(t, err)
	assert.False(t, ok, "third request in the minute is rejected")
}

func TestCanMakeRequest_MinutesAreIndependentPerUser(t *testing.T) {
	t.Parallel()

	limiter, _ := setupTest(t, 10000, 1)
	ctx := context.Background()

	ok, err := limiter.CanMakeRequest(ctx, enum.PlatformYouTube, 1, quota.OpList)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = limiter.CanMakeRequest(ctx, enum.PlatformYouTube, 2, quota.OpList)
	require.NoError(t, err)
	assert.True(t, ok, "another user has their own window")
}

func TestCanMakeRequest_DailyBudgetGate(t *testing.T) {
	t.Parallel()

	limiter, _ := setupTest(t, 100, 1000)
	ctx := context.Background()

	require.NoError(t, limiter.TrackQuotaUsage(ctx, enum.PlatformYouTube, quota.OpList, 60))

	ok, err := limiter.CanMakeRequest(ctx, enum.PlatformYouTube, 7, quota.OpModerate)
	require.NoError(t, err)
	assert.False(t, ok, "moderate call no longer fits in the daily budget")
}

func TestThresholdMarker_FiresOnceOnCrossing(t *testing.T) {
	t.Parallel()

	limiter, mr := setupTest(t, 100, 1000)
	ctx := context.Background()

	require.NoError(t, limiter.TrackQuotaUsage(ctx, enum.PlatformYouTube, quota.OpList, 79))
	assert.False(t, mr.Exists(thresholdKey(80)), "no marker below the threshold")

	require.NoError(t, limiter.TrackQuotaUsage(ctx, enum.PlatformYouTube, quota.OpList, 1))
	assert.True(t, mr.Exists(thresholdKey(80)), "marker set on the crossing")

	// Later calls above the level are not crossings; removing the marker
	// proves the transition check alone suppresses a second fire.
	mr.Del(thresholdKey(80))
	require.NoError(t, limiter.TrackQuotaUsage(ctx, enum.PlatformYouTube, quota.OpList, 1))
	assert.False(t, mr.Exists(thresholdKey(80)))
}

func TestThresholdMarker_Critical(t *testing.T) {
	t.Parallel()

	limiter, mr := setupTest(t, 100, 1000)
	ctx := context.Background()

	require.NoError(t, limiter.TrackQuotaUsage(ctx, enum.PlatformYouTube, quota.OpModerate, 2))
	assert.True(t, mr.Exists(thresholdKey(80)), "a single jump can cross both levels")
	assert.True(t, mr.Exists(thresholdKey(95)))
}

func TestGetQuotaStats(t *testing.T) {
	t.Parallel()

	limiter, _ := setupTest(t, 100, 1000)
	ctx := context.Background()

	require.NoError(t, limiter.TrackQuotaUsage(ctx, enum.PlatformYouTube, quota.OpList, 60))

	stats, err := limiter.GetQuotaStats(ctx, enum.PlatformYouTube)
	require.NoError(t, err)

	assert.Equal(t, int64(60), stats.Used)
	assert.Equal(t, int64(100), stats.Limit)
	assert.Equal(t, int64(40), stats.Remaining)
	assert.InEpsilon(t, 60.0, stats.Percentage, 0.001)
	assert.Equal(t, int64(0), stats.EstimatedDeletesRemaining)
	assert.False(t, stats.CanDeleteComments())
	assert.True(t, stats.ResetAt.After(time.Now()))
}

func TestGetQuotaStats_Empty(t *testing.T) {
	t.Parallel()

	limiter, _ := setupTest(t, 10000, 1000)

	stats, err := limiter.GetQuotaStats(context.Background(), enum.PlatformYouTube)
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.Used)
	assert.Equal(t, int64(10000), stats.Remaining)
	assert.Equal(t, int64(200), stats.EstimatedDeletesRemaining)
	assert.True(t, stats.CanDeleteComments())
}
