package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRunDaily(t *testing.T) {
	after := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	next, ok, err := NextRun("0 30 9 * * ?", "UTC", after)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC), next)

	// already past today's instant, rolls to tomorrow
	after = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	next, ok, err = NextRun("0 30 9 * * ?", "UTC", after)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC), next)
}

func TestNextRunWeekly(t *testing.T) {
	// 2026-03-05 is a Thursday
	after := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	next, ok, err := NextRun("0 0 7 ? * MON", "UTC", after)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 9, 7, 0, 0, 0, time.UTC), next)
	assert.Equal(t, time.Monday, next.Weekday())

	// same-day later instant still fires today
	after = time.Date(2026, 3, 9, 6, 0, 0, 0, time.UTC)
	next, ok, err = NextRun("0 0 7 ? * MON,THU", "UTC", after)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 9, 7, 0, 0, 0, time.UTC), next)
}

func TestNextRunMonthlySkipsShortMonths(t *testing.T) {
	// February has no 31st, so the next 31st after early February is in March
	after := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	next, ok, err := NextRun("0 0 8 31 * ?", "UTC", after)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 31, 8, 0, 0, 0, time.UTC), next)
}

func TestNextRunOnce(t *testing.T) {
	after := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	next, ok, err := NextRun("0 5 18 25 12 ? 2025", "UTC", after)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 12, 25, 18, 5, 0, 0, time.UTC), next)

	// a one-shot in the past never fires again
	after = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, ok, err = NextRun("0 5 18 25 12 ? 2025", "UTC", after)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNextRunHonorsTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	after := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	next, ok, err := NextRun("0 0 9 * * ?", "America/New_York", after)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, next.Equal(time.Date(2026, 6, 15, 9, 0, 0, 0, loc)))
}

func TestNextRunUnknownTimezoneFallsBackToUTC(t *testing.T) {
	after := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	next, ok, err := NextRun("0 30 9 * * ?", "Mars/Olympus", after)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC), next)
}

func TestNextRunRejectsForeignExpression(t *testing.T) {
	_, _, err := NextRun("*/5 * * * * ?", "UTC", time.Now())
	assert.ErrorIs(t, err, ErrNotRepresentable)
}
