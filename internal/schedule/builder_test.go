package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileDaily(t *testing.T) {
	b := Builder{Frequency: FrequencyDaily, Time: "09:30"}
	assert.Equal(t, "0 30 9 * * ?", b.Compile())
}

func TestCompileDailyBadClock(t *testing.T) {
	// unparseable parts count as zero
	b := Builder{Frequency: FrequencyDaily, Time: "9x:yy"}
	assert.Equal(t, "0 0 0 * * ?", b.Compile())

	b = Builder{Frequency: FrequencyDaily, Time: ""}
	assert.Equal(t, "0 0 0 * * ?", b.Compile())
}

func TestCompileWeekly(t *testing.T) {
	b := Builder{Frequency: FrequencyWeekly, Time: "07:00", Weekdays: []string{"MON", "WED"}}
	assert.Equal(t, "0 0 7 ? * MON,WED", b.Compile())
}

func TestCompileWeeklyPreservesSelectionOrder(t *testing.T) {
	b := Builder{Frequency: FrequencyWeekly, Time: "07:00", Weekdays: []string{"FRI", "mon", "FRI", "nope"}}
	assert.Equal(t, "0 0 7 ? * FRI,MON", b.Compile())
}

func TestCompileWeeklyNoDaysDefaultsToSunday(t *testing.T) {
	b := Builder{Frequency: FrequencyWeekly, Time: "10:15"}
	assert.Equal(t, "0 15 10 ? * SUN", b.Compile())
}

func TestCompileMonthlyClampsDayOfMonth(t *testing.T) {
	b := Builder{Frequency: FrequencyMonthly, Time: "06:00", DayOfMonth: 45}
	assert.Equal(t, "0 0 6 31 * ?", b.Compile())

	b.DayOfMonth = 0
	assert.Equal(t, "0 0 6 1 * ?", b.Compile())

	b.DayOfMonth = 15
	assert.Equal(t, "0 0 6 15 * ?", b.Compile())
}

func TestCompileOnce(t *testing.T) {
	b := Builder{Frequency: FrequencyOnce, Time: "18:05", DateOnce: "2025-12-25"}
	assert.Equal(t, "0 5 18 25 12 ? 2025", b.Compile())
}

func TestCompileOnceWithoutDateFallsBack(t *testing.T) {
	b := Builder{Frequency: FrequencyOnce, Time: "18:05"}
	assert.Equal(t, DefaultExpression, b.Compile())

	b.DateOnce = "not-a-date"
	assert.Equal(t, DefaultExpression, b.Compile())
}

func TestCompileUnknownFrequencyFallsBack(t *testing.T) {
	b := Builder{Frequency: "hourly", Time: "12:00"}
	assert.Equal(t, DefaultExpression, b.Compile())
}

func TestParseRoundTrips(t *testing.T) {
	cases := []Builder{
		{Frequency: FrequencyDaily, Time: "09:30"},
		{Frequency: FrequencyWeekly, Time: "07:00", Weekdays: []string{"MON", "WED"}},
		{Frequency: FrequencyWeekly, Time: "00:00", Weekdays: []string{"SUN"}},
		{Frequency: FrequencyMonthly, Time: "06:45", DayOfMonth: 15},
		{Frequency: FrequencyOnce, Time: "18:05", DateOnce: "2025-12-25"},
	}

	for _, want := range cases {
		got, err := Parse(want.Compile())
		require.NoError(t, err, "expression %q", want.Compile())
		assert.Equal(t, want.Frequency, got.Frequency)
		assert.Equal(t, want.Compile(), got.Compile())
	}
}

func TestParseRejectsForeignExpressions(t *testing.T) {
	for _, expr := range []string{
		"",
		"* * * * *",
		"*/5 * * * * ?",        // non-literal seconds
		"0 0 9 * * MON",        // day-of-month and day-of-week both set
		"0 0 9 1-5 * ?",        // range day-of-month
		"0 0 9 ? * MON-FRI",    // weekday range
		"0 99 9 * * ?",         // minute out of range
		"0 0 9 25 13 ? 2025",   // month out of range
		"0 0 9 25 12 MON 2025", // once with a weekday
	} {
		_, err := Parse(expr)
		assert.ErrorIs(t, err, ErrNotRepresentable, "expression %q", expr)
	}
}

func TestParseDefaultExpressionIsWeekly(t *testing.T) {
	b, err := Parse(DefaultExpression)
	require.NoError(t, err)
	assert.Equal(t, FrequencyWeekly, b.Frequency)
	assert.Equal(t, []string{"SUN"}, b.Weekdays)
	assert.Equal(t, "09:00", b.Time)
}
