package schedule

import (
	"fmt"
	"time"
)

// NextRun computes the first instant strictly after `after` at which the
// given expression fires, evaluated in the named time zone (UTC when empty
// or unknown). Expressions outside the builder subset are rejected; a
// one-shot schedule whose instant has passed returns ok=false.
func NextRun(expr, timezone string, after time.Time) (time.Time, bool, error) {
	b, err := Parse(expr)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("next run for %q: %w", expr, err)
	}

	loc := time.UTC
	if timezone != "" {
		if l, err := time.LoadLocation(timezone); err == nil {
			loc = l
		}
	}

	hour, min := parseClock(b.Time)
	local := after.In(loc)

	switch b.Frequency {
	case FrequencyDaily:
		next := time.Date(local.Year(), local.Month(), local.Day(), hour, min, 0, 0, loc)
		if !next.After(after) {
			next = next.AddDate(0, 0, 1)
		}
		return next, true, nil

	case FrequencyWeekly:
		wanted := make(map[time.Weekday]bool, len(b.Weekdays))
		for _, tok := range b.Weekdays {
			wanted[weekdayTokens[tok]] = true
		}
		// at most one full week ahead
		for i := 0; i <= 7; i++ {
			day := local.AddDate(0, 0, i)
			if !wanted[day.Weekday()] {
				continue
			}
			next := time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, loc)
			if next.After(after) {
				return next, true, nil
			}
		}
		return time.Time{}, false, nil

	case FrequencyMonthly:
		// months without the requested day (e.g. 31st) are skipped
		for i := 0; i <= 12; i++ {
			base := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, i, 0)
			next := time.Date(base.Year(), base.Month(), b.DayOfMonth, hour, min, 0, 0, loc)
			if next.Month() != base.Month() {
				continue // day overflowed into the next month
			}
			if next.After(after) {
				return next, true, nil
			}
		}
		return time.Time{}, false, nil

	case FrequencyOnce:
		d, err := time.Parse("2006-01-02", b.DateOnce)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("next run for %q: bad date %q", expr, b.DateOnce)
		}
		next := time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, loc)
		if next.After(after) {
			return next, true, nil
		}
		return time.Time{}, false, nil
	}

	return time.Time{}, false, ErrNotRepresentable
}
