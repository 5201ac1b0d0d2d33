package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Frequency is the guided-mode recurrence choice.
type Frequency string

const (
	FrequencyOnce    Frequency = "once"
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// DefaultExpression is emitted when a one-shot schedule has no usable date:
// Sundays at 9:00 AM.
const DefaultExpression = "0 0 9 ? * SUN"

var weekdayTokens = map[string]time.Weekday{
	"SUN": time.Sunday,
	"MON": time.Monday,
	"TUE": time.Tuesday,
	"WED": time.Wednesday,
	"THU": time.Thursday,
	"FRI": time.Friday,
	"SAT": time.Saturday,
}

// Builder is the ephemeral guided-mode state. It is the sole input to Compile
// and is discarded once the expression string is produced.
type Builder struct {
	Frequency  Frequency
	Time       string   // "HH:MM"; a part that fails to parse counts as 0
	DateOnce   string   // "YYYY-MM-DD", only for FrequencyOnce
	Weekdays   []string // selection order preserved; only for FrequencyWeekly
	DayOfMonth int      // only for FrequencyMonthly; clamped into [1,31]
}

// Compile maps builder state to a cron expression with fields
// second minute hour day-of-month month day-of-week [year].
// The seconds field is always a literal 0. The result is never validated
// against a cron grammar here; that is the consumer's concern.
func (b Builder) Compile() string {
	hour, min := parseClock(b.Time)

	switch b.Frequency {
	case FrequencyDaily:
		return fmt.Sprintf("0 %d %d * * ?", min, hour)

	case FrequencyWeekly:
		days := normalizeWeekdays(b.Weekdays)
		if len(days) == 0 {
			days = []string{"SUN"}
		}
		return fmt.Sprintf("0 %d %d ? * %s", min, hour, strings.Join(days, ","))

	case FrequencyMonthly:
		return fmt.Sprintf("0 %d %d %d * ?", min, hour, clampDayOfMonth(b.DayOfMonth))

	case FrequencyOnce:
		d, err := time.Parse("2006-01-02", b.DateOnce)
		if err != nil {
			return DefaultExpression
		}
		return fmt.Sprintf("0 %d %d %d %d ? %d", min, hour, d.Day(), int(d.Month()), d.Year())
	}

	return DefaultExpression
}

// parseClock splits "HH:MM"; either part that is not a valid integer
// defaults to 0.
func parseClock(s string) (hour, min int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) > 0 {
		if h, err := strconv.Atoi(parts[0]); err == nil {
			hour = h
		}
	}
	if len(parts) > 1 {
		if m, err := strconv.Atoi(parts[1]); err == nil {
			min = m
		}
	}
	return hour, min
}

func clampDayOfMonth(dom int) int {
	if dom < 1 {
		return 1
	}
	if dom > 31 {
		return 31
	}
	return dom
}

// normalizeWeekdays keeps only recognized tokens, uppercased, in their
// original selection order, dropping duplicates.
func normalizeWeekdays(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, tok := range in {
		tok = strings.ToUpper(strings.TrimSpace(tok))
		if _, ok := weekdayTokens[tok]; !ok || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

// ErrNotRepresentable reports an expression outside the subset Compile
// produces. Editing such a schedule happens in raw-expression mode.
var ErrNotRepresentable = fmt.Errorf("expression not representable as builder state")

// Parse is the reverse of Compile for the exact subset of expressions
// Compile produces. Arbitrary cron expressions are rejected with
// ErrNotRepresentable so callers fall back to raw-expression editing.
func Parse(expr string) (Builder, error) {
	fields := strings.Fields(expr)
	if len(fields) != 6 && len(fields) != 7 {
		return Builder{}, ErrNotRepresentable
	}
	if fields[0] != "0" {
		return Builder{}, ErrNotRepresentable
	}

	min, err := strconv.Atoi(fields[1])
	if err != nil || min < 0 || min > 59 {
		return Builder{}, ErrNotRepresentable
	}
	hour, err := strconv.Atoi(fields[2])
	if err != nil || hour < 0 || hour > 23 {
		return Builder{}, ErrNotRepresentable
	}
	clock := fmt.Sprintf("%02d:%02d", hour, min)

	dom, month, dow := fields[3], fields[4], fields[5]

	// once: "0 m h D M ? Y"
	if len(fields) == 7 {
		if dow != "?" || month == "*" {
			return Builder{}, ErrNotRepresentable
		}
		d, err1 := strconv.Atoi(dom)
		m, err2 := strconv.Atoi(month)
		y, err3 := strconv.Atoi(fields[6])
		if err1 != nil || err2 != nil || err3 != nil || m < 1 || m > 12 || d < 1 || d > 31 {
			return Builder{}, ErrNotRepresentable
		}
		return Builder{
			Frequency: FrequencyOnce,
			Time:      clock,
			DateOnce:  fmt.Sprintf("%04d-%02d-%02d", y, m, d),
		}, nil
	}

	switch {
	// daily: "0 m h * * ?"
	case dom == "*" && month == "*" && dow == "?":
		return Builder{Frequency: FrequencyDaily, Time: clock}, nil

	// weekly: "0 m h ? * DAYS"
	case dom == "?" && month == "*":
		days := strings.Split(dow, ",")
		for _, tok := range days {
			if _, ok := weekdayTokens[tok]; !ok {
				return Builder{}, ErrNotRepresentable
			}
		}
		return Builder{Frequency: FrequencyWeekly, Time: clock, Weekdays: days}, nil

	// monthly: "0 m h D * ?"
	case month == "*" && dow == "?":
		d, err := strconv.Atoi(dom)
		if err != nil || d < 1 || d > 31 {
			return Builder{}, ErrNotRepresentable
		}
		return Builder{Frequency: FrequencyMonthly, Time: clock, DayOfMonth: d}, nil
	}

	return Builder{}, ErrNotRepresentable
}
