// Package dates turns the date expressions users put in market questions —
// "yesterday", "3 days ago", "2025-02-19", "3/10/2025", "November 11 2024" —
// into UTC instants, and enforces the lookback windows the upstream API
// documents for historical data.
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Parsed is the result of parsing a date expression.
type Parsed struct {
	Time      time.Time // UTC
	Canonical string    // YYYY-MM-DD
	Relative  bool      // true when the input was a relative expression
}

var absoluteLayouts = []string{
	"2006-01-02",
	"January 2 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"Jan 2, 2006",
}

// Parse resolves a relative or absolute date expression against now.
// The returned instant carries now's clock time so that historical quote
// windows land on comparable intraday timestamps.
func Parse(input string, now time.Time) (Parsed, error) {
	now = now.UTC()
	s := strings.TrimSpace(input)
	if s == "" {
		return Parsed{}, fmt.Errorf("empty date")
	}

	if t, ok := parseRelative(s, now); ok {
		return Parsed{Time: t, Canonical: t.Format("2006-01-02"), Relative: true}, nil
	}

	t, err := parseAbsolute(s, now)
	if err != nil {
		return Parsed{}, err
	}
	return Parsed{Time: t, Canonical: t.Format("2006-01-02")}, nil
}

// ParsePast is Parse plus the checks historical lookups need: the date must
// not be in the future and must fall within maxDays of now.
func ParsePast(input string, now time.Time, maxDays int) (Parsed, error) {
	p, err := Parse(input, now)
	if err != nil {
		return Parsed{}, err
	}
	if DaysAgo(p.Time, now) < 0 {
		return Parsed{}, fmt.Errorf("%s is in the future", p.Canonical)
	}
	if d := DaysAgo(p.Time, now); d > maxDays {
		return Parsed{}, fmt.Errorf("%s is %d days back, data is only available for the past %d days", p.Canonical, d, maxDays)
	}
	return p, nil
}

// DaysAgo returns the whole-day distance from t back to now. Negative for
// future dates.
func DaysAgo(t, now time.Time) int {
	ty, tm, td := t.UTC().Date()
	ny, nm, nd := now.UTC().Date()
	tDay := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	nDay := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(nDay.Sub(tDay) / (24 * time.Hour))
}

func parseRelative(s string, now time.Time) (time.Time, bool) {
	lower := strings.ToLower(s)
	switch lower {
	case "today", "now":
		return now, true
	case "yesterday":
		return now.AddDate(0, 0, -1), true
	case "last week", "a week ago", "one week ago":
		return now.AddDate(0, 0, -7), true
	}

	for _, suffix := range []string{"days ago", "day ago"} {
		if !strings.HasSuffix(lower, suffix) {
			continue
		}
		numText := strings.TrimSpace(strings.TrimSuffix(lower, suffix))
		if numText == "" {
			// "days ago" with no number reads as yesterday
			return now.AddDate(0, 0, -1), true
		}
		n, err := strconv.Atoi(numText)
		if err != nil || n < 0 {
			return time.Time{}, false
		}
		return now.AddDate(0, 0, -n), true
	}
	return time.Time{}, false
}

func parseAbsolute(s string, now time.Time) (time.Time, error) {
	if strings.Contains(s, "/") {
		return parseSlashes(s, now)
	}
	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return withClock(t, now), nil
		}
	}
	// Unpadded ISO forms like 2025-1-01 fall through time.Parse
	if t, err := parseDashes(s, now); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q, use YYYY-MM-DD or MM/DD/YYYY", s)
}

// parseDashes handles YYYY-M-D with unpadded components.
func parseDashes(s string, now time.Time) (time.Time, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q", s)
		}
		nums[i] = n
	}
	return makeDate(nums[0], nums[1], nums[2], s, now)
}

// parseSlashes handles MM/DD/YYYY and the YYYY/MM/DD variant, including
// 2-digit years.
func parseSlashes(s string, now time.Time) (time.Time, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date %q, use MM/DD/YYYY", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q, use MM/DD/YYYY", s)
		}
		nums[i] = n
	}

	var year, month, day int
	if nums[0] > 31 {
		// YYYY/MM/DD
		year, month, day = nums[0], nums[1], nums[2]
	} else {
		month, day, year = nums[0], nums[1], nums[2]
	}
	if year < 100 {
		year += 2000
	}
	return makeDate(year, month, day, s, now)
}

func makeDate(year, month, day int, input string, now time.Time) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid date values in %q", input)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// Reject normalized rollovers such as 2/30
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, fmt.Errorf("invalid date values in %q", input)
	}
	return withClock(t, now), nil
}

func withClock(day, now time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), now.Hour(), now.Minute(), 0, 0, time.UTC)
}
