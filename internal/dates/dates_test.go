package dates_test

import (
	"strings"
	"testing"
	"time"

	"github.com/coinsage/coinsage/internal/dates"
)

var now = time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

func TestParseRelative(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"today", "2025-03-15"},
		{"yesterday", "2025-03-14"},
		{"Yesterday", "2025-03-14"},
		{"2 days ago", "2025-03-13"},
		{"1 day ago", "2025-03-14"},
		{"10 days ago", "2025-03-05"},
		{"days ago", "2025-03-14"},
		{"last week", "2025-03-08"},
		{"a week ago", "2025-03-08"},
	}
	for _, tc := range cases {
		p, err := dates.Parse(tc.input, now)
		if err != nil {
			t.Errorf("Parse(%q): %v", tc.input, err)
			continue
		}
		if p.Canonical != tc.want {
			t.Errorf("Parse(%q) = %s, want %s", tc.input, p.Canonical, tc.want)
		}
		if !p.Relative {
			t.Errorf("Parse(%q) should be marked relative", tc.input)
		}
	}
}

func TestParseAbsolute(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"2025-02-19", "2025-02-19"},
		{"2025-1-01", "2025-01-01"},
		{"3/10/2025", "2025-03-10"},
		{"03/10/2025", "2025-03-10"},
		{"3/10/25", "2025-03-10"},
		{"2025/02/19", "2025-02-19"},
		{"November 11 2024", "2024-11-11"},
		{"Nov 11 2024", "2024-11-11"},
		{"November 11, 2024", "2024-11-11"},
	}
	for _, tc := range cases {
		p, err := dates.Parse(tc.input, now)
		if err != nil {
			t.Errorf("Parse(%q): %v", tc.input, err)
			continue
		}
		if p.Canonical != tc.want {
			t.Errorf("Parse(%q) = %s, want %s", tc.input, p.Canonical, tc.want)
		}
		if p.Relative {
			t.Errorf("Parse(%q) should not be marked relative", tc.input)
		}
	}
}

func TestParseKeepsClockTime(t *testing.T) {
	p, err := dates.Parse("2025-03-10", now)
	if err != nil {
		t.Fatal(err)
	}
	if p.Time.Hour() != 14 || p.Time.Minute() != 30 {
		t.Errorf("parsed instant should carry now's clock time, got %s", p.Time)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "soon", "the other day", "13/45/2025", "2/30/2025", "2025-13-01", "1/2/3/4"} {
		if _, err := dates.Parse(input, now); err == nil {
			t.Errorf("Parse(%q) should fail", input)
		}
	}
}

func TestParsePastRejectsFuture(t *testing.T) {
	_, err := dates.ParsePast("2025-04-01", now, 30)
	if err == nil {
		t.Fatal("future date should be rejected")
	}
	if !strings.Contains(err.Error(), "future") {
		t.Errorf("error should mention the future, got %q", err)
	}
}

func TestParsePastEnforcesWindow(t *testing.T) {
	if _, err := dates.ParsePast("2025-02-14", now, 30); err != nil {
		t.Errorf("29 days back should be inside a 30 day window: %v", err)
	}
	if _, err := dates.ParsePast("2025-02-13", now, 30); err != nil {
		t.Errorf("30 days back should be inside a 30 day window: %v", err)
	}
	_, err := dates.ParsePast("2025-01-01", now, 30)
	if err == nil {
		t.Fatal("date beyond the window should be rejected")
	}
	if !strings.Contains(err.Error(), "30") {
		t.Errorf("error should state the window, got %q", err)
	}
}

func TestDaysAgo(t *testing.T) {
	cases := []struct {
		t    time.Time
		want int
	}{
		{now, 0},
		{now.AddDate(0, 0, -1), 1},
		{time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC), 1},
		{now.AddDate(0, 0, 1), -1},
	}
	for _, tc := range cases {
		if got := dates.DaysAgo(tc.t, now); got != tc.want {
			t.Errorf("DaysAgo(%s) = %d, want %d", tc.t, got, tc.want)
		}
	}
}
