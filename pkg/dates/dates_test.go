package dates

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	d, err := Parse("2025-03-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year != 2025 || d.Month != time.March || d.Day != 1 {
		t.Fatalf("unexpected components: %+v", d)
	}

	for _, bad := range []string{
		"", "2025-3-1", "01-03-2025", "2025/03/01", "2025-02-30",
		"2025-13-01", "2025-03-01T00:00:00Z", "today",
	} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestRendering(t *testing.T) {
	d := New(2025, time.March, 4)
	if got := d.ISO(); got != "2025-03-04" {
		t.Errorf("ISO: got %s", got)
	}
	if got := d.Compact(); got != "250304" {
		t.Errorf("Compact: got %s", got)
	}
}

func TestWeekday(t *testing.T) {
	// March 2025: the 1st is a Saturday, the 4th a Tuesday.
	if got := New(2025, time.March, 1).Weekday(); got != time.Saturday {
		t.Errorf("expected Saturday, got %s", got)
	}
	if got := New(2025, time.March, 4).Weekday(); got != time.Tuesday {
		t.Errorf("expected Tuesday, got %s", got)
	}
}

func TestAddDays(t *testing.T) {
	cases := []struct {
		start Date
		n     int
		want  string
	}{
		{New(2025, time.March, 1), 3, "2025-03-04"},
		{New(2025, time.March, 30), 3, "2025-04-02"},
		{New(2025, time.December, 31), 1, "2026-01-01"},
		{New(2024, time.February, 28), 1, "2024-02-29"}, // leap year
		{New(2025, time.March, 1), -1, "2025-02-28"},
	}
	for _, tc := range cases {
		if got := tc.start.AddDays(tc.n).ISO(); got != tc.want {
			t.Errorf("%s + %d days: expected %s, got %s", tc.start.ISO(), tc.n, tc.want, got)
		}
	}
}

func TestOrdering(t *testing.T) {
	a := New(2025, time.March, 1)
	b := New(2025, time.March, 2)
	c := New(2024, time.December, 31)

	if !a.Before(b) || b.Before(a) {
		t.Error("expected a < b")
	}
	if !c.Before(a) {
		t.Error("expected year ordering to dominate")
	}
	if !b.After(a) {
		t.Error("expected b > a")
	}
	if !a.Equal(New(2025, time.March, 1)) {
		t.Error("expected equality by components")
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.March, 31},
		{2025, time.April, 30},
		{2025, time.February, 28},
		{2024, time.February, 29},
	}
	for _, tc := range cases {
		if got := DaysInMonth(tc.year, tc.month); got != tc.want {
			t.Errorf("%d-%d: expected %d days, got %d", tc.year, tc.month, tc.want, got)
		}
	}
}

func TestMonthRange(t *testing.T) {
	first, last := MonthRange(2025, time.February)
	if first.ISO() != "2025-02-01" || last.ISO() != "2025-02-28" {
		t.Errorf("got %s..%s", first.ISO(), last.ISO())
	}
}
