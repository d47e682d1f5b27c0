package service

import (
	"smpid/pkg/dates"
	"smpid/pkg/model"
	"testing"
	"time"
)

func testRules() Rules {
	return Rules{
		Weekdays:      []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday, time.Saturday},
		MinNoticeDays: 3,
	}
}

// A day in the past relative to every March 2025 test date.
func farToday() dates.Date {
	return dates.New(2025, time.February, 20)
}

func TestDayStatus_DisallowedWeekdays(t *testing.T) {
	rules := testRules()

	cases := []struct {
		name string
		date dates.Date
	}{
		{"sunday", dates.New(2025, time.March, 2)},
		{"monday", dates.New(2025, time.March, 3)},
		{"friday", dates.New(2025, time.March, 7)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			day := rules.DayStatus(tc.date, farToday(), nil, nil)
			if day.Status != model.DayClosed {
				t.Errorf("expected closed for %s (%s), got %s", tc.date.ISO(), tc.date.Weekday(), day.Status)
			}
			if len(day.FreeSessions) != 0 {
				t.Errorf("closed day must not list free sessions, got %v", day.FreeSessions)
			}
		})
	}
}

func TestDayStatus_NoticeWindow(t *testing.T) {
	rules := testRules()
	today := dates.New(2025, time.March, 1) // Saturday

	// Today and the next two days are inside the window; the third day out
	// is the first bookable date.
	for offset := -2; offset < rules.MinNoticeDays; offset++ {
		date := today.AddDays(offset)
		day := rules.DayStatus(date, today, nil, nil)
		if day.Status != model.DayClosed {
			t.Errorf("expected closed for %s (offset %d), got %s", date.ISO(), offset, day.Status)
		}
	}

	first := rules.FirstBookable(today)
	if first.ISO() != "2025-03-04" {
		t.Fatalf("expected first bookable 2025-03-04, got %s", first.ISO())
	}
	day := rules.DayStatus(first, today, nil, nil)
	if day.Status != model.DayOpen {
		t.Errorf("expected open for first bookable date %s, got %s", first.ISO(), day.Status)
	}
}

func TestDayStatus_LockedDate(t *testing.T) {
	rules := testRules()

	// March 4 2025 is a Tuesday, an allowed weekday. The lock must win even
	// when both sessions are booked.
	lock := &model.DateLock{Date: "2025-03-04", Note: "PUBLIC HOLIDAY"}
	day := rules.DayStatus(dates.New(2025, time.March, 4), farToday(), lock, model.Sessions)

	if day.Status != model.DayLocked {
		t.Fatalf("expected locked, got %s", day.Status)
	}
	if day.LockNote != "PUBLIC HOLIDAY" {
		t.Errorf("expected lock note to surface, got %q", day.LockNote)
	}
	if len(day.FreeSessions) != 0 {
		t.Errorf("locked day must not list free sessions, got %v", day.FreeSessions)
	}
}

func TestDayStatus_LockOnNonWorkingDay(t *testing.T) {
	rules := testRules()

	// Locks outrank the weekday rule: a lock on a Monday still shows as
	// locked so administrators can find and release it.
	lock := &model.DateLock{Date: "2025-03-03", Note: "System maintenance"}
	day := rules.DayStatus(dates.New(2025, time.March, 3), farToday(), lock, nil)

	if day.Status != model.DayLocked {
		t.Errorf("expected locked on non-working day, got %s", day.Status)
	}
}

func TestDayStatus_PastBeatsLock(t *testing.T) {
	rules := testRules()
	today := dates.New(2025, time.March, 10)

	lock := &model.DateLock{Date: "2025-03-04", Note: "PUBLIC HOLIDAY"}
	day := rules.DayStatus(dates.New(2025, time.March, 4), today, lock, nil)

	if day.Status != model.DayClosed {
		t.Errorf("expected past locked date to read closed, got %s", day.Status)
	}
}

func TestDayStatus_Occupancy(t *testing.T) {
	rules := testRules()
	date := dates.New(2025, time.March, 1) // Saturday

	cases := []struct {
		name   string
		booked []model.Session
		status model.DayStatus
		free   []model.Session
	}{
		{"no bookings", nil, model.DayOpen, []model.Session{model.SessionMorning, model.SessionAfternoon}},
		{"morning booked", []model.Session{model.SessionMorning}, model.DayPartial, []model.Session{model.SessionAfternoon}},
		{"afternoon booked", []model.Session{model.SessionAfternoon}, model.DayPartial, []model.Session{model.SessionMorning}},
		{"both booked", model.Sessions, model.DayFull, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			day := rules.DayStatus(date, farToday(), nil, tc.booked)
			if day.Status != tc.status {
				t.Fatalf("expected %s, got %s", tc.status, day.Status)
			}
			if len(day.FreeSessions) != len(tc.free) {
				t.Fatalf("expected free sessions %v, got %v", tc.free, day.FreeSessions)
			}
			for i, s := range tc.free {
				if day.FreeSessions[i] != s {
					t.Errorf("expected free session %s at %d, got %s", s, i, day.FreeSessions[i])
				}
			}
		})
	}
}

func TestDayStatus_CancelledBookingsExcluded(t *testing.T) {
	// The caller passes only active sessions; a cancelled booking simply
	// never appears in the list. This pins the contract.
	rules := testRules()
	day := rules.DayStatus(dates.New(2025, time.March, 1), farToday(), nil, []model.Session{})
	if day.Status != model.DayOpen {
		t.Errorf("expected open with no active sessions, got %s", day.Status)
	}
}
