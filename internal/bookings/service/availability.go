package service

import (
	"smpid/pkg/config"
	"smpid/pkg/dates"
	"smpid/pkg/model"
	"time"
)

// Rules holds the booking policy knobs: which weekdays run workshop
// sessions and how many days of notice a school must give.
type Rules struct {
	Weekdays      []time.Weekday
	MinNoticeDays int
}

func RulesFromConfig(cfg *config.Config) Rules {
	return Rules{
		Weekdays:      cfg.BookableWeekdays,
		MinNoticeDays: cfg.MinNoticeDays,
	}
}

func (r Rules) BookableWeekday(day time.Weekday) bool {
	for _, d := range r.Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// FirstBookable is the earliest date a school may book as of today.
// Today itself never qualifies.
func (r Rules) FirstBookable(today dates.Date) dates.Date {
	return today.AddDays(r.MinNoticeDays)
}

// WithinNotice reports whether date is too soon to book: today or earlier,
// or inside the minimum notice window.
func (r Rules) WithinNotice(date, today dates.Date) bool {
	return date.Before(r.FirstBookable(today))
}

// DayStatus derives the calendar state of one date.
//
// Precedence: a date that is past or inside the notice window is closed no
// matter what else holds, then an administrative lock, then the weekday
// rule, then session occupancy. Locks outrank the weekday rule so that a
// lock placed on a non-working day still shows up on the calendar.
func (r Rules) DayStatus(date, today dates.Date, lock *model.DateLock, booked []model.Session) model.DayAvailability {
	day := model.DayAvailability{Date: date.ISO()}

	if r.WithinNotice(date, today) {
		day.Status = model.DayClosed
		return day
	}

	if lock != nil {
		day.Status = model.DayLocked
		day.LockNote = lock.Note
		return day
	}

	if !r.BookableWeekday(date.Weekday()) {
		day.Status = model.DayClosed
		return day
	}

	taken := map[model.Session]bool{}
	for _, s := range booked {
		taken[s] = true
	}

	var free []model.Session
	for _, s := range []model.Session{model.SessionMorning, model.SessionAfternoon} {
		if !taken[s] {
			free = append(free, s)
		}
	}

	switch len(free) {
	case 0:
		day.Status = model.DayFull
	case 1:
		day.Status = model.DayPartial
		day.FreeSessions = free
	default:
		day.Status = model.DayOpen
		day.FreeSessions = free
	}

	return day
}
