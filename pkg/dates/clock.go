package dates

import "time"

// Clock supplies "today" for the past and notice-window checks. The booking
// engine never calls time.Now directly so tests can pin the calendar.
type Clock interface {
	Today() Date
	Now() time.Time
}

type systemClock struct{}

// SystemClock reports the civil date in the server's local timezone.
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Today() Date {
	return FromTime(time.Now())
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant. Test helper.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Today() Date {
	return FromTime(c.Instant)
}

func (c FixedClock) Now() time.Time {
	return c.Instant
}
