package model

// DayStatus classifies one calendar day for the booking calendar.
type DayStatus string

const (
	// DayClosed: weekday outside the bookable set, in the past, or inside
	// the minimum notice window.
	DayClosed DayStatus = "closed"
	// DayLocked: an administrative date lock is present. Locks win over the
	// weekday rule so administrators can see and release them on any day.
	DayLocked DayStatus = "locked"
	// DayFull: both sessions carry an active booking.
	DayFull DayStatus = "full"
	// DayPartial: exactly one session remains free.
	DayPartial DayStatus = "partial"
	// DayOpen: both sessions free.
	DayOpen DayStatus = "open"
)

// DayAvailability is the derived state of one date on the calendar.
type DayAvailability struct {
	Date         string    `json:"date"`
	Status       DayStatus `json:"status"`
	FreeSessions []Session `json:"free_sessions,omitempty"`
	LockNote     string    `json:"lock_note,omitempty"`
}

// MonthAvailability covers every day of one civil month, first to last.
type MonthAvailability struct {
	Year  int               `json:"year"`
	Month int               `json:"month"`
	Days  []DayAvailability `json:"days"`
}
