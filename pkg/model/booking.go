package model

import "time"

// Session is one of the two half-day workshop slots offered per bookable day.
type Session string

const (
	SessionMorning   Session = "morning"
	SessionAfternoon Session = "afternoon"
)

// Sessions lists both sessions in display order.
var Sessions = []Session{SessionMorning, SessionAfternoon}

func (s Session) Valid() bool {
	return s == SessionMorning || s == SessionAfternoon
}

// Complement returns the other half-day session.
func (s Session) Complement() Session {
	if s == SessionMorning {
		return SessionAfternoon
	}
	return SessionMorning
}

const (
	BookingStatusActive    = "active"
	BookingStatusCancelled = "cancelled"
)

// Booking is a reservation of one half-day workshop session at a school.
// Date is a civil YYYY-MM-DD string; it carries no time-of-day component.
type Booking struct {
	ID               string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	BookingCode      string    `json:"booking_code,omitempty" bson:"booking_code" validate:"omitempty"`
	Date             string    `json:"date" bson:"date" validate:"required,civildate"`
	Session          Session   `json:"session" bson:"session" validate:"required,oneof=morning afternoon"`
	SchoolCode       string    `json:"school_code" bson:"school_code" validate:"required,schoolcode"`
	SchoolName       string    `json:"school_name" bson:"school_name" validate:"required,min=3,max=150"`
	Topic            string    `json:"topic" bson:"topic" validate:"required,min=3,max=150"`
	ContactName      string    `json:"contact_name" bson:"contact_name" validate:"required,min=2,max=100"`
	ContactPhone     string    `json:"contact_phone" bson:"contact_phone" validate:"required"`
	Status           string    `json:"status,omitempty" bson:"status" validate:"omitempty,oneof=active cancelled"`
	CancellationNote string    `json:"cancellation_note,omitempty" bson:"cancellation_note,omitempty"`
	CreatedAt        time.Time `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
}
