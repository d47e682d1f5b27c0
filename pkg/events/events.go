// Package events is the portal's notifier collaborator. Services publish
// domain events; downstream consumers (Telegram bot, mail digests) are out
// of scope and subscribe on their own.
package events

import "context"

const (
	TypeBookingCreated   = "booking.created"
	TypeBookingCancelled = "booking.cancelled"
	TypeDateLocked       = "datelock.locked"
	TypeDateUnlocked     = "datelock.unlocked"
	TypeTicketCreated    = "ticket.created"
)

const SchemaVersion = "1"

// BookingEvent is the payload of booking.created and booking.cancelled.
type BookingEvent struct {
	BookingID   string `json:"booking_id"`
	BookingCode string `json:"booking_code"`
	Date        string `json:"date"`
	Session     string `json:"session"`
	SchoolCode  string `json:"school_code"`
	SchoolName  string `json:"school_name"`
	Topic       string `json:"topic"`
	Reason      string `json:"reason,omitempty"`
}

// DateLockEvent is the payload of datelock.locked and datelock.unlocked.
type DateLockEvent struct {
	Date     string `json:"date"`
	Note     string `json:"note,omitempty"`
	LockedBy string `json:"locked_by"`
}

// TicketEvent is the payload of ticket.created.
type TicketEvent struct {
	TicketID   string `json:"ticket_id"`
	SchoolCode string `json:"school_code"`
	SenderRole string `json:"sender_role"`
	Subject    string `json:"subject"`
}

// Publisher emits portal events. Publishing is best effort: callers log
// failures but never fail the user's request over a lost notification.
type Publisher interface {
	Publish(ctx context.Context, eventType, key string, payload any) error
	Close() error
}
