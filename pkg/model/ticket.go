package model

import "time"

const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
)

const (
	RoleICTCoordinator = "ict_coordinator"
	RoleDelimaAdmin    = "delima_admin"
)

// Ticket is one helpdesk request raised by a school officer.
type Ticket struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	SchoolCode string    `json:"school_code" bson:"school_code" validate:"required,schoolcode"`
	SenderRole string    `json:"sender_role" bson:"sender_role" validate:"required,oneof=ict_coordinator delima_admin"`
	Subject    string    `json:"subject" bson:"subject" validate:"required,min=3,max=150"`
	Detail     string    `json:"detail" bson:"detail" validate:"required,min=10,max=2000"`
	Status     string    `json:"status,omitempty" bson:"status" validate:"omitempty,oneof=open in_progress resolved"`
	CreatedAt  time.Time `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty" bson:"updated_at" validate:"omitempty"`
}
