package model

import "time"

// SchoolContact holds the reachable details of one school officer.
type SchoolContact struct {
	Name       string `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone      string `json:"phone,omitempty" bson:"phone,omitempty"`
	Email      string `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	TelegramID string `json:"telegram_id,omitempty" bson:"telegram_id,omitempty" validate:"omitempty,max=64"`
}

func (c SchoolContact) Filled() bool {
	return c.Name != "" && c.Phone != "" && c.Email != ""
}

// School is one district school profile, keyed by its ministry school code.
type School struct {
	ID             string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	SchoolCode     string        `json:"school_code" bson:"school_code" validate:"required,schoolcode"`
	SchoolName     string        `json:"school_name" bson:"school_name" validate:"required,min=3,max=150"`
	SchoolType     string        `json:"school_type,omitempty" bson:"school_type,omitempty" validate:"omitempty,max=40"`
	ICTCoordinator SchoolContact `json:"ict_coordinator" bson:"ict_coordinator"`
	DelimaAdmin    SchoolContact `json:"delima_admin" bson:"delima_admin"`
	CreatedAt      time.Time     `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
	UpdatedAt      time.Time     `json:"updated_at,omitempty" bson:"updated_at" validate:"omitempty"`
}

// SchoolProfile decorates a School with flags derived for the directory and
// dashboard views.
type SchoolProfile struct {
	School
	// ProfileComplete: both officer blocks fully filled in.
	ProfileComplete bool `json:"profile_complete"`
	// SharedPhone: ICT coordinator and DELIMa admin registered the same
	// phone number, which usually means one person holds both roles.
	SharedPhone bool `json:"shared_phone"`
	// DistinctPhones: both phones present and different.
	DistinctPhones bool `json:"distinct_phones"`
}

// SchoolUpdate carries a partial profile edit.
type SchoolUpdate struct {
	SchoolName     *string        `json:"school_name,omitempty" validate:"omitempty,min=3,max=150"`
	SchoolType     *string        `json:"school_type,omitempty" validate:"omitempty,max=40"`
	ICTCoordinator *SchoolContact `json:"ict_coordinator,omitempty"`
	DelimaAdmin    *SchoolContact `json:"delima_admin,omitempty"`
}
