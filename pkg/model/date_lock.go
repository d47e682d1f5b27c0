package model

import "time"

// DateLock is an administrative block on a calendar date. At most one lock
// exists per date; unlocking removes the row rather than flagging it.
type DateLock struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Date      string    `json:"date" bson:"date" validate:"required,civildate"`
	Note      string    `json:"note" bson:"note" validate:"required,min=3,max=200"`
	LockedBy  string    `json:"locked_by" bson:"locked_by" validate:"required,min=2,max=100"`
	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
}
