package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrLockNotFound = errors.New("date lock not found")

	ErrSlotOccupied = errors.New("active booking already exists for this date and session")
)
