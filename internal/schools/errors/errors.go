package errors

import "errors"

var (
	ErrNotFound = errors.New("school not found")

	ErrInvalidID = errors.New("invalid school ID format")

	ErrDuplicateCode = errors.New("school code already registered")
)
