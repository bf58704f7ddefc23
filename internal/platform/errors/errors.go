package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrNoActiveContraction = errors.New("no active contraction")
	ErrSetStorage          = errors.New("saved sets storage failure")
)
