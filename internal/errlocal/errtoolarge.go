package errlocal

import "net/http"

// ErrTooLarge rejects an upload whose size exceeds the configured ceiling.
type ErrTooLarge struct {
	BaseError
}

func NewErrTooLarge(msg string, system string, details map[string]any) LocalError {
	return &ErrTooLarge{BaseError: newBase(msg, system, details)}
}

func (e *ErrTooLarge) Code() int {
	return http.StatusRequestEntityTooLarge
}
