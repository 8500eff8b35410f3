package errlocal

import "net/http"

type ErrNotFound struct {
	BaseError
}

func NewErrNotFound(msg string, system string, details map[string]any) LocalError {
	return &ErrNotFound{BaseError: newBase(msg, system, details)}
}

func (e *ErrNotFound) Code() int {
	return http.StatusNotFound
}
