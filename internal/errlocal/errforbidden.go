package errlocal

import "net/http"

type ErrForbidden struct {
	BaseError
}

func NewErrForbidden(msg string, system string, details map[string]any) LocalError {
	return &ErrForbidden{BaseError: newBase(msg, system, details)}
}

func (e *ErrForbidden) Code() int {
	return http.StatusForbidden
}
