package errlocal

import "net/http"

type ErrBadRequest struct {
	BaseError
}

func NewErrBadRequest(msg string, system string, details map[string]any) LocalError {
	return &ErrBadRequest{BaseError: newBase(msg, system, details)}
}

func (e *ErrBadRequest) Code() int {
	return http.StatusBadRequest
}
