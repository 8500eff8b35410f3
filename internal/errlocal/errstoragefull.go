package errlocal

import "net/http"

// ErrStorageFull signals that persisting a record would exceed the store quota.
type ErrStorageFull struct {
	BaseError
}

func NewErrStorageFull(msg string, system string, details map[string]any) LocalError {
	return &ErrStorageFull{BaseError: newBase(msg, system, details)}
}

func (e *ErrStorageFull) Code() int {
	return http.StatusInsufficientStorage
}
