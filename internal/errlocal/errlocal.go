package errlocal

import (
	"fmt"
	"strings"
)

const (
	messagePrefix = "message: "
	systemPrefix  = "system: "
	detailsPrefix = "details: "
)

// LocalError is the error shape every handler ultimately writes to the client:
// a user-facing message, an internal system detail, and an HTTP status code.
type LocalError interface {
	error
	Message() string
	System() string
	Details() map[string]any
	Code() int
	Base() *BaseError
}

type BaseError struct {
	Msg        string         `json:"message,omitempty"`
	Sys        string         `json:"system,omitempty"`
	DetailsMap map[string]any `json:"details,omitempty"`
}

func newBase(msg, system string, details map[string]any) BaseError {
	return BaseError{
		Msg:        msg,
		Sys:        system,
		DetailsMap: details,
	}
}

func (e *BaseError) Error() string {
	b := strings.Builder{}
	if e.Msg != "" {
		b.WriteString(messagePrefix + e.Msg)
	}
	if e.Sys != "" {
		b.WriteByte(' ')
		b.WriteString(systemPrefix + e.Sys + " ")
	}
	if len(e.DetailsMap) > 0 {
		b.WriteString(detailsPrefix)
		for key, value := range e.DetailsMap {
			b.WriteString(key + ": " + fmt.Sprintf("%v", value) + "\n")
		}
	}
	return b.String()
}

func (e *BaseError) Message() string {
	return e.Msg
}

func (e *BaseError) System() string {
	return e.Sys
}

func (e *BaseError) Details() map[string]any {
	return e.DetailsMap
}

func (e *BaseError) Code() int {
	return 500
}

func (e *BaseError) Base() *BaseError {
	return e
}
