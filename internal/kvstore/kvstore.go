// Package kvstore provides durable key-value persistence of JSON-serializable
// records. Callers namespace keys themselves (per user, per record kind); the
// store treats keys as opaque.
package kvstore

import "errors"

var (
	// ErrCorruptRecord reports that stored bytes exist for the key but do not
	// parse as the expected JSON value.
	ErrCorruptRecord = errors.New("corrupt record")
	// ErrQuotaExceeded reports that a write would push the store past its
	// configured byte quota.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

type Store interface {
	// Read unmarshals the value stored under key into out. The bool result is
	// false when the key was never written; that is not an error.
	Read(key string, out any) (bool, error)
	// Write serializes value and stores it under key, replacing any prior
	// value. Full overwrite, no merge.
	Write(key string, value any) error
	Close() error
}
