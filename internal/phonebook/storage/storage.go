// Package storage provides the two key-value stores the session layer
// relies on: a durable store that survives restarts (holding exactly one
// key, the bearer token) and a session-scoped store that lives only for
// the process (holding exactly one key, the 2FA-verified flag).
package storage

import "errors"

// ErrNotFound reports a missing key.
var ErrNotFound = errors.New("storage: key not found")

// Keys used by the session layer. Nothing else writes to the stores.
const (
	// TokenKey is the single durable key, the persisted bearer token.
	TokenKey = "token"

	// TwoFactorVerifiedKey is the single session-scoped key, set once the
	// current session has passed a 2FA challenge.
	TwoFactorVerifiedKey = "2fa_verified"
)

// Durable persists values across process restarts.
type Durable interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Ephemeral holds values for the lifetime of the process only. Deleting
// a missing key is a no-op; Get returns ErrNotFound for absent keys so
// both stores read the same way.
type Ephemeral interface {
	Get(key string) (string, error)
	Set(key, value string)
	Delete(key string)
}
