// Package session owns the authenticated session: the persisted bearer
// credential, the hydrated identity, and the lifecycle operations every
// protected view depends on.
package session

import "errors"

// ErrNoCredential indicates no credential is persisted.
var ErrNoCredential = errors.New("no stored credential")

// CredentialStore abstracts credential persistence so the session can be
// backed by a durable store (default) or an in-memory fake in tests.
type CredentialStore interface {
	// Load returns the persisted credential, or ErrNoCredential.
	Load() (string, error)
	// Save persists the credential, replacing any previous one.
	Save(token string) error
	// Clear removes the persisted credential. Clearing an empty store
	// is not an error.
	Clear() error
}
