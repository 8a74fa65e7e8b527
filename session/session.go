package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/forestwatch/forestwatch/client"
)

var (
	// ErrMissingCredentials indicates login was called with a blank
	// username or password. The server is never contacted.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrSuperseded indicates an operation completed after a later
	// login or logout had already taken effect; its result was discarded.
	ErrSuperseded = errors.New("session changed while operation was in flight")
)

// State is the session tuple consumed by protected views.
type State struct {
	Identity *client.User
	Loading  bool
}

// Manager owns the session lifecycle. It keeps the persisted credential,
// the client's default bearer token and the hydrated identity in step:
// identity is present exactly when a credential has been accepted by the
// server since the last logout or failed restore.
//
// State mutations follow last-completed-wins: an operation whose network
// phase straddles a completed login or logout discards its result instead
// of reviving a stale session.
type Manager struct {
	client *client.Client
	creds  CredentialStore

	mu       sync.Mutex
	identity *client.User
	loading  bool
	gen      uint64 // bumped on every completed state change
}

// NewManager creates a Manager in the initial loading state. Call Restore
// to settle it.
func NewManager(c *client.Client, creds CredentialStore) *Manager {
	return &Manager{client: c, creds: creds, loading: true}
}

// State returns the current session state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return State{Identity: m.identity, Loading: m.loading}
}

// Restore hydrates the session from the persisted credential. It never
// fails outward: any error settles the session to logged-out and removes
// the credential. A credential whose JWT expiry has already passed is
// cleared without a network round-trip. Calling Restore again with no
// credential change is a no-op in effect.
func (m *Manager) Restore(ctx context.Context) {
	m.mu.Lock()
	token, err := m.creds.Load()
	if err != nil {
		m.settleLoggedOutLocked(false)
		m.mu.Unlock()
		return
	}
	if exp, ok := TokenExpiry(token); ok && time.Now().After(exp) {
		m.settleLoggedOutLocked(true)
		m.mu.Unlock()
		return
	}
	m.client.SetToken(token)
	gen := m.gen
	m.mu.Unlock()

	user, err := m.client.Me(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		// A login or logout completed first; its outcome stands.
		return
	}
	if err != nil {
		m.settleLoggedOutLocked(true)
		return
	}
	m.identity = &user
	m.loading = false
	m.gen++
}

// Login authenticates, persists the credential, configures the client and
// hydrates the identity. On any failure the session settles to logged-out
// and the transport error is returned untouched so the caller can present
// the server's reason — the one place errors are not swallowed.
func (m *Manager) Login(ctx context.Context, username, password string) (client.User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return client.User{}, ErrMissingCredentials
	}

	m.mu.Lock()
	gen := m.gen
	m.mu.Unlock()

	token, err := m.client.Login(ctx, username, password)
	if err != nil {
		m.mu.Lock()
		if m.gen == gen {
			m.settleLoggedOutLocked(true)
		}
		m.mu.Unlock()
		return client.User{}, err
	}

	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return client.User{}, ErrSuperseded
	}
	m.client.SetToken(token.AccessToken)
	m.mu.Unlock()

	user, err := m.client.Me(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		return client.User{}, ErrSuperseded
	}
	if err != nil {
		m.settleLoggedOutLocked(true)
		return client.User{}, err
	}
	if err := m.creds.Save(token.AccessToken); err != nil {
		m.settleLoggedOutLocked(true)
		return client.User{}, err
	}
	m.identity = &user
	m.loading = false
	m.gen++
	return user, nil
}

// Signup registers a new account. It is a pure pass-through: the session
// is not mutated and errors propagate unchanged.
func (m *Manager) Signup(ctx context.Context, req client.RegisterRequest) (client.User, error) {
	return m.client.Register(ctx, req)
}

// Logout clears the persisted credential, the client's bearer token and
// the identity. Local only; the server is not contacted.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settleLoggedOutLocked(true)
}

// settleLoggedOutLocked moves the session to the logged-out steady state.
// clearCreds also removes the persisted credential and the client token.
// Callers must hold m.mu.
func (m *Manager) settleLoggedOutLocked(clearCreds bool) {
	if clearCreds {
		_ = m.creds.Clear()
		m.client.ClearToken()
	}
	m.identity = nil
	m.loading = false
	m.gen++
}
