// Package client is a Go client for the rebyuwer API. It owns the session
// lifecycle: the token issued at login is held in an explicit Session
// object, attached as a bearer credential to every request, and cleared
// the moment the server rejects it.
package client

import "sync"

// Session holds the current token and the reason a previous session ended.
// It is safe for concurrent use. There is no ambient global state; callers
// pass the session to the Client explicitly.
type Session struct {
	mu      sync.Mutex
	token   string
	role    string
	expired bool
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Set stores a freshly issued token and its role, clearing any recorded
// expiry from a previous session.
func (s *Session) Set(token, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.role = role
	s.expired = false
}

// Token returns the stored token, or "" when logged out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Role returns the role recorded at login.
func (s *Session) Role() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

// Clear discards the token. markExpired records why, so the UI can show a
// "session expired" notice instead of a plain login prompt.
func (s *Session) Clear(markExpired bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.role = ""
	s.expired = markExpired
}

// Expired reports whether the last session ended because the server
// rejected its token, and resets the flag.
func (s *Session) Expired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	expired := s.expired
	s.expired = false
	return expired
}
