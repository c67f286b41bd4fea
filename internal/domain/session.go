package domain

import (
	"errors"
	"time"
)

// Sentinel errors returned by session stores. Callers must be able to tell
// "nothing saved" apart from "saved data is unreadable": the first is the
// normal logged-out state, the second must be cleared and warned about.
var (
	ErrNoSession      = errors.New("no stored session")
	ErrCorruptSession = errors.New("stored session is corrupt")
)

// Session represents an active login: an authenticated Identity paired with
// an opaque bearer token. Sessions are immutable — a new login produces a new
// Session that replaces the old one atomically.
type Session struct {
	Identity  Identity  `json:"identity"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Validate checks that the session is structurally sound, including the
// embedded Identity invariant.
func (s *Session) Validate() error {
	if s.Token == "" {
		return ErrValidation("session token is required")
	}
	return s.Identity.Validate()
}

// Expired reports whether the session's expiry has passed. A zero ExpiresAt
// means the session does not expire.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
