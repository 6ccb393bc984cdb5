package models

import "time"

// Session represents a sessions row mapping an opaque id to a user.
type Session struct {
	SessionID string    `json:"sessionId" db:"session_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// Credential schemes issued on sign-in.
const (
	SchemeBearer  = "Bearer"
	SchemeSession = "Session"
)

// Credential is what a successful sign-in hands back to the client.
type Credential struct {
	Scheme    string
	Value     string
	ExpiresAt time.Time
	Identity  Identity
}

// Cookies carrying the credential between requests.
const (
	CookieAuthorization = "authorization"
	CookieSessionID     = "session_id"
)
