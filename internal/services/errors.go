package services

import "errors"

// Credential resolution failures.
var (
	ErrUnauthenticated     = errors.New("no credential supplied")
	ErrMalformedCredential = errors.New("malformed credential")
	ErrTokenInvalid        = errors.New("token invalid")
	ErrTokenExpired        = errors.New("token expired")
	ErrSessionNotFound     = errors.New("session not found")
	ErrUserNotFound        = errors.New("user not found")
)

// Sign-up and sign-in failures.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserAlreadyExists  = errors.New("email already exists")
)

// Profile failures.
var (
	ErrProfileNotFound = errors.New("profile not found")
	// ErrAbortedDueToConflict means the storage layer rejected the transaction
	// because of a concurrent write. Nothing was persisted.
	ErrAbortedDueToConflict = errors.New("transaction aborted due to conflict")
	// ErrAbortedDueToFault means storage was unavailable or a constraint was
	// violated. Nothing was persisted.
	ErrAbortedDueToFault = errors.New("transaction aborted due to fault")
)

// IsAuthError reports whether err is one of the credential resolution failures.
func IsAuthError(err error) bool {
	for _, target := range []error{
		ErrUnauthenticated,
		ErrMalformedCredential,
		ErrTokenInvalid,
		ErrTokenExpired,
		ErrSessionNotFound,
		ErrUserNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
