package services

import "fmt"

// AuthMode selects which credential shape a deployment issues and accepts.
type AuthMode string

const (
	AuthModeBearer  AuthMode = "bearer"
	AuthModeSession AuthMode = "session"
)

// ParseAuthMode validates a configured mode.
func ParseAuthMode(s string) (AuthMode, error) {
	switch m := AuthMode(s); m {
	case AuthModeBearer, AuthModeSession:
		return m, nil
	default:
		return "", fmt.Errorf("unknown auth mode %q", s)
	}
}
