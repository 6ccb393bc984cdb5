package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sbilibin2017/gw-user-profile/internal/jwt"
	"github.com/sbilibin2017/gw-user-profile/internal/logger"
	"github.com/sbilibin2017/gw-user-profile/internal/models"
)

//go:generate mockgen -source=identity.go -destination=mock_identity.go -package=services

// UserGetter looks users up by id.
type UserGetter interface {
	GetByID(ctx context.Context, userID int64) (*models.UserDB, error)
}

// TokenParser verifies a bearer token and returns the user id it carries.
type TokenParser interface {
	GetUserID(ctx context.Context, tokenString string) (int64, error)
}

// SessionReader reads the durable session registry.
type SessionReader interface {
	GetByID(ctx context.Context, sessionID string) (*models.Session, error)
}

// SessionCache is an optional read-through cache in front of SessionReader.
type SessionCache interface {
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	Set(ctx context.Context, session models.Session) error
	Delete(ctx context.Context, sessionID string) error
}

// IdentityResolver turns a raw request credential into a verified identity.
// It keeps no state between calls and never writes to the user tables.
type IdentityResolver struct {
	mode     AuthMode
	users    UserGetter
	tokens   TokenParser
	sessions SessionReader
	cache    SessionCache
	now      func() time.Time
}

// NewBearerIdentityResolver accepts "Bearer <token>" credentials.
func NewBearerIdentityResolver(users UserGetter, tokens TokenParser) *IdentityResolver {
	return &IdentityResolver{
		mode:   AuthModeBearer,
		users:  users,
		tokens: tokens,
		now:    time.Now,
	}
}

// NewSessionIdentityResolver accepts session ids. cache may be nil.
func NewSessionIdentityResolver(users UserGetter, sessions SessionReader, cache SessionCache) *IdentityResolver {
	return &IdentityResolver{
		mode:     AuthModeSession,
		users:    users,
		sessions: sessions,
		cache:    cache,
		now:      time.Now,
	}
}

// Mode reports the credential shape the resolver accepts.
func (r *IdentityResolver) Mode() AuthMode {
	return r.mode
}

// Resolve verifies credential and returns the identity of its user.
func (r *IdentityResolver) Resolve(ctx context.Context, credential string) (*models.Identity, error) {
	if credential == "" {
		return nil, ErrUnauthenticated
	}

	var (
		userID int64
		err    error
	)
	switch r.mode {
	case AuthModeSession:
		userID, err = r.resolveSession(ctx, credential)
	default:
		userID, err = r.resolveBearer(ctx, credential)
	}
	if err != nil {
		return nil, err
	}

	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	identity := user.Identity()
	return &identity, nil
}

func (r *IdentityResolver) resolveBearer(ctx context.Context, credential string) (int64, error) {
	parts := strings.Split(credential, " ")
	if len(parts) != 2 || parts[0] != models.SchemeBearer || parts[1] == "" {
		return 0, ErrMalformedCredential
	}

	userID, err := r.tokens.GetUserID(ctx, parts[1])
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		logger.FromContext(ctx).Debugw("token rejected", "error", err)
		return 0, ErrTokenInvalid
	}
	return userID, nil
}

func (r *IdentityResolver) resolveSession(ctx context.Context, sessionID string) (int64, error) {
	var session *models.Session

	if r.cache != nil {
		cached, err := r.cache.Get(ctx, sessionID)
		if err != nil {
			logger.FromContext(ctx).Warnw("session cache unavailable, falling back to database", "error", err)
		}
		session = cached
	}

	if session == nil {
		stored, err := r.sessions.GetByID(ctx, sessionID)
		if err != nil {
			logger.FromContext(ctx).Errorw("failed to get session", "error", err)
			return 0, fmt.Errorf("get session: %w", err)
		}
		if stored == nil {
			return 0, ErrSessionNotFound
		}
		session = stored

		if r.cache != nil && !session.Expired(r.now()) {
			if err := r.cache.Set(ctx, *session); err != nil {
				logger.FromContext(ctx).Warnw("failed to cache session", "error", err)
			}
		}
	}

	if session.Expired(r.now()) {
		return 0, ErrSessionNotFound
	}
	return session.UserID, nil
}
