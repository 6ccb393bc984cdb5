package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-profile/internal/logger"
	"github.com/sbilibin2017/gw-user-profile/internal/models"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=services

// UserByEmailGetter looks users up by email.
type UserByEmailGetter interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// Registrar creates a user together with its profile.
type Registrar interface {
	Register(ctx context.Context, email, passwordHash string, profile models.UserProfile) (int64, error)
}

// TokenGenerator mints bearer tokens.
type TokenGenerator interface {
	Generate(ctx context.Context, userID int64) (string, time.Time, error)
}

// SessionWriter creates and removes sessions in the durable registry.
type SessionWriter interface {
	Create(ctx context.Context, session models.Session) error
	Delete(ctx context.Context, sessionID string) error
}

// AuthService handles sign-up, sign-in and sign-out. It is the only producer
// of the credentials IdentityResolver consumes.
type AuthService struct {
	mode       AuthMode
	users      UserByEmailGetter
	registrar  Registrar
	tokens     TokenGenerator
	sessions   SessionWriter
	cache      SessionCache
	sessionTTL time.Duration
	now        func() time.Time
}

// NewBearerAuthService issues signed tokens on sign-in.
func NewBearerAuthService(users UserByEmailGetter, registrar Registrar, tokens TokenGenerator) *AuthService {
	return &AuthService{
		mode:      AuthModeBearer,
		users:     users,
		registrar: registrar,
		tokens:    tokens,
		now:       time.Now,
	}
}

// NewSessionAuthService issues sessions living for ttl on sign-in. cache may be nil.
func NewSessionAuthService(users UserByEmailGetter, registrar Registrar, sessions SessionWriter, cache SessionCache, ttl time.Duration) *AuthService {
	return &AuthService{
		mode:       AuthModeSession,
		users:      users,
		registrar:  registrar,
		sessions:   sessions,
		cache:      cache,
		sessionTTL: ttl,
		now:        time.Now,
	}
}

// SignUp registers a new user with its initial profile.
func (svc *AuthService) SignUp(ctx context.Context, email, password string, profile models.UserProfile) (int64, error) {
	log := logger.FromContext(ctx)

	existing, err := svc.users.GetByEmail(ctx, email)
	if err != nil {
		log.Errorw("failed to check user exists", "error", err)
		return 0, err
	}
	if existing != nil {
		log.Infow("user already exists", "email", email)
		return 0, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorw("failed to hash password", "error", err)
		return 0, err
	}

	userID, err := svc.registrar.Register(ctx, email, string(hashedPassword), profile)
	if err != nil {
		if !errors.Is(err, ErrUserAlreadyExists) {
			log.Errorw("failed to register user", "error", err)
		}
		return 0, err
	}
	return userID, nil
}

// SignIn verifies the password and issues a credential. An unknown email and
// a wrong password both fail with ErrInvalidCredentials and issue nothing.
func (svc *AuthService) SignIn(ctx context.Context, email, password string) (*models.Credential, error) {
	log := logger.FromContext(ctx)

	user, err := svc.users.GetByEmail(ctx, email)
	if err != nil {
		log.Errorw("failed to get user", "error", err)
		return nil, err
	}
	if user == nil {
		log.Infow("sign-in rejected", "reason", "unknown email")
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Infow("sign-in rejected", "reason", "password mismatch", "user_id", user.UserID)
		return nil, ErrInvalidCredentials
	}

	if svc.mode == AuthModeSession {
		return svc.issueSession(ctx, user)
	}
	return svc.issueToken(ctx, user)
}

func (svc *AuthService) issueToken(ctx context.Context, user *models.UserDB) (*models.Credential, error) {
	token, expiresAt, err := svc.tokens.Generate(ctx, user.UserID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to generate JWT", "user_id", user.UserID, "error", err)
		return nil, err
	}

	return &models.Credential{
		Scheme:    models.SchemeBearer,
		Value:     models.SchemeBearer + " " + token,
		ExpiresAt: expiresAt,
		Identity:  user.Identity(),
	}, nil
}

func (svc *AuthService) issueSession(ctx context.Context, user *models.UserDB) (*models.Credential, error) {
	session := models.Session{
		SessionID: uuid.NewString(),
		UserID:    user.UserID,
		ExpiresAt: svc.now().Add(svc.sessionTTL).UTC(),
	}
	if err := svc.sessions.Create(ctx, session); err != nil {
		logger.FromContext(ctx).Errorw("failed to create session", "user_id", user.UserID, "error", err)
		return nil, err
	}

	return &models.Credential{
		Scheme:    models.SchemeSession,
		Value:     session.SessionID,
		ExpiresAt: session.ExpiresAt,
		Identity:  user.Identity(),
	}, nil
}

// SignOut removes a session from the registry and the cache. A failed cache
// eviction is returned, since a cached session keeps resolving until its TTL.
// In bearer mode there is nothing to revoke.
func (svc *AuthService) SignOut(ctx context.Context, sessionID string) error {
	if svc.mode != AuthModeSession || sessionID == "" {
		return nil
	}

	if err := svc.sessions.Delete(ctx, sessionID); err != nil {
		logger.FromContext(ctx).Errorw("failed to delete session", "error", err)
		return err
	}
	if svc.cache != nil {
		if err := svc.cache.Delete(ctx, sessionID); err != nil {
			logger.FromContext(ctx).Errorw("failed to evict session from cache", "error", err)
			return err
		}
	}
	return nil
}
