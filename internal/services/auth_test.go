package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-user-profile/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()
	profile := models.UserProfile{Name: "Kim", Age: 20, Gender: "M"}

	tests := []struct {
		name      string
		mockSetup func(users *MockUserByEmailGetter, registrar *MockRegistrar)
		wantID    int64
		wantErr   error
	}{
		{
			name: "successful registration",
			mockSetup: func(users *MockUserByEmailGetter, registrar *MockRegistrar) {
				users.EXPECT().GetByEmail(gomock.Any(), "kim@example.com").Return(nil, nil)
				registrar.EXPECT().Register(gomock.Any(), "kim@example.com", gomock.Any(), profile).
					DoAndReturn(func(ctx context.Context, email, hash string, p models.UserProfile) (int64, error) {
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("pass123")))
						return 5, nil
					})
			},
			wantID: 5,
		},
		{
			name: "email already taken",
			mockSetup: func(users *MockUserByEmailGetter, registrar *MockRegistrar) {
				users.EXPECT().GetByEmail(gomock.Any(), "kim@example.com").Return(&models.UserDB{UserID: 1}, nil)
			},
			wantErr: ErrUserAlreadyExists,
		},
		{
			name: "email taken concurrently",
			mockSetup: func(users *MockUserByEmailGetter, registrar *MockRegistrar) {
				users.EXPECT().GetByEmail(gomock.Any(), "kim@example.com").Return(nil, nil)
				registrar.EXPECT().Register(gomock.Any(), "kim@example.com", gomock.Any(), profile).Return(int64(0), ErrUserAlreadyExists)
			},
			wantErr: ErrUserAlreadyExists,
		},
		{
			name: "lookup fault",
			mockSetup: func(users *MockUserByEmailGetter, registrar *MockRegistrar) {
				users.EXPECT().GetByEmail(gomock.Any(), "kim@example.com").Return(nil, errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			users := NewMockUserByEmailGetter(ctrl)
			registrar := NewMockRegistrar(ctrl)
			tt.mockSetup(users, registrar)

			svc := NewBearerAuthService(users, registrar, NewMockTokenGenerator(ctrl))
			userID, err := svc.SignUp(ctx, "kim@example.com", "pass123", profile)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantID, userID)
		})
	}
}

func TestAuthService_SignInBearer(t *testing.T) {
	ctx := context.Background()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &models.UserDB{UserID: 7, Email: "kim@example.com", PasswordHash: string(hashed)}
	expiresAt := time.Now().Add(time.Hour)

	tests := []struct {
		name      string
		password  string
		mockSetup func(users *MockUserByEmailGetter, tokens *MockTokenGenerator)
		wantErr   error
	}{
		{
			name:     "successful sign-in",
			password: "secret",
			mockSetup: func(users *MockUserByEmailGetter, tokens *MockTokenGenerator) {
				users.EXPECT().GetByEmail(gomock.Any(), "kim@example.com").Return(user, nil)
				tokens.EXPECT().Generate(gomock.Any(), int64(7)).Return("token123", expiresAt, nil)
			},
		},
		{
			name:     "unknown email",
			password: "secret",
			mockSetup: func(users *MockUserByEmailGetter, tokens *MockTokenGenerator) {
				users.EXPECT().GetByEmail(gomock.Any(), "kim@example.com").Return(nil, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "wrong password issues no token",
			password: "wrong",
			mockSetup: func(users *MockUserByEmailGetter, tokens *MockTokenGenerator) {
				users.EXPECT().GetByEmail(gomock.Any(), "kim@example.com").Return(user, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "token generation fault",
			password: "secret",
			mockSetup: func(users *MockUserByEmailGetter, tokens *MockTokenGenerator) {
				users.EXPECT().GetByEmail(gomock.Any(), "kim@example.com").Return(user, nil)
				tokens.EXPECT().Generate(gomock.Any(), int64(7)).Return("", time.Time{}, errors.New("jwt error"))
			},
			wantErr: errors.New("jwt error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			users := NewMockUserByEmailGetter(ctrl)
			tokens := NewMockTokenGenerator(ctrl)
			tt.mockSetup(users, tokens)

			svc := NewBearerAuthService(users, NewMockRegistrar(ctrl), tokens)
			cred, err := svc.SignIn(ctx, "kim@example.com", tt.password)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, cred)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, &models.Credential{
				Scheme:    models.SchemeBearer,
				Value:     "Bearer token123",
				ExpiresAt: expiresAt,
				Identity:  models.Identity{UserID: 7, Email: "kim@example.com"},
			}, cred)
		})
	}
}

func TestAuthService_SignInSession(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &models.UserDB{UserID: 7, Email: "kim@example.com", PasswordHash: string(hashed)}

	t.Run("creates a session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		users := NewMockUserByEmailGetter(ctrl)
		sessions := NewMockSessionWriter(ctrl)

		var created models.Session
		users.EXPECT().GetByEmail(gomock.Any(), "kim@example.com").Return(user, nil)
		sessions.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, s models.Session) error {
			created = s
			return nil
		})

		svc := NewSessionAuthService(users, NewMockRegistrar(ctrl), sessions, nil, 24*time.Hour)
		svc.now = func() time.Time { return now }

		cred, err := svc.SignIn(ctx, "kim@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, models.SchemeSession, cred.Scheme)
		assert.NotEmpty(t, cred.Value)
		assert.Equal(t, created.SessionID, cred.Value)
		assert.Equal(t, int64(7), created.UserID)
		assert.Equal(t, now.Add(24*time.Hour), created.ExpiresAt)
		assert.Equal(t, created.ExpiresAt, cred.ExpiresAt)
	})

	t.Run("wrong password creates no session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		users := NewMockUserByEmailGetter(ctrl)
		sessions := NewMockSessionWriter(ctrl)
		users.EXPECT().GetByEmail(gomock.Any(), "kim@example.com").Return(user, nil)

		svc := NewSessionAuthService(users, NewMockRegistrar(ctrl), sessions, nil, time.Hour)
		cred, err := svc.SignIn(ctx, "kim@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, cred)
	})

	t.Run("session store fault", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		users := NewMockUserByEmailGetter(ctrl)
		sessions := NewMockSessionWriter(ctrl)
		users.EXPECT().GetByEmail(gomock.Any(), "kim@example.com").Return(user, nil)
		sessions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		svc := NewSessionAuthService(users, NewMockRegistrar(ctrl), sessions, nil, time.Hour)
		cred, err := svc.SignIn(ctx, "kim@example.com", "secret")
		assert.EqualError(t, err, "db down")
		assert.Nil(t, cred)
	})
}

func TestAuthService_SignOut(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes session and cache entry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		sessions := NewMockSessionWriter(ctrl)
		cache := NewMockSessionCache(ctrl)
		sessions.EXPECT().Delete(gomock.Any(), "sid").Return(nil)
		cache.EXPECT().Delete(gomock.Any(), "sid").Return(nil)

		svc := NewSessionAuthService(NewMockUserByEmailGetter(ctrl), NewMockRegistrar(ctrl), sessions, cache, time.Hour)
		assert.NoError(t, svc.SignOut(ctx, "sid"))
	})

	t.Run("cache eviction fault", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		sessions := NewMockSessionWriter(ctrl)
		cache := NewMockSessionCache(ctrl)
		sessions.EXPECT().Delete(gomock.Any(), "sid").Return(nil)
		cache.EXPECT().Delete(gomock.Any(), "sid").Return(errors.New("redis down"))

		svc := NewSessionAuthService(NewMockUserByEmailGetter(ctrl), NewMockRegistrar(ctrl), sessions, cache, time.Hour)
		assert.EqualError(t, svc.SignOut(ctx, "sid"), "redis down")
	})

	t.Run("signed out session no longer resolves", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		sessions := NewMockSessionWriter(ctrl)
		cache := NewMockSessionCache(ctrl)
		reader := NewMockSessionReader(ctrl)
		users := NewMockUserGetter(ctrl)

		sessions.EXPECT().Delete(gomock.Any(), "sid").Return(nil)
		cache.EXPECT().Delete(gomock.Any(), "sid").Return(nil)
		cache.EXPECT().Get(gomock.Any(), "sid").Return(nil, nil)
		reader.EXPECT().GetByID(gomock.Any(), "sid").Return(nil, nil)

		svc := NewSessionAuthService(NewMockUserByEmailGetter(ctrl), NewMockRegistrar(ctrl), sessions, cache, time.Hour)
		require.NoError(t, svc.SignOut(ctx, "sid"))

		resolver := NewSessionIdentityResolver(users, reader, cache)
		identity, err := resolver.Resolve(ctx, "sid")
		assert.ErrorIs(t, err, ErrSessionNotFound)
		assert.Nil(t, identity)
	})

	t.Run("registry fault", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		sessions := NewMockSessionWriter(ctrl)
		sessions.EXPECT().Delete(gomock.Any(), "sid").Return(errors.New("db down"))

		svc := NewSessionAuthService(NewMockUserByEmailGetter(ctrl), NewMockRegistrar(ctrl), sessions, nil, time.Hour)
		assert.Error(t, svc.SignOut(ctx, "sid"))
	})

	t.Run("bearer mode has nothing to revoke", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := NewBearerAuthService(NewMockUserByEmailGetter(ctrl), NewMockRegistrar(ctrl), NewMockTokenGenerator(ctrl))
		assert.NoError(t, svc.SignOut(ctx, "Bearer x"))
	})
}
