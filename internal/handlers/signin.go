package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sbilibin2017/gw-user-profile/internal/logger"
	"github.com/sbilibin2017/gw-user-profile/internal/models"
	"github.com/sbilibin2017/gw-user-profile/internal/services"
)

//go:generate mockgen -source=signin.go -destination=mock_signin.go -package=handlers

// SignInner defines the interface that the sign-in service must implement.
type SignInner interface {
	SignIn(ctx context.Context, email, password string) (*models.Credential, error)
}

// SignInRequest represents the JSON body for user login
// swagger:model SignInRequest
type SignInRequest struct {
	// Email
	// required: true
	// default: kim@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// SignInResponse represents a successful login response
// swagger:model SignInResponse
type SignInResponse struct {
	// Credential scheme, Bearer or Session
	// default: Bearer
	Scheme string `json:"scheme"`

	// Value to send back, either in the Authorization header or as the session_id cookie
	// default: Bearer JWT_TOKEN
	Credential string `json:"credential"`

	// Expiry of the credential
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewSignInHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Verifies the password and issues a bearer token or a session, depending on the deployment mode.
// @Description The credential is returned in the body and set as a cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param signInRequest body handlers.SignInRequest true "Sign-in request"
// @Success 200 {object} handlers.SignInResponse "Credential issued"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.ErrorResponse "Invalid email or password"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /sign-in [post]
func NewSignInHandler(svc SignInner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignInRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		cred, err := svc.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				writeError(w, http.StatusUnauthorized, "Invalid email or password")
			default:
				logger.FromContext(r.Context()).Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		http.SetCookie(w, credentialCookie(cred))
		writeJSON(w, http.StatusOK, SignInResponse{
			Scheme:     cred.Scheme,
			Credential: cred.Value,
			ExpiresAt:  cred.ExpiresAt,
		})
	}
}

func credentialCookie(cred *models.Credential) *http.Cookie {
	name := models.CookieAuthorization
	if cred.Scheme == models.SchemeSession {
		name = models.CookieSessionID
	}
	return &http.Cookie{
		Name:     name,
		Value:    cred.Value,
		Path:     "/",
		Expires:  cred.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
