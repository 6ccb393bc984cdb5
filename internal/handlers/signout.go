package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-user-profile/internal/logger"
	"github.com/sbilibin2017/gw-user-profile/internal/models"
)

//go:generate mockgen -source=signout.go -destination=mock_signout.go -package=handlers

// SignOuter defines the interface that the sign-out service must implement.
type SignOuter interface {
	SignOut(ctx context.Context, sessionID string) error
}

// NewSignOutHandler returns an HTTP handler that ends the caller's session
// and clears the credential cookies.
// @Summary User logout
// @Description Deletes the current session. Bearer tokens stay valid until they expire.
// @Tags auth
// @Success 204 "Signed out"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /sign-out [post]
// @Security BearerAuth
// @Security SessionAuth
func NewSignOutHandler(svc SignOuter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if c, err := r.Cookie(models.CookieSessionID); err == nil {
			sessionID = c.Value
		}

		if err := svc.SignOut(r.Context(), sessionID); err != nil {
			logger.FromContext(r.Context()).Errorw("failed to sign out", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		for _, name := range []string{models.CookieAuthorization, models.CookieSessionID} {
			http.SetCookie(w, &http.Cookie{
				Name:     name,
				Value:    "",
				Path:     "/",
				MaxAge:   -1,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
