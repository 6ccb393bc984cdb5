package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-user-profile/internal/logger"
	"github.com/sbilibin2017/gw-user-profile/internal/middlewares"
	"github.com/sbilibin2017/gw-user-profile/internal/models"
	"github.com/sbilibin2017/gw-user-profile/internal/services"
)

//go:generate mockgen -source=profile.go -destination=mock_profile.go -package=handlers

// ProfileReader defines the interface used to read the caller's profile.
type ProfileReader interface {
	Get(ctx context.Context, identity models.Identity) (*models.UserWithProfile, error)
}

// ProfileUpdater defines the interface used to apply partial profile updates.
type ProfileUpdater interface {
	Update(ctx context.Context, userID int64, update models.ProfileUpdate) ([]models.FieldChange, error)
}

// UpdateProfileRequest represents a partial profile update. Omitted fields
// keep their current values; any other key is rejected.
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	// New display name
	// default: Kim
	Name *string `json:"name,omitempty"`

	// New age
	// default: 25
	Age *int `json:"age,omitempty"`

	// New gender
	// default: M
	Gender *string `json:"gender,omitempty"`

	// New profile image URL
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
}

// ProfileUpdate converts the request into the service form.
func (req UpdateProfileRequest) ProfileUpdate() models.ProfileUpdate {
	return models.ProfileUpdate{
		Name:            req.Name,
		Age:             req.Age,
		Gender:          req.Gender,
		ProfileImageURL: req.ProfileImageURL,
	}
}

// NewGetProfileHandler returns an HTTP handler for reading the caller's profile.
// @Summary Get user with profile
// @Description Returns the authenticated user together with the profile
// @Tags users
// @Produce json
// @Success 200 {object} models.UserWithProfile "User with profile"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Profile not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users [get]
// @Security BearerAuth
// @Security SessionAuth
func NewGetProfileHandler(svc ProfileReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		identity, ok := middlewares.IdentityFromContext(ctx)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := svc.Get(ctx, identity)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrProfileNotFound):
				writeError(w, http.StatusNotFound, "Profile not found")
			default:
				logger.FromContext(ctx).Errorw("failed to get profile", "user_id", identity.UserID, "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// NewUpdateProfileHandler returns an HTTP handler for partial profile updates.
// @Summary Update profile
// @Description Applies the supplied fields. Every field whose value actually changes is recorded in the history, atomically with the update.
// @Tags users
// @Accept json
// @Produce json
// @Param updateProfileRequest body handlers.UpdateProfileRequest true "Fields to change"
// @Success 204 "Profile updated"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body or unknown field"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Profile not found"
// @Failure 409 {object} handlers.ErrorResponse "Concurrent update, retry"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users [patch]
// @Security BearerAuth
// @Security SessionAuth
func NewUpdateProfileHandler(svc ProfileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		identity, ok := middlewares.IdentityFromContext(ctx)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req UpdateProfileRequest
		if err := decodeStrict(r.Body, &req); err != nil {
			logger.FromContext(ctx).Infow("rejected profile update", "user_id", identity.UserID, "err", err)
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Age != nil && *req.Age < 0 {
			writeError(w, http.StatusBadRequest, "age must not be negative")
			return
		}

		if _, err := svc.Update(ctx, identity.UserID, req.ProfileUpdate()); err != nil {
			switch {
			case errors.Is(err, services.ErrProfileNotFound):
				writeError(w, http.StatusNotFound, "Profile not found")
			case errors.Is(err, services.ErrAbortedDueToConflict):
				writeError(w, http.StatusConflict, "Concurrent update, retry")
			default:
				logger.FromContext(ctx).Errorw("failed to update profile", "user_id", identity.UserID, "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
