package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-user-profile/internal/logger"
	"github.com/sbilibin2017/gw-user-profile/internal/models"
	"github.com/sbilibin2017/gw-user-profile/internal/services"
)

//go:generate mockgen -source=signup.go -destination=mock_signup.go -package=handlers

// SignUpper defines the interface that the sign-up service must implement.
type SignUpper interface {
	SignUp(ctx context.Context, email, password string, profile models.UserProfile) (int64, error)
}

// SignUpRequest represents the JSON body for user registration
// swagger:model SignUpRequest
type SignUpRequest struct {
	// Email
	// required: true
	// default: kim@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`

	// Display name
	// default: Kim
	Name string `json:"name"`

	// Age in years
	// default: 20
	Age int `json:"age"`

	// Gender
	// default: M
	Gender string `json:"gender"`

	// Profile image URL
	ProfileImageURL string `json:"profileImageUrl"`
}

// SignUpResponse represents a successful registration response
// swagger:model SignUpResponse
type SignUpResponse struct {
	// Id of the created user
	// default: 1
	UserID int64 `json:"userId"`
}

// NewSignUpHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a user together with its profile. The email must be unique. Password is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param signUpRequest body handlers.SignUpRequest true "Sign-up request"
// @Success 201 {object} handlers.SignUpResponse "User successfully registered"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 409 {object} handlers.ErrorResponse "Email already exists"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /sign-up [post]
func NewSignUpHandler(svc SignUpper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignUpRequest

		if err := decodeStrict(r.Body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "email and password are required")
			return
		}
		if req.Age < 0 {
			writeError(w, http.StatusBadRequest, "age must not be negative")
			return
		}

		profile := models.UserProfile{
			Name:            req.Name,
			Age:             req.Age,
			Gender:          req.Gender,
			ProfileImageURL: req.ProfileImageURL,
		}

		userID, err := svc.SignUp(r.Context(), req.Email, req.Password, profile)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeError(w, http.StatusConflict, "Email already exists")
			default:
				logger.FromContext(r.Context()).Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, SignUpResponse{UserID: userID})
	}
}
