package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-user-profile/internal/logger"
	"github.com/sbilibin2017/gw-user-profile/internal/middlewares"
	"github.com/sbilibin2017/gw-user-profile/internal/models"
)

//go:generate mockgen -source=history.go -destination=mock_history.go -package=handlers

// HistoryReader defines the interface used to list profile history.
type HistoryReader interface {
	History(ctx context.Context, userID int64) ([]models.UserHistory, error)
}

// HistoryResponse represents the caller's profile history, newest first
// swagger:model HistoryResponse
type HistoryResponse struct {
	Histories []models.UserHistory `json:"histories"`
}

// NewHistoryHandler returns an HTTP handler listing the caller's profile changes.
// @Summary List profile history
// @Description Returns one entry per changed field, newest first
// @Tags users
// @Produce json
// @Success 200 {object} handlers.HistoryResponse "Profile history"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users/histories [get]
// @Security BearerAuth
// @Security SessionAuth
func NewHistoryHandler(svc HistoryReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		identity, ok := middlewares.IdentityFromContext(ctx)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		histories, err := svc.History(ctx, identity.UserID)
		if err != nil {
			logger.FromContext(ctx).Errorw("failed to list histories", "user_id", identity.UserID, "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if histories == nil {
			histories = []models.UserHistory{}
		}

		writeJSON(w, http.StatusOK, HistoryResponse{Histories: histories})
	}
}
