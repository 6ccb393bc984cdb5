package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sbilibin2017/gw-user-profile/internal/logger"
	"github.com/sbilibin2017/gw-user-profile/internal/models"
	"github.com/sbilibin2017/gw-user-profile/internal/uow"
)

// TransactionCoordinator is the only writer of users, user_profiles and
// user_histories. Each call runs in one read-committed unit of work and
// either commits everything or nothing.
//
// There is no optimistic versioning: two updates racing between snapshot and
// commit both succeed and the later commit wins. Conflicts the storage layer
// does report are returned, never retried.
type TransactionCoordinator struct {
	beginner uow.Beginner
	now      func() time.Time
}

func NewTransactionCoordinator(beginner uow.Beginner) *TransactionCoordinator {
	return &TransactionCoordinator{
		beginner: beginner,
		now:      time.Now,
	}
}

// Apply writes the merged profile row and one history row per change.
func (c *TransactionCoordinator) Apply(ctx context.Context, userID int64, changes []models.FieldChange, profile models.UserProfile) error {
	log := logger.FromContext(ctx)

	work, err := c.beginner.Begin(ctx)
	if err != nil {
		log.Errorw("failed to begin profile update", "user_id", userID, "error", err)
		return abort(err)
	}
	defer func() {
		if rec := recover(); rec != nil {
			work.Rollback()
			panic(rec)
		}
	}()

	profile.UserID = userID
	if err := work.UpdateProfile(ctx, profile); err != nil {
		log.Errorw("failed to update profile", "user_id", userID, "error", err)
		return rollback(ctx, work, err)
	}

	changedAt := c.now().UTC()
	for _, change := range changes {
		history := models.UserHistory{
			UserID:       userID,
			ChangedField: change.Field.String(),
			OldValue:     change.OldValue,
			NewValue:     change.NewValue,
			ChangedAt:    changedAt,
		}
		if err := work.InsertHistory(ctx, history); err != nil {
			log.Errorw("failed to insert history", "user_id", userID, "field", history.ChangedField, "error", err)
			return rollback(ctx, work, err)
		}
	}

	if err := work.Commit(); err != nil {
		log.Errorw("failed to commit profile update", "user_id", userID, "error", err)
		return rollback(ctx, work, err)
	}

	log.Infow("profile updated", "user_id", userID, "changes", len(changes))
	return nil
}

// Register creates a user and its profile together.
func (c *TransactionCoordinator) Register(ctx context.Context, email, passwordHash string, profile models.UserProfile) (int64, error) {
	log := logger.FromContext(ctx)

	work, err := c.beginner.Begin(ctx)
	if err != nil {
		log.Errorw("failed to begin registration", "error", err)
		return 0, abort(err)
	}
	defer func() {
		if rec := recover(); rec != nil {
			work.Rollback()
			panic(rec)
		}
	}()

	userID, err := work.CreateUser(ctx, email, passwordHash)
	if err != nil {
		if errors.Is(err, uow.ErrDuplicate) {
			if err := work.Rollback(); err != nil {
				log.Errorw("failed to roll back", "error", err, "cause", uow.ErrDuplicate)
			}
			return 0, ErrUserAlreadyExists
		}
		log.Errorw("failed to create user", "error", err)
		return 0, rollback(ctx, work, err)
	}

	profile.UserID = userID
	if err := work.CreateProfile(ctx, profile); err != nil {
		log.Errorw("failed to create profile", "user_id", userID, "error", err)
		return 0, rollback(ctx, work, err)
	}

	if err := work.Commit(); err != nil {
		log.Errorw("failed to commit registration", "user_id", userID, "error", err)
		return 0, rollback(ctx, work, err)
	}

	log.Infow("user registered", "user_id", userID)
	return userID, nil
}

// rollback discards work and returns cause classified as an abort.
func rollback(ctx context.Context, work uow.UnitOfWork, cause error) error {
	if err := work.Rollback(); err != nil {
		logger.FromContext(ctx).Errorw("failed to roll back", "error", err, "cause", cause)
	}
	return abort(cause)
}

func abort(cause error) error {
	if errors.Is(cause, uow.ErrConflict) {
		return fmt.Errorf("%w: %w", ErrAbortedDueToConflict, cause)
	}
	return fmt.Errorf("%w: %w", ErrAbortedDueToFault, cause)
}
