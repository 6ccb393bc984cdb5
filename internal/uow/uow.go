// Package uow declares the unit of work through which every write to users,
// user_profiles and user_histories passes.
package uow

import (
	"context"
	"errors"

	"github.com/sbilibin2017/gw-user-profile/internal/models"
)

//go:generate mockgen -source=uow.go -destination=mock_uow.go -package=uow

var (
	// ErrConflict marks a storage error caused by a concurrent transaction
	// (serialization failure, deadlock, lock timeout).
	ErrConflict = errors.New("concurrent write conflict")
	// ErrDuplicate marks a unique constraint violation.
	ErrDuplicate = errors.New("duplicate key")
)

// UnitOfWork is an open read-committed transaction. Nothing written through it
// is visible to other readers until Commit succeeds; Rollback discards it all.
type UnitOfWork interface {
	CreateUser(ctx context.Context, email, passwordHash string) (int64, error)
	CreateProfile(ctx context.Context, profile models.UserProfile) error
	UpdateProfile(ctx context.Context, profile models.UserProfile) error
	InsertHistory(ctx context.Context, history models.UserHistory) error
	Commit() error
	Rollback() error
}

// Beginner opens units of work.
type Beginner interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}
