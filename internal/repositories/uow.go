package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-user-profile/internal/logger"
	"github.com/sbilibin2017/gw-user-profile/internal/models"
	"github.com/sbilibin2017/gw-user-profile/internal/uow"
)

// TxManager opens read-committed units of work on a database.
type TxManager struct {
	db *sqlx.DB
}

func NewTxManager(db *sqlx.DB) *TxManager {
	return &TxManager{db: db}
}

// Begin starts a transaction and binds the write repositories to it.
func (m *TxManager) Begin(ctx context.Context) (uow.UnitOfWork, error) {
	tx, err := m.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to begin transaction", "error", err)
		return nil, classifyError(err)
	}

	return &unitOfWork{
		tx:        tx,
		users:     NewUserWriteRepository(tx),
		profiles:  NewProfileWriteRepository(tx),
		histories: NewHistoryWriteRepository(tx),
	}, nil
}

type unitOfWork struct {
	tx        *sqlx.Tx
	users     *UserWriteRepository
	profiles  *ProfileWriteRepository
	histories *HistoryWriteRepository
}

func (u *unitOfWork) CreateUser(ctx context.Context, email, passwordHash string) (int64, error) {
	return u.users.Create(ctx, email, passwordHash)
}

func (u *unitOfWork) CreateProfile(ctx context.Context, profile models.UserProfile) error {
	return u.profiles.Create(ctx, profile)
}

func (u *unitOfWork) UpdateProfile(ctx context.Context, profile models.UserProfile) error {
	return u.profiles.Update(ctx, profile)
}

func (u *unitOfWork) InsertHistory(ctx context.Context, history models.UserHistory) error {
	return u.histories.Insert(ctx, history)
}

func (u *unitOfWork) Commit() error {
	return classifyError(u.tx.Commit())
}

// Rollback is safe to call after Commit; it then does nothing.
func (u *unitOfWork) Rollback() error {
	if err := u.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}
