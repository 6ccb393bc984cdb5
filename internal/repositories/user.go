package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-user-profile/internal/models"
)

const (
	querySelectUserByID = `
		SELECT user_id, email, password_hash, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`
	querySelectUserByEmail = `
		SELECT user_id, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	queryInsertUser = `
		INSERT INTO users (email, password_hash, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING user_id
	`
)

// UserReadRepository looks users up outside of any transaction.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByID returns the user with the given id, or nil if there is none.
func (r *UserReadRepository) GetByID(ctx context.Context, userID int64) (*models.UserDB, error) {
	return r.get(ctx, querySelectUserByID, userID)
}

// GetByEmail returns the user with the given email, or nil if there is none.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	return r.get(ctx, querySelectUserByEmail, email)
}

func (r *UserReadRepository) get(ctx context.Context, query string, arg any) (*models.UserDB, error) {
	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, arg)

	logQuery(ctx, query, []any{arg}, user.UserID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserWriteRepository inserts users through the given executor, normally a transaction.
type UserWriteRepository struct {
	db sqlx.ExtContext
}

func NewUserWriteRepository(db sqlx.ExtContext) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Create inserts a user and returns its generated id.
func (r *UserWriteRepository) Create(ctx context.Context, email, passwordHash string) (int64, error) {
	var userID int64
	err := sqlx.GetContext(ctx, r.db, &userID, queryInsertUser, email, passwordHash)

	logQuery(ctx, queryInsertUser, []any{email, "[REDACTED]"}, userID, err)

	if err != nil {
		return 0, classifyError(err)
	}
	return userID, nil
}
