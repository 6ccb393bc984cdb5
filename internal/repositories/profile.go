package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-user-profile/internal/models"
)

const (
	querySelectProfile = `
		SELECT user_id, name, age, gender, profile_image_url
		FROM user_profiles
		WHERE user_id = $1
	`
	queryInsertProfile = `
		INSERT INTO user_profiles (user_id, name, age, gender, profile_image_url)
		VALUES ($1, $2, $3, $4, $5)
	`
	queryUpdateProfile = `
		UPDATE user_profiles
		SET name = $2, age = $3, gender = $4, profile_image_url = $5
		WHERE user_id = $1
	`
)

// ProfileReadRepository loads profile snapshots.
type ProfileReadRepository struct {
	db *sqlx.DB
}

func NewProfileReadRepository(db *sqlx.DB) *ProfileReadRepository {
	return &ProfileReadRepository{db: db}
}

// GetByUserID returns the current profile row, or nil if the user has none.
func (r *ProfileReadRepository) GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.db.GetContext(ctx, &profile, querySelectProfile, userID)

	logQuery(ctx, querySelectProfile, []any{userID}, profile, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ProfileWriteRepository writes full profile rows through the given executor.
type ProfileWriteRepository struct {
	db sqlx.ExtContext
}

func NewProfileWriteRepository(db sqlx.ExtContext) *ProfileWriteRepository {
	return &ProfileWriteRepository{db: db}
}

// Create inserts the profile row of a new user.
func (r *ProfileWriteRepository) Create(ctx context.Context, p models.UserProfile) error {
	args := []any{p.UserID, p.Name, p.Age, p.Gender, p.ProfileImageURL}
	_, err := r.db.ExecContext(ctx, queryInsertProfile, args...)

	logQuery(ctx, queryInsertProfile, args, nil, err)

	return classifyError(err)
}

// Update overwrites every column of the profile row. It fails with
// sql.ErrNoRows if the user has no profile.
func (r *ProfileWriteRepository) Update(ctx context.Context, p models.UserProfile) error {
	args := []any{p.UserID, p.Name, p.Age, p.Gender, p.ProfileImageURL}
	res, err := r.db.ExecContext(ctx, queryUpdateProfile, args...)

	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(ctx, queryUpdateProfile, args, rowsAffected, err)

	if err != nil {
		return classifyError(err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("update profile of user %d: %w", p.UserID, sql.ErrNoRows)
	}
	return nil
}
