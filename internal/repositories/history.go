package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-user-profile/internal/models"
)

const (
	queryInsertHistory = `
		INSERT INTO user_histories (user_id, changed_field, old_value, new_value, changed_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	querySelectHistories = `
		SELECT history_id, user_id, changed_field, old_value, new_value, changed_at
		FROM user_histories
		WHERE user_id = $1
		ORDER BY changed_at DESC, history_id DESC
	`
)

// HistoryWriteRepository appends audit rows. It has no update or delete.
type HistoryWriteRepository struct {
	db sqlx.ExtContext
}

func NewHistoryWriteRepository(db sqlx.ExtContext) *HistoryWriteRepository {
	return &HistoryWriteRepository{db: db}
}

// Insert appends one history row.
func (r *HistoryWriteRepository) Insert(ctx context.Context, h models.UserHistory) error {
	args := []any{h.UserID, h.ChangedField, h.OldValue, h.NewValue, h.ChangedAt}
	_, err := r.db.ExecContext(ctx, queryInsertHistory, args...)

	logQuery(ctx, queryInsertHistory, args, nil, err)

	return classifyError(err)
}

// HistoryReadRepository lists committed history rows.
type HistoryReadRepository struct {
	db *sqlx.DB
}

func NewHistoryReadRepository(db *sqlx.DB) *HistoryReadRepository {
	return &HistoryReadRepository{db: db}
}

// ListByUserID returns the user's history, newest first.
func (r *HistoryReadRepository) ListByUserID(ctx context.Context, userID int64) ([]models.UserHistory, error) {
	histories := []models.UserHistory{}
	err := r.db.SelectContext(ctx, &histories, querySelectHistories, userID)

	logQuery(ctx, querySelectHistories, []any{userID}, len(histories), err)

	if err != nil {
		return nil, err
	}
	return histories, nil
}
