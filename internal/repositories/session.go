package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-user-profile/internal/models"
)

const (
	queryInsertSession = `
		INSERT INTO sessions (session_id, user_id, expires_at)
		VALUES ($1, $2, $3)
	`
	querySelectSession = `
		SELECT session_id, user_id, expires_at
		FROM sessions
		WHERE session_id = $1
	`
	queryDeleteSession = `
		DELETE FROM sessions
		WHERE session_id = $1
	`
)

// SessionRepository is the durable session registry.
type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create stores a new session.
func (r *SessionRepository) Create(ctx context.Context, s models.Session) error {
	args := []any{s.SessionID, s.UserID, s.ExpiresAt}
	_, err := r.db.ExecContext(ctx, queryInsertSession, args...)

	logQuery(ctx, queryInsertSession, []any{"[REDACTED]", s.UserID, s.ExpiresAt}, nil, err)

	return classifyError(err)
}

// GetByID returns the session, or nil if there is none. Expiry is left to the caller.
func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (*models.Session, error) {
	var s models.Session
	err := r.db.GetContext(ctx, &s, querySelectSession, sessionID)

	logQuery(ctx, querySelectSession, []any{"[REDACTED]"}, s.UserID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete removes the session. Unknown ids are not an error.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx, queryDeleteSession, sessionID)

	logQuery(ctx, queryDeleteSession, []any{"[REDACTED]"}, nil, err)

	return err
}
