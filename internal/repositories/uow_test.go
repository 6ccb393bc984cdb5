package repositories

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-user-profile/internal/models"
	"github.com/sbilibin2017/gw-user-profile/internal/uow"
	"github.com/stretchr/testify/assert"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestTxManager_CommitsProfileAndHistory(t *testing.T) {
	db, mock := newMockDB(t)
	ctx := context.Background()
	profile := models.UserProfile{UserID: 1, Name: "Kim", Age: 25, Gender: "M"}
	changedAt := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(queryUpdateProfile)).
		WithArgs(int64(1), "Kim", 25, "M", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(queryInsertHistory)).
		WithArgs(int64(1), "age", "20", "25", changedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	work, err := NewTxManager(db).Begin(ctx)
	assert.NoError(t, err)

	assert.NoError(t, work.UpdateProfile(ctx, profile))
	assert.NoError(t, work.InsertHistory(ctx, models.UserHistory{
		UserID: 1, ChangedField: "age", OldValue: "20", NewValue: "25", ChangedAt: changedAt,
	}))
	assert.NoError(t, work.Commit())
	assert.NoError(t, work.Rollback(), "rollback after commit is a no-op")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_RollbackOnHistoryFault(t *testing.T) {
	db, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(queryUpdateProfile)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(queryInsertHistory)).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	work, err := NewTxManager(db).Begin(ctx)
	assert.NoError(t, err)

	assert.NoError(t, work.UpdateProfile(ctx, models.UserProfile{UserID: 1}))
	err = work.InsertHistory(ctx, models.UserHistory{UserID: 1, ChangedField: "name"})
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, work.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_BeginError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	work, err := NewTxManager(db).Begin(context.Background())
	assert.Error(t, err)
	assert.Nil(t, work)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_CreateUserAndProfile(t *testing.T) {
	db, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(queryInsertUser)).
		WithArgs("kim@example.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(42)))
	mock.ExpectExec(regexp.QuoteMeta(queryInsertProfile)).
		WithArgs(int64(42), "Kim", 20, "M", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	work, err := NewTxManager(db).Begin(ctx)
	assert.NoError(t, err)

	userID, err := work.CreateUser(ctx, "kim@example.com", "hash")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.NoError(t, work.CreateProfile(ctx, models.UserProfile{UserID: userID, Name: "Kim", Age: 20, Gender: "M"}))
	assert.NoError(t, work.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileWriteRepository_Update(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(mock sqlmock.Sqlmock)
		wantErrIs error
	}{
		{
			name: "no profile row",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(queryUpdateProfile)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErrIs: sql.ErrNoRows,
		},
		{
			name: "serialization failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(queryUpdateProfile)).
					WillReturnError(&pgconn.PgError{Code: "40001"})
			},
			wantErrIs: uow.ErrConflict,
		},
		{
			name: "deadlock",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(queryUpdateProfile)).
					WillReturnError(&pgconn.PgError{Code: "40P01"})
			},
			wantErrIs: uow.ErrConflict,
		},
		{
			name: "check violation stays a plain fault",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(queryUpdateProfile)).
					WillReturnError(&pgconn.PgError{Code: "23514"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setup(mock)

			err := NewProfileWriteRepository(db).Update(context.Background(), models.UserProfile{UserID: 9})
			assert.Error(t, err)
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
			} else {
				assert.False(t, errors.Is(err, uow.ErrConflict))
				assert.False(t, errors.Is(err, uow.ErrDuplicate))
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserWriteRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(queryInsertUser)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := NewUserWriteRepository(db).Create(context.Background(), "kim@example.com", "hash")
	assert.ErrorIs(t, err, uow.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadRepositories_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(querySelectUserByID)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "email", "password_hash", "created_at", "updated_at"}))
	mock.ExpectQuery(regexp.QuoteMeta(querySelectProfile)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "age", "gender", "profile_image_url"}))
	mock.ExpectQuery(regexp.QuoteMeta(querySelectSession)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"session_id", "user_id", "expires_at"}))

	user, err := NewUserReadRepository(db).GetByID(ctx, 5)
	assert.NoError(t, err)
	assert.Nil(t, user)

	profile, err := NewProfileReadRepository(db).GetByUserID(ctx, 5)
	assert.NoError(t, err)
	assert.Nil(t, profile)

	session, err := NewSessionRepository(db).GetByID(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, session)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassifyError(t *testing.T) {
	assert.NoError(t, classifyError(nil))

	plain := errors.New("disk full")
	assert.Same(t, plain, classifyError(plain))

	err := classifyError(&pgconn.PgError{Code: "55P03"})
	assert.ErrorIs(t, err, uow.ErrConflict)

	var pgErr *pgconn.PgError
	assert.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "55P03", pgErr.Code)
}
