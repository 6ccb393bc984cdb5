package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-user-profile/internal/migrations"
	"github.com/sbilibin2017/gw-user-profile/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgres(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(30 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%s/testdb?sslmode=disable", host, port.Port())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.Up(ctx, db.DB))
	return db
}

func registerUser(t *testing.T, db *sqlx.DB, email string, profile models.UserProfile) int64 {
	t.Helper()
	ctx := context.Background()

	work, err := NewTxManager(db).Begin(ctx)
	require.NoError(t, err)
	userID, err := work.CreateUser(ctx, email, "hash")
	require.NoError(t, err)
	profile.UserID = userID
	require.NoError(t, work.CreateProfile(ctx, profile))
	require.NoError(t, work.Commit())
	return userID
}

func TestPostgres_ProfileUpdateWithHistory(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	userID := registerUser(t, db, "kim@example.com", models.UserProfile{Name: "Kim", Age: 20, Gender: "M"})

	users := NewUserReadRepository(db)
	profiles := NewProfileReadRepository(db)
	histories := NewHistoryReadRepository(db)

	t.Run("lookup user", func(t *testing.T) {
		byEmail, err := users.GetByEmail(ctx, "kim@example.com")
		assert.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, userID, byEmail.UserID)
		assert.Equal(t, "hash", byEmail.PasswordHash)

		byID, err := users.GetByID(ctx, userID)
		assert.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, "kim@example.com", byID.Email)
	})

	t.Run("commit writes profile and history together", func(t *testing.T) {
		work, err := NewTxManager(db).Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, work.UpdateProfile(ctx, models.UserProfile{UserID: userID, Name: "Kim", Age: 25, Gender: "M"}))
		require.NoError(t, work.InsertHistory(ctx, models.UserHistory{
			UserID: userID, ChangedField: "age", OldValue: "20", NewValue: "25", ChangedAt: time.Now(),
		}))

		// uncommitted writes stay invisible to other readers
		before, err := profiles.GetByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 20, before.Age)

		require.NoError(t, work.Commit())

		after, err := profiles.GetByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, models.UserProfile{UserID: userID, Name: "Kim", Age: 25, Gender: "M"}, *after)

		list, err := histories.ListByUserID(ctx, userID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "age", list[0].ChangedField)
		assert.Equal(t, "20", list[0].OldValue)
		assert.Equal(t, "25", list[0].NewValue)
	})

	t.Run("rollback leaves no trace", func(t *testing.T) {
		work, err := NewTxManager(db).Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, work.UpdateProfile(ctx, models.UserProfile{UserID: userID, Name: "Lee", Age: 25, Gender: "M"}))
		// foreign key violation on an unknown user
		err = work.InsertHistory(ctx, models.UserHistory{
			UserID: userID + 1000, ChangedField: "name", OldValue: "Kim", NewValue: "Lee", ChangedAt: time.Now(),
		})
		require.Error(t, err)
		require.NoError(t, work.Rollback())

		after, err := profiles.GetByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "Kim", after.Name)

		list, err := histories.ListByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("update of missing profile", func(t *testing.T) {
		work, err := NewTxManager(db).Begin(ctx)
		require.NoError(t, err)
		defer work.Rollback()

		err = work.UpdateProfile(ctx, models.UserProfile{UserID: userID + 1000})
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestPostgres_Sessions(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	userID := registerUser(t, db, "lee@example.com", models.UserProfile{Name: "Lee", Age: 30, Gender: "F"})
	repo := NewSessionRepository(db)

	expiresAt := time.Now().Add(time.Hour).UTC().Truncate(time.Microsecond)
	require.NoError(t, repo.Create(ctx, models.Session{SessionID: "sess-1", UserID: userID, ExpiresAt: expiresAt}))

	got, err := repo.GetByID(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, userID, got.UserID)
	assert.True(t, expiresAt.Equal(got.ExpiresAt))

	require.NoError(t, repo.Delete(ctx, "sess-1"))
	got, err = repo.GetByID(ctx, "sess-1")
	assert.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, repo.Delete(ctx, "sess-1"))
}
