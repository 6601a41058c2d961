package storage

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/GoArmGo/TasksAPI/internal/core/ports"
	"github.com/GoArmGo/TasksAPI/internal/domain"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newMockGorm поднимает GORM поверх sqlmock-соединения
func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return gormDB, mock, db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUserStorage_GetByUsername_NotFound(t *testing.T) {
	gormDB, mock, db := newMockGorm(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WithArgs("ghost", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role"}))

	s := NewUserStorage(gormDB, testLogger())
	user, err := s.GetByUsername(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, user)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStorage_GetByUsername_Found(t *testing.T) {
	gormDB, mock, db := newMockGorm(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role"}).
		AddRow(int64(1), "alice", "a@x.com", "hash", domain.RoleMember)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WithArgs("alice", 1).
		WillReturnRows(rows)

	s := NewUserStorage(gormDB, testLogger())
	user, err := s.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, domain.RoleMember, user.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStorage_ExistsByUsername(t *testing.T) {
	gormDB, mock, db := newMockGorm(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	s := NewUserStorage(gormDB, testLogger())
	exists, err := s.ExistsByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStorage_ExistsByEmail_Absent(t *testing.T) {
	gormDB, mock, db := newMockGorm(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
		WithArgs("free@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))

	s := NewUserStorage(gormDB, testLogger())
	exists, err := s.ExistsByEmail(context.Background(), "free@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStorage_Save_UniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		want       error
	}{
		{"username", "idx_users_username", ports.ErrDuplicateUsername},
		{"email", "idx_users_email", ports.ErrDuplicateEmail},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gormDB, mock, db := newMockGorm(t)
			defer db.Close()

			mock.ExpectBegin()
			mock.ExpectQuery(`INSERT INTO "users"`).
				WillReturnError(&pq.Error{Code: "23505", Constraint: tc.constraint})
			mock.ExpectRollback()

			s := NewUserStorage(gormDB, testLogger())
			err := s.Save(context.Background(), &domain.User{Username: "alice", Email: "a@x.com"})
			require.ErrorIs(t, err, tc.want)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTaskStorage_Delete(t *testing.T) {
	gormDB, mock, db := newMockGorm(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tasks" WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := NewTaskStorage(gormDB, testLogger())
	deleted, err := s.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStorage_Delete_Missing(t *testing.T) {
	gormDB, mock, db := newMockGorm(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tasks" WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	s := NewTaskStorage(gormDB, testLogger())
	deleted, err := s.Delete(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStorage_GetByID_NotFound(t *testing.T) {
	gormDB, mock, db := newMockGorm(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = \$1`).
		WithArgs(int64(42), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "completed"}))

	s := NewTaskStorage(gormDB, testLogger())
	task, err := s.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, task)
	require.NoError(t, mock.ExpectationsWereMet())
}
