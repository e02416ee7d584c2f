package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	domain "talentpool/backend/internal/domain/auth"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

const (
	insertUserQuery     = `(?s)INSERT\s+INTO\s+users\s*\(doc\)\s*VALUES\s*\(\$1::jsonb\)\s*RETURNING\s+id`
	selectUserByEmail   = `(?s)SELECT\s+doc\s+FROM\s+users\s+WHERE\s+doc->>'email'\s*=\s*\$1\s+LIMIT\s+1`
	selectUserByUUID    = `(?s)SELECT\s+doc\s+FROM\s+users\s+WHERE\s+doc->>'uuid'\s*=\s*\$1\s+LIMIT\s+1`
	selectAllUsersQuery = `(?s)SELECT\s+doc\s+FROM\s+users\s+ORDER\s+BY\s+id\s+ASC`
)

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(insertUserQuery).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := repo.Create(context.Background(), &domain.Identity{UUID: "u-1", Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Equal(t, "7", id)
}

func TestUserRepository_Create_UniqueViolation(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(insertUserQuery).
		WithArgs(sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.Identity{Email: "a@x.com"})
	require.ErrorIs(t, err, domain.ErrEmailExists)
}

func TestUserRepository_Create_DBError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(insertUserQuery).
		WithArgs(sqlmock.AnyArg()).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &domain.Identity{Email: "a@x.com"})
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(selectUserByEmail).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).
			AddRow([]byte(`{"uuid":"u-1","first_name":"Ada","last_name":"L","email":"a@x.com","password":"$2a$hash"}`)))

	got, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.UUID)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "$2a$hash", got.PasswordHash)
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(selectUserByEmail).
		WithArgs("ghost@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@x.com")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_GetByUUID_DecodeError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(selectUserByUUID).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow([]byte(`not json`)))

	_, err := repo.GetByUUID(context.Background(), "u-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode user")
}

func TestUserRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(selectAllUsersQuery).
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).
			AddRow([]byte(`{"uuid":"u-1","email":"a@x.com"}`)).
			AddRow([]byte(`{"uuid":"u-2","email":"b@x.com"}`)))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "u-1", got[0].UUID)
	assert.Equal(t, "u-2", got[1].UUID)
}

func TestUserRepository_List_Empty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(selectAllUsersQuery).
		WillReturnRows(sqlmock.NewRows([]string{"doc"}))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
