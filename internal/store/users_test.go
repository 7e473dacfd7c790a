package store

import (
	"context"
	"currency_wizard/internal/domain"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStore_FindByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewUserStore(db, &fakeChecker{})

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "alice", "alice@example.com", "hash", "Alice A", nil))

	user, err := s.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice A", user.FullName)
	assert.Nil(t, user.LastLogin)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_FindByUsername_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewUserStore(db, &fakeChecker{})

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := s.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_FindByUsernameAndPassword(t *testing.T) {
	t.Run("match", func(t *testing.T) {
		db, mock := newMockDB(t)
		checker := &fakeChecker{}
		s := NewUserStore(db, checker)
		mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(3, "bob", "bob@example.com", "Secret1!", "Bob", nil))

		user, err := s.FindByUsernameAndPassword(context.Background(), "bob", "Secret1!")
		require.NoError(t, err)
		assert.Equal(t, "bob", user.Username)
		assert.Equal(t, []string{"Secret1!"}, checker.calls)
	})

	t.Run("wrong password", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewUserStore(db, &fakeChecker{})
		mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(3, "bob", "bob@example.com", "Secret1!", "Bob", nil))

		_, err := s.FindByUsernameAndPassword(context.Background(), "bob", "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown user still hashes", func(t *testing.T) {
		db, mock := newMockDB(t)
		checker := &fakeChecker{}
		s := NewUserStore(db, checker)
		mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?").
			WillReturnRows(sqlmock.NewRows(userColumns))

		_, err := s.FindByUsernameAndPassword(context.Background(), "ghost", "pw")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Len(t, checker.calls, 1)
	})

	t.Run("store failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewUserStore(db, &fakeChecker{})
		mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnError(errors.New("connection refused"))

		_, err := s.FindByUsernameAndPassword(context.Background(), "bob", "pw")
		assert.ErrorIs(t, err, domain.ErrStore)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestUserStore_FindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewUserStore(db, &fakeChecker{})

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(2, "carol", "carol@example.com", "h", "Carol", time.Now()))

	user, err := s.FindByEmail(context.Background(), "carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, "carol", user.Username)
	assert.NotNil(t, user.LastLogin)
}

func TestUserStore_Insert(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewUserStore(db, &fakeChecker{})

	mock.ExpectExec("INSERT INTO `users`").WillReturnResult(sqlmock.NewResult(7, 1))

	user := &domain.User{Username: "dave", Email: "dave@example.com", Password: "h", FullName: "Dave"}
	require.NoError(t, s.Insert(context.Background(), user))
	assert.Equal(t, uint(7), user.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_Insert_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewUserStore(db, &fakeChecker{})

	mock.ExpectExec("INSERT INTO `users`").
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry 'dave' for key 'users.idx_users_username'"})

	err := s.Insert(context.Background(), &domain.User{Username: "dave", Email: "dave@example.com", Password: "h", FullName: "Dave"})
	assert.ErrorIs(t, err, domain.ErrDuplicateCredential)
}

func TestUserStore_Insert_OtherFailure(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewUserStore(db, &fakeChecker{})

	mock.ExpectExec("INSERT INTO `users`").WillReturnError(errors.New("disk full"))

	err := s.Insert(context.Background(), &domain.User{Username: "dave", Email: "dave@example.com", Password: "h", FullName: "Dave"})
	assert.ErrorIs(t, err, domain.ErrStore)
	assert.NotErrorIs(t, err, domain.ErrDuplicateCredential)
}

func TestUserStore_UpdateLastLogin(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewUserStore(db, &fakeChecker{})

	mock.ExpectExec("UPDATE `users` SET `last_login`=\\? WHERE user_id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.UpdateLastLogin(context.Background(), 1, time.Now()))

	// Same timestamp twice leaves the row unchanged; still a success
	mock.ExpectExec("UPDATE `users` SET `last_login`").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.NoError(t, s.UpdateLastLogin(context.Background(), 1, time.Now()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_UpdatePassword(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewUserStore(db, &fakeChecker{})

	mock.ExpectExec("UPDATE `users` SET `password`=\\? WHERE email = \\?").
		WithArgs("new-hash", "carol@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.UpdatePassword(context.Background(), "carol@example.com", "new-hash"))

	mock.ExpectExec("UPDATE `users` SET `password`").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, s.UpdatePassword(context.Background(), "nobody@example.com", "x"), domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
