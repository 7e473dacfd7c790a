package store

import (
	"context"
	"currency_wizard/internal/domain"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var historyColumns = []string{"id", "username", "conversion_type", "input_value", "converted_value", "timestamp"}

func TestHistoryStore_Append(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewHistoryStore(db)
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return at }

	mock.ExpectExec("INSERT INTO `conversion_history`").
		WithArgs("alice", "USD to EUR", 100.0, 92.0, at).
		WillReturnResult(sqlmock.NewResult(11, 1))

	rec, err := s.Append(context.Background(), "alice", "USD to EUR", 100, 92)
	require.NoError(t, err)
	assert.Equal(t, uint(11), rec.ID)
	assert.Equal(t, at, rec.Timestamp)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryStore_Append_RejectsEmptyFields(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewHistoryStore(db)

	_, err := s.Append(context.Background(), "", "USD to EUR", 1, 1)
	assert.ErrorIs(t, err, domain.ErrStore)
	_, err = s.Append(context.Background(), "alice", "", 1, 1)
	assert.ErrorIs(t, err, domain.ErrStore)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryStore_Append_StoreFailure(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewHistoryStore(db)

	mock.ExpectExec("INSERT INTO `conversion_history`").WillReturnError(errors.New("foreign key"))

	_, err := s.Append(context.Background(), "alice", "USD to EUR", 1, 1)
	assert.ErrorIs(t, err, domain.ErrStore)
}

func TestHistoryStore_ListByUser(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewHistoryStore(db)
	newer := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `conversion_history` WHERE username = ? ORDER BY timestamp DESC,id DESC")).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(historyColumns).
			AddRow(2, "alice", "EUR to GBP", 10.0, 8.5, newer).
			AddRow(1, "alice", "USD to EUR", 100.0, 92.0, older))

	records, err := s.ListByUser(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "EUR to GBP", records[0].ConversionType)
	assert.True(t, records[0].Timestamp.After(records[1].Timestamp))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryStore_ListByUser_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewHistoryStore(db)

	mock.ExpectQuery("SELECT \\* FROM `conversion_history`").WillReturnRows(sqlmock.NewRows(historyColumns))

	records, err := s.ListByUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestHistoryStore_PageByUser(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewHistoryStore(db)
	at := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `conversion_history` WHERE username = ?")).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `conversion_history` WHERE username = ? ORDER BY timestamp DESC,id DESC LIMIT")).
		WillReturnRows(sqlmock.NewRows(historyColumns).
			AddRow(1, "alice", "USD to EUR", 100.0, 92.0, at))

	records, total, err := s.PageByUser(context.Background(), "alice", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, records, 1)
	assert.Equal(t, "USD to EUR", records[0].ConversionType)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryStore_PageByUser_PastTheEnd(t *testing.T) {
	tests := []struct {
		name string
		page int
	}{
		{"next page", 2},
		{"huge page", 1 << 62},
		{"zero page", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			s := NewHistoryStore(db)

			mock.ExpectQuery("SELECT count\\(\\*\\) FROM `conversion_history`").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

			records, total, err := s.PageByUser(context.Background(), "alice", tt.page, 20)
			require.NoError(t, err)
			assert.Equal(t, int64(1), total)
			assert.NotNil(t, records)
			assert.Empty(t, records)
			// No page query is issued
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHistoryStore_PageByUser_CountFailure(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewHistoryStore(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `conversion_history`").WillReturnError(errors.New("gone"))

	_, _, err := s.PageByUser(context.Background(), "alice", 1, 20)
	assert.ErrorIs(t, err, domain.ErrStore)
}
