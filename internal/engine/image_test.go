package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollbackJournal(t *testing.T) {
	wal := make([]byte, 100)
	wal[18], wal[19] = 2, 2

	got := RollbackJournal(wal)
	assert.Equal(t, byte(1), got[18])
	assert.Equal(t, byte(1), got[19])
	assert.Equal(t, byte(2), wal[18], "input is left untouched")

	rollback := make([]byte, 100)
	rollback[18], rollback[19] = 1, 1
	assert.Same(t, &rollback[0], &RollbackJournal(rollback)[0])

	short := []byte("SQLite")
	assert.Equal(t, short, RollbackJournal(short))
}

func TestImageSize(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`PRAGMA page_count`).WillReturnRows(sqlmock.NewRows([]string{"page_count"}).AddRow(12))
	mock.ExpectQuery(`PRAGMA page_size`).WillReturnRows(sqlmock.NewRows([]string{"page_size"}).AddRow(4096))

	size, err := ImageSize(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, 12*4096, size)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImageSize_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`PRAGMA page_count`).WillReturnError(errors.New("boom"))

	_, err = ImageSize(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page count")
}
