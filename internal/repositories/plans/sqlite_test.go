package plans

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/tripkeeper/internal/engine"
	"github.com/dmitrijs2005/tripkeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, engine.EnsureSchema(context.Background(), db))
	return db
}

func lijiang() models.PlanInput {
	return models.PlanInput{Destination: "Lijiang", StartDate: "2024-05-01", Days: 3, Budget: "5000"}
}

func TestInsert_AssignsIDAndCreatedAt(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	p, err := r.Insert(ctx, lijiang(), "2024-04-01T10:00:00.000Z")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Lijiang", p.Destination)
	assert.Equal(t, "2024-04-01T10:00:00.000Z", p.CreatedAt)
	assert.Nil(t, p.UpdatedAt)

	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, *p, all[0])
}

func TestList_EmptyIsNonNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	all, err := r.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestList_NewestFirstThenIDDesc(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	a, err := r.Insert(ctx, lijiang(), "2024-04-01T10:00:00.000Z")
	require.NoError(t, err)
	b, err := r.Insert(ctx, lijiang(), "2024-04-02T10:00:00.000Z")
	require.NoError(t, err)
	c, err := r.Insert(ctx, lijiang(), "2024-04-02T10:00:00.000Z")
	require.NoError(t, err)

	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{c.ID, b.ID, a.ID}, []int64{all[0].ID, all[1].ID, all[2].ID})
}

func TestDeleteByID_ReportsWhetherRowExisted(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	p, err := r.Insert(ctx, lijiang(), "2024-04-01T10:00:00.000Z")
	require.NoError(t, err)

	deleted, err := r.DeleteByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = r.DeleteByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteAll_ClearsDetailsToo(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	p, err := r.Insert(ctx, lijiang(), "2024-04-01T10:00:00.000Z")
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO plan_details(plan_id, day_number, activities) VALUES (?, 1, 'old town')`, p.ID)
	require.NoError(t, err)

	require.NoError(t, r.DeleteAll(ctx))

	var details int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM plan_details`).Scan(&details))
	assert.Zero(t, details)
	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRepository_DBErrorsWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Insert(ctx, lijiang(), "x")
	assert.ErrorContains(t, err, "failed to insert plan")

	_, err = r.List(ctx)
	assert.ErrorContains(t, err, "failed to select plans")

	_, err = r.DeleteByID(ctx, 1)
	assert.ErrorContains(t, err, "failed to delete plan")

	_, err = r.Count(ctx)
	assert.ErrorContains(t, err, "failed to count plans")

	assert.ErrorContains(t, r.DeleteAll(ctx), "failed to clear plan details")
}

func TestInsert_LastInsertIDError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO travel_plans").
		WillReturnResult(sqlmock.NewErrorResult(assert.AnError))

	_, err = NewSQLiteRepository(db).Insert(context.Background(), lijiang(), "x")
	assert.ErrorContains(t, err, "failed to get plan id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_ScanErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "destination", "start_date", "days", "budget", "created_at", "updated_at"}).
		AddRow("not-a-number", "Lijiang", "2024-05-01", 3, "5000", "x", nil)
	mock.ExpectQuery("SELECT id, destination").WillReturnRows(rows)

	_, err = NewSQLiteRepository(db).List(context.Background())
	assert.ErrorContains(t, err, "failed to scan plan row")
}
