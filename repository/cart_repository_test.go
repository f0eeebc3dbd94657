package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestGetOrCreateCart_ReturnsExisting(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewGormCartRepository(gdb)
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "carts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(1, userID.String()))

	cart, err := repo.GetOrCreateCart(context.Background(), userID)

	assert.NoError(t, err)
	assert.EqualValues(t, 1, cart.ID)
	assert.Equal(t, userID, cart.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTotals_EmptyCartIsZero(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewGormCartRepository(gdb)

	mock.ExpectQuery(`SELECT COALESCE`).
		WillReturnRows(sqlmock.NewRows([]string{"total_quantity", "total_price"}).AddRow(0, "0"))

	totals, err := repo.Totals(context.Background(), 1)

	assert.NoError(t, err)
	assert.EqualValues(t, 0, totals.TotalQuantity)
	assert.True(t, totals.TotalPrice.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTotals_SumsQuantityTimesPrice(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewGormCartRepository(gdb)

	mock.ExpectQuery(`SELECT COALESCE`).
		WillReturnRows(sqlmock.NewRows([]string{"total_quantity", "total_price"}).AddRow(5, "249.80"))

	totals, err := repo.Totals(context.Background(), 1)

	assert.NoError(t, err)
	assert.EqualValues(t, 5, totals.TotalQuantity)
	assert.Equal(t, "249.80", totals.TotalPrice.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddProduct_IncrementsExistingLine(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewGormCartRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "cart_products" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.AddProduct(context.Background(), 1, 10, 3)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddProduct_CreatesLineWhenMissing(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewGormCartRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "cart_products" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "cart_products"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.AddProduct(context.Background(), 1, 10, 3)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddProduct_RetriesWhenConcurrentCreateWins(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewGormCartRepository(gdb)

	// Another caller inserts the line between our UPDATE and INSERT.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "cart_products" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "cart_products"`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	// The retry finds the line and increments it.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "cart_products" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.AddProduct(context.Background(), 1, 10, 3)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddProduct_SurfacesPersistentUniqueViolation(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewGormCartRepository(gdb)

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "cart_products" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "cart_products"`)).
			WillReturnError(&pgconn.PgError{Code: "23505"})
		mock.ExpectRollback()
	}

	err := repo.AddProduct(context.Background(), 1, 10, 3)

	assert.Error(t, err)
	assert.True(t, isUniqueViolation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetItemQuantity_ReportsMissingLine(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewGormCartRepository(gdb)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "cart_products" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	updated, err := repo.SetItemQuantity(context.Background(), 1, 999, 4)

	assert.NoError(t, err)
	assert.False(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetItemQuantity_UpdatesLine(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewGormCartRepository(gdb)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "cart_products" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.SetItemQuantity(context.Background(), 1, 7, 4)

	assert.NoError(t, err)
	assert.True(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteItem_ScopedByCart(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewGormCartRepository(gdb)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "cart_products"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteItem(context.Background(), 2, 7)

	assert.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClear_DeletesAllLines(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewGormCartRepository(gdb)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "cart_products"`)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	err := repo.Clear(context.Background(), 1)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
