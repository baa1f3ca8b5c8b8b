package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/helios/backend/internal/domain/shared"
)

// newMockImpactFundRepository creates a GormImpactFundRepository with a mocked SQL connection
func newMockImpactFundRepository(t *testing.T) (*GormImpactFundRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormImpactFundRepository(gormDB), mock, mockDB
}

func TestGormImpactFundRepository_FindByID(t *testing.T) {
	t.Run("finds existing entry", func(t *testing.T) {
		repo, mock, mockDB := newMockImpactFundRepository(t)
		defer mockDB.Close()

		entryID := uuid.New()
		orderID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "type", "amount", "description", "order_id", "is_active"}).
			AddRow(entryID, "commission", decimal.RequireFromString("3.00"), "Commission allocation for order ORD-2026-00001", orderID, true)

		mock.ExpectQuery(`SELECT \* FROM "impact_fund_entries" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(entryID, 1).
			WillReturnRows(rows)

		entry, err := repo.FindByID(context.Background(), entryID)

		assert.NoError(t, err)
		assert.NotNil(t, entry)
		assert.Equal(t, "3.00", entry.Amount.StringFixed(2))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent entry", func(t *testing.T) {
		repo, mock, mockDB := newMockImpactFundRepository(t)
		defer mockDB.Close()

		entryID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "impact_fund_entries" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(entryID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		entry, err := repo.FindByID(context.Background(), entryID)

		assert.Error(t, err)
		assert.Nil(t, entry)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormImpactFundRepository_Balance(t *testing.T) {
	t.Run("sums active entries", func(t *testing.T) {
		repo, mock, mockDB := newMockImpactFundRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT SUM\(amount\) FROM "impact_fund_entries" WHERE is_active = \$1`).
			WithArgs(true).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(decimal.RequireFromString("125.40")))

		balance, err := repo.Balance(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, "125.40", balance.StringFixed(2))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns zero for an empty ledger", func(t *testing.T) {
		repo, mock, mockDB := newMockImpactFundRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT SUM\(amount\) FROM "impact_fund_entries" WHERE is_active = \$1`).
			WithArgs(true).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(nil))

		balance, err := repo.Balance(context.Background())

		assert.NoError(t, err)
		assert.True(t, balance.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
