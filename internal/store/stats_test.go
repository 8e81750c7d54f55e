package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var statsCols = []string{"products", "in_stock", "brands", "categories", "orders", "users", "min", "max", "avg"}

func TestGetStoreStats(t *testing.T) {
	t.Run("populated catalog", func(t *testing.T) {
		db, mock := newMock(t)

		mock.ExpectQuery(`\(SELECT COUNT\(DISTINCT brand\) FROM products\)`).
			WillReturnRows(sqlmock.NewRows(statsCols).
				AddRow(int64(17), int64(16), int64(15), int64(13), int64(4), int64(9), "5499.00", "48990.00", "18432.29"))

		stats, err := GetStoreStats(context.Background(), db)
		require.NoError(t, err)

		assert.Equal(t, 17, stats.TotalProducts)
		assert.Equal(t, 16, stats.InStockProducts)
		assert.Equal(t, 15, stats.TotalBrands)
		assert.True(t, stats.MinPrice.Equal(decimal.NewFromInt(5499)))
		assert.True(t, stats.AvgPrice.Equal(decimal.RequireFromString("18432.29")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty catalog reports zeros", func(t *testing.T) {
		db, mock := newMock(t)

		mock.ExpectQuery(`COALESCE\(\(SELECT ROUND\(AVG\(price\), 2\) FROM products\), 0\)`).
			WillReturnRows(sqlmock.NewRows(statsCols).
				AddRow(int64(0), int64(0), int64(0), int64(0), int64(0), int64(0), "0", "0", "0"))

		stats, err := GetStoreStats(context.Background(), db)
		require.NoError(t, err)

		assert.Zero(t, stats.TotalProducts)
		assert.True(t, stats.AvgPrice.IsZero())
		assert.Zero(t, stats.InStockPercent())
	})
}
