package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var productCols = []string{
	"id", "name", "description", "price", "category_id", "category_name",
	"image_url", "specs", "in_stock", "rating", "brand",
	"stock_quantity", "popularity", "created_at",
}

var orderCols = []string{
	"id", "order_number", "external_user_id", "user_name", "user_phone", "items",
	"total_price", "status", "address", "notes", "created_at",
}

var fixedTime = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func addProduct(rows *sqlmock.Rows, id int64, name, brand, price string, rating float64) *sqlmock.Rows {
	return rows.AddRow(id, name, name+" description", price, int64(1), "Processors",
		"", "", true, rating, brand, int64(5), int64(100), fixedTime)
}
