package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/safar/partsbot/internal/database"
	"github.com/safar/partsbot/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrderRequest() models.CreateOrderRequest {
	items := []models.LineItem{
		{Name: "ASUS TUF RTX 4060 Ti", Price: decimal.NewFromInt(48990), Quantity: 1},
		{Name: "Corsair Vengeance 16GB", Price: decimal.NewFromInt(5990), Quantity: 2},
	}
	return models.CreateOrderRequest{
		ExternalUserID: 42,
		UserName:       "Thomas",
		Phone:          "+7 999 123-45-67",
		Address:        "Moscow, Computer st. 15",
		Items:          items,
		Total:          models.SumLineItems(items),
	}
}

func TestCreateOrder(t *testing.T) {
	t.Run("inserts order and credits user in one transaction", func(t *testing.T) {
		db, mock := newMock(t)
		req := sampleOrderRequest()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WithArgs(sqlmock.AnyArg(), int64(42), "Thomas", req.Phone, sqlmock.AnyArg(),
				req.Total, models.OrderStatusPending, req.Address, "").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
		mock.ExpectExec(`UPDATE users SET total_orders = total_orders \+ 1`).
			WithArgs(req.Total, int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`FROM orders WHERE id = \$1`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(orderCols).AddRow(
				int64(7), "ORD-ABCDEF123456", int64(42), "Thomas", req.Phone,
				[]byte(`[{"name":"ASUS TUF RTX 4060 Ti","price":"48990","quantity":1},{"name":"Corsair Vengeance 16GB","price":"5990","quantity":2}]`),
				"60970.00", models.OrderStatusPending, req.Address, "", fixedTime))
		mock.ExpectCommit()

		order, err := CreateOrder(context.Background(), db, req)
		require.NoError(t, err)

		assert.Equal(t, int64(7), order.ID)
		assert.Equal(t, models.OrderStatusPending, order.Status)
		require.Len(t, order.Items, 2)
		assert.Equal(t, 2, order.Items[1].Quantity)
		assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(60970)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user rolls the order back", func(t *testing.T) {
		db, mock := newMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(8)))
		mock.ExpectExec(`UPDATE users`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		order, err := CreateOrder(context.Background(), db, sampleOrderRequest())
		assert.Nil(t, order)
		assert.ErrorIs(t, err, database.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert failure leaves counters untouched", func(t *testing.T) {
		db, mock := newMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		_, err := CreateOrder(context.Background(), db, sampleOrderRequest())
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGenerateOrderNumber(t *testing.T) {
	a, b := generateOrderNumber(), generateOrderNumber()
	assert.True(t, strings.HasPrefix(a, "ORD-"))
	assert.Len(t, a, len("ORD-")+12)
	assert.NotEqual(t, a, b)
}

func TestListUserOrders(t *testing.T) {
	db, mock := newMock(t)

	rows := sqlmock.NewRows(orderCols).
		AddRow(int64(9), "ORD-000000000009", int64(42), "Thomas", "", []byte(`[]`), "100.00", "pending", "", "", fixedTime).
		AddRow(int64(8), "ORD-000000000008", int64(42), "Thomas", "", []byte(`[]`), "50.00", "pending", "", "", fixedTime.Add(-1))

	mock.ExpectQuery(`WHERE external_user_id = \$1 AND \(created_at, id\) < \(\$2, \$3\) ORDER BY created_at DESC, id DESC LIMIT \$4`).
		WithArgs(int64(42), sqlmock.AnyArg(), sqlmock.AnyArg(), 2).
		WillReturnRows(rows)

	page, err := ListUserOrders(context.Background(), db, 42, "", 1)
	require.NoError(t, err)

	assert.True(t, page.HasMore)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, int64(9), page.Orders[0].ID)

	cursor, err := DecodeCursor(page.NextCursor)
	require.NoError(t, err)
	assert.Equal(t, int64(9), cursor.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFirstPageIgnoresApplicationClock(t *testing.T) {
	cursor, err := DecodeCursor("")
	require.NoError(t, err)
	assert.Equal(t, 9999, cursor.CreatedAt.Year())

	db, mock := newMock(t)
	mock.ExpectQuery(`AND \(created_at, id\) < \(\$2, \$3\)`).
		WithArgs(int64(42), cursor.CreatedAt, cursor.ID, 6).
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow(int64(3), "ORD-000000000003", int64(42), "Thomas", "", []byte(`[]`), "10.00", "pending", "", "", time.Now().Add(time.Hour)))

	page, err := ListUserOrders(context.Background(), db, 42, "", 5)
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	assert.False(t, page.HasMore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCursorRoundTrip(t *testing.T) {
	want := OrderCursor{CreatedAt: fixedTime, ID: 17}

	got, err := DecodeCursor(EncodeCursor(want))
	require.NoError(t, err)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, want.ID, got.ID)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	_, err := DecodeCursor("%%%")
	assert.Error(t, err)
}
