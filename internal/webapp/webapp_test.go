package webapp

import (
	"encoding/json"
	"testing"

	"github.com/safar/partsbot/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexibleID(t *testing.T) {
	tests := []struct {
		in      string
		want    FlexibleID
		wantErr bool
	}{
		{`42`, 42, false},
		{`"42"`, 42, false},
		{`" 7 "`, 7, false},
		{`null`, 0, false},
		{`""`, 0, false},
		{`"abc"`, 0, true},
		{`4.5`, 0, true},
	}

	for _, tt := range tests {
		var id FlexibleID
		err := json.Unmarshal([]byte(tt.in), &id)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, id, tt.in)
	}
}

func TestDecode(t *testing.T) {
	t.Run("product details with string id", func(t *testing.T) {
		req, err := Decode([]byte(`{"action":"get_product_details","product_id":"17"}`))
		require.NoError(t, err)
		assert.Equal(t, ActionGetProductDetails, req.Action)
		assert.Equal(t, FlexibleID(17), req.ProductID)
	})

	t.Run("category is required for category listing", func(t *testing.T) {
		_, err := Decode([]byte(`{"action":"get_products_by_category"}`))
		assert.ErrorIs(t, err, ErrInvalidRequest)
		assert.Contains(t, err.Error(), "category is required")
	})

	t.Run("query is required for search", func(t *testing.T) {
		_, err := Decode([]byte(`{"action":"search_products","query":""}`))
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("missing action", func(t *testing.T) {
		_, err := Decode([]byte(`{"category":"cpu"}`))
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := Decode([]byte(`action=get_categories`))
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("unknown action decodes", func(t *testing.T) {
		req, err := Decode([]byte(`{"action":"open_cart"}`))
		require.NoError(t, err)
		assert.Equal(t, "open_cart", req.Action)
	})

	t.Run("empty cart", func(t *testing.T) {
		for _, payload := range []string{
			`{"action":"create_order"}`,
			`{"action":"create_order","order_data":{}}`,
			`{"action":"create_order","order_data":{"items":[]}}`,
		} {
			_, err := Decode([]byte(payload))
			assert.ErrorIs(t, err, ErrEmptyCart, payload)
		}
	})

	t.Run("item quantity out of range", func(t *testing.T) {
		_, err := Decode([]byte(`{"action":"create_order","order_data":{"items":[{"name":"Mouse","price":10,"quantity":0}]}}`))
		assert.ErrorIs(t, err, ErrInvalidRequest)
		assert.Contains(t, err.Error(), "order_data.items[0].quantity")
	})
}

func TestOrderRequestDefaults(t *testing.T) {
	req, err := Decode([]byte(`{
		"action": "create_order",
		"order_data": {
			"items": [
				{"id": "3", "name": "AMD Ryzen 5 7600X", "price": 24999},
				{"id": 9, "name": "Corsair Vengeance 16GB", "price": "5990", "quantity": 2}
			],
			"total": 36979,
			"phone": "  "
		}
	}`))
	require.NoError(t, err)

	order := req.OrderData.OrderRequest(models.Identity{ExternalID: 42, FirstName: "Thomas", Username: "tom"})

	assert.Equal(t, int64(42), order.ExternalUserID)
	assert.Equal(t, "Thomas", order.UserName)
	assert.Equal(t, NotSpecified, order.Address)
	assert.Equal(t, NotSpecified, order.Phone)
	require.Len(t, order.Items, 2)
	assert.Equal(t, int64(3), order.Items[0].ProductID)
	assert.Equal(t, 1, order.Items[0].Quantity)
	assert.Equal(t, 2, order.Items[1].Quantity)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(36979)))
	assert.True(t, models.SumLineItems(order.Items).Equal(order.Total))
}
