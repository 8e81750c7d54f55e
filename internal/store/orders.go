package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/safar/partsbot/internal/database"
	"github.com/safar/partsbot/internal/models"
)

func generateOrderNumber() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORD-" + strings.ToUpper(id[:12])
}

// CreateOrder stores a pending order and credits it to the owning user in a
// single transaction. The user row must already exist; otherwise nothing is
// written and database.ErrUserNotFound is returned.
func CreateOrder(ctx context.Context, db *sql.DB, req models.CreateOrderRequest) (*models.Order, error) {
	items, err := json.Marshal(req.Items)
	if err != nil {
		return nil, fmt.Errorf("encode line items: %w", err)
	}

	var order *models.Order

	err = database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		var orderID int64
		err := tx.QueryRowContext(ctx,
			`INSERT INTO orders (order_number, external_user_id, user_name, user_phone, items,
			                     total_price, status, address, notes, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
			 RETURNING id`,
			generateOrderNumber(),
			req.ExternalUserID,
			req.UserName,
			req.Phone,
			string(items),
			req.Total,
			models.OrderStatusPending,
			req.Address,
			req.Notes,
		).Scan(&orderID)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		if err := AddOrderToUser(ctx, tx, req.ExternalUserID, req.Total); err != nil {
			return err
		}

		order, err = GetOrder(ctx, tx, orderID)
		if err != nil {
			return fmt.Errorf("fetch created order: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return order, nil
}

const orderColumns = `
		id, order_number, external_user_id, user_name, user_phone, items,
		total_price, status, address, notes, created_at`

func scanOrder(row rowScanner, order *models.Order) error {
	var items []byte
	err := row.Scan(
		&order.ID,
		&order.OrderNumber,
		&order.ExternalUserID,
		&order.UserName,
		&order.Phone,
		&items,
		&order.TotalPrice,
		&order.Status,
		&order.Address,
		&order.Notes,
		&order.CreatedAt,
	)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(items, &order.Items); err != nil {
		return fmt.Errorf("decode line items of order %d: %w", order.ID, err)
	}

	return nil
}

func GetOrder(ctx context.Context, q database.Querier, id int64) (*models.Order, error) {
	order := &models.Order{}

	query := `
		SELECT` + orderColumns + `
		FROM orders
		WHERE id = $1`

	err := scanOrder(q.QueryRowContext(ctx, query, id), order)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	return order, nil
}

// ListUserOrders pages through a user's orders, newest first.
func ListUserOrders(ctx context.Context, q database.Querier, externalUserID int64, cursor string, limit int) (*CursorPage, error) {
	cursorData, err := DecodeCursor(cursor)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}

	query := `
		SELECT` + orderColumns + `
		FROM orders
		WHERE external_user_id = $1
		  AND (created_at, id) < ($2, $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $4`

	rows, err := q.QueryContext(ctx, query, externalUserID, cursorData.CreatedAt, cursorData.ID, limit+1)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var order models.Order
		if err := scanOrder(rows, &order); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	hasMore := len(orders) > limit
	if hasMore {
		orders = orders[:limit]
	}

	var nextCursor string
	if hasMore && len(orders) > 0 {
		lastOrder := orders[len(orders)-1]
		nextCursor = EncodeCursor(OrderCursor{
			CreatedAt: lastOrder.CreatedAt,
			ID:        lastOrder.ID,
		})
	}

	return &CursorPage{
		Orders:     orders,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}
