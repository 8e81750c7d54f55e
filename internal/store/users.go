package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/safar/partsbot/internal/database"
	"github.com/safar/partsbot/internal/models"
	"github.com/shopspring/decimal"
)

// RecordActivity inserts the user on first sight and otherwise refreshes the
// name fields and last activity. Order counters are left alone.
func RecordActivity(ctx context.Context, q database.Querier, identity models.Identity) error {
	query := `
		INSERT INTO users (external_id, username, first_name, last_name, last_activity, created_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (external_id) DO UPDATE
		SET username = EXCLUDED.username,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    last_activity = EXCLUDED.last_activity`

	_, err := q.ExecContext(ctx, query,
		identity.ExternalID, identity.Username, identity.FirstName, identity.LastName)
	if err != nil {
		return fmt.Errorf("record activity: %w", err)
	}

	return nil
}

func GetUser(ctx context.Context, q database.Querier, externalID int64) (*models.User, error) {
	user := &models.User{}

	query := `
		SELECT id, external_id, username, first_name, last_name, phone,
		       total_orders, total_spent, last_activity, created_at
		FROM users
		WHERE external_id = $1`

	err := q.QueryRowContext(ctx, query, externalID).Scan(
		&user.ID,
		&user.ExternalID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.Phone,
		&user.TotalOrders,
		&user.TotalSpent,
		&user.LastActivity,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

// AddOrderToUser bumps the order counters relative to their current values so
// concurrent orders for one user never lose an update. The contact phone given
// with an order belongs to that order only and is never copied onto the user.
func AddOrderToUser(ctx context.Context, q database.Querier, externalID int64, amount decimal.Decimal) error {
	result, err := q.ExecContext(ctx,
		`UPDATE users
		 SET total_orders = total_orders + 1,
		     total_spent = total_spent + $1,
		     last_activity = NOW()
		 WHERE external_id = $2`,
		amount, externalID)
	if err != nil {
		return fmt.Errorf("update user totals: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return database.ErrUserNotFound
	}

	return nil
}
