package store

import (
	"context"
	"fmt"

	"github.com/safar/partsbot/internal/database"
	"github.com/safar/partsbot/internal/models"
)

// GetStoreStats aggregates catalog and ledger counters. Products without a
// brand share the empty brand, which counts once. Price aggregates are zero
// when there are no products.
func GetStoreStats(ctx context.Context, q database.Querier) (*models.StoreStats, error) {
	stats := &models.StoreStats{}

	query := `
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM products WHERE in_stock),
			(SELECT COUNT(DISTINCT brand) FROM products),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM users),
			COALESCE((SELECT MIN(price) FROM products), 0),
			COALESCE((SELECT MAX(price) FROM products), 0),
			COALESCE((SELECT ROUND(AVG(price), 2) FROM products), 0)`

	err := q.QueryRowContext(ctx, query).Scan(
		&stats.TotalProducts,
		&stats.InStockProducts,
		&stats.TotalBrands,
		&stats.TotalCategories,
		&stats.TotalOrders,
		&stats.TotalUsers,
		&stats.MinPrice,
		&stats.MaxPrice,
		&stats.AvgPrice,
	)
	if err != nil {
		return nil, fmt.Errorf("store stats: %w", err)
	}

	return stats, nil
}
