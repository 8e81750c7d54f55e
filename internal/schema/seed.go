package schema

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safar/partsbot/internal/database"
	"github.com/safar/partsbot/internal/models"
	"github.com/safar/partsbot/internal/store"
	"go.uber.org/zap"
)

// seedLockKey serializes seeding across processes sharing the database.
const seedLockKey int64 = 0x70617274

// Seed fills the catalog when it is empty. Categories are seeded when the
// categories table has no rows, starter products when the products table has
// no rows. Populated tables are left untouched.
func Seed(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	return database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, seedLockKey); err != nil {
			return fmt.Errorf("acquire seed lock: %w", err)
		}

		categories, err := countRows(ctx, tx, `SELECT COUNT(*) FROM categories`)
		if err != nil {
			return err
		}

		if categories == 0 {
			for _, category := range seedCategories {
				if _, err := store.CreateCategory(ctx, tx, category); err != nil {
					return err
				}
			}
			log.Info("Seeded categories", zap.Int("count", len(seedCategories)))
		}

		products, err := countRows(ctx, tx, `SELECT COUNT(*) FROM products`)
		if err != nil {
			return err
		}
		if products > 0 {
			return nil
		}

		categoryIDs, err := store.CategoryIDsBySlug(ctx, tx)
		if err != nil {
			return err
		}

		seeded := 0
		for _, sp := range seedProducts {
			categoryID, ok := categoryIDs[sp.categorySlug]
			if !ok {
				log.Warn("Skipping starter product without category",
					zap.String("product", sp.product.Name),
					zap.String("slug", sp.categorySlug),
				)
				continue
			}

			product := sp.product
			product.CategoryID = categoryID
			if _, err := store.CreateProduct(ctx, tx, product); err != nil {
				return err
			}
			seeded++
		}
		log.Info("Seeded products", zap.Int("count", seeded))

		return nil
	})
}

func countRows(ctx context.Context, q database.Querier, query string) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return n, nil
}

type seedProduct struct {
	categorySlug string
	product      models.Product
}
