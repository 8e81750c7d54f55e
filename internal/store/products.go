package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/safar/partsbot/internal/database"
	"github.com/safar/partsbot/internal/models"
)

// productColumns selects a product joined with its category as "c".
const productColumns = `
		p.id, p.name, p.description, p.price, p.category_id, c.name,
		p.image_url, p.specs, p.in_stock, p.rating, p.brand,
		p.stock_quantity, p.popularity, p.created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner, product *models.Product) error {
	return row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.CategoryID,
		&product.CategoryName,
		&product.ImageURL,
		&product.Specs,
		&product.InStock,
		&product.Rating,
		&product.Brand,
		&product.StockQuantity,
		&product.Popularity,
		&product.CreatedAt,
	)
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var product models.Product
		if err := scanProduct(rows, &product); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return products, nil
}

func CreateCategory(ctx context.Context, q database.Querier, category models.Category) (*models.Category, error) {
	created := &models.Category{}

	query := `
		INSERT INTO categories (name, description, icon, slug, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, name, description, icon, slug, created_at`

	err := q.QueryRowContext(ctx, query,
		category.Name, category.Description, category.Icon, category.Slug).Scan(
		&created.ID,
		&created.Name,
		&created.Description,
		&created.Icon,
		&created.Slug,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create category %q: %w", category.Slug, err)
	}

	return created, nil
}

// CategoryIDsBySlug maps every category slug to its id.
func CategoryIDsBySlug(ctx context.Context, q database.Querier) (map[string]int64, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, slug FROM categories`)
	if err != nil {
		return nil, fmt.Errorf("list category slugs: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]int64)
	for rows.Next() {
		var id int64
		var slug string
		if err := rows.Scan(&id, &slug); err != nil {
			return nil, fmt.Errorf("scan category slug: %w", err)
		}
		ids[slug] = id
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return ids, nil
}

func CreateProduct(ctx context.Context, q database.Querier, product models.Product) (*models.Product, error) {
	var id int64

	query := `
		INSERT INTO products (name, description, price, category_id, image_url, specs,
		                      in_stock, rating, brand, stock_quantity, popularity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		RETURNING id`

	err := q.QueryRowContext(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.CategoryID,
		product.ImageURL,
		product.Specs,
		product.InStock,
		product.Rating,
		product.Brand,
		product.StockQuantity,
		product.Popularity,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create product %q: %w", product.Name, err)
	}

	return GetProduct(ctx, q, id)
}

// GetProduct returns the full product record with its category name.
func GetProduct(ctx context.Context, q database.Querier, id int64) (*models.Product, error) {
	product := &models.Product{}

	query := `
		SELECT` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`

	err := scanProduct(q.QueryRowContext(ctx, query, id), product)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}
