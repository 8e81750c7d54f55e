package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/safar/partsbot/internal/database"
	"github.com/safar/partsbot/internal/models"
)

const (
	CategoryPageSize = 15
	SearchLimit      = 15
	TopLimit         = 10
)

func ListCategories(ctx context.Context, q database.Querier) ([]models.CategorySummary, error) {
	query := `
		SELECT c.name, c.description, c.icon, c.slug, COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.CategorySummary{}
	for rows.Next() {
		var category models.CategorySummary
		err := rows.Scan(
			&category.Name,
			&category.Description,
			&category.Icon,
			&category.Slug,
			&category.ProductCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return categories, nil
}

// ListProductsByCategory returns the best ranked products of the category
// with the given slug. An unknown slug yields an empty slice.
func ListProductsByCategory(ctx context.Context, q database.Querier, slug string, limit int) ([]models.Product, error) {
	query := `
		SELECT` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE c.slug = $1
		ORDER BY p.rating DESC, p.popularity DESC, p.id
		LIMIT $2`

	rows, err := q.QueryContext(ctx, query, slug, limit)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}

	return scanProducts(rows)
}

// SearchProducts matches term case-insensitively as a literal substring of
// the product name, brand, description or category name.
func SearchProducts(ctx context.Context, q database.Querier, term string, limit int) ([]models.Product, error) {
	query := `
		SELECT` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.name ILIKE $1
		   OR p.brand ILIKE $1
		   OR p.description ILIKE $1
		   OR c.name ILIKE $1
		ORDER BY p.rating DESC, p.price ASC, p.id
		LIMIT $2`

	rows, err := q.QueryContext(ctx, query, "%"+escapeLike(term)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	return scanProducts(rows)
}

func TopProducts(ctx context.Context, q database.Querier, limit int) ([]models.Product, error) {
	query := `
		SELECT` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.rating > 0
		ORDER BY p.rating DESC, p.popularity DESC, p.id
		LIMIT $1`

	rows, err := q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}

	return scanProducts(rows)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
