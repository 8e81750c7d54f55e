// Package shop is the single entry point the chat and web front-ends use to
// read the catalog and record users and orders.
//
// Input is validated before any storage access. Lookups that find nothing
// return absent results rather than errors. Storage failures are logged here
// and reported to callers as ErrStorage.
package shop

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/safar/partsbot/internal/database"
	"github.com/safar/partsbot/internal/models"
	"github.com/safar/partsbot/internal/store"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrStorage      = errors.New("storage failure")
)

const MinQueryLength = 2

type Service struct {
	db  *sql.DB
	log *zap.Logger
}

func New(db *sql.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log.Named("shop")}
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func (s *Service) storageFailure(op string, err error, fields ...zap.Field) error {
	fields = append(fields,
		zap.String("op", op),
		zap.Error(err),
		zap.Stringer("class", database.ClassifyError(err)),
		zap.Bool("retryable", database.IsRetryable(err)),
	)
	s.log.Error("Storage operation failed", fields...)
	return fmt.Errorf("%s: %w", op, ErrStorage)
}

func (s *Service) RecordActivity(ctx context.Context, identity models.Identity) error {
	if identity.ExternalID == 0 {
		return invalidInput("missing user id")
	}

	if err := store.RecordActivity(ctx, s.db, identity); err != nil {
		return s.storageFailure("record activity", err, zap.Int64("user_id", identity.ExternalID))
	}
	return nil
}

func (s *Service) Categories(ctx context.Context) ([]models.CategorySummary, error) {
	categories, err := store.ListCategories(ctx, s.db)
	if err != nil {
		return nil, s.storageFailure("list categories", err)
	}
	return categories, nil
}

// ProductsInCategory returns an empty slice for an unknown slug.
func (s *Service) ProductsInCategory(ctx context.Context, slug string) ([]models.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, invalidInput("category is required")
	}

	products, err := store.ListProductsByCategory(ctx, s.db, slug, store.CategoryPageSize)
	if err != nil {
		return nil, s.storageFailure("list category products", err, zap.String("slug", slug))
	}
	return products, nil
}

// ProductDetail reports found=false when no product has the given id.
func (s *Service) ProductDetail(ctx context.Context, id int64) (product *models.Product, found bool, err error) {
	if id <= 0 {
		return nil, false, nil
	}

	product, err = store.GetProduct(ctx, s.db, id)
	if errors.Is(err, database.ErrProductNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, s.storageFailure("get product", err, zap.Int64("product_id", id))
	}
	return product, true, nil
}

func (s *Service) Search(ctx context.Context, query string) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil, invalidInput("search query must be at least %d characters", MinQueryLength)
	}

	products, err := store.SearchProducts(ctx, s.db, query, store.SearchLimit)
	if err != nil {
		return nil, s.storageFailure("search products", err, zap.String("query", query))
	}
	return products, nil
}

func (s *Service) TopProducts(ctx context.Context) ([]models.Product, error) {
	products, err := store.TopProducts(ctx, s.db, store.TopLimit)
	if err != nil {
		return nil, s.storageFailure("top products", err)
	}
	return products, nil
}

func (s *Service) Stats(ctx context.Context) (*models.StoreStats, error) {
	stats, err := store.GetStoreStats(ctx, s.db)
	if err != nil {
		return nil, s.storageFailure("store stats", err)
	}
	return stats, nil
}

// PlaceOrder records a pending order and credits it to the user. The user
// must have been seen by RecordActivity first; otherwise the order is
// refused with database.ErrUserNotFound and nothing is stored.
func (s *Service) PlaceOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	if err := validateOrder(&req); err != nil {
		return nil, err
	}

	order, err := store.CreateOrder(ctx, s.db, req)
	if errors.Is(err, database.ErrUserNotFound) {
		s.log.Warn("Order for unknown user refused", zap.Int64("user_id", req.ExternalUserID))
		return nil, fmt.Errorf("place order: %w", database.ErrUserNotFound)
	}
	if err != nil {
		return nil, s.storageFailure("place order", err, zap.Int64("user_id", req.ExternalUserID))
	}

	s.log.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.Int64("user_id", order.ExternalUserID),
		zap.Stringer("total", order.TotalPrice),
	)
	return order, nil
}

// moneyScale is the number of decimal places stored for order totals.
const moneyScale = 2

// validateOrder replaces the caller's total with the sum of the line items.
// Totals computed in floating point by the web page are accepted when they
// agree with the sum to the cent.
func validateOrder(req *models.CreateOrderRequest) error {
	if req.ExternalUserID == 0 {
		return invalidInput("missing user id")
	}
	if len(req.Items) == 0 {
		return invalidInput("cart is empty")
	}

	for i, item := range req.Items {
		if strings.TrimSpace(item.Name) == "" {
			return invalidInput("item %d has no name", i+1)
		}
		if item.Quantity <= 0 {
			return invalidInput("item %q has quantity %d", item.Name, item.Quantity)
		}
		if item.Price.IsNegative() {
			return invalidInput("item %q has a negative price", item.Name)
		}
	}

	computed := models.SumLineItems(req.Items).Round(moneyScale)
	if !req.Total.IsZero() && !req.Total.Round(moneyScale).Equal(computed) {
		return invalidInput("total %s does not match line items %s", req.Total, computed)
	}
	req.Total = computed

	return nil
}

func (s *Service) RecentOrders(ctx context.Context, externalID int64, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 5
	}

	page, err := store.ListUserOrders(ctx, s.db, externalID, "", limit)
	if err != nil {
		return nil, s.storageFailure("recent orders", err, zap.Int64("user_id", externalID))
	}
	return page.Orders, nil
}
