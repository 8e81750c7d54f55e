package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategorySummary is a category together with the number of products filed
// under it.
type CategorySummary struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Icon         string `json:"icon,omitempty"`
	Slug         string `json:"slug"`
	ProductCount int    `json:"product_count"`
}

type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CategoryID    int64           `json:"category_id"`
	CategoryName  string          `json:"category_name,omitempty"`
	ImageURL      string          `json:"image_url,omitempty"`
	Specs         string          `json:"specs,omitempty"`
	InStock       bool            `json:"in_stock"`
	Rating        float64         `json:"rating"`
	Brand         string          `json:"brand"`
	StockQuantity int             `json:"stock_quantity"`
	Popularity    int             `json:"popularity"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Identity is what the chat transport knows about the person it is talking to.
type Identity struct {
	ExternalID int64  `json:"external_id"`
	Username   string `json:"username,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
}

type User struct {
	ID           int64           `json:"id"`
	ExternalID   int64           `json:"external_id"`
	Username     string          `json:"username,omitempty"`
	FirstName    string          `json:"first_name,omitempty"`
	LastName     string          `json:"last_name,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	TotalOrders  int             `json:"total_orders"`
	TotalSpent   decimal.Decimal `json:"total_spent"`
	LastActivity time.Time       `json:"last_activity"`
	CreatedAt    time.Time       `json:"created_at"`
}

type Order struct {
	ID             int64           `json:"id"`
	OrderNumber    string          `json:"order_number"`
	ExternalUserID int64           `json:"external_user_id"`
	UserName       string          `json:"user_name"`
	Phone          string          `json:"phone"`
	Items          []LineItem      `json:"items"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Status         string          `json:"status"`
	Address        string          `json:"address"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// LineItem is copied into the order by value, so later catalog changes never
// alter a placed order.
type LineItem struct {
	ProductID int64           `json:"product_id,omitempty"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// SumLineItems returns the sum of price*quantity over items.
func SumLineItems(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

type CreateOrderRequest struct {
	ExternalUserID int64
	UserName       string
	Phone          string
	Address        string
	Notes          string
	Items          []LineItem
	Total          decimal.Decimal
}

type StoreStats struct {
	TotalProducts   int             `json:"total_products"`
	InStockProducts int             `json:"in_stock_products"`
	TotalBrands     int             `json:"total_brands"`
	TotalCategories int             `json:"total_categories"`
	TotalOrders     int             `json:"total_orders"`
	TotalUsers      int             `json:"total_users"`
	MinPrice        decimal.Decimal `json:"min_price"`
	MaxPrice        decimal.Decimal `json:"max_price"`
	AvgPrice        decimal.Decimal `json:"avg_price"`
}

// InStockPercent is zero for an empty catalog.
func (s StoreStats) InStockPercent() float64 {
	if s.TotalProducts == 0 {
		return 0
	}
	return float64(s.InStockProducts) / float64(s.TotalProducts) * 100
}

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)
