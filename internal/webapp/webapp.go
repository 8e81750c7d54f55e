// Package webapp decodes the payloads the embedded catalog page sends back
// to the bot.
package webapp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/safar/partsbot/internal/models"
	"github.com/shopspring/decimal"
)

const (
	ActionGetCategories         = "get_categories"
	ActionGetProductsByCategory = "get_products_by_category"
	ActionGetProductDetails     = "get_product_details"
	ActionSearchProducts        = "search_products"
	ActionGetTopProducts        = "get_top_products"
	ActionCreateOrder           = "create_order"
	ActionTest                  = "test"
)

// NotSpecified fills in contact fields the customer left out.
const NotSpecified = "Not specified"

var (
	ErrMalformed      = errors.New("malformed web app payload")
	ErrInvalidRequest = errors.New("invalid web app request")
	ErrEmptyCart      = errors.New("cart is empty")
)

type Request struct {
	Action    string     `json:"action" validate:"required"`
	Category  string     `json:"category" validate:"required_if=Action get_products_by_category"`
	ProductID FlexibleID `json:"product_id" validate:"required_if=Action get_product_details"`
	Query     string     `json:"query" validate:"required_if=Action search_products"`
	Message   string     `json:"message"`
	OrderData *OrderData `json:"order_data"`
}

type OrderData struct {
	Items   []OrderItem     `json:"items" validate:"dive"`
	Total   decimal.Decimal `json:"total"`
	Address string          `json:"address"`
	Phone   string          `json:"phone"`
	Notes   string          `json:"notes" validate:"max=1000"`
}

type OrderItem struct {
	ID       FlexibleID      `json:"id"`
	Name     string          `json:"name" validate:"required,max=200"`
	Price    decimal.Decimal `json:"price"`
	Quantity *int            `json:"quantity" validate:"omitempty,min=1,max=100"`
}

// FlexibleID accepts both 42 and "42". Null and "" decode to zero.
type FlexibleID int64

func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*id = 0
			return nil
		}
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("id %s is not an integer", data)
	}
	*id = FlexibleID(n)
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Decode parses and validates a payload. Unknown actions decode without
// error so the caller can acknowledge them.
func Decode(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	req.Action = strings.TrimSpace(req.Action)

	if req.Action == ActionCreateOrder && (req.OrderData == nil || len(req.OrderData.Items) == 0) {
		return nil, ErrEmptyCart
	}

	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, describe(err))
	}

	return &req, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.TrimPrefix(e.Namespace(), "Request.")
		switch e.Tag() {
		case "required", "required_if":
			parts = append(parts, field+" is required")
		case "min":
			parts = append(parts, field+" must be at least "+e.Param())
		case "max":
			parts = append(parts, field+" must be at most "+e.Param())
		default:
			parts = append(parts, field+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}

// OrderRequest turns the cart into a request on behalf of the given user.
func (o *OrderData) OrderRequest(user models.Identity) models.CreateOrderRequest {
	items := make([]models.LineItem, 0, len(o.Items))
	for _, item := range o.Items {
		quantity := 1
		if item.Quantity != nil {
			quantity = *item.Quantity
		}
		items = append(items, models.LineItem{
			ProductID: int64(item.ID),
			Name:      strings.TrimSpace(item.Name),
			Price:     item.Price,
			Quantity:  quantity,
		})
	}

	return models.CreateOrderRequest{
		ExternalUserID: user.ExternalID,
		UserName:       user.FirstName,
		Phone:          orNotSpecified(o.Phone),
		Address:        orNotSpecified(o.Address),
		Notes:          strings.TrimSpace(o.Notes),
		Items:          items,
		Total:          o.Total,
	}
}

func orNotSpecified(s string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return NotSpecified
}
