package chat

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/safar/partsbot/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPrice(t *testing.T) {
	tests := map[string]string{
		"24999":    "24,999₽",
		"999":      "999₽",
		"1234567":  "1,234,567₽",
		"21745.5":  "21,746₽",
		"0":        "0₽",
		"19850.49": "19,850₽",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatPrice(decimal.RequireFromString(in)), in)
	}
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "DDR5\\_6000 \\*RGB\\* \\[new] \\`x\\`", Escape("DDR5_6000 *RGB* [new] `x`"))
}

func TestBold(t *testing.T) {
	assert.Equal(t, "*1. AMD Ryzen 7 7800X3D*", bold("1. AMD Ryzen 7 7800X3D"))
	assert.Equal(t, "Fan \\*RGB\\*", bold("Fan *RGB*"))
}

// checkLegacyMarkdown reports text Telegram's legacy Markdown parser would
// reject or render with stray backslashes: unclosed entities, escapes inside
// an entity and unescaped link brackets.
func checkLegacyMarkdown(text string) error {
	var open rune
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if open != 0 {
			switch {
			case r == open:
				open = 0
			case r == '\\' && open != '`':
				return fmt.Errorf("escape inside %q entity at rune %d", open, i)
			}
			continue
		}
		switch r {
		case '\\':
			if i+1 < len(runes) && strings.ContainsRune("_*`[", runes[i+1]) {
				i++
			}
		case '*', '_', '`':
			open = r
		case '[':
			return fmt.Errorf("unescaped link bracket at rune %d", i)
		}
	}
	if open != 0 {
		return fmt.Errorf("unclosed %q entity", open)
	}
	return nil
}

func TestCheckLegacyMarkdown(t *testing.T) {
	assert.NoError(t, checkLegacyMarkdown("*bold* and _it_ and `co*de` and \\*star"))
	assert.Error(t, checkLegacyMarkdown("*Fan \\*RGB\\**"))
	assert.Error(t, checkLegacyMarkdown("*unclosed"))
	assert.Error(t, checkLegacyMarkdown("[link]"))
}

func TestRenderedTextsSurviveMarkupInNames(t *testing.T) {
	const hostile = "Fan *RGB* _x_ [v2] `y`"

	product := models.Product{
		ID:            1,
		Name:          hostile,
		Description:   hostile,
		Specs:         hostile,
		Brand:         hostile,
		CategoryName:  hostile,
		Price:         decimal.NewFromInt(1990),
		InStock:       true,
		Rating:        4.5,
		StockQuantity: 3,
		Popularity:    10,
	}
	products := []models.Product{product, product}
	order := &models.Order{
		OrderNumber: "ORD-0A1B2C3D4E5F",
		Phone:       hostile,
		Address:     hostile,
		Items:       []models.LineItem{{Name: hostile, Price: decimal.NewFromInt(1990), Quantity: 2}},
		TotalPrice:  decimal.NewFromInt(3980),
		Status:      models.OrderStatusPending,
		CreatedAt:   time.Date(2026, 10, 18, 14, 30, 0, 0, time.UTC),
	}
	user := models.Identity{ExternalID: 42, Username: "tom_k", FirstName: hostile}
	stats := &models.StoreStats{TotalProducts: 4, InStockProducts: 3}

	texts := map[string]string{
		"welcome":      welcomeText(hostile),
		"help":         helpText(hostile, stats),
		"stats":        statsText(hostile, stats),
		"categories":   categoriesText([]models.CategorySummary{{Name: hostile, Description: hostile, Icon: "🎧", ProductCount: 2}}),
		"category":     categoryProductsText(products),
		"detail":       productDetailText(&product),
		"search":       searchResultsText(hostile, products),
		"top":          topProductsText(products),
		"confirmation": orderConfirmationText(order, user),
		"admin":        adminOrderText(order, user),
		"recent":       recentOrdersText([]models.Order{*order}),
		"web":          webText(hostile),
		"contacts":     contactsText("https://shop.example/app_v2/"),
		"greeting":     greetingText(hostile),
	}

	for name, text := range texts {
		require.NoError(t, checkLegacyMarkdown(text), "%s:\n%s", name, text)
	}
	assert.Contains(t, texts["search"], "*Search results:* '"+Escape(hostile)+"'")
	assert.Contains(t, texts["detail"], "🛒 "+Escape(hostile))
}

func TestRenderedTextsKeepBoldForPlainNames(t *testing.T) {
	product := models.Product{Name: "AMD Ryzen 7 7800X3D", CategoryName: "Processors", Brand: "AMD", Price: decimal.NewFromInt(37999)}

	assert.Contains(t, categoryProductsText([]models.Product{product}), "🛒 *Processors:*")
	assert.Contains(t, searchResultsText("amd", []models.Product{product}), "*1. AMD Ryzen 7 7800X3D*")
	assert.Contains(t, welcomeText("Computer Parts Store"), "*Welcome to Computer Parts Store!*")
}
