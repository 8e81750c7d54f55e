package chat

import (
	"fmt"
	"strings"

	"github.com/safar/partsbot/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	LabelOpenCatalog = "🛒 Open product catalog"
	LabelCategories  = "📁 Categories"
	LabelSearch      = "🔍 Search"
	LabelStats       = "📊 Statistics"
	LabelHelp        = "🆘 Help"
	LabelTop         = "⭐ Top products"
	LabelContacts    = "📞 Contacts"
)

const dateLayout = "02.01.2006 15:04"

var printer = message.NewPrinter(language.English)

// FormatPrice renders whole rubles with thousands grouping, e.g. 24,999₽.
func FormatPrice(price decimal.Decimal) string {
	return printer.Sprintf("%d₽", price.Round(0).IntPart())
}

var markdownEscaper = strings.NewReplacer(`_`, `\_`, `*`, `\*`, "`", "\\`", `[`, `\[`)

// Escape makes free text safe inside a legacy Markdown message. The result
// must stay outside entities: legacy Markdown does not unescape inside them.
func Escape(s string) string {
	return markdownEscaper.Replace(s)
}

// bold wraps s in a bold entity. Text carrying Markdown metacharacters is
// escaped and left plain instead.
func bold(s string) string {
	if strings.ContainsAny(s, "_*`[") {
		return Escape(s)
	}
	return "*" + s + "*"
}

func ratingSuffix(rating float64) string {
	if rating <= 0 {
		return ""
	}
	return " | " + models.Stars(rating)
}

func stockStatus(p models.Product) string {
	if p.InStock {
		return "✅ In stock"
	}
	return "⏳ On order"
}

func mainKeyboard(webAppURL string) *Keyboard {
	return &Keyboard{
		Rows: [][]Button{
			{{Text: LabelOpenCatalog, WebAppURL: webAppURL}},
			{{Text: LabelCategories}, {Text: LabelSearch}},
			{{Text: LabelStats}, {Text: LabelHelp}},
			{{Text: LabelTop}, {Text: LabelContacts}},
		},
	}
}

func webAppKeyboard(webAppURL string) *Keyboard {
	return &Keyboard{
		Inline: true,
		Rows:   [][]Button{{{Text: LabelOpenCatalog, WebAppURL: webAppURL}}},
	}
}

func welcomeText(botName string) string {
	return fmt.Sprintf(`🖥️ %s

*We offer:*
• 🛒 Computer parts for every build
• 📱 A modern web catalog
• 🔍 Search by name, brand and category
• ⭐ Honest ratings
• 🚀 Fast delivery across the city

*Start with the web catalog for the easiest shopping!*`, bold("Welcome to "+botName+"!"))
}

func helpText(botName string, stats *models.StoreStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🆘 %s\n\n", bold(botName+" help"))
	b.WriteString("*Commands:*\n")
	b.WriteString("/start - Main menu\n")
	b.WriteString("/help - This help\n")
	b.WriteString("/stats - Store statistics\n")
	b.WriteString("/search - Product search\n")
	b.WriteString("/top - Top rated products\n")
	b.WriteString("/categories - All categories\n")
	b.WriteString("/orders - Your recent orders\n")
	b.WriteString("/web - Web catalog\n\n")
	b.WriteString("*Search examples:*\n")
	b.WriteString("`/search RTX 4060`\n")
	b.WriteString("`/search AMD Ryzen`\n")
	b.WriteString("`/search processor`\n\n")
	b.WriteString("*Store:*\n")
	if stats != nil {
		fmt.Fprintf(&b, "• Products in stock: %d\n", stats.InStockProducts)
		fmt.Fprintf(&b, "• Categories: %d\n", stats.TotalCategories)
		fmt.Fprintf(&b, "• Brands: %d\n", stats.TotalBrands)
	} else {
		b.WriteString("• Statistics are unavailable right now\n")
	}
	return b.String()
}

func statsText(botName string, stats *models.StoreStats) string {
	return fmt.Sprintf(`📊 %s

*Products:*
• Total: *%d*
• In stock: *%d* (%.1f%%)
• Brands: *%d*
• Categories: *%d*

*Prices:*
• Lowest: *%s*
• Highest: *%s*
• Average: *%s*

*Customers:*
• Users: *%d*
• Orders: *%d*`,
		bold(botName+" statistics:"),
		stats.TotalProducts,
		stats.InStockProducts, stats.InStockPercent(),
		stats.TotalBrands,
		stats.TotalCategories,
		FormatPrice(stats.MinPrice),
		FormatPrice(stats.MaxPrice),
		FormatPrice(stats.AvgPrice),
		stats.TotalUsers,
		stats.TotalOrders,
	)
}

const searchPrompt = `🔍 *Enter a search query:*

You can search by:
• Product name
• Brand (ASUS, AMD, Intel...)
• Category (processor, graphics card)`

func categoriesText(categories []models.CategorySummary) string {
	var b strings.Builder
	b.WriteString("📁 *Computer parts categories:*\n\n")
	for _, c := range categories {
		fmt.Fprintf(&b, "• %s %s\n", c.Icon, bold(c.Name))
		if c.Description != "" {
			fmt.Fprintf(&b, "  %s\n", Escape(c.Description))
		}
		fmt.Fprintf(&b, "  🛒 Products: %d\n\n", c.ProductCount)
	}
	fmt.Fprintf(&b, "*Total categories: %d*\n", len(categories))
	b.WriteString("*Pick a category in the web catalog to browse its products*")
	return b.String()
}

func categoryProductsText(products []models.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🛒 %s\n\n", bold(products[0].CategoryName+":"))
	for i, p := range products {
		stock := ""
		if p.StockQuantity > 0 {
			stock = fmt.Sprintf(" (%d left)", p.StockQuantity)
		}
		fmt.Fprintf(&b, "%s\n", bold(fmt.Sprintf("%d. %s", i+1, p.Name)))
		fmt.Fprintf(&b, "   🏷️ %s\n", Escape(p.Brand))
		fmt.Fprintf(&b, "   💰 %s\n", FormatPrice(p.Price))
		fmt.Fprintf(&b, "   📊 %s%s%s\n\n", stockStatus(p), stock, ratingSuffix(p.Rating))
	}
	fmt.Fprintf(&b, "*Products found: %d*", len(products))
	return b.String()
}

func productDetailText(p *models.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🛒 %s\n\n", bold(p.Name))
	fmt.Fprintf(&b, "*Brand:* %s\n", Escape(p.Brand))
	fmt.Fprintf(&b, "*Category:* %s\n", Escape(p.CategoryName))
	fmt.Fprintf(&b, "*Price:* %s\n", FormatPrice(p.Price))
	fmt.Fprintf(&b, "*Availability:* %s\n", stockStatus(*p))
	if p.StockQuantity > 0 {
		fmt.Fprintf(&b, "📦 *Left in stock:* %d pcs.\n", p.StockQuantity)
	}
	fmt.Fprintf(&b, "*Rating:* %s (%.1f/5)\n", models.Stars(p.Rating), p.Rating)
	if p.Description != "" {
		fmt.Fprintf(&b, "\n*Description:*\n%s\n", Escape(p.Description))
	}
	if p.Specs != "" {
		fmt.Fprintf(&b, "\n*Specifications:*\n%s\n", Escape(p.Specs))
	}
	b.WriteString("\n*Use the web catalog to order!*")
	return b.String()
}

func searchResultsText(query string, products []models.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 *Search results:* '%s'\n\n", Escape(query))
	for i, p := range products {
		mark := "⏳"
		if p.InStock {
			mark = "✅"
		}
		fmt.Fprintf(&b, "%s\n", bold(fmt.Sprintf("%d. %s", i+1, p.Name)))
		fmt.Fprintf(&b, "   🏷️ %s | 📁 %s\n", Escape(p.Brand), Escape(p.CategoryName))
		fmt.Fprintf(&b, "   💰 %s\n", FormatPrice(p.Price))
		fmt.Fprintf(&b, "   📊 %s%s\n\n", mark, ratingSuffix(p.Rating))
	}
	fmt.Fprintf(&b, "*Products found: %d*\n", len(products))
	b.WriteString("*Try a more specific query to narrow the results*")
	return b.String()
}

func topProductsText(products []models.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏆 *Top %d products by rating:*\n\n", len(products))
	for i, p := range products {
		fmt.Fprintf(&b, "%s\n", bold(fmt.Sprintf("%d. %s", i+1, p.Name)))
		fmt.Fprintf(&b, "   🏷️ %s | 📁 %s\n", Escape(p.Brand), Escape(p.CategoryName))
		fmt.Fprintf(&b, "   💰 %s\n", FormatPrice(p.Price))
		fmt.Fprintf(&b, "   ⭐ %s (%.1f/5) | 👍 %d\n\n", models.Stars(p.Rating), p.Rating, p.Popularity)
	}
	b.WriteString("*Ratings are based on customer reviews*")
	return b.String()
}

func orderConfirmationText(order *models.Order, user models.Identity) string {
	username := "not set"
	if user.Username != "" {
		username = "@" + user.Username
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ *Order #%s has been placed!*\n\n", order.OrderNumber)
	b.WriteString("*Order details:*\n")
	fmt.Fprintf(&b, "👤 *Customer:* %s (%s)\n", Escape(user.FirstName), Escape(username))
	fmt.Fprintf(&b, "📱 *Phone:* %s\n", Escape(order.Phone))
	fmt.Fprintf(&b, "🏠 *Delivery address:* %s\n", Escape(order.Address))
	fmt.Fprintf(&b, "📅 *Placed:* %s\n\n", order.CreatedAt.Format(dateLayout))
	b.WriteString("*Items:*\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "• %s x%d = %s\n", Escape(item.Name), item.Quantity, FormatPrice(item.Subtotal()))
	}
	fmt.Fprintf(&b, "\n💰 *Total:* %s\n", FormatPrice(order.TotalPrice))
	b.WriteString("📊 *Status:* Awaiting processing\n\n")
	b.WriteString("📞 Our manager will contact you within 30 minutes to confirm the order.")
	return b.String()
}

func adminOrderText(order *models.Order, user models.Identity) string {
	who := Escape(user.FirstName)
	if user.Username != "" {
		who += " (@" + Escape(user.Username) + ")"
	}
	return fmt.Sprintf("🆕 *New order #%s*\n👤 %s\n📱 %s\n🏠 %s\n🛒 %d item(s)\n💰 %s",
		order.OrderNumber, who, Escape(order.Phone), Escape(order.Address),
		len(order.Items), FormatPrice(order.TotalPrice))
}

func recentOrdersText(orders []models.Order) string {
	var b strings.Builder
	b.WriteString("📦 *Your recent orders:*\n\n")
	for _, o := range orders {
		fmt.Fprintf(&b, "*#%s* · %s\n", o.OrderNumber, o.CreatedAt.Format(dateLayout))
		fmt.Fprintf(&b, "   💰 %s | %s | %d item(s)\n\n", FormatPrice(o.TotalPrice), o.Status, len(o.Items))
	}
	return strings.TrimRight(b.String(), "\n")
}

func webText(botName string) string {
	return fmt.Sprintf(`📱 %s

*Features:*
• 🎨 Product photos
• 🛒 Easy category browsing
• 🔍 Quick search and filters
• 📝 Detailed specifications
• 🛍️ Cart and checkout

*Tap the button below to open it:*`, bold(botName+" web catalog"))
}

func contactsText(webAppURL string) string {
	return "📞 *Store contacts:*\n\n" +
		"*Address:* Moscow, Computer st. 15\n" +
		"*Phone:* +7 (999) 123-45-67\n" +
		"*Email:* shop@computer-parts.ru\n" +
		"*Hours:* Mon-Fri 10:00-20:00, Sat-Sun 11:00-18:00\n\n" +
		"*Web catalog:* " + Escape(webAppURL)
}

func greetingText(name string) string {
	return fmt.Sprintf("👋 Hi, %s!\nWelcome to the computer parts store!\nUse /start to see what the bot can do.", Escape(name))
}

const fallbackText = "🤔 I don't understand that. Use the menu buttons or commands:\n" +
	"/start - main menu\n" +
	"/help - help\n" +
	"/web - web catalog"
