// Package chat turns incoming chat messages into store operations and
// replies. It knows nothing about the messaging transport.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/safar/partsbot/internal/models"
	"github.com/safar/partsbot/internal/shop"
	"github.com/safar/partsbot/internal/webapp"
	"go.uber.org/zap"
)

const recentOrdersLimit = 5

type Incoming struct {
	ChatID     int64
	User       models.Identity
	Text       string
	WebAppData string
}

// Button opens the web catalog when WebAppURL is set and sends its text
// otherwise.
type Button struct {
	Text      string
	WebAppURL string
}

type Keyboard struct {
	Rows   [][]Button
	Inline bool
}

type Reply struct {
	ChatID   int64
	Text     string
	Markdown bool
	Keyboard *Keyboard
}

type Sender interface {
	Send(ctx context.Context, reply Reply) error
}

// Shop is the subset of *shop.Service the handler needs.
type Shop interface {
	RecordActivity(ctx context.Context, identity models.Identity) error
	Categories(ctx context.Context) ([]models.CategorySummary, error)
	ProductsInCategory(ctx context.Context, slug string) ([]models.Product, error)
	ProductDetail(ctx context.Context, id int64) (*models.Product, bool, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
	TopProducts(ctx context.Context) ([]models.Product, error)
	Stats(ctx context.Context) (*models.StoreStats, error)
	PlaceOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error)
	RecentOrders(ctx context.Context, externalID int64, limit int) ([]models.Order, error)
}

type Options struct {
	BotName     string
	WebAppURL   string
	AdminChatID int64
}

type Handler struct {
	shop   Shop
	sender Sender
	opts   Options
	log    *zap.Logger

	mu       sync.Mutex
	awaiting map[int64]bool
}

func NewHandler(shop Shop, sender Sender, opts Options, log *zap.Logger) *Handler {
	return &Handler{
		shop:     shop,
		sender:   sender,
		opts:     opts,
		log:      log.Named("chat"),
		awaiting: make(map[int64]bool),
	}
}

// Handle processes one incoming message. The returned error is a delivery
// failure; store failures are answered in the chat.
func (h *Handler) Handle(ctx context.Context, in Incoming) error {
	if err := h.shop.RecordActivity(ctx, in.User); err != nil {
		h.log.Warn("Failed to record activity", zap.Int64("user_id", in.User.ExternalID), zap.Error(err))
	}

	if in.WebAppData != "" {
		return h.handleWebApp(ctx, in)
	}

	text := strings.TrimSpace(in.Text)
	if command, args, ok := parseCommand(text); ok {
		h.setAwaitingQuery(in.ChatID, false)
		return h.handleCommand(ctx, in, command, args)
	}

	if h.takeAwaitingQuery(in.ChatID) {
		return h.search(ctx, in.ChatID, text)
	}

	switch text {
	case LabelCategories:
		return h.categories(ctx, in.ChatID)
	case LabelSearch:
		return h.promptSearch(ctx, in.ChatID)
	case LabelStats:
		return h.stats(ctx, in.ChatID)
	case LabelHelp:
		return h.help(ctx, in.ChatID)
	case LabelTop:
		return h.top(ctx, in.ChatID)
	case LabelContacts:
		return h.markdown(ctx, in.ChatID, contactsText(h.opts.WebAppURL), nil)
	}

	if isGreeting(text) {
		return h.plain(ctx, in.ChatID, greetingText(in.User.FirstName))
	}
	return h.plain(ctx, in.ChatID, fallbackText)
}

func parseCommand(text string) (command, args string, ok bool) {
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}

	head, rest, _ := strings.Cut(text, " ")
	command = strings.ToLower(strings.TrimPrefix(head, "/"))
	if i := strings.IndexByte(command, '@'); i >= 0 {
		command = command[:i]
	}
	return command, strings.TrimSpace(rest), command != ""
}

var greetings = map[string]bool{"hi": true, "hello": true, "hey": true, "привет": true}

func isGreeting(text string) bool {
	return greetings[strings.ToLower(text)]
}

func (h *Handler) handleCommand(ctx context.Context, in Incoming, command, args string) error {
	switch command {
	case "start":
		h.log.Info("User started the bot", zap.Int64("user_id", in.User.ExternalID))
		return h.markdown(ctx, in.ChatID, welcomeText(h.opts.BotName), mainKeyboard(h.opts.WebAppURL))
	case "help":
		return h.help(ctx, in.ChatID)
	case "stats":
		return h.stats(ctx, in.ChatID)
	case "search":
		if args == "" {
			return h.promptSearch(ctx, in.ChatID)
		}
		return h.search(ctx, in.ChatID, args)
	case "top":
		return h.top(ctx, in.ChatID)
	case "categories":
		return h.categories(ctx, in.ChatID)
	case "web":
		return h.markdown(ctx, in.ChatID, webText(h.opts.BotName), webAppKeyboard(h.opts.WebAppURL))
	case "orders":
		return h.recentOrders(ctx, in)
	default:
		return h.plain(ctx, in.ChatID, fallbackText)
	}
}

func (h *Handler) setAwaitingQuery(chatID int64, waiting bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if waiting {
		h.awaiting[chatID] = true
	} else {
		delete(h.awaiting, chatID)
	}
}

func (h *Handler) takeAwaitingQuery(chatID int64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	waiting := h.awaiting[chatID]
	delete(h.awaiting, chatID)
	return waiting
}

func (h *Handler) handleWebApp(ctx context.Context, in Incoming) error {
	req, err := webapp.Decode([]byte(in.WebAppData))
	if errors.Is(err, webapp.ErrEmptyCart) {
		return h.plain(ctx, in.ChatID, "❌ Your cart is empty!")
	}
	if err != nil {
		h.log.Warn("Rejected web app payload", zap.Int64("user_id", in.User.ExternalID), zap.Error(err))
		return h.plain(ctx, in.ChatID, "❌ Could not process the request")
	}

	h.log.Info("Web app action", zap.Int64("user_id", in.User.ExternalID), zap.String("action", req.Action))

	switch req.Action {
	case webapp.ActionGetCategories:
		return h.categories(ctx, in.ChatID)
	case webapp.ActionGetProductsByCategory:
		return h.categoryProducts(ctx, in.ChatID, req.Category)
	case webapp.ActionGetProductDetails:
		return h.productDetail(ctx, in.ChatID, int64(req.ProductID))
	case webapp.ActionSearchProducts:
		return h.search(ctx, in.ChatID, req.Query)
	case webapp.ActionGetTopProducts:
		return h.top(ctx, in.ChatID)
	case webapp.ActionCreateOrder:
		return h.placeOrder(ctx, in, req.OrderData)
	case webapp.ActionTest:
		message := req.Message
		if message == "" {
			message = "test"
		}
		return h.plain(ctx, in.ChatID, "✅ Web catalog connected!\nAction: "+message)
	default:
		return h.plain(ctx, in.ChatID, "✅ Data received from the web catalog")
	}
}

func (h *Handler) help(ctx context.Context, chatID int64) error {
	stats, _ := h.shop.Stats(ctx)
	return h.markdown(ctx, chatID, helpText(h.opts.BotName, stats), nil)
}

func (h *Handler) stats(ctx context.Context, chatID int64) error {
	stats, err := h.shop.Stats(ctx)
	if err != nil {
		return h.plain(ctx, chatID, "❌ Failed to load statistics")
	}
	return h.markdown(ctx, chatID, statsText(h.opts.BotName, stats), nil)
}

func (h *Handler) promptSearch(ctx context.Context, chatID int64) error {
	h.setAwaitingQuery(chatID, true)
	return h.markdown(ctx, chatID, searchPrompt, nil)
}

func (h *Handler) search(ctx context.Context, chatID int64, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return h.plain(ctx, chatID, "❌ Enter a search query")
	}

	products, err := h.shop.Search(ctx, query)
	switch {
	case errors.Is(err, shop.ErrInvalidInput):
		return h.plain(ctx, chatID, fmt.Sprintf("❌ Query is too short (at least %d characters)", shop.MinQueryLength))
	case err != nil:
		return h.plain(ctx, chatID, "❌ Search failed")
	case len(products) == 0:
		return h.plain(ctx, chatID, fmt.Sprintf("❌ Nothing found for '%s'", query))
	}
	return h.markdown(ctx, chatID, searchResultsText(query, products), nil)
}

func (h *Handler) top(ctx context.Context, chatID int64) error {
	products, err := h.shop.TopProducts(ctx)
	if err != nil {
		return h.plain(ctx, chatID, "❌ Failed to load ratings")
	}
	if len(products) == 0 {
		return h.plain(ctx, chatID, "❌ No rated products yet")
	}
	return h.markdown(ctx, chatID, topProductsText(products), nil)
}

func (h *Handler) categories(ctx context.Context, chatID int64) error {
	categories, err := h.shop.Categories(ctx)
	if err != nil {
		return h.plain(ctx, chatID, "❌ Failed to load categories")
	}
	if len(categories) == 0 {
		return h.plain(ctx, chatID, "❌ No categories found")
	}
	return h.markdown(ctx, chatID, categoriesText(categories), nil)
}

func (h *Handler) categoryProducts(ctx context.Context, chatID int64, slug string) error {
	products, err := h.shop.ProductsInCategory(ctx, slug)
	if err != nil && !errors.Is(err, shop.ErrInvalidInput) {
		return h.plain(ctx, chatID, "❌ Failed to load products")
	}
	if len(products) == 0 {
		return h.plain(ctx, chatID, fmt.Sprintf("❌ No products found in category '%s'", slug))
	}
	return h.markdown(ctx, chatID, categoryProductsText(products), nil)
}

func (h *Handler) productDetail(ctx context.Context, chatID, id int64) error {
	product, found, err := h.shop.ProductDetail(ctx, id)
	if err != nil {
		return h.plain(ctx, chatID, "❌ Failed to load product information")
	}
	if !found {
		return h.plain(ctx, chatID, "❌ Product not found")
	}
	return h.markdown(ctx, chatID, productDetailText(product), nil)
}

func (h *Handler) placeOrder(ctx context.Context, in Incoming, data *webapp.OrderData) error {
	order, err := h.shop.PlaceOrder(ctx, data.OrderRequest(in.User))
	if errors.Is(err, shop.ErrInvalidInput) {
		h.log.Warn("Order rejected", zap.Int64("user_id", in.User.ExternalID), zap.Error(err))
		return h.plain(ctx, in.ChatID, "❌ The order could not be accepted. Please review your cart and try again.")
	}
	if err != nil {
		return h.plain(ctx, in.ChatID, "❌ Failed to place the order. Please try again.")
	}

	if err := h.markdown(ctx, in.ChatID, orderConfirmationText(order, in.User), nil); err != nil {
		return err
	}

	if h.opts.AdminChatID != 0 {
		if err := h.markdown(ctx, h.opts.AdminChatID, adminOrderText(order, in.User), nil); err != nil {
			h.log.Warn("Failed to notify admin", zap.String("order_number", order.OrderNumber), zap.Error(err))
		}
	}
	return nil
}

func (h *Handler) recentOrders(ctx context.Context, in Incoming) error {
	orders, err := h.shop.RecentOrders(ctx, in.User.ExternalID, recentOrdersLimit)
	if err != nil {
		return h.plain(ctx, in.ChatID, "❌ Failed to load your orders")
	}
	if len(orders) == 0 {
		return h.plain(ctx, in.ChatID, "📦 You have no orders yet. Open the web catalog to place one.")
	}
	return h.markdown(ctx, in.ChatID, recentOrdersText(orders), nil)
}

func (h *Handler) markdown(ctx context.Context, chatID int64, text string, keyboard *Keyboard) error {
	return h.sender.Send(ctx, Reply{ChatID: chatID, Text: text, Markdown: true, Keyboard: keyboard})
}

func (h *Handler) plain(ctx context.Context, chatID int64, text string) error {
	return h.sender.Send(ctx, Reply{ChatID: chatID, Text: text})
}

var _ Shop = (*shop.Service)(nil)
