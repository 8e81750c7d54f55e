// Package api serves the read-only catalog to the web front-end.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/safar/partsbot/internal/models"
	"github.com/safar/partsbot/internal/shop"
	"go.uber.org/zap"
)

// Catalog is the read side of *shop.Service.
type Catalog interface {
	Categories(ctx context.Context) ([]models.CategorySummary, error)
	ProductsInCategory(ctx context.Context, slug string) ([]models.Product, error)
	ProductDetail(ctx context.Context, id int64) (*models.Product, bool, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
	TopProducts(ctx context.Context) ([]models.Product, error)
	Stats(ctx context.Context) (*models.StoreStats, error)
}

var _ Catalog = (*shop.Service)(nil)

type handler struct {
	catalog Catalog
}

// NewRouter answers cross-origin requests only from allowedOrigins.
func NewRouter(catalog Catalog, allowedOrigins []string, log *zap.Logger) *gin.Engine {
	log = log.Named("api")

	r := gin.New()
	r.Use(requestID(), requestLogger(log), recovery(log))
	if len(allowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  allowedOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
			ExposeHeaders: []string{requestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	h := &handler{catalog: catalog}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/categories", h.categories)
	api.GET("/categories/:slug/products", h.categoryProducts)
	api.GET("/products/:id", h.product)
	api.GET("/search", h.search)
	api.GET("/top", h.top)
	api.GET("/stats", h.stats)

	return r
}

func (h *handler) categories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *handler) categoryProducts(c *gin.Context) {
	products, err := h.catalog.ProductsInCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *handler) product(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, found, err := h.catalog.ProductDetail(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *handler) search(c *gin.Context) {
	products, err := h.catalog.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *handler) top(c *gin.Context) {
	products, err := h.catalog.TopProducts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *handler) stats(c *gin.Context) {
	stats, err := h.catalog.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stats":            stats,
		"in_stock_percent": stats.InStockPercent(),
	})
}

func respondServiceError(c *gin.Context, err error) {
	_ = c.Error(err)
	if errors.Is(err, shop.ErrInvalidInput) {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	respondError(c, http.StatusInternalServerError, "Internal error")
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"error":      message,
		"request_id": c.GetString(requestIDKey),
	})
}
