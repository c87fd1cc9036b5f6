package http

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pricelens/backend/internal/domain"
)

// Resolver narrows the catalogue to the items matching a query
type Resolver interface {
	Resolve(ctx context.Context, request *domain.ResolveRequest) (*domain.ResolveResult, error)
}

// BatchProcessor runs find-or-create over a batch of rows
type BatchProcessor interface {
	FindOrCreateBatch(ctx context.Context, rows []domain.BatchRow) ([]domain.BatchRowResult, error)
}

// ItemManager creates and fetches individual items
type ItemManager interface {
	Create(ctx context.Context, request *domain.CreateItemRequest) (*domain.ItemRecord, error)
	Get(ctx context.Context, id string) (*domain.ItemRecord, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	resolver Resolver
	batch    BatchProcessor
	items    ItemManager
}

// NewHandler creates a new HTTP handler. Any nil dependency makes its
// endpoints answer 501.
func NewHandler(resolver Resolver, batch BatchProcessor, items ItemManager) *Handler {
	return &Handler{
		resolver: resolver,
		batch:    batch,
		items:    items,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pricelens-itemref",
		"version": "1.0.0",
	})
}

// ResolveItem handles candidate resolution requests
func (h *Handler) ResolveItem(c *gin.Context) {
	if h.resolver == nil {
		notConfigured(c, "item resolution")
		return
	}

	var request domain.ResolveRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.CodeInvalidRequest})
		return
	}

	result, err := h.resolver.Resolve(c.Request.Context(), &request)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// FindOrCreateBatch handles batch find-or-create requests. A failed batch
// returns a single error and no results.
func (h *Handler) FindOrCreateBatch(c *gin.Context) {
	if h.batch == nil {
		notConfigured(c, "batch find-or-create")
		return
	}

	var request domain.BatchRequest
	if err := c.ShouldBindJSON(&request); err != nil || request.Rows == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.CodeInvalidRequest})
		return
	}

	results, err := h.batch.FindOrCreateBatch(c.Request.Context(), request.Rows)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, domain.BatchResponse{Results: results})
}

// CreateItem handles direct item creation
func (h *Handler) CreateItem(c *gin.Context) {
	if h.items == nil {
		notConfigured(c, "item creation")
		return
	}

	var request domain.CreateItemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.CodeInvalidRequest})
		return
	}

	item, err := h.items.Create(c.Request.Context(), &request)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// GetItem handles item lookup by id
func (h *Handler) GetItem(c *gin.Context) {
	if h.items == nil {
		notConfigured(c, "item lookup")
		return
	}

	item, err := h.items.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func notConfigured(c *gin.Context, feature string) {
	c.JSON(http.StatusNotImplemented, gin.H{
		"error": feature + " not configured",
	})
}

// respondError writes the machine-readable code for err. Server errors are
// logged with detail and returned without it.
func respondError(c *gin.Context, err error) {
	code := domain.ErrorCode(err)
	c.JSON(statusFor(err), gin.H{"error": code})

	if code == domain.CodeServerError {
		log.Printf("[HTTP] %s %s request_id=%s: %v",
			c.Request.Method, c.FullPath(), c.GetString(requestIDKey), err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrBrandAndItemRequired),
		errors.Is(err, domain.ErrQuantityRequiredInStrictMode),
		errors.Is(err, domain.ErrNameAndBrandRequired),
		errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrBatchTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
