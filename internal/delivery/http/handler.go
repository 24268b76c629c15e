package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wist/backend/internal/domain"
	"github.com/wist/backend/internal/usecase"
)

const (
	serviceName    = "wist-backend"
	serviceVersion = "0.1.0"

	// statusClientClosedRequest is the nginx convention for a caller that hung up
	statusClientClosedRequest = 499
)

// HealthChecker reports whether a dependency is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	auth      *usecase.AuthService
	wishlists *usecase.WishlistService
	items     *usecase.WishlistItemService
	scrape    *usecase.ScrapeService
	db        HealthChecker
	logger    *slog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	auth *usecase.AuthService,
	wishlists *usecase.WishlistService,
	items *usecase.WishlistItemService,
	scrape *usecase.ScrapeService,
	db HealthChecker,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		auth:      auth,
		wishlists: wishlists,
		items:     items,
		scrape:    scrape,
		db:        db,
		logger:    logger,
	}
}

// Root returns the API banner
func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Wist API Server - v"+serviceVersion)
}

// HealthCheck returns the health status of the API and its database
func (h *Handler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, database, code := "ok", "connected", http.StatusOK
	if h.db == nil || h.db.HealthCheck(ctx) != nil {
		status, database, code = "error", "disconnected", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":   status,
		"database": database,
		"service":  serviceName,
		"version":  serviceVersion,
	})
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	var (
		validationErr  *domain.ValidationError
		upstreamErr    *domain.UpstreamError
		persistenceErr *domain.PersistenceError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.As(err, &upstreamErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": upstreamErr.Error()})
	case errors.Is(err, domain.ErrWishlistNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist not found"})
	case errors.Is(err, domain.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Request timed out"})
	case errors.Is(err, context.Canceled):
		h.logger.InfoContext(c.Request.Context(), "request cancelled by client", "path", c.FullPath())
		c.AbortWithStatus(statusClientClosedRequest)
	case errors.As(err, &persistenceErr):
		h.logger.ErrorContext(c.Request.Context(), "persistence failure", "op", persistenceErr.Op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + persistenceErr.Op})
	default:
		h.logger.ErrorContext(c.Request.Context(), "unhandled error", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// pathID parses a positive integer path parameter, answering 400 when it is not one
func pathID(c *gin.Context, name, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": message})
		return 0, false
	}
	return id, true
}
