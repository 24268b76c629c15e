package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wist/backend/internal/domain"
)

// ScrapeProduct handles POST /api/v1/scrape, a preview that stores nothing
func (h *Handler) ScrapeProduct(c *gin.Context) {
	var req domain.ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.ScrapeResponse{Error: "URL is required"})
		return
	}

	product, cached, err := h.scrape.Preview(c.Request.Context(), req.URL)
	if err != nil {
		var (
			validationErr *domain.ValidationError
			upstreamErr   *domain.UpstreamError
		)
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, domain.ScrapeResponse{Error: validationErr.Message})
		case errors.As(err, &upstreamErr):
			c.JSON(http.StatusBadGateway, domain.ScrapeResponse{Error: upstreamErr.Error()})
		default:
			h.respondError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, domain.ScrapeResponse{Success: true, Data: product, Cached: cached})
}
