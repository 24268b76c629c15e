package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/wist/backend/internal/domain"
)

const (
	scrapePath       = "/v2/scrape"
	userAgent        = "Wist/1.0"
	maxResponseBytes = 10 << 20
)

// Client handles communication with the Firecrawl scrape API.
// It performs exactly one upstream call per Scrape; retries are left to the caller.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	logger      *slog.Logger
	debug       bool
}

// NewClient creates a Firecrawl client around a shared HTTP client.
// The client sets no timeout of its own; deadlines come from the request context.
func NewClient(httpClient *http.Client, apiKey, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		httpClient:  httpClient,
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: rate.NewLimiter(rate.Inf, 1),
		logger:      slog.Default(),
	}
}

// SetDebug enables verbose request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// SetLogger replaces the client's logger
func (c *Client) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// SetRateLimit caps outbound scrapes at perMinute requests with the given burst.
// A non-positive perMinute removes the cap.
func (c *Client) SetRateLimit(perMinute, burst int) {
	if perMinute <= 0 {
		c.rateLimiter = rate.NewLimiter(rate.Inf, 1)
		return
	}
	if burst <= 0 {
		burst = 1
	}
	c.rateLimiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
}

// Close releases pooled connections held by the HTTP client
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Scrape extracts product data for targetURL. Every error is a *domain.UpstreamError.
func (c *Client) Scrape(ctx context.Context, targetURL string) (*domain.ScrapedProduct, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, domain.NewUpstreamError(domain.UpstreamTransportFailure, eris.Wrap(err, "rate limiter"))
	}

	payload, err := json.Marshal(newScrapeRequest(targetURL))
	if err != nil {
		return nil, domain.NewUpstreamError("request encoding failed", err)
	}
	c.debugLog("firecrawl request", "url", targetURL, "body", string(payload))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+scrapePath, bytes.NewReader(payload))
	if err != nil {
		return nil, domain.NewUpstreamError(domain.UpstreamTransportFailure, eris.Wrap(err, "build request"))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("firecrawl request failed", "url", targetURL, "error", err)
		return nil, domain.NewUpstreamError(domain.UpstreamTransportFailure, eris.Wrap(err, "post scrape"))
	}
	defer resp.Body.Close()

	body, err := readLimitedBody(resp.Body, maxResponseBytes)
	if err != nil {
		return nil, domain.NewUpstreamError(domain.UpstreamTransportFailure, eris.Wrap(err, "read response"))
	}

	c.logger.Info("firecrawl scrape",
		"url", targetURL,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	c.debugLog("firecrawl response", "status", resp.StatusCode, "body", string(body))

	var envelope scrapeResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, domain.NewUpstreamError(domain.UpstreamMalformedResponse,
			fmt.Errorf("status %d: %w", resp.StatusCode, err))
	}

	if !envelope.Success {
		message := strings.TrimSpace(envelope.Error)
		if message == "" {
			message = fmt.Sprintf("upstream returned status %d without success", resp.StatusCode)
		}
		return nil, domain.NewUpstreamError(message, nil)
	}

	if envelope.Data == nil || envelope.Data.JSON == nil {
		return nil, domain.NewUpstreamError(domain.UpstreamMissingPayload, nil)
	}

	return MapToScrapedProduct(
		domain.RawExtractionPayload(envelope.Data.JSON),
		mapMetadata(envelope.Data.Metadata),
		targetURL,
	), nil
}

func (c *Client) debugLog(msg string, args ...any) {
	if c.debug {
		c.logger.Debug(msg, args...)
	}
}

// readLimitedBody reads at most limit bytes from r
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}
