package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wist/backend/internal/domain"
	"github.com/wist/backend/internal/logging"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, NewClient(server.Client(), "test-api-key", server.URL)
}

func requireUpstreamError(t *testing.T, err error) *domain.UpstreamError {
	t.Helper()
	var upstreamErr *domain.UpstreamError
	require.True(t, errors.As(err, &upstreamErr), "expected *domain.UpstreamError, got %T: %v", err, err)
	return upstreamErr
}

func TestNewClient(t *testing.T) {
	client := NewClient(nil, "test-api-key", "https://api.example.com/")

	assert.NotNil(t, client)
	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Equal(t, "https://api.example.com", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
	assert.False(t, client.debug)
}

func TestSetDebug(t *testing.T) {
	client := NewClient(nil, "test-api-key", "https://api.example.com")

	client.SetDebug(true)
	assert.True(t, client.debug)

	client.SetDebug(false)
	assert.False(t, client.debug)
}

func TestScrape_Success(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/scrape", r.URL.Path)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "https://www.flipkart.com/shoe", body["url"])

		formats := body["formats"].([]any)
		assert.Len(t, formats, 1)
		format := formats[0].(map[string]any)
		assert.Equal(t, "json", format["type"])
		schema := format["schema"].(map[string]any)
		assert.Equal(t, []any{"title"}, schema["required"])
		properties := schema["properties"].(map[string]any)
		for _, name := range []string{"title", "description", "price", "currency", "originalPrice", "brand",
			"category", "imageUrl", "highlights", "rating", "reviewCount", "availability"} {
			assert.Contains(t, properties, name)
		}
		assert.Equal(t, "integer", properties["reviewCount"].(map[string]any)["type"])

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true,"data":{"json":{"title":"Shoe","price":49.99,"currency":"USD"},"metadata":{"ogImage":"https://og.example/shoe.png"}}}`)
	})

	product, err := client.Scrape(context.Background(), "https://www.flipkart.com/shoe")

	require.NoError(t, err)
	assert.Equal(t, "Shoe", product.Title)
	require.NotNil(t, product.Price)
	assert.Equal(t, 49.99, *product.Price)
	assert.Equal(t, "USD", product.Currency)
	assert.Equal(t, "https://og.example/shoe.png", product.ImageURL)
	assert.Equal(t, "Flipkart", product.Retailer.Name)
	assert.Equal(t, "https://www.flipkart.com/shoe", product.SourceURL)
}

func TestScrape_UpstreamUnsuccessful(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"success":false,"error":"blocked"}`)
	})

	product, err := client.Scrape(context.Background(), "https://www.amazon.in/dp/1")

	assert.Nil(t, product)
	upstreamErr := requireUpstreamError(t, err)
	assert.Equal(t, "blocked", upstreamErr.Message)
	assert.Contains(t, err.Error(), "blocked")
}

func TestScrape_UnsuccessfulWithoutMessage(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"success":false}`)
	})

	_, err := client.Scrape(context.Background(), "https://x.com")

	upstreamErr := requireUpstreamError(t, err)
	assert.Contains(t, upstreamErr.Message, "500")
}

func TestScrape_MissingPayload(t *testing.T) {
	bodies := []string{
		`{"success":true}`,
		`{"success":true,"data":{}}`,
		`{"success":true,"data":{"json":null,"metadata":{"title":"x"}}}`,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, body)
			})

			_, err := client.Scrape(context.Background(), "https://x.com")

			upstreamErr := requireUpstreamError(t, err)
			assert.Equal(t, domain.UpstreamMissingPayload, upstreamErr.Message)
		})
	}
}

func TestScrape_MalformedResponse(t *testing.T) {
	bodies := []string{
		"invalid json",
		`<html>Bad Gateway</html>`,
		`{"success":true,"data":{"json":"not an object"}}`,
		"",
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, body)
			})

			_, err := client.Scrape(context.Background(), "https://x.com")

			upstreamErr := requireUpstreamError(t, err)
			assert.Equal(t, domain.UpstreamMalformedResponse, upstreamErr.Message)
		})
	}
}

func TestScrape_TransportTimeout(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	product, err := client.Scrape(ctx, "https://x.com")

	assert.Nil(t, product)
	upstreamErr := requireUpstreamError(t, err)
	assert.Equal(t, domain.UpstreamTransportFailure, upstreamErr.Message)
}

func TestScrape_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := NewClient(nil, "test-api-key", baseURL)
	_, err := client.Scrape(context.Background(), "https://x.com")

	upstreamErr := requireUpstreamError(t, err)
	assert.Equal(t, domain.UpstreamTransportFailure, upstreamErr.Message)
}

func TestScrape_NoRetry(t *testing.T) {
	var attempts int32
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, `{"success":false,"error":"upstream busy"}`)
	})

	_, err := client.Scrape(context.Background(), "https://x.com")

	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestScrape_RequestCreationError(t *testing.T) {
	client := NewClient(nil, "test-api-key", "://invalid-url")

	product, err := client.Scrape(context.Background(), "https://x.com")

	assert.Nil(t, product)
	upstreamErr := requireUpstreamError(t, err)
	assert.Equal(t, domain.UpstreamTransportFailure, upstreamErr.Message)
}

func TestScrape_RateLimiterRespectsContext(t *testing.T) {
	var attempts int32
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		io.WriteString(w, `{"success":true,"data":{"json":{"title":"A"}}}`)
	})
	client.SetRateLimit(1, 1)

	_, err := client.Scrape(context.Background(), "https://x.com")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.Scrape(ctx, "https://x.com")

	upstreamErr := requireUpstreamError(t, err)
	assert.Equal(t, domain.UpstreamTransportFailure, upstreamErr.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestDebugLog(t *testing.T) {
	var buf bytes.Buffer
	client := NewClient(nil, "test-api-key", "https://api.example.com")
	client.SetLogger(logging.NewWithWriter(&buf, "production", "info"))

	client.debug = true
	client.debugLog("firecrawl response", "body", "{}")
	assert.Empty(t, buf.String(), "debug output must stay below info level")

	client.SetLogger(logging.NewWithWriter(&buf, "production", "debug"))
	client.debug = false
	client.debugLog("firecrawl response", "body", "{}")
	assert.Empty(t, buf.String())

	client.debug = true
	client.debugLog("firecrawl response", "body", "{}")
	assert.Contains(t, buf.String(), `"level":"DEBUG"`)
	assert.Contains(t, buf.String(), "firecrawl response")
}

func TestReadLimitedBody(t *testing.T) {
	t.Run("reads within limit", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("short content"))
		}))
		defer server.Close()

		resp, err := http.Get(server.URL)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := readLimitedBody(resp.Body, 1000)
		require.NoError(t, err)
		assert.Equal(t, "short content", string(body))
	})

	t.Run("truncates beyond limit", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for i := 0; i < 100; i++ {
				w.Write([]byte("0123456789"))
			}
		}))
		defer server.Close()

		resp, err := http.Get(server.URL)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := readLimitedBody(resp.Body, 100)
		require.NoError(t, err)
		assert.Len(t, body, 100)
	})
}
