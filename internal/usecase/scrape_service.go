package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/wist/backend/internal/domain"
)

const defaultPreviewTTL = time.Hour

// ScrapeServiceConfig holds configuration for the scrape preview service
type ScrapeServiceConfig struct {
	CacheTTL time.Duration
}

// ScrapeService previews the product behind a URL without storing it.
// Results are cached under the exact validated URL, since the product echoes its
// source URL and the retailer lookup is case-sensitive. A broken cache only costs a fresh scrape.
type ScrapeService struct {
	scraper  domain.ProductScraper
	cache    domain.CacheRepository
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewScrapeService creates a new scrape preview service
func NewScrapeService(scraper domain.ProductScraper, cache domain.CacheRepository, config ScrapeServiceConfig, logger *slog.Logger) *ScrapeService {
	cacheTTL := config.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultPreviewTTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ScrapeService{
		scraper:  scraper,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Preview returns the normalized product for rawURL and whether it came from the cache
func (s *ScrapeService) Preview(ctx context.Context, rawURL string) (*domain.ScrapedProduct, bool, error) {
	sourceURL, err := ValidateProductURL(rawURL)
	if err != nil {
		return nil, false, err
	}

	key := previewCacheKey(sourceURL)
	if product, ok := s.getFromCache(ctx, key); ok {
		return product, true, nil
	}

	product, err := s.scraper.Scrape(ctx, sourceURL)
	if err != nil {
		return nil, false, err
	}

	s.setInCache(ctx, key, product)
	return product, false, nil
}

func (s *ScrapeService) getFromCache(ctx context.Context, key string) (*domain.ScrapedProduct, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if err != domain.ErrCacheMiss {
			s.logger.WarnContext(ctx, "preview cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	var product domain.ScrapedProduct
	if err := json.Unmarshal(raw, &product); err != nil {
		s.logger.WarnContext(ctx, "dropping undecodable preview cache entry", "key", key, "error", err)
		_ = s.cache.Delete(ctx, key)
		return nil, false
	}
	return &product, true
}

func (s *ScrapeService) setInCache(ctx context.Context, key string, product *domain.ScrapedProduct) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "preview cache write failed", "key", key, "error", err)
	}
}

// previewCacheKey keys previews by the validated URL as given
func previewCacheKey(sourceURL string) string {
	return "scrape:" + sourceURL
}
