package usecase

import (
	"context"
	"log/slog"

	"github.com/wist/backend/internal/domain"
)

// WishlistItemService adds scraped products to wishlists and manages the stored items
type WishlistItemService struct {
	wishlists domain.WishlistRepository
	items     domain.ItemRepository
	scraper   domain.ProductScraper
	events    domain.ItemEventPublisher
	logger    *slog.Logger
}

// NewWishlistItemService creates the item service. A nil publisher disables events.
func NewWishlistItemService(
	wishlists domain.WishlistRepository,
	items domain.ItemRepository,
	scraper domain.ProductScraper,
	events domain.ItemEventPublisher,
	logger *slog.Logger,
) *WishlistItemService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WishlistItemService{
		wishlists: wishlists,
		items:     items,
		scraper:   scraper,
		events:    events,
		logger:    logger,
	}
}

// AddItemToWishlist scrapes rawURL and stores the normalized product under wishlistID.
// Flow: validate -> scrape -> map -> persist. Scrape errors are returned unchanged and
// nothing is written unless the scrape succeeded and ctx is still live.
func (s *WishlistItemService) AddItemToWishlist(ctx context.Context, wishlistID int64, rawURL string) (*domain.WishlistItem, error) {
	sourceURL, err := ValidateProductURL(rawURL)
	if err != nil {
		return nil, err
	}

	product, err := s.scraper.Scrape(ctx, sourceURL)
	if err != nil {
		s.logger.WarnContext(ctx, "scrape failed", "wishlist_id", wishlistID, "url", sourceURL, "error", err)
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	item, err := s.items.Create(ctx, wishlistID, itemDataFromProduct(sourceURL, product))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to store item", "wishlist_id", wishlistID, "url", sourceURL, "error", err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "item added", "wishlist_id", wishlistID, "item_id", item.ID, "retailer", product.Retailer.Name)
	s.publishCreated(ctx, item)

	return item, nil
}

// AddItem checks that wishlistID is an active wishlist of userID before adding the item
func (s *WishlistItemService) AddItem(ctx context.Context, userID, wishlistID int64, rawURL string) (*domain.WishlistItem, error) {
	if _, err := s.wishlists.GetActive(ctx, wishlistID, userID); err != nil {
		return nil, err
	}
	return s.AddItemToWishlist(ctx, wishlistID, rawURL)
}

// ListItems returns the items of a wishlist owned by userID, newest first
func (s *WishlistItemService) ListItems(ctx context.Context, userID, wishlistID int64) ([]domain.WishlistItem, error) {
	if _, err := s.wishlists.GetActive(ctx, wishlistID, userID); err != nil {
		return nil, err
	}
	return s.items.ListByWishlist(ctx, wishlistID)
}

// UpdateItem replaces the product fields of an item with the manual edit in req.
// The source URL is never changed.
func (s *WishlistItemService) UpdateItem(ctx context.Context, userID, wishlistID, itemID int64, req *domain.UpdateItemRequest) (*domain.WishlistItem, error) {
	existing, err := s.ownedItem(ctx, userID, wishlistID, itemID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		req = &domain.UpdateItemRequest{}
	}
	if req.Price != nil && *req.Price < 0 {
		return nil, &domain.ValidationError{Field: "price", Message: "price must not be negative"}
	}

	return s.items.Update(ctx, itemID, domain.WishlistItemData{
		SourceURL:          existing.SourceURL,
		ProductName:        req.ProductName,
		ProductDescription: req.ProductDescription,
		Price:              req.Price,
		Currency:           req.Currency,
		ImageURL:           req.ImageURL,
		RetailerName:       req.RetailerName,
		RetailerDomain:     req.RetailerDomain,
	})
}

// DeleteItem permanently removes an item
func (s *WishlistItemService) DeleteItem(ctx context.Context, userID, wishlistID, itemID int64) error {
	if _, err := s.ownedItem(ctx, userID, wishlistID, itemID); err != nil {
		return err
	}
	return s.items.Delete(ctx, itemID)
}

// ownedItem loads an item after checking it sits in an active wishlist of userID
func (s *WishlistItemService) ownedItem(ctx context.Context, userID, wishlistID, itemID int64) (*domain.WishlistItem, error) {
	if _, err := s.wishlists.GetActive(ctx, wishlistID, userID); err != nil {
		return nil, err
	}

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.WishlistID != wishlistID {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

func (s *WishlistItemService) publishCreated(ctx context.Context, item *domain.WishlistItem) {
	if s.events == nil {
		return
	}
	// the item is committed; a lost event must not fail the request
	if err := s.events.PublishItemCreated(context.WithoutCancel(ctx), item); err != nil {
		s.logger.WarnContext(ctx, "failed to publish item event", "item_id", item.ID, "error", err)
	}
}

func itemDataFromProduct(sourceURL string, p *domain.ScrapedProduct) domain.WishlistItemData {
	return domain.WishlistItemData{
		SourceURL:          sourceURL,
		ProductName:        optional(p.Title),
		ProductDescription: optional(p.Description),
		Price:              p.Price,
		Currency:           optional(p.Currency),
		ImageURL:           optional(p.ImageURL),
		RetailerName:       optional(p.Retailer.Name),
		RetailerDomain:     optional(p.Retailer.Domain),
	}
}

// optional maps the empty string to an absent column value
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
