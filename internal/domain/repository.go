package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ProductScraper fetches and normalizes product data for a URL.
// Every returned error is an *UpstreamError.
type ProductScraper interface {
	Scrape(ctx context.Context, url string) (*ScrapedProduct, error)
}

// ItemRepository is the durable store for wishlist items
type ItemRepository interface {
	Create(ctx context.Context, wishlistID int64, data WishlistItemData) (*WishlistItem, error)
	ListByWishlist(ctx context.Context, wishlistID int64) ([]WishlistItem, error)
	GetByID(ctx context.Context, itemID int64) (*WishlistItem, error)
	Update(ctx context.Context, itemID int64, data WishlistItemData) (*WishlistItem, error)
	Delete(ctx context.Context, itemID int64) error
}

// WishlistRepository stores wishlists. Lookups only return active (not soft-deleted) rows.
type WishlistRepository interface {
	Create(ctx context.Context, userID int64, name string) (*Wishlist, error)
	ListActive(ctx context.Context, userID int64) ([]Wishlist, error)
	GetActive(ctx context.Context, wishlistID, userID int64) (*Wishlist, error)
	Rename(ctx context.Context, wishlistID, userID int64, name string) (*Wishlist, error)
	SoftDelete(ctx context.Context, wishlistID, userID int64) error
}

// UserRepository stores user accounts
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash string, name *string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, userID int64) (*User, error)
}

// ItemEventPublisher announces created items to other systems
type ItemEventPublisher interface {
	PublishItemCreated(ctx context.Context, item *WishlistItem) error
	Close() error
}

// TokenService issues and verifies access tokens
type TokenService interface {
	Generate(user *User) (string, error)
	Parse(token string) (*TokenClaims, error)
}

// PasswordHasher hashes and verifies user passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}
