package usecase

import (
	"context"

	"github.com/wist/backend/internal/domain"
)

// WishlistService manages the wishlists of a user
type WishlistService struct {
	wishlists domain.WishlistRepository
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(wishlists domain.WishlistRepository) *WishlistService {
	return &WishlistService{wishlists: wishlists}
}

func (s *WishlistService) Create(ctx context.Context, userID int64, name string) (*domain.Wishlist, error) {
	name, err := validateWishlistName(name)
	if err != nil {
		return nil, err
	}
	return s.wishlists.Create(ctx, userID, name)
}

func (s *WishlistService) List(ctx context.Context, userID int64) ([]domain.Wishlist, error) {
	return s.wishlists.ListActive(ctx, userID)
}

func (s *WishlistService) Get(ctx context.Context, userID, wishlistID int64) (*domain.Wishlist, error) {
	return s.wishlists.GetActive(ctx, wishlistID, userID)
}

func (s *WishlistService) Rename(ctx context.Context, userID, wishlistID int64, name string) (*domain.Wishlist, error) {
	name, err := validateWishlistName(name)
	if err != nil {
		return nil, err
	}
	return s.wishlists.Rename(ctx, wishlistID, userID, name)
}

// Delete soft-deletes the wishlist; its items stay stored but are no longer reachable.
func (s *WishlistService) Delete(ctx context.Context, userID, wishlistID int64) error {
	return s.wishlists.SoftDelete(ctx, wishlistID, userID)
}
