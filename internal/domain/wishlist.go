package domain

import "time"

// Wishlist is a named list owned by a user. Deleted wishlists keep their row with DeletedAt set.
type Wishlist struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// WishlistItem is a persisted product entry of a wishlist
type WishlistItem struct {
	ID                 int64     `json:"id"`
	WishlistID         int64     `json:"wishlistId"`
	SourceURL          string    `json:"sourceUrl"`
	ProductName        *string   `json:"productName"`
	ProductDescription *string   `json:"productDescription"`
	Price              *float64  `json:"price"`
	Currency           *string   `json:"currency"`
	ImageURL           *string   `json:"imageUrl"`
	RetailerName       *string   `json:"retailerName"`
	RetailerDomain     *string   `json:"retailerDomain"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// WishlistItemData holds the writable columns of a wishlist item
type WishlistItemData struct {
	SourceURL          string
	ProductName        *string
	ProductDescription *string
	Price              *float64
	Currency           *string
	ImageURL           *string
	RetailerName       *string
	RetailerDomain     *string
}

// CreateWishlistRequest is the body for creating a wishlist
type CreateWishlistRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateWishlistRequest is the body for renaming a wishlist
type UpdateWishlistRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateItemRequest is the body of a manual item edit
type UpdateItemRequest struct {
	ProductName        *string  `json:"productName"`
	ProductDescription *string  `json:"productDescription"`
	Price              *float64 `json:"price"`
	Currency           *string  `json:"currency"`
	ImageURL           *string  `json:"imageUrl"`
	RetailerName       *string  `json:"retailerName"`
	RetailerDomain     *string  `json:"retailerDomain"`
}
