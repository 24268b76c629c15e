package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/wist/backend/internal/domain"
)

const itemColumns = `id, wishlist_id, source_url, product_name, product_description, price,
	currency, image_url, retailer_name, retailer_domain, created_at, updated_at`

// ItemRepository handles database operations for wishlist items
type ItemRepository struct {
	db *DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create inserts an item in its own transaction. Nothing is written when any step fails.
func (r *ItemRepository) Create(ctx context.Context, wishlistID int64, data domain.WishlistItemData) (*domain.WishlistItem, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, persistenceError("create item", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	var id int64
	err = tx.QueryRowContext(ctx, r.db.Rebind(`
		INSERT INTO wishlist_items (
			wishlist_id, source_url, product_name, product_description, price,
			currency, image_url, retailer_name, retailer_domain, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`), wishlistID, data.SourceURL, data.ProductName, data.ProductDescription, data.Price,
		data.Currency, data.ImageURL, data.RetailerName, data.RetailerDomain, now, now).Scan(&id)
	if err != nil {
		return nil, persistenceError("create item", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, persistenceError("create item", err)
	}

	return newItem(id, wishlistID, data, now, now), nil
}

// ListByWishlist returns the items of a wishlist, newest first
func (r *ItemRepository) ListByWishlist(ctx context.Context, wishlistID int64) ([]domain.WishlistItem, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(`
		SELECT `+itemColumns+`
		FROM wishlist_items
		WHERE wishlist_id = ?
		ORDER BY created_at DESC, id DESC
	`), wishlistID)
	if err != nil {
		return nil, persistenceError("list items", err)
	}
	defer rows.Close()

	items := []domain.WishlistItem{}
	for rows.Next() {
		var item domain.WishlistItem
		if err := scanItem(rows, &item); err != nil {
			return nil, persistenceError("list items", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("list items", err)
	}

	return items, nil
}

// GetByID returns an item or domain.ErrItemNotFound
func (r *ItemRepository) GetByID(ctx context.Context, itemID int64) (*domain.WishlistItem, error) {
	var item domain.WishlistItem
	row := r.db.QueryRowContext(ctx, r.db.Rebind(`
		SELECT `+itemColumns+`
		FROM wishlist_items
		WHERE id = ?
	`), itemID)
	err := scanItem(row, &item)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, persistenceError("get item", err)
	}
	return &item, nil
}

// Update overwrites the product columns of an item and bumps updated_at
func (r *ItemRepository) Update(ctx context.Context, itemID int64, data domain.WishlistItemData) (*domain.WishlistItem, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE wishlist_items SET
			source_url = ?, product_name = ?, product_description = ?, price = ?,
			currency = ?, image_url = ?, retailer_name = ?, retailer_domain = ?, updated_at = ?
		WHERE id = ?
	`), data.SourceURL, data.ProductName, data.ProductDescription, data.Price,
		data.Currency, data.ImageURL, data.RetailerName, data.RetailerDomain, time.Now().UTC(), itemID)
	if err != nil {
		return nil, persistenceError("update item", err)
	}
	if err := requireAffected(res, domain.ErrItemNotFound); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, itemID)
}

// Delete removes an item permanently
func (r *ItemRepository) Delete(ctx context.Context, itemID int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM wishlist_items WHERE id = ?`), itemID)
	if err != nil {
		return persistenceError("delete item", err)
	}
	return requireAffected(res, domain.ErrItemNotFound)
}

func scanItem(s scanner, item *domain.WishlistItem) error {
	return s.Scan(
		&item.ID, &item.WishlistID, &item.SourceURL, &item.ProductName, &item.ProductDescription,
		&item.Price, &item.Currency, &item.ImageURL, &item.RetailerName, &item.RetailerDomain,
		&item.CreatedAt, &item.UpdatedAt,
	)
}

func newItem(id, wishlistID int64, data domain.WishlistItemData, createdAt, updatedAt time.Time) *domain.WishlistItem {
	return &domain.WishlistItem{
		ID:                 id,
		WishlistID:         wishlistID,
		SourceURL:          data.SourceURL,
		ProductName:        data.ProductName,
		ProductDescription: data.ProductDescription,
		Price:              data.Price,
		Currency:           data.Currency,
		ImageURL:           data.ImageURL,
		RetailerName:       data.RetailerName,
		RetailerDomain:     data.RetailerDomain,
		CreatedAt:          createdAt,
		UpdatedAt:          updatedAt,
	}
}
