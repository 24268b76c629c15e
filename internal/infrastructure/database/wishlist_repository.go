package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/wist/backend/internal/domain"
)

const wishlistColumns = `id, user_id, name, created_at, updated_at, deleted_at`

// WishlistRepository handles database operations for wishlists.
// Every lookup is scoped to the owning user and ignores soft-deleted rows.
type WishlistRepository struct {
	db *DB
}

// NewWishlistRepository creates a new wishlist repository
func NewWishlistRepository(db *DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// Create inserts a wishlist for userID
func (r *WishlistRepository) Create(ctx context.Context, userID int64, name string) (*domain.Wishlist, error) {
	now := time.Now().UTC()

	var id int64
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`
		INSERT INTO wishlists (user_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`), userID, name, now, now).Scan(&id)
	if err != nil {
		return nil, persistenceError("create wishlist", err)
	}

	return &domain.Wishlist{ID: id, UserID: userID, Name: name, CreatedAt: now, UpdatedAt: now}, nil
}

// ListActive returns the user's wishlists, newest first
func (r *WishlistRepository) ListActive(ctx context.Context, userID int64) ([]domain.Wishlist, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(`
		SELECT `+wishlistColumns+`
		FROM wishlists
		WHERE user_id = ? AND deleted_at IS NULL
		ORDER BY created_at DESC, id DESC
	`), userID)
	if err != nil {
		return nil, persistenceError("list wishlists", err)
	}
	defer rows.Close()

	wishlists := []domain.Wishlist{}
	for rows.Next() {
		var w domain.Wishlist
		if err := scanWishlist(rows, &w); err != nil {
			return nil, persistenceError("list wishlists", err)
		}
		wishlists = append(wishlists, w)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("list wishlists", err)
	}

	return wishlists, nil
}

// GetActive returns an active wishlist owned by userID or domain.ErrWishlistNotFound
func (r *WishlistRepository) GetActive(ctx context.Context, wishlistID, userID int64) (*domain.Wishlist, error) {
	var w domain.Wishlist
	row := r.db.QueryRowContext(ctx, r.db.Rebind(`
		SELECT `+wishlistColumns+`
		FROM wishlists
		WHERE id = ? AND user_id = ? AND deleted_at IS NULL
	`), wishlistID, userID)
	err := scanWishlist(row, &w)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrWishlistNotFound
	}
	if err != nil {
		return nil, persistenceError("get wishlist", err)
	}
	return &w, nil
}

// Rename changes the name of an active wishlist
func (r *WishlistRepository) Rename(ctx context.Context, wishlistID, userID int64, name string) (*domain.Wishlist, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE wishlists SET name = ?, updated_at = ?
		WHERE id = ? AND user_id = ? AND deleted_at IS NULL
	`), name, time.Now().UTC(), wishlistID, userID)
	if err != nil {
		return nil, persistenceError("rename wishlist", err)
	}
	if err := requireAffected(res, domain.ErrWishlistNotFound); err != nil {
		return nil, err
	}

	return r.GetActive(ctx, wishlistID, userID)
}

// SoftDelete marks an active wishlist as deleted. Its items are left in place.
func (r *WishlistRepository) SoftDelete(ctx context.Context, wishlistID, userID int64) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE wishlists SET deleted_at = ?, updated_at = ?
		WHERE id = ? AND user_id = ? AND deleted_at IS NULL
	`), now, now, wishlistID, userID)
	if err != nil {
		return persistenceError("delete wishlist", err)
	}
	return requireAffected(res, domain.ErrWishlistNotFound)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWishlist(s scanner, w *domain.Wishlist) error {
	return s.Scan(&w.ID, &w.UserID, &w.Name, &w.CreatedAt, &w.UpdatedAt, &w.DeletedAt)
}

// requireAffected returns notFound when the statement touched no rows
func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return persistenceError("rows affected", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
