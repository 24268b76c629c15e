package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/wist/backend/internal/domain"
)

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user; a duplicate email yields domain.ErrEmailTaken
func (r *UserRepository) Create(ctx context.Context, email, passwordHash string, name *string) (*domain.User, error) {
	now := time.Now().UTC()

	var id int64
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`
		INSERT INTO users (email, password_hash, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`), email, passwordHash, name, now, now).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, persistenceError("create user", err)
	}

	return &domain.User{
		ID:           id,
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}, nil
}

// GetByEmail returns the user registered with email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.get(ctx, "get user by email", `WHERE email = ?`, email)
}

// GetByID returns the user with the given id
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	return r.get(ctx, "get user", `WHERE id = ?`, userID)
}

func (r *UserRepository) get(ctx context.Context, op, where string, arg any) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`
		SELECT id, email, password_hash, name, created_at
		FROM users `+where), arg).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, persistenceError(op, err)
	}
	return &user, nil
}
