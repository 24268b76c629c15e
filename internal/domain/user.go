package domain

import "time"

// User is a registered account
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SignupRequest is the body of a signup call
type SignupRequest struct {
	Email    string  `json:"email" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Name     *string `json:"name"`
}

// LoginRequest is the body of a login call
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by signup and login
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// TokenClaims is the identity carried by an access token
type TokenClaims struct {
	UserID int64
	Email  string
}
