package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/wist/backend/internal/domain"
)

// AuthService registers and authenticates users
type AuthService struct {
	users  domain.UserRepository
	hasher domain.PasswordHasher
	tokens domain.TokenService
	logger *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users domain.UserRepository, hasher domain.PasswordHasher, tokens domain.TokenService, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

// Signup creates an account and returns a token for it
func (s *AuthService) Signup(ctx context.Context, req *domain.SignupRequest) (*domain.AuthResponse, error) {
	if req == nil {
		return nil, domain.ErrInvalidRequest
	}
	email, err := validateEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, email, hash, req.Name)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user signed up", "user_id", user.ID)
	return s.respond(user)
}

// Login checks credentials and returns a fresh token
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	if req == nil {
		return nil, domain.ErrInvalidRequest
	}
	email, err := validateEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.respond(user)
}

// Me returns the account of the authenticated user
func (s *AuthService) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// Authenticate resolves a bearer token to its identity
func (s *AuthService) Authenticate(token string) (*domain.TokenClaims, error) {
	return s.tokens.Parse(token)
}

func (s *AuthService) respond(user *domain.User) (*domain.AuthResponse, error) {
	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResponse{Token: token, User: user}, nil
}
