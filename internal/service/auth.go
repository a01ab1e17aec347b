package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"elevateu/internal/models"
	"elevateu/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ( // Define custom errors
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// bcrypt ignores everything past 72 bytes, so passwords are truncated
// before hashing. The same truncation must happen at verify time or long
// passwords would never match their stored hash.
const maxPasswordBytes = 72

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, time.Time, error)
	ListUsers(ctx context.Context) ([]models.PublicUser, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *TokenManager
	logger *zap.Logger
}

func NewAuthService(users repository.UserRepository, tokens *TokenManager, logger *zap.Logger) AuthService {
	return &authService{users: users, tokens: tokens, logger: logger}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	passwordHash, err := hashPassword(password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := s.users.CreateWithStats(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", zap.Int64("user_id", user.ID))
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", time.Time{}, ErrInvalidCredentials
		}
		s.logger.Error("Failed to get user by email", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if !verifyPassword(user.PasswordHash, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	tokenString, expiresAt, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.logger.Error("Failed to generate JWT token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User logged in", zap.Int64("user_id", user.ID))
	return tokenString, expiresAt, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	public := make([]models.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}
	return public, nil
}

// normalizePassword strips surrounding whitespace and truncates to bcrypt's
// effective maximum length.
func normalizePassword(password string) []byte {
	b := []byte(strings.TrimSpace(password))
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(normalizePassword(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), normalizePassword(password)) == nil
}
