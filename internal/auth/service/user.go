package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/snehalbaghel/badgr-server/internal/auth/domain"
	"github.com/snehalbaghel/badgr-server/internal/auth/store"
	"github.com/snehalbaghel/badgr-server/pkg/cryptox"
	"github.com/snehalbaghel/badgr-server/pkg/idx"
	"github.com/snehalbaghel/badgr-server/pkg/slogx"
)

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// CreateUser stores a new account with an argon2id password hash.
func (s *UserService) CreateUser(ctx context.Context, email, password string, verified bool) (domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.User{}, ErrInvalidRequest
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	u := domain.User{
		ID:            idx.New().String(),
		Email:         strings.ToLower(email),
		PasswordHash:  hash,
		EmailVerified: verified,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUserExists
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user created", "user_id", u.ID, "email_verified", verified)
	return u, nil
}

// SetPassword replaces the password of the user with email.
func (s *UserService) SetPassword(ctx context.Context, email, password string) error {
	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}
	return s.Store.Users().UpdatePasswordHash(ctx, u.ID, hash)
}

// VerifyEmail marks the user with email as verified.
func (s *UserService) VerifyEmail(ctx context.Context, email string) error {
	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.Store.Users().SetEmailVerified(ctx, u.ID, true)
}
