// Package auth implements the administrator credential store, the
// signed session tokens that gate privileged endpoints, and the HTTP
// middleware enforcing them.
package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"flipr/internal/models"
	"flipr/internal/store"
)

var (
	// ErrInvalidCredentials is returned when the provided credentials are
	// invalid. It never distinguishes a bad email from a bad password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenExpired is returned when a token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned when a token fails the signature or
	// format check.
	ErrTokenInvalid = errors.New("token invalid")
)

// AdminStore is the slice of the data store the auth layer needs.
type AdminStore interface {
	AdminByEmail(ctx context.Context, email string) (models.AdminUser, error)
	CreateAdmin(ctx context.Context, email, passwordHash string) (models.AdminUser, error)
}

// Auth verifies administrator credentials against the store and mints
// session tokens for them.
type Auth struct {
	store  AdminStore
	tokens *Tokens
	log    *zap.Logger
}

// New creates an Auth backed by the given store and token issuer.
func New(s AdminStore, tokens *Tokens, log *zap.Logger) *Auth {
	return &Auth{store: s, tokens: tokens, log: log}
}

// Tokens exposes the token issuer, for handlers that only verify.
func (a *Auth) Tokens() *Tokens {
	return a.tokens
}

// VerifyCredentials checks an email/password pair and returns the
// matching identity. Both unknown email and wrong password map to
// ErrInvalidCredentials.
func (a *Auth) VerifyCredentials(ctx context.Context, email, password string) (models.AdminUser, error) {
	user, err := a.store.AdminByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		a.log.Debug("login rejected", zap.String("email", email))
		return models.AdminUser{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.AdminUser{}, fmt.Errorf("look up admin: %w", err)
	}
	if !CheckPasswordHash(password, user.PasswordHash) {
		a.log.Debug("login rejected", zap.String("email", email))
		return models.AdminUser{}, ErrInvalidCredentials
	}
	return user, nil
}

// EnsureAdmin seeds the administrator identity if none exists for the
// configured email. It is idempotent and safe to call on every startup.
// The plaintext password is hashed immediately and never stored or
// logged.
func EnsureAdmin(ctx context.Context, s AdminStore, email, password string, log *zap.Logger) error {
	if _, err := s.AdminByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("look up admin: %w", err)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	user, err := s.CreateAdmin(ctx, email, hash)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	log.Info("seeded admin user", zap.String("email", user.Email))
	return nil
}

// HashPassword hashes a password with bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash checks a plaintext password against a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
