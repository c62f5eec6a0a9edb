package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"flipr/internal/models"
)

// ErrNotFound is returned by lookups that match no record.
var ErrNotFound = errors.New("record not found")

func now() time.Time {
	return time.Now().UTC()
}

// normalizeEmail applies the canonical email form used everywhere a
// lookup or uniqueness check happens.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateAdmin inserts an administrator identity. The email is stored
// lowercased and trimmed so lookups are case-insensitive.
func (s *Store) CreateAdmin(ctx context.Context, email, passwordHash string) (models.AdminUser, error) {
	u := models.AdminUser{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		PasswordHash: passwordHash,
		CreatedAt:    now(),
		UpdatedAt:    now(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO admin_users (id, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return models.AdminUser{}, err
	}
	return u, nil
}

// AdminByEmail looks up an administrator by case-insensitive email.
func (s *Store) AdminByEmail(ctx context.Context, email string) (models.AdminUser, error) {
	var u models.AdminUser
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at, updated_at FROM admin_users WHERE email = ?`,
		normalizeEmail(email)).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AdminUser{}, ErrNotFound
	}
	if err != nil {
		return models.AdminUser{}, err
	}
	return u, nil
}
