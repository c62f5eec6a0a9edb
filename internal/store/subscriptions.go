package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"flipr/internal/models"
)

// CreateSubscription persists a newsletter signup.
func (s *Store) CreateSubscription(ctx context.Context, email string) (models.Subscription, error) {
	sub := models.Subscription{
		ID:        uuid.NewString(),
		Email:     normalizeEmail(email),
		CreatedAt: now(),
		UpdatedAt: now(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO subscriptions (id, email, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		sub.ID, sub.Email, sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		return models.Subscription{}, err
	}
	return sub, nil
}

// SubscriptionByEmail looks up a signup by case-insensitive email.
func (s *Store) SubscriptionByEmail(ctx context.Context, email string) (models.Subscription, error) {
	var sub models.Subscription
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, created_at, updated_at FROM subscriptions WHERE email = ?`,
		normalizeEmail(email)).
		Scan(&sub.ID, &sub.Email, &sub.CreatedAt, &sub.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Subscription{}, ErrNotFound
	}
	if err != nil {
		return models.Subscription{}, err
	}
	return sub, nil
}

// ListSubscriptions returns all signups, newest first.
func (s *Store) ListSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, created_at, updated_at FROM subscriptions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []models.Subscription{}
	for rows.Next() {
		var sub models.Subscription
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
