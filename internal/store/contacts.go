package store

import (
	"context"

	"github.com/google/uuid"

	"flipr/internal/models"
)

// CreateContact persists a submitted contact form.
func (s *Store) CreateContact(ctx context.Context, fullName, email, mobile, city string) (models.Contact, error) {
	c := models.Contact{
		ID:        uuid.NewString(),
		FullName:  fullName,
		Email:     normalizeEmail(email),
		Mobile:    mobile,
		City:      city,
		CreatedAt: now(),
		UpdatedAt: now(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (id, full_name, email, mobile, city, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.FullName, c.Email, c.Mobile, c.City, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return models.Contact{}, err
	}
	return c, nil
}

// ListContacts returns all contact submissions, newest first.
func (s *Store) ListContacts(ctx context.Context) ([]models.Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, full_name, email, mobile, city, created_at, updated_at FROM contacts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.FullName, &c.Email, &c.Mobile, &c.City, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
