package store

import (
	"context"

	"github.com/google/uuid"

	"flipr/internal/models"
)

// CreateClient persists a new client testimonial.
func (s *Store) CreateClient(ctx context.Context, name, designation, description, imageURL string) (models.Client, error) {
	c := models.Client{
		ID:          uuid.NewString(),
		Name:        name,
		Designation: designation,
		Description: description,
		ImageURL:    imageURL,
		CreatedAt:   now(),
		UpdatedAt:   now(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO clients (id, name, designation, description, image_url, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Designation, c.Description, c.ImageURL, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return models.Client{}, err
	}
	return c, nil
}

// ListClients returns all clients, newest first.
func (s *Store) ListClients(ctx context.Context) ([]models.Client, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, designation, description, image_url, created_at, updated_at FROM clients ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Designation, &c.Description, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// DeleteClient removes a client by id. Deleting a missing id is not an
// error.
func (s *Store) DeleteClient(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	return err
}
