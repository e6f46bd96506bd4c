package repository

import (
	"context"
	"fmt"

	"github.com/fjod/storefront/internal/domain"
)

// ListAddressesForUser returns the user's addresses, most recently created first.
func (r *Repository) ListAddressesForUser(ctx context.Context, userID int64) ([]domain.Address, error) {
	query := `SELECT id, user_id, recipient_name, street, number, neighborhood, city, state, postal_code, complement
	          FROM addresses WHERE user_id = $1 ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query addresses by user id: %w", err)
	}
	defer rows.Close()

	addresses := make([]domain.Address, 0)
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.RecipientName,
			&a.Street,
			&a.Number,
			&a.Neighborhood,
			&a.City,
			&a.State,
			&a.PostalCode,
			&a.Complement,
		); err != nil {
			return nil, fmt.Errorf("scan address row: %w", err)
		}
		addresses = append(addresses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return addresses, nil
}

// InsertAddress stores the address and returns its generated id.
func (r *Repository) InsertAddress(ctx context.Context, a *domain.Address) (int64, error) {
	query := `INSERT INTO addresses (user_id, recipient_name, street, number, neighborhood, city, state, postal_code, complement)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		a.UserID,
		a.RecipientName,
		a.Street,
		a.Number,
		a.Neighborhood,
		a.City,
		a.State,
		a.PostalCode,
		a.Complement,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert address: %w", err)
	}
	return id, nil
}
