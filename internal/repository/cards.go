package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fjod/storefront/internal/domain"
)

func (r *Repository) ListCardsForUser(ctx context.Context, userID int64) ([]domain.Card, error) {
	query := `SELECT id, user_id, holder_name, number, brand, expiry, card_type
	          FROM cards WHERE user_id = $1 ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query cards by user id: %w", err)
	}
	defer rows.Close()

	cards := make([]domain.Card, 0)
	for rows.Next() {
		var c domain.Card
		var brand sql.NullString
		if err := rows.Scan(&c.ID, &c.UserID, &c.HolderName, &c.Number, &brand, &c.Expiry, &c.Type); err != nil {
			return nil, fmt.Errorf("scan card row: %w", err)
		}
		c.Brand = domain.CardBrand(brand.String)
		cards = append(cards, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return cards, nil
}

// InsertCard stores the card and returns its generated id. An empty brand is stored as NULL.
func (r *Repository) InsertCard(ctx context.Context, c *domain.Card) (int64, error) {
	query := `INSERT INTO cards (user_id, holder_name, number, brand, expiry, card_type)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	brand := sql.NullString{String: string(c.Brand), Valid: c.Brand != ""}

	var id int64
	err := r.db.QueryRowContext(ctx, query, c.UserID, c.HolderName, c.Number, brand, c.Expiry, c.Type).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert card: %w", err)
	}
	return id, nil
}
