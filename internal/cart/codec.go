// Package cart keeps the shopper's cart on the client as a signed token holding
// product id -> quantity. Prices are never stored in the token; lines are
// rebuilt from the live catalog on every read.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/fjod/storefront/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Items maps product id to quantity. A product that is not in the cart has no key.
type Items map[int64]int

// ProductLookup resolves a product by id. Unknown ids return domain.ErrProductNotFound.
type ProductLookup interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

type cartClaims struct {
	Items Items `json:"items"`
	jwt.RegisteredClaims
}

type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Encode signs the mapping into a token. The same mapping always yields the same token.
func (c *Codec) Encode(items Items) (string, error) {
	clean := make(Items, len(items))
	for id, q := range items {
		if id > 0 && q > 0 {
			clean[id] = q
		}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, cartClaims{Items: clean})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign cart token: %w", err)
	}
	return signed, nil
}

// Decode never fails: a missing, corrupt, or tampered token is an empty cart.
func (c *Codec) Decode(token string) Items {
	items := Items{}
	if token == "" {
		return items
	}

	claims := &cartClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return items
	}

	for id, q := range claims.Items {
		if id > 0 && q > 0 {
			items[id] = q
		}
	}
	return items
}

// Expand turns the mapping into priced lines ordered by product id.
// Products that no longer exist are dropped.
func (c *Codec) Expand(ctx context.Context, items Items, lookup ProductLookup) ([]domain.CartLine, error) {
	ids := make([]int64, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	lines := make([]domain.CartLine, 0, len(ids))
	for _, id := range ids {
		product, err := lookup.GetProduct(ctx, id)
		if errors.Is(err, domain.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get product %d: %w", id, err)
		}
		snapshot := *product
		snapshot.ImageURL = snapshot.DisplayImage()
		lines = append(lines, domain.CartLine{
			ProductID: id,
			Quantity:  items[id],
			UnitPrice: product.Price,
			Product:   snapshot,
		})
	}
	return lines, nil
}

// AddItem merges quantity into the cart held by token and returns the new token.
// Concurrent adds from the same client are last-write-wins at the cookie.
func (c *Codec) AddItem(ctx context.Context, token string, productID int64, quantity int, lookup ProductLookup) (string, error) {
	if _, err := lookup.GetProduct(ctx, productID); err != nil {
		return "", err
	}

	items := c.Decode(token)
	items[productID] += quantity
	return c.Encode(items)
}

// SetQuantity replaces the quantity for a product; zero or less removes it.
func (c *Codec) SetQuantity(token string, productID int64, quantity int) (string, error) {
	items := c.Decode(token)
	if quantity <= 0 {
		delete(items, productID)
	} else {
		items[productID] = quantity
	}
	return c.Encode(items)
}

func (c *Codec) RemoveItem(token string, productID int64) (string, error) {
	return c.SetQuantity(token, productID, 0)
}

// Empty returns the token of an empty cart.
func (c *Codec) Empty() (string, error) {
	return c.Encode(Items{})
}
