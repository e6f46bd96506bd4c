package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fjod/storefront/internal/cart"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartService_AddAndView(t *testing.T) {
	codec := cart.NewCodec("test-secret")
	s := NewCartService(codec, newTestCatalog())
	ctx := context.Background()

	token, err := s.AddItem(ctx, "", 1, 2)
	require.NoError(t, err)
	token, err = s.AddItem(ctx, token, 2, 1)
	require.NoError(t, err)

	view, err := s.View(ctx, token)
	require.NoError(t, err)
	require.Len(t, view.Lines, 2)
	assert.True(t, view.Subtotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, view.DeliveryFee.Equal(decimal.NewFromInt(10)))
	assert.True(t, view.Total.Equal(decimal.NewFromInt(110)))
	assert.Equal(t, "/img/no-image.png", view.Lines[0].Product.ImageURL)
	assert.Equal(t, "/img/chair.png", view.Lines[1].Product.ImageURL)
}

func TestCartService_AddItemQuantityBounds(t *testing.T) {
	s := NewCartService(cart.NewCodec("test-secret"), newTestCatalog())

	for _, q := range []int{0, -1, 100} {
		_, err := s.AddItem(context.Background(), "", 1, q)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, "quantity %d", q)
		assert.Contains(t, ve.Fields, "quantity")
	}
}

func TestCartService_AddUnknownProduct(t *testing.T) {
	s := NewCartService(cart.NewCodec("test-secret"), newTestCatalog())

	_, err := s.AddItem(context.Background(), "", 404, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_AddLookupFailure(t *testing.T) {
	catalog := newTestCatalog()
	catalog.Err = errors.New("disk I/O error")
	s := NewCartService(cart.NewCodec("test-secret"), catalog)

	_, err := s.AddItem(context.Background(), "", 1, 1)
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestCartService_SetQuantityAndRemove(t *testing.T) {
	codec := cart.NewCodec("test-secret")
	s := NewCartService(codec, newTestCatalog())

	token, err := codec.Encode(cart.Items{1: 1, 2: 3})
	require.NoError(t, err)

	token, err = s.SetQuantity(token, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, cart.Items{1: 5, 2: 3}, codec.Decode(token))

	token, err = s.SetQuantity(token, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, cart.Items{1: 5}, codec.Decode(token))

	token, err = s.RemoveItem(token, 1)
	require.NoError(t, err)
	assert.Empty(t, codec.Decode(token))

	_, err = s.SetQuantity(token, 1, 500)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}
