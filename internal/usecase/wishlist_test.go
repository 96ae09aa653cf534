package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techhubpro/storefront/internal/domain"
)

func TestAddToWishlistIdempotent(t *testing.T) {
	p := domain.Product{ID: 1, Name: "Monitor"}
	var ws domain.WishlistState

	AddToWishlist(&ws, p)
	require.True(t, IsInWishlist(&ws, 1))
	first := ws.Items[1].AddedAt

	AddToWishlist(&ws, p)
	assert.Len(t, ws.Items, 1)
	assert.Equal(t, first, ws.Items[1].AddedAt, "second add must not refresh the timestamp")
}

func TestRemoveFromWishlist(t *testing.T) {
	var ws domain.WishlistState
	AddToWishlist(&ws, domain.Product{ID: 1})

	RemoveFromWishlist(&ws, 1)
	assert.False(t, IsInWishlist(&ws, 1))

	// absent id is a no-op
	RemoveFromWishlist(&ws, 1)
	assert.Empty(t, ws.Items)
}

func TestToggleWishlistInvolution(t *testing.T) {
	p := domain.Product{ID: 7}
	var ws domain.WishlistState

	ToggleWishlist(&ws, p)
	assert.True(t, IsInWishlist(&ws, 7))

	ToggleWishlist(&ws, p)
	assert.False(t, IsInWishlist(&ws, 7))

	// twice from any state returns to that state
	AddToWishlist(&ws, p)
	ToggleWishlist(&ws, p)
	ToggleWishlist(&ws, p)
	assert.True(t, IsInWishlist(&ws, 7))
}

func TestClearWishlist(t *testing.T) {
	var ws domain.WishlistState
	AddToWishlist(&ws, domain.Product{ID: 1})
	AddToWishlist(&ws, domain.Product{ID: 2})

	ClearWishlist(&ws)
	assert.Empty(t, ws.Items)
	assert.False(t, IsInWishlist(&ws, 1))
}
