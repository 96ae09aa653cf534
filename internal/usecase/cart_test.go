package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techhubpro/storefront/internal/domain"
)

func TestAddToCartAdditivity(t *testing.T) {
	p := domain.Product{ID: 1, Name: "Keyboard", Price: 159, SalePrice: sale(119)}
	var cs domain.CartState

	AddToCart(&cs, p)
	AddToCart(&cs, p)

	require.Len(t, cs.Items, 1)
	assert.Equal(t, 2, cs.Items[0].Quantity)
	assert.Equal(t, 119.0, cs.Items[0].UnitPrice)
	assert.Equal(t, 2, cs.TotalQuantity)
	assert.Equal(t, 238.0, cs.TotalAmount)
}

func TestAddToCartSeparateLinesPerProduct(t *testing.T) {
	var cs domain.CartState
	AddToCart(&cs, domain.Product{ID: 1, Price: 100})
	AddToCart(&cs, domain.Product{ID: 2, Price: 50})

	require.Len(t, cs.Items, 2)
	assert.Equal(t, 2, cs.TotalQuantity)
	assert.Equal(t, 150.0, cs.TotalAmount)
}

func TestRemoveFromCart(t *testing.T) {
	var cs domain.CartState
	AddToCart(&cs, domain.Product{ID: 1, Price: 100})

	RemoveFromCart(&cs, 1)
	assert.Empty(t, cs.Items)
	assert.Equal(t, 0, cs.TotalQuantity)
	assert.Equal(t, 0.0, cs.TotalAmount)

	// absent id is a no-op, not an error
	RemoveFromCart(&cs, 99)
	assert.Empty(t, cs.Items)
}

func TestUpdateQuantitySetsExactly(t *testing.T) {
	var cs domain.CartState
	AddToCart(&cs, domain.Product{ID: 1, Price: 100})
	AddToCart(&cs, domain.Product{ID: 1, Price: 100})

	UpdateQuantity(&cs, 1, 5)
	require.Len(t, cs.Items, 1)
	assert.Equal(t, 5, cs.Items[0].Quantity)
	assert.Equal(t, 500.0, cs.TotalAmount)
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	var cs domain.CartState
	AddToCart(&cs, domain.Product{ID: 1, Price: 100})

	UpdateQuantity(&cs, 1, 0)
	assert.Empty(t, cs.Items)
	assert.Equal(t, 0.0, cs.TotalAmount)

	AddToCart(&cs, domain.Product{ID: 1, Price: 100})
	UpdateQuantity(&cs, 1, -3)
	assert.Empty(t, cs.Items)
}

func TestUpdateQuantityMissingLineIsNoOp(t *testing.T) {
	var cs domain.CartState
	AddToCart(&cs, domain.Product{ID: 1, Price: 100})

	UpdateQuantity(&cs, 42, 3)
	require.Len(t, cs.Items, 1)
	assert.Equal(t, 1, cs.TotalQuantity)
}

func TestClearCart(t *testing.T) {
	var cs domain.CartState
	AddToCart(&cs, domain.Product{ID: 1, Price: 100})
	AddToCart(&cs, domain.Product{ID: 2, Price: 50})

	ClearCart(&cs)
	assert.Empty(t, cs.Items)
	assert.Equal(t, 0, cs.TotalQuantity)
	assert.Equal(t, 0.0, cs.TotalAmount)
}

func TestCartSpecScenario(t *testing.T) {
	a := domain.Product{ID: 100, Name: "A", Price: 100, Rating: 4, Featured: true}
	var cs domain.CartState

	AddToCart(&cs, a)
	AddToCart(&cs, a)
	UpdateQuantity(&cs, a.ID, 1)

	require.Len(t, cs.Items, 1)
	assert.Equal(t, 100, cs.Items[0].ProductID)
	assert.Equal(t, 1, cs.Items[0].Quantity)
	assert.Equal(t, 100.0, cs.Items[0].LineTotal)
	assert.Equal(t, 100.0, cs.TotalAmount)
}
