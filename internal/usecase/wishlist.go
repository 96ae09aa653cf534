package usecase

import (
	"time"

	"github.com/techhubpro/storefront/internal/domain"
)

// AddToWishlist inserts the product with a fresh timestamp; already-present
// products are left untouched.
func AddToWishlist(ws *domain.WishlistState, p domain.Product) {
	if ws.Items == nil {
		ws.Items = make(map[int]domain.WishlistEntry)
	}
	if _, ok := ws.Items[p.ID]; ok {
		return
	}
	ws.Items[p.ID] = domain.WishlistEntry{Product: p, AddedAt: time.Now()}
}

func RemoveFromWishlist(ws *domain.WishlistState, productID int) {
	delete(ws.Items, productID)
}

// ToggleWishlist removes the product when present and inserts it with a fresh
// timestamp when absent.
func ToggleWishlist(ws *domain.WishlistState, p domain.Product) {
	if _, ok := ws.Items[p.ID]; ok {
		delete(ws.Items, p.ID)
		return
	}
	AddToWishlist(ws, p)
}

func ClearWishlist(ws *domain.WishlistState) {
	ws.Items = nil
}

func IsInWishlist(ws *domain.WishlistState, productID int) bool {
	_, ok := ws.Items[productID]
	return ok
}
