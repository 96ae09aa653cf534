package domain

import "time"

type WishlistEntry struct {
	Product Product
	AddedAt time.Time
}

// WishlistState keys entries by product id so membership checks stay O(1).
type WishlistState struct {
	Items map[int]WishlistEntry
}
