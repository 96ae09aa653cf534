package usecase

import (
	"sync"

	"github.com/techhubpro/storefront/internal/domain"
)

// Session is the state container behind one shopper's storefront view:
// filter spec, sort key, search query, current page, cart and wishlist. All
// access goes through its command/query surface; the mutex keeps every
// mutation atomic (structural change, derived totals and the implied page
// reset commit together), standing in for the single-threaded event loop the
// semantics assume.
type Session struct {
	mu          sync.Mutex
	catalog     []domain.Product
	filters     domain.FilterSpec
	sortBy      domain.SortKey
	searchQuery string
	page        domain.Page
	cart        domain.CartState
	wishlist    domain.WishlistState
}

func NewSession(catalog []domain.Product, itemsPerPage int) *Session {
	if itemsPerPage <= 0 {
		itemsPerPage = domain.DefaultItemsPerPage
	}
	return &Session{
		catalog: catalog,
		sortBy:  domain.SortFeatured,
		page:    domain.Page{Current: 1, PerPage: itemsPerPage},
	}
}

// View is the derived page of products the presentation layer renders,
// together with the counts needed for pagination controls.
type View struct {
	Items       []domain.Product `json:"items"`
	TotalItems  int              `json:"totalItems"`
	CurrentPage int              `json:"currentPage"`
	PerPage     int              `json:"itemsPerPage"`
	TotalPages  int              `json:"totalPages"`
}

// VisiblePage derives the current view from the catalog and session state.
// It is a pure read: filtering, ordering and slicing happen here, never as a
// side effect of the commands.
func (s *Session) VisiblePage() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := ApplyFilters(s.catalog, s.filters, s.searchQuery)
	ordered := SortItems(filtered, s.sortBy)
	items, totalPages := Paginate(ordered, s.page)
	return View{
		Items:       items,
		TotalItems:  len(filtered),
		CurrentPage: s.page.Current,
		PerPage:     s.page.PerPage,
		TotalPages:  totalPages,
	}
}

func (s *Session) ProductByID(id int) (domain.Product, bool) {
	for _, p := range s.catalog {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// SetFilters merges a partial spec into the current one and resets the page
// to 1 in the same step, so a stale page can never point past the narrowed
// result set.
func (s *Session) SetFilters(patch domain.FilterPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = s.filters.Merge(patch)
	s.page.Current = 1
}

func (s *Session) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = domain.FilterSpec{}
	s.page.Current = 1
}

func (s *Session) SetSortBy(key domain.SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortBy = key
	s.page.Current = 1
}

func (s *Session) SetSearchQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = q
	s.page.Current = 1
}

// SetCurrentPage moves to page n. Values below 1 are ignored; values past the
// last page are accepted, since the page count depends on filters the caller
// reads from VisiblePage.
func (s *Session) SetCurrentPage(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 {
		return
	}
	s.page.Current = n
}

func (s *Session) FilterSpec() domain.FilterSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.filters
	f.Categories = append([]string(nil), f.Categories...)
	f.Brands = append([]string(nil), f.Brands...)
	f.Features = append([]string(nil), f.Features...)
	return f
}

func (s *Session) SortKey() domain.SortKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortBy
}

func (s *Session) SearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchQuery
}

func (s *Session) AddToCart(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	AddToCart(&s.cart, p)
}

func (s *Session) RemoveFromCart(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	RemoveFromCart(&s.cart, productID)
}

func (s *Session) UpdateQuantity(productID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	UpdateQuantity(&s.cart, productID, quantity)
}

func (s *Session) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	ClearCart(&s.cart)
}

func (s *Session) CartState() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	cs := s.cart
	cs.Items = append([]domain.CartLine(nil), cs.Items...)
	return cs
}

func (s *Session) AddToWishlist(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	AddToWishlist(&s.wishlist, p)
}

func (s *Session) RemoveFromWishlist(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	RemoveFromWishlist(&s.wishlist, productID)
}

func (s *Session) ToggleWishlist(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ToggleWishlist(&s.wishlist, p)
}

func (s *Session) ClearWishlist() {
	s.mu.Lock()
	defer s.mu.Unlock()
	ClearWishlist(&s.wishlist)
}

func (s *Session) IsInWishlist(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return IsInWishlist(&s.wishlist, productID)
}

func (s *Session) WishlistState() domain.WishlistState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := domain.WishlistState{Items: make(map[int]domain.WishlistEntry, len(s.wishlist.Items))}
	for id, e := range s.wishlist.Items {
		out.Items[id] = e
	}
	return out
}

// MoveToCart takes a wishlist entry into the cart: remove from the set, add
// to the ledger. Absent ids are a no-op.
func (s *Session) MoveToCart(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.wishlist.Items[productID]
	if !ok {
		return
	}
	delete(s.wishlist.Items, productID)
	AddToCart(&s.cart, e.Product)
}
