// Package httpserver is the presentation adapter: a JSON API that reads
// derived state from the session store and dispatches commands into it. All
// storefront semantics live in usecase; handlers only decode, dispatch and
// encode.
package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/techhubpro/storefront/internal/domain"
	"github.com/techhubpro/storefront/internal/usecase"
)

type Server struct {
	mux      *http.ServeMux
	catalog  []domain.Product
	sessions *sessionRegistry
	checkout *usecase.CheckoutUC
	orders   domain.OrderRepo
	prefs    domain.PrefsStore
}

func New(catalog []domain.Product, checkout *usecase.CheckoutUC, orders domain.OrderRepo, prefs domain.PrefsStore, itemsPerPage int) http.Handler {
	s := &Server{
		mux:      http.NewServeMux(),
		catalog:  catalog,
		sessions: newSessionRegistry(catalog, itemsPerPage),
		checkout: checkout,
		orders:   orders,
		prefs:    prefs,
	}
	s.routes()
	return Chain(s.mux,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/products", s.handleProducts)
	s.mux.HandleFunc("/api/products/", s.handleProductByID)
	s.mux.HandleFunc("/api/facets", s.handleFacets)

	s.mux.HandleFunc("/api/filters", s.handleFilters)
	s.mux.HandleFunc("/api/filters/clear", s.handleClearFilters)
	s.mux.HandleFunc("/api/sort", s.handleSort)
	s.mux.HandleFunc("/api/search", s.handleSearch)
	s.mux.HandleFunc("/api/search/recent", s.handleRecentSearches)
	s.mux.HandleFunc("/api/page", s.handlePage)

	s.mux.HandleFunc("/api/cart", s.handleCart)
	s.mux.HandleFunc("/api/cart/add", s.handleCartAdd)
	s.mux.HandleFunc("/api/cart/update", s.handleCartUpdate)
	s.mux.HandleFunc("/api/cart/remove", s.handleCartRemove)
	s.mux.HandleFunc("/api/cart/clear", s.handleCartClear)

	s.mux.HandleFunc("/api/wishlist", s.handleWishlist)
	s.mux.HandleFunc("/api/wishlist/toggle", s.handleWishlistToggle)
	s.mux.HandleFunc("/api/wishlist/remove", s.handleWishlistRemove)
	s.mux.HandleFunc("/api/wishlist/clear", s.handleWishlistClear)
	s.mux.HandleFunc("/api/wishlist/move-to-cart", s.handleWishlistMoveToCart)

	s.mux.HandleFunc("/api/checkout", s.handleCheckout)
	s.mux.HandleFunc("/api/orders/", s.handleOrderByID)

	s.mux.HandleFunc("/api/theme", s.handleTheme)

	s.mux.HandleFunc("/admin/export/orders.xlsx", s.handleExportOrders)
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := s.session(w, r)
	writeJSON(w, http.StatusOK, sess.VisiblePage())
}

func (s *Server) handleProductByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/api/products/"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	sess := s.session(w, r)
	p, ok := sess.ProductByID(id)
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleFacets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": usecase.CategoryFacets(s.catalog),
		"brands":     usecase.BrandFacets(s.catalog),
		"features":   usecase.FeatureFacets(s.catalog),
	})
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, sess.FilterSpec())
	case http.MethodPost:
		var patch domain.FilterPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		sess.SetFilters(patch)
		writeJSON(w, http.StatusOK, sess.VisiblePage())
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleClearFilters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := s.session(w, r)
	sess.ClearFilters()
	writeJSON(w, http.StatusOK, sess.VisiblePage())
}

func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		SortBy string `json:"sortBy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	sess := s.session(w, r)
	sess.SetSortBy(domain.SortKey(body.SortBy))
	writeJSON(w, http.StatusOK, sess.VisiblePage())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	sess := s.session(w, r)
	sess.SetSearchQuery(body.Query)
	if s.prefs != nil && strings.TrimSpace(body.Query) != "" {
		if err := s.prefs.RememberSearch(body.Query); err != nil {
			log.Warn().Err(err).Msg("persist recent search")
		}
	}
	writeJSON(w, http.StatusOK, sess.VisiblePage())
}

func (s *Server) handleRecentSearches(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"searches": s.prefs.RecentSearches()})
	case http.MethodDelete:
		if err := s.prefs.ClearRecentSearches(); err != nil {
			http.Error(w, "could not clear searches", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"searches": []string{}})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Page int `json:"page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	sess := s.session(w, r)
	sess.SetCurrentPage(body.Page)
	writeJSON(w, http.StatusOK, sess.VisiblePage())
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := s.session(w, r)
	writeJSON(w, http.StatusOK, sess.CartState())
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	s.cartCommand(w, r, func(sess *usecase.Session, productID, _ int) error {
		p, ok := sess.ProductByID(productID)
		if !ok {
			return domain.ErrNotFound
		}
		sess.AddToCart(p)
		return nil
	})
}

func (s *Server) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	s.cartCommand(w, r, func(sess *usecase.Session, productID, quantity int) error {
		sess.UpdateQuantity(productID, quantity)
		return nil
	})
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	s.cartCommand(w, r, func(sess *usecase.Session, productID, _ int) error {
		sess.RemoveFromCart(productID)
		return nil
	})
}

func (s *Server) handleCartClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := s.session(w, r)
	sess.ClearCart()
	writeJSON(w, http.StatusOK, sess.CartState())
}

func (s *Server) cartCommand(w http.ResponseWriter, r *http.Request, run func(*usecase.Session, int, int) error) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		ProductID int `json:"productId"`
		Quantity  int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	sess := s.session(w, r)
	if err := run(sess, body.ProductID, body.Quantity); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, sess.CartState())
}

type wishlistItem struct {
	Product domain.Product `json:"product"`
	AddedAt string         `json:"addedAt"`
}

func (s *Server) wishlistJSON(sess *usecase.Session) map[string]any {
	ws := sess.WishlistState()
	items := make([]wishlistItem, 0, len(ws.Items))
	ids := make([]int, 0, len(ws.Items))
	for id, e := range ws.Items {
		ids = append(ids, id)
		items = append(items, wishlistItem{Product: e.Product, AddedAt: e.AddedAt.Format("2006-01-02T15:04:05Z07:00")})
	}
	// newest first, matching the wishlist page
	sort.Slice(items, func(i, j int) bool { return items[i].AddedAt > items[j].AddedAt })
	sort.Ints(ids)
	return map[string]any{"items": items, "productIds": ids}
}

func (s *Server) handleWishlist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := s.session(w, r)
	writeJSON(w, http.StatusOK, s.wishlistJSON(sess))
}

func (s *Server) handleWishlistToggle(w http.ResponseWriter, r *http.Request) {
	s.wishlistCommand(w, r, func(sess *usecase.Session, productID int) error {
		p, ok := sess.ProductByID(productID)
		if !ok {
			return domain.ErrNotFound
		}
		sess.ToggleWishlist(p)
		return nil
	})
}

func (s *Server) handleWishlistRemove(w http.ResponseWriter, r *http.Request) {
	s.wishlistCommand(w, r, func(sess *usecase.Session, productID int) error {
		sess.RemoveFromWishlist(productID)
		return nil
	})
}

func (s *Server) handleWishlistMoveToCart(w http.ResponseWriter, r *http.Request) {
	s.wishlistCommand(w, r, func(sess *usecase.Session, productID int) error {
		sess.MoveToCart(productID)
		return nil
	})
}

func (s *Server) handleWishlistClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := s.session(w, r)
	sess.ClearWishlist()
	writeJSON(w, http.StatusOK, s.wishlistJSON(sess))
}

func (s *Server) wishlistCommand(w http.ResponseWriter, r *http.Request, run func(*usecase.Session, int) error) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		ProductID int `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	sess := s.session(w, r)
	if err := run(sess, body.ProductID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.wishlistJSON(sess))
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var form usecase.CheckoutForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	sess := s.session(w, r)
	order, err := s.checkout.Checkout(r.Context(), sess, form)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) handleOrderByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/api/orders/"))
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}
	order, err := s.orders.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]string{"theme": s.prefs.Theme()})
	case http.MethodPost:
		var body struct {
			Theme string `json:"theme"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		if err := s.prefs.SetTheme(body.Theme); err != nil {
			http.Error(w, "could not save theme", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"theme": body.Theme})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleExportOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	orders, err := s.orders.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Orders"
	f.SetSheetName("Sheet1", sheet)
	headers := []string{"ID", "Status", "Email", "Name", "Items", "Subtotal", "Discount", "Shipping", "Tax", "Total", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for row, o := range orders {
		itemCount := 0
		for _, it := range o.Items {
			itemCount += it.Qty
		}
		values := []any{
			o.ID.String(),
			string(o.Status),
			o.Email,
			strings.TrimSpace(o.FirstName + " " + o.LastName),
			itemCount,
			o.Subtotal,
			o.Discount,
			o.Shipping,
			o.Tax,
			o.Total,
			o.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "orders.xlsx"))
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("write orders export")
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}
