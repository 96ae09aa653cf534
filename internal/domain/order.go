package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID         uuid.UUID
	Status     OrderStatus
	Items      []OrderItem
	Email      string
	FirstName  string
	LastName   string
	Phone      string
	Address    string
	City       string
	ZipCode    string
	Country    string
	PromoCode  string
	Subtotal   float64
	Discount   float64
	Shipping   float64
	Tax        float64
	Total      float64
	PaymentRef string
	CreatedAt  time.Time
}

type OrderItem struct {
	ProductID int
	Name      string
	Qty       int
	UnitPrice float64
	LineTotal float64
}

type OrderRepo interface {
	Save(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context) ([]Order, error)
}

// PaymentGateway charges an order and returns an opaque payment reference.
type PaymentGateway interface {
	Charge(ctx context.Context, o *Order) (string, error)
}

// PromoEngine resolves a promo code against the current cart. Unknown or
// ineligible codes yield a zero discount, not an error.
type PromoEngine interface {
	Discount(ctx context.Context, code string, cart CartState) (float64, error)
}

// PrefsStore is the key-value preference slot owned by the presentation
// layer: recent search terms and theme choice. It is not required for
// correctness of filtering.
type PrefsStore interface {
	RecentSearches() []string
	RememberSearch(q string) error
	ClearRecentSearches() error
	Theme() string
	SetTheme(t string) error
}
