package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/techhubpro/storefront/internal/domain"
)

const (
	freeShippingThreshold = 150000.0
	flatShippingCost      = 14700.0
	taxRate               = 0.08
)

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

type CheckoutForm struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	PromoCode string `json:"promoCode"`
}

type CheckoutUC struct {
	Orders  domain.OrderRepo
	Gateway domain.PaymentGateway
	Promos  domain.PromoEngine
}

// Checkout turns the session's cart into a paid order: validate the form,
// apply the promo discount, add shipping and tax, charge the gateway (which
// only simulates a payment) and persist the order. The cart is cleared only
// after everything succeeded.
func (uc *CheckoutUC) Checkout(ctx context.Context, sess *Session, form CheckoutForm) (*domain.Order, error) {
	if err := form.validate(); err != nil {
		return nil, err
	}
	cart := sess.CartState()
	if len(cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	discount := 0.0
	code := strings.ToUpper(strings.TrimSpace(form.PromoCode))
	if code != "" && uc.Promos != nil {
		d, err := uc.Promos.Discount(ctx, code, cart)
		if err != nil {
			return nil, err
		}
		discount = d
	}

	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, l := range cart.Items {
		items = append(items, domain.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Qty:       l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}

	taxable := cart.TotalAmount - discount
	shipping := flatShippingCost
	if taxable > freeShippingThreshold {
		shipping = 0
	}
	tax := taxable * taxRate

	o := &domain.Order{
		ID:        uuid.New(),
		Status:    domain.OrderStatusPending,
		Items:     items,
		Email:     strings.TrimSpace(form.Email),
		FirstName: strings.TrimSpace(form.FirstName),
		LastName:  strings.TrimSpace(form.LastName),
		Phone:     strings.TrimSpace(form.Phone),
		Address:   strings.TrimSpace(form.Address),
		City:      strings.TrimSpace(form.City),
		ZipCode:   strings.TrimSpace(form.ZipCode),
		Country:   strings.TrimSpace(form.Country),
		PromoCode: code,
		Subtotal:  cart.TotalAmount,
		Discount:  discount,
		Shipping:  shipping,
		Tax:       tax,
		Total:     taxable + shipping + tax,
		CreatedAt: time.Now(),
	}

	ref, err := uc.Gateway.Charge(ctx, o)
	if err != nil {
		return nil, err
	}
	o.PaymentRef = ref
	o.Status = domain.OrderStatusPaid

	if err := uc.Orders.Save(ctx, o); err != nil {
		return nil, err
	}
	sess.ClearCart()
	return o, nil
}

func (f CheckoutForm) validate() error {
	if strings.TrimSpace(f.FirstName) == "" {
		return errors.New("first name is required")
	}
	if strings.TrimSpace(f.LastName) == "" {
		return errors.New("last name is required")
	}
	if !emailRe.MatchString(strings.TrimSpace(f.Email)) {
		return errors.New("invalid email")
	}
	if strings.TrimSpace(f.Address) == "" {
		return errors.New("address is required")
	}
	if strings.TrimSpace(f.City) == "" {
		return errors.New("city is required")
	}
	return nil
}
