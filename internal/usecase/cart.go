package usecase

import "github.com/techhubpro/storefront/internal/domain"

// AddToCart creates a line with quantity 1 for a product not yet in the cart,
// or increments the existing line. The unit price is re-read from the product
// at call time. Out-of-stock products are not rejected here; disabling the
// affordance is the presentation layer's job.
func AddToCart(cs *domain.CartState, p domain.Product) {
	for i := range cs.Items {
		if cs.Items[i].ProductID == p.ID {
			cs.Items[i].Quantity++
			cs.Items[i].UnitPrice = p.EffectivePrice()
			recalcTotals(cs)
			return
		}
	}
	cs.Items = append(cs.Items, domain.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Brand:     p.Brand,
		Price:     p.Price,
		SalePrice: p.SalePrice,
		UnitPrice: p.EffectivePrice(),
		Quantity:  1,
	})
	recalcTotals(cs)
}

// RemoveFromCart deletes the line for the product id; absent ids are a no-op.
func RemoveFromCart(cs *domain.CartState, productID int) {
	for i := range cs.Items {
		if cs.Items[i].ProductID == productID {
			cs.Items = append(cs.Items[:i], cs.Items[i+1:]...)
			recalcTotals(cs)
			return
		}
	}
}

// UpdateQuantity sets a line's quantity exactly. A quantity of zero or less
// removes the line. Setting a quantity for a product that has no line is a
// no-op: a line cannot be materialized without product context, and the
// quantity stepper only exists once AddToCart has created the line.
func UpdateQuantity(cs *domain.CartState, productID, quantity int) {
	if quantity <= 0 {
		RemoveFromCart(cs, productID)
		return
	}
	for i := range cs.Items {
		if cs.Items[i].ProductID == productID {
			cs.Items[i].Quantity = quantity
			recalcTotals(cs)
			return
		}
	}
}

func ClearCart(cs *domain.CartState) {
	cs.Items = nil
	recalcTotals(cs)
}

// recalcTotals keeps line totals and the cart aggregates consistent with the
// items. Every structural mutation above ends here before returning, so no
// caller can observe items and totals disagreeing.
func recalcTotals(cs *domain.CartState) {
	qty := 0
	amount := 0.0
	for i := range cs.Items {
		cs.Items[i].LineTotal = cs.Items[i].UnitPrice * float64(cs.Items[i].Quantity)
		qty += cs.Items[i].Quantity
		amount += cs.Items[i].LineTotal
	}
	cs.TotalQuantity = qty
	cs.TotalAmount = amount
}
