package domain

// CartLine is one product's entry in the cart. The product attributes are a
// snapshot taken when the line was created; UnitPrice is refreshed from the
// product on every add.
type CartLine struct {
	ProductID int
	Name      string
	Category  string
	Brand     string
	Price     float64
	SalePrice *float64
	UnitPrice float64
	Quantity  int
	LineTotal float64
}

// CartState holds the cart lines together with totals derived from them.
// TotalQuantity and TotalAmount are recomputed on every mutation and are
// never set independently.
type CartState struct {
	Items         []CartLine
	TotalQuantity int
	TotalAmount   float64
}
