package domain

type Product struct {
	ID          int
	Name        string
	Category    string
	Brand       string
	Description string
	Price       float64
	SalePrice   *float64
	Rating      float64
	Reviews     int
	InStock     bool
	Features    []string
	Featured    bool
}

// EffectivePrice is the price the customer actually pays: the sale price when
// one is set below the base price, the base price otherwise.
func (p Product) EffectivePrice() float64 {
	if p.OnSale() {
		return *p.SalePrice
	}
	return p.Price
}

func (p Product) OnSale() bool {
	return p.SalePrice != nil && *p.SalePrice < p.Price
}

func (p Product) HasFeature(name string) bool {
	for _, f := range p.Features {
		if f == name {
			return true
		}
	}
	return false
}
