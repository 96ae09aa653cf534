package domain

import "math"

// FilterSpec is the composite predicate configuration for the catalog view.
// The zero value imposes no constraint and matches every product.
type FilterSpec struct {
	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`
	PriceRange string   `json:"priceRange"`
	Rating     float64  `json:"rating"`
	Features   []string `json:"features"`
	InStock    bool     `json:"inStock"`
	OnSale     bool     `json:"onSale"`
}

// FilterPatch is a partial FilterSpec update; nil fields keep the current
// value.
type FilterPatch struct {
	Categories *[]string `json:"categories"`
	Brands     *[]string `json:"brands"`
	PriceRange *string   `json:"priceRange"`
	Rating     *float64  `json:"rating"`
	Features   *[]string `json:"features"`
	InStock    *bool     `json:"inStock"`
	OnSale     *bool     `json:"onSale"`
}

func (f FilterSpec) Merge(p FilterPatch) FilterSpec {
	if p.Categories != nil {
		f.Categories = append([]string(nil), (*p.Categories)...)
	}
	if p.Brands != nil {
		f.Brands = append([]string(nil), (*p.Brands)...)
	}
	if p.PriceRange != nil {
		f.PriceRange = *p.PriceRange
	}
	if p.Rating != nil {
		f.Rating = *p.Rating
	}
	if p.Features != nil {
		f.Features = append([]string(nil), (*p.Features)...)
	}
	if p.InStock != nil {
		f.InStock = *p.InStock
	}
	if p.OnSale != nil {
		f.OnSale = *p.OnSale
	}
	return f
}

type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortNewest    SortKey = "newest"
	SortName      SortKey = "name"
)

const DefaultItemsPerPage = 12

// Page addresses one slice of the ordered result set. Current is 1-based.
type Page struct {
	Current int
	PerPage int
}

type priceBucket struct{ min, max float64 }

var priceBuckets = map[string]priceBucket{
	"0-100":     {0, 100},
	"100-500":   {100, 500},
	"500-1000":  {500, 1000},
	"1000-2000": {1000, 2000},
	"2000+":     {2000, math.Inf(1)},
}

// PriceBucketBounds returns the inclusive bounds of a named price bucket.
// Unknown names report ok=false, which filtering treats as no constraint.
func PriceBucketBounds(name string) (min, max float64, ok bool) {
	b, ok := priceBuckets[name]
	return b.min, b.max, ok
}
