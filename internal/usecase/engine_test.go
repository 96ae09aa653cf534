package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techhubpro/storefront/internal/domain"
)

func sale(v float64) *float64 { return &v }

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Titan X15", Category: "Laptops", Brand: "Titan", Description: "gaming laptop", Price: 2499, SalePrice: sale(2199), Rating: 4.7, InStock: true, Features: []string{"RGB Keyboard"}, Featured: true},
		{ID: 2, Name: "AeroBook Slim", Category: "Laptops", Brand: "AeroTech", Description: "ultralight laptop", Price: 1299, Rating: 4.5, InStock: true, Features: []string{"USB-C Charging"}},
		{ID: 3, Name: "Photon 27", Category: "Peripherals", Brand: "Photon", Description: "QHD monitor", Price: 429, Rating: 4.4, InStock: true, Features: []string{"HDR"}},
		{ID: 4, Name: "ClickStorm Keyboard", Category: "Peripherals", Brand: "ClickStorm", Description: "mechanical keyboard", Price: 159, SalePrice: sale(89), Rating: 4.8, InStock: true, Features: []string{"RGB Keyboard"}},
		{ID: 5, Name: "Glide Mouse", Category: "Peripherals", Brand: "Glide", Description: "wireless mouse", Price: 89, Rating: 4.3, InStock: false},
	}
}

func ids(items []domain.Product) []int {
	out := make([]int, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func TestApplyFiltersEmptySpecMatchesAll(t *testing.T) {
	catalog := testCatalog()
	got := ApplyFilters(catalog, domain.FilterSpec{}, "")
	assert.Equal(t, ids(catalog), ids(got))
}

func TestApplyFiltersDoesNotMutateCatalog(t *testing.T) {
	catalog := testCatalog()
	before := ids(catalog)
	_ = ApplyFilters(catalog, domain.FilterSpec{Categories: []string{"Laptops"}}, "keyboard")
	assert.Equal(t, before, ids(catalog))
}

func TestApplyFiltersSearch(t *testing.T) {
	catalog := testCatalog()

	// name match, case-insensitive
	got := ApplyFilters(catalog, domain.FilterSpec{}, "TITAN")
	assert.Equal(t, []int{1}, ids(got))

	// description match
	got = ApplyFilters(catalog, domain.FilterSpec{}, "ultralight")
	assert.Equal(t, []int{2}, ids(got))

	// category match
	got = ApplyFilters(catalog, domain.FilterSpec{}, "periph")
	assert.Equal(t, []int{3, 4, 5}, ids(got))

	// brand match
	got = ApplyFilters(catalog, domain.FilterSpec{}, "aerotech")
	assert.Equal(t, []int{2}, ids(got))
}

func TestApplyFiltersCategoriesAndBrands(t *testing.T) {
	catalog := testCatalog()

	got := ApplyFilters(catalog, domain.FilterSpec{Categories: []string{"Laptops"}}, "")
	assert.Equal(t, []int{1, 2}, ids(got))

	// OR semantics across the set
	got = ApplyFilters(catalog, domain.FilterSpec{Categories: []string{"Laptops", "Peripherals"}}, "")
	assert.Len(t, got, 5)

	got = ApplyFilters(catalog, domain.FilterSpec{Brands: []string{"Photon", "Glide"}}, "")
	assert.Equal(t, []int{3, 5}, ids(got))
}

func TestApplyFiltersPriceBucketUsesEffectivePrice(t *testing.T) {
	catalog := testCatalog()

	// ClickStorm's sale price 89 and the Glide at 89 both land in 0-100 even
	// though ClickStorm's base price is 159.
	got := ApplyFilters(catalog, domain.FilterSpec{PriceRange: "0-100"}, "")
	assert.Equal(t, []int{4, 5}, ids(got))

	got = ApplyFilters(catalog, domain.FilterSpec{PriceRange: "2000+"}, "")
	assert.Equal(t, []int{1}, ids(got))
}

func TestApplyFiltersUnknownBucketIsNoConstraint(t *testing.T) {
	catalog := testCatalog()
	got := ApplyFilters(catalog, domain.FilterSpec{PriceRange: "50-75"}, "")
	assert.Len(t, got, 5)
}

func TestApplyFiltersRatingFloor(t *testing.T) {
	catalog := testCatalog()
	got := ApplyFilters(catalog, domain.FilterSpec{Rating: 4.5}, "")
	assert.Equal(t, []int{1, 2, 4}, ids(got))
}

func TestApplyFiltersFeatures(t *testing.T) {
	catalog := testCatalog()
	got := ApplyFilters(catalog, domain.FilterSpec{Features: []string{"RGB Keyboard", "HDR"}}, "")
	assert.Equal(t, []int{1, 3, 4}, ids(got))

	// the Glide has no features list at all and must be excluded
	got = ApplyFilters(catalog, domain.FilterSpec{Features: []string{"Wireless"}}, "")
	assert.Empty(t, got)
}

func TestApplyFiltersStockAndSale(t *testing.T) {
	catalog := testCatalog()

	got := ApplyFilters(catalog, domain.FilterSpec{InStock: true}, "")
	assert.Equal(t, []int{1, 2, 3, 4}, ids(got))

	got = ApplyFilters(catalog, domain.FilterSpec{OnSale: true}, "")
	assert.Equal(t, []int{1, 4}, ids(got))
}

func TestApplyFiltersIdempotent(t *testing.T) {
	catalog := testCatalog()
	spec := domain.FilterSpec{Categories: []string{"Peripherals"}, Rating: 4.4}
	once := ApplyFilters(catalog, spec, "")
	twice := ApplyFilters(once, spec, "")
	assert.Equal(t, ids(once), ids(twice))
}

func TestSortItems(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		key  domain.SortKey
		want []int
	}{
		// featured first, then rating desc
		{domain.SortFeatured, []int{1, 4, 2, 3, 5}},
		// effective prices: 1=2199 2=1299 3=429 4=89 5=89
		{domain.SortPriceLow, []int{4, 5, 3, 2, 1}},
		{domain.SortPriceHigh, []int{1, 2, 3, 4, 5}},
		{domain.SortRating, []int{4, 1, 2, 3, 5}},
		{domain.SortNewest, []int{5, 4, 3, 2, 1}},
		{domain.SortName, []int{2, 4, 5, 3, 1}},
		// unknown key falls back to featured order
		{domain.SortKey("bogus"), []int{1, 4, 2, 3, 5}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(SortItems(catalog, tt.key)))
		})
	}
}

func TestSortItemsStable(t *testing.T) {
	// equal ratings: relative order must survive every key that ties them
	items := []domain.Product{
		{ID: 10, Name: "Same", Price: 50, Rating: 4.0},
		{ID: 11, Name: "Same", Price: 50, Rating: 4.0},
		{ID: 12, Name: "Same", Price: 50, Rating: 4.0},
	}
	for _, key := range []domain.SortKey{domain.SortFeatured, domain.SortPriceLow, domain.SortPriceHigh, domain.SortRating, domain.SortName} {
		got := SortItems(items, key)
		assert.Equal(t, []int{10, 11, 12}, ids(got), "key %s", key)
	}
}

func TestSortItemsDoesNotMutateInput(t *testing.T) {
	catalog := testCatalog()
	before := ids(catalog)
	_ = SortItems(catalog, domain.SortPriceLow)
	assert.Equal(t, before, ids(catalog))
}

func TestSortItemsSpecScenario(t *testing.T) {
	a := domain.Product{ID: 100, Name: "A", Price: 100, Rating: 4, Featured: true}
	b := domain.Product{ID: 101, Name: "B", Price: 50, SalePrice: sale(40), Rating: 5}

	assert.Equal(t, []int{101, 100}, ids(SortItems([]domain.Product{a, b}, domain.SortPriceLow)))
	assert.Equal(t, []int{100, 101}, ids(SortItems([]domain.Product{a, b}, domain.SortFeatured)))

	got := ApplyFilters([]domain.Product{a, b}, domain.FilterSpec{PriceRange: "0-100"}, "")
	assert.Len(t, got, 2)
}

func TestPaginate(t *testing.T) {
	items := make([]domain.Product, 25)
	for i := range items {
		items[i] = domain.Product{ID: i + 1}
	}

	page1, total := Paginate(items, domain.Page{Current: 1, PerPage: 10})
	require.Equal(t, 3, total)
	assert.Equal(t, 10, len(page1))
	assert.Equal(t, 1, page1[0].ID)

	page3, _ := Paginate(items, domain.Page{Current: 3, PerPage: 10})
	assert.Equal(t, 5, len(page3))
	assert.Equal(t, 25, page3[4].ID)
}

func TestPaginateCoverage(t *testing.T) {
	items := make([]domain.Product, 23)
	for i := range items {
		items[i] = domain.Product{ID: i + 1}
	}
	for _, per := range []int{1, 5, 12, 23, 50} {
		_, total := Paginate(items, domain.Page{Current: 1, PerPage: per})
		var all []int
		for p := 1; p <= total; p++ {
			chunk, _ := Paginate(items, domain.Page{Current: p, PerPage: per})
			all = append(all, ids(chunk)...)
		}
		assert.Equal(t, ids(items), all, "perPage %d", per)
	}
}

func TestPaginateOutOfRange(t *testing.T) {
	items := []domain.Product{{ID: 1}, {ID: 2}}

	got, total := Paginate(items, domain.Page{Current: 5, PerPage: 10})
	assert.Empty(t, got)
	assert.Equal(t, 1, total)

	got, _ = Paginate(items, domain.Page{Current: 0, PerPage: 10})
	assert.Empty(t, got)

	// zero per-page falls back to the default size
	got, total = Paginate(items, domain.Page{Current: 1})
	assert.Len(t, got, 2)
	assert.Equal(t, 1, total)
}

func TestFacets(t *testing.T) {
	catalog := testCatalog()

	cats := CategoryFacets(catalog)
	require.Len(t, cats, 2)
	assert.Equal(t, Facet{Value: "Laptops", Count: 2}, cats[0])
	assert.Equal(t, Facet{Value: "Peripherals", Count: 3}, cats[1])

	features := FeatureFacets(catalog)
	require.Len(t, features, 3)
	assert.Equal(t, Facet{Value: "HDR", Count: 1}, features[0])
	assert.Equal(t, Facet{Value: "RGB Keyboard", Count: 2}, features[1])

	brands := BrandFacets(catalog)
	assert.Len(t, brands, 5)
}
