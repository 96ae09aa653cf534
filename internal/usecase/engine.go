package usecase

import (
	"sort"
	"strings"

	"github.com/techhubpro/storefront/internal/domain"
)

// ApplyFilters narrows the catalog to the products matching the spec and the
// free-text query. Predicates run in a fixed order: search, categories,
// brands, price bucket, rating floor, features, in-stock, on-sale. The input
// slice is never mutated. Malformed filter values (an unknown price bucket)
// degrade to no constraint.
func ApplyFilters(catalog []domain.Product, spec domain.FilterSpec, searchQuery string) []domain.Product {
	out := make([]domain.Product, 0, len(catalog))
	query := strings.ToLower(strings.TrimSpace(searchQuery))
	for _, p := range catalog {
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if len(spec.Categories) > 0 && !contains(spec.Categories, p.Category) {
			continue
		}
		if len(spec.Brands) > 0 && !contains(spec.Brands, p.Brand) {
			continue
		}
		if spec.PriceRange != "" {
			if min, max, ok := domain.PriceBucketBounds(spec.PriceRange); ok {
				price := p.EffectivePrice()
				if price < min || price > max {
					continue
				}
			}
		}
		if spec.Rating > 0 && p.Rating < spec.Rating {
			continue
		}
		if len(spec.Features) > 0 && !hasAnyFeature(p, spec.Features) {
			continue
		}
		if spec.InStock && !p.InStock {
			continue
		}
		if spec.OnSale && !p.OnSale() {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(p domain.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Category), query) ||
		(p.Brand != "" && strings.Contains(strings.ToLower(p.Brand), query)) ||
		(p.Description != "" && strings.Contains(strings.ToLower(p.Description), query))
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func hasAnyFeature(p domain.Product, wanted []string) bool {
	for _, f := range wanted {
		if p.HasFeature(f) {
			return true
		}
	}
	return false
}

// SortItems returns a copy of the list ordered by the given key. The sort is
// stable: products with equal keys keep their relative order. An unknown key
// falls back to the featured order (featured flag first, then rating
// descending).
func SortItems(items []domain.Product, key domain.SortKey) []domain.Product {
	out := append([]domain.Product(nil), items...)
	switch key {
	case domain.SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EffectivePrice() < out[j].EffectivePrice()
		})
	case domain.SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EffectivePrice() > out[j].EffectivePrice()
		})
	case domain.SortRating:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	case domain.SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ID > out[j].ID
		})
	case domain.SortName:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Name < out[j].Name
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Featured != out[j].Featured {
				return out[i].Featured
			}
			return out[i].Rating > out[j].Rating
		})
	}
	return out
}

// Paginate slices the ordered list to the requested page and reports the
// total page count. A page past the end yields an empty slice; the caller is
// responsible for resetting to page 1 after narrowing the result set.
func Paginate(items []domain.Product, page domain.Page) ([]domain.Product, int) {
	per := page.PerPage
	if per <= 0 {
		per = domain.DefaultItemsPerPage
	}
	totalPages := (len(items) + per - 1) / per
	start := (page.Current - 1) * per
	if page.Current < 1 || start >= len(items) {
		return []domain.Product{}, totalPages
	}
	end := start + per
	if end > len(items) {
		end = len(items)
	}
	return items[start:end:end], totalPages
}

// Facet is one distinct attribute value and the number of catalog products
// carrying it, used to render the filter sidebar.
type Facet struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

func CategoryFacets(catalog []domain.Product) []Facet {
	return facets(catalog, func(p domain.Product) []string { return []string{p.Category} })
}

func BrandFacets(catalog []domain.Product) []Facet {
	return facets(catalog, func(p domain.Product) []string {
		if p.Brand == "" {
			return nil
		}
		return []string{p.Brand}
	})
}

func FeatureFacets(catalog []domain.Product) []Facet {
	return facets(catalog, func(p domain.Product) []string { return p.Features })
}

func facets(catalog []domain.Product, extract func(domain.Product) []string) []Facet {
	counts := map[string]int{}
	for _, p := range catalog {
		for _, v := range extract(p) {
			if v != "" {
				counts[v]++
			}
		}
	}
	out := make([]Facet, 0, len(counts))
	for v, n := range counts {
		out = append(out, Facet{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}
