// Package yamlcatalog loads the static product catalog the storefront serves.
// The catalog is read once at startup; there is no reload.
package yamlcatalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/techhubpro/storefront/internal/domain"
)

type fileProduct struct {
	ID          int      `yaml:"id"`
	Name        string   `yaml:"name"`
	Category    string   `yaml:"category"`
	Brand       string   `yaml:"brand"`
	Description string   `yaml:"description"`
	Price       float64  `yaml:"price"`
	SalePrice   *float64 `yaml:"salePrice"`
	Rating      float64  `yaml:"rating"`
	Reviews     int      `yaml:"reviews"`
	InStock     bool     `yaml:"inStock"`
	Features    []string `yaml:"features"`
	Featured    bool     `yaml:"featured"`
}

type catalogFile struct {
	Products []fileProduct `yaml:"products"`
}

func Load(path string) ([]domain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) ([]domain.Product, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	seen := make(map[int]struct{}, len(f.Products))
	out := make([]domain.Product, 0, len(f.Products))
	for _, fp := range f.Products {
		if err := validate(fp); err != nil {
			return nil, err
		}
		if _, dup := seen[fp.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %d", fp.ID)
		}
		seen[fp.ID] = struct{}{}
		out = append(out, domain.Product{
			ID:          fp.ID,
			Name:        fp.Name,
			Category:    fp.Category,
			Brand:       fp.Brand,
			Description: fp.Description,
			Price:       fp.Price,
			SalePrice:   fp.SalePrice,
			Rating:      fp.Rating,
			Reviews:     fp.Reviews,
			InStock:     fp.InStock,
			Features:    fp.Features,
			Featured:    fp.Featured,
		})
	}
	return out, nil
}

func validate(fp fileProduct) error {
	if fp.ID <= 0 {
		return fmt.Errorf("catalog: product %q has invalid id %d", fp.Name, fp.ID)
	}
	if fp.Name == "" {
		return fmt.Errorf("catalog: product %d has no name", fp.ID)
	}
	if fp.Price < 0 {
		return fmt.Errorf("catalog: product %d has negative price", fp.ID)
	}
	if fp.SalePrice != nil && (*fp.SalePrice < 0 || *fp.SalePrice >= fp.Price) {
		return fmt.Errorf("catalog: product %d sale price must be below price", fp.ID)
	}
	if fp.Rating < 0 || fp.Rating > 5 {
		return fmt.Errorf("catalog: product %d rating out of range", fp.ID)
	}
	if fp.Reviews < 0 {
		return fmt.Errorf("catalog: product %d has negative review count", fp.ID)
	}
	return nil
}
