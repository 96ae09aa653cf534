package app

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/techhubpro/storefront/internal/adapters/catalog/yamlcatalog"
	"github.com/techhubpro/storefront/internal/adapters/httpserver"
	"github.com/techhubpro/storefront/internal/adapters/payments/simulated"
	"github.com/techhubpro/storefront/internal/adapters/prefs"
	"github.com/techhubpro/storefront/internal/adapters/promos"
	"github.com/techhubpro/storefront/internal/adapters/repo/memory"
	"github.com/techhubpro/storefront/internal/domain"
	"github.com/techhubpro/storefront/internal/usecase"
)

type App struct {
	Catalog    []domain.Product
	Orders     domain.OrderRepo
	Prefs      domain.PrefsStore
	Promos     domain.PromoEngine
	CheckoutUC *usecase.CheckoutUC
	PerPage    int
}

func NewApp() (*App, error) {
	catalogPath := envOr("CATALOG_PATH", "catalog.yaml")
	catalog, err := yamlcatalog.Load(catalogPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		log.Warn().Str("path", catalogPath).Msg("catalog file missing, using seed catalog")
		catalog = seedCatalog()
	}

	var promoEngine domain.PromoEngine
	promosPath := envOr("PROMOS_PATH", "promos.yaml")
	if eng, err := promos.LoadPack(promosPath); err == nil {
		promoEngine = eng
	} else if errors.Is(err, os.ErrNotExist) {
		promoEngine = promos.NewEngine(seedPromoRules())
	} else {
		return nil, err
	}

	prefStore, err := prefs.Open(envOr("PREFS_PATH", "prefs.yaml"))
	if err != nil {
		return nil, err
	}

	orders := memory.NewOrderRepo()
	gateway := simulated.NewGateway(os.Getenv("SECRET_KEY"))

	perPage := domain.DefaultItemsPerPage
	if raw := os.Getenv("ITEMS_PER_PAGE"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			perPage = n
		}
	}

	return &App{
		Catalog:    catalog,
		Orders:     orders,
		Prefs:      prefStore,
		Promos:     promoEngine,
		CheckoutUC: &usecase.CheckoutUC{Orders: orders, Gateway: gateway, Promos: promoEngine},
		PerPage:    perPage,
	}, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Catalog, a.CheckoutUC, a.Orders, a.Prefs, a.PerPage)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func seedCatalog() []domain.Product {
	sale := func(v float64) *float64 { return &v }
	return []domain.Product{
		{ID: 1, Name: "Titan X15 Gaming Laptop", Category: "Laptops", Brand: "Titan", Description: "15-inch gaming laptop with RTX graphics", Price: 2499, SalePrice: sale(2199), Rating: 4.7, Reviews: 312, InStock: true, Features: []string{"RGB Keyboard", "144Hz Display"}, Featured: true},
		{ID: 2, Name: "AeroBook Slim 14", Category: "Laptops", Brand: "AeroTech", Description: "Ultralight 14-inch productivity laptop", Price: 1299, Rating: 4.5, Reviews: 204, InStock: true, Features: []string{"Fingerprint Reader", "USB-C Charging"}},
		{ID: 3, Name: "Vortex Tower Pro", Category: "Computers", Brand: "Vortex", Description: "Prebuilt workstation tower", Price: 1899, Rating: 4.6, Reviews: 158, InStock: true, Features: []string{"Liquid Cooling"}, Featured: true},
		{ID: 4, Name: "Nimbus Mini PC", Category: "Computers", Brand: "Nimbus", Description: "Compact desktop for the living room", Price: 649, SalePrice: sale(549), Rating: 4.2, Reviews: 96, InStock: true, Features: []string{"Wi-Fi 6"}},
		{ID: 5, Name: "Photon 27 Monitor", Category: "Peripherals", Brand: "Photon", Description: "27-inch QHD IPS monitor", Price: 429, Rating: 4.4, Reviews: 271, InStock: true, Features: []string{"144Hz Display", "HDR"}},
		{ID: 6, Name: "ClickStorm Mechanical Keyboard", Category: "Peripherals", Brand: "ClickStorm", Description: "Hot-swappable mechanical keyboard", Price: 159, SalePrice: sale(119), Rating: 4.8, Reviews: 540, InStock: true, Features: []string{"RGB Keyboard", "Hot-swap Switches"}},
		{ID: 7, Name: "Glide Wireless Mouse", Category: "Peripherals", Brand: "Glide", Description: "Lightweight wireless gaming mouse", Price: 89, Rating: 4.3, Reviews: 389, InStock: false, Features: []string{"Wireless"}},
		{ID: 8, Name: "Bolt NVMe SSD 2TB", Category: "Components", Brand: "Bolt", Description: "PCIe 4.0 NVMe solid state drive", Price: 219, Rating: 4.9, Reviews: 812, InStock: true, Features: []string{"PCIe 4.0"}},
		{ID: 9, Name: "Ember GPU RX Pro", Category: "Components", Brand: "Ember", Description: "High-end graphics card", Price: 1099, SalePrice: sale(999), Rating: 4.6, Reviews: 233, InStock: true, Features: []string{"Ray Tracing"}, Featured: true},
		{ID: 10, Name: "Core DDR5 Kit 32GB", Category: "Components", Brand: "Core", Description: "32GB DDR5 memory kit", Price: 149, Rating: 4.5, Reviews: 178, InStock: true},
	}
}

func seedPromoRules() []promos.Rule {
	return []promos.Rule{
		{
			Code:        "WELCOME10",
			Description: "10% off any order",
			Percent:     10,
		},
		{
			Code:        "BIGCART",
			Description: "5000 off orders over 100000",
			When:        map[string]any{">": []any{map[string]any{"var": "subtotal"}, 100000}},
			Amount:      5000,
		},
	}
}
