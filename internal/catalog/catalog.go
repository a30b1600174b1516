package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"

	"exhibit/storefront/internal/config"
	"exhibit/storefront/internal/domain"
)

// Catalog is the read-only product collection the storefront sells
// from. The core never mutates it; price strings flow to the pricing
// package as-is.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
	bySlug   map[string]int
}

// New indexes the given products by ID and slug.
func New(products []domain.Product) *Catalog {
	c := &Catalog{
		products: products,
		byID:     make(map[string]int, len(products)),
		bySlug:   make(map[string]int, len(products)),
	}
	for i, p := range products {
		c.byID[p.ID] = i
		if p.Slug != "" {
			c.bySlug[p.Slug] = i
		}
	}
	return c
}

// Load builds the catalog from cfg: a remote URL when configured,
// otherwise a local JSON file.
func Load(ctx context.Context, cfg config.CatalogConfig) (*Catalog, error) {
	if cfg.URL != "" {
		return fetch(ctx, cfg)
	}
	return loadFile(cfg.Path)
}

func loadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode catalog file %s: %w", path, err)
	}

	log.Infof("Loaded %d products from %s", len(products), path)
	return New(products), nil
}

func fetch(ctx context.Context, cfg config.CatalogConfig) (*Catalog, error) {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout) * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(2 * time.Second).
		SetHeader("Accept", "application/json")
	defer client.Close()

	var products []domain.Product
	resp, err := client.R().
		SetContext(ctx).
		SetResult(&products).
		Get(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog from %s: %w", cfg.URL, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("catalog endpoint %s returned status %d", cfg.URL, resp.StatusCode())
	}

	log.Infof("Fetched %d products from %s", len(products), cfg.URL)
	return New(products), nil
}

// Products returns every catalog entry in catalog order.
func (c *Catalog) Products() []domain.Product {
	return c.products
}

// ByCategory returns the products in the given category, or all
// products when category is empty.
func (c *Catalog) ByCategory(category string) []domain.Product {
	if category == "" {
		return c.products
	}
	var products []domain.Product
	for _, p := range c.products {
		if p.Category == category {
			products = append(products, p)
		}
	}
	return products
}

// ByID resolves a product by its catalog ID.
func (c *Catalog) ByID(id string) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// BySlug resolves a product by its URL slug.
func (c *Catalog) BySlug(slug string) (domain.Product, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}
