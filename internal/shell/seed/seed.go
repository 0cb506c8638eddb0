// Package seed loads the demo catalog into an empty store.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/artpar/storefront/internal/core/domain"
	"github.com/artpar/storefront/internal/shell/store"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var (
	ErrEmptyCatalog = errors.New("catalog has no categories")
	ErrInvalidPrice = errors.New("invalid product price")
)

// =============================================================================
// Catalog File
// =============================================================================

// Catalog is the parsed form of a catalog YAML document.
type Catalog struct {
	Categories []CategorySpec `yaml:"categories"`
	Products   []ProductSpec  `yaml:"products"`
}

// CategorySpec describes one category in the catalog file.
type CategorySpec struct {
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
}

// ProductSpec describes one product in the catalog file.
// Price is a decimal string so no float rounding happens on load.
type ProductSpec struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	Category    string `yaml:"category"`
	ImageURL    string `yaml:"image_url"`
}

// DefaultCatalog parses the embedded demo catalog.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// ParseCatalog parses and validates a catalog YAML document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(catalog.Categories) == 0 {
		return nil, ErrEmptyCatalog
	}
	for _, c := range catalog.Categories {
		if !domain.CategorySlug(c.Slug).IsValid() {
			return nil, fmt.Errorf("category %q: %w", c.Name, domain.ErrInvalidCategory)
		}
	}
	for _, p := range catalog.Products {
		if _, err := p.toProduct(); err != nil {
			return nil, fmt.Errorf("product %q: %w", p.Title, err)
		}
	}
	return &catalog, nil
}

func (p ProductSpec) toProduct() (*domain.Product, error) {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPrice, p.Price)
	}
	product, err := domain.NewProduct(p.Title, p.Description, price, domain.CategorySlug(p.Category))
	if err != nil {
		return nil, err
	}
	product.ImageURL = p.ImageURL
	return product, nil
}

// =============================================================================
// Seeder
// =============================================================================

// Result reports how many records a seed run inserted.
type Result struct {
	Categories int
	Products   int
}

// Seeder inserts catalog records into a store.
type Seeder struct {
	store  store.Store
	logger *slog.Logger
}

// NewSeeder creates a new seeder.
func NewSeeder(s store.Store, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		store:  s,
		logger: logger.With("component", "seed"),
	}
}

// Seed inserts the catalog's categories when the store has none, and its
// products when the store has none. Existing data is never touched.
func (s *Seeder) Seed(ctx context.Context, catalog *Catalog) (Result, error) {
	var result Result

	err := s.store.WithTx(ctx, func(tx store.Store) error {
		categoryCount, err := tx.CountCategories(ctx)
		if err != nil {
			return err
		}
		if categoryCount == 0 {
			for _, spec := range catalog.Categories {
				category, err := domain.NewCategory(spec.Name, domain.CategorySlug(spec.Slug))
				if err != nil {
					return fmt.Errorf("category %q: %w", spec.Name, err)
				}
				if err := tx.CreateCategory(ctx, category); err != nil {
					return err
				}
				result.Categories++
			}
		}

		productCount, err := tx.CountProducts(ctx)
		if err != nil {
			return err
		}
		if productCount == 0 {
			// Spread creation times so the newest-first listing keeps file order reversed.
			base := time.Now().UTC()
			for i, spec := range catalog.Products {
				product, err := spec.toProduct()
				if err != nil {
					return fmt.Errorf("product %q: %w", spec.Title, err)
				}
				product.CreatedAt = base.Add(time.Duration(i) * time.Millisecond)
				if err := tx.CreateProduct(ctx, product); err != nil {
					return err
				}
				result.Products++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to seed catalog: %w", err)
	}

	if result.Categories > 0 || result.Products > 0 {
		s.logger.Info("catalog seeded", "categories", result.Categories, "products", result.Products)
	} else {
		s.logger.Debug("catalog already present, skipping seed")
	}
	return result, nil
}
