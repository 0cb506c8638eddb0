// Package domain contains the core domain types and validation logic.
// This is part of the Functional Core - all functions are pure with no I/O.
package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Errors
// =============================================================================

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrPriceNegative       = errors.New("price cannot be negative")
	ErrInvalidCategory     = errors.New("category must be one of digital, prints, local")
)

// DefaultCurrency is the currency label used when none is given.
// Currency is carried through unchanged; no conversion happens anywhere.
const DefaultCurrency = "USD"

// =============================================================================
// Category
// =============================================================================

// CategorySlug identifies one of the fixed product categories.
type CategorySlug string

const (
	CategoryDigital CategorySlug = "digital"
	CategoryPrints  CategorySlug = "prints"
	CategoryLocal   CategorySlug = "local"
)

// IsValid checks if the category slug is one of the known categories.
func (c CategorySlug) IsValid() bool {
	switch c {
	case CategoryDigital, CategoryPrints, CategoryLocal:
		return true
	default:
		return false
	}
}

// IsPhysical reports whether products in this category ship as physical goods.
func (c CategorySlug) IsPhysical() bool {
	return c == CategoryPrints || c == CategoryLocal
}

// Category is a browsable product grouping.
type Category struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Slug CategorySlug `json:"slug"`
}

// NewCategory creates a category with a fresh ID.
func NewCategory(name string, slug CategorySlug) (*Category, error) {
	if !slug.IsValid() {
		return nil, ErrInvalidCategory
	}
	return &Category{
		ID:   uuid.New().String(),
		Name: name,
		Slug: slug,
	}, nil
}

// =============================================================================
// Product
// =============================================================================

// Product is a purchasable catalog entry. Pricing reads only ID, Price and
// Category.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Category    CategorySlug    `json:"category_slug"`
	ImageURL    string          `json:"image_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewProduct creates a new product after validating its fields.
func NewProduct(title, description string, price decimal.Decimal, category CategorySlug) (*Product, error) {
	if err := ValidateProduct(title, description, price, category); err != nil {
		return nil, err
	}
	return &Product{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Price:       price,
		Currency:    DefaultCurrency,
		Category:    category,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// ValidateProduct validates the fields required for a product.
func ValidateProduct(title, description string, price decimal.Decimal, category CategorySlug) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(description) == "" {
		return ErrDescriptionRequired
	}
	if price.IsNegative() {
		return ErrPriceNegative
	}
	if !category.IsValid() {
		return ErrInvalidCategory
	}
	return nil
}
