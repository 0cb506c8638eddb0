package store

import (
	"context"
	"time"

	"github.com/artpar/storefront/internal/core/domain"
)

// =============================================================================
// Store Interface
// =============================================================================

// Store defines the persistence interface for storefront entities.
type Store interface {
	// Category operations
	CreateCategory(ctx context.Context, category *domain.Category) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CountCategories(ctx context.Context) (int, error)

	// Product operations
	CreateProduct(ctx context.Context, product *domain.Product) error
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	CountProducts(ctx context.Context) (int, error)
	FindProductsByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)

	// Order operations
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus, updatedAt time.Time) error

	// Checkout session operations
	CreateCheckoutSession(ctx context.Context, session *domain.CheckoutSession) error
	GetCheckoutSession(ctx context.Context, id string) (*domain.CheckoutSession, error)
	GetOpenCheckoutSession(ctx context.Context, orderID string) (*domain.CheckoutSession, error)
	UpdateCheckoutSessionStatus(ctx context.Context, id string, status domain.SessionStatus, updatedAt time.Time) error

	// Transaction support
	WithTx(ctx context.Context, fn func(Store) error) error

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}

// =============================================================================
// Options
// =============================================================================

const (
	// DefaultProductLimit is the page size when none is requested.
	DefaultProductLimit = 50

	// MaxProductLimit caps the page size.
	MaxProductLimit = 1000
)

// ProductFilter narrows a product listing.
type ProductFilter struct {
	Category domain.CategorySlug // exact match when set
	Query    string              // case-insensitive title substring when set
	Limit    int
}

// Normalize ensures the filter has valid values.
func (f ProductFilter) Normalize() ProductFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultProductLimit
	}
	if f.Limit > MaxProductLimit {
		f.Limit = MaxProductLimit
	}
	return f
}
