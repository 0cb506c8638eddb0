// Package pricing computes order totals from cart items and catalog prices.
// All functions are pure (no I/O, no side effects).
package pricing

import (
	"errors"
	"fmt"

	"github.com/artpar/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrEmptyCart is returned when there is nothing to price.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidReference matches any *InvalidReferenceError.
	ErrInvalidReference = errors.New("invalid product reference")
)

// InvalidReferenceError names the cart product ID missing from the catalog.
type InvalidReferenceError struct {
	ProductID string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid product: %s", e.ProductID)
}

func (e *InvalidReferenceError) Is(target error) bool {
	return target == ErrInvalidReference
}

// =============================================================================
// Policy
// =============================================================================

// moneyPlaces is the number of decimal places kept for every amount.
const moneyPlaces = 2

// DefaultDeliveryFee is the flat fee for delivering physical goods.
var DefaultDeliveryFee = decimal.RequireFromString("7.00")

// Policy holds the delivery fee rule. The fee is flat: it does not scale
// with weight, distance or quantity.
type Policy struct {
	DeliveryFee decimal.Decimal
}

// DefaultPolicy returns the policy with the standard 7.00 delivery fee.
func DefaultPolicy() Policy {
	return Policy{DeliveryFee: DefaultDeliveryFee}
}

// Compute prices items with the default policy.
//
// Example:
//
//	result, err := pricing.Compute(items, catalog, domain.DeliveryDelivery)
//	if errors.Is(err, pricing.ErrInvalidReference) {
//	    // Return 400 with the offending product ID
//	}
func Compute(items []domain.CartItem, catalog map[string]domain.Product, method domain.DeliveryMethod) (domain.PricingResult, error) {
	return DefaultPolicy().Compute(items, catalog, method)
}

// Compute prices items against catalog using the policy's delivery fee.
//
// The subtotal is rounded once, after summing, not per item. The delivery fee
// applies only when method is delivery and at least one item is physical.
func (p Policy) Compute(items []domain.CartItem, catalog map[string]domain.Product, method domain.DeliveryMethod) (domain.PricingResult, error) {
	for _, item := range items {
		if _, ok := catalog[item.ProductID]; !ok {
			return domain.PricingResult{}, &InvalidReferenceError{ProductID: item.ProductID}
		}
	}
	if len(items) == 0 {
		return domain.PricingResult{}, ErrEmptyCart
	}

	subtotal := decimal.Zero
	containsPhysical := false
	for _, item := range items {
		entry := catalog[item.ProductID]
		subtotal = subtotal.Add(entry.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		if entry.Category.IsPhysical() {
			containsPhysical = true
		}
	}

	deliveryFee := decimal.Zero
	if method == domain.DeliveryDelivery && containsPhysical {
		deliveryFee = p.DeliveryFee
	}

	return domain.PricingResult{
		Subtotal:    subtotal.Round(moneyPlaces),
		DeliveryFee: deliveryFee.Round(moneyPlaces),
		Total:       subtotal.Add(deliveryFee).Round(moneyPlaces),
	}, nil
}

// ProductIDs returns the distinct product IDs of items in first-seen order.
func ProductIDs(items []domain.CartItem) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}
