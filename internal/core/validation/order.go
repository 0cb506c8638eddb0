package validation

import (
	"fmt"
	"strings"

	"github.com/artpar/storefront/internal/core/domain"
)

// =============================================================================
// Order Validation Functions
// =============================================================================

// ValidateCreateOrderFields validates the fields of an order placement request.
// An empty delivery method is allowed and means digital.
// Returns the field name and error message if validation fails.
// Returns empty strings if all fields are valid.
//
// An empty items list is not rejected here: the pricing engine reports it as
// an empty cart.
func ValidateCreateOrderFields(email, name, deliveryMethod string, items []domain.CartItem) (field, message string) {
	if strings.TrimSpace(email) == "" {
		return "email", "email is required"
	}
	if !strings.Contains(email, "@") {
		return "email", "email must be a valid address"
	}
	if strings.TrimSpace(name) == "" {
		return "name", "name is required"
	}
	if deliveryMethod != "" && !domain.DeliveryMethod(deliveryMethod).IsValid() {
		return "delivery_method", "delivery_method must be one of pickup, delivery, digital"
	}
	for i, item := range items {
		if strings.TrimSpace(item.ProductID) == "" {
			return fmt.Sprintf("items[%d].product_id", i), "product_id is required"
		}
		if item.Quantity < 1 {
			return fmt.Sprintf("items[%d].quantity", i), "quantity must be at least 1"
		}
	}
	return "", ""
}

// ValidateCheckoutSessionFields validates a checkout session request.
func ValidateCheckoutSessionFields(orderID string) (field, message string) {
	if strings.TrimSpace(orderID) == "" {
		return "order_id", "order_id is required"
	}
	return "", ""
}

// CanCancelOrder checks if an order can be cancelled from its current status.
// Any non-terminal order can be cancelled.
//
// Example:
//
//	allowed, reason := CanCancelOrder(order.Status)
//	if !allowed {
//	    // Return 409 Conflict with reason
//	}
func CanCancelOrder(status domain.OrderStatus) (allowed bool, reason string) {
	if status.IsTerminal() {
		return false, fmt.Sprintf("order is already %s", status)
	}
	return true, ""
}

// CanFulfillOrder checks if an order can be fulfilled. Only paid orders can.
func CanFulfillOrder(status domain.OrderStatus) (allowed bool, reason string) {
	if status != domain.OrderPaid {
		return false, "order is not paid"
	}
	return true, ""
}
