package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Order Errors
// =============================================================================

var (
	ErrEmailRequired         = errors.New("email is required")
	ErrNameRequired          = errors.New("name is required")
	ErrItemsRequired         = errors.New("order must contain at least one item")
	ErrInvalidQuantity       = errors.New("quantity must be at least 1")
	ErrInvalidDeliveryMethod = errors.New("delivery method must be one of pickup, delivery, digital")
	ErrInvalidTransition     = errors.New("invalid status transition")
)

// =============================================================================
// Delivery Method
// =============================================================================

type DeliveryMethod string

const (
	DeliveryPickup   DeliveryMethod = "pickup"
	DeliveryDelivery DeliveryMethod = "delivery"
	DeliveryDigital  DeliveryMethod = "digital"
)

// IsValid checks if the delivery method is valid.
func (m DeliveryMethod) IsValid() bool {
	switch m {
	case DeliveryPickup, DeliveryDelivery, DeliveryDigital:
		return true
	default:
		return false
	}
}

// =============================================================================
// Order Status
// =============================================================================

type OrderStatus string

const (
	OrderCreated        OrderStatus = "created"
	OrderPendingPayment OrderStatus = "pending_payment"
	OrderPaid           OrderStatus = "paid"
	OrderFulfilled      OrderStatus = "fulfilled"
	OrderCancelled      OrderStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are possible.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderFulfilled || s == OrderCancelled
}

// IsValid checks if the status is one of the known order statuses.
func (s OrderStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// =============================================================================
// Cart Items and Addresses
// =============================================================================

// CartItem is a requested (product, quantity) pair.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Address is an optional delivery address. All fields are free-form.
type Address struct {
	Line1      string `json:"line1,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// PricingResult holds the monetary totals of an order.
// Total equals Subtotal + DeliveryFee rounded to two places.
type PricingResult struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}

// =============================================================================
// Order
// =============================================================================

// Order is created once from a validated cart. Only Status (and UpdatedAt)
// change afterwards.
type Order struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	Name           string          `json:"name"`
	Notes          string          `json:"notes,omitempty"`
	DeliveryMethod DeliveryMethod  `json:"delivery_method"`
	Address        *Address        `json:"address,omitempty"`
	Items          []CartItem      `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee"`
	Total          decimal.Decimal `json:"total"`
	Currency       string          `json:"currency"`
	Status         OrderStatus     `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewOrderParams holds the buyer-supplied part of an order.
type NewOrderParams struct {
	Email          string
	Name           string
	Notes          string
	DeliveryMethod DeliveryMethod
	Address        *Address
	Items          []CartItem
	Currency       string
}

// NewOrder creates an order in the created state from already priced items.
func NewOrder(params NewOrderParams, pricing PricingResult) (*Order, error) {
	if params.DeliveryMethod == "" {
		params.DeliveryMethod = DeliveryDigital
	}
	if err := ValidateOrderParams(params); err != nil {
		return nil, err
	}
	if params.Currency == "" {
		params.Currency = DefaultCurrency
	}

	items := make([]CartItem, len(params.Items))
	copy(items, params.Items)

	now := time.Now().UTC()
	return &Order{
		ID:             uuid.New().String(),
		Email:          params.Email,
		Name:           params.Name,
		Notes:          params.Notes,
		DeliveryMethod: params.DeliveryMethod,
		Address:        params.Address,
		Items:          items,
		Subtotal:       pricing.Subtotal,
		DeliveryFee:    pricing.DeliveryFee,
		Total:          pricing.Total,
		Currency:       params.Currency,
		Status:         OrderCreated,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// ValidateOrderParams checks the buyer-supplied fields of an order.
func ValidateOrderParams(params NewOrderParams) error {
	if strings.TrimSpace(params.Email) == "" {
		return ErrEmailRequired
	}
	if strings.TrimSpace(params.Name) == "" {
		return ErrNameRequired
	}
	if !params.DeliveryMethod.IsValid() {
		return ErrInvalidDeliveryMethod
	}
	if len(params.Items) == 0 {
		return ErrItemsRequired
	}
	for _, item := range params.Items {
		if item.Quantity < 1 {
			return fmt.Errorf("%w: %s", ErrInvalidQuantity, item.ProductID)
		}
	}
	return nil
}

// Transition attempts to move the order to a new status.
func (o *Order) Transition(to OrderStatus) error {
	if err := ValidateTransition(o.Status, to); err != nil {
		return err
	}
	o.Status = to
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// =============================================================================
// State Machine
// =============================================================================

// validTransitions defines the allowed order status transitions.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderCreated:        {OrderPendingPayment, OrderCancelled},
	OrderPendingPayment: {OrderPaid, OrderCancelled},
	OrderPaid:           {OrderFulfilled, OrderCancelled},
	OrderFulfilled:      {}, // Terminal state
	OrderCancelled:      {}, // Terminal state
}

// ValidateTransition checks if an order status transition is valid.
func ValidateTransition(from, to OrderStatus) error {
	allowed, exists := validTransitions[from]
	if !exists {
		return ErrInvalidTransition
	}

	for _, s := range allowed {
		if s == to {
			return nil
		}
	}

	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
