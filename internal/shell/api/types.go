package api

import "time"

// =============================================================================
// Request Types
// =============================================================================

// CreateProductRequest is the request body for creating a product.
// Price is a pointer so that a missing price is told apart from zero.
type CreateProductRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Price        *float64 `json:"price" openapi:"required"`
	Currency     string   `json:"currency,omitempty"`
	CategorySlug string   `json:"category_slug"`
	ImageURL     string   `json:"image_url,omitempty"`
}

// CartItemRequest is one line of an order request.
// A missing quantity means 1.
type CartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity,omitempty"`
}

// AddressRequest is an optional delivery address.
type AddressRequest struct {
	Line1      string `json:"line1,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// CreateOrderRequest is the request body for placing an order.
type CreateOrderRequest struct {
	Email          string            `json:"email"`
	Name           string            `json:"name"`
	Notes          string            `json:"notes,omitempty"`
	DeliveryMethod string            `json:"delivery_method,omitempty"`
	Address        *AddressRequest   `json:"address,omitempty"`
	Items          []CartItemRequest `json:"items"`
}

// CreateCheckoutSessionRequest is the request body for starting a checkout.
type CreateCheckoutSessionRequest struct {
	OrderID string `json:"order_id"`
}

// =============================================================================
// Response Types
// =============================================================================

// MessageResponse is the API root response.
type MessageResponse struct {
	Message string `json:"message"`
}

// CategoryResponse is the response for a category.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ProductResponse is the response for product operations.
type ProductResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	CategorySlug string    `json:"category_slug"`
	ImageURL     *string   `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// CartItemResponse is one line of an order.
type CartItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// AddressResponse is an order's delivery address.
type AddressResponse struct {
	Line1      string `json:"line1,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// OrderResponse is the response for order operations.
type OrderResponse struct {
	ID             string             `json:"id"`
	Email          string             `json:"email"`
	Name           string             `json:"name"`
	Notes          *string            `json:"notes"`
	DeliveryMethod string             `json:"delivery_method"`
	Address        *AddressResponse   `json:"address"`
	Items          []CartItemResponse `json:"items"`
	Subtotal       float64            `json:"subtotal"`
	DeliveryFee    float64            `json:"delivery_fee"`
	Total          float64            `json:"total"`
	Currency       string             `json:"currency"`
	Status         string             `json:"status"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// CheckoutSessionResponse is the response for checkout session operations.
type CheckoutSessionResponse struct {
	ID              string    `json:"id"`
	OrderID         string    `json:"order_id"`
	PaymentProvider string    `json:"payment_provider"`
	CheckoutURL     string    `json:"checkout_url"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ErrorResponse is the error response format.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse is the readiness check response.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
