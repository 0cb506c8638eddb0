package api

import (
	"net/http"

	"github.com/artpar/storefront/internal/shell/api/openapi"
)

// newDocs registers every API route with the OpenAPI generator.
// Keep in sync with Routes.
func newDocs() *openapi.Generator {
	g := openapi.NewGenerator()

	g.Register(
		openapi.Endpoint{
			Method:      http.MethodGet,
			Path:        "/api/",
			OperationID: "root",
			Summary:     "API greeting",
			Tag:         "Meta",
			Response:    MessageResponse{},
		},
		openapi.Endpoint{
			Method:      http.MethodGet,
			Path:        "/api/categories",
			OperationID: "listCategories",
			Summary:     "List categories",
			Tag:         "Catalog",
			Response:    CategoryResponse{},
			List:        true,
		},
		openapi.Endpoint{
			Method:      http.MethodGet,
			Path:        "/api/products",
			OperationID: "listProducts",
			Summary:     "List products, newest first",
			Tag:         "Catalog",
			Query: []openapi.QueryParam{
				{Name: "category", Type: "string", Description: "Category slug"},
				{Name: "q", Type: "string", Description: "Case-insensitive title search"},
				{Name: "limit", Type: "integer", Description: "Maximum results (default 50, max 1000)"},
			},
			Response: ProductResponse{},
			List:     true,
		},
		openapi.Endpoint{
			Method:      http.MethodPost,
			Path:        "/api/products",
			OperationID: "createProduct",
			Summary:     "Create a product",
			Tag:         "Catalog",
			Request:     CreateProductRequest{},
			Response:    ProductResponse{},
			Status:      http.StatusCreated,
			Errors:      []int{http.StatusBadRequest},
		},
		openapi.Endpoint{
			Method:      http.MethodGet,
			Path:        "/api/products/{id}",
			OperationID: "getProduct",
			Summary:     "Get a product",
			Tag:         "Catalog",
			Response:    ProductResponse{},
			Errors:      []int{http.StatusNotFound},
		},
		openapi.Endpoint{
			Method:      http.MethodPost,
			Path:        "/api/orders",
			OperationID: "createOrder",
			Summary:     "Place an order from a cart",
			Tag:         "Orders",
			Request:     CreateOrderRequest{},
			Response:    OrderResponse{},
			Status:      http.StatusCreated,
			Errors:      []int{http.StatusBadRequest},
		},
		openapi.Endpoint{
			Method:      http.MethodGet,
			Path:        "/api/orders/{id}",
			OperationID: "getOrder",
			Summary:     "Get an order",
			Tag:         "Orders",
			Response:    OrderResponse{},
			Errors:      []int{http.StatusNotFound},
		},
		openapi.Endpoint{
			Method:      http.MethodPost,
			Path:        "/api/orders/{id}/cancel",
			OperationID: "cancelOrder",
			Summary:     "Cancel an order",
			Tag:         "Orders",
			Response:    OrderResponse{},
			Errors:      []int{http.StatusNotFound, http.StatusConflict},
		},
		openapi.Endpoint{
			Method:      http.MethodPost,
			Path:        "/api/orders/{id}/fulfill",
			OperationID: "fulfillOrder",
			Summary:     "Mark a paid order as fulfilled",
			Tag:         "Orders",
			Response:    OrderResponse{},
			Errors:      []int{http.StatusNotFound, http.StatusConflict},
		},
		openapi.Endpoint{
			Method:      http.MethodPost,
			Path:        "/api/checkout/session",
			OperationID: "createCheckoutSession",
			Summary:     "Start a mock checkout (200 when an open session is reused)",
			Tag:         "Checkout",
			Request:     CreateCheckoutSessionRequest{},
			Response:    CheckoutSessionResponse{},
			Status:      http.StatusCreated,
			Errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict},
		},
		openapi.Endpoint{
			Method:      http.MethodGet,
			Path:        "/api/checkout/session/{id}",
			OperationID: "getCheckoutSession",
			Summary:     "Get a checkout session",
			Tag:         "Checkout",
			Response:    CheckoutSessionResponse{},
			Errors:      []int{http.StatusNotFound},
		},
		openapi.Endpoint{
			Method:      http.MethodPost,
			Path:        "/api/checkout/session/{id}/complete",
			OperationID: "completeCheckoutSession",
			Summary:     "Confirm the mock payment",
			Tag:         "Checkout",
			Response:    CheckoutSessionResponse{},
			Errors:      []int{http.StatusNotFound, http.StatusConflict},
		},
	)

	return g
}
