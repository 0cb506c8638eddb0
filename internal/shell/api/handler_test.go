package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/artpar/storefront/internal/core/domain"
	"github.com/artpar/storefront/internal/shell/orders"
	"github.com/artpar/storefront/internal/shell/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

// stubStore implements store.Store for testing.
type stubStore struct {
	categories []domain.Category
	products   map[string]*domain.Product
	orders     map[string]*domain.Order
	sessions   map[string]*domain.CheckoutSession
	err        error // If set, all operations return this error
	pingErr    error
}

func newStubStore() *stubStore {
	return &stubStore{
		products: make(map[string]*domain.Product),
		orders:   make(map[string]*domain.Order),
		sessions: make(map[string]*domain.CheckoutSession),
	}
}

func (s *stubStore) CreateCategory(ctx context.Context, c *domain.Category) error {
	if s.err != nil {
		return s.err
	}
	s.categories = append(s.categories, *c)
	return nil
}

func (s *stubStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]domain.Category(nil), s.categories...), nil
}

func (s *stubStore) CountCategories(ctx context.Context) (int, error) {
	return len(s.categories), s.err
}

func (s *stubStore) CreateProduct(ctx context.Context, p *domain.Product) error {
	if s.err != nil {
		return s.err
	}
	if _, exists := s.products[p.ID]; exists {
		return store.NewStoreError("CreateProduct", "product", p.ID, "already exists", store.ErrDuplicateID)
	}
	copied := *p
	s.products[p.ID] = &copied
	return nil
}

func (s *stubStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.products[id]
	if !ok {
		return nil, store.NewStoreError("GetProduct", "product", id, "not found", store.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (s *stubStore) ListProducts(ctx context.Context, filter store.ProductFilter) ([]domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	filter = filter.Normalize()
	var result []domain.Product
	for _, p := range s.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(filter.Query)) {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (s *stubStore) CountProducts(ctx context.Context) (int, error) {
	return len(s.products), s.err
}

func (s *stubStore) FindProductsByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	found := make(map[string]domain.Product)
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			found[id] = *p
		}
	}
	return found, nil
}

func (s *stubStore) CreateOrder(ctx context.Context, o *domain.Order) error {
	if s.err != nil {
		return s.err
	}
	copied := *o
	s.orders[o.ID] = &copied
	return nil
}

func (s *stubStore) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	o, ok := s.orders[id]
	if !ok {
		return nil, store.NewStoreError("GetOrder", "order", id, "not found", store.ErrNotFound)
	}
	copied := *o
	return &copied, nil
}

func (s *stubStore) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus, updatedAt time.Time) error {
	if s.err != nil {
		return s.err
	}
	o, ok := s.orders[id]
	if !ok {
		return store.NewStoreError("UpdateOrderStatus", "order", id, "not found", store.ErrNotFound)
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	return nil
}

func (s *stubStore) CreateCheckoutSession(ctx context.Context, cs *domain.CheckoutSession) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.orders[cs.OrderID]; !ok {
		return store.NewStoreError("CreateCheckoutSession", "checkout_session", cs.ID, "order not found", store.ErrForeignKey)
	}
	copied := *cs
	s.sessions[cs.ID] = &copied
	return nil
}

func (s *stubStore) GetCheckoutSession(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	if s.err != nil {
		return nil, s.err
	}
	cs, ok := s.sessions[id]
	if !ok {
		return nil, store.NewStoreError("GetCheckoutSession", "checkout_session", id, "not found", store.ErrNotFound)
	}
	copied := *cs
	return &copied, nil
}

func (s *stubStore) GetOpenCheckoutSession(ctx context.Context, orderID string) (*domain.CheckoutSession, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, cs := range s.sessions {
		if cs.OrderID == orderID && cs.IsOpen() {
			copied := *cs
			return &copied, nil
		}
	}
	return nil, store.NewStoreError("GetOpenCheckoutSession", "checkout_session", orderID, "not found", store.ErrNotFound)
}

func (s *stubStore) UpdateCheckoutSessionStatus(ctx context.Context, id string, status domain.SessionStatus, updatedAt time.Time) error {
	if s.err != nil {
		return s.err
	}
	cs, ok := s.sessions[id]
	if !ok {
		return store.NewStoreError("UpdateCheckoutSessionStatus", "checkout_session", id, "not found", store.ErrNotFound)
	}
	cs.Status = status
	cs.UpdatedAt = updatedAt
	return nil
}

func (s *stubStore) WithTx(ctx context.Context, fn func(store.Store) error) error {
	return fn(s)
}

func (s *stubStore) Ping(ctx context.Context) error {
	return s.pingErr
}

func (s *stubStore) Close() error {
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandler() (*Handler, *stubStore) {
	s := newStubStore()
	svc := orders.NewService(s, orders.DefaultConfig(), testLogger())
	h := NewHandler(s, svc, Config{}, testLogger())
	return h, s
}

// jsonBody encodes a value to JSON and returns a reader.
func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, json.NewEncoder(buf).Encode(v))
	return buf
}

// parseResponse parses a JSON response body into the given type.
func parseResponse[T any](t *testing.T, body io.Reader) T {
	t.Helper()
	var result T
	require.NoError(t, json.NewDecoder(body).Decode(&result))
	return result
}

func serve(h *Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func addTestProduct(s *stubStore, title string, price string, category domain.CategorySlug, createdAt time.Time) *domain.Product {
	p := &domain.Product{
		ID:          "prod-" + strings.ToLower(strings.ReplaceAll(title, " ", "-")),
		Title:       title,
		Description: title + " description",
		Price:       decimal.RequireFromString(price),
		Currency:    "USD",
		Category:    category,
		CreatedAt:   createdAt,
	}
	s.products[p.ID] = p
	return p
}

func placeTestOrder(t *testing.T, h *Handler, s *stubStore) OrderResponse {
	t.Helper()
	poster := addTestProduct(s, "Poster", "35.00", domain.CategoryPrints, time.Now())
	rec := serve(h, http.MethodPost, "/api/orders", jsonBody(t, map[string]any{
		"email":           "buyer@example.com",
		"name":            "Ada",
		"delivery_method": "delivery",
		"items":           []map[string]any{{"product_id": poster.ID, "quantity": 2}},
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return parseResponse[OrderResponse](t, rec.Body)
}

// =============================================================================
// Health / Meta Tests
// =============================================================================

func TestHealth_Success(t *testing.T) {
	h, _ := newTestHandler()

	rec := serve(h, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	resp := parseResponse[HealthResponse](t, rec.Body)
	assert.Equal(t, "healthy", resp.Status)
}

func TestReady_Success(t *testing.T) {
	h, _ := newTestHandler()

	rec := serve(h, http.MethodGet, "/ready", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := parseResponse[ReadyResponse](t, rec.Body)
	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, "ok", resp.Checks["database"])
}

func TestReady_DatabaseFailed(t *testing.T) {
	h, s := newTestHandler()
	s.pingErr = errors.New("database is locked")

	rec := serve(h, http.MethodGet, "/ready", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := parseResponse[ReadyResponse](t, rec.Body)
	assert.Equal(t, "not_ready", resp.Status)
	assert.Equal(t, "failed", resp.Checks["database"])
}

func TestRoot_HelloWorld(t *testing.T) {
	h, _ := newTestHandler()

	rec := serve(h, http.MethodGet, "/api/", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := parseResponse[MessageResponse](t, rec.Body)
	assert.Equal(t, "Hello World", resp.Message)
}

func TestOpenAPI_Served(t *testing.T) {
	h, _ := newTestHandler()

	rec := serve(h, http.MethodGet, "/api/openapi.json", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	doc := parseResponse[map[string]any](t, rec.Body)
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/api/orders")
	assert.Contains(t, paths, "/api/checkout/session")
	assert.Contains(t, paths, "/api/checkout/session/{id}/complete")
}

func TestCORS_AllowedOrigin(t *testing.T) {
	s := newStubStore()
	svc := orders.NewService(s, orders.DefaultConfig(), testLogger())
	h := NewHandler(s, svc, Config{AllowedOrigins: []string{"https://shop.example.com"}}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://shop.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

// =============================================================================
// Catalog Tests
// =============================================================================

func TestListCategories_Success(t *testing.T) {
	h, s := newTestHandler()
	s.categories = []domain.Category{
		{ID: "c1", Name: "Digital Downloads", Slug: domain.CategoryDigital},
		{ID: "c2", Name: "Prints", Slug: domain.CategoryPrints},
	}

	rec := serve(h, http.MethodGet, "/api/categories", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := parseResponse[[]CategoryResponse](t, rec.Body)
	require.Len(t, resp, 2)
	assert.Equal(t, "digital", resp[0].Slug)
}

func TestListCategories_Empty(t *testing.T) {
	h, _ := newTestHandler()

	rec := serve(h, http.MethodGet, "/api/categories", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestListCategories_StoreError(t *testing.T) {
	h, s := newTestHandler()
	s.err = errors.New("disk I/O error")

	rec := serve(h, http.MethodGet, "/api/categories", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := parseResponse[ErrorResponse](t, rec.Body)
	assert.Equal(t, "internal_error", resp.Code)
}

func TestListProducts_Filters(t *testing.T) {
	h, s := newTestHandler()
	base := time.Now()
	addTestProduct(s, "Brand Mockup Set", "24", domain.CategoryDigital, base)
	addTestProduct(s, "A2 Geometric Print", "45", domain.CategoryPrints, base.Add(time.Second))
	addTestProduct(s, "Geometric Poster Pack", "22", domain.CategoryDigital, base.Add(2*time.Second))

	rec := serve(h, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := parseResponse[[]ProductResponse](t, rec.Body)
	require.Len(t, all, 3)
	assert.Equal(t, "Geometric Poster Pack", all[0].Title)
	assert.Equal(t, 22.0, all[0].Price)

	rec = serve(h, http.MethodGet, "/api/products?category=digital&q=geometric", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	filtered := parseResponse[[]ProductResponse](t, rec.Body)
	require.Len(t, filtered, 1)
	assert.Equal(t, "digital", filtered[0].CategorySlug)

	rec = serve(h, http.MethodGet, "/api/products?limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, parseResponse[[]ProductResponse](t, rec.Body), 1)
}

func TestGetProduct_Success(t *testing.T) {
	h, s := newTestHandler()
	p := addTestProduct(s, "Flyers", "20", domain.CategoryLocal, time.Now())

	rec := serve(h, http.MethodGet, "/api/products/"+p.ID, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := parseResponse[ProductResponse](t, rec.Body)
	assert.Equal(t, p.ID, resp.ID)
	assert.Nil(t, resp.ImageURL)
}

func TestGetProduct_NotFound(t *testing.T) {
	h, _ := newTestHandler()

	rec := serve(h, http.MethodGet, "/api/products/missing", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := parseResponse[ErrorResponse](t, rec.Body)
	assert.Equal(t, "product_not_found", resp.Code)
}

func floatPtr(v float64) *float64 { return &v }

func TestCreateProduct_Success(t *testing.T) {
	h, s := newTestHandler()

	rec := serve(h, http.MethodPost, "/api/products", jsonBody(t, CreateProductRequest{
		Title:        "Stickers",
		Description:  "Die-cut vinyl stickers",
		Price:        floatPtr(12.5),
		CategorySlug: "local",
		ImageURL:     "https://images.example.com/stickers.png",
	}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := parseResponse[ProductResponse](t, rec.Body)
	assert.Equal(t, "Stickers", resp.Title)
	assert.Equal(t, 12.5, resp.Price)
	assert.Equal(t, "USD", resp.Currency)
	require.NotNil(t, resp.ImageURL)
	assert.Len(t, s.products, 1)
}

func TestCreateProduct_Validation(t *testing.T) {
	h, _ := newTestHandler()

	rec := serve(h, http.MethodPost, "/api/products", jsonBody(t, CreateProductRequest{
		Title:        "Stickers",
		Description:  "desc",
		Price:        floatPtr(-1),
		CategorySlug: "local",
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := parseResponse[ErrorResponse](t, rec.Body)
	assert.Equal(t, "validation_error", resp.Code)
	assert.Equal(t, "price cannot be negative", resp.Error)
}

func TestCreateProduct_MissingPrice(t *testing.T) {
	h, s := newTestHandler()

	rec := serve(h, http.MethodPost, "/api/products", strings.NewReader(
		`{"title":"Stickers","description":"d","category_slug":"local"}`,
	))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := parseResponse[ErrorResponse](t, rec.Body)
	assert.Equal(t, "validation_error", resp.Code)
	assert.Equal(t, "price is required", resp.Error)
	assert.Empty(t, s.products)
}

func TestCreateProduct_ZeroPrice(t *testing.T) {
	h, s := newTestHandler()

	rec := serve(h, http.MethodPost, "/api/products", strings.NewReader(
		`{"title":"Stickers","description":"d","price":0,"category_slug":"local"}`,
	))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, s.products, 1)
}

func TestCreateProduct_TrailingData(t *testing.T) {
	for name, body := range map[string]string{
		"bracket": `{"title":"Stickers","description":"d","price":1,"category_slug":"local"}]`,
		"object":  `{"title":"Stickers","description":"d","price":1,"category_slug":"local"}{}`,
	} {
		t.Run(name, func(t *testing.T) {
			h, s := newTestHandler()

			rec := serve(h, http.MethodPost, "/api/products", strings.NewReader(body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, s.products)
		})
	}
}

func TestCreateProduct_UnknownField(t *testing.T) {
	h, _ := newTestHandler()

	rec := serve(h, http.MethodPost, "/api/products", strings.NewReader(
		`{"title":"Stickers","description":"d","price":1,"category_slug":"local","stock":4}`,
	))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// Order Tests
// =============================================================================

func TestCreateOrder_PhysicalDelivery(t *testing.T) {
	h, s := newTestHandler()

	order := placeTestOrder(t, h, s)

	assert.Equal(t, 70.0, order.Subtotal)
	assert.Equal(t, 7.0, order.DeliveryFee)
	assert.Equal(t, 77.0, order.Total)
	assert.Equal(t, "created", order.Status)
	assert.Equal(t, "USD", order.Currency)
	assert.Nil(t, order.Notes)
}

func TestCreateOrder_DigitalOnly(t *testing.T) {
	h, s := newTestHandler()
	kit := addTestProduct(s, "Kit", "18.00", domain.CategoryDigital, time.Now())

	rec := serve(h, http.MethodPost, "/api/orders", jsonBody(t, map[string]any{
		"email":           "buyer@example.com",
		"name":            "Ada",
		"notes":           "gift",
		"delivery_method": "delivery",
		"address":         map[string]any{"line1": "1 Main St", "city": "Springfield"},
		"items":           []map[string]any{{"product_id": kit.ID, "quantity": 1}},
	}))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := parseResponse[OrderResponse](t, rec.Body)
	assert.Equal(t, 18.0, order.Subtotal)
	assert.Equal(t, 0.0, order.DeliveryFee)
	assert.Equal(t, 18.0, order.Total)
	require.NotNil(t, order.Notes)
	assert.Equal(t, "gift", *order.Notes)
	require.NotNil(t, order.Address)
	assert.Equal(t, "Springfield", order.Address.City)
}

func TestCreateOrder_QuantityDefaultsToOne(t *testing.T) {
	h, s := newTestHandler()
	cards := addTestProduct(s, "Cards", "28.00", domain.CategoryLocal, time.Now())

	rec := serve(h, http.MethodPost, "/api/orders", jsonBody(t, map[string]any{
		"email": "buyer@example.com",
		"name":  "Ada",
		"items": []map[string]any{{"product_id": cards.ID}},
	}))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := parseResponse[OrderResponse](t, rec.Body)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 1, order.Items[0].Quantity)
	assert.Equal(t, "digital", order.DeliveryMethod)
	assert.Equal(t, 28.0, order.Total)
}

func TestCreateOrder_Errors(t *testing.T) {
	h, s := newTestHandler()
	poster := addTestProduct(s, "Poster", "35.00", domain.CategoryPrints, time.Now())

	tests := []struct {
		name     string
		body     map[string]any
		wantCode string
		wantMsg  string
	}{
		{
			name:     "empty cart",
			body:     map[string]any{"email": "a@b.c", "name": "Ada", "items": []any{}},
			wantCode: "empty_cart",
			wantMsg:  "Cart is empty",
		},
		{
			name:     "unknown product",
			body:     map[string]any{"email": "a@b.c", "name": "Ada", "items": []map[string]any{{"product_id": "nope", "quantity": 1}}},
			wantCode: "invalid_product",
			wantMsg:  "invalid product: nope",
		},
		{
			name:     "zero quantity",
			body:     map[string]any{"email": "a@b.c", "name": "Ada", "items": []map[string]any{{"product_id": poster.ID, "quantity": 0}}},
			wantCode: "validation_error",
			wantMsg:  "quantity must be at least 1",
		},
		{
			name:     "bad delivery method",
			body:     map[string]any{"email": "a@b.c", "name": "Ada", "delivery_method": "drone", "items": []map[string]any{{"product_id": poster.ID}}},
			wantCode: "validation_error",
		},
		{
			name:     "missing email",
			body:     map[string]any{"name": "Ada", "items": []map[string]any{{"product_id": poster.ID}}},
			wantCode: "validation_error",
			wantMsg:  "email is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, http.MethodPost, "/api/orders", jsonBody(t, tt.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := parseResponse[ErrorResponse](t, rec.Body)
			assert.Equal(t, tt.wantCode, resp.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, resp.Error)
			}
		})
	}
	assert.Empty(t, s.orders)
}

func TestCreateOrder_InvalidJSON(t *testing.T) {
	h, _ := newTestHandler()

	rec := serve(h, http.MethodPost, "/api/orders", strings.NewReader("{not json"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder(t *testing.T) {
	h, s := newTestHandler()
	placed := placeTestOrder(t, h, s)

	rec := serve(h, http.MethodGet, "/api/orders/"+placed.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, placed.ID, parseResponse[OrderResponse](t, rec.Body).ID)

	rec = serve(h, http.MethodGet, "/api/orders/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "order_not_found", parseResponse[ErrorResponse](t, rec.Body).Code)
}

// =============================================================================
// Checkout Tests
// =============================================================================

func TestCreateCheckoutSession_Flow(t *testing.T) {
	h, s := newTestHandler()
	placed := placeTestOrder(t, h, s)

	rec := serve(h, http.MethodPost, "/api/checkout/session", jsonBody(t, CreateCheckoutSessionRequest{OrderID: placed.ID}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	session := parseResponse[CheckoutSessionResponse](t, rec.Body)
	assert.Equal(t, placed.ID, session.OrderID)
	assert.Equal(t, "mock", session.PaymentProvider)
	assert.Equal(t, "https://example.com/checkout/mock/"+placed.ID, session.CheckoutURL)
	assert.Equal(t, "created", session.Status)
	assert.Equal(t, domain.OrderPendingPayment, s.orders[placed.ID].Status)

	// Repeating the request returns the open session.
	rec = serve(h, http.MethodPost, "/api/checkout/session", jsonBody(t, CreateCheckoutSessionRequest{OrderID: placed.ID}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, session.ID, parseResponse[CheckoutSessionResponse](t, rec.Body).ID)
	assert.Len(t, s.sessions, 1)

	rec = serve(h, http.MethodGet, "/api/checkout/session/"+session.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Confirming the mock payment marks the order paid.
	rec = serve(h, http.MethodPost, "/api/checkout/session/"+session.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "completed", parseResponse[CheckoutSessionResponse](t, rec.Body).Status)
	assert.Equal(t, domain.OrderPaid, s.orders[placed.ID].Status)

	// A paid order cannot go back to pending_payment.
	rec = serve(h, http.MethodPost, "/api/checkout/session", jsonBody(t, CreateCheckoutSessionRequest{OrderID: placed.ID}))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "invalid_transition", parseResponse[ErrorResponse](t, rec.Body).Code)
	assert.Equal(t, domain.OrderPaid, s.orders[placed.ID].Status)

	rec = serve(h, http.MethodPost, "/api/orders/"+placed.ID+"/fulfill", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fulfilled", parseResponse[OrderResponse](t, rec.Body).Status)

	rec = serve(h, http.MethodPost, "/api/orders/"+placed.ID+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateCheckoutSession_OrderNotFound(t *testing.T) {
	h, s := newTestHandler()

	rec := serve(h, http.MethodPost, "/api/checkout/session", jsonBody(t, CreateCheckoutSessionRequest{OrderID: "missing"}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "order_not_found", parseResponse[ErrorResponse](t, rec.Body).Code)
	assert.Empty(t, s.sessions)
}

func TestCreateCheckoutSession_MissingOrderID(t *testing.T) {
	h, _ := newTestHandler()

	rec := serve(h, http.MethodPost, "/api/checkout/session", jsonBody(t, map[string]any{}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "order_id is required", parseResponse[ErrorResponse](t, rec.Body).Error)
}

func TestCompleteCheckoutSession_NotFound(t *testing.T) {
	h, _ := newTestHandler()

	rec := serve(h, http.MethodPost, "/api/checkout/session/missing/complete", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "checkout_session_not_found", parseResponse[ErrorResponse](t, rec.Body).Code)
}

func TestCancelOrder(t *testing.T) {
	h, s := newTestHandler()
	placed := placeTestOrder(t, h, s)

	rec := serve(h, http.MethodPost, "/api/orders/"+placed.ID+"/cancel", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cancelled", parseResponse[OrderResponse](t, rec.Body).Status)

	// A cancelled order cannot start a checkout.
	rec = serve(h, http.MethodPost, "/api/checkout/session", jsonBody(t, CreateCheckoutSessionRequest{OrderID: placed.ID}))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestFulfillOrder_NotPaid(t *testing.T) {
	h, s := newTestHandler()
	placed := placeTestOrder(t, h, s)

	rec := serve(h, http.MethodPost, "/api/orders/"+placed.ID+"/fulfill", nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, parseResponse[ErrorResponse](t, rec.Body).Error, "order is not paid")
}
