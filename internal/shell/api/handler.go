// Package api provides HTTP handlers for the Storefront API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/artpar/storefront/internal/core/domain"
	"github.com/artpar/storefront/internal/core/pricing"
	"github.com/artpar/storefront/internal/shell/api/openapi"
	"github.com/artpar/storefront/internal/shell/orders"
	"github.com/artpar/storefront/internal/shell/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// =============================================================================
// Handler
// =============================================================================

// Config configures the API handler.
type Config struct {
	// AllowedOrigins lists the CORS origins; empty means "*".
	AllowedOrigins []string

	// Currency labels products created without one.
	Currency string
}

// Handler provides HTTP handlers for the API.
type Handler struct {
	store  store.Store
	orders *orders.Service
	docs   *openapi.Generator
	config Config
	logger *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, svc *orders.Service, cfg Config, l *slog.Logger) *Handler {
	if l == nil {
		l = slog.Default()
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	if cfg.Currency == "" {
		cfg.Currency = domain.DefaultCurrency
	}
	return &Handler{
		store:  s,
		orders: svc,
		docs:   newDocs(),
		config: cfg,
		logger: l,
	}
}

// Routes returns the router with all routes configured.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(h.jsonContentType)
	r.Use(h.requestIDHeader)

	// Health endpoints
	r.Get("/health", h.handleHealth)
	r.Get("/ready", h.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", h.handleRoot)
		r.Get("/openapi.json", h.docs.Handler())

		r.Get("/categories", h.handleListCategories)

		// Product routes
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.handleListProducts)
			r.Post("/", h.handleCreateProduct)
			r.Get("/{id}", h.handleGetProduct)
		})

		// Order routes
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.handleCreateOrder)
			r.Get("/{id}", h.handleGetOrder)
			r.Post("/{id}/cancel", h.handleCancelOrder)
			r.Post("/{id}/fulfill", h.handleFulfillOrder)
		})

		// Checkout routes
		r.Route("/checkout/session", func(r chi.Router) {
			r.Post("/", h.handleCreateCheckoutSession)
			r.Get("/{id}", h.handleGetCheckoutSession)
			r.Post("/{id}/complete", h.handleCompleteCheckoutSession)
		})
	})

	return r
}

// =============================================================================
// Middleware
// =============================================================================

// jsonContentType sets Content-Type header to application/json.
func (h *Handler) jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// requestIDHeader copies the request ID to the response header.
func (h *Handler) requestIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			w.Header().Set("X-Request-ID", reqID)
		}
		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// Health Handlers
// =============================================================================

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("readiness check failed", "check", "database", "error", err)
		checks["database"] = "failed"
		h.writeJSON(w, http.StatusServiceUnavailable, ReadyResponse{
			Status: "not_ready",
			Checks: checks,
		})
		return
	}
	checks["database"] = "ok"

	h.writeJSON(w, http.StatusOK, ReadyResponse{
		Status: "ready",
		Checks: checks,
	})
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, MessageResponse{Message: "Hello World"})
}

// =============================================================================
// Helpers
// =============================================================================

// decodeJSON decodes a request body, rejecting unknown fields and trailing data.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode JSON", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message, code string) {
	h.writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// writeServiceError maps order and pricing errors to HTTP responses.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, op string) {
	var validationErr *orders.ValidationError

	switch {
	case errors.As(err, &validationErr):
		h.writeError(w, http.StatusBadRequest, validationErr.Message, "validation_error")
	case errors.Is(err, pricing.ErrEmptyCart):
		h.writeError(w, http.StatusBadRequest, "Cart is empty", "empty_cart")
	case errors.Is(err, pricing.ErrInvalidReference):
		h.writeError(w, http.StatusBadRequest, err.Error(), "invalid_product")
	case errors.Is(err, orders.ErrOrderNotFound):
		h.writeError(w, http.StatusNotFound, "order not found", "order_not_found")
	case errors.Is(err, orders.ErrSessionNotFound):
		h.writeError(w, http.StatusNotFound, "checkout session not found", "checkout_session_not_found")
	case errors.Is(err, domain.ErrInvalidTransition):
		h.writeError(w, http.StatusConflict, err.Error(), "invalid_transition")
	default:
		h.logger.Error("request failed", "op", op, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to "+op, "internal_error")
	}
}

// isNotFound checks if an error is a not found error.
func isNotFound(err error) bool {
	var storeErr *store.StoreError
	if errors.As(err, &storeErr) {
		return errors.Is(storeErr.Unwrap(), store.ErrNotFound)
	}
	return false
}
