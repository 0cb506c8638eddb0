package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/artpar/storefront/internal/core/domain"
	"github.com/artpar/storefront/internal/core/validation"
	"github.com/artpar/storefront/internal/shell/store"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Category Handlers
// =============================================================================

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("failed to list categories", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list categories", "internal_error")
		return
	}

	resp := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, CategoryResponse{ID: c.ID, Name: c.Name, Slug: string(c.Slug)})
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Product Handlers
// =============================================================================

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := store.ProductFilter{
		Category: domain.CategorySlug(query.Get("category")),
		Query:    strings.TrimSpace(query.Get("q")),
	}
	if limit := query.Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			filter.Limit = l
		}
	}

	products, err := h.store.ListProducts(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list products", "internal_error")
		return
	}

	resp := make([]ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, productToResponse(&products[i]))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.store.GetProduct(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "product not found", "product_not_found")
			return
		}
		h.logger.Error("failed to get product", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get product", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, productToResponse(product))
}

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error(), "validation_error")
		return
	}

	if req.Price == nil {
		h.writeError(w, http.StatusBadRequest, "price is required", "validation_error")
		return
	}

	// Validate required fields using core validation
	if field, msg := validation.ValidateCreateProductFields(req.Title, req.Description, *req.Price, req.CategorySlug); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	product, err := domain.NewProduct(req.Title, req.Description, decimal.NewFromFloat(*req.Price), domain.CategorySlug(req.CategorySlug))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), "validation_error")
		return
	}
	product.Currency = h.config.Currency
	if req.Currency != "" {
		product.Currency = req.Currency
	}
	product.ImageURL = req.ImageURL

	if err := h.store.CreateProduct(r.Context(), product); err != nil {
		h.logger.Error("failed to create product", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create product", "internal_error")
		return
	}

	h.logger.Info("product created", "product_id", product.ID, "category", product.Category)

	h.writeJSON(w, http.StatusCreated, productToResponse(product))
}

// =============================================================================
// Conversion
// =============================================================================

func productToResponse(p *domain.Product) ProductResponse {
	resp := ProductResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price.InexactFloat64(),
		Currency:     p.Currency,
		CategorySlug: string(p.Category),
		CreatedAt:    p.CreatedAt,
	}
	if p.ImageURL != "" {
		imageURL := p.ImageURL
		resp.ImageURL = &imageURL
	}
	return resp
}
