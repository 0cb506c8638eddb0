package api

import (
	"net/http"

	"github.com/artpar/storefront/internal/core/domain"
	"github.com/artpar/storefront/internal/core/validation"
	"github.com/artpar/storefront/internal/shell/orders"
	"github.com/go-chi/chi/v5"
)

// =============================================================================
// Order Handlers
// =============================================================================

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error(), "validation_error")
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), req.toInput())
	if err != nil {
		h.writeServiceError(w, err, "create order")
		return
	}

	h.writeJSON(w, http.StatusCreated, orderToResponse(order))
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err, "get order")
		return
	}

	h.writeJSON(w, http.StatusOK, orderToResponse(order))
}

func (h *Handler) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.CancelOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err, "cancel order")
		return
	}

	h.writeJSON(w, http.StatusOK, orderToResponse(order))
}

func (h *Handler) handleFulfillOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.FulfillOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err, "fulfill order")
		return
	}

	h.writeJSON(w, http.StatusOK, orderToResponse(order))
}

// =============================================================================
// Checkout Handlers
// =============================================================================

func (h *Handler) handleCreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req CreateCheckoutSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error(), "validation_error")
		return
	}

	if field, msg := validation.ValidateCheckoutSessionFields(req.OrderID); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	session, reused, err := h.orders.CreateCheckoutSession(r.Context(), req.OrderID)
	if err != nil {
		h.writeServiceError(w, err, "create checkout session")
		return
	}

	status := http.StatusCreated
	if reused {
		status = http.StatusOK
	}
	h.writeJSON(w, status, sessionToResponse(session))
}

func (h *Handler) handleGetCheckoutSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.orders.GetCheckoutSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err, "get checkout session")
		return
	}

	h.writeJSON(w, http.StatusOK, sessionToResponse(session))
}

func (h *Handler) handleCompleteCheckoutSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.orders.CompleteCheckoutSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err, "complete checkout session")
		return
	}

	h.writeJSON(w, http.StatusOK, sessionToResponse(session))
}

// =============================================================================
// Conversion
// =============================================================================

func (req CreateOrderRequest) toInput() orders.PlaceOrderInput {
	in := orders.PlaceOrderInput{
		Email:          req.Email,
		Name:           req.Name,
		Notes:          req.Notes,
		DeliveryMethod: domain.DeliveryMethod(req.DeliveryMethod),
		Items:          make([]domain.CartItem, 0, len(req.Items)),
	}
	if req.Address != nil {
		in.Address = &domain.Address{
			Line1:      req.Address.Line1,
			City:       req.Address.City,
			State:      req.Address.State,
			PostalCode: req.Address.PostalCode,
		}
	}
	for _, item := range req.Items {
		quantity := 1
		if item.Quantity != nil {
			quantity = *item.Quantity
		}
		in.Items = append(in.Items, domain.CartItem{ProductID: item.ProductID, Quantity: quantity})
	}
	return in
}

func orderToResponse(o *domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:             o.ID,
		Email:          o.Email,
		Name:           o.Name,
		DeliveryMethod: string(o.DeliveryMethod),
		Items:          make([]CartItemResponse, 0, len(o.Items)),
		Subtotal:       o.Subtotal.InexactFloat64(),
		DeliveryFee:    o.DeliveryFee.InexactFloat64(),
		Total:          o.Total.InexactFloat64(),
		Currency:       o.Currency,
		Status:         string(o.Status),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.Notes != "" {
		notes := o.Notes
		resp.Notes = &notes
	}
	if o.Address != nil {
		resp.Address = &AddressResponse{
			Line1:      o.Address.Line1,
			City:       o.Address.City,
			State:      o.Address.State,
			PostalCode: o.Address.PostalCode,
		}
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, CartItemResponse{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return resp
}

func sessionToResponse(s *domain.CheckoutSession) CheckoutSessionResponse {
	return CheckoutSessionResponse{
		ID:              s.ID,
		OrderID:         s.OrderID,
		PaymentProvider: s.PaymentProvider,
		CheckoutURL:     s.CheckoutURL,
		Status:          string(s.Status),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
