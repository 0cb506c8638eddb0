// Package orders places orders and drives them through checkout.
// It connects the pricing engine and the order lifecycle to the store.
package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/artpar/storefront/internal/core/domain"
	"github.com/artpar/storefront/internal/core/pricing"
	"github.com/artpar/storefront/internal/core/validation"
	"github.com/artpar/storefront/internal/shell/store"
)

// =============================================================================
// Errors
// =============================================================================

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrSessionNotFound = errors.New("checkout session not found")
)

// ValidationError reports a rejected request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// =============================================================================
// Service
// =============================================================================

// Config configures the orders service.
type Config struct {
	Policy          pricing.Policy
	Currency        string
	CheckoutBaseURL string
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Policy:          pricing.DefaultPolicy(),
		Currency:        domain.DefaultCurrency,
		CheckoutBaseURL: domain.DefaultCheckoutBaseURL,
	}
}

// Service places orders and runs lifecycle transitions. Every transition
// runs in a single store transaction.
type Service struct {
	store  store.Store
	config Config
	logger *slog.Logger
}

// NewService creates a new orders service.
func NewService(s store.Store, config Config, logger *slog.Logger) *Service {
	if config.Currency == "" {
		config.Currency = domain.DefaultCurrency
	}
	if config.CheckoutBaseURL == "" {
		config.CheckoutBaseURL = domain.DefaultCheckoutBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		store:  s,
		config: config,
		logger: logger.With("component", "orders"),
	}
}

// =============================================================================
// Order Placement
// =============================================================================

// PlaceOrderInput is a buyer's cart plus contact and delivery details.
type PlaceOrderInput struct {
	Email          string
	Name           string
	Notes          string
	DeliveryMethod domain.DeliveryMethod
	Address        *domain.Address
	Items          []domain.CartItem
}

// PlaceOrder prices the cart against the current catalog and stores a new
// order in the created state.
//
// Returns *ValidationError for malformed input, pricing.ErrEmptyCart for an
// empty cart and *pricing.InvalidReferenceError for an unknown product.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	if field, msg := validation.ValidateCreateOrderFields(in.Email, in.Name, string(in.DeliveryMethod), in.Items); field != "" {
		return nil, &ValidationError{Field: field, Message: msg}
	}

	method := in.DeliveryMethod
	if method == "" {
		method = domain.DeliveryDigital
	}

	catalog, err := s.store.FindProductsByIDs(ctx, pricing.ProductIDs(in.Items))
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	result, err := s.config.Policy.Compute(in.Items, catalog, method)
	if err != nil {
		return nil, err
	}

	order, err := domain.NewOrder(domain.NewOrderParams{
		Email:          in.Email,
		Name:           in.Name,
		Notes:          in.Notes,
		DeliveryMethod: method,
		Address:        in.Address,
		Items:          in.Items,
		Currency:       s.config.Currency,
	}, result)
	if err != nil {
		return nil, &ValidationError{Field: "order", Message: err.Error()}
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.logger.Info("order placed",
		"order_id", order.ID,
		"items", len(order.Items),
		"delivery_method", order.DeliveryMethod,
		"total", order.Total.StringFixed(2),
	)
	return order, nil
}

// GetOrder returns the order with the given ID.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, orderLookupError(id, err)
	}
	return order, nil
}

// GetCheckoutSession returns the checkout session with the given ID.
func (s *Service) GetCheckoutSession(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	session, err := s.store.GetCheckoutSession(ctx, id)
	if err != nil {
		return nil, sessionLookupError(id, err)
	}
	return session, nil
}

// =============================================================================
// Checkout
// =============================================================================

// CreateCheckoutSession starts a mock checkout for the order.
//
// A created order gets a new session and moves to pending_payment. A
// pending_payment order gets its open session back (reused is true), or a new
// session if it has none. Paid, fulfilled and cancelled orders are rejected
// with domain.ErrInvalidTransition. The session insert and the status update
// commit together.
func (s *Service) CreateCheckoutSession(ctx context.Context, orderID string) (session *domain.CheckoutSession, reused bool, err error) {
	err = s.store.WithTx(ctx, func(tx store.Store) error {
		order, err := tx.GetOrder(ctx, orderID)
		if err != nil {
			return orderLookupError(orderID, err)
		}

		open, err := tx.GetOpenCheckoutSession(ctx, orderID)
		if err != nil && !store.IsNotFound(err) {
			return err
		}

		plan, err := domain.PlanCheckout(*order, open)
		if err != nil {
			return err
		}

		if plan.Action == domain.CheckoutReuse {
			session, reused = plan.Session, true
			return nil
		}

		created := domain.NewCheckoutSession(order.ID, s.config.CheckoutBaseURL)
		if err := tx.CreateCheckoutSession(ctx, created); err != nil {
			return fmt.Errorf("failed to save checkout session: %w", err)
		}

		if plan.Action == domain.CheckoutCreateAndAdvance {
			if err := order.Transition(domain.OrderPendingPayment); err != nil {
				return err
			}
			if err := tx.UpdateOrderStatus(ctx, order.ID, order.Status, order.UpdatedAt); err != nil {
				return fmt.Errorf("failed to update order status: %w", err)
			}
		}

		session = created
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	s.logger.Info("checkout session ready",
		"order_id", orderID,
		"session_id", session.ID,
		"reused", reused,
	)
	return session, reused, nil
}

// CompleteCheckoutSession confirms the mock payment: the session becomes
// completed and its order becomes paid. Completing a completed session
// returns it unchanged.
func (s *Service) CompleteCheckoutSession(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	var session *domain.CheckoutSession

	err := s.store.WithTx(ctx, func(tx store.Store) error {
		var err error
		session, err = tx.GetCheckoutSession(ctx, sessionID)
		if err != nil {
			return sessionLookupError(sessionID, err)
		}
		if !session.IsOpen() {
			return nil
		}

		order, err := tx.GetOrder(ctx, session.OrderID)
		if err != nil {
			return orderLookupError(session.OrderID, err)
		}
		if err := order.Transition(domain.OrderPaid); err != nil {
			return err
		}

		session.Complete()
		if err := tx.UpdateCheckoutSessionStatus(ctx, session.ID, session.Status, session.UpdatedAt); err != nil {
			return fmt.Errorf("failed to update checkout session: %w", err)
		}
		if err := tx.UpdateOrderStatus(ctx, order.ID, order.Status, order.UpdatedAt); err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("checkout session completed", "session_id", session.ID, "order_id", session.OrderID)
	return session, nil
}

// =============================================================================
// Order Transitions
// =============================================================================

// CancelOrder cancels any order that is not fulfilled or already cancelled.
func (s *Service) CancelOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.transition(ctx, orderID, domain.OrderCancelled, validation.CanCancelOrder)
}

// FulfillOrder marks a paid order as fulfilled.
func (s *Service) FulfillOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.transition(ctx, orderID, domain.OrderFulfilled, validation.CanFulfillOrder)
}

func (s *Service) transition(ctx context.Context, orderID string, to domain.OrderStatus, check func(domain.OrderStatus) (bool, string)) (*domain.Order, error) {
	var order *domain.Order

	err := s.store.WithTx(ctx, func(tx store.Store) error {
		var err error
		order, err = tx.GetOrder(ctx, orderID)
		if err != nil {
			return orderLookupError(orderID, err)
		}

		if allowed, reason := check(order.Status); !allowed {
			return fmt.Errorf("%w: %s", domain.ErrInvalidTransition, reason)
		}

		from := order.Status
		if err := order.Transition(to); err != nil {
			return err
		}
		if err := tx.UpdateOrderStatus(ctx, order.ID, order.Status, order.UpdatedAt); err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		s.logger.Info("order status changed", "order_id", order.ID, "from", from, "to", to)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// =============================================================================
// Helpers
// =============================================================================

func orderLookupError(id string, err error) error {
	if store.IsNotFound(err) {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	return fmt.Errorf("failed to load order: %w", err)
}

func sessionLookupError(id string, err error) error {
	if store.IsNotFound(err) {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return fmt.Errorf("failed to load checkout session: %w", err)
}
