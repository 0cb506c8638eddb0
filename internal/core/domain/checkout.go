package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Checkout Session
// =============================================================================

type SessionStatus string

const (
	SessionCreated   SessionStatus = "created"
	SessionCompleted SessionStatus = "completed"
)

// MockPaymentProvider is the only payment provider. No external calls are made.
const MockPaymentProvider = "mock"

// DefaultCheckoutBaseURL is the prefix of mock checkout URLs.
const DefaultCheckoutBaseURL = "https://example.com/checkout/mock"

// CheckoutSession is a mocked record of a started payment flow.
type CheckoutSession struct {
	ID              string        `json:"id"`
	OrderID         string        `json:"order_id"`
	PaymentProvider string        `json:"payment_provider"`
	CheckoutURL     string        `json:"checkout_url"`
	Status          SessionStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// NewCheckoutSession creates an open session for the given order.
func NewCheckoutSession(orderID, baseURL string) *CheckoutSession {
	now := time.Now().UTC()
	return &CheckoutSession{
		ID:              uuid.New().String(),
		OrderID:         orderID,
		PaymentProvider: MockPaymentProvider,
		CheckoutURL:     MockCheckoutURL(baseURL, orderID),
		Status:          SessionCreated,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// MockCheckoutURL derives the deterministic checkout URL for an order.
//
// Example:
//
//	MockCheckoutURL("", "abc") // returns "https://example.com/checkout/mock/abc"
func MockCheckoutURL(baseURL, orderID string) string {
	if baseURL == "" {
		baseURL = DefaultCheckoutBaseURL
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(baseURL, "/"), orderID)
}

// IsOpen reports whether the session still awaits payment.
func (s *CheckoutSession) IsOpen() bool {
	return s.Status == SessionCreated
}

// Complete marks the session as completed. Completing twice is a no-op.
func (s *CheckoutSession) Complete() {
	if s.Status == SessionCompleted {
		return
	}
	s.Status = SessionCompleted
	s.UpdatedAt = time.Now().UTC()
}

// =============================================================================
// Checkout Planning
// =============================================================================

// CheckoutAction says what a checkout request must do.
type CheckoutAction int

const (
	// CheckoutCreateAndAdvance creates a session and moves the order to pending_payment.
	CheckoutCreateAndAdvance CheckoutAction = iota
	// CheckoutCreateOnly creates a session; the order is already pending_payment.
	CheckoutCreateOnly
	// CheckoutReuse returns the existing open session without writing.
	CheckoutReuse
)

// CheckoutPlan is the outcome of PlanCheckout.
type CheckoutPlan struct {
	Action  CheckoutAction
	Session *CheckoutSession // set when Action is CheckoutReuse
}

// PlanCheckout decides how a checkout request for the order is served.
// open is the order's open session, or nil if it has none.
//
// Orders that are paid, fulfilled or cancelled cannot start a checkout;
// their status never moves back to pending_payment.
func PlanCheckout(order Order, open *CheckoutSession) (CheckoutPlan, error) {
	switch order.Status {
	case OrderCreated:
		return CheckoutPlan{Action: CheckoutCreateAndAdvance}, nil
	case OrderPendingPayment:
		if open != nil && open.IsOpen() && open.OrderID == order.ID {
			return CheckoutPlan{Action: CheckoutReuse, Session: open}, nil
		}
		return CheckoutPlan{Action: CheckoutCreateOnly}, nil
	default:
		return CheckoutPlan{}, fmt.Errorf("%w: cannot start checkout for %s order", ErrInvalidTransition, order.Status)
	}
}
