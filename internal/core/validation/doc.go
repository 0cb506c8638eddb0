// Package validation provides pure validation functions for API handlers.
//
// This package contains the functional core logic for validating API requests
// and checking business rules. All functions are pure (no I/O, no side effects).
//
// # Functions
//
//   - ValidateCreateOrderFields: Validate required fields for order placement
//   - ValidateCreateProductFields: Validate required fields for product creation
//   - ValidateCheckoutSessionFields: Validate a checkout session request
//   - CanCancelOrder, CanFulfillOrder: Check lifecycle operations against order status
//
// # Usage
//
// The API handlers use these functions to validate requests before processing:
//
//	if field, msg := validation.ValidateCreateOrderFields(req.Email, req.Name, req.DeliveryMethod, items); field != "" {
//	    // Return 400 Bad Request with msg
//	}
package validation
