package order

import "errors"

var (
	// -- Authentication & Authorization --
	ErrUnauthorized = errors.New("user not authenticated")
	ErrForbidden    = errors.New("admin access required")

	// -- Validation & Input --
	ErrOrderIDRequired = errors.New("order id is required")
	ErrInvalidOrderID  = errors.New("invalid order id")
	ErrOwnerRequired   = errors.New("owner id is required")
	ErrInvalidStatus   = errors.New("invalid order status")

	// -- Resource State --
	ErrOrderNotFound    = errors.New("order not found")
	ErrTotalUnavailable = errors.New("order total unavailable: no amounts and no line items")

	// -- Database & Operation Failures --
	ErrFailedGetOrder   = errors.New("failed to get order")
	ErrFailedListOrders = errors.New("failed to list orders")
)
