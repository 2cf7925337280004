package cart

import "errors"

var (
	// -- Authentication/Authorization --
	ErrUserNotAuthenticated = errors.New("user not authenticated")

	// -- Validation & Input --
	ErrInvalidQuantity   = errors.New("invalid cart quantity")
	ErrProductIDRequired = errors.New("product id is required")
	ErrItemIDRequired    = errors.New("cart item id is required")

	// -- Resource State --
	ErrInsufficientStock = errors.New("quantity exceeds available stock")
	ErrVariantNotFound   = errors.New("variant not found")
	ErrSessionConflict   = errors.New("session changed concurrently, retry")

	// -- Storage Failures --
	ErrFailedGetSession  = errors.New("failed to get cart session")
	ErrFailedSaveSession = errors.New("failed to save cart session")
	ErrFailedClearCart   = errors.New("failed to clear cart")
)
