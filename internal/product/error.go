package product

import "errors"

var (
	// -- Authorization --
	ErrForbidden = errors.New("admin access required")

	// -- Validation & Input --
	ErrProductIDRequired     = errors.New("product id is required")
	ErrInvalidProductID      = errors.New("invalid product id")
	ErrNameRequired          = errors.New("name cannot be empty")
	ErrCategoryRequired      = errors.New("category cannot be empty")
	ErrNegativePrice         = errors.New("price must not be negative")
	ErrNegativeOriginalPrice = errors.New("original price must not be negative")
	ErrNegativeStock         = errors.New("stock cannot be negative")
	ErrInvalidVariant        = errors.New("variant id and name are required")
	ErrInvalidStatus         = errors.New("invalid product status")
	ErrNoFieldsToUpdate      = errors.New("no fields to update")

	// -- Resource State --
	ErrProductNotFound = errors.New("product not found")

	// -- Database & Operation Failures --
	ErrFailedGetProduct    = errors.New("failed to get product")
	ErrFailedListProducts  = errors.New("failed to list products")
	ErrFailedSaveProduct   = errors.New("failed to save product")
	ErrFailedDeleteProduct = errors.New("failed to delete product")
)
