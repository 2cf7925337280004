package rest

import (
	"errors"
	"net/http"

	"storefront-be/internal/cart"
	"storefront-be/internal/mail"
	"storefront-be/internal/nav"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/storage"
	"storefront-be/internal/user"

	"github.com/gin-gonic/gin"
)

var (
	// -- Authentication & Authorization --
	ErrUnauthenticated = errors.New("authentication required")
	ErrAdminRequired   = errors.New("admin access required")

	// -- Validation & Input --
	ErrInvalidBody  = errors.New("invalid request body")
	ErrInvalidQuery = errors.New("invalid query parameter")
	ErrInvalidForm  = errors.New("invalid form data")

	// -- Routing --
	ErrRouteNotFound = errors.New("route not found")
)

var statusTable = []struct {
	err    error
	status int
}{
	{ErrUnauthenticated, http.StatusUnauthorized},
	{cart.ErrUserNotAuthenticated, http.StatusUnauthorized},
	{order.ErrUnauthorized, http.StatusUnauthorized},
	{user.ErrInvalidCredentials, http.StatusUnauthorized},

	{ErrAdminRequired, http.StatusForbidden},
	{product.ErrForbidden, http.StatusForbidden},
	{order.ErrForbidden, http.StatusForbidden},
	{user.ErrForbidden, http.StatusForbidden},

	{ErrRouteNotFound, http.StatusNotFound},
	{product.ErrProductNotFound, http.StatusNotFound},
	{order.ErrOrderNotFound, http.StatusNotFound},
	{user.ErrUserNotFound, http.StatusNotFound},

	{user.ErrEmailExists, http.StatusConflict},
	{cart.ErrSessionConflict, http.StatusConflict},
	{cart.ErrInsufficientStock, http.StatusConflict},

	{storage.ErrUploadFailed, http.StatusBadGateway},

	{ErrInvalidBody, http.StatusBadRequest},
	{ErrInvalidQuery, http.StatusBadRequest},
	{ErrInvalidForm, http.StatusBadRequest},
	{product.ErrProductIDRequired, http.StatusBadRequest},
	{product.ErrInvalidProductID, http.StatusBadRequest},
	{product.ErrNameRequired, http.StatusBadRequest},
	{product.ErrCategoryRequired, http.StatusBadRequest},
	{product.ErrNegativePrice, http.StatusBadRequest},
	{product.ErrNegativeOriginalPrice, http.StatusBadRequest},
	{product.ErrNegativeStock, http.StatusBadRequest},
	{product.ErrInvalidVariant, http.StatusBadRequest},
	{product.ErrInvalidStatus, http.StatusBadRequest},
	{product.ErrNoFieldsToUpdate, http.StatusBadRequest},
	{order.ErrOrderIDRequired, http.StatusBadRequest},
	{order.ErrInvalidOrderID, http.StatusBadRequest},
	{order.ErrOwnerRequired, http.StatusBadRequest},
	{order.ErrInvalidStatus, http.StatusBadRequest},
	{cart.ErrInvalidQuantity, http.StatusBadRequest},
	{cart.ErrProductIDRequired, http.StatusBadRequest},
	{cart.ErrItemIDRequired, http.StatusBadRequest},
	{cart.ErrVariantNotFound, http.StatusBadRequest},
	{user.ErrInvalidEmail, http.StatusBadRequest},
	{user.ErrPasswordTooShort, http.StatusBadRequest},
	{storage.ErrFileRequired, http.StatusBadRequest},
	{storage.ErrNotImage, http.StatusBadRequest},
	{storage.ErrBucketRequired, http.StatusBadRequest},
	{mail.ErrRecipientRequired, http.StatusBadRequest},
	{mail.ErrInvalidRecipient, http.StatusBadRequest},
}

// StatusFor maps a service error to its HTTP status; unknown errors are 500.
func StatusFor(err error) int {
	for _, e := range statusTable {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

type errorResponse struct {
	Success  bool   `json:"success"`
	Error    string `json:"error"`
	Recovery string `json:"recovery"`
}

type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func respondError(c *gin.Context, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError && !known(err) {
		msg = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, errorResponse{
		Success:  false,
		Error:    msg,
		Recovery: nav.RecoveryFor(c.Request.URL.Path),
	})
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, dataResponse{Success: true, Data: data})
}

// known reports whether err is one of the sentinel failures the services
// return. Anything else is an unexpected error whose text stays in the logs.
func known(err error) bool {
	for _, e := range []error{
		product.ErrFailedGetProduct, product.ErrFailedListProducts,
		product.ErrFailedSaveProduct, product.ErrFailedDeleteProduct,
		order.ErrFailedGetOrder, order.ErrFailedListOrders, order.ErrTotalUnavailable,
		cart.ErrFailedGetSession, cart.ErrFailedSaveSession, cart.ErrFailedClearCart,
		user.ErrFailedCreateUser, user.ErrFailedListUsers,
		mail.ErrSendFailed, mail.ErrNotConfigured,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
