package rest

import (
	"net/http"

	"storefront-be/internal/cart"
	"storefront-be/internal/metrics"

	"github.com/gin-gonic/gin"
)

type toggleResponse struct {
	InWishlist bool      `json:"inWishlist"`
	Session    cart.View `json:"session"`
}

func (h *Handler) GetCart(c *gin.Context) {
	sess, err := h.Cart.GetSession(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, cart.ToView(sess, h.Money))
}

func (h *Handler) AddCartItem(c *gin.Context) {
	var input cart.AddItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, ErrInvalidBody)
		return
	}

	sess, err := h.Cart.AddItem(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	h.Metrics.Inc(metrics.CartMutations)
	respondData(c, http.StatusOK, cart.ToView(sess, h.Money))
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	sess, err := h.Cart.RemoveItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	h.Metrics.Inc(metrics.CartMutations)
	respondData(c, http.StatusOK, cart.ToView(sess, h.Money))
}

func (h *Handler) ClearCart(c *gin.Context) {
	sess, err := h.Cart.Clear(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	h.Metrics.Inc(metrics.CartMutations)
	respondData(c, http.StatusOK, cart.ToView(sess, h.Money))
}

func (h *Handler) ToggleWishlist(c *gin.Context) {
	res, err := h.Cart.ToggleWishlist(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}

	h.Metrics.Inc(metrics.WishlistToggles)
	respondData(c, http.StatusOK, toggleResponse{
		InWishlist: res.InWishlist,
		Session:    cart.ToView(res.Session, h.Money),
	})
}
