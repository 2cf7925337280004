package rest

import (
	"net/http"

	"storefront-be/internal/auth"
	"storefront-be/internal/user"
	"storefront-be/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequireAuth rejects requests that reached the router without a user in context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIDFromContext(c.Request.Context()); !ok {
			respondError(c, ErrUnauthenticated)
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if _, ok := utils.GetUserIDFromContext(ctx); !ok {
			respondError(c, ErrUnauthenticated)
			return
		}
		if !utils.IsAdmin(ctx) {
			respondError(c, ErrAdminRequired)
			return
		}
		c.Next()
	}
}

func (h *Handler) Register(c *gin.Context) {
	var input user.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, ErrInvalidBody)
		return
	}

	res, err := h.Users.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	auth.SetAccessTokenCookie(c.Writer, res.Token, user.TokenTTL, h.Settings.CookieSecure)
	respondData(c, http.StatusCreated, res)
}

func (h *Handler) Login(c *gin.Context) {
	var input user.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, ErrInvalidBody)
		return
	}

	res, err := h.Users.Login(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	auth.SetAccessTokenCookie(c.Writer, res.Token, user.TokenTTL, h.Settings.CookieSecure)
	respondData(c, http.StatusOK, res)
}

func (h *Handler) Logout(c *gin.Context) {
	auth.ClearAccessTokenCookie(c.Writer, h.Settings.CookieSecure)
	c.Status(http.StatusNoContent)
}

func (h *Handler) Me(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	u, err := h.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, u)
}
