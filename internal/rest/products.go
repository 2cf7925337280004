package rest

import (
	"net/http"

	"storefront-be/internal/product"

	"github.com/gin-gonic/gin"
)

type productList struct {
	Items      []product.View `json:"items"`
	TotalCount int            `json:"totalCount"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
}

func (h *Handler) listProducts(c *gin.Context, includeDisabled bool) {
	limit, page, err := paging(c)
	if err != nil {
		respondError(c, err)
		return
	}

	res, err := h.Products.List(c.Request.Context(), product.ListOptions{
		Category:        c.Query("category"),
		Search:          c.Query("search"),
		IncludeDisabled: includeDisabled,
		Limit:           limit,
		Page:            page,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, productList{
		Items:      product.ToViews(res.Items, h.Money),
		TotalCount: res.TotalCount,
		Page:       res.Page,
		Limit:      res.Limit,
	})
}

func (h *Handler) ListProducts(c *gin.Context) {
	h.listProducts(c, false)
}

func (h *Handler) AdminListProducts(c *gin.Context) {
	h.listProducts(c, true)
}

// GetProduct serves the product detail page. The envelope's own success flag
// decides the response; a missing product is a 404 failure.
func (h *Handler) GetProduct(c *gin.Context) {
	res := h.Products.FetchByID(c.Request.Context(), c.Param("id"))
	p, err := res.Unwrap()
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, product.ToView(p, h.Money))
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var input product.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, ErrInvalidBody)
		return
	}

	p, err := h.Products.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, product.ToView(p, h.Money))
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var input product.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, ErrInvalidBody)
		return
	}

	p, err := h.Products.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, product.ToView(p, h.Money))
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.Products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
