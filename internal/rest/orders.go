package rest

import (
	"net/http"

	"storefront-be/internal/order"
	"storefront-be/internal/utils"

	"github.com/gin-gonic/gin"
)

// MyOrders lists the caller's own orders, newest first.
func (h *Handler) MyOrders(c *gin.Context) {
	ctx := c.Request.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)

	orders, err := h.Orders.FetchByOwner(ctx, userID).Unwrap()
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]order.View, 0, len(*orders))
	for i := range *orders {
		views = append(views, order.ToView(&(*orders)[i], h.Money))
	}
	respondData(c, http.StatusOK, views)
}

// GetOrder serves both the shopper and admin detail pages; ownership is
// checked by the order service.
func (h *Handler) GetOrder(c *gin.Context) {
	o, err := h.Orders.FetchByID(c.Request.Context(), c.Param("id")).Unwrap()
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, order.ToView(o, h.Money))
}

func (h *Handler) AdminListOrders(c *gin.Context) {
	limit, page, err := paging(c)
	if err != nil {
		respondError(c, err)
		return
	}

	opts := order.ListOptions{Status: c.Query("status"), Limit: limit, Page: page}
	orders, total, err := h.Orders.List(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}

	limit, page, _ = utils.Paginate(limit, page)
	respondData(c, http.StatusOK, order.ListResult{
		Items:      order.ToViews(orders, h.Money),
		TotalCount: total,
		Page:       page,
		Limit:      limit,
	})
}
