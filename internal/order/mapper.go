package order

import (
	"time"

	"storefront-be/internal/money"

	"github.com/shopspring/decimal"
)

type LineItemView struct {
	ProductID          string `json:"productId"`
	Name               string `json:"name"`
	Image              string `json:"image,omitempty"`
	Quantity           int    `json:"quantity"`
	FormattedUnitPrice string `json:"formattedUnitPrice"`
	FormattedLineTotal string `json:"formattedLineTotal"`
}

// View is one row of the orders table.
type View struct {
	ID             string           `json:"id"`
	OrderNumber    string           `json:"orderNumber"`
	UserID         uint             `json:"userId"`
	CreatedAt      string           `json:"createdAt"`
	ItemCount      int              `json:"itemCount"`
	Items          []LineItemView   `json:"items"`
	Total          *decimal.Decimal `json:"total,omitempty"`
	FormattedTotal string           `json:"formattedTotal,omitempty"`
	TotalAvailable bool             `json:"totalAvailable"`
	Status         Badge            `json:"status"`
	Payment        Badge            `json:"payment"`
}

func ToView(o *Order, f *money.Formatter) View {
	items := make([]LineItemView, 0, len(o.Items))
	count := 0
	for _, li := range o.Items {
		count += li.Quantity
		items = append(items, LineItemView{
			ProductID:          li.ProductID,
			Name:               li.Name,
			Image:              li.Image,
			Quantity:           li.Quantity,
			FormattedUnitPrice: f.Format(li.UnitPrice),
			FormattedLineTotal: f.Format(li.Contribution()),
		})
	}

	view := View{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
		ItemCount:   count,
		Items:       items,
		Status:      BadgeFor(o.Status),
		Payment:     PaymentBadgeFor(o.PaymentStatus),
	}

	if total, err := ResolveTotal(o); err == nil {
		view.Total = &total
		view.FormattedTotal = f.Format(total)
		view.TotalAvailable = true
	}

	return view
}

func ToViews(orders []*Order, f *money.Formatter) []View {
	out := make([]View, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToView(o, f))
	}
	return out
}
