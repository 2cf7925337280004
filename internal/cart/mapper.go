package cart

import (
	"storefront-be/internal/money"

	"github.com/shopspring/decimal"
)

type ItemView struct {
	Item
	FormattedPrice     string `json:"formattedPrice"`
	FormattedLineTotal string `json:"formattedLineTotal"`
}

type WishlistItemView struct {
	WishlistItem
	FormattedPrice         string `json:"formattedPrice"`
	FormattedOriginalPrice string `json:"formattedOriginalPrice,omitempty"`
}

type View struct {
	Items             []ItemView         `json:"items"`
	Count             int                `json:"count"`
	Subtotal          decimal.Decimal    `json:"subtotal"`
	FormattedSubtotal string             `json:"formattedSubtotal"`
	Wishlist          []WishlistItemView `json:"wishlist"`
}

func ToView(s Session, f *money.Formatter) View {
	items := make([]ItemView, 0, s.Cart.Len())
	for _, it := range s.Cart.Items() {
		items = append(items, ItemView{
			Item:               it,
			FormattedPrice:     f.Format(it.Price),
			FormattedLineTotal: f.Format(it.LineTotal()),
		})
	}

	wishlist := make([]WishlistItemView, 0, s.Wishlist.Len())
	for _, it := range s.Wishlist.Items() {
		v := WishlistItemView{WishlistItem: it, FormattedPrice: f.Format(it.Price)}
		if it.OriginalPrice != nil {
			v.FormattedOriginalPrice = f.Format(*it.OriginalPrice)
		}
		wishlist = append(wishlist, v)
	}

	subtotal := s.Cart.Subtotal()
	return View{
		Items:             items,
		Count:             s.Cart.Count(),
		Subtotal:          subtotal,
		FormattedSubtotal: f.Format(subtotal),
		Wishlist:          wishlist,
	}
}
