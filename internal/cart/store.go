package cart

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Item is a cart line. ID is ItemID(ProductID, Variant).
type Item struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Variant   string          `json:"variant,omitempty"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
	Stock     int             `json:"stock"`
	Category  string          `json:"category"`
}

func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// WishlistItem is keyed by product id.
type WishlistItem struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Image         string           `json:"image"`
	Category      string           `json:"category"`
}

func ItemID(productID, variant string) string {
	if variant == "" {
		return productID
	}
	return productID + ":" + variant
}

// Cart is an immutable snapshot. Mutators return a new Cart and leave the
// receiver untouched.
type Cart struct {
	items []Item
}

func NewCart(items ...Item) Cart {
	return Cart{items: append([]Item(nil), items...)}
}

func (c Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c Cart) Len() int { return len(c.items) }

func (c Cart) Get(id string) (Item, bool) {
	for _, it := range c.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// AddItem merges into an existing line with the same id, keeping its position,
// or appends a new line. A positive Stock caps the resulting quantity.
func (c Cart) AddItem(item Item) (Cart, error) {
	if item.Quantity < 1 {
		return c, ErrInvalidQuantity
	}
	if item.ID == "" {
		item.ID = ItemID(item.ProductID, item.Variant)
	}

	next := c.Items()
	for i := range next {
		if next[i].ID != item.ID {
			continue
		}
		qty := next[i].Quantity + item.Quantity
		stock := next[i].Stock
		if item.Stock > 0 {
			stock = item.Stock
		}
		if stock > 0 && qty > stock {
			return c, ErrInsufficientStock
		}
		next[i].Quantity = qty
		next[i].Stock = stock
		return Cart{items: next}, nil
	}

	if item.Stock > 0 && item.Quantity > item.Stock {
		return c, ErrInsufficientStock
	}
	return Cart{items: append(next, item)}, nil
}

// RemoveItem is a no-op when id is not in the cart.
func (c Cart) RemoveItem(id string) Cart {
	next := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		if it.ID != id {
			next = append(next, it)
		}
	}
	return Cart{items: next}
}

func (c Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// Count is the number of units, not lines.
func (c Cart) Count() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

func (c Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Items())
}

func (c *Cart) UnmarshalJSON(data []byte) error {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	c.items = items
	return nil
}

type Wishlist struct {
	items []WishlistItem
}

func NewWishlist(items ...WishlistItem) Wishlist {
	return Wishlist{items: append([]WishlistItem(nil), items...)}
}

func (w Wishlist) Items() []WishlistItem {
	out := make([]WishlistItem, len(w.items))
	copy(out, w.items)
	return out
}

func (w Wishlist) Len() int { return len(w.items) }

func (w Wishlist) Contains(productID string) bool {
	for _, it := range w.items {
		if it.ID == productID {
			return true
		}
	}
	return false
}

// Toggle adds snapshot when productID is absent and removes it when present.
// The bool is the membership after the toggle.
func (w Wishlist) Toggle(productID string, snapshot WishlistItem) (Wishlist, bool) {
	if w.Contains(productID) {
		next := make([]WishlistItem, 0, len(w.items))
		for _, it := range w.items {
			if it.ID != productID {
				next = append(next, it)
			}
		}
		return Wishlist{items: next}, false
	}

	snapshot.ID = productID
	return Wishlist{items: append(w.Items(), snapshot)}, true
}

func (w Wishlist) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Items())
}

func (w *Wishlist) UnmarshalJSON(data []byte) error {
	var items []WishlistItem
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	w.items = items
	return nil
}

// Session is everything kept for one signed-in user.
type Session struct {
	Cart     Cart     `json:"cart"`
	Wishlist Wishlist `json:"wishlist"`
}
