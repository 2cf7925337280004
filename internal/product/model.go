package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Variant struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Price *decimal.Decimal `json:"price,omitempty"`
	Stock int              `json:"stock"`
}

type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Category      string           `json:"category"`
	Description   *string          `json:"description,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Images        []string         `json:"images"`
	Variants      []Variant        `json:"variants,omitempty"`
	Stock         int              `json:"stock"`
	Status        string           `json:"status"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     *time.Time       `json:"updatedAt,omitempty"`
}

// HasDiscount is true only when an original price exists and is above the current price.
func (p *Product) HasDiscount() bool {
	return p.OriginalPrice != nil && p.OriginalPrice.GreaterThan(p.Price)
}

// DiscountPercent is the whole-number markdown from OriginalPrice, 0 without a discount.
func (p *Product) DiscountPercent() int {
	if !p.HasDiscount() || p.OriginalPrice.IsZero() {
		return 0
	}
	off := p.OriginalPrice.Sub(p.Price).Div(*p.OriginalPrice).Mul(decimal.NewFromInt(100))
	return int(off.Floor().IntPart())
}

func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

func (p *Product) Variant(id string) (*Variant, bool) {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i], true
		}
	}
	return nil, false
}

// PriceFor returns the variant price when the variant overrides it.
func (p *Product) PriceFor(variantID string) decimal.Decimal {
	if v, ok := p.Variant(variantID); ok && v.Price != nil {
		return *v.Price
	}
	return p.Price
}

func (p *Product) StockFor(variantID string) int {
	if v, ok := p.Variant(variantID); ok {
		return v.Stock
	}
	return p.Stock
}

// Validate checks the invariants every stored product must hold.
func (p *Product) Validate() error {
	switch {
	case p.Name == "":
		return ErrNameRequired
	case p.Category == "":
		return ErrCategoryRequired
	case p.Price.IsNegative():
		return ErrNegativePrice
	case p.OriginalPrice != nil && p.OriginalPrice.IsNegative():
		return ErrNegativeOriginalPrice
	case p.Stock < 0:
		return ErrNegativeStock
	}

	for _, v := range p.Variants {
		if v.ID == "" || v.Name == "" {
			return ErrInvalidVariant
		}
		if v.Stock < 0 {
			return ErrNegativeStock
		}
		if v.Price != nil && v.Price.IsNegative() {
			return ErrNegativePrice
		}
	}
	return nil
}

type GetProductOptions struct {
	ProductID  string
	OnlyActive bool
}

type ListOptions struct {
	Category        string
	Search          string
	IncludeDisabled bool
	Limit           int
	Page            int
}

type ListResult struct {
	Items      []*Product `json:"items"`
	TotalCount int        `json:"totalCount"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
}

type CreateInput struct {
	Name          string           `json:"name" binding:"required"`
	Category      string           `json:"category" binding:"required"`
	Description   *string          `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	Images        []string         `json:"images"`
	Variants      []Variant        `json:"variants"`
	Stock         int              `json:"stock"`
	Status        string           `json:"status"`
}

// UpdateInput is a partial update: nil fields keep their stored value.
type UpdateInput struct {
	Name          *string          `json:"name"`
	Category      *string          `json:"category"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	Images        *[]string        `json:"images"`
	Variants      *[]Variant       `json:"variants"`
	Stock         *int             `json:"stock"`
	Status        *string          `json:"status"`
}

func (in UpdateInput) empty() bool {
	return in.Name == nil && in.Category == nil && in.Description == nil &&
		in.Price == nil && in.OriginalPrice == nil && in.Images == nil &&
		in.Variants == nil && in.Stock == nil && in.Status == nil
}
