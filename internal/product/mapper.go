package product

import (
	"time"

	"storefront-be/internal/money"

	"github.com/shopspring/decimal"
)

type VariantView struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	FormattedPrice string `json:"formattedPrice"`
	Stock          int    `json:"stock"`
	InStock        bool   `json:"inStock"`
}

// View is the product as the storefront renders it: raw values plus display strings.
type View struct {
	ID                     string           `json:"id"`
	Name                   string           `json:"name"`
	Slug                   string           `json:"slug"`
	Category               string           `json:"category"`
	Description            *string          `json:"description,omitempty"`
	Price                  decimal.Decimal  `json:"price"`
	FormattedPrice         string           `json:"formattedPrice"`
	OriginalPrice          *decimal.Decimal `json:"originalPrice,omitempty"`
	FormattedOriginalPrice string           `json:"formattedOriginalPrice,omitempty"`
	HasDiscount            bool             `json:"hasDiscount"`
	DiscountPercent        int              `json:"discountPercent,omitempty"`
	Image                  string           `json:"image"`
	Images                 []string         `json:"images"`
	Variants               []VariantView    `json:"variants"`
	Stock                  int              `json:"stock"`
	InStock                bool             `json:"inStock"`
	Status                 string           `json:"status"`
	CreatedAt              string           `json:"createdAt"`
}

func ToView(p *Product, f *money.Formatter) View {
	images := p.Images
	if images == nil {
		images = []string{}
	}

	variants := make([]VariantView, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, VariantView{
			ID:             v.ID,
			Name:           v.Name,
			FormattedPrice: f.Format(p.PriceFor(v.ID)),
			Stock:          v.Stock,
			InStock:        v.Stock > 0,
		})
	}

	view := View{
		ID:              p.ID,
		Name:            p.Name,
		Slug:            p.Slug,
		Category:        p.Category,
		Description:     p.Description,
		Price:           p.Price,
		FormattedPrice:  f.Format(p.Price),
		HasDiscount:     p.HasDiscount(),
		DiscountPercent: p.DiscountPercent(),
		Image:           p.PrimaryImage(),
		Images:          images,
		Variants:        variants,
		Stock:           p.Stock,
		InStock:         p.Stock > 0,
		Status:          p.Status,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}

	// The struck-through price is only shown for a real markdown.
	if view.HasDiscount {
		view.OriginalPrice = p.OriginalPrice
		view.FormattedOriginalPrice = f.Format(*p.OriginalPrice)
	}

	return view
}

func ToViews(products []*Product, f *money.Formatter) []View {
	out := make([]View, 0, len(products))
	for _, p := range products {
		out = append(out, ToView(p, f))
	}
	return out
}
