package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped,
		StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentUnpaid PaymentStatus = "unpaid"
)

type LineItem struct {
	ProductID string           `json:"productId"`
	Name      string           `json:"name"`
	Image     string           `json:"image,omitempty"`
	UnitPrice decimal.Decimal  `json:"unitPrice"`
	Quantity  int              `json:"quantity"`
	LineTotal *decimal.Decimal `json:"lineTotal,omitempty"`
}

// Contribution is what the line adds to a computed order total.
func (li LineItem) Contribution() decimal.Decimal {
	if li.LineTotal != nil {
		return *li.LineTotal
	}
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

type Amounts struct {
	Total    *decimal.Decimal `json:"total,omitempty"`
	Subtotal *decimal.Decimal `json:"subtotal,omitempty"`
	Shipping *decimal.Decimal `json:"shipping,omitempty"`
	Tax      *decimal.Decimal `json:"tax,omitempty"`
}

// Order is created by the checkout flow and is read-only here.
// A nil Items means the record carries no line items at all.
type Order struct {
	ID            string           `json:"id"`
	OrderNumber   string           `json:"orderNumber"`
	UserID        uint             `json:"userId"`
	CreatedAt     time.Time        `json:"createdAt"`
	Items         []LineItem       `json:"items"`
	Amounts       *Amounts         `json:"amounts,omitempty"`
	NetAmount     *decimal.Decimal `json:"netAmount,omitempty"`
	Status        Status           `json:"status"`
	PaymentStatus PaymentStatus    `json:"paymentStatus"`
}

type ListOptions struct {
	Status string
	Limit  int
	Page   int
}

type ListResult struct {
	Items      []View `json:"items"`
	TotalCount int    `json:"totalCount"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}
