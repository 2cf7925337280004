package order

import "github.com/shopspring/decimal"

// TotalSource is where an order's display total comes from. Exactly one of
// ExplicitTotal, NetTotal or ComputedTotal.
type TotalSource interface {
	Resolve() decimal.Decimal
	isTotalSource()
}

// ExplicitTotal is the precomputed amounts.total.
type ExplicitTotal struct {
	Amount decimal.Decimal
}

// NetTotal is the order's netAmount, used when amounts.total is missing.
type NetTotal struct {
	Amount decimal.Decimal
}

// ComputedTotal sums the line items.
type ComputedTotal struct {
	Items []LineItem
}

func (t ExplicitTotal) Resolve() decimal.Decimal { return t.Amount }
func (t NetTotal) Resolve() decimal.Decimal      { return t.Amount }

func (t ComputedTotal) Resolve() decimal.Decimal {
	sum := decimal.Zero
	for _, li := range t.Items {
		sum = sum.Add(li.Contribution())
	}
	return sum
}

func (ExplicitTotal) isTotalSource() {}
func (NetTotal) isTotalSource()      {}
func (ComputedTotal) isTotalSource() {}

// SourceOf picks amounts.total, then netAmount, then the line items.
func SourceOf(o *Order) (TotalSource, error) {
	switch {
	case o == nil:
		return nil, ErrTotalUnavailable
	case o.Amounts != nil && o.Amounts.Total != nil:
		return ExplicitTotal{Amount: *o.Amounts.Total}, nil
	case o.NetAmount != nil:
		return NetTotal{Amount: *o.NetAmount}, nil
	case o.Items != nil:
		return ComputedTotal{Items: o.Items}, nil
	}
	return nil, ErrTotalUnavailable
}

func ResolveTotal(o *Order) (decimal.Decimal, error) {
	src, err := SourceOf(o)
	if err != nil {
		return decimal.Zero, err
	}
	return src.Resolve(), nil
}
