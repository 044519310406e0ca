package lotsize

import "github.com/shopspring/decimal"

// L4L is the Lot-for-Lot engine: every nonzero-net period becomes its own
// order, quantity equal to that period's net requirement.
type L4L struct{}

func (L4L) Size(net []decimal.Decimal, _ decimal.Decimal, _, _ decimal.Decimal, c Constraints) []Receipt {
	var receipts []Receipt
	for i, n := range net {
		if n.IsZero() {
			continue
		}
		receipts = append(receipts, Receipt{PeriodIndex: i, Quantity: c.Apply(n)})
	}
	return receipts
}
