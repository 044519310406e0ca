package lotsize

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/mrp-planner/pkg/shared"
)

// EOQSizer orders a fixed economic quantity (or the shortfall, if larger),
// carrying any surplus forward as coverage against future periods.
type EOQSizer struct{}

func (EOQSizer) Size(net []decimal.Decimal, eoq decimal.Decimal, _, _ decimal.Decimal, c Constraints) []Receipt {
	var receipts []Receipt
	coverage := decimal.Zero

	for i, n := range net {
		if n.IsZero() {
			continue
		}
		if coverage.GreaterThanOrEqual(n) {
			coverage = coverage.Sub(n)
			continue
		}
		deficit := n.Sub(coverage)

		var raw decimal.Decimal
		if eoq.GreaterThan(decimal.Zero) {
			raw = shared.MaxDecimal(eoq, deficit)
		} else {
			raw = deficit
		}
		ordered := c.Apply(raw)

		receipts = append(receipts, Receipt{PeriodIndex: i, Quantity: ordered})
		// Coverage bookkeeping must use the post-constraint order quantity
		// to match recorded behavior (see design notes).
		coverage = ordered.Sub(deficit)
	}
	return receipts
}
