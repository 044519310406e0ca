// Package netreq computes the classic MRP net-requirements grid for a
// single product over the planning periods.
package netreq

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/mrp-planner/pkg/shared"
)

// PeriodResult is one period's row of the net-requirements grid.
type PeriodResult struct {
	Gross           decimal.Decimal
	Scheduled       decimal.Decimal
	Net             decimal.Decimal
	ProjectedStock  decimal.Decimal
}

// Run computes the net-requirements grid. gross and scheduled must be the
// same length; plannedReceipts is always treated as 0 in this stage (the
// lot-sizing stage is what fills planned receipts).
func Run(gross, scheduled []decimal.Decimal, initialStock, safetyStock decimal.Decimal) []PeriodResult {
	n := len(gross)
	results := make([]PeriodResult, n)
	projStock := initialStock

	for t := 0; t < n; t++ {
		g := gross[t]
		var sch decimal.Decimal
		if t < len(scheduled) {
			sch = scheduled[t]
		}
		plannedReceipt := decimal.Zero

		netPre := g.Sub(projStock).Sub(sch).Add(safetyStock)
		net := shared.ZeroFloor(netPre)

		// Defensive fallback (net==0 while stock is still short of safety
		// stock): fires when scheduled receipts exceed gross requirements
		// while projected stock is below safety stock.
		if net.IsZero() && projStock.LessThan(safetyStock) {
			net = safetyStock.Sub(projStock)
		}

		net = shared.Round4(net)
		projStock = projStock.Add(sch).Sub(g).Add(plannedReceipt)

		results[t] = PeriodResult{
			Gross:          shared.Round4(g),
			Scheduled:      shared.Round4(sch),
			Net:            net,
			ProjectedStock: shared.Round4(projStock),
		}
	}

	return results
}
