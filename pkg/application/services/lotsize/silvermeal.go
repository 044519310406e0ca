package lotsize

import "github.com/shopspring/decimal"

// SilverMeal is the period-aggregating heuristic: starting at each
// uncovered nonzero-net period, it keeps folding in later periods while
// the running average cost per period strictly decreases.
type SilverMeal struct{}

func (SilverMeal) Size(net []decimal.Decimal, _ decimal.Decimal, orderCostK, h decimal.Decimal, c Constraints) []Receipt {
	n := len(net)
	var receipts []Receipt

	i := 0
	for i < n {
		if net[i].IsZero() {
			i++
			continue
		}

		totalQty := net[i]
		holdingSum := decimal.Zero
		periodsCovered := 1
		bestCost := orderCostK // holdingSum is 0 at j==i, denominator 1

		j := i + 1
		for j < n {
			distance := decimal.NewFromInt(int64(j - i))
			candidateHolding := holdingSum.Add(h.Mul(net[j]).Mul(distance))
			candidateCost := orderCostK.Add(candidateHolding).Div(decimal.NewFromInt(int64(periodsCovered + 1)))
			if candidateCost.LessThan(bestCost) {
				bestCost = candidateCost
				holdingSum = candidateHolding
				totalQty = totalQty.Add(net[j])
				periodsCovered++
				j++
				continue
			}
			break
		}

		receipts = append(receipts, Receipt{PeriodIndex: i, Quantity: c.Apply(totalQty)})
		i = j
	}

	return receipts
}
