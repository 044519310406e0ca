package lotsize

import "github.com/shopspring/decimal"

// WagnerWhitin is the optimal period-aggregating DP lot sizer. It
// operates only on the periods with positive net demand (preserving their
// original period indices) and backtraces the cost-minimizing grouping.
type WagnerWhitin struct{}

func (WagnerWhitin) Size(net []decimal.Decimal, _ decimal.Decimal, orderCostK, h decimal.Decimal, c Constraints) []Receipt {
	var origIdx []int
	var q []decimal.Decimal
	for i, n := range net {
		if !n.IsZero() {
			origIdx = append(origIdx, i)
			q = append(q, n)
		}
	}
	m := len(q)
	if m == 0 {
		return nil
	}

	dp := make([]decimal.Decimal, m)      // dp[j] = optimal cost covering periods 0..j
	backtrack := make([]int, m)

	for j := 0; j < m; j++ {
		best := decimal.Decimal{}
		bestSet := false
		bestI := 0
		for i := 0; i <= j; i++ {
			holding := decimal.Zero
			for k := i; k <= j; k++ {
				dist := decimal.NewFromInt(int64(origIdx[k] - origIdx[i]))
				holding = holding.Add(h.Mul(q[k]).Mul(dist))
			}
			prev := decimal.Zero
			if i > 0 {
				prev = dp[i-1]
			}
			cost := prev.Add(orderCostK).Add(holding)
			if !bestSet || cost.LessThan(best) {
				best = cost
				bestSet = true
				bestI = i
			}
		}
		dp[j] = best
		backtrack[j] = bestI
	}

	// Backtrace groupings from the end; each group becomes one receipt at
	// the group's earliest original period index.
	type group struct{ start, end int }
	var groups []group
	j := m - 1
	for j >= 0 {
		i := backtrack[j]
		groups = append([]group{{start: i, end: j}}, groups...)
		j = i - 1
	}

	receipts := make([]Receipt, 0, len(groups))
	for _, g := range groups {
		total := decimal.Zero
		for k := g.start; k <= g.end; k++ {
			total = total.Add(q[k])
		}
		receipts = append(receipts, Receipt{PeriodIndex: origIdx[g.start], Quantity: c.Apply(total)})
	}
	return receipts
}
