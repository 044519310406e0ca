// Package lotsize turns net requirements into planned order receipts and
// releases, under minimum-lot / purchase-multiple / MOQ constraints and
// lead-time offsetting.
package lotsize

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/shared"
)

// Receipt is one planned-order receipt produced by a lot-sizing engine,
// still in period-index space (not yet translated to calendar dates).
type Receipt struct {
	PeriodIndex int
	Quantity    decimal.Decimal
}

// Constraints are the product-specific lot-sizing boundaries applied to
// every raw receipt quantity, in the fixed order the spec mandates.
type Constraints struct {
	MinimumLot       decimal.Decimal
	PurchaseMultiple decimal.Decimal
	MOQ              decimal.Decimal
}

// Apply enforces, in order: minimum lot, purchase multiple (rounded up),
// then MOQ. Applying Apply twice is idempotent.
func (c Constraints) Apply(q decimal.Decimal) decimal.Decimal {
	if q.GreaterThan(decimal.Zero) && q.LessThan(c.MinimumLot) {
		q = c.MinimumLot
	}
	if c.PurchaseMultiple.GreaterThan(decimal.NewFromInt(1)) {
		units := q.Div(c.PurchaseMultiple).Ceil()
		q = units.Mul(c.PurchaseMultiple)
	}
	if q.LessThan(c.MOQ) {
		q = c.MOQ
	}
	return shared.Round4(q)
}

// Sizer is the common interface every lot-sizing engine implements.
// Implementations apply c to every raw order quantity before emitting the
// Receipt (EOQ additionally needs the post-constraint quantity to update
// its running coverage, per the design notes).
type Sizer interface {
	Size(net []decimal.Decimal, eoq decimal.Decimal, orderCostK, holdingCostPerPeriod decimal.Decimal, c Constraints) []Receipt
}

// ForMethod resolves the Sizer for a product's lot-sizing tag, returning
// ErrBadMethod wrapped with the offending tag for anything unsupported.
func ForMethod(method entities.LotSizingMethod) (Sizer, error) {
	switch method {
	case entities.MethodL4L:
		return L4L{}, nil
	case entities.MethodEOQ:
		return EOQSizer{}, nil
	case entities.MethodSilverMeal:
		return SilverMeal{}, nil
	case entities.MethodWagnerWhitin:
		return WagnerWhitin{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", entities.ErrBadMethod, method)
	}
}

// OffsetResult is one receipt translated into release/receipt calendar
// terms, or flagged past-due / dropped per the lead-time offset rule.
type OffsetResult struct {
	ReceiptIndex int
	ReleaseIndex int
	Quantity     decimal.Decimal
	PastDue      bool
	Dropped      bool
}

// OffsetByLeadTime computes releaseIndex = receiptIndex - leadTimePeriods
// for every receipt. Negative release indices are reported past-due
// (receipt index preserved); release indices at or beyond horizonLen are
// dropped.
func OffsetByLeadTime(receipts []Receipt, leadTimePeriods, horizonLen int) []OffsetResult {
	results := make([]OffsetResult, 0, len(receipts))
	for _, r := range receipts {
		releaseIdx := r.PeriodIndex - leadTimePeriods
		if releaseIdx >= horizonLen {
			results = append(results, OffsetResult{ReceiptIndex: r.PeriodIndex, ReleaseIndex: releaseIdx, Quantity: r.Quantity, Dropped: true})
			continue
		}
		results = append(results, OffsetResult{
			ReceiptIndex: r.PeriodIndex,
			ReleaseIndex: releaseIdx,
			Quantity:     r.Quantity,
			PastDue:      releaseIdx < 0,
		})
	}
	return results
}
