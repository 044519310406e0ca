package entities

import "github.com/shopspring/decimal"

// BOMLine is one parent-to-child edge in the Bill of Materials. A parent
// Product owns zero-or-many outgoing BOMLines; the referenced child
// Product is shared across any number of parent lines.
type BOMLine struct {
	ID           string
	ParentCode   string
	ChildCode    string
	QtyPer       decimal.Decimal
	LossPercent  decimal.Decimal
	Active       bool
}

// EffectiveQtyPer returns QtyPer scaled by (1 + LossPercent/100).
func (b BOMLine) EffectiveQtyPer() decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(b.LossPercent.Div(decimal.NewFromInt(100)))
	return b.QtyPer.Mul(factor)
}
