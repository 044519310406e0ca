// Package entities holds the planning domain model: products, BOM lines,
// suppliers, routings, work centers, warehouses, inventory, forecasts,
// orders, and the execution/step-log bookkeeping types.
package entities

import "github.com/shopspring/decimal"

// ProductKind classifies a product for BOM explosion and order-type routing.
type ProductKind string

const (
	KindFinished     ProductKind = "FINISHED"
	KindSemiFinished ProductKind = "SEMI_FINISHED"
	KindRaw          ProductKind = "RAW"
	KindConsumable   ProductKind = "CONSUMABLE"
	KindPackaging    ProductKind = "PACKAGING"
	KindResale       ProductKind = "RESALE"
)

// IsBuy reports whether this kind classifies as a BUY planned order.
func (k ProductKind) IsBuy() bool {
	switch k {
	case KindRaw, KindConsumable, KindPackaging, KindResale:
		return true
	default:
		return false
	}
}

// IsMake reports whether this kind classifies as a MAKE planned order.
func (k ProductKind) IsMake() bool {
	return k == KindFinished || k == KindSemiFinished
}

// LotSizingMethod names the four supported lot-sizing engines.
type LotSizingMethod string

const (
	MethodL4L          LotSizingMethod = "L4L"
	MethodEOQ          LotSizingMethod = "EOQ"
	MethodSilverMeal   LotSizingMethod = "SILVER_MEAL"
	MethodWagnerWhitin LotSizingMethod = "WAGNER_WHITIN"
)

// Product is a finished good, semi-finished assembly, or purchased item.
type Product struct {
	ID                   string
	Code                 string
	Description          string
	Kind                 ProductKind
	ABCClass             string // "A", "B", or "C"; drives Monte Carlo eligibility (§4.3)
	UnitVolumeM3         decimal.Decimal
	LotSizingMethod      LotSizingMethod
	MinimumLot           decimal.Decimal
	PurchaseMultiple     decimal.Decimal
	ProductionLeadTime   int // days
	UnitCost             decimal.Decimal
	OrderCostK           decimal.Decimal
	AnnualHoldingPercent decimal.Decimal // e.g. 20 means 20%
	ReviewIntervalDays   int
	ManualSafetyStock    *decimal.Decimal
	Active               bool
}
