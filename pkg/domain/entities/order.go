package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderKind distinguishes a purchased order from a manufactured one.
type OrderKind string

const (
	OrderBuy  OrderKind = "BUY"
	OrderMake OrderKind = "MAKE"
)

// OrderStatus is the lifecycle state of a PlannedOrder.
type OrderStatus string

const (
	StatusPlanned   OrderStatus = "PLANNED"
	StatusFirm      OrderStatus = "FIRM"
	StatusReleased  OrderStatus = "RELEASED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Priority is the urgency bucket assigned to a planned order at generation
// time, based on how its release date compares to the reference date.
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
)

// PlannedOrder is a lot-sized, enriched order produced by the pipeline (or
// a pre-existing FIRM/RELEASED order read from the order book).
type PlannedOrder struct {
	ID              string
	ExecutionID     string
	ProductCode     string
	Kind            OrderKind
	Quantity        decimal.Decimal
	NeededBy        time.Time
	ReleaseDate     time.Time
	ExpectedReceipt time.Time
	SupplierID      *string
	WorkCenter      *string
	EstimatedCost   *decimal.Decimal
	LotSizingTag    LotSizingMethod
	Priority        Priority
	Status          OrderStatus
	ActionMessage   *string
}
