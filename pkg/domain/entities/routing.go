package entities

import "github.com/shopspring/decimal"

// RoutingStep is one operation of a product's routing, ordered by Sequence.
type RoutingStep struct {
	ID           string
	ProductCode  string
	WorkCenter   string
	Sequence     int
	SetupMinutes decimal.Decimal
	UnitMinutes  decimal.Decimal // per-unit minutes
}
