package entities

import "github.com/shopspring/decimal"

// Warehouse is a physical storage location with a volumetric capacity.
// A warehouse only participates in storage validation when CapacityM3 > 0.
type Warehouse struct {
	ID         string
	Code       string
	Name       string
	CapacityM3 decimal.Decimal
	Active     bool
}
