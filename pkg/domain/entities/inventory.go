package entities

import "github.com/shopspring/decimal"

// InventorySnapshot is the current on-hand position of a product in a
// warehouse. Available MRP stock for a product sums (Available-Reserved)
// across every warehouse that carries it.
type InventorySnapshot struct {
	WarehouseCode string
	ProductCode   string
	Available     decimal.Decimal
	Reserved      decimal.Decimal
}

// NetAvailable returns Available minus Reserved for this snapshot.
func (s InventorySnapshot) NetAvailable() decimal.Decimal {
	return s.Available.Sub(s.Reserved)
}
