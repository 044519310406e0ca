package entities

import "github.com/shopspring/decimal"

// Supplier is a vendor a product may be purchased from.
type Supplier struct {
	ID              string
	Code            string
	Name            string
	DefaultLeadTime *int // days
	MinLeadTime     *int
	MaxLeadTime     *int
}

// SupplierLink ties a product to a supplier with link-specific terms.
type SupplierLink struct {
	ID           string
	ProductCode  string
	SupplierID   string
	LeadTime     *int // days, overrides supplier default when set
	MOQ          decimal.Decimal
	UnitPrice    decimal.Decimal
	IsPrincipal  bool
}
