package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// StorageSeverity classifies a warehouse-week's utilization against capacity.
type StorageSeverity string

const (
	SeverityOK       StorageSeverity = "OK"
	SeverityAlert    StorageSeverity = "ALERT"
	SeverityCritical StorageSeverity = "CRITICAL"
)

// StorageProjection is one warehouse/week cumulative-volume row. It is
// returned in the run summary but never persisted (§3 lifecycle).
type StorageProjection struct {
	WarehouseCode    string
	WeekStart        time.Time
	ProjectedVolume  decimal.Decimal
	CapacityM3       decimal.Decimal
	Utilization      decimal.Decimal
	Severity         StorageSeverity
}
