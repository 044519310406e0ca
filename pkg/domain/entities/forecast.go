package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ForecastExecutionStatus mirrors the forecast engine's own execution
// lifecycle; only COMPLETED executions are ever consulted by MRP.
type ForecastExecutionStatus string

const (
	ForecastPending   ForecastExecutionStatus = "PENDING"
	ForecastRunning   ForecastExecutionStatus = "RUNNING"
	ForecastCompleted ForecastExecutionStatus = "COMPLETED"
	ForecastError     ForecastExecutionStatus = "ERROR"
)

// ForecastPoint is one (execution, product, period) quantile row produced
// by the external forecast-generation engine.
type ForecastPoint struct {
	ExecutionID string
	ExecutionAt time.Time
	Status      ForecastExecutionStatus
	ProductCode string
	PeriodStart time.Time
	P10, P25, P50, P75, P90 decimal.Decimal
}

// QuantileNearest returns the quantile field used by the TFT safety-stock
// method: p75 for service levels up to and including 0.90, p90 for every
// service level above 0.90.
func (f ForecastPoint) QuantileNearest(serviceLevel float64) decimal.Decimal {
	switch {
	case serviceLevel <= 0.90:
		return f.P75
	default:
		return f.P90
	}
}
