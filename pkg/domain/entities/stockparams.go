package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// SafetyStockMethod records which of the three algorithms produced the
// safety-stock figure for a product in a given execution.
type SafetyStockMethod string

const (
	MethodTFTQuantile SafetyStockMethod = "TFT_QUANTILE"
	MethodClassical   SafetyStockMethod = "CLASSICAL"
	MethodMonteCarlo  SafetyStockMethod = "MONTE_CARLO"
)

// StockParams is the computed safety-stock/ROP/min/max/EOQ row for one
// (execution, product) pair.
type StockParams struct {
	ExecutionID  string
	ProductCode  string
	SafetyStock  decimal.Decimal
	ReorderPoint decimal.Decimal
	Min          decimal.Decimal
	Max          decimal.Decimal
	EOQ          decimal.Decimal
	Method       SafetyStockMethod
	ServiceLevel decimal.Decimal
	CalculatedAt time.Time
}

// MonteCarloHistogramBucket is one fixed-width bucket of the simulated
// total-demand distribution.
type MonteCarloHistogramBucket struct {
	LowerBound float64
	UpperBound float64
	Count      int
}

// MonteCarloResult is the full output of the standalone Monte Carlo
// safety-stock simulation endpoint.
type MonteCarloResult struct {
	ProductCode      string
	ServiceLevel     float64
	Iterations       int
	SafetyStock      float64
	ServiceQuantile  float64
	MeanTotalDemand  float64
	P5, P95          float64
	Histogram        []MonteCarloHistogramBucket
}
