// Package stockparams computes per-product safety stock, reorder point,
// min/max, and EOQ, selecting among the classical, TFT-quantile, and
// Monte Carlo safety-stock methods per the priority rule in §4.3.
package stockparams

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/domain/repositories"
	"github.com/vsinha/mrp-planner/pkg/shared"
)

// Params configures one stock-parameters pass.
type Params struct {
	ServiceLevel         float64
	ForceRecalculate     bool
	MonteCarloIterations int
	Seed                 *uint32 // nil => a fixed default seed
}

// DefaultParams mirrors the spec's defaults.
func DefaultParams() Params {
	return Params{ServiceLevel: 0.95, MonteCarloIterations: 10000}
}

// Result is the output of one stock-parameters run.
type Result struct {
	Rows     []entities.StockParams
	Warnings []shared.Warning
	Skipped  int
}

// Service computes and persists StockParams rows.
type Service struct {
	Products    repositories.ProductRepository
	Forecast    repositories.ForecastRepository
	Suppliers   repositories.SupplierRepository
	StockParams repositories.StockParamsRepository
	Now         func() time.Time
}

// NewService wires the stock-parameters stage.
func NewService(products repositories.ProductRepository, forecast repositories.ForecastRepository, suppliers repositories.SupplierRepository, stockParams repositories.StockParamsRepository) *Service {
	return &Service{Products: products, Forecast: forecast, Suppliers: suppliers, StockParams: stockParams, Now: time.Now}
}

// Run computes StockParams for every active product, honoring the
// skip-if-already-computed rule when params.ForceRecalculate is false.
func (s *Service) Run(ctx context.Context, executionID string, params Params) (Result, error) {
	if params.MonteCarloIterations <= 0 {
		params.MonteCarloIterations = 10000
	}
	if params.ServiceLevel <= 0 {
		params.ServiceLevel = 0.95
	}

	products, err := s.Products.ListActive(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("stockparams: list active products: %w", err)
	}

	var rows []entities.StockParams
	var warnings []shared.Warning
	skipped := 0

	for _, p := range products {
		if !params.ForceRecalculate {
			exists, err := s.StockParams.ExistsForProduct(ctx, p.Code)
			if err != nil {
				return Result{}, fmt.Errorf("stockparams: exists check for %s: %w", p.Code, err)
			}
			if exists {
				skipped++
				continue
			}
		}

		row, rowWarnings, err := s.computeOne(ctx, executionID, p, params)
		if err != nil {
			return Result{}, fmt.Errorf("stockparams: compute for %s: %w", p.Code, err)
		}
		warnings = append(warnings, rowWarnings...)
		rows = append(rows, row)

		if err := s.StockParams.Upsert(ctx, row); err != nil {
			return Result{}, fmt.Errorf("stockparams: persist %s: %w", p.Code, err)
		}
	}

	return Result{Rows: rows, Warnings: warnings, Skipped: skipped}, nil
}

func (s *Service) computeOne(ctx context.Context, executionID string, p entities.Product, params Params) (entities.StockParams, []shared.Warning, error) {
	var warnings []shared.Warning

	weeklyHistory, err := s.Forecast.WeeklyHistory(ctx, p.Code, 52)
	if err != nil {
		return entities.StockParams{}, nil, fmt.Errorf("weekly history: %w", err)
	}
	dBar := shared.Mean(weeklyHistory)
	sigmaD := shared.StdDev(weeklyHistory)

	leadTimeDays := float64(p.ProductionLeadTime)
	var sigmaLTDays float64
	if p.Kind.IsBuy() {
		leadTimeDays, sigmaLTDays = s.buyLeadTimeStats(ctx, p)
	}
	leadTimeWeeks := leadTimeDays / 7
	sigmaLTWeeks := sigmaLTDays / 7
	reviewWeeks := float64(p.ReviewIntervalDays) / 7

	method, ss, err := s.selectSafetyStock(ctx, p, params, dBar, sigmaD, leadTimeWeeks, sigmaLTWeeks, weeklyHistory)
	if err != nil {
		return entities.StockParams{}, nil, err
	}

	ssDec := decimal.NewFromFloat(shared.Round4F(ss))
	rop := shared.Round4(decimal.NewFromFloat(dBar).Mul(decimal.NewFromFloat(leadTimeWeeks)).Add(ssDec))
	maxVal := shared.Round4(decimal.NewFromFloat(dBar).Mul(decimal.NewFromFloat(leadTimeWeeks + reviewWeeks)).Add(ssDec))
	eoq := computeEOQ(p, dBar*52)

	row := entities.StockParams{
		ExecutionID:  executionID,
		ProductCode:  p.Code,
		SafetyStock:  ssDec,
		ReorderPoint: rop,
		Min:          rop,
		Max:          maxVal,
		EOQ:          eoq,
		Method:       method,
		ServiceLevel: decimal.NewFromFloat(params.ServiceLevel),
		CalculatedAt: s.now(),
	}
	return row, warnings, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// selectSafetyStock applies the §4.3 priority order: manual override,
// Monte Carlo (ABC-A with enough history), TFT quantiles, classical.
func (s *Service) selectSafetyStock(ctx context.Context, p entities.Product, params Params, dBar, sigmaD, leadTimeWeeks, sigmaLTWeeks float64, weeklyHistory []float64) (entities.SafetyStockMethod, float64, error) {
	if p.ManualSafetyStock != nil {
		return entities.MethodClassical, p.ManualSafetyStock.InexactFloat64(), nil
	}

	if p.ABCClass == "A" && len(weeklyHistory) >= 12 {
		result, err := s.runMonteCarlo(ctx, p, params.ServiceLevel, params.MonteCarloIterations, params.Seed, weeklyHistory, leadTimeWeeks*7, sigmaLTWeeks*7)
		if err == nil {
			return entities.MethodMonteCarlo, result.SafetyStock, nil
		}
	}

	if points, err := s.Forecast.LatestCompletedPoints(ctx, p.Code); err == nil {
		if ss, ok := tftSafetyStock(points, leadTimeWeeks, params.ServiceLevel); ok {
			return entities.MethodTFTQuantile, ss, nil
		}
	}

	z := shared.ZForServiceLevel(params.ServiceLevel)
	ss := classicalSafetyStock(z, leadTimeWeeks, sigmaD, dBar, sigmaLTWeeks)
	return entities.MethodClassical, ss, nil
}

// classicalSafetyStock implements SS = Z * sqrt(LT*sigma_d^2 + dBar^2*sigma_LT^2).
func classicalSafetyStock(z, leadTimeWeeks, sigmaD, dBar, sigmaLTWeeks float64) float64 {
	variance := leadTimeWeeks*sigmaD*sigmaD + dBar*dBar*sigmaLTWeeks*sigmaLTWeeks
	if variance < 0 {
		variance = 0
	}
	return z * math.Sqrt(variance)
}

// tftSafetyStock sums the nearest-quantile forecast over the lead-time
// horizon and subtracts the p50 sum, per §4.3. Returns ok=false when no
// forecast points are available to cover the horizon.
func tftSafetyStock(points []entities.ForecastPoint, leadTimeWeeks float64, serviceLevel float64) (float64, bool) {
	weeks := int(math.Ceil(leadTimeWeeks))
	if weeks <= 0 || len(points) == 0 {
		return 0, false
	}
	if len(points) < weeks {
		return 0, false
	}

	var sumQ, sum50 float64
	for i := 0; i < weeks; i++ {
		pt := points[i]
		q := pt.QuantileNearest(serviceLevel)
		sumQ += q.InexactFloat64()
		sum50 += pt.P50.InexactFloat64()
	}
	ss := sumQ - sum50
	if ss < 0 {
		ss = 0
	}
	return ss, true
}

// computeEOQ implements Wilson's formula EOQ = sqrt(2*D*K/h), where D is
// annualized demand, K is the product's order cost, and h is annual
// holding cost per unit. Returns 0 when any input is non-positive.
func computeEOQ(p entities.Product, annualDemand float64) decimal.Decimal {
	if annualDemand <= 0 || p.OrderCostK.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	h := p.UnitCost.Mul(p.AnnualHoldingPercent).Div(decimal.NewFromInt(100))
	if h.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	numerator := decimal.NewFromFloat(2 * annualDemand).Mul(p.OrderCostK)
	ratio, _ := numerator.Div(h).Float64()
	if ratio <= 0 {
		return decimal.Zero
	}
	return shared.Round4(decimal.NewFromFloat(math.Sqrt(ratio)))
}

// buyLeadTimeStats returns (meanLeadTimeDays, sigmaLeadTimeDays) for a
// purchased product: empirical sigma from >=5 observations, else
// (max-min)/6 when both bounds are known, else 0.
func (s *Service) buyLeadTimeStats(ctx context.Context, p entities.Product) (float64, float64) {
	obs, err := s.Suppliers.LeadTimeObservationsDays(ctx, p.Code)
	mean := float64(p.ProductionLeadTime)
	if err == nil && len(obs) > 0 {
		mean = shared.Mean(obs)
	}
	if err == nil && len(obs) >= 5 {
		return mean, shared.StdDev(obs)
	}

	links, lerr := s.Suppliers.LinksForProduct(ctx, p.Code)
	if lerr == nil {
		for _, link := range links {
			supplier, serr := s.Suppliers.GetSupplier(ctx, link.SupplierID)
			if serr != nil || supplier == nil {
				continue
			}
			if supplier.MinLeadTime != nil && supplier.MaxLeadTime != nil {
				return mean, float64(*supplier.MaxLeadTime-*supplier.MinLeadTime) / 6
			}
		}
	}
	return mean, 0
}
