// Package mps computes the Master Production Schedule: level-0 weekly
// demand for finished products, blending forecast with firm orders inside
// the firm-order horizon.
package mps

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/domain/repositories"
	"github.com/vsinha/mrp-planner/pkg/shared"
)

// Params configures one MPS run.
type Params struct {
	PlanningHorizonWeeks  int
	FirmOrderHorizonWeeks int
	StartDate             time.Time
}

// DefaultParams fills the spec's defaults (13-week horizon, 2-week firm window).
func DefaultParams() Params {
	return Params{PlanningHorizonWeeks: 13, FirmOrderHorizonWeeks: 2, StartDate: shared.WeekStart(time.Now())}
}

// ProductSchedule is one product's bucketed demand.
type ProductSchedule struct {
	ProductCode     string
	Buckets         []shared.Bucket
	ForecastDemand  []decimal.Decimal
	FirmOrderDemand []decimal.Decimal
	MPSDemand       []decimal.Decimal
}

// Result is the full MPS output: per-product schedules plus totals.
type Result struct {
	Schedules []ProductSchedule
	Totals    []decimal.Decimal // MPS demand summed across all products, per bucket
	Warnings  []shared.Warning
}

// Service computes the MPS stage.
type Service struct {
	Products repositories.ProductRepository
	Orders   repositories.OrderRepository
	Forecast repositories.ForecastRepository
}

// NewService wires the MPS stage to its reference-data dependencies.
func NewService(products repositories.ProductRepository, orders repositories.OrderRepository, forecast repositories.ForecastRepository) *Service {
	return &Service{Products: products, Orders: orders, Forecast: forecast}
}

// Run produces the Master Production Schedule for every active finished product.
func (s *Service) Run(ctx context.Context, params Params) (Result, error) {
	if params.PlanningHorizonWeeks <= 0 {
		params.PlanningHorizonWeeks = 13
	}
	buckets := shared.WeeklyBuckets(params.StartDate, params.PlanningHorizonWeeks)

	products, err := s.Products.ListActiveByKind(ctx, entities.KindFinished)
	if err != nil {
		return Result{}, fmt.Errorf("mps: list finished products: %w", err)
	}

	firmOrders, err := s.Orders.FirmOrMakeOrders(ctx, entities.OrderMake, entities.StatusFirm)
	if err != nil {
		return Result{}, fmt.Errorf("mps: list firm orders: %w", err)
	}

	totals := make([]decimal.Decimal, len(buckets))
	var schedules []ProductSchedule
	var warnings []shared.Warning

	for _, p := range products {
		forecastPoints, err := s.Forecast.LatestCompletedPoints(ctx, p.Code)
		if err != nil {
			return Result{}, fmt.Errorf("mps: forecast for %s: %w", p.Code, err)
		}
		if len(forecastPoints) == 0 {
			warnings = append(warnings, shared.Warning{
				Code: shared.WarnMissingForecast, ProductCode: p.Code,
				Message: fmt.Sprintf("no completed forecast found for %s", p.Code),
			})
		}

		forecastDemand := make([]decimal.Decimal, len(buckets))
		firmDemand := make([]decimal.Decimal, len(buckets))
		mpsDemand := make([]decimal.Decimal, len(buckets))

		for i, b := range buckets {
			for _, fp := range forecastPoints {
				if shared.InWeek(b.Start, fp.PeriodStart) {
					forecastDemand[i] = forecastDemand[i].Add(fp.P50)
				}
			}
			for _, o := range firmOrders {
				if o.ProductCode != p.Code {
					continue
				}
				if shared.InWeek(b.Start, o.NeededBy) {
					firmDemand[i] = firmDemand[i].Add(o.Quantity)
				}
			}
			forecastDemand[i] = shared.Round4(forecastDemand[i])
			firmDemand[i] = shared.Round4(firmDemand[i])

			if i < params.FirmOrderHorizonWeeks {
				mpsDemand[i] = shared.MaxDecimal(forecastDemand[i], firmDemand[i])
			} else {
				mpsDemand[i] = forecastDemand[i]
			}
			totals[i] = shared.Round4(totals[i].Add(mpsDemand[i]))
		}

		schedules = append(schedules, ProductSchedule{
			ProductCode:     p.Code,
			Buckets:         buckets,
			ForecastDemand:  forecastDemand,
			FirmOrderDemand: firmDemand,
			MPSDemand:       mpsDemand,
		})
	}

	return Result{Schedules: schedules, Totals: totals, Warnings: warnings}, nil
}
