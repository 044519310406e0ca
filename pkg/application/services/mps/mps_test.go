package mps

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/domain/repositories"
	"github.com/vsinha/mrp-planner/pkg/infrastructure/storeadapter"
)

func monday(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
}

func TestRun_BlendsForecastAndFirmOrders(t *testing.T) {
	wk := monday(t)

	products := storeadapter.NewProductRepository()
	products.Add(entities.Product{Code: "WIDGET", Kind: entities.KindFinished, Active: true})

	forecast := storeadapter.NewForecastRepository()
	forecast.SetLatestCompletedPoints("WIDGET", []entities.ForecastPoint{
		{ProductCode: "WIDGET", PeriodStart: wk, P50: decimal.NewFromInt(10)},
		{ProductCode: "WIDGET", PeriodStart: wk.AddDate(0, 0, 7), P50: decimal.NewFromInt(20)},
	})

	orders := storeadapter.NewOrderRepository()
	orders.Seed(entities.PlannedOrder{
		ProductCode: "WIDGET", Kind: entities.OrderMake, Status: entities.StatusFirm,
		Quantity: decimal.NewFromInt(15), NeededBy: wk,
	})

	svc := NewService(products, orders, forecast)
	res, err := svc.Run(context.Background(), Params{PlanningHorizonWeeks: 2, FirmOrderHorizonWeeks: 2, StartDate: wk})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Schedules) != 1 {
		t.Fatalf("expected 1 schedule, got %d", len(res.Schedules))
	}
	sched := res.Schedules[0]

	// week 0 is within the firm-order horizon: max(forecast=10, firm=15) = 15
	if !sched.MPSDemand[0].Equal(decimal.NewFromInt(15)) {
		t.Errorf("week0 MPS demand = %v, want 15", sched.MPSDemand[0])
	}
	// week 1 still within horizon (FirmOrderHorizonWeeks=2), no firm order there -> forecast 20
	if !sched.MPSDemand[1].Equal(decimal.NewFromInt(20)) {
		t.Errorf("week1 MPS demand = %v, want 20", sched.MPSDemand[1])
	}
}

func TestRun_BeyondFirmHorizonUsesForecastOnly(t *testing.T) {
	wk := monday(t)

	products := storeadapter.NewProductRepository()
	products.Add(entities.Product{Code: "WIDGET", Kind: entities.KindFinished, Active: true})

	forecast := storeadapter.NewForecastRepository()
	forecast.SetLatestCompletedPoints("WIDGET", []entities.ForecastPoint{
		{ProductCode: "WIDGET", PeriodStart: wk, P50: decimal.NewFromInt(5)},
	})

	orders := storeadapter.NewOrderRepository()
	orders.Seed(entities.PlannedOrder{
		ProductCode: "WIDGET", Kind: entities.OrderMake, Status: entities.StatusFirm,
		Quantity: decimal.NewFromInt(99), NeededBy: wk,
	})

	svc := NewService(products, orders, forecast)
	res, err := svc.Run(context.Background(), Params{PlanningHorizonWeeks: 1, FirmOrderHorizonWeeks: 0, StartDate: wk})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Schedules[0].MPSDemand[0].Equal(decimal.NewFromInt(5)) {
		t.Errorf("expected forecast-only demand of 5 beyond firm horizon, got %v", res.Schedules[0].MPSDemand[0])
	}
}

func TestRun_WarnsOnMissingForecast(t *testing.T) {
	wk := monday(t)
	products := storeadapter.NewProductRepository()
	products.Add(entities.Product{Code: "WIDGET", Kind: entities.KindFinished, Active: true})

	svc := NewService(products, storeadapter.NewOrderRepository(), storeadapter.NewForecastRepository())
	res, err := svc.Run(context.Background(), Params{PlanningHorizonWeeks: 1, StartDate: wk})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(res.Warnings))
	}
}

var _ repositories.ProductRepository = (*storeadapter.ProductRepository)(nil)
