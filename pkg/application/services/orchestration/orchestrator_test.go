package orchestration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/mrp-planner/pkg/application/services/actionmsg"
	"github.com/vsinha/mrp-planner/pkg/application/services/bom"
	"github.com/vsinha/mrp-planner/pkg/application/services/crp"
	"github.com/vsinha/mrp-planner/pkg/application/services/lotsize"
	"github.com/vsinha/mrp-planner/pkg/application/services/mps"
	"github.com/vsinha/mrp-planner/pkg/application/services/ordergen"
	"github.com/vsinha/mrp-planner/pkg/application/services/stockparams"
	"github.com/vsinha/mrp-planner/pkg/application/services/storagevalidate"
	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/infrastructure/storeadapter"
)

func buildTestOrchestrator(t *testing.T, monday time.Time) (*Orchestrator, *storeadapter.ExecutionRepository) {
	t.Helper()

	products := storeadapter.NewProductRepository()
	products.Add(entities.Product{
		Code: "WIDGET", Kind: entities.KindFinished, Active: true,
		LotSizingMethod: entities.MethodL4L, UnitVolumeM3: decimal.NewFromInt(1),
		UnitCost: decimal.NewFromInt(10), OrderCostK: decimal.NewFromInt(50),
		AnnualHoldingPercent: decimal.NewFromInt(20), ProductionLeadTime: 7,
	})
	products.Add(entities.Product{
		Code: "PART", Kind: entities.KindRaw, Active: true,
		LotSizingMethod: entities.MethodL4L, UnitVolumeM3: decimal.NewFromFloat(0.1),
		UnitCost: decimal.NewFromInt(2), OrderCostK: decimal.NewFromInt(10),
		AnnualHoldingPercent: decimal.NewFromInt(15), ProductionLeadTime: 5,
	})

	boms := storeadapter.NewBOMRepository()
	boms.Add(entities.BOMLine{ParentCode: "WIDGET", ChildCode: "PART", QtyPer: decimal.NewFromInt(2), Active: true})

	suppliers := storeadapter.NewSupplierRepository()
	suppliers.AddSupplier(entities.Supplier{ID: "SUP1", Code: "SUP1"})
	suppliers.AddLink(entities.SupplierLink{ProductCode: "PART", SupplierID: "SUP1", IsPrincipal: true, UnitPrice: decimal.NewFromInt(2)})

	routing := storeadapter.NewRoutingRepository()
	routing.Add(entities.RoutingStep{ProductCode: "WIDGET", WorkCenter: "WC1", Sequence: 1, SetupMinutes: decimal.NewFromInt(30), UnitMinutes: decimal.NewFromFloat(0.5)})

	workCenters := storeadapter.NewWorkCenterRepository()
	workCenters.Add(entities.WorkCenter{
		Code: "WC1", EfficiencyPct: decimal.NewFromInt(100),
		Shifts: []entities.Shift{{
			WorkCenter: "WC1", StartTOD: 8 * time.Hour, EndTOD: 16 * time.Hour,
			Weekdays: map[time.Weekday]bool{time.Monday: true, time.Tuesday: true, time.Wednesday: true, time.Thursday: true, time.Friday: true},
		}},
	})
	var calendar []entities.CalendarDay
	for i := 0; i < 14; i++ {
		d := monday.AddDate(0, 0, i)
		typ := entities.DayWorking
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			typ = entities.DayNonWorking
		}
		calendar = append(calendar, entities.CalendarDay{Date: d, Type: typ})
	}
	workCenters.SetCalendar(calendar)

	warehouses := storeadapter.NewWarehouseRepository()
	warehouses.Add(entities.Warehouse{Code: "WH1", Active: true, CapacityM3: decimal.NewFromInt(1000)})

	inventory := storeadapter.NewInventoryRepository()
	inventory.Add(entities.InventorySnapshot{WarehouseCode: "WH1", ProductCode: "WIDGET", Available: decimal.NewFromInt(5)})
	inventory.Add(entities.InventorySnapshot{WarehouseCode: "WH1", ProductCode: "PART", Available: decimal.NewFromInt(20)})

	forecast := storeadapter.NewForecastRepository()
	var points []entities.ForecastPoint
	weeklyHistory := make([]float64, 12)
	for i := 0; i < 13; i++ {
		weekStart := monday.AddDate(0, 0, 7*i)
		points = append(points, entities.ForecastPoint{
			ProductCode: "WIDGET", PeriodStart: weekStart,
			P50: decimal.NewFromInt(10), P75: decimal.NewFromInt(12), P90: decimal.NewFromInt(15),
		})
	}
	forecast.SetLatestCompletedPoints("WIDGET", points)
	for i := range weeklyHistory {
		weeklyHistory[i] = 10
	}
	forecast.SetWeeklyHistory("WIDGET", weeklyHistory)
	forecast.SetWeeklyHistory("PART", weeklyHistory)

	orders := storeadapter.NewOrderRepository()
	executions := storeadapter.NewExecutionRepository()
	stockParamsRepo := storeadapter.NewStockParamsRepository()
	capacityRepo := storeadapter.NewCapacityLoadRepository()

	orch := &Orchestrator{
		Executions: executions,
		Products:   products,
		Suppliers:  suppliers,
		Inventory:  inventory,
		Orders:     orders,

		MPS:             mps.NewService(products, orders, forecast),
		StockParams:     stockparams.NewService(products, forecast, suppliers, stockParamsRepo),
		BOM:             bom.NewService(boms),
		LotSize:         lotsize.NewService(),
		OrderGen:        ordergen.NewService(suppliers, routing, workCenters, orders),
		ActionMsg:       actionmsg.NewService(orders),
		CRP:             crp.NewService(workCenters, routing, capacityRepo),
		StorageValidate: storagevalidate.NewService(warehouses, inventory, products),

		Now: func() time.Time { return monday },
	}
	return orch, executions
}

func TestOrchestrator_ExecuteFullPipeline(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	orch, executions := buildTestOrchestrator(t, monday)

	result, err := orch.Execute(context.Background(), entities.RunParams{
		PlanningHorizonWeeks: 13, FirmOrderHorizonWeeks: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != entities.ExecCompleted {
		t.Fatalf("expected COMPLETED, got %v (%s)", result.Status, result.Message)
	}
	if result.Summary == nil {
		t.Fatal("expected a summary")
	}
	if len(result.Summary.StageDurations) != 8 {
		t.Errorf("expected 8 stage durations, got %d", len(result.Summary.StageDurations))
	}
	if result.Summary.ProductsPlanned == 0 {
		t.Error("expected at least one planned product")
	}
	if result.Summary.OrdersGenerated == 0 {
		t.Error("expected at least one generated order")
	}

	steps, err := executions.StepLogsFor(context.Background(), result.ExecutionID)
	if err != nil {
		t.Fatalf("unexpected error fetching step logs: %v", err)
	}
	if len(steps) != 8 {
		t.Fatalf("expected 8 step logs, got %d", len(steps))
	}
	for _, s := range steps {
		if s.Status != entities.StepCompleted {
			t.Errorf("step %s not completed: %v", s.StepName, s.Status)
		}
	}
}

func TestOrchestrator_RejectsConcurrentRun(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	orch, executions := buildTestOrchestrator(t, monday)

	started := monday
	if err := executions.Create(context.Background(), entities.Execution{ID: "already-running", Status: entities.ExecRunning, StartedAt: &started}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	_, err := orch.Execute(context.Background(), entities.RunParams{})
	if err == nil {
		t.Fatal("expected concurrency conflict error")
	}
}
