// Command mrpd runs the eight-stage MRP pipeline once against a scenario
// directory of CSV files and prints the resulting summary.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vsinha/mrp-planner/pkg/application/services/actionmsg"
	"github.com/vsinha/mrp-planner/pkg/application/services/bom"
	"github.com/vsinha/mrp-planner/pkg/application/services/crp"
	"github.com/vsinha/mrp-planner/pkg/application/services/lotsize"
	"github.com/vsinha/mrp-planner/pkg/application/services/mps"
	"github.com/vsinha/mrp-planner/pkg/application/services/ordergen"
	"github.com/vsinha/mrp-planner/pkg/application/services/orchestration"
	"github.com/vsinha/mrp-planner/pkg/application/services/stockparams"
	"github.com/vsinha/mrp-planner/pkg/application/services/storagevalidate"
	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/infrastructure/config"
	"github.com/vsinha/mrp-planner/pkg/infrastructure/ingest"
	"github.com/vsinha/mrp-planner/pkg/infrastructure/logging"
	"github.com/vsinha/mrp-planner/pkg/infrastructure/storeadapter"
)

func main() {
	var (
		scenarioDir  = flag.String("scenario", "", "Path to a scenario directory containing CSV files")
		horizon      = flag.Int("horizon", 0, "Planning horizon in weeks (0 = use config/env default)")
		firmHorizon  = flag.Int("firm-horizon", -1, "Firm-order horizon in weeks (-1 = use config/env default)")
		forceRecalc  = flag.Bool("force-recalc", false, "Recompute stock parameters even if already present")
		format       = flag.String("format", "text", "Output format: text or json")
	)
	flag.Parse()

	if *scenarioDir == "" {
		fmt.Fprintln(os.Stderr, "Error: -scenario is required")
		flag.Usage()
		os.Exit(1)
	}

	log := logging.New()
	cfg := config.Load()

	products := storeadapter.NewProductRepository()
	boms := storeadapter.NewBOMRepository()
	suppliers := storeadapter.NewSupplierRepository()
	routing := storeadapter.NewRoutingRepository()
	workCenters := storeadapter.NewWorkCenterRepository()
	warehouses := storeadapter.NewWarehouseRepository()
	inventory := storeadapter.NewInventoryRepository()
	forecast := storeadapter.NewForecastRepository()
	orders := storeadapter.NewOrderRepository()
	executions := storeadapter.NewExecutionRepository()
	stockParamsRepo := storeadapter.NewStockParamsRepository()
	capacityRepo := storeadapter.NewCapacityLoadRepository()

	if err := loadScenario(*scenarioDir, products, boms, suppliers, routing, workCenters, warehouses, inventory, forecast); err != nil {
		log.Error().Err(err).Msg("failed to load scenario")
		os.Exit(1)
	}

	orch := &orchestration.Orchestrator{
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

		Log: log,
	}

	planningWeeks := cfg.PlanningHorizonWeeks
	if *horizon > 0 {
		planningWeeks = *horizon
	}
	firmWeeks := cfg.FirmOrderHorizonWeeks
	if *firmHorizon >= 0 {
		firmWeeks = *firmHorizon
	}

	result, err := orch.Execute(context.Background(), entities.RunParams{
		PlanningHorizonWeeks:  planningWeeks,
		FirmOrderHorizonWeeks: firmWeeks,
		ForceRecalculate:      *forceRecalc,
	})
	if err != nil {
		log.Error().Err(err).Msg("execution failed")
		os.Exit(1)
	}

	switch *format {
	case "json":
		printJSON(result)
	default:
		printText(result)
	}
}

func loadScenario(dir string,
	products *storeadapter.ProductRepository,
	boms *storeadapter.BOMRepository,
	suppliers *storeadapter.SupplierRepository,
	routing *storeadapter.RoutingRepository,
	workCenters *storeadapter.WorkCenterRepository,
	warehouses *storeadapter.WarehouseRepository,
	inventory *storeadapter.InventoryRepository,
	forecast *storeadapter.ForecastRepository,
) error {
	loader := ingest.NewLoader()

	productRows, err := loader.LoadProducts(filepath.Join(dir, "products.csv"))
	if err != nil {
		return fmt.Errorf("products: %w", err)
	}
	for _, p := range productRows {
		products.Add(p)
	}

	bomRows, err := loader.LoadBOM(filepath.Join(dir, "bom.csv"))
	if err != nil {
		return fmt.Errorf("bom: %w", err)
	}
	for _, l := range bomRows {
		boms.Add(l)
	}

	if supplierRows, err := loader.LoadSuppliers(filepath.Join(dir, "suppliers.csv")); err == nil {
		for _, s := range supplierRows {
			suppliers.AddSupplier(s)
		}
		if linkRows, err := loader.LoadSupplierLinks(filepath.Join(dir, "supplier_links.csv")); err == nil {
			for _, l := range linkRows {
				suppliers.AddLink(l)
			}
		}
	}

	if routingRows, err := loader.LoadRouting(filepath.Join(dir, "routing.csv")); err == nil {
		for _, r := range routingRows {
			routing.Add(r)
		}
	}

	if wcRows, err := loader.LoadWorkCenters(filepath.Join(dir, "workcenters.csv")); err == nil {
		for _, wc := range wcRows {
			workCenters.Add(wc)
		}
		workCenters.SetCalendar(fullYearWorkingCalendar(time.Now().UTC()))
	}

	if whRows, err := loader.LoadWarehouses(filepath.Join(dir, "warehouses.csv")); err == nil {
		for _, w := range whRows {
			warehouses.Add(w)
		}
	}

	invRows, err := loader.LoadInventory(filepath.Join(dir, "inventory.csv"))
	if err != nil {
		return fmt.Errorf("inventory: %w", err)
	}
	for _, s := range invRows {
		inventory.Add(s)
	}

	if fcRows, err := loader.LoadForecast(filepath.Join(dir, "forecast.csv")); err == nil {
		byProduct := map[string][]entities.ForecastPoint{}
		for _, pt := range fcRows {
			byProduct[pt.ProductCode] = append(byProduct[pt.ProductCode], pt)
		}
		for code, pts := range byProduct {
			forecast.SetLatestCompletedPoints(code, pts)
			history := make([]float64, len(pts))
			for i, pt := range pts {
				history[i] = pt.P50.InexactFloat64()
			}
			forecast.SetWeeklyHistory(code, history)
		}
	}

	return nil
}

// fullYearWorkingCalendar marks every weekday as WORKING and every
// Saturday/Sunday as NON_WORKING for a year starting from from.
func fullYearWorkingCalendar(from time.Time) []entities.CalendarDay {
	var days []entities.CalendarDay
	for i := 0; i < 365; i++ {
		d := from.AddDate(0, 0, i)
		typ := entities.DayWorking
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			typ = entities.DayNonWorking
		}
		days = append(days, entities.CalendarDay{Date: d, Type: typ})
	}
	return days
}

func printText(result orchestration.RunResult) {
	fmt.Printf("Execution %s: %s\n", result.ExecutionID, result.Status)
	if result.Summary == nil {
		return
	}
	s := result.Summary
	fmt.Printf("Products planned:     %d\n", s.ProductsPlanned)
	fmt.Printf("Orders generated:      %d\n", s.OrdersGenerated)
	fmt.Printf("Action messages:       %d\n", s.ActionMessages)
	fmt.Printf("Capacity load rows:    %d\n", s.CapacityRows)
	fmt.Printf("Storage projections:  %d\n", s.StorageProjections)
	fmt.Printf("Stock params skipped:  %d\n", s.SkippedStockParams)
	fmt.Println("Stage durations:")
	for _, sd := range s.StageDurations {
		fmt.Printf("  %-18s %dms\n", sd.StepName, sd.DurationMs)
	}
}

func printJSON(result orchestration.RunResult) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)
}
