// Command montecarlo runs the standalone safety-stock Monte Carlo
// simulation for a single product against a scenario's CSV data and
// prints the resulting distribution summary.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vsinha/mrp-planner/pkg/application/services/stockparams"
	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/infrastructure/config"
	"github.com/vsinha/mrp-planner/pkg/infrastructure/ingest"
	"github.com/vsinha/mrp-planner/pkg/infrastructure/storeadapter"
)

func main() {
	var (
		scenarioDir  = flag.String("scenario", "", "Path to a scenario directory containing CSV files")
		productCode  = flag.String("product", "", "Product code to simulate")
		serviceLevel = flag.Float64("service-level", 0.95, "Target service level, e.g. 0.95")
		iterations   = flag.Int("iterations", 0, "Number of Monte Carlo iterations (0 = config/env default)")
	)
	flag.Parse()

	if *scenarioDir == "" || *productCode == "" {
		fmt.Fprintln(os.Stderr, "Error: -scenario and -product are required")
		flag.Usage()
		os.Exit(1)
	}

	cfg := config.Load()
	loader := ingest.NewLoader()

	products := storeadapter.NewProductRepository()
	productRows, err := loader.LoadProducts(filepath.Join(*scenarioDir, "products.csv"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading products: %v\n", err)
		os.Exit(1)
	}
	for _, p := range productRows {
		products.Add(p)
	}

	forecast := storeadapter.NewForecastRepository()
	fcRows, err := loader.LoadForecast(filepath.Join(*scenarioDir, "forecast.csv"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading forecast: %v\n", err)
		os.Exit(1)
	}
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

	suppliers := storeadapter.NewSupplierRepository()
	if supplierRows, err := loader.LoadSuppliers(filepath.Join(*scenarioDir, "suppliers.csv")); err == nil {
		for _, s := range supplierRows {
			suppliers.AddSupplier(s)
		}
		if linkRows, err := loader.LoadSupplierLinks(filepath.Join(*scenarioDir, "supplier_links.csv")); err == nil {
			for _, l := range linkRows {
				suppliers.AddLink(l)
			}
		}
	}

	svc := stockparams.NewService(products, forecast, suppliers, storeadapter.NewStockParamsRepository())

	iters := *iterations
	if iters <= 0 {
		iters = cfg.MonteCarloIterations
	}

	result, err := svc.RunMonteCarloSimulation(context.Background(), *productCode, *serviceLevel, iters, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running simulation: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)
}
