// Package ingest loads a planning scenario (products, BOM, suppliers,
// routings, work centers, warehouses, inventory, forecasts) from a
// directory of CSV files as entity slices, which callers add to the
// in-memory storeadapter repositories.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
)

// Loader reads MRP scenario data from CSV files.
type Loader struct{}

// NewLoader builds a CSV scenario loader.
func NewLoader() *Loader {
	return &Loader{}
}

func readRecords(filename string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: must have a header and at least one data row", filename)
	}
	return records, nil
}

func validateHeader(filename string, actual, expected []string) error {
	if len(actual) != len(expected) {
		return fmt.Errorf("%s: header column count mismatch, expected %v got %v", filename, expected, actual)
	}
	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return fmt.Errorf("%s: header mismatch, expected %v got %v", filename, expected, actual)
		}
	}
	return nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func parseOptionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true") || s == "1"
}

// LoadProducts reads products.csv:
// code,description,kind,abc_class,unit_volume_m3,lot_sizing_method,minimum_lot,purchase_multiple,production_lead_time,unit_cost,order_cost_k,annual_holding_percent,review_interval_days,active
func (l *Loader) LoadProducts(filename string) ([]entities.Product, error) {
	expected := []string{
		"code", "description", "kind", "abc_class", "unit_volume_m3", "lot_sizing_method",
		"minimum_lot", "purchase_multiple", "production_lead_time", "unit_cost", "order_cost_k",
		"annual_holding_percent", "review_interval_days", "active",
	}
	records, err := readRecords(filename)
	if err != nil {
		return nil, err
	}
	if err := validateHeader(filename, records[0], expected); err != nil {
		return nil, err
	}

	var products []entities.Product
	for i, row := range records[1:] {
		if len(row) != len(expected) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", filename, i+2, len(expected), len(row))
		}
		p, err := parseProduct(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", filename, i+2, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func parseProduct(row []string) (entities.Product, error) {
	volume, err := parseDecimal(row[4])
	if err != nil {
		return entities.Product{}, fmt.Errorf("invalid unit_volume_m3: %w", err)
	}
	minLot, err := parseDecimal(row[6])
	if err != nil {
		return entities.Product{}, fmt.Errorf("invalid minimum_lot: %w", err)
	}
	purchaseMultiple, err := parseDecimal(row[7])
	if err != nil {
		return entities.Product{}, fmt.Errorf("invalid purchase_multiple: %w", err)
	}
	leadTime, err := strconv.Atoi(row[8])
	if err != nil {
		return entities.Product{}, fmt.Errorf("invalid production_lead_time: %w", err)
	}
	unitCost, err := parseDecimal(row[9])
	if err != nil {
		return entities.Product{}, fmt.Errorf("invalid unit_cost: %w", err)
	}
	orderCostK, err := parseDecimal(row[10])
	if err != nil {
		return entities.Product{}, fmt.Errorf("invalid order_cost_k: %w", err)
	}
	holdingPct, err := parseDecimal(row[11])
	if err != nil {
		return entities.Product{}, fmt.Errorf("invalid annual_holding_percent: %w", err)
	}
	reviewDays, err := strconv.Atoi(row[12])
	if err != nil {
		return entities.Product{}, fmt.Errorf("invalid review_interval_days: %w", err)
	}

	return entities.Product{
		Code: row[0], Description: row[1],
		Kind:                 entities.ProductKind(strings.ToUpper(row[2])),
		ABCClass:             strings.ToUpper(row[3]),
		UnitVolumeM3:         volume,
		LotSizingMethod:      entities.LotSizingMethod(strings.ToUpper(row[5])),
		MinimumLot:           minLot,
		PurchaseMultiple:     purchaseMultiple,
		ProductionLeadTime:   leadTime,
		UnitCost:             unitCost,
		OrderCostK:           orderCostK,
		AnnualHoldingPercent: holdingPct,
		ReviewIntervalDays:   reviewDays,
		Active:               parseBool(row[13]),
	}, nil
}

// LoadBOM reads bom.csv: parent_code,child_code,qty_per,loss_percent,active
func (l *Loader) LoadBOM(filename string) ([]entities.BOMLine, error) {
	expected := []string{"parent_code", "child_code", "qty_per", "loss_percent", "active"}
	records, err := readRecords(filename)
	if err != nil {
		return nil, err
	}
	if err := validateHeader(filename, records[0], expected); err != nil {
		return nil, err
	}

	var lines []entities.BOMLine
	for i, row := range records[1:] {
		if len(row) != len(expected) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", filename, i+2, len(expected), len(row))
		}
		qtyPer, err := parseDecimal(row[2])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid qty_per: %w", filename, i+2, err)
		}
		lossPct, err := parseDecimal(row[3])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid loss_percent: %w", filename, i+2, err)
		}
		lines = append(lines, entities.BOMLine{
			ParentCode: row[0], ChildCode: row[1], QtyPer: qtyPer, LossPercent: lossPct,
			Active: parseBool(row[4]),
		})
	}
	return lines, nil
}

// LoadSuppliers reads suppliers.csv: code,name,default_lead_time,min_lead_time,max_lead_time
func (l *Loader) LoadSuppliers(filename string) ([]entities.Supplier, error) {
	expected := []string{"code", "name", "default_lead_time", "min_lead_time", "max_lead_time"}
	records, err := readRecords(filename)
	if err != nil {
		return nil, err
	}
	if err := validateHeader(filename, records[0], expected); err != nil {
		return nil, err
	}

	var suppliers []entities.Supplier
	for i, row := range records[1:] {
		if len(row) != len(expected) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", filename, i+2, len(expected), len(row))
		}
		defLead, err := parseOptionalInt(row[2])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid default_lead_time: %w", filename, i+2, err)
		}
		minLead, err := parseOptionalInt(row[3])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid min_lead_time: %w", filename, i+2, err)
		}
		maxLead, err := parseOptionalInt(row[4])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid max_lead_time: %w", filename, i+2, err)
		}
		suppliers = append(suppliers, entities.Supplier{
			ID: row[0], Code: row[0], Name: row[1],
			DefaultLeadTime: defLead, MinLeadTime: minLead, MaxLeadTime: maxLead,
		})
	}
	return suppliers, nil
}

// LoadSupplierLinks reads supplier_links.csv: product_code,supplier_code,lead_time,moq,unit_price,is_principal
func (l *Loader) LoadSupplierLinks(filename string) ([]entities.SupplierLink, error) {
	expected := []string{"product_code", "supplier_code", "lead_time", "moq", "unit_price", "is_principal"}
	records, err := readRecords(filename)
	if err != nil {
		return nil, err
	}
	if err := validateHeader(filename, records[0], expected); err != nil {
		return nil, err
	}

	var links []entities.SupplierLink
	for i, row := range records[1:] {
		if len(row) != len(expected) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", filename, i+2, len(expected), len(row))
		}
		leadTime, err := parseOptionalInt(row[2])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid lead_time: %w", filename, i+2, err)
		}
		moq, err := parseDecimal(row[3])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid moq: %w", filename, i+2, err)
		}
		price, err := parseDecimal(row[4])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid unit_price: %w", filename, i+2, err)
		}
		links = append(links, entities.SupplierLink{
			ProductCode: row[0], SupplierID: row[1], LeadTime: leadTime,
			MOQ: moq, UnitPrice: price, IsPrincipal: parseBool(row[5]),
		})
	}
	return links, nil
}

// LoadRouting reads routing.csv: product_code,work_center,sequence,setup_minutes,unit_minutes
func (l *Loader) LoadRouting(filename string) ([]entities.RoutingStep, error) {
	expected := []string{"product_code", "work_center", "sequence", "setup_minutes", "unit_minutes"}
	records, err := readRecords(filename)
	if err != nil {
		return nil, err
	}
	if err := validateHeader(filename, records[0], expected); err != nil {
		return nil, err
	}

	var steps []entities.RoutingStep
	for i, row := range records[1:] {
		if len(row) != len(expected) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", filename, i+2, len(expected), len(row))
		}
		seq, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid sequence: %w", filename, i+2, err)
		}
		setup, err := parseDecimal(row[3])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid setup_minutes: %w", filename, i+2, err)
		}
		unit, err := parseDecimal(row[4])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid unit_minutes: %w", filename, i+2, err)
		}
		steps = append(steps, entities.RoutingStep{
			ProductCode: row[0], WorkCenter: row[1], Sequence: seq,
			SetupMinutes: setup, UnitMinutes: unit,
		})
	}
	return steps, nil
}

// LoadWorkCenters reads workcenters.csv: code,name,efficiency_pct,cost_per_hour,shift_start,shift_end,shift_weekdays
// shift_weekdays is a comma-free string of digits 1-7 (Monday=1) inside the field, e.g. "12345".
func (l *Loader) LoadWorkCenters(filename string) ([]entities.WorkCenter, error) {
	expected := []string{"code", "name", "efficiency_pct", "cost_per_hour", "shift_start", "shift_end", "shift_weekdays"}
	records, err := readRecords(filename)
	if err != nil {
		return nil, err
	}
	if err := validateHeader(filename, records[0], expected); err != nil {
		return nil, err
	}

	var centers []entities.WorkCenter
	for i, row := range records[1:] {
		if len(row) != len(expected) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", filename, i+2, len(expected), len(row))
		}
		wc, err := parseWorkCenter(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", filename, i+2, err)
		}
		centers = append(centers, wc)
	}
	return centers, nil
}

func parseWorkCenter(row []string) (entities.WorkCenter, error) {
	efficiency, err := parseDecimal(row[2])
	if err != nil {
		return entities.WorkCenter{}, fmt.Errorf("invalid efficiency_pct: %w", err)
	}
	var costPerHour *decimal.Decimal
	if row[3] != "" {
		c, err := parseDecimal(row[3])
		if err != nil {
			return entities.WorkCenter{}, fmt.Errorf("invalid cost_per_hour: %w", err)
		}
		costPerHour = &c
	}

	shiftStart, err := parseTimeOfDay(row[4])
	if err != nil {
		return entities.WorkCenter{}, fmt.Errorf("invalid shift_start: %w", err)
	}
	shiftEnd, err := parseTimeOfDay(row[5])
	if err != nil {
		return entities.WorkCenter{}, fmt.Errorf("invalid shift_end: %w", err)
	}
	weekdays := map[time.Weekday]bool{}
	for _, r := range row[6] {
		d, err := strconv.Atoi(string(r))
		if err != nil || d < 1 || d > 7 {
			return entities.WorkCenter{}, fmt.Errorf("invalid shift_weekdays digit: %q", r)
		}
		weekdays[time.Weekday(d%7)] = true // 7 -> Sunday(0), 1..6 -> Mon..Sat
	}

	return entities.WorkCenter{
		Code: row[0], Name: row[1], EfficiencyPct: efficiency, CostPerHour: costPerHour,
		Shifts: []entities.Shift{{
			WorkCenter: row[0], StartTOD: shiftStart, EndTOD: shiftEnd, Weekdays: weekdays,
		}},
	}, nil
}

func parseTimeOfDay(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// LoadWarehouses reads warehouses.csv: code,name,capacity_m3,active
func (l *Loader) LoadWarehouses(filename string) ([]entities.Warehouse, error) {
	expected := []string{"code", "name", "capacity_m3", "active"}
	records, err := readRecords(filename)
	if err != nil {
		return nil, err
	}
	if err := validateHeader(filename, records[0], expected); err != nil {
		return nil, err
	}

	var warehouses []entities.Warehouse
	for i, row := range records[1:] {
		if len(row) != len(expected) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", filename, i+2, len(expected), len(row))
		}
		capacity, err := parseDecimal(row[2])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid capacity_m3: %w", filename, i+2, err)
		}
		warehouses = append(warehouses, entities.Warehouse{
			Code: row[0], Name: row[1], CapacityM3: capacity, Active: parseBool(row[3]),
		})
	}
	return warehouses, nil
}

// LoadInventory reads inventory.csv: warehouse_code,product_code,available,reserved
func (l *Loader) LoadInventory(filename string) ([]entities.InventorySnapshot, error) {
	expected := []string{"warehouse_code", "product_code", "available", "reserved"}
	records, err := readRecords(filename)
	if err != nil {
		return nil, err
	}
	if err := validateHeader(filename, records[0], expected); err != nil {
		return nil, err
	}

	var snapshots []entities.InventorySnapshot
	for i, row := range records[1:] {
		if len(row) != len(expected) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", filename, i+2, len(expected), len(row))
		}
		available, err := parseDecimal(row[2])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid available: %w", filename, i+2, err)
		}
		reserved, err := parseDecimal(row[3])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid reserved: %w", filename, i+2, err)
		}
		snapshots = append(snapshots, entities.InventorySnapshot{
			WarehouseCode: row[0], ProductCode: row[1], Available: available, Reserved: reserved,
		})
	}
	return snapshots, nil
}

// LoadForecast reads forecast.csv: product_code,period_start,p10,p25,p50,p75,p90
// period_start is YYYY-MM-DD (must fall on a Monday, the bucket convention
// used throughout the planning core).
func (l *Loader) LoadForecast(filename string) ([]entities.ForecastPoint, error) {
	expected := []string{"product_code", "period_start", "p10", "p25", "p50", "p75", "p90"}
	records, err := readRecords(filename)
	if err != nil {
		return nil, err
	}
	if err := validateHeader(filename, records[0], expected); err != nil {
		return nil, err
	}

	var points []entities.ForecastPoint
	for i, row := range records[1:] {
		if len(row) != len(expected) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", filename, i+2, len(expected), len(row))
		}
		periodStart, err := time.Parse("2006-01-02", row[1])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid period_start: %w", filename, i+2, err)
		}
		quantiles := make([]decimal.Decimal, 5)
		for qi, col := range row[2:7] {
			quantiles[qi], err = parseDecimal(col)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: invalid quantile column %d: %w", filename, i+2, qi, err)
			}
		}
		points = append(points, entities.ForecastPoint{
			Status: entities.ForecastCompleted, ProductCode: row[0], PeriodStart: periodStart,
			P10: quantiles[0], P25: quantiles[1], P50: quantiles[2], P75: quantiles[3], P90: quantiles[4],
		})
	}
	return points, nil
}
