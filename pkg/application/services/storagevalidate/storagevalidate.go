// Package storagevalidate projects cumulative per-warehouse storage
// volume across the planning horizon and classifies it by severity.
package storagevalidate

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/domain/repositories"
	"github.com/vsinha/mrp-planner/pkg/shared"
)

// Service computes storage projections. Rows are never persisted; they
// are surfaced only in the run summary (see §3 lifecycle).
type Service struct {
	Warehouses repositories.WarehouseRepository
	Inventory  repositories.InventoryRepository
	Products   repositories.ProductRepository
}

// NewService wires the storage-validation stage.
func NewService(warehouses repositories.WarehouseRepository, inventory repositories.InventoryRepository, products repositories.ProductRepository) *Service {
	return &Service{Warehouses: warehouses, Inventory: inventory, Products: products}
}

// Run projects per-warehouse cumulative volume across buckets. incoming
// and outgoing are, per product code, one volume-bearing quantity per
// bucket index: incoming from planned-order receipts, outgoing from BOM
// gross requirements.
func (s *Service) Run(ctx context.Context, buckets []shared.Bucket, incomingQty, outgoingQty map[string][]decimal.Decimal) ([]entities.StorageProjection, error) {
	warehouses, err := s.Warehouses.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("storagevalidate: list warehouses: %w", err)
	}

	var capacitated []entities.Warehouse
	for _, w := range warehouses {
		if w.CapacityM3.GreaterThan(decimal.Zero) {
			capacitated = append(capacitated, w)
		}
	}
	if len(capacitated) == 0 {
		return nil, nil
	}

	snapshots, err := s.Inventory.AllSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("storagevalidate: all snapshots: %w", err)
	}

	productVolume := map[string]decimal.Decimal{}
	productHomes := map[string][]string{}
	for _, snap := range snapshots {
		productHomes[snap.ProductCode] = append(productHomes[snap.ProductCode], snap.WarehouseCode)
	}

	initialByWarehouse := map[string]decimal.Decimal{}
	for _, snap := range snapshots {
		vol, ok := productVolume[snap.ProductCode]
		if !ok {
			p, err := s.Products.GetByCode(ctx, snap.ProductCode)
			if err != nil {
				return nil, fmt.Errorf("storagevalidate: product %s: %w", snap.ProductCode, err)
			}
			if p != nil {
				vol = p.UnitVolumeM3
			}
			productVolume[snap.ProductCode] = vol
		}
		initialByWarehouse[snap.WarehouseCode] = initialByWarehouse[snap.WarehouseCode].Add(snap.NetAvailable().Mul(vol))
	}

	var out []entities.StorageProjection
	for _, w := range capacitated {
		running := shared.ZeroFloor(shared.Round4(initialByWarehouse[w.Code]))

		for i, b := range buckets {
			in := volumeFor(incomingQty, i, w.Code, productHomes, productVolume)
			out_ := volumeFor(outgoingQty, i, w.Code, productHomes, productVolume)

			running = shared.ZeroFloor(shared.Round4(running.Add(in).Sub(out_)))

			util := decimal.Zero
			if w.CapacityM3.GreaterThan(decimal.Zero) {
				util = shared.Round2(running.Div(w.CapacityM3).Mul(decimal.NewFromInt(100)))
			}

			out = append(out, entities.StorageProjection{
				WarehouseCode:   w.Code,
				WeekStart:       b.Start,
				ProjectedVolume: running,
				CapacityM3:      w.CapacityM3,
				Utilization:     util,
				Severity:        severityFor(util),
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].WarehouseCode != out[j].WarehouseCode {
			return out[i].WarehouseCode < out[j].WarehouseCode
		}
		return out[i].WeekStart.Before(out[j].WeekStart)
	})
	return out, nil
}

// volumeFor converts a per-product bucket quantity into the volume
// credited to warehouseCode, splitting evenly across a product's home
// warehouses when it is stocked in more than one.
func volumeFor(qtyByProduct map[string][]decimal.Decimal, bucketIdx int, warehouseCode string, homes map[string][]string, unitVolume map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for product, series := range qtyByProduct {
		if bucketIdx >= len(series) {
			continue
		}
		qty := series[bucketIdx]
		if qty.IsZero() {
			continue
		}
		productHomes := homes[product]
		if !contains(productHomes, warehouseCode) {
			continue
		}
		share := decimal.New(1, 0)
		if n := len(productHomes); n > 1 {
			share = decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(n)))
		}
		total = total.Add(qty.Mul(unitVolume[product]).Mul(share))
	}
	return total
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func severityFor(utilization decimal.Decimal) entities.StorageSeverity {
	switch {
	case utilization.LessThanOrEqual(decimal.NewFromInt(90)):
		return entities.SeverityOK
	case utilization.LessThanOrEqual(decimal.NewFromInt(95)):
		return entities.SeverityAlert
	default:
		return entities.SeverityCritical
	}
}
