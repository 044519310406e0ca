package storeadapter

import (
	"context"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/domain/repositories"
)

// WarehouseRepository is an in-memory warehouse catalog.
type WarehouseRepository struct {
	rows []entities.Warehouse
}

// NewWarehouseRepository builds an empty warehouse repository.
func NewWarehouseRepository() *WarehouseRepository {
	return &WarehouseRepository{}
}

var _ repositories.WarehouseRepository = (*WarehouseRepository)(nil)

// Add inserts a warehouse.
func (r *WarehouseRepository) Add(w entities.Warehouse) {
	r.rows = append(r.rows, w)
}

// ListActive returns every active warehouse.
func (r *WarehouseRepository) ListActive(ctx context.Context) ([]entities.Warehouse, error) {
	var out []entities.Warehouse
	for _, w := range r.rows {
		if w.Active {
			out = append(out, w)
		}
	}
	return out, nil
}
