package storeadapter

import (
	"context"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/domain/repositories"
)

// InventoryRepository is an in-memory current-stock snapshot store.
type InventoryRepository struct {
	rows []entities.InventorySnapshot
}

// NewInventoryRepository builds an empty inventory repository.
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{}
}

var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// Add inserts a snapshot row.
func (r *InventoryRepository) Add(snap entities.InventorySnapshot) {
	r.rows = append(r.rows, snap)
}

// SnapshotsForProduct returns every warehouse snapshot for a product.
func (r *InventoryRepository) SnapshotsForProduct(ctx context.Context, productCode string) ([]entities.InventorySnapshot, error) {
	var out []entities.InventorySnapshot
	for _, s := range r.rows {
		if s.ProductCode == productCode {
			out = append(out, s)
		}
	}
	return out, nil
}

// AllSnapshots returns every snapshot row.
func (r *InventoryRepository) AllSnapshots(ctx context.Context) ([]entities.InventorySnapshot, error) {
	return r.rows, nil
}
