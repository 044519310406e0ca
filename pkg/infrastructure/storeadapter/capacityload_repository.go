package storeadapter

import (
	"context"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/domain/repositories"
)

// CapacityLoadRepository is an in-memory per-(execution, work center,
// week) capacity-load store.
type CapacityLoadRepository struct {
	rows []entities.CapacityLoad
}

// NewCapacityLoadRepository builds an empty capacity-load repository.
func NewCapacityLoadRepository() *CapacityLoadRepository {
	return &CapacityLoadRepository{}
}

var _ repositories.CapacityLoadRepository = (*CapacityLoadRepository)(nil)

// BatchCreate appends newly computed capacity-load rows.
func (r *CapacityLoadRepository) BatchCreate(ctx context.Context, rows []entities.CapacityLoad) error {
	r.rows = append(r.rows, rows...)
	return nil
}

// List returns a paginated view of an execution's capacity-load rows.
func (r *CapacityLoadRepository) List(ctx context.Context, executionID string, page, limit int) (repositories.Page[entities.CapacityLoad], error) {
	var matched []entities.CapacityLoad
	for _, row := range r.rows {
		if row.ExecutionID == executionID {
			matched = append(matched, row)
		}
	}
	return repositories.Paginate(matched, page, limit), nil
}
