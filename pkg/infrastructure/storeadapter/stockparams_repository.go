package storeadapter

import (
	"context"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/domain/repositories"
)

// StockParamsRepository is an in-memory per-(execution, product) safety
// stock/ROP/min/max/EOQ store.
type StockParamsRepository struct {
	rows []entities.StockParams
}

// NewStockParamsRepository builds an empty stock-params repository.
func NewStockParamsRepository() *StockParamsRepository {
	return &StockParamsRepository{}
}

var _ repositories.StockParamsRepository = (*StockParamsRepository)(nil)

// Upsert inserts or replaces the (ExecutionID, ProductCode) row.
func (r *StockParamsRepository) Upsert(ctx context.Context, params entities.StockParams) error {
	for i, p := range r.rows {
		if p.ExecutionID == params.ExecutionID && p.ProductCode == params.ProductCode {
			r.rows[i] = params
			return nil
		}
	}
	r.rows = append(r.rows, params)
	return nil
}

// ExistsForProduct reports whether any execution has a row for this product.
// Used by the stock-params stage's skip-if-already-computed shortcut.
func (r *StockParamsRepository) ExistsForProduct(ctx context.Context, productCode string) (bool, error) {
	for _, p := range r.rows {
		if p.ProductCode == productCode {
			return true, nil
		}
	}
	return false, nil
}

// List returns a paginated view of an execution's stock-params rows.
func (r *StockParamsRepository) List(ctx context.Context, executionID string, page, limit int) (repositories.Page[entities.StockParams], error) {
	var matched []entities.StockParams
	for _, p := range r.rows {
		if p.ExecutionID == executionID {
			matched = append(matched, p)
		}
	}
	return repositories.Paginate(matched, page, limit), nil
}
