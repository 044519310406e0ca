package storeadapter

import (
	"context"
	"fmt"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/domain/repositories"
)

// OrderRepository is an in-memory planned-order book.
type OrderRepository struct {
	rows []entities.PlannedOrder
	byID map[string]int
}

// NewOrderRepository builds an empty order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{byID: make(map[string]int)}
}

var _ repositories.OrderRepository = (*OrderRepository)(nil)

// Seed inserts pre-existing orders (e.g. FIRM/RELEASED orders from a prior
// run) ahead of any pipeline-generated ones.
func (r *OrderRepository) Seed(orders ...entities.PlannedOrder) {
	for _, o := range orders {
		r.byID[o.ID] = len(r.rows)
		r.rows = append(r.rows, o)
	}
}

// FirmOrMakeOrders returns every order of the given kind and status.
func (r *OrderRepository) FirmOrMakeOrders(ctx context.Context, kind entities.OrderKind, status entities.OrderStatus) ([]entities.PlannedOrder, error) {
	var out []entities.PlannedOrder
	for _, o := range r.rows {
		if o.Kind == kind && o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

// FirmOrReleased returns a product's FIRM or RELEASED orders of the given kind.
func (r *OrderRepository) FirmOrReleased(ctx context.Context, productCode string, kind entities.OrderKind) ([]entities.PlannedOrder, error) {
	var out []entities.PlannedOrder
	for _, o := range r.rows {
		if o.ProductCode != productCode || o.Kind != kind {
			continue
		}
		if o.Status == entities.StatusFirm || o.Status == entities.StatusReleased {
			out = append(out, o)
		}
	}
	return out, nil
}

// BatchCreate appends newly generated planned orders.
func (r *OrderRepository) BatchCreate(ctx context.Context, orders []entities.PlannedOrder) error {
	r.Seed(orders...)
	return nil
}

// SetActionMessage attaches an action message to an existing order by ID.
func (r *OrderRepository) SetActionMessage(ctx context.Context, orderID string, message string) error {
	idx, ok := r.byID[orderID]
	if !ok {
		return fmt.Errorf("storeadapter: order not found: %s", orderID)
	}
	r.rows[idx].ActionMessage = &message
	return nil
}

// List returns a paginated, filtered view of the order book.
func (r *OrderRepository) List(ctx context.Context, filter repositories.OrderFilter, page, limit int) (repositories.Page[entities.PlannedOrder], error) {
	var matched []entities.PlannedOrder
	for _, o := range r.rows {
		if filter.ExecutionID != nil && o.ExecutionID != *filter.ExecutionID {
			continue
		}
		if filter.ProductCode != nil && o.ProductCode != *filter.ProductCode {
			continue
		}
		if filter.Kind != nil && o.Kind != *filter.Kind {
			continue
		}
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && o.Priority != *filter.Priority {
			continue
		}
		matched = append(matched, o)
	}
	return repositories.Paginate(matched, page, limit), nil
}
