package storeadapter

import (
	"context"
	"sort"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/domain/repositories"
)

// RoutingRepository is an in-memory routing-step catalog.
type RoutingRepository struct {
	byProduct map[string][]entities.RoutingStep
}

// NewRoutingRepository builds an empty routing repository.
func NewRoutingRepository() *RoutingRepository {
	return &RoutingRepository{byProduct: make(map[string][]entities.RoutingStep)}
}

var _ repositories.RoutingRepository = (*RoutingRepository)(nil)

// Add inserts one routing step.
func (r *RoutingRepository) Add(step entities.RoutingStep) {
	r.byProduct[step.ProductCode] = append(r.byProduct[step.ProductCode], step)
}

// StepsForProduct returns a product's routing steps ordered by Sequence.
func (r *RoutingRepository) StepsForProduct(ctx context.Context, productCode string) ([]entities.RoutingStep, error) {
	steps := append([]entities.RoutingStep(nil), r.byProduct[productCode]...)
	sort.Slice(steps, func(i, j int) bool { return steps[i].Sequence < steps[j].Sequence })
	return steps, nil
}
