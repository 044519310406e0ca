package storeadapter

import (
	"context"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/domain/repositories"
)

// SupplierRepository is an in-memory supplier and supplier-link catalog,
// plus a product's historical realized lead-time observations.
type SupplierRepository struct {
	suppliers       map[string]entities.Supplier
	linksByProduct  map[string][]entities.SupplierLink
	leadTimeHistory map[string][]float64
}

// NewSupplierRepository builds an empty supplier repository.
func NewSupplierRepository() *SupplierRepository {
	return &SupplierRepository{
		suppliers:       make(map[string]entities.Supplier),
		linksByProduct:  make(map[string][]entities.SupplierLink),
		leadTimeHistory: make(map[string][]float64),
	}
}

var _ repositories.SupplierRepository = (*SupplierRepository)(nil)

// AddSupplier inserts or replaces a supplier by ID.
func (r *SupplierRepository) AddSupplier(s entities.Supplier) {
	r.suppliers[s.ID] = s
}

// AddLink attaches a supplier link to its product.
func (r *SupplierRepository) AddLink(link entities.SupplierLink) {
	r.linksByProduct[link.ProductCode] = append(r.linksByProduct[link.ProductCode], link)
}

// SetLeadTimeObservations records historical realized lead times (days),
// most-recent first, for a product.
func (r *SupplierRepository) SetLeadTimeObservations(productCode string, days []float64) {
	r.leadTimeHistory[productCode] = days
}

// GetSupplier returns the supplier with the given ID, or nil if absent.
func (r *SupplierRepository) GetSupplier(ctx context.Context, id string) (*entities.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// LinksForProduct returns every supplier link for a product.
func (r *SupplierRepository) LinksForProduct(ctx context.Context, productCode string) ([]entities.SupplierLink, error) {
	return r.linksByProduct[productCode], nil
}

// LeadTimeObservationsDays returns the recorded lead-time history for a
// product, or nil if none was seeded.
func (r *SupplierRepository) LeadTimeObservationsDays(ctx context.Context, productCode string) ([]float64, error) {
	return r.leadTimeHistory[productCode], nil
}
