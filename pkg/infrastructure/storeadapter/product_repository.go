// Package storeadapter provides in-memory implementations of every
// repository interface in pkg/domain/repositories, used by cmd/mrpd when
// no external database is configured and throughout the test suite.
package storeadapter

import (
	"context"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/domain/repositories"
)

// ProductRepository is an in-memory product catalog.
type ProductRepository struct {
	byCode map[string]entities.Product
	order  []string
}

// NewProductRepository builds an empty product catalog.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{byCode: make(map[string]entities.Product)}
}

var _ repositories.ProductRepository = (*ProductRepository)(nil)

// Add inserts or replaces a product by code.
func (r *ProductRepository) Add(p entities.Product) {
	if _, exists := r.byCode[p.Code]; !exists {
		r.order = append(r.order, p.Code)
	}
	r.byCode[p.Code] = p
}

// GetByCode returns the product with the given code, or nil if absent.
func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*entities.Product, error) {
	p, ok := r.byCode[code]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// ListActive returns every active product in insertion order.
func (r *ProductRepository) ListActive(ctx context.Context) ([]entities.Product, error) {
	var out []entities.Product
	for _, code := range r.order {
		if p := r.byCode[code]; p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

// ListActiveByKind returns every active product of the given kind.
func (r *ProductRepository) ListActiveByKind(ctx context.Context, kind entities.ProductKind) ([]entities.Product, error) {
	var out []entities.Product
	for _, code := range r.order {
		if p := r.byCode[code]; p.Active && p.Kind == kind {
			out = append(out, p)
		}
	}
	return out, nil
}
