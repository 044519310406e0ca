package storeadapter

import (
	"context"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/domain/repositories"
)

// BOMRepository is an in-memory Bill-of-Materials edge list.
type BOMRepository struct {
	lines    []entities.BOMLine
	byParent map[string][]int
}

// NewBOMRepository builds an empty BOM repository.
func NewBOMRepository() *BOMRepository {
	return &BOMRepository{byParent: make(map[string][]int)}
}

var _ repositories.BOMRepository = (*BOMRepository)(nil)

// Add inserts one parent-child BOM line.
func (r *BOMRepository) Add(line entities.BOMLine) {
	idx := len(r.lines)
	r.lines = append(r.lines, line)
	r.byParent[line.ParentCode] = append(r.byParent[line.ParentCode], idx)
}

// ListActive returns every active BOM line.
func (r *BOMRepository) ListActive(ctx context.Context) ([]entities.BOMLine, error) {
	var out []entities.BOMLine
	for _, line := range r.lines {
		if line.Active {
			out = append(out, line)
		}
	}
	return out, nil
}

// ChildrenOf returns the active BOM lines whose parent is parentCode.
func (r *BOMRepository) ChildrenOf(ctx context.Context, parentCode string) ([]entities.BOMLine, error) {
	var out []entities.BOMLine
	for _, idx := range r.byParent[parentCode] {
		if line := r.lines[idx]; line.Active {
			out = append(out, line)
		}
	}
	return out, nil
}
