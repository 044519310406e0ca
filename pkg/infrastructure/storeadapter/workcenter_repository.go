package storeadapter

import (
	"context"
	"time"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/domain/repositories"
)

// WorkCenterRepository is an in-memory work-center catalog plus the
// working calendar used by capacity requirements planning.
type WorkCenterRepository struct {
	byCode   map[string]entities.WorkCenter
	order    []string
	calendar []entities.CalendarDay
}

// NewWorkCenterRepository builds an empty work-center repository.
func NewWorkCenterRepository() *WorkCenterRepository {
	return &WorkCenterRepository{byCode: make(map[string]entities.WorkCenter)}
}

var _ repositories.WorkCenterRepository = (*WorkCenterRepository)(nil)

// Add inserts or replaces a work center by code.
func (r *WorkCenterRepository) Add(wc entities.WorkCenter) {
	if _, exists := r.byCode[wc.Code]; !exists {
		r.order = append(r.order, wc.Code)
	}
	r.byCode[wc.Code] = wc
}

// SetCalendar replaces the full working calendar.
func (r *WorkCenterRepository) SetCalendar(days []entities.CalendarDay) {
	r.calendar = days
}

// List returns every work center in insertion order.
func (r *WorkCenterRepository) List(ctx context.Context) ([]entities.WorkCenter, error) {
	out := make([]entities.WorkCenter, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.byCode[code])
	}
	return out, nil
}

// GetByCode returns the work center with the given code, or nil if absent.
func (r *WorkCenterRepository) GetByCode(ctx context.Context, code string) (*entities.WorkCenter, error) {
	wc, ok := r.byCode[code]
	if !ok {
		return nil, nil
	}
	return &wc, nil
}

// CalendarDays returns calendar days in [from, to).
func (r *WorkCenterRepository) CalendarDays(ctx context.Context, from, to time.Time) ([]entities.CalendarDay, error) {
	var out []entities.CalendarDay
	for _, d := range r.calendar {
		if !d.Date.Before(from) && d.Date.Before(to) {
			out = append(out, d)
		}
	}
	return out, nil
}
