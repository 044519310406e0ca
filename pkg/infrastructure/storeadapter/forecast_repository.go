package storeadapter

import (
	"context"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/domain/repositories"
)

// ForecastRepository is an in-memory store of the external forecast
// engine's latest COMPLETED quantile points, plus raw weekly demand
// history used for the classical and Monte Carlo safety-stock methods.
type ForecastRepository struct {
	pointsByProduct map[string][]entities.ForecastPoint
	weeklyHistory   map[string][]float64
}

// NewForecastRepository builds an empty forecast repository.
func NewForecastRepository() *ForecastRepository {
	return &ForecastRepository{
		pointsByProduct: make(map[string][]entities.ForecastPoint),
		weeklyHistory:   make(map[string][]float64),
	}
}

var _ repositories.ForecastRepository = (*ForecastRepository)(nil)

// SetLatestCompletedPoints replaces a product's latest-execution forecast
// points, ordered by PeriodStart ascending.
func (r *ForecastRepository) SetLatestCompletedPoints(productCode string, points []entities.ForecastPoint) {
	r.pointsByProduct[productCode] = points
}

// SetWeeklyHistory replaces a product's weekly demand history, oldest first.
func (r *ForecastRepository) SetWeeklyHistory(productCode string, weeks []float64) {
	r.weeklyHistory[productCode] = weeks
}

// LatestCompletedPoints returns the forecast points from the latest
// COMPLETED forecast execution for a product.
func (r *ForecastRepository) LatestCompletedPoints(ctx context.Context, productCode string) ([]entities.ForecastPoint, error) {
	return r.pointsByProduct[productCode], nil
}

// WeeklyHistory returns the most recent `weeks` weekly demand samples for
// a product, oldest first, or fewer if less history is recorded.
func (r *ForecastRepository) WeeklyHistory(ctx context.Context, productCode string, weeks int) ([]float64, error) {
	hist := r.weeklyHistory[productCode]
	if weeks <= 0 || weeks >= len(hist) {
		return hist, nil
	}
	return hist[len(hist)-weeks:], nil
}
