// Package crp computes Capacity Requirements Planning: per work-center,
// per-week available-vs-planned hours, utilization, and overload
// suggestions.
package crp

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/domain/repositories"
	"github.com/vsinha/mrp-planner/pkg/shared"
)

// Service computes and persists CapacityLoad rows.
type Service struct {
	WorkCenters repositories.WorkCenterRepository
	Routing     repositories.RoutingRepository
	Capacity    repositories.CapacityLoadRepository
}

// NewService wires the CRP stage.
func NewService(workCenters repositories.WorkCenterRepository, routing repositories.RoutingRepository, capacity repositories.CapacityLoadRepository) *Service {
	return &Service{WorkCenters: workCenters, Routing: routing, Capacity: capacity}
}

// Run computes one CapacityLoad row per (work center, bucket) pair over
// makeOrders, the MAKE planned orders generated earlier in this execution.
func (s *Service) Run(ctx context.Context, executionID string, makeOrders []entities.PlannedOrder, buckets []shared.Bucket) ([]entities.CapacityLoad, error) {
	centers, err := s.WorkCenters.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("crp: list work centers: %w", err)
	}
	if len(centers) == 0 || len(buckets) == 0 {
		return nil, nil
	}

	horizonStart := buckets[0].Start
	horizonEnd := buckets[len(buckets)-1].Start.AddDate(0, 0, 7)
	calendarDays, err := s.WorkCenters.CalendarDays(ctx, horizonStart, horizonEnd)
	if err != nil {
		return nil, fmt.Errorf("crp: calendar days: %w", err)
	}
	working := map[string]bool{}
	for _, cd := range calendarDays {
		working[dayKey(cd.Date)] = cd.Type == entities.DayWorking
	}

	routingCache := map[string][]entities.RoutingStep{}
	stepFor := func(productCode, workCenter string) (entities.RoutingStep, bool, error) {
		steps, ok := routingCache[productCode]
		if !ok {
			var err error
			steps, err = s.Routing.StepsForProduct(ctx, productCode)
			if err != nil {
				return entities.RoutingStep{}, false, err
			}
			routingCache[productCode] = steps
		}
		for _, st := range steps {
			if st.WorkCenter == workCenter {
				return st, true, nil
			}
		}
		return entities.RoutingStep{}, false, nil
	}

	var rows []entities.CapacityLoad
	for _, wc := range centers {
		for _, b := range buckets {
			available := availableHours(wc, b, working)

			planned := decimal.Zero
			for _, o := range makeOrders {
				if o.WorkCenter == nil || *o.WorkCenter != wc.Code {
					continue
				}
				if !shared.InWeek(b.Start, o.NeededBy) {
					continue
				}
				step, ok, err := stepFor(o.ProductCode, wc.Code)
				if err != nil {
					return nil, fmt.Errorf("crp: routing for %s: %w", o.ProductCode, err)
				}
				if !ok {
					continue
				}
				hours := step.SetupMinutes.Add(o.Quantity.Mul(step.UnitMinutes)).Div(decimal.NewFromInt(60))
				planned = planned.Add(hours)
			}
			planned = shared.Round4(planned)

			row := entities.CapacityLoad{
				ExecutionID:    executionID,
				WorkCenter:     wc.Code,
				WeekStart:      b.Start,
				AvailableHours: available,
				PlannedHours:   planned,
			}

			if available.LessThanOrEqual(decimal.Zero) {
				row.Utilization = decimal.Zero
			} else {
				util := planned.Div(available).Mul(decimal.NewFromInt(100))
				row.Utilization = shared.Round2(util)
				row.Overloaded = row.Utilization.GreaterThan(decimal.NewFromInt(100))
				row.ExcessHours = shared.ZeroFloor(shared.Round4(planned.Sub(available)))
				suggestion := suggestionFor(row.Utilization)
				if suggestion != "" {
					row.Suggestion = &suggestion
				}
			}

			rows = append(rows, row)
		}
	}

	if err := s.Capacity.BatchCreate(ctx, rows); err != nil {
		return nil, fmt.Errorf("crp: persist capacity loads: %w", err)
	}
	return rows, nil
}

// availableHours sums shift capacity over working days in the bucket,
// applies efficiency%, and clips scheduled-stop overlap, floored at 0.
func availableHours(wc entities.WorkCenter, b shared.Bucket, working map[string]bool) decimal.Decimal {
	var total time.Duration
	for d := b.Start; d.Before(b.Start.AddDate(0, 0, 7)); d = d.AddDate(0, 0, 1) {
		if !working[dayKey(d)] {
			continue
		}
		for _, sh := range wc.Shifts {
			if sh.AppliesOn(d) {
				total += sh.Duration()
			}
		}
	}

	eff := wc.EfficiencyPct
	if eff.Equal(decimal.Zero) {
		eff = decimal.NewFromInt(100)
	}
	hours := decimal.NewFromFloat(total.Hours()).Mul(eff).Div(decimal.NewFromInt(100))

	for _, stop := range wc.ScheduledStops {
		overlap := clipOverlap(stop.Start, stop.End, b.Start, b.Start.AddDate(0, 0, 7))
		hours = hours.Sub(decimal.NewFromFloat(overlap.Hours()))
	}

	return shared.ZeroFloor(shared.Round4(hours))
}

// clipOverlap returns the intersection of [aStart,aEnd) and [bStart,bEnd).
func clipOverlap(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

func suggestionFor(utilization decimal.Decimal) entities.CapacitySuggestion {
	switch {
	case utilization.LessThanOrEqual(decimal.Zero):
		return ""
	case utilization.LessThanOrEqual(decimal.NewFromInt(100)):
		return entities.SuggestionOK
	case utilization.LessThanOrEqual(decimal.NewFromInt(110)):
		return entities.SuggestionOvertime
	case utilization.LessThanOrEqual(decimal.NewFromInt(130)):
		return entities.SuggestionExpedite
	default:
		return entities.SuggestionSubcontract
	}
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
