// Package ordergen turns lot-sized planned receipts into enriched,
// persistable PlannedOrder rows: BUY/MAKE classification, supplier or
// routing/work-center enrichment, cost estimation, and priority.
package ordergen

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/mrp-planner/pkg/application/services/lotsize"
	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/domain/repositories"
	"github.com/vsinha/mrp-planner/pkg/shared"
)

// Service generates and persists planned orders for one execution.
type Service struct {
	Suppliers   repositories.SupplierRepository
	Routing     repositories.RoutingRepository
	WorkCenters repositories.WorkCenterRepository
	Orders      repositories.OrderRepository
}

// NewService wires the order-generation stage.
func NewService(suppliers repositories.SupplierRepository, routing repositories.RoutingRepository, workCenters repositories.WorkCenterRepository, orders repositories.OrderRepository) *Service {
	return &Service{Suppliers: suppliers, Routing: routing, WorkCenters: workCenters, Orders: orders}
}

// Generate builds one PlannedOrder per non-dropped offset result for the
// given product and returns it alongside any stage-local warnings.
// referenceDate anchors the priority calculation (spec §4.7); it defaults
// to time.Now() in the orchestrator's normal path.
func (s *Service) Generate(ctx context.Context, executionID string, product entities.Product, offsets []lotsize.OffsetResult, buckets []shared.Bucket, referenceDate time.Time) ([]entities.PlannedOrder, []shared.Warning, error) {
	var orders []entities.PlannedOrder
	var warnings []shared.Warning

	for _, off := range offsets {
		if off.Dropped {
			continue
		}
		if off.ReceiptIndex < 0 || off.ReceiptIndex >= len(buckets) {
			continue
		}
		neededBy := buckets[off.ReceiptIndex].Start

		var order entities.PlannedOrder
		var w []shared.Warning
		var err error

		switch {
		case product.Kind.IsBuy():
			order, w, err = s.buildBuy(ctx, executionID, product, off.Quantity, neededBy)
		case product.Kind.IsMake():
			order, w, err = s.buildMake(ctx, executionID, product, off.Quantity, neededBy)
		default:
			warnings = append(warnings, shared.Warning{
				Code: shared.WarnUnknownProductKind, ProductCode: product.Code,
				Message: fmt.Sprintf("product %s has unsupported kind %q, order skipped", product.Code, product.Kind),
			})
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, w...)

		order.ExpectedReceipt = neededBy
		order.Priority = Priority(order.ReleaseDate, referenceDate)
		order.Status = entities.StatusPlanned
		order.ID = uuid.NewString()
		order.ExecutionID = executionID

		orders = append(orders, order)
	}

	return orders, warnings, nil
}

func (s *Service) buildBuy(ctx context.Context, executionID string, product entities.Product, qty decimal.Decimal, neededBy time.Time) (entities.PlannedOrder, []shared.Warning, error) {
	var warnings []shared.Warning

	links, err := s.Suppliers.LinksForProduct(ctx, product.Code)
	if err != nil {
		return entities.PlannedOrder{}, nil, fmt.Errorf("ordergen: supplier links for %s: %w", product.Code, err)
	}

	link, supplier := selectSupplier(ctx, s.Suppliers, links)

	leadTime := 0
	var supplierID *string
	var cost *decimal.Decimal

	if link == nil {
		warnings = append(warnings, shared.Warning{
			Code: shared.WarnMissingSupplier, ProductCode: product.Code,
			Message: fmt.Sprintf("no supplier found for BUY product %s", product.Code),
		})
	} else {
		id := link.SupplierID
		supplierID = &id
		switch {
		case link.LeadTime != nil:
			leadTime = *link.LeadTime
		case supplier != nil && supplier.DefaultLeadTime != nil:
			leadTime = *supplier.DefaultLeadTime
		}
		if link.UnitPrice.GreaterThan(decimal.Zero) {
			c := shared.Round4(qty.Mul(link.UnitPrice))
			cost = &c
		} else {
			warnings = append(warnings, shared.Warning{
				Code: shared.WarnMissingUnitPrice, ProductCode: product.Code,
				Message: fmt.Sprintf("no unit price for BUY product %s, cost unreported", product.Code),
			})
		}
	}

	order := entities.PlannedOrder{
		ExecutionID:   executionID,
		ProductCode:   product.Code,
		Kind:          entities.OrderBuy,
		Quantity:      qty,
		NeededBy:      neededBy,
		ReleaseDate:   neededBy.AddDate(0, 0, -leadTime),
		SupplierID:    supplierID,
		EstimatedCost: cost,
		LotSizingTag:  product.LotSizingMethod,
	}
	return order, warnings, nil
}

func (s *Service) buildMake(ctx context.Context, executionID string, product entities.Product, qty decimal.Decimal, neededBy time.Time) (entities.PlannedOrder, []shared.Warning, error) {
	var warnings []shared.Warning

	steps, err := s.Routing.StepsForProduct(ctx, product.Code)
	if err != nil {
		return entities.PlannedOrder{}, nil, fmt.Errorf("ordergen: routing for %s: %w", product.Code, err)
	}

	var workCenter *string
	var cost *decimal.Decimal

	if len(steps) == 0 {
		warnings = append(warnings, shared.Warning{
			Code: shared.WarnMissingRouting, ProductCode: product.Code,
			Message: fmt.Sprintf("no routing for MAKE product %s, work center unassigned", product.Code),
		})
	} else {
		first := steps[0]
		for _, st := range steps[1:] {
			if st.Sequence < first.Sequence {
				first = st
			}
		}
		wc := first.WorkCenter
		workCenter = &wc

		total := decimal.Zero
		anyMissing := false
		for _, st := range steps {
			center, err := s.WorkCenters.GetByCode(ctx, st.WorkCenter)
			if err != nil || center == nil || center.CostPerHour == nil {
				anyMissing = true
				continue
			}
			hours := st.SetupMinutes.Add(qty.Mul(st.UnitMinutes)).Div(decimal.NewFromInt(60)).Round(0)
			total = total.Add(hours.Mul(*center.CostPerHour))
		}
		if anyMissing {
			warnings = append(warnings, shared.Warning{
				Code: shared.WarnMissingCostPerHour, ProductCode: product.Code,
				Message: fmt.Sprintf("missing cost-per-hour for one or more routing steps of %s, cost partial", product.Code),
			})
		}
		rounded := shared.Round4(total)
		cost = &rounded
	}

	order := entities.PlannedOrder{
		ExecutionID:   executionID,
		ProductCode:   product.Code,
		Kind:          entities.OrderMake,
		Quantity:      qty,
		NeededBy:      neededBy,
		ReleaseDate:   neededBy.AddDate(0, 0, -product.ProductionLeadTime),
		WorkCenter:    workCenter,
		EstimatedCost: cost,
		LotSizingTag:  product.LotSizingMethod,
	}
	return order, warnings, nil
}

// SelectSupplier picks the principal supplier link, falling back to the
// lowest positive unit price; it returns (nil, nil) when no link exists.
// Exported so the orchestrator can resolve a BUY product's MOQ from the
// same principal-link rule before lot-sizing runs.
func SelectSupplier(ctx context.Context, repo repositories.SupplierRepository, links []entities.SupplierLink) (*entities.SupplierLink, *entities.Supplier) {
	return selectSupplier(ctx, repo, links)
}

func selectSupplier(ctx context.Context, repo repositories.SupplierRepository, links []entities.SupplierLink) (*entities.SupplierLink, *entities.Supplier) {
	if len(links) == 0 {
		return nil, nil
	}
	var chosen *entities.SupplierLink
	for i := range links {
		if links[i].IsPrincipal {
			chosen = &links[i]
			break
		}
	}
	if chosen == nil {
		for i := range links {
			l := &links[i]
			if l.UnitPrice.LessThanOrEqual(decimal.Zero) {
				continue
			}
			if chosen == nil || l.UnitPrice.LessThan(chosen.UnitPrice) {
				chosen = l
			}
		}
	}
	if chosen == nil {
		chosen = &links[0]
	}
	supplier, _ := repo.GetSupplier(ctx, chosen.SupplierID)
	return chosen, supplier
}

// Priority buckets a release date against the reference date per §4.7.
// Boundaries are inclusive on the lower side.
func Priority(releaseDate, referenceDate time.Time) entities.Priority {
	switch {
	case releaseDate.Before(referenceDate):
		return entities.PriorityCritical
	case releaseDate.Before(referenceDate.AddDate(0, 0, 7)):
		return entities.PriorityHigh
	case releaseDate.Before(referenceDate.AddDate(0, 0, 14)):
		return entities.PriorityMedium
	default:
		return entities.PriorityLow
	}
}
