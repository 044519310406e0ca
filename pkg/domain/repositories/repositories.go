package repositories

import (
	"context"
	"time"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
)

// ProductRepository reads the product catalog.
type ProductRepository interface {
	GetByCode(ctx context.Context, code string) (*entities.Product, error)
	ListActive(ctx context.Context) ([]entities.Product, error)
	ListActiveByKind(ctx context.Context, kind entities.ProductKind) ([]entities.Product, error)
}

// BOMRepository reads Bill-of-Materials lines.
type BOMRepository interface {
	ListActive(ctx context.Context) ([]entities.BOMLine, error)
	ChildrenOf(ctx context.Context, parentCode string) ([]entities.BOMLine, error)
}

// SupplierRepository reads suppliers and supplier/product links.
type SupplierRepository interface {
	GetSupplier(ctx context.Context, id string) (*entities.Supplier, error)
	LinksForProduct(ctx context.Context, productCode string) ([]entities.SupplierLink, error)
	// LeadTimeObservationsDays returns historical realized lead times (in
	// days) for a product, most-recent first, used for empirical sigma-LT.
	LeadTimeObservationsDays(ctx context.Context, productCode string) ([]float64, error)
}

// RoutingRepository reads routing steps.
type RoutingRepository interface {
	StepsForProduct(ctx context.Context, productCode string) ([]entities.RoutingStep, error)
}

// WorkCenterRepository reads work centers and the working calendar.
type WorkCenterRepository interface {
	List(ctx context.Context) ([]entities.WorkCenter, error)
	GetByCode(ctx context.Context, code string) (*entities.WorkCenter, error)
	CalendarDays(ctx context.Context, from, to time.Time) ([]entities.CalendarDay, error)
}

// WarehouseRepository reads warehouses.
type WarehouseRepository interface {
	ListActive(ctx context.Context) ([]entities.Warehouse, error)
}

// InventoryRepository reads current inventory snapshots (read-only to the core).
type InventoryRepository interface {
	SnapshotsForProduct(ctx context.Context, productCode string) ([]entities.InventorySnapshot, error)
	AllSnapshots(ctx context.Context) ([]entities.InventorySnapshot, error)
}

// ForecastRepository reads forecast points from the latest COMPLETED execution.
type ForecastRepository interface {
	LatestCompletedPoints(ctx context.Context, productCode string) ([]entities.ForecastPoint, error)
	WeeklyHistory(ctx context.Context, productCode string, weeks int) ([]float64, error)
}

// OrderRepository reads/writes planned orders.
type OrderRepository interface {
	FirmOrMakeOrders(ctx context.Context, kind entities.OrderKind, status entities.OrderStatus) ([]entities.PlannedOrder, error)
	FirmOrReleased(ctx context.Context, productCode string, kind entities.OrderKind) ([]entities.PlannedOrder, error)
	BatchCreate(ctx context.Context, orders []entities.PlannedOrder) error
	SetActionMessage(ctx context.Context, orderID string, message string) error
	List(ctx context.Context, filter OrderFilter, page, limit int) (Page[entities.PlannedOrder], error)
}

// OrderFilter narrows OrderRepository.List.
type OrderFilter struct {
	ExecutionID *string
	ProductCode *string
	Kind        *entities.OrderKind
	Status      *entities.OrderStatus
	Priority    *entities.Priority
}

// ExecutionRepository manages Execution and StepLog rows.
type ExecutionRepository interface {
	AnyRunning(ctx context.Context) (bool, error)
	Create(ctx context.Context, exec entities.Execution) error
	Update(ctx context.Context, exec entities.Execution) error
	GetByID(ctx context.Context, id string) (*entities.Execution, error)
	List(ctx context.Context, page, limit int) (Page[entities.Execution], error)
	AppendStepLog(ctx context.Context, log entities.StepLog) error
	UpdateStepLog(ctx context.Context, log entities.StepLog) error
	StepLogsFor(ctx context.Context, executionID string) ([]entities.StepLog, error)
}

// StockParamsRepository manages per-product safety-stock parameters.
type StockParamsRepository interface {
	Upsert(ctx context.Context, params entities.StockParams) error
	ExistsForProduct(ctx context.Context, productCode string) (bool, error)
	List(ctx context.Context, executionID string, page, limit int) (Page[entities.StockParams], error)
}

// CapacityLoadRepository manages capacity-load rows.
type CapacityLoadRepository interface {
	BatchCreate(ctx context.Context, rows []entities.CapacityLoad) error
	List(ctx context.Context, executionID string, page, limit int) (Page[entities.CapacityLoad], error)
}
