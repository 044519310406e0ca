package lotsize

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
)

// Input bundles everything one product's lot-sizing pass needs.
type Input struct {
	Method               entities.LotSizingMethod
	Net                  []decimal.Decimal
	EOQ                  decimal.Decimal
	OrderCostK           decimal.Decimal
	HoldingCostPerPeriod decimal.Decimal
	Constraints          Constraints
	LeadTimePeriods      int
}

// Service selects and runs the right lot-sizing engine, then offsets the
// resulting receipts by lead time into release/receipt terms.
type Service struct{}

// NewService constructs the lot-sizing stage.
func NewService() *Service { return &Service{} }

// Run lot-sizes one product's net requirements and returns the
// lead-time-offset results (past-due and in-horizon alike; out-of-horizon
// releases are returned with Dropped set, per OffsetByLeadTime).
func (s *Service) Run(in Input) ([]OffsetResult, error) {
	sizer, err := ForMethod(in.Method)
	if err != nil {
		return nil, fmt.Errorf("lotsize: %w", err)
	}
	receipts := sizer.Size(in.Net, in.EOQ, in.OrderCostK, in.HoldingCostPerPeriod, in.Constraints)
	return OffsetByLeadTime(receipts, in.LeadTimePeriods, len(in.Net)), nil
}
