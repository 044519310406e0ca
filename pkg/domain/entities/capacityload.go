package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// CapacitySuggestion is the recommended action for a work-center/week
// (OK when utilization is within 100%); CapacityLoad.Suggestion is nil
// when utilization is zero or no hours are available.
type CapacitySuggestion string

const (
	SuggestionOK          CapacitySuggestion = "OK"
	SuggestionOvertime    CapacitySuggestion = "OVERTIME"
	SuggestionExpedite    CapacitySuggestion = "EXPEDITE"
	SuggestionSubcontract CapacitySuggestion = "SUBCONTRACT"
)

// CapacityLoad is the available-vs-planned hours projection for one
// (execution, work center, week) triple.
type CapacityLoad struct {
	ExecutionID    string
	WorkCenter     string
	WeekStart      time.Time
	AvailableHours decimal.Decimal
	PlannedHours   decimal.Decimal
	Utilization    decimal.Decimal // percent, 2 digits
	Overloaded     bool
	ExcessHours    decimal.Decimal
	Suggestion     *CapacitySuggestion
}
