package shared

// Warning is a stage-local, non-fatal diagnostic accumulated alongside a
// stage's normal output and mirrored into StepLog.Details by the
// orchestrator.
type Warning struct {
	Code        string
	ProductCode string
	Message     string
}

const (
	WarnMissingForecast    = "MISSING_FORECAST"
	WarnMissingSupplier    = "MISSING_SUPPLIER"
	WarnMissingUnitPrice   = "MISSING_UNIT_PRICE"
	WarnMissingCostPerHour = "MISSING_COST_PER_HOUR"
	WarnUnknownProductKind = "UNKNOWN_PRODUCT_KIND"
	WarnMissingRouting     = "MISSING_ROUTING"
)
