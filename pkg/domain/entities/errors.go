package entities

import "errors"

// Sentinel error kinds. ErrCircularBOM and ErrBadMethod terminate the run
// at the offending stage and are wrapped with stage-specific context via
// fmt.Errorf("...: %w", ...). ErrConcurrencyConflict is returned by Execute
// before any stage starts. ErrInsufficientHistory is returned by the
// standalone Monte Carlo call; inside the pipeline the stock-parameters
// stage falls back to another method instead.
var (
	ErrConcurrencyConflict = errors.New("CONCURRENCY_CONFLICT: another execution is already running")
	ErrCircularBOM         = errors.New("CIRCULAR_BOM")
	ErrBadMethod           = errors.New("BAD_METHOD")
	ErrInsufficientHistory = errors.New("INSUFFICIENT_HISTORY")
)
