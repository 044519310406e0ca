package storeadapter

import (
	"context"
	"fmt"
	"sync"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/domain/repositories"
)

// ExecutionRepository is an in-memory Execution and StepLog store. A mutex
// guards it because AppendStepLog/UpdateStepLog are called once per stage
// from the orchestrator's single goroutine today, but concurrent per-stage
// writers are a natural future extension.
type ExecutionRepository struct {
	mu         sync.Mutex
	executions []entities.Execution
	byID       map[string]int
	steps      map[string][]entities.StepLog
}

// NewExecutionRepository builds an empty execution repository.
func NewExecutionRepository() *ExecutionRepository {
	return &ExecutionRepository{byID: make(map[string]int), steps: make(map[string][]entities.StepLog)}
}

var _ repositories.ExecutionRepository = (*ExecutionRepository)(nil)

// AnyRunning reports whether an execution is currently RUNNING.
func (r *ExecutionRepository) AnyRunning(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.executions {
		if e.Status == entities.ExecRunning {
			return true, nil
		}
	}
	return false, nil
}

// Create inserts a new execution row.
func (r *ExecutionRepository) Create(ctx context.Context, exec entities.Execution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[exec.ID]; exists {
		return fmt.Errorf("storeadapter: execution already exists: %s", exec.ID)
	}
	r.byID[exec.ID] = len(r.executions)
	r.executions = append(r.executions, exec)
	return nil
}

// Update overwrites an execution row in place.
func (r *ExecutionRepository) Update(ctx context.Context, exec entities.Execution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.byID[exec.ID]
	if !ok {
		return fmt.Errorf("storeadapter: execution not found: %s", exec.ID)
	}
	r.executions[idx] = exec
	return nil
}

// GetByID returns the execution with the given ID, or nil if absent.
func (r *ExecutionRepository) GetByID(ctx context.Context, id string) (*entities.Execution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	e := r.executions[idx]
	return &e, nil
}

// List returns a paginated view of all executions, most recent first.
func (r *ExecutionRepository) List(ctx context.Context, page, limit int) (repositories.Page[entities.Execution], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reversed := make([]entities.Execution, len(r.executions))
	for i, e := range r.executions {
		reversed[len(r.executions)-1-i] = e
	}
	return repositories.Paginate(reversed, page, limit), nil
}

// AppendStepLog inserts a new step-log row for an execution.
func (r *ExecutionRepository) AppendStepLog(ctx context.Context, log entities.StepLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps[log.ExecutionID] = append(r.steps[log.ExecutionID], log)
	return nil
}

// UpdateStepLog overwrites an existing step-log row, matched by ID.
func (r *ExecutionRepository) UpdateStepLog(ctx context.Context, log entities.StepLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := r.steps[log.ExecutionID]
	for i := range rows {
		if rows[i].ID == log.ID {
			rows[i] = log
			return nil
		}
	}
	return fmt.Errorf("storeadapter: step log not found: %s", log.ID)
}

// StepLogsFor returns every step log recorded for an execution, in append order.
func (r *ExecutionRepository) StepLogsFor(ctx context.Context, executionID string) ([]entities.StepLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.steps[executionID], nil
}
