// Package orchestration runs the eight-stage planning pipeline end to
// end: concurrency guard, per-stage StepLog bookkeeping, inter-stage
// data preparation, and final Execution/summary assembly.
package orchestration

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/vsinha/mrp-planner/pkg/application/services/actionmsg"
	"github.com/vsinha/mrp-planner/pkg/application/services/bom"
	"github.com/vsinha/mrp-planner/pkg/application/services/crp"
	"github.com/vsinha/mrp-planner/pkg/application/services/lotsize"
	"github.com/vsinha/mrp-planner/pkg/application/services/mps"
	"github.com/vsinha/mrp-planner/pkg/application/services/netreq"
	"github.com/vsinha/mrp-planner/pkg/application/services/ordergen"
	"github.com/vsinha/mrp-planner/pkg/application/services/stockparams"
	"github.com/vsinha/mrp-planner/pkg/application/services/storagevalidate"
	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/domain/repositories"
	"github.com/vsinha/mrp-planner/pkg/shared"
)

const (
	stepMPS             = "MPS"
	stepStockParams     = "STOCK_PARAMS"
	stepBOMExplodeNet   = "BOM_EXPLODE_NET"
	stepLotSize         = "LOT_SIZE"
	stepOrderGenerate   = "ORDER_GENERATE"
	stepActionMessages  = "ACTION_MESSAGES"
	stepCRP             = "CRP"
	stepStorageValidate = "STORAGE_VALIDATE"
)

var stepOrder = []string{
	stepMPS, stepStockParams, stepBOMExplodeNet, stepLotSize,
	stepOrderGenerate, stepActionMessages, stepCRP, stepStorageValidate,
}

// RunResult is what Execute returns to the caller. StorageProjections is
// populated only on success; per §3 lifecycle these rows are never
// persisted, only surfaced here.
type RunResult struct {
	ExecutionID        string
	Status             entities.ExecutionStatus
	Message            string
	Summary            *entities.MrpResultSummary
	StorageProjections []entities.StorageProjection
}

// Orchestrator wires every stage service plus the execution/step-log store.
type Orchestrator struct {
	Executions repositories.ExecutionRepository
	Products   repositories.ProductRepository
	Suppliers  repositories.SupplierRepository
	Inventory  repositories.InventoryRepository
	Orders     repositories.OrderRepository

	MPS             *mps.Service
	StockParams     *stockparams.Service
	BOM             *bom.Service
	LotSize         *lotsize.Service
	OrderGen        *ordergen.Service
	ActionMsg       *actionmsg.Service
	CRP             *crp.Service
	StorageValidate *storagevalidate.Service

	Log zerolog.Logger
	Now func() time.Time
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Execute runs the full eight-stage pipeline for one MRP batch.
func (o *Orchestrator) Execute(ctx context.Context, params entities.RunParams) (RunResult, error) {
	running, err := o.Executions.AnyRunning(ctx)
	if err != nil {
		return RunResult{}, fmt.Errorf("orchestration: concurrency check: %w", err)
	}
	if running {
		return RunResult{}, entities.ErrConcurrencyConflict
	}

	if params.PlanningHorizonWeeks <= 0 {
		params.PlanningHorizonWeeks = 13
	}
	if params.FirmOrderHorizonWeeks < 0 {
		params.FirmOrderHorizonWeeks = 2
	}
	startDate := o.now()
	if params.StartDate != nil {
		startDate = *params.StartDate
	}

	execID := uuid.NewString()
	startedAt := o.now()
	exec := entities.Execution{ID: execID, Kind: "MRP", Status: entities.ExecPending, Params: params}
	if err := o.Executions.Create(ctx, exec); err != nil {
		return RunResult{}, fmt.Errorf("orchestration: create execution: %w", err)
	}
	exec.Status = entities.ExecRunning
	exec.StartedAt = &startedAt
	if err := o.Executions.Update(ctx, exec); err != nil {
		return RunResult{}, fmt.Errorf("orchestration: start execution: %w", err)
	}

	o.Log.Info().Str("execution_id", execID).Msg("mrp run started")

	run := &runState{
		orch:      o,
		ctx:       ctx,
		execID:    execID,
		params:    params,
		startDate: startDate,
		summary:   &entities.MrpResultSummary{},
	}

	stages := []func() error{
		run.runMPS, run.runStockParams, run.runBOMExplodeNet, run.runLotSize,
		run.runOrderGenerate, run.runActionMessages, run.runCRP, run.runStorageValidate,
	}

	for i, stageFn := range stages {
		name := stepOrder[i]
		stepID := uuid.NewString()
		stepStart := o.now()
		if err := o.Executions.AppendStepLog(ctx, entities.StepLog{
			ID: stepID, ExecutionID: execID, StepName: name, StepOrder: i + 1,
			Status: entities.StepRunning, StartedAt: stepStart,
		}); err != nil {
			return RunResult{}, fmt.Errorf("orchestration: append step log %s: %w", name, err)
		}

		stageErr := stageFn()
		completedAt := o.now()
		durationMs := completedAt.Sub(stepStart).Milliseconds()

		if stageErr != nil {
			o.Log.Error().Str("execution_id", execID).Str("step", name).Err(stageErr).Msg("stage failed")
			_ = o.Executions.UpdateStepLog(ctx, entities.StepLog{
				ID: stepID, ExecutionID: execID, StepName: name, StepOrder: i + 1,
				Status: entities.StepFailed, StartedAt: stepStart, CompletedAt: &completedAt,
				DurationMs: durationMs, Details: map[string]any{"error": stageErr.Error()},
			})
			exec.Status = entities.ExecError
			exec.ErrorMessage = stageErr.Error()
			exec.CompletedAt = &completedAt
			_ = o.Executions.Update(ctx, exec)
			return RunResult{ExecutionID: execID, Status: entities.ExecError, Message: stageErr.Error()}, stageErr
		}

		run.summary.StageDurations = append(run.summary.StageDurations, entities.StageDuration{
			StepName: name, StepOrder: i + 1, DurationMs: durationMs,
		})
		details := map[string]any{}
		if len(run.warnings) > 0 {
			details["warnings"] = run.flushWarnings()
			for _, w := range details["warnings"].([]shared.Warning) {
				o.Log.Warn().Str("execution_id", execID).Str("step", name).Str("code", string(w.Code)).Str("product", w.ProductCode).Msg(w.Message)
			}
		}
		_ = o.Executions.UpdateStepLog(ctx, entities.StepLog{
			ID: stepID, ExecutionID: execID, StepName: name, StepOrder: i + 1,
			Status: entities.StepCompleted, StartedAt: stepStart, CompletedAt: &completedAt,
			DurationMs: durationMs, RecordsProcessed: run.lastRecordsProcessed, Details: details,
		})
		o.Log.Info().Str("execution_id", execID).Str("step", name).Int64("duration_ms", durationMs).Msg("stage completed")
	}

	completedAt := o.now()
	exec.Status = entities.ExecCompleted
	exec.CompletedAt = &completedAt
	exec.Summary = run.summary
	if err := o.Executions.Update(ctx, exec); err != nil {
		return RunResult{}, fmt.Errorf("orchestration: finalize execution: %w", err)
	}

	return RunResult{
		ExecutionID: execID, Status: entities.ExecCompleted, Message: "completed",
		Summary: run.summary, StorageProjections: run.storageProjections,
	}, nil
}

// runState carries per-run intermediate data between stage closures.
type runState struct {
	orch      *Orchestrator
	ctx       context.Context
	execID    string
	params    entities.RunParams
	startDate time.Time
	summary   *entities.MrpResultSummary

	buckets []shared.Bucket

	mpsResult    mps.Result
	bomResult    bom.Result
	netByProduct map[string][]decimal.Decimal

	products             map[string]entities.Product
	stockParamsByProduct map[string]entities.StockParams
	offsetsByProduct     map[string][]lotsize.OffsetResult
	makeOrders           []entities.PlannedOrder
	plannedByAll         []entities.PlannedOrder
	storageProjections   []entities.StorageProjection

	warnings             []shared.Warning
	lastRecordsProcessed int
}

func (r *runState) flushWarnings() []shared.Warning {
	w := r.warnings
	r.warnings = nil
	return w
}

func (r *runState) runMPS() error {
	res, err := r.orch.MPS.Run(r.ctx, mps.Params{
		PlanningHorizonWeeks: r.params.PlanningHorizonWeeks, FirmOrderHorizonWeeks: r.params.FirmOrderHorizonWeeks, StartDate: r.startDate,
	})
	if err != nil {
		return fmt.Errorf("mps stage: %w", err)
	}
	r.mpsResult = res
	r.warnings = append(r.warnings, res.Warnings...)
	if len(res.Schedules) > 0 {
		r.buckets = res.Schedules[0].Buckets
	} else {
		r.buckets = shared.WeeklyBuckets(shared.WeekStart(r.startDate), r.params.PlanningHorizonWeeks)
	}
	r.lastRecordsProcessed = len(res.Schedules)
	r.summary.ProductsPlanned = len(res.Schedules)
	return nil
}

func (r *runState) runStockParams() error {
	res, err := r.orch.StockParams.Run(r.ctx, r.execID, stockparams.Params{
		ForceRecalculate: r.params.ForceRecalculate,
	})
	if err != nil {
		return fmt.Errorf("stockparams stage: %w", err)
	}
	r.warnings = append(r.warnings, res.Warnings...)
	r.lastRecordsProcessed = len(res.Rows)
	r.summary.SkippedStockParams = res.Skipped

	r.stockParamsByProduct = map[string]entities.StockParams{}
	for _, row := range res.Rows {
		r.stockParamsByProduct[row.ProductCode] = row
	}
	if sp, err := r.orch.StockParams.StockParams.List(r.ctx, r.execID, 1, 0); err == nil {
		for _, row := range sp.Items {
			if _, ok := r.stockParamsByProduct[row.ProductCode]; !ok {
				r.stockParamsByProduct[row.ProductCode] = row
			}
		}
	}

	products, err := r.orch.Products.ListActive(r.ctx)
	if err != nil {
		return fmt.Errorf("stockparams stage: list products: %w", err)
	}
	r.products = map[string]entities.Product{}
	for _, p := range products {
		r.products[p.Code] = p
	}
	return nil
}

func (r *runState) runBOMExplodeNet() error {
	root := bom.Demand{}
	for _, sched := range r.mpsResult.Schedules {
		root[sched.ProductCode] = sched.MPSDemand
	}
	res, err := r.orch.BOM.Explode(r.ctx, root)
	if err != nil {
		return fmt.Errorf("bom explode stage: %w", err)
	}
	r.bomResult = res

	r.netByProduct = map[string][]decimal.Decimal{}
	for code, gross := range res.GrossRequirements {
		p, ok := r.products[code]
		if !ok {
			continue
		}
		snapshots, err := r.orch.Inventory.SnapshotsForProduct(r.ctx, code)
		if err != nil {
			return fmt.Errorf("net requirements: snapshots for %s: %w", code, err)
		}
		initialStock := decimal.Zero
		for _, s := range snapshots {
			initialStock = initialStock.Add(s.NetAvailable())
		}

		kind := entities.OrderBuy
		if p.Kind.IsMake() {
			kind = entities.OrderMake
		}
		existing, err := r.orch.Orders.FirmOrReleased(r.ctx, code, kind)
		if err != nil {
			return fmt.Errorf("net requirements: existing orders for %s: %w", code, err)
		}
		scheduled := make([]decimal.Decimal, len(gross))
		for _, eo := range existing {
			idx := shared.BucketIndex(r.startDate, eo.ExpectedReceipt)
			if idx >= 0 && idx < len(scheduled) {
				scheduled[idx] = scheduled[idx].Add(eo.Quantity)
			}
		}

		periods := netreq.Run(gross, scheduled, initialStock, r.stockParamsByProduct[code].SafetyStock)
		net := make([]decimal.Decimal, len(periods))
		for i, pr := range periods {
			net[i] = pr.Net
		}
		r.netByProduct[code] = net
	}

	r.lastRecordsProcessed = len(r.netByProduct)
	return nil
}

func (r *runState) runLotSize() error {
	offsetsByProduct := map[string][]lotsize.OffsetResult{}
	count := 0
	for code, net := range r.netByProduct {
		p, ok := r.products[code]
		if !ok {
			continue
		}
		constraints := lotsize.Constraints{MinimumLot: p.MinimumLot, PurchaseMultiple: p.PurchaseMultiple}
		if p.Kind.IsBuy() {
			links, err := r.orch.Suppliers.LinksForProduct(r.ctx, code)
			if err == nil {
				if link, _ := ordergen.SelectSupplier(r.ctx, r.orch.Suppliers, links); link != nil {
					constraints.MOQ = link.MOQ
				}
			}
		}

		leadTimeDays := p.ProductionLeadTime
		leadTimePeriods := int(math.Ceil(float64(leadTimeDays) / 7))
		holdingCostPerPeriod := p.UnitCost.Mul(p.AnnualHoldingPercent).Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(52))

		offsets, err := r.orch.LotSize.Run(lotsize.Input{
			Method: p.LotSizingMethod, Net: net, EOQ: r.stockParamsByProduct[code].EOQ,
			OrderCostK: p.OrderCostK, HoldingCostPerPeriod: holdingCostPerPeriod,
			Constraints: constraints, LeadTimePeriods: leadTimePeriods,
		})
		if err != nil {
			return fmt.Errorf("lot sizing %s: %w", code, err)
		}
		offsetsByProduct[code] = offsets
		count += len(offsets)
	}
	r.offsetsByProduct = offsetsByProduct
	r.lastRecordsProcessed = count
	return nil
}

func (r *runState) runOrderGenerate() error {
	referenceDate := r.startDate
	codes := sortedKeys(r.offsetsByProduct)

	// Each product's order generation only reads shared repositories
	// (Suppliers/Routing/WorkCenters), so the per-product calls are
	// independent and safe to run concurrently; results are merged back
	// in codes order afterward to keep output deterministic.
	perCode := make([][]entities.PlannedOrder, len(codes))
	perCodeWarnings := make([][]shared.Warning, len(codes))

	g, ctx := errgroup.WithContext(r.ctx)
	for i, code := range codes {
		i, code := i, code
		p, ok := r.products[code]
		if !ok {
			continue
		}
		g.Go(func() error {
			orders, warnings, err := r.orch.OrderGen.Generate(ctx, r.execID, p, r.offsetsByProduct[code], r.buckets, referenceDate)
			if err != nil {
				return fmt.Errorf("order generation %s: %w", code, err)
			}
			perCode[i] = orders
			perCodeWarnings[i] = warnings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var all []entities.PlannedOrder
	for i := range codes {
		r.warnings = append(r.warnings, perCodeWarnings[i]...)
		all = append(all, perCode[i]...)
	}

	if len(all) > 0 {
		if err := r.orch.Orders.BatchCreate(r.ctx, all); err != nil {
			return fmt.Errorf("order generation: persist: %w", err)
		}
	}
	r.plannedByAll = all
	for _, o := range all {
		if o.Kind == entities.OrderMake {
			r.makeOrders = append(r.makeOrders, o)
		}
	}
	r.lastRecordsProcessed = len(all)
	r.summary.OrdersGenerated = len(all)
	return nil
}

func (r *runState) runActionMessages() error {
	var existing []entities.PlannedOrder
	for code, p := range r.products {
		kind := entities.OrderBuy
		if p.Kind.IsMake() {
			kind = entities.OrderMake
		}
		rows, err := r.orch.Orders.FirmOrReleased(r.ctx, code, kind)
		if err != nil {
			return fmt.Errorf("action messages: existing orders for %s: %w", code, err)
		}
		existing = append(existing, rows...)
	}

	messages := actionmsg.Diff(r.plannedByAll, existing)
	if err := r.orch.ActionMsg.Persist(r.ctx, messages); err != nil {
		return fmt.Errorf("action messages: persist: %w", err)
	}
	r.lastRecordsProcessed = len(messages)
	r.summary.ActionMessages = len(messages)
	return nil
}

func (r *runState) runCRP() error {
	rows, err := r.orch.CRP.Run(r.ctx, r.execID, r.makeOrders, r.buckets)
	if err != nil {
		return fmt.Errorf("crp stage: %w", err)
	}
	r.lastRecordsProcessed = len(rows)
	r.summary.CapacityRows = len(rows)
	return nil
}

func (r *runState) runStorageValidate() error {
	incoming := map[string][]decimal.Decimal{}
	for _, o := range r.plannedByAll {
		idx := shared.BucketIndex(r.startDate, o.ExpectedReceipt)
		if idx < 0 || idx >= len(r.buckets) {
			continue
		}
		series, ok := incoming[o.ProductCode]
		if !ok {
			series = make([]decimal.Decimal, len(r.buckets))
		}
		series[idx] = series[idx].Add(o.Quantity)
		incoming[o.ProductCode] = series
	}
	outgoing := map[string][]decimal.Decimal{}
	for code, gross := range r.bomResult.GrossRequirements {
		outgoing[code] = gross
	}

	rows, err := r.orch.StorageValidate.Run(r.ctx, r.buckets, incoming, outgoing)
	if err != nil {
		return fmt.Errorf("storage validation stage: %w", err)
	}
	r.storageProjections = rows
	r.lastRecordsProcessed = len(rows)
	r.summary.StorageProjections = len(rows)
	return nil
}

func sortedKeys(m map[string][]lotsize.OffsetResult) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
