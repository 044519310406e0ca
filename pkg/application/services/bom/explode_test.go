package bom

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/infrastructure/storeadapter"
)

func d(i int64) decimal.Decimal { return decimal.NewFromInt(i) }

func TestExplode_SingleLevelPropagatesQtyPer(t *testing.T) {
	boms := storeadapter.NewBOMRepository()
	boms.Add(entities.BOMLine{ParentCode: "WIDGET", ChildCode: "PART", QtyPer: d(2), Active: true})

	svc := NewService(boms)
	res, err := svc.Explode(context.Background(), Demand{"WIDGET": {d(10), d(5)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := res.GrossRequirements["PART"]; len(got) != 2 || !got[0].Equal(d(20)) || !got[1].Equal(d(10)) {
		t.Errorf("PART gross = %v, want [20 10]", got)
	}
	if res.LowLevelCodes["WIDGET"] != 0 || res.LowLevelCodes["PART"] != 1 {
		t.Errorf("low level codes = %v", res.LowLevelCodes)
	}
}

func TestExplode_AppliesLossPercent(t *testing.T) {
	boms := storeadapter.NewBOMRepository()
	boms.Add(entities.BOMLine{ParentCode: "WIDGET", ChildCode: "PART", QtyPer: d(1), LossPercent: decimal.NewFromInt(10), Active: true})

	svc := NewService(boms)
	res, err := svc.Explode(context.Background(), Demand{"WIDGET": {d(100)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := res.GrossRequirements["PART"][0]; !got.Equal(d(110)) {
		t.Errorf("PART gross with 10%% loss = %v, want 110", got)
	}
}

func TestExplode_MultiLevelUsesMaxLowLevelCode(t *testing.T) {
	boms := storeadapter.NewBOMRepository()
	// PART reachable both directly from WIDGET and via SUBASSY, so its low
	// level code must be the deeper path's depth (2), not the shallower (1).
	boms.Add(entities.BOMLine{ParentCode: "WIDGET", ChildCode: "SUBASSY", QtyPer: d(1), Active: true})
	boms.Add(entities.BOMLine{ParentCode: "SUBASSY", ChildCode: "PART", QtyPer: d(1), Active: true})
	boms.Add(entities.BOMLine{ParentCode: "WIDGET", ChildCode: "PART", QtyPer: d(1), Active: true})

	svc := NewService(boms)
	res, err := svc.Explode(context.Background(), Demand{"WIDGET": {d(1)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.LowLevelCodes["PART"] != 2 {
		t.Errorf("PART low level code = %d, want 2", res.LowLevelCodes["PART"])
	}
}

func TestExplode_DetectsCycle(t *testing.T) {
	boms := storeadapter.NewBOMRepository()
	boms.Add(entities.BOMLine{ParentCode: "A", ChildCode: "B", QtyPer: d(1), Active: true})
	boms.Add(entities.BOMLine{ParentCode: "B", ChildCode: "A", QtyPer: d(1), Active: true})

	svc := NewService(boms)
	_, err := svc.Explode(context.Background(), Demand{"A": {d(1)}})
	if !errors.Is(err, entities.ErrCircularBOM) {
		t.Fatalf("expected ErrCircularBOM, got %v", err)
	}
}

func TestExplode_InactiveLineIgnored(t *testing.T) {
	boms := storeadapter.NewBOMRepository()
	boms.Add(entities.BOMLine{ParentCode: "WIDGET", ChildCode: "PART", QtyPer: d(2), Active: false})

	svc := NewService(boms)
	res, err := svc.Explode(context.Background(), Demand{"WIDGET": {d(10)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := res.GrossRequirements["PART"]; ok {
		t.Errorf("inactive BOM line should not propagate demand to PART")
	}
}
