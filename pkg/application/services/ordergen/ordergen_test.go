package ordergen

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/mrp-planner/pkg/application/services/lotsize"
	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/infrastructure/storeadapter"
	"github.com/vsinha/mrp-planner/pkg/shared"
)

func monday(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
}

func TestGenerate_BuyProductUsesPrincipalSupplierCost(t *testing.T) {
	ref := monday(t)
	buckets := shared.WeeklyBuckets(ref, 2)

	suppliers := storeadapter.NewSupplierRepository()
	suppliers.AddSupplier(entities.Supplier{ID: "SUP1", Code: "SUP1"})
	suppliers.AddLink(entities.SupplierLink{ProductCode: "PART", SupplierID: "SUP1", IsPrincipal: true, UnitPrice: decimal.NewFromInt(2)})

	svc := NewService(suppliers, storeadapter.NewRoutingRepository(), storeadapter.NewWorkCenterRepository(), storeadapter.NewOrderRepository())

	product := entities.Product{Code: "PART", Kind: entities.KindRaw}
	offsets := []lotsize.OffsetResult{{ReceiptIndex: 1, ReleaseIndex: 0, Quantity: decimal.NewFromInt(10)}}

	orders, warnings, err := svc.Generate(context.Background(), "exec1", product, offsets, buckets, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	o := orders[0]
	if o.Kind != entities.OrderBuy {
		t.Errorf("kind = %v, want BUY", o.Kind)
	}
	if o.EstimatedCost == nil || !o.EstimatedCost.Equal(decimal.NewFromInt(20)) {
		t.Errorf("estimated cost = %v, want 20", o.EstimatedCost)
	}
	if o.SupplierID == nil || *o.SupplierID != "SUP1" {
		t.Errorf("supplier id = %v, want SUP1", o.SupplierID)
	}
}

func TestGenerate_BuyProductWarnsOnMissingSupplier(t *testing.T) {
	ref := monday(t)
	buckets := shared.WeeklyBuckets(ref, 2)

	svc := NewService(storeadapter.NewSupplierRepository(), storeadapter.NewRoutingRepository(), storeadapter.NewWorkCenterRepository(), storeadapter.NewOrderRepository())
	product := entities.Product{Code: "PART", Kind: entities.KindRaw}
	offsets := []lotsize.OffsetResult{{ReceiptIndex: 0, ReleaseIndex: 0, Quantity: decimal.NewFromInt(5)}}

	orders, warnings, err := svc.Generate(context.Background(), "exec1", product, offsets, buckets, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Code != shared.WarnMissingSupplier {
		t.Errorf("expected one WarnMissingSupplier, got %v", warnings)
	}
	if orders[0].SupplierID != nil {
		t.Errorf("supplier id should be nil, got %v", orders[0].SupplierID)
	}
}

func TestGenerate_MakeProductComputesRoutingCost(t *testing.T) {
	ref := monday(t)
	buckets := shared.WeeklyBuckets(ref, 2)

	routing := storeadapter.NewRoutingRepository()
	routing.Add(entities.RoutingStep{ProductCode: "WIDGET", WorkCenter: "WC1", Sequence: 1, SetupMinutes: decimal.NewFromInt(60), UnitMinutes: decimal.NewFromInt(6)})

	costPerHour := decimal.NewFromInt(100)
	workCenters := storeadapter.NewWorkCenterRepository()
	workCenters.Add(entities.WorkCenter{Code: "WC1", CostPerHour: &costPerHour})

	svc := NewService(storeadapter.NewSupplierRepository(), routing, workCenters, storeadapter.NewOrderRepository())
	product := entities.Product{Code: "WIDGET", Kind: entities.KindFinished, ProductionLeadTime: 3}
	offsets := []lotsize.OffsetResult{{ReceiptIndex: 1, ReleaseIndex: 0, Quantity: decimal.NewFromInt(10)}}

	orders, warnings, err := svc.Generate(context.Background(), "exec1", product, offsets, buckets, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	o := orders[0]
	if o.Kind != entities.OrderMake {
		t.Errorf("kind = %v, want MAKE", o.Kind)
	}
	// (60 setup + 10*6 unit) / 60 = 2 hours, rounded, * 100/hr = 200
	if o.EstimatedCost == nil || !o.EstimatedCost.Equal(decimal.NewFromInt(200)) {
		t.Errorf("estimated cost = %v, want 200", o.EstimatedCost)
	}
	wantRelease := o.NeededBy.AddDate(0, 0, -3)
	if !o.ReleaseDate.Equal(wantRelease) {
		t.Errorf("release date = %v, want %v", o.ReleaseDate, wantRelease)
	}
}

func TestGenerate_DroppedOffsetsSkipped(t *testing.T) {
	ref := monday(t)
	buckets := shared.WeeklyBuckets(ref, 2)
	svc := NewService(storeadapter.NewSupplierRepository(), storeadapter.NewRoutingRepository(), storeadapter.NewWorkCenterRepository(), storeadapter.NewOrderRepository())
	product := entities.Product{Code: "PART", Kind: entities.KindRaw}
	offsets := []lotsize.OffsetResult{{ReceiptIndex: 0, Quantity: decimal.NewFromInt(5), Dropped: true}}

	orders, _, err := svc.Generate(context.Background(), "exec1", product, offsets, buckets, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("expected dropped offsets to produce no orders, got %d", len(orders))
	}
}

func TestPriority_BucketsByReferenceDateOffset(t *testing.T) {
	ref := monday(t)
	cases := []struct {
		name    string
		release time.Time
		want    entities.Priority
	}{
		{"past due", ref.AddDate(0, 0, -1), entities.PriorityCritical},
		{"this week", ref.AddDate(0, 0, 3), entities.PriorityHigh},
		{"next week", ref.AddDate(0, 0, 10), entities.PriorityMedium},
		{"far out", ref.AddDate(0, 0, 30), entities.PriorityLow},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Priority(c.release, ref); got != c.want {
				t.Errorf("Priority() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestSelectSupplier_PrefersPrincipalOverLowestPrice(t *testing.T) {
	suppliers := storeadapter.NewSupplierRepository()
	suppliers.AddSupplier(entities.Supplier{ID: "SUP1", Code: "SUP1"})
	suppliers.AddSupplier(entities.Supplier{ID: "SUP2", Code: "SUP2"})
	links := []entities.SupplierLink{
		{ProductCode: "PART", SupplierID: "SUP2", UnitPrice: decimal.NewFromInt(1)},
		{ProductCode: "PART", SupplierID: "SUP1", IsPrincipal: true, UnitPrice: decimal.NewFromInt(5)},
	}
	link, _ := SelectSupplier(context.Background(), suppliers, links)
	if link == nil || link.SupplierID != "SUP1" {
		t.Errorf("expected principal SUP1 chosen despite higher price, got %+v", link)
	}
}
