package stockparams

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/shared"
)

func TestClassicalSafetyStock(t *testing.T) {
	// LT=2 weeks, sigmaD=10, dBar=100, sigmaLT=0 (no lead-time variance)
	ss := classicalSafetyStock(1.645, 2, 10, 100, 0)
	want := 1.645 * math.Sqrt(2*10*10)
	if math.Abs(ss-want) > 1e-9 {
		t.Errorf("classicalSafetyStock = %v, want %v", ss, want)
	}
}

func TestClassicalSafetyStockWithLeadTimeVariance(t *testing.T) {
	ss := classicalSafetyStock(1.645, 2, 0, 100, 1)
	want := 1.645 * math.Sqrt(100*100*1*1)
	if math.Abs(ss-want) > 1e-9 {
		t.Errorf("classicalSafetyStock = %v, want %v", ss, want)
	}
}

func TestTFTSafetyStock(t *testing.T) {
	points := []entities.ForecastPoint{
		{P50: decimal.NewFromInt(100), P90: decimal.NewFromInt(130)},
		{P50: decimal.NewFromInt(90), P90: decimal.NewFromInt(120)},
	}
	ss, ok := tftSafetyStock(points, 2, 0.95)
	if !ok {
		t.Fatal("expected ok=true with enough points")
	}
	want := (130.0 + 120.0) - (100.0 + 90.0)
	if math.Abs(ss-want) > 1e-9 {
		t.Errorf("tftSafetyStock = %v, want %v", ss, want)
	}
}

func TestTFTSafetyStockInsufficientPoints(t *testing.T) {
	points := []entities.ForecastPoint{
		{P50: decimal.NewFromInt(100), P90: decimal.NewFromInt(130)},
	}
	_, ok := tftSafetyStock(points, 2, 0.95)
	if ok {
		t.Error("expected ok=false when fewer forecast points than lead-time weeks")
	}
}

func TestTFTSafetyStockFloorsAtZero(t *testing.T) {
	points := []entities.ForecastPoint{
		{P50: decimal.NewFromInt(200), P90: decimal.NewFromInt(130)},
	}
	ss, ok := tftSafetyStock(points, 1, 0.95)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if ss != 0 {
		t.Errorf("expected safety stock floored at 0, got %v", ss)
	}
}

func TestComputeEOQ(t *testing.T) {
	p := entities.Product{
		UnitCost:             decimal.NewFromInt(10),
		OrderCostK:           decimal.NewFromInt(50),
		AnnualHoldingPercent: decimal.NewFromInt(20),
	}
	eoq := computeEOQ(p, 1000)
	// EOQ = sqrt(2*1000*50 / (10*0.20)) = sqrt(100000/2) = sqrt(50000),
	// rounded to 4 decimals.
	want := math.Round(math.Sqrt(50000)*1e4) / 1e4
	got, _ := eoq.Float64()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("computeEOQ = %v, want %v", got, want)
	}
}

func TestComputeEOQZeroWhenOrderCostMissing(t *testing.T) {
	p := entities.Product{
		UnitCost:             decimal.NewFromInt(10),
		AnnualHoldingPercent: decimal.NewFromInt(20),
	}
	eoq := computeEOQ(p, 1000)
	if !eoq.Equal(decimal.Zero) {
		t.Errorf("expected zero EOQ with no order cost, got %v", eoq)
	}
}

func TestRunMonteCarloInsufficientHistory(t *testing.T) {
	s := &Service{}
	_, err := s.runMonteCarlo(nil, entities.Product{Code: "WIDGET"}, 0.95, 1000, nil, []float64{1, 2, 3}, 14, 2)
	if err == nil {
		t.Fatal("expected error with fewer than 12 weekly samples")
	}
}

func TestRunMonteCarloDeterministicWithSeed(t *testing.T) {
	s := &Service{}
	history := make([]float64, 52)
	for i := range history {
		history[i] = 100 + float64(i%5)
	}
	seed := uint32(42)

	r1, err := s.runMonteCarlo(nil, entities.Product{Code: "WIDGET"}, 0.95, 2000, &seed, history, 14, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := s.runMonteCarlo(nil, entities.Product{Code: "WIDGET"}, 0.95, 2000, &seed, history, 14, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r1.SafetyStock != r2.SafetyStock || r1.MeanTotalDemand != r2.MeanTotalDemand {
		t.Errorf("expected identical results for identical seed, got %+v vs %+v", r1, r2)
	}
	if r1.SafetyStock < 0 {
		t.Errorf("safety stock should never be negative, got %v", r1.SafetyStock)
	}
}

func TestHistogramBucketsSumToTotal(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	buckets := histogram(values, 5)
	sum := 0
	for _, b := range buckets {
		sum += b.Count
	}
	if sum != len(values) {
		t.Errorf("expected histogram counts to sum to %d, got %d", len(values), sum)
	}
}

func TestZForServiceLevel(t *testing.T) {
	if z := shared.ZForServiceLevel(0.95); z != 1.645 {
		t.Errorf("expected z=1.645 for 0.95, got %v", z)
	}
}
