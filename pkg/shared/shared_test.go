package shared

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestRound4_HalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.00005", "1.0001"},
		{"1.00004", "1"},
		{"-1.00005", "-1.0001"},
		{"642.6", "642.6"},
	}
	for _, c := range cases {
		got := Round4(decimal.RequireFromString(c.in))
		want := decimal.RequireFromString(c.want)
		if !got.Equal(want) {
			t.Errorf("Round4(%v) = %v, want %v", c.in, got, want)
		}
	}
}

func TestRound2_Percentages(t *testing.T) {
	got := Round2(decimal.NewFromFloat(33.3333))
	if !got.Equal(decimal.NewFromFloat(33.33)) {
		t.Errorf("Round2(33.3333) = %v, want 33.33", got)
	}
}

func TestZeroFloor(t *testing.T) {
	if !ZeroFloor(decimal.NewFromInt(-5)).IsZero() {
		t.Error("ZeroFloor(-5) should clamp to 0")
	}
	if !ZeroFloor(decimal.NewFromInt(5)).Equal(decimal.NewFromInt(5)) {
		t.Error("ZeroFloor(5) should stay 5")
	}
}

func TestWeekStart_MondayIsUnchanged(t *testing.T) {
	monday := time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC)
	got := WeekStart(monday)
	want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("WeekStart(Monday) = %v, want %v", got, want)
	}
}

func TestWeekStart_SundayRollsBackToMonday(t *testing.T) {
	sunday := time.Date(2026, 3, 8, 23, 0, 0, 0, time.UTC)
	got := WeekStart(sunday)
	want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("WeekStart(Sunday) = %v, want %v", got, want)
	}
}

func TestWeeklyBuckets_ContiguousAndAligned(t *testing.T) {
	start := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC) // Wednesday
	buckets := WeeklyBuckets(start, 3)
	if len(buckets) != 3 {
		t.Fatalf("len(buckets) = %d, want 3", len(buckets))
	}
	wantStart0 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if !buckets[0].Start.Equal(wantStart0) {
		t.Errorf("bucket[0].Start = %v, want %v", buckets[0].Start, wantStart0)
	}
	for i := 1; i < len(buckets); i++ {
		if !buckets[i].Start.Equal(buckets[i-1].Start.AddDate(0, 0, 7)) {
			t.Errorf("bucket[%d].Start not 7 days after bucket[%d].Start", i, i-1)
		}
		if !buckets[i-1].End.Before(buckets[i].Start) {
			t.Errorf("bucket[%d].End should precede bucket[%d].Start", i-1, i)
		}
	}
}

func TestBucketIndex(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		t    time.Time
		want int
	}{
		{time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2026, 3, 8, 23, 0, 0, 0, time.UTC), 0},
		{time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC), -1},
	}
	for _, c := range cases {
		if got := BucketIndex(start, c.t); got != c.want {
			t.Errorf("BucketIndex(%v) = %d, want %d", c.t, got, c.want)
		}
	}
}

func TestZForServiceLevel_ExactAndNearestFallback(t *testing.T) {
	cases := []struct {
		level float64
		want  float64
	}{
		{0.90, 1.28},
		{0.95, 1.645},
		{0.975, 1.96},
		{0.99, 2.326},
	}
	for _, c := range cases {
		if got := ZForServiceLevel(c.level); got != c.want {
			t.Errorf("ZForServiceLevel(%v) = %v, want %v", c.level, got, c.want)
		}
	}
	// 0.93 is closer to 0.95 (0.02) than to 0.90 (0.03).
	if got := ZForServiceLevel(0.93); got != 1.645 {
		t.Errorf("ZForServiceLevel(0.93) = %v, want nearest-fallback 1.645", got)
	}
}

func TestQuantileSorted_Interpolates(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}
	if got := QuantileSorted(sorted, 0); got != 1 {
		t.Errorf("q0 = %v, want 1", got)
	}
	if got := QuantileSorted(sorted, 1); got != 5 {
		t.Errorf("q1 = %v, want 5", got)
	}
	if got := QuantileSorted(sorted, 0.5); got != 3 {
		t.Errorf("q0.5 = %v, want 3", got)
	}
}

func TestMeanStdDev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if mean := Mean(values); math.Abs(mean-5) > 1e-9 {
		t.Errorf("Mean = %v, want 5", mean)
	}
	if sd := StdDev(values); math.Abs(sd-2) > 1e-9 {
		t.Errorf("StdDev = %v, want 2", sd)
	}
}

func TestMulberry32_DeterministicForSameSeed(t *testing.T) {
	a := NewMulberry32(42)
	b := NewMulberry32(42)
	for i := 0; i < 100; i++ {
		va, vb := a.Float64(), b.Float64()
		if va != vb {
			t.Fatalf("draw %d diverged: %v != %v", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, va)
		}
	}
}

func TestMulberry32_DifferentSeedsDiverge(t *testing.T) {
	a := NewMulberry32(1)
	b := NewMulberry32(2)
	same := true
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical sequences")
	}
}

func TestNormalSample_ReproducibleFromSeed(t *testing.T) {
	rngA := NewMulberry32(7)
	rngB := NewMulberry32(7)
	for i := 0; i < 20; i++ {
		a := NormalSample(rngA, 10, 2)
		b := NormalSample(rngB, 10, 2)
		if a != b {
			t.Fatalf("sample %d diverged: %v != %v", i, a, b)
		}
	}
}
