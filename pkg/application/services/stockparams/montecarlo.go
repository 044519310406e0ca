package stockparams

import (
	"context"
	"math"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
	"github.com/vsinha/mrp-planner/pkg/shared"
)

const minHistoryWeeks = 12

const histogramBuckets = 20

// runMonteCarlo bootstraps weekly demand history and samples lead time as
// Normal(leadTimeDaysMean, sigmaLTDays) to build a simulated distribution
// of total demand-over-lead-time, then derives safety stock as the gap
// between the target service quantile and the simulated mean.
func (s *Service) runMonteCarlo(ctx context.Context, p entities.Product, serviceLevel float64, iterations int, seed *uint32, weeklyHistory []float64, leadTimeDaysMean, sigmaLTDays float64) (entities.MonteCarloResult, error) {
	if len(weeklyHistory) < minHistoryWeeks {
		return entities.MonteCarloResult{}, entities.ErrInsufficientHistory
	}

	var seedVal uint32 = 0x9e3779b9
	if seed != nil {
		seedVal = *seed
	}
	rng := shared.NewMulberry32(seedVal)

	totals := make([]float64, iterations)
	sum := 0.0
	for i := 0; i < iterations; i++ {
		leadDays := shared.NormalSample(rng, leadTimeDaysMean, sigmaLTDays)
		if leadDays < 0 {
			leadDays = 0
		}
		leadWeeks := leadDays / 7

		wholeWeeks := int(math.Floor(leadWeeks))
		frac := leadWeeks - float64(wholeWeeks)

		total := 0.0
		for w := 0; w < wholeWeeks; w++ {
			total += weeklyHistory[rng.Intn(len(weeklyHistory))]
		}
		if frac > 0 {
			total += frac * weeklyHistory[rng.Intn(len(weeklyHistory))]
		}

		totals[i] = total
		sum += total
	}

	meanTotal := sum / float64(iterations)
	serviceQuantile := shared.Quantile(totals, serviceLevel)
	p5 := shared.Quantile(totals, 0.05)
	p95 := shared.Quantile(totals, 0.95)

	ss := serviceQuantile - meanTotal
	if ss < 0 {
		ss = 0
	}

	result := entities.MonteCarloResult{
		ProductCode:     p.Code,
		ServiceLevel:    serviceLevel,
		Iterations:      iterations,
		SafetyStock:     shared.Round4F(ss),
		ServiceQuantile: shared.Round4F(serviceQuantile),
		MeanTotalDemand: shared.Round4F(meanTotal),
		P5:              shared.Round4F(p5),
		P95:             shared.Round4F(p95),
		Histogram:       histogram(totals, histogramBuckets),
	}
	return result, nil
}

func histogram(values []float64, buckets int) []entities.MonteCarloHistogramBucket {
	if len(values) == 0 || buckets <= 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	width := (hi - lo) / float64(buckets)

	out := make([]entities.MonteCarloHistogramBucket, buckets)
	for i := range out {
		out[i] = entities.MonteCarloHistogramBucket{
			LowerBound: lo + float64(i)*width,
			UpperBound: lo + float64(i+1)*width,
		}
	}
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= buckets {
			idx = buckets - 1
		}
		if idx < 0 {
			idx = 0
		}
		out[idx].Count++
	}
	return out
}

// RunMonteCarloSimulation is the standalone endpoint behind the
// Monte Carlo simulation API: it does not persist anything and returns
// entities.ErrInsufficientHistory rather than silently downgrading, unlike
// the pipeline path in selectSafetyStock.
func (s *Service) RunMonteCarloSimulation(ctx context.Context, productCode string, serviceLevel float64, iterations int, seed *uint32) (entities.MonteCarloResult, error) {
	p, err := s.Products.GetByCode(ctx, productCode)
	if err != nil {
		return entities.MonteCarloResult{}, err
	}
	if p == nil {
		return entities.MonteCarloResult{}, entities.ErrInsufficientHistory
	}
	if serviceLevel <= 0 {
		serviceLevel = 0.95
	}
	if iterations <= 0 {
		iterations = 10000
	}

	weeklyHistory, err := s.Forecast.WeeklyHistory(ctx, p.Code, 52)
	if err != nil {
		return entities.MonteCarloResult{}, err
	}

	leadTimeDays := float64(p.ProductionLeadTime)
	var sigmaLTDays float64
	if p.Kind.IsBuy() {
		leadTimeDays, sigmaLTDays = s.buyLeadTimeStats(ctx, *p)
	}

	return s.runMonteCarlo(ctx, *p, serviceLevel, iterations, seed, weeklyHistory, leadTimeDays, sigmaLTDays)
}
