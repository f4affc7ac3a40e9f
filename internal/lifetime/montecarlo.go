package lifetime

import (
	"sort"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/random"
)

const (
	DefaultIterations = 1000

	// rateSpread is the half-width of the multiplicative rate perturbation.
	rateSpread = 0.3
)

// MonteCarlo perturbs every rate by a factor in [0.7,1.3] per iteration,
// reruns the component projection and returns p10/p50/p90 per component.
// iterations below 1 run a single iteration.
func MonteCarlo(current map[domain.Parameter]float64, thresholds map[domain.Parameter]domain.Threshold, rates map[domain.Parameter]float64, iterations int, src random.Source) map[string]domain.PercentileBands {
	if iterations < 1 {
		iterations = 1
	}
	if src == nil {
		src = random.New(0)
	}

	samples := make(map[string][]int, len(components))
	for _, c := range components {
		samples[c] = make([]int, 0, iterations)
	}

	perturbed := make(map[domain.Parameter]float64, len(rates))
	for i := 0; i < iterations; i++ {
		for _, p := range domain.Parameters() {
			factor := random.Between(src, 1-rateSpread, 1+rateSpread)
			perturbed[p] = rates[p] * factor
		}
		for c, d := range estimate(current, thresholds, perturbed) {
			samples[c] = append(samples[c], d)
		}
	}

	out := make(map[string]domain.PercentileBands, len(components))
	for c, s := range samples {
		sort.Ints(s)
		out[c] = domain.PercentileBands{
			P10: percentile(s, 10),
			P50: percentile(s, 50),
			P90: percentile(s, 90),
		}
	}
	return out
}

// percentile indexes a sorted sample at floor(n*pct/100).
func percentile(sorted []int, pct int) int {
	if len(sorted) == 0 {
		return 0
	}
	idx := len(sorted) * pct / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// SimulateReliability runs MonteCarlo over the snapshot and attaches the
// bands to the deterministic predictions.
func SimulateReliability(snap domain.Snapshot, iterations int, src random.Source) []domain.LifetimePrediction {
	bands := MonteCarlo(snap.CurrentValues, snap.Thresholds, Rates(snap.TimeSeries), iterations, src)
	preds := PredictComponentLifetime(snap)
	for i := range preds {
		b := bands[preds[i].Component]
		preds[i].Bands = &b
	}
	return preds
}
