// Package lifetime projects remaining operational days per subsystem from
// the telemetry history.
package lifetime

import (
	"math"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
)

// MaxDays caps every projection; non-degrading channels report the cap.
const MaxDays = 500

// elapsedDays is the window the retained history is assumed to span. The
// series is treated as a 24-hour window regardless of point count or spacing.
const elapsedDays = 1.0

// RateOfChange is (last-first)/elapsedDays over the series for p.
// Fewer than two readings give 0.
func RateOfChange(series []domain.DataPoint, p domain.Parameter) float64 {
	var first, last float64
	n := 0
	for _, dp := range series {
		v, ok := dp.Values[p]
		if !ok {
			continue
		}
		if n == 0 {
			first = v
		}
		last = v
		n++
	}
	if n < 2 {
		return 0
	}
	return (last - first) / elapsedDays
}

// LinearDegradation projects days until current falls to threshold at rate
// per day. rate >= 0 is not degrading and yields MaxDays.
func LinearDegradation(current, threshold, rate float64) int {
	if rate >= 0 || math.IsNaN(rate) {
		return MaxDays
	}
	return clampDays(math.Round((current - threshold) / math.Abs(rate)))
}

// DecayParams describes an exponential decay since beginning of life.
type DecayParams struct {
	InitialValue float64
	Age          float64
	HalfLife     float64
}

func (d *DecayParams) complete() bool {
	if d == nil {
		return false
	}
	for _, v := range []float64{d.InitialValue, d.HalfLife} {
		if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	// age 0 is beginning of life
	return !math.IsNaN(d.Age) && !math.IsInf(d.Age, 0)
}

// ExponentialDegradation projects days until the decaying value reaches
// threshold. Missing decay parameters fall back to LinearDegradation.
func ExponentialDegradation(current, threshold, rate float64, params *DecayParams) int {
	if !params.complete() {
		return LinearDegradation(current, threshold, rate)
	}
	decay := math.Ln2 / params.HalfLife
	t := math.Round(-math.Log(threshold/params.InitialValue)/decay - params.Age)
	return clampDays(t)
}

func clampDays(d float64) int {
	if math.IsNaN(d) {
		return 0
	}
	if d < 0 {
		return 0
	}
	if d > MaxDays {
		return MaxDays
	}
	return int(d)
}
