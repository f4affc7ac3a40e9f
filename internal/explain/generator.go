// Package explain builds evidence-style explanations for detected anomalies.
package explain

import (
	"fmt"
	"math"
	"time"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/random"
)

const (
	// SeriesLength is the number of synthetic trend points per explanation.
	SeriesLength = 25

	trendSpan        = 15.0
	noiseAmplitude   = 1.0
	cleanupPeriod    = 8
	cleanupDrop      = 8.0
	seriesStep       = time.Hour
	visualizationMin = 0.0
	visualizationMax = 100.0
)

var factorsConsidered = []string{
	"Current reading against the critical threshold",
	"Recent trend in the telemetry history",
	"Correlated readings from neighbouring subsystems",
	"Known failure signatures for the subsystem",
	"Orbital and environmental conditions",
}

// Generator produces explanations. It is safe to reuse across anomalies.
type Generator struct {
	rnd random.Source
}

func NewGenerator(src random.Source) *Generator {
	if src == nil {
		src = random.New(0)
	}
	return &Generator{rnd: src}
}

// Explain assembles the full explanation for an anomaly and its root cause.
func (g *Generator) Explain(a domain.Anomaly, rc domain.RootCause, snap domain.Snapshot) domain.Explanation {
	exp := g.GenerateExplanation(a, snap.TimeSeries, snap.Thresholds)
	exp.ConfidenceFactors = g.GenerateConfidenceExplanation(rc)
	return exp
}

// GenerateExplanation produces the reasoning, the factors list and the
// synthetic trend leading to the anomaly. ConfidenceFactors is left empty.
func (g *Generator) GenerateExplanation(a domain.Anomaly, history []domain.DataPoint, thresholds map[domain.Parameter]domain.Threshold) domain.Explanation {
	critical := a.Threshold
	if th, ok := thresholds[a.Parameter]; ok {
		critical = th.Critical
	}

	reasoning := reasoningFor(a, critical)
	if line, ok := trendLine(a.Parameter, history); ok {
		reasoning = append(reasoning, line)
	}

	factors := make([]string, len(factorsConsidered))
	copy(factors, factorsConsidered)

	return domain.Explanation{
		AnomalyID:           a.ID,
		Reasoning:           reasoning,
		FactorsConsidered:   factors,
		VisualizationSeries: g.series(a),
	}
}

func reasoningFor(a domain.Anomaly, critical float64) []string {
	v, sev := a.Value, a.Severity
	switch a.Parameter {
	case domain.Power:
		return []string{
			fmt.Sprintf("Power output measured at %.1f%%, below the critical threshold of %.1f%%.", v, critical),
			"Sustained power loss outside eclipse periods points to reduced solar array efficiency.",
			fmt.Sprintf("The deviation is classified as %s severity for the electrical power subsystem.", sev),
		}
	case domain.Temperature:
		return []string{
			fmt.Sprintf("Temperature measured at %.1f°C, above the critical threshold of %.1f°C.", v, critical),
			"Heat is accumulating faster than the radiators reject it, consistent with a degraded thermal loop.",
			fmt.Sprintf("The excursion is classified as %s severity for thermal control.", sev),
		}
	case domain.BatteryHealth:
		return []string{
			fmt.Sprintf("Battery health measured at %.1f%%, below the critical threshold of %.1f%%.", v, critical),
			"Capacity fade at this rate matches accelerated cell wear from deep discharge cycles.",
			fmt.Sprintf("The degradation is classified as %s severity for energy storage.", sev),
		}
	case domain.SignalStrength:
		return []string{
			fmt.Sprintf("Signal strength measured at %.1f%%, below the critical threshold of %.1f%%.", v, critical),
			"Link margin loss outside ground station geometry changes suggests antenna pointing error.",
			fmt.Sprintf("The link degradation is classified as %s severity for communications.", sev),
		}
	case domain.MemoryUsage:
		return []string{
			fmt.Sprintf("Memory usage measured at %.1f%%, above the critical threshold of %.1f%%.", v, critical),
			"Usage keeps climbing between cleanup cycles, the typical signature of a leaking process.",
			fmt.Sprintf("The growth is classified as %s severity for onboard data handling.", sev),
		}
	}
	return []string{
		fmt.Sprintf("Parameter %q measured at %.2f against a threshold of %.2f.", a.Parameter, v, critical),
		fmt.Sprintf("The reading is classified as %s severity.", sev),
	}
}

// trendLine summarises how p moved over the retained history.
func trendLine(p domain.Parameter, history []domain.DataPoint) (string, bool) {
	var first, last float64
	n := 0
	for _, dp := range history {
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
		return "", false
	}
	return fmt.Sprintf("Across the last %d readings the value moved from %.1f to %.1f (%+.1f).", n, first, last, last-first), true
}

func (g *Generator) series(a domain.Anomaly) []domain.VisualizationPoint {
	end := a.Timestamp
	if end.IsZero() {
		end = time.Now()
	}

	var start float64
	switch a.Parameter {
	case domain.Power, domain.BatteryHealth, domain.SignalStrength:
		start = a.Value + trendSpan
	case domain.Temperature, domain.MemoryUsage:
		start = a.Value - trendSpan
	default:
		start = a.Value
	}

	out := make([]domain.VisualizationPoint, SeriesLength)
	last := SeriesLength - 1
	for i := range out {
		v := start + (a.Value-start)*float64(i)/float64(last)
		if i < last {
			v += (g.rnd.Float64()*2 - 1) * noiseAmplitude
			if a.Parameter == domain.MemoryUsage && i > 0 && i%cleanupPeriod == 0 {
				v -= cleanupDrop
			}
		}
		out[i] = domain.VisualizationPoint{
			Timestamp: end.Add(-time.Duration(last-i) * seriesStep),
			Value:     clamp(v, visualizationMin, visualizationMax),
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
