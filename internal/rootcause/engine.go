// Package rootcause maps anomalies to a probable cause and a recommended action.
package rootcause

import (
	"time"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/random"
	"github.com/google/uuid"
)

// Probability range for the placeholder scoring: [minProbability, minProbability+probabilitySpan).
const (
	minProbability  = 70
	probabilitySpan = 30
)

// Cause is one entry of the cause catalogue.
type Cause struct {
	Label          string
	Recommendation string
}

var causes = map[domain.Parameter]Cause{
	domain.Power: {
		Label:          "Solar panel degradation",
		Recommendation: "Reorient solar arrays and reduce non-essential loads",
	},
	domain.Temperature: {
		Label:          "Cooling system failure",
		Recommendation: "Activate redundant thermal radiators and reduce payload duty cycle",
	},
	domain.BatteryHealth: {
		Label:          "Battery cell degradation",
		Recommendation: "Adjust charge/discharge cycle depth and schedule battery conditioning",
	},
	domain.SignalStrength: {
		Label:          "Antenna misalignment",
		Recommendation: "Recalibrate antenna pointing and switch to backup transponder if needed",
	},
	domain.MemoryUsage: {
		Label:          "Memory leak in onboard software",
		Recommendation: "Restart affected onboard processes and schedule a memory scrub",
	},
}

var unknownCause = Cause{
	Label:          "Unclassified subsystem fault",
	Recommendation: "Run a full subsystem diagnostic sweep",
}

// Lookup returns the catalogue entry for p, or the generic fallback.
func Lookup(p domain.Parameter) Cause {
	if c, ok := causes[p]; ok {
		return c
	}
	return unknownCause
}

// Engine assigns causes to anomalies.
//
// Probabilities are drawn uniformly from [70,100). This is placeholder scoring
// until a calibrated classifier replaces it.
type Engine struct {
	rnd random.Source
	now func() time.Time
}

func NewEngine(src random.Source, now func() time.Time) *Engine {
	if src == nil {
		src = random.New(0)
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{rnd: src, now: now}
}

// Analyze produces the root cause for a single anomaly.
func (e *Engine) Analyze(a domain.Anomaly) domain.RootCause {
	c := Lookup(a.Parameter)
	return domain.RootCause{
		ID:             uuid.NewString(),
		AnomalyID:      a.ID,
		Parameter:      a.Parameter,
		CauseLabel:     c.Label,
		Probability:    minProbability + e.rnd.IntN(probabilitySpan),
		Recommendation: c.Recommendation,
		Timestamp:      e.now(),
	}
}

// AnalyzeAll returns one root cause per anomaly, in the same order.
func (e *Engine) AnalyzeAll(anomalies []domain.Anomaly) []domain.RootCause {
	out := make([]domain.RootCause, 0, len(anomalies))
	for _, a := range anomalies {
		out = append(out, e.Analyze(a))
	}
	return out
}
