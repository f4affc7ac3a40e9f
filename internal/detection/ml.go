package detection

import (
	"math"
	"time"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/random"
)

const DefaultMLProbability = 0.05

var severities = []domain.Severity{domain.SeverityLow, domain.SeverityMedium, domain.SeverityHigh}

// SimulatedML stands in for a learned model. It is not trained on anything:
// each parameter is flagged with a fixed probability. A probability of 0
// never flags; values above 1 are treated as 1.
//
// Output contract that a learned replacement must keep: one anomaly per
// flagged parameter carrying Parameter, Value (the current reading),
// Confidence in [60,100), Severity and Timestamp, with DetectionMethod "ml".
type SimulatedML struct {
	Probability float64
	Rand        random.Source
	Now         func() time.Time
}

func (m *SimulatedML) Method() domain.DetectionMethod { return domain.MethodML }

func (m *SimulatedML) Detect(snap domain.Snapshot) []domain.Anomaly {
	src := m.Rand
	if src == nil {
		src = random.New(0)
	}
	prob := min(m.Probability, 1)
	if prob <= 0 || math.IsNaN(prob) {
		return nil
	}
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}

	var out []domain.Anomaly
	for _, p := range domain.Parameters() {
		v, ok := snap.CurrentValues[p]
		if !ok {
			continue
		}
		if src.Float64() >= prob {
			continue
		}
		a := newAnomaly(p, v, snap.Thresholds[p].Critical, severities[src.IntN(len(severities))], domain.MethodML, now())
		a.Confidence = random.Between(src, 60, 100)
		out = append(out, a)
	}
	return out
}
