package detection

import (
	"time"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
)

// Severity bands for the normalised threshold deviation.
const (
	deviationHigh   = 0.5
	deviationMedium = 0.2
)

// Threshold flags readings past their critical level in the bad direction.
type Threshold struct {
	Now func() time.Time
}

func (t *Threshold) Method() domain.DetectionMethod { return domain.MethodThreshold }

func (t *Threshold) Detect(snap domain.Snapshot) []domain.Anomaly {
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}

	var out []domain.Anomaly
	for _, p := range domain.Parameters() {
		v, ok := snap.CurrentValues[p]
		if !ok {
			continue
		}
		th, ok := snap.Thresholds[p]
		if !ok {
			continue
		}
		dev, crossed := Deviation(p, v, th)
		if !crossed {
			continue
		}
		a := newAnomaly(p, v, th.Critical, severityForDeviation(dev), domain.MethodThreshold, now())
		a.Score = dev
		out = append(out, a)
	}
	return out
}

// Deviation normalises how far v is past critical toward the hard limit.
// crossed is false when v is on the healthy side of critical.
func Deviation(p domain.Parameter, v float64, th domain.Threshold) (dev float64, crossed bool) {
	var num, span float64
	if p.ExceedsIsBad() {
		if v <= th.Critical {
			return 0, false
		}
		num, span = v-th.Critical, th.Max-th.Critical
	} else {
		if v >= th.Critical {
			return 0, false
		}
		num, span = th.Critical-v, th.Critical-th.Min
	}
	if span <= 0 {
		// critical sits on the hard limit: any crossing is fully deviated
		return 1, true
	}
	return num / span, true
}

func severityForDeviation(dev float64) domain.Severity {
	switch {
	case dev >= deviationHigh:
		return domain.SeverityHigh
	case dev >= deviationMedium:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}
