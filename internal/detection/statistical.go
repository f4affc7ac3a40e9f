package detection

import (
	"math"
	"time"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
	"gonum.org/v1/gonum/stat"
)

const (
	DefaultZThreshold = 2.5
	DefaultMinHistory = 10

	zHigh   = 3.5
	zMedium = 3.0
)

// Statistical flags readings whose z-score against the retained history
// exceeds ZThreshold.
type Statistical struct {
	ZThreshold float64
	MinHistory int
	Now        func() time.Time
}

func (s *Statistical) Method() domain.DetectionMethod { return domain.MethodStatistical }

func (s *Statistical) Detect(snap domain.Snapshot) []domain.Anomaly {
	zThreshold := s.ZThreshold
	if zThreshold <= 0 {
		zThreshold = DefaultZThreshold
	}
	minHistory := s.MinHistory
	if minHistory <= 0 {
		minHistory = DefaultMinHistory
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	var out []domain.Anomaly
	for _, p := range domain.Parameters() {
		current, ok := snap.CurrentValues[p]
		if !ok {
			continue
		}
		history := snap.History(p)
		if len(history) < minHistory {
			continue
		}

		z := ZScore(current, history)
		if z <= zThreshold {
			continue
		}
		a := newAnomaly(p, current, snap.Thresholds[p].Critical, severityForZ(z), domain.MethodStatistical, now())
		a.Score = z
		out = append(out, a)
	}
	return out
}

// ZScore is |current-mean|/stddev over history using the population standard
// deviation. A flat history yields 0.
func ZScore(current float64, history []float64) float64 {
	if len(history) == 0 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(history, nil)
	if std == 0 || math.IsNaN(std) {
		return 0
	}
	return math.Abs(current-mean) / std
}

func severityForZ(z float64) domain.Severity {
	switch {
	case z > zHigh:
		return domain.SeverityHigh
	case z > zMedium:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}
