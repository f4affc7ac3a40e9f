package detection

import (
	"errors"
	"testing"
	"time"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

// snapshotWith builds a snapshot whose history for p is vals and whose
// current value is the last element.
func snapshotWith(p domain.Parameter, vals ...float64) domain.Snapshot {
	current := domain.DefaultValues()
	series := make([]domain.DataPoint, 0, len(vals))
	for i, v := range vals {
		current[p] = v
		values := make(map[domain.Parameter]float64, len(current))
		for k, x := range current {
			values[k] = x
		}
		series = append(series, domain.DataPoint{Timestamp: testNow().Add(time.Duration(i) * time.Minute), Values: values})
	}
	return domain.Snapshot{CurrentValues: current, Thresholds: domain.DefaultThresholds(), TimeSeries: series}
}

func TestThresholdStrategy(t *testing.T) {
	tests := []struct {
		name      string
		param     domain.Parameter
		value     float64
		flagged   bool
		severity  domain.Severity
		deviation float64
	}{
		{"temperature past critical", domain.Temperature, 39, true, domain.SeverityHigh, 0.5},
		{"power below critical", domain.Power, 72, true, domain.SeverityHigh, 0.6},
		{"power slightly below critical", domain.Power, 74, true, domain.SeverityMedium, 0.2},
		{"battery just below critical", domain.BatteryHealth, 69.5, true, domain.SeverityLow, 0.05},
		{"memory exactly at critical", domain.MemoryUsage, 85, false, "", 0},
		{"signal healthy", domain.SignalStrength, 90, false, "", 0},
		{"temperature cold is not bad", domain.Temperature, -5, false, "", 0},
	}

	strategy := &Threshold{Now: testNow}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := snapshotWith(tt.param, tt.value)
			got := strategy.Detect(snap)
			if !tt.flagged {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			a := got[0]
			assert.Equal(t, tt.param, a.Parameter)
			assert.Equal(t, tt.value, a.Value)
			assert.Equal(t, tt.severity, a.Severity)
			assert.InDelta(t, tt.deviation, a.Score, 1e-9)
			assert.Equal(t, domain.DefaultThresholds()[tt.param].Critical, a.Threshold)
			assert.Equal(t, domain.MethodThreshold, a.DetectionMethod)
			assert.Equal(t, testNow(), a.Timestamp)
			assert.NotEmpty(t, a.ID)
		})
	}
}

func TestDeviationZeroSpan(t *testing.T) {
	th := domain.Threshold{Min: 0, Max: 40, Critical: 40}
	dev, crossed := Deviation(domain.Temperature, 41, th)
	assert.True(t, crossed)
	assert.Equal(t, 1.0, dev)
}

func TestStatisticalStrategy(t *testing.T) {
	wobble := []float64{50, 52, 48, 50, 52, 48, 50, 52, 48, 50}
	flat := func(n int, v float64) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = v
		}
		return out
	}

	tests := []struct {
		name     string
		history  []float64
		flagged  bool
		severity domain.Severity
	}{
		{"flat history does not flag", flat(10, 50), false, ""},
		{"short history is skipped", append(flat(8, 50), 90), false, ""},
		{"within band", append(append([]float64{}, wobble...), 56), false, ""},
		{"low band", append(append([]float64{}, wobble...), 58), true, domain.SeverityLow},
		{"medium band", append(flat(10, 50), 80), true, domain.SeverityMedium},
		{"high band", append(flat(19, 50), 80), true, domain.SeverityHigh},
	}

	strategy := &Statistical{ZThreshold: DefaultZThreshold, MinHistory: DefaultMinHistory, Now: testNow}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strategy.Detect(snapshotWith(domain.SignalStrength, tt.history...))
			if !tt.flagged {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, domain.SignalStrength, got[0].Parameter)
			assert.Equal(t, tt.severity, got[0].Severity)
			assert.Greater(t, got[0].Score, DefaultZThreshold)
			assert.Equal(t, domain.MethodStatistical, got[0].DetectionMethod)
		})
	}
}

func TestZScoreDegenerateInputs(t *testing.T) {
	assert.Equal(t, 0.0, ZScore(5, nil))
	assert.Equal(t, 0.0, ZScore(50, []float64{50, 50, 50, 50, 50, 50, 50, 50, 50, 50}))
	assert.Equal(t, 0.0, ZScore(99, []float64{50, 50, 50}))
	assert.InDelta(t, 3.1623, ZScore(80, append([]float64{50, 50, 50, 50, 50, 50, 50, 50, 50, 50}, 80)), 1e-4)
}

func TestSimulatedMLContract(t *testing.T) {
	// per parameter: flag draw, then severity and confidence for flagged ones
	src := random.NewSequence(
		0.01, 0.9, 0.5, // power: flagged, severity high, confidence 80
		0.5,            // temperature: not flagged
		0.5,            // batteryHealth: not flagged
		0.5,            // signalStrength: not flagged
		0.04, 0.0, 0.0, // memoryUsage: flagged, severity low, confidence 60
	)
	strategy := &SimulatedML{Probability: DefaultMLProbability, Rand: src, Now: testNow}
	snap := snapshotWith(domain.Power, 85)

	got := strategy.Detect(snap)
	require.Len(t, got, 2)

	assert.Equal(t, domain.Power, got[0].Parameter)
	assert.Equal(t, 85.0, got[0].Value)
	assert.Equal(t, domain.SeverityHigh, got[0].Severity)
	assert.InDelta(t, 80.0, got[0].Confidence, 1e-9)
	assert.Equal(t, domain.MethodML, got[0].DetectionMethod)
	assert.Equal(t, testNow(), got[0].Timestamp)

	assert.Equal(t, domain.MemoryUsage, got[1].Parameter)
	assert.Equal(t, domain.SeverityLow, got[1].Severity)
	assert.InDelta(t, 60.0, got[1].Confidence, 1e-9)
}

func TestSimulatedMLConfidenceRange(t *testing.T) {
	strategy := &SimulatedML{Probability: 1, Rand: random.New(99), Now: testNow}
	snap := snapshotWith(domain.Power, 85)
	for i := 0; i < 50; i++ {
		for _, a := range strategy.Detect(snap) {
			assert.GreaterOrEqual(t, a.Confidence, 60.0)
			assert.Less(t, a.Confidence, 100.0)
		}
	}
}

func TestSimulatedMLProbabilityBounds(t *testing.T) {
	snap := snapshotWith(domain.Power, 85)

	off := &SimulatedML{Probability: 0, Rand: random.New(3), Now: testNow}
	for i := 0; i < 200; i++ {
		require.Empty(t, off.Detect(snap))
	}

	// above 1 behaves as 1: every parameter is flagged
	always := &SimulatedML{Probability: 4, Rand: random.New(3), Now: testNow}
	assert.Len(t, always.Detect(snap), len(snap.CurrentValues))
}

type panicking struct{}

func (panicking) Method() domain.DetectionMethod { return domain.MethodStatistical }
func (panicking) Detect(domain.Snapshot) []domain.Anomaly {
	panic("boom")
}

func TestDetectorSwitchesStrategies(t *testing.T) {
	d := NewDetector(DefaultConfig(), random.New(1), testNow)
	assert.Equal(t, domain.MethodThreshold, d.Active())

	snap := snapshotWith(domain.Temperature, 39)
	require.Len(t, d.Detect(snap), 1)

	require.NoError(t, d.Use(domain.MethodStatistical))
	assert.Equal(t, domain.MethodStatistical, d.Active())
	assert.Empty(t, d.Detect(snap), "single point history is too short for statistics")

	err := d.Use(domain.DetectionMethod("lstm"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, domain.MethodStatistical, d.Active())
}

func TestDetectorRecoversFromFailingStrategy(t *testing.T) {
	d := NewDetector(DefaultConfig(), random.New(1), testNow)
	d.Register(panicking{})
	assert.Nil(t, d.Run(domain.MethodStatistical, snapshotWith(domain.Power, 10)))
	assert.Nil(t, d.Run(domain.DetectionMethod("missing"), snapshotWith(domain.Power, 10)))
}

func TestParseMethod(t *testing.T) {
	for _, name := range []string{"threshold", "statistical", "ml"} {
		m, err := ParseMethod(name)
		require.NoError(t, err)
		assert.Equal(t, name, string(m))
	}
	_, err := ParseMethod("isolation-forest")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
