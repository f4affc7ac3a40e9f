package rootcause

import (
	"testing"
	"time"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeLinksAnomaly(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	e := NewEngine(random.NewSequence(0.5), func() time.Time { return now })

	rc := e.Analyze(domain.Anomaly{ID: "a-1", Parameter: domain.Temperature})
	assert.Equal(t, "a-1", rc.AnomalyID)
	assert.Equal(t, domain.Temperature, rc.Parameter)
	assert.Equal(t, "Cooling system failure", rc.CauseLabel)
	assert.Equal(t, 85, rc.Probability)
	assert.NotEmpty(t, rc.Recommendation)
	assert.NotEmpty(t, rc.ID)
	assert.Equal(t, now, rc.Timestamp)
}

func TestProbabilityRange(t *testing.T) {
	e := NewEngine(random.New(3), nil)
	for i := 0; i < 500; i++ {
		rc := e.Analyze(domain.Anomaly{ID: "x", Parameter: domain.Power})
		assert.GreaterOrEqual(t, rc.Probability, 70)
		assert.Less(t, rc.Probability, 100)
	}

	edges := NewEngine(random.NewSequence(0, 0.9999), nil)
	assert.Equal(t, 70, edges.Analyze(domain.Anomaly{}).Probability)
	assert.Equal(t, 99, edges.Analyze(domain.Anomaly{}).Probability)
}

func TestEveryParameterHasACause(t *testing.T) {
	for _, p := range domain.Parameters() {
		c := Lookup(p)
		assert.NotEqual(t, unknownCause, c, string(p))
	}
}

func TestUnknownParameterFallsBack(t *testing.T) {
	e := NewEngine(random.New(1), nil)
	rc := e.Analyze(domain.Anomaly{ID: "z", Parameter: domain.Parameter("voltage")})
	assert.Equal(t, unknownCause.Label, rc.CauseLabel)
	assert.Equal(t, unknownCause.Recommendation, rc.Recommendation)
}

func TestAnalyzeAllPreservesOrder(t *testing.T) {
	e := NewEngine(random.New(1), nil)
	anomalies := []domain.Anomaly{
		{ID: "1", Parameter: domain.Power},
		{ID: "2", Parameter: domain.MemoryUsage},
	}
	got := e.AnalyzeAll(anomalies)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].AnomalyID)
	assert.Equal(t, "2", got[1].AnomalyID)
	assert.Empty(t, e.AnalyzeAll(nil))
}
