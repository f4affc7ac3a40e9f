package alerting

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/random"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu          sync.Mutex
	anomalies   []domain.Anomaly
	causes      []domain.RootCause
	maintenance []domain.MaintenanceRecommendation
	batches     [][]string
}

func (s *recordingSink) SendAnomalyAlert(_ context.Context, a domain.Anomaly, rc domain.RootCause) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.anomalies = append(s.anomalies, a)
	s.causes = append(s.causes, rc)
	return nil
}

func (s *recordingSink) SendBatchAlerts(_ context.Context, alerts []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, alerts)
	return nil
}

func (s *recordingSink) SendMaintenanceAlert(_ context.Context, rec domain.MaintenanceRecommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maintenance = append(s.maintenance, rec)
	return nil
}

func (s *recordingSink) counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.anomalies), len(s.maintenance)
}

func newMonitor(t *testing.T) *service.Monitor {
	t.Helper()
	opts := service.DefaultOptions()
	opts.Random = random.New(21)
	m, err := service.New(opts)
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func TestProcessSendsHighSeverityOnce(t *testing.T) {
	m := newMonitor(t)
	sink := &recordingSink{}
	f := NewForwarder(m, sink)

	// (39-38)/(40-38) = 0.5 is high
	require.NoError(t, m.Update(domain.Temperature, 39))
	f.Process(context.Background(), m.Anomalies())
	f.Process(context.Background(), m.Anomalies())

	require.Len(t, sink.anomalies, 1)
	assert.Equal(t, domain.Temperature, sink.anomalies[0].Parameter)
	assert.Equal(t, sink.anomalies[0].ID, sink.causes[0].AnomalyID)
	assert.Equal(t, "Cooling system failure", sink.causes[0].CauseLabel)
}

func TestProcessSustainedExcursionAlertsOnce(t *testing.T) {
	m := newMonitor(t)
	sink := &recordingSink{}
	f := NewForwarder(m, sink)
	ctx := context.Background()

	require.NoError(t, m.Update(domain.Temperature, 39))
	f.Process(ctx, m.Anomalies())

	// every update re-flags temperature while it stays at 39
	for _, v := range []float64{86, 87, 88, 89, 90} {
		require.NoError(t, m.Update(domain.Power, v))
		f.Process(ctx, m.Anomalies())
	}
	assert.Len(t, m.Anomalies(), 6)
	require.Len(t, sink.anomalies, 1)
	assert.Empty(t, sink.batches)

	// recovery clears the condition, a new excursion alerts again
	require.NoError(t, m.Update(domain.Temperature, 30))
	f.Process(ctx, m.Anomalies())
	require.NoError(t, m.Update(domain.Temperature, 39))
	f.Process(ctx, m.Anomalies())
	assert.Len(t, sink.anomalies, 2)
}

func TestProcessBatchesSimultaneousConditions(t *testing.T) {
	m := newMonitor(t)
	sink := &recordingSink{}
	f := NewForwarder(m, sink)

	// signal (60-52)/(60-50) = 0.8 is high as well
	require.NoError(t, m.Ingest(map[domain.Parameter]float64{
		domain.Temperature:    39,
		domain.SignalStrength: 52,
	}))
	f.Process(context.Background(), m.Anomalies())

	assert.Empty(t, sink.anomalies)
	require.Len(t, sink.batches, 1)
	batch := sink.batches[0]
	require.Len(t, batch, 2)
	assert.Contains(t, batch[0]+batch[1], "Cooling system failure")
	assert.Contains(t, batch[0]+batch[1], "signalStrength")
}

type staticSource struct {
	causes []domain.RootCause
}

func (*staticSource) WatchAnomalies() (<-chan []domain.Anomaly, func()) {
	return nil, func() {}
}

func (s *staticSource) RootCauses() []domain.RootCause { return s.causes }

func (*staticSource) MaintenancePlan() []domain.MaintenanceRecommendation { return nil }

func TestProcessDefersAlertWithoutRootCause(t *testing.T) {
	src := &staticSource{}
	sink := &recordingSink{}
	f := NewForwarder(src, sink)
	ctx := context.Background()

	first := domain.Anomaly{ID: "a1", Parameter: domain.Temperature, Value: 39, Threshold: 38, Severity: domain.SeverityHigh}
	f.Process(ctx, []domain.Anomaly{first})
	assert.Empty(t, sink.anomalies)

	// the next pass still flags temperature and its cause is retained
	second := first
	second.ID = "a2"
	src.causes = []domain.RootCause{{AnomalyID: "a2", CauseLabel: "Cooling system failure", Probability: 80}}
	f.Process(ctx, []domain.Anomaly{first, second})

	require.Len(t, sink.anomalies, 1)
	assert.Equal(t, "a2", sink.anomalies[0].ID)
	assert.Equal(t, "Cooling system failure", sink.causes[0].CauseLabel)
}

func TestProcessSkipsLowSeverity(t *testing.T) {
	m := newMonitor(t)
	sink := &recordingSink{}
	f := NewForwarder(m, sink)

	// (70-69.5)/(70-60) = 0.05 is low
	require.NoError(t, m.Update(domain.BatteryHealth, 69.5))
	require.Len(t, m.Anomalies(), 1)
	f.Process(context.Background(), m.Anomalies())
	assert.Empty(t, sink.anomalies)
}

func TestProcessMaintenanceTransitions(t *testing.T) {
	m := newMonitor(t)
	sink := &recordingSink{}
	f := NewForwarder(m, sink)

	require.NoError(t, m.Update(domain.MemoryUsage, 60))
	require.NoError(t, m.Update(domain.MemoryUsage, 80))
	f.Process(context.Background(), nil)
	f.Process(context.Background(), nil)

	require.Len(t, sink.maintenance, 1)
	assert.Equal(t, "dataHandling", sink.maintenance[0].Component)

	// recovered, then critical again
	require.NoError(t, m.Update(domain.MemoryUsage, 55))
	f.Process(context.Background(), nil)
	require.NoError(t, m.Update(domain.MemoryUsage, 84))
	f.Process(context.Background(), nil)
	assert.Len(t, sink.maintenance, 2)
}

func TestRunForwardsUntilCancelled(t *testing.T) {
	m := newMonitor(t)
	sink := &recordingSink{}
	f := NewForwarder(m, sink)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.Run(ctx) }()

	require.Eventually(t, func() bool {
		_ = m.Update(domain.SignalStrength, 52)
		n, _ := sink.counts()
		return n > 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("forwarder did not stop")
	}
}
