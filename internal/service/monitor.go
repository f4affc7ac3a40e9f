// Package service wires the analytical components into a single monitoring
// session that every boundary adapter talks to.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/detection"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/explain"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/lifetime"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/pubsub"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/random"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/rootcause"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/telemetry"
	"github.com/rs/zerolog/log"
)

const (
	DefaultRetention    = 100
	DefaultTickInterval = 2 * time.Second
)

// Options configures a Monitor. Zero values fall back to the defaults.
type Options struct {
	Capacity     int
	Strategy     domain.DetectionMethod
	Detection    detection.Config
	Retention    int
	Iterations   int
	TickInterval time.Duration
	Seed         uint64

	// Random and Clock override the seeded source and wall clock.
	Random random.Source
	Clock  func() time.Time
}

func DefaultOptions() Options {
	return Options{
		Capacity:     telemetry.DefaultCapacity,
		Strategy:     domain.MethodThreshold,
		Detection:    detection.DefaultConfig(),
		Retention:    DefaultRetention,
		Iterations:   lifetime.DefaultIterations,
		TickInterval: DefaultTickInterval,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Capacity <= 0 {
		o.Capacity = def.Capacity
	}
	if o.Strategy == "" {
		o.Strategy = def.Strategy
	}
	if o.Detection == (detection.Config{}) {
		o.Detection = def.Detection
	}
	if o.Detection.ZThreshold <= 0 {
		o.Detection.ZThreshold = def.Detection.ZThreshold
	}
	if o.Detection.MinHistory <= 0 {
		o.Detection.MinHistory = def.Detection.MinHistory
	}
	o.Detection.MLProbability = min(max(o.Detection.MLProbability, 0), 1)
	if o.Retention <= 0 {
		o.Retention = def.Retention
	}
	if o.Iterations <= 0 {
		o.Iterations = def.Iterations
	}
	if o.TickInterval <= 0 {
		o.TickInterval = def.TickInterval
	}
	if o.Random == nil {
		o.Random = random.New(o.Seed)
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

// Status summarises the session for dashboards.
type Status struct {
	Strategy         domain.DetectionMethod `json:"strategy"`
	Simulating       bool                   `json:"simulating"`
	TickInterval     string                 `json:"tickInterval,omitempty"`
	HistoryLength    int                    `json:"historyLength"`
	HistoryCapacity  int                    `json:"historyCapacity"`
	AnomalyCount     int                    `json:"anomalyCount"`
	AnomalyRetention int                    `json:"anomalyRetention"`
}

// Monitor is one monitoring session. Every operation holds mu for its whole
// duration, so store mutations, detection passes and predictions never
// interleave.
//
// Snapshot subscribers registered with Subscribe run while mu is held and
// must not call back into the Monitor; use the Watch variants instead.
type Monitor struct {
	mu sync.Mutex

	opts      Options
	store     *telemetry.Store
	detector  *detection.Detector
	causes    *rootcause.Engine
	explainer *explain.Generator
	ticker    *telemetry.Ticker

	anomalies  []domain.Anomaly
	rootCauses []domain.RootCause

	anomalyTopic *pubsub.Topic[[]domain.Anomaly]
	causeTopic   *pubsub.Topic[[]domain.RootCause]
}

// New builds a session with its own store, detector and ticker.
func New(opts Options) (*Monitor, error) {
	opts = opts.withDefaults()

	m := &Monitor{
		opts: opts,
		store: telemetry.NewStore(
			telemetry.WithCapacity(opts.Capacity),
			telemetry.WithRandom(opts.Random),
			telemetry.WithClock(opts.Clock),
		),
		detector:     detection.NewDetector(opts.Detection, opts.Random, opts.Clock),
		causes:       rootcause.NewEngine(opts.Random, opts.Clock),
		explainer:    explain.NewGenerator(opts.Random),
		anomalyTopic: pubsub.NewTopic[[]domain.Anomaly](),
		causeTopic:   pubsub.NewTopic[[]domain.RootCause](),
	}
	if err := m.detector.Use(opts.Strategy); err != nil {
		return nil, fmt.Errorf("failed to select detection strategy: %w", err)
	}
	m.ticker = telemetry.NewTicker(m.tick)
	m.store.Subscribe(m.onChange)

	log.Info().
		Str("strategy", string(opts.Strategy)).
		Int("capacity", opts.Capacity).
		Int("retention", opts.Retention).
		Msg("monitor initialized")
	return m, nil
}

// onChange runs inside the store mutation, which always happens under mu.
func (m *Monitor) onChange(snap domain.Snapshot) {
	// empty passes publish too
	found := m.detector.Detect(snap)
	if len(found) > 0 {
		causes := m.causes.AnalyzeAll(found)
		m.anomalies = append(m.anomalies, found...)
		m.rootCauses = append(m.rootCauses, causes...)
		if over := len(m.anomalies) - m.opts.Retention; over > 0 {
			m.anomalies = append(m.anomalies[:0:0], m.anomalies[over:]...)
			m.rootCauses = append(m.rootCauses[:0:0], m.rootCauses[over:]...)
		}
	}

	for _, a := range found {
		log.Debug().
			Str("anomaly_id", a.ID).
			Str("parameter", string(a.Parameter)).
			Float64("value", a.Value).
			Str("severity", string(a.Severity)).
			Str("method", string(a.DetectionMethod)).
			Msg("anomaly detected")
	}

	m.anomalyTopic.Publish(cloneAnomalies(m.anomalies))
	m.causeTopic.Publish(cloneCauses(m.rootCauses))
}

// Snapshot returns a copy of the store state.
func (m *Monitor) Snapshot() domain.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Snapshot()
}

// Update records one reading and runs the active detector over the result.
func (m *Monitor) Update(p domain.Parameter, v float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Update(p, v)
}

// Ingest records a full telemetry frame as a single data point.
func (m *Monitor) Ingest(values map[domain.Parameter]float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Apply(values)
}

func (m *Monitor) UpdateThreshold(p domain.Parameter, field domain.ThresholdField, v float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.UpdateThreshold(p, field, v)
}

// Tick applies one simulated drift step.
func (m *Monitor) Tick() (domain.Parameter, float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.SimulateTick()
}

func (m *Monitor) tick(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ctx.Err() != nil {
		return
	}
	if _, _, err := m.store.SimulateTick(); err != nil {
		log.Error().Err(err).Msg("simulated tick failed")
	}
}

// StartSimulation replaces any running generator. interval <= 0 uses the
// configured tick interval.
func (m *Monitor) StartSimulation(interval time.Duration) {
	if interval <= 0 {
		interval = m.opts.TickInterval
	}
	m.ticker.Start(interval)
	log.Info().Dur("interval", interval).Msg("simulation started")
}

// StopSimulation returns once no further tick can fire.
func (m *Monitor) StopSimulation() {
	// must not hold mu: an in-flight tick may be waiting for it
	m.ticker.Stop()
	log.Info().Msg("simulation stopped")
}

// SetStrategy switches the detector used for subsequent updates.
func (m *Monitor) SetStrategy(method domain.DetectionMethod) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.detector.Use(method); err != nil {
		return err
	}
	log.Info().Str("strategy", string(method)).Msg("detection strategy changed")
	return nil
}

func (m *Monitor) Strategy() domain.DetectionMethod {
	return m.detector.Active()
}

// RunDetection runs a strategy against snap without recording the result.
func (m *Monitor) RunDetection(method domain.DetectionMethod, snap domain.Snapshot) []domain.Anomaly {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.detector.Run(method, snap)
}

// Anomalies returns the retained anomalies, oldest first.
func (m *Monitor) Anomalies() []domain.Anomaly {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneAnomalies(m.anomalies)
}

// RootCauses returns the retained root causes, oldest first.
func (m *Monitor) RootCauses() []domain.RootCause {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneCauses(m.rootCauses)
}

// Explain builds the explanation for a retained anomaly.
func (m *Monitor) Explain(anomalyID string) (domain.Explanation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, a := range m.anomalies {
		if a.ID != anomalyID {
			continue
		}
		rc := m.rootCauses[i]
		return m.explainer.Explain(a, rc, m.store.Snapshot()), nil
	}
	return domain.Explanation{}, fmt.Errorf("anomaly %q: %w", anomalyID, domain.ErrNotFound)
}

func (m *Monitor) PredictLifetimes() []domain.LifetimePrediction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lifetime.PredictComponentLifetime(m.store.Snapshot())
}

// SimulateReliability attaches Monte Carlo bands to the lifetime predictions.
// iterations <= 0 uses the configured count.
func (m *Monitor) SimulateReliability(iterations int) []domain.LifetimePrediction {
	if iterations <= 0 {
		iterations = m.opts.Iterations
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return lifetime.SimulateReliability(m.store.Snapshot(), iterations, m.opts.Random)
}

func (m *Monitor) MaintenancePlan() []domain.MaintenanceRecommendation {
	return lifetime.MaintenanceRecommendations(m.PredictLifetimes())
}

func (m *Monitor) ModelInsights(p domain.Parameter) domain.ModelInsight {
	return explain.GenerateModelInsights(p)
}

func (m *Monitor) Status() Status {
	running, interval := m.ticker.Running()

	m.mu.Lock()
	defer m.mu.Unlock()
	st := Status{
		Strategy:         m.detector.Active(),
		Simulating:       running,
		HistoryLength:    len(m.store.Snapshot().TimeSeries),
		HistoryCapacity:  m.store.Capacity(),
		AnomalyCount:     len(m.anomalies),
		AnomalyRetention: m.opts.Retention,
	}
	if running {
		st.TickInterval = interval.String()
	}
	return st
}

// Subscribe runs fn synchronously after every store mutation.
func (m *Monitor) Subscribe(fn func(domain.Snapshot)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Subscribe(fn)
}

// WatchSnapshots returns a latest-snapshot mailbox.
func (m *Monitor) WatchSnapshots() (<-chan domain.Snapshot, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Watch()
}

// WatchAnomalies delivers the full retained list after every detection pass,
// including passes that found nothing.
func (m *Monitor) WatchAnomalies() (<-chan []domain.Anomaly, func()) {
	return m.anomalyTopic.Watch()
}

func (m *Monitor) WatchRootCauses() (<-chan []domain.RootCause, func()) {
	return m.causeTopic.Watch()
}

// Close stops the simulation generator.
func (m *Monitor) Close() {
	m.ticker.Stop()
}

func cloneAnomalies(in []domain.Anomaly) []domain.Anomaly {
	out := make([]domain.Anomaly, len(in))
	copy(out, in)
	return out
}

func cloneCauses(in []domain.RootCause) []domain.RootCause {
	out := make([]domain.RootCause, len(in))
	copy(out, in)
	return out
}
