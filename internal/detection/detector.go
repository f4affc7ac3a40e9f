// Package detection flags abnormal telemetry readings with interchangeable
// strategies.
package detection

import (
	"fmt"
	"sync"
	"time"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/random"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Strategy turns a store snapshot into anomalies. Implementations keep no
// state between calls.
type Strategy interface {
	Method() domain.DetectionMethod
	Detect(snap domain.Snapshot) []domain.Anomaly
}

// Config tunes the built-in strategies.
type Config struct {
	ZThreshold    float64
	MinHistory    int
	MLProbability float64
}

func DefaultConfig() Config {
	return Config{
		ZThreshold:    DefaultZThreshold,
		MinHistory:    DefaultMinHistory,
		MLProbability: DefaultMLProbability,
	}
}

// Detector holds the built-in strategies and the currently selected one.
type Detector struct {
	mu         sync.RWMutex
	strategies map[domain.DetectionMethod]Strategy
	active     domain.DetectionMethod
}

// NewDetector builds all three strategies; the threshold strategy starts active.
func NewDetector(cfg Config, src random.Source, now func() time.Time) *Detector {
	if now == nil {
		now = time.Now
	}
	d := &Detector{
		strategies: map[domain.DetectionMethod]Strategy{
			domain.MethodThreshold:   &Threshold{Now: now},
			domain.MethodStatistical: &Statistical{ZThreshold: cfg.ZThreshold, MinHistory: cfg.MinHistory, Now: now},
			domain.MethodML:          &SimulatedML{Probability: cfg.MLProbability, Rand: src, Now: now},
		},
		active: domain.MethodThreshold,
	}

	log.Debug().
		Float64("z_threshold", cfg.ZThreshold).
		Int("min_history", cfg.MinHistory).
		Float64("ml_probability", cfg.MLProbability).
		Msg("anomaly detector initialized")
	return d
}

// ParseMethod maps a strategy name to its DetectionMethod.
func ParseMethod(s string) (domain.DetectionMethod, error) {
	switch m := domain.DetectionMethod(s); m {
	case domain.MethodThreshold, domain.MethodStatistical, domain.MethodML:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown detection strategy %q", domain.ErrInvalidInput, s)
}

// Use switches the active strategy.
func (d *Detector) Use(m domain.DetectionMethod) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.strategies[m]; !ok {
		return fmt.Errorf("%w: unknown detection strategy %q", domain.ErrInvalidInput, m)
	}
	d.active = m
	return nil
}

func (d *Detector) Active() domain.DetectionMethod {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.active
}

// Register installs or replaces a strategy, e.g. a learned model honouring
// the SimulatedML output contract.
func (d *Detector) Register(s Strategy) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.strategies[s.Method()] = s
}

// Detect runs the active strategy.
func (d *Detector) Detect(snap domain.Snapshot) []domain.Anomaly {
	return d.Run(d.Active(), snap)
}

// Run executes strategy m against snap. A failing strategy yields no anomalies.
func (d *Detector) Run(m domain.DetectionMethod, snap domain.Snapshot) (out []domain.Anomaly) {
	d.mu.RLock()
	s, ok := d.strategies[m]
	d.mu.RUnlock()
	if !ok {
		log.Warn().Str("strategy", string(m)).Msg("unknown detection strategy, skipping pass")
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("strategy", string(m)).Msg("detection pass failed")
			out = nil
		}
	}()
	return s.Detect(snap)
}

func newAnomaly(p domain.Parameter, value, threshold float64, sev domain.Severity, m domain.DetectionMethod, ts time.Time) domain.Anomaly {
	return domain.Anomaly{
		ID:              uuid.NewString(),
		Parameter:       p,
		Value:           value,
		Threshold:       threshold,
		Timestamp:       ts,
		Severity:        sev,
		DetectionMethod: m,
	}
}
