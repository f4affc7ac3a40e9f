// Package telemetry owns the live spacecraft readings: current values,
// thresholds and the capacity-bounded history.
package telemetry

import (
	"fmt"
	"math"
	"time"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/pubsub"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/random"
)

const DefaultCapacity = 25

// Tick deltas: temperature drifts slower than the other channels.
const (
	temperatureDelta = 1.0
	defaultDelta     = 2.5
)

// Store is not safe for concurrent mutation; its owning session serialises access.
type Store struct {
	capacity   int
	current    map[domain.Parameter]float64
	thresholds map[domain.Parameter]domain.Threshold
	series     []domain.DataPoint
	rnd        random.Source
	now        func() time.Time
	changes    *pubsub.Topic[domain.Snapshot]
}

type Option func(*Store)

func WithCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

func WithThresholds(th map[domain.Parameter]domain.Threshold) Option {
	return func(s *Store) {
		for p, t := range th {
			s.thresholds[p] = t
		}
	}
}

func WithInitialValues(v map[domain.Parameter]float64) Option {
	return func(s *Store) {
		for p, x := range v {
			s.current[p] = x
		}
	}
}

func WithRandom(src random.Source) Option {
	return func(s *Store) { s.rnd = src }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		capacity:   DefaultCapacity,
		current:    domain.DefaultValues(),
		thresholds: domain.DefaultThresholds(),
		rnd:        random.New(0),
		now:        time.Now,
		changes:    pubsub.NewTopic[domain.Snapshot](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Capacity is the maximum number of retained data points.
func (s *Store) Capacity() int { return s.capacity }

// Update records v as the current reading for p and appends a data point.
func (s *Store) Update(p domain.Parameter, v float64) error {
	if !p.Known() {
		return fmt.Errorf("%w: %w: %q", domain.ErrInvalidInput, domain.ErrUnknownParameter, p)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number, got %v", domain.ErrInvalidInput, p, v)
	}

	s.current[p] = v
	s.record()
	return nil
}

// Apply records several readings as a single data point. Nothing is stored
// unless every reading is valid.
func (s *Store) Apply(values map[domain.Parameter]float64) error {
	if len(values) == 0 {
		return fmt.Errorf("%w: no readings", domain.ErrInvalidInput)
	}
	for p, v := range values {
		if !p.Known() {
			return fmt.Errorf("%w: %w: %q", domain.ErrInvalidInput, domain.ErrUnknownParameter, p)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be a finite number, got %v", domain.ErrInvalidInput, p, v)
		}
	}
	for p, v := range values {
		s.current[p] = v
	}
	s.record()
	return nil
}

func (s *Store) record() {
	values := make(map[domain.Parameter]float64, len(s.current))
	for k, x := range s.current {
		values[k] = x
	}
	s.series = append(s.series, domain.DataPoint{Timestamp: s.now(), Values: values})
	if over := len(s.series) - s.capacity; over > 0 {
		// drop the oldest points and let the backing array be reclaimed
		s.series = append(s.series[:0:0], s.series[over:]...)
	}

	s.changes.Publish(s.Snapshot())
}

// UpdateThreshold mutates one threshold field. The ordering invariant is the
// caller's responsibility and is not re-checked here.
func (s *Store) UpdateThreshold(p domain.Parameter, field domain.ThresholdField, v float64) error {
	th, ok := s.thresholds[p]
	if !ok {
		return fmt.Errorf("%w: %w: %q", domain.ErrInvalidInput, domain.ErrUnknownParameter, p)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: threshold %s.%s must be a finite number", domain.ErrInvalidInput, p, field)
	}
	switch field {
	case domain.FieldMin:
		th.Min = v
	case domain.FieldMax:
		th.Max = v
	case domain.FieldCritical:
		th.Critical = v
	default:
		return fmt.Errorf("%w: unknown threshold field %q", domain.ErrInvalidInput, field)
	}
	s.thresholds[p] = th

	s.changes.Publish(s.Snapshot())
	return nil
}

// SimulateTick nudges one random parameter and records it through Update.
func (s *Store) SimulateTick() (domain.Parameter, float64, error) {
	params := domain.Parameters()
	p := params[s.rnd.IntN(len(params))]

	magnitude := defaultDelta
	if p == domain.Temperature {
		magnitude = temperatureDelta
	}
	delta := (s.rnd.Float64()*2 - 1) * magnitude

	v := s.thresholds[p].Clamp(s.current[p] + delta)
	return p, v, s.Update(p, v)
}

// Snapshot returns a deep copy of the store state.
func (s *Store) Snapshot() domain.Snapshot {
	current := make(map[domain.Parameter]float64, len(s.current))
	for k, v := range s.current {
		current[k] = v
	}
	thresholds := make(map[domain.Parameter]domain.Threshold, len(s.thresholds))
	for k, v := range s.thresholds {
		thresholds[k] = v
	}
	series := make([]domain.DataPoint, len(s.series))
	for i, dp := range s.series {
		series[i] = dp.Clone()
	}
	return domain.Snapshot{CurrentValues: current, Thresholds: thresholds, TimeSeries: series}
}

// Subscribe runs fn synchronously after every mutation.
func (s *Store) Subscribe(fn func(domain.Snapshot)) func() {
	return s.changes.Subscribe(fn)
}

// Watch returns a latest-snapshot mailbox.
func (s *Store) Watch() (<-chan domain.Snapshot, func()) {
	return s.changes.Watch()
}
