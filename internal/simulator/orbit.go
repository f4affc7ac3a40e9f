// Package simulator generates orbit-aware synthetic telemetry for a LEO
// spacecraft, optionally with injected fault episodes.
package simulator

import (
	"math"
	"time"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/random"
)

const (
	OrbitPeriod     = 95 * time.Minute
	DefaultStep     = 10 * time.Minute
	DefaultDuration = 90 * 24 * time.Hour

	groundPassPeriod = 4 * time.Hour
	activityPeriod   = 6 * time.Hour

	eclipseStart = 0.3
	eclipseEnd   = 0.7
)

// Fault labels attached to frames inside an injected episode.
const (
	FaultSolarPanel = "solar_panel_degradation"
	FaultCooling    = "cooling_system_failure"
	FaultBattery    = "battery_cell_degradation"
	FaultAntenna    = "antenna_misalignment"
	FaultMemoryLeak = "memory_leak"
)

// Episode places a fault over a fraction of the mission timeline.
type Episode struct {
	Parameter domain.Parameter
	Label     string
	Start     float64
	Length    float64
}

// DefaultEpisodes spreads one fault per subsystem across the mission.
func DefaultEpisodes() []Episode {
	return []Episode{
		{domain.Power, FaultSolarPanel, 0.20, 0.03},
		{domain.Temperature, FaultCooling, 0.40, 0.02},
		{domain.BatteryHealth, FaultBattery, 0.60, 0.05},
		{domain.SignalStrength, FaultAntenna, 0.70, 0.01},
		{domain.MemoryUsage, FaultMemoryLeak, 0.85, 0.04},
	}
}

type Config struct {
	Start    time.Time
	Step     time.Duration
	Duration time.Duration
	Episodes []Episode
}

// Frame is one telemetry sample. It encodes as an ingest message.
type Frame struct {
	Timestamp time.Time                    `json:"timestamp"`
	Values    map[domain.Parameter]float64 `json:"values"`
	Fault     string                       `json:"fault,omitempty"`
	InEclipse bool                         `json:"inEclipse"`
}

type window struct {
	Episode
	from, to int
}

// Generator produces frames one step at a time. Not safe for concurrent use.
type Generator struct {
	cfg     Config
	rnd     random.Source
	samples int
	windows []window
	i       int
	memory  float64
}

func NewGenerator(cfg Config, src random.Source) *Generator {
	if cfg.Step <= 0 {
		cfg.Step = DefaultStep
	}
	if cfg.Duration <= 0 {
		cfg.Duration = DefaultDuration
	}
	if cfg.Start.IsZero() {
		cfg.Start = time.Now().Add(-cfg.Duration)
	}
	if src == nil {
		src = random.New(0)
	}

	samples := int(cfg.Duration / cfg.Step)
	if samples < 1 {
		samples = 1
	}
	g := &Generator{cfg: cfg, rnd: src, samples: samples}
	for _, ep := range cfg.Episodes {
		from := int(float64(samples) * ep.Start)
		g.windows = append(g.windows, window{
			Episode: ep,
			from:    from,
			to:      from + int(float64(samples)*ep.Length),
		})
	}
	return g
}

// Samples is the length of the mission timeline.
func (g *Generator) Samples() int { return g.samples }

// Next returns the next frame. Past the end of the timeline degradation
// stays at its final level while the orbital cycles continue.
func (g *Generator) Next() Frame {
	i := g.i
	g.i++

	elapsed := time.Duration(i) * g.cfg.Step
	phase := math.Mod(elapsed.Minutes(), OrbitPeriod.Minutes()) / OrbitPeriod.Minutes()
	eclipse := phase > eclipseStart && phase < eclipseEnd
	progress := math.Min(float64(i)/math.Max(float64(g.samples-1), 1), 1)
	orbit := math.Sin(phase * 2 * math.Pi)

	power := 90 - 5*progress + 5*orbit + random.Normal(g.rnd, 0, 1)
	if eclipse {
		power -= 20
	}
	temperature := 25 + 10*orbit + 0.1*(power-85) + random.Normal(g.rnd, 0, 1)
	battery := 95 - 0.02*180*progress + random.Normal(g.rnd, 0, 0.5)
	signal := 85 + 10*cycle(elapsed, groundPassPeriod) + random.Normal(g.rnd, 0, 2)
	memory := 60 + 15*cycle(elapsed, activityPeriod) + random.Normal(g.rnd, 0, 3)

	values := map[domain.Parameter]float64{
		domain.Power:          clamp(power, 0, 100),
		domain.Temperature:    clamp(temperature, -10, 50),
		domain.BatteryHealth:  clamp(battery, 0, 100),
		domain.SignalStrength: clamp(signal, 0, 100),
		domain.MemoryUsage:    clamp(memory, 0, 100),
	}

	fault := g.inject(i, values)
	g.memory = values[domain.MemoryUsage]

	return Frame{
		Timestamp: g.cfg.Start.Add(elapsed),
		Values:    values,
		Fault:     fault,
		InEclipse: eclipse,
	}
}

// Generate returns the next n frames.
func (g *Generator) Generate(n int) []Frame {
	out := make([]Frame, 0, n)
	for k := 0; k < n; k++ {
		out = append(out, g.Next())
	}
	return out
}

func (g *Generator) inject(i int, values map[domain.Parameter]float64) string {
	label := ""
	for _, w := range g.windows {
		if i < w.from || i >= w.to {
			continue
		}
		switch w.Parameter {
		case domain.Power:
			values[domain.Power] *= 0.7
		case domain.Temperature:
			values[domain.Temperature] += 15
		case domain.BatteryHealth:
			values[domain.BatteryHealth] *= math.Pow(0.997, float64(i-w.from))
		case domain.SignalStrength:
			values[domain.SignalStrength] *= 0.5
		case domain.MemoryUsage:
			prev := g.memory
			if i == 0 {
				prev = 79.5
			}
			values[domain.MemoryUsage] = math.Min(95, prev+0.5)
		}
		label = w.Label
	}
	return label
}

func cycle(elapsed, period time.Duration) float64 {
	return math.Sin(float64(elapsed) / float64(period) * 2 * math.Pi)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
