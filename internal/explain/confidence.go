package explain

import (
	"math"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/random"
	"gonum.org/v1/gonum/floats"
)

type factorTemplate struct {
	name        string
	description string
	base        float64
	jitter      float64
}

var genericFactors = []factorTemplate{
	{"Threshold deviation", "Distance of the reading past its critical limit", 20, 20},
	{"Historical pattern match", "Similarity to previously observed failure signatures", 15, 20},
	{"Cross-parameter correlation", "Agreement with readings from coupled subsystems", 10, 15},
}

var specificFactors = map[domain.Parameter]factorTemplate{
	domain.Power:          {"Solar array output trend", "Decline of array output outside eclipse", 25, 20},
	domain.Temperature:    {"Radiator heat rejection", "Gap between generated and rejected heat", 25, 20},
	domain.BatteryHealth:  {"Charge cycle wear", "Capacity fade per charge/discharge cycle", 25, 20},
	domain.SignalStrength: {"Antenna pointing error", "Link margin loss not explained by pass geometry", 25, 20},
	domain.MemoryUsage:    {"Allocation growth rate", "Net allocation growth between cleanup cycles", 25, 20},
}

var fallbackFactor = factorTemplate{"Subsystem telemetry pattern", "General deviation from the subsystem baseline", 25, 20}

// GenerateConfidenceExplanation splits the root cause probability across
// three generic factors and one parameter-specific factor. The contributions
// sum exactly to the probability.
func (g *Generator) GenerateConfidenceExplanation(rc domain.RootCause) []domain.ConfidenceFactor {
	templates := make([]factorTemplate, 0, len(genericFactors)+1)
	templates = append(templates, genericFactors...)
	if f, ok := specificFactors[rc.Parameter]; ok {
		templates = append(templates, f)
	} else {
		templates = append(templates, fallbackFactor)
	}

	weights := make([]float64, len(templates))
	for i, t := range templates {
		weights[i] = t.base + random.Between(g.rnd, 0, t.jitter)
	}
	contributions := apportion(rc.Probability, weights)

	out := make([]domain.ConfidenceFactor, len(templates))
	for i, t := range templates {
		out[i] = domain.ConfidenceFactor{Name: t.name, Description: t.description, Contribution: contributions[i]}
	}
	return out
}

// apportion scales weights so they sum to total, rounds each share and pushes
// the rounding residual onto the largest share.
func apportion(total int, weights []float64) []int {
	out := make([]int, len(weights))
	if len(weights) == 0 {
		return out
	}
	sum := floats.Sum(weights)
	if sum <= 0 {
		out[0] = total
		return out
	}

	scaled := make([]float64, len(weights))
	copy(scaled, weights)
	floats.Scale(float64(total)/sum, scaled)

	assigned := 0
	for i, v := range scaled {
		out[i] = int(math.Round(v))
		assigned += out[i]
	}
	out[floats.MaxIdx(scaled)] += total - assigned
	return out
}
