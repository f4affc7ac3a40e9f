package lifetime

import (
	"math"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
)

// Subsystem components reported by the predictor.
const (
	ComponentBattery        = "battery"
	ComponentPowerSystem    = "powerSystem"
	ComponentThermalControl = "thermalControl"
	ComponentCommunication  = "communication"
	ComponentDataHandling   = "dataHandling"
)

// batteryCoupling bounds the power system by the energy storage it relies on.
const batteryCoupling = 0.8

var components = []string{
	ComponentBattery,
	ComponentPowerSystem,
	ComponentThermalControl,
	ComponentCommunication,
	ComponentDataHandling,
}

// Components lists the reported components in display order.
func Components() []string {
	out := make([]string, len(components))
	copy(out, components)
	return out
}

// Rates returns the rate of change of every parameter over the series.
func Rates(series []domain.DataPoint) map[domain.Parameter]float64 {
	out := make(map[domain.Parameter]float64, len(domain.Parameters()))
	for _, p := range domain.Parameters() {
		out[p] = RateOfChange(series, p)
	}
	return out
}

// ParameterDays projects days until p reaches its critical threshold.
// Exceeds-is-bad parameters swap the arguments and negate the rate so that
// a rising reading counts as degradation.
func ParameterDays(p domain.Parameter, current float64, th domain.Threshold, rate float64) int {
	if p.ExceedsIsBad() {
		return LinearDegradation(th.Critical, current, -rate)
	}
	return LinearDegradation(current, th.Critical, rate)
}

// estimate derives component lifetimes from per-parameter projections.
func estimate(current map[domain.Parameter]float64, thresholds map[domain.Parameter]domain.Threshold, rates map[domain.Parameter]float64) map[string]int {
	days := make(map[domain.Parameter]int, len(domain.Parameters()))
	for _, p := range domain.Parameters() {
		th, ok := thresholds[p]
		if !ok {
			days[p] = MaxDays
			continue
		}
		days[p] = ParameterDays(p, current[p], th, rates[p])
	}

	battery := days[domain.BatteryHealth]
	coupled := int(math.Round(batteryCoupling * float64(battery)))
	return map[string]int{
		ComponentBattery:        battery,
		ComponentPowerSystem:    min(days[domain.Power], coupled),
		ComponentThermalControl: days[domain.Temperature],
		ComponentCommunication:  days[domain.SignalStrength],
		ComponentDataHandling:   days[domain.MemoryUsage],
	}
}

// PredictComponentLifetime projects every component from the snapshot's
// current values, thresholds and history.
func PredictComponentLifetime(snap domain.Snapshot) []domain.LifetimePrediction {
	est := estimate(snap.CurrentValues, snap.Thresholds, Rates(snap.TimeSeries))
	out := make([]domain.LifetimePrediction, 0, len(components))
	for _, c := range components {
		out = append(out, domain.LifetimePrediction{Component: c, DaysRemaining: est[c]})
	}
	return out
}
