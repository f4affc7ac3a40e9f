package lifetime

import "github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"

const (
	criticalDays = 30
	highDays     = 90
)

var actions = map[string]string{
	ComponentBattery:        "Schedule battery conditioning and reduce depth of discharge",
	ComponentPowerSystem:    "Plan solar array reorientation and review load shedding",
	ComponentThermalControl: "Inspect thermal control loop and radiator performance",
	ComponentCommunication:  "Schedule an antenna recalibration pass",
	ComponentDataHandling:   "Schedule onboard software patch and memory scrub",
}

// MaintenanceRecommendations flags components that are close to their limit.
// <= 30 days is critical, <= 90 days is high; the rest need no action.
func MaintenanceRecommendations(preds []domain.LifetimePrediction) []domain.MaintenanceRecommendation {
	var out []domain.MaintenanceRecommendation
	for _, p := range preds {
		var prio domain.Priority
		switch {
		case p.DaysRemaining <= criticalDays:
			prio = domain.PriorityCritical
		case p.DaysRemaining <= highDays:
			prio = domain.PriorityHigh
		default:
			continue
		}
		out = append(out, domain.MaintenanceRecommendation{
			Component:     p.Component,
			DaysRemaining: p.DaysRemaining,
			Priority:      prio,
			Action:        actionFor(p.Component, prio),
		})
	}
	return out
}

func actionFor(component string, prio domain.Priority) string {
	a, ok := actions[component]
	if !ok {
		a = "Schedule a subsystem inspection"
	}
	if prio == domain.PriorityCritical {
		return "URGENT: " + a
	}
	return a
}
