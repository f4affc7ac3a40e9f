package explain

import "github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"

var commonLimitations = []string{
	"Trained on synthetic telemetry; real on-orbit behaviour may differ.",
	"Assumes sensors are calibrated and report at a steady cadence.",
	"Does not account for commanded mode changes or planned manoeuvres.",
}

var insights = map[domain.Parameter]domain.ModelInsight{
	domain.Power: {
		PrimaryModel:   "Bidirectional LSTM anomaly classifier",
		SecondaryModel: "Random forest root-cause classifier",
		FeatureImportance: []domain.FeatureWeight{
			{Feature: "power_mean_1h", Importance: 0.34},
			{Feature: "in_eclipse", Importance: 0.27},
			{Feature: "orbit_position", Importance: 0.21},
			{Feature: "temperature", Importance: 0.18},
		},
	},
	domain.Temperature: {
		PrimaryModel:   "Bidirectional LSTM anomaly classifier",
		SecondaryModel: "Random forest root-cause classifier",
		FeatureImportance: []domain.FeatureWeight{
			{Feature: "temperature_mean_1h", Importance: 0.38},
			{Feature: "power", Importance: 0.24},
			{Feature: "orbit_position", Importance: 0.22},
			{Feature: "temperature_std_1h", Importance: 0.16},
		},
	},
	domain.BatteryHealth: {
		PrimaryModel:   "Gradient boosting lifetime regressor",
		SecondaryModel: "Bidirectional LSTM anomaly classifier",
		FeatureImportance: []domain.FeatureWeight{
			{Feature: "batteryHealth", Importance: 0.41},
			{Feature: "day", Importance: 0.26},
			{Feature: "in_eclipse", Importance: 0.19},
			{Feature: "temperature", Importance: 0.14},
		},
	},
	domain.SignalStrength: {
		PrimaryModel:   "Bidirectional LSTM anomaly classifier",
		SecondaryModel: "Random forest root-cause classifier",
		FeatureImportance: []domain.FeatureWeight{
			{Feature: "signalStrength_mean_1h", Importance: 0.36},
			{Feature: "signalStrength_std_1h", Importance: 0.28},
			{Feature: "orbit_position", Importance: 0.22},
			{Feature: "power", Importance: 0.14},
		},
	},
	domain.MemoryUsage: {
		PrimaryModel:   "Bidirectional LSTM anomaly classifier",
		SecondaryModel: "Random forest root-cause classifier",
		FeatureImportance: []domain.FeatureWeight{
			{Feature: "memoryUsage_mean_1h", Importance: 0.44},
			{Feature: "memoryUsage_std_1h", Importance: 0.25},
			{Feature: "hour_of_day", Importance: 0.18},
			{Feature: "power", Importance: 0.13},
		},
	},
}

// GenerateModelInsights returns static metadata about the models behind p.
// Nothing here is computed from telemetry.
func GenerateModelInsights(p domain.Parameter) domain.ModelInsight {
	base, ok := insights[p]
	if !ok {
		base = domain.ModelInsight{
			PrimaryModel:   "Statistical baseline (z-score)",
			SecondaryModel: "Threshold rules",
		}
	}

	out := domain.ModelInsight{
		Parameter:         p,
		PrimaryModel:      base.PrimaryModel,
		SecondaryModel:    base.SecondaryModel,
		FeatureImportance: append([]domain.FeatureWeight(nil), base.FeatureImportance...),
		Limitations:       append([]string(nil), commonLimitations...),
	}
	return out
}
