package domain

import (
	"fmt"
	"time"
)

// Parameter identifies one telemetry channel.
type Parameter string

const (
	Power          Parameter = "power"
	Temperature    Parameter = "temperature"
	BatteryHealth  Parameter = "batteryHealth"
	SignalStrength Parameter = "signalStrength"
	MemoryUsage    Parameter = "memoryUsage"
)

var parameters = []Parameter{Power, Temperature, BatteryHealth, SignalStrength, MemoryUsage}

// Parameters returns every known parameter in a fixed order.
func Parameters() []Parameter {
	out := make([]Parameter, len(parameters))
	copy(out, parameters)
	return out
}

// ParseParameter maps a name to a known Parameter.
func ParseParameter(s string) (Parameter, error) {
	for _, p := range parameters {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownParameter, s)
}

// Known reports whether p is one of the monitored parameters.
func (p Parameter) Known() bool {
	_, err := ParseParameter(string(p))
	return err == nil
}

// ExceedsIsBad is true when a reading above critical is the failure direction.
func (p Parameter) ExceedsIsBad() bool {
	return p == Temperature || p == MemoryUsage
}

// ThresholdField names one of the mutable threshold values.
type ThresholdField string

const (
	FieldMin      ThresholdField = "min"
	FieldMax      ThresholdField = "max"
	FieldCritical ThresholdField = "critical"
)

// Threshold bounds a parameter. Callers keep min <= critical <= max.
type Threshold struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Critical float64 `json:"critical"`
}

// Valid reports whether the ordering invariant holds.
func (t Threshold) Valid() bool {
	return t.Min <= t.Critical && t.Critical <= t.Max
}

// Clamp limits v to [Min, Max].
func (t Threshold) Clamp(v float64) float64 {
	if v < t.Min {
		return t.Min
	}
	if v > t.Max {
		return t.Max
	}
	return v
}

// DataPoint is one immutable row of the telemetry history.
type DataPoint struct {
	Timestamp time.Time             `json:"timestamp"`
	Values    map[Parameter]float64 `json:"values"`
}

// Clone returns a copy that shares no map with the receiver.
func (d DataPoint) Clone() DataPoint {
	values := make(map[Parameter]float64, len(d.Values))
	for k, v := range d.Values {
		values[k] = v
	}
	return DataPoint{Timestamp: d.Timestamp, Values: values}
}

// Snapshot is a read-only view of the telemetry store.
type Snapshot struct {
	CurrentValues map[Parameter]float64   `json:"currentValues"`
	Thresholds    map[Parameter]Threshold `json:"thresholds"`
	TimeSeries    []DataPoint             `json:"timeSeries"`
}

// History returns the values of p across the time series, oldest first.
func (s Snapshot) History(p Parameter) []float64 {
	out := make([]float64, 0, len(s.TimeSeries))
	for _, dp := range s.TimeSeries {
		if v, ok := dp.Values[p]; ok {
			out = append(out, v)
		}
	}
	return out
}

// Severity is the coarse classification of an anomaly.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// DetectionMethod tags the strategy that produced an anomaly.
type DetectionMethod string

const (
	MethodThreshold   DetectionMethod = "threshold"
	MethodStatistical DetectionMethod = "statistical"
	MethodML          DetectionMethod = "ml"
)

type Anomaly struct {
	ID              string          `json:"id"`
	Parameter       Parameter       `json:"parameter"`
	Value           float64         `json:"value"`
	Threshold       float64         `json:"threshold"`
	Timestamp       time.Time       `json:"timestamp"`
	Severity        Severity        `json:"severity"`
	DetectionMethod DetectionMethod `json:"detectionMethod"`
	Score           float64         `json:"score"`
	Confidence      float64         `json:"confidence,omitempty"`
}

type RootCause struct {
	ID             string    `json:"id"`
	AnomalyID      string    `json:"anomalyId"`
	Parameter      Parameter `json:"parameter"`
	CauseLabel     string    `json:"causeLabel"`
	Probability    int       `json:"probability"`
	Recommendation string    `json:"recommendation"`
	Timestamp      time.Time `json:"timestamp"`
}

type ConfidenceFactor struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Contribution int    `json:"contribution"`
}

// VisualizationPoint is one sample of the synthetic trend behind an explanation.
type VisualizationPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

type Explanation struct {
	AnomalyID           string               `json:"anomalyId"`
	Reasoning           []string             `json:"reasoning"`
	FactorsConsidered   []string             `json:"factorsConsidered"`
	ConfidenceFactors   []ConfidenceFactor   `json:"confidenceFactors"`
	VisualizationSeries []VisualizationPoint `json:"visualizationSeries"`
}

// PercentileBands summarises a simulated lifetime distribution.
type PercentileBands struct {
	P10 int `json:"p10"`
	P50 int `json:"p50"`
	P90 int `json:"p90"`
}

type LifetimePrediction struct {
	Component     string           `json:"component"`
	DaysRemaining int              `json:"daysRemaining"`
	Bands         *PercentileBands `json:"bands,omitempty"`
}

// Priority ranks maintenance urgency.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
)

type MaintenanceRecommendation struct {
	Component     string   `json:"component"`
	DaysRemaining int      `json:"daysRemaining"`
	Priority      Priority `json:"priority"`
	Action        string   `json:"action"`
}

type FeatureWeight struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// ModelInsight is descriptive metadata about the models behind a parameter.
type ModelInsight struct {
	Parameter         Parameter       `json:"parameter"`
	PrimaryModel      string          `json:"primaryModel"`
	SecondaryModel    string          `json:"secondaryModel"`
	FeatureImportance []FeatureWeight `json:"featureImportance"`
	Limitations       []string        `json:"limitations"`
}
