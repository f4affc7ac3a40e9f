package domain

// DefaultThresholds mirrors the nominal operating envelope of the spacecraft bus.
func DefaultThresholds() map[Parameter]Threshold {
	return map[Parameter]Threshold{
		Power:          {Min: 70, Max: 100, Critical: 75},
		Temperature:    {Min: -10, Max: 40, Critical: 38},
		BatteryHealth:  {Min: 60, Max: 100, Critical: 70},
		SignalStrength: {Min: 50, Max: 100, Critical: 60},
		MemoryUsage:    {Min: 0, Max: 95, Critical: 85},
	}
}

// DefaultValues are the readings a fresh session starts from.
func DefaultValues() map[Parameter]float64 {
	return map[Parameter]float64{
		Power:          85,
		Temperature:    25,
		BatteryHealth:  92,
		SignalStrength: 85,
		MemoryUsage:    60,
	}
}
