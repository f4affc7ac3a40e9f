package service

import (
	"testing"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMQTT(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
		check   func(t *testing.T, snap domain.Snapshot)
	}{
		{
			name:    "single reading",
			payload: `{"parameter":"power","value":81.5}`,
			check: func(t *testing.T, snap domain.Snapshot) {
				assert.Equal(t, 81.5, snap.CurrentValues[domain.Power])
				assert.Len(t, snap.TimeSeries, 1)
			},
		},
		{
			name:    "full frame",
			payload: `{"timestamp":"2026-03-01T10:00:00Z","values":{"power":80,"temperature":27.5,"batteryHealth":91,"signalStrength":84,"memoryUsage":61}}`,
			check: func(t *testing.T, snap domain.Snapshot) {
				assert.Equal(t, 27.5, snap.CurrentValues[domain.Temperature])
				assert.Equal(t, 61.0, snap.CurrentValues[domain.MemoryUsage])
				assert.Len(t, snap.TimeSeries, 1)
			},
		},
		{name: "string value", payload: `{"parameter":"power","value":"high"}`, wantErr: true},
		{name: "null value", payload: `{"parameter":"power","value":null}`, wantErr: true},
		{name: "missing value", payload: `{"parameter":"power"}`, wantErr: true},
		{name: "unknown parameter", payload: `{"parameter":"voltage","value":3.3}`, wantErr: true},
		{name: "non-numeric in frame", payload: `{"values":{"power":80,"temperature":"hot"}}`, wantErr: true},
		{name: "malformed json", payload: `{"parameter":`, wantErr: true},
		{name: "empty", payload: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewServices(DefaultOptions())
			require.NoError(t, err)
			defer svc.Monitor.Close()

			err = svc.Readings.FromMQTT("satellite/telemetry", []byte(tt.payload))
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidInput)
				assert.Empty(t, svc.Monitor.Snapshot().TimeSeries)
				return
			}
			require.NoError(t, err)
			tt.check(t, svc.Monitor.Snapshot())
		})
	}
}

func TestFromMQTTRunsDetection(t *testing.T) {
	m := newTestMonitor(t)
	rs := NewReadingService(m)

	require.NoError(t, rs.FromMQTT("satellite/telemetry", []byte(`{"values":{"temperature":41,"memoryUsage":90}}`)))
	assert.Len(t, m.Anomalies(), 2)
}
