package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
	"github.com/rs/zerolog/log"
)

type Services struct {
	Monitor  *Monitor
	Readings *ReadingService
}

func NewServices(opts Options) (*Services, error) {
	m, err := New(opts)
	if err != nil {
		return nil, err
	}
	return &Services{
		Monitor:  m,
		Readings: &ReadingService{monitor: m},
	}, nil
}

// ReadingService turns ingest messages into store updates.
type ReadingService struct {
	monitor *Monitor
}

func NewReadingService(m *Monitor) *ReadingService {
	return &ReadingService{monitor: m}
}

// Reading is the wire form of an ingest message. A message carries either a
// single parameter/value pair or a full values frame.
type Reading struct {
	Parameter string                     `json:"parameter,omitempty"`
	Value     json.RawMessage            `json:"value,omitempty"`
	Timestamp time.Time                  `json:"timestamp,omitempty"`
	Values    map[string]json.RawMessage `json:"values,omitempty"`
}

// FromMQTT decodes payload and records it. Non-numeric values are rejected.
func (s *ReadingService) FromMQTT(topic string, payload []byte) error {
	return s.Record(topic, payload)
}

// Record decodes a Reading received from source and applies it.
func (s *ReadingService) Record(source string, payload []byte) error {
	var r Reading
	if err := json.Unmarshal(payload, &r); err != nil {
		return fmt.Errorf("%w: malformed reading from %s: %w", domain.ErrInvalidInput, source, err)
	}

	switch {
	case len(r.Values) > 0:
		values := make(map[domain.Parameter]float64, len(r.Values))
		for name, raw := range r.Values {
			p, v, err := decodeValue(name, raw)
			if err != nil {
				return err
			}
			values[p] = v
		}
		return s.monitor.Ingest(values)

	case r.Parameter != "":
		p, v, err := decodeValue(r.Parameter, r.Value)
		if err != nil {
			return err
		}
		return s.monitor.Update(p, v)
	}

	log.Debug().Str("source", source).Msg("empty reading ignored")
	return fmt.Errorf("%w: reading has no values", domain.ErrInvalidInput)
}

func decodeValue(name string, raw json.RawMessage) (domain.Parameter, float64, error) {
	p, err := domain.ParseParameter(name)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	var v float64
	if len(raw) == 0 || string(raw) == "null" {
		return "", 0, fmt.Errorf("%w: %s has no value", domain.ErrInvalidInput, p)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", 0, fmt.Errorf("%w: %s value %s is not a number", domain.ErrInvalidInput, p, string(raw))
	}
	return p, v, nil
}
