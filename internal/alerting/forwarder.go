// Package alerting forwards high-severity anomalies and critical maintenance
// needs to an external notification sink.
package alerting

import (
	"context"
	"fmt"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
	"github.com/rs/zerolog/log"
)

// Sink delivers notifications, e.g. cloud.SNSClient.
type Sink interface {
	SendAnomalyAlert(ctx context.Context, a domain.Anomaly, rc domain.RootCause) error
	SendBatchAlerts(ctx context.Context, alerts []string) error
	SendMaintenanceAlert(ctx context.Context, rec domain.MaintenanceRecommendation) error
}

// Source is the monitor state the forwarder reads.
type Source interface {
	WatchAnomalies() (<-chan []domain.Anomaly, func())
	RootCauses() []domain.RootCause
	MaintenancePlan() []domain.MaintenanceRecommendation
}

type Forwarder struct {
	source Source
	sink   Sink

	seen     map[string]struct{}
	alerting map[domain.Parameter]struct{}
	critical map[string]struct{}
}

func NewForwarder(source Source, sink Sink) *Forwarder {
	return &Forwarder{
		source:   source,
		sink:     sink,
		seen:     make(map[string]struct{}),
		alerting: make(map[domain.Parameter]struct{}),
		critical: make(map[string]struct{}),
	}
}

// Run forwards alerts until ctx is cancelled.
func (f *Forwarder) Run(ctx context.Context) error {
	ch, stop := f.source.WatchAnomalies()
	defer stop()

	log.Info().Msg("alert forwarder running")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case list := <-ch:
			f.Process(ctx, list)
		}
	}
}

// Process handles one retained-anomaly list. Anomalies not seen in earlier
// lists belong to the passes since the last call. A parameter is reported
// when those passes raise a high-severity anomaly for it and it was not
// already alerting; it stays alerting until a list arrives whose new
// anomalies no longer include it. Several conditions raised together go out
// as one batch. A component is reported again only after it has left and
// re-entered critical priority.
func (f *Forwarder) Process(ctx context.Context, anomalies []domain.Anomaly) {
	current := make(map[string]struct{}, len(anomalies))
	latest := make(map[domain.Parameter]domain.Anomaly)
	var order []domain.Parameter
	for _, a := range anomalies {
		current[a.ID] = struct{}{}
		if _, ok := f.seen[a.ID]; ok || a.Severity != domain.SeverityHigh {
			continue
		}
		if _, ok := latest[a.Parameter]; !ok {
			order = append(order, a.Parameter)
		}
		latest[a.Parameter] = a
	}
	// evicted anomalies can be forgotten
	f.seen = current

	nowAlerting := make(map[domain.Parameter]struct{}, len(latest))
	var fresh []domain.Anomaly
	for _, p := range order {
		nowAlerting[p] = struct{}{}
		if _, ok := f.alerting[p]; !ok {
			fresh = append(fresh, latest[p])
		}
	}
	f.alerting = nowAlerting

	if len(fresh) > 0 {
		f.sendAnomalies(ctx, fresh)
	}

	nowCritical := make(map[string]struct{})
	for _, rec := range f.source.MaintenancePlan() {
		if rec.Priority != domain.PriorityCritical {
			continue
		}
		nowCritical[rec.Component] = struct{}{}
		if _, ok := f.critical[rec.Component]; ok {
			continue
		}
		if err := f.sink.SendMaintenanceAlert(ctx, rec); err != nil {
			log.Error().Err(err).Str("component", rec.Component).Msg("maintenance alert failed")
		}
	}
	f.critical = nowCritical
}

func (f *Forwarder) sendAnomalies(ctx context.Context, fresh []domain.Anomaly) {
	causes := make(map[string]domain.RootCause)
	for _, rc := range f.source.RootCauses() {
		causes[rc.AnomalyID] = rc
	}

	var ready []domain.Anomaly
	var found []domain.RootCause
	for _, a := range fresh {
		rc, ok := causes[a.ID]
		if !ok {
			// retried on the next pass that still flags it
			delete(f.alerting, a.Parameter)
			log.Warn().Str("anomaly_id", a.ID).Str("parameter", string(a.Parameter)).Msg("root cause no longer retained, alert deferred")
			continue
		}
		ready = append(ready, a)
		found = append(found, rc)
	}

	switch len(ready) {
	case 0:
	case 1:
		if err := f.sink.SendAnomalyAlert(ctx, ready[0], found[0]); err != nil {
			log.Error().Err(err).Str("anomaly_id", ready[0].ID).Msg("anomaly alert failed")
		}
	default:
		lines := make([]string, len(ready))
		for i, a := range ready {
			lines[i] = fmt.Sprintf("%s %s anomaly: %.2f (critical %.2f), probable cause %s (%d%%)",
				a.Severity, a.Parameter, a.Value, a.Threshold, found[i].CauseLabel, found[i].Probability)
		}
		if err := f.sink.SendBatchAlerts(ctx, lines); err != nil {
			log.Error().Err(err).Int("alerts", len(lines)).Msg("batch alert failed")
		}
	}
}
