package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/alerting"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/cloud"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/config"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/service"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// The ingestor runs a headless monitor fed from the broker and logs what it
// finds, forwarding alerts when cloud services are enabled.
func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	opts, err := config.Engine()
	if err != nil {
		log.Fatal().Err(err).Msg("engine config invalid")
	}

	svcs, err := service.NewServices(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("monitor init failed")
	}
	defer svcs.Monitor.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if config.UseCloudServices() {
		sns, err := cloud.NewSNSClient(ctx, config.AWSRegion(), config.SNSTopicArn())
		if err != nil {
			log.Fatal().Err(err).Msg("sns client init failed")
		}
		go alerting.NewForwarder(svcs.Monitor, sns).Run(ctx)
	}

	mopts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker()).SetClientID("satmon-ingestor")
	client := mqtt.NewClient(mopts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		if err := svcs.Readings.FromMQTT(msg.Topic(), msg.Payload()); err != nil {
			log.Error().Err(err).Str("topic", msg.Topic()).Msg("ingest failed")
		}
	}

	topic := config.MQTTTopic()
	if token := client.Subscribe(topic, 0, handler); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("subscribe failed")
	}

	log.Info().Str("topic", topic).Msg("ingestor running; Ctrl+C to stop")

	anomalies, unwatch := svcs.Monitor.WatchAnomalies()
	defer unwatch()
	report := time.NewTicker(time.Minute)
	defer report.Stop()

	var lastID string

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("ingestor stopped")
			return
		case list := <-anomalies:
			// lists are republished after passes that found nothing
			if n := len(list); n > 0 && list[n-1].ID != lastID {
				last := list[n-1]
				lastID = last.ID
				log.Warn().
					Str("parameter", string(last.Parameter)).
					Float64("value", last.Value).
					Str("severity", string(last.Severity)).
					Int("retained", n).
					Msg("anomaly detected")
			}
		case <-report.C:
			for _, rec := range svcs.Monitor.MaintenancePlan() {
				log.Info().
					Str("component", rec.Component).
					Int("days_remaining", rec.DaysRemaining).
					Str("priority", string(rec.Priority)).
					Msg(rec.Action)
			}
		}
	}
}
