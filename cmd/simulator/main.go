package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/config"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/random"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/simulator"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	viper.SetDefault("SIM_FRAMES", 0) // 0 runs until interrupted
	viper.SetDefault("SIM_FAULTS", true)
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker()).SetClientID("satmon-simulator")
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	frames := viper.GetInt("SIM_FRAMES")
	cfg := simulator.Config{Start: time.Now()}
	if frames > 0 {
		cfg.Duration = time.Duration(frames) * simulator.DefaultStep
	}
	if viper.GetBool("SIM_FAULTS") {
		cfg.Episodes = simulator.DefaultEpisodes()
	}
	gen := simulator.NewGenerator(cfg, random.New(viper.GetUint64("RANDOM_SEED")))

	topic := config.MQTTTopic()
	interval := config.TickInterval()
	if interval <= 0 {
		interval = 2 * time.Second
	}
	tk := time.NewTicker(interval)
	defer tk.Stop()

	log.Info().Str("topic", topic).Dur("interval", interval).Int("frames", frames).Msg("simulator publishing")
	for sent := 0; frames == 0 || sent < frames; sent++ {
		f := gen.Next()
		payload, err := json.Marshal(f)
		if err != nil {
			log.Error().Err(err).Msg("encode frame")
			continue
		}
		token := client.Publish(topic, 0, false, payload)
		token.Wait()
		if f.Fault != "" {
			log.Debug().Str("fault", f.Fault).Msg("fault frame published")
		}

		select {
		case <-ctx.Done():
			log.Info().Int("frames", sent+1).Msg("simulation interrupted")
			return
		case <-tk.C:
		}
	}
	log.Info().Int("frames", frames).Msg("simulation done")
}
