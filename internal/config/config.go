package config

import (
	"fmt"
	"time"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/detection"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

func Load() error {
	// Transport
	viper.SetDefault("API_ADDR", ":8080")
	viper.SetDefault("STREAM_ADDR", ":8081")
	viper.SetDefault("MQTT_BROKER", "tcp://localhost:1883")
	viper.SetDefault("MQTT_TOPIC", "satellite/telemetry")

	// AWS Configuration
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("AWS_SNS_TOPIC_ARN", "")
	viper.SetDefault("USE_CLOUD_SERVICES", "false") // Toggle for local vs cloud

	// Engine
	viper.SetDefault("HISTORY_CAPACITY", 25)
	viper.SetDefault("DETECTION_STRATEGY", string(domain.MethodThreshold))
	viper.SetDefault("Z_THRESHOLD", detection.DefaultZThreshold)
	viper.SetDefault("ML_ANOMALY_PROBABILITY", detection.DefaultMLProbability)
	viper.SetDefault("TICK_INTERVAL", "2s")
	viper.SetDefault("ANOMALY_RETENTION", service.DefaultRetention)
	viper.SetDefault("MONTE_CARLO_ITERATIONS", 1000)
	viper.SetDefault("RANDOM_SEED", 0)
	viper.SetDefault("LOG_LEVEL", "info")

	viper.AutomaticEnv()

	lvl, err := zerolog.ParseLevel(viper.GetString("LOG_LEVEL"))
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

func APIAddr() string        { return viper.GetString("API_ADDR") }
func StreamAddr() string     { return viper.GetString("STREAM_ADDR") }
func MQTTBroker() string     { return viper.GetString("MQTT_BROKER") }
func MQTTTopic() string      { return viper.GetString("MQTT_TOPIC") }
func AWSRegion() string      { return viper.GetString("AWS_REGION") }
func SNSTopicArn() string    { return viper.GetString("AWS_SNS_TOPIC_ARN") }
func UseCloudServices() bool { return viper.GetBool("USE_CLOUD_SERVICES") }

func TickInterval() time.Duration { return viper.GetDuration("TICK_INTERVAL") }
func MonteCarloIterations() int   { return viper.GetInt("MONTE_CARLO_ITERATIONS") }

// Engine builds the monitor options from the loaded configuration.
func Engine() (service.Options, error) {
	method, err := detection.ParseMethod(viper.GetString("DETECTION_STRATEGY"))
	if err != nil {
		return service.Options{}, err
	}

	cfg := detection.DefaultConfig()
	cfg.ZThreshold = viper.GetFloat64("Z_THRESHOLD")
	cfg.MLProbability = viper.GetFloat64("ML_ANOMALY_PROBABILITY")
	if cfg.MLProbability < 0 || cfg.MLProbability > 1 {
		return service.Options{}, fmt.Errorf("%w: ML_ANOMALY_PROBABILITY must be within [0,1]", domain.ErrInvalidInput)
	}

	return service.Options{
		Capacity:     viper.GetInt("HISTORY_CAPACITY"),
		Strategy:     method,
		Detection:    cfg,
		Retention:    viper.GetInt("ANOMALY_RETENTION"),
		Iterations:   MonteCarloIterations(),
		TickInterval: TickInterval(),
		Seed:         viper.GetUint64("RANDOM_SEED"),
	}, nil
}
