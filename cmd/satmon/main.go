// Command satmon replays synthetic orbit telemetry through the monitoring
// engine and prints anomalies, lifetimes and maintenance needs.
package main

import (
	"os"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "satmon",
	Short: "Offline satellite health analysis",
	Long: `Replay orbit-aware synthetic telemetry through the detection,
root cause and lifetime models without any broker or API.

Examples:
  # Two days of telemetry with injected faults
  satmon replay --frames 288

  # Statistical detection and the latest explanation
  satmon replay --strategy statistical --explain

  # Lifetime projection with Monte Carlo bands
  satmon lifetime --iterations 5000`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		lvl, err := zerolog.ParseLevel(viper.GetString("log-level"))
		if err != nil {
			return err
		}
		zerolog.SetGlobalLevel(lvl)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(lifetimeCmd)
	rootCmd.AddCommand(insightsCmd)

	rootCmd.PersistentFlags().Int("frames", 288, "Number of 10-minute telemetry frames to replay")
	rootCmd.PersistentFlags().Bool("faults", true, "Inject solar, thermal, battery, antenna and memory fault episodes")
	rootCmd.PersistentFlags().String("strategy", "threshold", "Detection strategy: threshold or statistical or ml")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Random seed (0 = time based)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Engine log level")
	bind("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	bind("frames", rootCmd.PersistentFlags().Lookup("frames"))
	bind("faults", rootCmd.PersistentFlags().Lookup("faults"))
	bind("DETECTION_STRATEGY", rootCmd.PersistentFlags().Lookup("strategy"))
	bind("RANDOM_SEED", rootCmd.PersistentFlags().Lookup("seed"))

	replayCmd.Flags().Bool("explain", false, "Explain the most recent high-severity anomaly")
	replayCmd.Flags().IntP("limit", "l", 20, "Number of anomalies to display")
	bind("explain", replayCmd.Flags().Lookup("explain"))
	bind("limit", replayCmd.Flags().Lookup("limit"))

	lifetimeCmd.Flags().Int("iterations", 1000, "Monte Carlo iterations")
	bind("MONTE_CARLO_ITERATIONS", lifetimeCmd.Flags().Lookup("iterations"))
}

func bind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		log.Fatal().Err(err).Str("flag", flag.Name).Msg("flag binding failed")
	}
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
