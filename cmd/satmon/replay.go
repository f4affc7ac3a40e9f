package main

import (
	"fmt"
	"time"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/config"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/random"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/service"
	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/simulator"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay telemetry and list detected anomalies with probable causes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		m, frames, err := replayMission()
		if err != nil {
			return err
		}
		defer m.Close()

		out := cmd.OutOrStdout()
		anomalies := m.Anomalies()
		if err := printAnomalies(out, anomalies, m.RootCauses(), viper.GetInt("limit")); err != nil {
			return fmt.Errorf("error writing anomaly table: %w", err)
		}
		fmt.Fprintf(out, "Replayed %d frames with %s detection; %d anomalies retained\n",
			frames, m.Strategy(), len(anomalies))

		if !viper.GetBool("explain") {
			return nil
		}
		for i := len(anomalies) - 1; i >= 0; i-- {
			if anomalies[i].Severity != domain.SeverityHigh {
				continue
			}
			exp, err := m.Explain(anomalies[i].ID)
			if err != nil {
				return err
			}
			printExplanation(out, anomalies[i], exp)
			return nil
		}
		fmt.Fprintln(out, "No high-severity anomaly to explain")
		return nil
	},
}

var lifetimeCmd = &cobra.Command{
	Use:   "lifetime",
	Short: "Project remaining days per subsystem with Monte Carlo bands",
	RunE: func(cmd *cobra.Command, _ []string) error {
		m, _, err := replayMission()
		if err != nil {
			return err
		}
		defer m.Close()

		out := cmd.OutOrStdout()
		if err := printLifetimes(out, m.SimulateReliability(config.MonteCarloIterations())); err != nil {
			return fmt.Errorf("error writing lifetime table: %w", err)
		}
		plan := m.MaintenancePlan()
		if len(plan) == 0 {
			fmt.Fprintln(out, "No maintenance required within 90 days")
			return nil
		}
		if err := printMaintenance(out, plan); err != nil {
			return fmt.Errorf("error writing maintenance table: %w", err)
		}
		return nil
	},
}

var insightsCmd = &cobra.Command{
	Use:   "insights [parameter]",
	Short: "Describe the models behind each telemetry channel",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := domain.Parameters()
		if len(args) == 1 {
			p, err := domain.ParseParameter(args[0])
			if err != nil {
				return err
			}
			params = []domain.Parameter{p}
		}

		m, err := service.New(service.DefaultOptions())
		if err != nil {
			return err
		}
		defer m.Close()
		for _, p := range params {
			if err := printInsight(cmd.OutOrStdout(), m.ModelInsights(p)); err != nil {
				return err
			}
		}
		return nil
	},
}

// replayMission feeds generated frames into a fresh monitor whose clock
// follows the frame timestamps.
func replayMission() (*service.Monitor, int, error) {
	opts, err := config.Engine()
	if err != nil {
		return nil, 0, err
	}

	frames := viper.GetInt("frames")
	if frames < 1 {
		return nil, 0, fmt.Errorf("%w: frames must be positive", domain.ErrInvalidInput)
	}

	var now time.Time
	opts.Clock = func() time.Time { return now }
	m, err := service.New(opts)
	if err != nil {
		return nil, 0, err
	}

	duration := time.Duration(frames) * simulator.DefaultStep
	cfg := simulator.Config{
		Start:    time.Now().Add(-duration).Truncate(time.Minute),
		Step:     simulator.DefaultStep,
		Duration: duration,
	}
	if viper.GetBool("faults") {
		cfg.Episodes = simulator.DefaultEpisodes()
	}

	gen := simulator.NewGenerator(cfg, random.New(opts.Seed))
	for i := 0; i < frames; i++ {
		f := gen.Next()
		now = f.Timestamp
		if err := m.Ingest(f.Values); err != nil {
			m.Close()
			return nil, 0, fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return m, frames, nil
}
