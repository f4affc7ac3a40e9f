package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ANIKETSHETTY47/satellite-health-monitor/internal/domain"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// printAnomalies lists the newest limit anomalies, oldest first.
func printAnomalies(w io.Writer, anomalies []domain.Anomaly, causes []domain.RootCause, limit int) error {
	byAnomaly := make(map[string]domain.RootCause, len(causes))
	for _, rc := range causes {
		byAnomaly[rc.AnomalyID] = rc
	}
	if limit > 0 && len(anomalies) > limit {
		anomalies = anomalies[len(anomalies)-limit:]
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Time", "Parameter", "Value", "Critical", "Severity", "Method", "Probable Cause", "Prob"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, a := range anomalies {
		rc := byAnomaly[a.ID]
		data = append(data, []string{
			a.Timestamp.Format("01-02 15:04"),
			string(a.Parameter),
			strconv.FormatFloat(a.Value, 'f', 1, 64),
			strconv.FormatFloat(a.Threshold, 'f', 1, 64),
			string(a.Severity),
			string(a.DetectionMethod),
			rc.CauseLabel,
			fmt.Sprintf("%d%%", rc.Probability),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func printLifetimes(w io.Writer, preds []domain.LifetimePrediction) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Component", "Days", "P10", "P50", "P90"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range preds {
		row := []string{p.Component, strconv.Itoa(p.DaysRemaining), "-", "-", "-"}
		if p.Bands != nil {
			row[2] = strconv.Itoa(p.Bands.P10)
			row[3] = strconv.Itoa(p.Bands.P50)
			row[4] = strconv.Itoa(p.Bands.P90)
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func printMaintenance(w io.Writer, recs []domain.MaintenanceRecommendation) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Component", "Days", "Priority", "Action"})

	var data [][]string
	for _, r := range recs {
		data = append(data, []string{r.Component, strconv.Itoa(r.DaysRemaining), string(r.Priority), r.Action})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func printExplanation(w io.Writer, a domain.Anomaly, exp domain.Explanation) {
	fmt.Fprintf(w, "\nExplanation for %s anomaly on %s (%.1f)\n", a.Severity, a.Parameter, a.Value)
	for _, line := range exp.Reasoning {
		fmt.Fprintf(w, "  - %s\n", line)
	}
	fmt.Fprintf(w, "Factors considered: %s\n", strings.Join(exp.FactorsConsidered, ", "))
	fmt.Fprintln(w, "Confidence:")
	for _, f := range exp.ConfidenceFactors {
		fmt.Fprintf(w, "  %3d%%  %s: %s\n", f.Contribution, f.Name, f.Description)
	}
}

func printInsight(w io.Writer, in domain.ModelInsight) error {
	fmt.Fprintf(w, "\n%s: %s", in.Parameter, in.PrimaryModel)
	if in.SecondaryModel != "" {
		fmt.Fprintf(w, " + %s", in.SecondaryModel)
	}
	fmt.Fprintln(w)

	if len(in.FeatureImportance) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Feature", "Importance"})
		var data [][]string
		for _, f := range in.FeatureImportance {
			data = append(data, []string{f.Feature, strconv.FormatFloat(f.Importance, 'f', 2, 64)})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	for _, l := range in.Limitations {
		fmt.Fprintf(w, "  * %s\n", l)
	}
	return nil
}
