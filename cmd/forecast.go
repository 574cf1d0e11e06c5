package cmd

import (
	"fmt"

	"pmlens/internal/cli"
	"pmlens/internal/pipeline"

	"github.com/spf13/cobra"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Spend trend and overrun probability",
	RunE:  runForecast,
}

func init() {
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}
	if len(result.Snapshot.Projects) == 0 {
		fmt.Println("\n  No projects found.")
		return nil
	}

	series := pipeline.YearlySpendSeries(result.Snapshot.Projects)
	line := pipeline.FitTrend(series)
	points := pipeline.ProjectTrend(line, pipeline.LastPeriod(series), flagHorizon)
	prob := pipeline.EstimateOverrunProbability(result.Snapshot.Projects)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SPEND FORECAST  +%d years", flagHorizon)))
	fmt.Println()

	rows := make([][]string, 0, len(series)+len(points))
	for _, year := range pipeline.SortedPeriods(series) {
		rows = append(rows, []string{
			fmt.Sprintf("%d", year),
			"observed",
			cli.FormatMoney(series[year]),
		})
	}
	if len(rows) > 0 && len(points) > 0 {
		rows = append(rows, []string{"---"})
	}
	for _, fp := range points {
		rows = append(rows, []string{
			fmt.Sprintf("%d", fp.Period),
			"projected",
			cli.FormatMoney(fp.Value),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Year", "Kind", "Spend"},
		Rows:    rows,
	}))

	fmt.Println()
	if line.Points < 2 {
		fmt.Println("  Fewer than two observed years: flat projection from the last value.")
	} else {
		fmt.Printf("  Fit: slope %s/yr over %d years\n", cli.FormatMoney(line.Slope), line.Points)
	}

	fmt.Printf("\n  Overrun probability (of %d eligible projects)\n", prob.Eligible)
	fmt.Printf("    Baseline  %s  %s\n", cli.RenderGauge(prob.Baseline, 20), cli.FormatPercent(prob.Baseline))
	fmt.Printf("    Adjusted  %s  %s\n", cli.RenderGauge(prob.Adjusted, 20), cli.FormatPercent(prob.Adjusted))
	fmt.Println("    (adjusted applies a fixed schedule-based bump, not a model)")
	fmt.Println()

	return nil
}
