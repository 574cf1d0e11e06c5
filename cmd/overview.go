package cmd

import (
	"fmt"

	"pmlens/internal/cli"
	"pmlens/internal/pipeline"

	"github.com/spf13/cobra"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Portfolio summary with budgets and overruns",
	RunE:  runOverview,
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

func runOverview(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}

	if len(result.Snapshot.Projects) == 0 {
		fmt.Println("\n  No projects found.")
		fmt.Println("  Point --data-dir at a directory with projects.csv and change_orders.csv.")
		return nil
	}

	view := pipeline.Recompute(result.Snapshot, currentFilter(), newRand())
	stats := view.Portfolio

	if stats.TotalProjects == 0 {
		fmt.Println("\n  No projects in the selected year.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PORTFOLIO  %s", yearSuffix())))
	fmt.Println()

	rows := [][]string{
		{"Projects", cli.FormatNumber(int64(stats.TotalProjects))},
		{"In flight", cli.FormatNumber(int64(stats.InFlight))},
		{"Completed", cli.FormatNumber(int64(stats.Completed))},
		{"---"},
		{"Planned budget", cli.FormatMoney(stats.TotalBudget)},
		{"Actual cost", cli.FormatMoney(stats.TotalActual)},
		{"Overrun", cli.FormatMoney(stats.TotalOverrun)},
		{"---"},
		{"Change orders", cli.FormatNumber(int64(stats.ChangeOrders))},
		{"CO cost", cli.FormatMoney(stats.ChangeOrderCost)},
		{"---"},
	}

	slipStr := "—"
	if stats.SlipSampleSize > 0 {
		slipStr = fmt.Sprintf("%s  (%d projects)", cli.FormatDays(stats.MeanSlipDays), stats.SlipSampleSize)
	}
	rows = append(rows, []string{"Mean slip", slipStr})

	varStr := "—"
	if stats.VarianceSampleSize > 0 {
		varStr = cli.FormatPercent(stats.MeanVarianceRatio)
	}
	rows = append(rows, []string{"Mean cost variance", varStr})
	rows = append(rows, []string{"Overrun probability", fmt.Sprintf("%s (adj %s)",
		cli.FormatPercent(view.Probability.Baseline),
		cli.FormatPercent(view.Probability.Adjusted))})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	// Year-over-year delta on spend, when two or more years exist.
	if n := len(view.Years); n >= 2 {
		cur, prev := view.Years[n-1], view.Years[n-2]
		fmt.Printf("\n  Spend %d vs %d: %s\n", cur.Year, prev.Year,
			cli.FormatDelta(cur.Actual, prev.Actual))
	}
	fmt.Println()

	return nil
}
