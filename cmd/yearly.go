package cmd

import (
	"fmt"

	"pmlens/internal/cli"
	"pmlens/internal/pipeline"

	"github.com/spf13/cobra"
)

var yearlyCmd = &cobra.Command{
	Use:   "yearly",
	Short: "Per-year rollup table",
	RunE:  runYearly,
}

func init() {
	rootCmd.AddCommand(yearlyCmd)
}

func runYearly(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}
	if len(result.Snapshot.Projects) == 0 {
		fmt.Println("\n  No projects found.")
		return nil
	}

	years := pipeline.AggregateYears(result.Snapshot.Projects, result.Snapshot.ChangeOrders)
	if len(years) == 0 {
		fmt.Println("\n  No dated projects to roll up.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("YEARLY ROLLUP"))
	fmt.Println()

	rows := make([][]string, 0, len(years))
	spend := make([]float64, 0, len(years))
	for _, ys := range years {
		slip := "—"
		if ys.SlipSamples > 0 {
			slip = cli.FormatDays(ys.MeanSlipDays)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", ys.Year),
			cli.FormatNumber(int64(ys.Projects)),
			cli.FormatMoney(ys.Budget),
			cli.FormatMoney(ys.Actual),
			cli.FormatMoney(ys.Overrun),
			cli.FormatNumber(int64(ys.ChangeOrders)),
			cli.FormatMoney(ys.COCost),
			slip,
		})
		spend = append(spend, ys.Actual)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Year", "Projects", "Budget", "Actual", "Overrun", "COs", "CO Cost", "Slip"},
		Rows:    rows,
	}))

	fmt.Printf("\n  Spend trend: %s\n\n", cli.RenderSparkline(spend))

	return nil
}
