package cmd

import (
	"fmt"

	"pmlens/internal/cli"
	"pmlens/internal/pipeline"

	"github.com/spf13/cobra"
)

var reasonsCmd = &cobra.Command{
	Use:   "reasons",
	Short: "Change-order breakdown by reason",
	RunE:  runReasons,
}

func init() {
	rootCmd.AddCommand(reasonsCmd)
}

func runReasons(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}
	if len(result.Snapshot.ChangeOrders) == 0 {
		fmt.Println("\n  No change orders found.")
		return nil
	}

	_, orders := pipeline.FilterByYear(result.Snapshot.Projects, result.Snapshot.ChangeOrders, flagYear)
	reasons := pipeline.AggregateReasons(orders)

	if len(reasons) == 0 {
		fmt.Println("\n  No change orders in the selected year.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CHANGE-ORDER REASONS  %s", yearSuffix())))
	fmt.Println()

	rows := make([][]string, 0, len(reasons))
	for _, rs := range reasons {
		rows = append(rows, []string{
			rs.Reason,
			cli.FormatNumber(int64(rs.Orders)),
			cli.FormatMoney(rs.Cost),
			fmt.Sprintf("%.1f%%", rs.SharePercent),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Reason", "Orders", "Cost", "Share"},
		Rows:    rows,
	}))

	return nil
}
