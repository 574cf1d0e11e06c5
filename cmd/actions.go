package cmd

import (
	"fmt"

	"pmlens/internal/cli"
	"pmlens/internal/pipeline"

	"github.com/spf13/cobra"
)

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "Recommended actions ranked by estimated savings",
	RunE:  runActions,
}

func init() {
	rootCmd.AddCommand(actionsCmd)
}

func runActions(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}
	if len(result.Snapshot.Projects) == 0 {
		fmt.Println("\n  No projects found.")
		return nil
	}

	projects, orders := pipeline.FilterByYear(result.Snapshot.Projects, result.Snapshot.ChangeOrders, flagYear)
	rollups := pipeline.BuildRollups(projects, orders)
	recs := pipeline.Recommend(rollups, flagTop, newRand())

	if len(recs) == 0 {
		fmt.Println("\n  No projects in the selected year.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("RECOMMENDED ACTIONS  %s (top %d)", yearSuffix(), len(recs))))
	fmt.Println()

	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			cli.Truncate(r.ProjectName, 20),
			r.Action,
			cli.FormatMoney(r.Savings),
			cli.FormatPercent(r.Impact),
			cli.FormatPercent(r.Effort),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Project", "Action", "Est. Savings", "Impact", "Effort"},
		Rows:    rows,
	}))

	if flagSeed == 0 {
		fmt.Println("\n  Tie-breaks and sampling shown deterministically; pass --seed to sample.")
	}
	fmt.Println()

	return nil
}
