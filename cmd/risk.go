package cmd

import (
	"fmt"

	"pmlens/internal/cli"
	"pmlens/internal/pipeline"

	"github.com/spf13/cobra"
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Risk scores per project (rule and spread variants)",
	RunE:  runRisk,
}

func init() {
	rootCmd.AddCommand(riskCmd)
}

func runRisk(_ *cobra.Command, _ []string) error {
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
	scores := pipeline.ScoreCohort(rollups, newRand())

	if len(scores) == 0 {
		fmt.Println("\n  No projects in the selected year.")
		return nil
	}

	if flagTop > 0 && len(scores) > flagTop {
		scores = scores[:flagTop]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("RISK  %s (top %d)", yearSuffix(), len(scores))))
	fmt.Println()

	rows := make([][]string, 0, len(scores))
	for _, s := range scores {
		rows = append(rows, []string{
			cli.Truncate(s.ProjectName, 22),
			fmt.Sprintf("%d", s.RuleScore),
			fmt.Sprintf("%.0f", s.SpreadScore),
			cli.RenderGauge(float64(s.RuleScore)/100, 16),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Project", "Rule", "Spread", ""},
		Rows:    rows,
	}))

	if flagSeed == 0 {
		fmt.Println("\n  Spread scores shown without jitter; pass --seed to sample.")
	}
	fmt.Println()

	return nil
}
