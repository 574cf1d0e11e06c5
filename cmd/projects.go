package cmd

import (
	"fmt"
	"sort"

	"pmlens/internal/cli"
	"pmlens/internal/model"
	"pmlens/internal/pipeline"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Per-project rollup ranked by overrun",
	RunE:  runProjects,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}

func runProjects(_ *cobra.Command, _ []string) error {
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
	if len(rollups) == 0 {
		fmt.Println("\n  No projects in the selected year.")
		return nil
	}

	sort.Slice(rollups, func(i, j int) bool {
		return rollups[i].Overrun > rollups[j].Overrun
	})
	if flagTop > 0 && len(rollups) > flagTop {
		rollups = rollups[:flagTop]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PROJECTS  %s (top %d by overrun)", yearSuffix(), len(rollups))))
	fmt.Println()

	rows := make([][]string, 0, len(rollups))
	for _, r := range rollups {
		slip := "—"
		if r.SlipKnown {
			slip = cli.FormatDays(r.SlipDays)
		}
		rows = append(rows, []string{
			cli.Truncate(r.Project.Name, 22),
			cli.FormatMoney(r.Project.PlannedBudget),
			cli.FormatMoney(r.Project.ActualCost),
			cli.FormatMoney(r.Overrun),
			cli.FormatNumber(int64(r.COCount)),
			cli.FormatMoney(r.COTotal),
			slip,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Project", "Budget", "Actual", "Overrun", "COs", "CO Cost", "Slip"},
		Rows:    rows,
	}))

	// Unassigned change orders get a footnote rather than a table row.
	totals := pipeline.ChangeOrderTotals(result.Snapshot.Projects, result.Snapshot.ChangeOrders)
	if t, ok := totals[model.UnassignedProject]; ok {
		fmt.Printf("\n  %d change orders (%s) reference no known project.\n",
			t.Orders, cli.FormatMoney(t.Cost))
	}
	fmt.Println()

	return nil
}
