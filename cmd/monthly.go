package cmd

import (
	"fmt"

	"pmlens/internal/cli"
	"pmlens/internal/pipeline"

	"github.com/spf13/cobra"
)

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Month-by-month activity for a selected year",
	RunE:  runMonthly,
}

func init() {
	rootCmd.AddCommand(monthlyCmd)
}

func runMonthly(_ *cobra.Command, _ []string) error {
	if flagYear == 0 {
		return fmt.Errorf("monthly needs --year (e.g. --year 2023)")
	}

	result, err := loadData()
	if err != nil {
		return err
	}
	if len(result.Snapshot.Projects) == 0 {
		fmt.Println("\n  No projects found.")
		return nil
	}

	months := pipeline.AggregateMonths(result.Snapshot.Projects, result.Snapshot.ChangeOrders, flagYear)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("MONTHLY  %d", flagYear)))
	fmt.Println()

	// Bar scale against the busiest month's CO cost.
	maxCost := 0.0
	for _, m := range months {
		if m.COCost > maxCost {
			maxCost = m.COCost
		}
	}

	for _, m := range months {
		fmt.Printf("  %s │ %2d projects │ %8s │ %s\n",
			cli.MonthName(m.Month),
			m.Projects,
			cli.FormatMoney(m.COCost),
			cli.RenderBar(m.COCost, maxCost, 36),
		)
	}

	// Peak month by change-order cost
	peak := 0
	for i, m := range months {
		if m.COCost > months[peak].COCost {
			peak = i
		}
	}
	if maxCost > 0 {
		fmt.Printf("\n  Peak: %s (%s in change orders)\n\n",
			cli.MonthName(months[peak].Month), cli.FormatMoney(months[peak].COCost))
	} else {
		fmt.Printf("\n  No change-order activity in %d.\n\n", flagYear)
	}

	return nil
}
