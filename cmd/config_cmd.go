package cmd

import (
	"fmt"

	"pmlens/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	if cfg.General.DataDir != "" {
		fmt.Printf("    Data directory:   %s\n", cfg.General.DataDir)
	} else {
		fmt.Printf("    Data directory:   (flag default: %s)\n", flagDataDir)
	}
	if cfg.General.DefaultYear != 0 {
		fmt.Printf("    Default year:     %d\n", cfg.General.DefaultYear)
	} else {
		fmt.Println("    Default year:     all")
	}
	fmt.Printf("    Forecast horizon: %d years\n", cfg.General.DefaultHorizon)
	fmt.Printf("    Ranked rows:      %d\n", cfg.General.DefaultTopN)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `pmlens setup` to reconfigure.")
	return nil
}
