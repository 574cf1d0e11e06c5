package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"pmlens/internal/config"
	"pmlens/internal/source"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to pmlens!")
	fmt.Println()

	// 1. Data directory
	fmt.Println("  1. Data directory")
	fmt.Println("     Where projects.csv and change_orders.csv live.")
	if cfg.General.DataDir != "" {
		fmt.Printf("     Current: %s\n", cfg.General.DataDir)
	}
	fmt.Print("     > ")
	dataDir, _ := reader.ReadString('\n')
	dataDir = strings.TrimSpace(dataDir)
	if dataDir != "" {
		cfg.General.DataDir = dataDir
	}
	probe := cfg.General.DataDir
	if probe == "" {
		probe = flagDataDir
	}
	if files, err := source.ScanDir(probe); err == nil {
		fmt.Printf("     Found %d input files\n", len(files))
	} else {
		fmt.Printf("     Note: %v\n", err)
	}
	fmt.Println()

	// 2. Forecast horizon
	fmt.Println("  2. Default forecast horizon (years)")
	fmt.Println("     (1) 2   (2) 3 [default]   (3) 5")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(choice) {
	case "1":
		cfg.General.DefaultHorizon = 2
	case "3":
		cfg.General.DefaultHorizon = 5
	default:
		cfg.General.DefaultHorizon = 3
	}
	fmt.Println()

	// 3. Top-N
	fmt.Println("  3. Default rows in ranked tables")
	fmt.Print("     > ")
	topRaw, _ := reader.ReadString('\n')
	if n, err := strconv.Atoi(strings.TrimSpace(topRaw)); err == nil && n > 0 {
		cfg.General.DefaultTopN = n
	}
	fmt.Println()

	// 4. Theme
	fmt.Println("  4. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Catppuccin Mocha")
	fmt.Println("     (3) Tokyo Night")
	fmt.Println("     (4) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(themeChoice) {
	case "2":
		cfg.Appearance.Theme = "catppuccin-mocha"
	case "3":
		cfg.Appearance.Theme = "tokyo-night"
	case "4":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `pmlens setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
