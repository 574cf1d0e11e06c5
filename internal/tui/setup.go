package tui

import (
	"fmt"
	"strconv"
	"strings"

	"pmlens/internal/config"
	"pmlens/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues holds the first-run wizard answers.
type setupValues struct {
	Horizon int
	TopN    string
	Theme   string
}

// newSetupForm builds the first-run configuration form shown when no
// config file exists yet.
func newSetupForm(projectCount int, dataDir string, vals *setupValues) *huh.Form {
	vals.Horizon = 3
	vals.TopN = "10"
	vals.Theme = theme.FlexokiDark.Name

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to pmlens!").
				Description(fmt.Sprintf("Found %d projects in %s.\nA few defaults to set, then the dashboard.", projectCount, dataDir)),

			huh.NewSelect[int]().
				Title("Default forecast horizon").
				Options(
					huh.NewOption("2 years", 2),
					huh.NewOption("3 years", 3),
					huh.NewOption("5 years", 5),
				).
				Value(&vals.Horizon),

			huh.NewInput().
				Title("Rows in ranked tables").
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n <= 0 {
						return fmt.Errorf("enter a positive number")
					}
					return nil
				}).
				Value(&vals.TopN),

			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	)
}

// saveSetupConfig applies the wizard answers to the config file and the
// running app.
func (a *App) saveSetupConfig() error {
	cfg, _ := config.Load()

	cfg.General.DefaultHorizon = a.setupVals.Horizon
	a.horizon = a.setupVals.Horizon

	if n, err := strconv.Atoi(strings.TrimSpace(a.setupVals.TopN)); err == nil && n > 0 {
		cfg.General.DefaultTopN = n
		a.topN = n
	}

	if a.setupVals.Theme != "" {
		cfg.Appearance.Theme = a.setupVals.Theme
		theme.SetActive(a.setupVals.Theme)
	}

	return config.Save(cfg)
}
