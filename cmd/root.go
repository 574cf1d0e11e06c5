// Package cmd implements the pmlens CLI commands.
package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"pmlens/internal/config"
	"pmlens/internal/pipeline"
	"pmlens/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagYear    int
	flagHorizon int
	flagTop     int
	flagSeed    int64
	flagDataDir string
	flagNoCache bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "pmlens",
	Short: "Project Portfolio Analytics CLI",
	Long:  "Analyze a project portfolio: budgets, overruns, change orders, risk, and forecasts.",
	RunE:  runOverview,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cfg, _ := config.Load()

	rootCmd.PersistentFlags().IntVarP(&flagYear, "year", "y", cfg.General.DefaultYear, "Filter to a start year (0 = all years)")
	rootCmd.PersistentFlags().IntVarP(&flagHorizon, "horizon", "H", cfg.General.DefaultHorizon, "Forecast horizon in years")
	rootCmd.PersistentFlags().IntVarP(&flagTop, "top", "t", cfg.General.DefaultTopN, "Rows to show in ranked tables")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Random seed for jittered outputs (0 = jitter off)")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", defaultDataDir(cfg), "Directory holding projects.csv and change_orders.csv")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse the CSVs")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

func defaultDataDir(cfg config.Config) string {
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	return "data"
}

// loadData is the shared data loading path used by all commands.
// Uses the SQLite cache when fresh; any cache trouble falls back to a
// full parse rather than failing the run.
func loadData() (*pipeline.LoadResult, error) {
	if !flagNoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache unavailable, doing full parse\n")
			}
		} else {
			defer cache.Close()

			cr, err := pipeline.LoadWithCache(flagDataDir, cache)
			if err == nil {
				if !flagQuiet {
					src := "parsed"
					if cr.FromCache {
						src = "from cache"
					}
					fmt.Fprintf(os.Stderr, "  Loaded %d projects, %d change orders (%s)\n",
						len(cr.Snapshot.Projects), len(cr.Snapshot.ChangeOrders), src)
				}
				warnRowErrors(cr.RowErrors)
				return &cr.LoadResult, nil
			}
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache error, falling back to full parse\n")
			}
		}
	}

	result, err := pipeline.Load(flagDataDir)
	if err != nil {
		return nil, err
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Parsed %d projects, %d change orders\n",
			len(result.Snapshot.Projects), len(result.Snapshot.ChangeOrders))
	}
	warnRowErrors(result.RowErrors)

	return result, nil
}

func warnRowErrors(n int) {
	if n > 0 && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  %d rows had unparsable fields (excluded from affected aggregates)\n", n)
	}
}

// currentFilter builds the recompute filter from the shared flags.
func currentFilter() pipeline.Filter {
	return pipeline.Filter{
		Year:    flagYear,
		Horizon: flagHorizon,
		TopN:    flagTop,
	}
}

// newRand returns the injected random source for jittered outputs.
// Seed 0 disables jitter entirely (nil source), which keeps default
// runs reproducible; pass a nonzero seed to sample.
func newRand() *rand.Rand {
	if flagSeed == 0 {
		return nil
	}
	if flagSeed < 0 {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rand.New(rand.NewSource(flagSeed))
}

// yearSuffix renders the active year filter for table titles.
func yearSuffix() string {
	if flagYear == 0 {
		return "All years"
	}
	return fmt.Sprintf("Year %d", flagYear)
}
