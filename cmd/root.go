// Package cmd implements the fincast CLI commands.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fincast/internal/config"
	"github.com/theirongolddev/fincast/internal/model"
	"github.com/theirongolddev/fincast/internal/scenario"
)

var (
	flagScenario string
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "fincast",
	Short: "Personal savings planner and net worth forecaster",
	Long:  "Allocate a monthly savings budget across priorities and project net worth over decades.",
	RunE:  runAllocateCmd,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagScenario, "scenario", "s", "", "Scenario file (TOML)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadScenario resolves the scenario file from the --scenario flag, then
// the config default, and parses it.
func loadScenario() (scenario.Scenario, error) {
	path := flagScenario
	if path == "" {
		cfg, _ := config.Load()
		path = cfg.General.DefaultScenario
	}
	if path == "" {
		return scenario.Scenario{}, fmt.Errorf("no scenario file: pass --scenario or run `fincast setup`")
	}

	sc, err := scenario.Load(path)
	if err != nil {
		return scenario.Scenario{}, err
	}
	return sc, nil
}

// scenarioInput expands the loaded scenario into simulator input, applying
// the config horizon override when the file sets none.
func scenarioInput(sc scenario.Scenario) (model.ScenarioInput, error) {
	if sc.HorizonYears == 0 {
		cfg, _ := config.Load()
		if cfg.General.HorizonYears > 0 {
			sc.HorizonYears = cfg.General.HorizonYears
		}
	}
	return sc.ScenarioInput(time.Now())
}
