package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fincast/internal/config"
	"github.com/theirongolddev/fincast/internal/scenario"
	"github.com/theirongolddev/fincast/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetupCmd,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetupCmd(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	homeDir, _ := os.UserHomeDir()
	scenarioPath := cfg.General.DefaultScenario
	if scenarioPath == "" {
		scenarioPath = filepath.Join(homeDir, "fincast.toml")
	}

	budgetStr := "1000"
	liquidity := "medium"
	focus := "medium"
	themeName := cfg.Appearance.Theme
	if themeName == "" {
		themeName = theme.FlexokiDark.Name
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	levelOpts := []huh.Option[string]{
		huh.NewOption("Low", "low"),
		huh.NewOption("Medium", "medium"),
		huh.NewOption("High", "high"),
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Scenario file").
				Description("Where your plan lives. Created if missing.").
				Value(&scenarioPath),
			huh.NewInput().
				Title("Monthly savings budget").
				Description("Dollars per month available to allocate.").
				Validate(validateMoney).
				Value(&budgetStr),
			huh.NewSelect[string]().
				Title("Liquidity need").
				Description("How soon you may need this money back.").
				Options(levelOpts...).
				Value(&liquidity),
			huh.NewSelect[string]().
				Title("Retirement focus").
				Options(levelOpts...).
				Value(&focus),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&themeName),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	// Write the scenario file only when one doesn't already exist
	if _, err := os.Stat(scenarioPath); os.IsNotExist(err) {
		sc := scenario.Starter()
		if budget, err := strconv.ParseFloat(budgetStr, 64); err == nil {
			sc.Snapshot.SavingsBudget = budget
		}
		sc.Snapshot.Liquidity = liquidity
		sc.Snapshot.RetireFocus = focus

		if err := scenario.Save(scenarioPath, sc); err != nil {
			return fmt.Errorf("write scenario: %w", err)
		}
		fmt.Printf("  Created starter scenario at %s\n", scenarioPath)
	}

	cfg.General.DefaultScenario = scenarioPath
	cfg.Appearance.Theme = themeName
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("  Saved config to %s\n", config.Path())
	fmt.Println("  Edit the scenario file, then run `fincast allocate` or `fincast simulate`.")
	return nil
}

func validateMoney(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative dollar amount")
	}
	return nil
}
