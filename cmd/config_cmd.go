package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fincast/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfigCmd,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
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
	if cfg.General.DefaultScenario != "" {
		fmt.Printf("    Default scenario: %s\n", cfg.General.DefaultScenario)
	} else {
		fmt.Println("    Default scenario: not set")
	}
	if cfg.General.HorizonYears > 0 {
		fmt.Printf("    Horizon:          %d years\n", cfg.General.HorizonYears)
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Printf("  Database: %s\n", config.DataPath())
	fmt.Println()
	fmt.Println("  Run `fincast setup` to reconfigure.")
	return nil
}
