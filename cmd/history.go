package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fincast/internal/cli"
	"github.com/theirongolddev/fincast/internal/config"
	"github.com/theirongolddev/fincast/internal/store"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded simulation runs",
	RunE:  runHistoryCmd,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistoryCmd(_ *cobra.Command, _ []string) error {
	db, err := store.Open(config.DataPath())
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRuns(flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("\n  No recorded runs. Use `fincast simulate --save` first.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	var finals []float64
	for _, r := range runs {
		rows = append(rows, []string{
			r.RunAt.Format("2006-01-02 15:04"),
			r.Scenario,
			fmt.Sprintf("%dy", r.HorizonMonths/12),
			cli.FormatMoneyCompact(r.FinalNetWorth),
			cli.FormatMonthIndex(r.DebtFreeMonth),
			fmt.Sprintf("%d", r.WarningCount),
		})
		finals = append(finals, r.FinalNetWorth)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("RUN HISTORY"))
	fmt.Println()
	fmt.Println(cli.RenderTable(cli.Table{
		Headers: []string{"When", "Scenario", "Horizon", "Final NW", "Debt free", "Warnings"},
		Rows:    rows,
	}))

	// Oldest to newest for the trend line
	for i, j := 0, len(finals)-1; i < j; i, j = i+1, j-1 {
		finals[i], finals[j] = finals[j], finals[i]
	}
	fmt.Printf("  Final net worth trend: %s\n", cli.RenderSparkline(finals))

	return nil
}
