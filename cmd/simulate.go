package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fincast/internal/cli"
	"github.com/theirongolddev/fincast/internal/config"
	"github.com/theirongolddev/fincast/internal/model"
	"github.com/theirongolddev/fincast/internal/simulate"
	"github.com/theirongolddev/fincast/internal/store"
)

var (
	flagSaveRun bool
	flagYears   int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Project net worth month by month over the horizon",
	RunE:  runSimulateCmd,
}

func init() {
	simulateCmd.Flags().BoolVar(&flagSaveRun, "save", false, "Record this run's KPIs in the local database")
	simulateCmd.Flags().IntVar(&flagYears, "years", 0, "Override the projection horizon in years")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulateCmd(_ *cobra.Command, _ []string) error {
	sc, err := loadScenario()
	if err != nil {
		return err
	}
	if flagYears > 0 {
		sc.HorizonYears = flagYears
	}

	in, err := scenarioInput(sc)
	if err != nil {
		return err
	}

	// Advisory plan check before the full run
	for _, w := range simulate.ValidatePlan(in.Plan) {
		fmt.Fprintf(os.Stderr, "  warning: %s\n", w)
	}

	series, err := simulate.Simulate(in)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("NET WORTH  %d years", in.HorizonMonths/12)))
	fmt.Println()
	fmt.Printf("  %s\n\n", cli.RenderSparkline(sampleSeries(series.NetWorth, 60)))
	fmt.Println(cli.RenderTable(kpiTable(series)))
	fmt.Println(cli.RenderWarnings(series.Warnings, 5))

	if flagSaveRun {
		if err := saveRun(sc.Name, series); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		if !flagQuiet {
			fmt.Println("  Run recorded.")
		}
	}

	return nil
}

func kpiTable(series model.ScenarioSeries) cli.Table {
	k := series.KPIs
	rows := [][]string{
		{"Final net worth", cli.FormatMoney(series.NetWorth[len(series.NetWorth)-1])},
		{"EF reached", cli.FormatMonthIndex(k.EFReachedMonth)},
		{"Debt free", cli.FormatMonthIndex(k.DebtFreeMonth)},
	}
	if k.CAGRNominal != nil {
		rows = append(rows, []string{"CAGR (nominal)", cli.FormatPercent(*k.CAGRNominal)})
	}
	rows = append(rows, []string{"---"})

	years := make([]int, 0, len(k.NetWorthAtYears))
	for y := range k.NetWorthAtYears {
		years = append(years, y)
	}
	sort.Ints(years)
	for _, y := range years {
		rows = append(rows, []string{
			fmt.Sprintf("Year %d", y),
			cli.FormatMoneyCompact(k.NetWorthAtYears[y]),
		})
	}

	return cli.Table{Headers: []string{"Milestone", "Value"}, Rows: rows}
}

// sampleSeries thins a long series to at most n points for the sparkline.
func sampleSeries(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = values[i*(len(values)-1)/(n-1)]
	}
	return out
}

func saveRun(name string, series model.ScenarioSeries) error {
	db, err := store.Open(config.DataPath())
	if err != nil {
		return err
	}
	defer db.Close()
	if name == "" {
		name = "unnamed"
	}
	return db.SaveRun(name, series)
}
