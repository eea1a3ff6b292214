package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fincast/internal/cli"
	"github.com/theirongolddev/fincast/internal/model"
	"github.com/theirongolddev/fincast/internal/simulate"
)

var (
	flagAltReturn    float64
	flagAltCashYield float64
	flagAltTaxDrag   float64
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare KPIs under alternate rate assumptions",
	RunE:  runCompareCmd,
}

func init() {
	compareCmd.Flags().Float64Var(&flagAltReturn, "return", 0, "Alternate nominal return, annual percent")
	compareCmd.Flags().Float64Var(&flagAltCashYield, "cash-yield", 0, "Alternate cash yield, annual percent")
	compareCmd.Flags().Float64Var(&flagAltTaxDrag, "tax-drag", 0, "Alternate brokerage tax drag, annual percent")
	rootCmd.AddCommand(compareCmd)
}

func runCompareCmd(_ *cobra.Command, _ []string) error {
	sc, err := loadScenario()
	if err != nil {
		return err
	}

	in, err := scenarioInput(sc)
	if err != nil {
		return err
	}

	base, err := simulate.Simulate(in)
	if err != nil {
		return err
	}

	alt := in
	alt.Assumptions = overrideAssumptions(in.Assumptions)
	altSeries, err := simulate.Simulate(alt)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SCENARIO COMPARISON"))
	fmt.Println()
	fmt.Println(cli.RenderTable(compareTable(base, altSeries)))

	return nil
}

func overrideAssumptions(a model.Assumptions) model.Assumptions {
	out := a
	if flagAltReturn != 0 {
		v := flagAltReturn
		out.NominalReturnPercent = &v
	}
	if flagAltCashYield != 0 {
		v := flagAltCashYield
		out.CashYieldPercent = &v
	}
	if flagAltTaxDrag != 0 {
		v := flagAltTaxDrag
		out.TaxDragBrokeragePercent = &v
	}
	return out
}

func compareTable(base, alt model.ScenarioSeries) cli.Table {
	baseNW := base.NetWorth[len(base.NetWorth)-1]
	altNW := alt.NetWorth[len(alt.NetWorth)-1]

	rows := [][]string{
		{"Final net worth", cli.FormatMoneyCompact(baseNW), cli.FormatMoneyCompact(altNW), cli.FormatDelta(altNW, baseNW)},
		{"EF reached", cli.FormatMonthIndex(base.KPIs.EFReachedMonth), cli.FormatMonthIndex(alt.KPIs.EFReachedMonth), ""},
		{"Debt free", cli.FormatMonthIndex(base.KPIs.DebtFreeMonth), cli.FormatMonthIndex(alt.KPIs.DebtFreeMonth), ""},
	}
	if base.KPIs.CAGRNominal != nil && alt.KPIs.CAGRNominal != nil {
		rows = append(rows, []string{
			"CAGR (nominal)",
			cli.FormatPercent(*base.KPIs.CAGRNominal),
			cli.FormatPercent(*alt.KPIs.CAGRNominal),
			"",
		})
	}

	return cli.Table{Headers: []string{"KPI", "Baseline", "Alternate", "Delta"}, Rows: rows}
}
