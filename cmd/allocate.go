package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fincast/internal/allocate"
	"github.com/theirongolddev/fincast/internal/cli"
	"github.com/theirongolddev/fincast/internal/model"
)

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Allocate this month's savings budget across priorities",
	RunE:  runAllocateCmd,
}

func init() {
	rootCmd.AddCommand(allocateCmd)
}

func runAllocateCmd(_ *cobra.Command, _ []string) error {
	sc, err := loadScenario()
	if err != nil {
		return err
	}

	in := sc.SavingsInputs()
	alloc, err := allocate.Allocate(in)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SAVINGS PLAN  %s", cli.FormatMoney(in.SavingsBudget))))
	fmt.Println()
	fmt.Println(cli.RenderTable(allocationTable(alloc)))
	fmt.Println(cli.RenderNotes(alloc.Notes))

	return nil
}

// allocationTable builds the destination/amount breakdown, skipping rows
// the waterfall never funded.
func allocationTable(alloc model.SavingsAllocation) cli.Table {
	rows := [][]string{
		{"Emergency fund", cli.FormatMoney(alloc.EF)},
		{"High-APR debt", cli.FormatMoney(alloc.HighAprDebt)},
		{"401k match", cli.FormatMoney(alloc.Match401k)},
	}
	if alloc.HSA > 0 {
		rows = append(rows, []string{"HSA", cli.FormatMoney(alloc.HSA)})
	}
	rows = append(rows,
		[]string{retireLabel(alloc.Routing.AcctType), cli.FormatMoney(alloc.RetirementTaxAdv)},
		[]string{"Brokerage", cli.FormatMoney(alloc.Brokerage)},
		[]string{"---"},
		[]string{"Total", cli.FormatMoney(alloc.Total())},
	)

	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Split", fmt.Sprintf("%.0f%% retire / %.0f%% taxable",
		alloc.Routing.SplitRetirePct, alloc.Routing.SplitBrokerPct)})

	return cli.Table{Headers: []string{"Destination", "Amount"}, Rows: rows}
}

func retireLabel(t model.AcctType) string {
	if t == model.AcctRoth {
		return "Retirement (Roth)"
	}
	return "Retirement (Trad 401k)"
}
