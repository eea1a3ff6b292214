package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fincast/internal/cli"
	"github.com/theirongolddev/fincast/internal/model"
	"github.com/theirongolddev/fincast/internal/simulate"
)

var (
	flagDebtBudget float64
	flagStrategy   string
	flagCompare    bool
)

var debtsCmd = &cobra.Command{
	Use:   "debts",
	Short: "Project a debt payoff schedule",
	RunE:  runDebtsCmd,
}

func init() {
	debtsCmd.Flags().Float64Var(&flagDebtBudget, "budget", 0, "Monthly amount toward debt (default: plan minimums + extra)")
	debtsCmd.Flags().StringVar(&flagStrategy, "strategy", "avalanche", "Payoff ordering: avalanche or snowball")
	debtsCmd.Flags().BoolVar(&flagCompare, "compare", false, "Compare avalanche vs snowball")
	rootCmd.AddCommand(debtsCmd)
}

func runDebtsCmd(_ *cobra.Command, _ []string) error {
	sc, err := loadScenario()
	if err != nil {
		return err
	}

	debts := make([]model.Liability, 0, len(sc.Balances.Liabilities))
	for _, l := range sc.Balances.Liabilities {
		debts = append(debts, model.Liability{
			Name:       l.Name,
			Balance:    l.Balance,
			AprPercent: l.AprPercent,
			MinPayment: l.MinPayment,
		})
	}
	if len(debts) == 0 {
		fmt.Println("\n  No liabilities in this scenario.")
		return nil
	}

	budget := flagDebtBudget
	if budget == 0 {
		for _, d := range debts {
			budget += d.MinPayment
		}
		if len(sc.Plan) > 0 {
			budget += sc.Plan[0].HighAprDebt
		}
	}

	if flagCompare {
		return renderPayoffComparison(debts, budget)
	}

	strategy := simulate.StrategyAvalanche
	if flagStrategy == "snowball" {
		strategy = simulate.StrategySnowball
	}

	sched, err := simulate.PayoffPlan(debts, budget, strategy)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DEBT PAYOFF  %s/mo", cli.FormatMoney(budget))))
	fmt.Println()
	fmt.Println(cli.RenderTable(payoffTable(sched)))

	if sched.Truncated {
		fmt.Println(cli.RenderWarnings([]string{
			"Payoff exceeds the projection cap; balance is not shrinking fast enough at this budget",
		}, 0))
	}

	return nil
}

func payoffTable(sched simulate.PayoffSchedule) cli.Table {
	rows := [][]string{
		{"Starting debt", cli.FormatMoney(sched.TotalDebt)},
		{"Months to payoff", cli.FormatMonths(sched.MonthsToPayoff)},
		{"Interest paid", cli.FormatMoney(sched.TotalInterestPaid)},
	}

	// Per-debt clear dates, in the order they happen
	rows = append(rows, []string{"---"})
	seen := map[string]bool{}
	for i, m := range sched.Months {
		for _, p := range m.Payments {
			if p.RemainingBalance == 0 && !seen[p.Name] {
				seen[p.Name] = true
				rows = append(rows, []string{p.Name + " cleared", cli.FormatMonths(i + 1)})
			}
		}
	}

	return cli.Table{Headers: []string{"Metric", "Value"}, Rows: rows}
}

func renderPayoffComparison(debts []model.Liability, budget float64) error {
	cmp, err := simulate.ComparePayoff(debts, budget)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("AVALANCHE vs SNOWBALL"))
	fmt.Println()

	rows := [][]string{
		{"Months", cli.FormatMonths(cmp.Avalanche.MonthsToPayoff), cli.FormatMonths(cmp.Snowball.MonthsToPayoff)},
		{"Interest", cli.FormatMoney(cmp.Avalanche.TotalInterestPaid), cli.FormatMoney(cmp.Snowball.TotalInterestPaid)},
		{"---"},
		{"Avalanche saves", cli.FormatMoney(cmp.InterestSaved), fmt.Sprintf("%d months", cmp.MonthsSaved)},
	}
	fmt.Println(cli.RenderTable(cli.Table{
		Headers: []string{"", "Avalanche", "Snowball"},
		Rows:    rows,
	}))

	return nil
}
