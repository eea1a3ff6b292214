package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fincast/internal/allocate"
	"github.com/theirongolddev/fincast/internal/cli"
	"github.com/theirongolddev/fincast/internal/explain"
	"github.com/theirongolddev/fincast/internal/model"
	"github.com/theirongolddev/fincast/internal/scenario"
)

var (
	flagMatchRate  float64
	flagEssentials float64
	flagEFMonths   float64
	flagVsPlan     bool
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Show the reasoning behind the savings allocation",
	RunE:  runExplainCmd,
}

func init() {
	explainCmd.Flags().Float64Var(&flagMatchRate, "match-rate", 0.5, "Employer match per contributed dollar")
	explainCmd.Flags().Float64Var(&flagEssentials, "essentials", 0, "Essential monthly expenses (default: plan needs)")
	explainCmd.Flags().Float64Var(&flagEFMonths, "ef-months", 0, "Emergency fund goal in months of essentials")
	explainCmd.Flags().BoolVar(&flagVsPlan, "vs-plan", false, "Show deltas against the scenario's current plan")
	rootCmd.AddCommand(explainCmd)
}

func runExplainCmd(_ *cobra.Command, _ []string) error {
	sc, err := loadScenario()
	if err != nil {
		return err
	}

	in := sc.SavingsInputs()
	alloc, err := allocate.Allocate(in)
	if err != nil {
		return err
	}

	essentials := flagEssentials
	if essentials == 0 && len(sc.Plan) > 0 {
		essentials = sc.Plan[0].Needs
	}

	opts := explain.Options{
		EmployerMatchRate:        flagMatchRate,
		EssentialMonthlyExpenses: essentials,
		EFTargetMonths:           flagEFMonths,
	}
	if flagVsPlan && len(sc.Plan) > 0 {
		opts.PriorPlan = planAsAllocation(sc.Plan[0])
	}

	ex := explain.Build(in, alloc, opts)

	fmt.Println()
	fmt.Println(cli.RenderTitle("ALLOCATION EXPLAINED"))
	fmt.Println()
	fmt.Println(cli.RenderTable(stepsTable(ex.Steps)))

	if len(ex.Deltas) > 0 {
		fmt.Println(cli.RenderTable(deltasTable(ex.Deltas)))
	}

	if ex.MatchGap.Missed > 0 {
		fmt.Printf("  Match left on the table: %s this period (employer loss %s)\n\n",
			cli.FormatMoney(ex.MatchGap.Missed), cli.FormatMoney(ex.MatchGap.EmployerLoss))
	}
	if ex.EFMonths.TargetMonths > 0 {
		fmt.Printf("  Emergency fund: %.1f of %.1f months covered after this allocation\n\n",
			ex.EFMonths.CoveredAfter, ex.EFMonths.TargetMonths)
	}

	fmt.Println(cli.RenderNotes(ex.Guardrails))
	fmt.Println(cli.RenderNotes(ex.Notes))

	return nil
}

func stepsTable(steps []explain.Step) cli.Table {
	rows := make([][]string, 0, len(steps))
	for _, s := range steps {
		rows = append(rows, []string{s.Title, cli.FormatMoney(s.Amount), s.Detail})
	}
	return cli.Table{Headers: []string{"Step", "Amount", "Why"}, Rows: rows}
}

func deltasTable(deltas []explain.DeltaRow) cli.Table {
	rows := make([][]string, 0, len(deltas))
	for _, d := range deltas {
		rows = append(rows, []string{
			d.Label,
			cli.FormatMoney(d.Prior),
			cli.FormatMoney(d.Proposed),
			cli.FormatDelta(d.Proposed, d.Prior),
		})
	}
	return cli.Table{Title: "vs current plan", Headers: []string{"Destination", "Now", "Proposed", "Delta"}, Rows: rows}
}

// planAsAllocation reinterprets a plan row's savings flows as a prior
// allocation for delta comparison.
func planAsAllocation(p scenario.PlanRow) *model.SavingsAllocation {
	return &model.SavingsAllocation{
		EF:               p.EF,
		HighAprDebt:      p.HighAprDebt,
		Match401k:        p.Match401k,
		RetirementTaxAdv: p.RetirementTaxAdv,
		Brokerage:        p.Brokerage,
	}
}
