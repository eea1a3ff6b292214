// Package explain derives a human-auditable breakdown of an allocation:
// decision steps, deltas against a prior plan, and guardrail notes. It is a
// read-only view over the allocator's inputs and outputs and performs no
// allocation math of its own.
package explain

import (
	"fmt"

	"github.com/theirongolddev/fincast/internal/allocate"
	"github.com/theirongolddev/fincast/internal/model"
)

// Options supplies context the core allocator inputs don't carry.
type Options struct {
	// EmployerMatchRate is the employer's match per contributed dollar
	// (0.5 means 50 cents on the dollar). Used for the match-gap math.
	EmployerMatchRate float64

	// EssentialMonthlyExpenses converts EF dollars into months of cover.
	EssentialMonthlyExpenses float64

	// EFTargetMonths is the declared EF goal in months, for the summary
	// line. Zero means derive it from the dollar target.
	EFTargetMonths float64

	// PriorPlan, when set, produces per-destination delta rows.
	PriorPlan *model.SavingsAllocation
}

// Step is one line of the decision breakdown, in waterfall order.
type Step struct {
	Title  string
	Amount float64
	Detail string
}

// DeltaRow compares one destination against the prior plan.
type DeltaRow struct {
	Label    string
	Prior    float64
	Proposed float64
	Delta    float64
}

// MatchGap quantifies employer match left on the table this period.
type MatchGap struct {
	NeedThisPeriod float64
	Captured       float64
	Missed         float64
	// EmployerLoss is the employer money forfeited: Missed scaled by the
	// match rate.
	EmployerLoss float64
}

// EFMonths expresses emergency-fund progress in months of essential
// expenses. Zero-valued when no essential-expense figure was supplied.
type EFMonths struct {
	TargetMonths  float64
	CoveredBefore float64
	CoveredAfter  float64
}

// Explanation is the presentation-ready view of one allocation.
type Explanation struct {
	Steps      []Step
	Deltas     []DeltaRow
	Guardrails []string
	MatchGap   MatchGap
	EFMonths   EFMonths
	Notes      []string // the allocator's own rationale, carried through
}

// Build assembles the explanation for the given inputs and the allocation
// they produced. It never alters the allocation.
func Build(in model.SavingsInputs, alloc model.SavingsAllocation, opts Options) Explanation {
	ex := Explanation{
		Notes:    alloc.Notes,
		MatchGap: matchGap(in, alloc, opts),
		EFMonths: efMonths(in, alloc, opts),
	}
	ex.Steps = buildSteps(in, alloc)
	ex.Guardrails = buildGuardrails(in, alloc)
	if opts.PriorPlan != nil {
		ex.Deltas = buildDeltas(*opts.PriorPlan, alloc)
	}
	return ex
}

func buildSteps(in model.SavingsInputs, alloc model.SavingsAllocation) []Step {
	gap := in.EFTarget - in.EFBalance
	if gap < 0 {
		gap = 0
	}

	steps := []Step{
		{
			Title:  "Emergency fund",
			Amount: alloc.EF,
			Detail: fmt.Sprintf("gap of $%.2f before this month, $%.2f after", gap, gap-alloc.EF),
		},
		{
			Title:  "High-APR debt",
			Amount: alloc.HighAprDebt,
			Detail: debtDetail(in),
		},
		{
			Title:  "Employer match",
			Amount: alloc.Match401k,
			Detail: fmt.Sprintf("$%.2f needed to capture the full match", in.MatchNeedThisPeriod),
		},
	}

	if alloc.HSA > 0 {
		steps = append(steps, Step{
			Title:  "HSA",
			Amount: alloc.HSA,
			Detail: "triple tax-advantaged, funded ahead of taxable investing",
		})
	}

	steps = append(steps,
		Step{
			Title:  "Tax-advantaged retirement",
			Amount: alloc.RetirementTaxAdv,
			Detail: fmt.Sprintf("%s, %0.f%% retirement share of the remainder",
				acctLabel(alloc.Routing.AcctType), alloc.Routing.SplitRetirePct),
		},
		Step{
			Title:  "Taxable brokerage",
			Amount: alloc.Brokerage,
			Detail: fmt.Sprintf("%0.f%% direct share plus any retirement spillover", alloc.Routing.SplitBrokerPct),
		},
	)
	return steps
}

func debtDetail(in model.SavingsInputs) string {
	if len(in.HighAprDebts) == 0 {
		return "no high-APR balances"
	}
	total := 0.0
	highestApr := 0.0
	for _, d := range in.HighAprDebts {
		total += d.Balance
		if d.AprPercent > highestApr {
			highestApr = d.AprPercent
		}
	}
	return fmt.Sprintf("$%.2f outstanding across %d balances, up to %.1f%% APR",
		total, len(in.HighAprDebts), highestApr)
}

func buildGuardrails(in model.SavingsInputs, alloc model.SavingsAllocation) []string {
	var rails []string

	if alloc.EF > 0 {
		rails = append(rails, fmt.Sprintf(
			"Emergency fund contributions are capped at %.0f%% of the budget so debt and match are never starved",
			allocate.EFCapShare*100))
	}
	if alloc.HighAprDebt > 0 {
		rails = append(rails, fmt.Sprintf(
			"High-APR paydown is capped at %.0f%% of what remains after the emergency fund",
			allocate.DebtCapShare*100))
	}
	if in.OnIDR {
		rails = append(rails,
			"Income-driven repayment active: pre-tax contributions lower AGI and the loan payment with it")
	} else {
		rails = append(rails, fmt.Sprintf(
			"Roth vs Traditional flips at $%s of single-filer income",
			formatThousands(allocate.RothIncomeCutoff)))
	}
	return rails
}

func buildDeltas(prior, proposed model.SavingsAllocation) []DeltaRow {
	rows := []DeltaRow{
		{Label: "Emergency fund", Prior: prior.EF, Proposed: proposed.EF},
		{Label: "High-APR debt", Prior: prior.HighAprDebt, Proposed: proposed.HighAprDebt},
		{Label: "Employer match", Prior: prior.Match401k, Proposed: proposed.Match401k},
		{Label: "HSA", Prior: prior.HSA, Proposed: proposed.HSA},
		{Label: "Retirement", Prior: prior.RetirementTaxAdv, Proposed: proposed.RetirementTaxAdv},
		{Label: "Brokerage", Prior: prior.Brokerage, Proposed: proposed.Brokerage},
	}
	for i := range rows {
		rows[i].Delta = rows[i].Proposed - rows[i].Prior
	}
	return rows
}

func matchGap(in model.SavingsInputs, alloc model.SavingsAllocation, opts Options) MatchGap {
	gap := MatchGap{
		NeedThisPeriod: in.MatchNeedThisPeriod,
		Captured:       alloc.Match401k,
		Missed:         in.MatchNeedThisPeriod - alloc.Match401k,
	}
	if gap.Missed < 0 {
		gap.Missed = 0
	}
	gap.EmployerLoss = gap.Missed * opts.EmployerMatchRate
	return gap
}

func efMonths(in model.SavingsInputs, alloc model.SavingsAllocation, opts Options) EFMonths {
	if opts.EssentialMonthlyExpenses <= 0 {
		return EFMonths{TargetMonths: opts.EFTargetMonths}
	}

	m := EFMonths{
		TargetMonths:  opts.EFTargetMonths,
		CoveredBefore: in.EFBalance / opts.EssentialMonthlyExpenses,
		CoveredAfter:  (in.EFBalance + alloc.EF) / opts.EssentialMonthlyExpenses,
	}
	if m.TargetMonths == 0 {
		m.TargetMonths = in.EFTarget / opts.EssentialMonthlyExpenses
	}
	return m
}

func acctLabel(t model.AcctType) string {
	if t == model.AcctRoth {
		return "Roth"
	}
	return "Traditional 401k"
}

func formatThousands(n int) string {
	if n >= 1000 {
		return fmt.Sprintf("%d,%03d", n/1000, n%1000)
	}
	return fmt.Sprintf("%d", n)
}
