// Package simulate projects a household balance sheet forward month by
// month: compounding balances, amortizing debt, and reporting milestone KPIs.
package simulate

import (
	"fmt"
	"sort"

	"github.com/theirongolddev/fincast/internal/model"
)

// MonthLayout is the label format for series months.
const MonthLayout = "2006-01"

// Default annual rates, in percent, used when a scenario supplies none.
const (
	DefaultCashYieldPercent        = 2.0
	DefaultNominalReturnPercent    = 7.0
	DefaultTaxDragBrokeragePercent = 0.5
)

// debtFreeTolerance treats sub-cent residual balances as paid off.
const debtFreeTolerance = 0.01

// Simulate runs the monthly forward model over in.HorizonMonths ticks.
// The caller's opening balances are never mutated; each month works on
// fresh copies. Advisory conditions (cash shortfalls) become warnings,
// never errors.
func Simulate(in model.ScenarioInput) (model.ScenarioSeries, error) {
	if err := validateScenario(in); err != nil {
		return model.ScenarioSeries{}, err
	}

	cashRate := monthlyRate(orDefault(in.Assumptions.CashYieldPercent, DefaultCashYieldPercent))
	nominal := orDefault(in.Assumptions.NominalReturnPercent, DefaultNominalReturnPercent)
	taxDrag := orDefault(in.Assumptions.TaxDragBrokeragePercent, DefaultTaxDragBrokeragePercent)
	brokerRate := monthlyRate(nominal - taxDrag)
	growthRate := monthlyRate(nominal)

	cash := in.Opening.Cash
	brokerage := in.Opening.Brokerage
	retirement := in.Opening.Retirement
	hasHSA := in.Opening.HSA != nil
	hsa := 0.0
	if hasHSA {
		hsa = *in.Opening.HSA
	}
	otherAssets := 0.0
	if in.Opening.OtherAssets != nil {
		otherAssets = *in.Opening.OtherAssets
	}

	// Working copy ordered by APR descending: the extra-payment waterfall
	// walks it front to back.
	debts := make([]model.Liability, len(in.Opening.Liabilities))
	copy(debts, in.Opening.Liabilities)
	sort.SliceStable(debts, func(i, j int) bool {
		return debts[i].AprPercent > debts[j].AprPercent
	})

	n := in.HorizonMonths
	out := model.ScenarioSeries{
		Labels:      make([]string, n),
		Cash:        make([]float64, n),
		Brokerage:   make([]float64, n),
		Retirement:  make([]float64, n),
		Liabilities: make([]float64, n),
		Assets:      make([]float64, n),
		NetWorth:    make([]float64, n),
	}
	if hasHSA {
		out.HSA = make([]float64, n)
	}

	cumEF := 0.0

	for m := 0; m < n; m++ {
		entry := in.Plan[min(m, len(in.Plan)-1)]
		label := in.StartDate.AddDate(0, m, 0).Format(MonthLayout)

		// (a) Growth on the month's opening balances. Liability interest
		// accrues before any payment lands.
		cash *= 1 + cashRate
		brokerage *= 1 + brokerRate
		retirement *= 1 + growthRate
		if hasHSA {
			hsa *= 1 + growthRate
		}
		for i := range debts {
			debts[i].Balance *= 1 + monthlyRate(debts[i].AprPercent)
		}

		// (b) Plan inflows. Income lands in cash; contributions move out
		// to their destinations. The EF flow stays in cash and is only
		// tracked for the milestone.
		cash += entry.IncomeNet
		retirement += entry.Match401k + entry.RetirementTaxAdv
		brokerage += entry.Brokerage
		cash -= entry.Match401k + entry.RetirementTaxAdv + entry.Brokerage
		cumEF += entry.EF

		// (c) Minimum payments, then the extra paydown waterfall:
		// highest APR first, clamped at zero, remainder spilling to the
		// next liability. Anything left over stays in cash.
		for i := range debts {
			pay := min(debts[i].MinPayment, debts[i].Balance)
			debts[i].Balance -= pay
			cash -= pay
		}
		extra := entry.HighAprDebt
		for i := range debts {
			if extra <= 0 {
				break
			}
			pay := min(extra, debts[i].Balance)
			debts[i].Balance -= pay
			cash -= pay
			extra -= pay
		}

		// (d) Living expenses come out of cash last.
		cash -= entry.Needs + entry.Wants

		if cash < 0 {
			out.Warnings = append(out.Warnings,
				fmt.Sprintf("%s: Cash shortfall of $%.2f, cash floored at zero", label, -cash))
			cash = 0
		}

		totalDebt := 0.0
		for i := range debts {
			totalDebt += debts[i].Balance
		}

		assets := cash + brokerage + retirement + hsa + otherAssets

		out.Labels[m] = label
		out.Cash[m] = cash
		out.Brokerage[m] = brokerage
		out.Retirement[m] = retirement
		if hasHSA {
			out.HSA[m] = hsa
		}
		out.Liabilities[m] = totalDebt
		out.Assets[m] = assets
		out.NetWorth[m] = assets - totalDebt

		if out.KPIs.EFReachedMonth == nil && in.Goals != nil &&
			in.Goals.EFTarget > 0 && cumEF >= in.Goals.EFTarget {
			month := m
			out.KPIs.EFReachedMonth = &month
		}
		if out.KPIs.DebtFreeMonth == nil && len(debts) > 0 && totalDebt <= debtFreeTolerance {
			month := m
			out.KPIs.DebtFreeMonth = &month
		}
	}

	out.KPIs.NetWorthAtYears = netWorthAtYears(out.NetWorth)
	out.KPIs.CAGRNominal = cagr(out.NetWorth)

	return out, nil
}

// monthlyRate converts an annual percentage to a monthly growth fraction.
func monthlyRate(annualPercent float64) float64 {
	return annualPercent / 100 / 12
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func validateScenario(in model.ScenarioInput) error {
	if in.HorizonMonths <= 0 {
		return model.Errf("horizonMonths", "must be >= 1, got %d", in.HorizonMonths)
	}
	if in.StartDate.IsZero() {
		return model.Errf("startDate", "must be set")
	}
	if len(in.Plan) == 0 {
		return model.Errf("monthlyPlan", "must have at least one entry")
	}
	if in.Opening.Cash < 0 {
		return model.Errf("openingBalances.cash", "must be >= 0, got %.2f", in.Opening.Cash)
	}
	if in.Opening.Brokerage < 0 {
		return model.Errf("openingBalances.brokerage", "must be >= 0, got %.2f", in.Opening.Brokerage)
	}
	if in.Opening.Retirement < 0 {
		return model.Errf("openingBalances.retirement", "must be >= 0, got %.2f", in.Opening.Retirement)
	}
	if in.Opening.HSA != nil && *in.Opening.HSA < 0 {
		return model.Errf("openingBalances.hsa", "must be >= 0, got %.2f", *in.Opening.HSA)
	}
	for i, l := range in.Opening.Liabilities {
		if l.Balance < 0 {
			return model.Errf("openingBalances.liabilities", "%q (entry %d) balance must be >= 0", l.Name, i)
		}
		if l.AprPercent < 0 {
			return model.Errf("openingBalances.liabilities", "%q (entry %d) APR must be >= 0", l.Name, i)
		}
		if l.MinPayment < 0 {
			return model.Errf("openingBalances.liabilities", "%q (entry %d) minimum payment must be >= 0", l.Name, i)
		}
	}
	for i, p := range in.Plan {
		for name, v := range map[string]float64{
			"incomeNet": p.IncomeNet, "needs": p.Needs, "wants": p.Wants,
			"ef": p.EF, "highAprDebt": p.HighAprDebt, "match401k": p.Match401k,
			"retirementTaxAdv": p.RetirementTaxAdv, "brokerage": p.Brokerage,
		} {
			if v < 0 {
				return model.Errf("monthlyPlan", "entry %d: %s must be >= 0, got %.2f", i, name, v)
			}
		}
	}
	return nil
}
