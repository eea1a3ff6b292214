package simulate

import (
	"math"
	"sort"

	"github.com/theirongolddev/fincast/internal/model"
)

// PayoffStrategy selects the ordering of the extra-payment waterfall in a
// standalone payoff projection.
type PayoffStrategy string

// Payoff strategies.
const (
	StrategyAvalanche PayoffStrategy = "avalanche" // highest APR first
	StrategySnowball  PayoffStrategy = "snowball"  // smallest balance first
)

// maxPayoffMonths caps the payoff loop so a budget that barely covers
// interest cannot spin forever.
const maxPayoffMonths = 600

// DebtPayment is one liability's payment within a payoff month.
type DebtPayment struct {
	Name             string
	Payment          float64
	RemainingBalance float64
}

// PayoffMonth is one month of a payoff schedule.
type PayoffMonth struct {
	Month     int
	Payments  []DebtPayment
	TotalPaid float64
}

// PayoffSchedule is a full debt payoff projection under one strategy.
type PayoffSchedule struct {
	Strategy          PayoffStrategy
	TotalDebt         float64
	TotalInterestPaid float64
	MonthsToPayoff    int
	Truncated         bool // hit maxPayoffMonths before paying off
	Months            []PayoffMonth
}

// PayoffComparison holds both strategies' schedules plus the delta.
type PayoffComparison struct {
	Avalanche     PayoffSchedule
	Snowball      PayoffSchedule
	InterestSaved float64 // avalanche vs snowball, >= 0
	MonthsSaved   int
}

// PayoffPlan projects paying the given liabilities down to zero with a
// fixed monthly budget: minimum payments on every open debt, then the
// surplus to the strategy's first open debt.
func PayoffPlan(liabilities []model.Liability, monthlyBudget float64, strategy PayoffStrategy) (PayoffSchedule, error) {
	if len(liabilities) == 0 {
		return PayoffSchedule{}, model.Errf("liabilities", "must have at least one entry")
	}
	if monthlyBudget <= 0 {
		return PayoffSchedule{}, model.Errf("monthlyBudget", "must be > 0, got %.2f", monthlyBudget)
	}
	if strategy != StrategyAvalanche && strategy != StrategySnowball {
		return PayoffSchedule{}, model.Errf("strategy", "must be avalanche or snowball, got %q", string(strategy))
	}

	totalMin := 0.0
	totalDebt := 0.0
	for _, l := range liabilities {
		if l.Balance < 0 {
			return PayoffSchedule{}, model.Errf("liabilities", "%q balance must be >= 0", l.Name)
		}
		totalMin += l.MinPayment
		totalDebt += l.Balance
	}
	if totalMin > monthlyBudget {
		return PayoffSchedule{}, model.Errf("monthlyBudget",
			"$%.2f does not cover minimum payments of $%.2f", monthlyBudget, totalMin)
	}

	debts := make([]model.Liability, len(liabilities))
	copy(debts, liabilities)
	if strategy == StrategyAvalanche {
		sort.SliceStable(debts, func(i, j int) bool {
			return debts[i].AprPercent > debts[j].AprPercent
		})
	} else {
		sort.SliceStable(debts, func(i, j int) bool {
			return debts[i].Balance < debts[j].Balance
		})
	}

	sched := PayoffSchedule{Strategy: strategy, TotalDebt: totalDebt}

	for month := 0; ; month++ {
		if remainingDebt(debts) <= debtFreeTolerance {
			break
		}
		if month >= maxPayoffMonths {
			sched.Truncated = true
			break
		}

		pm := PayoffMonth{Month: month}
		available := monthlyBudget

		// Interest accrues on each opening balance before payments.
		for i := range debts {
			if debts[i].Balance <= 0 {
				continue
			}
			interest := debts[i].Balance * monthlyRate(debts[i].AprPercent)
			debts[i].Balance += interest
			sched.TotalInterestPaid += interest
		}

		// Minimum payments across all open debts.
		paid := make([]float64, len(debts))
		for i := range debts {
			if debts[i].Balance <= 0 {
				continue
			}
			pay := min(debts[i].MinPayment, min(available, debts[i].Balance))
			debts[i].Balance -= pay
			available -= pay
			paid[i] += pay
		}

		// Surplus flows down the strategy ordering.
		for i := range debts {
			if available <= 0 {
				break
			}
			if debts[i].Balance <= 0 {
				continue
			}
			pay := min(available, debts[i].Balance)
			debts[i].Balance -= pay
			available -= pay
			paid[i] += pay
		}

		for i := range debts {
			if paid[i] <= 0 {
				continue
			}
			pm.Payments = append(pm.Payments, DebtPayment{
				Name:             debts[i].Name,
				Payment:          round2(paid[i]),
				RemainingBalance: round2(debts[i].Balance),
			})
			pm.TotalPaid += paid[i]
		}
		pm.TotalPaid = round2(pm.TotalPaid)
		sched.Months = append(sched.Months, pm)
	}

	sched.MonthsToPayoff = len(sched.Months)
	sched.TotalInterestPaid = round2(sched.TotalInterestPaid)
	return sched, nil
}

// ComparePayoff runs both strategies over the same inputs.
func ComparePayoff(liabilities []model.Liability, monthlyBudget float64) (PayoffComparison, error) {
	avalanche, err := PayoffPlan(liabilities, monthlyBudget, StrategyAvalanche)
	if err != nil {
		return PayoffComparison{}, err
	}
	snowball, err := PayoffPlan(liabilities, monthlyBudget, StrategySnowball)
	if err != nil {
		return PayoffComparison{}, err
	}

	return PayoffComparison{
		Avalanche:     avalanche,
		Snowball:      snowball,
		InterestSaved: round2(math.Max(0, snowball.TotalInterestPaid-avalanche.TotalInterestPaid)),
		MonthsSaved:   snowball.MonthsToPayoff - avalanche.MonthsToPayoff,
	}, nil
}

func remainingDebt(debts []model.Liability) float64 {
	total := 0.0
	for _, d := range debts {
		total += d.Balance
	}
	return total
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
