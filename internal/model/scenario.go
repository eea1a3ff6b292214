package model

import "time"

// Liability is a named debt with its own APR and required minimum payment.
// The simulator works on internal copies; a caller's slice is never mutated.
type Liability struct {
	Name       string
	Balance    float64
	AprPercent float64
	MinPayment float64
}

// OpeningBalances is the balance sheet at month zero of a projection.
type OpeningBalances struct {
	Cash        float64
	Brokerage   float64
	Retirement  float64
	HSA         *float64
	OtherAssets *float64
	Liabilities []Liability
}

// PlanMonth holds all monetary flows for one month of a plan.
// A plan shorter than the simulation horizon repeats its last entry.
type PlanMonth struct {
	IncomeNet float64
	Needs     float64
	Wants     float64

	EF               float64
	HighAprDebt      float64
	Match401k        float64
	RetirementTaxAdv float64
	Brokerage        float64
}

// Savings returns the total of all savings-directed flows in the month.
func (p PlanMonth) Savings() float64 {
	return p.EF + p.HighAprDebt + p.Match401k + p.RetirementTaxAdv + p.Brokerage
}

// Goals holds optional targets the simulator reports milestones against.
type Goals struct {
	EFTarget float64
}

// Assumptions are the simulator's tunable annual rates, in percent.
// Zero-value fields fall back to the documented defaults.
type Assumptions struct {
	CashYieldPercent        *float64
	NominalReturnPercent    *float64
	TaxDragBrokeragePercent *float64
}

// ScenarioInput fully specifies one projection run.
type ScenarioInput struct {
	StartDate     time.Time
	HorizonMonths int
	Opening       OpeningBalances
	Plan          []PlanMonth
	Goals         *Goals
	Assumptions   Assumptions
}

// KPIs are milestone figures extracted after a full simulation run.
// Pointer fields are nil when the milestone was never reached or the
// figure is degenerate.
type KPIs struct {
	EFReachedMonth  *int
	DebtFreeMonth   *int
	NetWorthAtYears map[int]float64
	CAGRNominal     *float64
}

// ScenarioSeries is the simulator's output: parallel arrays indexed by
// month, plus advisory warnings and milestone KPIs.
type ScenarioSeries struct {
	Labels      []string
	Cash        []float64
	Brokerage   []float64
	Retirement  []float64
	HSA         []float64 // nil when no HSA balance was supplied
	Liabilities []float64
	Assets      []float64
	NetWorth    []float64

	Warnings []string
	KPIs     KPIs
}
