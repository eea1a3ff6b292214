// Package scenario defines the TOML scenario file: a financial snapshot,
// opening balances, a monthly plan, and rate assumptions, convertible into
// the engine input types.
package scenario

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/fincast/internal/model"
	"github.com/theirongolddev/fincast/internal/simulate"
)

// DefaultHorizonYears is used when a scenario does not set a horizon.
const DefaultHorizonYears = 30

// Scenario is the on-disk scenario document.
type Scenario struct {
	Name         string `toml:"name"`
	StartDate    string `toml:"start_date"` // "2006-01"; empty means next month
	HorizonYears int    `toml:"horizon_years,omitempty"`

	Snapshot    Snapshot    `toml:"snapshot"`
	Balances    Balances    `toml:"balances"`
	Plan        []PlanRow   `toml:"plan"`
	Assumptions Assumptions `toml:"assumptions"`
	Goals       *Goals      `toml:"goals,omitempty"`
}

// Snapshot holds the allocator's monthly inputs.
type Snapshot struct {
	SavingsBudget  float64   `toml:"savings_budget"`
	EFTarget       float64   `toml:"ef_target"`
	EFBalance      float64   `toml:"ef_balance"`
	HighAprDebts   []DebtRow `toml:"high_apr_debt,omitempty"`
	MatchNeed      float64   `toml:"match_need"`
	IncomeSingle   float64   `toml:"income_single"`
	OnIDR          bool      `toml:"on_idr"`
	Liquidity      string    `toml:"liquidity"`
	RetireFocus    string    `toml:"retirement_focus"`
	IRARoom        float64   `toml:"ira_room"`
	K401Room       float64   `toml:"k401_room"`
	HSAEligible    bool      `toml:"hsa_eligible"`
	HSARoom        float64   `toml:"hsa_room"`
	HSAContributed float64   `toml:"hsa_contributed"`
	PrioritizeHSA  bool      `toml:"prioritize_hsa"`
}

// DebtRow is one pooled high-APR balance in the snapshot.
type DebtRow struct {
	Balance    float64 `toml:"balance"`
	AprPercent float64 `toml:"apr_percent"`
}

// Balances is the opening balance sheet.
type Balances struct {
	Cash        float64        `toml:"cash"`
	Brokerage   float64        `toml:"brokerage"`
	Retirement  float64        `toml:"retirement"`
	HSA         *float64       `toml:"hsa,omitempty"`
	OtherAssets *float64       `toml:"other_assets,omitempty"`
	Liabilities []LiabilityRow `toml:"liability,omitempty"`
}

// LiabilityRow is one named debt with its servicing terms.
type LiabilityRow struct {
	Name       string  `toml:"name"`
	Balance    float64 `toml:"balance"`
	AprPercent float64 `toml:"apr_percent"`
	MinPayment float64 `toml:"min_payment"`
}

// PlanRow is one block of identical plan months; Months is the repetition
// count (default 1).
type PlanRow struct {
	Months int `toml:"months,omitempty"`

	IncomeNet float64 `toml:"income_net"`
	Needs     float64 `toml:"needs"`
	Wants     float64 `toml:"wants"`

	EF               float64 `toml:"ef"`
	HighAprDebt      float64 `toml:"high_apr_debt"`
	Match401k        float64 `toml:"match_401k"`
	RetirementTaxAdv float64 `toml:"retirement_tax_adv"`
	Brokerage        float64 `toml:"brokerage"`
}

// Assumptions are the optional annual rate overrides, in percent.
type Assumptions struct {
	CashYieldPercent        *float64 `toml:"cash_yield_percent,omitempty"`
	NominalReturnPercent    *float64 `toml:"nominal_return_percent,omitempty"`
	TaxDragBrokeragePercent *float64 `toml:"tax_drag_brokerage_percent,omitempty"`
}

// Goals holds milestone targets for the simulator's KPI extraction.
type Goals struct {
	EFTarget float64 `toml:"ef_target"`
}

// Load reads and parses a scenario file.
func Load(path string) (Scenario, error) {
	var sc Scenario
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user's own flag
	if err != nil {
		return sc, fmt.Errorf("reading scenario: %w", err)
	}
	if err := toml.Unmarshal(data, &sc); err != nil {
		return sc, fmt.Errorf("parsing scenario: %w", err)
	}
	return sc, nil
}

// Save writes the scenario to disk.
func Save(path string, sc Scenario) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // user-chosen path
	if err != nil {
		return fmt.Errorf("creating scenario file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(sc); err != nil {
		return fmt.Errorf("encoding scenario: %w", err)
	}
	return nil
}

// Marshal renders the scenario as TOML, for store persistence.
func Marshal(sc Scenario) ([]byte, error) {
	return toml.Marshal(sc)
}

// Unmarshal parses TOML scenario bytes, for store retrieval.
func Unmarshal(data []byte) (Scenario, error) {
	var sc Scenario
	if err := toml.Unmarshal(data, &sc); err != nil {
		return sc, fmt.Errorf("parsing scenario: %w", err)
	}
	return sc, nil
}

// SavingsInputs converts the snapshot into allocator inputs. Validation is
// the engine's job; this is pure shape translation.
func (sc Scenario) SavingsInputs() model.SavingsInputs {
	in := model.SavingsInputs{
		SavingsBudget:          sc.Snapshot.SavingsBudget,
		EFTarget:               sc.Snapshot.EFTarget,
		EFBalance:              sc.Snapshot.EFBalance,
		MatchNeedThisPeriod:    sc.Snapshot.MatchNeed,
		IncomeSingle:           sc.Snapshot.IncomeSingle,
		OnIDR:                  sc.Snapshot.OnIDR,
		Liquidity:              model.Level(sc.Snapshot.Liquidity),
		RetirementFocus:        model.Level(sc.Snapshot.RetireFocus),
		IRARoomThisYear:        sc.Snapshot.IRARoom,
		K401RoomThisYear:       sc.Snapshot.K401Room,
		HSAEligible:            sc.Snapshot.HSAEligible,
		HSARoomThisYear:        sc.Snapshot.HSARoom,
		HSACurrentContribution: sc.Snapshot.HSAContributed,
		PrioritizeHSA:          sc.Snapshot.PrioritizeHSA,
	}
	for _, d := range sc.Snapshot.HighAprDebts {
		in.HighAprDebts = append(in.HighAprDebts, model.DebtBalance{
			Balance:    d.Balance,
			AprPercent: d.AprPercent,
		})
	}
	return in
}

// ScenarioInput converts the document into simulator input, expanding plan
// row repetition counts and applying the horizon and start-date defaults.
func (sc Scenario) ScenarioInput(now time.Time) (model.ScenarioInput, error) {
	startDate, err := sc.startDate(now)
	if err != nil {
		return model.ScenarioInput{}, err
	}

	horizonYears := sc.HorizonYears
	if horizonYears == 0 {
		horizonYears = DefaultHorizonYears
	}

	in := model.ScenarioInput{
		StartDate:     startDate,
		HorizonMonths: horizonYears * 12,
		Opening: model.OpeningBalances{
			Cash:        sc.Balances.Cash,
			Brokerage:   sc.Balances.Brokerage,
			Retirement:  sc.Balances.Retirement,
			HSA:         sc.Balances.HSA,
			OtherAssets: sc.Balances.OtherAssets,
		},
		Assumptions: model.Assumptions{
			CashYieldPercent:        sc.Assumptions.CashYieldPercent,
			NominalReturnPercent:    sc.Assumptions.NominalReturnPercent,
			TaxDragBrokeragePercent: sc.Assumptions.TaxDragBrokeragePercent,
		},
	}

	for _, l := range sc.Balances.Liabilities {
		in.Opening.Liabilities = append(in.Opening.Liabilities, model.Liability{
			Name:       l.Name,
			Balance:    l.Balance,
			AprPercent: l.AprPercent,
			MinPayment: l.MinPayment,
		})
	}

	for i, row := range sc.Plan {
		months := row.Months
		if months == 0 {
			months = 1
		}
		if months < 0 {
			return model.ScenarioInput{}, model.Errf("plan", "row %d: months must be >= 0, got %d", i, row.Months)
		}
		entry := model.PlanMonth{
			IncomeNet:        row.IncomeNet,
			Needs:            row.Needs,
			Wants:            row.Wants,
			EF:               row.EF,
			HighAprDebt:      row.HighAprDebt,
			Match401k:        row.Match401k,
			RetirementTaxAdv: row.RetirementTaxAdv,
			Brokerage:        row.Brokerage,
		}
		for m := 0; m < months; m++ {
			in.Plan = append(in.Plan, entry)
		}
	}

	if sc.Goals != nil {
		in.Goals = &model.Goals{EFTarget: sc.Goals.EFTarget}
	}

	return in, nil
}

// startDate resolves the configured start month, defaulting to the month
// after now so projections begin with the next full month.
func (sc Scenario) startDate(now time.Time) (time.Time, error) {
	if sc.StartDate == "" {
		next := now.AddDate(0, 1, 0)
		return time.Date(next.Year(), next.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(simulate.MonthLayout, sc.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing start_date %q (want YYYY-MM): %w", sc.StartDate, err)
	}
	return d, nil
}

// Starter returns the template scenario the setup wizard begins from.
func Starter() Scenario {
	nominal := 7.0
	cash := 2.0
	drag := 0.5
	return Scenario{
		Name:         "base",
		HorizonYears: DefaultHorizonYears,
		Snapshot: Snapshot{
			SavingsBudget: 1000,
			Liquidity:     string(model.LevelMedium),
			RetireFocus:   string(model.LevelMedium),
		},
		Plan: []PlanRow{{
			IncomeNet: 5000,
			Needs:     3000,
			Wants:     1000,
			EF:        500,
			Brokerage: 500,
		}},
		Assumptions: Assumptions{
			CashYieldPercent:        &cash,
			NominalReturnPercent:    &nominal,
			TaxDragBrokeragePercent: &drag,
		},
	}
}
