package scenario

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/fincast/internal/model"
)

const sampleTOML = `
name = "test"
start_date = "2026-03"
horizon_years = 10

[snapshot]
savings_budget = 1500.0
ef_target = 12000.0
ef_balance = 3000.0
match_need = 250.0
income_single = 95000.0
liquidity = "medium"
retirement_focus = "high"
ira_room = 4000.0
k401_room = 12000.0

[[snapshot.high_apr_debt]]
balance = 800.0
apr_percent = 26.0

[balances]
cash = 5000.0
brokerage = 20000.0
retirement = 40000.0

[[balances.liability]]
name = "card"
balance = 4000.0
apr_percent = 22.0
min_payment = 80.0

[[plan]]
months = 12
income_net = 6000.0
needs = 3200.0
wants = 900.0
ef = 300.0
high_apr_debt = 400.0
match_401k = 250.0
retirement_tax_adv = 400.0
brokerage = 300.0

[[plan]]
income_net = 6200.0
needs = 3200.0
wants = 900.0
brokerage = 2100.0

[assumptions]
nominal_return_percent = 6.5

[goals]
ef_target = 12000.0
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.toml")
	if err := os.WriteFile(path, []byte(sampleTOML), 0o600); err != nil {
		t.Fatalf("writing sample: %v", err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := Load(writeSample(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sc.Name != "test" {
		t.Fatalf("Name = %q, want test", sc.Name)
	}
	if len(sc.Snapshot.HighAprDebts) != 1 || sc.Snapshot.HighAprDebts[0].AprPercent != 26 {
		t.Fatalf("high_apr_debt not parsed: %+v", sc.Snapshot.HighAprDebts)
	}
	if len(sc.Balances.Liabilities) != 1 || sc.Balances.Liabilities[0].Name != "card" {
		t.Fatalf("liability not parsed: %+v", sc.Balances.Liabilities)
	}
}

func TestSavingsInputsConversion(t *testing.T) {
	sc, err := Load(writeSample(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	in := sc.SavingsInputs()
	if in.SavingsBudget != 1500 {
		t.Fatalf("SavingsBudget = %.2f, want 1500", in.SavingsBudget)
	}
	if in.Liquidity != model.LevelMedium || in.RetirementFocus != model.LevelHigh {
		t.Fatalf("levels = %s/%s, want medium/high", in.Liquidity, in.RetirementFocus)
	}
	if len(in.HighAprDebts) != 1 || in.HighAprDebts[0].Balance != 800 {
		t.Fatalf("debts = %+v", in.HighAprDebts)
	}
}

func TestScenarioInputExpandsPlanRows(t *testing.T) {
	sc, err := Load(writeSample(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	in, err := sc.ScenarioInput(time.Now())
	if err != nil {
		t.Fatalf("ScenarioInput: %v", err)
	}
	if in.HorizonMonths != 120 {
		t.Fatalf("HorizonMonths = %d, want 120", in.HorizonMonths)
	}
	// 12 repeated months plus one single-month row.
	if len(in.Plan) != 13 {
		t.Fatalf("len(Plan) = %d, want 13", len(in.Plan))
	}
	if in.Plan[11].IncomeNet != 6000 || in.Plan[12].IncomeNet != 6200 {
		t.Fatalf("plan expansion wrong: [11]=%.0f [12]=%.0f", in.Plan[11].IncomeNet, in.Plan[12].IncomeNet)
	}
	if in.StartDate.Format("2006-01") != "2026-03" {
		t.Fatalf("StartDate = %s, want 2026-03", in.StartDate.Format("2006-01"))
	}
	if in.Goals == nil || in.Goals.EFTarget != 12_000 {
		t.Fatalf("Goals = %+v, want EF target 12000", in.Goals)
	}
	if in.Assumptions.NominalReturnPercent == nil || *in.Assumptions.NominalReturnPercent != 6.5 {
		t.Fatal("nominal return override not carried through")
	}
	if in.Assumptions.CashYieldPercent != nil {
		t.Fatal("unset cash yield should stay nil for the engine default")
	}
}

func TestStartDateDefaultsToNextMonth(t *testing.T) {
	sc := Starter()
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	in, err := sc.ScenarioInput(now)
	if err != nil {
		t.Fatalf("ScenarioInput: %v", err)
	}
	if in.StartDate.Format("2006-01") != "2026-09" {
		t.Fatalf("StartDate = %s, want 2026-09", in.StartDate.Format("2006-01"))
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")
	orig := Starter()
	orig.Name = "roundtrip"
	orig.Balances.Liabilities = []LiabilityRow{
		{Name: "loan", Balance: 900, AprPercent: 11.5, MinPayment: 45},
	}

	if err := Save(path, orig); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "roundtrip" {
		t.Fatalf("Name = %q, want roundtrip", got.Name)
	}
	if len(got.Balances.Liabilities) != 1 || got.Balances.Liabilities[0].AprPercent != 11.5 {
		t.Fatalf("liabilities = %+v", got.Balances.Liabilities)
	}
	if got.Assumptions.NominalReturnPercent == nil || *got.Assumptions.NominalReturnPercent != 7.0 {
		t.Fatal("assumptions lost in round trip")
	}
}
