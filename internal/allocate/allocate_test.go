package allocate

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/theirongolddev/fincast/internal/model"
)

func baseInputs() model.SavingsInputs {
	return model.SavingsInputs{
		SavingsBudget:   1000,
		Liquidity:       model.LevelMedium,
		RetirementFocus: model.LevelMedium,
		IncomeSingle:    120_000,
	}
}

func assertConserved(t *testing.T, in model.SavingsInputs, out model.SavingsAllocation) {
	t.Helper()
	if diff := math.Abs(out.Total() - in.SavingsBudget); diff > 0.01 {
		t.Fatalf("allocation total = %.4f, want %.2f (diff %.4f)", out.Total(), in.SavingsBudget, diff)
	}
}

func hasNote(notes []string, substr string) bool {
	for _, n := range notes {
		if strings.Contains(n, substr) {
			return true
		}
	}
	return false
}

func TestAllocateZeroBudget(t *testing.T) {
	in := baseInputs()
	in.SavingsBudget = 0

	out, err := Allocate(in)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if out.Total() != 0 {
		t.Fatalf("total = %.2f, want 0", out.Total())
	}
	if len(out.Notes) != 0 {
		t.Fatalf("notes = %v, want none", out.Notes)
	}
}

func TestAllocateEFCapAt40Percent(t *testing.T) {
	in := baseInputs()
	in.EFTarget = 10_000
	in.EFBalance = 0

	out, err := Allocate(in)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if out.EF != 400 {
		t.Fatalf("EF = %.2f, want 400 (40%% of budget)", out.EF)
	}
	if !hasNote(out.Notes, "partially filled") {
		t.Fatalf("expected partial-fill note, got %v", out.Notes)
	}
	assertConserved(t, in, out)
}

func TestAllocateEFAlreadyMet(t *testing.T) {
	in := baseInputs()
	in.EFTarget = 5000
	in.EFBalance = 6000

	out, err := Allocate(in)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if out.EF != 0 {
		t.Fatalf("EF = %.2f, want 0", out.EF)
	}
	if hasNote(out.Notes, "Emergency fund") {
		t.Fatalf("EF step should be silent when target met, got %v", out.Notes)
	}
	assertConserved(t, in, out)
}

func TestAllocateDebtCapIsOfRemainder(t *testing.T) {
	in := baseInputs()
	in.EFTarget = 10_000 // EF takes its full 40% = 400
	in.HighAprDebts = []model.DebtBalance{{Balance: 5000, AprPercent: 22}}

	out, err := Allocate(in)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	// Remaining after EF is 600; debt cap is 40% of that.
	if out.HighAprDebt != 240 {
		t.Fatalf("HighAprDebt = %.2f, want 240", out.HighAprDebt)
	}
	if !hasNote(out.Notes, "partially paid") {
		t.Fatalf("expected partial-paydown note, got %v", out.Notes)
	}
	assertConserved(t, in, out)
}

func TestAllocateSmallDebtPaidInFull(t *testing.T) {
	in := baseInputs()
	in.HighAprDebts = []model.DebtBalance{{Balance: 150, AprPercent: 18}}

	out, err := Allocate(in)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if out.HighAprDebt != 150 {
		t.Fatalf("HighAprDebt = %.2f, want 150", out.HighAprDebt)
	}
	if hasNote(out.Notes, "partially paid") {
		t.Fatalf("full paydown should not note partial, got %v", out.Notes)
	}
	assertConserved(t, in, out)
}

func TestAllocateMatchShortfallNoted(t *testing.T) {
	in := baseInputs()
	in.SavingsBudget = 100
	in.EFTarget = 10_000 // consumes 40
	in.HighAprDebts = []model.DebtBalance{{Balance: 9999, AprPercent: 24}} // consumes 24
	in.MatchNeedThisPeriod = 500

	out, err := Allocate(in)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if out.Match401k != 36 {
		t.Fatalf("Match401k = %.2f, want 36 (everything left)", out.Match401k)
	}
	if !hasNote(out.Notes, "Could not fully capture") {
		t.Fatalf("expected match shortfall note, got %v", out.Notes)
	}
	assertConserved(t, in, out)
}

func TestAcctTypeThresholds(t *testing.T) {
	cases := []struct {
		name   string
		income float64
		onIDR  bool
		want   model.AcctType
	}{
		{"just under cutoff", 189_999, false, model.AcctRoth},
		{"at cutoff", 190_000, false, model.AcctTraditional401},
		{"IDR override wins", 150_000, true, model.AcctTraditional401},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := baseInputs()
			in.IncomeSingle = tc.income
			in.OnIDR = tc.onIDR

			out, err := Allocate(in)
			if err != nil {
				t.Fatalf("Allocate: %v", err)
			}
			if out.Routing.AcctType != tc.want {
				t.Fatalf("AcctType = %s, want %s", out.Routing.AcctType, tc.want)
			}
			if tc.onIDR && !hasNote(out.Notes, "IDR") {
				t.Fatalf("expected IDR note, got %v", out.Notes)
			}
		})
	}
}

func TestSplitRoomSpilloverToBrokerage(t *testing.T) {
	// Low liquidity + high focus => 90/10 split. Budget 1000 gives a
	// retirement share of 900 against 200 IRA + 300 401k room.
	in := baseInputs()
	in.Liquidity = model.LevelLow
	in.RetirementFocus = model.LevelHigh
	in.IRARoomThisYear = 200
	in.K401RoomThisYear = 300

	out, err := Allocate(in)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if out.RetirementTaxAdv != 500 {
		t.Fatalf("RetirementTaxAdv = %.2f, want 500", out.RetirementTaxAdv)
	}
	// 100 direct brokerage share + 400 spill.
	if out.Brokerage != 500 {
		t.Fatalf("Brokerage = %.2f, want 500", out.Brokerage)
	}
	if !hasNote(out.Notes, "excess to brokerage") {
		t.Fatalf("expected spillover note, got %v", out.Notes)
	}
	assertConserved(t, in, out)
}

func TestSplitAllRoomExhausted(t *testing.T) {
	in := baseInputs()
	in.Liquidity = model.LevelLow
	in.RetirementFocus = model.LevelHigh
	// No room anywhere: the whole retirement share spills.
	out, err := Allocate(in)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if out.RetirementTaxAdv != 0 {
		t.Fatalf("RetirementTaxAdv = %.2f, want 0", out.RetirementTaxAdv)
	}
	if out.Brokerage != 1000 {
		t.Fatalf("Brokerage = %.2f, want 1000", out.Brokerage)
	}
	assertConserved(t, in, out)
}

func TestMatchConsumes401kRoom(t *testing.T) {
	in := baseInputs()
	in.Liquidity = model.LevelLow
	in.RetirementFocus = model.LevelHigh // 90% retirement share
	in.MatchNeedThisPeriod = 100
	in.K401RoomThisYear = 150

	out, err := Allocate(in)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if out.Match401k != 100 {
		t.Fatalf("Match401k = %.2f, want 100", out.Match401k)
	}
	// Remaining 900 splits 90/10: retirement share 810 against 50 of
	// leftover 401k room.
	if out.RetirementTaxAdv != 50 {
		t.Fatalf("RetirementTaxAdv = %.2f, want 50", out.RetirementTaxAdv)
	}
	assertConserved(t, in, out)
}

func TestHSAPrioritized(t *testing.T) {
	in := baseInputs()
	in.HSAEligible = true
	in.PrioritizeHSA = true
	in.HSARoomThisYear = 400
	in.HSACurrentContribution = 100

	out, err := Allocate(in)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if out.HSA != 300 {
		t.Fatalf("HSA = %.2f, want 300 (remaining room)", out.HSA)
	}
	if !hasNote(out.Notes, "HSA") {
		t.Fatalf("expected HSA note, got %v", out.Notes)
	}
	assertConserved(t, in, out)
}

func TestHSASkippedWithoutFlag(t *testing.T) {
	in := baseInputs()
	in.HSAEligible = true
	in.HSARoomThisYear = 400

	out, err := Allocate(in)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if out.HSA != 0 {
		t.Fatalf("HSA = %.2f, want 0 without prioritizeHSA", out.HSA)
	}
}

func TestSplitMatrixMonotonicity(t *testing.T) {
	levels := []model.Level{model.LevelLow, model.LevelMedium, model.LevelHigh}

	for _, focus := range levels {
		prev := -1
		// Walking liquidity high -> low must never decrease the
		// retirement weight.
		for i := len(levels) - 1; i >= 0; i-- {
			w := lookupSplit(levels[i], focus)
			if w.RetirePct+w.BrokerPct != 100 {
				t.Fatalf("weights for (%s,%s) sum to %d", levels[i], focus, w.RetirePct+w.BrokerPct)
			}
			if w.RetirePct < prev {
				t.Fatalf("retirement weight not monotone in liquidity at (%s,%s)", levels[i], focus)
			}
			prev = w.RetirePct
		}
	}

	for _, liq := range levels {
		prev := -1
		// Walking focus low -> high must never decrease it either.
		for _, focus := range levels {
			w := lookupSplit(liq, focus)
			if w.RetirePct < prev {
				t.Fatalf("retirement weight not monotone in focus at (%s,%s)", liq, focus)
			}
			prev = w.RetirePct
		}
	}
}

func TestConservationAcrossScenarios(t *testing.T) {
	scenarios := []model.SavingsInputs{
		{SavingsBudget: 1, Liquidity: model.LevelLow, RetirementFocus: model.LevelLow},
		{SavingsBudget: 333.33, EFTarget: 500, Liquidity: model.LevelMedium, RetirementFocus: model.LevelHigh, IRARoomThisYear: 57.19},
		{SavingsBudget: 2500, EFTarget: 12_000, EFBalance: 3000,
			HighAprDebts:        []model.DebtBalance{{Balance: 800, AprPercent: 26}, {Balance: 4200, AprPercent: 14}},
			MatchNeedThisPeriod: 250, IncomeSingle: 95_000,
			Liquidity: model.LevelHigh, RetirementFocus: model.LevelHigh,
			IRARoomThisYear: 1000, K401RoomThisYear: 10_000},
		{SavingsBudget: 777.77, MatchNeedThisPeriod: 777.77,
			Liquidity: model.LevelMedium, RetirementFocus: model.LevelMedium},
	}

	for i, in := range scenarios {
		out, err := Allocate(in)
		if err != nil {
			t.Fatalf("scenario %d: %v", i, err)
		}
		assertConserved(t, in, out)
	}
}

func assertNonNegative(t *testing.T, out model.SavingsAllocation) {
	t.Helper()
	fields := map[string]float64{
		"EF":               out.EF,
		"HighAprDebt":      out.HighAprDebt,
		"Match401k":        out.Match401k,
		"HSA":              out.HSA,
		"RetirementTaxAdv": out.RetirementTaxAdv,
		"Brokerage":        out.Brokerage,
	}
	for name, v := range fields {
		if v < 0 {
			t.Fatalf("%s = %.4f, want >= 0", name, v)
		}
	}
}

func TestRoundingNeverDrivesBrokerageNegative(t *testing.T) {
	// Budget $1000.07 splits into ef=400.028, debt=240.0168 and
	// match=360.0252; all three round up, overshooting the budget by a
	// cent. The deficit must come out of a funded bucket, not brokerage.
	in := baseInputs()
	in.SavingsBudget = 1000.07
	in.EFTarget = 50_000
	in.HighAprDebts = []model.DebtBalance{{Balance: 100_000, AprPercent: 24}}
	in.MatchNeedThisPeriod = 2000

	out, err := Allocate(in)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	assertNonNegative(t, out)
	assertConserved(t, in, out)
}

func TestRoundingNonNegativeAcrossCentBudgets(t *testing.T) {
	// Sweep cent-granular budgets through the same overshoot-prone shape;
	// $0.07 is the smallest budget where all three rounded buckets climb.
	in := baseInputs()
	in.EFTarget = 50_000
	in.HighAprDebts = []model.DebtBalance{{Balance: 100_000, AprPercent: 24}}
	in.MatchNeedThisPeriod = 2000

	for cents := 1; cents <= 500; cents++ {
		in.SavingsBudget = float64(cents) / 100

		out, err := Allocate(in)
		if err != nil {
			t.Fatalf("budget %.2f: %v", in.SavingsBudget, err)
		}
		assertNonNegative(t, out)
		assertConserved(t, in, out)
	}
}

func TestZeroBudgetResolvesSplit(t *testing.T) {
	in := baseInputs()
	in.SavingsBudget = 0
	in.Liquidity = model.LevelLow
	in.RetirementFocus = model.LevelHigh

	out, err := Allocate(in)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if out.Routing.SplitRetirePct != 90 || out.Routing.SplitBrokerPct != 10 {
		t.Fatalf("split = %.0f/%.0f, want 90/10",
			out.Routing.SplitRetirePct, out.Routing.SplitBrokerPct)
	}
}

func TestValidationFailsFast(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*model.SavingsInputs)
		field string
	}{
		{"negative budget", func(in *model.SavingsInputs) { in.SavingsBudget = -1 }, "savingsBudget"},
		{"negative EF target", func(in *model.SavingsInputs) { in.EFTarget = -5 }, "efTarget"},
		{"negative debt balance", func(in *model.SavingsInputs) {
			in.HighAprDebts = []model.DebtBalance{{Balance: -10, AprPercent: 20}}
		}, "highAprDebts"},
		{"bad liquidity", func(in *model.SavingsInputs) { in.Liquidity = "extreme" }, "liquidity"},
		{"bad focus", func(in *model.SavingsInputs) { in.RetirementFocus = "" }, "retirementFocus"},
		{"negative IRA room", func(in *model.SavingsInputs) { in.IRARoomThisYear = -1 }, "iraRoomThisYear"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := baseInputs()
			tc.mut(&in)

			_, err := Allocate(in)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			var fe *model.FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("error type = %T, want *model.FieldError", err)
			}
			if fe.Field != tc.field {
				t.Fatalf("field = %q, want %q", fe.Field, tc.field)
			}
		})
	}
}
