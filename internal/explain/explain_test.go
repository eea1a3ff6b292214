package explain

import (
	"math"
	"strings"
	"testing"

	"github.com/theirongolddev/fincast/internal/allocate"
	"github.com/theirongolddev/fincast/internal/model"
)

func allocFor(t *testing.T, in model.SavingsInputs) model.SavingsAllocation {
	t.Helper()
	out, err := allocate.Allocate(in)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	return out
}

func TestBuildMatchGap(t *testing.T) {
	in := model.SavingsInputs{
		SavingsBudget:       100,
		EFTarget:            10_000, // takes 40
		MatchNeedThisPeriod: 200,    // only 60 left
		Liquidity:           model.LevelMedium,
		RetirementFocus:     model.LevelMedium,
	}
	alloc := allocFor(t, in)

	ex := Build(in, alloc, Options{EmployerMatchRate: 0.5})

	if ex.MatchGap.Captured != 60 {
		t.Fatalf("Captured = %.2f, want 60", ex.MatchGap.Captured)
	}
	if ex.MatchGap.Missed != 140 {
		t.Fatalf("Missed = %.2f, want 140", ex.MatchGap.Missed)
	}
	if ex.MatchGap.EmployerLoss != 70 {
		t.Fatalf("EmployerLoss = %.2f, want 70 (50%% of the miss)", ex.MatchGap.EmployerLoss)
	}
}

func TestBuildMatchFullyCaptured(t *testing.T) {
	in := model.SavingsInputs{
		SavingsBudget:       1000,
		MatchNeedThisPeriod: 200,
		Liquidity:           model.LevelMedium,
		RetirementFocus:     model.LevelMedium,
	}
	alloc := allocFor(t, in)

	ex := Build(in, alloc, Options{EmployerMatchRate: 1.0})
	if ex.MatchGap.Missed != 0 || ex.MatchGap.EmployerLoss != 0 {
		t.Fatalf("match gap = %+v, want no miss", ex.MatchGap)
	}
}

func TestBuildEFMonths(t *testing.T) {
	in := model.SavingsInputs{
		SavingsBudget:   1000,
		EFTarget:        9000,
		EFBalance:       3000,
		Liquidity:       model.LevelMedium,
		RetirementFocus: model.LevelMedium,
	}
	alloc := allocFor(t, in) // EF gets its full 400 cap

	ex := Build(in, alloc, Options{EssentialMonthlyExpenses: 3000})

	if math.Abs(ex.EFMonths.CoveredBefore-1.0) > 1e-9 {
		t.Fatalf("CoveredBefore = %.4f, want 1.0", ex.EFMonths.CoveredBefore)
	}
	if math.Abs(ex.EFMonths.CoveredAfter-(3400.0/3000)) > 1e-9 {
		t.Fatalf("CoveredAfter = %.4f, want %.4f", ex.EFMonths.CoveredAfter, 3400.0/3000)
	}
	// Derived from the dollar target when no months figure is given.
	if math.Abs(ex.EFMonths.TargetMonths-3.0) > 1e-9 {
		t.Fatalf("TargetMonths = %.4f, want 3.0", ex.EFMonths.TargetMonths)
	}
}

func TestBuildDeltasAgainstPriorPlan(t *testing.T) {
	in := model.SavingsInputs{
		SavingsBudget:   1000,
		Liquidity:       model.LevelMedium,
		RetirementFocus: model.LevelMedium,
		IRARoomThisYear: 10_000,
	}
	alloc := allocFor(t, in)

	prior := model.SavingsAllocation{Brokerage: 1000}
	ex := Build(in, alloc, Options{PriorPlan: &prior})

	if len(ex.Deltas) != 6 {
		t.Fatalf("len(Deltas) = %d, want 6", len(ex.Deltas))
	}
	for _, row := range ex.Deltas {
		if math.Abs(row.Delta-(row.Proposed-row.Prior)) > 1e-9 {
			t.Fatalf("row %q delta %.2f != proposed %.2f - prior %.2f",
				row.Label, row.Delta, row.Proposed, row.Prior)
		}
	}
}

func TestBuildNoDeltasWithoutPrior(t *testing.T) {
	in := model.SavingsInputs{
		SavingsBudget:   500,
		Liquidity:       model.LevelLow,
		RetirementFocus: model.LevelLow,
	}
	ex := Build(in, allocFor(t, in), Options{})
	if ex.Deltas != nil {
		t.Fatalf("Deltas = %v, want nil without a prior plan", ex.Deltas)
	}
}

func TestBuildStepsCoverWaterfallOrder(t *testing.T) {
	in := model.SavingsInputs{
		SavingsBudget:          2000,
		EFTarget:               5000,
		EFBalance:              1000,
		HighAprDebts:           []model.DebtBalance{{Balance: 600, AprPercent: 24}},
		MatchNeedThisPeriod:    150,
		HSAEligible:            true,
		PrioritizeHSA:          true,
		HSARoomThisYear:        200,
		Liquidity:              model.LevelMedium,
		RetirementFocus:        model.LevelHigh,
		IRARoomThisYear:        5000,
	}
	alloc := allocFor(t, in)
	ex := Build(in, alloc, Options{})

	wantTitles := []string{
		"Emergency fund", "High-APR debt", "Employer match", "HSA",
		"Tax-advantaged retirement", "Taxable brokerage",
	}
	if len(ex.Steps) != len(wantTitles) {
		t.Fatalf("len(Steps) = %d, want %d", len(ex.Steps), len(wantTitles))
	}
	stepTotal := 0.0
	for i, s := range ex.Steps {
		if s.Title != wantTitles[i] {
			t.Fatalf("step %d title = %q, want %q", i, s.Title, wantTitles[i])
		}
		stepTotal += s.Amount
	}
	// The breakdown must account for every allocated dollar.
	if math.Abs(stepTotal-in.SavingsBudget) > 0.01 {
		t.Fatalf("steps total %.2f, want %.2f", stepTotal, in.SavingsBudget)
	}
}

func TestBuildGuardrailsMentionIDR(t *testing.T) {
	in := model.SavingsInputs{
		SavingsBudget:   300,
		OnIDR:           true,
		Liquidity:       model.LevelHigh,
		RetirementFocus: model.LevelLow,
	}
	ex := Build(in, allocFor(t, in), Options{})

	found := false
	for _, g := range ex.Guardrails {
		if strings.Contains(g, "Income-driven repayment") {
			found = true
		}
	}
	if !found {
		t.Fatalf("guardrails = %v, want an IDR entry", ex.Guardrails)
	}
}

func TestBuildDoesNotAlterAllocation(t *testing.T) {
	in := model.SavingsInputs{
		SavingsBudget:   1200,
		EFTarget:        2000,
		Liquidity:       model.LevelMedium,
		RetirementFocus: model.LevelMedium,
	}
	alloc := allocFor(t, in)
	before := alloc

	_ = Build(in, alloc, Options{EmployerMatchRate: 0.5, EssentialMonthlyExpenses: 2500})

	if alloc.EF != before.EF || alloc.Brokerage != before.Brokerage ||
		alloc.RetirementTaxAdv != before.RetirementTaxAdv {
		t.Fatal("Build mutated the allocation")
	}
}
