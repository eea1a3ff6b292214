package simulate

import (
	"math"
	"testing"

	"github.com/theirongolddev/fincast/internal/model"
)

func testDebts() []model.Liability {
	return []model.Liability{
		{Name: "card", Balance: 3000, AprPercent: 22, MinPayment: 60},
		{Name: "auto", Balance: 8000, AprPercent: 7, MinPayment: 200},
	}
}

func TestPayoffPlanAvalancheOrdering(t *testing.T) {
	sched, err := PayoffPlan(testDebts(), 800, StrategyAvalanche)
	if err != nil {
		t.Fatalf("PayoffPlan: %v", err)
	}
	if sched.MonthsToPayoff == 0 || sched.Truncated {
		t.Fatalf("schedule did not complete: months=%d truncated=%v", sched.MonthsToPayoff, sched.Truncated)
	}

	// Month 0 surplus goes to the 22% card on top of its minimum.
	first := sched.Months[0]
	var cardPaid, autoPaid float64
	for _, p := range first.Payments {
		switch p.Name {
		case "card":
			cardPaid = p.Payment
		case "auto":
			autoPaid = p.Payment
		}
	}
	if autoPaid != 200 {
		t.Fatalf("auto payment = %.2f, want its 200 minimum", autoPaid)
	}
	if cardPaid <= 60 {
		t.Fatalf("card payment = %.2f, want minimum plus surplus", cardPaid)
	}
	if math.Abs(first.TotalPaid-800) > 0.01 {
		t.Fatalf("TotalPaid = %.2f, want the full 800 budget", first.TotalPaid)
	}
}

func TestPayoffPlanSnowballOrdering(t *testing.T) {
	debts := []model.Liability{
		{Name: "big", Balance: 9000, AprPercent: 25, MinPayment: 100},
		{Name: "small", Balance: 400, AprPercent: 5, MinPayment: 20},
	}

	sched, err := PayoffPlan(debts, 600, StrategySnowball)
	if err != nil {
		t.Fatalf("PayoffPlan: %v", err)
	}
	// Snowball attacks the small balance first despite its lower APR.
	for _, p := range sched.Months[0].Payments {
		if p.Name == "small" && p.Payment <= 20 {
			t.Fatalf("small payment = %.2f, want minimum plus surplus", p.Payment)
		}
	}
}

func TestComparePayoffAvalancheWinsOnInterest(t *testing.T) {
	cmp, err := ComparePayoff(testDebts(), 700)
	if err != nil {
		t.Fatalf("ComparePayoff: %v", err)
	}
	if cmp.Avalanche.TotalInterestPaid > cmp.Snowball.TotalInterestPaid {
		t.Fatalf("avalanche interest %.2f > snowball %.2f",
			cmp.Avalanche.TotalInterestPaid, cmp.Snowball.TotalInterestPaid)
	}
	if cmp.InterestSaved < 0 {
		t.Fatalf("InterestSaved = %.2f, want >= 0", cmp.InterestSaved)
	}
}

func TestPayoffPlanInsufficientBudget(t *testing.T) {
	_, err := PayoffPlan(testDebts(), 100, StrategyAvalanche)
	if err == nil {
		t.Fatal("expected error when budget misses minimum payments")
	}
}

func TestPayoffPlanTruncatesAtCap(t *testing.T) {
	// Budget barely above the interest-only threshold on a huge balance.
	debts := []model.Liability{
		{Name: "mortgage-sized", Balance: 500_000, AprPercent: 24, MinPayment: 100},
	}

	sched, err := PayoffPlan(debts, 10_000, StrategyAvalanche)
	if err != nil {
		t.Fatalf("PayoffPlan: %v", err)
	}
	if !sched.Truncated {
		t.Fatal("expected truncation at the safety cap")
	}
	if sched.MonthsToPayoff != maxPayoffMonths {
		t.Fatalf("MonthsToPayoff = %d, want %d", sched.MonthsToPayoff, maxPayoffMonths)
	}
}
