package store

import (
	"path/filepath"
	"testing"

	"github.com/theirongolddev/fincast/internal/model"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestScenarioRoundTrip(t *testing.T) {
	s := openTest(t)

	body := []byte("name = \"base\"\n")
	if err := s.SaveScenario("base", body); err != nil {
		t.Fatalf("SaveScenario: %v", err)
	}

	got, err := s.GetScenario("base")
	if err != nil {
		t.Fatalf("GetScenario: %v", err)
	}
	if string(got) != string(body) {
		t.Fatalf("body = %q, want %q", got, body)
	}

	list, err := s.ListScenarios()
	if err != nil {
		t.Fatalf("ListScenarios: %v", err)
	}
	if len(list) != 1 || list[0].Name != "base" {
		t.Fatalf("list = %+v, want one entry named base", list)
	}
}

func TestGetScenarioMissing(t *testing.T) {
	s := openTest(t)
	if _, err := s.GetScenario("nope"); err == nil {
		t.Fatal("expected error for missing scenario")
	}
}

func TestRunHistory(t *testing.T) {
	s := openTest(t)

	debtFree := 14
	cagr := 0.062
	series := model.ScenarioSeries{
		NetWorth: []float64{1000, 1100, 1250},
		Warnings: []string{"2026-02: Cash shortfall of $50.00, cash floored at zero"},
		KPIs: model.KPIs{
			DebtFreeMonth: &debtFree,
			CAGRNominal:   &cagr,
		},
	}

	if err := s.SaveRun("base", series); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	runs, err := s.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("len(runs) = %d, want 1", len(runs))
	}

	r := runs[0]
	if r.Scenario != "base" || r.HorizonMonths != 3 {
		t.Fatalf("run = %+v", r)
	}
	if r.FinalNetWorth != 1250 {
		t.Fatalf("FinalNetWorth = %.2f, want 1250", r.FinalNetWorth)
	}
	if r.EFReachedMonth != nil {
		t.Fatal("EFReachedMonth should round-trip as nil")
	}
	if r.DebtFreeMonth == nil || *r.DebtFreeMonth != 14 {
		t.Fatalf("DebtFreeMonth = %v, want 14", r.DebtFreeMonth)
	}
	if r.CAGRNominal == nil || *r.CAGRNominal != 0.062 {
		t.Fatalf("CAGRNominal = %v, want 0.062", r.CAGRNominal)
	}
	if r.WarningCount != 1 {
		t.Fatalf("WarningCount = %d, want 1", r.WarningCount)
	}
}
