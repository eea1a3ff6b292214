package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/fincast/internal/model"
)

func loadedApp() App {
	a := NewApp("test.toml")
	m, _ := a.Update(DataLoadedMsg{
		Series: model.ScenarioSeries{
			Labels:   []string{"2026-01", "2026-02"},
			NetWorth: []float64{100, 200},
		},
	})
	return m.(App)
}

func TestDataLoadedMarksLoaded(t *testing.T) {
	a := loadedApp()
	if !a.loaded {
		t.Fatal("app not loaded after DataLoadedMsg")
	}
	if a.loadErr != nil {
		t.Fatalf("unexpected load error: %v", a.loadErr)
	}
}

func TestDataLoadedError(t *testing.T) {
	a := NewApp("missing.toml")
	m, _ := a.Update(DataLoadedMsg{Err: errors.New("no such file")})
	a = m.(App)
	if a.loaded {
		t.Error("app should not be loaded on error")
	}
	if a.loadErr == nil {
		t.Error("expected loadErr to be set")
	}
}

func TestTabKeySwitching(t *testing.T) {
	a := loadedApp()

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	a = m.(App)
	if a.activeTab != tabDebts {
		t.Errorf("activeTab = %d after 'd', want %d", a.activeTab, tabDebts)
	}

	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	a = m.(App)
	if a.activeTab != tabOverview {
		t.Errorf("activeTab = %d after 'o', want %d", a.activeTab, tabOverview)
	}
}

func TestTabCycling(t *testing.T) {
	a := loadedApp()
	a.activeTab = tabSettings

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a = m.(App)
	if a.activeTab != tabOverview {
		t.Errorf("tab should wrap to overview, got %d", a.activeTab)
	}
}

func TestYearlySeriesSamplesDecember(t *testing.T) {
	series := model.ScenarioSeries{}
	for m := 0; m < 24; m++ {
		series.NetWorth = append(series.NetWorth, float64(m))
		if m < 12 {
			series.Labels = append(series.Labels, "2026-01")
		} else {
			series.Labels = append(series.Labels, "2027-01")
		}
	}

	values, labels := yearlySeries(series)
	if len(values) != 2 {
		t.Fatalf("got %d yearly points, want 2", len(values))
	}
	if values[0] != 11 || values[1] != 23 {
		t.Errorf("values = %v, want [11 23]", values)
	}
	if labels[0] != "2026" {
		t.Errorf("label = %q, want 2026", labels[0])
	}
}

func TestShortSeriesFallsBackToMonthly(t *testing.T) {
	series := model.ScenarioSeries{
		Labels:   []string{"2026-01", "2026-02"},
		NetWorth: []float64{10, 20},
	}
	values, _ := yearlySeries(series)
	if len(values) != 2 {
		t.Errorf("short series should pass through, got %d points", len(values))
	}
}
