// Package tui provides the interactive Bubble Tea dashboard for fincast.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fincast/internal/allocate"
	"github.com/theirongolddev/fincast/internal/model"
	"github.com/theirongolddev/fincast/internal/scenario"
	"github.com/theirongolddev/fincast/internal/simulate"
	"github.com/theirongolddev/fincast/internal/tui/components"
	"github.com/theirongolddev/fincast/internal/tui/theme"
)

// DataLoadedMsg is sent when the scenario has been loaded and both engines
// have run.
type DataLoadedMsg struct {
	Scenario scenario.Scenario
	Alloc    model.SavingsAllocation
	Series   model.ScenarioSeries
	Payoff   *simulate.PayoffComparison
	Err      error
}

// App is the root Bubble Tea model.
type App struct {
	scenarioPath string

	// Data
	sc      scenario.Scenario
	alloc   model.SavingsAllocation
	series  model.ScenarioSeries
	payoff  *simulate.PayoffComparison
	loaded  bool
	loadErr error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	spinner   spinner.Model

	// Per-tab state
	settings settingsState
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 160

	minContentHeight = 5
)

// NewApp creates a new TUI app model.
func NewApp(scenarioPath string) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		scenarioPath: scenarioPath,
		spinner:      sp,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, loadScenarioCmd(a.scenarioPath))
}

// loadScenarioCmd loads the scenario file and runs the allocator, the
// simulator, and the payoff comparison off the UI goroutine.
func loadScenarioCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return DataLoadedMsg{Err: fmt.Errorf("no scenario file: pass --scenario or run `fincast setup`")}
		}

		sc, err := scenario.Load(path)
		if err != nil {
			return DataLoadedMsg{Err: err}
		}

		alloc, err := allocate.Allocate(sc.SavingsInputs())
		if err != nil {
			return DataLoadedMsg{Err: err}
		}

		in, err := sc.ScenarioInput(time.Now())
		if err != nil {
			return DataLoadedMsg{Err: err}
		}
		series, err := simulate.Simulate(in)
		if err != nil {
			return DataLoadedMsg{Err: err}
		}

		msg := DataLoadedMsg{Scenario: sc, Alloc: alloc, Series: series}

		if len(in.Opening.Liabilities) > 0 {
			budget := 0.0
			for _, l := range in.Opening.Liabilities {
				budget += l.MinPayment
			}
			if len(in.Plan) > 0 {
				budget += in.Plan[0].HighAprDebt
			}
			if cmp, err := simulate.ComparePayoff(in.Opening.Liabilities, budget); err == nil {
				msg.Payoff = &cmp
			}
		}

		return msg
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		if a.loaded || a.loadErr != nil {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case DataLoadedMsg:
		if msg.Err != nil {
			a.loadErr = msg.Err
			return a, nil
		}
		a.sc = msg.Scenario
		a.alloc = msg.Alloc
		a.series = msg.Series
		a.payoff = msg.Payoff
		a.loaded = true
		a.loadErr = nil
		return a, nil

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if a.loadErr != nil {
			switch key {
			case "q":
				return a, tea.Quit
			case "r":
				a.loadErr = nil
				return a, tea.Batch(a.spinner.Tick, loadScenarioCmd(a.scenarioPath))
			}
			return a, nil
		}

		if !a.loaded {
			return a, nil
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// Settings tab owns j/k/enter
		if a.activeTab == tabSettings {
			if handled, m, cmd := a.updateSettings(key); handled {
				return m, cmd
			}
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "r":
			a.loaded = false
			return a, tea.Batch(a.spinner.Tick, loadScenarioCmd(a.scenarioPath))
		case "tab", "right", "l":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		case "shift+tab", "left", "h":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		}

		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
			}
		}
		return a, nil
	}

	return a, nil
}

func (a App) contentWidth() int {
	if a.width > maxContentWidth {
		return maxContentWidth
	}
	return a.width
}

func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.loadErr != nil {
		return a.viewError()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  fincast needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewError() string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.Red)
	hint := lipgloss.NewStyle().Foreground(t.TextMuted)

	msg := "\n" + style.Render(fmt.Sprintf("  %s", a.loadErr)) + "\n\n" +
		hint.Render("  [r] retry   [q] quit") + "\n"
	return padHeight(msg, a.height)
}

func (a App) viewLoading() string {
	t := theme.Active

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3).
		Render(a.spinner.View() + " Running projection...")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	rows := []struct{ key, desc string }{
		{"o / a / d / x", "switch tabs"},
		{"tab, h/l", "cycle tabs"},
		{"j / k", "move selection (settings)"},
		{"enter", "apply selection"},
		{"r", "reload scenario file"},
		{"?", "toggle help"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true).Render("  Keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-14s", r.key)),
			descStyle.Render(r.desc)))
	}

	return padHeight(b.String(), a.height)
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.sc.Name)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabAllocation:
		content = a.renderAllocationTab(cw)
	case tabDebts:
		content = a.renderDebtsTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// Tab indexes matching components.Tabs.
const (
	tabOverview = iota
	tabAllocation
	tabDebts
	tabSettings
)

// tabAtX maps a click x-position on the tab bar to a tab index.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space
	for i, tab := range components.Tabs {
		w := len(tab.Name)
		if i != a.activeTab && tab.KeyPos < 0 {
			w += 3 // trailing "[x]"
		} else if i != a.activeTab {
			w += 2 // bracket chars around the shortcut letter
		}
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 2
	}
	return -1
}

// ─── Layout helpers ─────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Count(s, "\n") + 1
	if lines >= h {
		return s
	}
	return s + strings.Repeat("\n", h-lines)
}

// fillLinesWithBackground pads every line to the given width with the
// background color, so card gaps don't show the terminal's default.
func fillLinesWithBackground(s string, width int, bg lipgloss.Color) string {
	fill := lipgloss.NewStyle().Background(bg)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lw := lipgloss.Width(line)
		if lw < width {
			lines[i] = line + fill.Render(strings.Repeat(" ", width-lw))
		}
	}
	return strings.Join(lines, "\n")
}
