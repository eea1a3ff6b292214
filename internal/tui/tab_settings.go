package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fincast/internal/config"
	"github.com/theirongolddev/fincast/internal/tui/components"
	"github.com/theirongolddev/fincast/internal/tui/theme"
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int // index into theme.All
	saved   bool
	saveErr error
}

// updateSettings handles settings-tab keys; unhandled keys fall through to
// the global bindings.
func (a App) updateSettings(key string) (bool, tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		if a.settings.cursor < len(theme.All)-1 {
			a.settings.cursor++
		}
		a.settings.saved = false
		return true, a, nil
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
		a.settings.saved = false
		return true, a, nil
	case "enter":
		chosen := theme.All[a.settings.cursor]
		theme.SetActive(chosen.Name)

		cfg, _ := config.Load()
		cfg.Appearance.Theme = chosen.Name
		a.settings.saveErr = config.Save(cfg)
		a.settings.saved = a.settings.saveErr == nil
		return true, a, nil
	}
	return false, a, nil
}

// renderSettingsTab shows the theme picker and file locations.
func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	greenStyle := lipgloss.NewStyle().Foreground(t.Green)
	redStyle := lipgloss.NewStyle().Foreground(t.Red)

	var picker strings.Builder
	for i, th := range theme.All {
		marker := "( )"
		if th.Name == t.Name {
			marker = "(o)"
		}
		line := fmt.Sprintf("%s %s", marker, th.Name)
		if i == a.settings.cursor {
			picker.WriteString(activeStyle.Render("> " + line))
		} else {
			picker.WriteString(mutedStyle.Render("  " + line))
		}
		picker.WriteString("\n")
	}
	picker.WriteString("\n")
	switch {
	case a.settings.saveErr != nil:
		picker.WriteString(redStyle.Render(fmt.Sprintf("Could not save: %s", a.settings.saveErr)))
	case a.settings.saved:
		picker.WriteString(greenStyle.Render("Saved."))
	default:
		picker.WriteString(mutedStyle.Render("j/k to select, Enter to apply"))
	}

	var files strings.Builder
	files.WriteString(mutedStyle.Render("Config    ") + valueStyle.Render(config.Path()))
	files.WriteString("\n")
	files.WriteString(mutedStyle.Render("Database  ") + valueStyle.Render(config.DataPath()))
	files.WriteString("\n")
	files.WriteString(mutedStyle.Render("Scenario  ") + valueStyle.Render(a.scenarioPath))

	half := cw / 2
	return components.CardRow([]string{
		components.ContentCard("Theme", picker.String(), half),
		components.ContentCard("Files", files.String(), cw-half),
	})
}
