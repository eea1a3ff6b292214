package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fincast/internal/cli"
	"github.com/theirongolddev/fincast/internal/model"
	"github.com/theirongolddev/fincast/internal/tui/components"
	"github.com/theirongolddev/fincast/internal/tui/theme"
)

// renderOverviewTab shows KPI cards and the net worth trajectory.
func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	k := a.series.KPIs

	finalNW := 0.0
	if n := len(a.series.NetWorth); n > 0 {
		finalNW = a.series.NetWorth[n-1]
	}

	cagrStr := "—"
	if k.CAGRNominal != nil {
		cagrStr = cli.FormatPercent(*k.CAGRNominal)
	}

	growth := ""
	if len(a.series.NetWorth) > 1 {
		growth = signedMoneyCompact(finalNW - a.series.NetWorth[0])
	}

	cards := []components.Metric{
		components.MoneyMetric("Net worth (end)", finalNW, growth),
		{Label: "EF reached", Value: cli.FormatMonthIndex(k.EFReachedMonth)},
		{Label: "Debt free", Value: cli.FormatMonthIndex(k.DebtFreeMonth)},
		{Label: "CAGR", Value: cagrStr, Delta: "nominal"},
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	values, labels := yearlySeries(a.series)
	chart := components.BarChart(values, labels, t.Accent, components.CardInnerWidth(cw), 12)
	b.WriteString(components.ContentCard("Net worth by year", chart, cw))

	if len(a.series.Warnings) > 0 {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange)
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(fmt.Sprintf("  %d cash shortfall warnings, first: %s",
			len(a.series.Warnings), a.series.Warnings[0])))
	}

	return b.String()
}

// signedMoneyCompact renders a delta with an explicit sign so the card
// colors it as a gain or a loss.
func signedMoneyCompact(v float64) string {
	if v < 0 {
		return "-" + cli.FormatMoneyCompact(-v)
	}
	return "+" + cli.FormatMoneyCompact(v)
}

// yearlySeries reduces the monthly net worth series to one point per
// December, labeled with the year.
func yearlySeries(series model.ScenarioSeries) ([]float64, []string) {
	var values []float64
	var labels []string
	for m := 11; m < len(series.NetWorth); m += 12 {
		values = append(values, series.NetWorth[m])
		if m < len(series.Labels) {
			labels = append(labels, series.Labels[m][:4])
		}
	}
	if len(values) == 0 && len(series.NetWorth) > 0 {
		values = series.NetWorth
		labels = series.Labels
	}
	return values, labels
}
