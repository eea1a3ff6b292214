package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fincast/internal/cli"
	"github.com/theirongolddev/fincast/internal/tui/components"
	"github.com/theirongolddev/fincast/internal/tui/theme"
)

// renderDebtsTab lists liabilities and compares payoff strategies.
func (a App) renderDebtsTab(cw int) string {
	t := theme.Active

	liabilities := a.sc.Balances.Liabilities
	if len(liabilities) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextMuted).
			Render("\n  No liabilities in this scenario.")
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	aprStyle := lipgloss.NewStyle().Foreground(t.Orange)

	var list strings.Builder
	list.WriteString(labelStyle.Render(fmt.Sprintf("%-20s %12s %8s %10s", "Debt", "Balance", "APR", "Min/mo")))
	list.WriteString("\n")
	total := 0.0
	for _, l := range liabilities {
		total += l.Balance
		list.WriteString(fmt.Sprintf("%s %s %s %s\n",
			valueStyle.Render(fmt.Sprintf("%-20s", l.Name)),
			valueStyle.Render(fmt.Sprintf("%12s", cli.FormatMoney(l.Balance))),
			aprStyle.Render(fmt.Sprintf("%7.1f%%", l.AprPercent)),
			valueStyle.Render(fmt.Sprintf("%10s", cli.FormatMoney(l.MinPayment))),
		))
	}
	list.WriteString("\n")
	list.WriteString(labelStyle.Render("Total: ") + valueStyle.Render(cli.FormatMoney(total)))

	listCard := components.ContentCard("Liabilities", list.String(), cw)

	if a.payoff == nil {
		return listCard
	}

	half := cw / 2
	av := a.payoff.Avalanche
	sn := a.payoff.Snowball

	strategyBody := func(months int, interest float64, truncated bool) string {
		var b strings.Builder
		b.WriteString(labelStyle.Render("Payoff in  ") + valueStyle.Render(cli.FormatMonths(months)))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Interest   ") + valueStyle.Render(cli.FormatMoney(interest)))
		if truncated {
			b.WriteString("\n")
			b.WriteString(aprStyle.Render("Budget too low to ever pay off"))
		}
		return b.String()
	}

	avCard := components.ContentCard("Avalanche (highest APR first)",
		strategyBody(av.MonthsToPayoff, av.TotalInterestPaid, av.Truncated), half)
	snCard := components.ContentCard("Snowball (smallest balance first)",
		strategyBody(sn.MonthsToPayoff, sn.TotalInterestPaid, sn.Truncated), cw-half)

	summary := lipgloss.NewStyle().Foreground(t.Green).Render(
		fmt.Sprintf("  Avalanche saves %s and %d months",
			cli.FormatMoney(a.payoff.InterestSaved), a.payoff.MonthsSaved))

	return listCard + "\n" + components.CardRow([]string{avCard, snCard}) + "\n" + summary
}
