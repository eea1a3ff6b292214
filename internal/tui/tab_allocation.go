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

// renderAllocationTab shows this month's waterfall and its rationale.
func (a App) renderAllocationTab(cw int) string {
	t := theme.Active
	alloc := a.alloc
	snap := a.sc.Snapshot

	half := cw / 2

	// Left: destination breakdown with proportional bars
	var left strings.Builder
	budget := snap.SavingsBudget
	rows := []struct {
		label  string
		amount float64
	}{
		{"Emergency fund", alloc.EF},
		{"High-APR debt", alloc.HighAprDebt},
		{"401k match", alloc.Match401k},
		{"HSA", alloc.HSA},
		{retireRowLabel(alloc.Routing.AcctType), alloc.RetirementTaxAdv},
		{"Brokerage", alloc.Brokerage},
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	barStyle := lipgloss.NewStyle().Foreground(t.Accent)

	barW := components.CardInnerWidth(half) - 36
	if barW < 8 {
		barW = 8
	}
	for _, r := range rows {
		if r.amount == 0 && r.label == "HSA" {
			continue
		}
		filled := 0
		if budget > 0 {
			filled = int(r.amount / budget * float64(barW))
		}
		if filled > barW {
			filled = barW
		}
		left.WriteString(fmt.Sprintf("%s %s %s\n",
			labelStyle.Render(fmt.Sprintf("%-22s", r.label)),
			amountStyle.Render(fmt.Sprintf("%10s", cli.FormatMoney(r.amount))),
			barStyle.Render(strings.Repeat("▇", filled)),
		))
	}
	left.WriteString("\n")
	left.WriteString(labelStyle.Render(fmt.Sprintf("Split: %.0f%% retirement / %.0f%% taxable",
		alloc.Routing.SplitRetirePct, alloc.Routing.SplitBrokerPct)))

	// Right: EF progress and rationale notes
	var right strings.Builder
	if snap.EFTarget > 0 {
		right.WriteString(components.GoalBar("Emergency fund",
			snap.EFBalance+alloc.EF, snap.EFTarget, 15, components.CardInnerWidth(half)-24))
		right.WriteString("\n\n")
	}
	noteStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Width(components.CardInnerWidth(half))
	for _, n := range alloc.Notes {
		right.WriteString(noteStyle.Render("• " + n))
		right.WriteString("\n")
	}

	leftCard := components.ContentCard(
		fmt.Sprintf("This month's %s", cli.FormatMoney(budget)), left.String(), half)
	rightCard := components.ContentCard("Why", right.String(), cw-half)

	return components.CardRow([]string{leftCard, rightCard})
}

func retireRowLabel(acct model.AcctType) string {
	if acct == model.AcctRoth {
		return "Retirement (Roth)"
	}
	return "Retirement (Trad 401k)"
}
