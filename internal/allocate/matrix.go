package allocate

import "github.com/theirongolddev/fincast/internal/model"

// splitWeights holds the retirement/brokerage percentages for one cell of
// the liquidity × retirement-focus matrix.
type splitWeights struct {
	RetirePct int
	BrokerPct int
}

// splitMatrix maps (liquidity, retirementFocus) to split weights. Kept as an
// explicit table so the mapping stays auditable: lower liquidity or higher
// retirement focus shifts weight toward retirement.
var splitMatrix = map[model.Level]map[model.Level]splitWeights{
	model.LevelLow: {
		model.LevelLow:    {RetirePct: 70, BrokerPct: 30},
		model.LevelMedium: {RetirePct: 80, BrokerPct: 20},
		model.LevelHigh:   {RetirePct: 90, BrokerPct: 10},
	},
	model.LevelMedium: {
		model.LevelLow:    {RetirePct: 30, BrokerPct: 70},
		model.LevelMedium: {RetirePct: 50, BrokerPct: 50},
		model.LevelHigh:   {RetirePct: 70, BrokerPct: 30},
	},
	model.LevelHigh: {
		model.LevelLow:    {RetirePct: 10, BrokerPct: 90},
		model.LevelMedium: {RetirePct: 20, BrokerPct: 80},
		model.LevelHigh:   {RetirePct: 30, BrokerPct: 70},
	},
}

// lookupSplit returns the split weights for the given preferences.
// Levels are validated before this is reached.
func lookupSplit(liquidity, focus model.Level) splitWeights {
	return splitMatrix[liquidity][focus]
}
