// Package model defines domain types for fincast allocations and projections.
package model

// Level is a coarse low/medium/high preference rating.
type Level string

// Level values.
const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Valid reports whether l is one of the three defined levels.
func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	}
	return false
}

// AcctType identifies the tax treatment chosen for retirement contributions.
type AcctType string

// AcctType values.
const (
	AcctRoth           AcctType = "roth"
	AcctTraditional401 AcctType = "traditional_401k"
)

// DebtBalance is a single high-APR debt as seen by the allocator.
// The allocator pools these into one paydown amount; per-debt ordering
// is the simulator's job.
type DebtBalance struct {
	Balance    float64
	AprPercent float64
}

// SavingsInputs is a monthly financial snapshot fed to the allocator.
// All money fields are monthly dollars unless noted, and must be >= 0.
type SavingsInputs struct {
	SavingsBudget float64

	EFTarget  float64
	EFBalance float64

	HighAprDebts []DebtBalance

	// Contribution required this period to capture the full employer match.
	MatchNeedThisPeriod float64

	// Annual income for the single filer, used for the Roth/Traditional cut.
	IncomeSingle float64
	OnIDR        bool

	Liquidity       Level
	RetirementFocus Level

	// Remaining contribution room for the current tax year.
	IRARoomThisYear  float64
	K401RoomThisYear float64

	HSAEligible            bool
	HSARoomThisYear        float64
	HSACurrentContribution float64
	PrioritizeHSA          bool
}
