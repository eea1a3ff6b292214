// Package allocate turns a monthly savings budget into dollar amounts per
// destination via a fixed priority-ordered waterfall.
package allocate

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fincast/internal/model"
)

// RothIncomeCutoff is the single-filer annual income at which the
// account-type selection flips from Roth to Traditional 401k.
const RothIncomeCutoff = 190_000

// Waterfall caps, as shares of the budget each step sees.
const (
	EFCapShare   = 0.40 // of the original budget
	DebtCapShare = 0.40 // of the post-EF remainder
)

var (
	efCapShare   = decimal.NewFromFloat(EFCapShare)
	debtCapShare = decimal.NewFromFloat(DebtCapShare)
)

// state threads the waterfall's working values between steps. All money is
// decimal until the boundary rounding in finish.
type state struct {
	in     model.SavingsInputs
	budget decimal.Decimal

	ef       decimal.Decimal
	debt     decimal.Decimal
	match    decimal.Decimal
	hsa      decimal.Decimal
	retire   decimal.Decimal
	broker   decimal.Decimal

	iraRoom  decimal.Decimal
	k401Room decimal.Decimal

	routing model.Routing
	notes   []string
}

// stepFunc consumes part of the remaining budget and returns the new
// remainder. Steps run strictly in order; each sees only the residual of
// the steps before it.
type stepFunc func(st *state, rem decimal.Decimal) decimal.Decimal

var waterfall = []stepFunc{
	stepEmergencyFund,
	stepHighAprDebt,
	stepEmployerMatch,
	stepHSA,
	stepAcctType,
	stepSplit,
}

// Allocate executes the savings waterfall over in.SavingsBudget. The
// returned allocation's dollar fields sum to the budget exactly; rationale
// for partial fills and routing choices lands in Notes.
func Allocate(in model.SavingsInputs) (model.SavingsAllocation, error) {
	if err := validate(in); err != nil {
		return model.SavingsAllocation{}, err
	}

	st := &state{
		in:       in,
		budget:   money(in.SavingsBudget),
		iraRoom:  money(in.IRARoomThisYear),
		k401Room: money(in.K401RoomThisYear),
	}

	// Zero budget: legal, all-zero, and silent. Routing is still resolved
	// so callers can label an empty plan.
	if st.budget.IsZero() {
		st.routing = resolveRouting(in, nil)
		w := lookupSplit(in.Liquidity, in.RetirementFocus)
		st.routing.SplitRetirePct = float64(w.RetirePct)
		st.routing.SplitBrokerPct = float64(w.BrokerPct)
		return model.SavingsAllocation{Routing: st.routing}, nil
	}

	rem := st.budget
	for _, step := range waterfall {
		rem = step(st, rem)
	}

	return st.finish(), nil
}

// stepEmergencyFund fills the EF gap up to 40% of the original budget.
func stepEmergencyFund(st *state, rem decimal.Decimal) decimal.Decimal {
	gap := money(st.in.EFTarget).Sub(money(st.in.EFBalance))
	if gap.Sign() <= 0 {
		// Already at or above target: skipped silently.
		return rem
	}

	cap := st.budget.Mul(efCapShare)
	st.ef = decimal.Min(gap, cap, rem)
	if gap.GreaterThan(st.ef) {
		st.note("Emergency fund gap partially filled this month")
	} else {
		st.note("Emergency fund gap fully filled")
	}
	return rem.Sub(st.ef)
}

// stepHighAprDebt pools all high-APR balances into one paydown, capped at
// 40% of the post-EF remainder. Per-debt ordering belongs to the simulator.
func stepHighAprDebt(st *state, rem decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, d := range st.in.HighAprDebts {
		total = total.Add(money(d.Balance))
	}
	if total.Sign() <= 0 {
		return rem
	}

	cap := rem.Mul(debtCapShare)
	st.debt = decimal.Min(total, cap)
	if total.GreaterThan(st.debt) {
		st.note("High-APR debt partially paid down this month")
	}
	return rem.Sub(st.debt)
}

// stepEmployerMatch captures whatever of the match requirement the residual
// covers. Match contributions consume 401k room for the year.
func stepEmployerMatch(st *state, rem decimal.Decimal) decimal.Decimal {
	need := money(st.in.MatchNeedThisPeriod)
	if need.Sign() <= 0 {
		return rem
	}

	st.match = decimal.Min(need, rem)
	st.k401Room = decimal.Max(decimal.Zero, st.k401Room.Sub(st.match))
	if need.GreaterThan(st.match) {
		st.note("Could not fully capture employer match this month")
	}
	return rem.Sub(st.match)
}

// stepHSA funds remaining HSA room ahead of the retirement/brokerage split
// when the snapshot asks for it.
func stepHSA(st *state, rem decimal.Decimal) decimal.Decimal {
	if !st.in.PrioritizeHSA || !st.in.HSAEligible {
		return rem
	}
	room := money(st.in.HSARoomThisYear).Sub(money(st.in.HSACurrentContribution))
	if room.Sign() <= 0 {
		return rem
	}

	st.hsa = decimal.Min(room, rem)
	if st.hsa.Sign() > 0 {
		st.note("HSA prioritized ahead of taxable investing")
	}
	return rem.Sub(st.hsa)
}

// stepAcctType selects Roth vs Traditional. Bookkeeping only: it labels
// where the split's retirement share goes, never moves dollars.
func stepAcctType(st *state, rem decimal.Decimal) decimal.Decimal {
	st.routing = resolveRouting(st.in, st)
	return rem
}

// stepSplit divides the residual by the liquidity × retirement-focus
// matrix, routes the retirement share through IRA then 401k room, and
// spills anything beyond both caps into brokerage.
func stepSplit(st *state, rem decimal.Decimal) decimal.Decimal {
	w := lookupSplit(st.in.Liquidity, st.in.RetirementFocus)
	st.routing.SplitRetirePct = float64(w.RetirePct)
	st.routing.SplitBrokerPct = float64(w.BrokerPct)

	retireShare := rem.Mul(decimal.NewFromInt(int64(w.RetirePct))).Div(decimal.NewFromInt(100))
	brokerShare := rem.Sub(retireShare)

	toIRA := decimal.Min(retireShare, st.iraRoom)
	st.iraRoom = st.iraRoom.Sub(toIRA)
	to401k := decimal.Min(retireShare.Sub(toIRA), st.k401Room)
	st.k401Room = st.k401Room.Sub(to401k)

	st.retire = toIRA.Add(to401k)
	spill := retireShare.Sub(st.retire)
	if spill.Sign() > 0 {
		st.note("Retirement room exhausted, excess to brokerage")
	}

	st.broker = brokerShare.Add(spill)
	return decimal.Zero
}

// resolveRouting applies the IDR override and the income threshold. A nil
// state suppresses notes (zero-budget path).
func resolveRouting(in model.SavingsInputs, st *state) model.Routing {
	r := model.Routing{}
	switch {
	case in.OnIDR:
		r.AcctType = model.AcctTraditional401
		if st != nil {
			st.note("IDR detected: Traditional 401k contributions lower AGI and your payment")
		}
	case in.IncomeSingle < RothIncomeCutoff:
		r.AcctType = model.AcctRoth
		if st != nil {
			st.note("Roth selected: income below the single-filer threshold")
		}
	default:
		r.AcctType = model.AcctTraditional401
		if st != nil {
			st.note("Traditional 401k selected: income at or above the single-filer threshold")
		}
	}
	return r
}

// finish rounds every bucket to cents and hands the rounding residual to
// brokerage, so the fields sum to the budget exactly.
func (st *state) finish() model.SavingsAllocation {
	ef := st.ef.Round(2)
	debt := st.debt.Round(2)
	match := st.match.Round(2)
	hsa := st.hsa.Round(2)
	retire := st.retire.Round(2)
	broker := st.budget.Sub(ef).Sub(debt).Sub(match).Sub(hsa).Sub(retire)

	// Half-up rounding can overshoot the budget by a cent or two; pull the
	// deficit back out of the largest buckets so no field goes negative.
	buckets := []*decimal.Decimal{&ef, &debt, &match, &hsa, &retire}
	for broker.Sign() < 0 {
		largest := buckets[0]
		for _, b := range buckets[1:] {
			if b.GreaterThan(*largest) {
				largest = b
			}
		}
		take := decimal.Min(broker.Neg(), *largest)
		*largest = largest.Sub(take)
		broker = broker.Add(take)
	}

	return model.SavingsAllocation{
		EF:               ef.InexactFloat64(),
		HighAprDebt:      debt.InexactFloat64(),
		Match401k:        match.InexactFloat64(),
		HSA:              hsa.InexactFloat64(),
		RetirementTaxAdv: retire.InexactFloat64(),
		Brokerage:        broker.InexactFloat64(),
		Routing:          st.routing,
		Notes:            st.notes,
	}
}

func (st *state) note(s string) {
	st.notes = append(st.notes, s)
}

// money converts a caller-supplied dollar amount to a cent-precision decimal.
func money(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}

func validate(in model.SavingsInputs) error {
	if in.SavingsBudget < 0 {
		return model.Errf("savingsBudget", "must be >= 0, got %.2f", in.SavingsBudget)
	}
	if in.EFTarget < 0 {
		return model.Errf("efTarget", "must be >= 0, got %.2f", in.EFTarget)
	}
	if in.EFBalance < 0 {
		return model.Errf("efBalance", "must be >= 0, got %.2f", in.EFBalance)
	}
	for i, d := range in.HighAprDebts {
		if d.Balance < 0 {
			return model.Errf("highAprDebts", "debt %d balance must be >= 0, got %.2f", i, d.Balance)
		}
		if d.AprPercent < 0 {
			return model.Errf("highAprDebts", "debt %d APR must be >= 0, got %.2f", i, d.AprPercent)
		}
	}
	if in.MatchNeedThisPeriod < 0 {
		return model.Errf("matchNeedThisPeriod", "must be >= 0, got %.2f", in.MatchNeedThisPeriod)
	}
	if in.IncomeSingle < 0 {
		return model.Errf("incomeSingle", "must be >= 0, got %.2f", in.IncomeSingle)
	}
	if !in.Liquidity.Valid() {
		return model.Errf("liquidity", "must be low, medium, or high, got %q", string(in.Liquidity))
	}
	if !in.RetirementFocus.Valid() {
		return model.Errf("retirementFocus", "must be low, medium, or high, got %q", string(in.RetirementFocus))
	}
	if in.IRARoomThisYear < 0 {
		return model.Errf("iraRoomThisYear", "must be >= 0, got %.2f", in.IRARoomThisYear)
	}
	if in.K401RoomThisYear < 0 {
		return model.Errf("k401RoomThisYear", "must be >= 0, got %.2f", in.K401RoomThisYear)
	}
	if in.HSARoomThisYear < 0 {
		return model.Errf("hsaRoomThisYear", "must be >= 0, got %.2f", in.HSARoomThisYear)
	}
	if in.HSACurrentContribution < 0 {
		return model.Errf("hsaCurrentContribution", "must be >= 0, got %.2f", in.HSACurrentContribution)
	}
	return nil
}
