package model

// Routing records where the retirement share of the split was pointed.
type Routing struct {
	AcctType       AcctType
	SplitRetirePct float64
	SplitBrokerPct float64
}

// SavingsAllocation is the allocator's output: dollar amounts per
// destination, routing bookkeeping, and human-readable rationale notes.
// The dollar fields always sum to the input budget.
type SavingsAllocation struct {
	EF               float64
	HighAprDebt      float64
	Match401k        float64
	HSA              float64
	RetirementTaxAdv float64
	Brokerage        float64

	Routing Routing
	Notes   []string
}

// Total returns the sum of all allocated dollar fields.
func (a SavingsAllocation) Total() float64 {
	return a.EF + a.HighAprDebt + a.Match401k + a.HSA + a.RetirementTaxAdv + a.Brokerage
}
