package simulate

import (
	"fmt"

	"github.com/theirongolddev/fincast/internal/model"
)

// planTolerance is the slack allowed before a month's savings flows are
// flagged as overcommitted, in dollars.
const planTolerance = 1.0

// ValidatePlan is a pre-flight advisory check on a monthly plan. It never
// blocks a simulation; overcommitted months come back as warnings and the
// simulator itself surfaces any cash shortfalls that materialize.
func ValidatePlan(plan []model.PlanMonth) []string {
	var warnings []string
	for i, p := range plan {
		available := p.IncomeNet - p.Needs - p.Wants
		savings := p.Savings()
		if savings > available+planTolerance {
			warnings = append(warnings, fmt.Sprintf(
				"month %d: planned savings of $%.2f exceed available income of $%.2f",
				i, savings, available))
		}
	}
	return warnings
}
