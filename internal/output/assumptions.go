package output

import (
	"fmt"

	"github.com/rpgo/networth-planner/internal/domain"
)

// GenerateAssumptions lists the modeling assumptions behind a parameter set.
func GenerateAssumptions(p domain.Params) []string {
	out := []string{
		fmt.Sprintf("Invested return: %s annually, compounded monthly", FormatPercentage(p.InvestedReturn)),
		fmt.Sprintf("Cash return: %s annually, compounded monthly", FormatPercentage(p.CashReturn)),
		fmt.Sprintf("Home appreciation: %s annually", FormatPercentage(p.HomeAppreciation)),
		fmt.Sprintf("State income tax: %s on top of federal brackets", FormatPercentage(p.StateTaxRate)),
		fmt.Sprintf("Cash buffer target: %s years of net expenses", p.TargetBufferYears.String()),
	}
	switch p.Mode {
	case domain.ModeSWR:
		out = append(out, fmt.Sprintf("Retirement when liquid assets reach annual expenses / %s", FormatPercentage(p.SWRRate)))
	default:
		out = append(out, fmt.Sprintf("Retirement at age %d", p.Primary.RetirementAge))
	}
	if p.Crash.Enabled {
		out = append(out, fmt.Sprintf("Market crash of %s at age %d", FormatPercentage(p.Crash.Percent), p.Crash.Age))
	}
	return out
}
