package main

import (
	"fmt"

	"github.com/rpgo/networth-planner/internal/calculation"
	"github.com/shopspring/decimal"
)

// Prints the bracket-fill draw from a tax-deferred account for a range of
// monthly needs, for both filing schedules and both rate ceilings.
func main() {
	balance := decimal.NewFromInt(1000000)
	needs := []int64{500, 1000, 2000, 3000, 5000, 8000, 12000, 20000}
	ceilings := []struct {
		name string
		rate decimal.Decimal
	}{
		{"12% cap", calculation.LowRateCap},
		{"no cap", calculation.NoRateCap},
	}

	for _, adults := range []int{1, 2} {
		table := calculation.NewTaxTable(adults, decimal.NewFromInt(5))
		fmt.Printf("Adults: %d (state 5%%)\n", adults)
		for _, c := range ceilings {
			fmt.Printf("  %s\n", c.name)
			fmt.Printf("  %10s %12s %12s %10s %12s\n", "NEED", "NET", "GROSS", "TAX", "REMAINING")
			for _, n := range needs {
				d := table.DrawFromTaxDeferred(decimal.NewFromInt(n), decimal.Zero, c.rate, balance)
				fmt.Printf("  %10d %12s %12s %10s %12s\n", n,
					d.Net.StringFixed(2), d.Gross.StringFixed(2), d.Tax.StringFixed(2), d.Remaining.StringFixed(2))
			}
		}
		fmt.Println()
	}
}
