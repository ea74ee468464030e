package calculation

import (
	"github.com/rpgo/networth-planner/pkg/finmath"
	"github.com/shopspring/decimal"
)

// TAX MODEL ASSUMPTIONS:
//
// 1. Federal brackets are a simplified monthly schedule of taxable income
//    (annual 2025 thresholds including the standard deduction, divided by 12).
//    No inflation indexing is applied to future years.
//
// 2. State tax is a single flat rate added to every federal bracket rate.
//
// 3. 85% of Social Security income is taxable and is taxed on its own,
//    starting from zero income, before any withdrawal is sized.

// TaxBracket is one marginal band of the monthly schedule. Top is the upper
// bound of monthly taxable income taxed at Rate.
type TaxBracket struct {
	Rate decimal.Decimal
	Top  decimal.Decimal
}

var (
	// unbounded stands in for the open-ended top bracket.
	unbounded = decimal.NewFromInt(999999999)

	cent          = decimal.NewFromFloat(0.01)
	one           = decimal.NewFromInt(1)
	maxCombined   = decimal.NewFromFloat(0.99)
	taxableSSPart = decimal.NewFromFloat(0.85)

	// LowRateCap limits withdrawals to the brackets taxed at 12% or less.
	LowRateCap = decimal.NewFromFloat(0.12)
	// NoRateCap allows every bracket.
	NoRateCap = decimal.NewFromInt(1)
)

func bracket(rate float64, top int64) TaxBracket {
	return TaxBracket{Rate: decimal.NewFromFloat(rate), Top: decimal.NewFromInt(top)}
}

// JointBrackets is the married-filing-jointly monthly schedule.
var JointBrackets = []TaxBracket{
	bracket(0, 2433),
	bracket(0.10, 4366),
	bracket(0.12, 10291),
	bracket(0.22, 19187),
	bracket(0.24, 34425),
	bracket(0.32, 43054),
	bracket(0.35, 63437),
	{Rate: decimal.NewFromFloat(0.37), Top: unbounded},
}

// SingleBrackets is the single-filer monthly schedule.
var SingleBrackets = []TaxBracket{
	bracket(0, 1216),
	bracket(0.10, 2183),
	bracket(0.12, 5145),
	bracket(0.22, 9593),
	bracket(0.24, 17212),
	bracket(0.32, 21527),
	bracket(0.35, 52008),
	{Rate: decimal.NewFromFloat(0.37), Top: unbounded},
}

// TaxTable combines a bracket schedule with a flat state rate.
type TaxTable struct {
	Brackets  []TaxBracket
	StateRate decimal.Decimal
}

// NewTaxTable selects the joint schedule for a two-adult household and the
// single schedule otherwise. statePercent is a percentage (4.95 for 4.95%).
func NewTaxTable(adults int, statePercent decimal.Decimal) *TaxTable {
	brackets := SingleBrackets
	if adults == 2 {
		brackets = JointBrackets
	}
	return &TaxTable{Brackets: brackets, StateRate: finmath.FromPercent(statePercent)}
}

// Draw is the outcome of a bracket-fill withdrawal from the tax-deferred
// account. Gross always equals Net plus Tax.
type Draw struct {
	Net       decimal.Decimal
	Gross     decimal.Decimal
	Tax       decimal.Decimal
	Income    decimal.Decimal
	Remaining decimal.Decimal
}

// DrawFromTaxDeferred pulls the smallest gross amount from balance that
// delivers netNeeded after tax, filling brackets upward from income and
// stopping before any bracket whose federal rate exceeds maxRate. The result
// may fall short of netNeeded when the balance or the allowed brackets run out.
func (t *TaxTable) DrawFromTaxDeferred(netNeeded, income, maxRate, balance decimal.Decimal) Draw {
	d := Draw{
		Net:       decimal.Zero,
		Gross:     decimal.Zero,
		Tax:       decimal.Zero,
		Income:    income,
		Remaining: balance,
	}
	remaining := finmath.Round(netNeeded)

	for _, b := range t.Brackets {
		if remaining.LessThanOrEqual(cent) || d.Remaining.LessThanOrEqual(cent) {
			break
		}
		if b.Rate.GreaterThan(maxRate) {
			break
		}
		if d.Income.GreaterThanOrEqual(b.Top) {
			continue
		}

		headroom := decimal.Min(b.Top.Sub(d.Income), d.Remaining)
		combined := b.Rate.Add(t.StateRate)
		if combined.GreaterThanOrEqual(one) {
			combined = maxCombined
		}
		keep := one.Sub(combined)

		net := decimal.Min(remaining, finmath.Round(headroom.Mul(keep)))
		gross := finmath.Round(net.Div(keep))
		if gross.GreaterThan(d.Remaining) {
			gross = d.Remaining
			net = finmath.Round(gross.Mul(keep))
		}
		tax := gross.Sub(net)

		d.Net = d.Net.Add(net)
		d.Gross = d.Gross.Add(gross)
		d.Tax = d.Tax.Add(tax)
		d.Income = d.Income.Add(gross)
		d.Remaining = d.Remaining.Sub(gross)
		remaining = remaining.Sub(net)
	}
	return d
}

// IncomeTax returns the federal tax on a monthly taxable amount, filling the
// schedule from zero.
func (t *TaxTable) IncomeTax(taxable decimal.Decimal) decimal.Decimal {
	tax := decimal.Zero
	floor := decimal.Zero
	remaining := taxable
	for _, b := range t.Brackets {
		if !remaining.IsPositive() {
			break
		}
		room := b.Top.Sub(floor)
		if !room.IsPositive() {
			continue
		}
		amount := decimal.Min(remaining, room)
		tax = tax.Add(amount.Mul(b.Rate))
		remaining = remaining.Sub(amount)
		floor = floor.Add(amount)
	}
	return finmath.Round(tax)
}

// SocialSecurityTax returns the taxable part of a month's Social Security
// income and the combined federal and state tax owed on it.
func (t *TaxTable) SocialSecurityTax(ssIncome decimal.Decimal) (taxable, tax decimal.Decimal) {
	taxable = finmath.Round(ssIncome.Mul(taxableSSPart))
	state := finmath.Round(taxable.Mul(t.StateRate))
	return taxable, t.IncomeTax(taxable).Add(state)
}
