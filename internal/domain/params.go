package domain

import (
	"time"

	"github.com/rpgo/networth-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// CalcMode selects how the primary person's retirement age is determined.
type CalcMode string

const (
	// ModeFixed uses the configured retirement age and searches for the
	// earliest safe one.
	ModeFixed CalcMode = "fixed"
	// ModeSWR retires the household once the safe-withdrawal-rate target is met.
	ModeSWR CalcMode = "swr"
)

// TriggerKind identifies what an expense adjustment is keyed on.
type TriggerKind string

const (
	TriggerYear TriggerKind = "year"
	TriggerAge  TriggerKind = "age"
)

// Person is one adult's profile. Ages are whole years.
type Person struct {
	BirthYear        int             `json:"birth_year"`
	BirthMonth       time.Month      `json:"birth_month"`
	RetirementAge    int             `json:"retirement_age"`
	SSClaimAge       int             `json:"ss_claim_age"`
	MonthlySSBenefit decimal.Decimal `json:"monthly_ss_benefit"`
}

// AgeInMonths returns the person's age in whole months at the start of the
// given calendar month. It is negative before birth.
func (p Person) AgeInMonths(year int, month time.Month) int {
	return dateutil.MonthsBetween(p.BirthYear, p.BirthMonth, year, month)
}

// Accounts holds one amount per account class.
type Accounts struct {
	TaxDeferred     decimal.Decimal `json:"tax_deferred"`
	TaxFreeInvested decimal.Decimal `json:"tax_free_invested"`
	TaxFreeCash     decimal.Decimal `json:"tax_free_cash"`
	HomeEquity      decimal.Decimal `json:"home_equity"`
}

// Of returns a pointer to the balance of one account class.
func (a *Accounts) Of(kind AccountKind) *decimal.Decimal {
	switch kind {
	case TaxFreeInvested:
		return &a.TaxFreeInvested
	case TaxFreeCash:
		return &a.TaxFreeCash
	case HomeEquity:
		return &a.HomeEquity
	}
	return &a.TaxDeferred
}

// Liquid returns the sum of the three investable accounts.
func (a Accounts) Liquid() decimal.Decimal {
	return a.TaxDeferred.Add(a.TaxFreeInvested).Add(a.TaxFreeCash)
}

// Total returns the sum of all four accounts.
func (a Accounts) Total() decimal.Decimal {
	return a.Liquid().Add(a.HomeEquity)
}

// Adjustment changes annual expenses from the moment its trigger is reached
// and stays in effect for the rest of the projection.
type Adjustment struct {
	Trigger TriggerKind     `json:"trigger"`
	Value   int             `json:"value"`
	Amount  decimal.Decimal `json:"amount"`
	Label   string          `json:"label"`
}

// Applies reports whether the adjustment is active in the given calendar year
// for a primary person of the given age.
func (a Adjustment) Applies(year, primaryAge int) bool {
	switch a.Trigger {
	case TriggerYear:
		return year >= a.Value
	case TriggerAge:
		return primaryAge >= a.Value
	}
	return false
}

// ExpenseCategory is a named annual expense line.
type ExpenseCategory struct {
	Name   string          `json:"name"`
	Annual decimal.Decimal `json:"annual"`
}

// Budget is the household's annual spending model.
type Budget struct {
	Categories  []ExpenseCategory `json:"categories"`
	Adjustments []Adjustment      `json:"adjustments"`
}

// BaseAnnual sums the expense categories.
func (b Budget) BaseAnnual() decimal.Decimal {
	total := decimal.Zero
	for _, c := range b.Categories {
		total = total.Add(c.Annual)
	}
	return total
}

// AnnualAt returns base expenses plus every adjustment active in the given
// year for the given primary age.
func (b Budget) AnnualAt(year, primaryAge int) decimal.Decimal {
	total := b.BaseAnnual()
	for _, adj := range b.Adjustments {
		if adj.Applies(year, primaryAge) {
			total = total.Add(adj.Amount)
		}
	}
	return total
}

// StressScenario is a one-off market shock applied to both invested accounts
// in the month the primary person reaches Age.
type StressScenario struct {
	Enabled bool            `json:"enabled"`
	Age     int             `json:"age"`
	Percent decimal.Decimal `json:"percent"`
}

// Params is the fully resolved, immutable input to a projection run. Rates and
// percentages are stored as percent values (5 means 5%).
type Params struct {
	StartYear  int        `json:"start_year"`
	StartMonth time.Month `json:"start_month"`
	HorizonAge int        `json:"horizon_age"`

	Mode     CalcMode        `json:"mode"`
	SWRRate  decimal.Decimal `json:"swr_rate"`
	Advanced bool            `json:"advanced"`
	Adults   int             `json:"adults"`

	Primary Person `json:"primary"`
	Spouse  Person `json:"spouse"`

	Balances      Accounts `json:"balances"`
	Contributions Accounts `json:"contributions"`

	AnnualMortgagePrincipal decimal.Decimal `json:"annual_mortgage_principal"`
	MortgagePayoffYear      int             `json:"mortgage_payoff_year"`

	InvestedReturn   decimal.Decimal `json:"invested_return"`
	CashReturn       decimal.Decimal `json:"cash_return"`
	HomeAppreciation decimal.Decimal `json:"home_appreciation"`

	TargetBufferYears     decimal.Decimal `json:"target_buffer_years"`
	BufferBuildYears      decimal.Decimal `json:"buffer_build_years"`
	TransitionDropPercent decimal.Decimal `json:"transition_drop_percent"`
	StateTaxRate          decimal.Decimal `json:"state_tax_rate"`

	Crash  StressScenario `json:"crash"`
	Budget Budget         `json:"budget"`
}

// Joint reports whether the household files jointly with a second adult.
func (p *Params) Joint() bool {
	return p.Adults == 2
}

// StartAgeInMonths is the primary person's age in months at the first
// projected month.
func (p *Params) StartAgeInMonths() int {
	return p.Primary.AgeInMonths(p.StartYear, p.StartMonth)
}

// MaxHorizonAge bounds the horizon age and the length of any single run.
const MaxHorizonAge = 150

// Horizon is HorizonAge limited to 0..MaxHorizonAge.
func (p *Params) Horizon() int {
	return min(max(p.HorizonAge, 0), MaxHorizonAge)
}

// TotalMonths is the projection length: the months left until the horizon
// age, but never less than one year and never more than MaxHorizonAge years.
func (p *Params) TotalMonths() int {
	months := p.Horizon()*12 - p.StartAgeInMonths()
	switch {
	case months < 12:
		return 12
	case months > MaxHorizonAge*12:
		return MaxHorizonAge * 12
	}
	return months
}
