package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Phase is the household's labour phase for a month.
type Phase string

const (
	PhaseWorking    Phase = "Working"
	PhaseTransition Phase = "Transition"
	PhaseRetired    Phase = "Retired"
)

// AccountKind enumerates the four tracked balances.
type AccountKind int

const (
	TaxDeferred AccountKind = iota
	TaxFreeInvested
	TaxFreeCash
	HomeEquity
)

// AccountKinds lists the account classes in reporting order.
var AccountKinds = []AccountKind{TaxDeferred, TaxFreeInvested, TaxFreeCash, HomeEquity}

func (k AccountKind) String() string {
	switch k {
	case TaxDeferred:
		return "Trad"
	case TaxFreeInvested:
		return "Roth"
	case TaxFreeCash:
		return "Cash"
	case HomeEquity:
		return "Home"
	}
	return "Unknown"
}

// AccountFlow breaks one account's movement over a period into components.
// Withdrawals from the tax-deferred account are recorded net, with the tax
// withheld on them in Tax.
type AccountFlow struct {
	Start         decimal.Decimal `json:"start"`
	Crash         decimal.Decimal `json:"crash"`
	Growth        decimal.Decimal `json:"growth"`
	Contribution  decimal.Decimal `json:"contribution"`
	Paydown       decimal.Decimal `json:"paydown"`
	Surplus       decimal.Decimal `json:"surplus"`
	TransferIn    decimal.Decimal `json:"transfer_in"`
	DrawnExpenses decimal.Decimal `json:"drawn_expenses"`
	DrawnBuffer   decimal.Decimal `json:"drawn_buffer"`
	Tax           decimal.Decimal `json:"tax"`
	End           decimal.Decimal `json:"end"`
}

// Expected returns the end balance implied by the start balance and the
// recorded components.
func (f AccountFlow) Expected() decimal.Decimal {
	return f.Start.Sub(f.Crash).
		Add(f.Growth).Add(f.Contribution).Add(f.Paydown).Add(f.Surplus).Add(f.TransferIn).
		Sub(f.DrawnExpenses).Sub(f.DrawnBuffer).Sub(f.Tax)
}

// Accumulate adds the flow components of other into f and takes its end
// balance. Start is left untouched.
func (f *AccountFlow) Accumulate(other AccountFlow) {
	f.Crash = f.Crash.Add(other.Crash)
	f.Growth = f.Growth.Add(other.Growth)
	f.Contribution = f.Contribution.Add(other.Contribution)
	f.Paydown = f.Paydown.Add(other.Paydown)
	f.Surplus = f.Surplus.Add(other.Surplus)
	f.TransferIn = f.TransferIn.Add(other.TransferIn)
	f.DrawnExpenses = f.DrawnExpenses.Add(other.DrawnExpenses)
	f.DrawnBuffer = f.DrawnBuffer.Add(other.DrawnBuffer)
	f.Tax = f.Tax.Add(other.Tax)
	f.End = other.End
}

// AccountFlows holds the per-account breakdown of a period.
type AccountFlows struct {
	TaxDeferred     AccountFlow `json:"tax_deferred"`
	TaxFreeInvested AccountFlow `json:"tax_free_invested"`
	TaxFreeCash     AccountFlow `json:"tax_free_cash"`
	HomeEquity      AccountFlow `json:"home_equity"`
}

// Of returns the flow for an account class.
func (a *AccountFlows) Of(kind AccountKind) *AccountFlow {
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

// Totals are the additive quantities shared by monthly and yearly records.
type Totals struct {
	StartBalance decimal.Decimal `json:"start_balance"`
	SSIncome     decimal.Decimal `json:"ss_income"`
	Expenses     decimal.Decimal `json:"expenses"`
	Taxes        decimal.Decimal `json:"taxes"`
	Contribution decimal.Decimal `json:"contribution"`
	Surplus      decimal.Decimal `json:"surplus"`
	Withdrawal   decimal.Decimal `json:"withdrawal"`
	CrashLoss    decimal.Decimal `json:"crash_loss"`
	NetFlow      decimal.Decimal `json:"net_flow"`
	Growth       decimal.Decimal `json:"growth"`
	EndBalance   decimal.Decimal `json:"end_balance"`

	Accounts AccountFlows `json:"accounts"`
}

// Age is a person's age split into completed years and months.
type Age struct {
	Years  int `json:"years"`
	Months int `json:"months"`
}

// MonthlyRecord is the immutable snapshot of one simulated month.
type MonthlyRecord struct {
	Date           time.Time  `json:"date"`
	Year           int        `json:"year"`
	Month          time.Month `json:"month"`
	Label          string     `json:"label"`
	AgeLabel       string     `json:"age_label"`
	Primary        Age        `json:"primary_age"`
	Spouse         Age        `json:"spouse_age"`
	Phase          Phase      `json:"phase"`
	Flexed         bool       `json:"flexed"`
	CrashTriggered bool       `json:"crash_triggered"`
	Totals
}

// YearlyRecord aggregates the monthly records of one calendar year.
type YearlyRecord struct {
	Year           int    `json:"year"`
	Label          string `json:"label"`
	AgeLabel       string `json:"age_label"`
	Phase          Phase  `json:"phase"`
	Months         int    `json:"months"`
	Flexed         bool   `json:"flexed"`
	CrashTriggered bool   `json:"crash_triggered"`
	Totals
}

// NewYearlyRecord starts a year from its first month.
func NewYearlyRecord(first MonthlyRecord) YearlyRecord {
	y := YearlyRecord{
		Year:  first.Year,
		Label: strconv.Itoa(first.Year),
		Phase: PhaseRetired,
	}
	y.StartBalance = first.StartBalance
	for _, kind := range AccountKinds {
		y.Accounts.Of(kind).Start = first.Accounts.Of(kind).Start
	}
	return y
}

// Add folds one month into the year.
func (y *YearlyRecord) Add(m MonthlyRecord) {
	y.Months++
	y.SSIncome = y.SSIncome.Add(m.SSIncome)
	y.Expenses = y.Expenses.Add(m.Expenses)
	y.Taxes = y.Taxes.Add(m.Taxes)
	y.Contribution = y.Contribution.Add(m.Contribution)
	y.Surplus = y.Surplus.Add(m.Surplus)
	y.Withdrawal = y.Withdrawal.Add(m.Withdrawal)
	y.CrashLoss = y.CrashLoss.Add(m.CrashLoss)
	y.NetFlow = y.NetFlow.Add(m.NetFlow)
	y.Growth = y.Growth.Add(m.Growth)
	y.EndBalance = m.EndBalance
	y.AgeLabel = m.AgeLabel
	for _, kind := range AccountKinds {
		y.Accounts.Of(kind).Accumulate(*m.Accounts.Of(kind))
	}
	if m.Flexed {
		y.Flexed = true
	}
	if m.CrashTriggered {
		y.CrashTriggered = true
	}
	switch {
	case m.Phase == PhaseWorking:
		y.Phase = PhaseWorking
	case m.Phase == PhaseTransition && y.Phase != PhaseWorking:
		y.Phase = PhaseTransition
	}
}

// SafeAge is the result of the safe-retirement-age search. When Exhausted is
// set no candidate qualified and Age is the horizon, a lower bound.
type SafeAge struct {
	Age       int  `json:"age"`
	Exhausted bool `json:"exhausted"`
}

func (s SafeAge) String() string {
	if s.Exhausted {
		return strconv.Itoa(s.Age) + "+"
	}
	return strconv.Itoa(s.Age)
}

// Summary holds headline figures of a projection.
type Summary struct {
	StartingNetWorth     decimal.Decimal `json:"starting_net_worth"`
	NetWorthAtRetirement decimal.Decimal `json:"net_worth_at_retirement"`
	EndOfPlanNetWorth    decimal.Decimal `json:"end_of_plan_net_worth"`
}

// Projection is the complete result of one planning pass.
type Projection struct {
	RunID                  string          `json:"run_id"`
	Params                 Params          `json:"params"`
	EffectiveRetirementAge int             `json:"effective_retirement_age"`
	SWRAge                 *SafeAge        `json:"swr_age,omitempty"`
	SafeRetirementAge      *SafeAge        `json:"safe_retirement_age,omitempty"`
	Summary                Summary         `json:"summary"`
	Months                 []MonthlyRecord `json:"months"`
	Years                  []YearlyRecord  `json:"years"`
}
