package config

import (
	"sort"
	"strings"
	"time"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// Fallbacks applied by Resolve for fields that are absent or unparseable.
const (
	DefaultHorizonAge       = 100
	DefaultRetirementAge    = 65
	DefaultSSClaimAge       = 67
	DefaultBirthYearsBefore = 30
	DefaultMortgageYears    = 30
	DefaultCrashAge         = 55
	DefaultAdults           = 2
)

var (
	// DefaultSWRRate is the safe withdrawal rate in percent.
	DefaultSWRRate = decimal.NewFromFloat(4.0)
	// HomeAppreciation is the fixed annual home equity growth in percent.
	HomeAppreciation = decimal.NewFromInt(1)
)

// Resolve turns a sparse settings document into a complete parameter set.
// It never fails: each missing or malformed field falls back to its default.
//
// Ages compare against whole years of age, so fractional retirement, claim
// and trigger ages round up, and a fractional crash age never fires.
func Resolve(s *Settings) domain.Params {
	if s == nil {
		s = &Settings{}
	}

	startYear := intOr(s.StartYear, nowFunc().Year())
	p := domain.Params{
		StartYear:  startYear,
		StartMonth: monthOr(s.StartMonth),
		HorizonAge: horizonOf(s.TargetEndAge),
		Mode:       modeOf(s.CalcMode),
		SWRRate:    decOr(s.SWRRate, DefaultSWRRate),
		Advanced:   boolOr(s.AdvancedMode, false),
		Adults:     adultsOf(s.NumAdults),

		Primary: domain.Person{
			BirthYear:        intOr(s.P1BirthYear, startYear-DefaultBirthYearsBefore),
			BirthMonth:       monthOr(s.P1BirthMonth),
			RetirementAge:    ceilOr(s.P1RetirementAge, DefaultRetirementAge),
			SSClaimAge:       ceilOr(s.P1SSStartAge, DefaultSSClaimAge),
			MonthlySSBenefit: decOr(s.P1MaxSS, decimal.Zero),
		},
		Spouse: domain.Person{
			BirthYear:        intOr(s.P2BirthYear, startYear-DefaultBirthYearsBefore),
			BirthMonth:       monthOr(s.P2BirthMonth),
			RetirementAge:    ceilOr(s.P2RetirementAge, DefaultRetirementAge),
			SSClaimAge:       ceilOr(s.P2SSStartAge, DefaultSSClaimAge),
			MonthlySSBenefit: decOr(s.P2MaxSS, decimal.Zero),
		},

		Balances: domain.Accounts{
			TaxDeferred:     decOr(s.BalanceTrad, decimal.Zero),
			TaxFreeInvested: decOr(s.BalanceRoth, decimal.Zero),
			TaxFreeCash:     decOr(s.BalanceCash, decimal.Zero),
			HomeEquity:      decOr(s.HomeEquity, decimal.Zero),
		},
		Contributions: domain.Accounts{
			TaxDeferred:     decOr(s.ContribTrad, decimal.Zero),
			TaxFreeInvested: decOr(s.ContribRoth, decimal.Zero),
			TaxFreeCash:     decOr(s.ContribCash, decimal.Zero),
		},

		AnnualMortgagePrincipal: decOr(s.AnnualMortgagePrincipal, decimal.Zero),
		MortgagePayoffYear:      intOr(s.MortgagePayoffYear, startYear+DefaultMortgageYears),

		InvestedReturn:   decOr(s.AnnualReturn, decimal.Zero),
		CashReturn:       decOr(s.CashReturn, decimal.Zero),
		HomeAppreciation: HomeAppreciation,

		TargetBufferYears:     decOr(s.TargetBufferYears, decimal.Zero),
		BufferBuildYears:      decOr(s.BufferBuildYears, decimal.Zero),
		TransitionDropPercent: decOr(s.TransitionDrop, decimal.Zero),
		StateTaxRate:          decOr(s.StateTaxRate, decimal.Zero),

		Crash: domain.StressScenario{
			Enabled: boolOr(s.EnableCrash, false) && !s.CrashAge.Fractional(),
			Age:     intOr(s.CrashAge, DefaultCrashAge),
			Percent: decOr(s.CrashPercent, decimal.Zero),
		},
		Budget: domain.Budget{
			Categories:  resolveExpenses(s.Expenses),
			Adjustments: resolveAdjustments(s.Adjustments),
		},
	}
	return p
}

func resolveExpenses(expenses map[string]Value) []domain.ExpenseCategory {
	names := make([]string, 0, len(expenses))
	known := make(map[string]bool, len(ExpenseCategories))
	for _, name := range ExpenseCategories {
		known[name] = true
		if _, ok := expenses[name]; ok {
			names = append(names, name)
		}
	}
	var extra []string
	for name := range expenses {
		if !known[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	names = append(names, extra...)

	categories := make([]domain.ExpenseCategory, 0, len(names))
	for _, name := range names {
		categories = append(categories, domain.ExpenseCategory{
			Name:   name,
			Annual: decOr(expenses[name], decimal.Zero),
		})
	}
	return categories
}

// resolveAdjustments drops entries whose trigger type is unknown.
func resolveAdjustments(in []AdjustmentSetting) []domain.Adjustment {
	out := make([]domain.Adjustment, 0, len(in))
	for _, a := range in {
		var kind domain.TriggerKind
		switch strings.ToLower(strings.TrimSpace(a.Type.String())) {
		case "year":
			kind = domain.TriggerYear
		case "age":
			kind = domain.TriggerAge
		default:
			continue
		}
		out = append(out, domain.Adjustment{
			Trigger: kind,
			Value:   ceilOr(a.Trigger, 0),
			Amount:  decOr(a.Amount, decimal.Zero),
			Label:   a.Desc.String(),
		})
	}
	return out
}

func intOr(v Value, def int) int {
	if i, ok := v.Whole(); ok {
		return i
	}
	return def
}

func ceilOr(v Value, def int) int {
	if i, ok := v.Ceil(); ok {
		return i
	}
	return def
}

// horizonOf reads the target end age, limited to 0..domain.MaxHorizonAge.
func horizonOf(v Value) int {
	return min(max(intOr(v, DefaultHorizonAge), 0), domain.MaxHorizonAge)
}

func decOr(v Value, def decimal.Decimal) decimal.Decimal {
	if f, ok := v.Float(); ok {
		return decimal.NewFromFloat(f)
	}
	return def
}

func boolOr(v Value, def bool) bool {
	if b, ok := v.Bool(); ok {
		return b
	}
	return def
}

// monthOr reads a 1-based calendar month, falling back to January.
func monthOr(v Value) time.Month {
	if m, ok := v.Whole(); ok && dateutil.ValidMonth(m) {
		return time.Month(m)
	}
	return time.January
}

func modeOf(v Value) domain.CalcMode {
	if strings.EqualFold(strings.TrimSpace(v.String()), string(domain.ModeSWR)) {
		return domain.ModeSWR
	}
	return domain.ModeFixed
}

func adultsOf(v Value) int {
	if n, ok := v.Whole(); ok && (n == 1 || n == 2) {
		return n
	}
	return DefaultAdults
}

// FromParams renders a parameter set as a settings document. Resolving the
// result yields the same parameters.
func FromParams(p domain.Params) *Settings {
	s := &Settings{
		AdvancedMode: Flag(p.Advanced),
		CalcMode:     Text(string(p.Mode)),
		SWRRate:      dec(p.SWRRate),
		NumAdults:    Int(p.Adults),
		TargetEndAge: Int(p.HorizonAge),
		StartYear:    Int(p.StartYear),
		StartMonth:   Int(int(p.StartMonth)),

		P1BirthYear:     Int(p.Primary.BirthYear),
		P1BirthMonth:    Int(int(p.Primary.BirthMonth)),
		P1RetirementAge: Int(p.Primary.RetirementAge),
		P1SSStartAge:    Int(p.Primary.SSClaimAge),
		P1MaxSS:         dec(p.Primary.MonthlySSBenefit),

		P2BirthYear:     Int(p.Spouse.BirthYear),
		P2BirthMonth:    Int(int(p.Spouse.BirthMonth)),
		P2RetirementAge: Int(p.Spouse.RetirementAge),
		P2SSStartAge:    Int(p.Spouse.SSClaimAge),
		P2MaxSS:         dec(p.Spouse.MonthlySSBenefit),

		BalanceTrad:             dec(p.Balances.TaxDeferred),
		BalanceRoth:             dec(p.Balances.TaxFreeInvested),
		BalanceCash:             dec(p.Balances.TaxFreeCash),
		HomeEquity:              dec(p.Balances.HomeEquity),
		AnnualMortgagePrincipal: dec(p.AnnualMortgagePrincipal),
		MortgagePayoffYear:      Int(p.MortgagePayoffYear),

		ContribTrad:       dec(p.Contributions.TaxDeferred),
		ContribRoth:       dec(p.Contributions.TaxFreeInvested),
		ContribCash:       dec(p.Contributions.TaxFreeCash),
		AnnualReturn:      dec(p.InvestedReturn),
		CashReturn:        dec(p.CashReturn),
		TargetBufferYears: dec(p.TargetBufferYears),
		BufferBuildYears:  dec(p.BufferBuildYears),
		TransitionDrop:    dec(p.TransitionDropPercent),
		StateTaxRate:      dec(p.StateTaxRate),

		EnableCrash:  Flag(p.Crash.Enabled),
		CrashAge:     Int(p.Crash.Age),
		CrashPercent: dec(p.Crash.Percent),
	}

	if len(p.Budget.Categories) > 0 {
		s.Expenses = make(map[string]Value, len(p.Budget.Categories))
		for _, c := range p.Budget.Categories {
			s.Expenses[c.Name] = dec(c.Annual)
		}
	}
	for _, a := range p.Budget.Adjustments {
		s.Adjustments = append(s.Adjustments, AdjustmentSetting{
			Type:    Text(string(a.Trigger)),
			Trigger: Int(a.Value),
			Amount:  dec(a.Amount),
			Desc:    Text(a.Label),
		})
	}
	return s
}

func dec(d decimal.Decimal) Value {
	return Value{raw: d.String(), set: true}
}
