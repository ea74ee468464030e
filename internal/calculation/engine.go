package calculation

import (
	"fmt"
	"time"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/pkg/dateutil"
	"github.com/rpgo/networth-planner/pkg/finmath"
	"github.com/shopspring/decimal"
)

// notRetiring marks a household with no working member left, so no
// retirement date bounds the buffer build window.
const notRetiring = 9999

// minSafeAge is the youngest retirement age the safe-age search considers.
const minSafeAge = 30

var (
	half      = decimal.NewFromFloat(0.5)
	flexSWR52 = decimal.NewFromFloat(5.2)
	flexSWR45 = decimal.NewFromFloat(4.5)
	flexCut10 = decimal.NewFromFloat(0.90)
	flexCut5  = decimal.NewFromFloat(0.95)
	twelveDec = decimal.NewFromInt(12)
)

// Engine runs the monthly net-worth projection and the searches built on it.
// An Engine holds no per-run state and may be shared between goroutines.
type Engine struct {
	Logger  Logger
	Debug   bool // log every simulated month
	Workers int  // parallel candidates per safe-age batch; 1 scans sequentially
}

// NewEngine creates an engine with a no-op logger that scans sequentially.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}, Workers: 1}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

func (e *Engine) logger() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}

// Run is the result of one projection pass.
type Run struct {
	RetirementAge int
	Months        []domain.MonthlyRecord
	EndBalance    decimal.Decimal
}

// household holds the values derived once per run from the parameters.
type household struct {
	p     *domain.Params
	taxes *TaxTable

	retirementAge       int
	spouse              domain.Person
	spouseRetirementAge int
	transitionContrib   decimal.Decimal
	bufferWindow        decimal.Decimal

	investRate decimal.Decimal
	cashRate   decimal.Decimal
	homeRate   decimal.Decimal
	contrib    domain.Accounts
	paydown    decimal.Decimal
}

func newHousehold(p *domain.Params, retirementAge int) *household {
	h := &household{
		p:                   p,
		taxes:               NewTaxTable(p.Adults, p.StateTaxRate),
		retirementAge:       retirementAge,
		spouse:              p.Spouse,
		spouseRetirementAge: p.Spouse.RetirementAge,
		transitionContrib:   half,
		bufferWindow:        decimal.NewFromInt(notRetiring),
		investRate:          finmath.MonthlyRate(p.InvestedReturn),
		cashRate:            finmath.MonthlyRate(p.CashReturn),
		homeRate:            finmath.MonthlyRate(p.HomeAppreciation),
		contrib: domain.Accounts{
			TaxDeferred:     finmath.Monthly(p.Contributions.TaxDeferred),
			TaxFreeInvested: finmath.Monthly(p.Contributions.TaxFreeInvested),
			TaxFreeCash:     finmath.Monthly(p.Contributions.TaxFreeCash),
		},
		paydown: finmath.Monthly(p.AnnualMortgagePrincipal),
	}

	if p.Advanced {
		h.transitionContrib = one.Sub(finmath.FromPercent(p.TransitionDropPercent))
		h.bufferWindow = p.BufferBuildYears.Mul(twelveDec)
	} else {
		// The second adult mirrors the primary and draws no benefit.
		h.spouse = domain.Person{
			BirthYear:        p.Primary.BirthYear,
			BirthMonth:       p.Primary.BirthMonth,
			RetirementAge:    retirementAge,
			SSClaimAge:       p.Primary.SSClaimAge,
			MonthlySSBenefit: decimal.Zero,
		}
		h.spouseRetirementAge = retirementAge
	}
	return h
}

// monthStatus is who is working in a given month.
type monthStatus struct {
	primaryMonths int
	spouseMonths  int
	primary       domain.Age
	spouse        domain.Age

	primaryRetired bool
	spouseRetired  bool

	working      decimal.Decimal
	contribution decimal.Decimal
	phase        domain.Phase
}

func (h *household) status(year int, month time.Month) monthStatus {
	var s monthStatus
	s.primaryMonths = h.p.Primary.AgeInMonths(year, month)
	s.spouseMonths = h.spouse.AgeInMonths(year, month)
	s.primary.Years, s.primary.Months = dateutil.SplitMonths(s.primaryMonths)
	s.spouse.Years, s.spouse.Months = dateutil.SplitMonths(s.spouseMonths)

	s.primaryRetired = s.primaryMonths >= h.retirementAge*12
	s.spouseRetired = true
	if h.p.Joint() {
		if h.p.Mode == domain.ModeSWR {
			s.spouseRetired = s.primaryRetired
		} else {
			s.spouseRetired = s.spouseMonths >= h.spouseRetirementAge*12
		}
	}

	switch {
	case !h.p.Joint():
		if s.primaryRetired {
			s.working, s.contribution = decimal.Zero, decimal.Zero
		} else {
			s.working, s.contribution = one, one
		}
	case s.primaryRetired && s.spouseRetired:
		s.working, s.contribution = decimal.Zero, decimal.Zero
	case !s.primaryRetired && !s.spouseRetired:
		s.working, s.contribution = one, one
	default:
		s.working, s.contribution = half, h.transitionContrib
	}

	switch {
	case s.working.Equal(one):
		s.phase = domain.PhaseWorking
	case s.working.IsZero():
		s.phase = domain.PhaseRetired
	default:
		s.phase = domain.PhaseTransition
	}
	return s
}

// monthsUntilRetirement counts the months until the next member of the
// household stops working.
func (h *household) monthsUntilRetirement(s monthStatus) int {
	primaryLeft := h.retirementAge*12 - s.primaryMonths
	if !h.p.Joint() {
		if s.primaryRetired {
			return notRetiring
		}
		return primaryLeft
	}
	if h.p.Mode == domain.ModeSWR {
		if s.primaryRetired {
			return 0
		}
		return primaryLeft
	}
	spouseLeft := h.spouseRetirementAge*12 - s.spouseMonths
	switch {
	case !s.primaryRetired && !s.spouseRetired:
		return min(primaryLeft, spouseLeft)
	case !s.primaryRetired:
		return primaryLeft
	case !s.spouseRetired:
		return spouseLeft
	}
	return notRetiring
}

func (h *household) socialSecurity(s monthStatus) decimal.Decimal {
	income := decimal.Zero
	if s.primaryMonths >= h.p.Primary.SSClaimAge*12 {
		income = income.Add(h.p.Primary.MonthlySSBenefit)
	}
	if h.p.Joint() && s.spouseMonths >= h.spouse.SSClaimAge*12 {
		income = income.Add(h.spouse.MonthlySSBenefit)
	}
	return income
}

// flexFactor returns the spending cut taken after a crash at the higher
// withdrawal rates.
func flexFactor(swrRate decimal.Decimal) (decimal.Decimal, bool) {
	switch {
	case swrRate.Equal(flexSWR52):
		return flexCut10, true
	case swrRate.Equal(flexSWR45):
		return flexCut5, true
	}
	return decimal.Zero, false
}

func ageLabel(p *domain.Params, s monthStatus) string {
	if p.Joint() && p.Advanced {
		return fmt.Sprintf("P1: %d | P2: %d", s.primary.Years, s.spouse.Years)
	}
	return fmt.Sprintf("%dy %dm", s.primary.Years, s.primary.Months)
}

// Project simulates the household month by month assuming the primary person
// retires at retirementAge. Params are only read.
func (e *Engine) Project(p *domain.Params, retirementAge int) Run {
	log := e.logger()
	h := newHousehold(p, retirementAge)
	l := newLedger(p.Balances)

	total := p.TotalMonths()
	run := Run{RetirementAge: retirementAge, Months: make([]domain.MonthlyRecord, 0, total)}
	date := dateutil.FirstOfMonth(p.StartYear, p.StartMonth)
	crashed := false

	for i := 0; i < total; i++ {
		year, month := date.Year(), date.Month()
		s := h.status(year, month)
		l.open()

		annual := p.Budget.AnnualAt(year, s.primary.Years)
		flexed := false
		if crashed && s.working.IsZero() && p.Mode == domain.ModeSWR {
			if factor, ok := flexFactor(p.SWRRate); ok {
				annual = finmath.Round(annual.Mul(factor))
				flexed = true
			}
		}
		expenses := finmath.Monthly(annual)

		ss := h.socialSecurity(s)
		taxableSS, ssTax := h.taxes.SocialSecurityTax(ss)

		startTotal := l.total()

		crashNow := p.Crash.Enabled && s.primary.Years == p.Crash.Age && s.primary.Months == 0
		crashLoss := decimal.Zero
		if crashNow {
			crashLoss = l.crash(p.Crash.Percent)
			crashed = true
			log.Debugf("crash of %s%% applied in %s: invested accounts lost %s",
				p.Crash.Percent.String(), dateutil.MonthLabel(date), crashLoss.StringFixed(2))
		}

		moTrad := finmath.Round(h.contrib.TaxDeferred.Mul(s.contribution))
		moRoth := finmath.Round(h.contrib.TaxFreeInvested.Mul(s.contribution))
		moCash := finmath.Round(h.contrib.TaxFreeCash.Mul(s.contribution))

		untilRetirement := h.monthsUntilRetirement(s)
		if p.TargetBufferYears.IsPositive() && untilRetirement > 0 {
			target := finmath.Round(annual.Mul(p.TargetBufferYears))
			cashNeeded := finmath.NonNegative(target.Sub(l.bal.TaxFreeCash))
			inWindow := decimal.NewFromInt(int64(untilRetirement)).LessThanOrEqual(h.bufferWindow)
			if cashNeeded.IsPositive() && moRoth.IsPositive() && inWindow {
				divert := decimal.Min(moRoth, cashNeeded)
				moCash = moCash.Add(divert)
				moRoth = moRoth.Sub(divert)
			}
		}

		growth := l.grow(domain.TaxDeferred, h.investRate).
			Add(l.grow(domain.TaxFreeInvested, h.investRate)).
			Add(l.grow(domain.TaxFreeCash, h.cashRate)).
			Add(l.grow(domain.HomeEquity, h.homeRate))

		l.contribute(domain.TaxDeferred, moTrad)
		l.contribute(domain.TaxFreeInvested, moRoth)
		l.contribute(domain.TaxFreeCash, moCash)
		if year <= p.MortgagePayoffYear {
			l.paydown(h.paydown)
		}

		salary := finmath.Round(expenses.Mul(s.working))
		shortfall := expenses.Sub(ss).Add(ssTax).Sub(salary)
		taxes := ssTax
		income := taxableSS.Add(salary)
		surplus := decimal.Zero

		if shortfall.IsPositive() {
			d := l.drawTaxDeferred(h.taxes, shortfall, income, LowRateCap, forExpenses)
			shortfall = shortfall.Sub(d.Net)
			taxes = taxes.Add(d.Tax)
			income = d.Income

			if shortfall.IsPositive() {
				shortfall = shortfall.Sub(l.withdraw(domain.TaxFreeCash, shortfall, forExpenses))
			}
			if shortfall.IsPositive() {
				shortfall = shortfall.Sub(l.withdraw(domain.TaxFreeInvested, shortfall, forExpenses))
			}
			if shortfall.IsPositive() {
				d := l.drawTaxDeferred(h.taxes, shortfall, income, NoRateCap, forExpenses)
				shortfall = shortfall.Sub(d.Net)
				taxes = taxes.Add(d.Tax)
				income = d.Income
			}
			if shortfall.IsPositive() {
				l.overdraw(shortfall)
				log.Debugf("cash overdrawn by %s in %s", shortfall.StringFixed(2), dateutil.MonthLabel(date))
			}
		} else {
			surplus = shortfall.Neg()
			l.deposit(surplus)
		}

		if s.working.IsZero() && p.TargetBufferYears.IsPositive() {
			needed := finmath.Round(annual.Mul(p.TargetBufferYears)).Sub(l.bal.TaxFreeCash)
			if needed.IsPositive() {
				d := l.drawTaxDeferred(h.taxes, needed, income, LowRateCap, forBuffer)
				l.transferIn(d.Net)
				needed = needed.Sub(d.Net)
				taxes = taxes.Add(d.Tax)
				income = d.Income
				if needed.IsPositive() {
					l.transferIn(l.withdraw(domain.TaxFreeInvested, needed, forBuffer))
				}
			}
		}

		l.close()
		endTotal := l.total()

		rec := domain.MonthlyRecord{
			Date:           date,
			Year:           year,
			Month:          month,
			Label:          dateutil.MonthLabel(date),
			AgeLabel:       ageLabel(p, s),
			Primary:        s.primary,
			Spouse:         s.spouse,
			Phase:          s.phase,
			Flexed:         flexed,
			CrashTriggered: crashNow,
		}
		rec.StartBalance = startTotal
		rec.SSIncome = ss
		rec.Expenses = expenses
		rec.Taxes = taxes
		rec.Contribution = moTrad.Add(moRoth).Add(moCash)
		rec.Surplus = surplus
		rec.Withdrawal = expenses.Sub(ss).Sub(salary)
		rec.CrashLoss = crashLoss
		rec.Growth = growth
		rec.NetFlow = endTotal.Sub(startTotal).Sub(growth)
		rec.EndBalance = endTotal
		rec.Accounts = l.flows
		run.Months = append(run.Months, rec)

		if e.Debug {
			log.Debugf("%s %s %s: start=%s expenses=%s taxes=%s end=%s", rec.Label, rec.AgeLabel, rec.Phase,
				startTotal.StringFixed(2), expenses.StringFixed(2), taxes.StringFixed(2), endTotal.StringFixed(2))
		}

		date = dateutil.AddMonths(date, 1)
	}

	run.EndBalance = l.total()
	return run
}
