package calculation

import (
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/pkg/dateutil"
	"github.com/rpgo/networth-planner/pkg/finmath"
)

// SWRAge returns the primary person's age in the first month in which the
// liquid accounts reach the portfolio implied by the safe withdrawal rate:
// annual expenses grossed up by the state rate, divided by the rate. Balances
// only grow and receive full contributions; nothing is withdrawn. When the
// target is never reached the horizon age is returned with Exhausted set.
func (e *Engine) SWRAge(p *domain.Params) domain.SafeAge {
	log := e.logger()

	investRate := finmath.MonthlyRate(p.InvestedReturn)
	cashRate := finmath.MonthlyRate(p.CashReturn)
	homeRate := finmath.MonthlyRate(p.HomeAppreciation)
	grossUp := one.Add(finmath.FromPercent(p.StateTaxRate))
	rate := finmath.FromPercent(p.SWRRate)
	paydown := finmath.Monthly(p.AnnualMortgagePrincipal)

	contrib := domain.Accounts{
		TaxDeferred:     finmath.Monthly(p.Contributions.TaxDeferred),
		TaxFreeInvested: finmath.Monthly(p.Contributions.TaxFreeInvested),
		TaxFreeCash:     finmath.Monthly(p.Contributions.TaxFreeCash),
	}
	l := newLedger(p.Balances)
	date := dateutil.FirstOfMonth(p.StartYear, p.StartMonth)

	for i, total := 0, p.TotalMonths(); i < total; i++ {
		year, month := date.Year(), date.Month()
		age, _ := dateutil.SplitMonths(p.Primary.AgeInMonths(year, month))

		if rate.IsPositive() {
			gross := p.Budget.AnnualAt(year, age).Mul(grossUp)
			target := gross.Div(rate)
			if target.IsPositive() && l.bal.Liquid().GreaterThanOrEqual(target) {
				log.Debugf("SWR target %s reached in %s at age %d", target.StringFixed(2), dateutil.MonthLabel(date), age)
				return domain.SafeAge{Age: age}
			}
		}

		l.open()
		l.grow(domain.TaxDeferred, investRate)
		l.grow(domain.TaxFreeInvested, investRate)
		l.grow(domain.TaxFreeCash, cashRate)
		l.grow(domain.HomeEquity, homeRate)
		for _, kind := range []domain.AccountKind{domain.TaxDeferred, domain.TaxFreeInvested, domain.TaxFreeCash} {
			l.contribute(kind, *contrib.Of(kind))
		}
		if year <= p.MortgagePayoffYear {
			l.paydown(paydown)
		}

		date = dateutil.AddMonths(date, 1)
	}

	log.Debugf("SWR target not reached before age %d", p.Horizon())
	return domain.SafeAge{Age: p.Horizon(), Exhausted: true}
}

// EffectiveRetirementAge is the SWR age in SWR mode and the configured
// retirement age otherwise.
func (e *Engine) EffectiveRetirementAge(p *domain.Params) int {
	if p.Mode == domain.ModeSWR {
		return e.SWRAge(p).Age
	}
	return p.Primary.RetirementAge
}
