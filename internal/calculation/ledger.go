package calculation

import (
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/pkg/finmath"
	"github.com/shopspring/decimal"
)

// drawPurpose says which flow component a withdrawal is booked against.
type drawPurpose int

const (
	forExpenses drawPurpose = iota
	forBuffer
)

// ledger is a run's working copy of the four balances together with the
// flow breakdown of the month in progress. Every change to a balance goes
// through a method that books it, so each account reconciles exactly.
type ledger struct {
	bal   domain.Accounts
	flows domain.AccountFlows
}

func newLedger(start domain.Accounts) *ledger {
	return &ledger{bal: start}
}

// open starts a new month.
func (l *ledger) open() {
	l.flows = domain.AccountFlows{}
	for _, kind := range domain.AccountKinds {
		l.flows.Of(kind).Start = *l.bal.Of(kind)
	}
}

// close records the end balances of the month.
func (l *ledger) close() {
	for _, kind := range domain.AccountKinds {
		l.flows.Of(kind).End = *l.bal.Of(kind)
	}
}

func (l *ledger) total() decimal.Decimal {
	return l.bal.Total()
}

// crash applies a percentage loss to both invested accounts.
func (l *ledger) crash(percent decimal.Decimal) decimal.Decimal {
	lost := decimal.Zero
	for _, kind := range []domain.AccountKind{domain.TaxDeferred, domain.TaxFreeInvested} {
		bal := l.bal.Of(kind)
		loss := finmath.Haircut(*bal, percent)
		*bal = bal.Sub(loss)
		f := l.flows.Of(kind)
		f.Crash = f.Crash.Add(loss)
		lost = lost.Add(loss)
	}
	return lost
}

func (l *ledger) grow(kind domain.AccountKind, rate decimal.Decimal) decimal.Decimal {
	bal := l.bal.Of(kind)
	g := finmath.Growth(*bal, rate)
	*bal = bal.Add(g)
	f := l.flows.Of(kind)
	f.Growth = f.Growth.Add(g)
	return g
}

func (l *ledger) contribute(kind domain.AccountKind, amount decimal.Decimal) {
	bal := l.bal.Of(kind)
	*bal = bal.Add(amount)
	f := l.flows.Of(kind)
	f.Contribution = f.Contribution.Add(amount)
}

func (l *ledger) paydown(amount decimal.Decimal) {
	l.bal.HomeEquity = l.bal.HomeEquity.Add(amount)
	l.flows.HomeEquity.Paydown = l.flows.HomeEquity.Paydown.Add(amount)
}

// deposit puts a surplus into the tax-free invested account.
func (l *ledger) deposit(amount decimal.Decimal) {
	l.bal.TaxFreeInvested = l.bal.TaxFreeInvested.Add(amount)
	l.flows.TaxFreeInvested.Surplus = l.flows.TaxFreeInvested.Surplus.Add(amount)
}

// transferIn moves money drawn elsewhere into the cash buffer.
func (l *ledger) transferIn(amount decimal.Decimal) {
	l.bal.TaxFreeCash = l.bal.TaxFreeCash.Add(amount)
	l.flows.TaxFreeCash.TransferIn = l.flows.TaxFreeCash.TransferIn.Add(amount)
}

// withdraw takes up to amount from a tax-free account, never more than its
// positive balance, and returns what was taken.
func (l *ledger) withdraw(kind domain.AccountKind, amount decimal.Decimal, purpose drawPurpose) decimal.Decimal {
	bal := l.bal.Of(kind)
	take := decimal.Min(amount, finmath.NonNegative(*bal))
	if !take.IsPositive() {
		return decimal.Zero
	}
	*bal = bal.Sub(take)
	l.book(kind, take, purpose)
	return take
}

// overdraw takes amount from cash unconditionally.
func (l *ledger) overdraw(amount decimal.Decimal) {
	l.bal.TaxFreeCash = l.bal.TaxFreeCash.Sub(amount)
	l.book(domain.TaxFreeCash, amount, forExpenses)
}

// drawTaxDeferred runs the bracket-fill withdrawal against the tax-deferred
// balance and books the net amount and the tax withheld.
func (l *ledger) drawTaxDeferred(t *TaxTable, net, income, maxRate decimal.Decimal, purpose drawPurpose) Draw {
	d := t.DrawFromTaxDeferred(net, income, maxRate, l.bal.TaxDeferred)
	l.bal.TaxDeferred = d.Remaining
	l.book(domain.TaxDeferred, d.Net, purpose)
	l.flows.TaxDeferred.Tax = l.flows.TaxDeferred.Tax.Add(d.Tax)
	return d
}

func (l *ledger) book(kind domain.AccountKind, amount decimal.Decimal, purpose drawPurpose) {
	f := l.flows.Of(kind)
	if purpose == forBuffer {
		f.DrawnBuffer = f.DrawnBuffer.Add(amount)
		return
	}
	f.DrawnExpenses = f.DrawnExpenses.Add(amount)
}
