package calculation

import (
	"testing"
	"time"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/stretchr/testify/assert"
)

// lateSaver runs out of money unless the primary person works until 61.
func lateSaver() domain.Params {
	p := withExpenses(singleSaver(), "72000")
	p.HorizonAge = 90
	p.Balances = domain.Accounts{TaxDeferred: dec("150000"), TaxFreeInvested: dec("50000"), TaxFreeCash: dec("20000")}
	p.Contributions = domain.Accounts{TaxDeferred: dec("12000"), TaxFreeInvested: dec("6000")}
	p.InvestedReturn = dec("5")
	p.CashReturn = dec("1.5")
	return p
}

func TestSafeRetirementAge(t *testing.T) {
	p := lateSaver()
	engine := NewEngine()

	got := engine.SafeRetirementAge(&p)
	assert.Equal(t, domain.SafeAge{Age: 61}, got)
	assert.Equal(t, "61", got.String())

	assert.False(t, engine.Project(&p, 60).EndBalance.IsPositive())
	assert.True(t, engine.Project(&p, 61).EndBalance.IsPositive())
}

func TestSafeRetirementAgeIdempotent(t *testing.T) {
	p := lateSaver()
	engine := NewEngine()
	assert.Equal(t, engine.SafeRetirementAge(&p), engine.SafeRetirementAge(&p))
}

func TestSafeRetirementAgeParallelMatchesSequential(t *testing.T) {
	p := lateSaver()
	sequential := NewEngine().SafeRetirementAge(&p)

	for _, workers := range []int{0, 2, 3, 4, 8, 64} {
		engine := NewEngine()
		engine.Workers = workers
		assert.Equal(t, sequential, engine.SafeRetirementAge(&p), "workers=%d", workers)
	}
}

func TestSafeRetirementAgeStartsAtThirty(t *testing.T) {
	p := singleSaver()
	p.Primary.BirthYear = 2005
	p.HorizonAge = 40
	assert.Equal(t, domain.SafeAge{Age: 30}, NewEngine().SafeRetirementAge(&p))
}

func TestSafeRetirementAgeStartsAtCurrentAge(t *testing.T) {
	p := singleSaver()
	p.Primary.BirthMonth = time.June
	p.HorizonAge = 45
	assert.Equal(t, domain.SafeAge{Age: 39}, NewEngine().SafeRetirementAge(&p))
}

func TestSafeRetirementAgeExhausted(t *testing.T) {
	p := singleSaver()
	p.HorizonAge = 45
	p.Balances.TaxFreeCash = dec("-1000")

	for _, workers := range []int{1, 4} {
		engine := NewEngine()
		engine.Workers = workers
		got := engine.SafeRetirementAge(&p)
		assert.Equal(t, domain.SafeAge{Age: 45, Exhausted: true}, got)
		assert.Equal(t, "45+", got.String())
	}
}
