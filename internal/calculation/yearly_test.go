package calculation

import (
	"testing"
	"time"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateYears(t *testing.T) {
	p := richHousehold()
	p.StartMonth = time.April
	run := NewEngine().Project(&p, 55)
	years := AggregateYears(run.Months)

	require.NotEmpty(t, years)
	assert.Equal(t, 2025, years[0].Year)
	assert.Equal(t, 9, years[0].Months, "partial first year")

	total := 0
	idx := 0
	for _, y := range years {
		total += y.Months
		months := run.Months[idx : idx+y.Months]
		idx += y.Months

		first, last := months[0], months[len(months)-1]
		assert.True(t, first.StartBalance.Equal(y.StartBalance))
		assert.True(t, last.EndBalance.Equal(y.EndBalance))
		assert.Equal(t, last.AgeLabel, y.AgeLabel)

		expenses, taxes, growth, netFlow := dec("0"), dec("0"), dec("0"), dec("0")
		sawWorking, sawTransition := false, false
		for _, m := range months {
			require.Equal(t, y.Year, m.Year)
			expenses = expenses.Add(m.Expenses)
			taxes = taxes.Add(m.Taxes)
			growth = growth.Add(m.Growth)
			netFlow = netFlow.Add(m.NetFlow)
			sawWorking = sawWorking || m.Phase == domain.PhaseWorking
			sawTransition = sawTransition || m.Phase == domain.PhaseTransition
		}
		assert.True(t, expenses.Equal(y.Expenses), "%d expenses", y.Year)
		assert.True(t, taxes.Equal(y.Taxes), "%d taxes", y.Year)
		assert.True(t, growth.Equal(y.Growth), "%d growth", y.Year)
		assert.True(t, netFlow.Equal(y.NetFlow), "%d net flow", y.Year)

		switch {
		case sawWorking:
			assert.Equal(t, domain.PhaseWorking, y.Phase)
		case sawTransition:
			assert.Equal(t, domain.PhaseTransition, y.Phase)
		default:
			assert.Equal(t, domain.PhaseRetired, y.Phase)
		}

		for _, kind := range domain.AccountKinds {
			f := y.Accounts.Of(kind)
			assert.True(t, f.Expected().Equal(f.End), "%d %s reconciles", y.Year, kind)
		}
	}
	assert.Equal(t, len(run.Months), total)
}

func TestAggregateYearsEmpty(t *testing.T) {
	assert.Empty(t, AggregateYears(nil))
}

func TestSummarize(t *testing.T) {
	p := lateSaver()
	run := NewEngine().Project(&p, 65)
	s := Summarize(run.Months)

	assert.True(t, dec("220000").Equal(s.StartingNetWorth))
	assert.True(t, run.Months[300].StartBalance.Equal(s.NetWorthAtRetirement))
	assert.True(t, run.EndBalance.Equal(s.EndOfPlanNetWorth))

	assert.True(t, Summarize(nil).StartingNetWorth.IsZero())
}
