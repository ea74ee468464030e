package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestAccountFlowExpected(t *testing.T) {
	f := AccountFlow{
		Start:         d(1000),
		Crash:         d(300),
		Growth:        d(10),
		Contribution:  d(100),
		Surplus:       d(5),
		TransferIn:    d(20),
		DrawnExpenses: d(50),
		DrawnBuffer:   d(15),
		Tax:           d(7),
	}
	assert.True(t, d(763).Equal(f.Expected()), "got %s", f.Expected())
}

func TestAccountFlowsOf(t *testing.T) {
	var flows AccountFlows
	for i, kind := range AccountKinds {
		flows.Of(kind).End = d(int64(i + 1))
	}
	assert.True(t, d(1).Equal(flows.TaxDeferred.End))
	assert.True(t, d(2).Equal(flows.TaxFreeInvested.End))
	assert.True(t, d(3).Equal(flows.TaxFreeCash.End))
	assert.True(t, d(4).Equal(flows.HomeEquity.End))
}

func TestAccountKindString(t *testing.T) {
	assert.Equal(t, "Trad", TaxDeferred.String())
	assert.Equal(t, "Roth", TaxFreeInvested.String())
	assert.Equal(t, "Cash", TaxFreeCash.String())
	assert.Equal(t, "Home", HomeEquity.String())
	assert.Equal(t, "Unknown", AccountKind(9).String())
}

func month(m time.Month, phase Phase, start, end int64) MonthlyRecord {
	r := MonthlyRecord{Year: 2025, Month: m, Phase: phase, AgeLabel: "40y " + m.String()}
	r.StartBalance = d(start)
	r.EndBalance = d(end)
	r.Expenses = d(100)
	r.Taxes = d(10)
	r.Accounts.TaxDeferred = AccountFlow{Start: d(start), Growth: d(1), End: d(end)}
	return r
}

func TestYearlyRecordAggregation(t *testing.T) {
	months := []MonthlyRecord{
		month(time.January, PhaseRetired, 1000, 990),
		month(time.February, PhaseTransition, 990, 980),
		month(time.March, PhaseRetired, 980, 970),
	}
	months[1].CrashTriggered = true

	y := NewYearlyRecord(months[0])
	for _, m := range months {
		y.Add(m)
	}

	require.Equal(t, 3, y.Months)
	assert.Equal(t, "2025", y.Label)
	assert.True(t, d(1000).Equal(y.StartBalance))
	assert.True(t, d(970).Equal(y.EndBalance))
	assert.True(t, d(300).Equal(y.Expenses))
	assert.True(t, d(30).Equal(y.Taxes))
	assert.True(t, d(3).Equal(y.Accounts.TaxDeferred.Growth))
	assert.True(t, d(1000).Equal(y.Accounts.TaxDeferred.Start))
	assert.True(t, d(970).Equal(y.Accounts.TaxDeferred.End))
	assert.Equal(t, PhaseTransition, y.Phase)
	assert.Equal(t, months[2].AgeLabel, y.AgeLabel)
	assert.True(t, y.CrashTriggered)
	assert.False(t, y.Flexed)
}

func TestYearlyPhasePrecedence(t *testing.T) {
	tests := []struct {
		name   string
		phases []Phase
		want   Phase
	}{
		{"all retired", []Phase{PhaseRetired, PhaseRetired}, PhaseRetired},
		{"transition beats retired", []Phase{PhaseRetired, PhaseTransition}, PhaseTransition},
		{"working beats transition", []Phase{PhaseTransition, PhaseWorking, PhaseRetired}, PhaseWorking},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := month(time.January, tt.phases[0], 0, 0)
			y := NewYearlyRecord(first)
			for _, p := range tt.phases {
				y.Add(month(time.January, p, 0, 0))
			}
			assert.Equal(t, tt.want, y.Phase)
		})
	}
}

func TestSafeAgeString(t *testing.T) {
	assert.Equal(t, "58", SafeAge{Age: 58}.String())
	assert.Equal(t, "100+", SafeAge{Age: 100, Exhausted: true}.String())
}
