package output

import (
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// Analysis collects headline observations about a projection beyond its
// summary figures.
type Analysis struct {
	PeakNetWorth        decimal.Decimal
	PeakLabel           string
	LowestLiquid        decimal.Decimal
	LowestLiquidLabel   string
	RetirementLabel     string
	CashOverdrawnMonths int
	FlexedMonths        int
	TotalSSIncome       decimal.Decimal
	TotalExpenses       decimal.Decimal
	TotalTaxes          decimal.Decimal
}

// AnalyzeProjection scans the monthly records once. RetirementLabel is empty
// when the household never stops working within the horizon.
func AnalyzeProjection(proj *domain.Projection) Analysis {
	var a Analysis
	if proj == nil || len(proj.Months) == 0 {
		return a
	}
	for i, m := range proj.Months {
		liquid := m.Accounts.TaxDeferred.End.Add(m.Accounts.TaxFreeInvested.End).Add(m.Accounts.TaxFreeCash.End)
		if i == 0 || m.EndBalance.GreaterThan(a.PeakNetWorth) {
			a.PeakNetWorth = m.EndBalance
			a.PeakLabel = m.Label
		}
		if i == 0 || liquid.LessThan(a.LowestLiquid) {
			a.LowestLiquid = liquid
			a.LowestLiquidLabel = m.Label
		}
		if a.RetirementLabel == "" && m.Phase != domain.PhaseWorking {
			a.RetirementLabel = m.Label
		}
		if m.Accounts.TaxFreeCash.End.IsNegative() {
			a.CashOverdrawnMonths++
		}
		if m.Flexed {
			a.FlexedMonths++
		}
		a.TotalSSIncome = a.TotalSSIncome.Add(m.SSIncome)
		a.TotalExpenses = a.TotalExpenses.Add(m.Expenses)
		a.TotalTaxes = a.TotalTaxes.Add(m.Taxes)
	}
	return a
}
