package output

import (
	"fmt"

	"github.com/rpgo/networth-planner/internal/calculation"
	"github.com/rpgo/networth-planner/internal/domain"
)

// tableRow is the view-independent shape of one displayed record.
type tableRow struct {
	Date           string
	AgeLabel       string
	Phase          domain.Phase
	Flexed         bool
	CrashTriggered bool
	domain.Totals
}

func rowsFor(proj *domain.Projection, view View) ([]tableRow, error) {
	if proj == nil {
		return nil, ErrNoProjection
	}
	switch view {
	case ViewMonthly, "":
		rows := make([]tableRow, len(proj.Months))
		for i, m := range proj.Months {
			rows[i] = tableRow{m.Label, m.AgeLabel, m.Phase, m.Flexed, m.CrashTriggered, m.Totals}
		}
		return rows, nil
	case ViewYearly:
		years := proj.Years
		if years == nil && len(proj.Months) > 0 {
			years = calculation.AggregateYears(proj.Months)
		}
		rows := make([]tableRow, len(years))
		for i, y := range years {
			rows[i] = tableRow{y.Label, y.AgeLabel, y.Phase, y.Flexed, y.CrashTriggered, y.Totals}
		}
		return rows, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedView, view)
}

// exportHeader is the fixed column order of the tabular export.
var exportHeader = []string{
	"Date", "Age", "Phase", "Beg. Net Worth", "Income (SS)", "Dynamic Expenses", "Est. Taxes",
	"Net Flow", "Inv. Growth (Real)", "End Net Worth", "End Trad", "End Roth", "End Cash", "End Home",
}

func (r tableRow) exportRecord() []string {
	return []string{
		r.Date,
		r.AgeLabel,
		string(r.Phase),
		r.StartBalance.StringFixed(2),
		r.SSIncome.StringFixed(2),
		r.Expenses.StringFixed(2),
		r.Taxes.StringFixed(2),
		r.NetFlow.StringFixed(2),
		r.Growth.StringFixed(2),
		r.EndBalance.StringFixed(2),
		r.Accounts.TaxDeferred.End.StringFixed(2),
		r.Accounts.TaxFreeInvested.End.StringFixed(2),
		r.Accounts.TaxFreeCash.End.StringFixed(2),
		r.Accounts.HomeEquity.End.StringFixed(2),
	}
}
