package calculation

import "github.com/rpgo/networth-planner/internal/domain"

// AggregateYears folds monthly records into calendar-year records. Records
// must be in date order; a partial first or last year yields a partial record.
func AggregateYears(months []domain.MonthlyRecord) []domain.YearlyRecord {
	var years []domain.YearlyRecord
	for _, m := range months {
		if len(years) == 0 || years[len(years)-1].Year != m.Year {
			years = append(years, domain.NewYearlyRecord(m))
		}
		years[len(years)-1].Add(m)
	}
	return years
}

// Summarize computes the headline figures of a run.
func Summarize(months []domain.MonthlyRecord) domain.Summary {
	var s domain.Summary
	if len(months) == 0 {
		return s
	}
	s.StartingNetWorth = months[0].StartBalance
	s.EndOfPlanNetWorth = months[len(months)-1].EndBalance
	s.NetWorthAtRetirement = s.EndOfPlanNetWorth
	for _, m := range months {
		if m.Phase != domain.PhaseWorking {
			s.NetWorthAtRetirement = m.StartBalance
			break
		}
	}
	return s
}
