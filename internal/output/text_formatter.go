package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// TextFormatter renders a plain fixed-width report with no markup.
type TextFormatter struct{}

func (t TextFormatter) Name() string { return "text" }

func (t TextFormatter) Format(proj *domain.Projection, view View) ([]byte, error) {
	rows, err := rowsFor(proj, view)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 96))
	fmt.Fprintln(&buf, "NET WORTH PROJECTION")
	fmt.Fprintln(&buf, strings.Repeat("=", 96))
	fmt.Fprintln(&buf)
	for _, line := range summaryLines(proj) {
		fmt.Fprintln(&buf, line)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(proj.Params) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writeRetirementComparison(&buf, proj.Months)

	fmt.Fprintf(&buf, "%-10s %-9s %15s %13s %13s %12s %13s %15s\n",
		"DATE", "PHASE", "BEG NET WORTH", "INCOME (SS)", "EXPENSES", "TAXES", "NET FLOW", "END NET WORTH")
	fmt.Fprintln(&buf, strings.Repeat("-", 106))
	for _, r := range rows {
		fmt.Fprintf(&buf, "%-10s %-9s %15s %13s %13s %12s %13s %15s\n",
			r.Date, r.Phase,
			FormatCurrency(r.StartBalance), FormatCurrency(r.SSIncome), FormatCurrency(r.Expenses),
			FormatCurrency(r.Taxes), FormatCurrency(r.NetFlow), FormatCurrency(r.EndBalance))
	}
	return buf.Bytes(), nil
}

// writeRetirementComparison contrasts the last working month with the first
// month after work stops.
func writeRetirementComparison(buf *bytes.Buffer, months []domain.MonthlyRecord) {
	var working, retired *domain.MonthlyRecord
	for i := range months {
		if months[i].Phase == domain.PhaseWorking {
			working = &months[i]
			continue
		}
		retired = &months[i]
		break
	}
	if working == nil || retired == nil {
		return
	}
	title := fmt.Sprintf("WORKING (%s) vs RETIREMENT (%s)", working.Label, retired.Label)
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("=", len(title)))
	fmt.Fprintf(buf, "%-35s %15s %15s %15s\n", "COMPONENT", "WORKING", "RETIREMENT", "DIFFERENCE")
	fmt.Fprintln(buf, strings.Repeat("-", 83))
	cmpLine(buf, "Social Security", working.SSIncome, retired.SSIncome)
	cmpLine(buf, "Expenses", working.Expenses, retired.Expenses)
	cmpLine(buf, "Contributions", working.Contribution, retired.Contribution)
	cmpLine(buf, "Portfolio withdrawal", working.Withdrawal, retired.Withdrawal)
	cmpLine(buf, "Estimated taxes", working.Taxes, retired.Taxes)
	cmpLine(buf, "Investment growth", working.Growth, retired.Growth)
	fmt.Fprintln(buf, strings.Repeat("-", 83))
	cmpLine(buf, "NET FLOW", working.NetFlow, retired.NetFlow)
	fmt.Fprintln(buf)
}

func cmpLine(buf *bytes.Buffer, label string, working, retirement decimal.Decimal) {
	diff := retirement.Sub(working)
	fmt.Fprintf(buf, "%-35s %15s %15s %15s\n", label, FormatCurrency(working), FormatCurrency(retirement), FormatCurrency(diff))
}
