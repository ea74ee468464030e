package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/networth-planner/internal/domain"
)

// column renders one table column of a record.
type column struct {
	Header string
	Value  func(tableRow) string
}

// fullColumns mirror the tabular export.
var fullColumns = []column{
	{"Date", func(r tableRow) string { return r.Date }},
	{"Age", func(r tableRow) string { return r.AgeLabel }},
	{"Phase", phaseCell},
	{"Beg. Net Worth", func(r tableRow) string { return FormatCurrency(r.StartBalance) }},
	{"Income (SS)", func(r tableRow) string { return FormatCurrency(r.SSIncome) }},
	{"Dynamic Expenses", func(r tableRow) string { return FormatCurrency(r.Expenses) }},
	{"Est. Taxes", func(r tableRow) string { return FormatCurrency(r.Taxes) }},
	{"Net Flow", func(r tableRow) string { return FormatCurrency(r.NetFlow) }},
	{"Inv. Growth (Real)", func(r tableRow) string { return FormatCurrency(r.Growth) }},
	{"End Net Worth", func(r tableRow) string { return FormatCurrency(r.EndBalance) }},
	{"End Trad", func(r tableRow) string { return FormatCurrency(r.Accounts.TaxDeferred.End) }},
	{"End Roth", func(r tableRow) string { return FormatCurrency(r.Accounts.TaxFreeInvested.End) }},
	{"End Cash", func(r tableRow) string { return FormatCurrency(r.Accounts.TaxFreeCash.End) }},
	{"End Home", func(r tableRow) string { return FormatCurrency(r.Accounts.HomeEquity.End) }},
}

// compactColumns fit a terminal.
var compactColumns = []column{
	fullColumns[0], fullColumns[1], fullColumns[2], fullColumns[3],
	fullColumns[4], fullColumns[5], fullColumns[6], fullColumns[9],
}

func phaseCell(r tableRow) string {
	s := string(r.Phase)
	if r.CrashTriggered {
		s += " (crash)"
	}
	if r.Flexed {
		s += " (flex)"
	}
	return s
}

// MarkdownFormatter renders a summary and the selected view as a GFM table.
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(proj *domain.Projection, view View) ([]byte, error) {
	return markdownDocument(proj, view, fullColumns)
}

func markdownDocument(proj *domain.Projection, view View, cols []column) ([]byte, error) {
	rows, err := rowsFor(proj, view)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# Net Worth Projection")
	fmt.Fprintln(&buf)
	for _, line := range summaryLines(proj) {
		fmt.Fprintf(&buf, "- %s\n", line)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "## Assumptions")
	fmt.Fprintln(&buf)
	for _, a := range GenerateAssumptions(proj.Params) {
		fmt.Fprintf(&buf, "- %s\n", a)
	}
	fmt.Fprintln(&buf)
	if view == ViewYearly {
		fmt.Fprintln(&buf, "## Yearly records")
	} else {
		fmt.Fprintln(&buf, "## Monthly records")
	}
	fmt.Fprintln(&buf)
	writeTable(&buf, rows, cols)
	return buf.Bytes(), nil
}

// summaryLines are the headline facts shared by the document formatters.
func summaryLines(proj *domain.Projection) []string {
	a := AnalyzeProjection(proj)
	lines := []string{fmt.Sprintf("Calculation mode: %s", proj.Params.Mode)}
	if proj.SWRAge != nil {
		lines = append(lines, fmt.Sprintf("Retirement age by SWR: %s", proj.SWRAge))
	}
	if proj.SafeRetirementAge != nil {
		lines = append(lines, fmt.Sprintf("Safe retirement age: %s", proj.SafeRetirementAge))
	}
	lines = append(lines,
		fmt.Sprintf("Projected retirement age: %d", proj.EffectiveRetirementAge),
		fmt.Sprintf("Starting net worth: %s", FormatCurrency(proj.Summary.StartingNetWorth)),
		fmt.Sprintf("Net worth at retirement: %s", FormatCurrency(proj.Summary.NetWorthAtRetirement)),
		fmt.Sprintf("End of plan net worth: %s", FormatCurrency(proj.Summary.EndOfPlanNetWorth)),
	)
	if a.PeakLabel != "" {
		lines = append(lines, fmt.Sprintf("Peak net worth: %s (%s)", FormatCurrency(a.PeakNetWorth), a.PeakLabel))
	}
	if a.CashOverdrawnMonths > 0 {
		lines = append(lines, fmt.Sprintf("Cash overdrawn in %d month(s)", a.CashOverdrawnMonths))
	}
	if a.FlexedMonths > 0 {
		lines = append(lines, fmt.Sprintf("Spending flexed in %d month(s)", a.FlexedMonths))
	}
	return lines
}

func writeTable(buf *bytes.Buffer, rows []tableRow, cols []column) {
	headers := make([]string, len(cols))
	rules := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
		rules[i] = "---"
		if i > 2 {
			rules[i] = "---:"
		}
	}
	fmt.Fprintf(buf, "| %s |\n", strings.Join(headers, " | "))
	fmt.Fprintf(buf, "| %s |\n", strings.Join(rules, " | "))
	cells := make([]string, len(cols))
	for _, r := range rows {
		for i, c := range cols {
			cells[i] = escapeCell(c.Value(r))
		}
		fmt.Fprintf(buf, "| %s |\n", strings.Join(cells, " | "))
	}
}

func escapeCell(s string) string { return strings.ReplaceAll(s, "|", `\|`) }
