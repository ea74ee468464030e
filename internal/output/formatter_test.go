package output

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rpgo/networth-planner/internal/calculation"
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type monthFixture struct {
	year   int
	month  time.Month
	age    string
	phase  domain.Phase
	flexed bool
	// start, ss, expenses, taxes, net flow, growth, end, then trad, roth, cash, home ends
	values [11]string
}

func (f monthFixture) record() domain.MonthlyRecord {
	date := dateutil.FirstOfMonth(f.year, f.month)
	m := domain.MonthlyRecord{
		Date:     date,
		Year:     f.year,
		Month:    f.month,
		Label:    dateutil.MonthLabel(date),
		AgeLabel: f.age,
		Phase:    f.phase,
		Flexed:   f.flexed,
	}
	v := f.values
	m.StartBalance = dec(v[0])
	m.SSIncome = dec(v[1])
	m.Expenses = dec(v[2])
	m.Taxes = dec(v[3])
	m.NetFlow = dec(v[4])
	m.Growth = dec(v[5])
	m.EndBalance = dec(v[6])
	m.Accounts.TaxDeferred.End = dec(v[7])
	m.Accounts.TaxFreeInvested.End = dec(v[8])
	m.Accounts.TaxFreeCash.End = dec(v[9])
	m.Accounts.HomeEquity.End = dec(v[10])
	return m
}

// sampleProjection spans a calendar year boundary and the switch to retirement.
func sampleProjection() *domain.Projection {
	fixtures := []monthFixture{
		{2025, time.November, "40y 10m", domain.PhaseWorking, false, [11]string{"1000", "0", "300", "0", "200", "10", "1210", "500", "300", "110", "300"}},
		{2025, time.December, "40y 11m", domain.PhaseWorking, false, [11]string{"1210", "0", "300", "0", "200", "12", "1422", "600", "350", "172", "300"}},
		{2026, time.January, "P1: 41 | P2: 39", domain.PhaseRetired, true, [11]string{"1422", "100", "270", "15.5", "-185.5", "14", "1250.5", "450.5", "350", "-50", "500"}},
	}
	months := make([]domain.MonthlyRecord, len(fixtures))
	for i, f := range fixtures {
		months[i] = f.record()
	}
	return &domain.Projection{
		RunID: "run-1",
		Params: domain.Params{
			Mode:             domain.ModeFixed,
			InvestedReturn:   dec("5"),
			CashReturn:       dec("1.5"),
			HomeAppreciation: dec("1"),
			SWRRate:          dec("4"),
			Primary:          domain.Person{RetirementAge: 65},
		},
		EffectiveRetirementAge: 65,
		SafeRetirementAge:      &domain.SafeAge{Age: 61},
		Summary: domain.Summary{
			StartingNetWorth:     dec("1000"),
			NetWorthAtRetirement: dec("1422"),
			EndOfPlanNetWorth:    dec("1250.5"),
		},
		Months: months,
		Years:  calculation.AggregateYears(months),
	}
}

func lines(out []byte) []string {
	return strings.Split(strings.TrimSpace(string(out)), "\n")
}

func TestParseView(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  View
		err   bool
	}{
		{"blank defaults to monthly", "", ViewMonthly, false},
		{"monthly", "monthly", ViewMonthly, false},
		{"yearly upper case", " YEARLY ", ViewYearly, false},
		{"annual synonym", "annual", ViewYearly, false},
		{"unknown", "weekly", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseView(tt.input)
			if tt.err {
				assert.ErrorIs(t, err, ErrUnsupportedView)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatterRegistry(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"csv", "csv"},
		{"CSV-Yearly", "csv-yearly"},
		{"csv-annual", "csv-yearly"},
		{"detailed-csv", "csv-detailed"},
		{"md", "markdown"},
		{"terminal", "console"},
		{"plain", "text"},
		{"pdf", "pdf"},
		{"json-pretty", "json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.Name())
		})
	}
	assert.Nil(t, GetFormatterByName("definitely-not-a-format"))
	assert.Equal(t, []string{"console", "csv", "csv-detailed", "csv-yearly", "html", "json", "markdown", "pdf", "text"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "md")
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "csv", Extension("csv-yearly"))
	assert.Equal(t, "csv", Extension("detailed-csv"))
	assert.Equal(t, "md", Extension("markdown"))
	assert.Equal(t, "txt", Extension("console"))
	assert.Equal(t, "pdf", Extension("pdf"))
	assert.Equal(t, "html", Extension("html"))
}

func TestCSVFormatterMonthly(t *testing.T) {
	out, err := CSVFormatter{}.Format(sampleProjection(), ViewMonthly)
	require.NoError(t, err)
	rows := lines(out)
	require.Len(t, rows, 4)
	assert.Equal(t, "Date,Age,Phase,Beg. Net Worth,Income (SS),Dynamic Expenses,Est. Taxes,Net Flow,Inv. Growth (Real),End Net Worth,End Trad,End Roth,End Cash,End Home", rows[0])
	assert.Equal(t, "Nov 2025,40y 10m,Working,1000.00,0.00,300.00,0.00,200.00,10.00,1210.00,500.00,300.00,110.00,300.00", rows[1])
	assert.Equal(t, "Jan 2026,P1: 41 | P2: 39,Retired,1422.00,100.00,270.00,15.50,-185.50,14.00,1250.50,450.50,350.00,-50.00,500.00", rows[3])
}

func TestCSVFormatterYearly(t *testing.T) {
	proj := sampleProjection()
	fromYears, err := CSVYearlyFormatter{}.Format(proj, ViewMonthly)
	require.NoError(t, err)
	rows := lines(fromYears)
	require.Len(t, rows, 3)
	assert.Equal(t, "2025,40y 11m,Working,1000.00,0.00,600.00,0.00,400.00,22.00,1422.00,600.00,350.00,172.00,300.00", rows[1])
	assert.True(t, strings.HasPrefix(rows[2], "2026,P1: 41 | P2: 39,Retired,1422.00,"))

	// Yearly records are rebuilt from the months when absent.
	proj.Years = nil
	rebuilt, err := CSVFormatter{}.Format(proj, ViewYearly)
	require.NoError(t, err)
	assert.Equal(t, string(fromYears), string(rebuilt))
}

func TestCSVHeaderGolden(t *testing.T) {
	out, err := CSVFormatter{}.Format(sampleProjection(), ViewYearly)
	require.NoError(t, err)
	golden, err := os.ReadFile(filepath.Join("testdata", "csv_header.golden"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), strings.TrimSpace(string(golden))))
}

func TestCSVDetailedExporter(t *testing.T) {
	out, err := CSVDetailedExporter{}.Format(sampleProjection(), ViewMonthly)
	require.NoError(t, err)
	rows := lines(out)
	require.Len(t, rows, 1+3*len(domain.AccountKinds))
	assert.True(t, strings.HasPrefix(rows[1], "Nov 2025,Working,Trad,"))
	assert.True(t, strings.HasPrefix(rows[4], "Nov 2025,Working,Home,"))
	assert.True(t, strings.HasSuffix(rows[9], ",450.50,true,false"), rows[9])
	assert.True(t, strings.HasPrefix(rows[11], "Jan 2026,Retired,Cash,"), rows[11])
	assert.True(t, strings.HasSuffix(rows[11], ",-50.00,true,false"), rows[11])
}

func TestFormattersRejectBadInput(t *testing.T) {
	for _, f := range builtInFormatters {
		t.Run(f.Name(), func(t *testing.T) {
			_, err := f.Format(nil, ViewMonthly)
			assert.ErrorIs(t, err, ErrNoProjection)
		})
	}
	_, err := CSVFormatter{}.Format(sampleProjection(), View("weekly"))
	assert.ErrorIs(t, err, ErrUnsupportedView)
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter.Format(sampleProjection(), ViewYearly)
	require.NoError(t, err)
	var decoded struct {
		RunID   string            `json:"run_id"`
		Months  []json.RawMessage `json:"months"`
		Years   []json.RawMessage `json:"years"`
		SafeAge *domain.SafeAge   `json:"safe_retirement_age"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "run-1", decoded.RunID)
	assert.Len(t, decoded.Months, 3)
	assert.Len(t, decoded.Years, 2)
	require.NotNil(t, decoded.SafeAge)
	assert.Equal(t, 61, decoded.SafeAge.Age)
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := MarkdownFormatter{}.Format(sampleProjection(), ViewMonthly)
	require.NoError(t, err)
	md := string(out)
	assert.True(t, strings.HasPrefix(md, "# Net Worth Projection\n"))
	assert.Contains(t, md, "- Safe retirement age: 61\n")
	assert.Contains(t, md, "- End of plan net worth: $1,250.50\n")
	assert.Contains(t, md, "- Peak net worth: $1,422.00 (Dec 2025)\n")
	assert.Contains(t, md, "- Spending flexed in 1 month(s)\n")
	assert.Contains(t, md, "## Monthly records")
	assert.Contains(t, md, "| Date | Age | Phase | Beg. Net Worth |")
	assert.Contains(t, md, `| Jan 2026 | P1: 41 \| P2: 39 | Retired (flex) | $1,422.00 |`)
}

func TestHTMLFormatter(t *testing.T) {
	defer func(prev func() time.Time) { nowFunc = prev }(nowFunc)
	nowFunc = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }

	out, err := HTMLFormatter{}.Format(sampleProjection(), ViewYearly)
	require.NoError(t, err)
	html := string(out)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<h1>Net Worth Projection</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<th>Date</th>")
	assert.Contains(t, html, "$1,250.50")
	assert.Contains(t, html, "Run run-1. Generated 15 June 2025 12:00.")
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(sampleProjection(), ViewYearly)
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "Net Worth Projection")
	assert.Contains(t, text, "Starting net worth: $1,000.00")
	assert.Contains(t, text, "Yearly records")
}

func TestTextFormatter(t *testing.T) {
	out, err := TextFormatter{}.Format(sampleProjection(), ViewMonthly)
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "NET WORTH PROJECTION")
	assert.Contains(t, text, "WORKING (Dec 2025) vs RETIREMENT (Jan 2026)")
	assert.Contains(t, text, "Social Security")
	assert.Contains(t, text, "Invested return: 5.00% annually")
	assert.Contains(t, text, "Nov 2025")
}

func TestPDFFormatter(t *testing.T) {
	out, err := PDFFormatter{}.Format(sampleProjection(), ViewMonthly)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF-"))
	assert.Contains(t, string(out), "%%EOF")
}

func TestWriteFormatted(t *testing.T) {
	defer func(prev func() time.Time) { nowFunc = prev }(nowFunc)
	nowFunc = func() time.Time { return time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC) }

	dir := filepath.Join(t.TempDir(), "reports")
	name, err := WriteFormatted(dir, CSVFormatter{}, sampleProjection(), ViewYearly, "csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "networth_yearly_20250615_123000.csv"), name)
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Len(t, lines(data), 3)
}

func TestGenerateReport(t *testing.T) {
	dir := t.TempDir()
	name, err := GenerateReport(dir, sampleProjection(), "md", ViewMonthly)
	require.NoError(t, err)
	assert.Equal(t, ".md", filepath.Ext(name))

	_, err = GenerateReport(dir, sampleProjection(), "definitely-not-a-format", ViewMonthly)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	assert.Contains(t, err.Error(), "Try one of:")
}

func TestFormatterFunc(t *testing.T) {
	f := FormatterFunc{ID: "count", F: func(p *domain.Projection, v View) ([]byte, error) {
		rows, err := rowsFor(p, v)
		return []byte(strings.Repeat("x", len(rows))), err
	}}
	out, err := f.Format(sampleProjection(), ViewYearly)
	require.NoError(t, err)
	assert.Equal(t, "count", f.Name())
	assert.Equal(t, "xx", string(out))
}
