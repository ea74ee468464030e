package output

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/rpgo/networth-planner/internal/domain"
)

const (
	pdfPageWidth    = 297.0
	pdfMarginLeft   = 15.0
	pdfMarginRight  = 15.0
	pdfMarginTop    = 15.0
	pdfMarginBottom = 15.0
	pdfContentWidth = pdfPageWidth - pdfMarginLeft - pdfMarginRight
	pdfRowHeight    = 5.5
)

// pdfColumns is the table layout; widths add up to the content width.
var pdfColumns = []struct {
	column
	Width float64
	Align string
}{
	{fullColumns[0], 20, "L"},
	{fullColumns[1], 28, "L"},
	{fullColumns[2], 24, "L"},
	{fullColumns[3], 27, "R"},
	{fullColumns[4], 22, "R"},
	{fullColumns[5], 24, "R"},
	{fullColumns[6], 21, "R"},
	{fullColumns[7], 24, "R"},
	{fullColumns[8], 25, "R"},
	{fullColumns[9], 27, "R"},
	{column{"Liquid", func(r tableRow) string {
		a := r.Accounts
		return FormatCurrency(a.TaxDeferred.End.Add(a.TaxFreeInvested.End).Add(a.TaxFreeCash.End))
	}}, 25, "R"},
}

// PDFFormatter produces an A4 landscape report with a summary box and the
// record table of the selected view.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(proj *domain.Projection, view View) ([]byte, error) {
	rows, err := rowsFor(proj, view)
	if err != nil {
		return nil, err
	}
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(true, pdfMarginBottom)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-10)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 12, "Net Worth Projection", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(pdfContentWidth, 5, fmt.Sprintf("Generated %s  -  run %s", nowFunc().Format("2 January 2006"), proj.RunID), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdfBox(pdf, "Summary", summaryLines(proj))
	pdfBox(pdf, "Assumptions", GenerateAssumptions(proj.Params))

	pdfTableHeader(pdf)
	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(40, 40, 40)
	for i, r := range rows {
		if pdf.GetY()+pdfRowHeight > 210-pdfMarginBottom {
			pdf.AddPage()
			pdfTableHeader(pdf)
			pdf.SetFont("Arial", "", 8)
			pdf.SetTextColor(40, 40, 40)
		}
		fill := i%2 == 1
		pdf.SetFillColor(245, 247, 250)
		for _, c := range pdfColumns {
			pdf.CellFormat(c.Width, pdfRowHeight, c.Value(r), "", 0, c.Align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pdfBox(pdf *fpdf.Fpdf, title string, lines []string) {
	pdf.SetFillColor(245, 247, 250)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 7, title, "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(50, 50, 50)
	for i, line := range lines {
		border := "LR"
		if i == len(lines)-1 {
			border = "LRB"
		}
		pdf.CellFormat(pdfContentWidth, 5, line, border, 1, "L", true, 0, "")
	}
	pdf.Ln(4)
}

func pdfTableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(0, 51, 102)
	pdf.SetTextColor(255, 255, 255)
	for _, c := range pdfColumns {
		pdf.CellFormat(c.Width, 7, c.Header, "", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}
