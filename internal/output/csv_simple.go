package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/networth-planner/internal/domain"
)

// CSVFormatter writes the tabular export for the requested view.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(proj *domain.Projection, view View) ([]byte, error) {
	rows, err := rowsFor(proj, view)
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write(r.exportRecord()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVYearlyFormatter always writes the yearly view.
type CSVYearlyFormatter struct{}

func (c CSVYearlyFormatter) Name() string { return "csv-yearly" }

func (c CSVYearlyFormatter) Format(proj *domain.Projection, _ View) ([]byte, error) {
	return CSVFormatter{}.Format(proj, ViewYearly)
}
