package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/networth-planner/internal/domain"
)

// CSVDetailedExporter writes one row per record and account with every flow
// component, so each account's movement can be reconciled line by line.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "csv-detailed" }

func (c CSVDetailedExporter) Format(proj *domain.Projection, view View) ([]byte, error) {
	rows, err := rowsFor(proj, view)
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Date", "Phase", "Account", "Start", "Crash", "Growth", "Contribution", "Paydown",
		"Surplus", "TransferIn", "DrawnExpenses", "DrawnBuffer", "Tax", "End", "Flexed", "CrashTriggered"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range rows {
		for _, kind := range domain.AccountKinds {
			f := r.Accounts.Of(kind)
			row := []string{
				r.Date,
				string(r.Phase),
				kind.String(),
				f.Start.StringFixed(2),
				f.Crash.StringFixed(2),
				f.Growth.StringFixed(2),
				f.Contribution.StringFixed(2),
				f.Paydown.StringFixed(2),
				f.Surplus.StringFixed(2),
				f.TransferIn.StringFixed(2),
				f.DrawnExpenses.StringFixed(2),
				f.DrawnBuffer.StringFixed(2),
				f.Tax.StringFixed(2),
				f.End.StringFixed(2),
				strconv.FormatBool(r.Flexed),
				strconv.FormatBool(r.CrashTriggered),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
