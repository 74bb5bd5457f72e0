package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/vehtax/internal/domain"
)

// CSVSummarizer implements the summary CSV output (one row per vehicle).
// Amounts of unsupported regions are left empty.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.BatchResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Vehicle", "Region", "Supported", "AgeYears", "CollectorExempt", "Base", "AfterDegressivity", "EcoMalus", "RegistrationTotal", "AnnualTax", "Classification"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, v := range results.Vehicles {
		r := v.Report
		row := []string{
			v.Name,
			string(r.Region),
			strconv.FormatBool(r.Supported),
			strconv.Itoa(r.AgeYears),
			strconv.FormatBool(r.IsCollectorExempt),
			"", "", "", "", "",
			string(r.Classification),
		}
		if reg := r.RegistrationTax; reg != nil {
			row[5] = reg.Base.StringFixed(2)
			row[6] = reg.AfterDegressivity.StringFixed(2)
			row[7] = reg.EcoMalus.StringFixed(2)
			row[8] = reg.Total.StringFixed(2)
		}
		if r.AnnualTax != nil {
			row[9] = r.AnnualTax.StringFixed(2)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
