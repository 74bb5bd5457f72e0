package compare

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Vehicle",
		"Type",
		"Region",
		"Supported",
		"Registration Tax",
		"Annual Tax",
		fmt.Sprintf("%d-Year Cost", compSet.Years),
		"Classification",
		"Registration Diff from Base",
		"Annual Diff from Base",
		"Cost Diff from Base",
		"Cost % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row. Amount columns stay
// empty for vehicles whose tax is not computed.
func (cf *CSVFormatter) formatRow(result *ComparisonResult, vehicleType string) []string {
	row := []string{
		result.VehicleName,
		vehicleType,
		string(result.Region),
		strconv.FormatBool(result.Supported),
	}
	if !result.Supported {
		return append(row, make([]string, 8)...)
	}
	return append(row,
		result.RegistrationTotal.StringFixed(2),
		result.AnnualTax.StringFixed(2),
		result.HorizonCost.StringFixed(2),
		string(result.Classification),
		fixed(result.RegistrationDiffFromBase),
		fixed(result.AnnualDiffFromBase),
		fixed(result.HorizonDiffFromBase),
		fixed(result.HorizonPctFromBase),
	)
}

func fixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}
