package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/vehtax/internal/domain"
)

// ConsoleFormatter prints one line per vehicle.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.BatchResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "VEHICLE TAX SUMMARY")
	fmt.Fprintf(&buf, "Schedule: %s\n", results.Schedule)
	fmt.Fprintf(&buf, "%-24s %-20s %12s %12s  %s\n", "Vehicle", "Region", "One-time", "Annual", "Class")
	for _, v := range results.Vehicles {
		r := v.Report
		if !r.Supported {
			fmt.Fprintf(&buf, "%-24s %-20s %12s %12s  %s\n", v.Name, r.Region.DisplayName(), "n/a", "n/a", "not computed")
			continue
		}
		fmt.Fprintf(&buf, "%-24s %-20s %12s %12s  %s\n",
			v.Name, r.Region.DisplayName(),
			FormatCurrency(r.RegistrationTax.Total), FormatOptionalCurrency(r.AnnualTax), r.Classification)
	}
	return buf.Bytes(), nil
}
