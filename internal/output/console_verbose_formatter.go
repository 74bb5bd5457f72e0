package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/vehtax/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed per-vehicle breakdown.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.BatchResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "BELGIAN VEHICLE TAX ANALYSIS")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintf(&buf, "Schedule:     %s\n", results.Schedule)
	fmt.Fprintf(&buf, "Evaluated at: %s\n", results.EvaluatedAt.Format("2006-01-02"))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, v := range results.Vehicles {
		fmt.Fprintf(&buf, "VEHICLE %d: %s\n", i+1, v.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		writeProfile(&buf, v.Profile)
		fmt.Fprintln(&buf)
		writeReport(&buf, v.Report)
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "SUMMARY")
	fmt.Fprintln(&buf, "=======")
	fmt.Fprintf(&buf, "Vehicles evaluated: %d\n", len(results.Vehicles))
	fmt.Fprintf(&buf, "Computed:           %d\n", results.SupportedCount())
	if n := len(results.Vehicles) - results.SupportedCount(); n > 0 {
		fmt.Fprintf(&buf, "Not computed:       %d (region not supported)\n", n)
	}
	return buf.Bytes(), nil
}

func writeProfile(buf *bytes.Buffer, p domain.VehicleTaxProfile) {
	fmt.Fprintln(buf, "VEHICLE DATA:")
	fmt.Fprintf(buf, "  Region:               %s\n", p.Region().DisplayName())
	fmt.Fprintf(buf, "  Power:                %s kW\n", p.PowerKW().StringFixed(2))
	fmt.Fprintf(buf, "  Fiscal horsepower:    %d CV\n", p.FiscalHorsepower())
	fmt.Fprintf(buf, "  CO2 (NEDC):           %s g/km\n", p.CO2NEDC().String())
	if wltp, ok := p.CO2WLTP(); ok {
		fmt.Fprintf(buf, "  CO2 (WLTP):           %s g/km\n", wltp.String())
	}
	if date, ok := p.RegistrationDate(); ok {
		fmt.Fprintf(buf, "  First registration:   %s\n", date.Format("2006-01-02"))
	} else {
		fmt.Fprintf(buf, "  First registration:   %d\n", p.RegistrationYear())
	}
	if p.IsHybrid() || p.IsElectric() {
		fmt.Fprintf(buf, "  Hybrid / electric:    %t / %t\n", p.IsHybrid(), p.IsElectric())
	}
}

func writeReport(buf *bytes.Buffer, r domain.TaxReport) {
	fmt.Fprintf(buf, "  Age:                  %d years", r.AgeYears)
	if r.IsCollectorExempt {
		fmt.Fprint(buf, " (collector vehicle)")
	}
	fmt.Fprintln(buf)

	if !r.Supported {
		fmt.Fprintln(buf, "TAX NOT COMPUTED:")
		if r.Notice != nil {
			fmt.Fprintf(buf, "  %s\n", r.Notice.Reason)
			if r.Notice.ReferenceURL != "" {
				fmt.Fprintf(buf, "  See: %s\n", r.Notice.ReferenceURL)
			}
		}
		return
	}

	reg := r.RegistrationTax
	fmt.Fprintln(buf, "REGISTRATION TAX (ONE-TIME):")
	fmt.Fprintf(buf, "  Base:                 %s\n", FormatCurrency(reg.Base))
	fmt.Fprintf(buf, "  After degressivity:   %s\n", FormatCurrency(reg.AfterDegressivity))
	fmt.Fprintf(buf, "  Eco-malus:            %s\n", FormatCurrency(reg.EcoMalus))
	fmt.Fprintf(buf, "  TOTAL:                %s (%s)\n", FormatCurrency(reg.Total), r.Classification)
	fmt.Fprintln(buf, "ANNUAL CIRCULATION TAX:")
	fmt.Fprintf(buf, "  Per year:             %s\n", FormatOptionalCurrency(r.AnnualTax))
}
