package main

import (
	"fmt"
	"log"
	"os"

	"github.com/rgehrsitz/vehtax/internal/config"
	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/spf13/cobra"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Calculate taxes for a single vehicle described by flags",
	Long: `Calculate the registration and annual circulation taxes for one vehicle
without writing a vehicles file.

Examples:
  vehtax quote --power-kw 150 --fiscal-hp 11 --co2 160 --date 2025-01-15
  vehtax quote --power-hp 122 --fiscal-hp 8 --co2 120 --year 2019 --format json
  vehtax quote --power-kw 135 --fiscal-hp 10 --co2 95 --year 2023 --region flanders --hybrid
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		batch, err := quoteBatchFromFlags(cmd)
		if err != nil {
			log.Fatalf("Invalid vehicle: %v", err)
		}

		engine, err := newEngine(cmd)
		if err != nil {
			log.Fatal(err)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		if err := writeBatchReport(os.Stdout, engine, batch, outputFormat); err != nil {
			log.Fatal(err)
		}
	},
}

// quoteInputFromFlags maps the quote flags onto a vehicles file entry.
// Optional values are only set when their flag was given.
func quoteInputFromFlags(cmd *cobra.Command) domain.VehicleInput {
	flags := cmd.Flags()
	optional := func(name string) *float64 {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetFloat64(name)
		return &v
	}

	in := domain.VehicleInput{
		PowerKW: optional("power-kw"),
		PowerHP: optional("power-hp"),
		CO2WLTP: optional("co2-wltp"),
	}
	in.Name, _ = flags.GetString("name")
	in.FiscalHorsepower, _ = flags.GetInt("fiscal-hp")
	in.CO2, _ = flags.GetFloat64("co2")
	in.FirstRegistrationDate, _ = flags.GetString("date")
	in.Year, _ = flags.GetInt("year")
	in.Region, _ = flags.GetString("region")
	in.IsHybrid, _ = flags.GetBool("hybrid")
	in.IsElectric, _ = flags.GetBool("electric")
	return in
}

// quoteBatchFromFlags validates the flags into a one-vehicle batch
func quoteBatchFromFlags(cmd *cobra.Command) (*domain.VehicleBatch, error) {
	in := quoteInputFromFlags(cmd)
	profile, err := config.NewInputParser().BuildProfile(in, domain.RegionWalloniaBrussels)
	if err != nil {
		return nil, err
	}
	return &domain.VehicleBatch{
		Source:   "command line",
		Vehicles: []domain.VehicleEntry{{Name: in.Name, Profile: profile}},
	}, nil
}

// addQuoteFlags registers the vehicle flags and the report format on c
func addQuoteFlags(c *cobra.Command) {
	addVehicleFlags(c)
	c.Flags().StringP("format", "f", "console", "Output format (console, console-lite, html, json, csv)")
}

// addVehicleFlags registers the flags describing one vehicle on c
func addVehicleFlags(c *cobra.Command) {
	c.Flags().String("name", "quote", "Name shown in the report")
	c.Flags().Float64("power-kw", 0, "Engine power in kW")
	c.Flags().Float64("power-hp", 0, "Engine power in DIN horsepower (converted to kW)")
	c.Flags().Int("fiscal-hp", 0, "Fiscal horsepower (CV)")
	c.Flags().Float64("co2", 0, "CO2 emissions in g/km (NEDC)")
	c.Flags().Float64("co2-wltp", 0, "CO2 emissions in g/km (WLTP, informational)")
	c.Flags().String("date", "", "First registration date (YYYY-MM-DD)")
	c.Flags().Int("year", 0, "First registration year, used when --date is not given")
	c.Flags().String("region", "", fmt.Sprintf("Region (%s or %s)", domain.RegionWalloniaBrussels, domain.RegionFlanders))
	c.Flags().Bool("hybrid", false, "Hybrid vehicle")
	c.Flags().Bool("electric", false, "Electric vehicle")
	c.Flags().String("schedule", "", "Path to a tax schedule file (default: schedule.yaml if it exists)")
	c.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
}
