package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rgehrsitz/vehtax/internal/calculation"
	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/rgehrsitz/vehtax/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity",
	Short: "Show how the taxes respond as one vehicle attribute varies",
	Long: `Sweep power, CO2, fiscal horsepower or age across a range and report the
taxes at each value, including where the one-time tax changes bracket.

Without --parameter every attribute is swept around the vehicle's own value.

Examples:
  # Sweep every attribute
  vehtax sensitivity --power-kw 150 --fiscal-hp 11 --co2 160 --date 2025-01-15

  # Power from 60 to 160 kW in 11 steps
  vehtax sensitivity --power-kw 150 --fiscal-hp 11 --co2 160 --year 2024 --parameter power_kw:60-160:11

  # Age and CO2 as CSV
  vehtax sensitivity --power-kw 90 --fiscal-hp 8 --co2 120 --year 2019 --parameter age:0-16:17 --parameter co2:100-200:6 --format csv`,
	Args: cobra.NoArgs,
	Run:  runSensitivityAnalysis,
}

func runSensitivityAnalysis(cmd *cobra.Command, args []string) {
	paramStrings, _ := cmd.Flags().GetStringSlice("parameter")
	format, _ := cmd.Flags().GetString("format")

	batch, err := quoteBatchFromFlags(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid vehicle: %v\n", err)
		os.Exit(1)
	}
	vehicle := batch.Vehicles[0]

	engine, err := newEngine(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading schedule: %v\n", err)
		os.Exit(1)
	}

	analyzer := calculation.NewSensitivityAnalyzer(engine)
	parameters, err := sensitivityParameters(analyzer, vehicle.Profile, paramStrings, calculation.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing parameter: %v\n", err)
		os.Exit(1)
	}

	var analysis any
	ctx := context.Background()
	if len(parameters) == 1 {
		analysis, err = analyzer.AnalyzeSingleParameter(ctx, vehicle.Name, vehicle.Profile, parameters[0])
	} else {
		analysis, err = analyzer.AnalyzeMultipleParameters(ctx, vehicle.Name, vehicle.Profile, parameters)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error performing sensitivity analysis: %v\n", err)
		os.Exit(1)
	}

	out, err := output.NewSensitivityFormatter(format).FormatSensitivityAnalysis(analysis)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(out)
}

// sensitivityParameters resolves --parameter values, falling back to every attribute
func sensitivityParameters(
	analyzer *calculation.SensitivityAnalyzer,
	profile domain.VehicleTaxProfile,
	paramStrings []string,
	at time.Time,
) ([]domain.SensitivityParameter, error) {
	if len(paramStrings) == 0 {
		return analyzer.CommonSensitivityParameters(profile, at), nil
	}

	parameters := make([]domain.SensitivityParameter, 0, len(paramStrings))
	for _, paramStr := range paramStrings {
		param, err := parseParameterString(paramStr)
		if err != nil {
			return nil, err
		}
		defaults, err := analyzer.DefaultSensitivityParameter(profile, param.Name, at)
		if err != nil {
			return nil, err
		}
		param.BaseValue = defaults.BaseValue
		param.Unit = defaults.Unit
		param.Description = defaults.Description
		parameters = append(parameters, param)
	}
	return parameters, nil
}

func parseParameterString(paramStr string) (domain.SensitivityParameter, error) {
	// Format: name:min-max:steps
	parts := strings.Split(paramStr, ":")
	if len(parts) != 3 {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid parameter format: %s (expected name:min-max:steps)", paramStr)
	}

	minMax := strings.Split(parts[1], "-")
	if len(minMax) != 2 {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid range format: %s (expected min-max)", parts[1])
	}

	minValue, err := decimal.NewFromString(strings.TrimSpace(minMax[0]))
	if err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid min value: %v", err)
	}
	maxValue, err := decimal.NewFromString(strings.TrimSpace(minMax[1]))
	if err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid max value: %v", err)
	}

	steps, err := strconv.Atoi(parts[2])
	if err != nil || steps < 1 {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid steps: %s", parts[2])
	}

	return domain.SensitivityParameter{
		Name:     parts[0],
		MinValue: minValue,
		MaxValue: maxValue,
		Steps:    steps,
	}, nil
}

func addSensitivityFlags(c *cobra.Command) {
	addVehicleFlags(c)
	c.Flags().StringSlice("parameter", []string{}, "Attribute to sweep (format: name:min-max:steps; names: power_kw, co2, fiscal_hp, age)")
	c.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
}
