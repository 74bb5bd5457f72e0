package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/rgehrsitz/vehtax/internal/compare"
	"github.com/rgehrsitz/vehtax/internal/config"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [vehicles-file]",
	Short: "Compare the taxes of vehicles from one vehicles file",
	Long: `Compare a base vehicle against alternatives from the same vehicles file.
The base defaults to the first vehicle and the alternatives to every other one.
Vehicles in regions without computed taxes are listed but not ranked.

Examples:
  vehtax compare vehicles.yaml
  vehtax compare vehicles.yaml --base family-suv --with used-hatchback,classic-roadster
  vehtax compare vehicles.yaml --years 8 --format csv
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]

		batch, err := config.NewInputParser().LoadFromFile(inputFile)
		if err != nil {
			log.Fatal(err)
		}

		engine, err := newEngine(cmd)
		if err != nil {
			log.Fatal(err)
		}

		baseName, _ := cmd.Flags().GetString("base")
		with, _ := cmd.Flags().GetString("with")
		years, _ := cmd.Flags().GetInt("years")
		outputFormat, _ := cmd.Flags().GetString("format")

		compSet, err := compare.NewCompareEngine(engine).Compare(context.Background(), batch, compare.CompareOptions{
			BaseVehicleName: baseName,
			Alternatives:    parseNameList(with),
			Years:           years,
		})
		if err != nil {
			log.Fatalf("Comparison failed: %v", err)
		}

		out, err := formatComparison(compSet, outputFormat)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(out)
	},
}

// parseNameList splits a comma-separated list, dropping blanks
func parseNameList(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// formatComparison renders a comparison in table, csv or json form
func formatComparison(compSet *compare.ComparisonSet, format string) (string, error) {
	switch strings.ToLower(format) {
	case "csv":
		formatter := &compare.CSVFormatter{}
		out, err := formatter.Format(compSet)
		if err != nil {
			return "", fmt.Errorf("failed to format CSV: %w", err)
		}
		return out, nil

	case "json":
		formatter := &compare.JSONFormatter{Pretty: true}
		out, err := formatter.Format(compSet)
		if err != nil {
			return "", fmt.Errorf("failed to format JSON: %w", err)
		}
		return out, nil

	case "compact":
		formatter := &compare.TableFormatter{}
		return formatter.FormatCompact(compSet) + "\n", nil

	case "table", "console", "":
		formatter := &compare.TableFormatter{}
		return formatter.Format(compSet), nil

	default:
		return "", fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", format)
	}
}

func initCompareCommand() {
	compareCmd.Flags().String("base", "", "Base vehicle name (default: first vehicle in the file)")
	compareCmd.Flags().String("with", "", "Comma-separated vehicle names to compare (default: all others)")
	compareCmd.Flags().Int("years", compare.DefaultYears, "Ownership horizon in years for the total cost")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	compareCmd.Flags().String("schedule", "", "Path to a tax schedule file (default: schedule.yaml if it exists)")
	compareCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
}
