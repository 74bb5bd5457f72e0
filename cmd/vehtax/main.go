package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/vehtax/internal/calculation"
	"github.com/rgehrsitz/vehtax/internal/config"
	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/rgehrsitz/vehtax/internal/output"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// defaultScheduleFile is picked up from the working directory when --schedule is not given
const defaultScheduleFile = "schedule.yaml"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "vehtax %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(os.Stdout, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// newEngine builds the tax engine from the --schedule and --debug flags
func newEngine(cmd *cobra.Command) (*calculation.TaxEngine, error) {
	scheduleFile, _ := cmd.Flags().GetString("schedule")
	if scheduleFile == "" && fileExists(defaultScheduleFile) {
		scheduleFile = defaultScheduleFile
	}

	engine := calculation.NewTaxEngine()
	if scheduleFile != "" {
		schedule, err := config.NewInputParser().LoadScheduleFromFile(scheduleFile)
		if err != nil {
			return nil, err
		}
		engine, err = calculation.NewTaxEngineWithSchedule(schedule)
		if err != nil {
			return nil, err
		}
	}

	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return engine, nil
}

// writeBatchReport evaluates a batch and writes it in the requested format
func writeBatchReport(w io.Writer, engine *calculation.TaxEngine, batch *domain.VehicleBatch, format string) error {
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unknown output format: %s (valid: %v)", format, output.AvailableFormatterNames())
	}

	results, err := engine.CalculateBatch(context.Background(), batch)
	if err != nil {
		return err
	}

	data, err := f.Format(results)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

var rootCmd = &cobra.Command{
	Use:   "vehtax",
	Short: "Belgian vehicle tax calculator CLI",
	Long: `Computes the one-time registration tax (TMC) and the annual circulation tax
for vehicles registered in Wallonia or Brussels. Flemish vehicles are reported
as not computed, with a pointer to the Flemish tax authority.`,
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [vehicles-file]",
	Short: "Calculate taxes for every vehicle in a vehicles file",
	Args:  cobra.ExactArgs(1),
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

		outputFormat, _ := cmd.Flags().GetString("format")
		if err := writeBatchReport(os.Stdout, engine, batch, outputFormat); err != nil {
			log.Fatal(err)
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [vehicles-file]",
	Short: "Validate a vehicles file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]

		batch, err := config.NewInputParser().LoadFromFile(inputFile)
		if err != nil {
			log.Fatalf("Validation failed: %v", err)
		}

		fmt.Printf("Vehicles file %s is valid (%d vehicle(s))\n", inputFile, len(batch.Vehicles))
	},
}

var exampleCmd = &cobra.Command{
	Use:   "example [output-file]",
	Short: "Write an example vehicles file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outputFile := args[0]

		if fileExists(outputFile) {
			if force, _ := cmd.Flags().GetBool("force"); !force {
				log.Fatalf("%s already exists (use --force to overwrite)", outputFile)
			}
		}

		if err := config.NewInputParser().SaveToFile(config.CreateExampleFile(), outputFile); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Example vehicles file written to %s\n", outputFile)
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the active tax schedule",
	Long: `Prints the tax tables the calculator uses. The output can be edited and passed
back with --schedule to evaluate an alternative legal schedule.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := newEngine(cmd)
		if err != nil {
			log.Fatal(err)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		data, err := config.MarshalSchedule(engine.Schedule, outputFormat)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(string(data))
	},
}

func init() {
	calculateCmd.Flags().StringP("format", "f", "console", "Output format (console, console-lite, html, json, csv)")
	calculateCmd.Flags().String("schedule", "", "Path to a tax schedule file (default: schedule.yaml if it exists)")
	calculateCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	exampleCmd.Flags().Bool("force", false, "Overwrite an existing file")

	scheduleCmd.Flags().StringP("format", "f", "yaml", "Output format (yaml, json)")
	scheduleCmd.Flags().String("schedule", "", "Path to a tax schedule file (default: schedule.yaml if it exists)")

	addQuoteFlags(quoteCmd)
	initCompareCommand()
	addOptimizeFlags(optimizeCmd)
	addSensitivityFlags(sensitivityCmd)

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(sensitivityCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
