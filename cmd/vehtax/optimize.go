package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rgehrsitz/vehtax/internal/breakeven"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Find the vehicle attributes that keep taxes within a budget",
	Long: `Find how far power, CO2 or age can go before the vehicle's taxes exceed a budget.

Power and CO2 report the largest value that fits; age reports the youngest
vehicle that fits. The budget applies to the registration tax, or with
--goal ownership_budget to the registration tax plus --years of annual tax.

Examples:
  # Largest power for a €1,000 registration tax
  vehtax optimize --power-kw 150 --fiscal-hp 11 --co2 160 --date 2025-01-15 --target power_kw --budget 1000

  # Every target against a five-year ownership budget
  vehtax optimize --power-kw 150 --fiscal-hp 11 --co2 160 --year 2024 --target all --budget 4000 --goal ownership_budget --years 5`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		targetStr, _ := cmd.Flags().GetString("target")
		goalStr, _ := cmd.Flags().GetString("goal")
		budgetStr, _ := cmd.Flags().GetString("budget")
		years, _ := cmd.Flags().GetInt("years")
		format, _ := cmd.Flags().GetString("format")

		target, err := breakeven.ParseTarget(targetStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing target: %v\n", err)
			os.Exit(1)
		}

		budget, err := decimal.NewFromString(budgetStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing budget %q: %v\n", budgetStr, err)
			os.Exit(1)
		}

		batch, err := quoteBatchFromFlags(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid vehicle: %v\n", err)
			os.Exit(1)
		}

		engine, err := newEngine(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading schedule: %v\n", err)
			os.Exit(1)
		}

		solver := breakeven.NewDefaultSolver(engine)
		constraints := breakeven.Constraints{Budget: budget, Years: years}
		base := batch.Vehicles[0].Profile
		goal := breakeven.OptimizationGoal(goalStr)

		ctx := context.Background()
		var out string
		if target == breakeven.OptimizeAll {
			result, err := solver.OptimizeAllTargets(ctx, base, constraints, goal)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error solving: %v\n", err)
				os.Exit(1)
			}
			out, err = formatMultiDimensional(result, format)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
				os.Exit(1)
			}
		} else {
			result, err := solver.Optimize(ctx, breakeven.OptimizationRequest{
				Base:        base,
				Target:      target,
				Goal:        goal,
				Constraints: constraints,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error solving: %v\n", err)
				os.Exit(1)
			}
			out, err = formatOptimization(result, format)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
				os.Exit(1)
			}
		}

		fmt.Print(out)
	},
}

func formatOptimization(result *breakeven.OptimizationResult, format string) (string, error) {
	switch format {
	case "json":
		return (&breakeven.JSONFormatter{Pretty: true}).Format(result)
	case "table", "":
		return (&breakeven.TableFormatter{}).Format(result), nil
	default:
		return "", fmt.Errorf("unknown output format: %s (valid: table, json)", format)
	}
}

func formatMultiDimensional(result *breakeven.MultiDimensionalResult, format string) (string, error) {
	switch format {
	case "json":
		return (&breakeven.JSONFormatter{Pretty: true}).FormatMultiDimensional(result)
	case "table", "":
		return (&breakeven.TableFormatter{}).FormatMultiDimensional(result), nil
	default:
		return "", fmt.Errorf("unknown output format: %s (valid: table, json)", format)
	}
}

func addOptimizeFlags(c *cobra.Command) {
	addVehicleFlags(c)
	c.Flags().StringP("target", "t", string(breakeven.OptimizeAll), "Attribute to solve for (power_kw, co2, age, all)")
	c.Flags().StringP("budget", "b", "1000", "Budget in euros")
	c.Flags().String("goal", string(breakeven.GoalRegistrationBudget), "Cost held to the budget (registration_budget, ownership_budget)")
	c.Flags().Int("years", 5, "Years of annual tax counted by ownership_budget")
	c.Flags().StringP("format", "f", "table", "Output format (table, json)")
}
