package main

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/carecalc/internal/breakeven"
	"github.com/rgehrsitz/carecalc/internal/compare"
	"github.com/rgehrsitz/carecalc/internal/config"
	"github.com/rgehrsitz/carecalc/internal/dataset"
	"github.com/rgehrsitz/carecalc/internal/domain"
	"github.com/rgehrsitz/carecalc/internal/output"
	"github.com/rgehrsitz/carecalc/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate the pension for each scenario in an input file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			datasetPath, _ := cmd.Flags().GetString("dataset")
			input, ds, err := loadInput(args[0], datasetPath)
			if err != nil {
				return err
			}

			scenarios := input.Scenarios
			if name, _ := cmd.Flags().GetString("scenario"); name != "" {
				s, ok := input.Find(name)
				if !ok {
					return fmt.Errorf("scenario %s not found in %s", name, args[0])
				}
				scenarios = []config.ScenarioInput{*s}
			}

			engine := newEngine(cmd, ds)
			results := make([]output.ScenarioResult, 0, len(scenarios))
			for i := range scenarios {
				scenario := &scenarios[i]
				req := input.BuildRequest(scenario, ds)
				applyOptionFlags(cmd, &req.Options)

				result, err := engine.Calculate(cmd.Context(), req)
				if err != nil {
					return fmt.Errorf("scenario %s: %w", scenario.Name, err)
				}
				engine.Logger.Infof("scenario %s: pension payable %s", scenario.Name, result.CompensatedAmount.StringFixed(2))
				results = append(results, output.ScenarioResult{
					Name:        scenario.Name,
					Description: scenario.Description,
					Result:      result,
				})
			}

			format, _ := cmd.Flags().GetString("format")
			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unsupported format: %s (available: %s)", format, strings.Join(output.AvailableFormats(), ", "))
			}
			if cf, ok := formatter.(output.ConsoleFormatter); ok {
				cf.ShowDetails, _ = cmd.Flags().GetBool("details")
				formatter = cf
			}
			data, err := formatter.Format(results)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv, csv-years, yaml, html)")
	cmd.Flags().StringP("scenario", "s", "", "Only calculate the named scenario")
	cmd.Flags().String("dataset", "", "Path to an alternative reference dataset")
	cmd.Flags().Bool("details", false, "Include the per-year table in console output")
	cmd.Flags().Bool("truncate-legacy-months", false, "Count only whole years toward the legacy accrual")
	cmd.Flags().Bool("no-secondary-track", false, "Disallow track 2 months")
	cmd.Flags().Bool("no-compensation", false, "Skip the legacy comparison and pay the CARE amount")
	cmd.Flags().Bool("debug", false, "Enable debug logging of the calculation")
	return cmd
}

// applyOptionFlags lets explicitly set flags override file options
func applyOptionFlags(cmd *cobra.Command, opts *domain.Options) {
	if cmd.Flags().Changed("truncate-legacy-months") {
		opts.TruncateLegacyMonths, _ = cmd.Flags().GetBool("truncate-legacy-months")
	}
	if cmd.Flags().Changed("no-secondary-track") {
		off, _ := cmd.Flags().GetBool("no-secondary-track")
		opts.HasSecondaryTrack = !off
	}
	if cmd.Flags().Changed("no-compensation") {
		off, _ := cmd.Flags().GetBool("no-compensation")
		opts.CompensationEnabled = !off
	}
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate an input file without printing results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			datasetPath, _ := cmd.Flags().GetString("dataset")
			input, ds, err := loadInput(args[0], datasetPath)
			if err != nil {
				return err
			}
			engine := newEngine(cmd, ds)
			for i := range input.Scenarios {
				scenario := &input.Scenarios[i]
				if _, err := engine.Calculate(cmd.Context(), input.BuildRequest(scenario, ds)); err != nil {
					return fmt.Errorf("scenario %s: %w", scenario.Name, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (%d scenario(s))\n", args[0], len(input.Scenarios))
			return nil
		},
	}
	cmd.Flags().String("dataset", "", "Path to an alternative reference dataset")
	cmd.Flags().Bool("debug", false, "Enable debug logging of the calculation")
	return cmd
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare scenarios against a base scenario",
		Long: "Compare a base scenario with other scenarios from the same file (--with),\n" +
			"with built-in what-if templates (--templates), or with ad hoc transforms (--transform).",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				registry := transform.CreateBuiltInTemplates()
				for _, name := range registry.List() {
					t, _ := registry.Get(name)
					fmt.Fprintf(cmd.OutOrStdout(), "  %-18s %s\n", t.Name, t.Description)
				}
				return nil
			}
			if len(args) != 1 {
				return fmt.Errorf("an input file is required")
			}

			base, _ := cmd.Flags().GetString("base")
			if base == "" {
				return fmt.Errorf("--base is required")
			}
			with, _ := cmd.Flags().GetStringSlice("with")
			templates, _ := cmd.Flags().GetStringSlice("templates")
			transforms, _ := cmd.Flags().GetStringArray("transform")
			if len(with) == 0 && len(templates) == 0 && len(transforms) == 0 {
				return fmt.Errorf("nothing to compare: use --with, --templates or --transform")
			}

			datasetPath, _ := cmd.Flags().GetString("dataset")
			input, ds, err := loadInput(args[0], datasetPath)
			if err != nil {
				return err
			}
			ce := compare.NewCompareEngine(newEngine(cmd, ds))

			var set *compare.ComparisonSet
			if len(with) > 0 {
				set, err = ce.CompareScenarios(cmd.Context(), input, base, with)
				if err == nil && (len(templates) > 0 || len(transforms) > 0) {
					var derived *compare.ComparisonSet
					derived, err = ce.Compare(cmd.Context(), input, compare.CompareOptions{
						BaseScenarioName: base, Templates: templates, Transforms: transforms,
					})
					if err == nil {
						set.AlternativeResults = append(set.AlternativeResults, derived.AlternativeResults...)
						set.Recommendations = compare.GenerateRecommendations(set)
					}
				}
			} else {
				set, err = ce.Compare(cmd.Context(), input, compare.CompareOptions{
					BaseScenarioName: base, Templates: templates, Transforms: transforms,
				})
			}
			if err != nil {
				return err
			}
			set.ConfigPath = args[0]

			format, _ := cmd.Flags().GetString("format")
			var out string
			switch format {
			case "table", "console":
				out = (&compare.TableFormatter{}).Format(set)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(set)
			default:
				return fmt.Errorf("unsupported format: %s (available: table, json, csv)", format)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().String("base", "", "Base scenario name to compare against")
	cmd.Flags().StringSlice("with", nil, "Comma-separated list of scenarios from the input file")
	cmd.Flags().StringSlice("templates", nil, "Comma-separated list of built-in templates")
	cmd.Flags().StringArray("transform", nil, "Transform spec such as set_wage:wage=20000,from=2570 (repeatable)")
	cmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	cmd.Flags().String("dataset", "", "Path to an alternative reference dataset")
	cmd.Flags().Bool("debug", false, "Enable debug logging of the calculation")
	return cmd
}

func datasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Print the reference dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("dataset")
			ds := dataset.Default()
			if path != "" {
				var err error
				if ds, err = dataset.Load(path); err != nil {
					return err
				}
			}
			if to, _ := cmd.Flags().GetInt("project-to"); to > 0 {
				ds = ds.Extend(to)
			}

			rows := make([]domain.YearParameters, 0, len(ds.Years()))
			for _, y := range ds.Years() {
				yp, _ := ds.Lookup(y)
				rows = append(rows, yp)
			}
			view := struct {
				Metadata dataset.Metadata        `yaml:"metadata" json:"metadata"`
				Rules    dataset.Rules           `yaml:"rules" json:"rules"`
				Years    []domain.YearParameters `yaml:"years" json:"years"`
			}{ds.Metadata, ds.Rules, rows}

			format, _ := cmd.Flags().GetString("format")
			w := cmd.OutOrStdout()
			switch format {
			case "table":
				fmt.Fprintf(w, "Dataset %s (%d - %d)\n", ds.Metadata.Version, ds.MinYear(), ds.MaxYear())
				fmt.Fprintf(w, "%-6s %12s %12s %10s %8s\n", "Year", "Contrib.", "Wage ceil.", "Index", "Comp.%")
				for _, yp := range rows {
					index := "override"
					if !ds.NeedsOverride(yp.Year) && yp.RevaluationIndex != nil {
						index = yp.RevaluationIndex.StringFixed(4)
					}
					marker := ""
					if yp.Projected {
						marker = " *"
					}
					fmt.Fprintf(w, "%-6d %12s %12s %10s %8s%s\n",
						yp.Year, yp.ContributionCeilingOr().StringFixed(2), yp.WageCeiling.StringFixed(2),
						index, yp.CompensationPercent.StringFixed(0), marker)
				}
				return nil
			case "yaml":
				data, err := yaml.Marshal(view)
				if err != nil {
					return err
				}
				_, err = w.Write(data)
				return err
			case "json":
				data, err := json.MarshalIndent(view, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(w, string(data))
				return err
			default:
				return fmt.Errorf("unsupported format: %s (available: table, yaml, json)", format)
			}
		},
	}
	cmd.Flags().String("dataset", "", "Path to an alternative reference dataset")
	cmd.Flags().Int("project-to", 0, "Project the table up to this year")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, yaml, json)")
	return cmd
}

func breakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breakeven [input-file]",
		Short: "Find the extra years or wage needed to reach a target pension",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, _ := cmd.Flags().GetString("base")
			targetStr, _ := cmd.Flags().GetString("target")
			if base == "" || targetStr == "" {
				return fmt.Errorf("--base and --target are required")
			}
			target, err := decimal.NewFromString(targetStr)
			if err != nil {
				return fmt.Errorf("invalid target: %w", err)
			}

			datasetPath, _ := cmd.Flags().GetString("dataset")
			input, ds, err := loadInput(args[0], datasetPath)
			if err != nil {
				return err
			}
			scenario, ok := input.Find(base)
			if !ok {
				return fmt.Errorf("scenario %s not found in %s", base, args[0])
			}

			solve, _ := cmd.Flags().GetString("solve")
			maxYears, _ := cmd.Flags().GetInt("max-years")
			from, _ := cmd.Flags().GetInt("from")
			constraints := breakeven.Constraints{TargetPayable: target, MaxExtraYears: maxYears, FromYear: from}
			if s, _ := cmd.Flags().GetString("max-wage"); s != "" {
				w, err := decimal.NewFromString(s)
				if err != nil {
					return fmt.Errorf("invalid max wage: %w", err)
				}
				constraints.MaxWage = &w
			}

			solver := breakeven.NewDefaultSolver(newEngine(cmd, ds))
			result, err := solver.Optimize(cmd.Context(), breakeven.OptimizationRequest{
				Input:        input,
				BaseScenario: scenario,
				Target:       breakeven.OptimizationTarget(solve),
				Constraints:  constraints,
			})
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			var out string
			switch format {
			case "table", "console":
				out = (&breakeven.TableFormatter{}).Format(result)
			case "json":
				out, err = (&breakeven.JSONFormatter{Pretty: true}).Format(result)
			default:
				return fmt.Errorf("unsupported format: %s (available: table, json)", format)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().String("base", "", "Base scenario name")
	cmd.Flags().String("target", "", "Target monthly pension payable")
	cmd.Flags().String("solve", string(breakeven.OptimizeEndYear), "What to solve for (end_year, wage)")
	cmd.Flags().Int("max-years", 0, "Maximum extra years tried by the end_year search")
	cmd.Flags().String("max-wage", "", "Upper wage bound for the wage search")
	cmd.Flags().Int("from", 0, "First year the solved wage applies")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	cmd.Flags().String("dataset", "", "Path to an alternative reference dataset")
	cmd.Flags().Bool("debug", false, "Enable debug logging of the calculation")
	return cmd
}
