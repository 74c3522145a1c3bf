package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"loci-hq/lrol/pkg/cli"
	"loci-hq/lrol/pkg/lrol/insights"
	"loci-hq/lrol/pkg/lrol/validator"
)

var analyzeFlags struct {
	file   string
	output string
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze LROL rules for potential issues and provide insights",
	Long: `Analyze a valid LROL rule file and report its complexity.

The report covers evaluation counts by type, dependency depth, a complexity
score, maintainability warnings and suggestions. The file must validate
first; validation errors are printed instead of a report.

Examples:
  # Summary, warnings and suggestions
  lrol analyze -f rules/kyc.json

  # Include the dependency graph and datetime expressions
  lrol analyze -f rules/kyc.json -v

  # Machine-readable report
  lrol analyze -f rules/kyc.json -o json`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFlags.file, "file", "f", "", "path to the LROL JSON file (required)")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.output, "output", "o", "text", "output format: text, json")
	_ = analyzeCmd.MarkFlagRequired("file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(analyzeFlags.output)
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if format == cli.FormatText {
		fmt.Fprintln(a.out, a.styles.Heading.Render("Analyzing LROL file..."))
	}

	v := a.newValidator(a.newLoader(), nil)
	report, err := v.ValidateFile(cmd.Context(), analyzeFlags.file)
	if err != nil {
		var fve *validator.FileValidationError
		if errors.As(err, &fve) && fve.Kind == validator.ValidationErrors {
			printValidationFailure(a.out, a.styles, fve.Report, verbose)
			return &cli.ExitError{Code: 1}
		}
		fmt.Fprintln(a.out, a.styles.Failure.Render(fmt.Sprintf("✗ Failed to analyze file: %v", err)))
		return &cli.ExitError{Code: 1}
	}
	if report.Model == nil {
		fmt.Fprintln(a.out, a.styles.Failure.Render("✗ No model found to analyze"))
		return &cli.ExitError{Code: 1}
	}

	result := insights.Analyze(report.Model, analyzeFlags.file,
		insights.WithRecommendedActions(a.cfg.Analyzer.RecommendedActions...))

	if format == cli.FormatJSON {
		return cli.NewFormatter(format).FormatTo(a.out, result)
	}
	printInsights(a.out, a.styles, result, verbose)
	return nil
}
