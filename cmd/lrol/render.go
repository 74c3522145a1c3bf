package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"loci-hq/lrol/pkg/cli"
	"loci-hq/lrol/pkg/lrol/ast"
	lerrors "loci-hq/lrol/pkg/lrol/errors"
	"loci-hq/lrol/pkg/lrol/insights"
	"loci-hq/lrol/pkg/lrol/validator"
)

func printModelSummary(w io.Writer, s *cli.Styles, model *ast.Model, verbose bool) {
	fmt.Fprintln(w, s.Success.Render("LROL Model Summary"))
	fmt.Fprintf(w, "Model ID: %s\n", model.ModelID)
	fmt.Fprintf(w, "Name: %s\n", model.Name)
	if model.Description != nil {
		fmt.Fprintf(w, "Description: %s\n", *model.Description)
	}
	fmt.Fprintf(w, "Threshold: %g\n", model.Threshold)

	fmt.Fprintf(w, "\n%s\n", s.Section.Render("Evaluations:"))
	for _, eval := range model.Evaluations {
		fmt.Fprintf(w, "- %s (%s)\n", s.Bold.Render(eval.Name), strings.ToLower(string(eval.Type)))
		if !verbose {
			continue
		}
		if eval.Left != nil {
			fmt.Fprintf(w, "  Left: %s\n", *eval.Left)
		}
		if eval.Operator != nil {
			fmt.Fprintf(w, "  Operator: %s\n", *eval.Operator)
		}
		if eval.Right != nil {
			fmt.Fprintf(w, "  Right: %s\n", eval.Right.String())
		}
		if eval.Weight != nil {
			fmt.Fprintf(w, "  Weight: %d\n", *eval.Weight)
		}
		if eval.Operands != nil {
			fmt.Fprintf(w, "  Operands: [%s]\n", strings.Join(eval.Operands, ", "))
		}
		if eval.Aggregation != nil {
			fmt.Fprintf(w, "  Aggregation: %s\n", *eval.Aggregation)
		}
	}

	fmt.Fprintf(w, "\n%s\n", s.Section.Render("Actions:"))
	for _, action := range model.Actions {
		fmt.Fprintf(w, "- %s (%s)\n", s.Bold.Render(action.Type), action.Reason)
	}
}

func printMetadata(w io.Writer, s *cli.Styles, md *ast.Metadata) {
	if md == nil {
		return
	}
	fmt.Fprintf(w, "\n%s\n", s.Heading.Render("Metadata:"))
	if md.CreatedBy != nil {
		fmt.Fprintf(w, "  Created by: %s\n", *md.CreatedBy)
	}
	if md.CreatedAt != nil {
		fmt.Fprintf(w, "  Created at: %s\n", *md.CreatedAt)
	}
	if md.LastUpdated != nil {
		fmt.Fprintf(w, "  Last updated: %s\n", *md.LastUpdated)
	}
}

func printValidationSuccess(w io.Writer, s *cli.Styles, report *validator.Report, verbose bool) {
	fmt.Fprintln(w, s.Success.Render("✓ File is valid LROL"))
	if report.Model != nil {
		printModelSummary(w, s, report.Model, verbose)
		printMetadata(w, s, report.Model.Metadata)
	}
}

func printValidationFailure(w io.Writer, s *cli.Styles, report *validator.Report, verbose bool) {
	fmt.Fprintln(w, s.Failure.Render("✗ Validation failed"))
	if report.FilePath != "" {
		fmt.Fprintf(w, "\nFile: %s\n", s.Accent.Render(report.FilePath))
	}
	printDiagnostics(w, s, report)

	if verbose {
		fmt.Fprintf(w, "\n%s\n", s.Section.Render("Full Validation Report:"))
		fmt.Fprintln(w, report.FormatErrors())
	} else {
		fmt.Fprintln(w, "\nTip: Use -v for detailed error information")
	}
}

func printDiagnostics(w io.Writer, s *cli.Styles, report *validator.Report) {
	if pe := report.ParserError; pe != nil {
		fmt.Fprintf(w, "\n%s\n", s.Section.Render("Parser Errors:"))
		switch pe.Kind {
		case lerrors.MissingField:
			fmt.Fprintf(w, "  Missing required field: %s\n", s.Accent.Render(pe.Field))
		case lerrors.InvalidValue:
			fmt.Fprintf(w, "  Invalid value for %s: expected %s, found %s\n",
				s.Accent.Render(pe.Field), pe.Expected, s.Bad.Render(pe.Found))
		default:
			fmt.Fprintf(w, "  Line %s, Column %s: %s\n",
				s.Accent.Render(fmt.Sprint(pe.Location.Line)),
				s.Accent.Render(fmt.Sprint(pe.Location.Column)),
				pe.Message)
		}
		if pe.Context != "" {
			fmt.Fprint(w, s.Muted.Render(pe.Context))
		}
		if pe.Suggestion != "" {
			fmt.Fprintf(w, "  Suggestion: %s\n", pe.Suggestion)
		}
	}

	if len(report.AnalyzerErrors) > 0 {
		fmt.Fprintf(w, "\n%s\n", s.Section.Render("Analyzer Errors:"))
		for i, ae := range report.AnalyzerErrors {
			fmt.Fprintf(w, "  %d. %s\n", i+1, ae.Error())
		}
	}
}

// printFileError reports a file that could not be read.
func printFileError(w io.Writer, s *cli.Styles, fve *validator.FileValidationError) {
	var msg string
	switch fve.Kind {
	case validator.FileNotFound:
		msg = fmt.Sprintf("✗ File not found: %s", fve.Path)
	case validator.InvalidUTF8:
		msg = fmt.Sprintf("✗ File contains invalid UTF-8: %s", fve.Path)
	default:
		msg = fmt.Sprintf("✗ Error reading file %s: %v", fve.Path, fve.Err)
	}
	fmt.Fprintln(w, s.Failure.Render(msg))
}

// printBatchResults prints one line per file and the diagnostics of invalid
// files, then a summary line.
func printBatchResults(w io.Writer, s *cli.Styles, results []validator.FileResult, verbose bool) (invalid int) {
	for _, res := range results {
		if res.Valid() {
			fmt.Fprintf(w, "%s %s\n", s.Success.Render("✓"), res.Path)
			continue
		}
		invalid++
		fmt.Fprintf(w, "%s %s\n", s.Failure.Render("✗"), res.Path)

		if res.Report != nil {
			printDiagnostics(w, s, res.Report)
			if verbose {
				fmt.Fprintln(w)
				fmt.Fprintln(w, res.Report.FormatErrors())
			}
		} else if res.Err != nil {
			fmt.Fprintf(w, "  %s\n", s.Bad.Render(res.Err.Error()))
		}
	}

	summary := fmt.Sprintf("\n%d file(s) checked: %d valid, %d invalid", len(results), len(results)-invalid, invalid)
	if invalid > 0 {
		fmt.Fprintln(w, s.Failure.Render(summary))
	} else {
		fmt.Fprintln(w, s.Success.Render(summary))
	}
	return invalid
}

func printInsights(w io.Writer, s *cli.Styles, report *insights.Report, verbose bool) {
	fmt.Fprintf(w, "\n%s\n", s.Success.Render("Analysis Summary:"))
	fmt.Fprintf(w, "  Total Evaluations: %s\n", s.Accent.Render(fmt.Sprint(report.Summary.TotalEvaluations)))
	fmt.Fprintln(w, "  Evaluation Types:")
	for _, t := range slices.Sorted(maps.Keys(report.Summary.EvaluationTypes)) {
		fmt.Fprintf(w, "    %s: %s\n", t, s.Accent.Render(fmt.Sprint(report.Summary.EvaluationTypes[t])))
	}
	fmt.Fprintf(w, "  Dependencies: %s\n", s.Accent.Render(fmt.Sprint(report.Summary.DependencyCount)))
	fmt.Fprintf(w, "  Max Dependency Depth: %s\n", s.Accent.Render(fmt.Sprint(report.Summary.MaxEvaluationDepth)))
	fmt.Fprintf(w, "  Complexity Score: %s\n", s.Accent.Render(fmt.Sprintf("%.2f", report.Summary.ComplexityScore)))

	if len(report.Warnings) > 0 {
		fmt.Fprintf(w, "\n%s\n", s.Section.Render("Warnings:"))
		for _, warning := range report.Warnings {
			severity := s.Section.Render(string(warning.Severity))
			if warning.Severity != insights.SeverityLow {
				severity = s.Bad.Render(string(warning.Severity))
			}
			fmt.Fprintf(w, "  %s [%s] %s\n", severity, s.Accent.Render(string(warning.Category)), warning.Message)
			if verbose && warning.Context != "" {
				fmt.Fprintf(w, "    Context: %s\n", warning.Context)
			}
		}
	}

	if len(report.Suggestions) > 0 {
		fmt.Fprintf(w, "\n%s\n", s.Heading.Render("Suggestions:"))
		for _, suggestion := range report.Suggestions {
			fmt.Fprintf(w, "  • %s\n", suggestion)
		}
	}

	if !verbose {
		return
	}
	fmt.Fprintf(w, "\n%s\n", s.Heading.Render("Detailed Analysis:"))
	fmt.Fprintln(w, "  Dependency Graph:")
	deps := report.Details.EvaluationDependencies
	for _, name := range slices.Sorted(maps.Keys(deps)) {
		fmt.Fprintf(w, "    %s → %s\n", name, strings.Join(deps[name], ", "))
	}
	if len(report.Details.LongestChain) > 1 {
		fmt.Fprintf(w, "\n  Longest Chain: %s\n", strings.Join(report.Details.LongestChain, " → "))
	}
	if len(report.Details.DateTimeExpressions) > 0 {
		fmt.Fprintln(w, "\n  DateTime Expressions:")
		for _, expr := range report.Details.DateTimeExpressions {
			fmt.Fprintf(w, "    • %s\n", expr)
		}
	}
}
