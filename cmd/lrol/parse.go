package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"loci-hq/lrol/pkg/cli"
)

var parseFlags struct {
	file   string
	output string
}

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse an LROL file and display its contents",
	Long: `Parse an LROL rule file without semantic analysis.

Text output prints a model summary; -v adds the fields of every evaluation.
JSON output prints the parsed model.

Examples:
  # Model summary
  lrol parse -f rules/kyc.json

  # Parsed model as JSON
  lrol parse -f rules/kyc.json -o json`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFlags.file, "file", "f", "", "path to the LROL JSON file (required)")
	parseCmd.Flags().StringVarP(&parseFlags.output, "output", "o", "text", "output format: text, json")
	_ = parseCmd.MarkFlagRequired("file")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(parseFlags.output)
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	model, err := a.newParser().Parse(parseFlags.file)
	if err != nil {
		return cli.NewCommandError("parse", fmt.Errorf("failed to parse file %s: %w", parseFlags.file, err))
	}

	if format == cli.FormatJSON {
		return cli.NewFormatter(format).FormatTo(a.out, model)
	}
	printModelSummary(a.out, a.styles, model, verbose)
	return nil
}
