package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"loci-hq/lrol/pkg/cli"
)

var (
	// Global flags
	cfgFile  string
	verbose  bool
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "lrol",
	Short: "LROL (Loci Risk Orchestration Language) parser and validator",
	Long: `lrol parses and validates LROL rule documents.

A rule document is a JSON model of named evaluations combined into a risk
score, with the actions to take when the score crosses its threshold.
lrol checks syntax, structure and semantics:
  - Duplicate evaluation names and unresolved operand references
  - Circular dependencies between evaluations
  - Operators, aggregations, weights and datetime expressions
  - Action and metadata schema

Rules can be validated from a file, a directory or a Git repository, and
validation runs can be recorded to a local history database.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	code, report := cli.ExitCode(err)
	if report {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	if code != 0 {
		os.Exit(code)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: lrol.yaml when present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}
