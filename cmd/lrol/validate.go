package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"loci-hq/lrol/pkg/cli"
	"loci-hq/lrol/pkg/history"
	"loci-hq/lrol/pkg/history/storage"
	"loci-hq/lrol/pkg/lrol/validator"
	"loci-hq/lrol/pkg/rules/git"
	"loci-hq/lrol/pkg/rules/loader"
	"loci-hq/lrol/pkg/telemetry/tracing"
)

var validateFlags struct {
	file   string
	dir    string
	gitURL string
	branch string
	path   string
	output string
	record bool
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate LROL file syntax and structure",
	Long: `Validate LROL rule files: parse each document, then run semantic analysis.

Exactly one source is required:
  -f FILE   a single rule file
  -d DIR    every *.json rule file in a directory
            (subdirectories when validation.recursive is set)
  --git URL the rule files of a Git repository at --branch, under --path

The command exits with status 1 when any file is invalid. With --record, or
when history.enabled is set, the run is stored in the validation history.

Examples:
  # Validate one file
  lrol validate -f rules/kyc.json

  # Validate a directory and record the run
  lrol validate -d rules/ --record

  # Validate a repository branch
  lrol validate --git https://github.com/acme/risk-rules.git --branch main --path rules

  # Machine-readable results
  lrol validate -d rules/ -o json`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.file, "file", "f", "", "path to an LROL JSON file")
	validateCmd.Flags().StringVarP(&validateFlags.dir, "dir", "d", "", "directory of LROL JSON files")
	validateCmd.Flags().StringVar(&validateFlags.gitURL, "git", "", "Git repository URL holding rule files")
	validateCmd.Flags().StringVar(&validateFlags.branch, "branch", "", "Git branch (default: git.branch from config)")
	validateCmd.Flags().StringVar(&validateFlags.path, "path", "", "rule directory inside the repository (default: git.path from config)")
	validateCmd.Flags().StringVarP(&validateFlags.output, "output", "o", "text", "output format: text, json")
	validateCmd.Flags().BoolVar(&validateFlags.record, "record", false, "record the run in the validation history")
	validateCmd.MarkFlagsMutuallyExclusive("file", "dir", "git")
	validateCmd.MarkFlagsOneRequired("file", "dir", "git")
}

// validationOutput is the JSON form of a validate run.
type validationOutput struct {
	RunID    string       `json:"run_id"`
	Source   string       `json:"source"`
	Commit   string       `json:"commit,omitempty"`
	Valid    bool         `json:"valid"`
	Files    int          `json:"files"`
	Invalid  int          `json:"invalid"`
	Recorded bool         `json:"recorded"`
	Results  []fileOutput `json:"results"`
}

type fileOutput struct {
	Path   string            `json:"path"`
	Valid  bool              `json:"valid"`
	Error  string            `json:"error,omitempty"`
	Report *validator.Report `json:"report,omitempty"`
}

func newValidationOutput(res *batchResult, recorded bool) *validationOutput {
	out := &validationOutput{
		RunID:    res.Run.ID,
		Source:   res.Run.Source,
		Commit:   res.Run.Commit,
		Valid:    res.Run.Invalid == 0,
		Files:    res.Run.Files,
		Invalid:  res.Run.Invalid,
		Recorded: recorded,
		Results:  make([]fileOutput, 0, len(res.Results)),
	}
	for _, r := range res.Results {
		fo := fileOutput{Path: r.Path, Valid: r.Valid(), Report: r.Report}
		if r.Err != nil {
			fo.Error = r.Err.Error()
		}
		out.Results = append(out.Results, fo)
	}
	return out
}

// target is what a validate run covers.
type target struct {
	source string
	commit string
	paths  []string
}

func runValidate(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(validateFlags.output)
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	tracer, err := tracing.New(&a.cfg.Telemetry.Tracing)
	if err != nil {
		return cli.NewCommandError("validate", fmt.Errorf("failed to initialize tracing: %w", err))
	}
	defer tracer.Shutdown(context.Background())

	rl := a.newLoader()
	cache, err := a.newCache()
	if err != nil {
		return cli.NewCommandError("validate", err)
	}
	v := a.newValidator(rl, cache, validator.WithTracer(tracer.Tracer()))

	var store history.Store
	if validateFlags.record || a.cfg.History.Enabled {
		store, err = storage.Open(&a.cfg.History, a.logger.WithComponent("history").Slog())
		if err != nil {
			return cli.NewCommandError("validate", fmt.Errorf("failed to open history: %w", err))
		}
		defer store.Close()
	}

	text := format == cli.FormatText
	if text && validateFlags.file != "" {
		fmt.Fprintln(a.out, a.styles.Heading.Render("Validating LROL file..."))
	}

	tgt, err := resolveTarget(ctx, a, rl, text)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}

	b := &batch{validator: v, tracer: tracer, store: store, logger: a.logger.WithComponent("validate")}
	res, err := b.run(ctx, tgt.source, tgt.commit, tgt.paths)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}

	if !text {
		if err := cli.NewFormatter(format).FormatTo(a.out, newValidationOutput(res, store != nil)); err != nil {
			return err
		}
	} else {
		printValidateText(a, res, validateFlags.file != "")
		if store != nil {
			fmt.Fprintf(a.out, "\nRecorded run %s\n", res.Run.ID)
		}
	}

	if res.Run.Invalid > 0 {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

func resolveTarget(ctx context.Context, a *app, rl *loader.Loader, text bool) (*target, error) {
	switch {
	case validateFlags.file != "":
		// Missing or unreadable files are reported per file by the validator.
		return &target{source: validateFlags.file, paths: []string{validateFlags.file}}, nil

	case validateFlags.dir != "":
		paths, err := rl.Resolve(validateFlags.dir)
		if err != nil {
			return nil, err
		}
		return &target{source: validateFlags.dir, paths: paths}, nil

	default:
		gitCfg := a.cfg.Git
		gitCfg.Repository = validateFlags.gitURL
		if validateFlags.branch != "" {
			gitCfg.Branch = validateFlags.branch
		}
		if validateFlags.path != "" {
			gitCfg.Path = validateFlags.path
		}

		repo, err := git.NewRepository(&gitCfg, a.logger.WithComponent("rules.git").Slog())
		if err != nil {
			return nil, err
		}
		if err := repo.Clone(ctx); err != nil {
			return nil, err
		}
		head, err := repo.HeadCommit()
		if err != nil {
			return nil, err
		}
		paths, err := repo.RuleFiles()
		if err != nil {
			return nil, err
		}
		if text {
			fmt.Fprintf(a.out, "%s %s (%s) at %s\n\n",
				a.styles.Heading.Render("Validating"), gitCfg.Repository, gitCfg.Branch,
				a.styles.Accent.Render(head.ShortSHA()))
		}
		return &target{
			source: fmt.Sprintf("%s@%s", gitCfg.Repository, gitCfg.Branch),
			commit: head.SHA,
			paths:  paths,
		}, nil
	}
}

func printValidateText(a *app, res *batchResult, single bool) {
	if !single || len(res.Results) != 1 {
		printBatchResults(a.out, a.styles, res.Results, verbose)
		return
	}

	r := res.Results[0]
	if r.Err == nil {
		printValidationSuccess(a.out, a.styles, r.Report, verbose)
		return
	}
	var fve *validator.FileValidationError
	if !errors.As(r.Err, &fve) {
		fmt.Fprintln(a.out, a.styles.Failure.Render("✗ "+r.Err.Error()))
		return
	}
	if fve.Kind == validator.ValidationErrors {
		printValidationFailure(a.out, a.styles, fve.Report, verbose)
		return
	}
	printFileError(a.out, a.styles, fve)
}
