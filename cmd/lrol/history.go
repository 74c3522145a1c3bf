package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"loci-hq/lrol/pkg/cli"
	"loci-hq/lrol/pkg/history"
	"loci-hq/lrol/pkg/history/retention"
	"loci-hq/lrol/pkg/history/storage"
)

var historyFlags struct {
	output     string
	limit      int
	days       int
	maxRecords int64
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and prune recorded validation runs",
	Long: `Inspect and prune the validation history.

Runs are recorded by "lrol validate --record" and, when history.enabled is
set, by every validate and watch run. The store is configured in the
history section (memory or sqlite).

Examples:
  # Most recent runs
  lrol history list --limit 10

  # File results of one run
  lrol history show 3f0c9a2e-...

  # Apply the retention policy now
  lrol history prune --days 7`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show RUN_ID",
	Short: "Show the file results of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete runs outside the retention policy",
	Long: `Delete runs older than history.retention.days and, beyond
history.retention.max_records, the oldest runs. Flags override the
configured values.`,
	Args: cobra.NoArgs,
	RunE: runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyPruneCmd)

	historyCmd.PersistentFlags().StringVarP(&historyFlags.output, "output", "o", "text", "output format: text, json")
	historyListCmd.Flags().IntVarP(&historyFlags.limit, "limit", "n", 20, "maximum number of runs (0 for all)")
	historyPruneCmd.Flags().IntVar(&historyFlags.days, "days", -1, "keep runs newer than this many days (0 keeps all)")
	historyPruneCmd.Flags().Int64Var(&historyFlags.maxRecords, "max-records", -1, "keep at most this many runs (0 for unlimited)")
}

// withStore opens the configured history store for the duration of fn.
func withStore(cmd *cobra.Command, name string, fn func(a *app, format cli.OutputFormat, store history.Store) error) error {
	format, err := cli.ParseFormat(historyFlags.output)
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := storage.Open(&a.cfg.History, a.logger.WithComponent("history").Slog())
	if err != nil {
		return cli.NewCommandError(name, fmt.Errorf("failed to open history: %w", err))
	}
	defer store.Close()

	if err := fn(a, format, store); err != nil {
		var exit *cli.ExitError
		if errors.As(err, &exit) {
			return err
		}
		return cli.NewCommandError(name, err)
	}
	return nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, "history list", func(a *app, format cli.OutputFormat, store history.Store) error {
		runs, err := store.ListRuns(cmd.Context(), historyFlags.limit)
		if err != nil {
			return err
		}
		if format == cli.FormatJSON {
			return cli.NewFormatter(format).FormatTo(a.out, runs)
		}
		printRuns(a, runs)
		return nil
	})
}

func printRuns(a *app, runs []*history.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(a.out, "No validation runs recorded")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN ID\tSTARTED\tFILES\tVALID\tINVALID\tCOMMIT\tSOURCE")
	for _, r := range runs {
		commit := r.Commit
		if len(commit) > 8 {
			commit = commit[:8]
		}
		if commit == "" {
			commit = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), r.Files, r.Valid, r.Invalid, commit, r.Source)
	}
	_ = tw.Flush()
}

// runDetail is the JSON form of history show.
type runDetail struct {
	*history.Run
	Results []history.FileResult `json:"results"`
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	return withStore(cmd, "history show", func(a *app, format cli.OutputFormat, store history.Store) error {
		ctx := cmd.Context()
		run, err := store.GetRun(ctx, args[0])
		if err != nil {
			return err
		}
		results, err := store.FileResults(ctx, run.ID)
		if err != nil {
			return err
		}
		if format == cli.FormatJSON {
			return cli.NewFormatter(format).FormatTo(a.out, runDetail{Run: run, Results: results})
		}
		printRunDetail(a, run, results)
		return nil
	})
}

func printRunDetail(a *app, run *history.Run, results []history.FileResult) {
	w, s := a.out, a.styles
	fmt.Fprintf(w, "%s %s\n", s.Heading.Render("Run"), run.ID)
	fmt.Fprintf(w, "Started: %s (%s)\n", run.StartedAt.Local().Format(time.DateTime), run.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "Source: %s\n", run.Source)
	if run.Commit != "" {
		fmt.Fprintf(w, "Commit: %s\n", run.Commit)
	}
	fmt.Fprintf(w, "Files: %d (%d valid, %d invalid)\n\n", run.Files, run.Valid, run.Invalid)

	for _, fr := range results {
		if fr.Valid {
			fmt.Fprintf(w, "%s %s", s.Success.Render("✓"), fr.Path)
			if fr.ModelID != "" {
				fmt.Fprintf(w, " (%s)", fr.ModelID)
			}
			fmt.Fprintln(w)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", s.Failure.Render("✗"), fr.Path)
		if fr.Error != "" {
			fmt.Fprintf(w, "  %s\n", fr.Error)
		}
		if fr.ParserError != "" {
			fmt.Fprintf(w, "  Parser Error: %s\n", fr.ParserError)
		}
		for i, msg := range fr.AnalyzerErrors {
			fmt.Fprintf(w, "  %d. %s\n", i+1, msg)
		}
	}
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	return withStore(cmd, "history prune", func(a *app, format cli.OutputFormat, store history.Store) error {
		cfg := retention.ConfigFrom(&a.cfg.History.Retention)
		if historyFlags.days >= 0 {
			cfg.Days = historyFlags.days
		}
		if historyFlags.maxRecords >= 0 {
			cfg.MaxRecords = historyFlags.maxRecords
		}

		deleted, err := retention.NewPruner(store, cfg, nil, a.logger.Slog()).Prune(cmd.Context())
		if err != nil {
			return err
		}
		if format == cli.FormatJSON {
			return cli.NewFormatter(format).FormatTo(a.out, map[string]int64{"deleted": deleted})
		}
		fmt.Fprintf(a.out, "Pruned %d run(s)\n", deleted)
		return nil
	})
}
