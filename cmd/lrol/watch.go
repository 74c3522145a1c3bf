package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"loci-hq/lrol/pkg/cli"
	"loci-hq/lrol/pkg/history"
	"loci-hq/lrol/pkg/history/retention"
	"loci-hq/lrol/pkg/history/storage"
	"loci-hq/lrol/pkg/lrol/validator"
	"loci-hq/lrol/pkg/rules/git"
	"loci-hq/lrol/pkg/rules/loader"
	"loci-hq/lrol/pkg/rules/watcher"
	"loci-hq/lrol/pkg/telemetry/health"
	"loci-hq/lrol/pkg/telemetry/metrics"
	"loci-hq/lrol/pkg/telemetry/tracing"
)

const shutdownTimeout = 5 * time.Second

var watchFlags struct {
	dir      string
	gitURL   string
	branch   string
	path     string
	interval time.Duration
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate rule files whenever they change",
	Long: `Watch a rule directory, or poll a Git repository, and re-validate on change.

A directory is watched with filesystem notifications; bursts of changes are
debounced (watch.debounce). A repository is pulled every --interval and
re-validated when the branch moves.

While watching:
  - runs are recorded when history.enabled is set, and old runs are pruned
    on history.retention.schedule
  - /metrics, /healthz, /readyz and /version are served on
    telemetry.metrics.listen_address when metrics are enabled

Examples:
  # Watch a local rule directory
  lrol watch -d rules/

  # Poll a repository every 5 minutes
  lrol watch --git https://github.com/acme/risk-rules.git --path rules --interval 5m`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.dir, "dir", "d", "", "rule directory to watch")
	watchCmd.Flags().StringVar(&watchFlags.gitURL, "git", "", "Git repository URL to poll")
	watchCmd.Flags().StringVar(&watchFlags.branch, "branch", "", "Git branch (default: git.branch from config)")
	watchCmd.Flags().StringVar(&watchFlags.path, "path", "", "rule directory inside the repository (default: git.path from config)")
	watchCmd.Flags().DurationVar(&watchFlags.interval, "interval", time.Minute, "Git poll interval")
	watchCmd.MarkFlagsMutuallyExclusive("dir", "git")
	watchCmd.MarkFlagsOneRequired("dir", "git")
}

// watchSession re-validates rules and publishes the outcome to the console,
// metrics and the readiness check.
type watchSession struct {
	app       *app
	batch     *batch
	loader    *loader.Loader
	cache     *validator.Cache
	collector *metrics.Collector
	state     *health.WatchState
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchFlags.gitURL != "" && watchFlags.interval <= 0 {
		return cli.NewConfigError("interval", "must be positive")
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
		return cli.NewCommandError("watch", fmt.Errorf("failed to initialize tracing: %w", err))
	}
	defer tracer.Shutdown(context.Background())

	collector := metrics.NewCollector(&a.cfg.Telemetry.Metrics, nil)

	rl := a.newLoader()
	cache, err := a.newCache()
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	v := a.newValidator(rl, cache,
		validator.WithTracer(tracer.Tracer()),
		validator.WithRecorder(collector),
	)

	checker := health.New(0)
	state := health.NewWatchState()
	checker.Register("rules", state.Check)

	var store history.Store
	if a.cfg.History.Enabled {
		store, err = storage.Open(&a.cfg.History, a.logger.WithComponent("history").Slog())
		if err != nil {
			return cli.NewCommandError("watch", fmt.Errorf("failed to open history: %w", err))
		}
		defer store.Close()

		if p, ok := store.(interface{ Ping(context.Context) error }); ok {
			checker.Register("history", p.Ping)
		}

		pruner := retention.NewPruner(store, retention.ConfigFrom(&a.cfg.History.Retention),
			collector, a.logger.Slog())
		scheduler := retention.NewScheduler(pruner)
		if err := scheduler.Start(ctx); err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer scheduler.Stop()
	}

	if mc := a.cfg.Telemetry.Metrics; mc.Enabled {
		srv := collector.NewServer(mc.ListenAddress, mc.Path, func(mux *http.ServeMux) {
			health.Mount(mux, checker, Version, GitCommit, BuildDate)
		})
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		fmt.Fprintf(a.out, "Serving metrics on http://%s%s\n", mc.ListenAddress, mc.Path)
	}

	s := &watchSession{
		app:       a,
		batch:     &batch{validator: v, tracer: tracer, store: store, logger: a.logger.WithComponent("watch")},
		loader:    rl,
		cache:     cache,
		collector: collector,
		state:     state,
	}

	if watchFlags.dir != "" {
		err = s.watchDir(ctx, watchFlags.dir)
	} else {
		err = s.pollGit(ctx)
	}
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	fmt.Fprintln(a.out, a.styles.Muted.Render("Stopped watching"))
	return nil
}

func (s *watchSession) watchDir(ctx context.Context, dir string) error {
	pass := func(ctx context.Context, changed []string) error {
		paths, err := s.loader.Resolve(dir)
		if err != nil {
			s.failed(err)
			return err
		}
		return s.validate(ctx, dir, "", paths, changed)
	}

	// An empty or broken directory is reported and watched anyway; it may
	// be populated later.
	_ = pass(ctx, nil)

	cfg := s.app.cfg
	fw, err := watcher.New(&watcher.Config{
		Path:       dir,
		Debounce:   cfg.Watch.Debounce,
		Extensions: []string{validator.RuleFileExt},
		Recursive:  cfg.Validation.Recursive,
		SkipHidden: cfg.Validation.SkipHidden,
	}, s.app.logger.WithComponent("rules.watcher").Slog())
	if err != nil {
		return err
	}
	defer fw.Stop()

	fmt.Fprintf(s.app.out, "\nWatching %s for changes (Ctrl+C to stop)\n", dir)
	return fw.Watch(ctx, pass)
}

func (s *watchSession) pollGit(ctx context.Context) error {
	gitCfg := s.app.cfg.Git
	gitCfg.Repository = watchFlags.gitURL
	if watchFlags.branch != "" {
		gitCfg.Branch = watchFlags.branch
	}
	if watchFlags.path != "" {
		gitCfg.Path = watchFlags.path
	}
	source := fmt.Sprintf("%s@%s", gitCfg.Repository, gitCfg.Branch)

	repo, err := git.NewRepository(&gitCfg, s.app.logger.WithComponent("rules.git").Slog())
	if err != nil {
		return err
	}
	if err := repo.Clone(ctx); err != nil {
		return err
	}
	head, err := repo.HeadCommit()
	if err != nil {
		return err
	}
	paths, err := repo.RuleFiles()
	if err != nil {
		s.failed(err)
	} else {
		_ = s.validate(ctx, source, head.SHA, paths, nil)
	}

	fmt.Fprintf(s.app.out, "\nPolling %s every %s (Ctrl+C to stop)\n", source, watchFlags.interval)

	ticker := time.NewTicker(watchFlags.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		result, err := repo.Pull(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.failed(fmt.Errorf("pull failed: %w", err))
			continue
		}
		if !result.HadChanges {
			continue
		}
		paths, err := repo.RuleFiles()
		if err != nil {
			s.failed(err)
			continue
		}
		_ = s.validate(ctx, source, result.ToSHA, paths, result.ChangedFiles)
	}
}

// validate runs one pass and prints its results.
func (s *watchSession) validate(ctx context.Context, source, commit string, paths, changed []string) error {
	res, err := s.batch.run(ctx, source, commit, paths)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		s.failed(err)
		return err
	}

	s.state.Record(res.Run.Files, res.Run.Invalid, nil)
	s.collector.RecordWatchReload(true)
	if s.cache != nil {
		s.collector.UpdateCacheSize(s.cache.Len())
	}

	w, st := s.app.out, s.app.styles
	header := fmt.Sprintf("[%s] Validated %d file(s)", time.Now().Format(time.TimeOnly), len(paths))
	if len(changed) > 0 {
		header += " after changes to " + strings.Join(changed, ", ")
	}
	fmt.Fprintln(w, st.Heading.Render(header))
	printBatchResults(w, st, res.Results, verbose)
	return nil
}

// failed records a pass that could not run.
func (s *watchSession) failed(err error) {
	s.state.Record(0, 0, err)
	s.collector.RecordWatchReload(false)
	s.app.logger.Error("rule validation pass failed", "error", err)
	fmt.Fprintln(s.app.out, s.app.styles.Failure.Render(fmt.Sprintf("✗ %v", err)))
}
