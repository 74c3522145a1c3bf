package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"loci-hq/lrol/pkg/cli"
	"loci-hq/lrol/pkg/config"
	"loci-hq/lrol/pkg/lrol/analyzer"
	"loci-hq/lrol/pkg/lrol/parser"
	"loci-hq/lrol/pkg/lrol/validator"
	"loci-hq/lrol/pkg/rules/loader"
	"loci-hq/lrol/pkg/telemetry/logging"
)

// defaultConfigFile is loaded when --config is not given and the file exists
// in the working directory.
const defaultConfigFile = "lrol.yaml"

// app holds what every command needs: configuration, logger and output.
type app struct {
	cfg    *config.Config
	logger *logging.Logger
	out    io.Writer
	styles *cli.Styles
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cli.NewConfigError("config", err.Error())
	}

	if logLevel != "" {
		cfg.Telemetry.Logging.Level = logLevel
	}
	lc := cfg.Telemetry.Logging
	logger, err := logging.New(logging.Config{
		Level:      lc.Level,
		Format:     lc.Format,
		AddSource:  lc.AddSource,
		File:       lc.File,
		MaxSizeMB:  lc.MaxSizeMB,
		MaxBackups: lc.MaxBackups,
		MaxAgeDays: lc.MaxAgeDays,
		Writer:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}

	out := cmd.OutOrStdout()
	return &app{
		cfg:    cfg,
		logger: logger,
		out:    out,
		styles: cli.NewStyles(out),
	}, nil
}

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to access %s: %w", defaultConfigFile, err)
		}
	}
	return config.LoadConfigWithEnvOverrides(path)
}

// Close releases the log file, if any.
func (a *app) Close() {
	_ = a.logger.Close()
}

func (a *app) newParser() *parser.Parser {
	return parser.NewParser().
		WithMaxFileSize(a.cfg.Parser.MaxFileSize).
		WithContextLines(a.cfg.Parser.ContextLines)
}

func (a *app) newAnalyzer() *analyzer.Analyzer {
	vocab := analyzer.DefaultVocabulary().
		WithComparisonOperators(a.cfg.Analyzer.ComparisonOperators...).
		WithAggregationKinds(a.cfg.Analyzer.AggregationKinds...)
	return analyzer.New(
		analyzer.WithVocabulary(vocab),
		analyzer.WithDedupedWeightCheck(a.cfg.Analyzer.DedupeWeightCheck),
	)
}

func (a *app) newLoader() *loader.Loader {
	return loader.New(loader.ConfigFrom(a.cfg), a.logger.WithComponent("rules.loader").Slog())
}

// newCache returns the report cache, or nil when validation.cache_size is 0.
func (a *app) newCache() (*validator.Cache, error) {
	if a.cfg.Validation.CacheSize <= 0 {
		return nil, nil
	}
	cache, err := validator.NewCache(a.cfg.Validation.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create report cache: %w", err)
	}
	return cache, nil
}

// newValidator builds a validator from configuration. Files are read through
// rl so size and encoding limits apply. Extra options are applied last.
func (a *app) newValidator(rl *loader.Loader, cache *validator.Cache, opts ...validator.Option) *validator.Validator {
	base := []validator.Option{
		validator.WithParser(a.newParser()),
		validator.WithAnalyzer(a.newAnalyzer()),
		validator.WithWorkers(a.cfg.Validation.Workers),
		validator.WithFileReader(rl),
		validator.WithLogger(a.logger.WithComponent("validator").Slog()),
	}
	if cache != nil {
		base = append(base, validator.WithCache(cache))
	}
	return validator.New(append(base, opts...)...)
}
