// Package scenario wires the scenario runner command: configuration from
// the environment and flags, optional snapshot persistence and a metrics
// dump of the finished run.
package scenario

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/louisbranch/stalinopoly/internal/game/rules"
	entrypoint "github.com/louisbranch/stalinopoly/internal/platform/cmd"
	"github.com/louisbranch/stalinopoly/internal/platform/telemetry/metrics"
	"github.com/louisbranch/stalinopoly/internal/storage"
	"github.com/louisbranch/stalinopoly/internal/storage/bbolt"
	"github.com/louisbranch/stalinopoly/internal/storage/sqlite"
	"github.com/louisbranch/stalinopoly/internal/tools/scenario"
)

// Config holds scenario command configuration.
type Config struct {
	Scenario   string        `env:"SCENARIO_FILE"`
	Assertions string        `env:"SCENARIO_ASSERT"  envDefault:"strict"`
	Verbose    bool          `env:"SCENARIO_VERBOSE"`
	Timeout    time.Duration `env:"SCENARIO_TIMEOUT" envDefault:"10s"`
	Seed       int64         `env:"SCENARIO_SEED"`
	RulesFile  string        `env:"RULES_FILE"`
	Locale     string        `env:"LOCALE"           envDefault:"en-US"`
	// DBPath is the sqlite file the final snapshot is saved to; empty skips
	// saving.
	DBPath string `env:"DB_PATH"`
	// Store selects the snapshot backend: sqlite or bbolt.
	Store   string `env:"STORE" envDefault:"sqlite"`
	Metrics bool   `env:"SCENARIO_METRICS"`
	// ShutdownTimeout bounds the telemetry flush when the command exits.
	ShutdownTimeout time.Duration `env:"OTEL_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// ParseConfig parses env defaults, then flags, into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, bindFlags); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario lua file")
	fs.StringVar(&cfg.Assertions, "assert", cfg.Assertions, "assertion mode: strict or log")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout per step")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "override the scenario seed")
	fs.StringVar(&cfg.RulesFile, "rules", cfg.RulesFile, "TOML house rules replacing the scenario rules")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "narration locale")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite file to save the final snapshot to")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "snapshot backend: sqlite or bbolt")
	fs.BoolVar(&cfg.Metrics, "metrics", cfg.Metrics, "print engine metrics after the run")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "time allowed to flush telemetry on exit")
}

// RunOptions returns the entrypoint options for this configuration.
func (c Config) RunOptions() entrypoint.RunOptions {
	return entrypoint.RunOptions{ShutdownTimeout: c.ShutdownTimeout}
}

// Run executes the scenario command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if strings.TrimSpace(cfg.Scenario) == "" {
		return errors.New("scenario path is required")
	}
	mode, err := scenario.ParseAssertionMode(cfg.Assertions)
	if err != nil {
		return err
	}

	runnerCfg := scenario.Config{
		Timeout:    cfg.Timeout,
		Assertions: mode,
		Verbose:    cfg.Verbose,
		Seed:       cfg.Seed,
		Locale:     cfg.Locale,
		Logger:     log.New(errOut, "", 0),
	}
	if cfg.RulesFile != "" {
		r, err := rules.LoadFile(cfg.RulesFile)
		if err != nil {
			return err
		}
		runnerCfg.Rules = &r
	}
	reg := prometheus.NewRegistry()
	if cfg.Metrics {
		runnerCfg.Metrics = metrics.NewRecorder(reg)
	}

	result, err := scenario.RunFile(ctx, runnerCfg, cfg.Scenario)
	if err != nil {
		return err
	}
	g := result.Engine.State()
	fmt.Fprintf(out, "scenario %s: %d steps, round %d, phase %s\n", result.Name, result.Steps, g.Round, g.Phase)
	if result.Failures > 0 {
		fmt.Fprintf(out, "failed expectations: %d\n", result.Failures)
	}

	if cfg.DBPath != "" {
		if err := saveSnapshot(ctx, cfg.Store, cfg.DBPath, result, out); err != nil {
			return err
		}
	}
	if cfg.Metrics {
		if err := writeMetrics(out, reg); err != nil {
			return err
		}
	}
	return nil
}

type snapshotStore interface {
	storage.SnapshotStore
	Close() error
}

func openStore(ctx context.Context, backend, path string) (snapshotStore, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", "sqlite":
		return sqlite.Open(ctx, path)
	case "bbolt":
		return bbolt.Open(path)
	default:
		return nil, fmt.Errorf("unknown snapshot store %q", backend)
	}
}

func saveSnapshot(ctx context.Context, backend, path string, result *scenario.Result, out io.Writer) error {
	store, err := openStore(ctx, backend, path)
	if err != nil {
		return fmt.Errorf("open snapshot store: %w", err)
	}
	defer store.Close()

	rec, err := store.Save(ctx, result.Engine.Snapshot())
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	fmt.Fprintf(out, "saved %s (round %d, checksum %s)\n", rec.GameID, rec.Round, rec.Checksum)
	return nil
}

func writeMetrics(out io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(out, family); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
