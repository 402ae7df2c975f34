package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/stalinopoly/internal/game/dice"
	"github.com/louisbranch/stalinopoly/internal/game/engine"
	"github.com/louisbranch/stalinopoly/internal/game/rules"
	platformotel "github.com/louisbranch/stalinopoly/internal/platform/otel"
	"github.com/louisbranch/stalinopoly/internal/platform/telemetry/metrics"
	"github.com/louisbranch/stalinopoly/internal/platform/timeouts"
	"github.com/louisbranch/stalinopoly/internal/random"
)

// Config controls scenario execution.
type Config struct {
	Timeout    time.Duration
	Assertions AssertionMode
	Verbose    bool
	// Seed overrides the seed a scenario declares when non-zero.
	Seed int64
	// Rules replaces the rules a scenario declares when set.
	Rules   *rules.Rules
	Locale  string
	Logger  *log.Logger
	Metrics *metrics.Recorder
}

// DefaultConfig returns default runner configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:    timeouts.ScenarioStep,
		Assertions: AssertionStrict,
		Verbose:    false,
	}
}

// Result is what a finished scenario leaves behind.
type Result struct {
	Name   string
	Engine *engine.Engine
	Steps  int
	// Failures counts expectations that failed in log-only mode.
	Failures int
}

// Runner executes Lua scenarios against an in-process engine.
type Runner struct {
	assertions   *Assertions
	logger       *log.Logger
	verbose      bool
	timeout      time.Duration
	seed         int64
	rules        *rules.Rules
	locale       string
	metrics      *metrics.Recorder
	engineLogger *log.Logger
	now          func() time.Time
	tracer       trace.Tracer
}

// NewRunner prepares a scenario runner.
func NewRunner(cfg Config) (*Runner, error) {
	return newRunnerWithDeps(cfg, runnerDeps{metrics: cfg.Metrics})
}

// newRunnerWithDeps builds a Runner from pre-built dependencies.
// Config defaults (logger, timeout) are applied here so they are testable.
func newRunnerWithDeps(cfg Config, deps runnerDeps) (*Runner, error) {
	if cfg.Assertions != AssertionStrict && cfg.Assertions != AssertionLogOnly {
		return nil, errors.New("unknown assertion mode")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = timeouts.ScenarioStep
	}

	engineLogger := deps.engineLogger
	if engineLogger == nil {
		engineLogger = log.New(io.Discard, "", 0)
		if cfg.Verbose {
			engineLogger = logger
		}
	}
	now := deps.now
	if now == nil {
		now = time.Now
	}

	return &Runner{
		assertions:   &Assertions{Mode: cfg.Assertions, Logger: logger},
		logger:       logger,
		verbose:      cfg.Verbose,
		timeout:      timeout,
		seed:         cfg.Seed,
		rules:        cfg.Rules,
		locale:       cfg.Locale,
		metrics:      deps.metrics,
		engineLogger: engineLogger,
		now:          now,
		tracer:       platformotel.Tracer("scenario"),
	}, nil
}

// RunFile loads and executes a scenario file.
func RunFile(ctx context.Context, cfg Config, path string) (*Result, error) {
	runner, err := NewRunner(cfg)
	if err != nil {
		return nil, err
	}
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		return nil, err
	}
	return runner.RunScenario(ctx, scenario)
}

// RunScenario executes the scenario steps against a fresh engine.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) (result *Result, err error) {
	if scenario == nil {
		return nil, errors.New("scenario is required")
	}
	ctx, span := r.tracer.Start(ctx, "scenario.run", trace.WithAttributes(
		attribute.String("scenario.name", scenario.Name),
		attribute.Int("scenario.steps", len(scenario.Steps)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	state, err := r.newState(scenario)
	if err != nil {
		return nil, err
	}
	r.logf("scenario start: %s (%d steps, seed %d)", scenario.Name, len(scenario.Steps), state.engine.Seed())

	for index, step := range scenario.Steps {
		stepNumber := index + 1
		r.logf("step %d/%d start: %s", stepNumber, len(scenario.Steps), describe(step))
		stepStart := time.Now()
		stepCtx, cancel := context.WithTimeout(ctx, r.timeout)
		err := r.traceStep(stepCtx, state, stepNumber, step)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", stepNumber, describe(step), err)
		}
		r.logf("step %d/%d done: %s (%s)", stepNumber, len(scenario.Steps), step.Kind, time.Since(stepStart))
	}
	r.logf("scenario done: %s", scenario.Name)
	return &Result{
		Name:     scenario.Name,
		Engine:   state.engine,
		Steps:    len(scenario.Steps),
		Failures: r.assertions.Failures,
	}, nil
}

func (r *Runner) traceStep(ctx context.Context, state *scenarioState, number int, step Step) (err error) {
	ctx, span := r.tracer.Start(ctx, "scenario.step", trace.WithAttributes(
		attribute.Int("step.number", number),
		attribute.String("step.kind", step.Kind),
	))
	if name := requiredString(step.Args, "name"); step.Kind == "op" && name != "" {
		span.SetAttributes(attribute.String("step.op", name))
	}
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.runStep(ctx, state, step)
}

func (r *Runner) newState(scenario *Scenario) (*scenarioState, error) {
	gameRules, err := parseRules(scenario.Rules)
	if err != nil {
		return nil, err
	}
	if r.rules != nil {
		gameRules = *r.rules
	}
	seed := scenario.Seed
	if r.seed != 0 {
		seed = r.seed
	}
	seed, _, err = random.ResolveSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	scripted := dice.NewScripted(dice.NewSource(seed + 1))
	eng, err := engine.New(engine.Config{
		GameID:  scenarioGameID(scenario.Name),
		Rules:   gameRules,
		Seed:    seed,
		Dice:    scripted,
		Locale:  r.locale,
		Logger:  r.engineLogger,
		Metrics: r.metrics,
		Now:     r.now,
	})
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	return &scenarioState{engine: eng, dice: scripted, refs: map[string]string{}}, nil
}

func (r *Runner) logf(format string, args ...any) {
	if !r.verbose || r.logger == nil {
		return
	}
	r.logger.Printf(format, args...)
}
