package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/stalinopoly/internal/platform/config"
	"github.com/louisbranch/stalinopoly/internal/platform/otel"
	"github.com/louisbranch/stalinopoly/internal/platform/timeouts"
)

// ServiceScenario names the scenario runner in telemetry.
const ServiceScenario = "stalinopoly-scenario"

// RunOptions controls shared entrypoint behavior for commands.
type RunOptions struct {
	// ShutdownTimeout bounds the telemetry flush on exit. Zero or negative
	// falls back to timeouts.TelemetryShutdown.
	ShutdownTimeout time.Duration
}

func (o RunOptions) shutdownTimeout() time.Duration {
	if o.ShutdownTimeout <= 0 {
		return timeouts.TelemetryShutdown
	}
	return o.ShutdownTimeout
}

// ParseConfigFromArgs loads env defaults into cfg, lets bind register flags
// seeded from those defaults, then parses args. Flags win over env.
func ParseConfigFromArgs[T any](cfg *T, fs *flag.FlagSet, args []string, bind func(*flag.FlagSet, *T)) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if err := config.ParseEnv(cfg); err != nil {
		return err
	}
	if bind != nil {
		bind(fs, cfg)
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithTelemetryAndOptions configures tracing, executes run and flushes
// telemetry within the configured shutdown timeout.
func RunWithTelemetryAndOptions(ctx context.Context, service string, options RunOptions, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return fmt.Errorf("%s telemetry: %w", service, err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), options.shutdownTimeout())
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("%s otel shutdown: %v", service, err)
		}
	}()
	return run(ctx)
}
