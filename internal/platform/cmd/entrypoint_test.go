package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
	"time"

	"github.com/louisbranch/stalinopoly/internal/platform/timeouts"
)

type testConfig struct {
	Address string `env:"CMD_TEST_ADDRESS" envDefault:"127.0.0.1:8080"`
	Mode    string `env:"CMD_TEST_MODE" envDefault:"server"`
}

func bindTestFlags(fs *flag.FlagSet, cfg *testConfig) {
	fs.StringVar(&cfg.Address, "address", cfg.Address, "address")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "mode")
}

func TestParseConfigFromArgsReadsEnvThenFlags(t *testing.T) {
	t.Setenv("STALINOPOLY_CMD_TEST_ADDRESS", "env:9000")
	t.Setenv("STALINOPOLY_CMD_TEST_MODE", "env-mode")

	var cfg testConfig
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	if err := ParseConfigFromArgs(&cfg, fs, []string{"-address", "flag:9001"}, bindTestFlags); err != nil {
		t.Fatalf("parse config and args: %v", err)
	}
	if cfg.Address != "flag:9001" {
		t.Fatalf("Address = %q, want %q", cfg.Address, "flag:9001")
	}
	if cfg.Mode != "env-mode" {
		t.Fatalf("Mode = %q, want %q", cfg.Mode, "env-mode")
	}
}

func TestParseConfigFromArgsKeepsEnvDefaults(t *testing.T) {
	var cfg testConfig
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	if err := ParseConfigFromArgs(&cfg, fs, nil, bindTestFlags); err != nil {
		t.Fatalf("parse config and args: %v", err)
	}
	if cfg.Address != "127.0.0.1:8080" || cfg.Mode != "server" {
		t.Fatalf("cfg = %+v, want envDefault values", cfg)
	}
}

func TestParseConfigFromArgsRejectsMissingInputs(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	if err := ParseConfigFromArgs[testConfig](nil, fs, nil, nil); err == nil {
		t.Fatal("expected nil config target to be rejected")
	}
	var cfg testConfig
	if err := ParseConfigFromArgs(&cfg, nil, nil, bindTestFlags); err == nil {
		t.Fatal("expected nil flag parser to be rejected")
	}
}

func TestRunOptionsShutdownTimeout(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{name: "zero uses default", in: 0, want: timeouts.TelemetryShutdown},
		{name: "negative uses default", in: -time.Second, want: timeouts.TelemetryShutdown},
		{name: "explicit", in: 2 * time.Second, want: 2 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RunOptions{ShutdownTimeout: tt.in}.shutdownTimeout()
			if got != tt.want {
				t.Fatalf("shutdownTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	ok := func(context.Context) error { return nil }
	if err := RunWithTelemetryAndOptions(context.Background(), " ", RunOptions{}, ok); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetryAndOptions(context.Background(), ServiceScenario, RunOptions{}, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv("STALINOPOLY_OTEL_ENDPOINT", "")
	want := errors.New("boom")
	called := false
	err := RunWithTelemetryAndOptions(context.Background(), ServiceScenario, RunOptions{ShutdownTimeout: time.Second}, func(context.Context) error {
		called = true
		return want
	})
	if !called {
		t.Fatal("run function was not called")
	}
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}
