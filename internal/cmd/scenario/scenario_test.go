package scenario

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/stalinopoly/internal/storage/bbolt"
	"github.com/louisbranch/stalinopoly/internal/storage/sqlite"
)

const quickScenario = `
local game = Game.new("quick", {seed = 3})
game:stalin("koba", {name = "Koba"})
game:player("anna", {name = "Anna"})
game:player("boris", {name = "Boris"})
game:start()
game:dice(1, 2)
game:roll("anna")
game:op("buy_property", {player = "anna"})
game:end_turn()
return game
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quick.lua")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("scenario", flag.ContinueOnError)

	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Assertions != "strict" {
		t.Fatalf("assertions = %q, want strict", cfg.Assertions)
	}
	if cfg.Timeout != 10*time.Second {
		t.Fatalf("timeout = %v, want 10s", cfg.Timeout)
	}
	if cfg.Locale != "en-US" {
		t.Fatalf("locale = %q, want en-US", cfg.Locale)
	}
	if cfg.Store != "sqlite" {
		t.Fatalf("store = %q, want sqlite", cfg.Store)
	}
	if cfg.DBPath != "" || cfg.Metrics {
		t.Fatalf("expected persistence and metrics off by default, got %+v", cfg)
	}
	if got := cfg.RunOptions().ShutdownTimeout; got != 5*time.Second {
		t.Fatalf("shutdown timeout = %v, want 5s", got)
	}
}

func TestParseConfigShutdownTimeout(t *testing.T) {
	t.Setenv("STALINOPOLY_OTEL_SHUTDOWN_TIMEOUT", "2s")

	fs := flag.NewFlagSet("scenario", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.ShutdownTimeout != 2*time.Second {
		t.Fatalf("shutdown timeout from env = %v, want 2s", cfg.ShutdownTimeout)
	}

	fs = flag.NewFlagSet("scenario", flag.ContinueOnError)
	cfg, err = ParseConfig(fs, []string{"-shutdown-timeout", "750ms"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if got := cfg.RunOptions().ShutdownTimeout; got != 750*time.Millisecond {
		t.Fatalf("shutdown timeout from flag = %v, want 750ms", got)
	}
}

func TestParseConfigEnvThenFlags(t *testing.T) {
	t.Setenv("STALINOPOLY_SCENARIO_FILE", "env.lua")
	t.Setenv("STALINOPOLY_SCENARIO_SEED", "11")
	t.Setenv("STALINOPOLY_LOCALE", "ru-RU")

	fs := flag.NewFlagSet("scenario", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-seed", "42", "-assert", "log"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Scenario != "env.lua" {
		t.Fatalf("scenario = %q, want env.lua", cfg.Scenario)
	}
	if cfg.Seed != 42 {
		t.Fatalf("seed = %d, want 42", cfg.Seed)
	}
	if cfg.Assertions != "log" {
		t.Fatalf("assertions = %q, want log", cfg.Assertions)
	}
	if cfg.Locale != "ru-RU" {
		t.Fatalf("locale = %q, want ru-RU", cfg.Locale)
	}
}

func TestRunRequiresScenarioPath(t *testing.T) {
	err := Run(context.Background(), Config{Assertions: "strict"}, nil, nil)
	if err == nil || !strings.Contains(err.Error(), "scenario path is required") {
		t.Fatalf("err = %v, want missing path error", err)
	}
}

func TestRunRejectsUnknownAssertionMode(t *testing.T) {
	path := writeScenario(t, quickScenario)
	if err := Run(context.Background(), Config{Scenario: path, Assertions: "loud"}, nil, nil); err == nil {
		t.Fatal("expected assertion mode error")
	}
}

func TestRunPrintsSummary(t *testing.T) {
	path := writeScenario(t, quickScenario)
	var out bytes.Buffer

	cfg := Config{Scenario: path, Assertions: "strict", Timeout: time.Second, Locale: "en-US"}
	if err := Run(context.Background(), cfg, &out, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "scenario quick:") {
		t.Fatalf("output = %q, want summary line", out.String())
	}
}

func TestRunSavesSnapshot(t *testing.T) {
	path := writeScenario(t, quickScenario)
	dbPath := filepath.Join(t.TempDir(), "games.db")
	var out bytes.Buffer

	cfg := Config{Scenario: path, Assertions: "strict", Timeout: time.Second, DBPath: dbPath}
	if err := Run(context.Background(), cfg, &out, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "saved scenario-quick") {
		t.Fatalf("output = %q, want saved line", out.String())
	}

	store, err := sqlite.Open(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	rec, err := store.Load(context.Background(), "scenario-quick")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rec.Snapshot.Players) != 3 {
		t.Fatalf("players = %d, want 3", len(rec.Snapshot.Players))
	}
}

func TestRunSavesSnapshotToBolt(t *testing.T) {
	path := writeScenario(t, quickScenario)
	dbPath := filepath.Join(t.TempDir(), "games.bolt")

	cfg := Config{Scenario: path, Assertions: "strict", Timeout: time.Second, DBPath: dbPath, Store: "bbolt"}
	if err := Run(context.Background(), cfg, nil, nil); err != nil {
		t.Fatalf("run: %v", err)
	}

	store, err := bbolt.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	if _, err := store.Load(context.Background(), "scenario-quick"); err != nil {
		t.Fatalf("load: %v", err)
	}
}

func TestRunRejectsUnknownStore(t *testing.T) {
	path := writeScenario(t, quickScenario)
	cfg := Config{Scenario: path, Assertions: "strict", DBPath: filepath.Join(t.TempDir(), "x.db"), Store: "redis"}
	err := Run(context.Background(), cfg, nil, nil)
	if err == nil || !strings.Contains(err.Error(), "unknown snapshot store") {
		t.Fatalf("err = %v, want unknown store error", err)
	}
}

func TestRunPrintsMetrics(t *testing.T) {
	path := writeScenario(t, quickScenario)
	var out bytes.Buffer

	cfg := Config{Scenario: path, Assertions: "strict", Timeout: time.Second, Metrics: true}
	if err := Run(context.Background(), cfg, &out, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "# TYPE stalinopoly_") {
		t.Fatalf("output = %q, want metric families", out.String())
	}
}

func TestRunRejectsMissingRulesFile(t *testing.T) {
	path := writeScenario(t, quickScenario)
	cfg := Config{Scenario: path, Assertions: "strict", RulesFile: filepath.Join(t.TempDir(), "missing.toml")}
	if err := Run(context.Background(), cfg, nil, nil); err == nil {
		t.Fatal("expected rules file error")
	}
}
