package scenario

import (
	"bytes"
	"context"
	"log"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/louisbranch/stalinopoly/internal/platform/telemetry/metrics"
)

func TestRunFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.lua"))
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}
	if len(paths) == 0 {
		t.Fatal("no fixtures found")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			var buf bytes.Buffer
			cfg := DefaultConfig()
			cfg.Logger = log.New(&buf, "", 0)
			result, err := RunFile(context.Background(), cfg, path)
			if err != nil {
				t.Fatalf("run %s: %v\n%s", path, err, buf.String())
			}
			if result.Failures != 0 {
				t.Fatalf("failures = %d, want 0", result.Failures)
			}
		})
	}
}

func TestRunScenarioStrictStopsOnFailedExpectation(t *testing.T) {
	scenario := mustLoad(t, `local game = Game.new("strict")
game:stalin("koba"):player("anna"):player("boris"):start()
game:expect({player = "anna", wealth = 1})
game:expect({player = "anna", wealth = 2})
return game
`)
	runner := newTestRunner(t, DefaultConfig())
	_, err := runner.RunScenario(context.Background(), scenario)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "step 5") || !strings.Contains(err.Error(), "wealth = 1500, want 1") {
		t.Fatalf("err = %v, want failure at step 5 on wealth", err)
	}
}

func TestRunScenarioLogOnlyCountsFailures(t *testing.T) {
	scenario := mustLoad(t, `local game = Game.new("log-only")
game:stalin("koba"):player("anna"):player("boris"):start()
game:expect({player = "anna", wealth = 1})
game:op("end_turn")
game:expect({current = "anna"})
return game
`)
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Assertions = AssertionLogOnly
	cfg.Logger = log.New(&buf, "", 0)
	runner := newTestRunner(t, cfg)

	result, err := runner.RunScenario(context.Background(), scenario)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Failures != 2 {
		t.Fatalf("failures = %d, want 2", result.Failures)
	}
	if !strings.Contains(buf.String(), "assertion failed") {
		t.Fatalf("log = %q, want assertion failures", buf.String())
	}
}

func TestRunScenarioExpectedErrorMismatch(t *testing.T) {
	scenario := mustLoad(t, `local game = Game.new("mismatch")
game:stalin("koba"):player("anna"):player("boris"):start()
game:op("end_turn", {error = "GAME_OVER"})
return game
`)
	runner := newTestRunner(t, DefaultConfig())
	_, err := runner.RunScenario(context.Background(), scenario)
	if err == nil || !strings.Contains(err.Error(), "want GAME_OVER") {
		t.Fatalf("err = %v, want mismatch on GAME_OVER", err)
	}
}

func TestRunScenarioRejectsMalformedSteps(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "unknown operation",
			source: `game:op("nationalize")`,
			want:   `unknown operation "nationalize"`,
		},
		{
			name:   "die face",
			source: `game:dice(7)`,
			want:   "out of range",
		},
		{
			name:   "unknown expect key",
			source: `game:expect({colour = "red"})`,
			want:   `unknown key "colour"`,
		},
		{
			name:   "unbound alias",
			source: `game:op("buy_property", {player = "anna", as = "x"})`,
			want:   "returned no id",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := "local game = Game.new(\"bad\")\n" +
				"game:stalin(\"koba\"):player(\"anna\"):player(\"boris\"):start()\n" +
				"game:dice(1, 2):roll(\"anna\")\n" +
				tt.source + "\nreturn game\n"
			cfg := DefaultConfig()
			cfg.Assertions = AssertionLogOnly
			runner := newTestRunner(t, cfg)
			_, err := runner.RunScenario(context.Background(), mustLoad(t, source))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestRunScenarioSeedOverride(t *testing.T) {
	scenario := mustLoad(t, `local game = Game.new("seeded", {seed = 1})
game:stalin("koba"):player("anna"):player("boris"):start()
return game
`)
	cfg := DefaultConfig()
	cfg.Seed = 99
	runner := newTestRunner(t, cfg)
	result, err := runner.RunScenario(context.Background(), scenario)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := result.Engine.Seed(); got != 99 {
		t.Fatalf("seed = %d, want 99", got)
	}
	if got := result.Engine.State().ID; got != "scenario-seeded" {
		t.Fatalf("game id = %q, want scenario-seeded", got)
	}
}

func TestRunScenarioRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(reg)
	scenario := mustLoad(t, `local game = Game.new("metrics")
game:stalin("koba"):player("anna"):player("boris"):start()
game:op("end_turn", {error = "TURN_WRONG_PHASE"})
return game
`)
	cfg := DefaultConfig()
	runner, err := newRunnerWithDeps(cfg, runnerDeps{metrics: recorder, now: fixedNow})
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	if _, err := runner.RunScenario(context.Background(), scenario); err != nil {
		t.Fatalf("run: %v", err)
	}
	if n := testutil.CollectAndCount(reg); n == 0 {
		t.Fatal("no metrics collected")
	}
}

func TestNewRunnerRejectsUnknownMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Assertions = AssertionMode(9)
	if _, err := NewRunner(cfg); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseAssertionMode(t *testing.T) {
	tests := []struct {
		in      string
		want    AssertionMode
		wantErr bool
	}{
		{in: "", want: AssertionStrict},
		{in: "strict", want: AssertionStrict},
		{in: "LOG", want: AssertionLogOnly},
		{in: "log-only", want: AssertionLogOnly},
		{in: "loud", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseAssertionMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseAssertionMode(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err == nil && got != tt.want {
			t.Fatalf("ParseAssertionMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestScenarioGameID(t *testing.T) {
	tests := map[string]string{
		"opening":         "scenario-opening",
		"  Great Purge! ": "scenario-great-purge",
		"":                "scenario",
		"---":             "scenario",
	}
	for in, want := range tests {
		if got := scenarioGameID(in); got != want {
			t.Fatalf("scenarioGameID(%q) = %q, want %q", in, got, want)
		}
	}
}

func mustLoad(t *testing.T, source string) *Scenario {
	t.Helper()
	scenario, err := LoadScenario(t.Name(), source)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	return scenario
}

func newTestRunner(t *testing.T, cfg Config) *Runner {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = log.New(&bytes.Buffer{}, "", 0)
	}
	runner, err := newRunnerWithDeps(cfg, runnerDeps{now: fixedNow})
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	return runner
}

func fixedNow() time.Time {
	return time.Date(1937, time.March, 5, 12, 0, 0, 0, time.UTC)
}
