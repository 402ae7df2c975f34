// Package engine is the authoritative game orchestrator. Every exported
// operation runs against a copy of the committed state and commits only when
// it succeeds, so a rejected operation leaves the game untouched apart from
// a narrated rejection.
package engine

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/louisbranch/stalinopoly/internal/game/dice"
	"github.com/louisbranch/stalinopoly/internal/game/rules"
	"github.com/louisbranch/stalinopoly/internal/game/state"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
	"github.com/louisbranch/stalinopoly/internal/platform/id"
	"github.com/louisbranch/stalinopoly/internal/platform/telemetry/metrics"
	"github.com/louisbranch/stalinopoly/internal/random"
)

// Config controls a new engine.
type Config struct {
	// GameID names the game; empty generates one.
	GameID string
	// Rules are the house rules; the zero value means rules.Default().
	Rules rules.Rules
	// Seed seeds dice and shuffles; zero picks a random seed.
	Seed int64
	// Dice overrides the die source, e.g. with a dice.Scripted. Shuffles
	// keep using the seeded source.
	Dice dice.Source
	// Locale selects the narration language.
	Locale  string
	Logger  *log.Logger
	Metrics *metrics.Recorder
	Now     func() time.Time
}

// Engine owns one game.
type Engine struct {
	game    *state.Game
	seed    int64
	dice    dice.Source
	shuffle dice.Source
	logger  *log.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// New returns an engine holding a game in setup.
func New(cfg Config) (*Engine, error) {
	r := cfg.Rules
	if r == (rules.Rules{}) {
		r = rules.Default()
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	seed, _, err := random.ResolveSeed(cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	gameID := cfg.GameID
	if gameID == "" {
		gameID, err = id.NewID()
		if err != nil {
			return nil, err
		}
	}
	locale := cfg.Locale
	if locale == "" {
		locale = apperrors.DefaultLocale
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	shuffle := dice.NewSource(seed)
	src := cfg.Dice
	if src == nil {
		src = shuffle
	}
	return &Engine{
		game:    state.New(gameID, r, locale),
		seed:    seed,
		dice:    src,
		shuffle: shuffle,
		logger:  logger,
		metrics: cfg.Metrics,
		now:     now,
	}, nil
}

// Seed returns the seed the engine was built with.
func (e *Engine) Seed() int64 {
	return e.seed
}

// State returns a copy of the committed game state.
func (e *Engine) State() *state.Game {
	return e.game.Clone()
}

// Snapshot returns the durable part of the committed state.
func (e *Engine) Snapshot() state.Snapshot {
	return e.game.Snapshot()
}

// Restore replaces the game with one rebuilt from a snapshot. Pending
// decisions, tribunals and queued offers do not survive.
func (e *Engine) Restore(s state.Snapshot) error {
	g, err := state.FromSnapshot(s, e.game.Rules, e.game.Locale, e.shuffle)
	if err != nil {
		e.logger.Printf("engine: restore rejected: %v", err)
		return err
	}
	e.game = g
	e.metrics.Treasury(g.Treasury)
	return nil
}

// Log returns the narration entries appended after seq; zero returns the
// whole log.
func (e *Engine) Log(seq int) []state.LogEntry {
	return e.game.LogSince(seq)
}

// apply runs fn on a copy of the committed state and commits it on success.
// A rejection is logged for operators and, when player-facing, narrated in
// the game log.
func (e *Engine) apply(op, actorID string, fn func(g *state.Game) error) error {
	next := e.game.Clone()
	err := fn(next)
	e.metrics.Operation(op, err)
	if err != nil {
		e.logger.Printf("engine: %s rejected: %v", op, err)
		if apperrors.IsPlayerFacing(err) {
			e.game.LogRejection(actorID, err)
		}
		return err
	}
	settle(next)
	e.observe(e.game, next)
	e.game = next
	return nil
}

// play is apply for operations that need a game in progress.
func (e *Engine) play(op, actorID string, fn func(g *state.Game) error) error {
	return e.apply(op, actorID, func(g *state.Game) error {
		if err := g.RequirePlaying(); err != nil {
			return err
		}
		return fn(g)
	})
}

// observe reports what changed between two committed states.
func (e *Engine) observe(prev, next *state.Game) {
	if e.metrics == nil {
		return
	}
	for i := range next.Players {
		p := &next.Players[i]
		before, err := prev.Player(p.ID)
		if err != nil {
			continue
		}
		if p.Stats.TimesImprisoned > before.Stats.TimesImprisoned {
			reason := p.GulagReason
			if reason == "" {
				reason = "unknown"
			}
			for range p.Stats.TimesImprisoned - before.Stats.TimesImprisoned {
				e.metrics.Incarceration(reason)
			}
		}
		if p.Eliminated && !before.Eliminated {
			e.metrics.Elimination(p.EliminationReason)
		}
	}
	verdicts := []struct {
		verdict state.Verdict
		delta   int
	}{
		{state.VerdictGuilty, next.Stats.GuiltyVerdicts - prev.Stats.GuiltyVerdicts},
		{state.VerdictInnocent, next.Stats.InnocentVerdicts - prev.Stats.InnocentVerdicts},
		{state.VerdictBothGuilty, next.Stats.BothGuiltyVerdicts - prev.Stats.BothGuiltyVerdicts},
		{state.VerdictInsufficientEvidence, next.Stats.InsufficientEvidence - prev.Stats.InsufficientEvidence},
	}
	for _, v := range verdicts {
		for range v.delta {
			e.metrics.Verdict(string(v.verdict))
		}
	}
	if prev.Phase == state.PhasePlaying {
		e.metrics.Rounds(next.Round - prev.Round)
	}
	e.metrics.Treasury(next.Treasury)
}
