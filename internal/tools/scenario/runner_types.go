package scenario

import (
	"github.com/louisbranch/stalinopoly/internal/game/dice"
	"github.com/louisbranch/stalinopoly/internal/game/engine"
)

// Scenario is a scripted game loaded from Lua.
type Scenario struct {
	Name string
	// Seed seeds the engine; zero picks a random seed.
	Seed int64
	// Rules holds TOML rule overrides.
	Rules string
	Steps []Step
}

// Step is one scripted action or expectation.
type Step struct {
	Kind string
	Args map[string]any
}

type scenarioState struct {
	engine  *engine.Engine
	dice    *dice.Scripted
	players []engine.PlayerSpec
	// refs maps script aliases to ids the engine generated (trades, bribes,
	// confessions).
	refs map[string]string
}
