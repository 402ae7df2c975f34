package engine

import (
	"time"

	"github.com/louisbranch/stalinopoly/internal/game/collective"
	"github.com/louisbranch/stalinopoly/internal/game/state"
)

// StartFiveYearPlan announces the plan. The deadline is shown to players;
// the plan resolves only through ResolveFiveYearPlan.
func (e *Engine) StartFiveYearPlan(target int, deadline time.Time) error {
	return e.play("StartFiveYearPlan", "", func(g *state.Game) error {
		return collective.StartPlan(g, target, deadline)
	})
}

// ContributeToPlan pays toward the plan.
func (e *Engine) ContributeToPlan(playerID string, amount int) error {
	return e.play("ContributeToPlan", playerID, func(g *state.Game) error {
		return collective.ContributeToPlan(g, playerID, amount)
	})
}

// ResolveFiveYearPlan closes the plan and reports whether it succeeded.
func (e *Engine) ResolveFiveYearPlan() (bool, error) {
	var ok bool
	err := e.play("ResolveFiveYearPlan", "", func(g *state.Game) error {
		var err error
		ok, err = collective.ResolvePlan(g)
		return err
	})
	return ok, err
}

// StartGreatPurge opens the purge vote.
func (e *Engine) StartGreatPurge() error {
	return e.play("StartGreatPurge", "", collective.StartPurge)
}

// VotePurge records a purge vote.
func (e *Engine) VotePurge(voterID, targetID string) error {
	return e.play("VotePurge", voterID, func(g *state.Game) error {
		return collective.VotePurge(g, voterID, targetID)
	})
}

// ResolveGreatPurge imprisons everyone tied for the most votes and returns
// their ids.
func (e *Engine) ResolveGreatPurge() ([]string, error) {
	var purged []string
	err := e.play("ResolveGreatPurge", "", func(g *state.Game) error {
		var err error
		purged, err = collective.ResolvePurge(g)
		return err
	})
	return purged, err
}

// InitiateEndVote opens a unanimous vote to end the game.
func (e *Engine) InitiateEndVote(playerID string) error {
	return e.play("InitiateEndVote", playerID, func(g *state.Game) error {
		return collective.InitiateEndVote(g, playerID)
	})
}

// CastEndVote records an end vote.
func (e *Engine) CastEndVote(playerID string, yes bool) error {
	return e.play("CastEndVote", playerID, func(g *state.Game) error {
		return collective.CastEndVote(g, playerID, yes)
	})
}
