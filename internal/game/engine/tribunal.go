package engine

import (
	"github.com/louisbranch/stalinopoly/internal/game/state"
	"github.com/louisbranch/stalinopoly/internal/game/tribunal"
)

// CanDenounce reports whether accuserID may denounce accusedID now. It
// changes nothing.
func (e *Engine) CanDenounce(accuserID, accusedID string) error {
	if err := e.game.RequirePlaying(); err != nil {
		return err
	}
	return tribunal.CanDenounce(e.game, accuserID, accusedID)
}

// Denounce accuses a comrade before a tribunal. Denouncing the controller
// sends the accuser to the gulag instead.
func (e *Engine) Denounce(accuserID, accusedID, crime string) error {
	return e.play("Denounce", accuserID, func(g *state.Game) error {
		_, err := tribunal.Denounce(g, accuserID, accusedID, crime)
		return err
	})
}

// AdvanceTribunal moves the tribunal to its next phase.
func (e *Engine) AdvanceTribunal() error {
	return e.play("AdvanceTribunal", "", tribunal.Advance)
}

// AddWitness adds a witness to one side of the tribunal.
func (e *Engine) AddWitness(witnessID string, side state.WitnessSide) error {
	return e.play("AddWitness", witnessID, func(g *state.Game) error {
		return tribunal.AddWitness(g, witnessID, side)
	})
}

// RemoveWitness withdraws a witness.
func (e *Engine) RemoveWitness(witnessID string) error {
	return e.play("RemoveWitness", witnessID, func(g *state.Game) error {
		return tribunal.RemoveWitness(g, witnessID)
	})
}

// HasEnoughWitnesses reports whether the running tribunal can convict.
func (e *Engine) HasEnoughWitnesses() bool {
	return tribunal.HasEnoughWitnesses(e.game)
}

// RenderVerdict closes the tribunal.
func (e *Engine) RenderVerdict(verdict state.Verdict) error {
	return e.play("RenderVerdict", "", func(g *state.Game) error {
		return tribunal.RenderVerdict(g, verdict)
	})
}
