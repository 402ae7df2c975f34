package engine

import (
	"github.com/louisbranch/stalinopoly/internal/game/state"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

// StackPartyDirectives puts the named directive cards on top of the draw
// pile, first id drawn first. Scripted games use it to fix the next draws.
func (e *Engine) StackPartyDirectives(ids ...string) error {
	return e.play("StackPartyDirectives", "", func(g *state.Game) error {
		if err := g.PartyDeck.Stack(ids...); err != nil {
			return apperrors.Wrap(apperrors.CodeUnknown, "stack party directives", err)
		}
		return nil
	})
}

// StackCommunistTests is StackPartyDirectives for the test deck.
func (e *Engine) StackCommunistTests(ids ...string) error {
	return e.play("StackCommunistTests", "", func(g *state.Game) error {
		if err := g.TestDeck.Stack(ids...); err != nil {
			return apperrors.Wrap(apperrors.CodeUnknown, "stack communist tests", err)
		}
		return nil
	})
}
