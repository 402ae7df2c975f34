package ledger

import (
	"fmt"
	"time"

	"github.com/louisbranch/stalinopoly/internal/game/gulag"
	"github.com/louisbranch/stalinopoly/internal/game/state"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

// SubmitBribe queues a bribe for the controller and returns its id.
func SubmitBribe(g *state.Game, playerID string, amount int, reason state.BribeReason, now time.Time) (string, error) {
	p, err := g.Competitor(playerID)
	if err != nil {
		return "", err
	}
	if amount <= 0 {
		return "", state.ErrInvalidAmount
	}
	switch reason {
	case state.BribeGulagEscape:
		if !p.InGulag {
			return "", state.PlayerError(apperrors.CodePlayerNotInGulag, p, "only prisoners bribe for escape")
		}
	case state.BribeFavour:
	default:
		return "", apperrors.New(apperrors.CodeUnknown, fmt.Sprintf("unknown bribe reason %q", reason))
	}
	if p.Wealth <= 0 {
		return "", state.InsufficientFunds(p, amount)
	}
	b := state.Bribe{
		ID:          g.NextID("bribe"),
		PlayerID:    p.ID,
		Amount:      amount,
		Reason:      reason,
		SubmittedAt: now,
	}
	g.Bribes = append(g.Bribes, b)
	g.Logf(state.LogBribe, p.ID, "log.bribe_submitted", p.Name)
	return b.ID, nil
}

// RespondToBribe settles a queued bribe. The briber pays what they hold up to
// the amount whatever the decision. An accepted escape bribe releases the
// prisoner; an accepted favour bribe lifts suspicion.
func RespondToBribe(g *state.Game, bribeID string, accept bool) error {
	b, idx, err := g.Bribe(bribeID)
	if err != nil {
		return err
	}
	bribe := *b
	g.Bribes = append(g.Bribes[:idx], g.Bribes[idx+1:]...)

	p, err := g.Player(bribe.PlayerID)
	if err != nil {
		return err
	}
	if !p.Competing() {
		return nil
	}
	paid := g.PayTreasury(p, bribe.Amount, false)
	if !accept {
		g.Stats.BribesRejected++
		g.Logf(state.LogBribe, p.ID, "log.bribe_rejected", p.Name, paid)
		return nil
	}
	g.Stats.BribesAccepted++
	g.Logf(state.LogBribe, p.ID, "log.bribe_accepted", p.Name, paid)
	switch bribe.Reason {
	case state.BribeGulagEscape:
		if p.InGulag {
			return gulag.Release(g, p.ID)
		}
	case state.BribeFavour:
		p.UnderSuspicion = false
	}
	return nil
}
