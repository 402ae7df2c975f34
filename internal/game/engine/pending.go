package engine

import (
	"github.com/louisbranch/stalinopoly/internal/game/state"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

// settle finishes the resolving phase once no on-turn decision remains and
// fills an empty pending slot from the queues.
func settle(g *state.Game) {
	if g.Phase != state.PhasePlaying {
		g.Pending = nil
		return
	}
	if g.Pending != nil && stale(g, g.Pending) {
		g.Pending = nil
	}
	if b, ok := g.Pending.(state.BreadlineContribution); ok {
		g.Pending = pruneBreadline(g, b)
	}
	if g.TurnPhase == state.TurnResolving && (g.Pending == nil || !g.Pending.OnTurn()) {
		g.TurnPhase = state.TurnPostTurn
	}
	if g.Pending != nil {
		return
	}
	switch {
	case g.Tribunal != nil:
		g.Pending = state.TribunalInProgress{}
	case len(g.Trades) > 0:
		g.Pending = state.TradeResponse{TradeID: g.Trades[0].ID}
	case len(g.Bribes) > 0:
		g.Pending = state.BribeStalin{BribeID: g.Bribes[0].ID}
	case len(g.Confessions) > 0:
		g.Pending = state.ReviewConfession{ConfessionID: g.Confessions[0].ID}
	}
}

// pruneBreadline drops players who left the game while the breadline was
// waiting on them.
func pruneBreadline(g *state.Game, b state.BreadlineContribution) state.PendingAction {
	remaining := make([]string, 0, len(b.Remaining))
	for _, id := range b.Remaining {
		if p, err := g.Player(id); err == nil && p.Competing() {
			remaining = append(remaining, id)
		}
	}
	if len(remaining) == 0 {
		return nil
	}
	b.Remaining = remaining
	return b
}

// stale reports whether the decision a pending action waits on is gone.
func stale(g *state.Game, p state.PendingAction) bool {
	competing := func(id string) bool {
		pl, err := g.Player(id)
		return err == nil && pl.Competing()
	}
	switch v := p.(type) {
	case state.TribunalInProgress:
		return g.Tribunal == nil
	case state.TradeResponse:
		_, _, err := g.Trade(v.TradeID)
		return err != nil
	case state.BribeStalin:
		_, _, err := g.Bribe(v.BribeID)
		return err != nil
	case state.ReviewConfession:
		_, _, err := g.Confession(v.ConfessionID)
		return err != nil
	case state.VoucherRequest:
		pl, err := g.Player(v.PrisonerID)
		return err != nil || !pl.Competing() || !pl.InGulag
	case state.HammerApproval:
		return !competing(v.PlayerID) || !competing(v.TargetID)
	case state.MinistryApproval:
		return !competing(v.PlayerID)
	case state.PravdaApproval:
		return !competing(v.PlayerID) || !competing(v.TargetID)
	case state.PropertyPurchase:
		return !competing(v.PlayerID)
	case state.QuotaPayment:
		if !competing(v.PayerID) || !competing(v.CustodianID) {
			return true
		}
		prop, err := g.Property(v.SpaceID)
		return err != nil || prop.CustodianID != v.CustodianID || prop.Mortgaged
	case state.DrawPartyDirective:
		return !competing(v.PlayerID)
	case state.DrawCommunistTest:
		return !competing(v.PlayerID)
	case state.CommunistTestAnswer:
		return !competing(v.PlayerID)
	case state.StoyPilfer:
		return !competing(v.PlayerID)
	case state.BreadlineContribution:
		return !competing(v.PlayerID)
	default:
		return false
	}
}

// expect returns the pending action as T or rejects the operation.
func expect[T state.PendingAction](g *state.Game) (T, error) {
	v, ok := g.Pending.(T)
	if !ok {
		var zero T
		return zero, pendingMismatch(g, zero.Kind())
	}
	return v, nil
}

func pendingMismatch(g *state.Game, want state.PendingKind) error {
	got := "none"
	if g.Pending != nil {
		got = string(g.Pending.Kind())
	}
	return apperrors.WithMetadata(apperrors.CodePendingMismatch,
		"waiting on "+got+", not "+string(want),
		map[string]string{"Expected": string(want), "Pending": got})
}

// requireIdle rejects turn actions while a decision is pending.
func requireIdle(g *state.Game) error {
	if g.Pending == nil {
		return nil
	}
	kind := string(g.Pending.Kind())
	return apperrors.WithMetadata(apperrors.CodePendingActionActive,
		"a decision is pending: "+kind, map[string]string{"Pending": kind})
}

// requireActor rejects an on-turn decision answered by someone else.
func requireActor(g *state.Game, playerID, want string) error {
	if playerID == want {
		return nil
	}
	p, err := g.Player(playerID)
	if err != nil {
		return err
	}
	return state.PlayerError(apperrors.CodeNotYourTurn, p, "decision belongs to "+want)
}
