package engine

import (
	"github.com/louisbranch/stalinopoly/internal/game/board"
	"github.com/louisbranch/stalinopoly/internal/game/deck"
	"github.com/louisbranch/stalinopoly/internal/game/gulag"
	"github.com/louisbranch/stalinopoly/internal/game/ledger"
	"github.com/louisbranch/stalinopoly/internal/game/state"
	"github.com/louisbranch/stalinopoly/internal/game/tribunal"
)

// applyDirective carries out a card's single effect on the drawing player.
// Moves resolve the new space like an ordinary landing.
func (e *Engine) applyDirective(g *state.Game, p *state.Player, card deck.Card) error {
	effect := card.Effect
	switch effect.Kind {
	case deck.EffectMoveTo:
		move(g, p, board.Normalize(effect.Position-p.Position))
		return e.resolveSpace(g, p)
	case deck.EffectMoveBy:
		move(g, p, effect.Spaces)
		return e.resolveSpace(g, p)
	case deck.EffectMoney:
		if effect.Amount >= 0 {
			paid := g.WithdrawTreasury(p, effect.Amount)
			g.Logf(state.LogCard, p.ID, "log.card_collect", p.Name, paid)
			return nil
		}
		paid := g.PayTreasury(p, -effect.Amount, true)
		g.Logf(state.LogCard, p.ID, "log.card_pay", p.Name, paid)
		ledger.CheckElimination(g, p.ID)
		return nil
	case deck.EffectGulag:
		_, err := gulag.Sentence(g, p.ID, gulag.ReasonDirective)
		return err
	case deck.EffectEscapeToken:
		p.EscapeTokens++
		g.Logf(state.LogCard, p.ID, "log.card_escape_token", p.Name)
		return nil
	case deck.EffectRank:
		for range abs(effect.Steps) {
			if effect.Steps > 0 {
				p.Promote()
			} else {
				p.Demote()
			}
		}
		g.Logf(state.LogCard, p.ID, "log.rank_changed", p.Name, p.Rank.String())
		return nil
	case deck.EffectCollectFromAll:
		for _, other := range g.Competitors() {
			if other.ID == p.ID {
				continue
			}
			paid := g.Transfer(other, p, effect.Amount, false)
			g.Logf(state.LogCard, other.ID, "log.card_paid_to", other.Name, paid, p.Name)
		}
		return nil
	case deck.EffectPayToAll:
		for _, other := range g.Competitors() {
			if other.ID == p.ID {
				continue
			}
			paid := g.Transfer(p, other, effect.Amount, true)
			g.Logf(state.LogCard, p.ID, "log.card_paid_to", p.Name, paid, other.Name)
		}
		ledger.CheckElimination(g, p.ID)
		return nil
	case deck.EffectPropertyTax:
		held := g.PropertiesOf(p.ID)
		levels := 0
		for _, prop := range held {
			levels += prop.Collectivization
		}
		tax := deck.PropertyTax(effect, len(held), levels)
		paid := g.PayTreasury(p, tax, true)
		g.Logf(state.LogCard, p.ID, "log.card_property_tax", p.Name, paid, len(held), levels)
		ledger.CheckElimination(g, p.ID)
		return nil
	case deck.EffectCustom:
		return e.customDirective(g, p, effect)
	}
	return nil
}

func (e *Engine) customDirective(g *state.Game, p *state.Player, effect deck.Effect) error {
	switch effect.Handler {
	case deck.HandlerNearestRailway:
		target := board.NearestRailway(p.Position)
		move(g, p, board.Normalize(target-p.Position))
		if !p.Competing() {
			return nil
		}
		g.TurnPhase = state.TurnResolving
		return landOnOwnable(g, p, board.MustGet(target), max(1, effect.QuotaMultiplier))
	case deck.HandlerAnonymousDenouncing:
		if p.InGulag || g.ActiveTribunal() {
			g.Logf(state.LogCard, p.ID, "log.card_no_effect", p.Name)
			return nil
		}
		return tribunal.OpenAnonymous(g, p.ID, "")
	}
	g.Logf(state.LogCard, p.ID, "log.card_no_effect", p.Name)
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
