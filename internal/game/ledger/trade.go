package ledger

import (
	"fmt"

	"github.com/louisbranch/stalinopoly/internal/game/board"
	"github.com/louisbranch/stalinopoly/internal/game/state"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

// ProposeTrade queues an offer from one competitor to another and returns its
// id.
func ProposeTrade(g *state.Game, fromID, toID string, offer, request state.TradeBundle) (string, error) {
	from, err := g.Competitor(fromID)
	if err != nil {
		return "", err
	}
	to, err := g.Competitor(toID)
	if err != nil {
		return "", err
	}
	if from.ID == to.ID {
		return "", state.PlayerError(apperrors.CodeInvalidTrade, from, "cannot trade with yourself")
	}
	if offer.Empty() && request.Empty() {
		return "", state.PlayerError(apperrors.CodeInvalidTrade, from, "trade is empty")
	}
	for _, b := range []state.TradeBundle{offer, request} {
		if b.Money < 0 || b.EscapeTokens < 0 || b.Favours < 0 {
			return "", state.PlayerError(apperrors.CodeInvalidTrade, from, "negative trade quantity")
		}
		for _, id := range b.Properties {
			if _, _, err := ownable(g, id); err != nil {
				return "", err
			}
		}
	}
	trade := state.TradeOffer{
		ID:      g.NextID("trade"),
		FromID:  from.ID,
		ToID:    to.ID,
		Offer:   cloneBundle(offer),
		Request: cloneBundle(request),
	}
	g.Trades = append(g.Trades, trade)
	g.Logf(state.LogTrade, from.ID, "log.trade_proposed", from.Name, to.Name)
	return trade.ID, nil
}

// RespondToTrade accepts or rejects a queued trade. Acceptance applies every
// transfer or none of them; either way the offer is removed.
func RespondToTrade(g *state.Game, tradeID string, accept bool) error {
	trade, idx, err := g.Trade(tradeID)
	if err != nil {
		return err
	}
	from, err := g.Competitor(trade.FromID)
	if err != nil {
		return err
	}
	to, err := g.Competitor(trade.ToID)
	if err != nil {
		return err
	}
	if !accept {
		g.Trades = append(g.Trades[:idx], g.Trades[idx+1:]...)
		g.Logf(state.LogTrade, to.ID, "log.trade_rejected", to.Name, from.Name)
		return nil
	}
	if err := canGive(g, from, trade.Offer); err != nil {
		return err
	}
	if err := canGive(g, to, trade.Request); err != nil {
		return err
	}
	give(g, from, to, trade.Offer)
	give(g, to, from, trade.Request)
	g.Trades = append(g.Trades[:idx], g.Trades[idx+1:]...)
	g.Stats.TradesCompleted++
	g.Logf(state.LogTrade, to.ID, "log.trade_accepted", to.Name, from.Name)
	return nil
}

func canGive(g *state.Game, p *state.Player, b state.TradeBundle) error {
	if p.Wealth < b.Money {
		return state.InsufficientFunds(p, b.Money)
	}
	if p.EscapeTokens < b.EscapeTokens {
		return state.PlayerError(apperrors.CodeNoEscapeToken, p, "not enough escape tokens")
	}
	seen := map[int]bool{}
	for _, id := range b.Properties {
		prop, err := g.Property(id)
		if err != nil {
			return err
		}
		if prop.CustodianID != p.ID || seen[id] {
			return state.PlayerError(apperrors.CodeNotCustodian, p,
				fmt.Sprintf("does not hold %d", id), "Property", board.MustGet(id).Name)
		}
		seen[id] = true
	}
	return nil
}

func give(g *state.Game, from, to *state.Player, b state.TradeBundle) {
	g.Transfer(from, to, b.Money, false)
	for _, id := range b.Properties {
		if prop, err := g.Property(id); err == nil {
			prop.CustodianID = to.ID
		}
	}
	from.EscapeTokens -= b.EscapeTokens
	to.EscapeTokens += b.EscapeTokens
	for range b.Favours {
		from.OwesFavoursTo = append(from.OwesFavoursTo, to.ID)
	}
}

func cloneBundle(b state.TradeBundle) state.TradeBundle {
	b.Properties = append([]int(nil), b.Properties...)
	return b
}
