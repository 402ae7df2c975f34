package engine

import (
	"fmt"
	"slices"

	"github.com/louisbranch/stalinopoly/internal/game/board"
	"github.com/louisbranch/stalinopoly/internal/game/deck"
	"github.com/louisbranch/stalinopoly/internal/game/dice"
	"github.com/louisbranch/stalinopoly/internal/game/gulag"
	"github.com/louisbranch/stalinopoly/internal/game/ledger"
	"github.com/louisbranch/stalinopoly/internal/game/state"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

// BuyProperty buys the State-held space the player landed on.
func (e *Engine) BuyProperty(playerID string) error {
	return e.play("BuyProperty", playerID, func(g *state.Game) error {
		pending, err := expect[state.PropertyPurchase](g)
		if err != nil {
			return err
		}
		if err := requireActor(g, playerID, pending.PlayerID); err != nil {
			return err
		}
		if err := ledger.Buy(g, pending.PlayerID, pending.SpaceID); err != nil {
			return err
		}
		g.Pending = nil
		return nil
	})
}

// DeclineProperty leaves the space with the State.
func (e *Engine) DeclineProperty(playerID string) error {
	return e.play("DeclineProperty", playerID, func(g *state.Game) error {
		pending, err := expect[state.PropertyPurchase](g)
		if err != nil {
			return err
		}
		if err := requireActor(g, playerID, pending.PlayerID); err != nil {
			return err
		}
		p, err := g.Player(pending.PlayerID)
		if err != nil {
			return err
		}
		g.Pending = nil
		g.Logf(state.LogPurchase, p.ID, "log.property_declined", p.Name, board.MustGet(pending.SpaceID).Name)
		return nil
	})
}

// PayQuota pays the custodian of the space the player landed on. What the
// player cannot cover becomes their debt.
func (e *Engine) PayQuota(playerID string) error {
	return e.play("PayQuota", playerID, func(g *state.Game) error {
		pending, err := expect[state.QuotaPayment](g)
		if err != nil {
			return err
		}
		if err := requireActor(g, playerID, pending.PayerID); err != nil {
			return err
		}
		if _, err := ledger.PayQuota(g, pending.PayerID, pending.CustodianID, pending.SpaceID, pending.Amount); err != nil {
			return err
		}
		g.Pending = nil
		return nil
	})
}

// DrawPartyDirective draws and applies a directive card.
func (e *Engine) DrawPartyDirective(playerID string) error {
	return e.play("DrawPartyDirective", playerID, func(g *state.Game) error {
		pending, err := expect[state.DrawPartyDirective](g)
		if err != nil {
			return err
		}
		if err := requireActor(g, playerID, pending.PlayerID); err != nil {
			return err
		}
		p, err := g.Competitor(pending.PlayerID)
		if err != nil {
			return err
		}
		cardID, ok := g.PartyDeck.DrawCard(e.shuffle)
		if !ok {
			return fmt.Errorf("party directive deck is empty")
		}
		card, err := deck.Directive(cardID)
		if err != nil {
			return err
		}
		g.Pending = nil
		g.Stats.CardsDrawn++
		p.Stats.CardsDrawn++
		g.Logf(state.LogCard, p.ID, "log.card_drawn", p.Name, card.Title, card.Text)
		return e.applyDirective(g, p, card)
	})
}

// DrawCommunistTest draws a test question for the player to answer.
func (e *Engine) DrawCommunistTest(playerID string) error {
	return e.play("DrawCommunistTest", playerID, func(g *state.Game) error {
		pending, err := expect[state.DrawCommunistTest](g)
		if err != nil {
			return err
		}
		if err := requireActor(g, playerID, pending.PlayerID); err != nil {
			return err
		}
		p, err := g.Competitor(pending.PlayerID)
		if err != nil {
			return err
		}
		questionID, ok := g.TestDeck.DrawCard(e.shuffle)
		if !ok {
			return fmt.Errorf("communist test deck is empty")
		}
		q, err := deck.LookupQuestion(questionID)
		if err != nil {
			return err
		}
		g.Stats.CardsDrawn++
		p.Stats.CardsDrawn++
		g.Pending = state.CommunistTestAnswer{PlayerID: p.ID, QuestionID: q.ID}
		g.Logf(state.LogCard, p.ID, "log.test_drawn", p.Name, q.Prompt)
		return nil
	})
}

// AnswerCommunistTest answers the drawn question with the index of a
// choice. A right answer is rewarded from the treasury; a wrong one costs a
// penalty and brings suspicion.
func (e *Engine) AnswerCommunistTest(playerID string, answer int) error {
	return e.play("AnswerCommunistTest", playerID, func(g *state.Game) error {
		pending, err := expect[state.CommunistTestAnswer](g)
		if err != nil {
			return err
		}
		if err := requireActor(g, playerID, pending.PlayerID); err != nil {
			return err
		}
		p, err := g.Competitor(pending.PlayerID)
		if err != nil {
			return err
		}
		q, err := deck.LookupQuestion(pending.QuestionID)
		if err != nil {
			return err
		}
		g.Pending = nil
		if q.IsCorrect(answer) {
			paid := g.WithdrawTreasury(p, g.Rules.TestReward)
			g.Stats.CommunistTestsPassed++
			g.Logf(state.LogCard, p.ID, "log.test_passed", p.Name, paid)
			return nil
		}
		paid := g.PayTreasury(p, g.Rules.TestPenalty, false)
		p.UnderSuspicion = true
		g.Stats.CommunistTestsFailed++
		g.Logf(state.LogCard, p.ID, "log.test_failed", p.Name, q.Answers[q.Correct], paid)
		return nil
	})
}

// PilferStoy decides the Stoy pilfer. An attempt rolls one die: at or above
// the threshold the player takes the pilfer amount from the treasury,
// otherwise they are caught.
func (e *Engine) PilferStoy(playerID string, attempt bool) error {
	return e.play("PilferStoy", playerID, func(g *state.Game) error {
		pending, err := expect[state.StoyPilfer](g)
		if err != nil {
			return err
		}
		if err := requireActor(g, playerID, pending.PlayerID); err != nil {
			return err
		}
		p, err := g.Competitor(pending.PlayerID)
		if err != nil {
			return err
		}
		g.Pending = nil
		if !attempt {
			g.Logf(state.LogSpace, p.ID, "log.pilfer_skipped", p.Name)
			return nil
		}
		roll := dice.D6(e.dice)
		if roll >= g.Rules.PilferSuccessMin {
			taken := g.WithdrawTreasury(p, g.Rules.PilferAmount)
			g.Logf(state.LogSpace, p.ID, "log.pilfer_succeeded", p.Name, roll, taken)
			return nil
		}
		g.Logf(state.LogSpace, p.ID, "log.pilfer_caught", p.Name, roll)
		_, err = gulag.Sentence(g, p.ID, gulag.ReasonPilferCaught)
		return err
	})
}

// ContributeToBreadline answers the breadline for one waiting player.
// Contributors pay the lander; refusers fall under suspicion.
func (e *Engine) ContributeToBreadline(playerID string, contribute bool) error {
	return e.play("ContributeToBreadline", playerID, func(g *state.Game) error {
		pending, err := expect[state.BreadlineContribution](g)
		if err != nil {
			return err
		}
		p, err := g.Competitor(playerID)
		if err != nil {
			return err
		}
		if !pending.Awaiting(p.ID) {
			return state.PlayerError(apperrors.CodePendingMismatch, p, "not waiting on this player")
		}
		lander, err := g.Competitor(pending.PlayerID)
		if err != nil {
			return err
		}
		if contribute {
			amount := g.Rules.BreadlineContribution
			if lander.Piece == state.PieceBreadLoaf {
				amount *= 2
			}
			paid := g.Transfer(p, lander, amount, false)
			g.Logf(state.LogSpace, p.ID, "log.breadline_contributed", p.Name, paid, lander.Name)
		} else {
			p.UnderSuspicion = true
			g.Stats.BreadlineRefusals++
			g.Logf(state.LogSpace, p.ID, "log.breadline_refused", p.Name)
		}
		i := slices.Index(pending.Remaining, p.ID)
		pending.Remaining = slices.Delete(slices.Clone(pending.Remaining), i, i+1)
		if len(pending.Remaining) == 0 {
			g.Pending = nil
			return nil
		}
		g.Pending = pending
		return nil
	})
}
