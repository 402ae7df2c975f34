package engine

import (
	"strings"

	"github.com/louisbranch/stalinopoly/internal/game/dice"
	"github.com/louisbranch/stalinopoly/internal/game/gulag"
	"github.com/louisbranch/stalinopoly/internal/game/state"
	"github.com/louisbranch/stalinopoly/internal/game/tribunal"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

// SendToGulag is the controller's decree imprisoning a competitor.
func (e *Engine) SendToGulag(playerID string) error {
	return e.play("SendToGulag", playerID, func(g *state.Game) error {
		p, err := g.Competitor(playerID)
		if err != nil {
			return err
		}
		if p.InGulag {
			return state.PlayerError(apperrors.CodePlayerInGulag, p, "already imprisoned")
		}
		g.Logf(state.LogGulag, p.ID, "log.decree_gulag", p.Name)
		_, err = gulag.Sentence(g, p.ID, gulag.ReasonDecree)
		return err
	})
}

// PardonPrisoner is the controller's decree releasing a prisoner.
func (e *Engine) PardonPrisoner(playerID string) error {
	return e.play("PardonPrisoner", playerID, func(g *state.Game) error {
		p, err := g.Competitor(playerID)
		if err != nil {
			return err
		}
		if !p.InGulag {
			return state.PlayerError(apperrors.CodePlayerNotInGulag, p, "not imprisoned")
		}
		g.Logf(state.LogGulag, p.ID, "log.pardoned", p.Name)
		return gulag.Release(g, p.ID)
	})
}

// AttemptGulagEscape rolls for the double the sentence day demands. It is
// the prisoner's whole turn.
func (e *Engine) AttemptGulagEscape(playerID string) error {
	return e.play("AttemptGulagEscape", playerID, func(g *state.Game) error {
		p, err := currentTurn(g, playerID)
		if err != nil {
			return err
		}
		if err := requireIdle(g); err != nil {
			return err
		}
		if err := requirePhase(g, state.TurnPreRoll); err != nil {
			return err
		}
		if !p.InGulag {
			return state.PlayerError(apperrors.CodePlayerNotInGulag, p, "not imprisoned")
		}
		pair := dice.RollPair(e.dice)
		g.Dice = []int{pair.First, pair.Second}
		g.HasRolled = true
		g.TurnPhase = state.TurnPostTurn
		_, err = gulag.AttemptEscape(g, p.ID, pair.First, pair.Second)
		return err
	})
}

// PayRehabilitation buys a prisoner's release.
func (e *Engine) PayRehabilitation(playerID string) error {
	return e.play("PayRehabilitation", playerID, func(g *state.Game) error {
		return gulag.PayRehabilitation(g, playerID)
	})
}

// UseEscapeToken spends an escape token to leave the gulag.
func (e *Engine) UseEscapeToken(playerID string) error {
	return e.play("UseEscapeToken", playerID, func(g *state.Game) error {
		return gulag.UseEscapeToken(g, playerID)
	})
}

// WriteConfession queues a prisoner's confession for the controller and
// returns its id. Prisoners write on their own turn, one at a time.
func (e *Engine) WriteConfession(playerID, text string) (string, error) {
	var confessionID string
	err := e.play("WriteConfession", playerID, func(g *state.Game) error {
		p, err := currentTurn(g, playerID)
		if err != nil {
			return err
		}
		if !p.InGulag {
			return state.PlayerError(apperrors.CodePlayerNotInGulag, p, "only prisoners confess")
		}
		for _, c := range g.Confessions {
			if c.PrisonerID == p.ID {
				return state.PlayerError(apperrors.CodePendingActionActive, p, "a confession is already awaiting review")
			}
		}
		c := state.Confession{
			ID:         g.NextID("confession"),
			PrisonerID: p.ID,
			Text:       strings.TrimSpace(text),
			Round:      g.Round,
		}
		g.Confessions = append(g.Confessions, c)
		confessionID = c.ID
		g.Logf(state.LogGulag, p.ID, "log.confession_written", p.Name)
		return nil
	})
	return confessionID, err
}

// ReviewConfession is the controller's reading of a confession: accepted
// confessions release the prisoner, rejected ones extend the sentence.
func (e *Engine) ReviewConfession(confessionID string, accept bool) error {
	return e.play("ReviewConfession", "", func(g *state.Game) error {
		c, idx, err := g.Confession(confessionID)
		if err != nil {
			return err
		}
		prisonerID := c.PrisonerID
		g.Confessions = append(g.Confessions[:idx], g.Confessions[idx+1:]...)
		p, err := g.Player(prisonerID)
		if err != nil {
			return err
		}
		if !p.Competing() || !p.InGulag {
			return nil
		}
		if accept {
			g.Logf(state.LogGulag, p.ID, "log.confession_accepted", p.Name)
			return gulag.Release(g, p.ID)
		}
		g.Logf(state.LogGulag, p.ID, "log.confession_rejected", p.Name)
		return gulag.ExtendSentence(g, p.ID, g.Rules.SentenceExtensionDays)
	})
}

// AccuseFellowPlayer is a prisoner's denunciation. A guilty verdict frees
// the prisoner with the informant bonus; an innocent one lengthens the
// sentence.
func (e *Engine) AccuseFellowPlayer(prisonerID, accusedID, crime string) error {
	return e.play("AccuseFellowPlayer", prisonerID, func(g *state.Game) error {
		p, err := g.Competitor(prisonerID)
		if err != nil {
			return err
		}
		if !p.InGulag {
			return state.PlayerError(apperrors.CodePlayerNotInGulag, p, "only prisoners accuse from the gulag")
		}
		_, err = tribunal.Denounce(g, prisonerID, accusedID, crime)
		return err
	})
}
