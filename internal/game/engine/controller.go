package engine

import (
	"github.com/louisbranch/stalinopoly/internal/game/gulag"
	"github.com/louisbranch/stalinopoly/internal/game/ledger"
	"github.com/louisbranch/stalinopoly/internal/game/state"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

// PromotePlayer raises a competitor one rank.
func (e *Engine) PromotePlayer(playerID string) error {
	return e.play("PromotePlayer", playerID, func(g *state.Game) error {
		p, err := g.Competitor(playerID)
		if err != nil {
			return err
		}
		if p.Promote() {
			g.Logf(state.LogSystem, p.ID, "log.promoted", p.Name, p.Rank.String())
		}
		return nil
	})
}

// DemotePlayer lowers a competitor one rank.
func (e *Engine) DemotePlayer(playerID string) error {
	return e.play("DemotePlayer", playerID, func(g *state.Game) error {
		p, err := g.Competitor(playerID)
		if err != nil {
			return err
		}
		if p.Demote() {
			g.Logf(state.LogSystem, p.ID, "log.demoted", p.Name, p.Rank.String())
		}
		return nil
	})
}

// UseSickle requisitions money from another comrade once per lap.
func (e *Engine) UseSickle(playerID, targetID string) error {
	return e.play("UseSickle", playerID, func(g *state.Game) error {
		p, err := g.Competitor(playerID)
		if err != nil {
			return err
		}
		if err := requirePiece(p, state.PieceSickle); err != nil {
			return err
		}
		target, err := abilityTarget(g, p, targetID)
		if err != nil {
			return err
		}
		if p.Abilities.SickleUsedThisLap {
			return state.PlayerError(apperrors.CodeAbilityUsed, p, "sickle already used this lap")
		}
		p.Abilities.SickleUsedThisLap = true
		paid := g.Transfer(target, p, g.Rules.SickleRequisition, false)
		g.Logf(state.LogAbility, p.ID, "log.sickle", p.Name, paid, target.Name)
		return nil
	})
}

// RequestHammer asks the controller to imprison a suspect. Once per game.
func (e *Engine) RequestHammer(playerID, targetID string) error {
	return e.play("RequestHammer", playerID, func(g *state.Game) error {
		p, err := g.Competitor(playerID)
		if err != nil {
			return err
		}
		if err := requirePiece(p, state.PieceHammer); err != nil {
			return err
		}
		if p.Abilities.HammerUsed {
			return state.PlayerError(apperrors.CodeAbilityUsed, p, "hammer already used")
		}
		target, err := abilityTarget(g, p, targetID)
		if err != nil {
			return err
		}
		if !target.UnderSuspicion {
			return state.PlayerError(apperrors.CodeNotUnderSuspicion, p, "target is not under suspicion", "Target", target.Name)
		}
		if target.InGulag {
			return state.PlayerError(apperrors.CodeInvalidAbilityUser, p, "target already imprisoned", "Target", target.Name)
		}
		if err := requireIdle(g); err != nil {
			return err
		}
		p.Abilities.HammerUsed = true
		g.Pending = state.HammerApproval{PlayerID: p.ID, TargetID: target.ID}
		g.Logf(state.LogAbility, p.ID, "log.hammer_requested", p.Name, target.Name)
		return nil
	})
}

// RequestMinistry asks the controller for a free collectivization level.
// Once per game.
func (e *Engine) RequestMinistry(playerID string, spaceID int) error {
	return e.play("RequestMinistry", playerID, func(g *state.Game) error {
		p, err := g.Competitor(playerID)
		if err != nil {
			return err
		}
		if err := requirePiece(p, state.PieceStatue); err != nil {
			return err
		}
		if p.Abilities.StatueUsed {
			return state.PlayerError(apperrors.CodeAbilityUsed, p, "statue already used")
		}
		// dry run so a request that could never be approved is refused now
		if err := ledger.CollectivizeFree(g.Clone(), p.ID, spaceID); err != nil {
			return err
		}
		if err := requireIdle(g); err != nil {
			return err
		}
		p.Abilities.StatueUsed = true
		g.Pending = state.MinistryApproval{PlayerID: p.ID, SpaceID: spaceID}
		g.Logf(state.LogAbility, p.ID, "log.ministry_requested", p.Name)
		return nil
	})
}

// RequestPravda asks the controller to print a story casting suspicion on a
// comrade. Once per round.
func (e *Engine) RequestPravda(playerID, targetID, headline string) error {
	return e.play("RequestPravda", playerID, func(g *state.Game) error {
		p, err := g.Competitor(playerID)
		if err != nil {
			return err
		}
		if err := requirePiece(p, state.PieceVodkaBottle); err != nil {
			return err
		}
		if p.Abilities.PravdaUsedThisRound {
			return state.PlayerError(apperrors.CodeAbilityUsed, p, "pravda already used this round")
		}
		target, err := abilityTarget(g, p, targetID)
		if err != nil {
			return err
		}
		if err := requireIdle(g); err != nil {
			return err
		}
		p.Abilities.PravdaUsedThisRound = true
		g.Pending = state.PravdaApproval{PlayerID: p.ID, TargetID: target.ID, Headline: headline}
		g.Logf(state.LogAbility, p.ID, "log.pravda_requested", p.Name, target.Name)
		return nil
	})
}

// RespondToAbility is the controller's decision on a hammer, ministry or
// pravda request.
func (e *Engine) RespondToAbility(approve bool) error {
	return e.play("RespondToAbility", "", func(g *state.Game) error {
		pending := g.Pending
		g.Pending = nil
		switch v := pending.(type) {
		case state.HammerApproval:
			if !approve {
				g.Logf(state.LogAbility, v.PlayerID, "log.ability_denied", string(state.PieceHammer))
				return nil
			}
			target, err := g.Competitor(v.TargetID)
			if err != nil {
				return err
			}
			g.Logf(state.LogAbility, v.PlayerID, "log.hammer_approved", target.Name)
			_, err = gulag.Sentence(g, target.ID, gulag.ReasonHammer)
			return err
		case state.MinistryApproval:
			if !approve {
				g.Logf(state.LogAbility, v.PlayerID, "log.ability_denied", string(state.PieceStatue))
				return nil
			}
			return ledger.CollectivizeFree(g, v.PlayerID, v.SpaceID)
		case state.PravdaApproval:
			if !approve {
				g.Logf(state.LogAbility, v.PlayerID, "log.ability_denied", string(state.PieceVodkaBottle))
				return nil
			}
			target, err := g.Competitor(v.TargetID)
			if err != nil {
				return err
			}
			target.UnderSuspicion = true
			g.Logf(state.LogAbility, v.PlayerID, "log.pravda_published", v.Headline, target.Name)
			return nil
		default:
			g.Pending = pending
			return pendingMismatch(g, state.PendingHammerApproval)
		}
	})
}

func abilityTarget(g *state.Game, p *state.Player, targetID string) (*state.Player, error) {
	target, err := g.Competitor(targetID)
	if err != nil {
		return nil, err
	}
	if target.ID == p.ID {
		return nil, state.PlayerError(apperrors.CodeInvalidAbilityUser, p, "cannot target yourself")
	}
	return target, nil
}
