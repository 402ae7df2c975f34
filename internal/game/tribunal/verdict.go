package tribunal

import (
	"strconv"

	"github.com/louisbranch/stalinopoly/internal/game/gulag"
	"github.com/louisbranch/stalinopoly/internal/game/state"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

// RenderVerdict closes the tribunal in judgement. Convictions need enough
// supporting witnesses. Parties eliminated while the tribunal ran are
// skipped.
func RenderVerdict(g *state.Game, verdict state.Verdict) error {
	t := g.Tribunal
	if t == nil {
		return errNoTribunal
	}
	if !verdict.Valid() {
		return apperrors.WithMetadata(apperrors.CodeInvalidVerdict, "unknown verdict",
			map[string]string{"Verdict": string(verdict)})
	}
	if t.Phase != state.TribunalJudgement {
		return apperrors.WithMetadata(apperrors.CodeTribunalPhase, "verdicts are rendered in judgement",
			map[string]string{"Phase": string(t.Phase)})
	}
	if (verdict == state.VerdictGuilty || verdict == state.VerdictBothGuilty) && !HasEnoughWitnesses(g) {
		return apperrors.WithMetadata(apperrors.CodeInsufficientWitnesses, "not enough witnesses to convict",
			map[string]string{"Required": strconv.Itoa(t.RequiredWitnesses), "Witnesses": strconv.Itoa(len(t.WitnessesFor))})
	}

	accuser := party(g, t.AccuserID)
	accused := party(g, t.AccusedID)
	g.Tribunal = nil
	g.Logf(state.LogTribunal, t.AccusedID, "log.verdict", string(verdict))

	switch verdict {
	case state.VerdictGuilty:
		g.Stats.GuiltyVerdicts++
		if accused != nil {
			accused.Stats.TribunalsLost++
			if _, err := gulag.Sentence(g, accused.ID, gulag.ReasonTribunal); err != nil {
				return err
			}
		}
		if accuser != nil {
			accuser.Stats.TribunalsWon++
			g.Mint(accuser, g.Rules.InformantBonus)
			g.Logf(state.LogTribunal, accuser.ID, "log.informant_paid", accuser.Name, g.Rules.InformantBonus)
			if accuser.InGulag {
				if err := gulag.Release(g, accuser.ID); err != nil {
					return err
				}
			}
		}
	case state.VerdictInnocent:
		g.Stats.InnocentVerdicts++
		if accused != nil {
			accused.Stats.TribunalsWon++
		}
		if accuser != nil {
			accuser.Stats.TribunalsLost++
			accuser.Demote()
			if t.AccuserImprisoned && accuser.InGulag {
				if err := gulag.ExtendSentence(g, accuser.ID, g.Rules.SentenceExtensionDays); err != nil {
					return err
				}
			}
		}
	case state.VerdictBothGuilty:
		g.Stats.BothGuiltyVerdicts++
		for _, p := range []*state.Player{accused, accuser} {
			if p == nil {
				continue
			}
			p.Stats.TribunalsLost++
			if _, err := gulag.Sentence(g, p.ID, gulag.ReasonTribunal); err != nil {
				return err
			}
		}
	case state.VerdictInsufficientEvidence:
		g.Stats.InsufficientEvidence++
		if accused != nil {
			accused.UnderSuspicion = true
		}
	}
	return nil
}

// party returns a tribunal party still competing, or nil.
func party(g *state.Game, id string) *state.Player {
	p, err := g.Competitor(id)
	if err != nil {
		return nil
	}
	return p
}
