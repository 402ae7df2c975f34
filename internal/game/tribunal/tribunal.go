// Package tribunal runs denunciations: the eligibility gate, the four-phase
// tribunal, witnesses and verdicts.
package tribunal

import (
	"fmt"

	"github.com/louisbranch/stalinopoly/internal/game/gulag"
	"github.com/louisbranch/stalinopoly/internal/game/state"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

// DefaultCrime is recorded when an accuser names no crime.
const DefaultCrime = "counter-revolutionary activity"

var errNoTribunal = apperrors.New(apperrors.CodeNoTribunal, "no tribunal in progress")

// CanDenounce reports whether accuserID may denounce accusedID right now.
func CanDenounce(g *state.Game, accuserID, accusedID string) error {
	accuser, err := g.Competitor(accuserID)
	if err != nil {
		return err
	}
	if accuserID == accusedID {
		return state.PlayerError(apperrors.CodeDenounceSelf, accuser, "cannot denounce yourself")
	}
	accused, err := g.Player(accusedID)
	if err != nil {
		return err
	}
	if accused.IsStalin {
		return state.PlayerError(apperrors.CodeDenounceController, accuser, "cannot denounce the controller")
	}
	if accused.Eliminated {
		return state.PlayerError(apperrors.CodePlayerEliminated, accused, "player is eliminated")
	}
	if accused.InGulag {
		return state.PlayerError(apperrors.CodeDenounceImprisoned, accuser, "accused is already in the gulag", "Accused", accused.Name)
	}
	if g.ActiveTribunal() {
		return state.PlayerError(apperrors.CodeTribunalActive, accuser, "a tribunal is already in progress")
	}
	if accuser.Rank < state.RankCommissar && g.DenouncementsThisRound(accuser.ID) >= g.Rules.DenouncementsPerRound {
		return state.PlayerError(apperrors.CodeDenounceQuota, accuser, "denunciation quota reached",
			"Limit", fmt.Sprint(g.Rules.DenouncementsPerRound))
	}
	if accused.Piece == state.PieceRedStar && accuser.Rank < accused.Rank {
		return state.PlayerError(apperrors.CodeDenounceRank, accuser, "rank too low to denounce a red star",
			"Accused", accused.Name, "Rank", accused.Rank.String())
	}
	return nil
}

// Denounce opens a tribunal. Denouncing the controller instead sends the
// accuser to the gulag and opens nothing; the returned bool reports whether
// a tribunal was opened.
func Denounce(g *state.Game, accuserID, accusedID, crime string) (bool, error) {
	if g.IsStalin(accusedID) {
		accuser, err := g.Competitor(accuserID)
		if err != nil {
			return false, err
		}
		g.Logf(state.LogTribunal, accuser.ID, "log.denounced_stalin", accuser.Name)
		if _, err := gulag.Sentence(g, accuser.ID, gulag.ReasonDenouncedStalin); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := CanDenounce(g, accuserID, accusedID); err != nil {
		return false, err
	}
	accuser, _ := g.Player(accuserID)
	accused, _ := g.Player(accusedID)
	if crime == "" {
		crime = DefaultCrime
	}
	g.Denouncements = append(g.Denouncements, state.Denouncement{
		AccuserID: accuser.ID,
		AccusedID: accused.ID,
		Crime:     crime,
		Round:     g.Round,
	})
	accuser.Stats.Denouncements++
	g.Stats.Denouncements++
	open(g, accuser.ID, accused, crime, false, accuser.InGulag)
	g.Logf(state.LogTribunal, accuser.ID, "log.denounced", accuser.Name, accused.Name, crime)
	return true, nil
}

// OpenAnonymous opens a tribunal with the controller as the unnamed accuser.
func OpenAnonymous(g *state.Game, accusedID, crime string) error {
	accused, err := g.Competitor(accusedID)
	if err != nil {
		return err
	}
	if accused.InGulag {
		return state.PlayerError(apperrors.CodeDenounceImprisoned, accused, "accused is already in the gulag", "Accused", accused.Name)
	}
	if g.ActiveTribunal() {
		return state.PlayerError(apperrors.CodeTribunalActive, accused, "a tribunal is already in progress")
	}
	if crime == "" {
		crime = DefaultCrime
	}
	g.Stats.Denouncements++
	open(g, g.StalinID, accused, crime, true, false)
	g.Logf(state.LogTribunal, accused.ID, "log.denounced_anonymous", accused.Name, crime)
	return nil
}

func open(g *state.Game, accuserID string, accused *state.Player, crime string, anonymous, imprisoned bool) {
	t := &state.Tribunal{
		AccuserID:         accuserID,
		AccusedID:         accused.ID,
		Crime:             crime,
		Phase:             state.TribunalAccusation,
		Anonymous:         anonymous,
		AccuserImprisoned: imprisoned,
		Round:             g.Round,
	}
	t.RequiredWitnesses = RequiredWitnesses(g, t, accused)
	g.Tribunal = t
	g.Stats.Tribunals++
}

// RequiredWitnesses is the number of supporting witnesses a conviction of
// accused needs: none below commissar, a fixed number for commissars and
// every eligible player for the inner circle. Suspicion waives it.
func RequiredWitnesses(g *state.Game, t *state.Tribunal, accused *state.Player) int {
	if accused.UnderSuspicion {
		return 0
	}
	switch accused.Rank {
	case state.RankCommissar:
		return g.Rules.CommissarWitnesses
	case state.RankInnerCircle:
		return len(EligibleWitnesses(g, t))
	default:
		return 0
	}
}

// EligibleWitnesses lists the competitors who may testify.
func EligibleWitnesses(g *state.Game, t *state.Tribunal) []string {
	var out []string
	for _, p := range g.Competitors() {
		if p.ID != t.AccuserID && p.ID != t.AccusedID {
			out = append(out, p.ID)
		}
	}
	return out
}

// HasEnoughWitnesses reports whether the supporting witnesses meet the
// threshold. Eliminations after the tribunal opened lower a unanimous
// threshold to the players who remain.
func HasEnoughWitnesses(g *state.Game) bool {
	t := g.Tribunal
	if t == nil {
		return false
	}
	need := min(t.RequiredWitnesses, len(EligibleWitnesses(g, t)))
	return len(t.WitnessesFor) >= need
}

// Advance moves the tribunal to its next phase.
func Advance(g *state.Game) error {
	t := g.Tribunal
	if t == nil {
		return errNoTribunal
	}
	next, ok := t.Phase.Next()
	if !ok {
		return apperrors.WithMetadata(apperrors.CodeTribunalPhase, "tribunal is awaiting judgement",
			map[string]string{"Phase": string(t.Phase)})
	}
	t.Phase = next
	g.Logf(state.LogTribunal, "", "log.tribunal_phase", string(next))
	return nil
}
