package collective

import (
	"github.com/louisbranch/stalinopoly/internal/game/state"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

// InitiateEndVote opens a vote to end the game; the initiator votes yes.
func InitiateEndVote(g *state.Game, initiatorID string) error {
	p, err := voter(g, initiatorID)
	if err != nil {
		return err
	}
	if g.EndVote != nil {
		return state.PlayerError(apperrors.CodeEndVoteActive, p, "an end vote is already open")
	}
	g.EndVote = &state.EndVote{InitiatorID: p.ID, Votes: map[string]bool{}}
	g.Logf(state.LogCollective, p.ID, "log.end_vote_started", p.Name)
	return CastEndVote(g, p.ID, true)
}

// CastEndVote records a vote. Any no cancels the vote outright; the game ends
// once every competing player has voted yes.
func CastEndVote(g *state.Game, voterID string, yes bool) error {
	if g.EndVote == nil {
		return apperrors.New(apperrors.CodeNoEndVote, "no end vote in progress")
	}
	p, err := voter(g, voterID)
	if err != nil {
		return err
	}
	if !yes {
		g.EndVote = nil
		g.Logf(state.LogCollective, p.ID, "log.end_vote_cancelled", p.Name)
		return nil
	}
	g.EndVote.Votes[p.ID] = true
	g.Logf(state.LogCollective, p.ID, "log.end_vote_yes", p.Name)
	if Unanimous(g) {
		g.EndVote = nil
		g.End(state.OutcomeUnanimous, "")
	}
	return nil
}

// Unanimous reports whether every competing player has voted yes.
func Unanimous(g *state.Game) bool {
	if g.EndVote == nil {
		return false
	}
	competitors := g.Competitors()
	if len(competitors) == 0 {
		return false
	}
	for _, p := range competitors {
		if !g.EndVote.Votes[p.ID] {
			return false
		}
	}
	return true
}
