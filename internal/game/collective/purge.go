package collective

import (
	"github.com/louisbranch/stalinopoly/internal/game/gulag"
	"github.com/louisbranch/stalinopoly/internal/game/state"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

var errNoPurge = apperrors.New(apperrors.CodeNoPurge, "no purge in progress")

// StartPurge opens the great purge vote. It can happen once per game.
func StartPurge(g *state.Game) error {
	if g.PurgeUsed {
		return apperrors.New(apperrors.CodePurgeUsed, "the great purge has already been used")
	}
	g.PurgeUsed = true
	g.Purge = &state.GreatPurge{Votes: map[string]string{}}
	g.Logf(state.LogCollective, "", "log.purge_started")
	return nil
}

// VotePurge records or replaces a voter's accusation. Voting for yourself is
// allowed.
func VotePurge(g *state.Game, voterID, targetID string) error {
	if g.Purge == nil {
		return errNoPurge
	}
	voter, err := voter(g, voterID)
	if err != nil {
		return err
	}
	target, err := g.Competitor(targetID)
	if err != nil {
		return err
	}
	g.Purge.Votes[voter.ID] = target.ID
	g.Logf(state.LogCollective, voter.ID, "log.purge_vote", voter.Name, target.Name)
	return nil
}

// Tally counts purge votes and returns every player tied for the most, in
// seat order.
func Tally(g *state.Game, votes map[string]string) []string {
	counts := make(map[string]int)
	for _, target := range votes {
		counts[target]++
	}
	top := 0
	for _, n := range counts {
		top = max(top, n)
	}
	if top == 0 {
		return nil
	}
	var out []string
	for _, p := range g.Players {
		if counts[p.ID] == top {
			out = append(out, p.ID)
		}
	}
	return out
}

// ResolvePurge sends everyone tied for the most votes to the gulag and
// returns their ids. Those already imprisoned are not sentenced again.
func ResolvePurge(g *state.Game) ([]string, error) {
	purge := g.Purge
	if purge == nil {
		return nil, errNoPurge
	}
	g.Purge = nil
	purged := Tally(g, purge.Votes)
	for _, id := range purged {
		p, err := g.Competitor(id)
		if err != nil {
			continue
		}
		g.Logf(state.LogCollective, p.ID, "log.purged", p.Name)
		if _, err := gulag.Sentence(g, p.ID, gulag.ReasonPurge); err != nil {
			return purged, err
		}
	}
	if len(purged) == 0 {
		g.Logf(state.LogCollective, "", "log.purge_empty")
	}
	return purged, nil
}

func voter(g *state.Game, id string) (*state.Player, error) {
	p, err := g.Player(id)
	if err != nil {
		return nil, err
	}
	if !p.Competing() {
		return nil, state.PlayerError(apperrors.CodeVoterIneligible, p, "only competing players vote")
	}
	return p, nil
}
