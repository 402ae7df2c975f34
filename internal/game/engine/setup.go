package engine

import (
	"fmt"
	"strings"

	"github.com/louisbranch/stalinopoly/internal/game/deck"
	"github.com/louisbranch/stalinopoly/internal/game/state"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

// PlayerSpec describes one seat at game start.
type PlayerSpec struct {
	ID   string
	Name string
	// Piece is optional; unassigned competitors get the first free piece.
	Piece  state.Piece
	Stalin bool
}

// StartGame seats the players, deals the decks and opens round one.
func (e *Engine) StartGame(players []PlayerSpec) error {
	return e.apply("StartGame", "", func(g *state.Game) error {
		if g.Phase != state.PhaseSetup {
			return apperrors.New(apperrors.CodeGameAlreadyStarted, "game already started")
		}
		seats, err := seat(g, players)
		if err != nil {
			return err
		}
		g.Players = seats
		g.Properties = state.NewProperties()
		g.Treasury = g.Rules.StartingTreasury
		g.Stats.PeakTreasury = g.Treasury
		g.PartyDeck = deck.New(e.shuffle, deck.DirectiveIDs())
		g.TestDeck = deck.New(e.shuffle, deck.QuestionIDs())
		g.Phase = state.PhasePlaying
		g.Round = 1
		g.TurnPhase = state.TurnPreRoll
		for i, p := range g.Players {
			if p.Competing() {
				g.CurrentPlayerIndex = i
				break
			}
		}
		g.Logf(state.LogSystem, "", "log.game_started", len(g.Competitors()))
		cur := g.CurrentPlayer()
		g.Logf(state.LogSystem, cur.ID, "log.turn_started", cur.Name, g.Round)
		return nil
	})
}

func seat(g *state.Game, specs []PlayerSpec) ([]state.Player, error) {
	invalid := func(format string, args ...any) error {
		return apperrors.New(apperrors.CodeInvalidSetup, fmt.Sprintf(format, args...))
	}
	var stalins, competitors int
	ids := map[string]bool{}
	taken := map[state.Piece]bool{}
	for _, s := range specs {
		if strings.TrimSpace(s.ID) == "" {
			return nil, invalid("player id is required")
		}
		if ids[s.ID] {
			return nil, invalid("duplicate player id %q", s.ID)
		}
		ids[s.ID] = true
		if s.ID == state.StateCreditor {
			return nil, invalid("player id %q is reserved", s.ID)
		}
		if s.Stalin {
			stalins++
			continue
		}
		competitors++
		if s.Piece == "" {
			continue
		}
		if !s.Piece.Valid() {
			return nil, invalid("unknown piece %q", s.Piece)
		}
		if taken[s.Piece] {
			return nil, invalid("piece %q taken twice", s.Piece)
		}
		taken[s.Piece] = true
	}
	if stalins != 1 {
		return nil, invalid("exactly one controller is required, got %d", stalins)
	}
	if competitors < g.Rules.MinPlayers || competitors > g.Rules.MaxPlayers {
		return nil, invalid("%d-%d players are required, got %d", g.Rules.MinPlayers, g.Rules.MaxPlayers, competitors)
	}

	free := make([]state.Piece, 0, len(state.Pieces()))
	for _, piece := range state.Pieces() {
		if !taken[piece] {
			free = append(free, piece)
		}
	}
	out := make([]state.Player, 0, len(specs))
	for _, s := range specs {
		name := s.Name
		if name == "" {
			name = s.ID
		}
		p := state.Player{ID: s.ID, Name: name, Rank: state.RankProletariat}
		if s.Stalin {
			p.IsStalin = true
			g.StalinID = s.ID
		} else {
			p.Wealth = g.Rules.StartingWealth
			p.Piece = s.Piece
			if p.Piece == "" {
				p.Piece, free = free[0], free[1:]
			}
		}
		out = append(out, p)
	}
	return out, nil
}
