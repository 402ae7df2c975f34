package state

import (
	"fmt"

	"github.com/louisbranch/stalinopoly/internal/game/deck"
	"github.com/louisbranch/stalinopoly/internal/game/dice"
	"github.com/louisbranch/stalinopoly/internal/game/rules"
)

// SnapshotVersion is the current snapshot layout.
const SnapshotVersion = 1

// Snapshot is the durable representation of a game. Everything outside it
// (pending decisions, tribunals, queued offers, decks) is transient.
type Snapshot struct {
	Version            int        `json:"version"`
	GameID             string     `json:"gameId"`
	Phase              GamePhase  `json:"phase"`
	Players            []Player   `json:"players"`
	Properties         []Property `json:"properties"`
	StalinID           string     `json:"stalinId"`
	CurrentPlayerIndex int        `json:"currentPlayerIndex"`
	Treasury           int        `json:"treasury"`
	TurnPhase          TurnPhase  `json:"turnPhase"`
	Dice               []int      `json:"dice"`
	DoublesCount       int        `json:"doublesCount"`
	Round              int        `json:"round"`
	Log                []LogEntry `json:"log"`
}

// Snapshot captures the durable part of g.
func (g *Game) Snapshot() Snapshot {
	c := g.Clone()
	return Snapshot{
		Version:            SnapshotVersion,
		GameID:             c.ID,
		Phase:              c.Phase,
		Players:            c.Players,
		Properties:         c.Properties,
		StalinID:           c.StalinID,
		CurrentPlayerIndex: c.CurrentPlayerIndex,
		Treasury:           c.Treasury,
		TurnPhase:          c.TurnPhase,
		Dice:               c.Dice,
		DoublesCount:       c.DoublesCount,
		Round:              c.Round,
		Log:                c.Log,
	}
}

// FromSnapshot rebuilds a game from a snapshot. Decks are reshuffled from
// src and a turn that was waiting on a decision resumes after it.
func FromSnapshot(s Snapshot, r rules.Rules, locale string, src dice.Source) (*Game, error) {
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	if s.GameID == "" {
		return nil, fmt.Errorf("snapshot game id is required")
	}
	if s.Phase != PhaseSetup && (s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players)) {
		return nil, fmt.Errorf("snapshot current player index %d out of range", s.CurrentPlayerIndex)
	}
	if (s.TurnPhase == TurnRolling || s.TurnPhase == TurnMoving) && !validPair(s.Dice) {
		return nil, fmt.Errorf("snapshot turn phase %s needs two dice, got %v", s.TurnPhase, s.Dice)
	}

	g := New(s.GameID, r, locale)
	g.Phase = s.Phase
	g.StalinID = s.StalinID
	g.CurrentPlayerIndex = s.CurrentPlayerIndex
	g.Treasury = s.Treasury
	g.TurnPhase = s.TurnPhase
	g.DoublesCount = s.DoublesCount
	g.Round = s.Round
	g.Stats.PeakTreasury = s.Treasury

	g.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		p = p.clone()
		p.VouchingFor, p.VouchedBy = "", ""
		g.Players[i] = p
	}
	g.Properties = append([]Property(nil), s.Properties...)
	g.Dice = append([]int(nil), s.Dice...)
	g.Log = append([]LogEntry(nil), s.Log...)

	if g.TurnPhase == TurnResolving {
		g.TurnPhase = TurnPostTurn
	}
	g.HasRolled = len(g.Dice) > 0 && g.TurnPhase != TurnPreRoll
	if cur := g.CurrentPlayer(); cur != nil {
		g.TurnStartedInGulag = cur.InGulag
	}
	g.PartyDeck = deck.New(src, deck.DirectiveIDs())
	g.TestDeck = deck.New(src, deck.QuestionIDs())
	return g, nil
}

func validPair(faces []int) bool {
	if len(faces) != 2 {
		return false
	}
	for _, f := range faces {
		if f < 1 || f > 6 {
			return false
		}
	}
	return true
}
