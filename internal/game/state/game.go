// Package state is the single game-state record shared by every rules
// package, together with its pending-action union, narration log and
// persistence snapshot.
package state

import (
	"strconv"

	"github.com/louisbranch/stalinopoly/internal/game/board"
	"github.com/louisbranch/stalinopoly/internal/game/deck"
	"github.com/louisbranch/stalinopoly/internal/game/rules"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

// Game is the authoritative state of one game.
type Game struct {
	ID                 string
	Phase              GamePhase
	Players            []Player
	Properties         []Property
	StalinID           string
	CurrentPlayerIndex int
	Treasury           int
	TurnPhase          TurnPhase
	Dice               []int
	DoublesCount       int
	HasRolled          bool
	// TurnStartedInGulag marks a turn that began in incarceration; its end
	// counts as a day served.
	TurnStartedInGulag bool
	Round              int

	Pending       PendingAction
	Tribunal      *Tribunal
	Denouncements []Denouncement
	Vouchers      []Voucher
	Bribes        []Bribe
	Trades        []TradeOffer
	Confessions   []Confession

	Plan      *FiveYearPlan
	PlanUsed  bool
	Purge     *GreatPurge
	PurgeUsed bool
	EndVote   *EndVote

	PartyDeck deck.Deck
	TestDeck  deck.Deck

	Outcome  Outcome
	WinnerID string

	Stats   Statistics
	Log     []LogEntry
	NextSeq map[string]int

	Locale string
	Rules  rules.Rules
}

// New returns an empty game in setup with the given rules.
func New(id string, r rules.Rules, locale string) *Game {
	return &Game{
		ID:        id,
		Phase:     PhaseSetup,
		TurnPhase: TurnPreRoll,
		Locale:    locale,
		Rules:     r,
		NextSeq:   map[string]int{},
	}
}

// NewProperties returns State-held properties for every ownable space.
func NewProperties() []Property {
	ids := board.Ownables()
	out := make([]Property, len(ids))
	for i, id := range ids {
		out[i] = Property{SpaceID: id}
	}
	return out
}

// NextID returns the next sequential id with prefix, e.g. "trade-1".
func (g *Game) NextID(prefix string) string {
	if g.NextSeq == nil {
		g.NextSeq = map[string]int{}
	}
	g.NextSeq[prefix]++
	return prefix + "-" + strconv.Itoa(g.NextSeq[prefix])
}

// RequirePlaying rejects operations outside the playing phase.
func (g *Game) RequirePlaying() error {
	switch g.Phase {
	case PhasePlaying:
		return nil
	case PhaseEnded:
		return ErrGameOver
	default:
		return ErrGameNotStarted
	}
}

// Player returns the player with id.
func (g *Game) Player(id string) (*Player, error) {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i], nil
		}
	}
	return nil, PlayerNotFound(id)
}

// Competitor returns a non-controller player still in the game.
func (g *Game) Competitor(id string) (*Player, error) {
	p, err := g.Player(id)
	if err != nil {
		return nil, err
	}
	if p.IsStalin {
		return nil, PlayerError(apperrors.CodeControllerExcluded, p, "controller cannot act as a comrade")
	}
	if p.Eliminated {
		return nil, PlayerError(apperrors.CodePlayerEliminated, p, "player is eliminated")
	}
	return p, nil
}

// Stalin returns the controller.
func (g *Game) Stalin() *Player {
	p, err := g.Player(g.StalinID)
	if err != nil {
		return nil
	}
	return p
}

// IsStalin reports whether id is the controller.
func (g *Game) IsStalin(id string) bool {
	return id != "" && id == g.StalinID
}

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() *Player {
	if g.CurrentPlayerIndex < 0 || g.CurrentPlayerIndex >= len(g.Players) {
		return nil
	}
	return &g.Players[g.CurrentPlayerIndex]
}

// Competitors returns every non-controller, non-eliminated player in seat
// order.
func (g *Game) Competitors() []*Player {
	var out []*Player
	for i := range g.Players {
		if g.Players[i].Competing() {
			out = append(out, &g.Players[i])
		}
	}
	return out
}

// Property returns the mutable state for an ownable space.
func (g *Game) Property(spaceID int) (*Property, error) {
	for i := range g.Properties {
		if g.Properties[i].SpaceID == spaceID {
			return &g.Properties[i], nil
		}
	}
	return nil, PropertyNotFound(spaceID)
}

// PropertiesOf returns the properties held by playerID in board order.
func (g *Game) PropertiesOf(playerID string) []*Property {
	var out []*Property
	for i := range g.Properties {
		if g.Properties[i].CustodianID == playerID {
			out = append(out, &g.Properties[i])
		}
	}
	return out
}

// HeldInGroup counts the spaces of group held by playerID.
func (g *Game) HeldInGroup(playerID string, group board.Group) int {
	n := 0
	for _, id := range board.GroupMembers(group) {
		if p, err := g.Property(id); err == nil && p.CustodianID == playerID {
			n++
		}
	}
	return n
}

// ActiveTribunal reports whether a tribunal is running.
func (g *Game) ActiveTribunal() bool {
	return g.Tribunal != nil
}

// DenouncementsThisRound counts accusations made by accuserID this round.
func (g *Game) DenouncementsThisRound(accuserID string) int {
	n := 0
	for _, d := range g.Denouncements {
		if d.AccuserID == accuserID && d.Round == g.Round {
			n++
		}
	}
	return n
}

// ActiveVoucherFor returns the unexpired active voucher for a prisoner.
func (g *Game) ActiveVoucherFor(prisonerID string) *Voucher {
	for i := range g.Vouchers {
		v := &g.Vouchers[i]
		if v.PrisonerID == prisonerID && v.Active && g.Round <= v.ExpiresRound {
			return v
		}
	}
	return nil
}

// Trade returns the queued trade with id.
func (g *Game) Trade(id string) (*TradeOffer, int, error) {
	for i := range g.Trades {
		if g.Trades[i].ID == id {
			return &g.Trades[i], i, nil
		}
	}
	return nil, -1, apperrors.WithMetadata(apperrors.CodeTradeNotFound, "trade "+id+" not found", map[string]string{"TradeID": id})
}

// Bribe returns the queued bribe with id.
func (g *Game) Bribe(id string) (*Bribe, int, error) {
	for i := range g.Bribes {
		if g.Bribes[i].ID == id {
			return &g.Bribes[i], i, nil
		}
	}
	return nil, -1, apperrors.WithMetadata(apperrors.CodeBribeNotFound, "bribe "+id+" not found", map[string]string{"BribeID": id})
}

// Confession returns the queued confession with id.
func (g *Game) Confession(id string) (*Confession, int, error) {
	for i := range g.Confessions {
		if g.Confessions[i].ID == id {
			return &g.Confessions[i], i, nil
		}
	}
	return nil, -1, apperrors.WithMetadata(apperrors.CodeConfessionNotFound, "confession "+id+" not found", map[string]string{"ConfessionID": id})
}
