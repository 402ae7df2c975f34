package state

import "fmt"

// Rank is a player's standing in the Party. Ranks are ordered.
type Rank int

const (
	RankProletariat Rank = iota
	RankPartyMember
	RankCommissar
	RankInnerCircle
)

var rankNames = [...]string{"proletariat", "partyMember", "commissar", "innerCircle"}

func (r Rank) String() string {
	if r < RankProletariat || r > RankInnerCircle {
		return fmt.Sprintf("Rank(%d)", int(r))
	}
	return rankNames[r]
}

// ParseRank parses a rank name.
func ParseRank(value string) (Rank, error) {
	for i, name := range rankNames {
		if name == value {
			return Rank(i), nil
		}
	}
	return RankProletariat, fmt.Errorf("unknown rank %q", value)
}

// MarshalText implements encoding.TextMarshaler.
func (r Rank) MarshalText() ([]byte, error) {
	if r < RankProletariat || r > RankInnerCircle {
		return nil, fmt.Errorf("invalid rank %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rank) UnmarshalText(text []byte) error {
	parsed, err := ParseRank(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Piece is the token a player moves around the board. Each piece carries one
// special ability.
type Piece string

const (
	PieceHammer      Piece = "hammer"
	PieceSickle      Piece = "sickle"
	PieceRedStar     Piece = "redStar"
	PieceTank        Piece = "tank"
	PieceBreadLoaf   Piece = "breadLoaf"
	PieceIronCurtain Piece = "ironCurtain"
	PieceVodkaBottle Piece = "vodkaBottle"
	PieceStatue      Piece = "statue"
)

// Pieces returns every piece in assignment order.
func Pieces() []Piece {
	return []Piece{
		PieceHammer,
		PieceSickle,
		PieceRedStar,
		PieceTank,
		PieceBreadLoaf,
		PieceIronCurtain,
		PieceVodkaBottle,
		PieceStatue,
	}
}

// Valid reports whether p is a known piece.
func (p Piece) Valid() bool {
	for _, known := range Pieces() {
		if p == known {
			return true
		}
	}
	return false
}

// GamePhase is the lifecycle of a game.
type GamePhase string

const (
	PhaseSetup   GamePhase = "setup"
	PhasePlaying GamePhase = "playing"
	PhaseEnded   GamePhase = "ended"
)

// TurnPhase is the step of the current player's turn.
type TurnPhase string

const (
	TurnPreRoll   TurnPhase = "preRoll"
	TurnRolling   TurnPhase = "rolling"
	TurnMoving    TurnPhase = "moving"
	TurnResolving TurnPhase = "resolving"
	TurnPostTurn  TurnPhase = "postTurn"
)

// Outcome records how a finished game was decided.
type Outcome string

const (
	OutcomeNone       Outcome = ""
	OutcomeSurvivor   Outcome = "survivor"
	OutcomeController Outcome = "controller"
	OutcomeUnanimous  Outcome = "unanimousEnd"
)

// Elimination reasons.
const (
	EliminationBankruptcy   = "bankruptcy"
	EliminationGulagTimeout = "gulagTimeout"
)

// StateCreditor is the creditor id used for debts owed to the State.
const StateCreditor = "state"
