package engine

import (
	"github.com/louisbranch/stalinopoly/internal/game/board"
	"github.com/louisbranch/stalinopoly/internal/game/dice"
	"github.com/louisbranch/stalinopoly/internal/game/gulag"
	"github.com/louisbranch/stalinopoly/internal/game/ledger"
	"github.com/louisbranch/stalinopoly/internal/game/state"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

const maxDoubles = 3

// RollDice rolls two dice for the current player.
func (e *Engine) RollDice(playerID string) error {
	return e.play("RollDice", playerID, func(g *state.Game) error {
		p, err := e.roller(g, playerID)
		if err != nil {
			return err
		}
		pair := dice.RollPair(e.dice)
		g.Dice = []int{pair.First, pair.Second}
		g.HasRolled = true
		g.TurnPhase = state.TurnRolling
		g.Logf(state.LogRoll, p.ID, "log.rolled", p.Name, pair.First, pair.Second)
		return nil
	})
}

// RollTankDice is the tank's roll: three dice, the best two kept. It can be
// used once per lap.
func (e *Engine) RollTankDice(playerID string) error {
	return e.play("RollTankDice", playerID, func(g *state.Game) error {
		p, err := e.roller(g, playerID)
		if err != nil {
			return err
		}
		if err := requirePiece(p, state.PieceTank); err != nil {
			return err
		}
		if p.Abilities.TankUsedThisLap {
			return state.PlayerError(apperrors.CodeAbilityUsed, p, "tank already used this lap")
		}
		pair, faces := dice.BestTwoOfThree(e.dice)
		p.Abilities.TankUsedThisLap = true
		g.Dice = []int{pair.First, pair.Second}
		g.HasRolled = true
		g.TurnPhase = state.TurnRolling
		g.Logf(state.LogRoll, p.ID, "log.rolled_tank", p.Name, faces[0], faces[1], faces[2], pair.First, pair.Second)
		return nil
	})
}

func (e *Engine) roller(g *state.Game, playerID string) (*state.Player, error) {
	p, err := currentTurn(g, playerID)
	if err != nil {
		return nil, err
	}
	if err := requireIdle(g); err != nil {
		return nil, err
	}
	if err := requirePhase(g, state.TurnPreRoll); err != nil {
		return nil, err
	}
	if p.InGulag {
		return nil, state.PlayerError(apperrors.CodePlayerInGulag, p, "prisoners roll to escape")
	}
	return p, nil
}

// FinishRolling counts doubles and moves the current player by the roll. A
// third consecutive double sends the player to the gulag instead.
func (e *Engine) FinishRolling() error {
	return e.play("FinishRolling", "", func(g *state.Game) error {
		if err := requireIdle(g); err != nil {
			return err
		}
		if err := requirePhase(g, state.TurnRolling); err != nil {
			return err
		}
		if len(g.Dice) != 2 {
			return apperrors.WithMetadata(apperrors.CodeWrongTurnPhase,
				"no dice were rolled this turn",
				map[string]string{"Phase": string(g.TurnPhase), "Expected": string(state.TurnPreRoll)})
		}
		p := g.CurrentPlayer()
		pair := dice.Pair{First: g.Dice[0], Second: g.Dice[1]}
		if !pair.IsDouble() {
			g.DoublesCount = 0
		} else {
			g.DoublesCount++
			if g.DoublesCount >= maxDoubles {
				g.DoublesCount = 0
				g.TurnPhase = state.TurnPostTurn
				g.Logf(state.LogRoll, p.ID, "log.three_doubles", p.Name)
				_, err := gulag.Sentence(g, p.ID, gulag.ReasonThreeDoubles)
				return err
			}
		}
		g.TurnPhase = state.TurnMoving
		move(g, p, pair.Total())
		return nil
	})
}

// MovePlayer moves a competitor by spaces without resolving the landing.
// Negative distances move backwards and never pass the Stoy.
func (e *Engine) MovePlayer(playerID string, spaces int) error {
	return e.play("MovePlayer", playerID, func(g *state.Game) error {
		p, err := g.Competitor(playerID)
		if err != nil {
			return err
		}
		if p.InGulag {
			return state.PlayerError(apperrors.CodePlayerInGulag, p, "prisoners cannot move")
		}
		move(g, p, spaces)
		return nil
	})
}

// FinishMoving resolves the space the current player landed on.
func (e *Engine) FinishMoving() error {
	return e.play("FinishMoving", "", func(g *state.Game) error {
		if err := requireIdle(g); err != nil {
			return err
		}
		if err := requirePhase(g, state.TurnMoving); err != nil {
			return err
		}
		return e.resolveSpace(g, g.CurrentPlayer())
	})
}

// ResolveCurrentSpace resolves the current player's space again, e.g. after
// a move made outside the roll.
func (e *Engine) ResolveCurrentSpace() error {
	return e.play("ResolveCurrentSpace", "", func(g *state.Game) error {
		if err := requireIdle(g); err != nil {
			return err
		}
		if g.TurnPhase != state.TurnMoving && g.TurnPhase != state.TurnResolving {
			return wrongPhase(g, state.TurnMoving)
		}
		return e.resolveSpace(g, g.CurrentPlayer())
	})
}

// EndTurn passes play on. A player who rolled a double and is free goes
// again; otherwise the next competitor in seat order takes the turn and a
// wrap back to the first seat closes the round. A prisoner may end the turn
// before rolling.
func (e *Engine) EndTurn() error {
	return e.play("EndTurn", "", func(g *state.Game) error {
		if err := requireIdle(g); err != nil {
			return err
		}
		cur := g.CurrentPlayer()
		switch {
		case cur == nil || !cur.Competing():
		case g.TurnPhase == state.TurnPostTurn:
		case g.TurnPhase == state.TurnPreRoll && cur.InGulag:
		default:
			return wrongPhase(g, state.TurnPostTurn)
		}

		if cur != nil && cur.Competing() && g.TurnStartedInGulag && cur.InGulag {
			if err := gulag.AdvanceDay(g, cur.ID); err != nil {
				return err
			}
			if g.Phase != state.PhasePlaying {
				return nil
			}
		}
		g.Stats.Turns++
		if cur != nil && cur.Competing() && !cur.InGulag && g.HasRolled && g.DoublesCount > 0 {
			resetTurn(g)
			g.Logf(state.LogSystem, cur.ID, "log.roll_again", cur.Name)
			return nil
		}
		return e.advance(g)
	})
}

func (e *Engine) advance(g *state.Game) error {
	n := len(g.Players)
	next, wrapped := -1, false
	for step := 1; step <= n; step++ {
		i := (g.CurrentPlayerIndex + step) % n
		if g.CurrentPlayerIndex+step >= n {
			wrapped = true
		}
		if g.Players[i].Competing() {
			next = i
			break
		}
	}
	if next < 0 {
		g.CheckGameEnd()
		return nil
	}
	g.CurrentPlayerIndex = next
	g.DoublesCount = 0
	resetTurn(g)
	if wrapped {
		if err := closeRound(g); err != nil {
			return err
		}
		if g.Phase != state.PhasePlaying {
			return nil
		}
	}
	cur := g.CurrentPlayer()
	g.TurnStartedInGulag = cur.InGulag
	g.Logf(state.LogSystem, cur.ID, "log.turn_started", cur.Name, g.Round)
	return nil
}

func resetTurn(g *state.Game) {
	g.TurnPhase = state.TurnPreRoll
	g.HasRolled = false
	g.Dice = nil
	g.Pending = nil
}

// closeRound runs the round boundary resets.
func closeRound(g *state.Game) error {
	g.Round++
	g.Stats.Rounds++
	g.Denouncements = nil
	for i := range g.Players {
		g.Players[i].Abilities.ResetRound()
	}
	gulag.ExpireVouchers(g)
	g.Logf(state.LogSystem, "", "log.round_started", g.Round)
	if _, err := ledger.CheckDebtStatus(g); err != nil {
		return err
	}
	return nil
}

// move advances p by spaces. Every crossing of the Stoy completes a lap;
// passing it without landing charges the travel tax and re-arms per-lap
// abilities.
func move(g *state.Game, p *state.Player, spaces int) {
	from := p.Position
	if spaces <= 0 {
		p.Position = board.Normalize(from + spaces)
		g.Logf(state.LogMove, p.ID, "log.moved", p.Name, board.MustGet(p.Position).Name)
		return
	}
	total := from + spaces
	p.Position = board.Normalize(total)
	laps := total / board.Size
	passes := laps
	if p.Position == board.Stoy && laps > 0 {
		passes--
	}
	p.LapsCompleted += laps
	for range passes {
		p.Abilities.ResetLap()
		if p.Piece == state.PieceIronCurtain {
			g.Logf(state.LogMove, p.ID, "log.travel_tax_exempt", p.Name)
			continue
		}
		paid := g.PayTreasury(p, g.Rules.TravelTax, true)
		g.Logf(state.LogPayment, p.ID, "log.travel_tax", p.Name, paid)
	}
	g.Logf(state.LogMove, p.ID, "log.moved", p.Name, board.MustGet(p.Position).Name)
	if passes > 0 {
		ledger.CheckElimination(g, p.ID)
	}
}

// resolveSpace applies the consequences of p standing where they are.
func (e *Engine) resolveSpace(g *state.Game, p *state.Player) error {
	if p == nil || !p.Competing() {
		return nil
	}
	g.TurnPhase = state.TurnResolving
	space := board.MustGet(p.Position)
	switch space.Type {
	case board.TypeProperty, board.TypeRailway, board.TypeUtility:
		return landOnOwnable(g, p, space, 1)
	case board.TypeCard:
		if space.Card == board.CardPartyDirective {
			g.Pending = state.DrawPartyDirective{PlayerID: p.ID}
		} else {
			g.Pending = state.DrawCommunistTest{PlayerID: p.ID}
		}
		return nil
	case board.TypeTax:
		g.Logf(state.LogSpace, p.ID, "log.tax_space", p.Name, space.Name)
		return nil
	}
	switch space.ID {
	case board.Stoy:
		g.Pending = state.StoyPilfer{PlayerID: p.ID}
	case board.Gulag:
		g.Logf(state.LogSpace, p.ID, "log.gulag_visit", p.Name)
	case board.Breadline:
		var remaining []string
		for _, other := range g.Competitors() {
			if other.ID != p.ID && !other.InGulag {
				remaining = append(remaining, other.ID)
			}
		}
		g.Logf(state.LogSpace, p.ID, "log.breadline", p.Name)
		if len(remaining) > 0 {
			g.Pending = state.BreadlineContribution{PlayerID: p.ID, Remaining: remaining}
		}
	case board.EnemyOfTheState:
		_, err := gulag.Sentence(g, p.ID, gulag.ReasonEnemyOfTheState)
		return err
	}
	return nil
}

// landOnOwnable offers a State-held space for purchase or charges the quota,
// scaled by multiplier, on a space another comrade holds.
func landOnOwnable(g *state.Game, p *state.Player, space board.Space, multiplier int) error {
	prop, err := g.Property(space.ID)
	if err != nil {
		return err
	}
	switch {
	case prop.StateOwned():
		g.Pending = state.PropertyPurchase{PlayerID: p.ID, SpaceID: space.ID}
	case prop.CustodianID == p.ID:
		g.Logf(state.LogSpace, p.ID, "log.own_property", p.Name, space.Name)
	case prop.Mortgaged:
		g.Logf(state.LogSpace, p.ID, "log.mortgaged_property", p.Name, space.Name)
	default:
		quota, err := ledger.Quota(g, space.ID, diceTotal(g))
		if err != nil {
			return err
		}
		g.Pending = state.QuotaPayment{
			PayerID:     p.ID,
			CustodianID: prop.CustodianID,
			SpaceID:     space.ID,
			Amount:      quota * multiplier,
		}
	}
	return nil
}

func diceTotal(g *state.Game) int {
	total := 0
	for _, face := range g.Dice {
		total += face
	}
	return total
}

func currentTurn(g *state.Game, playerID string) (*state.Player, error) {
	p, err := g.Competitor(playerID)
	if err != nil {
		return nil, err
	}
	if cur := g.CurrentPlayer(); cur == nil || cur.ID != p.ID {
		return nil, state.PlayerError(apperrors.CodeNotYourTurn, p, "not your turn")
	}
	return p, nil
}

func requirePhase(g *state.Game, want state.TurnPhase) error {
	if g.TurnPhase != want {
		return wrongPhase(g, want)
	}
	return nil
}

func wrongPhase(g *state.Game, want state.TurnPhase) error {
	return apperrors.WithMetadata(apperrors.CodeWrongTurnPhase,
		"turn is in "+string(g.TurnPhase)+", not "+string(want),
		map[string]string{"Phase": string(g.TurnPhase), "Expected": string(want)})
}

func requirePiece(p *state.Player, piece state.Piece) error {
	if p.Piece != piece {
		return state.PlayerError(apperrors.CodeWrongPiece, p, "ability needs the "+string(piece), "Piece", string(piece))
	}
	return nil
}
