package scenario

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/stalinopoly/internal/game/engine"
	"github.com/louisbranch/stalinopoly/internal/game/state"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

func (r *Runner) runStep(ctx context.Context, st *scenarioState, step Step) error {
	switch step.Kind {
	case "player":
		return r.runSeatStep(st, step, false)
	case "stalin":
		return r.runSeatStep(st, step, true)
	case "start":
		return r.runStartStep(st)
	case "dice":
		return r.runDiceStep(st, step)
	case "roll":
		return r.runRollStep(st, step)
	case "stack":
		return r.runStackStep(st, step)
	case "op":
		return r.runOpStep(st, step)
	case "expect":
		return r.runExpectStep(st, step)
	default:
		return fmt.Errorf("unknown step kind %q", step.Kind)
	}
}

func (r *Runner) runSeatStep(st *scenarioState, step Step, stalin bool) error {
	id := requiredString(step.Args, "id")
	if id == "" {
		return r.failf("player id is required")
	}
	st.players = append(st.players, engine.PlayerSpec{
		ID:     id,
		Name:   optionalString(step.Args, "name", id),
		Piece:  state.Piece(optionalString(step.Args, "piece", "")),
		Stalin: stalin,
	})
	return nil
}

func (r *Runner) runStartStep(st *scenarioState) error {
	if err := st.engine.StartGame(st.players); err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	return nil
}

func (r *Runner) runDiceStep(st *scenarioState, step Step) error {
	faces := readIntSlice(step.Args, "faces")
	if len(faces) == 0 {
		return r.failf("dice needs at least one face")
	}
	for _, face := range faces {
		if face < 1 || face > 6 {
			return r.failf("die face %d out of range", face)
		}
	}
	st.dice.Push(faces...)
	return nil
}

// runRollStep plays a whole roll: dice, movement and the landing.
func (r *Runner) runRollStep(st *scenarioState, step Step) error {
	player := requiredString(step.Args, "player")
	if player == "" {
		return r.failf("roll needs a player")
	}
	roll := st.engine.RollDice
	if optionalBool(step.Args, "tank", false) {
		roll = st.engine.RollTankDice
	}
	if err := roll(player); err != nil {
		return r.opError("roll", err, step.Args)
	}
	if err := st.engine.FinishRolling(); err != nil {
		return r.opError("finish_rolling", err, step.Args)
	}
	if st.engine.State().TurnPhase != state.TurnMoving {
		return nil
	}
	if err := st.engine.FinishMoving(); err != nil {
		return r.opError("finish_moving", err, step.Args)
	}
	return nil
}

func (r *Runner) runStackStep(st *scenarioState, step Step) error {
	cards := readStringSlice(step.Args, "cards")
	if len(cards) == 0 {
		return r.failf("stack needs at least one card")
	}
	switch requiredString(step.Args, "deck") {
	case "directives":
		return st.engine.StackPartyDirectives(cards...)
	case "tests":
		return st.engine.StackCommunistTests(cards...)
	default:
		return r.failf("unknown deck %q", step.Args["deck"])
	}
}

func (r *Runner) runOpStep(st *scenarioState, step Step) error {
	name := strings.ToLower(requiredString(step.Args, "name"))
	op, ok := operations[name]
	if !ok {
		return r.failf("unknown operation %q", name)
	}
	id, err := op(st, step.Args)
	wantCode := requiredString(step.Args, "error")
	if wantCode != "" {
		if err == nil {
			return r.assertf("%s: expected error %s, got success", name, wantCode)
		}
		if got := apperrors.GetCode(err); string(got) != wantCode {
			return r.assertf("%s: error = %s, want %s (%v)", name, got, wantCode, err)
		}
		return nil
	}
	if err != nil {
		return r.opError(name, err, step.Args)
	}
	if alias := requiredString(step.Args, "as"); alias != "" {
		if id == "" {
			return r.failf("%s returned no id to bind to %q", name, alias)
		}
		st.refs[alias] = id
	}
	return nil
}

func (r *Runner) opError(name string, err error, args map[string]any) error {
	if want := requiredString(args, "error"); want != "" && string(apperrors.GetCode(err)) == want {
		return nil
	}
	return r.assertf("%s: %v", name, err)
}

func (r *Runner) runExpectStep(st *scenarioState, step Step) error {
	g := st.engine.State()
	var failures []string
	check := func(key string, got, want any) {
		if fmt.Sprint(got) != fmt.Sprint(want) {
			failures = append(failures, fmt.Sprintf("%s = %v, want %v", key, got, want))
		}
	}

	if id := requiredString(step.Args, "player"); id != "" {
		p, err := g.Player(id)
		if err != nil {
			return r.failf("expect: %v", err)
		}
		for key, want := range step.Args {
			switch key {
			case "player":
			case "wealth":
				check(key, p.Wealth, want)
			case "position":
				check(key, p.Position, want)
			case "in_gulag":
				check(key, p.InGulag, want)
			case "gulag_days":
				check(key, p.GulagDays, want)
			case "rank":
				check(key, p.Rank.String(), want)
			case "laps":
				check(key, p.LapsCompleted, want)
			case "suspicion":
				check(key, p.UnderSuspicion, want)
			case "eliminated":
				check(key, p.Eliminated, want)
			case "escape_tokens":
				check(key, p.EscapeTokens, want)
			case "piece":
				check(key, string(p.Piece), want)
			case "debt":
				debt := 0
				if p.Debt != nil {
					debt = p.Debt.Amount
				}
				check(key, debt, want)
			case "owes":
				check(key, p.OwesFavourTo(fmt.Sprint(want)), true)
			case "properties":
				check(key, len(g.PropertiesOf(p.ID)), want)
			default:
				return r.failf("expect: unknown player key %q", key)
			}
		}
	} else if _, ok := readInt(step.Args, "space"); ok {
		spaceID, _ := readInt(step.Args, "space")
		prop, err := g.Property(spaceID)
		if err != nil {
			return r.failf("expect: %v", err)
		}
		for key, want := range step.Args {
			switch key {
			case "space":
			case "custodian":
				check(key, prop.CustodianID, want)
			case "level":
				check(key, prop.Collectivization, want)
			case "mortgaged":
				check(key, prop.Mortgaged, want)
			default:
				return r.failf("expect: unknown property key %q", key)
			}
		}
	} else {
		for key, want := range step.Args {
			switch key {
			case "treasury":
				check(key, g.Treasury, want)
			case "round":
				check(key, g.Round, want)
			case "phase":
				check(key, string(g.Phase), want)
			case "turn_phase":
				check(key, string(g.TurnPhase), want)
			case "pending":
				check(key, pendingKind(g), want)
			case "current":
				current := ""
				if cur := g.CurrentPlayer(); cur != nil {
					current = cur.ID
				}
				check(key, current, want)
			case "outcome":
				check(key, string(g.Outcome), want)
			case "winner":
				check(key, g.WinnerID, want)
			case "tribunal":
				phase := "none"
				if g.Tribunal != nil {
					phase = string(g.Tribunal.Phase)
				}
				check(key, phase, want)
			case "log_contains":
				if !logContains(g.Log, fmt.Sprint(want)) {
					failures = append(failures, fmt.Sprintf("log has no entry containing %q", want))
				}
			default:
				return r.failf("expect: unknown key %q", key)
			}
		}
	}

	if len(failures) > 0 {
		return r.assertf("expect: %s", strings.Join(failures, "; "))
	}
	return nil
}

func pendingKind(g *state.Game) string {
	if g.Pending == nil {
		return "none"
	}
	return string(g.Pending.Kind())
}

func logContains(entries []state.LogEntry, text string) bool {
	for _, entry := range entries {
		if strings.Contains(entry.Message, text) {
			return true
		}
	}
	return false
}
