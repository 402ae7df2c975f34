package scenario

import (
	"time"

	"github.com/louisbranch/stalinopoly/internal/game/state"
)

// opFunc runs one engine operation from step arguments. Operations that
// create an entity return its id so scripts can bind it with `as`.
type opFunc func(st *scenarioState, args map[string]any) (string, error)

// none adapts operations that return only an error.
func none(err error) (string, error) {
	return "", err
}

var operations = map[string]opFunc{
	// turn
	"roll_dice": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.RollDice(str(a, "player")))
	},
	"roll_tank_dice": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.RollTankDice(str(a, "player")))
	},
	"finish_rolling": func(st *scenarioState, _ map[string]any) (string, error) {
		return none(st.engine.FinishRolling())
	},
	"move_player": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.MovePlayer(str(a, "player"), num(a, "spaces")))
	},
	"finish_moving": func(st *scenarioState, _ map[string]any) (string, error) {
		return none(st.engine.FinishMoving())
	},
	"resolve_current_space": func(st *scenarioState, _ map[string]any) (string, error) {
		return none(st.engine.ResolveCurrentSpace())
	},
	"end_turn": func(st *scenarioState, _ map[string]any) (string, error) {
		return none(st.engine.EndTurn())
	},

	// landing
	"buy_property": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.BuyProperty(str(a, "player")))
	},
	"decline_property": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.DeclineProperty(str(a, "player")))
	},
	"pay_quota": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.PayQuota(str(a, "player")))
	},
	"draw_party_directive": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.DrawPartyDirective(str(a, "player")))
	},
	"draw_communist_test": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.DrawCommunistTest(str(a, "player")))
	},
	"answer_communist_test": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.AnswerCommunistTest(str(a, "player"), num(a, "answer")))
	},
	"pilfer_stoy": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.PilferStoy(str(a, "player"), optionalBool(a, "attempt", true)))
	},
	"contribute_to_breadline": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.ContributeToBreadline(str(a, "player"), optionalBool(a, "contribute", true)))
	},

	// ledger
	"collectivize": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.Collectivize(str(a, "player"), num(a, "space")))
	},
	"decollectivize": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.Decollectivize(str(a, "player"), num(a, "space")))
	},
	"mortgage_property": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.MortgageProperty(str(a, "player"), num(a, "space")))
	},
	"unmortgage_property": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.UnmortgageProperty(str(a, "player"), num(a, "space")))
	},
	"propose_trade": func(st *scenarioState, a map[string]any) (string, error) {
		return st.engine.ProposeTrade(str(a, "from"), str(a, "to"), bundle(a, "offer"), bundle(a, "request"))
	},
	"respond_to_trade": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.RespondToTrade(st.ref(a, "trade"), optionalBool(a, "accept", true)))
	},
	"create_debt": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.CreateDebt(str(a, "debtor"), optionalString(a, "creditor", state.StateCreditor), num(a, "amount")))
	},
	"pay_debt": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.PayDebt(str(a, "player")))
	},
	"check_debt_status": func(st *scenarioState, _ map[string]any) (string, error) {
		return none(st.engine.CheckDebtStatus())
	},
	"check_elimination": func(st *scenarioState, a map[string]any) (string, error) {
		_, err := st.engine.CheckElimination(str(a, "player"))
		return none(err)
	},
	"submit_bribe": func(st *scenarioState, a map[string]any) (string, error) {
		return st.engine.SubmitBribe(str(a, "player"), num(a, "amount"), state.BribeReason(str(a, "reason")))
	},
	"respond_to_bribe": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.RespondToBribe(st.ref(a, "bribe"), optionalBool(a, "accept", true)))
	},
	"request_voucher": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.RequestVoucher(str(a, "player")))
	},
	"sponsor_prisoner": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.SponsorPrisoner(str(a, "sponsor"), str(a, "prisoner")))
	},
	"decline_voucher_request": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.DeclineVoucherRequest(str(a, "player")))
	},
	"call_in_favour": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.CallInFavour(str(a, "holder"), str(a, "debtor")))
	},

	// gulag
	"send_to_gulag": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.SendToGulag(str(a, "player")))
	},
	"pardon_prisoner": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.PardonPrisoner(str(a, "player")))
	},
	"attempt_gulag_escape": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.AttemptGulagEscape(str(a, "player")))
	},
	"pay_rehabilitation": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.PayRehabilitation(str(a, "player")))
	},
	"use_escape_token": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.UseEscapeToken(str(a, "player")))
	},
	"write_confession": func(st *scenarioState, a map[string]any) (string, error) {
		return st.engine.WriteConfession(str(a, "player"), optionalString(a, "text", "I confess."))
	},
	"review_confession": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.ReviewConfession(st.ref(a, "confession"), optionalBool(a, "accept", true)))
	},
	"accuse_fellow_player": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.AccuseFellowPlayer(str(a, "player"), str(a, "accused"), optionalString(a, "crime", "")))
	},

	// tribunal
	"can_denounce": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.CanDenounce(str(a, "accuser"), str(a, "accused")))
	},
	"denounce": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.Denounce(str(a, "accuser"), str(a, "accused"), optionalString(a, "crime", "")))
	},
	"advance_tribunal": func(st *scenarioState, _ map[string]any) (string, error) {
		return none(st.engine.AdvanceTribunal())
	},
	"add_witness": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.AddWitness(str(a, "player"), state.WitnessSide(optionalString(a, "side", string(state.WitnessFor)))))
	},
	"remove_witness": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.RemoveWitness(str(a, "player")))
	},
	"render_verdict": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.RenderVerdict(state.Verdict(str(a, "verdict"))))
	},

	// controller
	"promote_player": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.PromotePlayer(str(a, "player")))
	},
	"demote_player": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.DemotePlayer(str(a, "player")))
	},

	// abilities
	"use_sickle": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.UseSickle(str(a, "player"), str(a, "target")))
	},
	"request_hammer": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.RequestHammer(str(a, "player"), str(a, "target")))
	},
	"request_ministry": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.RequestMinistry(str(a, "player"), num(a, "space")))
	},
	"request_pravda": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.RequestPravda(str(a, "player"), str(a, "target"), optionalString(a, "headline", "")))
	},
	"respond_to_ability": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.RespondToAbility(optionalBool(a, "approve", true)))
	},

	// collective
	"start_five_year_plan": func(st *scenarioState, a map[string]any) (string, error) {
		deadline := time.Now().Add(time.Duration(optionalInt(a, "minutes", 10)) * time.Minute)
		return none(st.engine.StartFiveYearPlan(num(a, "target"), deadline))
	},
	"contribute_to_plan": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.ContributeToPlan(str(a, "player"), num(a, "amount")))
	},
	"resolve_five_year_plan": func(st *scenarioState, _ map[string]any) (string, error) {
		_, err := st.engine.ResolveFiveYearPlan()
		return none(err)
	},
	"start_great_purge": func(st *scenarioState, _ map[string]any) (string, error) {
		return none(st.engine.StartGreatPurge())
	},
	"vote_purge": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.VotePurge(str(a, "voter"), str(a, "target")))
	},
	"resolve_great_purge": func(st *scenarioState, _ map[string]any) (string, error) {
		_, err := st.engine.ResolveGreatPurge()
		return none(err)
	},
	"initiate_end_vote": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.InitiateEndVote(str(a, "player")))
	},
	"cast_end_vote": func(st *scenarioState, a map[string]any) (string, error) {
		return none(st.engine.CastEndVote(str(a, "player"), optionalBool(a, "yes", true)))
	},
}

func str(args map[string]any, key string) string {
	return requiredString(args, key)
}

func num(args map[string]any, key string) int {
	return optionalInt(args, key, 0)
}

// ref resolves a script alias bound with `as`, falling back to the literal
// id.
func (st *scenarioState) ref(args map[string]any, key string) string {
	value := requiredString(args, key)
	if id, ok := st.refs[value]; ok {
		return id
	}
	return value
}

func bundle(args map[string]any, key string) state.TradeBundle {
	raw, ok := args[key].(map[string]any)
	if !ok {
		return state.TradeBundle{}
	}
	return state.TradeBundle{
		Money:        optionalInt(raw, "money", 0),
		Properties:   readIntSlice(raw, "properties"),
		EscapeTokens: optionalInt(raw, "tokens", 0),
		Favours:      optionalInt(raw, "favours", 0),
	}
}
