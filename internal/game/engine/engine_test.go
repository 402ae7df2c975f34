package engine

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/louisbranch/stalinopoly/internal/game/board"
	"github.com/louisbranch/stalinopoly/internal/game/dice"
	"github.com/louisbranch/stalinopoly/internal/game/rules"
	"github.com/louisbranch/stalinopoly/internal/game/state"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

func newEngine(t *testing.T, faces ...int) (*Engine, *dice.Scripted) {
	t.Helper()
	scripted := dice.NewScripted(nil, faces...)
	e, err := New(Config{GameID: "game-1", Seed: 42, Dice: scripted, Locale: "en-US"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = e.StartGame([]PlayerSpec{
		{ID: "stalin", Name: "Stalin", Stalin: true},
		{ID: "anna", Name: "Anna", Piece: state.PieceSickle},
		{ID: "boris", Name: "Boris", Piece: state.PieceRedStar},
		{ID: "dmitri", Name: "Dmitri", Piece: state.PieceHammer},
	})
	if err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	return e, scripted
}

func mustPlayer(t *testing.T, g *state.Game, id string) *state.Player {
	t.Helper()
	p, err := g.Player(id)
	if err != nil {
		t.Fatalf("Player(%q): %v", id, err)
	}
	return p
}

func wantCode(t *testing.T, err error, want apperrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("err = nil, want %s", want)
	}
	if got := apperrors.GetCode(err); got != want {
		t.Fatalf("code = %s, want %s (%v)", got, want, err)
	}
}

func TestStartGame(t *testing.T) {
	e, _ := newEngine(t)
	g := e.State()
	if g.Phase != state.PhasePlaying {
		t.Fatalf("phase = %s, want %s", g.Phase, state.PhasePlaying)
	}
	if cur := g.CurrentPlayer(); cur == nil || cur.ID != "anna" {
		t.Fatalf("current = %v, want anna", cur)
	}
	if g.Round != 1 {
		t.Fatalf("round = %d, want 1", g.Round)
	}
	if g.Treasury != rules.Default().StartingTreasury {
		t.Fatalf("treasury = %d, want %d", g.Treasury, rules.Default().StartingTreasury)
	}
	if got := mustPlayer(t, g, "stalin").Wealth; got != 0 {
		t.Fatalf("controller wealth = %d, want 0", got)
	}
	if got := mustPlayer(t, g, "boris").Wealth; got != 1500 {
		t.Fatalf("boris wealth = %d, want 1500", got)
	}
	if g.PartyDeck.Len() == 0 || g.TestDeck.Len() == 0 {
		t.Fatal("decks were not dealt")
	}
	wantCode(t, e.StartGame(nil), apperrors.CodeGameAlreadyStarted)
}

func TestStartGameValidation(t *testing.T) {
	tests := []struct {
		name    string
		players []PlayerSpec
	}{
		{"no controller", []PlayerSpec{{ID: "a"}, {ID: "b"}}},
		{"two controllers", []PlayerSpec{{ID: "s", Stalin: true}, {ID: "t", Stalin: true}, {ID: "a"}, {ID: "b"}}},
		{"too few", []PlayerSpec{{ID: "s", Stalin: true}, {ID: "a"}}},
		{"duplicate id", []PlayerSpec{{ID: "s", Stalin: true}, {ID: "a"}, {ID: "a"}}},
		{"reserved id", []PlayerSpec{{ID: "s", Stalin: true}, {ID: "a"}, {ID: state.StateCreditor}}},
		{"unknown piece", []PlayerSpec{{ID: "s", Stalin: true}, {ID: "a", Piece: "kettle"}, {ID: "b"}}},
		{"shared piece", []PlayerSpec{{ID: "s", Stalin: true}, {ID: "a", Piece: state.PieceTank}, {ID: "b", Piece: state.PieceTank}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(Config{Seed: 1})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			wantCode(t, e.StartGame(tt.players), apperrors.CodeInvalidSetup)
			if got := e.State().Phase; got != state.PhaseSetup {
				t.Fatalf("phase = %s, want %s", got, state.PhaseSetup)
			}
		})
	}
}

func TestStartGameAssignsFreePieces(t *testing.T) {
	e, err := New(Config{Seed: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = e.StartGame([]PlayerSpec{
		{ID: "s", Stalin: true},
		{ID: "a", Piece: state.PieceHammer},
		{ID: "b"},
	})
	if err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if got := mustPlayer(t, e.State(), "b").Piece; got != state.PieceSickle {
		t.Fatalf("piece = %s, want %s", got, state.PieceSickle)
	}
}

func TestRollAcrossStoy(t *testing.T) {
	e, _ := newEngine(t, 3, 4)
	e.game.Players[1].Position = 35

	if err := e.RollDice("anna"); err != nil {
		t.Fatalf("RollDice: %v", err)
	}
	if err := e.FinishRolling(); err != nil {
		t.Fatalf("FinishRolling: %v", err)
	}
	g := e.State()
	anna := mustPlayer(t, g, "anna")
	if anna.Position != 2 {
		t.Fatalf("position = %d, want 2", anna.Position)
	}
	if anna.LapsCompleted != 1 {
		t.Fatalf("laps = %d, want 1", anna.LapsCompleted)
	}
	if anna.Wealth != 1300 {
		t.Fatalf("wealth = %d, want 1300", anna.Wealth)
	}
	if g.Treasury != 5200 {
		t.Fatalf("treasury = %d, want 5200", g.Treasury)
	}
	if g.TurnPhase != state.TurnMoving {
		t.Fatalf("turn phase = %s, want %s", g.TurnPhase, state.TurnMoving)
	}

	if err := e.FinishMoving(); err != nil {
		t.Fatalf("FinishMoving: %v", err)
	}
	if _, ok := e.State().Pending.(state.DrawPartyDirective); !ok {
		t.Fatalf("pending = %v, want party directive", e.State().Pending)
	}
}

func TestLandingOnStoyIsNotTaxed(t *testing.T) {
	e, _ := newEngine(t, 2, 3)
	e.game.Players[1].Position = 35
	if err := e.RollDice("anna"); err != nil {
		t.Fatalf("RollDice: %v", err)
	}
	if err := e.FinishRolling(); err != nil {
		t.Fatalf("FinishRolling: %v", err)
	}
	anna := mustPlayer(t, e.State(), "anna")
	if anna.Position != board.Stoy || anna.LapsCompleted != 1 || anna.Wealth != 1500 {
		t.Fatalf("anna = pos %d laps %d wealth %d, want 0/1/1500", anna.Position, anna.LapsCompleted, anna.Wealth)
	}
}

func TestPropertyAuditDirective(t *testing.T) {
	e, _ := newEngine(t)
	e.game.Properties[0].CustodianID = "anna"
	e.game.Properties[0].Collectivization = 3
	e.game.Properties[1].CustodianID = "anna"
	e.game.PartyDeck.Draw = []string{"property-audit"}
	e.game.Pending = state.DrawPartyDirective{PlayerID: "anna"}
	e.game.TurnPhase = state.TurnResolving

	if err := e.DrawPartyDirective("anna"); err != nil {
		t.Fatalf("DrawPartyDirective: %v", err)
	}
	g := e.State()
	if got := mustPlayer(t, g, "anna").Wealth; got != 1150 {
		t.Fatalf("wealth = %d, want 1150", got)
	}
	if g.Treasury != 5350 {
		t.Fatalf("treasury = %d, want 5350", g.Treasury)
	}
	if g.Pending != nil {
		t.Fatalf("pending = %v, want nil", g.Pending)
	}
	if g.TurnPhase != state.TurnPostTurn {
		t.Fatalf("turn phase = %s, want %s", g.TurnPhase, state.TurnPostTurn)
	}
}

func TestThreeDoublesSendsToGulag(t *testing.T) {
	e, _ := newEngine(t, 2, 2, 3, 3, 4, 4)
	step := func(name string, fn func() error) {
		t.Helper()
		if err := fn(); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
	roll := func() error { return e.RollDice("anna") }

	// 0 -> 4 (tax space), 4 -> 10 (gulag visit)
	for range 2 {
		step("RollDice", roll)
		step("FinishRolling", e.FinishRolling)
		step("FinishMoving", e.FinishMoving)
		step("EndTurn", e.EndTurn)
		if cur := e.State().CurrentPlayer(); cur.ID != "anna" {
			t.Fatalf("current = %s, want anna to roll again", cur.ID)
		}
	}
	step("RollDice", roll)
	step("FinishRolling", e.FinishRolling)

	g := e.State()
	anna := mustPlayer(t, g, "anna")
	if !anna.InGulag || anna.Position != board.Gulag {
		t.Fatalf("anna in gulag = %v at %d, want true at %d", anna.InGulag, anna.Position, board.Gulag)
	}
	if g.TurnPhase != state.TurnPostTurn {
		t.Fatalf("turn phase = %s, want %s", g.TurnPhase, state.TurnPostTurn)
	}
	if g.DoublesCount != 0 {
		t.Fatalf("doubles = %d, want 0", g.DoublesCount)
	}

	step("EndTurn", e.EndTurn)
	if cur := e.State().CurrentPlayer(); cur.ID != "boris" {
		t.Fatalf("current = %s, want boris", cur.ID)
	}
}

func TestRejectionLeavesStateUnchanged(t *testing.T) {
	var buf bytes.Buffer
	e, err := New(Config{Seed: 7, Logger: log.New(&buf, "", 0)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.StartGame([]PlayerSpec{{ID: "s", Stalin: true}, {ID: "anna", Name: "Anna"}, {ID: "boris", Name: "Boris"}}); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	before := e.State()

	err = e.RollDice("boris")
	wantCode(t, err, apperrors.CodeNotYourTurn)

	after := e.State()
	if after.TurnPhase != before.TurnPhase || after.HasRolled != before.HasRolled {
		t.Fatalf("turn changed: %s/%v -> %s/%v", before.TurnPhase, before.HasRolled, after.TurnPhase, after.HasRolled)
	}
	if len(after.Log) != len(before.Log)+1 {
		t.Fatalf("log grew by %d, want 1", len(after.Log)-len(before.Log))
	}
	last := after.Log[len(after.Log)-1]
	if last.Kind != state.LogRejection || last.PlayerID != "boris" {
		t.Fatalf("last entry = %+v, want a rejection for boris", last)
	}
	if !strings.Contains(buf.String(), "RollDice rejected") {
		t.Fatalf("operator log = %q, want the rejection", buf.String())
	}
}

func TestNotFoundIsNotNarrated(t *testing.T) {
	e, _ := newEngine(t)
	before := len(e.State().Log)
	err := e.SendToGulag("nobody")
	wantCode(t, err, apperrors.CodePlayerNotFound)
	if got := len(e.State().Log); got != before {
		t.Fatalf("log length = %d, want %d", got, before)
	}
}

func TestTradeBlocksTurnUntilAnswered(t *testing.T) {
	e, _ := newEngine(t)
	id, err := e.ProposeTrade("boris", "anna", state.TradeBundle{Money: 100}, state.TradeBundle{Favours: 1})
	if err != nil {
		t.Fatalf("ProposeTrade: %v", err)
	}
	pending, ok := e.State().Pending.(state.TradeResponse)
	if !ok || pending.TradeID != id {
		t.Fatalf("pending = %v, want trade %s", e.State().Pending, id)
	}
	wantCode(t, e.RollDice("anna"), apperrors.CodePendingActionActive)

	if err := e.RespondToTrade(id, true); err != nil {
		t.Fatalf("RespondToTrade: %v", err)
	}
	g := e.State()
	if g.Pending != nil {
		t.Fatalf("pending = %v, want nil", g.Pending)
	}
	if got := mustPlayer(t, g, "anna").Wealth; got != 1600 {
		t.Fatalf("anna wealth = %d, want 1600", got)
	}
	if !mustPlayer(t, g, "anna").OwesFavourTo("boris") {
		t.Fatal("anna should owe boris a favour")
	}
	if g.TurnPhase != state.TurnPreRoll {
		t.Fatalf("turn phase = %s, want %s", g.TurnPhase, state.TurnPreRoll)
	}
}

func TestEndTurnClosesRound(t *testing.T) {
	e, _ := newEngine(t)
	e.game.Players[2].Abilities.PravdaUsedThisRound = true
	order := []string{"boris", "dmitri", "anna"}
	for i, want := range order {
		e.game.TurnPhase = state.TurnPostTurn
		e.game.HasRolled = true
		if err := e.EndTurn(); err != nil {
			t.Fatalf("EndTurn %d: %v", i, err)
		}
		if cur := e.State().CurrentPlayer(); cur.ID != want {
			t.Fatalf("turn %d: current = %s, want %s", i, cur.ID, want)
		}
	}
	g := e.State()
	if g.Round != 2 || g.Stats.Rounds != 1 {
		t.Fatalf("round = %d (stats %d), want 2 (1)", g.Round, g.Stats.Rounds)
	}
	if mustPlayer(t, g, "boris").Abilities.PravdaUsedThisRound {
		t.Fatal("per-round abilities were not re-armed")
	}
	if g.TurnPhase != state.TurnPreRoll || g.HasRolled {
		t.Fatalf("turn = %s rolled %v, want fresh preRoll", g.TurnPhase, g.HasRolled)
	}
}

func TestEndTurnSkipsEliminated(t *testing.T) {
	e, _ := newEngine(t)
	e.game.Eliminate("boris", state.EliminationBankruptcy)
	e.game.TurnPhase = state.TurnPostTurn
	if err := e.EndTurn(); err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if cur := e.State().CurrentPlayer(); cur.ID != "dmitri" {
		t.Fatalf("current = %s, want dmitri", cur.ID)
	}
}

func TestEndTurnNeedsPostTurn(t *testing.T) {
	e, _ := newEngine(t)
	wantCode(t, e.EndTurn(), apperrors.CodeWrongTurnPhase)
}

func TestBuyPropertyOnLanding(t *testing.T) {
	e, _ := newEngine(t, 1, 2)
	steps := []struct {
		name string
		fn   func() error
	}{
		{"RollDice", func() error { return e.RollDice("anna") }},
		{"FinishRolling", e.FinishRolling},
		{"FinishMoving", e.FinishMoving},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			t.Fatalf("%s: %v", s.name, err)
		}
	}
	pending, ok := e.State().Pending.(state.PropertyPurchase)
	if !ok || pending.SpaceID != 3 {
		t.Fatalf("pending = %v, want purchase of space 3", e.State().Pending)
	}
	wantCode(t, e.BuyProperty("boris"), apperrors.CodeNotYourTurn)
	if err := e.BuyProperty("anna"); err != nil {
		t.Fatalf("BuyProperty: %v", err)
	}
	g := e.State()
	prop, err := g.Property(3)
	if err != nil {
		t.Fatalf("Property: %v", err)
	}
	if prop.CustodianID != "anna" {
		t.Fatalf("custodian = %q, want anna", prop.CustodianID)
	}
	if want := 1500 - board.MustGet(3).Price; mustPlayer(t, g, "anna").Wealth != want {
		t.Fatalf("wealth = %d, want %d", mustPlayer(t, g, "anna").Wealth, want)
	}
	if g.TurnPhase != state.TurnPostTurn {
		t.Fatalf("turn phase = %s, want %s", g.TurnPhase, state.TurnPostTurn)
	}
}

func TestQuotaLapsesWhenCustodianIsEliminated(t *testing.T) {
	e, _ := newEngine(t, 1, 2, 1, 2)
	steps := []struct {
		name string
		fn   func() error
	}{
		{"RollDice anna", func() error { return e.RollDice("anna") }},
		{"FinishRolling", e.FinishRolling},
		{"FinishMoving", e.FinishMoving},
		{"BuyProperty", func() error { return e.BuyProperty("anna") }},
		{"EndTurn", e.EndTurn},
		{"RollDice boris", func() error { return e.RollDice("boris") }},
		{"FinishRolling", e.FinishRolling},
		{"FinishMoving", e.FinishMoving},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			t.Fatalf("%s: %v", s.name, err)
		}
	}
	if _, ok := e.State().Pending.(state.QuotaPayment); !ok {
		t.Fatalf("pending = %v, want quota payment", e.State().Pending)
	}

	anna, err := e.game.Player("anna")
	if err != nil {
		t.Fatalf("Player: %v", err)
	}
	anna.Wealth = -10
	anna.Debt = &state.Debt{CreditorID: state.StateCreditor, Amount: 10, CreatedRound: 1}
	eliminated, err := e.CheckElimination("anna")
	if err != nil || !eliminated {
		t.Fatalf("CheckElimination = %v, %v; want true", eliminated, err)
	}

	g := e.State()
	if g.Pending != nil {
		t.Fatalf("pending = %v, want none", g.Pending)
	}
	if g.TurnPhase != state.TurnPostTurn {
		t.Fatalf("turn phase = %s, want %s", g.TurnPhase, state.TurnPostTurn)
	}
	wantCode(t, e.PayQuota("boris"), apperrors.CodePendingMismatch)
	if got := mustPlayer(t, e.State(), "boris").Wealth; got != 1500 {
		t.Fatalf("boris wealth = %d, want 1500", got)
	}
	if got := mustPlayer(t, e.State(), "anna").Wealth; got != -10 {
		t.Fatalf("anna wealth = %d, want -10", got)
	}
}

func TestSickle(t *testing.T) {
	e, _ := newEngine(t)
	wantCode(t, e.UseSickle("anna", "stalin"), apperrors.CodeControllerExcluded)
	if err := e.UseSickle("anna", "boris"); err != nil {
		t.Fatalf("UseSickle: %v", err)
	}
	g := e.State()
	if got := mustPlayer(t, g, "anna").Wealth; got != 1550 {
		t.Fatalf("anna wealth = %d, want 1550", got)
	}
	wantCode(t, e.UseSickle("anna", "boris"), apperrors.CodeAbilityUsed)
	wantCode(t, e.UseSickle("anna", "stalin"), apperrors.CodeControllerExcluded)
	wantCode(t, e.UseSickle("boris", "anna"), apperrors.CodeWrongPiece)
}

func TestHammerNeedsApproval(t *testing.T) {
	e, _ := newEngine(t)
	wantCode(t, e.RequestHammer("dmitri", "boris"), apperrors.CodeNotUnderSuspicion)
	e.game.Players[2].UnderSuspicion = true

	if err := e.RequestHammer("dmitri", "boris"); err != nil {
		t.Fatalf("RequestHammer: %v", err)
	}
	if _, ok := e.State().Pending.(state.HammerApproval); !ok {
		t.Fatalf("pending = %v, want hammer approval", e.State().Pending)
	}
	if err := e.RespondToAbility(true); err != nil {
		t.Fatalf("RespondToAbility: %v", err)
	}
	g := e.State()
	if !mustPlayer(t, g, "boris").InGulag {
		t.Fatal("boris should be imprisoned")
	}
	if g.Pending != nil {
		t.Fatalf("pending = %v, want nil", g.Pending)
	}
	wantCode(t, e.RequestHammer("dmitri", "anna"), apperrors.CodeAbilityUsed)
	wantCode(t, e.RespondToAbility(true), apperrors.CodePendingMismatch)
}

func TestPravdaDeniedStillSpendsRound(t *testing.T) {
	e, _ := newEngine(t)
	e.game.Players[3].Piece = state.PieceVodkaBottle
	if err := e.RequestPravda("dmitri", "anna", "Anna hoards grain"); err != nil {
		t.Fatalf("RequestPravda: %v", err)
	}
	if err := e.RespondToAbility(false); err != nil {
		t.Fatalf("RespondToAbility: %v", err)
	}
	if mustPlayer(t, e.State(), "anna").UnderSuspicion {
		t.Fatal("denied story should not cast suspicion")
	}
	wantCode(t, e.RequestPravda("dmitri", "anna", "again"), apperrors.CodeAbilityUsed)
}

func TestConfessionRejectedExtendsSentence(t *testing.T) {
	e, _ := newEngine(t)
	if err := e.SendToGulag("anna"); err != nil {
		t.Fatalf("SendToGulag: %v", err)
	}
	id, err := e.WriteConfession("anna", "I doubted the harvest figures.")
	if err != nil {
		t.Fatalf("WriteConfession: %v", err)
	}
	if _, err := e.WriteConfession("anna", "again"); err == nil {
		t.Fatal("second confession should be rejected")
	}
	if p, ok := e.State().Pending.(state.ReviewConfession); !ok || p.ConfessionID != id {
		t.Fatalf("pending = %v, want review of %s", e.State().Pending, id)
	}
	days := mustPlayer(t, e.State(), "anna").GulagDays
	if err := e.ReviewConfession(id, false); err != nil {
		t.Fatalf("ReviewConfession: %v", err)
	}
	g := e.State()
	if got := mustPlayer(t, g, "anna").GulagDays; got != days+1 {
		t.Fatalf("days = %d, want %d", got, days+1)
	}
	if len(g.Confessions) != 0 || g.Pending != nil {
		t.Fatalf("confessions = %d pending = %v, want none", len(g.Confessions), g.Pending)
	}
}

func TestGulagEscapeEndsTurn(t *testing.T) {
	e, _ := newEngine(t, 6, 6)
	e.game.Players[1].InGulag = true
	e.game.Players[1].Position = board.Gulag
	e.game.TurnStartedInGulag = true

	if err := e.AttemptGulagEscape("anna"); err != nil {
		t.Fatalf("AttemptGulagEscape: %v", err)
	}
	g := e.State()
	if mustPlayer(t, g, "anna").InGulag {
		t.Fatal("a double six should release on any day")
	}
	if g.TurnPhase != state.TurnPostTurn {
		t.Fatalf("turn phase = %s, want %s", g.TurnPhase, state.TurnPostTurn)
	}
	wantCode(t, e.AttemptGulagEscape("anna"), apperrors.CodeWrongTurnPhase)
}

func TestPrisonerEndsTurnServingADay(t *testing.T) {
	e, _ := newEngine(t)
	e.game.Players[1].InGulag = true
	e.game.TurnStartedInGulag = true
	if err := e.EndTurn(); err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if got := mustPlayer(t, e.State(), "anna").GulagDays; got != 1 {
		t.Fatalf("days = %d, want 1", got)
	}
}

func TestPromoteAndDemote(t *testing.T) {
	e, _ := newEngine(t)
	for range 5 {
		if err := e.PromotePlayer("boris"); err != nil {
			t.Fatalf("PromotePlayer: %v", err)
		}
	}
	if got := mustPlayer(t, e.State(), "boris").Rank; got != state.RankInnerCircle {
		t.Fatalf("rank = %s, want %s", got, state.RankInnerCircle)
	}
	if err := e.DemotePlayer("boris"); err != nil {
		t.Fatalf("DemotePlayer: %v", err)
	}
	if got := mustPlayer(t, e.State(), "boris").Rank; got != state.RankInnerCircle-1 {
		t.Fatalf("rank = %s, want %s", got, state.RankInnerCircle-1)
	}
}

func TestUnanimousEndVote(t *testing.T) {
	e, _ := newEngine(t)
	if err := e.InitiateEndVote("anna"); err != nil {
		t.Fatalf("InitiateEndVote: %v", err)
	}
	for _, id := range []string{"boris", "dmitri"} {
		if err := e.CastEndVote(id, true); err != nil {
			t.Fatalf("CastEndVote(%s): %v", id, err)
		}
	}
	g := e.State()
	if g.Phase != state.PhaseEnded || g.Outcome != state.OutcomeUnanimous {
		t.Fatalf("phase = %s outcome = %s, want ended by vote", g.Phase, g.Outcome)
	}
	if !errors.Is(e.RollDice("anna"), state.ErrGameOver) {
		t.Fatal("operations after the end should report game over")
	}
}

func TestFinishRollingWithoutDiceIsRejected(t *testing.T) {
	e, _ := newEngine(t)
	e.game.TurnPhase = state.TurnRolling
	e.game.Dice = nil

	wantCode(t, e.FinishRolling(), apperrors.CodeWrongTurnPhase)
	if got := mustPlayer(t, e.State(), "anna").Position; got != 0 {
		t.Fatalf("position = %d, want 0", got)
	}

	snap := e.Snapshot()
	restored, err := New(Config{GameID: "other", Seed: 42})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := restored.Restore(snap); err == nil {
		t.Fatal("Restore accepted a rolling turn without dice")
	}
}

func TestSnapshotRestore(t *testing.T) {
	e, _ := newEngine(t, 3, 4)
	if err := e.RollDice("anna"); err != nil {
		t.Fatalf("RollDice: %v", err)
	}
	if err := e.FinishRolling(); err != nil {
		t.Fatalf("FinishRolling: %v", err)
	}
	snap := e.Snapshot()

	restored, err := New(Config{GameID: "other", Seed: 42})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := restored.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	g := restored.State()
	if g.ID != "game-1" {
		t.Fatalf("id = %s, want game-1", g.ID)
	}
	anna := mustPlayer(t, g, "anna")
	if anna.Position != 7 || anna.Wealth != 1500 {
		t.Fatalf("anna = pos %d wealth %d, want 7/1500", anna.Position, anna.Wealth)
	}
	if len(g.Log) != len(e.State().Log) {
		t.Fatalf("log length = %d, want %d", len(g.Log), len(e.State().Log))
	}
	snap.Version = 99
	if err := restored.Restore(snap); err == nil {
		t.Fatal("Restore accepted an unknown version")
	}
}
