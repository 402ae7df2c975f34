package tribunal

import (
	"testing"

	"github.com/louisbranch/stalinopoly/internal/game/rules"
	"github.com/louisbranch/stalinopoly/internal/game/state"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

func newGame() *state.Game {
	g := state.New("g", rules.Default(), "en-US")
	g.Phase = state.PhasePlaying
	g.Round = 1
	g.StalinID = "stalin"
	g.Players = []state.Player{
		{ID: "stalin", Name: "Stalin", IsStalin: true},
		{ID: "anna", Name: "Anna", Wealth: 1500, Rank: state.RankPartyMember},
		{ID: "boris", Name: "Boris", Wealth: 1500},
		{ID: "dmitri", Name: "Dmitri", Wealth: 1500},
		{ID: "elena", Name: "Elena", Wealth: 1500},
	}
	g.Properties = state.NewProperties()
	return g
}

func player(t *testing.T, g *state.Game, id string) *state.Player {
	t.Helper()
	p, err := g.Player(id)
	if err != nil {
		t.Fatalf("Player(%q): %v", id, err)
	}
	return p
}

func wantCode(t *testing.T, err error, code apperrors.Code) {
	t.Helper()
	if got := apperrors.GetCode(err); got != code {
		t.Fatalf("code = %s, want %s (err %v)", got, code, err)
	}
}

func toJudgement(t *testing.T, g *state.Game) {
	t.Helper()
	for g.Tribunal.Phase != state.TribunalJudgement {
		if err := Advance(g); err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}
}

func openTribunal(t *testing.T, g *state.Game, accuser, accused string) {
	t.Helper()
	opened, err := Denounce(g, accuser, accused, "")
	if err != nil || !opened {
		t.Fatalf("Denounce(%s, %s) = %v, %v", accuser, accused, opened, err)
	}
}

func TestCanDenounce(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(g *state.Game)
		accuser string
		accused string
		want    apperrors.Code
	}{
		{name: "allowed", accuser: "anna", accused: "boris"},
		{name: "self", accuser: "anna", accused: "anna", want: apperrors.CodeDenounceSelf},
		{name: "controller", accuser: "anna", accused: "stalin", want: apperrors.CodeDenounceController},
		{name: "unknown", accuser: "anna", accused: "ghost", want: apperrors.CodePlayerNotFound},
		{
			name:    "imprisoned",
			setup:   func(g *state.Game) { g.Players[2].InGulag = true },
			accuser: "anna", accused: "boris", want: apperrors.CodeDenounceImprisoned,
		},
		{
			name:    "tribunal active",
			setup:   func(g *state.Game) { g.Tribunal = &state.Tribunal{AccuserID: "dmitri", AccusedID: "elena"} },
			accuser: "anna", accused: "boris", want: apperrors.CodeTribunalActive,
		},
		{
			name: "quota",
			setup: func(g *state.Game) {
				g.Denouncements = []state.Denouncement{{AccuserID: "anna", AccusedID: "dmitri", Round: 1}}
			},
			accuser: "anna", accused: "boris", want: apperrors.CodeDenounceQuota,
		},
		{
			name: "quota from an earlier round",
			setup: func(g *state.Game) {
				g.Round = 2
				g.Denouncements = []state.Denouncement{{AccuserID: "anna", AccusedID: "dmitri", Round: 1}}
			},
			accuser: "anna", accused: "boris",
		},
		{
			name: "commissar unlimited",
			setup: func(g *state.Game) {
				g.Players[1].Rank = state.RankCommissar
				g.Denouncements = []state.Denouncement{
					{AccuserID: "anna", AccusedID: "dmitri", Round: 1},
					{AccuserID: "anna", AccusedID: "elena", Round: 1},
				}
			},
			accuser: "anna", accused: "boris",
		},
		{
			name: "red star outranks",
			setup: func(g *state.Game) {
				g.Players[2].Piece = state.PieceRedStar
				g.Players[2].Rank = state.RankCommissar
			},
			accuser: "anna", accused: "boris", want: apperrors.CodeDenounceRank,
		},
		{
			name: "red star equal rank",
			setup: func(g *state.Game) {
				g.Players[2].Piece = state.PieceRedStar
				g.Players[2].Rank = state.RankPartyMember
			},
			accuser: "anna", accused: "boris",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame()
			if tt.setup != nil {
				tt.setup(g)
			}
			err := CanDenounce(g, tt.accuser, tt.accused)
			if tt.want == "" {
				if err != nil {
					t.Fatalf("CanDenounce = %v, want nil", err)
				}
				return
			}
			wantCode(t, err, tt.want)
		})
	}
}

func TestDenouncingStalinPunishesAccuser(t *testing.T) {
	g := newGame()
	opened, err := Denounce(g, "anna", "stalin", "")
	if err != nil || opened {
		t.Fatalf("Denounce = %v, %v", opened, err)
	}
	anna := player(t, g, "anna")
	if !anna.InGulag || anna.Rank != state.RankProletariat {
		t.Fatalf("anna = %+v, want imprisoned and demoted", anna)
	}
	if g.Tribunal != nil {
		t.Fatal("no tribunal should open")
	}
}

func TestPhasesAdvanceInOrder(t *testing.T) {
	g := newGame()
	wantCode(t, Advance(g), apperrors.CodeNoTribunal)
	openTribunal(t, g, "anna", "boris")

	want := []state.TribunalPhase{state.TribunalDefence, state.TribunalWitnesses, state.TribunalJudgement}
	for _, phase := range want {
		if err := Advance(g); err != nil {
			t.Fatalf("Advance: %v", err)
		}
		if g.Tribunal.Phase != phase {
			t.Fatalf("phase = %s, want %s", g.Tribunal.Phase, phase)
		}
	}
	wantCode(t, Advance(g), apperrors.CodeTribunalPhase)
}

func TestRequiredWitnesses(t *testing.T) {
	tests := []struct {
		rank      state.Rank
		suspicion bool
		want      int
	}{
		{rank: state.RankProletariat, want: 0},
		{rank: state.RankPartyMember, want: 0},
		{rank: state.RankCommissar, want: 2},
		{rank: state.RankInnerCircle, want: 2},
		{rank: state.RankInnerCircle, suspicion: true, want: 0},
		{rank: state.RankCommissar, suspicion: true, want: 0},
	}
	for _, tt := range tests {
		g := newGame()
		accused := player(t, g, "boris")
		accused.Rank = tt.rank
		accused.UnderSuspicion = tt.suspicion
		tr := &state.Tribunal{AccuserID: "anna", AccusedID: "boris"}
		if got := RequiredWitnesses(g, tr, accused); got != tt.want {
			t.Fatalf("RequiredWitnesses(%s, suspicion=%v) = %d, want %d", tt.rank, tt.suspicion, got, tt.want)
		}
	}
}

// TestInnerCircleNeedsEveryWitness covers the unanimous threshold: every
// eligible witness must testify and losing one breaks it.
func TestInnerCircleNeedsEveryWitness(t *testing.T) {
	g := newGame()
	player(t, g, "anna").Rank = state.RankCommissar
	player(t, g, "boris").Rank = state.RankInnerCircle
	openTribunal(t, g, "anna", "boris")
	if g.Tribunal.RequiredWitnesses != 2 {
		t.Fatalf("required = %d, want 2", g.Tribunal.RequiredWitnesses)
	}

	wantCode(t, AddWitness(g, "dmitri", state.WitnessFor), apperrors.CodeTribunalPhase)
	if err := Advance(g); err != nil {
		t.Fatal(err)
	}
	if err := Advance(g); err != nil {
		t.Fatal(err)
	}

	if err := AddWitness(g, "dmitri", state.WitnessFor); err != nil {
		t.Fatalf("AddWitness: %v", err)
	}
	if HasEnoughWitnesses(g) {
		t.Fatal("one of two witnesses should not be enough")
	}
	if err := AddWitness(g, "elena", state.WitnessFor); err != nil {
		t.Fatalf("AddWitness: %v", err)
	}
	if !HasEnoughWitnesses(g) {
		t.Fatal("all eligible witnesses should be enough")
	}
	if err := RemoveWitness(g, "elena"); err != nil {
		t.Fatalf("RemoveWitness: %v", err)
	}
	if HasEnoughWitnesses(g) {
		t.Fatal("removing a witness should break unanimity")
	}
}

func TestWitnessRules(t *testing.T) {
	g := newGame()
	openTribunal(t, g, "anna", "boris")
	_ = Advance(g)
	_ = Advance(g)

	wantCode(t, AddWitness(g, "anna", state.WitnessFor), apperrors.CodeWitnessIneligible)
	wantCode(t, AddWitness(g, "boris", state.WitnessAgainst), apperrors.CodeWitnessIneligible)
	wantCode(t, AddWitness(g, "stalin", state.WitnessFor), apperrors.CodeControllerExcluded)

	if err := AddWitness(g, "dmitri", state.WitnessFor); err != nil {
		t.Fatalf("AddWitness: %v", err)
	}
	if err := AddWitness(g, "dmitri", state.WitnessFor); err != nil {
		t.Fatalf("repeat AddWitness: %v", err)
	}
	if len(g.Tribunal.WitnessesFor) != 1 {
		t.Fatalf("for = %v, want one entry", g.Tribunal.WitnessesFor)
	}
	wantCode(t, AddWitness(g, "dmitri", state.WitnessAgainst), apperrors.CodeWitnessBothSides)
	wantCode(t, RemoveWitness(g, "elena"), apperrors.CodeWitnessIneligible)
}

func TestVerdicts(t *testing.T) {
	tests := []struct {
		name    string
		verdict state.Verdict
		check   func(t *testing.T, g *state.Game)
	}{
		{
			name:    "guilty",
			verdict: state.VerdictGuilty,
			check: func(t *testing.T, g *state.Game) {
				if !player(t, g, "boris").InGulag {
					t.Fatal("accused should be imprisoned")
				}
				if got := player(t, g, "anna").Wealth; got != 1600 {
					t.Fatalf("accuser wealth = %d, want 1600", got)
				}
				if g.Stats.GuiltyVerdicts != 1 || player(t, g, "anna").Stats.TribunalsWon != 1 {
					t.Fatalf("stats = %+v", g.Stats)
				}
			},
		},
		{
			name:    "innocent",
			verdict: state.VerdictInnocent,
			check: func(t *testing.T, g *state.Game) {
				anna := player(t, g, "anna")
				if anna.Rank != state.RankProletariat || anna.InGulag {
					t.Fatalf("anna = %+v, want demoted and free", anna)
				}
				if player(t, g, "boris").Stats.TribunalsWon != 1 {
					t.Fatal("accused should win")
				}
			},
		},
		{
			name:    "both guilty",
			verdict: state.VerdictBothGuilty,
			check: func(t *testing.T, g *state.Game) {
				if !player(t, g, "anna").InGulag || !player(t, g, "boris").InGulag {
					t.Fatal("both parties should be imprisoned")
				}
			},
		},
		{
			name:    "insufficient evidence",
			verdict: state.VerdictInsufficientEvidence,
			check: func(t *testing.T, g *state.Game) {
				boris := player(t, g, "boris")
				if !boris.UnderSuspicion || boris.InGulag {
					t.Fatalf("boris = %+v, want suspected and free", boris)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame()
			openTribunal(t, g, "anna", "boris")
			wantCode(t, RenderVerdict(g, tt.verdict), apperrors.CodeTribunalPhase)
			toJudgement(t, g)
			if err := RenderVerdict(g, tt.verdict); err != nil {
				t.Fatalf("RenderVerdict: %v", err)
			}
			if g.Tribunal != nil {
				t.Fatal("verdict should close the tribunal")
			}
			tt.check(t, g)
		})
	}
}

func TestGuiltyNeedsWitnesses(t *testing.T) {
	g := newGame()
	player(t, g, "boris").Rank = state.RankCommissar
	openTribunal(t, g, "anna", "boris")
	toJudgement(t, g)
	wantCode(t, RenderVerdict(g, state.VerdictGuilty), apperrors.CodeInsufficientWitnesses)
	wantCode(t, RenderVerdict(g, state.Verdict("pardon")), apperrors.CodeInvalidVerdict)
	if err := RenderVerdict(g, state.VerdictInsufficientEvidence); err != nil {
		t.Fatalf("RenderVerdict: %v", err)
	}
}

func TestImprisonedAccuser(t *testing.T) {
	t.Run("guilty releases with bonus", func(t *testing.T) {
		g := newGame()
		anna := player(t, g, "anna")
		anna.InGulag = true
		openTribunal(t, g, "anna", "boris")
		toJudgement(t, g)
		if err := RenderVerdict(g, state.VerdictGuilty); err != nil {
			t.Fatalf("RenderVerdict: %v", err)
		}
		if anna.InGulag || anna.Wealth != 1600 {
			t.Fatalf("anna = %+v, want released with bonus", anna)
		}
	})
	t.Run("innocent extends sentence", func(t *testing.T) {
		g := newGame()
		anna := player(t, g, "anna")
		anna.InGulag = true
		anna.GulagDays = 2
		openTribunal(t, g, "anna", "boris")
		toJudgement(t, g)
		if err := RenderVerdict(g, state.VerdictInnocent); err != nil {
			t.Fatalf("RenderVerdict: %v", err)
		}
		if !anna.InGulag || anna.GulagDays != 3 {
			t.Fatalf("anna = %+v, want day 3", anna)
		}
	})
}

func TestVerdictToleratesEliminatedParty(t *testing.T) {
	g := newGame()
	openTribunal(t, g, "anna", "boris")
	toJudgement(t, g)
	g.Eliminate("anna", state.EliminationBankruptcy)
	if err := RenderVerdict(g, state.VerdictGuilty); err != nil {
		t.Fatalf("RenderVerdict: %v", err)
	}
	if !player(t, g, "boris").InGulag {
		t.Fatal("accused should still be imprisoned")
	}
	if player(t, g, "anna").Wealth != 1500 {
		t.Fatal("eliminated accuser should not be paid")
	}
}

func TestAnonymousTribunal(t *testing.T) {
	g := newGame()
	if err := OpenAnonymous(g, "boris", ""); err != nil {
		t.Fatalf("OpenAnonymous: %v", err)
	}
	if !g.Tribunal.Anonymous || g.Tribunal.AccuserID != "stalin" {
		t.Fatalf("tribunal = %+v", g.Tribunal)
	}
	wantCode(t, OpenAnonymous(g, "dmitri", ""), apperrors.CodeTribunalActive)
	toJudgement(t, g)
	if err := RenderVerdict(g, state.VerdictGuilty); err != nil {
		t.Fatalf("RenderVerdict: %v", err)
	}
	if !player(t, g, "boris").InGulag {
		t.Fatal("accused should be imprisoned")
	}
}

func TestCallInFavour(t *testing.T) {
	g := newGame()
	dmitri := player(t, g, "dmitri")
	dmitri.OwesFavoursTo = []string{"boris"}
	openTribunal(t, g, "anna", "boris")
	_ = Advance(g)
	_ = Advance(g)
	if err := AddWitness(g, "dmitri", state.WitnessFor); err != nil {
		t.Fatal(err)
	}

	if err := CallInFavour(g, "boris", "dmitri"); err != nil {
		t.Fatalf("CallInFavour: %v", err)
	}
	tr := g.Tribunal
	if len(tr.WitnessesFor) != 0 || len(tr.WitnessesAgainst) != 1 || tr.WitnessesAgainst[0] != "dmitri" {
		t.Fatalf("for = %v against = %v", tr.WitnessesFor, tr.WitnessesAgainst)
	}
	if dmitri.OwesFavourTo("boris") {
		t.Fatal("favour should be settled")
	}
	wantCode(t, CallInFavour(g, "boris", "dmitri"), apperrors.CodeNoFavour)
	wantCode(t, CallInFavour(g, "elena", "dmitri"), apperrors.CodeWitnessIneligible)
}
