package state

import "time"

// TribunalPhase is the stage of a tribunal.
type TribunalPhase string

const (
	TribunalAccusation TribunalPhase = "accusation"
	TribunalDefence    TribunalPhase = "defence"
	TribunalWitnesses  TribunalPhase = "witnesses"
	TribunalJudgement  TribunalPhase = "judgement"
)

// Next returns the following phase. Judgement is final.
func (p TribunalPhase) Next() (TribunalPhase, bool) {
	switch p {
	case TribunalAccusation:
		return TribunalDefence, true
	case TribunalDefence:
		return TribunalWitnesses, true
	case TribunalWitnesses:
		return TribunalJudgement, true
	default:
		return p, false
	}
}

// Verdict is the outcome of a tribunal.
type Verdict string

const (
	VerdictGuilty               Verdict = "guilty"
	VerdictInnocent             Verdict = "innocent"
	VerdictBothGuilty           Verdict = "bothGuilty"
	VerdictInsufficientEvidence Verdict = "insufficientEvidence"
)

// Valid reports whether v is a known verdict.
func (v Verdict) Valid() bool {
	switch v {
	case VerdictGuilty, VerdictInnocent, VerdictBothGuilty, VerdictInsufficientEvidence:
		return true
	default:
		return false
	}
}

// WitnessSide is the side a witness testifies for.
type WitnessSide string

const (
	// WitnessFor supports the accuser.
	WitnessFor WitnessSide = "for"
	// WitnessAgainst supports the accused.
	WitnessAgainst WitnessSide = "against"
)

// Tribunal is the active accusation.
type Tribunal struct {
	AccuserID         string
	AccusedID         string
	Crime             string
	Phase             TribunalPhase
	WitnessesFor      []string
	WitnessesAgainst  []string
	RequiredWitnesses int
	// Anonymous tribunals are brought by the controller.
	Anonymous bool
	// AccuserImprisoned is set when a prisoner brought the accusation.
	AccuserImprisoned bool
	Round             int
}

func (t *Tribunal) clone() *Tribunal {
	if t == nil {
		return nil
	}
	out := *t
	out.WitnessesFor = append([]string(nil), t.WitnessesFor...)
	out.WitnessesAgainst = append([]string(nil), t.WitnessesAgainst...)
	return &out
}

// Denouncement is one accusation made this round.
type Denouncement struct {
	AccuserID string
	AccusedID string
	Crime     string
	Round     int
}

// Voucher is a sponsorship releasing a prisoner.
type Voucher struct {
	PrisonerID   string
	SponsorID    string
	ExpiresRound int
	Active       bool
}

// BribeReason names what a bribe is meant to buy.
type BribeReason string

const (
	BribeGulagEscape BribeReason = "gulagEscape"
	BribeFavour      BribeReason = "favour"
)

// Bribe is an offer queued for the controller.
type Bribe struct {
	ID          string
	PlayerID    string
	Amount      int
	Reason      BribeReason
	SubmittedAt time.Time
}

// TradeBundle is one side of a trade.
type TradeBundle struct {
	Money        int
	Properties   []int
	EscapeTokens int
	// Favours is the number of favours the giving side will owe.
	Favours int
}

// Empty reports whether the bundle transfers nothing.
func (b TradeBundle) Empty() bool {
	return b.Money == 0 && len(b.Properties) == 0 && b.EscapeTokens == 0 && b.Favours == 0
}

func (b TradeBundle) clone() TradeBundle {
	out := b
	out.Properties = append([]int(nil), b.Properties...)
	return out
}

// TradeOffer is a proposal awaiting the recipient.
type TradeOffer struct {
	ID      string
	FromID  string
	ToID    string
	Offer   TradeBundle
	Request TradeBundle
}

// Confession is a prisoner's written confession awaiting review.
type Confession struct {
	ID         string
	PrisonerID string
	Text       string
	Round      int
}

// FiveYearPlan is the timed community goal.
type FiveYearPlan struct {
	Target        int
	Collected     int
	Deadline      time.Time
	Contributions map[string]int
	StartedRound  int
}

// GreatPurge is the mass accusation vote.
type GreatPurge struct {
	// Votes maps voter to accused.
	Votes map[string]string
}

// EndVote is the unanimous vote to end the game.
type EndVote struct {
	InitiatorID string
	Votes       map[string]bool
}

// Statistics are reporting-only game counters.
type Statistics struct {
	Turns                 int `json:"turns"`
	Rounds                int `json:"rounds"`
	Denouncements         int `json:"denouncements"`
	Tribunals             int `json:"tribunals"`
	GuiltyVerdicts        int `json:"guiltyVerdicts"`
	InnocentVerdicts      int `json:"innocentVerdicts"`
	BothGuiltyVerdicts    int `json:"bothGuiltyVerdicts"`
	InsufficientEvidence  int `json:"insufficientEvidence"`
	Incarcerations        int `json:"incarcerations"`
	Eliminations          int `json:"eliminations"`
	PeakTreasury          int `json:"peakTreasury"`
	CardsDrawn            int `json:"cardsDrawn"`
	TradesCompleted       int `json:"tradesCompleted"`
	BribesAccepted        int `json:"bribesAccepted"`
	BribesRejected        int `json:"bribesRejected"`
	CommunistTestsPassed  int `json:"communistTestsPassed"`
	CommunistTestsFailed  int `json:"communistTestsFailed"`
	BreadlineRefusals     int `json:"breadlineRefusals"`
	FiveYearPlanSucceeded int `json:"fiveYearPlanSucceeded"`
	FiveYearPlanFailed    int `json:"fiveYearPlanFailed"`
}

func cloneStringMap[V any](m map[string]V) map[string]V {
	if m == nil {
		return nil
	}
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
