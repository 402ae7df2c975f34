package state

// PendingKind names a PendingAction variant.
type PendingKind string

const (
	PendingPropertyPurchase      PendingKind = "propertyPurchase"
	PendingQuotaPayment          PendingKind = "quotaPayment"
	PendingDrawPartyDirective    PendingKind = "drawPartyDirective"
	PendingDrawCommunistTest     PendingKind = "drawCommunistTest"
	PendingCommunistTestAnswer   PendingKind = "communistTestAnswer"
	PendingStoyPilfer            PendingKind = "stoyPilfer"
	PendingTradeResponse         PendingKind = "tradeResponse"
	PendingReviewConfession      PendingKind = "reviewConfession"
	PendingTribunal              PendingKind = "tribunal"
	PendingBribeStalin           PendingKind = "bribeStalin"
	PendingVoucherRequest        PendingKind = "voucherRequest"
	PendingHammerApproval        PendingKind = "hammerApproval"
	PendingMinistryApproval      PendingKind = "ministryApproval"
	PendingPravdaApproval        PendingKind = "pravdaApproval"
	PendingBreadlineContribution PendingKind = "breadlineContribution"
)

// PendingAction is the single external decision the game is waiting on.
// The set of variants is closed.
type PendingAction interface {
	Kind() PendingKind
	// OnTurn reports whether the decision belongs to the current player's
	// space resolution; resolving it ends the turn's resolving phase.
	OnTurn() bool
	pending()
}

type onTurn struct{}

func (onTurn) OnTurn() bool { return true }
func (onTurn) pending()     {}

type offTurn struct{}

func (offTurn) OnTurn() bool { return false }
func (offTurn) pending()     {}

// PropertyPurchase waits for the lander to buy or decline a State-held space.
type PropertyPurchase struct {
	onTurn
	PlayerID string
	SpaceID  int
}

func (PropertyPurchase) Kind() PendingKind { return PendingPropertyPurchase }

// QuotaPayment waits for the lander to pay the custodian.
type QuotaPayment struct {
	onTurn
	PayerID     string
	CustodianID string
	SpaceID     int
	Amount      int
}

func (QuotaPayment) Kind() PendingKind { return PendingQuotaPayment }

// DrawPartyDirective waits for the lander to draw a directive card.
type DrawPartyDirective struct {
	onTurn
	PlayerID string
}

func (DrawPartyDirective) Kind() PendingKind { return PendingDrawPartyDirective }

// DrawCommunistTest waits for the lander to draw a test question.
type DrawCommunistTest struct {
	onTurn
	PlayerID string
}

func (DrawCommunistTest) Kind() PendingKind { return PendingDrawCommunistTest }

// CommunistTestAnswer waits for the answer to a drawn question.
type CommunistTestAnswer struct {
	onTurn
	PlayerID   string
	QuestionID string
}

func (CommunistTestAnswer) Kind() PendingKind { return PendingCommunistTestAnswer }

// StoyPilfer waits for the lander on the Stoy to attempt or skip a pilfer.
type StoyPilfer struct {
	onTurn
	PlayerID string
}

func (StoyPilfer) Kind() PendingKind { return PendingStoyPilfer }

// BreadlineContribution waits for every listed player to contribute or refuse.
type BreadlineContribution struct {
	onTurn
	PlayerID  string
	Remaining []string
}

func (BreadlineContribution) Kind() PendingKind { return PendingBreadlineContribution }

// Awaiting reports whether playerID still has to answer.
func (b BreadlineContribution) Awaiting(playerID string) bool {
	for _, id := range b.Remaining {
		if id == playerID {
			return true
		}
	}
	return false
}

// TradeResponse waits for the recipient of a trade offer.
type TradeResponse struct {
	offTurn
	TradeID string
}

func (TradeResponse) Kind() PendingKind { return PendingTradeResponse }

// ReviewConfession waits for the controller to read a confession.
type ReviewConfession struct {
	offTurn
	ConfessionID string
}

func (ReviewConfession) Kind() PendingKind { return PendingReviewConfession }

// TribunalInProgress holds the game while a tribunal runs.
type TribunalInProgress struct {
	offTurn
}

func (TribunalInProgress) Kind() PendingKind { return PendingTribunal }

// BribeStalin waits for the controller to decide on a bribe.
type BribeStalin struct {
	offTurn
	BribeID string
}

func (BribeStalin) Kind() PendingKind { return PendingBribeStalin }

// VoucherRequest waits for a comrade to sponsor a prisoner.
type VoucherRequest struct {
	offTurn
	PrisonerID string
}

func (VoucherRequest) Kind() PendingKind { return PendingVoucherRequest }

// HammerApproval waits for the controller to approve an arrest.
type HammerApproval struct {
	offTurn
	PlayerID string
	TargetID string
}

func (HammerApproval) Kind() PendingKind { return PendingHammerApproval }

// MinistryApproval waits for the controller to approve a free
// collectivization.
type MinistryApproval struct {
	offTurn
	PlayerID string
	SpaceID  int
}

func (MinistryApproval) Kind() PendingKind { return PendingMinistryApproval }

// PravdaApproval waits for the controller to approve a Pravda story.
type PravdaApproval struct {
	offTurn
	PlayerID string
	TargetID string
	Headline string
}

func (PravdaApproval) Kind() PendingKind { return PendingPravdaApproval }

func clonePending(p PendingAction) PendingAction {
	if b, ok := p.(BreadlineContribution); ok {
		b.Remaining = append([]string(nil), b.Remaining...)
		return b
	}
	return p
}
