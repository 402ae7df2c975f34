// Package deck holds the party directive and communist test catalogs and the
// draw pile mechanics shared by both decks.
package deck

import "fmt"

// EffectKind selects how a directive card changes the game.
type EffectKind string

const (
	EffectMoveTo         EffectKind = "moveTo"
	EffectMoveBy         EffectKind = "moveBy"
	EffectMoney          EffectKind = "money"
	EffectGulag          EffectKind = "gulag"
	EffectEscapeToken    EffectKind = "escapeToken"
	EffectRank           EffectKind = "rank"
	EffectCollectFromAll EffectKind = "collectFromAll"
	EffectPayToAll       EffectKind = "payToAll"
	EffectPropertyTax    EffectKind = "propertyTax"
	EffectCustom         EffectKind = "custom"
)

// Custom card handlers.
const (
	HandlerNearestRailway      = "nearestRailway"
	HandlerAnonymousDenouncing = "anonymousDenunciation"
)

// Effect is the single effect a card applies to the drawing player.
type Effect struct {
	Kind EffectKind
	// Position is the target space for EffectMoveTo.
	Position int
	// Spaces is the signed distance for EffectMoveBy.
	Spaces int
	// Amount is the currency delta for EffectMoney, or the per-player
	// amount for collect/pay effects.
	Amount int
	// Steps is the signed rank change for EffectRank.
	Steps          int
	PerProperty    int
	PerImprovement int
	// QuotaMultiplier scales the quota owed after a custom move.
	QuotaMultiplier int
	Handler         string
}

// Card is one party directive.
type Card struct {
	ID     string
	Title  string
	Text   string
	Effect Effect
}

var directives = []Card{
	{ID: "report-to-stoy", Title: "Report to the Stoy", Text: "Advance to the Stoy.", Effect: Effect{Kind: EffectMoveTo, Position: 0}},
	{ID: "transfer-lubyanka", Title: "Summoned to the Lubyanka", Text: "Advance to the Lubyanka.", Effect: Effect{Kind: EffectMoveTo, Position: 24}},
	{ID: "summoned-kremlin", Title: "Summoned to the Kremlin", Text: "Advance to the Kremlin.", Effect: Effect{Kind: EffectMoveTo, Position: 39}},
	{ID: "bread-ration", Title: "Bread Ration Day", Text: "Advance to the Breadline.", Effect: Effect{Kind: EffectMoveTo, Position: 20}},
	{ID: "inspect-railways", Title: "Inspect the Railways", Text: "Advance to the nearest railway. If held by a comrade, pay twice the quota.", Effect: Effect{Kind: EffectCustom, Handler: HandlerNearestRailway, QuotaMultiplier: 2}},
	{ID: "tactical-retreat", Title: "Tactical Retreat", Text: "Go back three spaces.", Effect: Effect{Kind: EffectMoveBy, Spaces: -3}},
	{ID: "forward-march", Title: "Forward March", Text: "Advance three spaces.", Effect: Effect{Kind: EffectMoveBy, Spaces: 3}},
	{ID: "overfulfilled-quota", Title: "Quota Overfulfilled", Text: "The State rewards you with 150.", Effect: Effect{Kind: EffectMoney, Amount: 150}},
	{ID: "state-pension", Title: "State Pension", Text: "Collect 50 from the treasury.", Effect: Effect{Kind: EffectMoney, Amount: 50}},
	{ID: "hoarding-fine", Title: "Fined for Hoarding", Text: "Pay 100 to the State.", Effect: Effect{Kind: EffectMoney, Amount: -100}},
	{ID: "show-trial-costs", Title: "Show Trial Expenses", Text: "Pay 50 to the State.", Effect: Effect{Kind: EffectMoney, Amount: -50}},
	{ID: "foreign-radio", Title: "Caught Listening to Foreign Radio", Text: "Go directly to the Gulag.", Effect: Effect{Kind: EffectGulag}},
	{ID: "friend-in-nkvd", Title: "A Friend in the NKVD", Text: "Keep this favour to leave the Gulag.", Effect: Effect{Kind: EffectEscapeToken}},
	{ID: "loyalty-promotion", Title: "Promoted for Loyalty", Text: "Rise one rank.", Effect: Effect{Kind: EffectRank, Steps: 1}},
	{ID: "laxity-demotion", Title: "Demoted for Laxity", Text: "Fall one rank.", Effect: Effect{Kind: EffectRank, Steps: -1}},
	{ID: "name-day", Title: "Name Day Collection", Text: "Collect 25 from every comrade.", Effect: Effect{Kind: EffectCollectFromAll, Amount: 25}},
	{ID: "party-dues", Title: "Party Dues", Text: "Pay 25 to every comrade.", Effect: Effect{Kind: EffectPayToAll, Amount: 25}},
	{ID: "property-audit", Title: "Property Audit", Text: "Pay 25 per property and 100 per collectivization level.", Effect: Effect{Kind: EffectPropertyTax, PerProperty: 25, PerImprovement: 100}},
	{ID: "collectivization-levy", Title: "Collectivization Levy", Text: "Pay 40 per collectivization level.", Effect: Effect{Kind: EffectPropertyTax, PerImprovement: 40}},
	{ID: "anonymous-letter", Title: "Anonymous Letter", Text: "An anonymous accuser names you before a tribunal.", Effect: Effect{Kind: EffectCustom, Handler: HandlerAnonymousDenouncing}},
}

var directiveIndex = indexCards(directives)

func indexCards(cards []Card) map[string]Card {
	out := make(map[string]Card, len(cards))
	for _, c := range cards {
		out[c.ID] = c
	}
	return out
}

// Directives returns the full party directive catalog.
func Directives() []Card {
	out := make([]Card, len(directives))
	copy(out, directives)
	return out
}

// DirectiveIDs returns the ids of every party directive in catalog order.
func DirectiveIDs() []string {
	ids := make([]string, len(directives))
	for i, c := range directives {
		ids[i] = c.ID
	}
	return ids
}

// Directive looks up a card by id.
func Directive(id string) (Card, error) {
	c, ok := directiveIndex[id]
	if !ok {
		return Card{}, fmt.Errorf("unknown directive %q", id)
	}
	return c, nil
}

// PropertyTax is what e charges for the given number of held properties and
// total collectivization levels.
func PropertyTax(e Effect, properties, improvements int) int {
	return e.PerProperty*properties + e.PerImprovement*improvements
}
