// Package board is the static catalog of the 40 board spaces.
package board

import "fmt"

// Size is the number of spaces around the board.
const Size = 40

// Fixed corner and landmark positions.
const (
	Stoy            = 0
	Gulag           = 10
	Breadline       = 20
	EnemyOfTheState = 30
)

// SpaceType classifies a space.
type SpaceType string

const (
	TypeCorner   SpaceType = "corner"
	TypeProperty SpaceType = "property"
	TypeRailway  SpaceType = "railway"
	TypeUtility  SpaceType = "utility"
	TypeTax      SpaceType = "tax"
	TypeCard     SpaceType = "card"
)

// CardKind selects the deck drawn on a card space.
type CardKind string

const (
	CardNone           CardKind = ""
	CardPartyDirective CardKind = "partyDirective"
	CardCommunistTest  CardKind = "communistTest"
)

// Group names a colour set of properties.
type Group string

const (
	GroupNone      Group = ""
	GroupBrown     Group = "brown"
	GroupLightBlue Group = "lightBlue"
	GroupPink      Group = "pink"
	GroupOrange    Group = "orange"
	GroupRed       Group = "red"
	GroupYellow    Group = "yellow"
	GroupGreen     Group = "green"
	GroupDarkBlue  Group = "darkBlue"
	GroupRailway   Group = "railway"
	GroupUtility   Group = "utility"
)

// Space is one board square.
type Space struct {
	ID              int
	Name            string
	Type            SpaceType
	Group           Group
	Price           int
	BaseQuota       int
	ImprovementCost int
	Card            CardKind
}

// Ownable reports whether a player can hold custodianship of the space.
func (s Space) Ownable() bool {
	switch s.Type {
	case TypeProperty, TypeRailway, TypeUtility:
		return true
	default:
		return false
	}
}

// MortgageValue is what the treasury pays for mortgaging the space.
func (s Space) MortgageValue() int {
	return s.Price / 2
}

// quotaMultipliers scale a property's base quota by collectivization level.
var quotaMultipliers = []int{1, 5, 15, 45, 80, 125}

const (
	railwayBaseQuota    = 25
	utilityMultiplier   = 4
	utilityBothMultiple = 10
)

var spaces = [Size]Space{
	{ID: 0, Name: "Stoy", Type: TypeCorner},
	property(1, "Magnitogorsk Barracks", GroupBrown, 60, 2, 50),
	{ID: 2, Name: "Party Directive", Type: TypeCard, Card: CardPartyDirective},
	property(3, "Norilsk Mine", GroupBrown, 60, 4, 50),
	{ID: 4, Name: "Income Requisition", Type: TypeTax},
	railway(5, "Trans-Siberian Railway"),
	property(6, "Kharkov Tractor Works", GroupLightBlue, 100, 6, 50),
	{ID: 7, Name: "Communist Test", Type: TypeCard, Card: CardCommunistTest},
	property(8, "Gorky Auto Plant", GroupLightBlue, 100, 6, 50),
	property(9, "Stalingrad Foundry", GroupLightBlue, 120, 8, 50),
	{ID: 10, Name: "Gulag", Type: TypeCorner},
	property(11, "Kiev Granary", GroupPink, 140, 10, 100),
	utility(12, "Kolyma Labour Camp"),
	property(13, "Minsk Kolkhoz", GroupPink, 140, 10, 100),
	property(14, "Tbilisi Vineyard", GroupPink, 160, 12, 100),
	railway(15, "Moscow-Leningrad Railway"),
	property(16, "Leningrad Shipyard", GroupOrange, 180, 14, 100),
	{ID: 17, Name: "Party Directive", Type: TypeCard, Card: CardPartyDirective},
	property(18, "Volga Canal", GroupOrange, 180, 14, 100),
	property(19, "Dnieper Dam", GroupOrange, 200, 16, 100),
	{ID: 20, Name: "Breadline", Type: TypeCorner},
	property(21, "Bolshoi Theatre", GroupRed, 220, 18, 150),
	{ID: 22, Name: "Communist Test", Type: TypeCard, Card: CardCommunistTest},
	property(23, "Moscow Metro", GroupRed, 220, 18, 150),
	property(24, "Lubyanka", GroupRed, 240, 20, 150),
	railway(25, "Turkestan-Siberia Railway"),
	property(26, "Pravda Offices", GroupYellow, 260, 22, 150),
	property(27, "Radio Moscow", GroupYellow, 260, 22, 150),
	utility(28, "Vorkuta Labour Camp"),
	property(29, "Writers' Union", GroupYellow, 280, 24, 150),
	{ID: 30, Name: "Enemy of the State", Type: TypeCorner},
	property(31, "Politburo Dacha", GroupGreen, 300, 26, 200),
	property(32, "Central Committee", GroupGreen, 300, 26, 200),
	{ID: 33, Name: "Party Directive", Type: TypeCard, Card: CardPartyDirective},
	property(34, "Council of Ministers", GroupGreen, 320, 28, 200),
	railway(35, "Baikal-Amur Railway"),
	{ID: 36, Name: "Communist Test", Type: TypeCard, Card: CardCommunistTest},
	property(37, "Red Square", GroupDarkBlue, 350, 35, 200),
	{ID: 38, Name: "Party Levy", Type: TypeTax},
	property(39, "The Kremlin", GroupDarkBlue, 400, 50, 200),
}

func property(id int, name string, group Group, price, base, improvement int) Space {
	return Space{ID: id, Name: name, Type: TypeProperty, Group: group, Price: price, BaseQuota: base, ImprovementCost: improvement}
}

func railway(id int, name string) Space {
	return Space{ID: id, Name: name, Type: TypeRailway, Group: GroupRailway, Price: 200}
}

func utility(id int, name string) Space {
	return Space{ID: id, Name: name, Type: TypeUtility, Group: GroupUtility, Price: 150}
}

// Get returns the space at id.
func Get(id int) (Space, error) {
	if id < 0 || id >= Size {
		return Space{}, fmt.Errorf("space %d out of range", id)
	}
	return spaces[id], nil
}

// MustGet returns the space at a position already normalized to the board.
func MustGet(id int) Space {
	s, err := Get(id)
	if err != nil {
		panic(err)
	}
	return s
}

// All returns every space in board order.
func All() []Space {
	out := make([]Space, Size)
	copy(out, spaces[:])
	return out
}

// Ownables returns the ids of every property, railway and utility space.
func Ownables() []int {
	var ids []int
	for _, s := range spaces {
		if s.Ownable() {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// GroupMembers returns the space ids in a group, in board order.
func GroupMembers(group Group) []int {
	if group == GroupNone {
		return nil
	}
	var ids []int
	for _, s := range spaces {
		if s.Group == group {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// Normalize wraps a position onto the board.
func Normalize(position int) int {
	return ((position % Size) + Size) % Size
}

// NearestRailway returns the first railway at or after position, moving
// forward around the board.
func NearestRailway(position int) int {
	for step := 0; step < Size; step++ {
		id := Normalize(position + step)
		if spaces[id].Type == TypeRailway {
			return id
		}
	}
	return position
}

// PropertyQuota is the quota for a property at the given collectivization
// level. Levels above the table use the last multiplier.
func PropertyQuota(s Space, level int) int {
	if level < 0 {
		level = 0
	}
	if level >= len(quotaMultipliers) {
		level = len(quotaMultipliers) - 1
	}
	return s.BaseQuota * quotaMultipliers[level]
}

// RailwayQuota is the quota when the custodian holds held railways.
func RailwayQuota(held int) int {
	if held <= 0 {
		return 0
	}
	return railwayBaseQuota << (held - 1)
}

// UtilityQuota is the quota for a labour camp given the last dice total.
func UtilityQuota(diceTotal int, bothHeld bool) int {
	if bothHeld {
		return diceTotal * utilityBothMultiple
	}
	return diceTotal * utilityMultiplier
}
