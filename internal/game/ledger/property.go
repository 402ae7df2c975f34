// Package ledger is the economy of the game: custodianship, quotas,
// collectivization, mortgages, trades, debts, elimination and bribes.
package ledger

import (
	"fmt"

	"github.com/louisbranch/stalinopoly/internal/game/board"
	"github.com/louisbranch/stalinopoly/internal/game/state"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

// Quota computes what a lander owes the custodian of spaceID. It is zero for
// State-held or mortgaged spaces.
func Quota(g *state.Game, spaceID, diceTotal int) (int, error) {
	space, err := board.Get(spaceID)
	if err != nil || !space.Ownable() {
		return 0, state.PropertyNotFound(spaceID)
	}
	prop, err := g.Property(spaceID)
	if err != nil {
		return 0, err
	}
	if prop.StateOwned() || prop.Mortgaged {
		return 0, nil
	}
	switch space.Type {
	case board.TypeRailway:
		return board.RailwayQuota(g.HeldInGroup(prop.CustodianID, board.GroupRailway)), nil
	case board.TypeUtility:
		both := g.HeldInGroup(prop.CustodianID, board.GroupUtility) == len(board.GroupMembers(board.GroupUtility))
		return board.UtilityQuota(diceTotal, both), nil
	default:
		return board.PropertyQuota(space, prop.Collectivization), nil
	}
}

// Buy transfers a State-held space to playerID for its price.
func Buy(g *state.Game, playerID string, spaceID int) error {
	p, err := g.Competitor(playerID)
	if err != nil {
		return err
	}
	space, prop, err := ownable(g, spaceID)
	if err != nil {
		return err
	}
	if !prop.StateOwned() {
		return state.PlayerError(apperrors.CodeNotCustodian, p, "space already held", "Property", space.Name)
	}
	if p.Wealth < space.Price {
		return state.InsufficientFunds(p, space.Price)
	}
	g.PayTreasury(p, space.Price, false)
	prop.CustodianID = p.ID
	p.Stats.PropertiesBought++
	g.Logf(state.LogPurchase, p.ID, "log.property_bought", p.Name, space.Name, space.Price)
	return nil
}

// PayQuota pays the custodian what payer holds up to amount. Any shortfall
// becomes the payer's debt to the custodian. It returns the amount paid.
func PayQuota(g *state.Game, payerID, custodianID string, spaceID, amount int) (int, error) {
	payer, err := g.Competitor(payerID)
	if err != nil {
		return 0, err
	}
	custodian, err := g.Competitor(custodianID)
	if err != nil {
		return 0, err
	}
	space, err := board.Get(spaceID)
	if err != nil {
		return 0, state.PropertyNotFound(spaceID)
	}
	prop, err := g.Property(spaceID)
	if err != nil {
		return 0, err
	}
	if prop.CustodianID != custodian.ID {
		return 0, state.PlayerError(apperrors.CodeNotCustodian, custodian, "quota owed on a property no longer held", "Property", space.Name)
	}
	paid := g.Transfer(payer, custodian, amount, false)
	payer.Stats.QuotaPaid += paid
	custodian.Stats.QuotaReceived += paid
	g.Logf(state.LogPayment, payer.ID, "log.quota_paid", payer.Name, paid, custodian.Name, space.Name)
	if short := amount - paid; short > 0 {
		if err := CreateDebt(g, payer.ID, custodian.ID, short); err != nil {
			return paid, err
		}
	}
	return paid, nil
}

// Collectivize raises a property's collectivization level. The custodian
// must hold the whole colour group with nothing mortgaged.
func Collectivize(g *state.Game, playerID string, spaceID int) error {
	p, space, prop, err := heldProperty(g, playerID, spaceID)
	if err != nil {
		return err
	}
	if err := canCollectivize(g, p, space, prop); err != nil {
		return err
	}
	if p.Wealth < space.ImprovementCost {
		return state.InsufficientFunds(p, space.ImprovementCost)
	}
	g.PayTreasury(p, space.ImprovementCost, false)
	prop.Collectivization++
	g.Logf(state.LogPurchase, p.ID, "log.collectivized", p.Name, space.Name, prop.Collectivization)
	return nil
}

// CollectivizeFree raises the level of a held property without cost or group
// requirement.
func CollectivizeFree(g *state.Game, playerID string, spaceID int) error {
	p, space, prop, err := heldProperty(g, playerID, spaceID)
	if err != nil {
		return err
	}
	if space.Type != board.TypeProperty {
		return state.PlayerError(apperrors.CodeNotCollectivizable, p, "only properties can be collectivized", "Property", space.Name)
	}
	if prop.Mortgaged {
		return state.PlayerError(apperrors.CodePropertyMortgaged, p, "property is mortgaged", "Property", space.Name)
	}
	if prop.Collectivization >= g.Rules.MaxCollectivization {
		return state.PlayerError(apperrors.CodeCollectivizationCap, p, "collectivization at cap", "Property", space.Name)
	}
	prop.Collectivization++
	g.Logf(state.LogAbility, p.ID, "log.collectivized", p.Name, space.Name, prop.Collectivization)
	return nil
}

// Decollectivize lowers a level, refunding half its cost from the treasury.
func Decollectivize(g *state.Game, playerID string, spaceID int) error {
	p, space, prop, err := heldProperty(g, playerID, spaceID)
	if err != nil {
		return err
	}
	if prop.Collectivization <= 0 {
		return state.PlayerError(apperrors.CodeNoCollectivization, p, "nothing to decollectivize", "Property", space.Name)
	}
	prop.Collectivization--
	refund := g.WithdrawTreasury(p, space.ImprovementCost/2)
	g.Logf(state.LogPurchase, p.ID, "log.decollectivized", p.Name, space.Name, refund)
	return nil
}

// Mortgage pays half the price from the treasury and stops quota collection.
func Mortgage(g *state.Game, playerID string, spaceID int) error {
	p, space, prop, err := heldProperty(g, playerID, spaceID)
	if err != nil {
		return err
	}
	if prop.Mortgaged {
		return state.PlayerError(apperrors.CodePropertyMortgaged, p, "already mortgaged", "Property", space.Name)
	}
	if prop.Collectivization > 0 {
		return state.PlayerError(apperrors.CodePropertyCollectivized, p, "decollectivize first", "Property", space.Name)
	}
	prop.Mortgaged = true
	paid := g.WithdrawTreasury(p, space.MortgageValue())
	g.Logf(state.LogPurchase, p.ID, "log.mortgaged", p.Name, space.Name, paid)
	return nil
}

// UnmortgageCost is half the price plus interest.
func UnmortgageCost(g *state.Game, space board.Space) int {
	base := space.MortgageValue()
	return base + base*g.Rules.MortgageInterestPercent/100
}

// Unmortgage lifts a mortgage for its cost.
func Unmortgage(g *state.Game, playerID string, spaceID int) error {
	p, space, prop, err := heldProperty(g, playerID, spaceID)
	if err != nil {
		return err
	}
	if !prop.Mortgaged {
		return state.PlayerError(apperrors.CodePropertyNotMortgaged, p, "not mortgaged", "Property", space.Name)
	}
	cost := UnmortgageCost(g, space)
	if p.Wealth < cost {
		return state.InsufficientFunds(p, cost)
	}
	g.PayTreasury(p, cost, false)
	prop.Mortgaged = false
	g.Logf(state.LogPurchase, p.ID, "log.unmortgaged", p.Name, space.Name, cost)
	return nil
}

func canCollectivize(g *state.Game, p *state.Player, space board.Space, prop *state.Property) error {
	if space.Type != board.TypeProperty {
		return state.PlayerError(apperrors.CodeNotCollectivizable, p, "only properties can be collectivized", "Property", space.Name)
	}
	for _, id := range board.GroupMembers(space.Group) {
		member, err := g.Property(id)
		if err != nil {
			return err
		}
		if member.CustodianID != p.ID {
			return state.PlayerError(apperrors.CodeIncompleteGroup, p, "must hold the whole group", "Group", string(space.Group))
		}
		if member.Mortgaged {
			return state.PlayerError(apperrors.CodePropertyMortgaged, p, "group has a mortgaged property", "Property", board.MustGet(id).Name)
		}
	}
	if prop.Collectivization >= g.Rules.MaxCollectivization {
		return state.PlayerError(apperrors.CodeCollectivizationCap, p, "collectivization at cap", "Property", space.Name)
	}
	return nil
}

func ownable(g *state.Game, spaceID int) (board.Space, *state.Property, error) {
	space, err := board.Get(spaceID)
	if err != nil || !space.Ownable() {
		return board.Space{}, nil, state.PropertyNotFound(spaceID)
	}
	prop, err := g.Property(spaceID)
	if err != nil {
		return board.Space{}, nil, err
	}
	return space, prop, nil
}

func heldProperty(g *state.Game, playerID string, spaceID int) (*state.Player, board.Space, *state.Property, error) {
	p, err := g.Competitor(playerID)
	if err != nil {
		return nil, board.Space{}, nil, err
	}
	space, prop, err := ownable(g, spaceID)
	if err != nil {
		return nil, board.Space{}, nil, err
	}
	if prop.CustodianID != p.ID {
		return nil, board.Space{}, nil, state.PlayerError(apperrors.CodeNotCustodian, p,
			fmt.Sprintf("does not hold %d", spaceID), "Property", space.Name)
	}
	return p, space, prop, nil
}
