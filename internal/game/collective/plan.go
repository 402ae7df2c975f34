// Package collective runs the one-shot community mechanics: the five-year
// plan, the great purge and the unanimous end vote.
package collective

import (
	"fmt"
	"sort"
	"time"

	"github.com/louisbranch/stalinopoly/internal/game/gulag"
	"github.com/louisbranch/stalinopoly/internal/game/state"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

var errNoPlan = apperrors.New(apperrors.CodeNoPlan, "no five-year plan in progress")

// StartPlan announces the five-year plan. The deadline is advisory; the
// plan resolves only when ResolvePlan is called.
func StartPlan(g *state.Game, target int, deadline time.Time) error {
	if target <= 0 {
		return state.ErrInvalidAmount
	}
	if g.PlanUsed {
		return apperrors.New(apperrors.CodePlanUsed, "the five-year plan has already been used")
	}
	g.PlanUsed = true
	g.Plan = &state.FiveYearPlan{
		Target:        target,
		Deadline:      deadline,
		Contributions: map[string]int{},
		StartedRound:  g.Round,
	}
	g.Logf(state.LogCollective, "", "log.plan_started", target)
	return nil
}

// ContributeToPlan pays a contribution into the treasury toward the target.
func ContributeToPlan(g *state.Game, playerID string, amount int) error {
	if g.Plan == nil {
		return errNoPlan
	}
	p, err := g.Competitor(playerID)
	if err != nil {
		return err
	}
	if amount <= 0 {
		return state.ErrInvalidAmount
	}
	if p.Wealth < amount {
		return state.InsufficientFunds(p, amount)
	}
	g.PayTreasury(p, amount, false)
	g.Plan.Collected += amount
	g.Plan.Contributions[p.ID] += amount
	g.Logf(state.LogCollective, p.ID, "log.plan_contribution", p.Name, amount, g.Plan.Collected, g.Plan.Target)
	return nil
}

// ResolvePlan closes the plan. On success every competitor receives the
// success bonus; on failure the poorest free competitor is sent to the
// gulag. It reports whether the plan succeeded.
func ResolvePlan(g *state.Game) (bool, error) {
	plan := g.Plan
	if plan == nil {
		return false, errNoPlan
	}
	g.Plan = nil
	if plan.Collected >= plan.Target {
		g.Stats.FiveYearPlanSucceeded++
		for _, p := range g.Competitors() {
			g.Mint(p, g.Rules.PlanSuccessBonus)
		}
		g.Logf(state.LogCollective, "", "log.plan_succeeded", plan.Collected, g.Rules.PlanSuccessBonus)
		return true, nil
	}
	g.Stats.FiveYearPlanFailed++
	g.Logf(state.LogCollective, "", "log.plan_failed", plan.Collected, plan.Target)
	scapegoat := Poorest(g)
	if scapegoat == nil {
		return false, nil
	}
	if _, err := gulag.Sentence(g, scapegoat.ID, gulag.ReasonPlanFailure); err != nil {
		return false, fmt.Errorf("sentence scapegoat: %w", err)
	}
	return false, nil
}

// Poorest returns the free competitor with the least wealth, earliest seat
// first on ties, or nil when every competitor is imprisoned.
func Poorest(g *state.Game) *state.Player {
	var free []*state.Player
	for _, p := range g.Competitors() {
		if !p.InGulag {
			free = append(free, p)
		}
	}
	if len(free) == 0 {
		return nil
	}
	sort.SliceStable(free, func(i, j int) bool { return free[i].Wealth < free[j].Wealth })
	return free[0]
}
