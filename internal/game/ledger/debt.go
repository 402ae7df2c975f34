package ledger

import (
	"github.com/louisbranch/stalinopoly/internal/game/gulag"
	"github.com/louisbranch/stalinopoly/internal/game/state"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

// CreateDebt records the single outstanding debt of a player, replacing any
// earlier one. creditorID is a player id or state.StateCreditor.
func CreateDebt(g *state.Game, debtorID, creditorID string, amount int) error {
	if amount <= 0 {
		return state.ErrInvalidAmount
	}
	debtor, err := g.Competitor(debtorID)
	if err != nil {
		return err
	}
	creditor := "the State"
	if creditorID != state.StateCreditor {
		c, err := g.Player(creditorID)
		if err != nil {
			return err
		}
		creditor = c.Name
	}
	debtor.Debt = &state.Debt{CreditorID: creditorID, Amount: amount, CreatedRound: g.Round}
	g.Logf(state.LogPayment, debtor.ID, "log.debt_created", debtor.Name, amount, creditor)
	return nil
}

// PayDebt pays down as much of the debt as the debtor holds and returns the
// amount paid. The debt is cleared once nothing remains.
func PayDebt(g *state.Game, debtorID string) (int, error) {
	debtor, err := g.Competitor(debtorID)
	if err != nil {
		return 0, err
	}
	if debtor.Debt == nil {
		return 0, state.PlayerError(apperrors.CodeNoDebt, debtor, "no outstanding debt")
	}
	if debtor.Wealth <= 0 {
		return 0, state.InsufficientFunds(debtor, debtor.Debt.Amount)
	}
	var paid int
	if debtor.Debt.CreditorID == state.StateCreditor {
		paid = g.PayTreasury(debtor, debtor.Debt.Amount, false)
	} else {
		creditor, err := g.Player(debtor.Debt.CreditorID)
		if err != nil {
			return 0, err
		}
		paid = g.Transfer(debtor, creditor, debtor.Debt.Amount, false)
	}
	debtor.Debt.Amount -= paid
	if debtor.Debt.Amount <= 0 {
		debtor.Debt = nil
		g.Logf(state.LogPayment, debtor.ID, "log.debt_settled", debtor.Name, paid)
		return paid, nil
	}
	g.Logf(state.LogPayment, debtor.ID, "log.debt_paid", debtor.Name, paid, debtor.Debt.Amount)
	return paid, nil
}

// CheckDebtStatus sends every debtor past the grace period to the gulag and
// clears their debt. It returns the ids of the defaulters.
func CheckDebtStatus(g *state.Game) ([]string, error) {
	var defaulted []string
	for _, p := range g.Competitors() {
		if p.Debt == nil || g.Round-p.Debt.CreatedRound <= g.Rules.DebtGraceRounds {
			continue
		}
		p.Debt = nil
		g.Logf(state.LogPayment, p.ID, "log.debt_defaulted", p.Name)
		if _, err := gulag.Sentence(g, p.ID, gulag.ReasonDebtDefault); err != nil {
			return defaulted, err
		}
		defaulted = append(defaulted, p.ID)
	}
	return defaulted, nil
}

// CheckElimination eliminates a player holding negative wealth and an
// outstanding debt. Negative wealth alone is not disqualifying. It reports
// whether the player was eliminated.
func CheckElimination(g *state.Game, playerID string) bool {
	p, err := g.Player(playerID)
	if err != nil || !p.Competing() {
		return false
	}
	if p.Wealth >= 0 || p.Debt == nil {
		return false
	}
	if !g.Eliminate(p.ID, state.EliminationBankruptcy) {
		return false
	}
	g.CheckGameEnd()
	return true
}
