package engine

import (
	"github.com/louisbranch/stalinopoly/internal/game/gulag"
	"github.com/louisbranch/stalinopoly/internal/game/ledger"
	"github.com/louisbranch/stalinopoly/internal/game/state"
	"github.com/louisbranch/stalinopoly/internal/game/tribunal"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

// Collectivize raises the collectivization level of a held property.
func (e *Engine) Collectivize(playerID string, spaceID int) error {
	return e.play("Collectivize", playerID, func(g *state.Game) error {
		return ledger.Collectivize(g, playerID, spaceID)
	})
}

// Decollectivize lowers the collectivization level of a held property.
func (e *Engine) Decollectivize(playerID string, spaceID int) error {
	return e.play("Decollectivize", playerID, func(g *state.Game) error {
		return ledger.Decollectivize(g, playerID, spaceID)
	})
}

// MortgageProperty mortgages a held property to the treasury.
func (e *Engine) MortgageProperty(playerID string, spaceID int) error {
	return e.play("MortgageProperty", playerID, func(g *state.Game) error {
		return ledger.Mortgage(g, playerID, spaceID)
	})
}

// UnmortgageProperty lifts a mortgage.
func (e *Engine) UnmortgageProperty(playerID string, spaceID int) error {
	return e.play("UnmortgageProperty", playerID, func(g *state.Game) error {
		return ledger.Unmortgage(g, playerID, spaceID)
	})
}

// ProposeTrade queues a trade offer and returns its id.
func (e *Engine) ProposeTrade(fromID, toID string, offer, request state.TradeBundle) (string, error) {
	var tradeID string
	err := e.play("ProposeTrade", fromID, func(g *state.Game) error {
		var err error
		tradeID, err = ledger.ProposeTrade(g, fromID, toID, offer, request)
		return err
	})
	return tradeID, err
}

// RespondToTrade accepts or rejects a queued trade.
func (e *Engine) RespondToTrade(tradeID string, accept bool) error {
	return e.play("RespondToTrade", "", func(g *state.Game) error {
		return ledger.RespondToTrade(g, tradeID, accept)
	})
}

// CreateDebt records a debt, replacing any the debtor already carries.
func (e *Engine) CreateDebt(debtorID, creditorID string, amount int) error {
	return e.play("CreateDebt", debtorID, func(g *state.Game) error {
		return ledger.CreateDebt(g, debtorID, creditorID, amount)
	})
}

// PayDebt pays down the player's debt with what they hold.
func (e *Engine) PayDebt(playerID string) error {
	return e.play("PayDebt", playerID, func(g *state.Game) error {
		_, err := ledger.PayDebt(g, playerID)
		return err
	})
}

// CheckDebtStatus sends debtors past the grace period to the gulag. It also
// runs at every round boundary.
func (e *Engine) CheckDebtStatus() error {
	return e.play("CheckDebtStatus", "", func(g *state.Game) error {
		_, err := ledger.CheckDebtStatus(g)
		return err
	})
}

// CheckElimination eliminates the player if they are bankrupt and indebted.
// It reports whether they were eliminated.
func (e *Engine) CheckElimination(playerID string) (bool, error) {
	var eliminated bool
	err := e.play("CheckElimination", playerID, func(g *state.Game) error {
		if _, err := g.Player(playerID); err != nil {
			return err
		}
		eliminated = ledger.CheckElimination(g, playerID)
		return nil
	})
	return eliminated, err
}

// SubmitBribe queues a bribe for the controller and returns its id.
func (e *Engine) SubmitBribe(playerID string, amount int, reason state.BribeReason) (string, error) {
	var bribeID string
	err := e.play("SubmitBribe", playerID, func(g *state.Game) error {
		var err error
		bribeID, err = ledger.SubmitBribe(g, playerID, amount, reason, e.now())
		return err
	})
	return bribeID, err
}

// RespondToBribe is the controller's decision on a bribe.
func (e *Engine) RespondToBribe(bribeID string, accept bool) error {
	return e.play("RespondToBribe", "", func(g *state.Game) error {
		return ledger.RespondToBribe(g, bribeID, accept)
	})
}

// RequestVoucher asks the other comrades to sponsor a prisoner.
func (e *Engine) RequestVoucher(prisonerID string) error {
	return e.play("RequestVoucher", prisonerID, func(g *state.Game) error {
		p, err := g.Competitor(prisonerID)
		if err != nil {
			return err
		}
		if !p.InGulag {
			return state.PlayerError(apperrors.CodePlayerNotInGulag, p, "only prisoners request vouchers")
		}
		if err := requireIdle(g); err != nil {
			return err
		}
		g.Pending = state.VoucherRequest{PrisonerID: p.ID}
		g.Logf(state.LogGulag, p.ID, "log.voucher_requested", p.Name)
		return nil
	})
}

// SponsorPrisoner vouches for a prisoner, releasing them at once.
func (e *Engine) SponsorPrisoner(sponsorID, prisonerID string) error {
	return e.play("SponsorPrisoner", sponsorID, func(g *state.Game) error {
		if err := gulag.Sponsor(g, sponsorID, prisonerID); err != nil {
			return err
		}
		if v, ok := g.Pending.(state.VoucherRequest); ok && v.PrisonerID == prisonerID {
			g.Pending = nil
		}
		return nil
	})
}

// DeclineVoucherRequest closes an open voucher request unanswered.
func (e *Engine) DeclineVoucherRequest(prisonerID string) error {
	return e.play("DeclineVoucherRequest", prisonerID, func(g *state.Game) error {
		pending, err := expect[state.VoucherRequest](g)
		if err != nil {
			return err
		}
		p, err := g.Player(prisonerID)
		if err != nil {
			return err
		}
		if pending.PrisonerID != p.ID {
			return pendingMismatch(g, state.PendingVoucherRequest)
		}
		g.Pending = nil
		g.Logf(state.LogGulag, p.ID, "log.voucher_declined", p.Name)
		return nil
	})
}

// CallInFavour makes a player who owes the holder a favour testify on the
// holder's side of the running tribunal.
func (e *Engine) CallInFavour(holderID, debtorID string) error {
	return e.play("CallInFavour", holderID, func(g *state.Game) error {
		return tribunal.CallInFavour(g, holderID, debtorID)
	})
}
