package gulag

import (
	"fmt"

	"github.com/louisbranch/stalinopoly/internal/game/state"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

// Sponsor releases a prisoner on a comrade's voucher. The voucher stays
// active for the configured number of rounds.
func Sponsor(g *state.Game, sponsorID, prisonerID string) error {
	sponsor, err := g.Competitor(sponsorID)
	if err != nil {
		return err
	}
	p, err := prisoner(g, prisonerID)
	if err != nil {
		return err
	}
	if sponsor.ID == p.ID || sponsor.InGulag {
		return state.PlayerError(apperrors.CodeSponsorIneligible, sponsor, "cannot sponsor", "Prisoner", p.Name)
	}
	if sponsor.VouchingFor != "" {
		if g.ActiveVoucherFor(sponsor.VouchingFor) != nil {
			return state.PlayerError(apperrors.CodeSponsorIneligible, sponsor, "already sponsoring", "Prisoner", p.Name)
		}
	}

	g.Vouchers = append(g.Vouchers, state.Voucher{
		PrisonerID:   p.ID,
		SponsorID:    sponsor.ID,
		ExpiresRound: g.Round + g.Rules.VoucherRounds,
		Active:       true,
	})
	sponsor.VouchingFor = p.ID
	p.VouchedBy = sponsor.ID
	g.Logf(state.LogGulag, sponsor.ID, "log.voucher_sponsored", sponsor.Name, p.Name, g.Round+g.Rules.VoucherRounds)
	return Release(g, p.ID)
}

// CheckVoucherConsequences sends the sponsor of prisonerID to the gulag when
// the prisoner commits a triggering offense under an active, unexpired
// voucher. The voucher is spent either way once triggered. A sponsor who
// has already left the game is skipped.
func CheckVoucherConsequences(g *state.Game, prisonerID string, reason Reason) error {
	if !reason.Triggering() {
		return nil
	}
	v := g.ActiveVoucherFor(prisonerID)
	if v == nil {
		return nil
	}
	v.Active = false
	sponsorID := v.SponsorID
	g.ClearSponsorship(sponsorID, prisonerID)

	sponsor, err := g.Player(sponsorID)
	if err != nil {
		return err
	}
	if !sponsor.Competing() {
		return nil
	}
	g.Logf(state.LogGulag, sponsor.ID, "log.voucher_consequence", sponsor.Name)
	if _, err := Sentence(g, sponsorID, ReasonVoucherConsequence); err != nil {
		return fmt.Errorf("voucher consequence for %s: %w", sponsorID, err)
	}
	return nil
}

// ExpireVouchers deactivates vouchers whose last round has passed.
func ExpireVouchers(g *state.Game) {
	for i := range g.Vouchers {
		v := &g.Vouchers[i]
		if v.Active && g.Round > v.ExpiresRound {
			v.Active = false
			g.ClearSponsorship(v.SponsorID, v.PrisonerID)
		}
	}
	kept := g.Vouchers[:0]
	for _, v := range g.Vouchers {
		if v.Active {
			kept = append(kept, v)
		}
	}
	g.Vouchers = kept
}
