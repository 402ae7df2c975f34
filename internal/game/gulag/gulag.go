// Package gulag resolves incarceration: sentencing, the escape routes and
// the consequences that fall on a prisoner's sponsor.
package gulag

import (
	"fmt"

	"github.com/louisbranch/stalinopoly/internal/game/board"
	"github.com/louisbranch/stalinopoly/internal/game/state"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

// Reason names why a player was sent to the gulag.
type Reason string

const (
	ReasonDecree             Reason = "decree"
	ReasonEnemyOfTheState    Reason = "enemyOfTheState"
	ReasonThreeDoubles       Reason = "threeDoubles"
	ReasonPilferCaught       Reason = "pilferCaught"
	ReasonDebtDefault        Reason = "debtDefault"
	ReasonTribunal           Reason = "tribunal"
	ReasonDenouncedStalin    Reason = "denouncedStalin"
	ReasonPurge              Reason = "purge"
	ReasonPlanFailure        Reason = "planFailure"
	ReasonVoucherConsequence Reason = "voucherConsequence"
	ReasonDirective          Reason = "directive"
	ReasonHammer             Reason = "hammer"
)

// Triggering reports whether a sponsored prisoner committing this offense
// drags the sponsor down too.
func (r Reason) Triggering() bool {
	switch r {
	case ReasonTribunal, ReasonPilferCaught, ReasonDebtDefault, ReasonThreeDoubles, ReasonDenouncedStalin:
		return true
	default:
		return false
	}
}

// Sentence sends a competitor to the gulag: position on the Gulag corner,
// one rank lost, day counter reset and the sponsor check run. A player
// already incarcerated is not sentenced again. It reports whether the
// player was sentenced.
func Sentence(g *state.Game, playerID string, reason Reason) (bool, error) {
	p, err := g.Competitor(playerID)
	if err != nil {
		return false, err
	}
	if p.InGulag {
		return false, nil
	}
	p.InGulag = true
	p.GulagDays = 0
	p.GulagReason = string(reason)
	p.Position = board.Gulag
	p.Demote()
	p.Stats.TimesImprisoned++
	g.Stats.Incarcerations++
	g.Logf(state.LogGulag, p.ID, "log.gulag_sentenced", p.Name, string(reason))

	if err := CheckVoucherConsequences(g, p.ID, reason); err != nil {
		return true, err
	}
	return true, nil
}

// Release frees a prisoner. Rank is not restored.
func Release(g *state.Game, playerID string) error {
	p, err := g.Player(playerID)
	if err != nil {
		return err
	}
	if !p.InGulag {
		return notInGulag(p)
	}
	p.InGulag = false
	p.GulagDays = 0
	p.GulagReason = ""
	g.Logf(state.LogGulag, p.ID, "log.gulag_released", p.Name)
	return nil
}

// RequiredDouble is the minimum face a double must show to escape on the
// given sentence day. Zero means any double.
func RequiredDouble(day int) int {
	switch {
	case day <= 0:
		return 6
	case day >= 4:
		return 0
	default:
		return 6 - day
	}
}

// AttemptEscape resolves an escape roll. It reports whether the prisoner is
// released.
func AttemptEscape(g *state.Game, playerID string, first, second int) (bool, error) {
	p, err := prisoner(g, playerID)
	if err != nil {
		return false, err
	}
	required := RequiredDouble(p.GulagDays)
	g.Logf(state.LogGulag, p.ID, "log.gulag_escape_roll", p.Name, first, second)
	if first != second || first < required {
		g.Logf(state.LogGulag, p.ID, "log.gulag_escape_failed", p.Name)
		return false, nil
	}
	return true, Release(g, p.ID)
}

// PayRehabilitation buys release for the rehabilitation fee and one rank.
func PayRehabilitation(g *state.Game, playerID string) error {
	p, err := prisoner(g, playerID)
	if err != nil {
		return err
	}
	fee := g.Rules.RehabilitationFee
	if p.Wealth < fee {
		return state.InsufficientFunds(p, fee)
	}
	g.PayTreasury(p, fee, false)
	p.Demote()
	g.Logf(state.LogGulag, p.ID, "log.gulag_rehabilitated", p.Name, fee)
	return Release(g, p.ID)
}

// UseEscapeToken spends one escape token for release.
func UseEscapeToken(g *state.Game, playerID string) error {
	p, err := prisoner(g, playerID)
	if err != nil {
		return err
	}
	if p.EscapeTokens <= 0 {
		return state.PlayerError(apperrors.CodeNoEscapeToken, p, "no escape token")
	}
	p.EscapeTokens--
	g.Logf(state.LogGulag, p.ID, "log.gulag_token_used", p.Name)
	return Release(g, p.ID)
}

// ExtendSentence adds days served toward the timeout. Reaching the timeout
// eliminates the prisoner.
func ExtendSentence(g *state.Game, playerID string, days int) error {
	p, err := prisoner(g, playerID)
	if err != nil {
		return err
	}
	if days <= 0 {
		return nil
	}
	p.GulagDays += days
	g.Logf(state.LogGulag, p.ID, "log.gulag_extended", p.Name, days)
	checkTimeout(g, p)
	return nil
}

// AdvanceDay counts one day served. The day the counter reaches the timeout
// is fatal.
func AdvanceDay(g *state.Game, playerID string) error {
	p, err := prisoner(g, playerID)
	if err != nil {
		return err
	}
	p.GulagDays++
	checkTimeout(g, p)
	return nil
}

func checkTimeout(g *state.Game, p *state.Player) {
	if p.GulagDays < g.Rules.GulagTimeoutDays {
		return
	}
	g.Logf(state.LogGulag, p.ID, "log.gulag_timeout", p.Name, p.GulagDays)
	g.Eliminate(p.ID, state.EliminationGulagTimeout)
	g.CheckGameEnd()
}

func prisoner(g *state.Game, playerID string) (*state.Player, error) {
	p, err := g.Competitor(playerID)
	if err != nil {
		return nil, err
	}
	if !p.InGulag {
		return nil, notInGulag(p)
	}
	return p, nil
}

func notInGulag(p *state.Player) error {
	return state.PlayerError(apperrors.CodePlayerNotInGulag, p, fmt.Sprintf("%s is not in the gulag", p.ID))
}
