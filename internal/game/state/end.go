package state

// Eliminate removes a competitor from play. Held properties return to the
// State, incarceration ends and a final standing is recorded. Eliminating the
// controller or an already eliminated player does nothing; the return value
// reports whether anything changed.
func (g *Game) Eliminate(playerID, reason string) bool {
	p, err := g.Player(playerID)
	if err != nil || p.IsStalin || p.Eliminated {
		return false
	}

	held := g.PropertiesOf(p.ID)
	p.FinalStanding = &Standing{
		Rank:       p.Rank,
		Wealth:     p.Wealth,
		Properties: len(held),
		Round:      g.Round,
	}
	for _, prop := range held {
		prop.ReturnToState()
	}
	p.Eliminated = true
	p.EliminationReason = reason
	p.InGulag = false
	p.GulagDays = 0
	p.GulagReason = ""
	p.Debt = nil
	p.UnderSuspicion = false

	for i := range g.Vouchers {
		v := &g.Vouchers[i]
		if v.Active && (v.PrisonerID == p.ID || v.SponsorID == p.ID) {
			v.Active = false
		}
	}
	g.clearSponsorLinks(p.ID)
	g.dropQueued(p.ID)

	g.Stats.Eliminations++
	g.Logf(LogElimination, p.ID, "log.eliminated", p.Name, reason)
	return true
}

// CheckGameEnd decides the game once at most one competitor remains. It
// reports whether the game ended.
func (g *Game) CheckGameEnd() bool {
	if g.Phase != PhasePlaying {
		return g.Phase == PhaseEnded
	}
	survivors := g.Competitors()
	switch len(survivors) {
	case 0:
		g.End(OutcomeController, g.StalinID)
		return true
	case 1:
		g.End(OutcomeSurvivor, survivors[0].ID)
		return true
	default:
		return false
	}
}

// End finishes the game and records a final standing for every remaining
// competitor.
func (g *Game) End(outcome Outcome, winnerID string) {
	if g.Phase == PhaseEnded {
		return
	}
	g.Phase = PhaseEnded
	g.Outcome = outcome
	g.WinnerID = winnerID
	g.Pending = nil
	g.Tribunal = nil
	for _, p := range g.Competitors() {
		p.FinalStanding = &Standing{
			Rank:       p.Rank,
			Wealth:     p.Wealth,
			Properties: len(g.PropertiesOf(p.ID)),
			Round:      g.Round,
		}
	}
	winner := ""
	if w, err := g.Player(winnerID); err == nil {
		winner = w.Name
	}
	switch outcome {
	case OutcomeSurvivor:
		g.Logf(LogSystem, winnerID, "log.game_won", winner)
	case OutcomeController:
		g.Logf(LogSystem, winnerID, "log.game_won_controller", winner)
	default:
		g.Logf(LogSystem, "", "log.game_ended_vote")
	}
}

func (g *Game) clearSponsorLinks(playerID string) {
	for i := range g.Players {
		p := &g.Players[i]
		if p.ID == playerID {
			p.VouchingFor, p.VouchedBy = "", ""
			continue
		}
		if p.VouchingFor == playerID {
			p.VouchingFor = ""
		}
		if p.VouchedBy == playerID {
			p.VouchedBy = ""
		}
	}
}

// ClearSponsorship removes the sponsorship links between a sponsor and a
// prisoner.
func (g *Game) ClearSponsorship(sponsorID, prisonerID string) {
	if s, err := g.Player(sponsorID); err == nil && s.VouchingFor == prisonerID {
		s.VouchingFor = ""
	}
	if p, err := g.Player(prisonerID); err == nil && p.VouchedBy == sponsorID {
		p.VouchedBy = ""
	}
}

func (g *Game) dropQueued(playerID string) {
	trades := g.Trades[:0]
	for _, t := range g.Trades {
		if t.FromID != playerID && t.ToID != playerID {
			trades = append(trades, t)
		}
	}
	g.Trades = trades
	bribes := g.Bribes[:0]
	for _, b := range g.Bribes {
		if b.PlayerID != playerID {
			bribes = append(bribes, b)
		}
	}
	g.Bribes = bribes
	confessions := g.Confessions[:0]
	for _, c := range g.Confessions {
		if c.PrisonerID != playerID {
			confessions = append(confessions, c)
		}
	}
	g.Confessions = confessions
}
