package state

// Money moves between players, the treasury and nowhere. Debits to the
// treasury may push a player's wealth negative only when allowNegative is
// set; the treasury itself never goes below zero.

// PayTreasury moves up to amount from p into the treasury and returns what
// was paid.
func (g *Game) PayTreasury(p *Player, amount int, allowNegative bool) int {
	paid := debitAmount(p, amount, allowNegative)
	p.Wealth -= paid
	g.Treasury += paid
	g.notePeak()
	return paid
}

// WithdrawTreasury pays p up to amount from the treasury and returns what was
// paid.
func (g *Game) WithdrawTreasury(p *Player, amount int) int {
	if amount <= 0 {
		return 0
	}
	paid := min(amount, g.Treasury)
	g.Treasury -= paid
	p.Wealth += paid
	return paid
}

// Mint pays p amount without drawing on the treasury.
func (g *Game) Mint(p *Player, amount int) {
	if amount > 0 {
		p.Wealth += amount
	}
}

// Transfer moves up to amount from one player to another and returns what
// was moved.
func (g *Game) Transfer(from, to *Player, amount int, allowNegative bool) int {
	paid := debitAmount(from, amount, allowNegative)
	from.Wealth -= paid
	to.Wealth += paid
	return paid
}

func (g *Game) notePeak() {
	if g.Treasury > g.Stats.PeakTreasury {
		g.Stats.PeakTreasury = g.Treasury
	}
}

func debitAmount(p *Player, amount int, allowNegative bool) int {
	if amount <= 0 {
		return 0
	}
	if allowNegative {
		return amount
	}
	return max(0, min(amount, p.Wealth))
}
