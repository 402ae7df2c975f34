package state

// Clone returns a deep copy sharing no mutable memory with g.
func (g *Game) Clone() *Game {
	out := *g

	out.Players = make([]Player, len(g.Players))
	for i, p := range g.Players {
		out.Players[i] = p.clone()
	}
	out.Properties = append([]Property(nil), g.Properties...)
	out.Dice = append([]int(nil), g.Dice...)
	if g.Pending != nil {
		out.Pending = clonePending(g.Pending)
	}
	out.Tribunal = g.Tribunal.clone()
	out.Denouncements = append([]Denouncement(nil), g.Denouncements...)
	out.Vouchers = append([]Voucher(nil), g.Vouchers...)
	out.Bribes = append([]Bribe(nil), g.Bribes...)
	out.Trades = make([]TradeOffer, len(g.Trades))
	for i, t := range g.Trades {
		t.Offer = t.Offer.clone()
		t.Request = t.Request.clone()
		out.Trades[i] = t
	}
	out.Confessions = append([]Confession(nil), g.Confessions...)

	if g.Plan != nil {
		plan := *g.Plan
		plan.Contributions = cloneStringMap(g.Plan.Contributions)
		out.Plan = &plan
	}
	if g.Purge != nil {
		out.Purge = &GreatPurge{Votes: cloneStringMap(g.Purge.Votes)}
	}
	if g.EndVote != nil {
		out.EndVote = &EndVote{InitiatorID: g.EndVote.InitiatorID, Votes: cloneStringMap(g.EndVote.Votes)}
	}

	out.PartyDeck = g.PartyDeck.Clone()
	out.TestDeck = g.TestDeck.Clone()
	out.Log = append([]LogEntry(nil), g.Log...)
	out.NextSeq = cloneStringMap(g.NextSeq)
	return &out
}
