package state

// Player is one participant, including the controller.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Piece    Piece  `json:"piece,omitempty"`
	IsStalin bool   `json:"isStalin"`
	Rank     Rank   `json:"rank"`
	Wealth   int    `json:"wealth"`
	Position int    `json:"position"`

	InGulag     bool   `json:"inGulag"`
	GulagDays   int    `json:"gulagDays"`
	GulagReason string `json:"gulagReason,omitempty"`

	Eliminated        bool      `json:"eliminated"`
	EliminationReason string    `json:"eliminationReason,omitempty"`
	FinalStanding     *Standing `json:"finalStanding,omitempty"`

	LapsCompleted int       `json:"lapsCompleted"`
	EscapeTokens  int       `json:"escapeTokens"`
	Abilities     Abilities `json:"abilities"`
	// OwesFavoursTo lists one entry per favour this player owes, naming the
	// holder.
	OwesFavoursTo []string `json:"owesFavoursTo,omitempty"`
	Debt          *Debt    `json:"debt,omitempty"`

	VouchingFor    string `json:"vouchingFor,omitempty"`
	VouchedBy      string `json:"vouchedBy,omitempty"`
	UnderSuspicion bool   `json:"underSuspicion"`

	Stats PlayerStats `json:"stats"`
}

// Standing is the reporting snapshot taken when a player leaves the game.
type Standing struct {
	Rank       Rank `json:"rank"`
	Wealth     int  `json:"wealth"`
	Properties int  `json:"properties"`
	Round      int  `json:"round"`
}

// Abilities tracks per-lap, per-round and per-game piece ability use.
type Abilities struct {
	TankUsedThisLap     bool `json:"tankUsedThisLap"`
	SickleUsedThisLap   bool `json:"sickleUsedThisLap"`
	HammerUsed          bool `json:"hammerUsed"`
	StatueUsed          bool `json:"statueUsed"`
	PravdaUsedThisRound bool `json:"pravdaUsedThisRound"`
}

// ResetLap re-arms once-per-lap abilities.
func (a *Abilities) ResetLap() {
	a.TankUsedThisLap = false
	a.SickleUsedThisLap = false
}

// ResetRound re-arms once-per-round abilities.
func (a *Abilities) ResetRound() {
	a.PravdaUsedThisRound = false
}

// Debt is the single outstanding obligation a player may carry.
type Debt struct {
	CreditorID   string `json:"creditorId"`
	Amount       int    `json:"amount"`
	CreatedRound int    `json:"createdRound"`
}

// PlayerStats are reporting-only counters.
type PlayerStats struct {
	PropertiesBought int `json:"propertiesBought"`
	QuotaPaid        int `json:"quotaPaid"`
	QuotaReceived    int `json:"quotaReceived"`
	TimesImprisoned  int `json:"timesImprisoned"`
	Denouncements    int `json:"denouncements"`
	TribunalsWon     int `json:"tribunalsWon"`
	TribunalsLost    int `json:"tribunalsLost"`
	CardsDrawn       int `json:"cardsDrawn"`
}

// Competing reports whether the player still takes part in the rotation.
func (p *Player) Competing() bool {
	return !p.IsStalin && !p.Eliminated
}

// Promote raises the rank one step. It reports whether the rank changed.
func (p *Player) Promote() bool {
	if p.Rank >= RankInnerCircle {
		return false
	}
	p.Rank++
	return true
}

// Demote lowers the rank one step. It reports whether the rank changed.
func (p *Player) Demote() bool {
	if p.Rank <= RankProletariat {
		return false
	}
	p.Rank--
	return true
}

// OwesFavourTo reports whether the player owes holderID at least one favour.
func (p *Player) OwesFavourTo(holderID string) bool {
	for _, id := range p.OwesFavoursTo {
		if id == holderID {
			return true
		}
	}
	return false
}

// SettleFavour removes one favour owed to holderID.
func (p *Player) SettleFavour(holderID string) bool {
	for i, id := range p.OwesFavoursTo {
		if id == holderID {
			p.OwesFavoursTo = append(p.OwesFavoursTo[:i], p.OwesFavoursTo[i+1:]...)
			return true
		}
	}
	return false
}

func (p Player) clone() Player {
	out := p
	out.OwesFavoursTo = append([]string(nil), p.OwesFavoursTo...)
	if p.Debt != nil {
		d := *p.Debt
		out.Debt = &d
	}
	if p.FinalStanding != nil {
		s := *p.FinalStanding
		out.FinalStanding = &s
	}
	return out
}

// Property is the mutable state of an ownable space.
type Property struct {
	SpaceID int `json:"spaceId"`
	// CustodianID is empty while the State holds the property.
	CustodianID      string `json:"custodianId,omitempty"`
	Collectivization int    `json:"collectivization"`
	Mortgaged        bool   `json:"mortgaged"`
}

// StateOwned reports whether no player holds the property.
func (p *Property) StateOwned() bool {
	return p.CustodianID == ""
}

// ReturnToState clears custodianship and improvements.
func (p *Property) ReturnToState() {
	p.CustodianID = ""
	p.Collectivization = 0
	p.Mortgaged = false
}
