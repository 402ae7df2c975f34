package tribunal

import (
	"slices"

	"github.com/louisbranch/stalinopoly/internal/game/state"
	apperrors "github.com/louisbranch/stalinopoly/internal/platform/errors"
)

// AddWitness records a witness on one side during the witnesses phase.
// Adding a witness already on that side does nothing.
func AddWitness(g *state.Game, witnessID string, side state.WitnessSide) error {
	t, err := witnessPhase(g)
	if err != nil {
		return err
	}
	w, err := g.Competitor(witnessID)
	if err != nil {
		return err
	}
	if w.ID == t.AccuserID || w.ID == t.AccusedID {
		return state.PlayerError(apperrors.CodeWitnessIneligible, w, "parties cannot testify")
	}
	own, other, err := sides(t, w, side)
	if err != nil {
		return err
	}
	if slices.Contains(*other, w.ID) {
		return state.PlayerError(apperrors.CodeWitnessBothSides, w, "already testifying for the other side")
	}
	if slices.Contains(*own, w.ID) {
		return nil
	}
	*own = append(*own, w.ID)
	g.Logf(state.LogTribunal, w.ID, "log.witness_added", w.Name, string(side))
	return nil
}

// RemoveWitness withdraws a witness from whichever side they testified on.
func RemoveWitness(g *state.Game, witnessID string) error {
	t, err := witnessPhase(g)
	if err != nil {
		return err
	}
	w, err := g.Player(witnessID)
	if err != nil {
		return err
	}
	for _, list := range []*[]string{&t.WitnessesFor, &t.WitnessesAgainst} {
		if i := slices.Index(*list, w.ID); i >= 0 {
			*list = slices.Delete(*list, i, i+1)
			g.Logf(state.LogTribunal, w.ID, "log.witness_removed", w.Name)
			return nil
		}
	}
	return state.PlayerError(apperrors.CodeWitnessIneligible, w, "not a witness")
}

// CallInFavour settles one favour the debtor owes to a tribunal party by
// making the debtor testify on that party's side.
func CallInFavour(g *state.Game, holderID, debtorID string) error {
	t, err := witnessPhase(g)
	if err != nil {
		return err
	}
	holder, err := g.Competitor(holderID)
	if err != nil {
		return err
	}
	debtor, err := g.Competitor(debtorID)
	if err != nil {
		return err
	}
	var side state.WitnessSide
	switch holder.ID {
	case t.AccuserID:
		side = state.WitnessFor
	case t.AccusedID:
		side = state.WitnessAgainst
	default:
		return state.PlayerError(apperrors.CodeWitnessIneligible, holder, "only tribunal parties call in favours")
	}
	if !debtor.OwesFavourTo(holder.ID) {
		return state.PlayerError(apperrors.CodeNoFavour, holder, "no favour owed", "Debtor", debtor.Name)
	}
	if debtor.ID == t.AccuserID || debtor.ID == t.AccusedID {
		return state.PlayerError(apperrors.CodeWitnessIneligible, debtor, "parties cannot testify")
	}
	own, other, err := sides(t, debtor, side)
	if err != nil {
		return err
	}
	if i := slices.Index(*other, debtor.ID); i >= 0 {
		*other = slices.Delete(*other, i, i+1)
	}
	if !slices.Contains(*own, debtor.ID) {
		*own = append(*own, debtor.ID)
	}
	debtor.SettleFavour(holder.ID)
	g.Logf(state.LogTribunal, holder.ID, "log.favour_called", holder.Name, debtor.Name)
	return nil
}

func witnessPhase(g *state.Game) (*state.Tribunal, error) {
	t := g.Tribunal
	if t == nil {
		return nil, errNoTribunal
	}
	if t.Phase != state.TribunalWitnesses {
		return nil, apperrors.WithMetadata(apperrors.CodeTribunalPhase, "witnesses are heard in the witnesses phase",
			map[string]string{"Phase": string(t.Phase)})
	}
	return t, nil
}

func sides(t *state.Tribunal, w *state.Player, side state.WitnessSide) (own, other *[]string, err error) {
	switch side {
	case state.WitnessFor:
		return &t.WitnessesFor, &t.WitnessesAgainst, nil
	case state.WitnessAgainst:
		return &t.WitnessesAgainst, &t.WitnessesFor, nil
	default:
		return nil, nil, state.PlayerError(apperrors.CodeWitnessIneligible, w, "unknown witness side", "Side", string(side))
	}
}
