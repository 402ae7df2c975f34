package deck

import (
	"fmt"

	"github.com/louisbranch/stalinopoly/internal/game/dice"
)

// Deck is a draw pile and its discard pile of card ids.
type Deck struct {
	Draw    []string `json:"draw"`
	Discard []string `json:"discard"`
}

// New returns a deck holding ids in a random order.
func New(src dice.Source, ids []string) Deck {
	draw := append([]string(nil), ids...)
	dice.Shuffle(src, draw)
	return Deck{Draw: draw}
}

// Len is the number of cards across both piles.
func (d Deck) Len() int {
	return len(d.Draw) + len(d.Discard)
}

// DrawCard takes the top card and moves it to the discard pile. An empty
// draw pile is first refilled by shuffling the discard pile. ok is false only
// when both piles are empty.
func (d *Deck) DrawCard(src dice.Source) (id string, ok bool) {
	if len(d.Draw) == 0 {
		if len(d.Discard) == 0 {
			return "", false
		}
		d.Draw = d.Discard
		d.Discard = nil
		dice.Shuffle(src, d.Draw)
	}
	id = d.Draw[0]
	d.Draw = d.Draw[1:]
	d.Discard = append(d.Discard, id)
	return id, true
}

// Stack moves ids to the top of the draw pile in the given order. Ids not in
// the deck are reported and nothing changes.
func (d *Deck) Stack(ids ...string) error {
	held := map[string]int{}
	for _, id := range d.Draw {
		held[id]++
	}
	for _, id := range d.Discard {
		held[id]++
	}
	for _, id := range ids {
		if held[id] == 0 {
			return fmt.Errorf("card %q is not in the deck", id)
		}
		held[id]--
	}
	take := map[string]int{}
	for _, id := range ids {
		take[id]++
	}
	rest := make([]string, 0, d.Len())
	for _, pile := range [][]string{d.Draw, d.Discard} {
		for _, id := range pile {
			if take[id] > 0 {
				take[id]--
				continue
			}
			rest = append(rest, id)
		}
	}
	d.Draw = append(append([]string(nil), ids...), rest...)
	d.Discard = nil
	return nil
}

// Clone returns an independent copy.
func (d Deck) Clone() Deck {
	return Deck{
		Draw:    append([]string(nil), d.Draw...),
		Discard: append([]string(nil), d.Discard...),
	}
}
