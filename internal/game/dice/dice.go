// Package dice implements the randomness used by the game: six-sided die
// rolls and deck shuffles.
//
// Every roll and shuffle draws from an injected Source, so a game seeded with
// the same value and driven by the same operations replays identically.
package dice

import "math/rand"

// Sides is the number of faces on every game die.
const Sides = 6

// Source yields uniform integers in [0, n).
type Source interface {
	Intn(n int) int
}

// NewSource returns a deterministic source for seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Pair is a two-die movement roll.
type Pair struct {
	First  int
	Second int
}

// Total returns the sum of both dice.
func (p Pair) Total() int {
	return p.First + p.Second
}

// IsDouble reports whether both dice show the same face.
func (p Pair) IsDouble() bool {
	return p.First == p.Second
}

// RollPair rolls two six-sided dice.
func RollPair(src Source) Pair {
	return Pair{First: rollDie(src, Sides), Second: rollDie(src, Sides)}
}

// BestTwoOfThree rolls three six-sided dice and keeps the two highest, in
// the order they were rolled. All three faces are returned for logging.
func BestTwoOfThree(src Source) (Pair, [3]int) {
	var faces [3]int
	for i := range faces {
		faces[i] = rollDie(src, Sides)
	}
	drop := 0
	for i := 1; i < len(faces); i++ {
		if faces[i] < faces[drop] {
			drop = i
		}
	}
	kept := make([]int, 0, 2)
	for i, face := range faces {
		if i != drop {
			kept = append(kept, face)
		}
	}
	return Pair{First: kept[0], Second: kept[1]}, faces
}

// D6 rolls a single six-sided die.
func D6(src Source) int {
	return rollDie(src, Sides)
}

// Shuffle permutes items in place with a Fisher-Yates shuffle.
func Shuffle[T any](src Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

func rollDie(src Source, sides int) int {
	return src.Intn(sides) + 1
}
