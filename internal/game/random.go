package game

import "math/rand/v2"

// Random is the source used for shuffles and uniform choices.
// *rand.Rand from math/rand/v2 satisfies it.
type Random interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// WordSource hands out one word pair per game start
type WordSource interface {
	NextWordPair() (civilian, undercover string)
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int { return rand.IntN(n) }
func (globalRandom) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// DefaultRandom returns a Random backed by the goroutine-safe top-level
// functions of math/rand/v2
func DefaultRandom() Random {
	return globalRandom{}
}
