package game

import "math/rand"

// The seeded shuffle drives the daily challenge: every player must derive
// the exact same permutation from the same seed, on every platform. The
// generator below (a small linear-congruential generator) and the
// last-to-first Fisher-Yates traversal are therefore a hard contract;
// changing either silently forks the daily puzzle.

const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// lcg is the deterministic random source for seeded shuffles.
type lcg struct {
	state int64
}

func newLCG(seed int64) *lcg {
	return &lcg{state: seed}
}

// next returns a value in [0, 1).
func (l *lcg) next() float64 {
	l.state = (l.state*lcgMultiplier + lcgIncrement) % lcgModulus
	if l.state < 0 {
		l.state += lcgModulus
	}
	return float64(l.state) / lcgModulus
}

// SeededShuffle returns a new slice holding a deterministic permutation of
// items for the given seed. The input is never mutated.
func SeededShuffle[T any](items []T, seed int64) []T {
	out := make([]T, len(items))
	copy(out, items)
	rng := newLCG(seed)
	for i := len(out) - 1; i > 0; i-- {
		j := int(rng.next() * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Shuffle returns a new slice holding a non-deterministic permutation of
// items. Used for per-player board layout, where reproducibility is
// explicitly not wanted. The input is never mutated.
func Shuffle[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
