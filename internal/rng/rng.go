// Package rng provides the seedable random source shared by every generation stage.
package rng

import (
	"math/rand"
	"time"
)

// Source is the uniform generator contract used by the builders.
// Next returns a value in [0, bound); NextDouble returns a value in [0, 1).
type Source interface {
	Next(bound int) int
	NextDouble() float64
}

// Rand is the default Source, backed by math/rand
type Rand struct {
	seed int64
	r    *rand.Rand
}

// New creates a Rand seeded with seed. A zero seed is replaced by a
// time-derived one; Seed reports the value actually used.
func New(seed int64) *Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Rand{seed: seed, r: rand.New(rand.NewSource(seed))}
}

// Seed returns the seed the generator was created with
func (r *Rand) Seed() int64 {
	return r.seed
}

// Next returns a uniform int in [0, bound). Non-positive bounds return 0.
func (r *Rand) Next(bound int) int {
	if bound <= 0 {
		return 0
	}
	return r.r.Intn(bound)
}

// NextDouble returns a uniform float64 in [0, 1)
func (r *Rand) NextDouble() float64 {
	return r.r.Float64()
}

// D100 rolls a 100-sided die (1-100), used for percentage checks
func D100(src Source) int {
	return src.Next(100) + 1
}

// Percent reports whether a roll of D100 falls within chance
func Percent(src Source, chance int) bool {
	return D100(src) <= chance
}

// Chance reports whether a uniform draw falls within probability p in [0, 1]
func Chance(src Source, p float64) bool {
	return src.NextDouble() <= p
}

// Weighted returns an index into weights chosen proportionally to its value,
// or -1 if the weights sum to zero. Negative weights count as zero.
func Weighted(src Source, weights []int) int {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return -1
	}

	d := src.Next(total) + 1
	acc := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		if d <= acc {
			return i
		}
	}
	return -1
}

// Shuffle permutes n elements in place with a Fisher-Yates walk
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := src.Next(i + 1)
		swap(i, j)
	}
}

// Pick returns a random element of items. It panics on an empty slice.
func Pick[T any](src Source, items []T) T {
	return items[src.Next(len(items))]
}
