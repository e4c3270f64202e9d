package utils

import "math/rand"

// Shuffle returns a new slice with the elements of items in uniformly random
// order. The input slice is never mutated. Not cryptographically secure; only
// used to vary question and option order.
func Shuffle[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Sample returns up to n elements of items drawn without replacement, in
// random order. When n >= len(items) every element is returned.
func Sample[T any](items []T, n int) []T {
	shuffled := Shuffle(items)
	if n >= len(shuffled) {
		return shuffled
	}
	return shuffled[:n]
}
