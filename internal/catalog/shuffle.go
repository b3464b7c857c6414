package catalog

// rng is a 32-bit linear congruential generator. Fast, non-cryptographic, and
// fully determined by its seed, which is all the pagination layer needs.
type rng struct {
	state uint32
}

func newRNG(seed uint32) *rng {
	// Scramble the raw seed so adjacent seeds diverge immediately.
	return &rng{state: seed*2654435761 + 1013904223}
}

func (r *rng) next() uint32 {
	r.state = r.state*1664525 + 1013904223
	return r.state
}

// intn returns a value in [0, n). n must be positive.
func (r *rng) intn(n int) int {
	return int(r.next() % uint32(n))
}

// shuffle returns a seeded Fisher-Yates permutation of items. The input slice
// is not modified. Identical seed and input always produce identical output.
func shuffle[T any](items []T, seed uint32) []T {
	out := make([]T, len(items))
	copy(out, items)

	r := newRNG(seed)
	for i := len(out) - 1; i > 0; i-- {
		j := r.intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
