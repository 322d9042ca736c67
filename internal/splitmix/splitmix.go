// Package splitmix implements the splitmix64 pseudo-random sequence
// (Steele, Lea, Flood; the java.util.SplittableRandom generator).
//
// The sequences drawn here are part of the identifier contract: the
// chunker gear table and the minhash permutations are both derived from
// fixed seeds, so every value this package returns for a given seed must
// stay stable forever.
package splitmix

// Next advances state by the golden-ratio increment and returns the next
// value of the sequence.
func Next(state *uint64) uint64 {
	*state += 0x9E3779B97F4A7C15
	z := *state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Sequence returns the first n values of the sequence seeded with seed.
func Sequence(seed uint64, n int) []uint64 {
	out := make([]uint64, n)
	state := seed
	for i := range out {
		out[i] = Next(&state)
	}
	return out
}
