// Package testutil provides deterministic test data for tests and
// benchmarks. All generators are seeded splitmix64 streams, so the same
// seed yields the same data on every run and platform.
package testutil

import (
	"encoding/binary"
	"strings"

	"github.com/hupe1980/iscc/internal/splitmix"
)

// Bytes returns n pseudo-random bytes derived from seed. The stream is
// the big-endian concatenation of a splitmix64 sequence.
func Bytes(seed uint64, n int) []byte {
	out := make([]byte, 0, n+8)
	state := seed

	for len(out) < n {
		out = binary.BigEndian.AppendUint64(out, splitmix.Next(&state))
	}

	return out[:n]
}

// Words returns n pseudo-random lowercase words derived from seed,
// joined by single spaces. Word lengths vary between 3 and 10 letters.
func Words(seed uint64, n int) string {
	var sb strings.Builder

	state := seed
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}

		v := splitmix.Next(&state)
		length := 3 + int(v%8)
		v /= 8

		for j := 0; j < length; j++ {
			sb.WriteByte('a' + byte(v%26))
			v /= 26
		}
	}

	return sb.String()
}
