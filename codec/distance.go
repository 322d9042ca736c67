package codec

import "math/bits"

// Distance returns the Hamming distance between the bodies of two
// encoded codes. Full component codes (13 symbols) are compared by body
// only: the header byte is dropped after decoding, so a full and a
// partial code of the same content compare as equal. Codes whose bodies
// differ in length return a LengthMismatchError.
func Distance(a, b string) (int, error) {
	da, err := Decode(a)
	if err != nil {
		return 0, err
	}
	db, err := Decode(b)
	if err != nil {
		return 0, err
	}
	if len(da)%8 == 1 && len(da) > 1 {
		da = da[1:]
	}
	if len(db)%8 == 1 && len(db) > 1 {
		db = db[1:]
	}
	return DistanceBytes(da, db)
}

// DistanceBytes returns the Hamming distance between two equal-length
// byte slices.
func DistanceBytes(a, b []byte) (int, error) {
	if len(a) != len(b) {
		return 0, &LengthMismatchError{LenA: len(a), LenB: len(b)}
	}
	n := 0
	for i := range a {
		n += bits.OnesCount8(a[i] ^ b[i])
	}
	return n, nil
}

// Distance64 returns the Hamming distance between two 64-bit digests.
func Distance64(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}
