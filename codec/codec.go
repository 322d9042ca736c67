// Package codec implements the fixed-length base58 representation of
// content codes and the Hamming distance between them.
//
// Unlike the base58 used by cryptocurrency address formats, this encoding
// has no variable-length leading-zero rule: every input length maps to
// exactly one output length, so codes stay aligned and comparable.
// Digests are split into one optional leading 1-byte group followed by
// 8-byte groups. A 1-byte group encodes as 2 symbols, an 8-byte group as
// 11 symbols; the 9-byte digest of a full component (header byte plus
// 8-byte body) therefore always encodes as 13 symbols.
package codec

import (
	"encoding/binary"
	"math/bits"
	"strings"
)

// Alphabet is the 58-symbol alphabet in digit order. The leading symbols
// avoid the 0/O/I/l lookalikes, so the first characters of well-known
// component kinds stay unambiguous in print.
const Alphabet = "C23456789rB1ZEFGTtYiAaVvMmHUPWXKDNbcdefghLjkSnopRqsJuQwxyz"

const (
	headCharLen = 2  // chars per 1-byte group
	bodyCharLen = 11 // chars per 8-byte group
)

// symbolIndex maps an ASCII byte to its alphabet digit, or -1.
var symbolIndex [128]int8

func init() {
	for i := range symbolIndex {
		symbolIndex[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		symbolIndex[Alphabet[i]] = int8(i)
	}
}

// Encode returns the fixed-length base58 representation of digest.
//
// The digest length must be 8·k or 8·k+1 for k ≥ 0 and must not be zero.
// Typical inputs are 1 byte (a bare header), 8 bytes (a component body)
// and 9 bytes (header plus body).
func Encode(digest []byte) (string, error) {
	if len(digest) == 0 {
		return "", ErrEmptyDigest
	}
	if len(digest)%8 > 1 {
		return "", &DigestLengthError{Len: len(digest)}
	}

	var sb strings.Builder
	rest := digest
	if len(rest)%8 == 1 {
		sb.Grow(headCharLen + len(rest)/8*bodyCharLen)
		encodeGroup(&sb, uint64(rest[0]), headCharLen)
		rest = rest[1:]
	} else {
		sb.Grow(len(rest) / 8 * bodyCharLen)
	}
	for len(rest) > 0 {
		encodeGroup(&sb, binary.BigEndian.Uint64(rest), bodyCharLen)
		rest = rest[8:]
	}

	return sb.String(), nil
}

// MustEncode is like Encode but panics on error. It simplifies fixtures
// and package-level variable initialization.
func MustEncode(digest []byte) string {
	s, err := Encode(digest)
	if err != nil {
		panic(err)
	}
	return s
}

func encodeGroup(sb *strings.Builder, value uint64, width int) {
	var digits [bodyCharLen]byte
	for i := width - 1; i >= 0; i-- {
		digits[i] = Alphabet[value%58]
		value /= 58
	}
	sb.Write(digits[:width])
}

// Decode is the exact inverse of Encode.
//
// The code length must be 11·k or 11·k+2 for k ≥ 0 and must not be zero.
// Decode rejects any string Encode cannot produce: unknown symbols, a
// 2-symbol group above 0xFF and an 11-symbol group above 2^64-1 all
// return a DecodeError, so Encode(Decode(s)) == s holds for every
// accepted s.
func Decode(code string) ([]byte, error) {
	if len(code) == 0 {
		return nil, &DecodeError{Code: code, Reason: "empty"}
	}
	if len(code)%11 > 2 || len(code)%11 == 1 {
		return nil, &DecodeError{Code: code, Reason: "invalid length"}
	}

	out := make([]byte, 0, len(code)/11*8+1)
	rest := code
	if len(rest)%11 == 2 {
		v, err := decodeGroup(code, rest[:headCharLen])
		if err != nil {
			return nil, err
		}
		if v > 0xFF {
			return nil, &DecodeError{Code: code, Reason: "head group out of range"}
		}
		out = append(out, byte(v))
		rest = rest[headCharLen:]
	}
	for len(rest) > 0 {
		v, err := decodeGroup(code, rest[:bodyCharLen])
		if err != nil {
			return nil, err
		}
		out = binary.BigEndian.AppendUint64(out, v)
		rest = rest[bodyCharLen:]
	}

	return out, nil
}

func decodeGroup(code, group string) (uint64, error) {
	var value uint64
	for i := 0; i < len(group); i++ {
		c := group[i]
		if c >= 128 || symbolIndex[c] < 0 {
			return 0, &DecodeError{Code: code, Reason: "symbol not in alphabet"}
		}
		hi, lo := bits.Mul64(value, 58)
		lo, carry := bits.Add64(lo, uint64(symbolIndex[c]), 0)
		if hi != 0 || carry != 0 {
			return 0, &DecodeError{Code: code, Reason: "group out of range"}
		}
		value = lo
	}
	return value, nil
}
