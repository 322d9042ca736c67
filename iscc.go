package iscc

import (
	"encoding/binary"

	"github.com/hupe1980/iscc/codec"
	"github.com/hupe1980/iscc/minhash"
	"github.com/hupe1980/iscc/simhash"
)

// digestSize is the body length of every component code in bytes.
const digestSize = 8

// Code is one derived component code.
type Code struct {
	// Code is the printable form: header plus body in fixed-length
	// base58, always 13 symbols.
	Code string

	// Digest is the 8-byte body without the header.
	Digest []byte

	// Header carries the component kind and the partial flag.
	Header codec.Header
}

// Kind returns the component family.
func (c *Code) Kind() codec.Kind {
	return c.Header.Kind()
}

// Partial reports whether the code derives from an incomplete view of
// the asset.
func (c *Code) Partial() bool {
	return c.Header.Partial()
}

// String implements fmt.Stringer.
func (c *Code) String() string {
	return c.Code
}

// Distance returns the Hamming distance to another code body. Kinds are
// not compared; distances across kinds carry no meaning.
func (c *Code) Distance(other *Code) (int, error) {
	return codec.DistanceBytes(c.Digest, other.Digest)
}

// Parse decodes a 13-symbol component code string.
func Parse(code string) (*Code, error) {
	raw, err := codec.Decode(code)
	if err != nil {
		return nil, err
	}
	if len(raw) != digestSize+1 {
		return nil, &codec.DecodeError{Code: code, Reason: "not a component code"}
	}
	header, err := codec.ParseHeader(raw[0])
	if err != nil {
		return nil, err
	}
	return &Code{Code: code, Digest: raw[1:], Header: header}, nil
}

// newCode assembles a component code from its kind and 8-byte body.
func newCode(kind codec.Kind, partial bool, digest []byte) (*Code, error) {
	header, err := codec.NewHeader(kind, partial)
	if err != nil {
		return nil, err
	}
	full := make([]byte, 0, digestSize+1)
	full = append(full, byte(header))
	full = append(full, digest...)
	encoded, err := codec.Encode(full)
	if err != nil {
		return nil, err
	}
	return &Code{Code: encoded, Digest: digest, Header: header}, nil
}

// Generator derives component codes. All methods are safe for
// concurrent use: a Generator carries configuration only.
type Generator struct {
	opts    options
	logger  *Logger
	metrics MetricsCollector
}

// New creates a Generator.
func New(optFns ...Option) (*Generator, error) {
	opts := applyOptions(optFns)
	if err := opts.validate(); err != nil {
		return nil, err
	}

	return &Generator{
		opts:    opts,
		logger:  opts.logger,
		metrics: opts.metricsCollector,
	}, nil
}

// codeStr extracts the printable form of a code that may be nil.
func codeStr(c *Code) string {
	if c == nil {
		return ""
	}
	return c.Code
}

// foldSignature compresses a minhash signature into an 8-byte body: the
// low bit of every slot packs into a bit string whose two halves merge
// with a bitwise or.
func foldSignature(sig minhash.Signature) ([]byte, error) {
	packed, err := minhash.Compress(sig, 1)
	if err != nil {
		return nil, err
	}
	half := len(packed) / 2
	out := make([]byte, half)
	for i := range out {
		out[i] = packed[i] | packed[half+i]
	}
	return out, nil
}

// hashDigests turns 64-bit features into the 8-byte big-endian digests
// the similarity hash consumes.
func hashDigests(h *simhash.Hasher, feats []uint64) error {
	var buf [8]byte
	for _, f := range feats {
		binary.BigEndian.PutUint64(buf[:], f)
		if err := h.Add(buf[:]); err != nil {
			return err
		}
	}
	return nil
}
