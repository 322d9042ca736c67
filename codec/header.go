package codec

import "fmt"

// Kind identifies the component family a code belongs to.
type Kind uint8

const (
	// KindMeta derives from normalized descriptive metadata.
	KindMeta Kind = 0x00
	// KindContentText derives from extracted plain text.
	KindContentText Kind = 0x10
	// KindContentImage derives from normalized pixel data.
	KindContentImage Kind = 0x12
	// KindContentAudio derives from an audio fingerprint.
	KindContentAudio Kind = 0x14
	// KindContentVideo is reserved; no generator produces it yet.
	KindContentVideo Kind = 0x16
	// KindContentMixed combines multiple content codes.
	KindContentMixed Kind = 0x18
	// KindData derives from the raw byte stream.
	KindData Kind = 0x20
	// KindInstance derives from the exact byte checksum tree.
	KindInstance Kind = 0x30
)

// Content reports whether the kind belongs to the content family, the
// only family that carries the partial flag.
func (k Kind) Content() bool {
	return k >= KindContentText && k <= KindContentMixed && k%2 == 0
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindMeta, KindData, KindInstance:
		return true
	}
	return k.Content()
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindMeta:
		return "meta"
	case KindContentText:
		return "content-text"
	case KindContentImage:
		return "content-image"
	case KindContentAudio:
		return "content-audio"
	case KindContentVideo:
		return "content-video"
	case KindContentMixed:
		return "content-mixed"
	case KindData:
		return "data"
	case KindInstance:
		return "instance"
	}
	return fmt.Sprintf("kind(0x%02x)", uint8(k))
}

// Header is the leading byte of a full component digest. It carries the
// kind and, for content kinds, the partial flag in the low bit. A partial
// code marks a component derived from an incomplete view of the asset.
type Header byte

// NewHeader builds the header byte for kind. Only content kinds accept
// the partial flag.
func NewHeader(kind Kind, partial bool) (Header, error) {
	if !kind.Valid() {
		return 0, &HeaderError{Byte: byte(kind)}
	}
	if !partial {
		return Header(kind), nil
	}
	if !kind.Content() {
		return 0, fmt.Errorf("%w: kind %s", ErrPartialNotAllowed, kind)
	}
	return Header(kind) | 1, nil
}

// ParseHeader validates a raw header byte.
func ParseHeader(b byte) (Header, error) {
	h := Header(b)
	if !h.Kind().Valid() {
		return 0, &HeaderError{Byte: b}
	}
	return h, nil
}

// Kind returns the component family, with the partial flag masked off.
func (h Header) Kind() Kind {
	k := Kind(h)
	if k >= KindContentText && k < KindData {
		k &^= 1
	}
	return k
}

// Partial reports whether the partial flag is set.
func (h Header) Partial() bool {
	return Kind(h) >= KindContentText && Kind(h) < KindData && h&1 == 1
}

// String implements fmt.Stringer.
func (h Header) String() string {
	if h.Partial() {
		return h.Kind().String() + " (partial)"
	}
	return h.Kind().String()
}
