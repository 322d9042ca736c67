package cdc

import (
	"errors"
	"io"
	"iter"
)

// Chunk is one content-defined chunk. Data is owned by the caller: it
// never aliases the chunker's internal buffer.
type Chunk struct {
	Offset uint64 // absolute offset in the stream
	Data   []byte
}

// Chunker cuts an io.Reader into content-defined chunks. It reads the
// stream exactly once and keeps at most one buffer in memory; dropping
// the chunker mid-stream abandons the rest of the input.
type Chunker struct {
	cfg    config
	gear   *Gear
	reader io.Reader

	buf     []byte
	cursor  int
	offset  uint64
	eof     bool
	emitted bool
}

// NewChunker creates a Chunker reading from r.
func NewChunker(r io.Reader, optFns ...Option) (*Chunker, error) {
	cfg := defaultConfig()
	for _, fn := range optFns {
		if err := fn(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	gear := defaultGear
	if cfg.seed != DefaultSeed {
		gear = NewGear(cfg.seed)
	}

	return &Chunker{
		cfg:    cfg,
		gear:   gear,
		reader: r,
		buf:    make([]byte, 0, cfg.bufferSize),
	}, nil
}

// fillBuffer tops the buffer up to a full maximum chunk, moving any
// unconsumed bytes to the front first. Read errors return unchanged.
func (c *Chunker) fillBuffer() error {
	n := len(c.buf) - c.cursor
	if n >= c.cfg.maxSize || c.eof {
		return nil
	}

	copy(c.buf[:n], c.buf[c.cursor:])
	c.buf = c.buf[:cap(c.buf)]
	c.cursor = 0

	m, err := io.ReadFull(c.reader, c.buf[n:])
	c.buf = c.buf[:n+m]
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		c.eof = true
		return nil
	}
	return err
}

// Next returns the next chunk, or io.EOF after the last one. An empty
// source yields exactly one empty chunk before io.EOF.
func (c *Chunker) Next() (Chunk, error) {
	if err := c.fillBuffer(); err != nil {
		return Chunk{}, err
	}

	avail := c.buf[c.cursor:]
	if len(avail) == 0 {
		if c.emitted {
			return Chunk{}, io.EOF
		}
		c.emitted = true
		return Chunk{Offset: 0, Data: []byte{}}, nil
	}

	n := c.gear.Boundary(avail, c.cfg.minSize, c.cfg.normSize, c.cfg.maxSize, c.cfg.maskTight, c.cfg.maskLoose)

	data := make([]byte, n)
	copy(data, avail[:n])
	chunk := Chunk{Offset: c.offset, Data: data}

	c.cursor += n
	c.offset += uint64(n)
	c.emitted = true

	return chunk, nil
}

// All returns a single-use iterator over the remaining chunks. A read
// error is yielded once and ends the sequence.
func (c *Chunker) All() iter.Seq2[Chunk, error] {
	return func(yield func(Chunk, error) bool) {
		for {
			chunk, err := c.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(chunk, err) || err != nil {
				return
			}
		}
	}
}

// Offset returns the absolute offset of the next chunk.
func (c *Chunker) Offset() uint64 {
	return c.offset
}

// Reset rewires the chunker to a new stream, clearing all state.
func (c *Chunker) Reset(r io.Reader) {
	c.reader = r
	c.buf = c.buf[:0]
	c.cursor = 0
	c.offset = 0
	c.eof = false
	c.emitted = false
}
