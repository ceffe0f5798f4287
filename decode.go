package utf8codec

import (
	"errors"
	"io"
)

// Options holds configurable parameters for a Decoder.
type Options struct {
	// BlockSize is the number of bytes to read at a time.
	//
	// Default is 4096.
	BlockSize int

	// Strict makes the Decoder stop at the first malformed sequence instead
	// of substituting U+FFFD, see Codec.DecodeStrict.
	Strict bool
}

// Decoder reads code points from a UTF-8 byte stream.
//
// Call Decoder.Next to advance to the next code point, and Decoder.CodePoint
// to retrieve it.
type Decoder struct {
	// Underlying io.Reader.
	r io.Reader
	// Decode state shared by all blocks read from r.
	c Codec
	// Configuration.
	o Options
	// Reusable read buffer of length BlockSize.
	block []byte
	// Code points decoded from the last block and not yet returned.
	queue []CodePoint
	// Current code point.
	cur CodePoint
	// Number of bytes read from r.
	offset int64
	// First error encountered; io.EOF at clean end of stream.
	err error
}

// NewDecoder returns a new Decoder reading from r.
func NewDecoder(r io.Reader, o Options) *Decoder {
	if o.BlockSize < 0 {
		panic("utf8codec.NewDecoder: BlockSize < 0")
	}
	if o.BlockSize == 0 {
		o.BlockSize = 4096
	}
	return &Decoder{
		r:     r,
		o:     o,
		block: make([]byte, o.BlockSize),
	}
}

// Next advances to the next code point, returning false at the end of the
// stream or on error. Call Err to tell the two apart.
func (dec *Decoder) Next() bool {
	for len(dec.queue) == 0 {
		if dec.err != nil {
			return false
		}
		dec.load()
	}
	dec.cur = dec.queue[0]
	dec.queue = dec.queue[1:]
	return true
}

// CodePoint returns the code point at the current stream position.
func (dec *Decoder) CodePoint() CodePoint {
	return dec.cur
}

// Offset returns the number of bytes read from the underlying stream.
func (dec *Decoder) Offset() int64 {
	return dec.offset
}

// Err returns the error that stopped the Decoder, or nil at a clean end of
// stream.
func (dec *Decoder) Err() error {
	if errors.Is(dec.err, io.EOF) {
		return nil
	}
	return dec.err
}

// ReadAll reads code points until the end of the stream.
func (dec *Decoder) ReadAll() ([]CodePoint, error) {
	var codePoints []CodePoint
	for dec.Next() {
		codePoints = append(codePoints, dec.cur)
	}
	return codePoints, dec.Err()
}

// load reads and decodes the next block of the byte stream.
func (dec *Decoder) load() {
	n, err := dec.r.Read(dec.block)
	if n > 0 {
		dec.decodeBlock(dec.block[:n])
		dec.offset += int64(n)
	}

	if err == nil || dec.err != nil {
		return
	}
	if errors.Is(err, io.EOF) {
		dec.flush()
		if dec.err != nil {
			return
		}
	}
	dec.err = err
}

// decodeBlock appends the code points completed by p to the queue.
func (dec *Decoder) decodeBlock(p []byte) {
	if !dec.o.Strict {
		dec.queue = append(dec.queue, dec.c.Decode(p)...)
		return
	}

	codePoints, err := dec.c.DecodeStrict(p)
	dec.queue = append(dec.queue, codePoints...)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.Op = "Decoder"
			e.Offset += dec.offset
		}
		dec.err = err
	}
}

// flush ends a sequence left incomplete at the end of the stream.
func (dec *Decoder) flush() {
	if !dec.c.Pending() {
		return
	}
	if dec.o.Strict {
		dec.c.Reset()
		dec.err = &Error{Op: "Decoder", Offset: dec.offset, Err: io.ErrUnexpectedEOF}
		return
	}
	dec.queue = append(dec.queue, dec.c.Flush()...)
}
