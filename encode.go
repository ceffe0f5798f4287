package utf8codec

import (
	"io"

	"github.com/icza/bitio"
	"github.com/pchchv/utf8codec/internal/utf8"
)

// Encoder writes the UTF-8 encoding of code points to an output stream.
// It applies the same substitution policy as Codec.Encode.
type Encoder struct {
	// Bit writer wrapping the underlying io.Writer.
	bw *bitio.Writer
	// Number of bytes written by the encoder.
	n int64
}

// NewEncoder returns a new Encoder writing to w.
//
// Note: the Close method of the encoder must be called when finished to
// flush pending writes. It does not close w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{bw: bitio.NewWriter(w)}
}

// Encode writes the encoding of codePoints.
func (enc *Encoder) Encode(codePoints ...CodePoint) error {
	for _, cp := range codePoints {
		if err := enc.encodeCodePoint(cp); err != nil {
			return err
		}
	}
	return nil
}

// Written returns the number of bytes written so far, including bytes not
// yet flushed.
func (enc *Encoder) Written() int64 {
	return enc.n
}

// Close flushes pending writes.
func (enc *Encoder) Close() error {
	return enc.bw.Close()
}

// encodeCodePoint writes the lead byte and continuation bytes of cp, field
// by field:
//
//	1 byte:  0xxxxxxx
//	2 bytes: 110xxxxx 10xxxxxx
//	3 bytes: 1110xxxx 10xxxxxx 10xxxxxx
//	4 bytes: 11110xxx 10xxxxxx 10xxxxxx 10xxxxxx
func (enc *Encoder) encodeCodePoint(cp CodePoint) error {
	x := uint64(cp)
	if !cp.Valid() {
		x = uint64(RuneError)
	}
	n := utf8.Len(uint32(x))

	// lead byte: prefix followed by the high payload bits
	prefix, width := utf8.LeadPrefix(n)
	if err := enc.bw.WriteBits(prefix, width); err != nil {
		return err
	}
	cont := uint8(n-1) * utf8.ContBits
	if err := enc.bw.WriteBits(x>>cont&(1<<(8-width)-1), 8-width); err != nil {
		return err
	}

	// continuation bytes: 10 followed by 6 payload bits each
	for i := n - 2; i >= 0; i-- {
		if err := enc.bw.WriteBits(utf8.ContPrefix, 2); err != nil {
			return err
		}
		if err := enc.bw.WriteBits(x>>(uint(i)*utf8.ContBits)&0x3F, utf8.ContBits); err != nil {
			return err
		}
	}

	enc.n += int64(n)
	return nil
}
