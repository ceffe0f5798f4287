// Package utf8codec converts between sequences of Unicode code points and
// their UTF-8 encoding.
//
// Invalid input never fails: Encode replaces surrogates and values above
// U+10FFFF with the encoding of U+FFFD, and Decode replaces bytes that cannot
// start a sequence with U+FFFD. Decode keeps the state of a partially read
// sequence between calls, so a byte stream may be decoded in chunks of any
// size.
//
// The strict variants EncodeStrict and DecodeStrict report an *Error
// instead of substituting.
package utf8codec

import (
	"github.com/pchchv/utf8codec/internal/utf8"
)

const (
	// RuneError is the replacement character U+FFFD.
	RuneError CodePoint = utf8.RuneError
	// MaxCodePoint is the largest Unicode scalar value.
	MaxCodePoint CodePoint = utf8.MaxCodePoint
)

// CodePoint is an integer identifying one Unicode scalar value.
// A CodePoint is not validated at construction; validity is enforced when it
// is encoded.
type CodePoint uint32

// Valid reports whether cp is a Unicode scalar value, i.e. it is at most
// U+10FFFF and outside of the surrogate range U+D800 to U+DFFF.
func (cp CodePoint) Valid() bool {
	return utf8.Valid(uint32(cp))
}

// Codec holds the state of a multi-byte sequence in progress between calls
// to Decode. The zero value is an idle Codec ready to use.
//
// A Codec must not be used to decode concurrently; use one Codec per stream.
// Encode does not touch the decode state.
type Codec struct {
	// pendingValue holds the bits accumulated so far for a multi-byte
	// sequence in progress.
	pendingValue uint32
	// pendingRemaining is the number of continuation bytes still expected;
	// 0 when idle.
	pendingRemaining int
	// pendingLength is the number of continuation bytes of the sequence in
	// progress.
	pendingLength int
}

// New returns a new idle Codec.
func New() *Codec {
	return &Codec{}
}

// Reset discards any sequence in progress.
func (c *Codec) Reset() {
	*c = Codec{}
}

// Pending reports whether a multi-byte sequence is in progress.
func (c *Codec) Pending() bool {
	return c.pendingRemaining > 0
}

// AsciiToUnicode returns one code point per byte of ascii, with the value of
// that byte.
func AsciiToUnicode(ascii string) []CodePoint {
	codePoints := make([]CodePoint, len(ascii))
	for i := 0; i < len(ascii); i++ {
		codePoints[i] = CodePoint(ascii[i])
	}
	return codePoints
}

// EncodedLen returns the number of bytes Encode produces for cp.
func EncodedLen(cp CodePoint) int {
	return utf8.EncodedLen(uint32(cp))
}

// AppendEncode appends the UTF-8 encoding of codePoints to dst and returns
// the extended buffer.
func AppendEncode(dst []byte, codePoints ...CodePoint) []byte {
	for _, cp := range codePoints {
		dst = utf8.Append(dst, uint32(cp))
	}
	return dst
}

// Encode returns the UTF-8 encoding of codePoints. Each code point in the
// surrogate range or above U+10FFFF is encoded as U+FFFD (EF BF BD).
func (c *Codec) Encode(codePoints []CodePoint) []byte {
	n := 0
	for _, cp := range codePoints {
		n += EncodedLen(cp)
	}
	return AppendEncode(make([]byte, 0, n), codePoints...)
}

// Decode returns the code points completed by p. A sequence left incomplete
// at the end of p is retained and continued by the next call.
//
// A byte that cannot start a sequence (10xxxxxx or 11111xxx) yields U+FFFD.
// Within a sequence every byte is taken as a continuation byte without
// checking its prefix, and the completed value is not checked for
// surrogates or range; use DecodeStrict for that.
func (c *Codec) Decode(p []byte) []CodePoint {
	var codePoints []CodePoint
	for _, b := range p {
		if cp, ok := c.step(b); ok {
			codePoints = append(codePoints, cp)
		}
	}
	return codePoints
}

// DecodeString is like Decode, taking each byte of s as one input byte.
func (c *Codec) DecodeString(s string) []CodePoint {
	var codePoints []CodePoint
	for i := 0; i < len(s); i++ {
		if cp, ok := c.step(s[i]); ok {
			codePoints = append(codePoints, cp)
		}
	}
	return codePoints
}

// Flush ends the current sequence. If a sequence is in progress it is
// discarded and a single U+FFFD is returned; otherwise Flush returns nil.
func (c *Codec) Flush() []CodePoint {
	if !c.Pending() {
		return nil
	}
	c.Reset()
	return []CodePoint{RuneError}
}

// step feeds b to the decode state machine and returns the completed code
// point, if any.
func (c *Codec) step(b byte) (CodePoint, bool) {
	if c.pendingRemaining > 0 {
		c.pendingValue = utf8.Accumulate(c.pendingValue, b)
		c.pendingRemaining--
		if c.pendingRemaining > 0 {
			return 0, false
		}
		cp := CodePoint(c.pendingValue)
		c.pendingValue = 0
		return cp, true
	}

	n, x, ok := utf8.Lead(b)
	switch {
	case !ok:
		return RuneError, true
	case n == 0:
		return CodePoint(x), true
	}
	c.pendingValue = x
	c.pendingRemaining = n
	c.pendingLength = n
	return 0, false
}
