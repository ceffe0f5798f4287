// Package utf8 implements the byte layout of UTF-8 sequences.
package utf8

import "math/bits"

const (
	tx = 0x80 // 1000 0000
	t2 = 0xC0 // 1100 0000
	t3 = 0xE0 // 1110 0000
	t4 = 0xF0 // 1111 0000
	t5 = 0xF8 // 1111 1000

	maskx = 0x3F // 0011 1111
	mask2 = 0x1F // 0001 1111
	mask3 = 0x0F // 0000 1111
	mask4 = 0x07 // 0000 0111

	rune1Max = 1<<7 - 1
	rune2Max = 1<<11 - 1
	rune3Max = 1<<16 - 1
	rune4Max = 1<<21 - 1
)

const (
	// MaxCodePoint is the largest Unicode scalar value.
	MaxCodePoint = 0x10FFFF
	// RuneError is the replacement character U+FFFD.
	RuneError = 0xFFFD
	// SurrogateMin and SurrogateMax bound the UTF-16 surrogate range.
	SurrogateMin = 0xD800
	SurrogateMax = 0xDFFF
	// UTFMax is the maximum number of bytes of an encoded code point.
	UTFMax = 4
)

// errorSeq is the encoding of RuneError.
var errorSeq = [3]byte{0xEF, 0xBF, 0xBD}

// IsSurrogate reports whether x lies in the surrogate range.
func IsSurrogate(x uint32) bool {
	return SurrogateMin <= x && x <= SurrogateMax
}

// Valid reports whether x is a Unicode scalar value.
func Valid(x uint32) bool {
	return x <= MaxCodePoint && !IsSurrogate(x)
}

// Len returns the number of bytes needed to encode x, selected by the
// number of significant bits of x:
//
//	<= 7 bits  -> 1 byte
//	<= 11 bits -> 2 bytes
//	<= 16 bits -> 3 bytes
//	<= 21 bits -> 4 bytes
//
// Len returns 0 if x needs more than 21 bits. It does not check for
// surrogates.
func Len(x uint32) int {
	switch n := bits.Len32(x); {
	case n <= 7:
		return 1
	case n <= 11:
		return 2
	case n <= 16:
		return 3
	case n <= 21:
		return 4
	}
	return 0
}

// EncodedLen returns the number of bytes Append writes for x, counting the
// replacement sequence for invalid values.
func EncodedLen(x uint32) int {
	if !Valid(x) {
		return len(errorSeq)
	}
	return Len(x)
}

// Append appends the UTF-8 encoding of x to dst and returns the extended
// buffer. Surrogates and values above MaxCodePoint are replaced by the
// encoding of RuneError.
func Append(dst []byte, x uint32) []byte {
	if !Valid(x) {
		return append(dst, errorSeq[:]...)
	}

	switch Len(x) {
	case 1:
		// 0xxxxxxx
		return append(dst, byte(x))
	case 2:
		// 110xxxxx 10xxxxxx
		return append(dst,
			t2|byte(x>>6)&mask2,
			tx|byte(x)&maskx)
	case 3:
		// 1110xxxx 10xxxxxx 10xxxxxx
		return append(dst,
			t3|byte(x>>12)&mask3,
			tx|byte(x>>6)&maskx,
			tx|byte(x)&maskx)
	default:
		// 11110xxx 10xxxxxx 10xxxxxx 10xxxxxx
		return append(dst,
			t4|byte(x>>18)&mask4,
			tx|byte(x>>12)&maskx,
			tx|byte(x>>6)&maskx,
			tx|byte(x)&maskx)
	}
}

// ContPrefix is the 2-bit prefix of a continuation byte; ContBits is the
// number of payload bits it carries.
const (
	ContPrefix = 0x2 // 10
	ContBits   = 6
)

// LeadPrefix returns the prefix bits of the lead byte of an n-byte sequence
// and the width of that prefix. The lead byte carries 8-width payload bits.
func LeadPrefix(n int) (prefix uint64, width uint8) {
	switch n {
	case 1:
		// 0
		return 0x0, 1
	case 2:
		// 110
		return 0x6, 3
	case 3:
		// 1110
		return 0xE, 4
	case 4:
		// 11110
		return 0x1E, 5
	}
	panic("utf8.LeadPrefix: invalid sequence length")
}
