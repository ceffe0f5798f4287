package utf8

// Lead classifies c0 as the first byte of a sequence:
//   - if c0 = 0xxxxxxx then n = 0 and x = c0
//   - if c0 = 110xxxxx then n = 1 and x holds the low 5 bits
//   - if c0 = 1110xxxx then n = 2 and x holds the low 4 bits
//   - if c0 = 11110xxx then n = 3 and x holds the low 3 bits
//
// n is the number of continuation bytes that follow. ok is false for
// continuation bytes (10xxxxxx) and for 11111xxx, neither of which can start
// a sequence.
func Lead(c0 byte) (n int, x uint32, ok bool) {
	switch {
	case c0 < tx:
		return 0, uint32(c0), true
	case c0 < t2:
		// unexpected continuation byte
		return 0, 0, false
	case c0 < t3:
		return 1, uint32(c0 & mask2), true
	case c0 < t4:
		return 2, uint32(c0 & mask3), true
	case c0 < t5:
		return 3, uint32(c0 & mask4), true
	}
	return 0, 0, false
}

// IsContinuation reports whether c matches 10xxxxxx.
func IsContinuation(c byte) bool {
	return c&^maskx == tx
}

// Accumulate shifts x left 6 bits and stores the low 6 bits of c.
// The prefix of c is not checked.
func Accumulate(x uint32, c byte) uint32 {
	return x<<ContBits | uint32(c&maskx)
}

// Overlong reports whether x, decoded from a sequence with n continuation
// bytes, could have been stored in fewer bytes.
func Overlong(x uint32, n int) bool {
	switch n {
	case 1:
		return x <= rune1Max
	case 2:
		return x <= rune2Max
	case 3:
		return x <= rune3Max
	}
	return false
}
