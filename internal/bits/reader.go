// Package bits splits UTF-8 sequences into their bit fields.
package bits

import (
	"fmt"
	"io"
)

// Reader reads bit fields of arbitrary width from a byte stream.
// It buffers bits up to the next byte boundary.
type Reader struct {
	r   io.Reader // underlying reader
	buf [8]uint8  // temporary read buffer
	x   uint8     // between 0 and 7 buffered bits since previous read operations
	n   uint      // number of buffered bits in x
}

// NewReader returns a new Reader that reads bits from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Read reads and returns the next n bits, at most 64.
func (br *Reader) Read(n uint) (x uint64, err error) {
	if n == 0 {
		return 0, nil
	}

	if n > 64 {
		return 0, fmt.Errorf("bits.Reader.Read: invalid number of bits; n (%d) exceeds 64", n)
	}

	// serve the request from buffered bits if possible
	if br.n > 0 {
		switch {
		case br.n == n:
			br.n = 0
			return uint64(br.x), nil
		case br.n > n:
			br.n -= n
			mask := ^uint8(0) << br.n
			x = uint64(br.x&mask) >> br.n
			br.x &^= mask
			return x, nil
		}

		n -= br.n
		x = uint64(br.x)
		br.n = 0
	}

	nbytes := n / 8
	rem := n % 8
	if rem > 0 {
		nbytes++
	}

	if _, err = io.ReadFull(br.r, br.buf[:nbytes]); err != nil {
		return 0, err
	}

	for _, b := range br.buf[:nbytes-1] {
		x <<= 8
		x |= uint64(b)
	}

	// keep the unread low bits of the last byte
	b := br.buf[nbytes-1]
	if rem > 0 {
		x <<= rem
		br.n = 8 - rem
		mask := ^uint8(0) << br.n
		x |= uint64(b&mask) >> br.n
		br.x = b & ^mask
	} else {
		x <<= 8
		x |= uint64(b)
	}

	return x, nil
}
