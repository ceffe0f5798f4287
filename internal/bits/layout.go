package bits

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/pchchv/utf8codec/internal/utf8"
)

// Field is one byte of a UTF-8 sequence, split into its marker prefix and
// the payload bits it carries.
type Field struct {
	Prefix      uint64
	PrefixBits  uint
	Payload     uint64
	PayloadBits uint
}

// String returns the field as binary digits, e.g. "110|00011".
func (f Field) String() string {
	return fmt.Sprintf("%0*b|%0*b", int(f.PrefixBits), f.Prefix, int(f.PayloadBits), f.Payload)
}

// Fields splits the encoded sequences in p into their fields, one Field per
// byte. Each lead byte is read as
//
//	0       + 7 payload bits
//	110     + 5 payload bits
//	1110    + 4 payload bits
//	11110   + 3 payload bits
//
// and each continuation byte as 10 + 6 payload bits.
func Fields(p []byte) ([]Field, error) {
	br := NewReader(bytes.NewReader(p))
	var fields []Field
	for i := 0; i < len(p); {
		n, _, ok := utf8.Lead(p[i])
		if !ok {
			return fields, fmt.Errorf("bits.Fields: invalid lead byte 0x%02X at offset %d", p[i], i)
		}
		if i+n >= len(p) {
			return fields, errors.New("bits.Fields: truncated sequence")
		}

		width := uint(1)
		if n > 0 {
			width = uint(n) + 2
		}
		f, err := readField(br, width)
		if err != nil {
			return fields, err
		}
		fields = append(fields, f)

		for j := 1; j <= n; j++ {
			if !utf8.IsContinuation(p[i+j]) {
				return fields, fmt.Errorf("bits.Fields: expected continuation byte at offset %d", i+j)
			}
			f, err := readField(br, 2)
			if err != nil {
				return fields, err
			}
			fields = append(fields, f)
		}
		i += n + 1
	}
	return fields, nil
}

// Format returns the fields of p joined by spaces.
func Format(p []byte) (string, error) {
	fields, err := Fields(p)
	if err != nil {
		return "", err
	}
	s := make([]string, len(fields))
	for i, f := range fields {
		s[i] = f.String()
	}
	return strings.Join(s, " "), nil
}

// readField reads one byte from br as a prefix of width bits followed by
// its payload.
func readField(br *Reader, width uint) (f Field, err error) {
	f.PrefixBits = width
	f.PayloadBits = 8 - width
	if f.Prefix, err = br.Read(f.PrefixBits); err != nil {
		return f, err
	}
	if f.Payload, err = br.Read(f.PayloadBits); err != nil {
		return f, err
	}
	return f, nil
}
