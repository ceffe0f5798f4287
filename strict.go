package utf8codec

import (
	"errors"
	"fmt"

	"github.com/pchchv/utf8codec/internal/utf8"
)

var (
	ErrInvalidLeadByte            = errors.New("invalid lead byte")                    // 11111xxx where a sequence should start
	ErrUnexpectedContinuationByte = errors.New("unexpected continuation byte")         // 10xxxxxx where a sequence should start
	ErrExpectedContinuationByte   = errors.New("expected continuation byte")           // non-10xxxxxx inside a sequence
	ErrCodePointOutOfRange        = errors.New("code point out of range")              // value above U+10FFFF
	ErrSurrogateCodePoint         = errors.New("surrogate code point")                 // value in U+D800..U+DFFF
	ErrOverlongEncoding           = errors.New("larger representation than necessary") // value fits a shorter sequence
)

// Error records a strict encode or decode failure.
type Error struct {
	// Op is the operation that failed, e.g. "DecodeStrict".
	Op string
	// Offset is the index of the offending code point (encode) or byte
	// (decode) within the input of the failing call.
	Offset int64
	// Value is the offending code point, or the offending byte when decoding
	// a malformed sequence.
	Value uint32
	// Err is one of the Err* sentinel values, or io.ErrUnexpectedEOF.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("utf8codec.%s: %v at offset %d (0x%X)", e.Op, e.Err, e.Offset, e.Value)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// validate returns the sentinel error describing why cp cannot be encoded,
// or nil.
func validate(cp CodePoint) error {
	switch {
	case cp > MaxCodePoint:
		return ErrCodePointOutOfRange
	case utf8.IsSurrogate(uint32(cp)):
		return ErrSurrogateCodePoint
	}
	return nil
}

// EncodeStrict is like Encode, but stops at the first code point that is a
// surrogate or above U+10FFFF. It returns the encoding of the code points
// preceding it together with an *Error.
func (c *Codec) EncodeStrict(codePoints []CodePoint) ([]byte, error) {
	var encoding []byte
	for i, cp := range codePoints {
		if err := validate(cp); err != nil {
			return encoding, &Error{Op: "EncodeStrict", Offset: int64(i), Value: uint32(cp), Err: err}
		}
		encoding = utf8.Append(encoding, uint32(cp))
	}
	return encoding, nil
}

// DecodeStrict is like Decode, but reports malformed input instead of
// substituting it:
//   - a continuation byte or 11111xxx where a sequence should start
//   - a byte other than 10xxxxxx inside a sequence
//   - a sequence longer than necessary for its value
//   - a surrogate or a value above U+10FFFF
//
// On error it returns the code points completed before the offending byte
// and an *Error, and the Codec returns to idle.
func (c *Codec) DecodeStrict(p []byte) ([]CodePoint, error) {
	var codePoints []CodePoint
	for i, b := range p {
		cp, ok, err := c.stepStrict(b)
		if err != nil {
			c.Reset()
			return codePoints, &Error{Op: "DecodeStrict", Offset: int64(i), Value: uint32(cp), Err: err}
		}
		if ok {
			codePoints = append(codePoints, cp)
		}
	}
	return codePoints, nil
}

// stepStrict is the checked counterpart of step. On error, the returned
// code point is the offending byte or decoded value.
func (c *Codec) stepStrict(b byte) (cp CodePoint, ok bool, err error) {
	if c.pendingRemaining == 0 {
		if _, _, valid := utf8.Lead(b); !valid {
			if utf8.IsContinuation(b) {
				return CodePoint(b), false, ErrUnexpectedContinuationByte
			}
			return CodePoint(b), false, ErrInvalidLeadByte
		}
		cp, ok = c.step(b)
		return cp, ok, nil
	}

	if !utf8.IsContinuation(b) {
		return CodePoint(b), false, ErrExpectedContinuationByte
	}

	n := c.pendingLength
	cp, ok = c.step(b)
	if !ok {
		return 0, false, nil
	}
	if utf8.Overlong(uint32(cp), n) {
		return cp, false, ErrOverlongEncoding
	}
	if err := validate(cp); err != nil {
		return cp, false, err
	}
	return cp, true, nil
}
