package utf8codec

import (
	"github.com/pchchv/utf8codec/internal/utf8"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// UTF8 is the UTF-8 encoding with the substitution policy of Codec.
//
// Its decoder and encoder both sanitize: bytes that Codec.Decode replaces,
// and decoded values that Codec.Encode replaces, come out as the encoding of
// U+FFFD, so the output is always valid UTF-8.
var UTF8 encoding.Encoding = utf8Encoding{}

type utf8Encoding struct{}

func (utf8Encoding) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: NewTransformer()}
}

func (utf8Encoding) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: NewTransformer()}
}

func (utf8Encoding) String() string {
	return "utf-8"
}

// NewTransformer returns a transformer that decodes its input with a Codec
// and re-encodes the resulting code points. A sequence left incomplete at
// the end of the input is replaced by U+FFFD.
func NewTransformer() transform.Transformer {
	return &sanitizer{}
}

type sanitizer struct {
	c Codec
}

func (t *sanitizer) Reset() {
	t.c.Reset()
}

func (t *sanitizer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	var buf [utf8.UTFMax]byte
	for nSrc < len(src) {
		saved := t.c
		cp, ok := t.c.step(src[nSrc])
		if ok {
			seq := utf8.Append(buf[:0], uint32(cp))
			if nDst+len(seq) > len(dst) {
				t.c = saved
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += copy(dst[nDst:], seq)
		}
		nSrc++
	}

	if atEOF && t.c.Pending() {
		seq := utf8.Append(buf[:0], utf8.RuneError)
		if nDst+len(seq) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], seq)
		t.c.Reset()
	}
	return nDst, nSrc, nil
}
