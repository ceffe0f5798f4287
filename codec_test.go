package utf8codec_test

import (
	"bytes"
	"math/rand"
	"slices"
	"testing"

	"github.com/pchchv/utf8codec"
)

type cp = utf8codec.CodePoint

func TestEncode(t *testing.T) {
	tests := []struct {
		in   []cp
		want []byte
	}{
		// Hello
		{utf8codec.AsciiToUnicode("Hello"), []byte{0x48, 0x65, 0x6C, 0x6C, 0x6F}},
		// A≢Α.
		{[]cp{0x0041, 0x2262, 0x0391, 0x002E}, []byte{0x41, 0xE2, 0x89, 0xA2, 0xCE, 0x91, 0x2E}},
		// 日本語
		{[]cp{0x65E5, 0x672C, 0x8A9E}, []byte{0xE6, 0x97, 0xA5, 0xE6, 0x9C, 0xAC, 0xE8, 0xAA, 0x9E}},
		// 𣎴
		{[]cp{0x233B4}, []byte{0xF0, 0xA3, 0x8E, 0xB4}},
		// lone surrogate
		{[]cp{0xD800}, []byte{0xEF, 0xBF, 0xBD}},
		{[]cp{0x41, 0xDFFF, 0x110000, 0x42}, []byte{0x41, 0xEF, 0xBF, 0xBD, 0xEF, 0xBF, 0xBD, 0x42}},
		{nil, []byte{}},
	}

	codec := utf8codec.New()
	for i, test := range tests {
		got := codec.Encode(test.in)
		if !bytes.Equal(got, test.want) {
			t.Errorf("i=%d; encoding of %U, expected % X, got % X", i, test.in, test.want, got)
		}
	}
}

func TestEncodeLength(t *testing.T) {
	tests := []struct {
		lo, hi cp
		n      int
	}{
		{0x0, 0x7F, 1},
		{0x80, 0x7FF, 2},
		{0x800, 0xD7FF, 3},
		{0xD800, 0xDFFF, 3},
		{0xE000, 0xFFFF, 3},
		{0x10000, 0x10FFFF, 4},
		{0x110000, 0x11FFFF, 3},
	}

	codec := utf8codec.New()
	for i, test := range tests {
		for _, x := range []cp{test.lo, (test.lo + test.hi) / 2, test.hi} {
			if got := len(codec.Encode([]cp{x})); got != test.n {
				t.Errorf("i=%d; length of %U, expected %d, got %d", i, x, test.n, got)
			}
			if got := utf8codec.EncodedLen(x); got != test.n {
				t.Errorf("i=%d; EncodedLen(%U), expected %d, got %d", i, x, test.n, got)
			}
		}
	}
}

func TestEncodeReplacementIdempotent(t *testing.T) {
	codec := utf8codec.New()
	want := []byte{0xEF, 0xBF, 0xBD}
	for i, in := range [][]cp{{utf8codec.RuneError}, {0xD800}, {0x7FFFFFFF}} {
		got := codec.Encode(in)
		if !bytes.Equal(got, want) {
			t.Errorf("i=%d; expected % X, got % X", i, want, got)
		}
		again := codec.Encode(codec.Decode(got))
		if !bytes.Equal(again, want) {
			t.Errorf("i=%d; re-encoding, expected % X, got % X", i, want, again)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	var in []cp
	for x := cp(0); x <= utf8codec.MaxCodePoint; x++ {
		if x.Valid() {
			in = append(in, x)
		}
	}

	codec := utf8codec.New()
	got := codec.Decode(codec.Encode(in))
	if !slices.Equal(got, in) {
		t.Fatalf("round trip mismatch; encoded %d code points, decoded %d", len(in), len(got))
	}
	if codec.Pending() {
		t.Errorf("codec left mid-sequence after round trip")
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		in   []byte
		want []cp
	}{
		{[]byte("Hello"), []cp{0x48, 0x65, 0x6C, 0x6C, 0x6F}},
		{[]byte{0x41, 0xE2, 0x89, 0xA2, 0xCE, 0x91, 0x2E}, []cp{0x0041, 0x2262, 0x0391, 0x002E}},
		{[]byte{0xF0, 0xA3, 0x8E, 0xB4}, []cp{0x233B4}},
		// stray continuation byte and invalid lead bytes
		{[]byte{0x80}, []cp{0xFFFD}},
		{[]byte{0xF8, 0xFF, 0x41}, []cp{0xFFFD, 0xFFFD, 0x41}},
		// no resynchronization: bytes after a lead byte are taken as
		// continuation bytes whatever their prefix
		{[]byte{0xE6, 0x41, 0x41}, []cp{0x6041}},
		{[]byte{0xC3, 0xC3, 0xA9}, []cp{0xC3, 0xFFFD}},
		// values are not checked on decode
		{[]byte{0xED, 0xA0, 0x80}, []cp{0xD800}},
		{[]byte{0xF4, 0x90, 0x80, 0x80}, []cp{0x110000}},
		{[]byte{0xC0, 0x80}, []cp{0x0}},
		// incomplete sequence is retained
		{[]byte{0x41, 0xE6, 0x97}, []cp{0x41}},
	}

	for i, test := range tests {
		got := utf8codec.New().Decode(test.in)
		if !slices.Equal(got, test.want) {
			t.Errorf("i=%d; decoding of % X, expected %U, got %U", i, test.in, test.want, got)
		}
	}
}

func TestDecodeSplit(t *testing.T) {
	codec := utf8codec.New()
	chunks := [][]byte{{0xE6}, {0x97}, {0xA5}}
	want := [][]cp{nil, nil, {0x65E5}}
	for i, chunk := range chunks {
		got := codec.Decode(chunk)
		if !slices.Equal(got, want[i]) {
			t.Errorf("i=%d; expected %U, got %U", i, want[i], got)
		}
		if pending := i < 2; codec.Pending() != pending {
			t.Errorf("i=%d; expected Pending() = %v", i, pending)
		}
	}
}

func TestDecodeString(t *testing.T) {
	codec := utf8codec.New()
	got := codec.DecodeString("日本語")
	want := []cp{0x65E5, 0x672C, 0x8A9E}
	if !slices.Equal(got, want) {
		t.Errorf("expected %U, got %U", want, got)
	}

	got = codec.DecodeString("\xff\xe6\x97")
	got = append(got, codec.DecodeString("\xa5")...)
	want = []cp{0xFFFD, 0x65E5}
	if !slices.Equal(got, want) {
		t.Errorf("expected %U, got %U", want, got)
	}
}

// decodeChunks decodes the chunks of p split at the given offsets with one
// codec.
func decodeChunks(p []byte, cuts []int) []cp {
	codec := utf8codec.New()
	var got []cp
	prev := 0
	for _, cut := range cuts {
		got = append(got, codec.Decode(p[prev:cut])...)
		prev = cut
	}
	return append(got, codec.Decode(p[prev:])...)
}

func TestDecodeChunkInvariance(t *testing.T) {
	// A 日 <FF> <80> 𣎴 <C3 at end>
	input := []byte{0x41, 0xE6, 0x97, 0xA5, 0xFF, 0x80, 0xF0, 0xA3, 0x8E, 0xB4, 0xC3}
	want := utf8codec.New().Decode(input)

	// every partition into consecutive non-empty chunks
	n := len(input) - 1
	for mask := 0; mask < 1<<n; mask++ {
		var cuts []int
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				cuts = append(cuts, i+1)
			}
		}
		if got := decodeChunks(input, cuts); !slices.Equal(got, want) {
			t.Fatalf("cuts %v; expected %U, got %U", cuts, want, got)
		}
	}
}

func TestDecodeRandomChunks(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for iter := 0; iter < 200; iter++ {
		input := make([]byte, rnd.Intn(64))
		rnd.Read(input)
		want := utf8codec.New().Decode(input)

		var cuts []int
		for i := 1; i < len(input); i++ {
			if rnd.Intn(3) == 0 {
				cuts = append(cuts, i)
			}
		}
		if got := decodeChunks(input, cuts); !slices.Equal(got, want) {
			t.Fatalf("iter=%d; input % X, cuts %v; expected %U, got %U", iter, input, cuts, want, got)
		}
	}
}

func TestFlush(t *testing.T) {
	codec := utf8codec.New()
	if got := codec.Flush(); got != nil {
		t.Errorf("idle flush, expected nil, got %U", got)
	}

	codec.Decode([]byte{0xF0, 0xA3})
	if got := codec.Flush(); !slices.Equal(got, []cp{utf8codec.RuneError}) {
		t.Errorf("pending flush, expected [U+FFFD], got %U", got)
	}
	if codec.Pending() {
		t.Errorf("expected idle codec after Flush")
	}
	if got := codec.Decode([]byte{0x41}); !slices.Equal(got, []cp{0x41}) {
		t.Errorf("expected [U+0041] after Flush, got %U", got)
	}
}

func TestReset(t *testing.T) {
	codec := utf8codec.New()
	codec.Decode([]byte{0xE6, 0x97})
	codec.Reset()
	if got := codec.Decode([]byte{0x41}); !slices.Equal(got, []cp{0x41}) {
		t.Errorf("expected [U+0041] after Reset, got %U", got)
	}
}

func TestAsciiToUnicode(t *testing.T) {
	got := utf8codec.AsciiToUnicode("Hello")
	want := []cp{0x48, 0x65, 0x6C, 0x6C, 0x6F}
	if !slices.Equal(got, want) {
		t.Errorf("expected %U, got %U", want, got)
	}

	// bytes are widened unchanged, not decoded
	got = utf8codec.AsciiToUnicode("\xe9")
	if !slices.Equal(got, []cp{0xE9}) {
		t.Errorf("expected [U+00E9], got %U", got)
	}
}

func TestAppendEncode(t *testing.T) {
	got := utf8codec.AppendEncode([]byte("x="), 0x65E5, 0xD800)
	want := []byte{'x', '=', 0xE6, 0x97, 0xA5, 0xEF, 0xBF, 0xBD}
	if !bytes.Equal(got, want) {
		t.Errorf("expected % X, got % X", want, got)
	}
}
