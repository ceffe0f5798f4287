// utf8codec converts between Unicode code points and UTF-8 bytes.
//
// Usage:
//
//	utf8codec encode [--ascii TEXT] [--raw] [--bits] [U+XXXX|0xXXXX ...]
//	utf8codec decode [--block-size N] [--strict] [FILE]
//	utf8codec sanitize [FILE]
//
// encode prints the encoding of the given code points as hex bytes, decode
// prints one U+XXXX line per code point read from FILE (or stdin), and
// sanitize copies FILE (or stdin) to stdout replacing malformed UTF-8 with
// U+FFFD.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/text/transform"

	"github.com/pchchv/utf8codec"
	"github.com/pchchv/utf8codec/internal/bits"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return errors.New("missing command")
	}

	command, args := args[0], args[1:]
	switch command {
	case "encode":
		return runEncode(args, stdout, stderr)
	case "decode":
		return runDecode(args, stdin, stdout, stderr)
	case "sanitize":
		return runSanitize(args, stdin, stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	}
	printUsage(stderr)
	return fmt.Errorf("unknown command %q", command)
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage:
  utf8codec encode [--ascii TEXT] [--raw] [--bits] [U+XXXX|0xXXXX ...]
  utf8codec decode [--block-size N] [--strict] [FILE]
  utf8codec sanitize [FILE]
`)
}

// newFlagSet returns a flag set with the flags shared by all commands.
func newFlagSet(name string, stderr io.Writer, verbose *bool) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.BoolVarP(verbose, "verbose", "v", false, "log debug information to stderr")
	return flagSet
}

func newLogger(stderr io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func runEncode(args []string, stdout, stderr io.Writer) error {
	var verbose, raw, showBits bool
	var ascii string
	flagSet := newFlagSet("encode", stderr, &verbose)
	flagSet.StringVar(&ascii, "ascii", "", "encode the bytes of TEXT as code points")
	flagSet.BoolVar(&raw, "raw", false, "write raw bytes instead of hex")
	flagSet.BoolVar(&showBits, "bits", false, "print the bit fields of each encoded code point")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	logger := newLogger(stderr, verbose)

	codePoints := utf8codec.AsciiToUnicode(ascii)
	for _, arg := range flagSet.Args() {
		cp, err := parseCodePoint(arg)
		if err != nil {
			return err
		}
		codePoints = append(codePoints, cp)
	}
	logger.Debug("encoding", "code_points", len(codePoints))

	if showBits {
		for _, cp := range codePoints {
			if !cp.Valid() {
				logger.Warn("substituting invalid code point", "code_point", formatCodePoint(cp))
			}
			layout, err := bits.Format(utf8codec.AppendEncode(nil, cp))
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(stdout, "%s: %s\n", formatCodePoint(cp), layout); err != nil {
				return err
			}
		}
		return nil
	}

	if raw {
		enc := utf8codec.NewEncoder(stdout)
		if err := enc.Encode(codePoints...); err != nil {
			return err
		}
		logger.Debug("encoded", "bytes", enc.Written())
		return enc.Close()
	}

	encoding := utf8codec.New().Encode(codePoints)
	hex := make([]string, len(encoding))
	for i, b := range encoding {
		hex[i] = fmt.Sprintf("%02X", b)
	}
	logger.Debug("encoded", "bytes", len(encoding))
	_, err := fmt.Fprintln(stdout, strings.Join(hex, " "))
	return err
}

func runDecode(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var verbose bool
	var o utf8codec.Options
	flagSet := newFlagSet("decode", stderr, &verbose)
	flagSet.IntVar(&o.BlockSize, "block-size", 4096, "number of bytes to read at a time")
	flagSet.BoolVar(&o.Strict, "strict", false, "fail on malformed input instead of substituting U+FFFD")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	logger := newLogger(stderr, verbose)
	if o.BlockSize <= 0 {
		return fmt.Errorf("invalid --block-size %d", o.BlockSize)
	}

	r, closer, err := openInput(flagSet.Args(), stdin)
	if err != nil {
		return err
	}
	defer closer()

	dec := utf8codec.NewDecoder(r, o)
	count := 0
	for dec.Next() {
		count++
		if _, err := fmt.Fprintln(stdout, formatCodePoint(dec.CodePoint())); err != nil {
			return err
		}
	}
	logger.Debug("decoded", "code_points", count, "bytes", dec.Offset())
	return dec.Err()
}

func runSanitize(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var verbose bool
	flagSet := newFlagSet("sanitize", stderr, &verbose)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	logger := newLogger(stderr, verbose)

	r, closer, err := openInput(flagSet.Args(), stdin)
	if err != nil {
		return err
	}
	defer closer()

	n, err := io.Copy(stdout, transform.NewReader(r, utf8codec.NewTransformer()))
	logger.Debug("sanitized", "bytes", n)
	return err
}

// openInput opens the file named by args, or returns stdin if args is empty.
func openInput(args []string, stdin io.Reader) (io.Reader, func(), error) {
	switch len(args) {
	case 0:
		return stdin, func() {}, nil
	case 1:
		f, err := os.Open(args[0])
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unexpected argument: %s", args[1])
}

// parseCodePoint parses U+XXXX, 0xXXXX or a decimal number.
func parseCodePoint(s string) (utf8codec.CodePoint, error) {
	digits, base := s, 10
	switch {
	case strings.HasPrefix(s, "U+"), strings.HasPrefix(s, "u+"):
		digits, base = s[2:], 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		digits, base = s[2:], 16
	}
	x, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid code point %q: %w", s, err)
	}
	return utf8codec.CodePoint(x), nil
}

func formatCodePoint(cp utf8codec.CodePoint) string {
	return fmt.Sprintf("U+%04X", uint32(cp))
}
