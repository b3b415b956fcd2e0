package rdata

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arloliu/rdagrid/endian"
	"github.com/arloliu/rdagrid/errs"
	"github.com/arloliu/rdagrid/format"
)

// charsxpType is the low byte shared by every string flag word, whatever
// encoding bits R sets above it.
const charsxpType = 9

// maxStringLen bounds the names the reader accepts; object and attribute
// names are a few bytes long.
const maxStringLen = 1 << 16

// tokenReader reads the primitive tokens written by encoding.Encoder.
type tokenReader interface {
	readInt() (int32, error)
	readString() (string, error)
	skipSamples(n int64) error
}

func newTokenReader(r *bufio.Reader, mode format.Mode) tokenReader {
	if mode == format.ModeTextual {
		return &textReader{r: r}
	}

	return &xdrReader{r: r, engine: endian.GetXDREngine()}
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: unexpected end of stream", errs.ErrMalformed)
	}

	return fmt.Errorf("%w: %v", errs.ErrMalformed, err)
}

// checkStringFlags validates the flag word and length of a string.
func checkStringFlags(flags, length int32) error {
	if flags&0xff != charsxpType {
		return fmt.Errorf("%w: expected string, got flags %d", errs.ErrMalformed, flags)
	}
	if length < 0 {
		return fmt.Errorf("%w: NA string", errs.ErrUnsupported)
	}
	if length > maxStringLen {
		return fmt.Errorf("%w: string of %d bytes", errs.ErrUnsupported, length)
	}

	return nil
}

type xdrReader struct {
	r       *bufio.Reader
	engine  endian.EndianEngine
	scratch [4]byte
}

func (x *xdrReader) readInt() (int32, error) {
	if _, err := io.ReadFull(x.r, x.scratch[:]); err != nil {
		return 0, truncated(err)
	}

	return endian.Int32(x.engine, x.scratch[:]), nil
}

func (x *xdrReader) readString() (string, error) {
	flags, err := x.readInt()
	if err != nil {
		return "", err
	}
	n, err := x.readInt()
	if err != nil {
		return "", err
	}
	if err := checkStringFlags(flags, n); err != nil {
		return "", err
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(x.r, buf); err != nil {
		return "", truncated(err)
	}

	return string(buf), nil
}

func (x *xdrReader) skipSamples(n int64) error {
	if _, err := io.CopyN(io.Discard, x.r, n*8); err != nil {
		return truncated(err)
	}

	return nil
}

type textReader struct {
	r *bufio.Reader
}

func (t *textReader) readLine() (string, error) {
	line, err := t.r.ReadString('\n')
	if err != nil {
		return "", truncated(err)
	}

	return strings.TrimSuffix(line[:len(line)-1], "\r"), nil
}

func (t *textReader) readInt() (int32, error) {
	line, err := t.readLine()
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseInt(line, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: integer token %q", errs.ErrMalformed, line)
	}

	return int32(v), nil
}

func (t *textReader) readString() (string, error) {
	flags, err := t.readInt()
	if err != nil {
		return "", err
	}
	n, err := t.readInt()
	if err != nil {
		return "", err
	}
	if err := checkStringFlags(flags, n); err != nil {
		return "", err
	}

	buf := make([]byte, n+1)
	if _, err := io.ReadFull(t.r, buf); err != nil {
		return "", truncated(err)
	}
	if buf[n] != '\n' {
		return "", fmt.Errorf("%w: string of %d bytes not followed by a newline", errs.ErrMalformed, n)
	}

	return string(buf[:n]), nil
}

// skipSamples consumes n sample lines. Each line must be a number or one of
// the non-finite spellings, but its value is not kept.
func (t *textReader) skipSamples(n int64) error {
	for i := range n {
		line, err := t.readLine()
		if err != nil {
			return err
		}
		if !isTextSample(line) {
			return fmt.Errorf("%w: sample %d is %q", errs.ErrMalformed, i, line)
		}
	}

	return nil
}

func isTextSample(s string) bool {
	switch s {
	case "NA", "NaN", "Inf", "-Inf":
		return true
	}
	_, err := strconv.ParseFloat(s, 64)

	return err == nil
}
