package encoding

import (
	"io"
	"math"
	"strconv"

	"github.com/arloliu/rdagrid/endian"
	"github.com/arloliu/rdagrid/format"
	"github.com/arloliu/rdagrid/internal/pool"
)

// TextPrecision is the number of significant digits written per sample in
// textual mode, matching what R itself emits for an ascii save.
const TextPrecision = 16

// rowChunk bounds how many samples are appended between flush checks, so a
// very wide row does not balloon the pooled buffer.
const rowChunk = 2048

// Encoder writes the primitive tokens of an R serialized object: integers,
// strings and rows of double samples, either as text lines or as XDR
// (big-endian) binary.
//
// Output is staged in a pooled buffer and handed to the sink in blocks. The
// write methods do not return errors: the first sink failure is recorded,
// later writes are dropped, and the failure is reported by Err and Flush.
//
// Note: The Encoder is NOT thread-safe.
//
// Note: Finish must be called to return the buffer to the pool; use defer.
type Encoder struct {
	w       io.Writer
	mode    format.Mode
	engine  endian.EndianEngine
	buf     *pool.ByteBuffer
	err     error
	samples int64
}

// NewEncoder creates an Encoder that writes to w in the given mode.
// Any mode other than format.ModeTextual encodes binary.
func NewEncoder(w io.Writer, mode format.Mode) *Encoder {
	if mode != format.ModeTextual {
		mode = format.ModeBinary
	}

	return &Encoder{
		w:      w,
		mode:   mode,
		engine: endian.GetXDREngine(),
		buf:    pool.GetEncodeBuffer(),
	}
}

// Mode returns the encoding mode.
func (e *Encoder) Mode() format.Mode {
	return e.mode
}

// WriteMagic writes the two-line magic header of the mode.
func (e *Encoder) WriteMagic() {
	e.append(e.mode.Magic())
}

// WriteInteger writes v as a decimal line in textual mode or as a 4-byte
// big-endian two's-complement integer in binary mode.
func (e *Encoder) WriteInteger(v int32) {
	if e.err != nil {
		return
	}

	if e.mode == format.ModeTextual {
		e.buf.B = strconv.AppendInt(e.buf.B, int64(v), 10)
		e.buf.B = append(e.buf.B, '\n')
	} else {
		e.buf.B = endian.AppendInt32(e.engine, e.buf.B, v)
	}
	e.maybeFlush()
}

// WriteTag writes a structural tag.
func (e *Encoder) WriteTag(tag format.Tag) {
	e.WriteInteger(int32(tag))
}

// WriteString writes the string tag, the byte length of s and its raw bytes.
// Textual mode terminates the bytes with a newline; binary mode does not.
func (e *Encoder) WriteString(s string) {
	e.WriteTag(format.TagString)
	e.WriteInteger(int32(len(s))) //nolint:gosec // callers pass short protocol names

	if e.err != nil {
		return
	}
	e.buf.B = append(e.buf.B, s...)
	if e.mode == format.ModeTextual {
		e.buf.B = append(e.buf.B, '\n')
	}
	e.maybeFlush()
}

// WriteSampleRow writes every sample of a row.
//
// Textual mode writes one line per sample with TextPrecision significant
// digits, spelling non-finite values the way R does (NaN, Inf, -Inf).
// Binary mode writes each sample as an 8-byte big-endian IEEE-754 double, the
// whole row forming one contiguous block.
func (e *Encoder) WriteSampleRow(samples []float64) {
	for start := 0; start < len(samples); start += rowChunk {
		if e.err != nil {
			return
		}

		chunk := samples[start:min(start+rowChunk, len(samples))]
		if e.mode == format.ModeTextual {
			for _, v := range chunk {
				e.buf.B = AppendTextSample(e.buf.B, v)
				e.buf.B = append(e.buf.B, '\n')
			}
		} else {
			e.buf.Grow(len(chunk) * 8)
			for _, v := range chunk {
				e.buf.B = endian.AppendFloat64(e.engine, e.buf.B, v)
			}
		}
		e.samples += int64(len(chunk))
		e.maybeFlush()
	}
}

// Samples returns the number of samples accepted by WriteSampleRow.
func (e *Encoder) Samples() int64 {
	return e.samples
}

// Err returns the first sink failure, if any.
func (e *Encoder) Err() error {
	return e.err
}

// Flush hands all staged bytes to the sink and returns the first sink failure.
func (e *Encoder) Flush() error {
	if e.err == nil && e.buf != nil && e.buf.Len() > 0 {
		e.flush()
	}

	return e.err
}

// Finish returns the staging buffer to the pool without flushing.
// The Encoder must not be used afterwards.
func (e *Encoder) Finish() {
	if e.buf != nil {
		pool.PutEncodeBuffer(e.buf)
		e.buf = nil
	}
}

func (e *Encoder) append(p []byte) {
	if e.err != nil {
		return
	}
	e.buf.B = append(e.buf.B, p...)
	e.maybeFlush()
}

func (e *Encoder) maybeFlush() {
	if e.buf.Len() >= pool.EncodeBufferFlushSize {
		e.flush()
	}
}

func (e *Encoder) flush() {
	n, err := e.buf.WriteTo(e.w)
	if err == nil && n < int64(e.buf.Len()) {
		err = io.ErrShortWrite
	}
	if err != nil {
		e.err = err
	}
	e.buf.Reset()
}

// AppendTextSample appends the textual form of one sample to dst.
func AppendTextSample(dst []byte, v float64) []byte {
	switch {
	case math.IsNaN(v):
		return append(dst, "NaN"...)
	case math.IsInf(v, 1):
		return append(dst, "Inf"...)
	case math.IsInf(v, -1):
		return append(dst, "-Inf"...)
	default:
		return strconv.AppendFloat(dst, v, 'g', TextPrecision, 64)
	}
}
