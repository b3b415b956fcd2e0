package rdata

import (
	"github.com/arloliu/rdagrid/encoding"
	"github.com/arloliu/rdagrid/format"
)

// symbolFlag introduces the symbol that tags a pairlist entry.
const symbolFlag int32 = 1

// objectWriter emits the fixed object graph around the sample payload:
//
//	magic
//	2 133377 131840            version triple
//	1026 1 "gg"                outer pairlist entry tagged "gg"
//	526 n                      double vector with attributes, n samples
//	<samples>
//	1026 1 "dim" 13 3 w h b    attribute pairlist entry "dim"
//	254 254                    close attributes, close outer pairlist
type objectWriter struct {
	enc *encoding.Encoder
}

func newObjectWriter(enc *encoding.Encoder) objectWriter {
	return objectWriter{enc: enc}
}

// writeHeader writes everything that precedes the first sample.
func (w objectWriter) writeHeader(n int32) {
	w.enc.WriteMagic()
	w.enc.WriteInteger(format.FormatVersion)
	w.enc.WriteInteger(format.WriterVersion)
	w.enc.WriteInteger(format.MinReaderVersion)

	w.enc.WriteTag(format.TagPairList)
	w.enc.WriteInteger(symbolFlag)
	w.enc.WriteString(format.ObjectName)

	w.enc.WriteTag(format.TagRealVectorWithAttr)
	w.enc.WriteInteger(n)
}

// writeShape writes the dim attribute and closes both open scopes.
// checkSize has already bounded every dimension by math.MaxInt32.
func (w objectWriter) writeShape(width, height, bands int) {
	w.enc.WriteTag(format.TagPairList)
	w.enc.WriteInteger(symbolFlag)
	w.enc.WriteString(format.DimName)

	w.enc.WriteTag(format.TagIntVector)
	w.enc.WriteInteger(format.ShapeRank)
	w.enc.WriteInteger(int32(width))  //nolint:gosec
	w.enc.WriteInteger(int32(height)) //nolint:gosec
	w.enc.WriteInteger(int32(bands))  //nolint:gosec

	w.enc.WriteTag(format.TagTerminator)
	w.enc.WriteTag(format.TagTerminator)
}
