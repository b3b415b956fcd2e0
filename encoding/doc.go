// Package encoding provides the primitive token encoder of the R serialized
// object format.
//
// An R object file is a flat sequence of tokens: integers (structural tags,
// lengths, shape values), strings (tag 4105, a byte length and the bytes) and
// doubles (vector payload). Each token has two renderings, selected once per
// Encoder:
//
//	Token     Textual (RDA2 / A)          Binary (RDX2 / X)
//	integer   decimal digits + "\n"       4 bytes, big-endian
//	string    4105, len, bytes + "\n"     4105, len, bytes
//	double    16 significant digits + \n  8 bytes, big-endian IEEE-754
//
// The Encoder knows nothing about the object grammar; composing tokens into
// pairlists, vectors and attributes is done by the rdata package.
//
// # Usage
//
//	enc := encoding.NewEncoder(w, format.ModeBinary)
//	defer enc.Finish()
//
//	enc.WriteMagic()
//	enc.WriteInteger(2)
//	enc.WriteString("gg")
//	enc.WriteSampleRow(row)
//	if err := enc.Flush(); err != nil {
//	    return err
//	}
package encoding
