// Package endian provides the byte order used by the binary (XDR) encoding of
// R serialized objects.
//
// R's binary save format stores every integer and double in XDR form, which is
// big-endian regardless of the host. EndianEngine combines the ByteOrder and
// AppendByteOrder interfaces from encoding/binary so encoders can append values
// straight into a pooled buffer:
//
//	engine := endian.GetXDREngine()
//	buf = endian.AppendInt32(engine, buf, 1026)
//	buf = endian.AppendFloat64(engine, buf, 3.5)
//
// All functions in this package are safe for concurrent use.
package endian

import (
	"encoding/binary"
	"math"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetXDREngine returns the engine used by the binary R format (big-endian).
func GetXDREngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// AppendInt32 appends v as a 4-byte two's-complement integer.
func AppendInt32(engine EndianEngine, dst []byte, v int32) []byte {
	return engine.AppendUint32(dst, uint32(v))
}

// AppendFloat64 appends v as an 8-byte IEEE-754 double.
func AppendFloat64(engine EndianEngine, dst []byte, v float64) []byte {
	return engine.AppendUint64(dst, math.Float64bits(v))
}

// Int32 decodes a 4-byte two's-complement integer.
func Int32(engine EndianEngine, b []byte) int32 {
	return int32(engine.Uint32(b))
}

// Float64 decodes an 8-byte IEEE-754 double.
func Float64(engine EndianEngine, b []byte) float64 {
	return math.Float64frombits(engine.Uint64(b))
}
