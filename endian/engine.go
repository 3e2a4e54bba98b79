// Package endian provides the byte order used by piper wire formats.
//
// Every fixed-width integer written by the piper codecs and the frame container is
// little-endian. Callers obtain the engine once and use both the ByteOrder and
// AppendByteOrder halves of it:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, uint32(len(data)))
//	n := engine.Uint32(buf[0:4])
//
// # Thread Safety
//
// The returned EndianEngine instances are immutable and safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine used by all piper formats.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// Uint32At reads a uint32 at off, reporting false when fewer than 4 bytes remain.
func Uint32At(engine EndianEngine, data []byte, off int) (uint32, bool) {
	if off < 0 || len(data)-off < 4 {
		return 0, false
	}

	return engine.Uint32(data[off : off+4]), true
}

// Uint16At reads a uint16 at off, reporting false when fewer than 2 bytes remain.
func Uint16At(engine EndianEngine, data []byte, off int) (uint16, bool) {
	if off < 0 || len(data)-off < 2 {
		return 0, false
	}

	return engine.Uint16(data[off : off+2]), true
}
