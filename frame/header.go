package frame

import (
	"fmt"

	"github.com/arloliu/piper/endian"
	"github.com/arloliu/piper/errs"
	"github.com/arloliu/piper/format"
)

const (
	// Version is the only frame version this package reads and writes.
	Version byte = 0x01

	// BaseHeaderSize is the header size without a checksum.
	BaseHeaderSize = 13
	// ChecksumSize is the size of the optional checksum field.
	ChecksumSize = 8

	magic0 byte = 'P'
	magic1 byte = 'P'

	flagChecksum byte = 0x01
	knownFlags        = flagChecksum
)

// Header is the parsed form of a frame header.
type Header struct {
	Algorithm    format.Algorithm
	Flags        byte
	OriginalSize uint32
	PayloadSize  uint32
	Checksum     uint64
}

// HasChecksum reports whether the frame carries a checksum of the original bytes.
func (h Header) HasChecksum() bool {
	return h.Flags&flagChecksum != 0
}

// Size returns the encoded header length.
func (h Header) Size() int {
	if h.HasChecksum() {
		return BaseHeaderSize + ChecksumSize
	}

	return BaseHeaderSize
}

// appendTo serializes the header onto dst.
func (h Header) appendTo(dst []byte) []byte {
	engine := endian.GetLittleEndianEngine()

	dst = append(dst, magic0, magic1, Version, byte(h.Algorithm), h.Flags)
	dst = engine.AppendUint32(dst, h.OriginalSize)
	dst = engine.AppendUint32(dst, h.PayloadSize)
	if h.HasChecksum() {
		dst = engine.AppendUint64(dst, h.Checksum)
	}

	return dst
}

// Peek parses and validates the header at the start of data without decoding the payload.
//
// Returns:
//   - Header: Parsed header
//   - error: errs.ErrInvalidFrame for a bad magic, version, flags or algorithm,
//     errs.ErrTruncatedStream if data is shorter than the header
func Peek(data []byte) (Header, error) {
	if len(data) < BaseHeaderSize {
		return Header{}, fmt.Errorf("%w: frame header needs %d bytes, have %d",
			errs.ErrTruncatedStream, BaseHeaderSize, len(data))
	}
	if data[0] != magic0 || data[1] != magic1 {
		return Header{}, fmt.Errorf("%w: bad magic 0x%02x%02x", errs.ErrInvalidFrame, data[0], data[1])
	}
	if data[2] != Version {
		return Header{}, fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidFrame, data[2])
	}

	h := Header{
		Algorithm: format.Algorithm(data[3]),
		Flags:     data[4],
	}
	if !h.Algorithm.IsValid() {
		return Header{}, fmt.Errorf("%w: method byte 0x%02x", errs.ErrUnknownAlgorithm, data[3])
	}
	if h.Flags&^knownFlags != 0 {
		return Header{}, fmt.Errorf("%w: unknown flags 0x%02x", errs.ErrInvalidFrame, h.Flags)
	}

	engine := endian.GetLittleEndianEngine()
	h.OriginalSize = engine.Uint32(data[5:9])
	h.PayloadSize = engine.Uint32(data[9:13])

	if h.HasChecksum() {
		if len(data) < BaseHeaderSize+ChecksumSize {
			return Header{}, fmt.Errorf("%w: checksum field cut short", errs.ErrTruncatedStream)
		}
		h.Checksum = engine.Uint64(data[BaseHeaderSize : BaseHeaderSize+ChecksumSize])
	}

	return h, nil
}
