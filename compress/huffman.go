package compress

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/piper/endian"
	"github.com/arloliu/piper/errs"
	"github.com/arloliu/piper/internal/pool"
)

// HuffmanCompressor implements static Huffman coding over byte symbols.
//
// The frequency table travels in the header so the decoder can rebuild the
// tree the encoder used; see the package documentation for the layout.
type HuffmanCompressor struct{}

var _ Codec = (*HuffmanCompressor)(nil)

// NewHuffmanCompressor creates a new Huffman compressor.
func NewHuffmanCompressor() HuffmanCompressor {
	return HuffmanCompressor{}
}

// huffmanHeader is the decoded form of the stream header.
type huffmanHeader struct {
	length  uint32
	bits    uint64
	freqs   [256]uint64
	symbols int
}

// Compress Huffman codes data.
//
// Returns:
//   - []byte: Header followed by the packed bit stream
//   - error: errs.ErrInputTooLarge if data exceeds 4GiB
func (c HuffmanCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}
	if uint64(len(data)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrInputTooLarge, len(data))
	}

	var freqs [256]uint64
	for _, b := range data {
		freqs[b]++
	}

	table, err := newHuffmanTree(&freqs).codes()
	if err != nil {
		return nil, err
	}
	bits := table.payloadBits(&freqs)

	buf := pool.GetCodecBuffer()
	defer pool.PutCodecBuffer(buf)
	buf.Grow(4 + 2*binary.MaxVarintLen64 + 256*(1+binary.MaxVarintLen64) + int((bits+7)/8))

	engine := endian.GetLittleEndianEngine()
	buf.B = engine.AppendUint32(buf.B, uint32(len(data)))
	buf.B = binary.AppendUvarint(buf.B, bits)

	symbols := 0
	for _, f := range freqs {
		if f > 0 {
			symbols++
		}
	}
	buf.B = append(buf.B, byte(symbols-1))
	for s, f := range freqs {
		if f > 0 {
			buf.B = append(buf.B, byte(s))
			buf.B = binary.AppendUvarint(buf.B, f)
		}
	}

	w := newBitWriter(buf.B)
	for _, b := range data {
		w.writeCode(table[b])
	}
	buf.B = w.flush()

	return buf.Clone(), nil
}

// Decompress decodes a stream produced by Compress.
//
// Returns:
//   - []byte: Decoded data
//   - error: errs.ErrCorruptHeader for an inconsistent or truncated header,
//     errs.ErrTruncatedStream if the payload is shorter than declared
func (c HuffmanCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	hdr, payload, err := parseHuffmanHeader(data)
	if err != nil {
		return nil, err
	}

	tree := newHuffmanTree(&hdr.freqs)
	table, err := tree.codes()
	if err != nil {
		return nil, err
	}

	if want := table.payloadBits(&hdr.freqs); want != hdr.bits {
		return nil, fmt.Errorf("%w: header declares %d payload bits, frequencies imply %d",
			errs.ErrCorruptHeader, hdr.bits, want)
	}

	payloadBytes := (hdr.bits + 7) / 8
	if uint64(len(payload)) < payloadBytes {
		return nil, fmt.Errorf("%w: payload has %d bytes, need %d",
			errs.ErrTruncatedStream, len(payload), payloadBytes)
	}
	if uint64(len(payload)) > payloadBytes {
		return nil, fmt.Errorf("%w: payload has %d bytes, header accounts for %d",
			errs.ErrCorruptHeader, len(payload), payloadBytes)
	}

	return decodeHuffmanPayload(tree, payload, hdr)
}

func decodeHuffmanPayload(tree *huffmanTree, payload []byte, hdr huffmanHeader) ([]byte, error) {
	out := make([]byte, 0, hdr.length)
	r := newBitReader(payload, hdr.bits)
	root := &tree.nodes[tree.root]

	for uint32(len(out)) < hdr.length {
		if root.isLeaf() {
			if _, ok := r.readBit(); !ok {
				return nil, truncatedHuffman(len(out), hdr.length)
			}
			out = append(out, root.symbol)

			continue
		}

		n := root
		for !n.isLeaf() {
			bit, ok := r.readBit()
			if !ok {
				return nil, truncatedHuffman(len(out), hdr.length)
			}
			if bit == 0 {
				n = &tree.nodes[n.left]
			} else {
				n = &tree.nodes[n.right]
			}
		}
		out = append(out, n.symbol)
	}

	return out, nil
}

func truncatedHuffman(produced int, want uint32) error {
	return fmt.Errorf("%w: bits exhausted after %d of %d symbols", errs.ErrTruncatedStream, produced, want)
}

// parseHuffmanHeader validates the header and returns it with the remaining payload.
//
// The frequency sum must equal the declared length, which also bounds the
// output allocation by the bit count and therefore by the payload size.
func parseHuffmanHeader(data []byte) (huffmanHeader, []byte, error) {
	var hdr huffmanHeader

	length, ok := endian.Uint32At(endian.GetLittleEndianEngine(), data, 0)
	if !ok {
		return hdr, nil, fmt.Errorf("%w: %d bytes is too short for the length field", errs.ErrCorruptHeader, len(data))
	}
	hdr.length = length
	off := 4

	bits, n := binary.Uvarint(data[off:])
	if n <= 0 {
		return hdr, nil, fmt.Errorf("%w: bad payload bit count at offset %d", errs.ErrCorruptHeader, off)
	}
	hdr.bits = bits
	off += n

	if off >= len(data) {
		return hdr, nil, fmt.Errorf("%w: missing symbol count at offset %d", errs.ErrCorruptHeader, off)
	}
	hdr.symbols = int(data[off]) + 1
	off++

	var sum uint64
	prev := -1
	for i := 0; i < hdr.symbols; i++ {
		if off >= len(data) {
			return hdr, nil, fmt.Errorf("%w: symbol %d of %d missing", errs.ErrCorruptHeader, i+1, hdr.symbols)
		}
		sym := int(data[off])
		if sym <= prev {
			return hdr, nil, fmt.Errorf("%w: symbol 0x%02x out of order at offset %d", errs.ErrCorruptHeader, sym, off)
		}
		off++

		freq, n := binary.Uvarint(data[off:])
		if n <= 0 || freq == 0 {
			return hdr, nil, fmt.Errorf("%w: bad frequency for symbol 0x%02x", errs.ErrCorruptHeader, sym)
		}
		off += n

		if freq > uint64(hdr.length)-sum {
			return hdr, nil, fmt.Errorf("%w: frequencies exceed declared length %d", errs.ErrCorruptHeader, hdr.length)
		}
		sum += freq
		hdr.freqs[sym] = freq
		prev = sym
	}

	if sum != uint64(hdr.length) {
		return hdr, nil, fmt.Errorf("%w: frequencies sum to %d, declared length %d", errs.ErrCorruptHeader, sum, hdr.length)
	}

	return hdr, data[off:], nil
}
