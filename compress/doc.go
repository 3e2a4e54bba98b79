// Package compress provides the lossless byte-stream codecs of piper.
//
// Three codecs carry the algorithmic work, and four reference codecs from the
// Go ecosystem sit next to them for comparison:
//   - Huffman: frequency table, prefix-code tree, MSB-first bit packing
//   - LZ77: bounded sliding-window match search with literal/match tokens
//   - RLE: run detection with a 0xFF escape byte
//   - None, Zstd, S2, LZ4: reference codecs used by Measure and the CLI
//
// # Architecture
//
// Every codec implements the same contract:
//
//	type Codec interface {
//	    Compress(data []byte) ([]byte, error)
//	    Decompress(data []byte) ([]byte, error)
//	}
//
// Empty input always yields empty output without error. Codecs hold no
// mutable state between calls, so a single value can be shared by any number
// of goroutines.
//
// Codecs are selected by format.Algorithm:
//
//	codec, err := compress.GetCodec(format.AlgorithmLZ77)
//	if err != nil {
//	    return err
//	}
//	packed, _ := codec.Compress(data)
//
// # Wire Formats
//
// **RLE** has no header. Bytes other than 0xFF are literals, 0xFF c b repeats b
// c times, and 0xFF 0x00 0xFF encodes a single 0xFF.
//
// **LZ77** starts with the original length as a little-endian uint32, followed
// by tokens: 0x00 b for a literal, or 0x01 distance(u16 LE) length(u16 LE) b
// for a match followed by one literal.
//
// **Huffman** starts with a header that lets the decoder rebuild the exact tree:
//
//	[u32 LE original length][uvarint payload bits][u8 symbols-1]
//	symbols x ([u8 symbol][uvarint frequency])
//	[payload, MSB first, zero padded]
//
// # Error Handling
//
// Compression only fails for inputs larger than a 32-bit length header can
// describe. Decompression of corrupted input returns one of the errs sentinels
// (ErrTruncatedStream, ErrInvalidDistance, ErrInvalidEscape, ErrCorruptHeader,
// ...) wrapped with the offset where the problem was found; it never panics.
package compress
