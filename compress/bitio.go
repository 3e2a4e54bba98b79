package compress

// bitWriter packs codes most-significant bit first into a byte slice.
// A partial final byte is left-justified and zero padded.
type bitWriter struct {
	out   []byte
	acc   byte
	nbits uint8 // pending bits in acc, always < 8 between calls
}

func newBitWriter(dst []byte) *bitWriter {
	return &bitWriter{out: dst}
}

// writeCode appends the low c.length bits of c.bits, highest first.
func (w *bitWriter) writeCode(c huffmanCode) {
	n := c.length
	for n > 0 {
		take := min(n, 8-w.nbits)
		chunk := byte(c.bits>>(n-take)) & (1<<take - 1)
		w.acc = w.acc<<take | chunk
		w.nbits += take
		n -= take

		if w.nbits == 8 {
			w.out = append(w.out, w.acc)
			w.acc, w.nbits = 0, 0
		}
	}
}

// flush pads the pending bits and returns the packed output.
func (w *bitWriter) flush() []byte {
	if w.nbits > 0 {
		w.out = append(w.out, w.acc<<(8-w.nbits))
		w.acc, w.nbits = 0, 0
	}

	return w.out
}

// bitReader reads single bits most-significant first, up to limit bits.
type bitReader struct {
	data  []byte
	pos   uint64
	limit uint64
}

func newBitReader(data []byte, limit uint64) *bitReader {
	if maxBits := uint64(len(data)) * 8; limit > maxBits {
		limit = maxBits
	}

	return &bitReader{data: data, limit: limit}
}

// readBit returns the next bit, or false once limit bits have been consumed.
func (r *bitReader) readBit() (byte, bool) {
	if r.pos >= r.limit {
		return 0, false
	}
	b := r.data[r.pos>>3] >> (7 - r.pos&7) & 1
	r.pos++

	return b, true
}
