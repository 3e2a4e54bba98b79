package compress

import "github.com/arloliu/piper/internal/pool"

const (
	// lz77HashLength is the prefix length hashed to find candidates. Matches
	// shorter than this are never emitted, so MinMatchLength may not go below it.
	lz77HashLength = 3
	lz77HashBits   = 15
	lz77HashSize   = 1 << lz77HashBits
)

// lz77Matcher finds the longest match for a position through hash chains.
//
// head holds the newest position for each hash bucket and prev links every
// position to the previous one in its bucket, so a chain walk visits
// candidates from the smallest distance to the largest. Positions are added
// lazily: before searching at p, every position below p is indexed.
type lz77Matcher struct {
	data    []byte
	cfg     LZ77Config
	head    []int32
	prev    []int32
	indexed int
	release []func()
}

func newLZ77Matcher(data []byte, cfg LZ77Config) *lz77Matcher {
	head, releaseHead := pool.GetInt32Slice(lz77HashSize, -1)
	prev, releasePrev := pool.GetInt32Slice(len(data), -1)

	return &lz77Matcher{
		data:    data,
		cfg:     cfg,
		head:    head,
		prev:    prev,
		release: []func(){releaseHead, releasePrev},
	}
}

// close returns the chain tables to the pool.
func (m *lz77Matcher) close() {
	for _, fn := range m.release {
		fn()
	}
	m.release = nil
}

func (m *lz77Matcher) hash(p int) uint32 {
	v := uint32(m.data[p])<<16 | uint32(m.data[p+1])<<8 | uint32(m.data[p+2])
	return (v * 2654435761) >> (32 - lz77HashBits)
}

func (m *lz77Matcher) indexUpTo(p int) {
	last := len(m.data) - lz77HashLength
	for ; m.indexed < p; m.indexed++ {
		if m.indexed > last {
			continue
		}
		h := m.hash(m.indexed)
		m.prev[m.indexed] = m.head[h]
		m.head[h] = int32(m.indexed)
	}
}

// longestMatch returns the distance and length of the best match for the
// lookahead at p.
//
// A match never extends past p, so its length is at most its distance. Ties
// keep the candidate found first, which is the one with the smallest distance.
// At most MaxChainDepth candidates are compared.
func (m *lz77Matcher) longestMatch(p int) (distance, length int) {
	m.indexUpTo(p)

	n := len(m.data)
	if p+lz77HashLength > n {
		return 0, 0
	}

	maxLen := min(m.cfg.LookaheadSize, n-p)
	minPos := max(0, p-m.cfg.WindowSize)

	cand := m.head[m.hash(p)]
	for depth := 0; cand >= 0 && int(cand) >= minPos && depth < m.cfg.MaxChainDepth; depth++ {
		s := int(cand)
		dist := p - s
		limit := min(maxLen, dist)

		l := 0
		for l < limit && m.data[s+l] == m.data[p+l] {
			l++
		}
		if l > length {
			distance, length = dist, l
			if length == maxLen {
				break
			}
		}
		cand = m.prev[s]
	}

	return distance, length
}
