package compress

import (
	"container/heap"
	"fmt"

	"github.com/arloliu/piper/errs"
)

// maxCodeLength bounds a code to the width of huffmanCode.bits.
const maxCodeLength = 64

// noChild marks a leaf in the node arena.
const noChild int32 = -1

// huffmanNode is one arena slot. Leaves have left == right == noChild.
type huffmanNode struct {
	freq   uint64
	left   int32
	right  int32
	symbol byte
}

func (n *huffmanNode) isLeaf() bool {
	return n.left == noChild
}

// huffmanTree owns its nodes in a single arena; children are arena indices.
//
// Leaves are seeded in ascending symbol order and internal nodes are appended
// as they are created, so the arena index doubles as a deterministic
// tie-breaker: the encoder and the decoder build identical trees from the
// same frequency table.
type huffmanTree struct {
	nodes []huffmanNode
	root  int32
}

// huffmanCode is a prefix code stored right-aligned, root bit first.
type huffmanCode struct {
	bits   uint64
	length uint8
}

// codeTable maps each byte value to its code; unused symbols have length 0.
type codeTable [256]huffmanCode

func newHuffmanTree(freqs *[256]uint64) *huffmanTree {
	t := &huffmanTree{
		nodes: make([]huffmanNode, 0, 2*256-1),
		root:  noChild,
	}

	for s, f := range freqs {
		if f > 0 {
			t.nodes = append(t.nodes, huffmanNode{freq: f, left: noChild, right: noChild, symbol: byte(s)})
		}
	}

	switch len(t.nodes) {
	case 0:
		return t
	case 1:
		t.root = 0
		return t
	}

	h := &nodeHeap{tree: t, items: make([]int32, len(t.nodes))}
	for i := range h.items {
		h.items[i] = int32(i)
	}
	heap.Init(h)

	for h.Len() > 1 {
		a, _ := heap.Pop(h).(int32)
		b, _ := heap.Pop(h).(int32)
		t.nodes = append(t.nodes, huffmanNode{
			freq:  t.nodes[a].freq + t.nodes[b].freq,
			left:  a,
			right: b,
		})
		heap.Push(h, int32(len(t.nodes)-1))
	}
	t.root, _ = heap.Pop(h).(int32)

	return t
}

// codes walks the tree depth first, appending 0 for left and 1 for right.
// A tree whose root is a leaf assigns that symbol the one-bit code 0.
func (t *huffmanTree) codes() (codeTable, error) {
	var table codeTable
	if t.root == noChild {
		return table, nil
	}

	if t.nodes[t.root].isLeaf() {
		table[t.nodes[t.root].symbol] = huffmanCode{bits: 0, length: 1}
		return table, nil
	}

	type frame struct {
		node   int32
		bits   uint64
		length uint8
	}
	stack := make([]frame, 0, 64)
	stack = append(stack, frame{node: t.root})

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[f.node]
		if n.isLeaf() {
			table[n.symbol] = huffmanCode{bits: f.bits, length: f.length}
			continue
		}
		if f.length >= maxCodeLength {
			return table, fmt.Errorf("%w: code length exceeds %d bits", errs.ErrCorruptHeader, maxCodeLength)
		}

		stack = append(stack,
			frame{node: n.right, bits: f.bits<<1 | 1, length: f.length + 1},
			frame{node: n.left, bits: f.bits << 1, length: f.length + 1},
		)
	}

	return table, nil
}

// payloadBits returns the number of bits needed to encode a buffer with the given frequencies.
func (table *codeTable) payloadBits(freqs *[256]uint64) uint64 {
	var total uint64
	for s, f := range freqs {
		total += f * uint64(table[s].length)
	}

	return total
}

// nodeHeap is a min-heap of arena indices ordered by (frequency, index).
type nodeHeap struct {
	tree  *huffmanTree
	items []int32
}

func (h *nodeHeap) Len() int { return len(h.items) }

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	fa, fb := h.tree.nodes[a].freq, h.tree.nodes[b].freq
	if fa != fb {
		return fa < fb
	}

	return a < b
}

func (h *nodeHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *nodeHeap) Push(x any) {
	idx, _ := x.(int32)
	h.items = append(h.items, idx)
}

func (h *nodeHeap) Pop() any {
	n := len(h.items)
	idx := h.items[n-1]
	h.items = h.items[:n-1]

	return idx
}
