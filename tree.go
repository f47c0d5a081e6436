package huffpack

import (
	"container/heap"
	"fmt"

	"github.com/chronos-tachyon/assert"
)

// Node is one node of a Huffman tree.  A leaf holds a Symbol and its
// frequency; an internal node holds the sum of its children's weights and
// exactly two children, and its Symbol is InvalidSymbol.
type Node struct {
	Symbol Symbol
	Weight uint64
	Left   *Node
	Right  *Node
}

// IsLeaf reports whether n is a leaf.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// BuildTree builds a Huffman tree for the given frequencies.  The result is
// deterministic: equal weights are ordered by the order in which their nodes
// were created, leaves first in ascending symbol order, then internal nodes
// in order of creation.
//
// A table with a single symbol yields a leaf as the root.
//
func BuildTree(freq FrequencyTable) (*Node, error) {
	symbols := freq.Symbols()
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: no symbols to encode", ErrInvalidInput)
	}

	// Step 1: build a minheap of leaves.

	items := make([]nodeAndSeq, len(symbols))
	for index, symbol := range symbols {
		items[index] = nodeAndSeq{
			node: &Node{Symbol: symbol, Weight: freq.Count(symbol)},
			seq:  uint32(index),
		}
	}
	h := nodeHeap{items}
	h.Init()

	// Step 2: process the minheap by popping two nodes, combining them
	// into a new internal node, and pushing the new node back onto the
	// minheap.  Internal nodes take sequence numbers after all leaves, so
	// ties never depend on heap layout.

	nextSeq := uint32(len(symbols))
	for h.Len() > 1 {
		a := heap.Pop(&h).(nodeAndSeq)
		b := heap.Pop(&h).(nodeAndSeq)

		parent := &Node{
			Symbol: InvalidSymbol,
			Weight: saturatingAdd(a.node.Weight, b.node.Weight),
			Left:   a.node,
			Right:  b.node,
		}
		heap.Push(&h, nodeAndSeq{node: parent, seq: nextSeq})
		nextSeq++
	}

	root := heap.Pop(&h).(nodeAndSeq).node
	assert.Assertf(root.IsLeaf() == (len(symbols) == 1), "root leaf=%v with %d symbols", root.IsLeaf(), len(symbols))
	return root, nil
}

// type nodeAndSeq + type nodeHeap {{{

type nodeAndSeq struct {
	node *Node
	seq  uint32
}

type nodeHeap struct {
	list []nodeAndSeq
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.node.Weight != b.node.Weight {
		return a.node.Weight < b.node.Weight
	}
	return a.seq < b.seq
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(nodeAndSeq))
}

func (h *nodeHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list[last] = nodeAndSeq{}
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
