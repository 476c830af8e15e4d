package ptrie

import (
	"github.com/hideo55/go-popcount"
)

// ref is a tagged child reference: 0 - empty slot, bucketBit set - bucket
// handle, otherwise a forward-node handle. The root (handle 0) is never a
// child, so a zero ref is unambiguous.
type ref uint32

const (
	rootNode  handle = 0
	bucketBit ref    = 1 << 31
	noNode    handle = ^handle(0)
)

func nodeRef(h handle) ref   { return ref(h) }
func bucketRef(h handle) ref { return ref(h) | bucketBit }

func (r ref) empty() bool    { return r == 0 }
func (r ref) isBucket() bool { return r&bucketBit != 0 }
func (r ref) isNode() bool   { return r != 0 && r&bucketBit == 0 }
func (r ref) handle() handle { return handle(r &^ bucketBit) }

// fwdNode consumes one byte of an encoded key.
type fwdNode struct {
	parent handle
	path   byte // byte leading from parent to this node
	depth  int  // encoded key bytes consumed on the way from the root

	// known holds the key-length bits pinned by the path: L>>8 in the high
	// byte at depth 1, all of L at depth >= 2.
	known uint16

	bitmap   [4]uint64 // 256 bits, one per occupied child slot
	children [256]ref
}

func (n *fwdNode) child(b byte) ref {
	return n.children[b]
}

func (n *fwdNode) setChild(b byte, r ref) {
	n.children[b] = r
	if r.empty() {
		n.bitmap[b>>6] &^= uint64(1) << (b & 0x3F)
	} else {
		n.bitmap[b>>6] |= uint64(1) << (b & 0x3F)
	}
}

// numChildren returns the number of occupied child slots.
func (n *fwdNode) numChildren() int {
	var cnt uint64
	for _, bmp := range n.bitmap {
		cnt += popcount.Count(bmp)
	}
	return int(cnt)
}

// shape returns the view of a bucket hanging directly under this node.
func (n *fwdNode) shape(heapBound int) shape {
	return shape{depth: n.depth, known: n.known, heapBound: heapBound}
}

// childKnown computes the pinned length bits of a forward node created under
// n through slot b.
func (n *fwdNode) childKnown(b byte) uint16 {
	switch n.depth {
	case 0:
		return uint16(b) << 8
	case 1:
		return n.known | uint16(b)
	}
	return n.known
}
