package ptrie

import (
	"fmt"
	"io"
	"math/bits"
	"strings"

	"github.com/dustin/go-humanize"
)

// Stats describes the shape and memory use of a trie.
type Stats struct {
	Keys     int // live keys
	Nodes    int // forward nodes, including the root
	Buckets  int
	MaxDepth int // deepest bucket

	Inline   int // entries with inline tails
	Indirect int // entries with heap-allocated tails

	BucketBytes uint64 // headers, indices and inline tails
	HeapBytes   uint64 // indirect tails
	Indices     int    // stable indices handed out, erased ones included
}

func (s Stats) String() string {
	return fmt.Sprintf("keys:%s nodes:%s buckets:%s depth:%d inline:%s indirect:%s bucket-mem:%s heap-mem:%s",
		humanize.Comma(int64(s.Keys)),
		humanize.Comma(int64(s.Nodes)),
		humanize.Comma(int64(s.Buckets)),
		s.MaxDepth,
		humanize.Comma(int64(s.Inline)),
		humanize.Comma(int64(s.Indirect)),
		humanize.IBytes(s.BucketBytes),
		humanize.IBytes(s.HeapBytes),
	)
}

// Stats walks the trie and collects its statistics.
func (t *trie) Stats() Stats {
	st := Stats{Keys: t.size}

	if t.tracked() {
		st.Indices = t.entries.len()
	}

	t.statsRec(rootNode, &st)

	return st
}

func (t *trie) statsRec(h handle, st *Stats) {
	n := t.nodes.at(h)
	sh := n.shape(t.cfg.heapBound)

	st.Nodes++

	t.eachChild(n, func(_ byte, r ref) {
		if r.isNode() {
			t.statsRec(r.handle(), st)
			return
		}

		bk := t.buckets.at(r.handle())
		inline, heap := bk.footprint()

		st.Buckets++
		st.BucketBytes += inline
		st.HeapBytes += heap
		st.Indirect += len(bk.heap)
		st.Inline += bk.len() - len(bk.heap)

		if sh.depth > st.MaxDepth {
			st.MaxDepth = sh.depth
		}
	})
}

// eachChild calls fn for every occupied child slot of n in slot order.
func (t *trie) eachChild(n *fwdNode, fn func(slot byte, r ref)) {
	for w, bmp := range n.bitmap {
		for ; bmp != 0; bmp &= bmp - 1 {
			slot := byte(w<<6 | bits.TrailingZeros64(bmp))
			fn(slot, n.child(slot))
		}
	}
}

// Dump writes a human readable picture of the trie to w.
func (t *trie) Dump(w io.Writer) {
	fmt.Fprintf(w, "### %v\n", t.Stats())
	t.dumpRec(w, rootNode, "")
}

func (t *trie) dumpRec(w io.Writer, h handle, indent string) {
	n := t.nodes.at(h)
	sh := n.shape(t.cfg.heapBound)

	fmt.Fprintf(w, "%sNODE %d depth:%d known:%04x children:%d\n", indent, h, n.depth, n.known, n.numChildren())

	indent += "  "

	t.eachChild(n, func(slot byte, r ref) {
		if r.isNode() {
			fmt.Fprintf(w, "%s%02x ->\n", indent, slot)
			t.dumpRec(w, r.handle(), indent+"  ")
			return
		}

		bk := t.buckets.at(r.handle())
		fmt.Fprintf(w, "%s%02x -> BUCKET %d entries:%d\n", indent, slot, r.handle(), bk.len())

		bk.each(sh, func(i int, head uint16, tail []byte) bool {
			var b strings.Builder

			fmt.Fprintf(&b, "%s  [%d] head:%04x tail:%x", indent, i, head, tail)
			if sh.indirect(len(tail)) {
				b.WriteString(" (heap)")
			}
			if len(bk.ids) > 0 {
				fmt.Fprintf(&b, " idx:%d", bk.ids[i])
			}

			fmt.Fprintln(w, b.String())

			return true
		})
	})
}
