package ptrie

import (
	"github.com/cockroachdb/errors"
)

// Index is a permanent handle of a key stored in a Stable set.
type Index uint32

// entry is the metadata behind an Index.
type entry struct {
	node handle // forward node owning the key's bucket; noNode once erased
	path byte   // child slot of node holding the bucket
	pos  int    // position in the bucket, re-checked against the bucket's ids
}

// trie is the engine shared by Set and Stable.
type trie struct {
	cfg     config
	nodes   *pool[fwdNode]
	buckets *pool[bucket]
	entries *linked[entry] // nil unless indices are tracked
	size    int
}

func (t *trie) init(cfg config, track bool) {
	t.cfg = cfg
	t.nodes = newPool[fwdNode](cfg.allocSize)
	t.buckets = newPool[bucket](cfg.allocSize)
	if track {
		t.entries = newLinked[entry](cfg.allocSize)
	}

	if h := t.nodes.get(); h != rootNode {
		panic(errors.AssertionFailedf("root allocated at handle %d", h))
	}
	t.nodes.at(rootNode).parent = noNode
}

func (t *trie) tracked() bool {
	return t.entries != nil
}

// spot is where a key lives or would live.
type spot struct {
	node   handle
	fwd    *fwdNode
	slot   byte
	shape  shape
	bucket *bucket // nil if the slot holds no bucket yet
	head   uint16
	tail   []byte
}

// locate descends the forward nodes along the encoded key and stops at the
// first child slot that is not a forward node.
func (t *trie) locate(key []byte) spot {
	var (
		h = rootNode
		n = t.nodes.at(h)
		b = encAt(key, n.depth)
	)

	for r := n.child(b); r.isNode(); r = n.child(b) {
		h = r.handle()
		n = t.nodes.at(h)
		b = encAt(key, n.depth)
	}

	sp := spot{
		node:  h,
		fwd:   n,
		slot:  b,
		shape: n.shape(t.cfg.heapBound),
		head:  encHead(key, n.depth),
		tail:  encTail(key, n.depth),
	}

	if r := n.child(b); r.isBucket() {
		sp.bucket = t.buckets.at(r.handle())
	}

	return sp
}

// lookup returns the spot of key and the key's position in its bucket.
func (t *trie) lookup(key []byte) (spot, int, bool) {
	if len(key) > MaxKeyLen {
		return spot{}, -1, false
	}

	sp := t.locate(key)
	if sp.bucket == nil {
		return sp, -1, false
	}

	pos, ok := sp.bucket.find(sp.shape, sp.head, sp.tail)

	return sp, pos, ok
}

// Len returns the number of keys in the set.
func (t *trie) Len() int {
	return t.size
}

// Exists reports whether the key is in the set.
func (t *trie) Exists(key []byte) bool {
	_, _, ok := t.lookup(key)
	return ok
}

func (t *trie) insert(key []byte) (Index, bool) {
	t.cfg.checkKey(key)

	sp, pos, ok := t.lookup(key)
	if ok {
		if t.tracked() {
			return sp.bucket.ids[pos], false
		}
		return 0, false
	}

	if sp.bucket == nil {
		h := t.buckets.get()
		sp.fwd.setChild(sp.slot, bucketRef(h))
		sp.bucket = t.buckets.at(h)
	}

	var id Index

	if t.tracked() {
		id = Index(t.entries.alloc())
	}

	pos = sp.bucket.add(sp.shape, sp.head, sp.tail, id, t.tracked())

	if t.tracked() {
		*t.entries.at(handle(id)) = entry{node: sp.node, path: sp.slot, pos: pos}
	}

	t.size++

	if sp.bucket.len() > t.cfg.splitBound {
		t.split(sp.node, sp.slot)
	}

	return id, true
}

func (t *trie) erase(key []byte) (Index, bool) {
	sp, pos, ok := t.lookup(key)
	if !ok {
		return 0, false
	}

	var id Index

	if t.tracked() {
		id = sp.bucket.ids[pos]
		t.entries.at(handle(id)).node = noNode
	}

	sp.bucket.remove(sp.shape, pos)
	t.size--

	if t.tracked() {
		// entries behind pos moved one position down
		for i := pos; i < len(sp.bucket.ids); i++ {
			t.entries.at(handle(sp.bucket.ids[i])).pos = i
		}
	}

	if sp.bucket.len() == 0 {
		t.buckets.put(sp.fwd.child(sp.slot).handle())
		sp.fwd.setChild(sp.slot, 0)
		t.prune(sp.node)
	}

	return id, true
}

// split replaces the over-full bucket in slot of node h with a new forward
// node and distributes the entries by their next encoded byte. Entries keep
// their relative order. Children still over the bound are split again.
func (t *trie) split(h handle, slot byte) {
	var (
		parent = t.nodes.at(h)
		oh     = parent.child(slot).handle()
		old    = t.buckets.at(oh)
		oshape = parent.shape(t.cfg.heapBound)
		nh     = t.nodes.get()
		fwd    = t.nodes.at(nh)
	)

	fwd.parent = h
	fwd.path = slot
	fwd.depth = parent.depth + 1
	fwd.known = parent.childKnown(slot)

	var (
		nshape = fwd.shape(t.cfg.heapBound)
		track  = t.tracked()
		over   = -1
	)

	old.each(oshape, func(i int, head uint16, tail []byte) bool {
		var (
			c    = byte(head)
			next byte
		)

		if len(tail) > 0 {
			next, tail = tail[0], tail[1:]
		}

		r := fwd.child(c)
		if r.empty() {
			r = bucketRef(t.buckets.get())
			fwd.setChild(c, r)
		}

		var (
			child = t.buckets.at(r.handle())
			id    Index
		)

		if track {
			id = old.ids[i]
		}

		pos := child.add(nshape, head<<8|uint16(next), tail, id, track)

		if track {
			*t.entries.at(handle(id)) = entry{node: nh, path: c, pos: pos}
		}

		if child.len() > t.cfg.splitBound {
			over = int(c)
		}

		return true
	})

	parent.setChild(slot, nodeRef(nh))
	t.buckets.put(oh)

	if over >= 0 {
		t.split(nh, byte(over))
	}
}

// prune unlinks forward nodes left without children, from h up to (but not
// including) the root.
func (t *trie) prune(h handle) {
	for h != rootNode {
		n := t.nodes.at(h)
		if n.numChildren() > 0 {
			return
		}

		parent, path := n.parent, n.path

		t.nodes.put(h)
		t.nodes.at(parent).setChild(path, 0)

		h = parent
	}
}
