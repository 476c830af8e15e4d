package ptrie

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// Stable is a Set handing out a permanent Index for every inserted key.
// The key can be rebuilt from its Index with Unpack for as long as the key
// stays in the set, whatever happens to the rest of the trie.
type Stable struct {
	trie
}

// NewStable returns an empty Stable configured with the given options.
func NewStable(opts ...Option) (*Stable, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	s := &Stable{}
	s.init(cfg, true)

	return s, nil
}

// MustNewStable is like NewStable but panics on invalid options.
func MustNewStable(opts ...Option) *Stable {
	s, err := NewStable(opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Insert adds the key and returns its index. If the key is already present
// its existing index is returned together with false.
func (s *Stable) Insert(key []byte) (Index, bool) {
	return s.insert(key)
}

// Find returns the index of a stored key.
func (s *Stable) Find(key []byte) (Index, bool) {
	sp, pos, ok := s.lookup(key)
	if !ok {
		return 0, false
	}
	return sp.bucket.ids[pos], true
}

// Erase removes the key and reports whether it was present. The index of the
// removed key is never handed out again.
func (s *Stable) Erase(key []byte) bool {
	_, ok := s.erase(key)
	return ok
}

// Unpack returns a copy of the key stored under idx. It panics if idx does
// not refer to a live key.
func (s *Stable) Unpack(idx Index) []byte {
	var stack [32]byte

	k := s.resolve(idx, stack[:0])

	return k.appendTo(make([]byte, 0, k.total))
}

// AppendUnpack appends the key stored under idx to dst and returns the
// extended buffer. It panics if idx does not refer to a live key.
func (s *Stable) AppendUnpack(dst []byte, idx Index) []byte {
	var stack [32]byte

	return s.resolve(idx, stack[:0]).appendTo(dst)
}

// stored is a key as it sits in the trie: the bytes consumed by forward
// nodes, the entry header and the entry tail.
type stored struct {
	path  []byte
	head  uint16
	tail  []byte
	total int // key length
}

func (k stored) appendTo(dst []byte) []byte {
	return assemble(dst, k.path, k.head, k.tail, k.total)
}

// resolve gathers the pieces of the key stored under idx. Path bytes are
// appended to path.
func (t *trie) resolve(idx Index, path []byte) stored {
	var (
		bk, at = t.entryBucket(idx)
		e      = t.entries.at(handle(idx))
	)

	// climb to the root collecting the bytes consumed by the forward nodes
	for h := e.node; h != rootNode; {
		n := t.nodes.at(h)
		path = append(path, n.path)
		h = n.parent
	}

	slices.Reverse(path)

	k := stored{path: path, head: bk.heads[at]}
	sh := shape{depth: len(path), heapBound: t.cfg.heapBound}

	// the path pins none, the high byte or all of the key length
	switch len(path) {
	case 0:
		k.total = int(k.head)
	case 1:
		sh.known = uint16(path[0]) << 8
		k.total = int(path[0])<<8 | int(k.head>>8)
	default:
		sh.known = uint16(path[0])<<8 | uint16(path[1])
		k.total = int(sh.known)
	}

	if own := t.nodes.at(e.node).shape(t.cfg.heapBound); own != sh {
		panic(errors.AssertionFailedf("index %d: path %x disagrees with node shape %+v", idx, path, own))
	}

	k.tail = bk.tail(sh, at)

	return k
}

// IterIndex calls the handler with the index and key of every stored key.
// The key is only valid during the call. It returns whether all keys were
// iterated.
func (s *Stable) IterIndex(handler func(idx Index, key []byte) bool) bool {
	return s.walk(handler)
}

// entryBucket returns the bucket holding the key of idx and the key's
// position in it.
func (t *trie) entryBucket(idx Index) (*bucket, int) {
	if int(idx) >= t.entries.len() {
		panic(errors.AssertionFailedf("index %d out of range [0..%d)", idx, t.entries.len()))
	}

	e := t.entries.at(handle(idx))
	if e.node == noNode {
		panic(errors.AssertionFailedf("index %d refers to an erased key", idx))
	}

	r := t.nodes.at(e.node).child(e.path)
	if !r.isBucket() {
		panic(errors.AssertionFailedf("index %d: slot %02x of node %d holds no bucket", idx, e.path, e.node))
	}

	bk := t.buckets.at(r.handle())

	if e.pos < bk.len() && bk.ids[e.pos] == idx {
		return bk, e.pos
	}

	// the position hint is stale - rescan
	if at := slices.Index(bk.ids, idx); at >= 0 {
		return bk, at
	}

	panic(errors.AssertionFailedf("index %d not found in its bucket", idx))
}

// assemble appends the key of length total whose encoded form starts with
// prefix, continues with the two header bytes and ends with tail.
func assemble(dst, prefix []byte, head uint16, tail []byte, total int) []byte {
	var (
		d   = len(prefix)
		end = total + 2 // encoded length
	)

	for p := 2; p < end; p++ {
		switch {
		case p < d:
			dst = append(dst, prefix[p])
		case p == d:
			dst = append(dst, byte(head>>8))
		case p == d+1:
			dst = append(dst, byte(head))
		default:
			return append(dst, tail[:end-p]...)
		}
	}

	return dst
}
