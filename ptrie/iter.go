package ptrie

import (
	"math/bits"
)

// Iter calls the handler for every key in the set, in no particular order.
// The key is only valid during the call. The handler can continue the
// process by returning true or abort with false. Iter returns whether all
// keys were iterated.
func (t *trie) Iter(handler func(key []byte) bool) bool {
	return t.walk(func(_ Index, key []byte) bool {
		return handler(key)
	})
}

// Keys returns copies of all keys in the set.
func (t *trie) Keys() [][]byte {
	keys := make([][]byte, 0, t.size)

	t.walk(func(_ Index, key []byte) bool {
		keys = append(keys, append([]byte(nil), key...))
		return true
	})

	return keys
}

// walk visits every entry depth-first. The index is zero for untracked sets.
func (t *trie) walk(fn func(idx Index, key []byte) bool) bool {
	var (
		prefix = make([]byte, 0, 16)
		buf    []byte
	)

	return t.walkNode(rootNode, prefix, &buf, fn)
}

func (t *trie) walkNode(h handle, prefix []byte, buf *[]byte, fn func(Index, []byte) bool) bool {
	n := t.nodes.at(h)
	sh := n.shape(t.cfg.heapBound)

	for w, bmp := range n.bitmap {
		for ; bmp != 0; bmp &= bmp - 1 {
			var (
				slot = byte(w<<6 | bits.TrailingZeros64(bmp))
				r    = n.child(slot)
			)

			if r.isNode() {
				if !t.walkNode(r.handle(), append(prefix, slot), buf, fn) {
					return false
				}
				continue
			}

			bk := t.buckets.at(r.handle())
			ok := bk.each(sh, func(i int, head uint16, tail []byte) bool {
				*buf = assemble((*buf)[:0], prefix, head, tail, sh.keyLen(head))

				var id Index
				if len(bk.ids) > 0 {
					id = bk.ids[i]
				}

				return fn(id, *buf)
			})

			if !ok {
				return false
			}
		}
	}

	return true
}
