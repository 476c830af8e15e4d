package ptrie

import (
	"bytes"
)

// encAt returns byte p of the encoded key [L>>8, L&0xFF, key...].
// Bytes past the end read as zero.
func encAt(key []byte, p int) byte {
	switch {
	case p == 0:
		return byte(len(key) >> 8)
	case p == 1:
		return byte(len(key))
	case p-2 < len(key):
		return key[p-2]
	}
	return 0
}

// encHead returns the 16-bit header of key stored at depth d.
func encHead(key []byte, d int) uint16 {
	return uint16(encAt(key, d))<<8 | uint16(encAt(key, d+1))
}

// encTail returns the part of key stored after the header at depth d.
func encTail(key []byte, d int) []byte {
	if d >= len(key) {
		return nil
	}
	return key[d:]
}

// shape is a view of the entries of one bucket: how deep the bucket sits and
// which bits of the key length its path already pins down.
type shape struct {
	depth     int
	known     uint16
	heapBound int
}

// keyLen recovers the full key length of an entry from its header.
func (s shape) keyLen(head uint16) int {
	switch s.depth {
	case 0:
		return int(head)
	case 1:
		return int(s.known&0xFF00 | head>>8)
	}
	return int(s.known)
}

// tailLen returns the number of tail bytes stored for an entry.
func (s shape) tailLen(head uint16) int {
	if n := s.keyLen(head) - s.depth; n > 0 {
		return n
	}
	return 0
}

func (s shape) indirect(n int) bool {
	return n >= s.heapBound
}

// bucket is a terminal trie container. Entries live in parallel runs: one
// header per entry, one index per entry (stable sets only), inline tails
// packed back to back in data and indirect tails in heap, both in entry order.
type bucket struct {
	heads []uint16
	ids   []Index
	data  []byte
	heap  [][]byte
}

func (b *bucket) len() int {
	return len(b.heads)
}

// span locates the tail of entry i: off is its offset in data for inline
// tails, ext its position in heap for indirect ones, n its length.
func (b *bucket) span(s shape, i int) (off, ext, n int) {
	if s.depth >= 2 {
		// every entry has the same length here
		n = s.tailLen(0)
		if s.indirect(n) {
			return 0, i, n
		}
		return n * i, 0, n
	}

	for _, head := range b.heads[:i] {
		if m := s.tailLen(head); s.indirect(m) {
			ext++
		} else {
			off += m
		}
	}

	return off, ext, s.tailLen(b.heads[i])
}

func (b *bucket) tailAt(s shape, off, ext, n int) []byte {
	if s.indirect(n) {
		return b.heap[ext]
	}
	return b.data[off : off+n : off+n]
}

func (b *bucket) tail(s shape, i int) []byte {
	off, ext, n := b.span(s, i)
	return b.tailAt(s, off, ext, n)
}

// find returns the position of the entry with the given header and tail.
func (b *bucket) find(s shape, head uint16, tail []byte) (int, bool) {
	var off, ext int

	for i, h := range b.heads {
		n := s.tailLen(h)
		ind := s.indirect(n)

		if h == head && n == len(tail) && bytes.Equal(b.tailAt(s, off, ext, n), tail) {
			return i, true
		}

		if ind {
			ext++
		} else {
			off += n
		}
	}

	return -1, false
}

// each calls fn for every entry in order until fn returns false.
func (b *bucket) each(s shape, fn func(i int, head uint16, tail []byte) bool) bool {
	var off, ext int

	for i, head := range b.heads {
		n := s.tailLen(head)

		if !fn(i, head, b.tailAt(s, off, ext, n)) {
			return false
		}

		if s.indirect(n) {
			ext++
		} else {
			off += n
		}
	}

	return true
}

// add appends an entry and returns its position. The tail is copied.
func (b *bucket) add(s shape, head uint16, tail []byte, id Index, track bool) int {
	b.heads = append(b.heads, head)
	if track {
		b.ids = append(b.ids, id)
	}

	if s.indirect(len(tail)) {
		b.heap = append(b.heap, bytes.Clone(tail))
	} else {
		b.data = append(b.data, tail...)
	}

	return len(b.heads) - 1
}

// remove deletes entry i shifting all later entries one position down.
func (b *bucket) remove(s shape, i int) {
	off, ext, n := b.span(s, i)

	if s.indirect(n) {
		last := len(b.heap) - 1
		copy(b.heap[ext:], b.heap[ext+1:])
		b.heap[last] = nil // release the tail
		b.heap = b.heap[:last]
	} else {
		b.data = append(b.data[:off], b.data[off+n:]...)
	}

	b.heads = append(b.heads[:i], b.heads[i+1:]...)
	if len(b.ids) > 0 {
		b.ids = append(b.ids[:i], b.ids[i+1:]...)
	}
}

// footprint returns the number of bytes held by the bucket's runs.
func (b *bucket) footprint() (inline, heap uint64) {
	inline = uint64(2*len(b.heads) + 4*len(b.ids) + len(b.data))
	for _, t := range b.heap {
		heap += uint64(len(t))
	}
	return inline, heap
}
