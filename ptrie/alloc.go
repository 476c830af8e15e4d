package ptrie

import (
	"unsafe"
)

// handle addresses a slot in a linked container.
type handle = uint32

// linked is a growable container of fixed-capacity blocks. Blocks are never
// reallocated, so a pointer returned by at stays valid for the lifetime of
// the container.
type linked[T any] struct {
	blocks [][]T
	perBlk int
	size   int
}

func newLinked[T any](allocSize int) *linked[T] {
	var zero T

	per := allocSize
	if sz := int(unsafe.Sizeof(zero)); sz > 0 {
		per /= sz
	}
	if per < 1 {
		per = 1
	}

	return &linked[T]{perBlk: per}
}

// alloc appends a zeroed slot and returns its handle.
func (l *linked[T]) alloc() handle {
	if l.size == len(l.blocks)*l.perBlk {
		l.blocks = append(l.blocks, make([]T, l.perBlk))
	}
	h := handle(l.size)
	l.size++
	return h
}

func (l *linked[T]) at(h handle) *T {
	return &l.blocks[int(h)/l.perBlk][int(h)%l.perBlk]
}

func (l *linked[T]) len() int {
	return l.size
}

// pool adds a free-list to a linked container so that released slots are
// handed out again by subsequent get calls.
type pool[T any] struct {
	items *linked[T]
	free  []handle
}

func newPool[T any](allocSize int) *pool[T] {
	return &pool[T]{
		items: newLinked[T](allocSize),
		free:  make([]handle, 0, 16),
	}
}

// get returns a handle to a zeroed slot, reusing a released one if possible.
func (p *pool[T]) get() handle {
	if l := len(p.free); l > 0 {
		h := p.free[l-1]
		p.free = p.free[:l-1]
		return h
	}
	return p.items.alloc()
}

// put clears the slot and stores its handle in the free-list.
func (p *pool[T]) put(h handle) {
	var zero T
	*p.items.at(h) = zero
	p.free = append(p.free, h)
}

func (p *pool[T]) at(h handle) *T {
	return p.items.at(h)
}

// live returns the number of slots currently handed out.
func (p *pool[T]) live() int {
	return p.items.len() - len(p.free)
}
