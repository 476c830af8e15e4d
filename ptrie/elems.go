package ptrie

import (
	"encoding/binary"
	"unsafe"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// EncodeElems appends fixed-width elements to dst as big-endian bytes, so the
// byte order of two keys matches the order of their elements.
func EncodeElems[E constraints.Unsigned](dst []byte, elems []E) []byte {
	var zero E

	switch unsafe.Sizeof(zero) {
	case 1:
		for _, e := range elems {
			dst = append(dst, byte(e))
		}
	case 2:
		for _, e := range elems {
			dst = binary.BigEndian.AppendUint16(dst, uint16(e))
		}
	case 4:
		for _, e := range elems {
			dst = binary.BigEndian.AppendUint32(dst, uint32(e))
		}
	default:
		for _, e := range elems {
			dst = binary.BigEndian.AppendUint64(dst, uint64(e))
		}
	}

	return dst
}

// DecodeElems appends the elements encoded in b to dst. It panics if b is not
// a whole number of elements.
func DecodeElems[E constraints.Unsigned](dst []E, b []byte) []E {
	var zero E

	w := int(unsafe.Sizeof(zero))
	if len(b)%w != 0 {
		panic(errors.Wrapf(ErrBadElemWidth, "%d bytes, element width %d", len(b), w))
	}

	for ; len(b) > 0; b = b[w:] {
		switch w {
		case 1:
			dst = append(dst, E(b[0]))
		case 2:
			dst = append(dst, E(binary.BigEndian.Uint16(b)))
		case 4:
			dst = append(dst, E(binary.BigEndian.Uint32(b)))
		default:
			dst = append(dst, E(binary.BigEndian.Uint64(b)))
		}
	}

	return dst
}
