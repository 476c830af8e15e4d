package ptrie

import (
	"bytes"
	"sort"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElems_Encode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte{1, 2, 0xff}, EncodeElems(nil, []uint8{1, 2, 0xff}))
	assert.Equal(t, []byte{0x01, 0x02, 0x00, 0x03}, EncodeElems(nil, []uint16{0x0102, 3}))
	assert.Equal(t, []byte{0, 0, 0, 1, 0xde, 0xad, 0xbe, 0xef}, EncodeElems(nil, []uint32{1, 0xdeadbeef}))
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 1, 0}, EncodeElems(nil, []uint64{256}))
	assert.Equal(t, []byte("k:\x00\x07"), EncodeElems([]byte("k:"), []uint16{7}))
	assert.Empty(t, EncodeElems(nil, []uint32{}))
}

func TestElems_Decode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []uint8{1, 2, 0xff}, DecodeElems[uint8](nil, []byte{1, 2, 0xff}))
	assert.Equal(t, []uint16{0x0102, 3}, DecodeElems[uint16](nil, []byte{0x01, 0x02, 0x00, 0x03}))
	assert.Equal(t, []uint64{256}, DecodeElems[uint64](nil, []byte{0, 0, 0, 0, 0, 0, 1, 0}))
	assert.Equal(t, []uint32{9, 1}, DecodeElems([]uint32{9}, []byte{0, 0, 0, 1}))

	err := recoverErr(func() { DecodeElems[uint32](nil, []byte{1, 2, 3}) })

	assert.True(t, errors.Is(err, ErrBadElemWidth), err)
}

func TestElems_OrderPreserved(t *testing.T) {
	t.Parallel()

	var (
		fake = gofakeit.New(42)
		seqs = make([][]uint32, 200)
	)

	for i := range seqs {
		seq := make([]uint32, fake.Number(0, 4))
		for j := range seq {
			seq[j] = fake.Uint32()
		}
		seqs[i] = seq
	}

	// encoded keys sort the same way as their element sequences
	sort.Slice(seqs, func(i, j int) bool {
		a, b := seqs[i], seqs[j]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})

	for i := 1; i < len(seqs); i++ {
		prev, cur := EncodeElems(nil, seqs[i-1]), EncodeElems(nil, seqs[i])

		assert.LessOrEqual(t, bytes.Compare(prev, cur), 0, "%v vs %v", seqs[i-1], seqs[i])
	}
}

func TestStable_Elems(t *testing.T) {
	t.Parallel()

	s := MustNewStable(WithElemWidth(8), WithSplitBound(2))

	seqs := [][]uint64{{}, {1}, {1, 2}, {1, 3}, {1 << 40}, {0, 0, 0}}
	idxs := make([]Index, len(seqs))

	for i, seq := range seqs {
		idx, isNew := s.Insert(EncodeElems(nil, seq))

		require.True(t, isNew)
		idxs[i] = idx
	}

	for i, seq := range seqs {
		got := DecodeElems[uint64](nil, s.Unpack(idxs[i]))

		assert.Equal(t, len(seq), len(got))

		if len(seq) != 0 {
			assert.Equal(t, seq, got)
		}
	}
}
