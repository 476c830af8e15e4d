package ptrie

import (
	"encoding/binary"
	"math/bits"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/cockroachdb/errors"
)

// fakeKeys generates a mixed pool of keys: sentences (long, heap tails),
// short random byte strings (including empty ones), big-endian integers
// (long shared prefixes) and path-like strings.
func fakeKeys(fake *gofakeit.Faker, total int) [][]byte {
	keys := make([][]byte, total)

	for i := range keys {
		switch fake.Number(0, 3) {
		case 0:
			keys[i] = []byte(fake.HipsterSentence(fake.Number(1, 12)))
		case 1:
			key := make([]byte, fake.Number(0, 6))
			for j := range key {
				key[j] = byte(fake.Number(0, 255))
			}
			keys[i] = key
		case 2:
			keys[i] = binary.BigEndian.AppendUint32(nil, uint32(fake.Number(0, 2000)))
		default:
			keys[i] = []byte("key/" + fake.Word() + "/" + fake.Word())
		}
	}

	return keys
}

// reorder returns the byte-reversed big-endian form of v, spreading
// consecutive integers over the first trie levels.
func reorder(v uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, bits.ReverseBytes32(v))
}

func bigEndian(v uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, v)
}

// recoverErr runs f and returns the error it panicked with, if any.
func recoverErr(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = errors.Newf("%v", r)
			}
		}
	}()

	f()

	return nil
}
