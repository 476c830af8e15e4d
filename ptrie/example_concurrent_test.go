package ptrie_test

import (
	"fmt"
	"sync"

	"github.com/aglyzov/go-ptrie/ptrie"
)

// SyncStable wraps a [ptrie.Stable] for concurrent use.
//
// Lookups and unpacks only read the trie and may run in parallel under the
// read lock. Inserts and erases restructure buckets and forward nodes and
// need the write lock.
type SyncStable struct {
	mu sync.RWMutex
	st *ptrie.Stable
}

func NewSyncStable(opts ...ptrie.Option) (*SyncStable, error) {
	st, err := ptrie.NewStable(opts...)
	if err != nil {
		return nil, err
	}
	return &SyncStable{st: st}, nil
}

// Insert is a sync adapter for [ptrie.Stable.Insert].
func (s *SyncStable) Insert(key []byte) (ptrie.Index, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.st.Insert(key)
}

// Erase is a sync adapter for [ptrie.Stable.Erase].
func (s *SyncStable) Erase(key []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.st.Erase(key)
}

// Find is a sync adapter for [ptrie.Stable.Find].
func (s *SyncStable) Find(key []byte) (ptrie.Index, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.st.Find(key)
}

// Unpack is a sync adapter for [ptrie.Stable.Unpack].
func (s *SyncStable) Unpack(idx ptrie.Index) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.st.Unpack(idx)
}

func (s *SyncStable) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.st.Len()
}

func ExampleStable_concurrent() {
	s, err := NewSyncStable(ptrie.WithSplitBound(8))
	if err != nil {
		panic(err)
	}

	var wg sync.WaitGroup

	for w := 0; w < 4; w++ {
		wg.Add(1)

		go func(w int) {
			defer wg.Done()

			for i := 0; i < 1000; i++ {
				key := []byte(fmt.Sprintf("worker-%d/key-%04d", w, i))

				idx, _ := s.Insert(key)
				if got := s.Unpack(idx); string(got) != string(key) {
					panic(fmt.Sprintf("unpacked %q, want %q", got, key))
				}

				if i%2 == 1 {
					s.Erase(key)
				}
			}
		}(w)
	}

	wg.Wait()

	_, odd := s.Find([]byte("worker-3/key-0999"))
	_, even := s.Find([]byte("worker-3/key-0998"))

	fmt.Println(s.Len(), odd, even)

	// Output:
	// 2000 false true
}
