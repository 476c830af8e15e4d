package ptrie

// Set is a compressed trie set of byte-string keys.
type Set struct {
	trie
}

// New returns an empty Set configured with the given options.
func New(opts ...Option) (*Set, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	s := &Set{}
	s.init(cfg, false)

	return s, nil
}

// MustNew is like New but panics on invalid options.
func MustNew(opts ...Option) *Set {
	s, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Insert adds the key to the set. It returns false if the key was already
// present. The key is copied.
func (s *Set) Insert(key []byte) bool {
	_, isNew := s.insert(key)
	return isNew
}

// Erase removes the key from the set and reports whether it was present.
func (s *Set) Erase(key []byte) bool {
	_, ok := s.erase(key)
	return ok
}
