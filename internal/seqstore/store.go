// internal/seqstore/store.go
package seqstore

import (
	"fmt"
	"strings"
)

// Sequence is an immutable protein record.
type Sequence struct {
	ID       string
	Residues string
}

// Store maps identifiers to sequences. Insertion order is kept for
// deterministic iteration; lookups are O(1). A Store is read-only once built
// and safe for concurrent readers.
type Store struct {
	order []string
	byID  map[string]Sequence
}

// New returns an empty store sized for n records.
func New(n int) *Store {
	return &Store{order: make([]string, 0, n), byID: make(map[string]Sequence, n)}
}

// FromSequences builds a store from seqs. Duplicate ids are an error.
func FromSequences(seqs ...Sequence) (*Store, error) {
	s := New(len(seqs))
	for _, q := range seqs {
		if err := s.add(q); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) add(q Sequence) error {
	if q.ID == "" {
		return fmt.Errorf("empty sequence id")
	}
	if _, dup := s.byID[q.ID]; dup {
		return fmt.Errorf("duplicate sequence id %q", q.ID)
	}
	q.Residues = strings.ToUpper(q.Residues)
	s.order = append(s.order, q.ID)
	s.byID[q.ID] = q
	return nil
}

// Len reports the number of sequences.
func (s *Store) Len() int { return len(s.order) }

// Get looks up id.
func (s *Store) Get(id string) (Sequence, bool) {
	q, ok := s.byID[id]
	return q, ok
}

// IDs returns identifiers in insertion order.
func (s *Store) IDs() []string { return append([]string(nil), s.order...) }

// Each calls fn for every sequence in insertion order until fn returns false.
func (s *Store) Each(fn func(Sequence) bool) {
	for _, id := range s.order {
		if !fn(s.byID[id]) {
			return
		}
	}
}
