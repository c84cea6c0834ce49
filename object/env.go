package object

import (
	"github.com/google/btree"
)

// Binding is one variable of the store.
type Binding struct {
	Name  string
	Value Number
}

func byName(a, b Binding) bool {
	return a.Name < b.Name
}

// Store holds every variable of a run. Entries are created on the first
// assignment and overwritten afterwards; nothing is ever removed.
type Store struct {
	tree *btree.BTreeG[Binding]
}

func NewStore() *Store {
	return &Store{
		tree: btree.NewG[Binding](4, byName),
	}
}

func (s *Store) Resolve(name string) (Number, bool) {
	b, ok := s.tree.Get(Binding{Name: name})
	return b.Value, ok
}

// Assign binds val to name, replacing any previous value.
func (s *Store) Assign(name string, val Number) Number {
	s.tree.ReplaceOrInsert(Binding{Name: name, Value: val})
	return val
}

func (s *Store) Len() int {
	return s.tree.Len()
}

// Snapshot returns every binding sorted by name.
func (s *Store) Snapshot() []Binding {
	out := make([]Binding, 0, s.tree.Len())
	s.tree.Ascend(func(b Binding) bool {
		out = append(out, b)
		return true
	})
	return out
}
