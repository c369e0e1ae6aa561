package reconcile

import (
	"slices"

	"sidmatch/internal/sid"
)

// Origin points back at the first cell an identifier was seen in.
type Origin struct {
	Table  string
	Line   int
	Column int
}

// Set is an unordered collection of identifiers with first-seen origins.
// The zero value is ready to use.
type Set struct {
	origins map[sid.ID]Origin
}

// NewSet returns a Set holding ids with no origin information.
func NewSet(ids ...sid.ID) *Set {
	s := &Set{}
	for _, id := range ids {
		s.Add(id, Origin{})
	}
	return s
}

// Add inserts id. The origin of an id already present is kept. It reports
// whether id was new.
func (s *Set) Add(id sid.ID, origin Origin) bool {
	if s.origins == nil {
		s.origins = make(map[sid.ID]Origin)
	}
	if _, ok := s.origins[id]; ok {
		return false
	}
	s.origins[id] = origin
	return true
}

// Has reports membership.
func (s *Set) Has(id sid.ID) bool {
	if s == nil {
		return false
	}
	_, ok := s.origins[id]
	return ok
}

// Len returns the number of distinct identifiers.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.origins)
}

// Origin returns where id was first seen.
func (s *Set) Origin(id sid.ID) (Origin, bool) {
	if s == nil {
		return Origin{}, false
	}
	o, ok := s.origins[id]
	return o, ok
}

// Sorted returns the members in ascending order. Fixed-width digit strings
// sort lexically the same as numerically.
func (s *Set) Sorted() []sid.ID {
	if s == nil {
		return nil
	}
	out := make([]sid.ID, 0, len(s.origins))
	for id := range s.origins {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
