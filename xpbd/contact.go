package xpbd

import (
	"iter"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// CollisionPair is a broad-phase candidate. It is a superset of the contacts found for a tick.
type CollisionPair struct {
	A, B Handle
}

// Contact is a resolved collision between A and B. Normal is a unit vector pointing from A to B.
// In a static contact, A is the dynamic particle and B the static one.
type Contact struct {
	A, B   Handle
	Normal mgl64.Vec2
}

// contactSet accumulates the contacts of one tick across all substeps. A pair found in several
// substeps keeps a single entry, positioned where it was first seen and carrying the latest normal.
type contactSet struct {
	m *orderedmap.OrderedMap[CollisionPair, Contact]
}

func newContactSet() *contactSet {
	return &contactSet{m: orderedmap.NewOrderedMap[CollisionPair, Contact]()}
}

func (s *contactSet) add(a, b Handle, n mgl64.Vec2) {
	key := CollisionPair{A: a, B: b}
	if el := s.m.GetElement(key); el != nil {
		el.Value.Normal = n
		return
	}
	s.m.Set(key, Contact{A: a, B: b, Normal: n})
}

// each yields the contacts in the order they were first found.
func (s *contactSet) each() iter.Seq[Contact] {
	return func(yield func(Contact) bool) {
		for el := s.m.Front(); el != nil; el = el.Next() {
			if !yield(el.Value) {
				return
			}
		}
	}
}

func (s *contactSet) reset() {
	for el := s.m.Front(); el != nil; {
		next := el.Next()
		s.m.Delete(el.Key)
		el = next
	}
}

func (s *contactSet) len() int {
	return s.m.Len()
}
