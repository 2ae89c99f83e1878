package set

import (
	"iter"

	"github.com/vipss/meshset/bmap"
	"github.com/vipss/meshset/meshrand"
	"github.com/vipss/meshset/univ"
)

// Set is a set of values of type T, translated to Univ
// by the codec C.
//
// The zero value is an empty set.
type Set[T any, C univ.Codec[T]] struct {
	b BSet
}

// New returns an empty set whose storage is allocated
// from nodes. If nodes is nil, the set uses a private pool.
func New[T any, C univ.Codec[T]](nodes *bmap.NodePool) *Set[T, C] {
	s := new(Set[T, C])
	s.b.m.Init(nodes)
	return s
}

func (s *Set[T, C]) encode(x T) univ.Univ {
	var c C
	return c.Encode(x)
}

func (s *Set[T, C]) decode(u univ.Univ) T {
	var c C
	return c.Decode(u)
}

// Clear removes all members of the set.
func (s *Set[T, C]) Clear() { s.b.Clear() }

// Enter adds e, which must not already be a member.
func (s *Set[T, C]) Enter(e T) { s.b.Enter(s.encode(e)) }

// Add adds e to the set and reports whether
// it was not already a member.
func (s *Set[T, C]) Add(e T) bool { return s.b.Add(s.encode(e)) }

// Remove removes e from the set and reports whether
// it was a member.
func (s *Set[T, C]) Remove(e T) bool { return s.b.Remove(s.encode(e)) }

// Contains reports whether e is a member of the set.
func (s *Set[T, C]) Contains(e T) bool { return s.b.Contains(s.encode(e)) }

// Num returns the number of members.
func (s *Set[T, C]) Num() int { return s.b.Num() }

// Empty reports whether the set has no members.
func (s *Set[T, C]) Empty() bool { return s.b.Empty() }

// GetOne returns an arbitrary member without removing it.
// It panics if the set is empty.
func (s *Set[T, C]) GetOne() T { return s.decode(s.b.GetOne()) }

// RemoveOne removes and returns an arbitrary member.
// It panics if the set is empty.
func (s *Set[T, C]) RemoveOne() T { return s.decode(s.b.RemoveOne()) }

// Check verifies the internal consistency of the set's storage.
func (s *Set[T, C]) Check() error { return s.b.Check() }

// Iter returns an iterator over the members of s in storage order.
func (s *Set[T, C]) Iter() SetIter[T, C] {
	return SetIter[T, C]{s.b.Iter()}
}

// RandIter returns an iterator over the members of s in an
// order drawn from r.
func (s *Set[T, C]) RandIter(r *meshrand.Rand) SetIter[T, C] {
	return SetIter[T, C]{s.b.RandIter(r)}
}

// All returns an iterator over all the members of s
// in storage order.
func (s *Set[T, C]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := s.Iter(); it.Valid(); it.Next() {
			if !yield(it.Item()) {
				return
			}
		}
	}
}

// SetIter is a cursor over the members of a Set.
type SetIter[T any, C univ.Codec[T]] struct {
	bi BSetIter
}

// Valid reports whether the iterator is positioned at a member.
func (it *SetIter[T, C]) Valid() bool { return it.bi.Valid() }

// Item returns the current member.
// It panics if the iterator is not valid.
func (it *SetIter[T, C]) Item() T {
	var c C
	return c.Decode(it.bi.Item())
}

// Next advances to the next member.
func (it *SetIter[T, C]) Next() { it.bi.Next() }

// Close releases the resources of a randomized iterator
// that is abandoned before the end.
func (it *SetIter[T, C]) Close() { it.bi.Close() }
