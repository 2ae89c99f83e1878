// Package set implements sets of word-sized values.
//
// [BSet] is an untyped set of [univ.Univ] values, written once for
// all element types. [Set] is a generic wrapper that translates its
// elements to and from Univ through a [univ.Codec], so that only
// correctly typed values ever reach the untyped set:
//
//	var s set.Set[int, univ.Int[int]]
//	s.Add(1)
//	for it := s.Iter(); it.Valid(); it.Next() {
//		fmt.Println(it.Item())
//	}
//
// Sets can be traversed in storage order, or in an order drawn from
// a [meshrand.Rand] so that algorithms consuming the elements do not
// depend on the order in which they were inserted.
//
// Sets are not safe for concurrent use, and must not be changed
// while they are being iterated over.
package set

import (
	"github.com/vipss/meshset/bmap"
	"github.com/vipss/meshset/meshrand"
	"github.com/vipss/meshset/univ"
)

// present is the value stored against every member.
const present univ.Univ = 1

// BSet is a set of Univ values.
//
// The zero value is an empty set.
type BSet struct {
	m bmap.Map
}

// NewBSet returns an empty set whose storage is allocated
// from nodes. If nodes is nil, the set uses a private pool.
func NewBSet(nodes *bmap.NodePool) *BSet {
	s := new(BSet)
	s.m.Init(nodes)
	return s
}

// Clear removes all members of the set.
func (s *BSet) Clear() {
	s.m.Clear()
}

// Enter adds e, which must not already be a member.
func (s *BSet) Enter(e univ.Univ) {
	s.m.Enter(e, present)
}

// Add adds e to the set and reports whether
// it was not already a member.
func (s *BSet) Add(e univ.Univ) bool {
	return s.m.SpecialAdd(e, present)
}

// Remove removes e from the set and reports whether
// it was a member.
func (s *BSet) Remove(e univ.Univ) bool {
	return s.m.Remove(e)
}

// Contains reports whether e is a member of the set.
func (s *BSet) Contains(e univ.Univ) bool {
	return s.m.Contains(e)
}

// Num returns the number of members.
func (s *BSet) Num() int {
	return s.m.Num()
}

// Empty reports whether the set has no members.
func (s *BSet) Empty() bool {
	return s.m.Empty()
}

// GetOne returns an arbitrary member without removing it.
// It panics if the set is empty.
func (s *BSet) GetOne() univ.Univ {
	if s.Empty() {
		panic("set: GetOne called on empty set")
	}
	it := s.m.Iter()
	return it.Key()
}

// RemoveOne removes and returns an arbitrary member.
// It panics if the set is empty.
func (s *BSet) RemoveOne() univ.Univ {
	if s.Empty() {
		panic("set: RemoveOne called on empty set")
	}
	e := s.GetOne()
	s.Remove(e)
	return e
}

// Check verifies the internal consistency of the set's storage.
func (s *BSet) Check() error {
	return s.m.Check()
}

// Iter returns an iterator over the members of s in storage order.
func (s *BSet) Iter() BSetIter {
	return BSetIter{s.m.Iter()}
}

// RandIter returns an iterator over the members of s in an order
// drawn from r. Iterating twice over an unchanged set with r in
// the same state gives the same order.
func (s *BSet) RandIter(r *meshrand.Rand) BSetIter {
	return BSetIter{s.m.RandIter(r)}
}

// BSetIter is a cursor over the members of a BSet.
type BSetIter struct {
	mi bmap.Iter
}

// Valid reports whether the iterator is positioned at a member.
func (it *BSetIter) Valid() bool {
	return it.mi.Valid()
}

// Item returns the current member.
// It panics if the iterator is not valid.
func (it *BSetIter) Item() univ.Univ {
	return it.mi.Key()
}

// Next advances to the next member.
func (it *BSetIter) Next() {
	it.mi.Next()
}

// Close releases the resources of a randomized iterator
// that is abandoned before the end.
func (it *BSetIter) Close() {
	it.mi.Close()
}
