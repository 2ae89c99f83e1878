package bmap

import (
	"github.com/vipss/meshset/meshrand"
	"github.com/vipss/meshset/pool"
	"github.com/vipss/meshset/univ"
)

// Iter is a cursor over the entries of a Map. The map must
// not be changed while an Iter over it is in use.
//
// Typical use:
//
//	for it := m.Iter(); it.Valid(); it.Next() {
//		use(it.Key(), it.Value())
//	}
type Iter struct {
	m *Map

	// bucket and cur hold the position of a storage-order
	// iterator.
	bucket int
	cur    pool.Ref

	// snap holds the entries of a randomized iterator,
	// in the order they will be visited, and i holds
	// the index of the current one.
	snap   []Node
	i      int
	random bool
}

// Iter returns an iterator that visits the entries of m in
// storage order. Two iterators over a map that has not changed
// in between visit the entries in the same order.
func (m *Map) Iter() Iter {
	it := Iter{
		m:      m,
		bucket: -1,
	}
	it.nextBucket()
	return it
}

// RandIter returns an iterator that visits the entries of m
// in an order drawn from r. Iterating twice over the same unchanged
// map with r in the same state gives the same order.
//
// The iterator holds a copy of the entries; if it's abandoned
// before the end, Close should be called to account for its release.
func (m *Map) RandIter(r *meshrand.Rand) Iter {
	it := Iter{
		m:      m,
		random: true,
	}
	if m.n == 0 {
		return it
	}
	it.snap = m.nodes.SpecialAlloc(m.n)
	i := 0
	for b := range m.buckets {
		for ref := m.buckets[b]; ref != pool.Nil; {
			nd := m.nodes.Get(ref)
			it.snap[i] = Node{key: nd.key, val: nd.val}
			i++
			ref = nd.next
		}
	}
	r.Shuffle(len(it.snap), func(i, j int) {
		it.snap[i], it.snap[j] = it.snap[j], it.snap[i]
	})
	return it
}

// Valid reports whether the iterator is positioned
// at an entry.
func (it *Iter) Valid() bool {
	if it.random {
		return it.i < len(it.snap)
	}
	return it.cur != pool.Nil
}

// Key returns the key of the current entry.
// It panics if the iterator is not valid.
func (it *Iter) Key() univ.Univ {
	return it.node().key
}

// Value returns the value of the current entry.
// It panics if the iterator is not valid.
func (it *Iter) Value() univ.Univ {
	return it.node().val
}

// Next advances the iterator to the next entry.
func (it *Iter) Next() {
	if !it.Valid() {
		panic("bmap: Next called on exhausted iterator")
	}
	if it.random {
		it.i++
		if it.i == len(it.snap) {
			it.Close()
		}
		return
	}
	it.cur = it.m.nodes.Get(it.cur).next
	if it.cur == pool.Nil {
		it.nextBucket()
	}
}

// Close releases any resources held by the iterator
// and leaves it invalid.
func (it *Iter) Close() {
	if it.snap != nil {
		it.m.nodes.SpecialFree(it.snap)
		it.snap = nil
	}
	it.i = 0
	it.cur = pool.Nil
	it.bucket = len(it.m.buckets)
}

func (it *Iter) node() *Node {
	if !it.Valid() {
		panic("bmap: iterator is not positioned at an entry")
	}
	if it.random {
		return &it.snap[it.i]
	}
	return it.m.nodes.Get(it.cur)
}

// nextBucket moves the iterator to the head of the next
// non-empty chain after the current bucket.
func (it *Iter) nextBucket() {
	for it.bucket++; it.bucket < len(it.m.buckets); it.bucket++ {
		if r := it.m.buckets[it.bucket]; r != pool.Nil {
			it.cur = r
			return
		}
	}
	it.cur = pool.Nil
}
