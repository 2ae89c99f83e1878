// Package bmap implements a hash map from [univ.Univ] keys to
// [univ.Univ] values. It is the storage underneath the set package.
//
// Map nodes are allocated from a [pool.Pool]. Many maps can share a
// single [NodePool], in which case nodes freed by one map are reused
// by the others; a map created without a pool gets a private one.
//
// Iteration comes in two flavours: [Map.Iter] walks the map in its
// storage order, which depends only on the keys and the order in
// which they were inserted and removed; [Map.RandIter] walks it in
// an order chosen by a [meshrand.Rand].
//
// A Map must not be copied after first use, and is not safe for
// concurrent use.
package bmap

import (
	"iter"

	"github.com/cockroachdb/errors"

	"github.com/vipss/meshset/pool"
	"github.com/vipss/meshset/univ"
)

// minBuckets holds the initial size of the bucket table.
const minBuckets = 8

// Node is a single association in a Map. It is exported
// only so that node pools can be created and shared;
// its fields are private to the map.
type Node struct {
	key  univ.Univ
	val  univ.Univ
	next pool.Ref
}

// NodePool is a pool that Map nodes are allocated from.
type NodePool = pool.Pool[Node]

// NewNodePool returns a new node pool that can be
// shared between maps.
func NewNodePool(cfg pool.Config) *NodePool {
	return pool.New[Node](cfg)
}

// Map is a hash-table-based mapping from Univ keys to Univ values.
//
// The zero value is an empty map with a private node pool.
type Map struct {
	nodes *NodePool
	// private is true when nodes is owned by this map alone.
	private bool

	// buckets holds the head of each hash chain. Its length
	// is always a power of two or zero.
	buckets []pool.Ref

	// n holds the number of entries in the map.
	n int
}

// New returns a new empty map that allocates its nodes from nodes.
// If nodes is nil, the map uses a private pool.
func New(nodes *NodePool) *Map {
	m := new(Map)
	m.Init(nodes)
	return m
}

// Init makes m an empty map that allocates its nodes from nodes,
// discarding any previous contents without freeing them.
// It is for maps embedded in other values; see New.
func (m *Map) Init(nodes *NodePool) {
	*m = Map{
		nodes: nodes,
	}
}

// Nodes returns the pool that the map allocates nodes from.
// Once the pool has been handed out, other maps may allocate
// from it, so Clear frees the map's nodes one by one.
func (m *Map) Nodes() *NodePool {
	m.init()
	m.private = false
	return m.nodes
}

func (m *Map) init() {
	if m.nodes == nil {
		m.nodes = NewNodePool(pool.Config{Name: "bmap"})
		m.private = true
	}
}

// Num returns the number of entries in the map.
func (m *Map) Num() int {
	return m.n
}

// Empty reports whether the map has no entries.
func (m *Map) Empty() bool {
	return m.n == 0
}

// Enter adds an entry for k, which must not already be present
// in the map. Entering a key twice leaves the map with duplicate
// entries; use SpecialAdd when k may be present.
func (m *Map) Enter(k, v univ.Univ) {
	m.init()
	if m.n+1 > len(m.buckets) {
		m.resize()
	}
	r, nd := m.nodes.New()
	b := m.bucket(k)
	*nd = Node{
		key:  k,
		val:  v,
		next: m.buckets[b],
	}
	m.buckets[b] = r
	m.n++
}

// SpecialAdd adds an entry for k if there isn't one already,
// and reports whether it did so. An existing entry is left
// untouched.
func (m *Map) SpecialAdd(k, v univ.Univ) (isNew bool) {
	if m.find(k) != pool.Nil {
		return false
	}
	m.Enter(k, v)
	return true
}

// Contains reports whether there is an entry for k.
func (m *Map) Contains(k univ.Univ) bool {
	return m.find(k) != pool.Nil
}

// Get returns the value for k and reports whether it was found.
func (m *Map) Get(k univ.Univ) (univ.Univ, bool) {
	r := m.find(k)
	if r == pool.Nil {
		return 0, false
	}
	return m.nodes.Get(r).val, true
}

// Remove removes the entry for k, if present, and
// reports whether it was found.
func (m *Map) Remove(k univ.Univ) bool {
	if m.n == 0 {
		return false
	}
	b := m.bucket(k)
	prev := pool.Nil
	for r := m.buckets[b]; r != pool.Nil; {
		nd := m.nodes.Get(r)
		if nd.key != k {
			prev, r = r, nd.next
			continue
		}
		if prev == pool.Nil {
			m.buckets[b] = nd.next
		} else {
			m.nodes.Get(prev).next = nd.next
		}
		m.nodes.Free(r)
		m.n--
		return true
	}
	return false
}

// Clear removes all entries from the map, returning
// their nodes to the pool.
func (m *Map) Clear() {
	switch {
	case m.n == 0:
	case m.private:
		// Nothing else allocates from a private pool.
		m.nodes.Release()
	default:
		for _, r := range m.buckets {
			for r != pool.Nil {
				next := m.nodes.Get(r).next
				m.nodes.Free(r)
				r = next
			}
		}
	}
	m.buckets = nil
	m.n = 0
}

// Check verifies the internal consistency of the map.
func (m *Map) Check() error {
	if m.n > 0 && len(m.buckets) == 0 {
		return errors.Newf("bmap: %d entries but no buckets", m.n)
	}
	if len(m.buckets)&(len(m.buckets)-1) != 0 {
		return errors.Newf("bmap: bucket count %d is not a power of two", len(m.buckets))
	}
	count := 0
	for b, r := range m.buckets {
		seen := make(map[univ.Univ]bool)
		for ; r != pool.Nil; r = m.nodes.Get(r).next {
			nd := m.nodes.Get(r)
			if got := m.bucket(nd.key); got != b {
				return errors.Newf("bmap: key %#x found in bucket %d, want bucket %d", nd.key, b, got)
			}
			if seen[nd.key] {
				return errors.Newf("bmap: duplicate key %#x", nd.key)
			}
			seen[nd.key] = true
			count++
			if count > m.n {
				return errors.Newf("bmap: more nodes than the %d entries recorded", m.n)
			}
		}
	}
	if count != m.n {
		return errors.Newf("bmap: found %d nodes, want %d", count, m.n)
	}
	return nil
}

// All returns an iterator over all entries of the map in
// storage order.
func (m *Map) All() iter.Seq2[univ.Univ, univ.Univ] {
	return func(yield func(univ.Univ, univ.Univ) bool) {
		for it := m.Iter(); it.Valid(); it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// Keys returns an iterator over all keys of the map in
// storage order.
func (m *Map) Keys() iter.Seq[univ.Univ] {
	return func(yield func(univ.Univ) bool) {
		for it := m.Iter(); it.Valid(); it.Next() {
			if !yield(it.Key()) {
				return
			}
		}
	}
}

func (m *Map) find(k univ.Univ) pool.Ref {
	if m.n == 0 {
		return pool.Nil
	}
	for r := m.buckets[m.bucket(k)]; r != pool.Nil; {
		nd := m.nodes.Get(r)
		if nd.key == k {
			return r
		}
		r = nd.next
	}
	return pool.Nil
}

// bucket returns the index of the chain that holds k.
func (m *Map) bucket(k univ.Univ) int {
	return int(hash(k) & uint64(len(m.buckets)-1))
}

// resize doubles the bucket table and relinks every node
// into its new chain. Nodes are not reallocated.
func (m *Map) resize() {
	size := 2 * len(m.buckets)
	if size < minBuckets {
		size = minBuckets
	}
	old := m.buckets
	m.buckets = make([]pool.Ref, size)
	for _, r := range old {
		for r != pool.Nil {
			nd := m.nodes.Get(r)
			next := nd.next
			b := m.bucket(nd.key)
			nd.next = m.buckets[b]
			m.buckets[b] = r
			r = next
		}
	}
}

// hash scrambles k so that keys which differ only in their
// high bits, such as small negative integers, still spread
// over the table. It is the splitmix64 finalizer; it has no
// per-process seed, so storage order is reproducible.
func hash(k univ.Univ) uint64 {
	z := uint64(k)
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
