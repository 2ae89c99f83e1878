package set

import (
	"github.com/vipss/meshset/bmap"
	"github.com/vipss/meshset/pool"
	"github.com/vipss/meshset/univ"
)

// Pool allocates sets of a single type. The sets themselves
// live in one pool.Pool and all their members are stored in
// nodes from one shared node pool, so creating and discarding
// many short-lived sets reuses the same memory.
//
// A set obtained from a Pool must not be used after it has
// been deleted or the pool has been released.
type Pool[T any, C univ.Codec[T]] struct {
	sets  *pool.Pool[Set[T, C]]
	nodes *bmap.NodePool
}

// NewPool returns a new pool of sets. The configuration applies
// to both the set headers and their nodes; the node pool's name
// has ".nodes" appended.
func NewPool[T any, C univ.Codec[T]](cfg pool.Config) *Pool[T, C] {
	ncfg := cfg
	ncfg.Name += ".nodes"
	return &Pool[T, C]{
		sets:  pool.New[Set[T, C]](cfg),
		nodes: bmap.NewNodePool(ncfg),
	}
}

// New returns a new empty set and a reference to it.
func (p *Pool[T, C]) New() (pool.Ref, *Set[T, C]) {
	r, s := p.sets.New()
	s.b.m.Init(p.nodes)
	return r, s
}

// Get returns the set referred to by r.
func (p *Pool[T, C]) Get(r pool.Ref) *Set[T, C] {
	return p.sets.Get(r)
}

// Delete clears the set referred to by r and returns
// it to the pool.
func (p *Pool[T, C]) Delete(r pool.Ref) {
	p.sets.Get(r).Clear()
	p.sets.Free(r)
}

// Release drops all memory held by the pool, invalidating
// every set allocated from it.
func (p *Pool[T, C]) Release() {
	p.sets.Release()
	p.nodes.Release()
}

// Stats returns statistics for the set headers and the
// nodes holding their members.
func (p *Pool[T, C]) Stats() (sets, nodes pool.Stats) {
	return p.sets.Stats(), p.nodes.Stats()
}

// Verify that Pool implements pool.Allocator.
var _ pool.Allocator[Set[int, univ.Int[int]]] = (*Pool[int, univ.Int[int]])(nil)

// Free is an alias for Delete, so that Pool implements
// pool.Allocator.
func (p *Pool[T, C]) Free(r pool.Ref) {
	p.Delete(r)
}
