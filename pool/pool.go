// Package pool implements a fixed-size slot allocator for values of
// a single type.
//
// A [Pool] hands out slots in an arena made of chunks. Freed slots
// are recycled through a separate stack of free slot references, so
// allocation and release are O(1) and values of the same type stay
// packed together in memory. Chunks are never returned individually:
// they are dropped together when the pool is released, at which point
// every outstanding [Ref] becomes invalid.
//
// Each chunk after the first doubles the capacity of the pool: the
// first two chunks hold Config.FirstChunk slots each, and chunk k
// holds FirstChunk<<(k-1) slots.
//
// # Contracts
//
// Freeing a Ref twice, freeing a Ref obtained from another pool, or
// using a Ref after it has been freed is undefined. These conditions
// are not checked unless the package is built with the pooldebug
// build tag, in which case they panic.
//
// # Thread Safety
//
// Pools are not thread-safe. Callers must synchronize access
// externally.
package pool

import (
	"fmt"
	"log/slog"
	"math"
	"math/bits"
	"unsafe"
)

// DefaultFirstChunk is the number of slots in the first chunk
// of a pool when Config.FirstChunk is not set.
const DefaultFirstChunk = 16

// maxSlots bounds the number of slots so that every slot
// has a distinct non-zero Ref.
const maxSlots = math.MaxUint32

// Ref refers to a slot in a Pool. The zero Ref, Nil,
// never refers to a slot.
type Ref uint32

// Nil is the Ref that refers to no slot.
const Nil Ref = 0

// Config holds the parameters of a Pool.
type Config struct {
	// Name identifies the pool in logs and statistics.
	Name string

	// FirstChunk holds the number of slots in the first chunk.
	// It is rounded up to a power of two. If it's zero,
	// DefaultFirstChunk is used.
	FirstChunk int

	// Logger receives debug messages when the pool grows
	// or is released. If it's nil, nothing is logged.
	Logger *slog.Logger
}

// Allocator is implemented by types that hand out
// slots for values of type T.
type Allocator[T any] interface {
	// New allocates a zeroed slot and returns its Ref
	// and its address.
	New() (Ref, *T)

	// Get returns the address of the slot referred to by r.
	Get(r Ref) *T

	// Free releases the slot referred to by r.
	Free(r Ref)
}

// Verify that Pool implements Allocator.
var _ Allocator[int] = (*Pool[int])(nil)

// Pool allocates slots holding values of type T.
//
// The zero value is OK to use; it behaves like a pool
// created with the zero Config.
type Pool[T any] struct {
	name   string
	logger *slog.Logger

	// first holds the number of slots in the first chunk; it's
	// always a power of two once the pool is initialized.
	// shift holds log2(first).
	first int
	shift int

	// chunks holds all the slot storage.
	chunks [][]T

	// offset holds the number of slots of the most
	// recent chunk that have been handed out at least once.
	offset int

	// free holds slots that have been freed.
	free freeStack

	live        int
	specialLive int

	debug debugState
}

// New returns a new pool configured by cfg.
func New[T any](cfg Config) *Pool[T] {
	p := &Pool[T]{
		name:   cfg.Name,
		logger: cfg.Logger,
	}
	p.setFirst(cfg.FirstChunk)
	return p
}

func (p *Pool[T]) setFirst(n int) {
	if n <= 0 {
		n = DefaultFirstChunk
	}
	p.shift = bits.Len(uint(n - 1))
	p.first = 1 << p.shift
}

// Name returns the name of the pool.
func (p *Pool[T]) Name() string {
	return p.name
}

// ElemSize returns the size in bytes of a single slot.
func (p *Pool[T]) ElemSize() uintptr {
	var x T
	return unsafe.Sizeof(x)
}

// Alloc allocates a zeroed slot and returns a reference to it.
// It never fails; the pool grows when there are no free slots.
func (p *Pool[T]) Alloc() Ref {
	var r Ref
	if p.free.Len() > 0 {
		r = p.free.Pop()
	} else {
		if len(p.chunks) == 0 || p.offset == len(p.chunks[len(p.chunks)-1]) {
			p.grow()
		}
		r = Ref(p.chunkBase(len(p.chunks)-1) + p.offset + 1)
		p.offset++
	}
	p.live++
	p.debug.alloc(r)
	return r
}

// New is like Alloc but also returns the address of the new slot.
func (p *Pool[T]) New() (Ref, *T) {
	r := p.Alloc()
	return r, p.Get(r)
}

// Get returns the address of the slot referred to by r.
// The address remains valid until r is freed or the
// pool is released.
func (p *Pool[T]) Get(r Ref) *T {
	if r == Nil {
		panic("pool: Get called with Nil Ref")
	}
	p.debug.check(r)
	c, off := p.locate(r)
	return &p.chunks[c][off]
}

// Free returns the slot referred to by r to the pool.
// The slot is zeroed so that it does not keep any
// values it referred to alive.
func (p *Pool[T]) Free(r Ref) {
	if r == Nil {
		panic("pool: Free called with Nil Ref")
	}
	p.debug.free(r)
	c, off := p.locate(r)
	var zero T
	p.chunks[c][off] = zero
	p.free.Push(r)
	p.live--
}

// SpecialAlloc allocates n contiguous values of type T directly
// from the Go allocator, bypassing the pool's slots. It is for
// allocations whose size does not match a single slot.
// The result should be passed to SpecialFree when it is
// no longer needed.
func (p *Pool[T]) SpecialAlloc(n int) []T {
	p.specialLive += n
	return make([]T, n)
}

// SpecialFree releases memory obtained from SpecialAlloc.
// The slices passed to SpecialFree must together cover each
// allocation exactly once; s may be a piece of an allocation.
func (p *Pool[T]) SpecialFree(s []T) {
	p.specialLive -= len(s)
	clear(s)
}

// Live returns the number of slots currently allocated.
func (p *Pool[T]) Live() int {
	return p.live
}

// Release drops all the memory held by the pool. All Refs
// previously returned by the pool become invalid.
// The pool may be used again afterwards.
func (p *Pool[T]) Release() {
	if p.logger != nil {
		p.logger.Debug("pool released",
			"pool", p.name,
			"chunks", len(p.chunks),
			"live", p.live,
		)
	}
	p.chunks = nil
	p.offset = 0
	p.free.Reset()
	p.live = 0
	p.debug.reset()
}

// Stats holds statistics about a Pool.
type Stats struct {
	Name     string
	ElemSize uintptr

	// Chunks holds the number of chunks allocated.
	Chunks int

	// Capacity holds the total number of slots in all chunks.
	// It's always equal to Live + Free + Unsliced.
	Capacity int

	// Live holds the number of slots currently allocated.
	Live int

	// Free holds the number of slots on the free stack.
	Free int

	// Unsliced holds the number of slots in the most recent
	// chunk that have never been handed out.
	Unsliced int

	// SpecialLive holds the number of values allocated
	// with SpecialAlloc and not yet freed.
	SpecialLive int
}

// Stats returns statistics about the pool.
func (p *Pool[T]) Stats() Stats {
	s := Stats{
		Name:        p.name,
		ElemSize:    p.ElemSize(),
		Chunks:      len(p.chunks),
		Live:        p.live,
		Free:        p.free.Len(),
		SpecialLive: p.specialLive,
	}
	if n := len(p.chunks); n > 0 {
		last := len(p.chunks[n-1])
		s.Capacity = p.chunkBase(n-1) + last
		s.Unsliced = last - p.offset
	}
	return s
}

// grow adds a new chunk to the pool.
func (p *Pool[T]) grow() {
	if p.first == 0 {
		p.setFirst(0)
	}
	k := len(p.chunks)
	size := p.chunkSize(k)
	if int64(p.chunkBase(k))+int64(size) > maxSlots {
		panic(fmt.Sprintf("pool %q: too many slots", p.name))
	}
	p.chunks = append(p.chunks, make([]T, size))
	p.offset = 0
	if p.logger != nil {
		p.logger.Debug("pool grew",
			"pool", p.name,
			"chunk", k,
			"slots", size,
			"capacity", p.chunkBase(k)+size,
		)
	}
}

// chunkSize returns the number of slots in chunk k.
func (p *Pool[T]) chunkSize(k int) int {
	if k == 0 {
		return p.first
	}
	return p.first << (k - 1)
}

// chunkBase returns the index of the first slot in chunk k.
func (p *Pool[T]) chunkBase(k int) int {
	if k == 0 {
		return 0
	}
	return p.first << (k - 1)
}

// locate returns the chunk and the offset within
// that chunk of the slot referred to by r.
func (p *Pool[T]) locate(r Ref) (int, int) {
	i := int(r - 1)
	c := bits.Len(uint(i >> p.shift))
	return c, i - p.chunkBase(c)
}
