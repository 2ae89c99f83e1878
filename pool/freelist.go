package pool

import "math/bits"

// freeStack holds the Refs of slots that have been freed and not
// yet handed out again. It is kept apart from the slots themselves
// so that a free slot's memory is never reused for bookkeeping.
//
// The zero value is an empty stack.
type freeStack struct {
	// buf holds the backing slice. Its length
	// is always a power of two or zero.
	buf []Ref

	// n holds the number of Refs on the stack;
	// they are stored in buf[:n].
	n int
}

// Len returns the number of Refs on the stack.
func (s *freeStack) Len() int {
	return s.n
}

// Push pushes r onto the top of the stack.
func (s *freeStack) Push(r Ref) {
	s.ensureCap(s.n + 1)
	s.buf[s.n] = r
	s.n++
}

// Pop removes and returns the Ref at the top of the stack.
// It panics if the stack is empty.
func (s *freeStack) Pop() Ref {
	if s.n <= 0 {
		panic("pool: Pop called on empty free stack")
	}
	s.n--
	r := s.buf[s.n]
	s.buf[s.n] = Nil
	return r
}

// Reset empties the stack, releasing its storage.
func (s *freeStack) Reset() {
	s.buf = nil
	s.n = 0
}

// ensureCap grows the stack if needed so that its capacity is at least n.
func (s *freeStack) ensureCap(n int) {
	if n <= len(s.buf) {
		return
	}
	buf := make([]Ref, 1<<bits.Len(uint(n-1)))
	copy(buf, s.buf[:s.n])
	s.buf = buf
}
