package pool

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestFreeStackLIFO(t *testing.T) {
	var s freeStack
	for i := Ref(1); i <= 100; i++ {
		s.Push(i)
		qt.Assert(t, qt.Equals(s.Len(), int(i)))
	}
	qt.Assert(t, qt.Equals(len(s.buf), 128))
	for i := Ref(100); i >= 1; i-- {
		qt.Assert(t, qt.Equals(s.Pop(), i))
	}
	qt.Assert(t, qt.Equals(s.Len(), 0))
	qt.Assert(t, qt.PanicMatches(func() { s.Pop() }, `pool: Pop called on empty free stack`))
}

func TestFreeStackReset(t *testing.T) {
	var s freeStack
	s.Push(3)
	s.Push(4)
	s.Reset()
	qt.Assert(t, qt.Equals(s.Len(), 0))
	qt.Assert(t, qt.IsNil(s.buf))
	s.Push(5)
	qt.Assert(t, qt.Equals(s.Pop(), Ref(5)))
}

func TestLocate(t *testing.T) {
	p := New[int](Config{FirstChunk: 4})
	for i := 0; i < 64; i++ {
		p.Alloc()
	}
	// Chunk sizes are 4, 4, 8, 16, 32.
	tests := []struct {
		r      Ref
		chunk  int
		offset int
	}{
		{1, 0, 0},
		{4, 0, 3},
		{5, 1, 0},
		{8, 1, 3},
		{9, 2, 0},
		{16, 2, 7},
		{17, 3, 0},
		{33, 4, 0},
		{64, 4, 31},
	}
	for _, test := range tests {
		c, off := p.locate(test.r)
		qt.Check(t, qt.Equals(c, test.chunk), qt.Commentf("ref %d", test.r))
		qt.Check(t, qt.Equals(off, test.offset), qt.Commentf("ref %d", test.r))
	}
}
