package univ_test

import (
	"math"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/vipss/meshset/pool"
	"github.com/vipss/meshset/univ"
)

func roundTrip[T comparable, C univ.Codec[T]](t *testing.T, values ...T) {
	t.Helper()
	var c C
	for _, x := range values {
		qt.Check(t, qt.Equals(c.Decode(c.Encode(x)), x), qt.Commentf("value %v", x))
	}
}

func TestIntRoundTrip(t *testing.T) {
	roundTrip[int, univ.Int[int]](t, 0, 1, -1, 42, math.MinInt, math.MaxInt)
	roundTrip[int8, univ.Int[int8]](t, 0, -128, 127, -1)
	roundTrip[int32, univ.Int[int32]](t, math.MinInt32, math.MaxInt32, -7)
	roundTrip[uint64, univ.Int[uint64]](t, 0, math.MaxUint64, 1<<63)
	roundTrip[uint16, univ.Int[uint16]](t, 0, math.MaxUint16)
}

func TestIntDistinctEncodings(t *testing.T) {
	var c univ.Int[int16]
	seen := make(map[univ.Univ]int16)
	for i := math.MinInt16; i <= math.MaxInt16; i++ {
		u := c.Encode(int16(i))
		prev, ok := seen[u]
		qt.Assert(t, qt.IsFalse(ok), qt.Commentf("%d and %d share encoding %#x", prev, i, u))
		seen[u] = int16(i)
	}
}

type tag uint8

const (
	tagVertex tag = iota
	tagEdge
	tagFace
)

func TestEnumRoundTrip(t *testing.T) {
	roundTrip[tag, univ.Int[tag]](t, tagVertex, tagEdge, tagFace)
}

func TestBoolRoundTrip(t *testing.T) {
	roundTrip[bool, univ.Bool](t, true, false)
	qt.Assert(t, qt.Equals(univ.Bool{}.Encode(false), univ.Univ(0)))
}

func TestFloatRoundTrip(t *testing.T) {
	roundTrip[float64, univ.Float64](t, 0, 1.5, -2.25, math.MaxFloat64, math.SmallestNonzeroFloat64, math.Inf(-1))
	roundTrip[float32, univ.Float32](t, 0, 1.5, -3, math.MaxFloat32)

	// The sign of zero is preserved.
	var c univ.Float64
	negZero := math.Copysign(0, -1)
	qt.Assert(t, qt.IsTrue(math.Signbit(c.Decode(c.Encode(negZero)))))
	qt.Assert(t, qt.Not(qt.Equals(c.Encode(negZero), c.Encode(0))))

	// NaN does not compare equal to itself, so check the bits.
	nan := math.NaN()
	qt.Assert(t, qt.Equals(math.Float64bits(c.Decode(c.Encode(nan))), math.Float64bits(nan)))
}

func TestRefRoundTrip(t *testing.T) {
	p := pool.New[int](pool.Config{})
	refs := []pool.Ref{pool.Nil}
	for i := 0; i < 10; i++ {
		refs = append(refs, p.Alloc())
	}
	roundTrip[pool.Ref, univ.Ref](t, refs...)
}
