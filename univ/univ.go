// Package univ defines Univ, a word-sized opaque value, and the
// codecs that translate concrete types to and from it.
//
// Containers written in terms of Univ (see the bmap and set
// packages) can then hold values of any type that has a [Codec]
// without being duplicated for each type. Type safety is restored
// by generic wrappers that only accept values through a codec.
//
// A codec must be a bijection on the values that are actually
// stored: Decode(Encode(x)) == x. Nothing checks that a value fits
// in a Univ; only types whose representation fits in 64 bits
// should be given codecs.
package univ

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/vipss/meshset/pool"
)

// Univ is an opaque machine word. It carries no type
// information; its meaning is defined by the Codec
// that produced it.
type Univ uint64

// Codec defines the translation between values of type T
// and Univ. Implementations are expected to be stateless,
// so that the zero value of a codec type can be used
// (see the Int codec for an example).
type Codec[T any] interface {
	Encode(x T) Univ
	Decode(u Univ) T
}

// Int is a Codec for integer types. Signed values are
// sign-extended, so negative values survive the round trip.
type Int[T constraints.Integer] struct {
	_ [0]func(T) // disallow comparison, and conversion between Int[X] and Int[Y]
}

func (Int[T]) Encode(x T) Univ { return Univ(x) }
func (Int[T]) Decode(u Univ) T { return T(u) }

// Bool is a Codec for bool.
type Bool struct{}

func (Bool) Encode(x bool) Univ {
	if x {
		return 1
	}
	return 0
}

func (Bool) Decode(u Univ) bool { return u != 0 }

// Float64 is a Codec for float64 that preserves the
// exact bit pattern, including NaN payloads and
// the sign of zero.
type Float64 struct{}

func (Float64) Encode(x float64) Univ { return Univ(math.Float64bits(x)) }
func (Float64) Decode(u Univ) float64 { return math.Float64frombits(uint64(u)) }

// Float32 is a Codec for float32.
type Float32 struct{}

func (Float32) Encode(x float32) Univ { return Univ(math.Float32bits(x)) }
func (Float32) Decode(u Univ) float32 { return math.Float32frombits(uint32(u)) }

// Ref is a Codec for pool references. It is the way to store
// "pointers" to pool-allocated objects in a Univ container:
// unlike a real pointer, a Ref stays valid as a number
// without hiding anything from the garbage collector.
type Ref struct{}

func (Ref) Encode(x pool.Ref) Univ { return Univ(x) }
func (Ref) Decode(u Univ) pool.Ref { return pool.Ref(u) }

// Verify that the codecs implement Codec.
var (
	_ Codec[int]      = Int[int]{}
	_ Codec[uint8]    = Int[uint8]{}
	_ Codec[bool]     = Bool{}
	_ Codec[float64]  = Float64{}
	_ Codec[float32]  = Float32{}
	_ Codec[pool.Ref] = Ref{}
)
