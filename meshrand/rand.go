// Package meshrand provides a small deterministic pseudo-random
// number generator for use by algorithms that need reproducible
// randomness, such as randomized traversal of a set.
//
// The generator is the additive feedback generator used by the
// classic random(3) with a 32-word state buffer, so a given seed
// produces the same sequence everywhere.
//
// A Rand is not safe for concurrent use. There is no package-level
// default instance: code that wants randomized behaviour must be
// given a *Rand explicitly.
package meshrand

import "math"

const (
	// DefaultSeed is the seed used by New when none is given explicitly.
	DefaultSeed = 1

	// NGauss is the number of uniform draws summed by Gauss and DGauss.
	NGauss = 10
)

const (
	deg = 31 // degree of the feedback polynomial
	sep = 3  // separation between the front and rear cursors

	uniffactor = 1.0 / (1 << 31)
)

var (
	gaussoffset = -float64(NGauss) / 2
	gaussfactor = math.Sqrt(12.0 / NGauss)
)

// Rand is a seedable pseudo-random number source.
type Rand struct {
	state [deg]uint32
	// f and r index the front and rear cursors into state.
	f, r int
}

// New returns a generator seeded with seed.
func New(seed int32) *Rand {
	r := new(Rand)
	r.Seed(seed)
	return r
}

// Seed resets the generator so that it produces the same
// sequence as New(seed).
func (r *Rand) Seed(seed int32) {
	if seed == 0 {
		seed = 1
	}
	r.state[0] = uint32(seed)
	word := int64(seed)
	for i := 1; i < deg; i++ {
		// Park-Miller "minimal standard" step, computed
		// without overflow (Schrage's method).
		hi := word / 127773
		lo := word % 127773
		word = 16807*lo - 2836*hi
		if word < 0 {
			word += 2147483647
		}
		r.state[i] = uint32(word)
	}
	r.f = sep
	r.r = 0
	for i := 0; i < 10*deg; i++ {
		r.Int()
	}
}

// Int returns the next value in the sequence as a non-negative
// 31-bit integer.
func (r *Rand) Int() int32 {
	r.state[r.f] += r.state[r.r]
	v := r.state[r.f] >> 1
	r.f++
	if r.f >= deg {
		r.f = 0
		r.r++
	} else {
		r.r++
		if r.r >= deg {
			r.r = 0
		}
	}
	return int32(v)
}

// DUnif returns a uniformly distributed value in [0, 1).
func (r *Rand) DUnif() float64 {
	return float64(r.Int()) * uniffactor
}

// Unif returns a uniformly distributed value in [0, 1).
func (r *Rand) Unif() float32 {
	// Use the top 24 bits only so that the conversion
	// to float32 can never round up to 1.
	return float32(r.Int()>>7) / (1 << 24)
}

// DGauss returns an approximately normally distributed value
// with mean 0 and standard deviation 1. It is the scaled sum of
// NGauss uniform draws, so its tails are bounded.
func (r *Rand) DGauss() float64 {
	sum := 0.0
	for i := 0; i < NGauss; i++ {
		sum += r.DUnif()
	}
	return (sum + gaussoffset) * gaussfactor
}

// Gauss is like DGauss but returns a float32.
func (r *Rand) Gauss() float32 {
	return float32(r.DGauss())
}

// Intn returns a uniformly distributed integer in [0, n).
// It panics if n <= 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		panic("meshrand: Intn called with non-positive argument")
	}
	if n > math.MaxInt32 {
		panic("meshrand: Intn argument too large")
	}
	if n&(n-1) == 0 {
		// Power of two: the high bits are the better ones.
		return int(int64(r.Int()) * int64(n) >> 31)
	}
	// Reject the top partial interval so every result
	// is equally likely.
	limit := int32(math.MaxInt32 - (math.MaxInt32%n+1)%n)
	v := r.Int()
	for v > limit {
		v = r.Int()
	}
	return int(v) % n
}

// Shuffle randomizes the order of n elements using swap
// to exchange the elements at two indexes.
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, r.Intn(i+1))
	}
}
