package meshrand_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/vipss/meshset/meshrand"
)

func TestKnownSequence(t *testing.T) {
	// These are the first values produced by random(3) after srandom(1).
	want := []int32{1804289383, 846930886, 1681692777, 1714636915, 1957747793, 424238335}
	r := meshrand.New(meshrand.DefaultSeed)
	got := make([]int32, len(want))
	for i := range got {
		got[i] = r.Int()
	}
	qt.Assert(t, qt.DeepEquals(got, want))
}

func TestZeroSeedIsOne(t *testing.T) {
	r0, r1 := meshrand.New(0), meshrand.New(1)
	for i := 0; i < 100; i++ {
		qt.Assert(t, qt.Equals(r0.Int(), r1.Int()))
	}
}

func TestSeedResets(t *testing.T) {
	for _, seed := range []int32{1, 2, 99, -5, math.MaxInt32} {
		t.Run(fmt.Sprint(seed), func(t *testing.T) {
			r := meshrand.New(12345)
			for i := 0; i < 37; i++ {
				r.Int()
			}
			r.Seed(seed)
			fresh := meshrand.New(seed)
			for i := 0; i < 500; i++ {
				qt.Assert(t, qt.Equals(r.Int(), fresh.Int()), qt.Commentf("seed %d draw %d", seed, i))
			}
		})
	}
}

func TestDifferentSeedsDiffer(t *testing.T) {
	r1, r2 := meshrand.New(1), meshrand.New(2)
	same := 0
	for i := 0; i < 100; i++ {
		if r1.Int() == r2.Int() {
			same++
		}
	}
	qt.Assert(t, qt.IsTrue(same < 5))
}

func TestIntRange(t *testing.T) {
	r := meshrand.New(7)
	for i := 0; i < 10000; i++ {
		v := r.Int()
		qt.Assert(t, qt.IsTrue(v >= 0), qt.Commentf("draw %d: %d", i, v))
	}
}

func TestUnifRange(t *testing.T) {
	r := meshrand.New(3)
	var sum float64
	const n = 20000
	for i := 0; i < n; i++ {
		d := r.DUnif()
		qt.Assert(t, qt.IsTrue(d >= 0 && d < 1), qt.Commentf("DUnif %v", d))
		f := r.Unif()
		qt.Assert(t, qt.IsTrue(f >= 0 && f < 1), qt.Commentf("Unif %v", f))
		sum += d
	}
	mean := sum / n
	qt.Assert(t, qt.IsTrue(math.Abs(mean-0.5) < 0.02), qt.Commentf("mean %v", mean))
}

func TestGaussMoments(t *testing.T) {
	r := meshrand.New(11)
	const n = 20000
	var sum, sumsq float64
	for i := 0; i < n; i++ {
		g := r.DGauss()
		// The sum of NGauss uniforms is bounded.
		bound := float64(meshrand.NGauss) / 2 * math.Sqrt(12.0/meshrand.NGauss)
		qt.Assert(t, qt.IsTrue(math.Abs(g) <= bound))
		sum += g
		sumsq += g * g
	}
	mean := sum / n
	variance := sumsq/n - mean*mean
	qt.Assert(t, qt.IsTrue(math.Abs(mean) < 0.05), qt.Commentf("mean %v", mean))
	qt.Assert(t, qt.IsTrue(math.Abs(variance-1) < 0.1), qt.Commentf("variance %v", variance))

	// Gauss consumes the same draws as DGauss.
	r1, r2 := meshrand.New(5), meshrand.New(5)
	qt.Assert(t, qt.Equals(r1.Gauss(), float32(r2.DGauss())))
}

func TestIntn(t *testing.T) {
	r := meshrand.New(17)
	for _, n := range []int{1, 2, 3, 7, 8, 10, 1000, 1 << 20} {
		seen := make(map[int]bool)
		for i := 0; i < 2000; i++ {
			v := r.Intn(n)
			qt.Assert(t, qt.IsTrue(v >= 0 && v < n), qt.Commentf("Intn(%d) = %d", n, v))
			seen[v] = true
		}
		if n <= 10 {
			qt.Assert(t, qt.HasLen(seen, n))
		}
	}
	qt.Assert(t, qt.PanicMatches(func() { r.Intn(0) }, `meshrand: Intn called with non-positive argument`))
}

func TestShuffleIsPermutation(t *testing.T) {
	r := meshrand.New(23)
	xs := make([]int, 50)
	for i := range xs {
		xs[i] = i
	}
	r.Shuffle(len(xs), func(i, j int) {
		xs[i], xs[j] = xs[j], xs[i]
	})
	seen := make([]bool, len(xs))
	moved := 0
	for i, x := range xs {
		qt.Assert(t, qt.IsFalse(seen[x]))
		seen[x] = true
		if x != i {
			moved++
		}
	}
	qt.Assert(t, qt.IsTrue(moved > 0))
}

func BenchmarkInt(b *testing.B) {
	r := meshrand.New(1)
	for i := 0; i < b.N; i++ {
		r.Int()
	}
}

func BenchmarkDGauss(b *testing.B) {
	r := meshrand.New(1)
	for i := 0; i < b.N; i++ {
		r.DGauss()
	}
}
