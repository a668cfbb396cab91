package hecke_test

import (
	"bytes"
	"fmt"
	"math/big"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/functionfields/drinfeld/funcfield"
	"github.com/functionfields/drinfeld/hecke"
	"github.com/functionfields/drinfeld/ring"
	"github.com/functionfields/drinfeld/utils/buffer"
)

func newParams(t *testing.T, q uint64) *hecke.Params {
	t.Helper()
	p, err := hecke.NewParams(q)
	require.NoError(t, err)
	return p
}

func poly(r *ring.Ring, coeffs ...uint64) ring.Poly {
	p, err := r.NewPolyFromIndices(coeffs)
	if err != nil {
		panic(err)
	}
	return p
}

func TestLucas(t *testing.T) {
	for _, p := range []uint64{2, 3, 5, 7} {
		mod := new(big.Int).SetUint64(p)
		for n := uint64(0); n <= 120; n++ {
			for m := uint64(0); m <= 120; m++ {
				want := new(big.Int).Binomial(int64(n), int64(m))
				want.Mod(want, mod)
				require.Equal(t, want.Uint64(), hecke.Lucas(n, m, p),
					"C(%d,%d) mod %d", n, m, p)
			}
		}
	}
}

func TestCanonicalType(t *testing.T) {
	require.Equal(t, 2, hecke.CanonicalType(0, 3))
	require.Equal(t, 1, hecke.CanonicalType(1, 3))
	require.Equal(t, 2, hecke.CanonicalType(-2, 3))
	require.Equal(t, 1, hecke.CanonicalType(5, 3))
	require.Equal(t, 4, hecke.CanonicalType(0, 5))
}

func TestCuspDim(t *testing.T) {
	require.Equal(t, 1, hecke.CuspDim(8, 0, 3))
	require.Equal(t, 0, hecke.CuspDim(4, 0, 3))
	require.Equal(t, 2, hecke.CuspDim(16, 0, 3))
	require.Equal(t, 3, hecke.CuspDim(24, 0, 3))
	require.Equal(t, 4, hecke.CuspDim(32, 0, 3))

	// the dimension only depends on the type mod q-1
	for k := 2; k <= 40; k++ {
		for l := 0; l < 6; l++ {
			require.Equal(t, hecke.CuspDim(k, l, 3), hecke.CuspDim(k, l+2, 3))
			require.Equal(t, hecke.CuspDim(k, l, 5), hecke.CuspDim(k, l+4, 5))
		}
	}
}

func TestHomSym(t *testing.T) {
	p := newParams(t, 3)
	k, r := p.K(), p.Ring()

	a := k.FromPoly(poly(r, 1, 1))
	b := k.FromPoly(poly(r, 0, 2))

	// h_m(a, b) = a h_{m-1}(a, b) + b^m
	prev := k.One()
	for m := 1; m <= 6; m++ {
		want := k.Add(k.Mul(a, prev), k.Pow(b, m))
		got := hecke.HomSym(k, m, a, b)
		require.True(t, k.Equal(want, got), "m = %d", m)
		prev = got
	}
}

// mulLinear multiplies f by (X - root).
func mulLinear(k *funcfield.Field, f funcfield.Poly, root funcfield.Elem) funcfield.Poly {
	out := make(funcfield.Poly, len(f)+1)
	out[0] = k.Zero()
	for i := range f {
		out[i+1] = f[i]
	}
	for i := range f {
		out[i] = k.Sub(out[i], k.Mul(root, f[i]))
	}
	return out
}

func powerSums(k *funcfield.Field, roots []funcfield.Elem, n int) []funcfield.Elem {
	s := make([]funcfield.Elem, n)
	for i := range s {
		acc := k.Zero()
		for _, root := range roots {
			acc = k.Add(acc, k.Pow(root, i+1))
		}
		s[i] = acc
	}
	return s
}

func TestTraceFormulaMatchesRecurrence(t *testing.T) {
	p := newParams(t, 3)
	k, r := p.K(), p.Ring()
	P := r.Gen()

	for n := 1; n <= 2; n++ {
		pPow := r.Pow(P, n)
		c := k.FromPoly(pPow)
		for _, rec := range []hecke.WeilNumberRecord{
			{A: poly(r, 1, 1), B: 2, N: big.NewInt(1)},
			{A: poly(r, 2, 0, 1), B: 1, N: big.NewInt(1)},
			{A: r.Zero(), B: 2, N: big.NewInt(1)},
		} {
			list := &hecke.IsogenyClassList{
				Q: 3, N: n, P: P, PPow: pPow,
				Records: []hecke.WeilNumberRecord{rec},
			}
			a := k.FromPoly(rec.A)
			b := k.FromScalar(rec.B)
			bc := k.Mul(b, c)
			for weight := 2; weight <= 10; weight++ {
				for l := 0; l < 2; l++ {
					got, err := p.TraceFromList(weight, l, list)
					require.NoError(t, err)

					// h_m = a h_{m-1} - (b P^n) h_{m-2}, trace is
					// b^(l'-k+1) h_{k-2} up to the q-1 periodicity of b
					h0, h1 := k.One(), a
					for m := 2; m <= weight-2; m++ {
						h0, h1 = h1, k.Sub(k.Mul(a, h1), k.Mul(bc, h0))
					}
					h := h1
					if weight == 2 {
						h = h0
					}
					lc := hecke.CanonicalType(l, 3)
					e := lc - weight + 1
					for e < 0 {
						e += 2
					}
					want := k.Mul(k.Pow(b, e%2), h)
					require.True(t, k.Equal(want, got),
						"n=%d weight=%d l=%d a=%s", n, weight, l, r.String(rec.A))
				}
			}
		}
	}
}

func TestEnumerateValidation(t *testing.T) {
	p := newParams(t, 3)
	r := p.Ring()

	_, err := p.EnumerateIsogenyClasses(0, r.Gen())
	require.Error(t, err)

	_, err = p.EnumerateIsogenyClasses(1, poly(r, 2, 0, 1)) // T^2 - 1 reducible
	require.Error(t, err)

	_, err = p.EnumerateIsogenyClasses(1, poly(r, 0, 2)) // 2T not monic
	require.Error(t, err)

	even := newParams(t, 4)
	_, err = even.EnumerateIsogenyClasses(1, even.Ring().Gen())
	require.Error(t, err)
}

func TestEnumerateDegreeOne(t *testing.T) {
	p := newParams(t, 3)
	r := p.Ring()

	list, err := p.EnumerateIsogenyClasses(1, r.Gen())
	require.NoError(t, err)
	require.Len(t, list.Records, 6)
	require.Equal(t, int64(6), list.TotalMass().Int64())

	seen := make(map[string]bool)
	for _, rec := range list.Records {
		key := fmt.Sprintf("%s|%d", r.String(rec.A), rec.B)
		require.False(t, seen[key], "duplicate Weil number (%s, %d)", r.String(rec.A), rec.B)
		seen[key] = true
		require.Equal(t, int64(1), rec.N.Int64())
	}
}

func TestEnumerateDegreeTwo(t *testing.T) {
	p := newParams(t, 3)
	r := p.Ring()

	list, err := p.EnumerateIsogenyClasses(2, r.Gen())
	require.NoError(t, err)
	// 2 ordinary classes of weight 2, 3 inert supersingular of weight 2,
	// 2 split supersingular of weight 1
	require.Len(t, list.Records, 7)
	require.Equal(t, int64(12), list.TotalMass().Int64())

	// the three record families must not collide on (a, b)
	seen := make(map[string]bool)
	for _, rec := range list.Records {
		key := fmt.Sprintf("%s|%d", r.String(rec.A), rec.B)
		require.False(t, seen[key], "duplicate Weil number (%s, %d)", r.String(rec.A), rec.B)
		seen[key] = true
	}
}

func TestEnumerateConcurrent(t *testing.T) {
	p := newParams(t, 3)
	r := p.Ring()

	// one Params shared across goroutines: the underlying PRNG feeding the
	// factorization code must tolerate concurrent readers
	polys := []ring.Poly{r.Gen(), poly(r, 1, 0, 1)}
	lists := make([]*hecke.IsogenyClassList, len(polys))
	errs := make([]error, len(polys))
	var wg sync.WaitGroup
	for i := range polys {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			lists[i], errs[i] = p.EnumerateIsogenyClasses(2, polys[i])
		}(i)
	}
	wg.Wait()

	for i := range polys {
		require.NoError(t, errs[i])
		require.NotEmpty(t, lists[i].Records)
	}

	// concurrency must not change the results
	for i, P := range polys {
		want, err := p.EnumerateIsogenyClasses(2, P)
		require.NoError(t, err)
		require.Equal(t, want.TotalMass(), lists[i].TotalMass())
		require.Len(t, lists[i].Records, len(want.Records))
	}
}

func TestCharPolTrivialSpace(t *testing.T) {
	p := newParams(t, 3)

	// dim S_{4,0} = 0: the zero polynomial, no traces consulted
	f, err := p.CharPolFromList(4, 0, nil)
	require.NoError(t, err)
	require.Equal(t, -1, f.Degree())

	_, err = p.CharPolFromList(1, 0, nil)
	require.Error(t, err)
}

func TestTracesNeeded(t *testing.T) {
	require.Equal(t, 0, hecke.TracesNeeded(0, 3))
	require.Equal(t, 1, hecke.TracesNeeded(1, 3))
	require.Equal(t, 2, hecke.TracesNeeded(2, 3))
	require.Equal(t, 4, hecke.TracesNeeded(3, 3))
	require.Equal(t, 5, hecke.TracesNeeded(4, 3))
	require.Equal(t, 3, hecke.TracesNeeded(3, 5))
	require.Equal(t, 6, hecke.TracesNeeded(5, 5))
	require.Equal(t, 9, hecke.TracesNeeded(7, 2))
}

func TestCharPolFromListDirect(t *testing.T) {
	p := newParams(t, 3)
	k, r := p.K(), p.Ring()

	// dim S_{8,0} = 1: the characteristic polynomial is X - s_1
	s1 := k.FromPoly(poly(r, 1, 2))
	f, err := p.CharPolFromList(8, 0, []funcfield.Elem{s1})
	require.NoError(t, err)
	require.Len(t, f, 2)
	require.True(t, k.Equal(f[1], k.One()))
	require.True(t, k.Equal(f[0], k.Neg(s1)))
}

func TestCharPolFromListInsufficient(t *testing.T) {
	p := newParams(t, 3)
	_, err := p.CharPolFromList(24, 0, nil)
	require.ErrorIs(t, err, hecke.ErrInsufficientTraces)
}

func TestCharPolFromListCorrection(t *testing.T) {
	p := newParams(t, 3)
	k, r := p.K(), p.Ring()

	// dim 3 and dim 4 spaces exercise the mod-p correction system:
	// reconstruct a polynomial with known roots from its power sums
	for _, tc := range []struct {
		weight int
		roots  []funcfield.Elem
	}{
		{24, []funcfield.Elem{
			k.One(),
			k.FromPoly(r.Gen()),
			k.FromPoly(poly(r, 0, 0, 1)),
		}},
		{32, []funcfield.Elem{
			k.One(),
			k.FromPoly(r.Gen()),
			k.FromPoly(poly(r, 0, 0, 1)),
			k.FromPoly(poly(r, 0, 0, 0, 1)),
		}},
	} {
		d := hecke.CuspDim(tc.weight, 0, 3)
		require.Equal(t, len(tc.roots), d)

		want := funcfield.Poly{k.One()}
		for _, root := range tc.roots {
			want = mulLinear(k, want, root)
		}
		traces := powerSums(k, tc.roots, hecke.TracesNeeded(d, 3))

		got, err := p.CharPolFromList(tc.weight, 0, traces)
		require.NoError(t, err)
		require.Equal(t, len(want), len(got))
		for i := range want {
			require.True(t, k.Equal(want[i], got[i]), "weight %d coefficient %d", tc.weight, i)
		}
	}
}

func TestHeckeTraceDegreeOne(t *testing.T) {
	p := newParams(t, 3)
	k, r := p.K(), p.Ring()

	// the trace of T_T on the one-dimensional S_{8,0} over GF(3)(T) is T
	tr, err := p.SimpleHeckeTrace(8, 0, r.Gen())
	require.NoError(t, err)
	require.True(t, k.Equal(tr, k.FromPoly(r.Gen())), "got %s", k.String(tr))
}

func TestCharPolEndToEnd(t *testing.T) {
	p := newParams(t, 3)
	k, r := p.K(), p.Ring()

	f, err := p.CharPol(8, 0, r.Gen())
	require.NoError(t, err)
	require.Equal(t, 1, f.Degree())
	require.True(t, k.Equal(f[1], k.One()))
	require.True(t, k.Equal(f[0], k.Neg(k.FromPoly(r.Gen()))))

	slopes, err := p.InfHeckeSlopes(8, 0, r.Gen())
	require.NoError(t, err)
	require.Len(t, slopes, 1)
	require.Equal(t, big.NewRat(-1, 1), slopes[0].Slope)
	require.Equal(t, 1, slopes[0].Multiplicity)

	slopes, err = p.THeckeSlopes(8, 0, r.Gen())
	require.NoError(t, err)
	require.Len(t, slopes, 1)
	require.Equal(t, big.NewRat(1, 1), slopes[0].Slope)
	require.Equal(t, 1, slopes[0].Multiplicity)
}

func TestIsogenyClassListSerialization(t *testing.T) {
	p := newParams(t, 3)
	r := p.Ring()

	list, err := p.EnumerateIsogenyClasses(2, r.Gen())
	require.NoError(t, err)

	data, err := list.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, list.BinarySize(), len(data))

	restored := new(hecke.IsogenyClassList)
	require.NoError(t, restored.UnmarshalBinary(data))

	bigIntCmp := cmp.Comparer(func(a, b *big.Int) bool { return a.Cmp(b) == 0 })
	require.Empty(t, cmp.Diff(list, restored, bigIntCmp))
}

func TestUnmarshalCorruptData(t *testing.T) {
	p := newParams(t, 3)
	r := p.Ring()

	list, err := p.EnumerateIsogenyClasses(1, r.Gen())
	require.NoError(t, err)
	data, err := list.MarshalBinary()
	require.NoError(t, err)

	// a header announcing 2^61 coefficients with nothing behind it must
	// error out instead of attempting the allocation
	buf := new(bytes.Buffer)
	_, err = buffer.WriteUint64(buf, 3)
	require.NoError(t, err)
	_, err = buffer.WriteInt(buf, 1)
	require.NoError(t, err)
	_, err = buffer.WriteUint64(buf, uint64(1)<<61)
	require.NoError(t, err)
	require.NotPanics(t, func() {
		require.Error(t, new(hecke.IsogenyClassList).UnmarshalBinary(buf.Bytes()))
	})

	// truncation at any depth errors, never panics
	for _, cut := range []int{9, len(data) / 2, len(data) - 1} {
		require.NotPanics(t, func() {
			require.Error(t, new(hecke.IsogenyClassList).UnmarshalBinary(data[:cut]),
				"cut at %d", cut)
		}, "cut at %d", cut)
	}
}

func TestCacheKey(t *testing.T) {
	p := newParams(t, 3)
	r := p.Ring()

	a, err := p.EnumerateIsogenyClasses(1, r.Gen())
	require.NoError(t, err)
	b, err := p.EnumerateIsogenyClasses(1, r.Gen())
	require.NoError(t, err)
	c, err := p.EnumerateIsogenyClasses(1, poly(r, 1, 0, 1))
	require.NoError(t, err)
	d, err := p.EnumerateIsogenyClasses(2, r.Gen())
	require.NoError(t, err)

	require.Equal(t, a.CacheKey(), b.CacheKey())
	require.NotEqual(t, a.CacheKey(), c.CacheKey())
	require.NotEqual(t, a.CacheKey(), d.CacheKey())
}
