package funcfield_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/functionfields/drinfeld/funcfield"
	"github.com/functionfields/drinfeld/galois"
	"github.com/functionfields/drinfeld/ring"
)

func newField(t *testing.T, q uint64) (*funcfield.Field, *ring.Ring) {
	t.Helper()
	fq, err := galois.NewField(q)
	require.NoError(t, err)
	r := ring.NewRing(fq)
	return funcfield.NewField(r), r
}

func poly(r *ring.Ring, coeffs ...uint64) ring.Poly {
	p, err := r.NewPolyFromIndices(coeffs)
	if err != nil {
		panic(err)
	}
	return p
}

func TestElemArithmetic(t *testing.T) {
	k, r := newField(t, 3)

	// (T^2 - 1) / (T + 1) reduces to T - 1
	x := k.Frac(poly(r, 2, 0, 1), poly(r, 1, 1))
	require.True(t, k.Equal(x, k.FromPoly(poly(r, 2, 1))))
	require.True(t, x.IsPolynomial())

	a := k.Frac(poly(r, 1), poly(r, 0, 1))       // 1/T
	b := k.Frac(poly(r, 0, 1), poly(r, 1, 0, 1)) // T/(T^2+1)

	sum := k.Add(a, b)
	require.True(t, k.Equal(k.Sub(sum, b), a))
	require.True(t, k.Equal(k.Mul(a, k.Inv(a)), k.One()))
	require.True(t, k.Equal(k.Div(b, b), k.One()))
	require.True(t, k.Equal(k.Pow(a, -2), k.FromPoly(poly(r, 0, 0, 1))))

	// distributivity across a few rationals
	c := k.FromPoly(poly(r, 2, 2))
	lhs := k.Mul(a, k.Add(b, c))
	rhs := k.Add(k.Mul(a, b), k.Mul(a, c))
	require.True(t, k.Equal(lhs, rhs))
}

func TestValuation(t *testing.T) {
	k, r := newField(t, 3)
	x := k.Frac(poly(r, 0, 0, 1), poly(r, 1, 1)) // T^2/(T+1)

	require.Equal(t, -1, k.Valuation(x, k.InfinitePlace()))

	plT, err := k.FinitePlace(r.Gen())
	require.NoError(t, err)
	require.Equal(t, 2, k.Valuation(x, plT))

	plT1, err := k.FinitePlace(poly(r, 1, 1))
	require.NoError(t, err)
	require.Equal(t, -1, k.Valuation(x, plT1))

	require.Panics(t, func() { k.Valuation(k.Zero(), plT) })
}

func TestIsSquare(t *testing.T) {
	k, r := newField(t, 3)

	sq, err := k.IsSquare(k.FromPoly(poly(r, 1, 2, 1))) // (T+1)^2
	require.NoError(t, err)
	require.True(t, sq)

	sq, err = k.IsSquare(k.FromPoly(r.Gen()))
	require.NoError(t, err)
	require.False(t, sq)

	// 2 is not a square in GF(3)
	sq, err = k.IsSquare(k.MulScalar(k.FromPoly(poly(r, 1, 2, 1)), 2))
	require.NoError(t, err)
	require.False(t, sq)

	sq, err = k.IsSquare(k.Frac(poly(r, 1, 2, 1), poly(r, 0, 0, 1))) // ((T+1)/T)^2
	require.NoError(t, err)
	require.True(t, sq)
}

func TestSplittingAt(t *testing.T) {
	k, r := newField(t, 3)
	inf := k.InfinitePlace()
	plT, err := k.FinitePlace(r.Gen())
	require.NoError(t, err)

	// odd valuation is always ramified
	s, err := k.SplittingAt(k.FromPoly(r.Gen()), inf)
	require.NoError(t, err)
	require.Equal(t, funcfield.Ramified, s)

	s, err = k.SplittingAt(k.FromPoly(r.Gen()), plT)
	require.NoError(t, err)
	require.Equal(t, funcfield.Ramified, s)

	// -1 = 2 is a nonsquare in GF(3): inert at infinity and at T
	s, err = k.SplittingAt(k.FromScalar(2), inf)
	require.NoError(t, err)
	require.Equal(t, funcfield.Inert, s)

	s, err = k.SplittingAt(k.FromScalar(2), plT)
	require.NoError(t, err)
	require.Equal(t, funcfield.Inert, s)

	// T+1 is congruent to the square 1 mod T
	s, err = k.SplittingAt(k.FromPoly(poly(r, 1, 1)), plT)
	require.NoError(t, err)
	require.Equal(t, funcfield.Split, s)

	// even degree with square leading coefficient splits at infinity
	s, err = k.SplittingAt(k.FromPoly(poly(r, 1, 0, 1)), inf)
	require.NoError(t, err)
	require.Equal(t, funcfield.Split, s)
}

func TestIsImaginary(t *testing.T) {
	k, r := newField(t, 3)

	for _, tc := range []struct {
		d    ring.Poly
		want bool
	}{
		{r.Gen(), true},                // odd degree: ramified at infinity
		{poly(r, 2, 0, 2), true},       // even degree, nonsquare lead: inert
		{poly(r, 1, 0, 1), false},      // even degree, square lead: splits
		{poly(r, 1, 2, 1), false},      // a square in K
		{r.Zero(), false},              // degenerate
		{poly(r, 0, 2), true},          // 2T
	} {
		got, err := k.IsImaginary(k.FromPoly(tc.d))
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "D = %s", r.String(tc.d))
	}
}

func TestClassNumber(t *testing.T) {
	k, r := newField(t, 3)

	for _, tc := range []struct {
		d    ring.Poly
		want int64
	}{
		{poly(r, 0, 2), 1},          // K(sqrt(2T)): genus 0, ramified at infinity
		{poly(r, 0, 2, 0, 1), 4},    // y^2 = T^3 - T: genus 1 with 4 points
		{poly(r, 1, 0, 1), 0},       // T^2+1: infinity splits, not imaginary
		{poly(r, 2, 0, 2), 2},       // 2(T^2+1): constant-field extension
		{poly(r, 1, 2, 1), 0},       // a square: degenerate
		{r.Zero(), 0},
	} {
		h, err := k.ClassNumber(k.FromPoly(tc.d))
		require.NoError(t, err)
		require.Equal(t, tc.want, h.Int64(), "D = %s", r.String(tc.d))
	}
}

func TestClassNumberInvariantUnderSquares(t *testing.T) {
	k, r := newField(t, 3)

	// D and D*f^2 generate the same extension, hence the same class number
	d := poly(r, 0, 2, 0, 1)
	h1, err := k.ClassNumber(k.FromPoly(d))
	require.NoError(t, err)
	h2, err := k.ClassNumber(k.FromPoly(r.Mul(d, r.Mul(poly(r, 1, 1), poly(r, 1, 1)))))
	require.NoError(t, err)
	require.Equal(t, h1, h2)
}

func TestNewtonSlopes(t *testing.T) {
	k, r := newField(t, 3)
	plT, err := k.FinitePlace(r.Gen())
	require.NoError(t, err)

	// X^2 + T X + T^3 at the place T: slopes 1 and 2
	f := funcfield.Poly{
		k.FromPoly(poly(r, 0, 0, 0, 1)),
		k.FromPoly(r.Gen()),
		k.One(),
	}
	slopes, err := k.NewtonSlopes(f, plT)
	require.NoError(t, err)
	require.Len(t, slopes, 2)
	require.Equal(t, big.NewRat(1, 1), slopes[0].Slope)
	require.Equal(t, 1, slopes[0].Multiplicity)
	require.Equal(t, big.NewRat(2, 1), slopes[1].Slope)
	require.Equal(t, 1, slopes[1].Multiplicity)

	// same polynomial at infinity: a single edge of slope -3/2
	slopes, err = k.NewtonSlopes(f, k.InfinitePlace())
	require.NoError(t, err)
	require.Len(t, slopes, 1)
	require.Equal(t, big.NewRat(-3, 2), slopes[0].Slope)
	require.Equal(t, 2, slopes[0].Multiplicity)

	// zero roots are skipped: X^3 + X has one reported edge of slope 0
	g := funcfield.Poly{k.Zero(), k.One(), k.Zero(), k.One()}
	slopes, err = k.NewtonSlopes(g, plT)
	require.NoError(t, err)
	require.Len(t, slopes, 1)
	require.Equal(t, big.NewRat(0, 1), slopes[0].Slope)
	require.Equal(t, 2, slopes[0].Multiplicity)

	_, err = k.NewtonSlopes(funcfield.Poly{}, plT)
	require.Error(t, err)
}

func TestNewtonSlopesMassBalance(t *testing.T) {
	k, r := newField(t, 5)
	inf := k.InfinitePlace()

	f := funcfield.Poly{
		k.FromPoly(poly(r, 0, 0, 1)),
		k.FromPoly(poly(r, 3, 1)),
		k.FromPoly(poly(r, 0, 0, 0, 4)),
		k.One(),
		k.FromPoly(poly(r, 2)),
	}
	slopes, err := k.NewtonSlopes(f, inf)
	require.NoError(t, err)
	mass := 0
	prev := big.NewRat(-1 << 30, 1)
	for _, s := range slopes {
		require.Equal(t, 1, s.Slope.Cmp(prev), "valuations must increase")
		prev = s.Slope
		mass += s.Multiplicity
	}
	require.Equal(t, f.Degree(), mass)
}
