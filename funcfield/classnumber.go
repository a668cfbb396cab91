package funcfield

import (
	"math/big"

	"github.com/functionfields/drinfeld/galois"
	"github.com/functionfields/drinfeld/ring"
)

// ClassNumber returns the class number of the maximal GF(q)[T]-order of the
// quadratic extension K(sqrt(D)), for odd characteristic. It returns 0 when
// the extension is degenerate: D is zero, D is a square in K, or the place
// at infinity splits (the extension is not imaginary). Zero is a sentinel,
// never a genuine class number.
//
// The computation goes through the zeta function of the hyperelliptic curve
// y^2 = D0, where D0 is the squarefree part of D: points are counted
// exactly over GF(q^i) for i up to the genus, the numerator L(u) of the
// zeta function is recovered by Newton's identities and the functional
// equation, and the divisor class number is h = L(1). The ideal class
// number of the maximal order is h times the degree of the unique place
// above infinity.
func (f *Field) ClassNumber(D Elem) (*big.Int, error) {
	fq := f.r.Field()
	if fq.Characteristic() == 2 {
		return nil, f.errEvenChar()
	}
	if D.IsZero() {
		return big.NewInt(0), nil
	}

	D0, err := f.squarefreePart(D)
	if err != nil {
		return nil, err
	}
	deg := D0.Degree()
	lcSquare := fq.IsSquare(D0.Lead())
	if deg == 0 {
		if lcSquare {
			// D is a square in K
			return big.NewInt(0), nil
		}
		// constant-field extension GF(q^2)(T): genus 0, infinity inert
		return big.NewInt(2), nil
	}
	if deg%2 == 0 && lcSquare {
		// infinity splits: not imaginary
		return big.NewInt(0), nil
	}

	// degree of the unique place above infinity: 1 if ramified, 2 if inert
	degInf := int64(1)
	if deg%2 == 0 {
		degInf = 2
	}

	genus := (deg - 1) / 2
	h := f.curveClassNumber(D0, genus)
	return h.Mul(h, big.NewInt(degInf)), nil
}

// squarefreePart returns a squarefree polynomial generating the same square
// class as D in K*: the product of the irreducibles of odd multiplicity in
// Num*Den, scaled by the leading unit of D.
func (f *Field) squarefreePart(D Elem) (ring.Poly, error) {
	a := f.r.Mul(D.Num, D.Den)
	unit, factors, err := f.r.Factor(a)
	if err != nil {
		return ring.Poly{}, err
	}
	out := f.r.Scalar(unit)
	for _, fac := range factors {
		if fac.E%2 != 0 {
			out = f.r.Mul(out, fac.P)
		}
	}
	return out, nil
}

// curveClassNumber returns the divisor class number L(1) of the smooth
// projective model of y^2 = d0 (d0 squarefree) over GF(q), from exact point
// counts over GF(q^i), i = 1..genus.
func (f *Field) curveClassNumber(d0 ring.Poly, genus int) *big.Int {
	if genus == 0 {
		return big.NewInt(1)
	}
	q := int64(f.r.Field().Order())

	// power sums of the inverse roots of L: s_i = q^i + 1 - N_i
	s := make([]*big.Rat, genus+1)
	qi := int64(1)
	for i := 1; i <= genus; i++ {
		qi *= q
		n := f.countPoints(d0, i)
		s[i] = new(big.Rat).SetInt64(qi + 1 - n)
	}

	// Newton's identities over the rationals: c_k = -(1/k) sum s_i c_{k-i}
	c := make([]*big.Rat, 2*genus+1)
	c[0] = new(big.Rat).SetInt64(1)
	for k := 1; k <= genus; k++ {
		acc := new(big.Rat)
		for i := 1; i <= k; i++ {
			acc.Add(acc, new(big.Rat).Mul(s[i], c[k-i]))
		}
		c[k] = acc.Quo(acc, new(big.Rat).SetInt64(int64(-k)))
	}
	// functional equation: c_{2g-j} = q^{g-j} c_j
	for j := 0; j < genus; j++ {
		scale := new(big.Rat).SetInt64(1)
		for i := 0; i < genus-j; i++ {
			scale.Mul(scale, new(big.Rat).SetInt64(q))
		}
		c[2*genus-j] = new(big.Rat).Mul(scale, c[j])
	}

	h := new(big.Rat)
	for _, ck := range c {
		h.Add(h, ck)
	}
	if !h.IsInt() {
		panic("funcfield: non-integral class number")
	}
	return new(big.Int).Set(h.Num())
}

// countPoints returns the number of points of the smooth projective model
// of y^2 = d0 over GF(q^i).
func (f *Field) countPoints(d0 ring.Poly, i int) int64 {
	fq := f.r.Field()
	if i == 1 {
		var n int64
		fq.ForEachElement(func(x galois.Element) {
			n += 1 + chi(fq, f.r.Eval(d0, x))
		})
		return n + f.pointsAtInfinity(d0, nil)
	}

	ext, err := f.r.NewQuotient(f.r.RandomIrreducible(i))
	if err != nil {
		panic(err)
	}
	var n int64
	f.forEachExtElement(i, func(x ring.Poly) {
		n += 1 + chiExt(ext, f.evalExt(ext, d0, x))
	})
	return n + f.pointsAtInfinity(d0, ext)
}

// pointsAtInfinity counts the points at infinity of the smooth model over
// the field of the (possibly nil, meaning base) extension.
func (f *Field) pointsAtInfinity(d0 ring.Poly, ext *ring.Quotient) int64 {
	if d0.Degree()%2 != 0 {
		return 1
	}
	lc := d0.Lead()
	if ext == nil {
		if f.r.Field().IsSquare(lc) {
			return 2
		}
		return 0
	}
	if ext.IsSquare(f.r.Scalar(lc)) {
		return 2
	}
	return 0
}

// chi is the quadratic character of GF(q), with chi(0) = 0.
func chi(fq *galois.Field, a galois.Element) int64 {
	if a == 0 {
		return 0
	}
	if fq.IsSquare(a) {
		return 1
	}
	return -1
}

// chiExt is the quadratic character of an extension field GF(q^i).
func chiExt(ext *ring.Quotient, a ring.Poly) int64 {
	if a.IsZero() {
		return 0
	}
	if ext.IsSquare(a) {
		return 1
	}
	return -1
}

// evalExt evaluates a polynomial with GF(q) coefficients at a point of the
// extension field, by Horner's rule in the quotient.
func (f *Field) evalExt(ext *ring.Quotient, p ring.Poly, x ring.Poly) ring.Poly {
	acc := f.r.Zero()
	for i := p.Degree(); i >= 0; i-- {
		acc = ext.Add(ext.Mul(acc, x), f.r.Scalar(p.Coeff(i)))
	}
	return acc
}

// forEachExtElement enumerates the q^i elements of GF(q^i), represented as
// polynomials of degree below i over GF(q).
func (f *Field) forEachExtElement(i int, visit func(ring.Poly)) {
	q := f.r.Field().Order()
	digits := make([]galois.Element, i)
	for {
		visit(f.r.NewPoly(digits))
		j := 0
		for j < i {
			digits[j]++
			if uint64(digits[j]) < q {
				break
			}
			digits[j] = 0
			j++
		}
		if j == i {
			return
		}
	}
}
