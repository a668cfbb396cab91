package funcfield

import (
	"fmt"

	"github.com/functionfields/drinfeld/ring"
)

// Place is a place of K = GF(q)(T): either the place at infinity (the
// degree valuation) or a finite place attached to a monic irreducible
// polynomial of GF(q)[T].
type Place struct {
	finite bool
	p      ring.Poly
}

// InfinitePlace returns the place at infinity of K.
func (f *Field) InfinitePlace() Place {
	return Place{}
}

// FinitePlace returns the place of K attached to the monic irreducible
// polynomial p.
func (f *Field) FinitePlace(p ring.Poly) (Place, error) {
	if p.Lead() != 1 {
		return Place{}, fmt.Errorf("funcfield: place polynomial %s is not monic", f.r.String(p))
	}
	if !f.r.IsIrreducible(p) {
		return Place{}, fmt.Errorf("funcfield: place polynomial %s is not irreducible", f.r.String(p))
	}
	return Place{finite: true, p: p.CopyNew()}, nil
}

// IsInfinite reports whether the place is the place at infinity.
func (pl Place) IsInfinite() bool { return !pl.finite }

// Polynomial returns the monic irreducible attached to a finite place, and
// the zero polynomial for the infinite place.
func (pl Place) Polynomial() ring.Poly { return pl.p.CopyNew() }

// Degree returns the degree of the place: deg p for a finite place, 1 for
// the infinite place.
func (pl Place) Degree() int {
	if pl.finite {
		return pl.p.Degree()
	}
	return 1
}

// ord returns the multiplicity of the irreducible p in the nonzero
// polynomial a, together with the cofactor a / p^ord.
func (f *Field) ord(a, p ring.Poly) (ord int, cofactor ring.Poly) {
	cofactor = a
	for {
		quo, rem := f.r.QuoRem(cofactor, p)
		if !rem.IsZero() {
			return
		}
		cofactor = quo
		ord++
	}
}

// Valuation returns the valuation of a nonzero x at the given place:
// deg Den - deg Num at infinity, the p-adic order at a finite place.
// It panics on the zero element, whose valuation is +infinity.
func (f *Field) Valuation(x Elem, pl Place) int {
	if x.IsZero() {
		panic("funcfield: valuation of zero")
	}
	if pl.IsInfinite() {
		return x.Den.Degree() - x.Num.Degree()
	}
	vNum, _ := f.ord(x.Num, pl.p)
	vDen, _ := f.ord(x.Den, pl.p)
	return vNum - vDen
}

// unitPart returns the class of x * p^(-v(x)) in the residue field of the
// finite place pl, as a polynomial of degree below deg p.
func (f *Field) unitPart(x Elem, pl Place) (ring.Poly, error) {
	if x.IsZero() {
		return ring.Poly{}, fmt.Errorf("funcfield: unit part of zero")
	}
	k, err := f.r.NewQuotient(pl.p)
	if err != nil {
		return ring.Poly{}, err
	}
	_, n1 := f.ord(x.Num, pl.p)
	_, d1 := f.ord(x.Den, pl.p)
	inv, err := k.Inv(d1)
	if err != nil {
		return ring.Poly{}, err
	}
	return k.Mul(k.Reduce(n1), inv), nil
}
