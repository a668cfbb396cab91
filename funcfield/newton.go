package funcfield

import (
	"fmt"
	"math/big"
)

// Poly is a polynomial over K, stored as coefficients from the constant
// term upwards. Trailing zero coefficients are permitted but ignored by
// Degree.
type Poly []Elem

// Degree returns the degree of p, with -1 for the zero polynomial.
func (p Poly) Degree() int {
	for i := len(p) - 1; i >= 0; i-- {
		if !p[i].IsZero() {
			return i
		}
	}
	return -1
}

// Slope is one edge of a Newton polygon after the sign flip: Slope is the
// common valuation of the roots attached to the edge and Multiplicity their
// number.
type Slope struct {
	Slope        *big.Rat
	Multiplicity int
}

// NewtonSlopes returns the valuations of the roots of p at the place pl,
// with multiplicity, in strictly increasing order of valuation. They are
// the negated slopes of the lower convex hull of the points
// (i, v(coefficient of X^i)), taken over the indices with a nonzero
// coefficient. Multiplicities sum to deg p minus the order of vanishing of
// p at X = 0 (zero roots, of infinite valuation, are not reported).
func (f *Field) NewtonSlopes(p Poly, pl Place) ([]Slope, error) {
	d := p.Degree()
	if d < 0 {
		return nil, fmt.Errorf("funcfield: Newton polygon of the zero polynomial")
	}
	type point struct{ x, y int64 }
	var pts []point
	for i := 0; i <= d; i++ {
		if p[i].IsZero() {
			continue
		}
		pts = append(pts, point{x: int64(i), y: int64(f.Valuation(p[i], pl))})
	}
	if len(pts) < 2 {
		return nil, nil
	}

	// lower convex hull, left to right (monotone chain)
	hull := make([]point, 0, len(pts))
	for _, pt := range pts {
		for len(hull) >= 2 {
			a, b := hull[len(hull)-2], hull[len(hull)-1]
			// keep b only if it lies strictly below segment a-pt
			if (b.y-a.y)*(pt.x-a.x) < (pt.y-a.y)*(b.x-a.x) {
				break
			}
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, pt)
	}

	// hull edges have increasing slope s; root valuations are -s, so the
	// rightmost edge carries the smallest valuation
	slopes := make([]Slope, 0, len(hull)-1)
	for i := len(hull) - 1; i > 0; i-- {
		a, b := hull[i-1], hull[i]
		s := new(big.Rat).SetFrac64(a.y-b.y, b.x-a.x)
		slopes = append(slopes, Slope{Slope: s, Multiplicity: int(b.x - a.x)})
	}
	return slopes, nil
}
