// Package funcfield implements exact arithmetic in the rational function
// field K = GF(q)(T), its places and valuations, Newton polygons of
// polynomials over K, and the quadratic-extension machinery (splitting
// types and class numbers of imaginary quadratic extensions) consumed by
// the Hecke trace formula.
package funcfield

import (
	"github.com/functionfields/drinfeld/galois"
	"github.com/functionfields/drinfeld/ring"
)

// Field is the rational function field K = GF(q)(T) over the coefficient
// field of its underlying polynomial ring.
type Field struct {
	r *ring.Ring
}

// NewField returns the fraction field of the given polynomial ring.
func NewField(r *ring.Ring) *Field {
	return &Field{r: r}
}

// Ring returns the underlying polynomial ring GF(q)[T].
func (f *Field) Ring() *ring.Ring { return f.r }

// Elem is an element of K, stored as a reduced fraction: Den is monic,
// gcd(Num, Den) = 1, and the zero element is 0/1.
type Elem struct {
	Num, Den ring.Poly
}

// IsZero reports whether x is zero.
func (x Elem) IsZero() bool { return x.Num.IsZero() }

// IsPolynomial reports whether x lies in GF(q)[T].
func (x Elem) IsPolynomial() bool { return x.Den.Degree() == 0 }

// reduce returns num/den in canonical form.
func (f *Field) reduce(num, den ring.Poly) Elem {
	if den.IsZero() {
		panic("funcfield: zero denominator")
	}
	if num.IsZero() {
		return Elem{Num: f.r.Zero(), Den: f.r.One()}
	}
	g := f.r.Gcd(num, den)
	if g.Degree() > 0 {
		num = f.r.Quo(num, g)
		den = f.r.Quo(den, g)
	}
	if lc := den.Lead(); lc != 1 {
		inv := f.r.Field().Inv(lc)
		num = f.r.MulScalar(num, inv)
		den = f.r.MulScalar(den, inv)
	}
	return Elem{Num: num, Den: den}
}

// Zero returns the zero element of K.
func (f *Field) Zero() Elem { return Elem{Num: f.r.Zero(), Den: f.r.One()} }

// One returns the unit element of K.
func (f *Field) One() Elem { return Elem{Num: f.r.One(), Den: f.r.One()} }

// FromPoly returns the image of a polynomial in K.
func (f *Field) FromPoly(p ring.Poly) Elem {
	return Elem{Num: p.CopyNew(), Den: f.r.One()}
}

// FromScalar returns the image of a coefficient-field element in K.
func (f *Field) FromScalar(c galois.Element) Elem {
	return f.FromPoly(f.r.Scalar(c))
}

// FromInt64 returns the image of the integer c in K via the prime subfield.
func (f *Field) FromInt64(c int64) Elem {
	return f.FromScalar(f.r.Field().FromInt64(c))
}

// Frac returns num/den as an element of K.
func (f *Field) Frac(num, den ring.Poly) Elem {
	return f.reduce(num, den)
}

// Add returns x + y.
func (f *Field) Add(x, y Elem) Elem {
	num := f.r.Add(f.r.Mul(x.Num, y.Den), f.r.Mul(y.Num, x.Den))
	return f.reduce(num, f.r.Mul(x.Den, y.Den))
}

// Neg returns -x.
func (f *Field) Neg(x Elem) Elem {
	return Elem{Num: f.r.Neg(x.Num), Den: x.Den.CopyNew()}
}

// Sub returns x - y.
func (f *Field) Sub(x, y Elem) Elem { return f.Add(x, f.Neg(y)) }

// Mul returns x * y.
func (f *Field) Mul(x, y Elem) Elem {
	return f.reduce(f.r.Mul(x.Num, y.Num), f.r.Mul(x.Den, y.Den))
}

// MulScalar returns c * x.
func (f *Field) MulScalar(x Elem, c galois.Element) Elem {
	if c == 0 {
		return f.Zero()
	}
	return Elem{Num: f.r.MulScalar(x.Num, c), Den: x.Den.CopyNew()}
}

// Inv returns 1/x. It panics if x is zero.
func (f *Field) Inv(x Elem) Elem {
	if x.IsZero() {
		panic("funcfield: inversion of zero")
	}
	return f.reduce(x.Den, x.Num)
}

// Div returns x / y. It panics if y is zero.
func (f *Field) Div(x, y Elem) Elem { return f.Mul(x, f.Inv(y)) }

// Pow returns x^e; negative exponents invert x first.
func (f *Field) Pow(x Elem, e int) Elem {
	if e < 0 {
		return f.Pow(f.Inv(x), -e)
	}
	res := f.One()
	base := x
	for ; e > 0; e >>= 1 {
		if e&1 == 1 {
			res = f.Mul(res, base)
		}
		base = f.Mul(base, base)
	}
	return res
}

// Equal reports whether x and y are the same element of K.
func (f *Field) Equal(x, y Elem) bool {
	return x.Num.Equal(y.Num) && x.Den.Equal(y.Den)
}

// String formats x as a (quotient of) polynomial(s) in T.
func (f *Field) String(x Elem) string {
	if x.Den.Degree() == 0 {
		return f.r.String(x.Num)
	}
	return "(" + f.r.String(x.Num) + ")/(" + f.r.String(x.Den) + ")"
}
