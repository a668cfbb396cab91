// Package ring implements exact univariate polynomial arithmetic over a
// finite coefficient field GF(q): the ring GF(q)[T]. It provides the usual
// Euclidean operations, irreducibility testing, full factorization and
// uniform sampling, as well as quotient fields GF(q)[T]/(g) which serve both
// as residue fields of finite places and as the extension fields GF(q^i).
package ring

import (
	"fmt"
	"strings"

	"github.com/functionfields/drinfeld/galois"
	"github.com/functionfields/drinfeld/utils/sampling"
)

// Poly is a dense polynomial over GF(q). Coefficients are stored from the
// constant term upwards, with no trailing zero: the zero polynomial has an
// empty coefficient slice.
type Poly struct {
	Coeffs []galois.Element
}

// Degree returns the degree of p, with -1 for the zero polynomial.
func (p Poly) Degree() int { return len(p.Coeffs) - 1 }

// IsZero reports whether p is the zero polynomial.
func (p Poly) IsZero() bool { return len(p.Coeffs) == 0 }

// Lead returns the leading coefficient of p, and 0 for the zero polynomial.
func (p Poly) Lead() galois.Element {
	if p.IsZero() {
		return 0
	}
	return p.Coeffs[len(p.Coeffs)-1]
}

// Coeff returns the coefficient of T^i, with 0 beyond the degree.
func (p Poly) Coeff(i int) galois.Element {
	if i < 0 || i >= len(p.Coeffs) {
		return 0
	}
	return p.Coeffs[i]
}

// CopyNew returns a deep copy of p.
func (p Poly) CopyNew() Poly {
	return Poly{Coeffs: append([]galois.Element(nil), p.Coeffs...)}
}

// Equal reports whether p and other are the same polynomial.
func (p Poly) Equal(other Poly) bool {
	if len(p.Coeffs) != len(other.Coeffs) {
		return false
	}
	for i := range p.Coeffs {
		if p.Coeffs[i] != other.Coeffs[i] {
			return false
		}
	}
	return true
}

// Ring is the polynomial ring GF(q)[T]. All Poly values handled by a Ring
// must have coefficients belonging to its coefficient field.
type Ring struct {
	fq   *galois.Field
	prng sampling.PRNG
}

// NewRing returns the polynomial ring over the given coefficient field.
// The randomized routines of the ring (equal-degree splitting and random
// irreducible search) draw from a deterministic keyed PRNG, so all results
// are reproducible.
func NewRing(fq *galois.Field) *Ring {
	prng, err := sampling.NewKeyedPRNG([]byte("drinfeld/ring"))
	if err != nil {
		panic(err)
	}
	return &Ring{fq: fq, prng: prng}
}

// Field returns the coefficient field of the ring.
func (r *Ring) Field() *galois.Field { return r.fq }

// NewPoly returns the polynomial with the given coefficients, constant term
// first. Trailing zeros are stripped.
func (r *Ring) NewPoly(coeffs []galois.Element) Poly {
	n := len(coeffs)
	for n > 0 && coeffs[n-1] == 0 {
		n--
	}
	return Poly{Coeffs: append([]galois.Element(nil), coeffs[:n]...)}
}

// NewPolyFromIndices builds a polynomial from raw element indices, constant
// term first, validating each index against the field order.
func (r *Ring) NewPolyFromIndices(coeffs []uint64) (Poly, error) {
	q := r.fq.Order()
	cs := make([]galois.Element, len(coeffs))
	for i, c := range coeffs {
		if c >= q {
			return Poly{}, fmt.Errorf("ring: coefficient index %d out of range for GF(%d)", c, q)
		}
		cs[i] = galois.Element(c)
	}
	return r.NewPoly(cs), nil
}

// Zero returns the zero polynomial.
func (r *Ring) Zero() Poly { return Poly{} }

// One returns the constant polynomial 1.
func (r *Ring) One() Poly { return Poly{Coeffs: []galois.Element{1}} }

// Gen returns the generator T of the ring.
func (r *Ring) Gen() Poly { return Poly{Coeffs: []galois.Element{0, 1}} }

// Monomial returns c*T^d.
func (r *Ring) Monomial(c galois.Element, d int) Poly {
	if c == 0 {
		return Poly{}
	}
	coeffs := make([]galois.Element, d+1)
	coeffs[d] = c
	return Poly{Coeffs: coeffs}
}

// Scalar returns the constant polynomial c.
func (r *Ring) Scalar(c galois.Element) Poly { return r.Monomial(c, 0) }

// Add returns a + b.
func (r *Ring) Add(a, b Poly) Poly {
	if len(a.Coeffs) < len(b.Coeffs) {
		a, b = b, a
	}
	coeffs := append([]galois.Element(nil), a.Coeffs...)
	for i := range b.Coeffs {
		coeffs[i] = r.fq.Add(coeffs[i], b.Coeffs[i])
	}
	return r.NewPoly(coeffs)
}

// Neg returns -a.
func (r *Ring) Neg(a Poly) Poly {
	coeffs := make([]galois.Element, len(a.Coeffs))
	for i := range a.Coeffs {
		coeffs[i] = r.fq.Neg(a.Coeffs[i])
	}
	return Poly{Coeffs: coeffs}
}

// Sub returns a - b.
func (r *Ring) Sub(a, b Poly) Poly { return r.Add(a, r.Neg(b)) }

// Mul returns a * b.
func (r *Ring) Mul(a, b Poly) Poly {
	if a.IsZero() || b.IsZero() {
		return Poly{}
	}
	coeffs := make([]galois.Element, len(a.Coeffs)+len(b.Coeffs)-1)
	for i, ai := range a.Coeffs {
		if ai == 0 {
			continue
		}
		for j, bj := range b.Coeffs {
			coeffs[i+j] = r.fq.Add(coeffs[i+j], r.fq.Mul(ai, bj))
		}
	}
	return Poly{Coeffs: coeffs}
}

// MulScalar returns c * a.
func (r *Ring) MulScalar(a Poly, c galois.Element) Poly {
	if c == 0 {
		return Poly{}
	}
	coeffs := make([]galois.Element, len(a.Coeffs))
	for i := range a.Coeffs {
		coeffs[i] = r.fq.Mul(a.Coeffs[i], c)
	}
	return Poly{Coeffs: coeffs}
}

// QuoRem returns the quotient and remainder of the Euclidean division of a
// by b. It panics if b is zero.
func (r *Ring) QuoRem(a, b Poly) (quo, rem Poly) {
	if b.IsZero() {
		panic("ring: division by the zero polynomial")
	}
	if a.Degree() < b.Degree() {
		return Poly{}, a.CopyNew()
	}
	leadInv := r.fq.Inv(b.Lead())
	remC := append([]galois.Element(nil), a.Coeffs...)
	quoC := make([]galois.Element, a.Degree()-b.Degree()+1)
	for d := a.Degree(); d >= b.Degree(); d-- {
		c := remC[d]
		if c == 0 {
			continue
		}
		qc := r.fq.Mul(c, leadInv)
		quoC[d-b.Degree()] = qc
		off := d - b.Degree()
		for i, bi := range b.Coeffs {
			remC[off+i] = r.fq.Sub(remC[off+i], r.fq.Mul(qc, bi))
		}
	}
	return r.NewPoly(quoC), r.NewPoly(remC)
}

// Rem returns the remainder of a modulo b.
func (r *Ring) Rem(a, b Poly) Poly {
	_, rem := r.QuoRem(a, b)
	return rem
}

// Quo returns the quotient of the Euclidean division of a by b.
func (r *Ring) Quo(a, b Poly) Poly {
	quo, _ := r.QuoRem(a, b)
	return quo
}

// Monic returns a divided by its leading coefficient, with the zero
// polynomial mapped to itself.
func (r *Ring) Monic(a Poly) Poly {
	if a.IsZero() || a.Lead() == 1 {
		return a.CopyNew()
	}
	return r.MulScalar(a, r.fq.Inv(a.Lead()))
}

// Gcd returns the monic greatest common divisor of a and b.
func (r *Ring) Gcd(a, b Poly) Poly {
	a, b = a.CopyNew(), b.CopyNew()
	for !b.IsZero() {
		a, b = b, r.Rem(a, b)
	}
	return r.Monic(a)
}

// XGcd returns the monic g = gcd(a, b) together with u, v such that
// u*a + v*b = g.
func (r *Ring) XGcd(a, b Poly) (g, u, v Poly) {
	r0, r1 := a.CopyNew(), b.CopyNew()
	u0, u1 := r.One(), r.Zero()
	v0, v1 := r.Zero(), r.One()
	for !r1.IsZero() {
		q, rem := r.QuoRem(r0, r1)
		r0, r1 = r1, rem
		u0, u1 = u1, r.Sub(u0, r.Mul(q, u1))
		v0, v1 = v1, r.Sub(v0, r.Mul(q, v1))
	}
	if r0.IsZero() {
		return r0, u0, v0
	}
	lc := r0.Lead()
	if lc != 1 {
		inv := r.fq.Inv(lc)
		r0 = r.MulScalar(r0, inv)
		u0 = r.MulScalar(u0, inv)
		v0 = r.MulScalar(v0, inv)
	}
	return r0, u0, v0
}

// Pow returns a^e for a non-negative integer e, with a^0 = 1.
func (r *Ring) Pow(a Poly, e int) Poly {
	if e < 0 {
		panic("ring: negative exponent")
	}
	res := r.One()
	base := a.CopyNew()
	for ; e > 0; e >>= 1 {
		if e&1 == 1 {
			res = r.Mul(res, base)
		}
		base = r.Mul(base, base)
	}
	return res
}

// Eval evaluates a at the point x of the coefficient field.
func (r *Ring) Eval(a Poly, x galois.Element) galois.Element {
	var acc galois.Element
	for i := len(a.Coeffs) - 1; i >= 0; i-- {
		acc = r.fq.Add(r.fq.Mul(acc, x), a.Coeffs[i])
	}
	return acc
}

// Derivative returns the formal derivative of a.
func (r *Ring) Derivative(a Poly) Poly {
	if a.Degree() < 1 {
		return Poly{}
	}
	coeffs := make([]galois.Element, a.Degree())
	for i := 1; i <= a.Degree(); i++ {
		coeffs[i-1] = r.fq.Mul(a.Coeffs[i], r.fq.FromUint64(uint64(i)))
	}
	return r.NewPoly(coeffs)
}

// String formats a with T as the variable name.
func (r *Ring) String(a Poly) string {
	if a.IsZero() {
		return "0"
	}
	var terms []string
	for i := a.Degree(); i >= 0; i-- {
		c := a.Coeffs[i]
		if c == 0 {
			continue
		}
		cs := r.fq.String(c)
		switch {
		case i == 0:
			terms = append(terms, cs)
		case i == 1 && c == 1:
			terms = append(terms, "T")
		case i == 1:
			terms = append(terms, cs+"*T")
		case c == 1:
			terms = append(terms, fmt.Sprintf("T^%d", i))
		default:
			terms = append(terms, fmt.Sprintf("%s*T^%d", cs, i))
		}
	}
	return strings.Join(terms, " + ")
}
