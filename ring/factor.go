package ring

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/functionfields/drinfeld/galois"
	"github.com/functionfields/drinfeld/utils"
)

// Factor is an irreducible monic factor together with its multiplicity.
type Factor struct {
	P Poly
	E int
}

// ExpMod returns a^e mod f for a non-negative big integer exponent e.
func (r *Ring) ExpMod(a Poly, e *big.Int, f Poly) Poly {
	res := r.Rem(r.One(), f)
	base := r.Rem(a, f)
	for i := e.BitLen() - 1; i >= 0; i-- {
		res = r.Rem(r.Mul(res, res), f)
		if e.Bit(i) == 1 {
			res = r.Rem(r.Mul(res, base), f)
		}
	}
	return res
}

// frobeniusPow returns T^(q^d) mod f.
func (r *Ring) frobeniusPow(d int, f Poly) Poly {
	q := new(big.Int).SetUint64(r.fq.Order())
	h := r.Rem(r.Gen(), f)
	for i := 0; i < d; i++ {
		h = r.ExpMod(h, q, f)
	}
	return h
}

// IsIrreducible applies Rabin's test to f. Constants and the zero
// polynomial are not irreducible; the test is insensitive to the leading
// coefficient.
func (r *Ring) IsIrreducible(f Poly) bool {
	n := f.Degree()
	if n < 1 {
		return false
	}
	if n == 1 {
		return true
	}
	f = r.Monic(f)
	if h := r.frobeniusPow(n, f); !h.Equal(r.Rem(r.Gen(), f)) {
		return false
	}
	for _, d := range utils.PrimeDivisors(n) {
		h := r.frobeniusPow(n/d, f)
		if g := r.Gcd(r.Sub(h, r.Gen()), f); g.Degree() != 0 {
			return false
		}
	}
	return true
}

// RandomIrreducible returns a uniformly sampled monic irreducible
// polynomial of degree deg, drawn from the ring's deterministic PRNG.
func (r *Ring) RandomIrreducible(deg int) Poly {
	if deg < 1 {
		panic("ring: irreducible degree must be positive")
	}
	s := NewUniformSampler(r.prng, r)
	for {
		if f := s.ReadMonic(deg); r.IsIrreducible(f) {
			return f
		}
	}
}

// Factor returns the leading unit of f and its monic irreducible factors
// with multiplicities, sorted by degree and then by coefficients. Factoring
// the zero polynomial is an error.
func (r *Ring) Factor(f Poly) (unit galois.Element, factors []Factor, err error) {
	if f.IsZero() {
		return 0, nil, fmt.Errorf("ring: cannot factor the zero polynomial")
	}
	unit = f.Lead()
	f = r.Monic(f)
	if f.Degree() == 0 {
		return unit, nil, nil
	}
	for _, sq := range r.squarefreeDecomposition(f) {
		for _, irr := range r.splitSquarefree(sq.P) {
			factors = append(factors, Factor{P: irr, E: sq.E})
		}
	}
	sortFactors(factors)
	return unit, factors, nil
}

// squarefreeDecomposition writes a monic f as a product of squarefree monic
// polynomials with multiplicities, using the characteristic-p variant of
// Yun's algorithm with p-th root descent.
func (r *Ring) squarefreeDecomposition(f Poly) (out []Factor) {
	p := int(r.fq.Characteristic())
	df := r.Derivative(f)
	if df.IsZero() {
		// f is a p-th power
		for _, fac := range r.squarefreeDecomposition(r.pthRoot(f)) {
			out = append(out, Factor{P: fac.P, E: fac.E * p})
		}
		return
	}
	c := r.Gcd(f, df)
	w := r.Quo(f, c)
	for i := 1; !w.Equal(r.One()); i++ {
		y := r.Gcd(w, c)
		if fac := r.Quo(w, y); fac.Degree() > 0 {
			out = append(out, Factor{P: fac, E: i})
		}
		w = y
		c = r.Quo(c, y)
	}
	if c.Degree() > 0 {
		for _, fac := range r.squarefreeDecomposition(r.pthRoot(c)) {
			out = append(out, Factor{P: fac.P, E: fac.E * p})
		}
	}
	return
}

// pthRoot returns the p-th root of a polynomial of the form g(T^p).
func (r *Ring) pthRoot(f Poly) Poly {
	p := int(r.fq.Characteristic())
	// the p-th root of a coefficient a in GF(q) is a^(q/p)
	e := r.fq.Order() / r.fq.Characteristic()
	coeffs := make([]galois.Element, f.Degree()/p+1)
	for i := range coeffs {
		coeffs[i] = r.fq.Pow(f.Coeff(i*p), e)
	}
	return r.NewPoly(coeffs)
}

// splitSquarefree factors a squarefree monic polynomial into monic
// irreducibles via distinct-degree and equal-degree splitting.
func (r *Ring) splitSquarefree(f Poly) (irr []Poly) {
	if f.Degree() == 0 {
		return nil
	}
	h := r.Rem(r.Gen(), f)
	q := new(big.Int).SetUint64(r.fq.Order())
	for d := 1; 2*d <= f.Degree(); d++ {
		h = r.ExpMod(h, q, f)
		g := r.Gcd(r.Sub(h, r.Gen()), f)
		if g.Degree() > 0 {
			irr = append(irr, r.equalDegreeSplit(g, d)...)
			f = r.Quo(f, g)
			h = r.Rem(h, f)
		}
	}
	if f.Degree() > 0 {
		irr = append(irr, f)
	}
	return
}

// equalDegreeSplit factors a squarefree monic product of irreducibles of
// common degree d (Cantor-Zassenhaus).
func (r *Ring) equalDegreeSplit(f Poly, d int) []Poly {
	if f.Degree() == d {
		return []Poly{f}
	}
	s := NewUniformSampler(r.prng, r)
	for {
		h := s.ReadPoly(f.Degree() - 1)
		if h.Degree() < 1 {
			continue
		}
		var w Poly
		if r.fq.Characteristic() == 2 {
			// trace map over GF(2)
			bits := d * log2(r.fq.Order())
			two := big.NewInt(2)
			acc, cur := r.Zero(), r.Rem(h, f)
			for i := 0; i < bits; i++ {
				acc = r.Add(acc, cur)
				cur = r.ExpMod(cur, two, f)
			}
			w = acc
		} else {
			e := new(big.Int).SetUint64(r.fq.Order())
			e.Exp(e, big.NewInt(int64(d)), nil)
			e.Sub(e, big.NewInt(1))
			e.Rsh(e, 1)
			w = r.Sub(r.ExpMod(h, e, f), r.One())
		}
		g := r.Gcd(w, f)
		if g.Degree() > 0 && g.Degree() < f.Degree() {
			left := r.equalDegreeSplit(g, d)
			right := r.equalDegreeSplit(r.Quo(f, g), d)
			return append(left, right...)
		}
	}
}

func log2(q uint64) (n int) {
	for q > 1 {
		q >>= 1
		n++
	}
	return
}

func sortFactors(factors []Factor) {
	sort.Slice(factors, func(i, j int) bool {
		a, b := factors[i].P, factors[j].P
		if a.Degree() != b.Degree() {
			return a.Degree() < b.Degree()
		}
		for k := a.Degree(); k >= 0; k-- {
			if a.Coeff(k) != b.Coeff(k) {
				return a.Coeff(k) < b.Coeff(k)
			}
		}
		return false
	})
}
