package hecke

import (
	"fmt"
	"math/big"

	"github.com/functionfields/drinfeld/funcfield"
	"github.com/functionfields/drinfeld/galois"
	"github.com/functionfields/drinfeld/ring"
	"github.com/functionfields/drinfeld/utils"
)

// EnumerateIsogenyClasses produces the complete weighted enumeration of
// rank-2 isogeny classes for the exponent n and the monic irreducible
// characteristic polynomial P: the ordinary classes and the three
// supersingular families, with exact multiplicities. The four cases are
// disjoint; records with multiplicity 0 are kept.
//
// The quadratic-extension arithmetic restricts the enumeration to odd q.
func (p *Params) EnumerateIsogenyClasses(n int, P ring.Poly) (*IsogenyClassList, error) {
	if p.fq.Characteristic() == 2 {
		return nil, fmt.Errorf("hecke: enumeration requires odd characteristic")
	}
	if n < 1 {
		return nil, fmt.Errorf("hecke: exponent must be positive, got %d", n)
	}
	if P.Lead() != 1 || !p.r.IsIrreducible(P) {
		return nil, fmt.Errorf("hecke: characteristic polynomial %s must be monic irreducible", p.r.String(P))
	}

	pPow := p.r.Pow(P, n)
	list := &IsogenyClassList{Q: p.q, N: n, P: P.CopyNew(), PPow: pPow}

	// ordinary classes: traces z of degree below ceil(deg(P)*n/2) coprime
	// to P, norms y in GF(q)*
	degBound := utils.CeilDiv(P.Degree()*n, 2)
	digits := make([]galois.Element, degBound)
	for {
		z := p.r.NewPoly(digits)
		if p.r.Gcd(z, P).Degree() == 0 {
			for y := galois.Element(1); uint64(y) < p.q; y++ {
				d := p.discriminant(z, y, pPow)
				im, err := p.k.IsImaginary(p.k.FromPoly(d))
				if err != nil {
					return nil, err
				}
				if !im {
					continue
				}
				mult, err := p.hurwitzClassNumber(d)
				if err != nil {
					return nil, err
				}
				list.Records = append(list.Records, WeilNumberRecord{A: z, B: y, N: mult})
			}
		}
		if !nextDigits(digits, p.q) {
			break
		}
	}

	if n%2 == 1 {
		// supersingular family 1: X^2 + x*P^n, weighted by the class
		// number of the maximal order of K(sqrt(-x*P))
		for x := galois.Element(1); uint64(x) < p.q; x++ {
			d := p.discriminant(p.r.Zero(), x, pPow)
			im, err := p.k.IsImaginary(p.k.FromPoly(d))
			if err != nil {
				return nil, err
			}
			if !im {
				continue
			}
			h, err := p.k.ClassNumber(p.k.FromPoly(p.discriminant(p.r.Zero(), x, P)))
			if err != nil {
				return nil, err
			}
			list.Records = append(list.Records, WeilNumberRecord{A: p.r.Zero(), B: x, N: h})
		}
	} else {
		pHalf := p.r.Pow(P, n/2)
		if P.Degree()%2 == 1 {
			// supersingular family 2: traces v*P^(n/2) with X^2 + vX + m
			// irreducible over GF(q); fixed multiplicity 2
			for v := galois.Element(0); uint64(v) < p.q; v++ {
				for m := galois.Element(1); uint64(m) < p.q; m++ {
					discScalar := p.fq.Sub(p.fq.Mul(v, v), p.fq.Mul(p.fq.FromUint64(4), m))
					if p.fq.IsSquare(discScalar) {
						continue
					}
					list.Records = append(list.Records, WeilNumberRecord{
						A: p.r.MulScalar(pHalf, v),
						B: m,
						N: big.NewInt(2),
					})
				}
			}
		}
		// supersingular family 3: the split quadratics (X - x*P^(n/2))^2,
		// fixed multiplicity 1
		for x := galois.Element(1); uint64(x) < p.q; x++ {
			a := p.r.MulScalar(pHalf, p.fq.Neg(p.fq.Mul(p.fq.FromUint64(2), x)))
			list.Records = append(list.Records, WeilNumberRecord{
				A: a,
				B: p.fq.Mul(x, x),
				N: big.NewInt(1),
			})
		}
	}

	return list, nil
}

// discriminant returns z^2 - 4*y*c as a polynomial.
func (p *Params) discriminant(z ring.Poly, y galois.Element, c ring.Poly) ring.Poly {
	return p.r.Sub(p.r.Mul(z, z), p.r.MulScalar(c, p.fq.Mul(p.fq.FromUint64(4), y)))
}

// nextDigits advances a base-q digit vector, returning false on wrap-around.
func nextDigits(digits []galois.Element, q uint64) bool {
	for i := range digits {
		digits[i]++
		if uint64(digits[i]) < q {
			return true
		}
		digits[i] = 0
	}
	return false
}

// hurwitzClassNumber returns the weighted class number attached to the
// discriminant d: the class number h of the maximal order of K(sqrt(d)),
// corrected by the local behavior of the primes dividing d with even
// multiplicity (the primes whose ramification is not forced). If any such
// prime splits the order is degenerate and the weight is 0; each such prime
// that is instead ramified doubles the weight.
func (p *Params) hurwitzClassNumber(d ring.Poly) (*big.Int, error) {
	dElem := p.k.FromPoly(d)
	h, err := p.k.ClassNumber(dElem)
	if err != nil {
		return nil, err
	}
	if h.Sign() == 0 {
		return h, nil
	}
	_, factors, err := p.r.Factor(d)
	if err != nil {
		return nil, err
	}
	doublings := 0
	for _, fac := range factors {
		if fac.E%2 != 0 {
			continue
		}
		pl, err := p.k.FinitePlace(fac.P)
		if err != nil {
			return nil, err
		}
		s, err := p.k.SplittingAt(dElem, pl)
		if err != nil {
			return nil, err
		}
		switch s {
		case funcfield.Split:
			return big.NewInt(0), nil
		case funcfield.Ramified:
			doublings++
		}
	}
	return new(big.Int).Lsh(h, uint(doublings)), nil
}
