package hecke

import (
	"fmt"
	"math/big"

	"github.com/functionfields/drinfeld/funcfield"
	"github.com/functionfields/drinfeld/ring"
	"github.com/functionfields/drinfeld/utils"
)

// TraceFromList evaluates the trace of the Hecke operator T_{P^n} on the
// space S_{k,l} of weight-k, type-l cusp forms, from an already-computed
// isogeny class list. The result is an exact element of K; it lies in
// GF(q)[T] whenever the space is nonzero.
//
// Each record (a, b, N) contributes N copies of the Gekeler sum
//
//	sum_j (-1)^j C(k-2-j, j) a^(k-2-2j) P^(nj) b^(j+l'-k+1 mod q-1)
//
// with the binomial coefficient taken mod p by Lucas's theorem and l' the
// canonical type representative.
func (p *Params) TraceFromList(k, l int, list *IsogenyClassList) (funcfield.Elem, error) {
	if k < 2 {
		return funcfield.Elem{}, fmt.Errorf("hecke: weight must be at least 2, got %d", k)
	}
	lc := CanonicalType(l, p.q)
	charP := p.fq.Characteristic()
	c := p.k.FromPoly(list.PPow)

	total := p.k.Zero()
	for _, rec := range list.Records {
		// multiplicities act through the characteristic-p coefficient field
		nModP := new(big.Int).Mod(rec.N, new(big.Int).SetUint64(charP)).Uint64()
		if nModP == 0 {
			continue
		}
		a := p.k.FromPoly(rec.A)
		b := p.k.FromScalar(rec.B)

		term := p.k.Zero()
		for j := 0; 2*j <= k-2; j++ {
			lucas := Lucas(uint64(k-2-j), uint64(j), charP)
			if lucas == 0 {
				continue
			}
			// type twist: b^((j + l' - k + 1) mod (q-1))
			e := utils.Mod(j+lc-k+1, int(p.q)-1)
			s := p.k.MulScalar(p.k.Mul(p.k.Pow(a, k-2-2*j), p.k.Pow(c, j)), p.fq.FromUint64(lucas))
			s = p.k.Mul(s, p.k.Pow(b, e))
			if j%2 == 1 {
				s = p.k.Neg(s)
			}
			term = p.k.Add(term, s)
		}

		total = p.k.Add(total, p.k.MulScalar(term, p.fq.FromUint64(nModP)))
	}
	return total, nil
}

// HeckeTrace computes the trace of T_{P^n} on S_{k,l}, enumerating (or
// reusing a cached enumeration of) the isogeny classes for (n, P).
func (p *Params) HeckeTrace(k, l, n int, P ring.Poly) (funcfield.Elem, error) {
	list, err := p.cachedList(n, P)
	if err != nil {
		return funcfield.Elem{}, err
	}
	return p.TraceFromList(k, l, list)
}

// SimpleHeckeTrace computes the trace of the prime Hecke operator T_P,
// the n = 1 case of HeckeTrace.
func (p *Params) SimpleHeckeTrace(k, l int, P ring.Poly) (funcfield.Elem, error) {
	return p.HeckeTrace(k, l, 1, P)
}
