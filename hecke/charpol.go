package hecke

import (
	"errors"
	"fmt"

	"github.com/functionfields/drinfeld/funcfield"
	"github.com/functionfields/drinfeld/ring"
)

// ErrReconstruction reports that the correction system for the elementary
// symmetric functions is rank-deficient, so the characteristic polynomial
// is not determined by the supplied traces.
var ErrReconstruction = errors.New("hecke: correction system is rank-deficient")

// ErrInsufficientTraces reports that fewer traces were supplied than the
// reconstruction needs.
var ErrInsufficientTraces = errors.New("hecke: not enough traces for reconstruction")

// TracesNeeded returns how many power traces s_1..s_N the reconstruction of
// the degree-d characteristic polynomial consumes in characteristic p. For
// d < p the classical Newton identities suffice and N = d; beyond that the
// identities with index divisible by p are void and extra traces make up
// the lost equations.
func TracesNeeded(d int, p uint64) int {
	if d <= 0 {
		return 0
	}
	if d < int(p) {
		return d
	}
	return d + (d-1)/(int(p)-1)
}

// CharPolFromList reconstructs the characteristic polynomial of T_P on
// S_{k,l} from the traces of its powers, traces[i] holding s_{i+1}. The
// polynomial has coefficients in K and is returned lowest degree first.
//
// In characteristic p the Newton identity of index r degenerates whenever
// p divides r, so the elementary symmetric functions e_p, ..., e_d cannot
// be peeled off one at a time. They are instead recovered jointly: each
// identity of index r in (p, N] with p not dividing r is a linear relation
// among them, and the resulting (d-p+1) x (d-p+1) system is solved by
// Gaussian elimination over K.
func (p *Params) CharPolFromList(k, l int, traces []funcfield.Elem) (funcfield.Poly, error) {
	if k < 2 {
		return nil, fmt.Errorf("hecke: weight must be at least 2, got %d", k)
	}
	d := CuspDim(k, l, p.q)
	if d == 0 {
		return funcfield.Poly{}, nil
	}
	charP := int(p.fq.Characteristic())
	need := TracesNeeded(d, uint64(charP))
	if len(traces) < need {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientTraces, len(traces), need)
	}
	s := func(j int) funcfield.Elem { return traces[j-1] }

	e := make([]funcfield.Elem, d+1)
	e[0] = p.k.One()

	// classical Newton identities while the index is invertible mod p
	direct := d
	if direct >= charP {
		direct = charP - 1
	}
	for i := 1; i <= direct; i++ {
		acc := p.k.Zero()
		for j := 1; j <= i; j++ {
			t := p.k.Mul(s(j), e[i-j])
			if j%2 == 0 {
				t = p.k.Neg(t)
			}
			acc = p.k.Add(acc, t)
		}
		inv := p.fq.Inv(p.fq.FromUint64(uint64(i)))
		e[i] = p.k.MulScalar(acc, inv)
	}

	if d >= charP {
		m := d - charP + 1
		mat := make([][]funcfield.Elem, 0, m)
		rhs := make([]funcfield.Elem, 0, m)
		for r := charP + 1; r <= need; r++ {
			if r%charP == 0 {
				continue
			}
			row := make([]funcfield.Elem, m)
			for i := range row {
				row[i] = p.k.Zero()
			}
			// unknown columns: e_i for p <= i <= min(r-1, d)
			hi := r - 1
			if hi > d {
				hi = d
			}
			for i := charP; i <= hi; i++ {
				c := s(r - i)
				if i%2 == 1 {
					c = p.k.Neg(c)
				}
				row[i-charP] = c
			}
			// the (-1)^r r e_r term survives when r <= d
			if r <= d {
				c := p.k.FromScalar(p.fq.FromInt64(int64(r)))
				if r%2 == 1 {
					c = p.k.Neg(c)
				}
				row[r-charP] = p.k.Add(row[r-charP], c)
			}
			// knowns e_0..e_{p-1} move to the right-hand side
			b := p.k.Zero()
			for i := 0; i < charP; i++ {
				t := p.k.Mul(e[i], s(r-i))
				if i%2 == 0 {
					t = p.k.Neg(t)
				}
				b = p.k.Add(b, t)
			}
			mat = append(mat, row)
			rhs = append(rhs, b)
		}
		sol, err := p.solveLinear(mat, rhs)
		if err != nil {
			return nil, err
		}
		copy(e[charP:], sol)
	}

	coeffs := make([]funcfield.Elem, d+1)
	for i := 0; i <= d; i++ {
		c := e[i]
		if i%2 == 1 {
			c = p.k.Neg(c)
		}
		coeffs[d-i] = c
	}
	return funcfield.Poly(coeffs), nil
}

// solveLinear solves the square system mat * x = rhs over K by Gaussian
// elimination with pivoting on the first nonzero entry. It returns
// ErrReconstruction when the matrix is singular.
func (p *Params) solveLinear(mat [][]funcfield.Elem, rhs []funcfield.Elem) ([]funcfield.Elem, error) {
	n := len(mat)
	for col := 0; col < n; col++ {
		pivot := -1
		for row := col; row < n; row++ {
			if !mat[row][col].IsZero() {
				pivot = row
				break
			}
		}
		if pivot < 0 {
			return nil, ErrReconstruction
		}
		mat[col], mat[pivot] = mat[pivot], mat[col]
		rhs[col], rhs[pivot] = rhs[pivot], rhs[col]

		inv := p.k.Inv(mat[col][col])
		for j := col; j < n; j++ {
			mat[col][j] = p.k.Mul(mat[col][j], inv)
		}
		rhs[col] = p.k.Mul(rhs[col], inv)
		for row := 0; row < n; row++ {
			if row == col || mat[row][col].IsZero() {
				continue
			}
			f := mat[row][col]
			for j := col; j < n; j++ {
				mat[row][j] = p.k.Sub(mat[row][j], p.k.Mul(f, mat[col][j]))
			}
			rhs[row] = p.k.Sub(rhs[row], p.k.Mul(f, rhs[col]))
		}
	}
	return rhs, nil
}

// CharPol computes the characteristic polynomial of the Hecke operator T_P
// on S_{k,l}, evaluating the trace formula for every needed power of P.
// Enumerations are cached on the Params, so repeated calls with different
// weights and types reuse them.
func (p *Params) CharPol(k, l int, P ring.Poly) (funcfield.Poly, error) {
	if k < 2 {
		return nil, fmt.Errorf("hecke: weight must be at least 2, got %d", k)
	}
	d := CuspDim(k, l, p.q)
	if d == 0 {
		return funcfield.Poly{}, nil
	}
	need := TracesNeeded(d, p.fq.Characteristic())
	traces := make([]funcfield.Elem, need)
	for n := 1; n <= need; n++ {
		list, err := p.cachedList(n, P)
		if err != nil {
			return nil, err
		}
		if traces[n-1], err = p.TraceFromList(k, l, list); err != nil {
			return nil, err
		}
	}
	return p.CharPolFromList(k, l, traces)
}
