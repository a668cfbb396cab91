package ring

import (
	"encoding/binary"

	"github.com/functionfields/drinfeld/galois"
	"github.com/functionfields/drinfeld/utils/sampling"
)

// UniformSampler draws uniformly distributed field elements and polynomials
// from a PRNG. Seeded with a KeyedPRNG it is fully deterministic.
type UniformSampler struct {
	prng sampling.PRNG
	r    *Ring
	mask uint64
}

// NewUniformSampler creates a new UniformSampler over the given ring.
func NewUniformSampler(prng sampling.PRNG, r *Ring) *UniformSampler {
	q := r.fq.Order()
	mask := uint64(1)
	for mask < q {
		mask <<= 1
	}
	return &UniformSampler{prng: prng, r: r, mask: mask - 1}
}

// ReadElement returns a uniform element of the coefficient field.
func (s *UniformSampler) ReadElement() galois.Element {
	var buf [8]byte
	q := s.r.fq.Order()
	for {
		if _, err := s.prng.Read(buf[:]); err != nil {
			panic(err)
		}
		if c := binary.BigEndian.Uint64(buf[:]) & s.mask; c < q {
			return galois.Element(c)
		}
	}
}

// ReadPoly returns a uniform polynomial of degree at most maxDeg.
func (s *UniformSampler) ReadPoly(maxDeg int) Poly {
	coeffs := make([]galois.Element, maxDeg+1)
	for i := range coeffs {
		coeffs[i] = s.ReadElement()
	}
	return s.r.NewPoly(coeffs)
}

// ReadMonic returns a uniform monic polynomial of degree exactly deg.
func (s *UniformSampler) ReadMonic(deg int) Poly {
	coeffs := make([]galois.Element, deg+1)
	for i := 0; i < deg; i++ {
		coeffs[i] = s.ReadElement()
	}
	coeffs[deg] = 1
	return Poly{Coeffs: coeffs}
}
