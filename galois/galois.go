// Package galois implements exact arithmetic in finite fields GF(p^m) of
// small order. Elements are represented by uint64 indices: the index of an
// element with coordinates (d_0, ..., d_{m-1}) over the prime field is
// sum d_i * p^i, so the indices 0, ..., q-1 enumerate the field and the
// elements 0 and 1 are the additive and multiplicative identities.
// Prime fields use direct modular arithmetic; proper extensions are backed
// by discrete log/antilog tables over a fixed multiplicative generator.
package galois

import (
	"fmt"
	"math/big"

	"github.com/functionfields/drinfeld/utils"
)

// MaxTableOrder is the largest field order for which log/antilog tables are
// built. Proper extension fields larger than this are rejected.
const MaxTableOrder = 1 << 22

// Element is an element of a Field, encoded as described in the package
// documentation. An Element is only meaningful relative to its Field.
type Element uint64

// Field represents the finite field GF(p^m), q = p^m.
type Field struct {
	p       uint64   // characteristic
	m       int      // extension degree over the prime field
	q       uint64   // field order
	modulus []uint64 // monic irreducible of degree m over GF(p), low to high; nil if m == 1
	exp     []Element
	log     []uint64
}

// NewField returns the finite field of order q.
// q must be a prime power with characteristic below 2^31; proper extension
// fields are additionally bounded by MaxTableOrder.
func NewField(q uint64) (*Field, error) {
	p, m, err := factorPrimePower(q)
	if err != nil {
		return nil, err
	}
	f := &Field{p: p, m: m, q: q}
	if m > 1 {
		if q > MaxTableOrder {
			return nil, fmt.Errorf("galois: extension field order %d exceeds %d", q, MaxTableOrder)
		}
		f.modulus = findIrreducible(p, m)
		f.buildTables()
	}
	return f, nil
}

// Characteristic returns the characteristic p of the field.
func (f *Field) Characteristic() uint64 { return f.p }

// Degree returns the extension degree m of the field over its prime field.
func (f *Field) Degree() int { return f.m }

// Order returns the number of elements q = p^m of the field.
func (f *Field) Order() uint64 { return f.q }

// Modulus returns the defining irreducible polynomial over GF(p) for proper
// extensions, and nil for prime fields.
func (f *Field) Modulus() []uint64 {
	return append([]uint64(nil), f.modulus...)
}

// FromUint64 returns the image of the integer c in the prime subfield.
func (f *Field) FromUint64(c uint64) Element {
	return Element(c % f.p)
}

// FromInt64 returns the image of the integer c in the prime subfield.
func (f *Field) FromInt64(c int64) Element {
	r := c % int64(f.p)
	if r < 0 {
		r += int64(f.p)
	}
	return Element(r)
}

// Add returns a + b.
func (f *Field) Add(a, b Element) Element {
	if f.m == 1 {
		return Element((uint64(a) + uint64(b)) % f.p)
	}
	var c, pw uint64 = 0, 1
	x, y := uint64(a), uint64(b)
	for i := 0; i < f.m; i++ {
		c += ((x + y) % f.p) * pw
		x /= f.p
		y /= f.p
		pw *= f.p
	}
	return Element(c)
}

// Neg returns -a.
func (f *Field) Neg(a Element) Element {
	if f.m == 1 {
		if a == 0 {
			return 0
		}
		return Element(f.p - uint64(a))
	}
	var c, pw uint64 = 0, 1
	x := uint64(a)
	for i := 0; i < f.m; i++ {
		d := x % f.p
		if d != 0 {
			d = f.p - d
		}
		c += d * pw
		x /= f.p
		pw *= f.p
	}
	return Element(c)
}

// Sub returns a - b.
func (f *Field) Sub(a, b Element) Element {
	return f.Add(a, f.Neg(b))
}

// Mul returns a * b.
func (f *Field) Mul(a, b Element) Element {
	if a == 0 || b == 0 {
		return 0
	}
	if f.m == 1 {
		return Element((uint64(a) * uint64(b)) % f.p)
	}
	return f.exp[(f.log[a]+f.log[b])%(f.q-1)]
}

// Inv returns a^-1. It panics if a is zero.
func (f *Field) Inv(a Element) Element {
	if a == 0 {
		panic("galois: inversion of zero")
	}
	if f.m == 1 {
		return f.Pow(a, f.p-2)
	}
	return f.exp[(f.q-1-f.log[a])%(f.q-1)]
}

// Pow returns a^e for a non-negative exponent e, with 0^0 = 1.
func (f *Field) Pow(a Element, e uint64) Element {
	r := Element(1)
	base := a
	for ; e > 0; e >>= 1 {
		if e&1 == 1 {
			r = f.Mul(r, base)
		}
		base = f.Mul(base, base)
	}
	return r
}

// Exp returns a^e for a non-negative big integer exponent e.
func (f *Field) Exp(a Element, e *big.Int) Element {
	if a == 0 {
		if e.Sign() == 0 {
			return 1
		}
		return 0
	}
	// the multiplicative group has order q-1
	r := new(big.Int).Mod(e, new(big.Int).SetUint64(f.q-1))
	return f.Pow(a, r.Uint64())
}

// IsSquare reports whether a is a square in the field.
// Zero counts as a square; in characteristic 2 every element is a square.
func (f *Field) IsSquare(a Element) bool {
	if a == 0 || f.p == 2 {
		return true
	}
	if f.m > 1 {
		return f.log[a]%2 == 0
	}
	return f.Pow(a, (f.q-1)/2) == 1
}

// Equal reports whether a and b are the same element.
func (f *Field) Equal(a, b Element) bool { return a == b }

// ForEachElement calls visit for every element of the field, zero first.
func (f *Field) ForEachElement(visit func(Element)) {
	for c := uint64(0); c < f.q; c++ {
		visit(Element(c))
	}
}

// String formats an element: prime-field elements as integers, extension
// elements as coordinate vectors over GF(p).
func (f *Field) String(a Element) string {
	if f.m == 1 {
		return fmt.Sprintf("%d", uint64(a))
	}
	digits := make([]uint64, f.m)
	x := uint64(a)
	for i := range digits {
		digits[i] = x % f.p
		x /= f.p
	}
	return fmt.Sprintf("%v", digits)
}

// buildTables fills the log/antilog tables from a multiplicative generator.
func (f *Field) buildTables() {
	g := f.findGenerator()
	f.exp = make([]Element, f.q-1)
	f.log = make([]uint64, f.q)
	acc := []uint64{1}
	for i := uint64(0); i < f.q-1; i++ {
		e := packDigits(acc, f.p)
		f.exp[i] = Element(e)
		f.log[e] = i
		acc = polyMulMod(acc, g, f.modulus, f.p)
	}
}

// findGenerator returns the digit vector of a generator of the
// multiplicative group, found by exhaustive order testing.
func (f *Field) findGenerator() []uint64 {
	divisors := utils.PrimeDivisors(int(f.q - 1))
	for cand := uint64(2); cand < f.q; cand++ {
		g := unpackDigits(cand, f.p, f.m)
		ok := true
		for _, r := range divisors {
			if polyPowModIsOne(g, (f.q-1)/uint64(r), f.modulus, f.p) {
				ok = false
				break
			}
		}
		if ok {
			return g
		}
	}
	panic("galois: no multiplicative generator found")
}

func packDigits(d []uint64, p uint64) (c uint64) {
	for i := len(d) - 1; i >= 0; i-- {
		c = c*p + d[i]
	}
	return
}

func unpackDigits(c, p uint64, m int) []uint64 {
	d := make([]uint64, m)
	for i := 0; i < m; i++ {
		d[i] = c % p
		c /= p
	}
	return d
}

func factorPrimePower(q uint64) (p uint64, m int, err error) {
	if q < 2 {
		return 0, 0, fmt.Errorf("galois: %d is not a prime power", q)
	}
	p = smallestPrimeFactor(q)
	if p >= 1<<31 {
		return 0, 0, fmt.Errorf("galois: characteristic %d exceeds 2^31", p)
	}
	for n := q; n > 1; n /= p {
		if n%p != 0 {
			return 0, 0, fmt.Errorf("galois: %d is not a prime power", q)
		}
		m++
	}
	return p, m, nil
}

func smallestPrimeFactor(n uint64) uint64 {
	if n%2 == 0 {
		return 2
	}
	for d := uint64(3); d*d <= n; d += 2 {
		if n%d == 0 {
			return d
		}
	}
	return n
}
