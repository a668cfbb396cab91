package hecke

import (
	"github.com/functionfields/drinfeld/funcfield"
	"github.com/functionfields/drinfeld/utils"
)

// Lucas returns the binomial coefficient C(n, m) modulo the prime p,
// computed digit-wise in base p by Lucas's theorem. It returns 0 whenever
// m > n.
func Lucas(n, m, p uint64) uint64 {
	if m > n {
		return 0
	}
	res := uint64(1)
	for n > 0 || m > 0 {
		nd, md := n%p, m%p
		if md > nd {
			return 0
		}
		res = res * binomialMod(nd, md, p) % p
		n /= p
		m /= p
	}
	return res
}

// binomialMod returns C(n, m) mod p for digits 0 <= m <= n < p.
func binomialMod(n, m, p uint64) uint64 {
	if m > n-m {
		m = n - m
	}
	num, den := uint64(1), uint64(1)
	for i := uint64(0); i < m; i++ {
		num = num * ((n - i) % p) % p
		den = den * ((i + 1) % p) % p
	}
	// den is invertible mod p since m < p
	return num * powMod(den, p-2, p) % p
}

func powMod(a, e, p uint64) uint64 {
	r := uint64(1)
	a %= p
	for ; e > 0; e >>= 1 {
		if e&1 == 1 {
			r = r * a % p
		}
		a = a * a % p
	}
	return r
}

// HomSym evaluates the homogeneous symmetric polynomial of degree m in two
// variables, sum_{i=0}^{m} a^i b^(m-i), exactly over K.
func HomSym(k *funcfield.Field, m int, a, b funcfield.Elem) funcfield.Elem {
	acc := k.Zero()
	ai := k.One()
	for i := 0; i <= m; i++ {
		acc = k.Add(acc, k.Mul(ai, k.Pow(b, m-i)))
		ai = k.Mul(ai, a)
	}
	return acc
}

// CanonicalType reduces a type l modulo q-1 into the canonical range
// [1, q-1], with 0 mapped to q-1.
func CanonicalType(l int, q uint64) int {
	l = utils.Mod(l, int(q)-1)
	if l == 0 {
		l = int(q) - 1
	}
	return l
}

// CuspDim returns the dimension of the space S_{k,l} of Drinfeld cusp
// forms of weight k and type l over GF(q)(T), by the closed-form
// congruence/floor formula. A return of 0 means the space is trivial.
func CuspDim(k, l int, q uint64) int {
	l = CanonicalType(l, q)
	iq := int(q)
	if l > k/(iq+1) {
		return 0
	}
	if utils.Mod(k-2*l, iq-1) != 0 {
		return 0
	}
	return 1 + (k-l*(iq+1))/(iq*iq-1)
}
