package galois

import (
	"github.com/functionfields/drinfeld/utils"
)

// This file implements just enough polynomial arithmetic over the prime
// field GF(p) (dense coefficient slices, low to high) to search for the
// defining modulus of an extension field and to build its tables.

func polyTrim(a []uint64) []uint64 {
	n := len(a)
	for n > 0 && a[n-1] == 0 {
		n--
	}
	return a[:n]
}

func polyMul(a, b []uint64, p uint64) []uint64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	c := make([]uint64, len(a)+len(b)-1)
	for i, ai := range a {
		if ai == 0 {
			continue
		}
		for j, bj := range b {
			c[i+j] = (c[i+j] + ai*bj) % p
		}
	}
	return polyTrim(c)
}

// polyMod reduces a modulo the monic polynomial f.
func polyMod(a, f []uint64, p uint64) []uint64 {
	a = append([]uint64(nil), a...)
	d := len(f) - 1
	for len(a) > d {
		lead := a[len(a)-1]
		if lead != 0 {
			off := len(a) - 1 - d
			for i := 0; i < d; i++ {
				a[off+i] = (a[off+i] + (p-1)*lead%p*f[i]) % p
			}
		}
		a = a[:len(a)-1]
		a = polyTrim(a)
	}
	return a
}

func polyMulMod(a, b, f []uint64, p uint64) []uint64 {
	return polyMod(polyMul(a, b, p), f, p)
}

func polyPowMod(a []uint64, e uint64, f []uint64, p uint64) []uint64 {
	r := []uint64{1}
	base := polyMod(a, f, p)
	for ; e > 0; e >>= 1 {
		if e&1 == 1 {
			r = polyMulMod(r, base, f, p)
		}
		base = polyMulMod(base, base, f, p)
	}
	return r
}

func polyPowModIsOne(a []uint64, e uint64, f []uint64, p uint64) bool {
	r := polyPowMod(a, e, f, p)
	return len(r) == 1 && r[0] == 1
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

func polyGcd(a, b []uint64, p uint64) []uint64 {
	a, b = polyTrim(append([]uint64(nil), a...)), polyTrim(append([]uint64(nil), b...))
	for len(b) > 0 {
		// make b monic so polyMod applies
		inv := powMod(b[len(b)-1], p-2, p)
		bm := make([]uint64, len(b))
		for i := range b {
			bm[i] = b[i] * inv % p
		}
		a, b = bm, polyMod(a, bm, p)
	}
	return a
}

// frobeniusPower returns x^(p^d) mod f.
func frobeniusPower(d int, f []uint64, p uint64) []uint64 {
	h := []uint64{0, 1}
	for i := 0; i < d; i++ {
		h = polyPowMod(h, p, f, p)
	}
	return h
}

// isIrreducible applies Rabin's test to a monic polynomial f of degree m
// over GF(p).
func isIrreducible(f []uint64, p uint64) bool {
	m := len(f) - 1
	if m < 1 {
		return false
	}
	if m == 1 {
		return true
	}
	// x^(p^m) = x mod f
	h := frobeniusPower(m, f, p)
	if !(len(h) == 2 && h[0] == 0 && h[1] == 1) {
		return false
	}
	for _, r := range utils.PrimeDivisors(m) {
		g := frobeniusPower(m/r, f, p)
		// g - x
		gx := append([]uint64(nil), g...)
		for len(gx) < 2 {
			gx = append(gx, 0)
		}
		gx[1] = (gx[1] + p - 1) % p
		gx = polyTrim(gx)
		d := polyGcd(f, gx, p)
		if len(d) != 1 {
			return false
		}
	}
	return true
}

// findIrreducible returns the lexicographically first monic irreducible
// polynomial of degree m over GF(p).
func findIrreducible(p uint64, m int) []uint64 {
	f := make([]uint64, m+1)
	f[m] = 1
	for c := uint64(0); ; c++ {
		x := c
		for i := 0; i < m; i++ {
			f[i] = x % p
			x /= p
		}
		if x > 0 {
			panic("galois: no irreducible polynomial found")
		}
		if isIrreducible(f, p) {
			return append([]uint64(nil), f...)
		}
	}
}
