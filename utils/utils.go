// Package utils implements small generic helpers shared across the module.
package utils

import (
	"golang.org/x/exp/constraints"
)

// Min returns the minimum of a and b.
func Min[T constraints.Ordered](a, b T) T {
	if a <= b {
		return a
	}
	return b
}

// Max returns the maximum of a and b.
func Max[T constraints.Ordered](a, b T) T {
	if a >= b {
		return a
	}
	return b
}

// Gcd returns the non-negative greatest common divisor of a and b.
func Gcd[T constraints.Signed](a, b T) T {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Mod returns a mod m in the canonical range [0, m).
// The result is non-negative for any sign of a; m must be positive.
func Mod[T constraints.Signed](a, m T) T {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// CeilDiv returns the ceiling of a/b for positive b.
func CeilDiv[T constraints.Signed](a, b T) T {
	if a <= 0 {
		return a / b
	}
	return (a + b - 1) / b
}

// PrimeDivisors returns the distinct prime divisors of n in increasing order.
func PrimeDivisors(n int) (primes []int) {
	for p := 2; p*p <= n; p++ {
		if n%p == 0 {
			primes = append(primes, p)
			for n%p == 0 {
				n /= p
			}
		}
	}
	if n > 1 {
		primes = append(primes, n)
	}
	return
}
