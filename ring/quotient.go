package ring

import (
	"fmt"
	"math/big"
)

// Quotient is the quotient ring GF(q)[T]/(g) for a monic modulus g of
// positive degree. When g is irreducible the quotient is the field GF(q^d),
// d = deg g, which is how the module realizes both residue fields of finite
// places and the extension fields needed for point counting.
// Elements are Poly values of degree below deg g.
type Quotient struct {
	r       *Ring
	modulus Poly
	order   *big.Int
}

// NewQuotient returns the quotient of the ring by the monic polynomial
// modulus of positive degree.
func (r *Ring) NewQuotient(modulus Poly) (*Quotient, error) {
	if modulus.Degree() < 1 {
		return nil, fmt.Errorf("ring: quotient modulus must have positive degree")
	}
	if modulus.Lead() != 1 {
		return nil, fmt.Errorf("ring: quotient modulus must be monic")
	}
	order := new(big.Int).SetUint64(r.fq.Order())
	order.Exp(order, big.NewInt(int64(modulus.Degree())), nil)
	return &Quotient{r: r, modulus: modulus.CopyNew(), order: order}, nil
}

// Ring returns the underlying polynomial ring.
func (k *Quotient) Ring() *Ring { return k.r }

// Modulus returns the defining modulus.
func (k *Quotient) Modulus() Poly { return k.modulus.CopyNew() }

// Order returns the number of elements of the quotient.
func (k *Quotient) Order() *big.Int { return new(big.Int).Set(k.order) }

// Reduce returns the canonical representative of a.
func (k *Quotient) Reduce(a Poly) Poly { return k.r.Rem(a, k.modulus) }

// Add returns a + b in the quotient.
func (k *Quotient) Add(a, b Poly) Poly { return k.Reduce(k.r.Add(a, b)) }

// Sub returns a - b in the quotient.
func (k *Quotient) Sub(a, b Poly) Poly { return k.Reduce(k.r.Sub(a, b)) }

// Mul returns a * b in the quotient.
func (k *Quotient) Mul(a, b Poly) Poly { return k.Reduce(k.r.Mul(a, b)) }

// Inv returns the inverse of a in the quotient, or an error if a is not
// invertible (always invertible for nonzero a when the modulus is
// irreducible).
func (k *Quotient) Inv(a Poly) (Poly, error) {
	g, u, _ := k.r.XGcd(k.Reduce(a), k.modulus)
	if g.Degree() != 0 {
		return Poly{}, fmt.Errorf("ring: element is not invertible in the quotient")
	}
	return k.Reduce(u), nil
}

// Exp returns a^e in the quotient for a non-negative big integer e.
func (k *Quotient) Exp(a Poly, e *big.Int) Poly {
	return k.r.ExpMod(a, e, k.modulus)
}

// IsSquare reports whether a is a square in the quotient, which must be a
// field. Zero counts as a square; in characteristic 2 every element is a
// square.
func (k *Quotient) IsSquare(a Poly) bool {
	a = k.Reduce(a)
	if a.IsZero() || k.r.fq.Characteristic() == 2 {
		return true
	}
	e := new(big.Int).Sub(k.order, big.NewInt(1))
	e.Rsh(e, 1)
	return k.Exp(a, e).Equal(k.r.One())
}
