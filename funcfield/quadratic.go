package funcfield

import (
	"fmt"

	"github.com/functionfields/drinfeld/ring"
)

// SplittingType describes the behavior of a place of K in the quadratic
// extension K(sqrt(D)).
type SplittingType int

const (
	// Split means two places of the extension lie above the place.
	Split SplittingType = iota
	// Inert means a single unramified place of residue degree 2 lies above.
	Inert
	// Ramified means a single place with ramification index 2 lies above.
	Ramified
)

func (s SplittingType) String() string {
	switch s {
	case Split:
		return "split"
	case Inert:
		return "inert"
	case Ramified:
		return "ramified"
	default:
		return fmt.Sprintf("SplittingType(%d)", int(s))
	}
}

// errEvenChar is returned by the quadratic-extension routines in
// characteristic 2, where quadratic extensions are Artin-Schreier and the
// discriminant formalism below does not apply.
func (f *Field) errEvenChar() error {
	return fmt.Errorf("funcfield: quadratic-extension arithmetic requires odd characteristic")
}

// Discriminant returns the discriminant a^2 - 4b of X^2 + aX + b.
func (f *Field) Discriminant(a, b Elem) Elem {
	return f.Sub(f.Mul(a, a), f.MulScalar(b, f.r.Field().FromUint64(4)))
}

// SplittingAt returns the behavior of the place pl in K(sqrt(D)).
// D must be nonzero and not a square in K, and the characteristic odd.
func (f *Field) SplittingAt(D Elem, pl Place) (SplittingType, error) {
	if f.r.Field().Characteristic() == 2 {
		return 0, f.errEvenChar()
	}
	if D.IsZero() {
		return 0, fmt.Errorf("funcfield: zero discriminant")
	}
	v := f.Valuation(D, pl)
	if v%2 != 0 {
		return Ramified, nil
	}
	if pl.IsInfinite() {
		// the unit part of D at infinity is lc(Num)/lc(Den); 1 + O(1/T)
		// is a square in the completion by Hensel's lemma
		lc := f.r.Field().Mul(D.Num.Lead(), f.r.Field().Inv(D.Den.Lead()))
		if f.r.Field().IsSquare(lc) {
			return Split, nil
		}
		return Inert, nil
	}
	u, err := f.unitPart(D, pl)
	if err != nil {
		return 0, err
	}
	k, err := f.r.NewQuotient(pl.p)
	if err != nil {
		return 0, err
	}
	if k.IsSquare(u) {
		return Split, nil
	}
	return Inert, nil
}

// IsSquare reports whether x is a square in K, that is, whether every
// irreducible occurs in x with even multiplicity and the leading unit is a
// square in GF(q). Since numerator and denominator are coprime they are
// tested independently.
func (f *Field) IsSquare(x Elem) (bool, error) {
	if x.IsZero() {
		return true, nil
	}
	fq := f.r.Field()
	lc := fq.Mul(x.Num.Lead(), fq.Inv(x.Den.Lead()))
	if !fq.IsSquare(lc) {
		return false, nil
	}
	for _, pol := range []ring.Poly{x.Num, x.Den} {
		if pol.Degree() < 1 {
			continue
		}
		_, factors, err := f.r.Factor(pol)
		if err != nil {
			return false, err
		}
		for _, fac := range factors {
			if fac.E%2 != 0 {
				return false, nil
			}
		}
	}
	return true, nil
}

// IsImaginary reports whether the quadratic extension K(sqrt(D)) is
// imaginary: D is not a square in K (so the quadratic X^2 + aX + b with
// discriminant D is irreducible over K) and a single place of the extension
// lies above the place at infinity. This is the Weil-number admissibility
// predicate used by the isogeny-class enumerator.
func (f *Field) IsImaginary(D Elem) (bool, error) {
	if f.r.Field().Characteristic() == 2 {
		return false, f.errEvenChar()
	}
	if D.IsZero() {
		return false, nil
	}
	sq, err := f.IsSquare(D)
	if err != nil {
		return false, err
	}
	if sq {
		return false, nil
	}
	s, err := f.SplittingAt(D, f.InfinitePlace())
	if err != nil {
		return false, err
	}
	return s != Split, nil
}
