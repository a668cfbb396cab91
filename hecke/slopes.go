package hecke

import (
	"github.com/functionfields/drinfeld/funcfield"
	"github.com/functionfields/drinfeld/ring"
)

// Slopes returns the Newton-polygon slope decomposition of f at the place
// pl, as (valuation, multiplicity) pairs with strictly increasing
// valuations. Applied to a Hecke characteristic polynomial this gives the
// valuations of the Hecke eigenvalues with multiplicity.
func (p *Params) Slopes(f funcfield.Poly, pl funcfield.Place) ([]funcfield.Slope, error) {
	return p.k.NewtonSlopes(f, pl)
}

// InfHeckeSlopes computes the eigenvalue valuations of T_P on S_{k,l} at
// the place at infinity, the invariant studied in slope conjectures.
func (p *Params) InfHeckeSlopes(k, l int, P ring.Poly) ([]funcfield.Slope, error) {
	f, err := p.CharPol(k, l, P)
	if err != nil {
		return nil, err
	}
	if f.Degree() < 0 {
		return nil, nil
	}
	return p.k.NewtonSlopes(f, p.k.InfinitePlace())
}

// THeckeSlopes computes the eigenvalue valuations of T_P on S_{k,l} at the
// finite place T.
func (p *Params) THeckeSlopes(k, l int, P ring.Poly) ([]funcfield.Slope, error) {
	f, err := p.CharPol(k, l, P)
	if err != nil {
		return nil, err
	}
	if f.Degree() < 0 {
		return nil, nil
	}
	pl, err := p.k.FinitePlace(p.r.Gen())
	if err != nil {
		return nil, err
	}
	return p.k.NewtonSlopes(f, pl)
}
