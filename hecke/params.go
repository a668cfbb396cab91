// Package hecke computes traces, characteristic polynomials and
// Newton-polygon slopes of Hecke operators acting on spaces of Drinfeld
// cusp forms over K = GF(q)(T), via an explicit trace formula evaluated on
// weighted enumerations of rank-2 isogeny classes.
//
// The enumeration (an IsogenyClassList) depends only on the field size q,
// the exponent n and the characteristic polynomial P; it is computed once
// and reused across all weight/type queries, which is the reason this
// pipeline pays for the enumeration up front.
package hecke

import (
	"fmt"
	"sync"

	"github.com/functionfields/drinfeld/funcfield"
	"github.com/functionfields/drinfeld/galois"
	"github.com/functionfields/drinfeld/ring"
)

// Params bundles the algebraic tower attached to a field size q: the
// coefficient field GF(q), the polynomial ring GF(q)[T] and its fraction
// field K. A Params is safe for concurrent use.
type Params struct {
	q  uint64
	fq *galois.Field
	r  *ring.Ring
	k  *funcfield.Field

	mu    sync.Mutex
	lists map[string]*IsogenyClassList
}

// NewParams validates q and constructs the algebraic tower for GF(q)(T).
// q must be a prime power; the quadratic-extension machinery behind the
// isogeny-class enumeration additionally requires odd q, which is checked
// at enumeration time rather than here.
func NewParams(q uint64) (*Params, error) {
	fq, err := galois.NewField(q)
	if err != nil {
		return nil, fmt.Errorf("hecke: invalid field size: %w", err)
	}
	r := ring.NewRing(fq)
	return &Params{
		q:     q,
		fq:    fq,
		r:     r,
		k:     funcfield.NewField(r),
		lists: make(map[string]*IsogenyClassList),
	}, nil
}

// Q returns the field size q.
func (p *Params) Q() uint64 { return p.q }

// Field returns the coefficient field GF(q).
func (p *Params) Field() *galois.Field { return p.fq }

// Ring returns the polynomial ring GF(q)[T].
func (p *Params) Ring() *ring.Ring { return p.r }

// K returns the rational function field GF(q)(T).
func (p *Params) K() *funcfield.Field { return p.k }

// cachedList memoizes IsogenyClassLists by (n, P); the enumeration is by
// far the dominant cost and is independent of weight and type.
func (p *Params) cachedList(n int, P ring.Poly) (*IsogenyClassList, error) {
	key := fmt.Sprintf("%d|%v", n, P.Coeffs)
	p.mu.Lock()
	list, ok := p.lists[key]
	p.mu.Unlock()
	if ok {
		return list, nil
	}
	list, err := p.EnumerateIsogenyClasses(n, P)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.lists[key] = list
	p.mu.Unlock()
	return list, nil
}
