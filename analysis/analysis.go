// Package analysis turns exact slope data from the hecke package into
// summary statistics, archimedean-style magnitude estimates and HTML
// charts. Everything here is reporting: the exact pipeline never depends
// on this package, and floating point only appears past this boundary.
package analysis

import (
	"fmt"
	"math/big"

	"github.com/ALTree/bigfloat"
	"github.com/montanaflynn/stats"

	"github.com/functionfields/drinfeld/funcfield"
	"github.com/functionfields/drinfeld/hecke"
	"github.com/functionfields/drinfeld/ring"
)

// SlopeSummary aggregates a slope decomposition, weighting each slope by
// its multiplicity.
type SlopeSummary struct {
	Count  int
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes summary statistics of the given slopes. It returns an
// error on an empty decomposition.
func Summarize(slopes []funcfield.Slope) (SlopeSummary, error) {
	var values []float64
	for _, s := range slopes {
		v, _ := s.Slope.Float64()
		for i := 0; i < s.Multiplicity; i++ {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return SlopeSummary{}, fmt.Errorf("analysis: no slopes to summarize")
	}
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	stddev, _ := stats.StandardDeviation(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	return SlopeSummary{
		Count:  len(values),
		Mean:   mean,
		Median: median,
		StdDev: stddev,
		Min:    min,
		Max:    max,
	}, nil
}

func (s SlopeSummary) String() string {
	return fmt.Sprintf("count=%d mean=%.4f median=%.4f std=%.4f min=%.4f max=%.4f",
		s.Count, s.Mean, s.Median, s.StdDev, s.Min, s.Max)
}

// EigenvalueMagnitude returns q^(-v) as a big.Float at the given precision:
// the normalized absolute value, at the place the slope was computed at, of
// a Hecke eigenvalue with valuation v at a place of degree 1.
func EigenvalueMagnitude(q uint64, v *big.Rat, prec uint) *big.Float {
	base := new(big.Float).SetPrec(prec).SetUint64(q)
	exp := new(big.Float).SetPrec(prec).SetRat(new(big.Rat).Neg(v))
	return bigfloat.Pow(base, exp)
}

// WeightPoint is one row of a slope sweep: the slope decomposition of T_P
// on S_{k,l} for a single weight k.
type WeightPoint struct {
	Weight int
	Dim    int
	Slopes []funcfield.Slope
}

// WeightSweep computes the infinity-adic slope decomposition of T_P on
// S_{k,l} for every weight in [kMin, kMax], skipping weights whose space is
// trivial. It is the data behind the slope-variation charts.
func WeightSweep(p *hecke.Params, l, kMin, kMax int, P ring.Poly) ([]WeightPoint, error) {
	var out []WeightPoint
	for k := kMin; k <= kMax; k++ {
		d := hecke.CuspDim(k, l, p.Q())
		if d == 0 {
			continue
		}
		slopes, err := p.InfHeckeSlopes(k, l, P)
		if err != nil {
			return nil, fmt.Errorf("analysis: weight %d: %w", k, err)
		}
		out = append(out, WeightPoint{Weight: k, Dim: d, Slopes: slopes})
	}
	return out, nil
}
