package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/functionfields/drinfeld/analysis"
	"github.com/functionfields/drinfeld/funcfield"
	"github.com/functionfields/drinfeld/hecke"
	"github.com/functionfields/drinfeld/ring"
)

var (
	flagK     int
	flagL     int
	flagN     int
	flagP     string
	flagPlace string
	flagKMin  int
	flagKMax  int
	flagOut   string
)

var enumerateCmd = &cobra.Command{
	Use:   "enumerate",
	Short: "Enumerate the weighted rank-2 isogeny classes for (q, n, P)",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newParams()
		if err != nil {
			return err
		}
		P, err := parsePoly(p.Ring(), flagP)
		if err != nil {
			return err
		}
		list, err := cachedEnumeration(p, flagN, P)
		if err != nil {
			return err
		}
		fmt.Println(list)
		for _, rec := range list.Records {
			fmt.Printf("  a = %-20s b = %-4s N = %s\n",
				p.Ring().String(rec.A), p.Field().String(rec.B), rec.N)
		}
		fmt.Println("total mass:", list.TotalMass())
		return nil
	},
}

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Trace of the Hecke operator T_{P^n} on S_{k,l}",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newParams()
		if err != nil {
			return err
		}
		P, err := parsePoly(p.Ring(), flagP)
		if err != nil {
			return err
		}
		list, err := cachedEnumeration(p, flagN, P)
		if err != nil {
			return err
		}
		tr, err := p.TraceFromList(flagK, flagL, list)
		if err != nil {
			return err
		}
		logger.Info("trace computed",
			zap.Int("k", flagK), zap.Int("l", flagL), zap.Int("n", flagN),
			zap.Int("dim", hecke.CuspDim(flagK, flagL, p.Q())))
		fmt.Println(p.K().String(tr))
		return nil
	},
}

var charpolCmd = &cobra.Command{
	Use:   "charpol",
	Short: "Characteristic polynomial of T_P on S_{k,l}",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newParams()
		if err != nil {
			return err
		}
		P, err := parsePoly(p.Ring(), flagP)
		if err != nil {
			return err
		}
		f, err := p.CharPol(flagK, flagL, P)
		if err != nil {
			return err
		}
		if f.Degree() < 0 {
			fmt.Printf("S_{%d,%d} is trivial\n", flagK, flagL)
			return nil
		}
		for i := f.Degree(); i >= 0; i-- {
			fmt.Printf("X^%d: %s\n", i, p.K().String(f[i]))
		}
		return nil
	},
}

var slopesCmd = &cobra.Command{
	Use:   "slopes",
	Short: "Newton-polygon slopes of T_P eigenvalues on S_{k,l}",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newParams()
		if err != nil {
			return err
		}
		P, err := parsePoly(p.Ring(), flagP)
		if err != nil {
			return err
		}
		f, err := p.CharPol(flagK, flagL, P)
		if err != nil {
			return err
		}
		var pl funcfield.Place
		if flagPlace == "inf" {
			pl = p.K().InfinitePlace()
		} else {
			placePoly, err := parsePoly(p.Ring(), flagPlace)
			if err != nil {
				return err
			}
			if pl, err = p.K().FinitePlace(placePoly); err != nil {
				return err
			}
		}
		slopes, err := p.Slopes(f, pl)
		if err != nil {
			return err
		}
		for _, s := range slopes {
			fmt.Printf("valuation %-8s multiplicity %d\n", s.Slope.RatString(), s.Multiplicity)
		}
		if summary, err := analysis.Summarize(slopes); err == nil {
			fmt.Println(summary)
		}
		return nil
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render a slope-by-weight chart to an HTML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newParams()
		if err != nil {
			return err
		}
		P, err := parsePoly(p.Ring(), flagP)
		if err != nil {
			return err
		}
		sweep, err := analysis.WeightSweep(p, flagL, flagKMin, flagKMax, P)
		if err != nil {
			return err
		}
		f, err := os.Create(flagOut)
		if err != nil {
			return err
		}
		defer f.Close()
		title := fmt.Sprintf("T_P slopes, q=%d, l=%d", p.Q(), flagL)
		if err := analysis.SlopeChart(title, sweep, f); err != nil {
			return err
		}
		logger.Info("chart written", zap.String("path", flagOut), zap.Int("weights", len(sweep)))
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{enumerateCmd, traceCmd, charpolCmd, slopesCmd, chartCmd} {
		cmd.Flags().StringVar(&flagP, "poly", "0,1", "characteristic polynomial P, constant coefficient first")
	}
	for _, cmd := range []*cobra.Command{traceCmd, charpolCmd, slopesCmd} {
		cmd.Flags().IntVar(&flagK, "k", 8, "weight")
		cmd.Flags().IntVar(&flagL, "l", 0, "type, taken mod q-1")
	}
	for _, cmd := range []*cobra.Command{enumerateCmd, traceCmd} {
		cmd.Flags().IntVar(&flagN, "n", 1, "power of P in T_{P^n}")
	}
	slopesCmd.Flags().StringVar(&flagPlace, "place", "inf", `place for valuations: "inf" or a monic irreducible`)
	chartCmd.Flags().IntVar(&flagL, "l", 0, "type, taken mod q-1")
	chartCmd.Flags().IntVar(&flagKMin, "k-min", 2, "first weight of the sweep")
	chartCmd.Flags().IntVar(&flagKMax, "k-max", 64, "last weight of the sweep")
	chartCmd.Flags().StringVarP(&flagOut, "out", "o", "slopes.html", "output HTML file")
}

// cachedEnumeration wraps EnumerateIsogenyClasses with an optional on-disk
// cache keyed by the blake3 digest of (q, n, P).
func cachedEnumeration(p *hecke.Params, n int, P ring.Poly) (*hecke.IsogenyClassList, error) {
	list := &hecke.IsogenyClassList{Q: p.Q(), N: n, P: P}
	if flagCacheDir == "" {
		return p.EnumerateIsogenyClasses(n, P)
	}
	key := list.CacheKey()
	path := filepath.Join(flagCacheDir, hex.EncodeToString(key[:])+".bin")
	if data, err := os.ReadFile(path); err == nil {
		if err := list.UnmarshalBinary(data); err == nil {
			logger.Debug("enumeration cache hit", zap.String("path", path))
			return list, nil
		}
		logger.Warn("discarding corrupt cache entry", zap.String("path", path))
	}
	list, err := p.EnumerateIsogenyClasses(n, P)
	if err != nil {
		return nil, err
	}
	data, err := list.MarshalBinary()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(flagCacheDir, 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, err
	}
	logger.Debug("enumeration cached", zap.String("path", path))
	return list, nil
}
