// Command drinfeld computes Hecke traces, characteristic polynomials and
// Newton-polygon slopes for spaces of Drinfeld cusp forms over GF(q)(T).
//
// Polynomials in GF(q)[T] are given on the command line as comma-separated
// coefficients from the constant term upwards: "0,1" is T, "1,0,1" is
// T^2+1. Coefficients are field-element indices in [0, q).
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/functionfields/drinfeld/hecke"
	"github.com/functionfields/drinfeld/ring"
)

var (
	flagQ        uint64
	flagVerbose  bool
	flagCacheDir string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "drinfeld",
	Short:         "Hecke operators on Drinfeld cusp forms over GF(q)(T)",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if flagVerbose {
			cfg = zap.NewDevelopmentConfig()
		}
		var err error
		if logger, err = cfg.Build(); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func main() {
	rootCmd.PersistentFlags().Uint64Var(&flagQ, "q", 3, "size of the coefficient field, a prime power")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "human-readable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagCacheDir, "cache-dir", "", "directory for cached isogeny-class enumerations")

	rootCmd.AddCommand(enumerateCmd, traceCmd, charpolCmd, slopesCmd, chartCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newParams builds the algebraic tower for the global --q flag.
func newParams() (*hecke.Params, error) {
	return hecke.NewParams(flagQ)
}

// parsePoly parses a comma-separated coefficient list into a polynomial.
func parsePoly(r *ring.Ring, s string) (ring.Poly, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	coeffs := make([]uint64, len(parts))
	for i, part := range parts {
		c, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return ring.Poly{}, fmt.Errorf("coefficient %q: %w", part, err)
		}
		coeffs[i] = c
	}
	return r.NewPolyFromIndices(coeffs)
}
