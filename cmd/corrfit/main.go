// Command corrfit fits a correlation function to a synthetic spatial
// covariance matrix and reports the fitted coefficients.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/luk036/corr-solver/bspline"
	"github.com/luk036/corr-solver/corr"
)

var (
	fitNx      int
	fitNy      int
	fitSamples int
	fitBasis   int
	fitModel   string
	fitMethod  string
)

var rootCmd = &cobra.Command{
	Use:   "corrfit",
	Short: "Fit valid correlation functions to spatial covariance matrices",
}

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit a correlation function to a synthetic covariance matrix",
	Long: `Generates a Halton grid of sites, samples a biased covariance matrix from
an isotropic squared-exponential kernel, and fits either a polynomial or a
monotone-decreasing B-spline correlation function by least squares or
maximum likelihood.`,
	RunE: runFit,
}

func init() {
	rootCmd.AddCommand(fitCmd)
	fitCmd.Flags().IntVar(&fitNx, "nx", 5, "grid sites in the x direction")
	fitCmd.Flags().IntVar(&fitNy, "ny", 4, "grid sites in the y direction")
	fitCmd.Flags().IntVar(&fitSamples, "samples", 3000, "number of covariance samples")
	fitCmd.Flags().IntVar(&fitBasis, "basis", 4, "number of basis functions")
	fitCmd.Flags().StringVar(&fitModel, "model", "poly", "model: poly or bspline")
	fitCmd.Flags().StringVar(&fitMethod, "method", "lsq", "method: lsq, lsq-bsearch or mle")
}

func runFit(cmd *cobra.Command, args []string) error {
	sites := corr.CreateSites(fitNx, fitNy)
	y := corr.CreateIsotropic(sites, fitSamples)
	n, _ := sites.Dims()
	log.Info().Int("sites", n).Int("samples", fitSamples).Int("basis", fitBasis).
		Str("model", fitModel).Str("method", fitMethod).Msg("fitting")

	start := time.Now()
	switch fitModel {
	case "poly":
		var (
			p        *corr.Polynomial
			numIters int
			feasible bool
			err      error
		)
		switch fitMethod {
		case "lsq":
			p, numIters, feasible, err = corr.LsqPoly(y, sites, fitBasis)
		case "lsq-bsearch":
			p, numIters, feasible, err = corr.LsqPolyBS(y, sites, fitBasis)
		case "mle":
			p, numIters, feasible, err = corr.MlePoly(y, sites, fitBasis)
		default:
			return fmt.Errorf("unknown method %q", fitMethod)
		}
		if err != nil {
			return err
		}
		evt := log.Info().Int("iterations", numIters).Bool("feasible", feasible).
			Dur("elapsed", time.Since(start))
		if p != nil {
			evt = evt.Floats64("coeffs", p.Coeffs)
		}
		evt.Msg("polynomial fit done")
	case "bspline":
		var (
			spl      *bspline.Spline
			numIters int
			feasible bool
			err      error
		)
		switch fitMethod {
		case "lsq":
			spl, numIters, feasible, err = corr.LsqBSpline(y, sites, fitBasis)
		case "mle":
			spl, numIters, feasible, err = corr.MleBSpline(y, sites, fitBasis)
		default:
			return fmt.Errorf("unknown method %q for bspline", fitMethod)
		}
		if err != nil {
			return err
		}
		evt := log.Info().Int("iterations", numIters).Bool("feasible", feasible).
			Dur("elapsed", time.Since(start))
		if spl != nil {
			evt = evt.Floats64("coeffs", spl.Coeffs).Floats64("knots", spl.Knots)
		}
		evt.Msg("bspline fit done")
	default:
		return fmt.Errorf("unknown model %q", fitModel)
	}
	return nil
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
