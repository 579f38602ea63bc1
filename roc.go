package tagplot

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/plotter"
)

var (
	// ErrEmptyCurve indicates curve input with no entries.
	ErrEmptyCurve = errors.New("tagplot: empty curve input")

	// ErrMismatchedLengths indicates x/y input of different lengths.
	ErrMismatchedLengths = errors.New("tagplot: mismatched input lengths")
)

// EffCut returns the discriminant cut value that keeps the fraction
// targetEff of the signal discriminant distribution above the cut.
func EffCut(sigDisc []float64, targetEff float64) (float64, error) {
	if len(sigDisc) == 0 {
		return 0, fmt.Errorf("%w: signal discriminants", ErrEmptyCurve)
	}
	if targetEff <= 0 || targetEff > 1 {
		return 0, fmt.Errorf("tagplot: target efficiency %v outside (0, 1]", targetEff)
	}
	sorted := make([]float64, len(sigDisc))
	copy(sorted, sigDisc)
	sort.Float64s(sorted)
	return stat.Quantile(1-targetEff, stat.Empirical, sorted, nil), nil
}

// CalcEff returns the background efficiency at the cut keeping targetEff
// of the signal.
func CalcEff(sigDisc, bkgDisc []float64, targetEff float64) (float64, error) {
	if len(bkgDisc) == 0 {
		return 0, fmt.Errorf("%w: background discriminants", ErrEmptyCurve)
	}
	cut, err := EffCut(sigDisc, targetEff)
	if err != nil {
		return 0, err
	}
	pass := 0
	for _, d := range bkgDisc {
		if d > cut {
			pass++
		}
	}
	return float64(pass) / float64(len(bkgDisc)), nil
}

// CalcRej returns the background rejection (inverse background
// efficiency) at the cut keeping targetEff of the signal. The rejection is
// +Inf when no background passes the cut.
func CalcRej(sigDisc, bkgDisc []float64, targetEff float64) (float64, error) {
	eff, err := CalcEff(sigDisc, bkgDisc, targetEff)
	if err != nil {
		return 0, err
	}
	if eff == 0 {
		return math.Inf(1), nil
	}
	return 1 / eff, nil
}

// SigEffGrid returns n linearly spaced signal-efficiency working points
// between lo and hi inclusive.
func SigEffGrid(lo, hi float64, n int) []float64 {
	return floats.Span(make([]float64, n), lo, hi)
}

// RejectionCurve evaluates the background rejection over the given
// signal-efficiency working points and returns the finite points as a
// ROC-style curve. Working points where the rejection diverges are left
// out.
func RejectionCurve(sigDisc, bkgDisc, sigEffs []float64) (plotter.XYs, error) {
	var pts plotter.XYs
	for _, eff := range sigEffs {
		rej, err := CalcRej(sigDisc, bkgDisc, eff)
		if err != nil {
			return nil, err
		}
		if math.IsInf(rej, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: eff, Y: rej})
	}
	return pts, nil
}
