package tagplot

import (
	"fmt"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
)

// ScoreDist bins discriminant scores into an nBins histogram spanning
// [lo, hi).
func ScoreDist(scores []float64, nBins int, lo, hi float64) (*hbook.H1D, error) {
	if len(scores) == 0 {
		return nil, fmt.Errorf("%w: discriminant scores", ErrEmptyCurve)
	}
	if nBins < 1 || hi <= lo {
		return nil, fmt.Errorf("tagplot: bad score binning %d bins over [%v, %v)", nBins, lo, hi)
	}
	hist := hbook.NewH1D(nBins, lo, hi)
	for _, s := range scores {
		hist.Fill(s, 1)
	}
	return hist, nil
}

// DistLine renders a score histogram as an unfilled outline in the
// colour of the i-th overlaid curve.
func DistLine(hist *hbook.H1D, i int) *hplot.H1D {
	h := hplot.NewH1D(hist)
	h.FillColor = nil
	h.LineStyle.Color = CurveColor(i)
	h.Infos.Style = hplot.HInfoNone
	return h
}
