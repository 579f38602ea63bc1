package tagplot

import (
	"fmt"
	"image/color"
	"math"

	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"

	"github.com/flavourtag/tagplot/vertexing"
)

// VarProfile accumulates per-jet numerator and denominator counts binned
// in a kinematic variable and turns them into ratio points with binomial
// error bars, the standard efficiency-vs-variable presentation.
type VarProfile struct {
	num, den *hbook.H1D

	nBins  int
	lo, hi float64
}

// NewVarProfile returns a profile with nBins bins over [lo, hi).
func NewVarProfile(nBins int, lo, hi float64) *VarProfile {
	return &VarProfile{
		num:   hbook.NewH1D(nBins, lo, hi),
		den:   hbook.NewH1D(nBins, lo, hi),
		nBins: nBins,
		lo:    lo,
		hi:    hi,
	}
}

// Fill adds one jet's contribution at variable value x.
func (p *VarProfile) Fill(x, num, den float64) {
	p.num.Fill(x, num)
	p.den.Fill(x, den)
}

// FillCounts adds one contribution per jet. x, num and den must have the
// same length.
func (p *VarProfile) FillCounts(x, num, den []float64) error {
	if len(num) != len(x) || len(den) != len(x) {
		return fmt.Errorf("%w: x=%d num=%d den=%d",
			ErrMismatchedLengths, len(x), len(num), len(den))
	}
	for i := range x {
		p.Fill(x[i], num[i], den[i])
	}
	return nil
}

// Points returns the per-bin ratio points at bin centres with symmetric
// bin-width x errors and binomial y errors. Bins with an empty
// denominator contribute no point.
func (p *VarProfile) Points() plotutil.ErrorPoints {
	binHalfWidth := (p.hi - p.lo) / float64(2*p.nBins)
	binSigma := binHalfWidth / math.Sqrt(3.)

	var ep plotutil.ErrorPoints
	for i := 0; i < p.nBins; i++ {
		denX, denY := p.den.XY(i)
		if denY <= 0 {
			continue
		}
		_, numY := p.num.XY(i)

		ratio := numY / denY
		yerr := math.Sqrt((1 - ratio) * numY / math.Pow(denY, 2))
		if math.IsNaN(yerr) {
			// Ratios above one (counts, not efficiencies) get plain
			// Poisson-style errors.
			yerr = math.Sqrt(numY) / denY
		}

		ep.XYs = append(ep.XYs, plotter.XY{X: denX + binHalfWidth, Y: ratio})
		ep.XErrors = append(ep.XErrors, struct{ Low, High float64 }{binSigma, binSigma})
		ep.YErrors = append(ep.YErrors, struct{ Low, High float64 }{yerr, yerr})
	}
	return ep
}

// ErrorBars renders the profile points as x/y error bars in the given
// colour, ready to be added to a plot.
func (p *VarProfile) ErrorBars(c color.Color) (*plotter.XErrorBars, *plotter.YErrorBars, error) {
	ep := p.Points()
	xerr, err := plotter.NewXErrorBars(ep)
	if err != nil {
		return nil, nil, err
	}
	yerr, err := plotter.NewYErrorBars(ep)
	if err != nil {
		return nil, nil, err
	}
	xerr.LineStyle.Color = c
	yerr.LineStyle.Color = c
	return xerr, yerr, nil
}

// VtxMode selects which vertexing performance ratio a profile shows.
type VtxMode int

const (
	// VtxEfficiency is matched over reference vertices (or tracks).
	VtxEfficiency VtxMode = iota

	// VtxPurity is matched over test vertices (or tracks).
	VtxPurity

	// VtxTotalReco is the average number of test vertices (or test
	// vertex tracks) per jet.
	VtxTotalReco
)

// VertexCounts extracts per-jet numerator/denominator pairs for the given
// mode from compared vertex metrics. With trackLevel set, counts are sums
// of per-pair track counts instead of vertex counts; padded pair entries
// are skipped.
func VertexCounts(m *vertexing.Metrics, mode VtxMode, trackLevel bool) (num, den []float64, err error) {
	nJets := len(m.NMatch)
	num = make([]float64, nJets)
	den = make([]float64, nJets)

	for i := 0; i < nJets; i++ {
		if trackLevel {
			match := sumValid(m.TrackOverlap[i])
			ref := sumValid(m.RefVertexSize[i])
			test := sumValid(m.TestVertexSize[i])
			switch mode {
			case VtxEfficiency:
				num[i], den[i] = match, ref
			case VtxPurity:
				num[i], den[i] = match, test
			case VtxTotalReco:
				num[i], den[i] = test, 1
			default:
				return nil, nil, fmt.Errorf("tagplot: unknown vertex mode %d", mode)
			}
			continue
		}
		switch mode {
		case VtxEfficiency:
			num[i], den[i] = float64(m.NMatch[i]), float64(m.NRef[i])
		case VtxPurity:
			num[i], den[i] = float64(m.NMatch[i]), float64(m.NTest[i])
		case VtxTotalReco:
			num[i], den[i] = float64(m.NTest[i]), 1
		default:
			return nil, nil, fmt.Errorf("tagplot: unknown vertex mode %d", mode)
		}
	}
	return num, den, nil
}

func sumValid(row []int) float64 {
	s := 0.
	for _, v := range row {
		if v >= 0 {
			s += float64(v)
		}
	}
	return s
}
